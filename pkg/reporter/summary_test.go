package reporter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/reporter"
	"github.com/yaklabco/pystyle/pkg/runner"
)

func TestSummaryRenderer(t *testing.T) {
	t.Parallel()

	out, _, _ := render(t, reporter.Options{Format: reporter.FormatSummary, WorkingDir: "/work"}, sampleResult())

	assert.Contains(t, out, "Codes Summary")
	assert.Contains(t, out, "E225 missing-whitespace-around-operator     2 missing whitespace around operator")
	assert.Contains(t, out, "Files Summary")
	assert.Contains(t, out, "pkg/ops.py")
	assert.Contains(t, out, "Total: 3 issues (3 errors) in 2 files, 1 template finding")
}

func TestSummaryRenderer_Order(t *testing.T) {
	t.Parallel()

	tests := []struct {
		order      config.SummaryOrder
		filesFirst bool
	}{
		{order: "", filesFirst: false},
		{order: config.SummaryOrderRules, filesFirst: false},
		{order: config.SummaryOrderFiles, filesFirst: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			t.Parallel()

			opts := reporter.Options{Format: reporter.FormatSummary, SummaryOrder: tt.order}
			out, _, _ := render(t, opts, sampleResult())

			codes := strings.Index(out, "Codes Summary")
			files := strings.Index(out, "Files Summary")
			assert.Equal(t, tt.filesFirst, files < codes)
		})
	}
}

func TestSummaryRenderer_NoIssues(t *testing.T) {
	t.Parallel()

	out, _, _ := render(t, reporter.Options{Format: reporter.FormatSummary}, &runner.Result{})

	assert.Equal(t, "No issues found\n", out)
}
