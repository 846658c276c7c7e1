package reporter_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pystyle/pkg/reporter"
)

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, _, _ := render(t, reporter.Options{Format: reporter.FormatJSON, WorkingDir: "/work"}, sampleResult())

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))

	require.Len(t, output.Files, 4)

	assert.Equal(t, "broken.py", output.Files[0].Path)
	assert.Contains(t, output.Files[0].Error, "NUL bytes")
	assert.Empty(t, output.Files[0].Diagnostics)

	ops := output.Files[2]
	assert.Equal(t, "pkg/ops.py", ops.Path)
	assert.Equal(t, "utf-8", ops.Encoding)
	assert.Equal(t, map[string]int{"E225": 2, "E231": 1}, ops.Counts)
	require.Len(t, ops.Diagnostics, 2)
	assert.Equal(t, reporter.JSONDiagnostic{
		Code:     "E225",
		RuleID:   "missing-whitespace-around-operator",
		Severity: "error",
		Message:  "missing whitespace around operator",
		Line:     1,
		Column:   2,
	}, ops.Diagnostics[0])

	require.Len(t, output.Files[3].TemplateFindings, 1)
	assert.Equal(t, "functions", output.Files[3].TemplateFindings[0].ID)

	assert.Equal(t, reporter.JSONSummary{
		FilesChecked:     4,
		FilesWithIssues:  2,
		FilesErrored:     1,
		TotalIssues:      3,
		TemplateFindings: 1,
		BySeverity:       map[string]int{"error": 2},
		Statistics: []reporter.JSONCodeStat{
			{Code: "E225", Count: 2, FirstMessage: "missing whitespace around operator"},
			{Code: "E231", Count: 1, FirstMessage: "missing whitespace after ','"},
		},
	}, output.Summary)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	out, _, _ := render(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, sampleResult())

	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.True(t, json.Valid([]byte(out)))
}

func TestJSONReporter_EmptyArrays(t *testing.T) {
	t.Parallel()

	out, _, _ := render(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, nil)

	assert.Contains(t, out, `"files":[]`)
	assert.Contains(t, out, `"statistics":[]`)
}
