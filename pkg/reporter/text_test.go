package reporter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/reporter"
	"github.com/yaklabco/pystyle/pkg/runner"
)

func TestTextReporter(t *testing.T) {
	t.Parallel()

	out, _, _ := render(t, reporter.Options{
		Format:      reporter.FormatText,
		WorkingDir:  "/work",
		ShowContext: true,
		ShowSummary: true,
		RuleFormat:  config.RuleFormatCode,
	}, sampleResult())

	assert.Contains(t, out, "broken.py: error: decode failure")
	assert.Contains(t, out, "pkg/ops.py (3 issues)\n")
	assert.Contains(t, out, "  1:2  E225  missing whitespace around operator\n    i=i+1\n     ^\n")
	assert.Contains(t, out, "  2:4  E231  missing whitespace after ','\n    f(a,b)\n       ^\n")
	assert.Contains(t, out, "tmpl.py\n  functions")
	assert.Contains(t, out, "  functions  missing functions block\n    # functions are listed here\n")
	assert.NotContains(t, out, "clean.py", "clean files are not listed")
	assert.Contains(t, out, "3 issues (2 errors) in 2 files, 1 template finding, 1 file failed\n")
}

func TestTextReporter_NoContext(t *testing.T) {
	t.Parallel()

	out, _, _ := render(t, reporter.Options{Format: reporter.FormatText, WorkingDir: "/work"}, sampleResult())

	assert.NotContains(t, out, "i=i+1")
	assert.NotContains(t, out, "issues (2 errors)", "summary is off")
}

func TestTextReporter_RuleFormat(t *testing.T) {
	t.Parallel()

	out, _, _ := render(t, reporter.Options{
		Format:     reporter.FormatText,
		WorkingDir: "/work",
		RuleFormat: config.RuleFormatCombined,
	}, sampleResult())

	assert.Contains(t, out, "E225/missing-whitespace-around-operator")
}

func TestTextReporter_Statistics(t *testing.T) {
	t.Parallel()

	out, _, _ := render(t, reporter.Options{
		Format:     reporter.FormatText,
		WorkingDir: "/work",
		Statistics: true,
	}, sampleResult())

	assert.Contains(t, out, "First message")
	assert.Contains(t, out, "    2 E225 missing whitespace around operator\n")
}

func TestTextReporter_StatisticsSummaryBlock(t *testing.T) {
	t.Parallel()

	out, _, _ := render(t, reporter.Options{
		Format:      reporter.FormatText,
		WorkingDir:  "/work",
		Statistics:  true,
		ShowSummary: true,
	}, sampleResult())

	assert.Contains(t, out, "  Total issues:      3\n")
	assert.Contains(t, out, "  Files failed:      1\n")
	assert.NotContains(t, out, "3 issues (2 errors) in 2 files")
}

func TestTextReporter_NoFiles(t *testing.T) {
	t.Parallel()

	out, _, count := render(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true}, &runner.Result{})

	assert.Equal(t, "No files to check.\n", out)
	assert.Zero(t, count)
}
