package reporter_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/reporter"
	"github.com/yaklabco/pystyle/pkg/runner"
	"github.com/yaklabco/pystyle/pkg/template"
)

// sampleResult builds a run over four files: one with issues (and a hidden
// repeat), one clean, one with a template finding, and one that failed.
func sampleResult() *runner.Result {
	dirty := &lint.FileResult{
		Path:     "/work/pkg/ops.py",
		Lines:    []string{"i=i+1\n", "f(a,b)\n", "j=j+1\n"},
		Encoding: "utf-8",
		Diagnostics: []lint.Diagnostic{
			{Code: "E225", RuleID: "missing-whitespace-around-operator", Message: "missing whitespace around operator",
				Severity: config.SeverityError, FilePath: "/work/pkg/ops.py", Line: 1, Column: 2},
			{Code: "E231", RuleID: "missing-whitespace", Message: "missing whitespace after ','",
				Severity: config.SeverityError, FilePath: "/work/pkg/ops.py", Line: 2, Column: 4},
		},
		Counts:        map[string]int{"E225": 2, "E231": 1},
		FirstMessages: map[string]string{"E225": "missing whitespace around operator", "E231": "missing whitespace after ','"},
	}
	clean := &lint.FileResult{Path: "/work/clean.py", Lines: []string{"x = 1\n"}, Counts: map[string]int{}}
	templated := &lint.FileResult{
		Path:   "/work/tmpl.py",
		Counts: map[string]int{},
		Findings: []template.Finding{
			{ID: "functions", Message: "missing functions block", Guidance: "# functions are listed here\n"},
		},
	}

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/broken.py", Error: errors.New("decode failure: contains NUL bytes")},
			{Path: clean.Path, Result: &lint.PipelineResult{FileResult: clean}},
			{Path: dirty.Path, Result: &lint.PipelineResult{FileResult: dirty}},
			{Path: templated.Path, Result: &lint.PipelineResult{FileResult: templated}},
		},
		Stats: runner.Stats{
			FilesDiscovered:       4,
			FilesProcessed:        3,
			FilesErrored:          1,
			FilesWithIssues:       2,
			DiagnosticsTotal:      3,
			DiagnosticsBySeverity: map[string]int{"error": 2},
			CodeCounts:            map[string]int{"E225": 2, "E231": 1},
			FirstMessages:         dirty.FirstMessages,
			TemplateFindings:      1,
		},
	}
}

func render(t *testing.T, opts reporter.Options, result *runner.Result) (string, string, int) {
	t.Helper()

	var out, errOut bytes.Buffer
	opts.Writer = &out
	opts.ErrorWriter = &errOut
	if opts.Color == "" {
		opts.Color = "never"
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	return out.String(), errOut.String(), count
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to plain", input: "", want: reporter.FormatPlain},
		{name: "plain", input: "plain", want: reporter.FormatPlain},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "sarif", input: "sarif", want: reporter.FormatSARIF},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "xml", wantErr: true},
		{name: "removed format", input: "diff", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range []reporter.Format{
		reporter.FormatPlain, reporter.FormatText, reporter.FormatJSON, reporter.FormatSARIF, reporter.FormatSummary,
	} {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, reporter.Format("unknown").IsValid())
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "plain reporter", format: reporter.FormatPlain},
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "sarif reporter", format: reporter.FormatSARIF},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "empty defaults to plain", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestReporters_ReturnIssueCount(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{
		reporter.FormatPlain, reporter.FormatText, reporter.FormatJSON, reporter.FormatSARIF, reporter.FormatSummary,
	} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			_, _, count := render(t, reporter.Options{Format: format, WorkingDir: "/work"}, sampleResult())
			assert.Equal(t, 3, count, "hidden repeats count as issues")
		})
	}
}

func TestReporters_NilResult(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{
		reporter.FormatPlain, reporter.FormatText, reporter.FormatJSON, reporter.FormatSARIF, reporter.FormatSummary,
	} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			_, _, count := render(t, reporter.Options{Format: format}, nil)
			assert.Zero(t, count)
		})
	}
}
