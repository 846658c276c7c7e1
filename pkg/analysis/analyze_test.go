package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/runner"
	"github.com/yaklabco/pystyle/pkg/template"
)

func outcome(path string, counts map[string]int, diags ...lint.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &lint.PipelineResult{
			FileResult: &lint.FileResult{
				Path:        path,
				Diagnostics: diags,
				Counts:      counts,
			},
		},
	}
}

func diag(code, msg string, sev config.Severity, line, col int) lint.Diagnostic {
	return lint.Diagnostic{Code: code, RuleID: "rule-" + code, Message: msg, Severity: sev, Line: line, Column: col}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			outcome("/work/a.py", map[string]int{"E225": 2, "W291": 1},
				diag("E225", "missing whitespace around operator", config.SeverityError, 1, 2),
				diag("E225", "missing whitespace around operator", config.SeverityError, 3, 4),
				diag("W291", "trailing whitespace", config.SeverityWarning, 5, 6),
			),
			outcome("/work/pkg/b.py", map[string]int{"W291": 3},
				// Repeat disabled: only the first occurrence was printed.
				diag("W291", "trailing whitespace", config.SeverityWarning, 2, 9),
			),
			outcome("/work/clean.py", map[string]int{}),
			{Path: "/work/broken.py", Error: errors.New("decode failure")},
		},
	}
}

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	report := Analyze(&runner.Result{}, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.Equal(t, 0, report.Totals.Issues)
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByCode)
}

func TestAnalyze_NilResult(t *testing.T) {
	t.Parallel()

	report := Analyze(nil, DefaultOptions())
	require.NotNil(t, report)
	assert.False(t, report.Totals.HasIssues())
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	assert.Equal(t, Totals{
		Files:           4,
		FilesWithIssues: 2,
		FilesErrored:    1,
		Issues:          6,
		Errors:          2,
		Warnings:        4,
	}, report.Totals)
}

func TestAnalyze_ByCode(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/work"
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.ByCode, 2)

	assert.Equal(t, CodeAnalysis{
		Code:         "E225",
		RuleID:       "rule-E225",
		Severity:     "error",
		Count:        2,
		FirstMessage: "missing whitespace around operator",
		Files:        []string{"a.py"},
	}, report.ByCode[0])

	assert.Equal(t, "W291", report.ByCode[1].Code)
	assert.Equal(t, 4, report.ByCode[1].Count, "hidden repeats are counted")
	assert.Equal(t, []string{"a.py", "pkg/b.py"}, report.ByCode[1].Files)
}

func TestAnalyze_ByFile(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/work"
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.ByFile, 2, "clean and failed files are omitted")
	assert.Equal(t, FileAnalysis{Path: "a.py", Issues: 3, Errors: 2, Warnings: 1, Codes: []string{"E225", "W291"}}, report.ByFile[0])
	assert.Equal(t, FileAnalysis{Path: "pkg/b.py", Issues: 3, Warnings: 3, Codes: []string{"W291"}}, report.ByFile[1])
}

func TestAnalyze_Diagnostics(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/work"
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.Diagnostics, 4, "only printed diagnostics are listed")
	assert.Equal(t, DiagnosticEntry{
		FilePath: "pkg/b.py",
		Code:     "W291",
		RuleID:   "rule-W291",
		Severity: "warning",
		Message:  "trailing whitespace",
		Line:     2,
		Column:   9,
	}, report.Diagnostics[3])
}

func TestAnalyze_OptionalViews(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), Options{})

	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByCode)
	assert.Empty(t, report.ByFile)
	assert.Equal(t, 6, report.Totals.Issues)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sortBy    SortField
		desc      bool
		wantCodes []string
		wantFiles []string
	}{
		{
			name:      "alpha",
			sortBy:    SortByAlpha,
			wantCodes: []string{"E225", "W291"},
			wantFiles: []string{"/work/a.py", "/work/pkg/b.py"},
		},
		{
			name:      "count descending",
			sortBy:    SortByCount,
			desc:      true,
			wantCodes: []string{"W291", "E225"},
			wantFiles: []string{"/work/a.py", "/work/pkg/b.py"},
		},
		{
			name:      "count ascending",
			sortBy:    SortByCount,
			wantCodes: []string{"E225", "W291"},
			wantFiles: []string{"/work/a.py", "/work/pkg/b.py"},
		},
		{
			name:      "severity",
			sortBy:    SortBySeverity,
			wantCodes: []string{"E225", "W291"},
			wantFiles: []string{"/work/a.py", "/work/pkg/b.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.SortBy = tt.sortBy
			opts.SortDesc = tt.desc
			report := Analyze(sampleResult(), opts)

			var codes, files []string
			for _, c := range report.ByCode {
				codes = append(codes, c.Code)
			}
			for _, f := range report.ByFile {
				files = append(files, f.Path)
			}
			assert.Equal(t, tt.wantCodes, codes)
			assert.Equal(t, tt.wantFiles, files)
		})
	}
}

func TestAnalyze_TemplateFindings(t *testing.T) {
	t.Parallel()

	file := outcome("/work/t.py", map[string]int{})
	file.Result.Findings = []template.Finding{{ID: "file-header"}, {ID: "functions"}}

	report := Analyze(&runner.Result{Files: []runner.FileOutcome{file}}, DefaultOptions())

	assert.Equal(t, 2, report.Totals.TemplateFindings)
	assert.Equal(t, 1, report.Totals.FilesWithIssues)
	assert.True(t, report.Totals.HasIssues())
	assert.Empty(t, report.ByFile, "files without diagnostics are not listed by file")
}

func TestMakeRelativePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/abs/x.py", MakeRelativePath("/abs/x.py", ""))
	assert.Equal(t, "x.py", MakeRelativePath("/abs/x.py", "/abs"))
	assert.Equal(t, "../other/x.py", MakeRelativePath("/other/x.py", "/abs"))
}
