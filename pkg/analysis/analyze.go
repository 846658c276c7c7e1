package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/pystyle/pkg/runner"
)

// ReportVersion is bumped when the JSON layout of Report changes.
const ReportVersion = "1.0.0"

const (
	severityError   = "error"
	severityWarning = "warning"
	severityInfo    = "info"
)

// MakeRelativePath shows absPath relative to workDir. It returns absPath
// unchanged when workDir is empty or no relative form exists.
func MakeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	if rel, err := filepath.Rel(workDir, absPath); err == nil {
		return rel
	}
	return absPath
}

// tally accumulates the per-code and per-file views in one pass.
type tally struct {
	codes     map[string]*CodeAnalysis
	codeOrder []string
	files     []*FileAnalysis
}

func (t *tally) code(code, ruleID, severity, message string) *CodeAnalysis {
	ca, ok := t.codes[code]
	if !ok {
		ca = &CodeAnalysis{Code: code, RuleID: ruleID, Severity: severity, FirstMessage: message}
		t.codes[code] = ca
		t.codeOrder = append(t.codeOrder, code)
	}
	return ca
}

// Analyze builds a Report from a run in a single pass over the files.
//
// Counts come from each file's per-code totals, so occurrences the repeat
// policy did not print are still counted. A code takes the severity of
// its first printed diagnostic; Diagnostics lists printed ones only.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Version: ReportVersion, Timestamp: time.Now()}
	if result == nil {
		return report
	}

	t := &tally{codes: make(map[string]*CodeAnalysis)}
	totals := &report.Totals

	for _, file := range result.Files {
		totals.Files++
		if file.Error != nil {
			totals.FilesErrored++
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		fr := file.Result.FileResult
		if fr.HasIssues() {
			totals.FilesWithIssues++
		}
		totals.TemplateFindings += len(fr.Findings)

		path := MakeRelativePath(file.Path, opts.WorkingDir)
		fa := &FileAnalysis{Path: path}

		for _, diag := range fr.Diagnostics {
			severity := cmp.Or(string(diag.Severity), severityWarning)

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, DiagnosticEntry{
					FilePath: path,
					Code:     diag.Code,
					RuleID:   diag.RuleID,
					Severity: severity,
					Message:  diag.Message,
					Line:     diag.Line,
					Column:   diag.Column,
				})
			}

			// Every occurrence of a code is accounted for at its first
			// printed diagnostic in the file.
			if slices.Contains(fa.Codes, diag.Code) {
				continue
			}
			n := fr.Counts[diag.Code]

			ca := t.code(diag.Code, diag.RuleID, severity, diag.Message)
			ca.Count += n
			ca.Files = append(ca.Files, path)

			fa.Codes = append(fa.Codes, diag.Code)
			fa.Issues += n
			totals.Issues += n

			switch severity {
			case severityError:
				fa.Errors += n
				totals.Errors += n
			case severityWarning:
				fa.Warnings += n
				totals.Warnings += n
			case severityInfo:
				fa.Infos += n
				totals.Infos += n
			}
		}

		if fa.Issues > 0 {
			slices.Sort(fa.Codes)
			t.files = append(t.files, fa)
		}
	}

	if opts.IncludeByCode {
		report.ByCode = make([]CodeAnalysis, 0, len(t.codeOrder))
		for _, code := range t.codeOrder {
			ca := t.codes[code]
			slices.Sort(ca.Files)
			report.ByCode = append(report.ByCode, *ca)
		}
		slices.SortFunc(report.ByCode, compareCodes(opts.SortBy, opts.SortDesc))
	}

	if opts.IncludeByFile {
		for _, fa := range t.files {
			report.ByFile = append(report.ByFile, *fa)
		}
		slices.SortFunc(report.ByFile, compareFiles(opts.SortBy, opts.SortDesc))
	}

	return report
}

// byCount orders ascending, or descending when desc is set.
func byCount(a, b int, desc bool) int {
	if desc {
		return cmp.Compare(b, a)
	}
	return cmp.Compare(a, b)
}

// compareCodes orders the per-code view. Severity ordering is always
// most severe first and breaks ties by larger count.
func compareCodes(sortBy SortField, desc bool) func(a, b CodeAnalysis) int {
	switch sortBy {
	case SortBySeverity:
		return func(a, b CodeAnalysis) int {
			return cmp.Or(
				cmp.Compare(severityRank(b.Severity), severityRank(a.Severity)),
				cmp.Compare(b.Count, a.Count),
				cmp.Compare(a.Code, b.Code),
			)
		}
	case SortByCount:
		return func(a, b CodeAnalysis) int {
			return cmp.Or(byCount(a.Count, b.Count, desc), cmp.Compare(a.Code, b.Code))
		}
	default:
		return func(a, b CodeAnalysis) int { return cmp.Compare(a.Code, b.Code) }
	}
}

// compareFiles orders the per-file view. Severity ordering puts files
// with more errors first, then more warnings.
func compareFiles(sortBy SortField, desc bool) func(a, b FileAnalysis) int {
	switch sortBy {
	case SortBySeverity:
		return func(a, b FileAnalysis) int {
			return cmp.Or(
				cmp.Compare(b.Errors, a.Errors),
				cmp.Compare(b.Warnings, a.Warnings),
				cmp.Compare(b.Issues, a.Issues),
				cmp.Compare(a.Path, b.Path),
			)
		}
	case SortByCount:
		return func(a, b FileAnalysis) int {
			return cmp.Or(byCount(a.Issues, b.Issues, desc), cmp.Compare(a.Path, b.Path))
		}
	default:
		return func(a, b FileAnalysis) int { return cmp.Compare(a.Path, b.Path) }
	}
}

func severityRank(sev string) int {
	switch sev {
	case severityError:
		return 2
	case severityWarning:
		return 1
	default:
		return 0
	}
}
