package analysis

import "time"

// Report is the aggregated view of a run. Each view is filled only when
// the matching Options flag asks for it; Totals is always present.
type Report struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Totals    Totals    `json:"summary"`

	ByCode      []CodeAnalysis    `json:"byCode,omitempty"`
	ByFile      []FileAnalysis    `json:"byFile,omitempty"`
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`
}

// DiagnosticEntry is one printed diagnostic with its display path.
type DiagnosticEntry struct {
	FilePath string `json:"filePath"`
	Code     string `json:"code"`
	RuleID   string `json:"ruleId"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Totals holds the run-wide counts.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`

	// Issues and the per-severity counts include occurrences the repeat
	// policy hid.
	Issues   int `json:"totalIssues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`

	TemplateFindings int `json:"templateFindings"`
}

// HasIssues reports whether the run produced a diagnostic or a template
// finding.
func (t Totals) HasIssues() bool {
	return t.Issues > 0 || t.TemplateFindings > 0
}

func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis summarizes one file with at least one diagnostic. Codes is
// sorted.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Codes    []string `json:"codes,omitempty"`
}

// CodeAnalysis summarizes one code across the run. FirstMessage is the
// first one reported in file order and Files is sorted.
type CodeAnalysis struct {
	Code         string   `json:"code"`
	RuleID       string   `json:"ruleId"`
	Severity     string   `json:"severity"`
	Count        int      `json:"count"`
	FirstMessage string   `json:"firstMessage"`
	Files        []string `json:"files,omitempty"`
}
