package runner

import (
	"cmp"
	"maps"
	"slices"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint"
)

// FileOutcome is what checking one discovered path produced. Exactly one
// of Result and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesCached     int

	// FilesWithIssues counts files with a diagnostic or template finding.
	FilesWithIssues int

	// DiagnosticsTotal includes occurrences the repeat policy hid.
	DiagnosticsTotal int

	// DiagnosticsBySeverity counts printed diagnostics only.
	DiagnosticsBySeverity map[string]int

	// CodeCounts and FirstMessages are keyed by code. The first message
	// is taken in file order.
	CodeCounts    map[string]int
	FirstMessages map[string]string

	TemplateFindings int

	// TokenizeErrors counts files whose tokenizing stopped early.
	TokenizeErrors int

	// RuleErrors counts recovered rule failures.
	RuleErrors int
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
		CodeCounts:            make(map[string]int),
		FirstMessages:         make(map[string]string),
	}
}

func (s *Stats) add(fr *lint.FileResult) {
	s.FilesProcessed++

	if fr.Cached {
		s.FilesCached++
	}
	if fr.TokenizeError != nil {
		s.TokenizeErrors++
	}
	if fr.HasIssues() {
		s.FilesWithIssues++
	}

	s.RuleErrors += len(fr.RuleErrors)
	s.DiagnosticsTotal += fr.IssueCount()
	s.TemplateFindings += len(fr.Findings)

	for code, n := range fr.Counts {
		s.CodeCounts[code] += n
	}
	for code, msg := range fr.FirstMessages {
		if _, seen := s.FirstMessages[code]; !seen {
			s.FirstMessages[code] = msg
		}
	}
	for _, diag := range fr.Diagnostics {
		s.DiagnosticsBySeverity[cmp.Or(string(diag.Severity), string(config.SeverityWarning))]++
	}
}

// Result collects the outcomes of a run in path order.
type Result struct {
	Files []FileOutcome
	Stats Stats

	// Errors holds the per-file failures in file order.
	Errors []error
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		r.Errors = append(r.Errors, outcome.Error)
	case outcome.Result != nil && outcome.Result.FileResult != nil:
		r.Stats.add(outcome.Result.FileResult)
	}
}

// HasFailures reports whether a diagnostic with error severity was printed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports whether any diagnostic or template finding was produced.
func (r *Result) HasIssues() bool {
	return r != nil && (r.Stats.DiagnosticsTotal > 0 || r.Stats.TemplateFindings > 0)
}

// Codes returns the codes seen during the run, sorted.
func (r *Result) Codes() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.Stats.CodeCounts))
}
