package reporter

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/runner"
)

// jsonVersion changes whenever a field of JSONOutput is renamed or removed.
const jsonVersion = "1.0.0"

// JSONOutput is the document written by the json format.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one checked path. Error is set, and everything else
// is empty, when the file could not be read or decoded.
type JSONFileResult struct {
	Path             string            `json:"path"`
	Encoding         string            `json:"encoding,omitempty"`
	Diagnostics      []JSONDiagnostic  `json:"diagnostics"`
	Counts           map[string]int    `json:"counts,omitempty"`
	TemplateFindings []JSONFinding     `json:"templateFindings,omitempty"`
	TokenizeError    string            `json:"tokenizeError,omitempty"`
	RuleErrors       map[string]string `json:"ruleErrors,omitempty"`
	Cached           bool              `json:"cached,omitempty"`
	Error            string            `json:"error,omitempty"`
}

// JSONDiagnostic is one printed diagnostic.
type JSONDiagnostic struct {
	Code     string `json:"code"`
	RuleID   string `json:"ruleId"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// JSONFinding is a template element missing from the file.
type JSONFinding struct {
	ID       string `json:"id"`
	Message  string `json:"message"`
	Guidance string `json:"guidance"`
}

// JSONCodeStat is one row of the per-code statistics, in code order.
type JSONCodeStat struct {
	Code         string `json:"code"`
	Count        int    `json:"count"`
	FirstMessage string `json:"firstMessage"`
}

// JSONSummary aggregates the run. TotalIssues includes hidden repeats.
type JSONSummary struct {
	FilesChecked     int            `json:"filesChecked"`
	FilesWithIssues  int            `json:"filesWithIssues"`
	FilesErrored     int            `json:"filesErrored"`
	FilesCached      int            `json:"filesCached"`
	TotalIssues      int            `json:"totalIssues"`
	TemplateFindings int            `json:"templateFindings"`
	BySeverity       map[string]int `json:"bySeverity"`
	Statistics       []JSONCodeStat `json:"statistics"`
}

// JSONReporter writes a single JSONOutput document per run.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSON reporter writing to opts.Writer.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.document(result)

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

// document builds the output. Slices and maps are never nil so that
// consumers always see arrays and objects.
func (r *JSONReporter) document(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}, Statistics: []JSONCodeStat{}},
	}
	if result == nil {
		return output
	}

	sum := &output.Summary
	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:        slashPath(file.Path, r.opts.WorkingDir),
			Diagnostics: []JSONDiagnostic{},
		}
		sum.FilesChecked++

		if file.Error != nil {
			entry.Error = file.Error.Error()
			sum.FilesErrored++
		}
		if file.Result != nil && file.Result.FileResult != nil {
			fr := file.Result.FileResult
			fillJSONFile(&entry, fr)

			for _, d := range entry.Diagnostics {
				sum.BySeverity[d.Severity]++
			}
			if fr.HasIssues() {
				sum.FilesWithIssues++
			}
			if fr.Cached {
				sum.FilesCached++
			}
			sum.TotalIssues += fr.IssueCount()
			sum.TemplateFindings += len(fr.Findings)
		}

		output.Files = append(output.Files, entry)
	}

	for _, code := range result.Codes() {
		sum.Statistics = append(sum.Statistics, JSONCodeStat{
			Code:         code,
			Count:        result.Stats.CodeCounts[code],
			FirstMessage: result.Stats.FirstMessages[code],
		})
	}

	return output
}

func fillJSONFile(entry *JSONFileResult, fr *lint.FileResult) {
	entry.Encoding = fr.Encoding
	entry.Cached = fr.Cached

	if len(fr.Counts) > 0 {
		entry.Counts = fr.Counts
	}
	if fr.TokenizeError != nil {
		entry.TokenizeError = fr.TokenizeError.Error()
	}
	if len(fr.RuleErrors) > 0 {
		entry.RuleErrors = make(map[string]string, len(fr.RuleErrors))
		for id, ruleErr := range fr.RuleErrors {
			entry.RuleErrors[id] = ruleErr.Error()
		}
	}

	for _, diag := range fr.Diagnostics {
		entry.Diagnostics = append(entry.Diagnostics, JSONDiagnostic{
			Code:     diag.Code,
			RuleID:   diag.RuleID,
			Severity: cmp.Or(string(diag.Severity), string(config.SeverityWarning)),
			Message:  diag.Message,
			Line:     diag.Line,
			Column:   diag.Column,
		})
	}
	for _, f := range fr.Findings {
		entry.TemplateFindings = append(entry.TemplateFindings, JSONFinding{ID: f.ID, Message: f.Message, Guidance: f.Guidance})
	}
}
