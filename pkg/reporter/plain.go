package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/pystyle/pkg/runner"
)

// SuccessNotice is printed by the plain reporter for a file without issues.
const SuccessNotice = "Check completed. Congratulations, %s is clean!"

// PlainReporter writes one "path:row:col: CODE message" line per diagnostic,
// the classic checker format that editors and CI log parsers understand.
type PlainReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewPlainReporter creates a new plain reporter.
func NewPlainReporter(opts Options) *PlainReporter {
	return &PlainReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *PlainReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			// Keep stdout and stderr ordered when they share a terminal.
			if err := r.bw.Flush(); err != nil {
				return 0, err
			}
			fmt.Fprintf(r.opts.ErrorWriter, "%s: error: %v\n", path, file.Error)
			continue
		}

		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		fr := file.Result.FileResult

		for _, diag := range fr.Diagnostics {
			fmt.Fprintf(r.bw, "%s:%d:%d: %s %s\n", path, diag.Line, diag.Column, diag.Code, diag.Message)
		}

		for _, finding := range fr.Findings {
			fmt.Fprintf(r.bw, "%s: %s: %s\n", path, finding.ID, finding.Message)
			r.bw.WriteString(finding.Guidance)
			if !strings.HasSuffix(finding.Guidance, "\n") {
				r.bw.WriteString("\n")
			}
		}

		if !fr.HasIssues() && !r.opts.Quiet {
			fmt.Fprintf(r.bw, SuccessNotice+"\n", path)
		}
	}

	if r.opts.Statistics {
		writeStatistics(r.bw, result.Stats)
	}

	return result.Stats.DiagnosticsTotal, nil
}

// writeStatistics prints "count CODE first-message" lines sorted by code.
func writeStatistics(w *bufio.Writer, stats runner.Stats) {
	result := runner.Result{Stats: stats}
	for _, code := range result.Codes() {
		fmt.Fprintf(w, "%-7d %s %s\n", stats.CodeCounts[code], code, stats.FirstMessages[code])
	}
}
