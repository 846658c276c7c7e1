package reporter

import (
	"bufio"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/pystyle/internal/ui/pretty"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/runner"
)

// TextReporter groups diagnostics under a styled header per file. Clean
// files are not shown.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a text reporter. Color follows opts.Color.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		r.writeFile(file)
	}

	if r.opts.Statistics {
		r.writeStatistics(result.Stats)
	}

	if r.opts.ShowSummary {
		if r.opts.Statistics {
			fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
	}

	return result.Stats.DiagnosticsTotal, nil
}

func (r *TextReporter) writeFile(file runner.FileOutcome) {
	path := displayPath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Error.Render("error: "+file.Error.Error()))
		return
	}
	if file.Result == nil || file.Result.FileResult == nil || !file.Result.HasIssues() {
		return
	}

	fr := file.Result.FileResult
	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, fr.IssueCount()))

	for i := range fr.Diagnostics {
		diag := &fr.Diagnostics[i]
		source := ""
		if r.opts.ShowContext {
			source = lineAt(fr, diag.Line)
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(diag, source, r.opts.RuleFormat))
	}
	for _, finding := range fr.Findings {
		fmt.Fprint(r.bw, r.styles.FormatFinding(finding))
	}

	fmt.Fprintln(r.bw)
}

func (r *TextReporter) writeStatistics(stats runner.Stats) {
	if len(stats.CodeCounts) == 0 {
		return
	}

	table := pretty.NewTable(r.styles,
		pretty.Column{Title: "Count", Align: pretty.AlignRight},
		pretty.Column{Title: "Code"},
		pretty.Column{Title: "First message", Max: messageColWidth},
	)
	for _, code := range slices.Sorted(maps.Keys(stats.CodeCounts)) {
		table.Add(pretty.Row{Cells: []string{fmt.Sprint(stats.CodeCounts[code]), code, stats.FirstMessages[code]}})
	}

	fmt.Fprintln(r.bw, table.Render())
}

// lineAt returns source line n (1-based), or "" when out of range.
func lineAt(fr *lint.FileResult, n int) string {
	if n < 1 || n > len(fr.Lines) {
		return ""
	}
	return fr.Lines[n-1]
}
