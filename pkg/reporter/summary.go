package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/pystyle/internal/ui/pretty"
	"github.com/yaklabco/pystyle/pkg/analysis"
	"github.com/yaklabco/pystyle/pkg/config"
)

// Column limits for the summary tables.
const (
	ruleColWidth    = 36
	fileColWidth    = 60
	messageColWidth = 60
)

// SummaryRenderer prints the per-code and per-file tables followed by a
// totals line.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if !report.Totals.HasIssues() {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	sections := []func(){
		func() { r.codeTable(report.ByCode) },
		func() { r.fileTable(report.ByFile) },
	}
	if r.opts.SummaryOrder == config.SummaryOrderFiles {
		sections[0], sections[1] = sections[1], sections[0]
	}
	for _, section := range sections {
		section()
	}

	r.totals(report.Totals)
	return nil
}

func (r *SummaryRenderer) codeTable(codes []analysis.CodeAnalysis) {
	if len(codes) == 0 {
		return
	}

	table := pretty.NewTable(r.styles,
		pretty.Column{Title: "Code"},
		pretty.Column{Title: "Rule", Max: ruleColWidth},
		pretty.Column{Title: "Count", Align: pretty.AlignRight},
		pretty.Column{Title: "First message", Max: messageColWidth},
	)
	for _, c := range codes {
		table.Add(pretty.Row{
			Cells: []string{
				config.FormatRuleID(r.opts.RuleFormat, c.Code, c.RuleID),
				c.RuleID,
				strconv.Itoa(c.Count),
				c.FirstMessage,
			},
			Style: r.rowStyle(c.Severity == string(config.SeverityError), c.Severity == string(config.SeverityWarning)),
		})
	}

	r.section("Codes Summary", table)
}

func (r *SummaryRenderer) fileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	table := pretty.NewTable(r.styles,
		pretty.Column{Title: "File", Max: fileColWidth, KeepTail: true},
		pretty.Column{Title: "Count", Align: pretty.AlignRight},
		pretty.Column{Title: "Errors", Align: pretty.AlignRight},
		pretty.Column{Title: "Warnings", Align: pretty.AlignRight},
	)
	for _, f := range files {
		table.Add(pretty.Row{
			Cells: []string{f.Path, strconv.Itoa(f.Issues), strconv.Itoa(f.Errors), strconv.Itoa(f.Warnings)},
			Style: r.rowStyle(f.Errors > 0, f.Warnings > 0),
		})
	}

	r.section("Files Summary", table)
}

func (r *SummaryRenderer) section(title string, table *pretty.Table) {
	fmt.Fprintln(r.out, r.styles.Bold.Render(title))
	fmt.Fprintln(r.out, table.Render())
}

func (r *SummaryRenderer) rowStyle(hasErrors, hasWarnings bool) *lipgloss.Style {
	switch {
	case hasErrors:
		return &r.styles.TableErrorRow
	case hasWarnings:
		return &r.styles.TableWarnRow
	}
	return nil
}

// totals prints e.g. "Total: 3 issues (2 errors, 1 warning) in 2 files".
func (r *SummaryRenderer) totals(t analysis.Totals) {
	var b strings.Builder
	b.WriteString(r.styles.Bold.Render("Total: "))
	b.WriteString(plural(t.Issues, "issue"))

	var bySeverity []string
	if t.Errors > 0 {
		bySeverity = append(bySeverity, r.styles.Error.Render(plural(t.Errors, "error")))
	}
	if t.Warnings > 0 {
		bySeverity = append(bySeverity, r.styles.Warning.Render(plural(t.Warnings, "warning")))
	}
	if len(bySeverity) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(bySeverity, ", "))
	}

	fmt.Fprintf(&b, " in %s", plural(t.FilesWithIssues, "file"))
	if t.TemplateFindings > 0 {
		fmt.Fprintf(&b, ", %s", plural(t.TemplateFindings, "template finding"))
	}

	fmt.Fprintln(r.out, b.String())
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
