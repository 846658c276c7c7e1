package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/pystyle/pkg/runner"
)

const (
	summaryDividerWidth = 40
	summaryLabelWidth   = 19
)

// count renders n followed by the singular or plural noun.
func count(n int, singular, many string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + many
}

// FormatSummaryOneLine condenses stats into one line, for example
// "12 issues (8 errors, 4 warnings) in 3 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 && stats.TemplateFindings == 0 {
		checked := fmt.Sprintf(" (%s checked)", count(stats.FilesProcessed, "file", "files"))
		return s.Success.Render("No issues found") + s.Dim.Render(checked) + "\n"
	}

	head := count(stats.DiagnosticsTotal, "issue", "issues")

	var bySeverity []string
	if n := stats.DiagnosticsBySeverity["error"]; n > 0 {
		bySeverity = append(bySeverity, s.Error.Render(count(n, "error", "errors")))
	}
	if n := stats.DiagnosticsBySeverity["warning"]; n > 0 {
		bySeverity = append(bySeverity, s.Warning.Render(count(n, "warning", "warnings")))
	}
	if len(bySeverity) > 0 {
		head += " (" + strings.Join(bySeverity, ", ") + ")"
	}
	head += " in " + count(stats.FilesWithIssues, "file", "files")

	parts := []string{head}
	if stats.TemplateFindings > 0 {
		parts = append(parts, s.Warning.Render(count(stats.TemplateFindings, "template finding", "template findings")))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(count(stats.FilesErrored, "file", "files")+" failed"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// summaryRow is one "label: value" line of the block summary. Zero
// values are skipped unless always is set.
type summaryRow struct {
	nested bool
	label  string
	value  int
	style  lipgloss.Style
	always bool
}

// FormatSummary renders stats as an aligned block ending in a verdict.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	errors := stats.DiagnosticsBySeverity["error"]
	warnings := stats.DiagnosticsBySeverity["warning"]

	groups := [][]summaryRow{
		{
			{label: "Files checked", value: stats.FilesProcessed, style: s.SummaryValue, always: true},
			{label: "From cache", value: stats.FilesCached, style: s.Dim},
			{label: "Files with issues", value: stats.FilesWithIssues, style: s.Failure},
			{label: "Files failed", value: stats.FilesErrored, style: s.Failure},
		},
		{
			{label: "Total issues", value: stats.DiagnosticsTotal, style: s.SummaryValue, always: true},
			{nested: true, label: "Errors", value: errors, style: s.Error},
			{nested: true, label: "Warnings", value: warnings, style: s.Warning},
			{label: "Template findings", value: stats.TemplateFindings, style: s.Warning},
		},
	}

	var b strings.Builder
	b.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	for _, group := range groups {
		for _, row := range group {
			if row.value == 0 && !row.always {
				continue
			}
			indent, width := "  ", summaryLabelWidth
			if row.nested {
				indent, width = "    ", summaryLabelWidth-2
			}
			b.WriteString(indent + runewidth.FillRight(row.label+":", width) +
				row.style.Render(strconv.Itoa(row.value)) + "\n")
		}
		b.WriteString("\n")
	}

	switch {
	case errors > 0:
		b.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.DiagnosticsTotal > 0 || stats.TemplateFindings > 0:
		b.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		b.WriteString(s.Success.Render("Check passed"))
	}
	b.WriteString("\n")

	return b.String()
}
