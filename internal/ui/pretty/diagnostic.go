package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/template"
)

// sourceIndent aligns source context under the diagnostic line.
const sourceIndent = "    "

// FormatDiagnostic renders "  row:col  CODE  message" with the identifier
// colored by severity. A non-empty sourceLine follows with a caret under
// the column.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, sourceLine string, ruleFormat config.RuleFormat) string {
	id := config.FormatRuleID(ruleFormat, diag.Code, diag.RuleID)
	style, ok := s.severityStyle(diag.Severity)
	if !ok {
		style = s.Code
	}

	out := fmt.Sprintf("  %s  %s  %s\n",
		s.Location.Render(fmt.Sprintf("%d:%d", diag.Line, diag.Column)),
		style.Render(id),
		s.Message.Render(diag.Message),
	)
	if sourceLine != "" {
		out += s.FormatSourceContext(sourceLine, diag.Column)
	}
	return out
}

func (s *Styles) severityStyle(sev config.Severity) (lipgloss.Style, bool) {
	switch sev {
	case config.SeverityError:
		return s.Error, true
	case config.SeverityWarning:
		return s.Warning, true
	case config.SeverityInfo:
		return s.Info, true
	}
	return lipgloss.Style{}, false
}

// FormatSeverity renders a severity name in its color. Unknown names are
// returned as is.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	if style, ok := s.severityStyle(sev); ok {
		return style.Render(string(sev))
	}
	return string(sev)
}

// FormatSourceContext renders line with a caret under the 1-based
// character column, or without one when column is 0. The caret offset is
// a display width, so wide characters before the column count double.
func (s *Styles) FormatSourceContext(line string, column int) string {
	line = strings.ReplaceAll(strings.TrimRight(line, "\r\n"), "\t", " ")
	out := sourceIndent + s.SourceLine.Render(line) + "\n"
	if column <= 0 {
		return out
	}

	runes := []rune(line)
	before := string(runes[:min(column-1, len(runes))])
	return out + sourceIndent + strings.Repeat(" ", runewidth.StringWidth(before)) + s.Caret.Render("^") + "\n"
}

// FormatFileHeader renders the path with its issue count, if any.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		return header + s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		return header + s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatFinding renders a template finding and its guidance snippet.
func (s *Styles) FormatFinding(finding template.Finding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s  %s\n", s.Warning.Render(finding.ID), s.Message.Render(finding.Message))
	for line := range strings.Lines(finding.Guidance) {
		b.WriteString(sourceIndent + s.Guidance.Render(strings.TrimRight(line, "\n")) + "\n")
	}
	return b.String()
}
