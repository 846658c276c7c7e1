// Package pretty renders styled terminal output with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultTermWidth is used when the writer is not a terminal.
const DefaultTermWidth = 100

// ANSI palette indexes. E-class codes render red and W-class yellow so a
// report reads the same way pycodestyle's severity split does.
const (
	colorRed     = lipgloss.Color("9")
	colorGreen   = lipgloss.Color("10")
	colorYellow  = lipgloss.Color("11")
	colorBlue    = lipgloss.Color("12")
	colorMagenta = lipgloss.Color("13")
	colorCyan    = lipgloss.Color("14")
	colorGrey    = lipgloss.Color("7")
	colorDark    = lipgloss.Color("8")
)

// Styles holds the renderers shared by diagnostics, summaries and help.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Code       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Guidance styles template findings and flag names in help.
	Guidance lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns the colored palette, or plain styles when color is off.
func NewStyles(colorEnabled bool) *Styles {
	// fg and bold collapse to the plain style without color, so one
	// table describes both variants.
	fg := func(c lipgloss.Color) lipgloss.Style {
		if !colorEnabled {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(c)
	}
	bold := func(s lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return s
		}
		return s.Bold(true)
	}
	plain := lipgloss.NewStyle()

	return &Styles{
		Error:   bold(fg(colorRed)),
		Warning: bold(fg(colorYellow)),
		Info:    bold(fg(colorBlue)),

		FilePath:   bold(plain),
		Location:   fg(colorDark),
		Code:       fg(colorMagenta),
		Message:    plain,
		SourceLine: fg(colorGrey),
		Caret:      fg(colorRed),

		Guidance: fg(colorCyan),

		SummaryTitle: bold(plain),
		SummaryValue: plain,
		Success:      bold(fg(colorGreen)),
		Failure:      bold(fg(colorRed)),

		TableHeader:    bold(fg(colorGrey)),
		TableErrorRow:  fg(colorRed),
		TableWarnRow:   fg(colorYellow),
		TableSeparator: fg(colorDark),

		Dim:  fg(colorDark),
		Bold: bold(plain),
	}
}

// IsColorEnabled resolves a --color mode against the writer. "always" and
// "never" are absolute; anything else means auto, which requires a
// terminal and an unset NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TerminalWidth reports the column count behind writer, falling back to
// DefaultTermWidth for pipes, files and buffers.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(interface{ Fd() uintptr })
	if !ok {
		return DefaultTermWidth
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return DefaultTermWidth
}
