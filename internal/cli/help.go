package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/pystyle/internal/configloader"
	"github.com/yaklabco/pystyle/internal/ui/pretty"
)

// Help annotations. A command carrying one gets the matching section.
const (
	annotationExitStatus  = "pystyle/exit-status"
	annotationEnvironment = "pystyle/environment"
)

// exitStatusRows documents the exit codes in the order they are checked.
var exitStatusRows = []struct {
	code int
	desc string
}{
	{ExitSuccess, "no issues"},
	{ExitIssues, "diagnostics or template findings reported"},
	{ExitUsage, "invalid flags or arguments"},
	{ExitDataError, "invalid configuration"},
	{ExitNoInput, "a path does not exist"},
	{ExitInternalError, "internal error"},
	{ExitIOError, "a file could not be read or decoded"},
	{ExitInterrupted, "interrupted"},
}

// HelpStyles maps help elements onto the shared output palette.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles derives help styles from the diagnostic styles so that
// help and check output use one palette.
func NewHelpStyles(styles *pretty.Styles) *HelpStyles {
	return &HelpStyles{
		Command:     styles.Bold,
		Heading:     styles.SummaryTitle,
		Subcommand:  styles.Code,
		Flag:        styles.Guidance,
		Description: styles.Message,
		Dim:         styles.Dim,
	}
}

// HelpFormatter renders styled help for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
	width  int
	usage  *template.Template
	help   *template.Template
}

// NewHelpFormatter creates a help formatter for the given color mode.
// Flag descriptions wrap to the width of the terminal behind writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	h := &HelpFormatter{
		styles: NewHelpStyles(pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))),
		width:  pretty.TerminalWidth(writer),
	}

	funcs := template.FuncMap{
		"styleCommand":     h.styles.Command.Render,
		"styleHeading":     h.styles.Heading.Render,
		"styleSubcommand":  h.styles.Subcommand.Render,
		"styleDescription": h.styles.Description.Render,
		"styleDim":         h.styles.Dim.Render,
		"styleFlagsUsage":  h.styleFlagsUsage,
		"exitStatus":       h.exitStatus,
		"environment":      h.environment,
		"rpad":             rpad,
		"join":             strings.Join,
		"trimTrailing":     trimTrailingWhitespaces,
	}

	h.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	h.help = template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate + usageTemplate))

	return h
}

const usageTemplate = `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleDim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}

{{- with environment .}}

{{ styleHeading "Environment:" }}
{{ . }}
{{- end}}

{{- with exitStatus .}}

{{ styleHeading "Exit Status:" }}
{{ . }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailing }}

{{end}}`

// ApplyToCommand installs the styled help on cmd. Subcommands inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := h.usage.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// styleFlagsUsage renders a flag set wrapped to the terminal width, with
// flag names and type hints styled.
func (h *HelpFormatter) styleFlagsUsage(flags *pflag.FlagSet) string {
	usages := strings.TrimSuffix(flags.FlagUsagesWrapped(h.width), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}

	return strings.Join(lines, "\n")
}

// styleFlagLine styles one "  -q, --quiet   description" line. Wrapped
// continuation lines have no flag part and pass through.
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if !strings.HasPrefix(trimmed, "-") {
		return line
	}

	flagPart, desc, ok := splitFlagLine(trimmed)
	if !ok {
		return line
	}

	var b strings.Builder
	b.WriteString(line[:len(line)-len(trimmed)])

	for i, field := range strings.Fields(flagPart) {
		if i > 0 {
			b.WriteByte(' ')
		}
		if name, comma := strings.CutSuffix(field, ","); strings.HasPrefix(field, "-") {
			b.WriteString(h.styles.Flag.Render(name))
			if comma {
				b.WriteByte(',')
			}
		} else {
			b.WriteString(h.styles.Dim.Render(field))
		}
	}

	// Keep pflag's column alignment.
	b.WriteString(strings.Repeat(" ", len(trimmed)-len(flagPart)-len(desc)))
	b.WriteString(h.styles.Description.Render(desc))

	return b.String()
}

// splitFlagLine splits at the first run of two or more spaces.
func splitFlagLine(line string) (string, string, bool) {
	idx := strings.Index(line, "  ")
	if idx < 0 {
		return "", "", false
	}

	desc := strings.TrimLeft(line[idx:], " ")
	if desc == "" {
		return "", "", false
	}

	return line[:idx], desc, true
}

// exitStatus lists the exit codes for annotated commands.
func (h *HelpFormatter) exitStatus(cmd *cobra.Command) string {
	if _, ok := cmd.Annotations[annotationExitStatus]; !ok {
		return ""
	}

	var b strings.Builder
	for i, row := range exitStatusRows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "  %s  %s", h.styles.Subcommand.Render(rpad(fmt.Sprint(row.code), 3)), row.desc)
	}

	return b.String()
}

// environment lists the PYSTYLE_* overrides for annotated commands.
func (h *HelpFormatter) environment(cmd *cobra.Command) string {
	if _, ok := cmd.Annotations[annotationEnvironment]; !ok {
		return ""
	}

	vars := configloader.EnvVars()
	width := 0
	for _, v := range vars {
		width = max(width, runewidth.StringWidth(v.Name))
	}

	lines := make([]string, len(vars))
	for i, v := range vars {
		lines[i] = "  " + h.styles.Flag.Render(rpad(v.Name, width)) + "  " + v.Description
	}
	return strings.Join(lines, "\n")
}

// rpad pads str on the right to the given display width.
func rpad(str string, padding int) string {
	return runewidth.FillRight(str, padding)
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
