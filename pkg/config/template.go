package config

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Formats accepted by GenerateTemplate.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// descriptionWidth is where rule descriptions wrap in the full template.
const descriptionWidth = 70

const templateHeader = `# pystyle configuration
# See: https://github.com/yaklabco/pystyle`

// TemplateOptions selects the starter configuration to generate.
type TemplateOptions struct {
	// Full adds a documented entry for every rule in Rules.
	Full bool

	// Format is TemplateYAML (the default) or TemplateTOML.
	Format string

	// Rules is supplied by the caller since config cannot import the rule
	// catalog.
	Rules []RuleInfo
}

// RuleInfo describes one rule for the full template.
type RuleInfo struct {
	ID          string
	Description string
	Codes       []string
	Enabled     bool
	Severity    Severity
	Tags        []string
}

// GenerateTemplate renders a starter configuration. The YAML form keeps
// its explanatory comments; the TOML form is a [tool.pystyle] table for
// pyproject.toml.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == TemplateTOML {
		return tomlTemplate(opts)
	}

	var b strings.Builder
	b.WriteString(templateHeader)
	if opts.Full {
		b.WriteString("\n#\n# Every rule is listed below with its default settings.")
	}
	b.WriteString("\n\n")
	b.WriteString(settingsTemplate)
	b.WriteString("\n# Per-rule settings, keyed by rule ID or code\n")

	if !opts.Full {
		b.WriteString(rulesExample)
		return []byte(b.String()), nil
	}

	b.WriteString("rules:\n")
	rules := slices.SortedFunc(slices.Values(opts.Rules), func(a, b RuleInfo) int { return cmp.Compare(a.ID, b.ID) })
	for _, rule := range rules {
		writeRuleEntry(&b, rule)
	}
	return []byte(b.String()), nil
}

const settingsTemplate = `# Longest allowed physical line
max_line_length: 80

# Longest allowed comment or docstring line
max_doc_length: 80

# Blank lines expected around top-level and nested definitions
blank_lines:
  top_level: 1
  method: 1

# Text the last line of every file must carry
end_marker: "# end of file"

# Print every occurrence of a code (false prints only the first)
# repeat: true

# Also run the header template checks
# templates: false

# Cache results between runs
# cache: true

# Keep or drop diagnostics by code prefix
# select: ["E", "W"]
# ignore_codes: ["E226"]

# Paths to skip, as glob patterns
# ignore:
#   - "build/**"
#   - ".venv/**"
`

const rulesExample = `# rules:
#   maximum-line-length:
#     enabled: true
#     severity: error
`

func writeRuleEntry(b *strings.Builder, rule RuleInfo) {
	b.WriteString("\n")
	for _, line := range wrapWords(rule.Description, descriptionWidth) {
		fmt.Fprintf(b, "  # %s\n", line)
	}
	if len(rule.Codes) > 0 {
		fmt.Fprintf(b, "  # Codes: %s\n", strings.Join(rule.Codes, ", "))
	}
	if len(rule.Tags) > 0 {
		fmt.Fprintf(b, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
	}
	fmt.Fprintf(b, "  %s:\n    enabled: %t\n    severity: %s\n", rule.ID, rule.Enabled, rule.Severity)
}

func tomlTemplate(opts TemplateOptions) ([]byte, error) {
	cfg := NewConfig()
	if opts.Full {
		for _, rule := range opts.Rules {
			cfg.Rules[rule.ID] = RuleConfig{Enabled: Bool(rule.Enabled), Severity: String(string(rule.Severity))}
		}
	}

	body, err := cfg.ToTOML()
	if err != nil {
		return nil, err
	}
	return append([]byte(templateHeader+"\n# Paste into pyproject.toml.\n\n"), body...), nil
}

// wrapWords splits text into lines of at most width bytes, breaking at
// spaces. A single word longer than width gets a line of its own.
func wrapWords(text string, width int) []string {
	var lines []string
	var line string
	for word := range strings.FieldsSeq(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
