// Package config defines core configuration types for pystyle.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

import (
	"slices"
	"strings"
)

// Default thresholds used when a configuration leaves a value unset.
const (
	DefaultMaxLineLength = 80
	DefaultMaxDocLength  = 80
	DefaultIndentSize    = 4
	DefaultTopLevelBlank = 1
	DefaultMethodBlank   = 1
	DefaultEndMarker     = "# end of file"
)

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty" toml:"enabled"`
	Severity *string        `yaml:"severity,omitempty" toml:"severity"`
	Options  map[string]any `yaml:"options,omitempty" toml:"options"`
}

// BlankLines holds the expected number of blank lines around definitions.
type BlankLines struct {
	TopLevel int `yaml:"top_level,omitempty" toml:"top_level"`
	Method   int `yaml:"method,omitempty" toml:"method"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatPlain   OutputFormat = "plain"
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// OutputFormats returns every output format, plain first.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatPlain, FormatText, FormatJSON, FormatSARIF, FormatSummary}
}

// IsValid reports whether f names a known output format.
func (f OutputFormat) IsValid() bool {
	return slices.Contains(OutputFormats(), f)
}

// RuleFormat controls how rule identifiers appear in styled output.
type RuleFormat string

const (
	RuleFormatCode     RuleFormat = "code"     // "E302"
	RuleFormatRule     RuleFormat = "rule"     // "blank-lines"
	RuleFormatCombined RuleFormat = "combined" // "E302/blank-lines"
)

// IsValid reports whether f is one of the rule identifier formats.
func (f RuleFormat) IsValid() bool {
	return f == RuleFormatCode || f == RuleFormatRule || f == RuleFormatCombined
}

// SummaryOrder controls the order of tables in summary output.
type SummaryOrder string

const (
	// SummaryOrderRules shows the codes table first (default).
	SummaryOrderRules SummaryOrder = "rules"
	// SummaryOrderFiles shows the files table first.
	SummaryOrderFiles SummaryOrder = "files"
)

// IsValid returns true if the summary order is valid.
func (s SummaryOrder) IsValid() bool {
	switch s {
	case SummaryOrderRules, SummaryOrderFiles:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for pystyle.
type Config struct {
	// MaxLineLength is the longest allowed physical line, in characters.
	MaxLineLength int `yaml:"max_line_length,omitempty" toml:"max_line_length"`

	// MaxDocLength is the longest allowed comment or docstring line.
	MaxDocLength int `yaml:"max_doc_length,omitempty" toml:"max_doc_length"`

	// IndentSize is the expected indentation step.
	IndentSize int `yaml:"indent_size,omitempty" toml:"indent_size"`

	// BlankLines configures the blank-line rule thresholds.
	BlankLines BlankLines `yaml:"blank_lines,omitempty" toml:"blank_lines"`

	// EndMarker is the text the last line of every file must carry.
	EndMarker string `yaml:"end_marker,omitempty" toml:"end_marker"`

	// Repeat prints every occurrence of a code rather than only the first.
	Repeat *bool `yaml:"repeat,omitempty" toml:"repeat"`

	// Cache enables the on-disk result cache.
	Cache *bool `yaml:"cache,omitempty" toml:"cache"`

	// Templates also runs the header template checks.
	Templates *bool `yaml:"templates,omitempty" toml:"templates"`

	// Select keeps only diagnostics whose code starts with one of these prefixes.
	Select []string `yaml:"select,omitempty" toml:"select"`

	// IgnoreCodes drops diagnostics whose code starts with one of these prefixes.
	IgnoreCodes []string `yaml:"ignore_codes,omitempty" toml:"ignore_codes"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore"`

	// Extensions lists the file extensions that are discovered as Python.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules,omitempty" toml:"rules"`

	// SummaryOrder controls which table the summary format prints first.
	SummaryOrder SummaryOrder `yaml:"summary_order,omitempty" toml:"summary_order"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in styled output.
	RuleFormat RuleFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-" toml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-" toml:"-"`

	// Statistics prints per-code counts after the run.
	Statistics bool `yaml:"-" toml:"-"`

	// Quiet suppresses the per-file success notice.
	Quiet bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		MaxLineLength: DefaultMaxLineLength,
		MaxDocLength:  DefaultMaxDocLength,
		IndentSize:    DefaultIndentSize,
		BlankLines: BlankLines{
			TopLevel: DefaultTopLevelBlank,
			Method:   DefaultMethodBlank,
		},
		EndMarker:  DefaultEndMarker,
		Rules:      make(map[string]RuleConfig),
		Extensions: []string{".py", ".pyi"},
		Format:     FormatPlain,
		RuleFormat: RuleFormatCode,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// Bool returns a pointer to v, for populating optional boolean fields.
func Bool(v bool) *bool {
	return &v
}

// String returns a pointer to v, for optional string fields.
func String(v string) *string {
	return &v
}

// RepeatEnabled reports whether every occurrence of a code is printed. Defaults to true.
func (c *Config) RepeatEnabled() bool {
	return c == nil || c.Repeat == nil || *c.Repeat
}

// CacheEnabled reports whether the result cache is used. Defaults to true.
func (c *Config) CacheEnabled() bool {
	return c == nil || c.Cache == nil || *c.Cache
}

// TemplatesEnabled reports whether template checks run. Defaults to false.
func (c *Config) TemplatesEnabled() bool {
	return c != nil && c.Templates != nil && *c.Templates
}

// CodeSelected reports whether diagnostics with the given code are kept.
// An ignore prefix wins unless a longer select prefix also matches.
func (c *Config) CodeSelected(code string) bool {
	if c == nil {
		return true
	}

	selectLen := longestPrefix(c.Select, code)
	if len(c.Select) > 0 && selectLen == 0 {
		return false
	}

	ignoreLen := longestPrefix(c.IgnoreCodes, code)

	return ignoreLen == 0 || selectLen > ignoreLen
}

func longestPrefix(prefixes []string, code string) int {
	best := 0
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(code, p) && len(p) > best {
			best = len(p)
		}
	}

	return best
}

// HasExtension reports whether ext is one of the configured Python extensions.
func (c *Config) HasExtension(ext string) bool {
	return slices.Contains(c.Extensions, ext)
}
