package lint

import (
	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/pytoken"
)

// Settings are the configured thresholds shared by every rule.
type Settings struct {
	MaxLineLength int
	MaxDocLength  int
	IndentSize    int
	TopLevelBlank int
	MethodBlank   int
	EndMarker     string
}

// DefaultSettings returns the built-in thresholds.
func DefaultSettings() Settings {
	return Settings{
		MaxLineLength: config.DefaultMaxLineLength,
		MaxDocLength:  config.DefaultMaxDocLength,
		IndentSize:    config.DefaultIndentSize,
		TopLevelBlank: config.DefaultTopLevelBlank,
		MethodBlank:   config.DefaultMethodBlank,
		EndMarker:     config.DefaultEndMarker,
	}
}

// SettingsFromConfig extracts thresholds from cfg, keeping defaults for
// unset values.
func SettingsFromConfig(cfg *config.Config) Settings {
	s := DefaultSettings()
	if cfg == nil {
		return s
	}

	if cfg.MaxLineLength > 0 {
		s.MaxLineLength = cfg.MaxLineLength
	}
	if cfg.MaxDocLength > 0 {
		s.MaxDocLength = cfg.MaxDocLength
	}
	if cfg.IndentSize > 0 {
		s.IndentSize = cfg.IndentSize
	}
	if cfg.BlankLines.TopLevel > 0 {
		s.TopLevelBlank = cfg.BlankLines.TopLevel
	}
	if cfg.BlankLines.Method > 0 {
		s.MethodBlank = cfg.BlankLines.Method
	}
	if cfg.EndMarker != "" {
		s.EndMarker = cfg.EndMarker
	}

	return s
}

// PhysicalLine is the read-only view handed to physical rules.
type PhysicalLine struct {
	// Line is the raw line, terminator included when present.
	Line string

	// LineNumber is the 1-based row of Line.
	LineNumber int

	// TotalLines is the number of lines in the file.
	TotalLines int

	// Lines holds every line of the file.
	Lines []string

	// Multiline is set while the lines of a multi-line string are replayed.
	Multiline bool

	Settings Settings
	Options  RuleOptions
}

// LogicalLine is the view handed to logical rules: the normalized text of
// one statement plus the history the checker keeps between statements.
type LogicalLine struct {
	// Text is the normalized statement with strings muted and comments removed.
	Text string

	// Tokens are the raw tokens of the statement, comments and newlines included.
	Tokens []pytoken.Token

	// Mapping translates offsets in Text back to source positions.
	Mapping Mapping

	// Lines holds every line of the file.
	Lines []string

	// LineNumber is the row of the last physical line read.
	LineNumber int

	IndentChar          byte
	IndentLevel         int
	PreviousIndentLevel int

	// BlankLines counts blank lines directly before this statement;
	// BlankBefore also includes blank lines separated by comments.
	BlankLines  int
	BlankBefore int

	PreviousLogical           string
	PreviousUnindentedLogical string

	// State is private to the running rule and persists for the whole file.
	State map[string]any

	Settings Settings
	Options  RuleOptions
}

// RuleOptions holds rule-specific options from configuration.
type RuleOptions map[string]any

// Option returns a rule-specific option value, or the default if not set.
func (o RuleOptions) Option(key string, defaultValue any) any {
	if o == nil {
		return defaultValue
	}
	if v, ok := o[key]; ok {
		return v
	}
	return defaultValue
}

// Int returns an integer option, or the default.
func (o RuleOptions) Int(key string, defaultValue int) int {
	switch val := o.Option(key, defaultValue).(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// String returns a string option, or the default.
func (o RuleOptions) String(key string, defaultValue string) string {
	if s, ok := o.Option(key, defaultValue).(string); ok {
		return s
	}
	return defaultValue
}

// Bool returns a boolean option, or the default.
func (o RuleOptions) Bool(key string, defaultValue bool) bool {
	if b, ok := o.Option(key, defaultValue).(bool); ok {
		return b
	}
	return defaultValue
}

// StringSlice returns a string slice option, or the default.
func (o RuleOptions) StringSlice(key string, defaultValue []string) []string {
	v := o.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// Handle []any from YAML/TOML parsing
	if items, ok := v.([]any); ok {
		result := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
