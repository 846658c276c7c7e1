package rules

import "github.com/yaklabco/pystyle/pkg/config"

// Pack describes a named group of settings and rule defaults for a
// particular style guide. Packs are configuration fragments that can be
// used as starting points for .pystyle.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "nedc", "pep8").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// MaxLineLength overrides the line length limit when non-zero.
	MaxLineLength int

	// MaxDocLength overrides the doc line length limit when non-zero.
	MaxDocLength int

	// BlankLines overrides the blank line counts when non-zero.
	BlankLines config.BlankLines

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// Apply copies the pack into cfg. Rule entries already present in cfg are
// replaced.
func (p Pack) Apply(cfg *config.Config) {
	if p.MaxLineLength > 0 {
		cfg.MaxLineLength = p.MaxLineLength
	}
	if p.MaxDocLength > 0 {
		cfg.MaxDocLength = p.MaxDocLength
	}
	if p.BlankLines.TopLevel > 0 {
		cfg.BlankLines.TopLevel = p.BlankLines.TopLevel
	}
	if p.BlankLines.Method > 0 {
		cfg.BlankLines.Method = p.BlankLines.Method
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig, len(p.Rules))
	}
	for id, rc := range p.Rules {
		cfg.Rules[id] = rc
	}
}

// NEDCPack returns the house style: 80 column lines, single blank lines
// between definitions and the end of file marker.
func NEDCPack() Pack {
	return Pack{
		Name:        "nedc",
		Description: "House style: 80 columns, one blank line between definitions, end of file marker",
		Rules: map[string]config.RuleConfig{
			"blank-lines":         enabled("error"),
			"end-of-file-marker":  enabled("warning"),
			"maximum-line-length": enabled("error"),
			"maximum-doc-length":  enabled("warning"),
		},
	}
}

// PEP8Pack returns settings close to the PEP 8 defaults: 79 column lines,
// 72 column doc lines, two blank lines around top-level definitions and no
// end of file marker.
func PEP8Pack() Pack {
	return Pack{
		Name:          "pep8",
		Description:   "PEP 8 layout: 79 columns, two blank lines around top-level definitions, no end marker",
		MaxLineLength: 79,
		MaxDocLength:  72,
		BlankLines:    config.BlankLines{TopLevel: 2, Method: 1},
		Rules: map[string]config.RuleConfig{
			"blank-lines":         enabled("error"),
			"end-of-file-marker":  disabled(),
			"indentation":         enabled("error"),
			"maximum-line-length": enabled("error"),
			"maximum-doc-length":  enabled("warning"),
		},
	}
}

// RelaxedPack returns a relaxed pack with minimal noise, suitable for
// legacy code: layout rules only warn and comment style is not checked.
func RelaxedPack() Pack {
	return Pack{
		Name:          "relaxed",
		Description:   "Relaxed pack: 100 columns, layout rules as warnings, no comment style checks",
		MaxLineLength: 100,
		MaxDocLength:  100,
		Rules: map[string]config.RuleConfig{
			"blank-lines":               enabled("warning"),
			"end-of-file-marker":        disabled(),
			"maximum-line-length":       enabled("warning"),
			"maximum-doc-length":        disabled(),
			"whitespace-before-comment": disabled(),
			"whitespace-around-comma":   disabled(),
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		NEDCPack(),
		PEP8Pack(),
		RelaxedPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// enabled creates a RuleConfig with the rule enabled and the given severity.
func enabled(sev string) config.RuleConfig {
	on := true
	return config.RuleConfig{
		Enabled:  &on,
		Severity: &sev,
	}
}

// disabled creates a RuleConfig that turns the rule off.
func disabled() config.RuleConfig {
	off := false
	return config.RuleConfig{Enabled: &off}
}
