package lint

import (
	"slices"

	"github.com/yaklabco/pystyle/pkg/config"
)

// ResolvedRule is a registered rule with its configuration applied.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity
	Options  RuleOptions
}

// ResolveRules returns the rules that will run for cfg, sorted by ID.
// A rule is dropped when it is disabled or when select/ignore filters out
// every code it can emit. Rules that declare no codes never run.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule
	for _, rule := range registry.Rules() {
		if len(rule.Codes()) == 0 {
			continue
		}
		if rr := resolveRule(rule, cfg); rr.Enabled {
			resolved = append(resolved, rr)
		}
	}
	return resolved
}

// resolveRule layers the rule's defaults, its rules table entry, then
// --enable and --disable. The command line wins, and --disable wins over
// --enable when both name the rule.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
	}
	if cfg == nil {
		return rr
	}

	id := rule.ID()

	if entry, ok := cfg.Rules[id]; ok {
		rr.Options = RuleOptions(entry.Options)
		if entry.Enabled != nil {
			rr.Enabled = *entry.Enabled
		}
		if entry.Severity != nil {
			rr.Severity = config.Severity(*entry.Severity)
		}
	}

	switch {
	case slices.Contains(cfg.DisableRules, id):
		rr.Enabled = false
	case slices.Contains(cfg.EnableRules, id):
		rr.Enabled = true
	}

	if rr.Enabled {
		rr.Enabled = slices.ContainsFunc(rule.Codes(), cfg.CodeSelected)
	}

	return rr
}
