package configloader

import (
	"maps"

	"github.com/yaklabco/pystyle/pkg/config"
)

// MergeAll folds layers left to right; later layers win. Nil layers are
// skipped.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}

// merge overlays override on base. A field in override only counts when
// it is set: scalars when non-zero, optional booleans and slices when
// non-nil. An empty but non-nil slice therefore clears a list. Rule
// tables merge per rule and per option.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	out := *base

	overlay(&out.MaxLineLength, override.MaxLineLength)
	overlay(&out.MaxDocLength, override.MaxDocLength)
	overlay(&out.IndentSize, override.IndentSize)
	overlay(&out.BlankLines.TopLevel, override.BlankLines.TopLevel)
	overlay(&out.BlankLines.Method, override.BlankLines.Method)
	overlay(&out.EndMarker, override.EndMarker)
	overlay(&out.Format, override.Format)
	overlay(&out.RuleFormat, override.RuleFormat)
	overlay(&out.SummaryOrder, override.SummaryOrder)
	overlay(&out.Jobs, override.Jobs)

	// Command-line switches only ever turn these on.
	overlay(&out.Statistics, override.Statistics)
	overlay(&out.Quiet, override.Quiet)

	overlayPtr(&out.Repeat, override.Repeat)
	overlayPtr(&out.Cache, override.Cache)
	overlayPtr(&out.Templates, override.Templates)

	overlayList(&out.Select, override.Select)
	overlayList(&out.IgnoreCodes, override.IgnoreCodes)
	overlayList(&out.Ignore, override.Ignore)
	overlayList(&out.Extensions, override.Extensions)
	overlayList(&out.EnableRules, override.EnableRules)
	overlayList(&out.DisableRules, override.DisableRules)

	out.Rules = mergeRules(base.Rules, override.Rules)

	return &out
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func overlayPtr[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

func overlayList[T any](dst *[]T, v []T) {
	if v != nil {
		*dst = v
	}
}

func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]config.RuleConfig, len(override))
	}

	for id, rc := range override {
		out[id] = mergeRuleConfig(out[id], rc)
	}

	return out
}

// mergeRuleConfig overlays one rule entry. Options merge key by key.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	out := base
	overlayPtr(&out.Enabled, override.Enabled)
	overlayPtr(&out.Severity, override.Severity)

	if override.Options != nil {
		out.Options = make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(out.Options, base.Options)
		maps.Copy(out.Options, override.Options)
	}
	return out
}
