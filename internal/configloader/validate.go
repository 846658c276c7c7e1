package configloader

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/lint/rules"
)

// ValidationError locates one problem in a configuration. It renders as
// "file: field: message", leaving out the parts that are unknown.
type ValidationError struct {
	// Field is the dotted key, e.g. "rules.blank-lines.severity".
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FilePath, e.Field} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult splits findings into errors, which stop loading, and
// warnings, which are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) Valid() bool       { return len(r.Errors) == 0 }
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages lists errors then warnings, each prefixed with its kind.
func (r *ValidationResult) AllMessages() []string {
	out := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		out = append(out, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		out = append(out, "warning: "+w.Error())
	}
	return out
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks cfg against the built-in rule catalog.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithRegistry(cfg, rules.Catalog())
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// ValidateWithRegistry checks cfg, resolving rule IDs and codes against
// registry. A nil registry skips the rule and code checks.
//
// Bad values are errors. Names that match no rule or code are warnings,
// since a configuration may be shared with a newer version.
func ValidateWithRegistry(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	checkNumbers(cfg, result)
	checkEnums(cfg, result)

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || filepath.Ext(ext) != ext {
			result.errorf(fmt.Sprintf("extensions[%d]", i), ext, "invalid extension %q; must look like \".py\"", ext)
		}
	}

	if registry != nil {
		checkRules(cfg, registry, result)
		codes := append(registry.Codes(), lint.InternalErrorCode)
		checkPrefixes("select", cfg.Select, codes, result)
		checkPrefixes("ignore_codes", cfg.IgnoreCodes, codes, result)
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			result.errorf(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

func checkNumbers(cfg *config.Config, result *ValidationResult) {
	for _, n := range []struct {
		field    string
		value    int
		min      int
		relation string
	}{
		{"max_line_length", cfg.MaxLineLength, 1, "must be > 0"},
		{"max_doc_length", cfg.MaxDocLength, 1, "must be > 0"},
		{"indent_size", cfg.IndentSize, 1, "must be > 0"},
		{"blank_lines.top_level", cfg.BlankLines.TopLevel, 0, "must be >= 0"},
		{"blank_lines.method", cfg.BlankLines.Method, 0, "must be >= 0"},
		{"jobs", cfg.Jobs, 0, "must be >= 0 (0 means auto)"},
	} {
		if n.value < n.min {
			result.errorf(n.field, n.value, "%s %s", n.field, n.relation)
		}
	}
}

func checkEnums(cfg *config.Config, result *ValidationResult) {
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.errorf("format", cfg.Format, "invalid format %q; must be one of: %v", cfg.Format, config.OutputFormats())
	}
	if cfg.RuleFormat != "" && !cfg.RuleFormat.IsValid() {
		result.errorf("rule_format", cfg.RuleFormat, "invalid rule format %q; must be one of: code, rule, combined", cfg.RuleFormat)
	}
	if cfg.SummaryOrder != "" && !cfg.SummaryOrder.IsValid() {
		result.errorf("summary_order", cfg.SummaryOrder, "invalid summary order %q; must be one of: rules, files", cfg.SummaryOrder)
	}
}

func checkRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	known := func(key string) bool {
		_, _, ok := registry.Resolve(key)
		return ok
	}

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		if !known(key) {
			result.warnf("rules."+key, key, "unknown rule %q; it will be ignored", key)
		}
		if sev := cfg.Rules[key].Severity; sev != nil && !config.Severity(*sev).IsValid() {
			result.errorf("rules."+key+".severity", *sev, "invalid severity %q; must be one of: error, warning, info", *sev)
		}
	}

	for _, list := range []struct {
		field string
		ids   []string
	}{{"enable", cfg.EnableRules}, {"disable", cfg.DisableRules}} {
		for _, id := range list.ids {
			if !known(id) {
				result.warnf(list.field, id, "unknown rule %q; it will be ignored", id)
			}
		}
	}
}

// checkPrefixes warns about select and ignore entries that no code can
// match.
func checkPrefixes(field string, prefixes, codes []string, result *ValidationResult) {
	for _, prefix := range prefixes {
		if !slices.ContainsFunc(codes, func(code string) bool { return strings.HasPrefix(code, prefix) }) {
			result.warnf(field, prefix, "code prefix %q matches no known code", prefix)
		}
	}
}
