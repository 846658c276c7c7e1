// Package configloader finds, reads and merges pystyle configuration.
//
// Settings come from built-in defaults, an optional rule pack, system and
// user files under the XDG directories, a project file found by walking up
// from the working directory (.pystyle.yml or the [tool.pystyle] table of
// pyproject.toml), PYSTYLE_* environment variables and command-line flags.
// The merged result is validated against the rule catalog.
package configloader

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/yaklabco/pystyle/internal/logging"
	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/lint/rules"
)

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// WorkingDir anchors the project search; empty means os.Getwd.
	WorkingDir string

	// ExplicitPath comes from --config and replaces the project search.
	ExplicitPath string

	// Pack is a built-in rule pack laid over the defaults.
	Pack string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool

	// IgnoreEnv drops PYSTYLE_* variables and the .env file. IgnoreDotEnv
	// drops only the file.
	IgnoreEnv    bool
	IgnoreDotEnv bool

	// Registry resolves rule IDs and codes; nil means rules.Catalog().
	Registry *lint.Registry

	// CLIConfig holds the flag values. It is merged last.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration and where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	// Warnings are problems that did not stop loading.
	Warnings []string
}

// fileLayer is one configuration file in precedence order.
type fileLayer struct {
	name string
	path string
	skip bool
}

// Load merges every source into one validated Config. Later sources win:
//
//	defaults < pack < system < user < project or --config < environment < flags
//
// Rule keys given as codes are rewritten to rule IDs before validation.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)
	registry := cmp.Or(opts.Registry, rules.Catalog())

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	cfg := config.NewConfig()
	if opts.Pack != "" {
		pack := rules.PackByName(opts.Pack)
		if pack == nil {
			return nil, &ValidationError{
				Field:   "pack",
				Value:   opts.Pack,
				Message: fmt.Sprintf("unknown pack %q; must be one of: %v", opts.Pack, rules.PackNames()),
			}
		}
		pack.Apply(cfg)
		logger.Debug("applied rule pack", logging.FieldPack, pack.Name)
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	if opts.ExplicitPath != "" {
		paths.Explicit = opts.ExplicitPath
	}

	result := &LoadResult{Paths: paths}

	layers := []*config.Config{cfg}
	for _, layer := range []fileLayer{
		{name: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{name: "explicit", path: opts.ExplicitPath},
	} {
		if layer.skip || layer.path == "" {
			continue
		}

		layerCfg, err := LoadFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}

		layers = append(layers, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldConfig, layer.path, logging.FieldLayer, layer.name)
	}
	cfg = MergeAll(layers...)

	if !opts.IgnoreEnv {
		dotEnv := paths.DotEnv
		if opts.IgnoreDotEnv {
			dotEnv = ""
		}
		if err := LoadFromEnvFile(cfg, dotEnv); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = MergeAll(cfg, opts.CLIConfig)

	result.Warnings = canonicalizeRules(cfg, registry)
	cfg.EnableRules = canonicalIDs(cfg.EnableRules, registry)
	cfg.DisableRules = canonicalIDs(cfg.DisableRules, registry)

	validation := ValidateWithRegistry(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads one configuration file. pyproject.toml contributes its
// [tool.pystyle] table, other .toml files are read whole, and anything
// else is YAML.
func LoadFile(path string) (*config.Config, error) {
	if filepath.Base(path) == PyProjectFile {
		cfg, err := config.FromPyProject(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if IsTOMLConfig(path) {
		return config.FromTOML(content)
	}
	return config.FromYAML(content)
}

// canonicalizeRules rekeys cfg.Rules by rule ID so that "E501" and
// "maximum-line-length" address the same entry. Keys naming the same rule
// are merged in sorted key order, and each collision yields a warning.
// Unknown keys stay for validation to report.
func canonicalizeRules(cfg *config.Config, registry *lint.Registry) []string {
	if len(cfg.Rules) == 0 {
		return nil
	}

	var warnings []string
	byID := make(map[string]config.RuleConfig, len(cfg.Rules))
	keyFor := make(map[string]string)

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		rc := cfg.Rules[key]

		id, _, ok := registry.Resolve(key)
		if !ok {
			byID[key] = rc
			continue
		}

		if prev, dup := keyFor[id]; dup {
			warnings = append(warnings, fmt.Sprintf(
				"duplicate rule configuration: %q and %q both refer to %s; using %q", prev, key, id, key))
			rc = mergeRuleConfig(byID[id], rc)
		}

		keyFor[id] = key
		byID[id] = rc
	}

	cfg.Rules = byID
	return warnings
}

// canonicalIDs maps codes to rule IDs and drops repeats. Unknown keys are
// kept for validation to report.
func canonicalIDs(keys []string, registry *lint.Registry) []string {
	if keys == nil {
		return nil
	}

	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if id, _, ok := registry.Resolve(key); ok {
			key = id
		}
		if !slices.Contains(out, key) {
			out = append(out, key)
		}
	}
	return out
}
