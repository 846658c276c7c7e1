package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yaklabco/pystyle/pkg/config"
)

const envVarPrefix = "PYSTYLE_"

// EnvVar documents one PYSTYLE_* override.
type EnvVar struct {
	Name        string
	Description string

	set func(cfg *config.Config, value string) error
}

// envVars is sorted by name so the first reported error is stable.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []EnvVar{
	{Name: "CACHE", Description: "use the result cache (true or false)", set: envBool(func(c *config.Config) **bool { return &c.Cache })},
	{Name: "END_MARKER", Description: "required text of the last line", set: envString(func(c *config.Config) *string { return &c.EndMarker })},
	{Name: "EXTENSIONS", Description: "comma-separated Python file extensions", set: envList(func(c *config.Config) *[]string { return &c.Extensions })},
	{Name: "FORMAT", Description: "output format", set: func(c *config.Config, v string) error {
		c.Format = config.OutputFormat(v)
		return nil
	}},
	{Name: "IGNORE", Description: "comma-separated path patterns to skip", set: envList(func(c *config.Config) *[]string { return &c.Ignore })},
	{Name: "IGNORE_CODES", Description: "comma-separated code prefixes to drop", set: envList(func(c *config.Config) *[]string { return &c.IgnoreCodes })},
	{Name: "INDENT_SIZE", Description: "expected indentation step", set: envInt(func(c *config.Config) *int { return &c.IndentSize })},
	{Name: "JOBS", Description: "parallel workers (0 = one per CPU)", set: envInt(func(c *config.Config) *int { return &c.Jobs })},
	{Name: "MAX_DOC_LENGTH", Description: "longest comment or docstring line", set: envInt(func(c *config.Config) *int { return &c.MaxDocLength })},
	{Name: "MAX_LINE_LENGTH", Description: "longest physical line", set: envInt(func(c *config.Config) *int { return &c.MaxLineLength })},
	{Name: "REPEAT", Description: "print every occurrence of a code (true or false)", set: envBool(func(c *config.Config) **bool { return &c.Repeat })},
	{Name: "SELECT", Description: "comma-separated code prefixes to report", set: envList(func(c *config.Config) *[]string { return &c.Select })},
	{Name: "SUMMARY_ORDER", Description: "first summary table: rules or files", set: func(c *config.Config, v string) error {
		c.SummaryOrder = config.SummaryOrder(v)
		return nil
	}},
	{Name: "TEMPLATES", Description: "run the header template checks (true or false)", set: envBool(func(c *config.Config) **bool { return &c.Templates })},
}

// EnvVars lists the supported environment overrides with full names.
func EnvVars() []EnvVar {
	out := make([]EnvVar, len(envVars))
	for i, v := range envVars {
		out[i] = EnvVar{Name: envVarPrefix + v.Name, Description: v.Description}
	}
	return out
}

func envString(field func(*config.Config) *string) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		*field(c) = v
		return nil
	}
}

func envInt(field func(*config.Config) *int) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%q is not an integer", v)
		}
		*field(c) = n
		return nil
	}
}

func envBool(field func(*config.Config) **bool) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%q is not a boolean (use true, false, 1 or 0)", v)
		}
		*field(c) = config.Bool(b)
		return nil
	}
}

func envList(field func(*config.Config) *[]string) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		*field(c) = parseSliceValue(v)
		return nil
	}
}

// LookupFunc resolves an environment variable by name.
type LookupFunc func(key string) (string, bool)

// LoadFromEnv applies PYSTYLE_* overrides from the process environment.
func LoadFromEnv(cfg *config.Config) error {
	return applyEnv(cfg, os.LookupEnv)
}

// LoadFromEnvFile is LoadFromEnv with path as a fallback source. Process
// variables win over the file, and the file never changes the process
// environment.
func LoadFromEnvFile(cfg *config.Config, path string) error {
	if path == "" {
		return LoadFromEnv(cfg)
	}

	fileVars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return applyEnv(cfg, chainLookup(os.LookupEnv, mapLookup(fileVars)))
}

func mapLookup(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

// chainLookup asks each lookup in turn; empty values fall through.
func chainLookup(lookups ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, lookup := range lookups {
			if v, ok := lookup(key); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}
}

func applyEnv(cfg *config.Config, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}

	for _, v := range envVars {
		name := envVarPrefix + v.Name
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := v.set(cfg, value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

// parseSliceValue splits a comma-separated list, dropping blank items.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}
