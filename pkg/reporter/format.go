package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/pystyle/pkg/config"
)

// Format selects a reporter. It shares its values with the config key so
// a format read from a file needs no translation.
type Format = config.OutputFormat

// Output formats.
const (
	FormatPlain   = config.FormatPlain
	FormatText    = config.FormatText
	FormatJSON    = config.FormatJSON
	FormatSARIF   = config.FormatSARIF
	FormatSummary = config.FormatSummary
)

// ParseFormat resolves a --format value. The empty string selects plain,
// the pycodestyle-compatible line format.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatPlain, nil
	}

	format := Format(strings.ToLower(name))
	if !format.IsValid() {
		names := make([]string, 0, len(config.OutputFormats()))
		for _, f := range config.OutputFormats() {
			names = append(names, string(f))
		}
		return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(names, ", "))
	}

	return format, nil
}
