// Package cli wires the pystyle commands together with cobra.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pystyle/internal/logging"
)

// BuildInfo is stamped into the binary at release time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// colorModes are the values --color accepts.
//
//nolint:gochecknoglobals // Read-only lookup table.
var colorModes = []string{"auto", "always", "never"}

// globalFlags are shared by every subcommand through persistent flags.
// Subcommands read them back with cmd.Flags().GetString.
type globalFlags struct {
	debug  bool
	config string
	color  string
}

// NewRootCommand builds the pystyle command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "pystyle",
		Short: "A fast Python style checker",
		Long: `pystyle checks Python source against a house coding style.

Diagnostics use the pycodestyle layout (path:row:col: CODE message).
Codes can be selected or ignored by prefix, a rule pack picks the house
defaults, and files can also be checked against the standard header
template. Results are cached by file content and configuration.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !slices.Contains(colorModes, flags.color) {
				return usageError(fmt.Errorf("invalid --color %q; must be one of: auto, always, never", flags.color))
			}
			if flags.debug {
				logging.SetLevel("debug")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{annotationExitStatus: ""},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	persistent.StringVar(&flags.config, "config", "", "use this config file instead of the project config")
	persistent.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(
		newLintCommand(info),
		newRulesCommand(),
		newInitCommand(),
		newTemplatesCommand(),
		newCacheCommand(),
		newVersionCommand(info),
	)

	NewHelpFormatter(flags.color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
