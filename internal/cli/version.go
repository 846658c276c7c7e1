package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pystyle/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the pystyle version with its commit, build date and platform.

The version is also part of every cache key, so upgrading pystyle
invalidates cached results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return err
			}

			logging.NewWithWriter(cmd.OutOrStdout(), "info").Info("pystyle",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
				logging.FieldGo, runtime.Version(),
				logging.FieldPlatform, runtime.GOOS+"/"+runtime.GOARCH,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")

	return cmd
}
