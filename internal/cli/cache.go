package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pystyle/internal/logging"
	"github.com/yaklabco/pystyle/pkg/cache"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the result cache",
		Long: `The result cache stores per-file results keyed by file content, the
effective configuration, and the pystyle version. It lives under
$XDG_CACHE_HOME/pystyle (or ~/.cache/pystyle).`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cache.DefaultDir("pystyle")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dir, err := cache.DefaultDir("pystyle")
			if err != nil {
				return err
			}

			logger := logging.Default()

			resultCache, err := cache.New(dir, "", cache.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			if err := resultCache.Clear(); err != nil {
				return err
			}

			logger.Info("cache cleared", logging.FieldCache, resultCache.Dir())
			return nil
		},
	})

	return cmd
}
