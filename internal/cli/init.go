package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pystyle/internal/logging"
	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/lint/rules"
)

const (
	defaultConfigFile = ".pystyle.yml"
	configFileMode    = 0o644
)

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a .pystyle.yml holding the default settings to the current directory.

With --format toml the settings are printed as a [tool.pystyle] table for
pyproject.toml instead, unless --output names a file to write.`,
		Example: `  pystyle init
  pystyle init --full
  pystyle init --format toml >> pyproject.toml
  pystyle init --output ci/pystyle.yml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.OutOrStdout(), flags)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file")
	f.BoolVar(&flags.full, "full", false, "list every rule with its description")
	f.StringVar(&flags.format, "format", config.TemplateYAML, "template format: yaml or toml")
	f.StringVarP(&flags.output, "output", "o", "", "file to write (default "+defaultConfigFile+")")

	return cmd
}

func runInit(stdout io.Writer, flags *initFlags) error {
	switch flags.format {
	case config.TemplateYAML, config.TemplateTOML:
	default:
		return usageError(fmt.Errorf("invalid format %q: must be yaml or toml", flags.format))
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
		Rules:  ruleInfos(rules.Catalog().Rules()),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	path := flags.output
	if path == "" && flags.format == config.TemplateTOML {
		if _, err := stdout.Write(content); err != nil {
			return fmt.Errorf("write template: %w", err)
		}
		return nil
	}
	if path == "" {
		path = defaultConfigFile
	}

	logger := logging.NewInteractive()

	mode := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if flags.force {
		mode = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	file, err := os.OpenFile(path, mode, configFileMode)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("file %q already exists; use --force to overwrite", path)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.Info("wrote configuration", logging.FieldPath, path)
	logger.Info("run 'pystyle rules' to list the available rules")

	return nil
}

// ruleInfos describes the catalog for configuration templates.
func ruleInfos(catalog []lint.Rule) []config.RuleInfo {
	infos := make([]config.RuleInfo, len(catalog))
	for i, rule := range catalog {
		infos[i] = config.RuleInfo{
			ID:          rule.ID(),
			Description: rule.Description(),
			Codes:       rule.Codes(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
		}
	}
	return infos
}
