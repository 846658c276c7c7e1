package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/pystyle/internal/configloader"
	"github.com/yaklabco/pystyle/internal/logging"
	"github.com/yaklabco/pystyle/pkg/cache"
	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/lint/rules"
	"github.com/yaklabco/pystyle/pkg/reporter"
	"github.com/yaklabco/pystyle/pkg/runner"
)

type lintFlags struct {
	format         string
	ruleFormat     string
	summaryOrder   string
	pack           string
	selectCodes    []string
	ignoreCodes    []string
	exclude        []string
	include        []string
	enable         []string
	disable        []string
	repeat         bool
	noCache        bool
	templates      bool
	scripts        bool
	followSymlinks bool
	noContext      bool
	noSummary      bool
	compact        bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check Python files for style issues",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		Annotations: map[string]string{
			annotationExitStatus:  "",
			annotationEnvironment: "",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, info, &cfg, flags)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Check Python files for layout and whitespace issues.

By default, checks all .py and .pyi files under the current directory.
Specify paths to check specific files or directories. Each issue is
printed as path:row:col: CODE message.

Examples:
  pystyle lint                          # Check current directory
  pystyle lint src/ tools/build.py      # Check a directory and a file
  pystyle lint --select E2,W            # Only whitespace errors and warnings
  pystyle lint --ignore E501            # Everything except long lines
  pystyle lint --statistics --quiet     # Per-code counts, no success notices
  pystyle lint --templates              # Also check the file header template
  pystyle lint --format json            # Output as JSON for CI`

//nolint:funlen // Command wiring reads best top to bottom.
func runLint(cmd *cobra.Command, args []string, info BuildInfo, cfg *config.Config, flags *lintFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	if err := applyLintFlags(cmd, cfg, flags); err != nil {
		return usageError(err)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Pack:         flags.pack,
		CLIConfig:    cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		"max_line_length", finalCfg.MaxLineLength,
		"select", finalCfg.Select,
		"ignore_codes", finalCfg.IgnoreCodes,
		logging.FieldJobs, finalCfg.Jobs,
	)

	pipeline := lint.NewPipeline(lint.NewEngine(rules.Catalog()))
	if !flags.noCache && finalCfg.CacheEnabled() {
		if resultCache := openCache(info.Version, logger); resultCache != nil {
			pipeline.WithCache(resultCache)
		}
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     finalCfg.Extensions,
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   append(slices.Clone(finalCfg.Ignore), flags.exclude...),
		Scripts:        flags.scripts,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           finalCfg.Jobs,
		Config:         finalCfg,
	}

	logger.Debug("starting check",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	start := time.Now()
	result, runErr := runner.New(pipeline).WithLogger(logger).Run(ctx, runOpts)
	if result == nil {
		return fmt.Errorf("check failed: %w", runErr)
	}

	logger.Debug("check finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldCached, result.Stats.FilesCached,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldDuration, time.Since(start),
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       reporter.Format(finalCfg.Format),
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  !flags.noSummary,
		Statistics:   finalCfg.Statistics,
		Quiet:        finalCfg.Quiet,
		Compact:      flags.compact,
		RuleFormat:   finalCfg.RuleFormat,
		SummaryOrder: finalCfg.SummaryOrder,
		WorkingDir:   workDir,
		ToolVersion:  info.Version,
	})
	if err != nil {
		return usageError(fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if runErr != nil {
		return fmt.Errorf("check interrupted: %w", runErr)
	}

	switch ExitCodeFromResult(result) {
	case ExitIssues:
		return ErrIssuesFound
	case ExitIOError:
		return fmt.Errorf("%w: %w", ErrFilesFailed, errors.Join(result.Errors...))
	default:
		return nil
	}
}

// applyLintFlags copies explicitly set flags into cfg. Flags left at their
// defaults do not override configuration files.
func applyLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) error {
	changed := cmd.Flags().Changed

	if changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return err
		}
		cfg.Format = config.OutputFormat(format)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if changed("summary-order") {
		cfg.SummaryOrder = config.SummaryOrder(flags.summaryOrder)
	}
	if changed("select") {
		cfg.Select = flags.selectCodes
	}
	if changed("ignore") {
		cfg.IgnoreCodes = flags.ignoreCodes
	}
	if changed("repeat") {
		cfg.Repeat = config.Bool(flags.repeat)
	}
	if changed("templates") {
		cfg.Templates = config.Bool(flags.templates)
	}
	if changed("enable") {
		cfg.EnableRules = flags.enable
	}
	if changed("disable") {
		cfg.DisableRules = flags.disable
	}

	return nil
}

func openCache(version string, logger *log.Logger) *cache.Cache {
	dir, err := cache.DefaultDir("pystyle")
	if err != nil {
		logger.Debug("result cache disabled", logging.FieldError, err)
		return nil
	}

	resultCache, err := cache.New(dir, version, cache.WithLogger(logger))
	if err != nil {
		logger.Debug("result cache disabled", logging.FieldError, err)
		return nil
	}

	logger.Debug("result cache enabled", logging.FieldCache, dir)
	return resultCache
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "plain", "output format: plain, text, json, sarif, summary")
	cmd.Flags().IntVar(&cfg.MaxLineLength, "max-line-length", 0, "longest allowed line (default 80)")
	cmd.Flags().IntVar(&cfg.MaxDocLength, "max-doc-length", 0, "longest allowed comment or docstring line (default 80)")
	cmd.Flags().IntVar(&cfg.IndentSize, "indent-size", 0, "expected indentation step (default 4)")
	cmd.Flags().StringSliceVar(&flags.selectCodes, "select", nil, "only report codes starting with these prefixes")
	cmd.Flags().StringSliceVar(&flags.ignoreCodes, "ignore", nil, "skip codes starting with these prefixes")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns of paths to skip")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "glob patterns of paths to check")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or codes to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or codes to disable")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "do not read or write the result cache")
	cmd.Flags().BoolVar(&flags.repeat, "repeat", true, "print every occurrence of each code, not only the first")
	cmd.Flags().BoolVar(&cfg.Statistics, "statistics", false, "print per-code counts with the first message")
	cmd.Flags().BoolVar(&flags.templates, "templates", false, "also check the file header template")
	cmd.Flags().BoolVarP(&cfg.Quiet, "quiet", "q", false, "do not print a notice for clean files")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.scripts, "scripts", false, "also check extensionless files with a Python shebang")
	cmd.Flags().StringVar(&flags.pack, "pack", "", "start from a built-in rule pack: nedc, pep8, relaxed")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "code",
		"rule identifier format in styled output: code, rule, or combined")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in text output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line in text output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
}
