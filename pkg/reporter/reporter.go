// Package reporter formats check results for terminals and tools.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/pystyle/pkg/analysis"
	"github.com/yaklabco/pystyle/pkg/runner"
)

// Reporter formats and writes check results.
type Reporter interface {
	// Report writes formatted output for the given result and returns the
	// number of issues it covered.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer presents an aggregated analysis.Report rather than raw results.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// analyzed adapts a Renderer to Reporter. The result is aggregated once,
// with codes ordered by descending count.
type analyzed struct {
	renderer Renderer
	opts     analysis.Options
}

var _ Reporter = analyzed{}

func withAnalysis(renderer Renderer, opts Options) analyzed {
	return analyzed{
		renderer: renderer,
		opts: analysis.Options{
			IncludeByFile: true,
			IncludeByCode: true,
			SortBy:        analysis.SortByCount,
			SortDesc:      true,
			RuleFormat:    opts.RuleFormat,
			WorkingDir:    opts.WorkingDir,
		},
	}
}

func (a analyzed) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

// New returns the Reporter for opts.Format. Unset options take their
// defaults; an unknown format is an error.
func New(opts Options) (Reporter, error) {
	opts = opts.normalized()

	switch opts.Format {
	case FormatPlain:
		return NewPlainReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return withAnalysis(NewSummaryRenderer(opts), opts), nil
	}

	return nil, fmt.Errorf("unsupported format: %q", opts.Format)
}

func displayPath(path, workingDir string) string {
	return analysis.MakeRelativePath(path, workingDir)
}

// slashPath is displayPath with forward slashes, for machine-readable output.
func slashPath(path, workingDir string) string {
	return filepath.ToSlash(displayPath(path, workingDir))
}
