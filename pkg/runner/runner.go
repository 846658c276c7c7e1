package runner

import (
	"context"
	"fmt"
	"maps"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/pystyle/internal/logging"
	"github.com/yaklabco/pystyle/pkg/lint"
)

// Runner checks many files with one Pipeline, in parallel.
type Runner struct {
	Pipeline *lint.Pipeline

	// Logger receives per-file debug lines and rule failures. Nil
	// discards them.
	Logger *log.Logger
}

// New creates a runner around pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// WithLogger sets the logger and returns the runner.
func (r *Runner) WithLogger(logger *log.Logger) *Runner {
	r.Logger = logger
	return r
}

// Run checks every file Discover finds for opts, at most opts.Jobs at a
// time (all CPUs when Jobs is 0). Outcomes are gathered in path order
// whatever order the workers finish in.
//
// A file that fails is recorded in Result.Errors and the run goes on.
// Cancelling ctx stops new files from starting; Run then returns the
// files already checked together with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files)), Stats: newStats()}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger := r.logger()
	logger.Debug("checking files", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	// Each worker writes only its own slot.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}

			outcomes[i] = r.checkFile(groupCtx, logger, path, opts)
			done[i] = true

			return nil
		})
	}

	// Workers report failures through outcomes, never through the group.
	_ = group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// checkFile runs one file. Its log lines carry the path through the
// context logger.
func (r *Runner) checkFile(ctx context.Context, logger *log.Logger, path string, opts Options) FileOutcome {
	start := time.Now()
	outcome := FileOutcome{Path: path}

	ctx = logging.WithFields(logging.WithLogger(ctx, logger), logging.FieldPath, path)
	logger = logging.FromContext(ctx)

	pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Config)
	if err != nil {
		outcome.Error = err
		logger.Debug("file failed", logging.FieldError, err)
		return outcome
	}
	outcome.Result = pr

	if pr.TokenizeError != nil {
		logger.Debug("tokenizing stopped early", logging.FieldError, pr.TokenizeError)
	}

	for _, ruleID := range slices.Sorted(maps.Keys(pr.RuleErrors)) {
		logger.Warn("rule failed", logging.FieldRule, ruleID, logging.FieldError, pr.RuleErrors[ruleID])
	}

	if pr.CacheError != nil {
		logger.Debug("cache store failed", logging.FieldError, pr.CacheError)
	}

	logger.Debug("file checked",
		logging.FieldDiagnostics, pr.IssueCount(),
		logging.FieldCached, pr.Cached,
		logging.FieldDuration, time.Since(start),
	)

	return outcome
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logging.Discard()
}
