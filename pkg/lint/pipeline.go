package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/fsutil"
)

// Per-file failures. Each one ends processing of that file only.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDecodeFailure marks content that is not source text.
	ErrDecodeFailure = errors.New("decode failure")
)

// ResultCache maps (content, configuration fingerprint) to a FileResult.
// It must be safe for concurrent use.
type ResultCache interface {
	Lookup(content []byte, fingerprint string) (*FileResult, bool)
	Store(content []byte, fingerprint string, result *FileResult) error
}

// PipelineResult is a FileResult plus what the pipeline learned around it.
type PipelineResult struct {
	*FileResult

	// Info describes the file as it was read. It is nil for ProcessContent.
	Info *fsutil.FileInfo

	// CacheError is a failed Store. The result itself is still valid.
	CacheError error
}

// Pipeline reads one file, consults the cache, and runs the engine.
type Pipeline struct {
	Engine *Engine

	// Cache is optional. Results with a rule or tokenizer failure are
	// never stored.
	Cache ResultCache
}

// NewPipeline creates a pipeline without a cache.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// WithCache sets the result cache and returns the pipeline.
func (p *Pipeline) WithCache(cache ResultCache) *Pipeline {
	p.Cache = cache
	return p
}

// ProcessFile reads path and checks it. Read failures are wrapped in
// ErrFileNotFound or ErrPermissionDenied where they apply.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, cfg *config.Config) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, classifyReadError(err)
	}

	result, err := p.ProcessContent(ctx, path, content, cfg)
	if err != nil {
		return nil, err
	}
	result.Info = info
	return result, nil
}

// ProcessContent checks content as if it had been read from path. A nil
// cfg means the defaults.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte, cfg *config.Config) (*PipelineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}
	if fsutil.IsBinary(content) {
		return nil, fmt.Errorf("%w: %s: contains NUL bytes", ErrDecodeFailure, path)
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	var fingerprint string
	cacheable := p.Cache != nil && cfg.CacheEnabled()
	if cacheable {
		fingerprint = string(cfg.Fingerprint())
		if hit, ok := p.Cache.Lookup(content, fingerprint); ok {
			return &PipelineResult{FileResult: hit.relocated(path)}, nil
		}
	}

	fr, err := p.Engine.LintFile(ctx, path, content, cfg)
	if err != nil {
		return nil, err
	}

	result := &PipelineResult{FileResult: fr}
	if cacheable && fr.TokenizeError == nil && len(fr.RuleErrors) == 0 {
		result.CacheError = p.Cache.Store(content, fingerprint, fr)
	}
	return result, nil
}

// relocated marks a cached result as served for path. The same content
// may have been stored under another name.
func (fr *FileResult) relocated(path string) *FileResult {
	fr.Path = path
	for i := range fr.Diagnostics {
		fr.Diagnostics[i].FilePath = path
	}
	fr.Cached = true
	return fr
}

func classifyReadError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// IsPipelineError reports whether err is one of the per-file failures.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrDecodeFailure)
}
