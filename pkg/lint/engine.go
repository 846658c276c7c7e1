package lint

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/fsutil"
	"github.com/yaklabco/pystyle/pkg/pytoken"
	"github.com/yaklabco/pystyle/pkg/template"
)

// FileResult contains the results of checking a single file.
type FileResult struct {
	// Path is the file that was checked.
	Path string

	// Lines are the decoded physical lines, terminators included.
	Lines []string

	// Encoding is the encoding the file was decoded from.
	Encoding string

	// Diagnostics are the sorted, deduplicated diagnostics to print.
	// With repeat disabled only the first occurrence of each code is kept.
	Diagnostics []Diagnostic

	// Counts holds the number of occurrences per code, including the
	// occurrences hidden by the repeat policy.
	Counts map[string]int

	// FirstMessages holds the first message reported for each code.
	FirstMessages map[string]string

	// Findings are the template checker results, when enabled.
	Findings []template.Finding

	// RuleErrors contains the failures recovered from rules.
	RuleErrors map[string]error

	// TokenizeError is set when tokenizing stopped early. Diagnostics found
	// before the fault are kept.
	TokenizeError error

	// Cached is true when the result was served from the result cache.
	Cached bool
}

// HasIssues returns true if any diagnostic or template finding was produced.
func (fr *FileResult) HasIssues() bool {
	return fr.IssueCount() > 0 || len(fr.Findings) > 0
}

// IssueCount returns the number of diagnostics found, including those the
// repeat policy does not print.
func (fr *FileResult) IssueCount() int {
	total := 0
	for _, n := range fr.Counts {
		total += n
	}
	return total
}

// ErrorCount returns the number of printed diagnostics with error severity.
func (fr *FileResult) ErrorCount() int {
	return fr.countSeverity(config.SeverityError)
}

// WarningCount returns the number of printed diagnostics with warning severity.
func (fr *FileResult) WarningCount() int {
	return fr.countSeverity(config.SeverityWarning)
}

func (fr *FileResult) countSeverity(sev config.Severity) int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.Severity == sev {
			count++
		}
	}
	return count
}

// Engine coordinates decoding, tokenizing and rule execution.
type Engine struct {
	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine over the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{Registry: registry}
}

// LintFile decodes content and checks it.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	src := fsutil.DecodeSource(content)

	result, err := e.LintLines(ctx, path, fsutil.SplitLines(src.Text), cfg)
	if err != nil {
		return nil, err
	}
	result.Encoding = src.Encoding

	return result, nil
}

// LintLines checks already decoded lines. A leading byte-order mark on the
// first line is ignored.
func (e *Engine) LintLines(
	ctx context.Context,
	path string,
	lines []string,
	cfg *config.Config,
) (*FileResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("linting cancelled: %w", ctx.Err())
	default:
	}

	if cfg == nil {
		cfg = config.NewConfig()
	}

	lines = stripBOM(lines)

	report := NewReport(path, lines, cfg.RepeatEnabled())
	checker := NewChecker(lines, ResolveRules(e.Registry, cfg), SettingsFromConfig(cfg), report)
	checker.SetCodeFilter(cfg.CodeSelected)

	tokErr := checker.Run()
	if tokErr != nil && cfg.CodeSelected(InternalErrorCode) {
		report.Add(tokenizeErrorPos(tokErr, len(lines)), InternalErrorCode,
			"TokenError: "+tokenizeErrorText(tokErr), "tokenizer", config.SeverityError)
	}

	diags, counts, first := report.Finalize()

	result := &FileResult{
		Path:          path,
		Lines:         lines,
		Encoding:      fsutil.EncodingUTF8,
		Diagnostics:   diags,
		Counts:        counts,
		FirstMessages: first,
		RuleErrors:    checker.RuleErrors(),
		TokenizeError: tokErr,
	}

	if cfg.TemplatesEnabled() {
		result.Findings = template.Check(strings.Join(lines, ""))
	}

	return result, nil
}

func stripBOM(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}

	first, ok := strings.CutPrefix(lines[0], "\ufeff")
	if !ok {
		return lines
	}

	out := slices.Clone(lines)
	out[0] = first

	return out
}

func tokenizeErrorPos(err error, total int) pytoken.Position {
	var tokErr *pytoken.Error
	if errors.As(err, &tokErr) {
		return tokErr.Pos
	}

	return pytoken.Position{Row: max(total, 1)}
}

func tokenizeErrorText(err error) string {
	var tokErr *pytoken.Error
	if errors.As(err, &tokErr) {
		return tokErr.Err.Error()
	}

	return err.Error()
}
