package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/yaklabco/pystyle/internal/configloader"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/runner"
)

// Exit codes for pystyle.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates the check completed and found issues.
	ExitIssues = 1

	// ExitUsage indicates invalid command-line usage.
	ExitUsage = 2

	// ExitDataError indicates an invalid configuration.
	ExitDataError = 65

	// ExitNoInput indicates a path given on the command line does not exist.
	ExitNoInput = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates files that could not be read or decoded.
	ExitIOError = 74

	// ExitInterrupted indicates the run was cancelled by a signal.
	ExitInterrupted = 130
)

// ErrIssuesFound is returned when the check reports issues.
var ErrIssuesFound = errors.New("issues found")

// ErrFilesFailed is returned when some files could not be checked.
var ErrFilesFailed = errors.New("some files could not be checked")

// ExitError carries an explicit exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// usageError marks err as a command-line usage error.
func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError

	switch {
	case errors.Is(err, ErrIssuesFound):
		return ExitIssues
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &validationErr):
		return ExitDataError
	case errors.Is(err, fs.ErrNotExist):
		return ExitNoInput
	case errors.Is(err, ErrFilesFailed), lint.IsPipelineError(err):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code of a finished run. Issues
// take precedence over files that failed to load.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasIssues() {
		return ExitIssues
	}

	if len(result.Errors) > 0 {
		return ExitIOError
	}

	return ExitSuccess
}
