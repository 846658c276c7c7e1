// Package logging configures charmbracelet/log loggers and the structured
// field names shared by every package.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// Prefix is shown before every interactive log line.
const Prefix = "pystyle"

var levels = map[string]log.Level{
	"debug":   log.DebugLevel,
	"info":    log.InfoLevel,
	"warn":    log.WarnLevel,
	"warning": log.WarnLevel,
	"error":   log.ErrorLevel,
}

//nolint:gochecknoglobals // process-wide fallback for code without a context logger
var defaultLogger atomic.Pointer[log.Logger]

// ParseLevel maps a level name, in any case, to a log.Level. Unknown names
// are info.
func ParseLevel(level string) log.Level {
	if lvl, ok := levels[strings.ToLower(level)]; ok {
		return lvl
	}
	return log.InfoLevel
}

// New returns a stderr logger at level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger on w without timestamps or caller info.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// NewInteractive returns an info logger on stderr. On a terminal it
// carries the tool prefix and a short timestamp, which keeps progress
// lines apart from diagnostics on stdout.
func NewInteractive() *log.Logger {
	opts := log.Options{Level: log.InfoLevel}
	if fd := os.Stderr.Fd(); isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		opts.Prefix = Prefix
		opts.ReportTimestamp = true
		opts.TimeFormat = time.Kitchen
	}
	return log.NewWithOptions(os.Stderr, opts)
}

// Default returns the process-wide logger, an info logger on stderr until
// SetDefault replaces it.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger. A nil logger is ignored.
func SetDefault(logger *log.Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
