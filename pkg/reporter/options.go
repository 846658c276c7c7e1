package reporter

import (
	"cmp"
	"io"
	"os"

	"github.com/yaklabco/pystyle/pkg/config"
)

const bufWriterSize = 64 << 10

// Options configures every output format. Fields a format has no use
// for are ignored by it.
type Options struct {
	// Writer receives the report. ErrorWriter receives per-file read
	// failures and defaults to Writer.
	Writer      io.Writer
	ErrorWriter io.Writer

	Format Format
	Color  string // auto, always or never

	// Text and plain output.
	ShowContext bool // source line and caret under each diagnostic
	ShowSummary bool
	Statistics  bool // per-code counts with the first message of each code
	Quiet       bool // no success notice for clean files

	// Compact disables indentation in JSON and SARIF.
	Compact bool

	RuleFormat   config.RuleFormat
	SummaryOrder config.SummaryOrder

	// WorkingDir, when set, makes reported paths relative to it.
	WorkingDir string

	// ToolVersion is the driver version written to SARIF.
	ToolVersion string
}

// DefaultOptions is the configuration the lint command starts from.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatPlain,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		RuleFormat:  config.RuleFormatCode,
		ToolVersion: "dev",
	}
}

// normalized fills the fields New cannot work without.
func (o Options) normalized() Options {
	defaults := DefaultOptions()

	if o.Writer == nil {
		o.Writer = defaults.Writer
	}
	if o.ErrorWriter == nil {
		o.ErrorWriter = o.Writer
	}
	o.Format = cmp.Or(o.Format, defaults.Format)
	o.RuleFormat = cmp.Or(o.RuleFormat, defaults.RuleFormat)
	o.ToolVersion = cmp.Or(o.ToolVersion, defaults.ToolVersion)

	return o
}
