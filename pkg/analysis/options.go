package analysis

import (
	"slices"

	"github.com/yaklabco/pystyle/pkg/config"
)

// SortField orders the per-code and per-file tables.
type SortField string

const (
	// SortByAlpha orders codes by name and files by path, the order of
	// a pycodestyle --statistics listing.
	SortByAlpha SortField = "alpha"
	// SortByCount orders by number of issues, ties broken by name.
	SortByCount SortField = "count"
	// SortBySeverity puts E-class codes ahead of W-class, then counts.
	SortBySeverity SortField = "severity"
)

// SortFields lists the accepted sort fields.
func SortFields() []SortField {
	return []SortField{SortByAlpha, SortByCount, SortBySeverity}
}

// IsValid reports whether s is one of SortFields.
func (s SortField) IsValid() bool {
	return slices.Contains(SortFields(), s)
}

// Options selects which views Analyze builds and how they are ordered.
type Options struct {
	IncludeDiagnostics bool
	IncludeByFile      bool
	IncludeByCode      bool

	SortBy SortField
	// SortDesc reverses count ordering. Alphabetical and severity
	// ordering ignore it.
	SortDesc bool

	RuleFormat config.RuleFormat

	// WorkingDir, when set, makes reported paths relative to it.
	WorkingDir string
}

// DefaultOptions builds every view, sorted alphabetically, with codes
// shown as codes.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByCode:      true,
		SortBy:             SortByAlpha,
		RuleFormat:         config.RuleFormatCode,
	}
}
