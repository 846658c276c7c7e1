package lint

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/pytoken"
)

// Report collects the problems of one file. Positions are buffered as byte
// columns and converted to 1-based character columns when the report is
// finalized.
type Report struct {
	path    string
	lines   []string
	repeat  bool
	entries []Diagnostic
}

// NewReport creates a sink for the file at path. When repeat is false only
// the first occurrence of each code is kept for printing; counts still
// include every occurrence.
func NewReport(path string, lines []string, repeat bool) *Report {
	return &Report{path: path, lines: lines, repeat: repeat}
}

// Add buffers one problem at a byte position.
func (r *Report) Add(pos pytoken.Position, code, message, ruleID string, severity config.Severity) {
	r.entries = append(r.entries, Diagnostic{
		Code:     code,
		RuleID:   ruleID,
		Message:  message,
		Severity: severity,
		FilePath: r.path,
		Line:     pos.Row,
		Column:   r.charColumn(pos) + 1,
	})
}

// Len returns the number of buffered entries, duplicates included.
func (r *Report) Len() int {
	return len(r.entries)
}

func (r *Report) charColumn(pos pytoken.Position) int {
	if pos.Row < 1 || pos.Row > len(r.lines) {
		return pos.Col
	}

	return RuneColumn(r.lines[pos.Row-1], pos.Col)
}

// Finalize sorts and deduplicates the buffered diagnostics. It returns the
// diagnostics to print, the number of occurrences per code, and the first
// message seen for each code.
func (r *Report) Finalize() ([]Diagnostic, map[string]int, map[string]string) {
	sorted := slices.Clone(r.entries)
	slices.SortStableFunc(sorted, compareDiagnostics)
	sorted = slices.CompactFunc(sorted, func(a, b Diagnostic) bool {
		return compareDiagnostics(a, b) == 0 && a.RuleID == b.RuleID
	})

	counts := make(map[string]int)
	first := make(map[string]string)
	printed := make([]Diagnostic, 0, len(sorted))

	for _, diag := range sorted {
		counts[diag.Code]++
		if _, seen := first[diag.Code]; !seen {
			first[diag.Code] = diag.Message
		} else if !r.repeat {
			continue
		}

		printed = append(printed, diag)
	}

	return printed, counts, first
}

func compareDiagnostics(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Column, b.Column),
		cmp.Compare(a.Code, b.Code),
		cmp.Compare(a.Message, b.Message),
	)
}

// RuneColumn converts a byte column in line to a character column. Columns
// past the end of the line are extended one character per byte.
func RuneColumn(line string, byteCol int) int {
	if byteCol <= 0 {
		return byteCol
	}

	if byteCol >= len(line) {
		return utf8.RuneCountInString(line) + byteCol - len(line)
	}

	return utf8.RuneCountInString(line[:byteCol])
}

// ByteColumn converts a character column in line to a byte column. It is
// the inverse of RuneColumn.
func ByteColumn(line string, charCol int) int {
	if charCol <= 0 {
		return charCol
	}

	idx := 0
	for i := range line {
		if idx == charCol {
			return i
		}
		idx++
	}

	return len(line) + charCol - idx
}
