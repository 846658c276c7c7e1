package rules

import (
	"fmt"

	"github.com/yaklabco/pystyle/pkg/lint"
)

// EndOfFileMarkerRule requires the last line of a file to be the end marker
// comment, terminated by a newline.
type EndOfFileMarkerRule struct {
	lint.BaseRule
}

// NewEndOfFileMarkerRule creates a new end of file marker rule.
func NewEndOfFileMarkerRule() *EndOfFileMarkerRule {
	return &EndOfFileMarkerRule{
		BaseRule: lint.NewBaseRule(
			"end-of-file-marker",
			"End every file with the end marker comment and a newline",
			lint.KindPhysical,
			[]string{"W391", "W292"},
			[]string{"blank_lines"},
		),
	}
}

// CheckPhysical only acts on the last line of the file.
func (r *EndOfFileMarkerRule) CheckPhysical(line *lint.PhysicalLine) []lint.Problem {
	if line.LineNumber != line.TotalLines {
		return nil
	}

	marker := line.Options.String("marker", line.Settings.EndMarker)
	stripped := lint.TrimLineEnd(line.Line)

	if stripped != marker {
		return []lint.Problem{lint.At(0, "W391", fmt.Sprintf("missing '%s' at end of file", marker))}
	}

	if stripped == line.Line && len(line.Lines) > 0 {
		return []lint.Problem{lint.At(len(line.Lines[len(line.Lines)-1]), "W292", "no newline at end of file")}
	}

	return nil
}
