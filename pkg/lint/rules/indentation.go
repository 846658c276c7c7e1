package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/pystyle/pkg/lint"
)

// IndentationRule checks indentation depth against the configured indent
// size and the previous statement. It is off unless a config or pack
// enables it.
type IndentationRule struct {
	lint.BaseRule
}

// NewIndentationRule creates a new indentation rule.
func NewIndentationRule() *IndentationRule {
	return &IndentationRule{
		BaseRule: lint.NewBaseRule(
			"indentation",
			"Indent blocks by a multiple of the indent size, and only after a colon",
			lint.KindLogical,
			[]string{"E111", "E112", "E113", "E114", "E115", "E116", "E117"},
			[]string{"indentation", "whitespace"},
		),
	}
}

// DefaultEnabled is false.
func (r *IndentationRule) DefaultEnabled() bool { return false }

// CheckLogical reports E111-E113 for statements and E114-E116 for comment
// lines. E117 is shared by both.
func (r *IndentationRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	size := line.Settings.IndentSize
	if size <= 0 {
		return nil
	}

	shift, suffix := 0, ""
	if line.Text == "" {
		shift, suffix = 3, " (comment)"
	}

	report := func(n int, msg string) lint.Problem {
		return lint.At(0, fmt.Sprintf("E11%d", n), msg+suffix)
	}

	var problems []lint.Problem

	if line.IndentLevel%size != 0 {
		problems = append(problems, report(1+shift, fmt.Sprintf("indentation is not a multiple of %d", size)))
	}

	expectIndent := strings.HasSuffix(line.PreviousLogical, ":")

	switch {
	case expectIndent && line.IndentLevel <= line.PreviousIndentLevel:
		problems = append(problems, report(2+shift, "expected an indented block"))
	case !expectIndent && line.IndentLevel > line.PreviousIndentLevel:
		problems = append(problems, report(3+shift, "unexpected indentation"))
	}

	if expectIndent {
		step := size
		if line.IndentChar == '\t' {
			step = 8
		}

		if line.IndentLevel > line.PreviousIndentLevel+step {
			problems = append(problems, report(7, "over-indented"))
		}
	}

	return problems
}
