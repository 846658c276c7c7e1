package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/pytoken"
)

var (
	topLevelRe  = regexp.MustCompile(`^(async\s+def\s+|def\s+|class\s+|@)`)
	startsDefRe = regexp.MustCompile(`^(async\s+def|def)\b`)
	docstringRe = regexp.MustCompile(`^u?r?["']`)
	defPrefixes = []string{"def ", "class "}
)

// BlankLinesRule checks the blank lines that separate definitions.
type BlankLinesRule struct {
	lint.BaseRule
}

// NewBlankLinesRule creates a new blank lines rule.
func NewBlankLinesRule() *BlankLinesRule {
	return &BlankLinesRule{
		BaseRule: lint.NewBaseRule(
			"blank-lines",
			"Separate top-level and nested definitions by the configured number of blank lines",
			lint.KindLogical,
			[]string{"E301", "E302", "E303", "E304", "E305", "E306"},
			[]string{"blank_lines"},
		),
	}
}

// CheckLogical inspects the blank lines before one statement.
func (r *BlankLinesRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	top := line.Settings.TopLevelBlank
	method := line.Settings.MethodBlank

	// No blank lines are expected before the first statement.
	if line.PreviousLogical == "" && line.BlankBefore < top {
		return nil
	}

	switch {
	case strings.HasPrefix(line.PreviousLogical, "@"):
		if line.BlankLines > 0 {
			return []lint.Problem{lint.At(0, "E304", "blank lines found after function decorator")}
		}

	case line.BlankLines > top || (line.IndentLevel > 0 && line.BlankLines == method+1):
		return []lint.Problem{lint.At(0, "E303", fmt.Sprintf("too many blank lines (%d)", line.BlankLines))}

	case topLevelRe.MatchString(line.Text):
		if line.IndentLevel > 0 {
			if line.BlankBefore == method ||
				line.PreviousIndentLevel < line.IndentLevel ||
				docstringRe.MatchString(line.PreviousLogical) {
				return nil
			}

			if nestedInDef(line.Lines, line.LineNumber-top, line.IndentLevel) {
				return []lint.Problem{lint.At(0, "E306",
					fmt.Sprintf("expected %d blank line before a nested definition, found 0", method))}
			}

			return []lint.Problem{lint.At(0, "E301", fmt.Sprintf("expected %d blank line, found 0", method))}
		}

		if line.BlankBefore != top {
			return []lint.Problem{lint.At(0, "E302",
				fmt.Sprintf("expected %d blank lines, found %d", top, line.BlankBefore))}
		}

	case line.Text != "" && line.IndentLevel == 0 && line.BlankBefore != top &&
		hasAnyPrefix(line.PreviousUnindentedLogical, defPrefixes):
		return []lint.Problem{lint.At(0, "E305",
			fmt.Sprintf("expected %d blank lines after class or function definition, found %d", top, line.BlankBefore))}
	}

	return nil
}

// nestedInDef walks backwards from index start looking for the nearest
// less-indented line. It reports whether that ancestor is a function
// definition. The walk stops at the first unindented ancestor.
func nestedInDef(lines []string, start, indent int) bool {
	if start < 0 {
		start += len(lines)
	}
	if start >= len(lines) {
		start = len(lines) - 1
	}

	ancestor := indent
	nested := false

	for i := start; i >= 0; i-- {
		src := lines[i]
		if strings.TrimSpace(src) == "" {
			continue
		}

		level := pytoken.ExpandIndent(src)
		if level >= ancestor {
			continue
		}

		ancestor = level
		nested = startsDefRe.MatchString(strings.TrimLeft(src, " \t\f\v\r\n"))
		if nested || ancestor == 0 {
			break
		}
	}

	return nested
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}
