package rules

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/pytoken"
)

// urlSlack is how far before the limit a lone long token may start and
// still be exempt from the length checks.
const urlSlack = 7

// MaxLineLengthRule limits the length of physical lines.
type MaxLineLengthRule struct {
	lint.BaseRule
}

// NewMaxLineLengthRule creates a new line length rule.
func NewMaxLineLengthRule() *MaxLineLengthRule {
	return &MaxLineLengthRule{
		BaseRule: lint.NewBaseRule(
			"maximum-line-length",
			"Limit all lines to the configured maximum length",
			lint.KindPhysical,
			[]string{"E501"},
			[]string{"line_length"},
		),
	}
}

// CheckPhysical measures one line in characters, ignoring trailing whitespace.
//
// A shebang on the first line is exempt. So is a line holding a single long
// token inside a multi-line string, or a comment holding a single long word
// such as a URL, as long as the token starts well before the limit.
func (r *MaxLineLengthRule) CheckPhysical(line *lint.PhysicalLine) []lint.Problem {
	maxLen := line.Options.Int("max_line_length", line.Settings.MaxLineLength)

	text := strings.TrimRightFunc(line.Line, unicode.IsSpace)
	length := lint.RuneLen(text)
	if length <= maxLen {
		return nil
	}

	if line.LineNumber == 1 && strings.HasPrefix(text, "#!") {
		return nil
	}

	chunks := lint.Fields(text)
	if ((len(chunks) == 1 && line.Multiline) || (len(chunks) == 2 && chunks[0] == "#")) &&
		length-lint.RuneLen(chunks[len(chunks)-1]) < maxLen-urlSlack {
		return nil
	}

	return []lint.Problem{lint.At(lint.ByteColumn(line.Line, maxLen), "E501",
		fmt.Sprintf("line too long (%d > %d characters)", length, maxLen))}
}

// MaxDocLengthRule limits the length of comment and docstring lines.
type MaxDocLengthRule struct {
	lint.BaseRule
}

// NewMaxDocLengthRule creates a new doc line length rule.
func NewMaxDocLengthRule() *MaxDocLengthRule {
	return &MaxDocLengthRule{
		BaseRule: lint.NewBaseRule(
			"maximum-doc-length",
			"Limit comment-only and docstring lines to the configured maximum length",
			lint.KindLogical,
			[]string{"W505"},
			[]string{"line_length", "comments"},
		),
	}
}

// CheckLogical measures comments and string literals that stand on their
// own lines. Strings in statements that also contain code are skipped.
func (r *MaxDocLengthRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	maxLen := line.Options.Int("max_doc_length", line.Settings.MaxDocLength)
	if maxLen <= 0 {
		return nil
	}

	hasCode := false
	for _, tok := range line.Tokens {
		if !skipForSpacing(tok.Kind) && tok.Kind != pytoken.String {
			hasCode = true
			break
		}
	}

	var (
		problems []lint.Problem
		prevKind pytoken.Kind
		started  bool
	)

	for _, tok := range line.Tokens {
		kind := tok.Kind
		checkable := kind == pytoken.Comment || (kind == pytoken.String && !hasCode)

		if checkable && (!started || isLayoutToken(prevKind)) {
			physical := splitPhysical(tok.Line)

			for lineNum, text := range physical {
				row := tok.Start.Row + lineNum
				if row == 1 && strings.HasPrefix(tok.Line, "#!") {
					return problems
				}

				length := lint.RuneLen(text)
				chunks := lint.Fields(text)

				if kind == pytoken.Comment && len(chunks) == 2 &&
					length-lint.RuneLen(chunks[1]) < maxLen {
					continue
				}
				if len(chunks) == 1 && lineNum+1 < len(physical) &&
					length-lint.RuneLen(chunks[0]) < maxLen {
					continue
				}

				if length > maxLen {
					col := maxLen
					if row >= 1 && row <= len(line.Lines) {
						col = lint.ByteColumn(line.Lines[row-1], maxLen)
					}
					problems = append(problems, lint.AtPos(pytoken.Position{Row: row, Col: col}, "W505",
						fmt.Sprintf("doc line too long (%d > %d characters)", length, maxLen)))
				}
			}
		}

		if kind == pytoken.String && hasCode {
			// Skipped strings do not update the previous token.
			continue
		}

		prevKind = kind
		started = true
	}

	return problems
}

// isLayoutToken reports whether a token only carries line structure.
func isLayoutToken(kind pytoken.Kind) bool {
	switch kind {
	case pytoken.NL, pytoken.Newline, pytoken.Indent, pytoken.Dedent:
		return true
	default:
		return false
	}
}

// splitPhysical splits text into lines without their terminators.
func splitPhysical(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
