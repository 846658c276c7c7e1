package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/pytoken"
)

// WhitespaceBeforeCommentRule checks the spacing and prefix of comments.
//
// Inline comments need two spaces before the hash and a single "# " prefix.
// Block comments start with "# ", may be a dashed separator line, and the
// first line of a file may be a shebang.
type WhitespaceBeforeCommentRule struct {
	lint.BaseRule
}

// NewWhitespaceBeforeCommentRule creates a new comment spacing rule.
func NewWhitespaceBeforeCommentRule() *WhitespaceBeforeCommentRule {
	return &WhitespaceBeforeCommentRule{
		BaseRule: lint.NewBaseRule(
			"whitespace-before-comment",
			"Separate inline comments by two spaces and start comments with '# '",
			lint.KindLogical,
			[]string{"E261", "E262", "E265", "E266"},
			[]string{"comments", "whitespace"},
		),
	}
}

// CheckLogical inspects every comment token of the statement.
func (r *WhitespaceBeforeCommentRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	var (
		problems []lint.Problem
		prevEnd  pytoken.Position
	)

	for _, tok := range line.Tokens {
		if tok.Kind != pytoken.Comment {
			if tok.Kind != pytoken.NL {
				prevEnd = tok.End
			}
			continue
		}

		inline := strings.TrimSpace(tok.Line[:min(tok.Start.Col, len(tok.Line))]) != ""
		if inline && prevEnd.Row == tok.Start.Row && tok.Start.Col < prevEnd.Col+2 {
			problems = append(problems, lint.AtPos(prevEnd, "E261", "at least two spaces before inline comment"))
		}

		symbol, comment, _ := strings.Cut(tok.Text, " ")
		prefix := badPrefix(symbol)

		if inline {
			if prefix != 0 || startsWithIndentWhitespace(comment) {
				problems = append(problems, lint.AtPos(tok.Start, "E262", "inline comment should start with '#'"))
			}
			continue
		}

		if prefix == 0 || (prefix == '!' && tok.Start.Row == 1) {
			continue
		}

		if prefix != '-' {
			problems = append(problems, lint.AtPos(tok.Start, "E265", "block comment should start with '-'"))
		} else if comment != "" {
			problems = append(problems, lint.AtPos(tok.Start, "E266", "too many leading '#' for block comment"))
		}
	}

	return problems
}

// badPrefix returns the first character after the leading hashes of a
// comment's first word, '#' when the word is only hashes, or 0 when the
// word is a plain "#" or "#:".
func badPrefix(symbol string) rune {
	if symbol == "#" || symbol == "#:" {
		return 0
	}

	rest := strings.TrimLeft(symbol, "#")
	if rest == "" {
		return '#'
	}

	r, _ := utf8.DecodeRuneInString(rest)
	return r
}

func startsWithIndentWhitespace(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return lint.IsIndentWhitespace(r)
}
