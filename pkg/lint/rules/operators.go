package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/pytoken"
)

var (
	arithmeticOps = toSet("**", "*", "/", "//", "+", "-", "@")
	unaryOps      = toSet(">>", "**", "*", "+", "-")
	wsNeededOps   = toSet(
		"**=", "*=", "/=", "//=", "+=", "-=", "!=", "<>", "<", ">",
		"%=", "^=", "&=", "|=", "==", "<=", ">=", "<<=", ">>=", "=",
		"and", "in", "is", "or", "->",
	)
	wsOptionalOps = toSet("**", "*", "/", "//", "+", "-", "@", "^", "&", "|", "<<", ">>", "%")
)

func toSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func inSet(set map[string]struct{}, s string) bool {
	_, ok := set[s]
	return ok
}

// skipForSpacing reports whether a token is invisible to spacing rules.
func skipForSpacing(kind pytoken.Kind) bool {
	switch kind {
	case pytoken.NL, pytoken.Newline, pytoken.Indent, pytoken.Dedent, pytoken.Comment, pytoken.ErrorToken:
		return true
	default:
		return false
	}
}

// MissingWhitespaceAroundOperatorRule requires spaces around binary operators.
type MissingWhitespaceAroundOperatorRule struct {
	lint.BaseRule
}

// NewMissingWhitespaceAroundOperatorRule creates a new operator spacing rule.
func NewMissingWhitespaceAroundOperatorRule() *MissingWhitespaceAroundOperatorRule {
	return &MissingWhitespaceAroundOperatorRule{
		BaseRule: lint.NewBaseRule(
			"missing-whitespace-around-operator",
			"Surround binary operators with a single space on either side",
			lint.KindLogical,
			[]string{"E225", "E226", "E227", "E228"},
			[]string{"whitespace", "operators"},
		),
	}
}

// spaceNeed tracks what the previous operator requires of the next token.
type spaceNeed struct {
	// required is set for operators that always need surrounding spaces.
	required bool

	// optional is set for operators whose spacing only has to be balanced.
	// pos is the operator start and spaced records whether it was preceded
	// by whitespace.
	optional bool
	pos      pytoken.Position
	spaced   bool
}

func (n spaceNeed) active() bool {
	return n.required || n.optional
}

// CheckLogical walks the statement tokens and checks operator spacing.
func (r *MissingWhitespaceAroundOperatorRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	var (
		problems []lint.Problem
		parens   int
		need     spaceNeed
		prevKind = pytoken.Op
		prevText string
		prevEnd  pytoken.Position
		started  bool
	)

	const missing = "missing whitespace around operator"

	for _, tok := range line.Tokens {
		if skipForSpacing(tok.Kind) {
			continue
		}

		switch tok.Text {
		case "(", "lambda":
			parens++
		case ")":
			parens--
		}

		switch {
		case need.active():
			switch {
			case tok.Start != prevEnd:
				// The operator is followed by whitespace.
				if need.optional && !need.spaced {
					problems = append(problems, lint.AtPos(need.pos, "E225", missing))
				}
				need = spaceNeed{}

			case tok.Text == ">" && (prevText == "<" || prevText == "-"):
				// "<>" and "->" arrive as two tokens.

			case prevText == "/" && (tok.Text == "," || tok.Text == ")" || tok.Text == ":"),
				prevText == ")" && tok.Text == ":":
				// Positional-only parameter marker.

			default:
				if need.required || need.spaced {
					problems = append(problems, lint.AtPos(prevEnd, "E225", missing))
				} else if prevText != "**" {
					code, optype := "E226", "arithmetic"
					switch {
					case prevText == "%":
						code, optype = "E228", "modulo"
					case !inSet(arithmeticOps, prevText):
						code, optype = "E227", "bitwise or shift"
					}
					problems = append(problems, lint.AtPos(need.pos, code,
						fmt.Sprintf("missing whitespace around %s operator", optype)))
				}
				need = spaceNeed{}
			}

		case (tok.Kind == pytoken.Op || tok.Kind == pytoken.Name) && started:
			optional := false

			switch {
			case tok.Text == "=" && parens > 0:
				// Keyword argument or default value.
			case inSet(wsNeededOps, tok.Text):
				need = spaceNeed{required: true}
			case inSet(unaryOps, tok.Text):
				// Binary only after an operand; unary minus, argument
				// unpacking and the like are allowed.
				if (prevKind == pytoken.Op && strings.Contains("}])", prevText)) ||
					(prevKind != pytoken.Op && !lint.IsStyleKeyword(prevText) && !lint.IsSoftKeyword(prevText)) {
					optional = true
				}
			case inSet(wsOptionalOps, tok.Text):
				optional = true
			}

			if optional {
				need = spaceNeed{optional: true, pos: prevEnd, spaced: tok.Start != prevEnd}
			} else if need.required && tok.Start == prevEnd {
				problems = append(problems, lint.AtPos(prevEnd, "E225", missing))
				need = spaceNeed{}
			}
		}

		prevKind = tok.Kind
		prevText = tok.Text
		prevEnd = tok.End
		started = true
	}

	return problems
}

// WhitespaceBeforeParametersRule flags a space before a call or index bracket.
type WhitespaceBeforeParametersRule struct {
	lint.BaseRule
}

// NewWhitespaceBeforeParametersRule creates a new call bracket spacing rule.
func NewWhitespaceBeforeParametersRule() *WhitespaceBeforeParametersRule {
	return &WhitespaceBeforeParametersRule{
		BaseRule: lint.NewBaseRule(
			"whitespace-before-parameters",
			"Avoid whitespace before the bracket that starts an argument list or index",
			lint.KindLogical,
			[]string{"E211"},
			[]string{"whitespace"},
		),
	}
}

// CheckLogical compares each opening bracket with the token before it.
func (r *WhitespaceBeforeParametersRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	tokens := line.Tokens
	if len(tokens) == 0 {
		return nil
	}

	var problems []lint.Problem

	prev := tokens[0]
	for index := 1; index < len(tokens); index++ {
		tok := tokens[index]

		if tok.Kind == pytoken.Op &&
			(tok.Text == "(" || tok.Text == "[") &&
			tok.Start != prev.End &&
			(prev.Kind == pytoken.Name || strings.Contains("}])", prev.Text)) &&
			// "class A (B):" is tolerated.
			(index < 2 || tokens[index-2].Text != "class") &&
			// "return (a for a in b)" and the like.
			!lint.IsKeyword(prev.Text) &&
			!lint.IsSoftKeyword(prev.Text) {
			problems = append(problems, lint.AtPos(prev.End, "E211", fmt.Sprintf("whitespace before '%s'", tok.Text)))
		}

		prev = tok
	}

	return problems
}
