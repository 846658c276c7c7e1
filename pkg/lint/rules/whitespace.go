package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/pystyle/pkg/lint"
)

var (
	keywordRe  = regexp.MustCompile(`(\s*)\b(?:` + strings.Join(lint.StyleKeywords(), "|") + `)\b(\s*)`)
	operatorRe = regexp.MustCompile(`(?:[^,\s])(\s*)(?:[-+*/|!<=>%&^]+|:=)(\s*)`)
)

// ExtraneousWhitespaceRule flags whitespace just inside brackets and before
// separators.
type ExtraneousWhitespaceRule struct {
	lint.BaseRule
}

// NewExtraneousWhitespaceRule creates a new extraneous whitespace rule.
func NewExtraneousWhitespaceRule() *ExtraneousWhitespaceRule {
	return &ExtraneousWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"extraneous-whitespace",
			"Avoid whitespace immediately inside brackets and before a comma, semicolon or colon",
			lint.KindLogical,
			[]string{"E201", "E202", "E203"},
			[]string{"whitespace"},
		),
	}
}

// CheckLogical scans the logical line for bracket and separator spacing.
func (r *ExtraneousWhitespaceRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	text := line.Text

	var problems []lint.Problem

	for found := 0; found+1 < len(text); {
		first, second := text[found], text[found+1]

		switch {
		case strings.IndexByte("[({", first) >= 0 && isSpaceOrTab(second):
			problems = append(problems, lint.At(found+1, "E201", fmt.Sprintf("whitespace after '%c'", first)))
			found += 2

		case isSpaceOrTab(first) && strings.IndexByte("]}),;:", second) >= 0 &&
			(found+2 >= len(text) || text[found+2] != '='):
			if charAt(text, found-1) != ',' {
				code := "E203"
				if strings.IndexByte("}])", second) >= 0 {
					code = "E202"
				}
				problems = append(problems, lint.At(found, code, fmt.Sprintf("whitespace before '%c'", second)))
			}
			found += 2

		default:
			found++
		}
	}

	return problems
}

// WhitespaceAroundKeywordsRule flags tabs and repeated spaces around keywords.
type WhitespaceAroundKeywordsRule struct {
	lint.BaseRule
}

// NewWhitespaceAroundKeywordsRule creates a new keyword spacing rule.
func NewWhitespaceAroundKeywordsRule() *WhitespaceAroundKeywordsRule {
	return &WhitespaceAroundKeywordsRule{
		BaseRule: lint.NewBaseRule(
			"whitespace-around-keywords",
			"Avoid tabs and multiple spaces around keywords",
			lint.KindLogical,
			[]string{"E271", "E272", "E273", "E274"},
			[]string{"whitespace", "keywords"},
		),
	}
}

// CheckLogical inspects the whitespace on both sides of every keyword.
func (r *WhitespaceAroundKeywordsRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	return spacingAround(line.Text, keywordRe, spacingCodes{
		tabBefore:   problemCode{"E274", "tab before keyword"},
		multiBefore: problemCode{"E272", "multiple spaces before keyword"},
		tabAfter:    problemCode{"E273", "tab after keyword"},
		multiAfter:  problemCode{"E271", "multiple spaces after keyword"},
	})
}

// WhitespaceAroundOperatorRule flags tabs and repeated spaces around operators.
type WhitespaceAroundOperatorRule struct {
	lint.BaseRule
}

// NewWhitespaceAroundOperatorRule creates a new operator spacing rule.
func NewWhitespaceAroundOperatorRule() *WhitespaceAroundOperatorRule {
	return &WhitespaceAroundOperatorRule{
		BaseRule: lint.NewBaseRule(
			"whitespace-around-operator",
			"Avoid tabs and multiple spaces around an operator",
			lint.KindLogical,
			[]string{"E221", "E222", "E223", "E224"},
			[]string{"whitespace", "operators"},
		),
	}
}

// CheckLogical inspects the whitespace on both sides of every operator.
func (r *WhitespaceAroundOperatorRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	return spacingAround(line.Text, operatorRe, spacingCodes{
		tabBefore:   problemCode{"E223", "tab before operator"},
		multiBefore: problemCode{"E221", "multiple spaces before operator"},
		tabAfter:    problemCode{"E224", "tab after operator"},
		multiAfter:  problemCode{"E222", "multiple spaces after operator"},
	})
}

type problemCode struct {
	code    string
	message string
}

type spacingCodes struct {
	tabBefore   problemCode
	multiBefore problemCode
	tabAfter    problemCode
	multiAfter  problemCode
}

// spacingAround applies re, whose two groups capture the whitespace before
// and after a token, and reports tabs or runs longer than one character.
func spacingAround(text string, re *regexp.Regexp, codes spacingCodes) []lint.Problem {
	var problems []lint.Problem

	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		before := text[m[2]:m[3]]
		after := text[m[4]:m[5]]

		if strings.Contains(before, "\t") {
			problems = append(problems, lint.At(m[2], codes.tabBefore.code, codes.tabBefore.message))
		} else if len(before) > 1 {
			problems = append(problems, lint.At(m[2], codes.multiBefore.code, codes.multiBefore.message))
		}

		if strings.Contains(after, "\t") {
			problems = append(problems, lint.At(m[4], codes.tabAfter.code, codes.tabAfter.message))
		} else if len(after) > 1 {
			problems = append(problems, lint.At(m[4], codes.multiAfter.code, codes.multiAfter.message))
		}
	}

	return problems
}

func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

// charAt returns text[idx], wrapping negative indexes from the end.
func charAt(text string, idx int) byte {
	if text == "" {
		return 0
	}
	if idx < 0 {
		idx += len(text)
	}
	if idx < 0 || idx >= len(text) {
		return 0
	}
	return text[idx]
}
