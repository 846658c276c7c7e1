package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/pystyle/pkg/lint"
)

var whitespaceAfterCommaRe = regexp.MustCompile(`[,;:]\s*(?:  |\t)`)

// MissingWhitespaceRule requires whitespace after a comma, semicolon or colon.
type MissingWhitespaceRule struct {
	lint.BaseRule
}

// NewMissingWhitespaceRule creates a new missing whitespace rule.
func NewMissingWhitespaceRule() *MissingWhitespaceRule {
	return &MissingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"missing-whitespace",
			"Each comma, semicolon or colon should be followed by whitespace",
			lint.KindLogical,
			[]string{"E231"},
			[]string{"whitespace"},
		),
	}
}

// CheckLogical reports separators glued to the following character.
func (r *MissingWhitespaceRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	text := line.Text

	var problems []lint.Problem

	for index := 0; index < len(text)-1; index++ {
		char := text[index]
		if char != ',' && char != ';' && char != ':' {
			continue
		}

		next, _ := utf8.DecodeRuneInString(text[index+1:])
		if lint.IsIndentWhitespace(next) {
			continue
		}

		before := text[:index]
		switch {
		case char == ':' && isInsideSlice(before):
			continue
		case char == ',' && next == ')':
			// Single element tuple.
			continue
		case char == ':' && next == '=':
			// Assignment expression.
			continue
		}

		problems = append(problems, lint.At(index, "E231", fmt.Sprintf("missing whitespace after '%c'", char)))
	}

	return problems
}

// isInsideSlice reports whether the text before a colon leaves an open
// square bracket that is more recent than any open brace.
func isInsideSlice(before string) bool {
	return strings.Count(before, "[") > strings.Count(before, "]") &&
		strings.LastIndex(before, "{") < strings.LastIndex(before, "[")
}

// WhitespaceAroundCommaRule flags tabs and repeated spaces after separators.
type WhitespaceAroundCommaRule struct {
	lint.BaseRule
}

// NewWhitespaceAroundCommaRule creates a new separator spacing rule.
func NewWhitespaceAroundCommaRule() *WhitespaceAroundCommaRule {
	return &WhitespaceAroundCommaRule{
		BaseRule: lint.NewBaseRule(
			"whitespace-around-comma",
			"Avoid extraneous whitespace after a comma, semicolon or colon",
			lint.KindLogical,
			[]string{"E241", "E242"},
			[]string{"whitespace"},
		),
	}
}

// CheckLogical reports the whitespace run after each separator.
func (r *WhitespaceAroundCommaRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	var problems []lint.Problem

	for _, m := range whitespaceAfterCommaRe.FindAllStringIndex(line.Text, -1) {
		match := line.Text[m[0]:m[1]]
		found := m[0] + 1

		if strings.Contains(match, "\t") {
			problems = append(problems, lint.At(found, "E242", fmt.Sprintf("tab after '%c'", match[0])))
		} else {
			problems = append(problems, lint.At(found, "E241", fmt.Sprintf("multiple spaces after '%c'", match[0])))
		}
	}

	return problems
}

// MissingWhitespaceAfterImportKeywordRule requires a space between import
// and a parenthesized name list.
type MissingWhitespaceAfterImportKeywordRule struct {
	lint.BaseRule
}

// NewMissingWhitespaceAfterImportKeywordRule creates a new import keyword
// spacing rule.
func NewMissingWhitespaceAfterImportKeywordRule() *MissingWhitespaceAfterImportKeywordRule {
	return &MissingWhitespaceAfterImportKeywordRule{
		BaseRule: lint.NewBaseRule(
			"missing-whitespace-after-import-keyword",
			"Separate import from a parenthesized name list with a space",
			lint.KindLogical,
			[]string{"E275"},
			[]string{"whitespace", "imports"},
		),
	}
}

// CheckLogical looks for "import(" in a from-import statement.
func (r *MissingWhitespaceAfterImportKeywordRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	const indicator = " import("

	if !strings.HasPrefix(line.Text, "from ") {
		return nil
	}

	found := strings.Index(line.Text, indicator)
	if found < 0 {
		return nil
	}

	return []lint.Problem{lint.At(found+len(indicator)-1, "E275", "missing whitespace after keyword")}
}

// ImportsOnSeparateLinesRule flags several modules imported by one statement.
type ImportsOnSeparateLinesRule struct {
	lint.BaseRule
}

// NewImportsOnSeparateLinesRule creates a new import splitting rule.
func NewImportsOnSeparateLinesRule() *ImportsOnSeparateLinesRule {
	return &ImportsOnSeparateLinesRule{
		BaseRule: lint.NewBaseRule(
			"imports-on-separate-lines",
			"Place imports on separate lines",
			lint.KindLogical,
			[]string{"E401"},
			[]string{"imports"},
		),
	}
}

// CheckLogical reports the first comma of a plain import statement.
func (r *ImportsOnSeparateLinesRule) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	if !strings.HasPrefix(line.Text, "import ") {
		return nil
	}

	found := strings.IndexByte(line.Text, ',')
	if found < 0 || strings.Contains(line.Text[:found], ";") {
		return nil
	}

	return []lint.Problem{lint.At(found, "E401", "multiple imports on one line")}
}
