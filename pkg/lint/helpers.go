package lint

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Python lexical helpers shared by rules.

// hardKeywords are the reserved words of Python 3.
var hardKeywords = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
}

// softKeywords are the Python 3.11 names that act as keywords only in some
// positions. The later "type" statement is not one of them.
var softKeywords = []string{"_", "case", "match"}

var (
	hardKeywordSet = toSet(hardKeywords)
	softKeywordSet = toSet(softKeywords)
	styleKeywords  = buildStyleKeywords()
)

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// buildStyleKeywords returns the words spacing rules treat as keywords:
// the reserved words plus print, minus the constants.
func buildStyleKeywords() []string {
	out := make([]string, 0, len(hardKeywords)+1)
	for _, w := range hardKeywords {
		switch w {
		case "False", "None", "True":
			continue
		}
		out = append(out, w)
	}
	return append(out, "print")
}

// IsKeyword reports whether word is a reserved word.
func IsKeyword(word string) bool {
	_, ok := hardKeywordSet[word]
	return ok
}

// IsSoftKeyword reports whether word is a soft keyword.
func IsSoftKeyword(word string) bool {
	_, ok := softKeywordSet[word]
	return ok
}

// StyleKeywords returns the keywords that spacing rules inspect.
func StyleKeywords() []string {
	out := make([]string, len(styleKeywords))
	copy(out, styleKeywords)
	return out
}

// IsStyleKeyword reports whether word is one of StyleKeywords.
func IsStyleKeyword(word string) bool {
	if word == "print" {
		return true
	}
	switch word {
	case "False", "None", "True":
		return false
	}
	return IsKeyword(word)
}

// IsIndentWhitespace reports whether r counts as whitespace for spacing
// rules: space, tab, or no-break space.
func IsIndentWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\u00a0'
}

// Fields splits s around runs of Unicode whitespace.
func Fields(s string) []string {
	return strings.FieldsFunc(s, unicode.IsSpace)
}

// RuneLen returns the number of characters in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// TrimLineEnd removes trailing carriage returns and newlines.
func TrimLineEnd(s string) string {
	return strings.TrimRight(s, "\r\n")
}
