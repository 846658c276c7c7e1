package pytoken

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExpandIndent returns the width of the leading whitespace of line, with
// tabs expanded to the next multiple of 8.
func ExpandIndent(line string) int {
	line = strings.TrimRight(line, "\n\r")

	if !strings.Contains(line, "\t") {
		rest := strings.TrimLeftFunc(line, unicode.IsSpace)

		return utf8.RuneCountInString(line) - utf8.RuneCountInString(rest)
	}

	width := 0

	for _, r := range line {
		switch r {
		case '\t':
			width = width/tabSize*tabSize + tabSize
		case ' ':
			width++
		default:
			return width
		}
	}

	return width
}

// MuteString replaces the contents of a string literal with 'x' while
// keeping its prefix, delimiters and byte length.
//
//	MuteString(`"abc"`)     == `"xxx"`
//	MuteString(`r'abc'`)    == `r'xxx'`
//	MuteString(`'''abc'''`) == `'''xxx'''`
func MuteString(text string) string {
	if text == "" {
		return text
	}

	start := strings.IndexByte(text, text[len(text)-1]) + 1
	end := len(text) - 1

	if strings.HasSuffix(text, `"""`) || strings.HasSuffix(text, `'''`) {
		start += 2
		end -= 2
	}

	if end <= start {
		return text
	}

	return text[:start] + strings.Repeat("x", end-start) + text[end:]
}
