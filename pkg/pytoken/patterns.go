package pytoken

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const tabSize = 8

const (
	stringPrefix = `(?:[rR][bBfF]?|[bBfF][rR]?|[uU])?`

	decInt   = `[0-9](?:_?[0-9])*`
	exponent = `[eE][-+]?` + decInt

	hexNumber = `0[xX](?:_?[0-9a-fA-F])+`
	binNumber = `0[bB](?:_?[01])+`
	octNumber = `0[oO](?:_?[0-7])+`
	decNumber = `(?:0(?:_?0)*|[1-9](?:_?[0-9])*)`
	intNumber = `(?:` + hexNumber + `|` + binNumber + `|` + octNumber + `|` + decNumber + `)`

	pointFloat = `(?:` + decInt + `\.(?:` + decInt + `)?|\.` + decInt + `)(?:` + exponent + `)?`
	expFloat   = decInt + exponent
	floatNum   = `(?:` + pointFloat + `|` + expFloat + `)`
	imagNumber = `(?:` + decInt + `[jJ]|` + floatNum + `[jJ])`
	number     = `(?:` + imagNumber + `|` + floatNum + `|` + intNumber + `)`

	contSingle = stringPrefix + `'[^\n'\\]*(?:\\.[^\n'\\]*)*(?:'|\\\r?\n)`
	contDouble = stringPrefix + `"[^\n"\\]*(?:\\.[^\n"\\]*)*(?:"|\\\r?\n)`

	// Python's \w is Unicode aware; Go's is ASCII only.
	word = `[\p{L}\p{N}\p{M}\p{Pc}]+`
)

// operators lists every exact operator token. Sorted in reverse so that
// longer operators sharing a prefix are tried first.
var operators = []string{
	"!=", "%", "%=", "&", "&=", "(", ")", "*", "**", "**=", "*=", "+", "+=",
	",", "-", "-=", "->", ".", "...", "/", "//", "//=", "/=", ":", ":=", ";",
	"<", "<<", "<<=", "<=", "=", "==", ">", ">=", ">>", ">>=", "@", "@=",
	"[", "]", "^", "^=", "{", "|", "|=", "}", "~",
}

var pseudoToken = buildPseudoToken()

func buildPseudoToken() *regexp.Regexp {
	ops := slices.Clone(operators)
	slices.Sort(ops)
	slices.Reverse(ops)

	quoted := make([]string, len(ops))
	for i, op := range ops {
		quoted[i] = regexp.QuoteMeta(op)
	}

	alternatives := []string{
		`\\\r?\n`,
		`\z`,
		`#[^\r\n]*`,
		stringPrefix + `'''`,
		stringPrefix + `"""`,
		number,
		`\r?\n`,
		strings.Join(quoted, "|"),
		contSingle,
		contDouble,
		word,
	}

	return regexp.MustCompile(`^[ \f\t]*(` + strings.Join(alternatives, "|") + `)`)
}

// validPrefix reports whether s is a legal string literal prefix.
func validPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "", "r", "u", "f", "b", "br", "rb", "fr", "rf":
		return true
	default:
		return false
	}
}

// tripleQuote returns the closing delimiter when tok opens a triple-quoted string.
func tripleQuote(tok string) (string, bool) {
	if len(tok) < 3 {
		return "", false
	}

	quote := tok[len(tok)-3:]
	if quote != `'''` && quote != `"""` {
		return "", false
	}

	return quote, validPrefix(tok[:len(tok)-3])
}

// singleQuote returns the quote character when tok starts a single-quoted string.
func singleQuote(tok string) (string, bool) {
	idx := strings.IndexAny(tok, `'"`)
	if idx < 0 || idx > 2 || !validPrefix(tok[:idx]) {
		return "", false
	}

	return tok[idx : idx+1], true
}

// findClose returns the index just past the first unescaped quote at or
// after pos, or -1 when the line does not close the string.
func findClose(line string, pos int, quote string) int {
	for i := pos; i < len(line); {
		switch {
		case line[i] == '\\':
			i += 2
		case strings.HasPrefix(line[i:], quote):
			return i + len(quote)
		default:
			i++
		}
	}

	return -1
}

func isIdentStart(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)

	return r == '_' || unicode.IsLetter(r)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
