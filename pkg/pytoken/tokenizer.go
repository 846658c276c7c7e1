package pytoken

import (
	"io"
	"iter"
	"slices"
	"strings"
	"unicode/utf8"
)

// Tokenizer lazily splits Python source into tokens. Lines are pulled one at
// a time from a readline callback which returns "" at end of input.
//
// A Tokenizer cannot be rewound; create a new one over a fresh line source
// to tokenize again.
type Tokenizer struct {
	readline func() string

	queue []Token
	err   error
	done  bool

	lnum      int
	parenlev  int
	continued bool
	indents   []int

	// Continued string state.
	inString bool
	needcont bool
	contstr  string
	contline string
	endQuote string
	strstart Position

	line     string
	lastLine string
}

// New returns a Tokenizer reading lines from readline.
func New(readline func() string) *Tokenizer {
	return &Tokenizer{
		readline: readline,
		indents:  []int{0},
	}
}

// LineReader returns a readline callback over a fixed slice of lines.
func LineReader(lines []string) func() string {
	idx := 0

	return func() string {
		if idx >= len(lines) {
			return ""
		}

		line := lines[idx]
		idx++

		return line
	}
}

// Tokenize collects all tokens of lines. On malformed input it returns the
// tokens produced before the fault together with the error.
func Tokenize(lines []string) ([]Token, error) {
	var tokens []Token

	for tok, err := range New(LineReader(lines)).All() {
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, tok)
	}

	return tokens, nil
}

// Next returns the next token. After the end marker it returns io.EOF. A
// malformed input yields a *Error once every token before the fault has
// been returned.
func (t *Tokenizer) Next() (Token, error) {
	for len(t.queue) == 0 {
		if t.err != nil {
			return Token{}, t.err
		}

		if t.done {
			return Token{}, io.EOF
		}

		t.advance()
	}

	tok := t.queue[0]
	t.queue = t.queue[1:]

	return tok, nil
}

// All iterates over the remaining tokens. Iteration stops after the end
// marker, or after yielding a tokenizer error.
func (t *Tokenizer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := t.Next()
			if err == io.EOF {
				return
			}

			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

func (t *Tokenizer) emit(kind Kind, text string, start, end Position, line string) {
	t.queue = append(t.queue, Token{Kind: kind, Text: text, Start: start, End: end, Line: line})
}

func (t *Tokenizer) fail(err error, pos Position) {
	t.err = &Error{Pos: pos, Err: err}
}

func (t *Tokenizer) at(col int) Position {
	return Position{Row: t.lnum, Col: col}
}

// advance reads one physical line and queues its tokens.
func (t *Tokenizer) advance() {
	t.lastLine = t.line
	t.line = t.readline()
	t.lnum++

	line := t.line
	pos := 0

	switch {
	case t.inString:
		if line == "" {
			t.fail(ErrUnterminatedString, t.strstart)

			return
		}

		end := findClose(line, 0, t.endQuote)

		switch {
		case end >= 0:
			pos = end
			t.emit(String, t.contstr+line[:end], t.strstart, t.at(end), t.contline+line)
			t.resetString()
		case t.needcont && !strings.HasSuffix(line, "\\\n") && !strings.HasSuffix(line, "\\\r\n"):
			t.emit(ErrorToken, t.contstr+line, t.strstart, t.at(len(line)), t.contline)
			t.resetString()

			return
		default:
			t.contstr += line
			t.contline += line

			return
		}

	case t.parenlev == 0 && !t.continued:
		if line == "" {
			t.finish()

			return
		}

		column := 0

	measure:
		for pos < len(line) {
			switch line[pos] {
			case ' ':
				column++
			case '\t':
				column = (column/tabSize + 1) * tabSize
			case '\f':
				column = 0
			default:
				break measure
			}
			pos++
		}

		if pos == len(line) {
			t.finish()

			return
		}

		if c := line[pos]; c == '#' || c == '\r' || c == '\n' {
			if c == '#' {
				comment := strings.TrimRight(line[pos:], "\r\n")
				t.emit(Comment, comment, t.at(pos), t.at(pos+len(comment)), line)
				pos += len(comment)
			}

			t.emit(NL, line[pos:], t.at(pos), t.at(len(line)), line)

			return
		}

		if column > t.indents[len(t.indents)-1] {
			t.indents = append(t.indents, column)
			t.emit(Indent, line[:pos], t.at(0), t.at(pos), line)
		}

		for column < t.indents[len(t.indents)-1] {
			if !slices.Contains(t.indents, column) {
				t.fail(ErrIndentation, t.at(pos))

				return
			}

			t.indents = t.indents[:len(t.indents)-1]
			t.emit(Dedent, "", t.at(pos), t.at(pos), line)
		}

	default:
		if line == "" {
			t.fail(ErrEOFInStatement, t.at(0))

			return
		}

		t.continued = false
	}

	t.scan(line, pos)
}

// scan tokenizes the remainder of line starting at pos.
func (t *Tokenizer) scan(line string, pos int) {
	for pos < len(line) {
		match := pseudoToken.FindStringSubmatchIndex(line[pos:])
		if match == nil {
			_, size := utf8.DecodeRuneInString(line[pos:])
			t.emit(ErrorToken, line[pos:pos+size], t.at(pos), t.at(pos+size), line)
			pos += size

			continue
		}

		start, end := pos+match[2], pos+match[3]
		pos = end

		if start == end {
			continue
		}

		tok := line[start:end]
		initial := tok[0]
		spos, epos := t.at(start), t.at(end)

		if quote, ok := tripleQuote(tok); ok {
			if closeAt := findClose(line, pos, quote); closeAt >= 0 {
				pos = closeAt
				t.emit(String, line[start:pos], spos, t.at(pos), line)

				continue
			}

			t.startString(line, start, quote, false)

			return
		}

		switch {
		case isDigit(initial) || (initial == '.' && tok != "." && tok != "..."):
			t.emit(Number, tok, spos, epos, line)
		case initial == '\r' || initial == '\n':
			if t.parenlev > 0 {
				t.emit(NL, tok, spos, epos, line)
			} else {
				t.emit(Newline, tok, spos, epos, line)
			}
		case initial == '#':
			t.emit(Comment, tok, spos, epos, line)
		case isStringStart(tok):
			if tok[len(tok)-1] == '\n' {
				quote, _ := singleQuote(tok)
				t.startString(line, start, quote, true)

				return
			}

			t.emit(String, tok, spos, epos, line)
		case isIdentStart(tok):
			t.emit(Name, tok, spos, epos, line)
		case initial == '\\':
			t.continued = true
		default:
			switch initial {
			case '(', '[', '{':
				t.parenlev++
			case ')', ']', '}':
				t.parenlev--
			}

			t.emit(Op, tok, spos, epos, line)
		}
	}
}

func isStringStart(tok string) bool {
	_, ok := singleQuote(tok)

	return ok
}

func (t *Tokenizer) startString(line string, start int, quote string, needcont bool) {
	t.inString = true
	t.needcont = needcont
	t.endQuote = quote
	t.strstart = t.at(start)
	t.contstr = line[start:]
	t.contline = line
}

func (t *Tokenizer) resetString() {
	t.inString = false
	t.needcont = false
	t.contstr = ""
	t.contline = ""
	t.endQuote = ""
}

// finish queues the implicit trailing tokens at end of input.
func (t *Tokenizer) finish() {
	last := t.lastLine
	if last != "" && !strings.HasSuffix(last, "\n") && !strings.HasSuffix(last, "\r") &&
		!strings.HasPrefix(strings.TrimSpace(last), "#") {
		row := t.lnum - 1
		t.emit(Newline, "", Position{Row: row, Col: len(last)}, Position{Row: row, Col: len(last) + 1}, "")
	}

	for range t.indents[1:] {
		t.emit(Dedent, "", t.at(0), t.at(0), "")
	}

	t.emit(EndMarker, "", t.at(0), t.at(0), "")
	t.done = true
}
