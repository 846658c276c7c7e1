package pytoken

// Kind classifies a token produced by the Tokenizer.
type Kind uint8

// Token kinds mirror the categories of the Python tokenizer.
const (
	EndMarker Kind = iota
	Name
	Number
	String
	Newline // end of a logical line
	Indent
	Dedent
	Op
	Comment
	NL // non-logical newline (blank line, comment line, inside brackets)
	ErrorToken
)

var kindNames = [...]string{
	EndMarker:  "ENDMARKER",
	Name:       "NAME",
	Number:     "NUMBER",
	String:     "STRING",
	Newline:    "NEWLINE",
	Indent:     "INDENT",
	Dedent:     "DEDENT",
	Op:         "OP",
	Comment:    "COMMENT",
	NL:         "NL",
	ErrorToken: "ERRORTOKEN",
}

// String returns the canonical upper-case token kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "UNKNOWN"
}

// IsNewline reports whether the kind terminates a physical line.
func (k Kind) IsNewline() bool {
	return k == Newline || k == NL
}

// Position is a 1-based row and 0-based byte column in the source.
type Position struct {
	Row int
	Col int
}

// Compare orders positions by row, then column.
func (p Position) Compare(other Position) int {
	switch {
	case p.Row != other.Row:
		if p.Row < other.Row {
			return -1
		}

		return 1
	case p.Col < other.Col:
		return -1
	case p.Col > other.Col:
		return 1
	default:
		return 0
	}
}

// Token is one lexical unit. Tokens are immutable once produced.
type Token struct {
	Kind Kind

	// Text is the exact source text of the token. Multi-line strings
	// include their embedded newlines.
	Text string

	// Start is the position of the first byte of the token.
	Start Position

	// End is the position just past the last byte of the token.
	End Position

	// Line is the physical line (or joined lines for a continued string)
	// the token was read from.
	Line string
}

// Multiline reports whether the token text spans more than one physical line.
func (t Token) Multiline() bool {
	return t.Start.Row != t.End.Row
}
