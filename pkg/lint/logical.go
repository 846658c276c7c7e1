package lint

import (
	"cmp"
	"slices"
	"strings"

	"github.com/yaklabco/pystyle/pkg/pytoken"
)

// Breakpoint records that the logical text up to Offset ends at source position Pos.
type Breakpoint struct {
	Offset int
	Pos    pytoken.Position
}

// Mapping translates logical-line offsets to source positions. Breakpoints
// are ordered by Offset.
type Mapping []Breakpoint

// Translate converts an offset within the logical text to a source position.
// It uses the first breakpoint at or after offset and walks back from that
// breakpoint's position by the residual distance. Offsets beyond the text
// are measured from the last breakpoint.
func (m Mapping) Translate(offset int) pytoken.Position {
	if len(m) == 0 {
		return pytoken.Position{}
	}

	idx, _ := slices.BinarySearchFunc(m, offset, func(bp Breakpoint, target int) int {
		return cmp.Compare(bp.Offset, target)
	})
	if idx >= len(m) {
		idx = len(m) - 1
	}

	bp := m[idx]

	return pytoken.Position{Row: bp.Pos.Row, Col: bp.Pos.Col + offset - bp.Offset}
}

// Start returns the source position of the first token, or the zero position.
func (m Mapping) Start() pytoken.Position {
	if len(m) == 0 {
		return pytoken.Position{}
	}

	return m[0].Pos
}

// skipToken reports whether a token never contributes to a logical line.
func skipToken(kind pytoken.Kind) bool {
	switch kind {
	case pytoken.NL, pytoken.Newline, pytoken.Indent, pytoken.Dedent:
		return true
	default:
		return false
	}
}

// BuildLogicalLine flattens the tokens of one statement into normalized text.
//
// Comments are returned separately and never appear in the text. String
// literals are muted. Tokens on different rows are joined by one space unless
// the join follows an opening bracket or precedes a closing one (a trailing
// comma always gets the space). Tokens on the same row keep the original
// whitespace between them. The mapping is nil when no token contributes.
func BuildLogicalLine(tokens []pytoken.Token, lines []string) (string, Mapping, []string) {
	var (
		text     strings.Builder
		mapping  Mapping
		comments []string
		prev     pytoken.Position
		hasPrev  bool
	)

	for _, tok := range tokens {
		if skipToken(tok.Kind) {
			continue
		}

		if mapping == nil {
			mapping = Mapping{{Offset: 0, Pos: tok.Start}}
		}

		if tok.Kind == pytoken.Comment {
			comments = append(comments, tok.Text)

			continue
		}

		fragment := tok.Text
		if tok.Kind == pytoken.String {
			fragment = pytoken.MuteString(fragment)
		}

		if hasPrev {
			switch {
			case prev.Row != tok.Start.Row:
				prevChar := charBefore(lines, prev)
				if prevChar == ',' || (!strings.ContainsRune("{[(", rune(prevChar)) && !strings.Contains("}])", fragment)) {
					fragment = " " + fragment
				}
			case prev.Col != tok.Start.Col:
				if prev.Col < tok.Start.Col && tok.Start.Col <= len(tok.Line) {
					fragment = tok.Line[prev.Col:tok.Start.Col] + fragment
				}
			}
		}

		text.WriteString(fragment)
		mapping = append(mapping, Breakpoint{Offset: text.Len(), Pos: tok.End})
		prev = tok.End
		hasPrev = true
	}

	return text.String(), mapping, comments
}

// charBefore returns the byte just before pos in its source line. A column
// of zero wraps to the last byte of the line.
func charBefore(lines []string, pos pytoken.Position) byte {
	if pos.Row < 1 || pos.Row > len(lines) {
		return 0
	}

	line := lines[pos.Row-1]
	if line == "" {
		return 0
	}

	idx := pos.Col - 1
	if idx < 0 || idx >= len(line) {
		idx = len(line) - 1
	}

	return line[idx]
}
