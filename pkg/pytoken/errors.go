package pytoken

import (
	"errors"
	"fmt"
)

// Sentinel errors for malformed input. The Tokenizer wraps them in *Error.
var (
	ErrUnterminatedString = errors.New("EOF in multi-line string")
	ErrEOFInStatement     = errors.New("EOF in multi-line statement")
	ErrIndentation        = errors.New("unindent does not match any outer indentation level")
)

// Error reports where tokenizing stopped.
type Error struct {
	Pos Position
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %v", e.Pos.Row, e.Pos.Col, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
