package document

import (
	"errors"
	"fmt"
)

// ErrMalformed reports JSON structure the decoder accepted token by token but
// that does not form exactly one document.
var ErrMalformed = errors.New("malformed JSON")

// SyntaxError locates a decoding failure in the source text.
type SyntaxError struct {
	Pos Position
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v (line %d, column %d)", e.Err, e.Pos.Line+1, e.Pos.Column+1)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
