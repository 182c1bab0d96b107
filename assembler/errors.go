package assembler

import (
	"errors"
	"fmt"
)

var (
	ErrUndefinedLabel  = errors.New("assembler: undefined label")
	ErrValueOutOfRange = errors.New("assembler: value out of range")
)

// ParseError carries the line/column a hand-rolled recursive-descent
// parser naturally accumulates.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("assembler: %d:%d: %s", e.Line, e.Column, e.Message)
}

func newParseError(line, column int, format string, args ...interface{}) error {
	return &ParseError{Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}
