package diagnostics

import (
	"fmt"

	"github.com/funvibe/seam/internal/token"
)

// Error is a positioned diagnostic. Codes are stable identifiers: L### for
// lexing, P### for parsing, T### for type checking.
type Error struct {
	Code    string
	Message string
	File    string
	Line    int
	Column  int
}

func NewError(code string, tok token.Token, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.File, e.Line, e.Column, e.Code, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
