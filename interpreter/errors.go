package interpreter

import (
	"fmt"

	"github.com/devraj/rlox/lexer"
)

// RuntimeError is a failure that occurs while evaluating an already
// syntactically-valid program: a type mismatch, an undefined variable,
// calling a non-callable value, and so on. It carries the offending
// token so the caller can report a line number.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Token.Line, e.Message)
}

func newRuntimeError(tok lexer.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}
