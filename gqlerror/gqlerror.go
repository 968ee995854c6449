// Package gqlerror holds the errors raised while reading GraphQL source.
package gqlerror

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind uint

const (
	// KindSyntax means no lexical rule matched the remaining input.
	KindSyntax ErrorKind = iota
	// KindUnexpected means the parser found a token (or EOF) it did not expect.
	KindUnexpected
	// KindEscape means a string literal held a malformed escape sequence.
	KindEscape
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindUnexpected:
		return "unexpected"
	case KindEscape:
		return "escape"
	}
	return "unknown"
}

var (
	ErrSyntax     = errors.New("graphql: syntax error")
	ErrUnexpected = errors.New("graphql: unexpected token")
	ErrEscape     = errors.New("graphql: invalid escape sequence")
)

// Error is returned for any malformed input. Line and Column are 1-based and
// zero when the position is unknown.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
	Excerpt string
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Line, e.Column)
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrSyntax:
		return e.Kind == KindSyntax
	case ErrUnexpected:
		return e.Kind == KindUnexpected
	case ErrEscape:
		return e.Kind == KindEscape
	}
	return false
}

func New(kind ErrorKind, line, column int, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  column,
	}
}

// Preview returns the first line of s, cut to at most 20 runes.
func Preview(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	r := []rune(s)
	if len(r) > 20 {
		r = r[:20]
	}
	return string(r)
}
