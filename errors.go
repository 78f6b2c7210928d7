package regarray

import (
	"errors"
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// Errors
///////////////////////////////////////////////////////////////////////////////

// Base error kinds. Every construction failure wraps exactly one of them,
// so callers can test with errors.Is.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrLex                 = errors.New("unknown token")
	ErrUnknownValidator    = errors.New("unknown validator")
	ErrRange               = errors.New("invalid quantifier range")
	ErrQuantifierPlacement = errors.New("misplaced quantifier")
	ErrUnbalancedGroup     = errors.New("unbalanced group")
	ErrParserInternal      = errors.New("internal parser error")
	ErrNotSequence         = errors.New("value is not a sequence")
)

// ExpressionError is an error that occurred while compiling an expression.
//
// Offset is the byte offset into the expression source where the problem
// was found, or -1 when the error has no position (e.g. a bad validator
// override). Symbol holds the offending text, if any.
type ExpressionError struct {
	Kind   error
	Source string
	Offset int
	Symbol string
	reason string
}

// Error implements the error interface
func (ee *ExpressionError) Error() string {
	msg := ee.Kind.Error()
	if ee.reason != "" {
		msg += ": " + ee.reason
	}
	if ee.Offset >= 0 {
		msg += fmt.Sprintf(" at character %d", ee.Offset)
	}
	return msg
}

// Unwrap returns the error kind.
func (ee *ExpressionError) Unwrap() error {
	return ee.Kind
}

func newExpressionError(kind error, source string, offset int, symbol string, format string, args ...any) *ExpressionError {
	reason := format
	if len(args) > 0 {
		reason = fmt.Sprintf(format, args...)
	}
	return &ExpressionError{
		Kind:   kind,
		Source: source,
		Offset: offset,
		Symbol: symbol,
		reason: reason,
	}
}

func tokenError(kind error, source string, tok Token, format string, args ...any) *ExpressionError {
	return newExpressionError(kind, source, tok.Offset, tok.Text, format, args...)
}
