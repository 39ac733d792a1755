package mathexpr

import "strconv"

// ErrorKind classifies evaluation errors.
type ErrorKind int

const (
	// ErrEmptyExpression indicates the input, or a bracket pair outside a
	// function call, contained no tokens.
	ErrEmptyExpression ErrorKind = iota
	// ErrUnexpectedCharacter indicates the tokenizer emitted an unknown token.
	ErrUnexpectedCharacter
	// ErrUnknownOperator indicates a symbol has no descriptor for the
	// required fixity.
	ErrUnknownOperator
	// ErrUndefinedVariable indicates a variable name missing from the context.
	ErrUndefinedVariable
	// ErrUndefinedFunction indicates a function name missing from the context.
	ErrUndefinedFunction
	// ErrArityMismatch indicates a call with an argument count outside the
	// function's accepted range.
	ErrArityMismatch
	// ErrMismatchedGrouping indicates bracket kinds that don't match, or a
	// close bracket with no open bracket.
	ErrMismatchedGrouping
	// ErrUnbalancedGrouping indicates open brackets remained at the end of
	// the input.
	ErrUnbalancedGrouping
	// ErrMisplacedSeparator indicates a comma outside a function call.
	ErrMisplacedSeparator
	// ErrMalformedExpression indicates operands and operators out of order,
	// e.g. "2 3" or a trailing operator, or value stack underflow or surplus.
	ErrMalformedExpression
	// ErrDomain indicates a numeric operation the backend rejected, e.g.
	// division by zero.
	ErrDomain
	// ErrResourceExhausted indicates the evaluation step budget was exceeded.
	ErrResourceExhausted
)

func (k ErrorKind) String() string {
	switch k {
	case ErrEmptyExpression:
		return "empty expression"
	case ErrUnexpectedCharacter:
		return "unexpected character"
	case ErrUnknownOperator:
		return "unknown operator"
	case ErrUndefinedVariable:
		return "undefined variable"
	case ErrUndefinedFunction:
		return "undefined function"
	case ErrArityMismatch:
		return "wrong number of arguments"
	case ErrMismatchedGrouping:
		return "mismatched brackets"
	case ErrUnbalancedGrouping:
		return "unbalanced brackets"
	case ErrMisplacedSeparator:
		return "misplaced separator"
	case ErrMalformedExpression:
		return "malformed expression"
	case ErrDomain:
		return "domain error"
	case ErrResourceExhausted:
		return "step budget exceeded"
	default:
		return "unknown error"
	}
}

// Error is an error from tokenizing, converting, or evaluating an expression.
type Error struct {
	// Kind is the error classification.
	Kind ErrorKind
	// Col is the rune position in the source expression where the error
	// occurred, counting from 1. It is 0 when no position applies.
	Col int
	// Text is the offending token text, symbol, or name, if any.
	Text string
	// Err is the backend error wrapped by a domain error, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Text != "" {
		msg += " " + strconv.Quote(e.Text)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Col > 0 {
		return "column " + strconv.Itoa(e.Col) + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Pos returns the rune position of the error, counting from 1, or 0 if the
// error has no position.
func (e *Error) Pos() int {
	return e.Col
}

// Is reports whether target is an *Error of the same kind whose Col and Text,
// where set, also match. It allows errors.Is(err, &Error{Kind: k}) checks
// without comparing positions.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Col == 0 || t.Col == e.Col) && (t.Text == "" || t.Text == e.Text)
}
