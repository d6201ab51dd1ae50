package recmap

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Error Codes
// --------------------------------------------------------------------------

// ErrCode classifies the failures the container can raise.
type ErrCode uint64

const (
	ErrCReadOnly      ErrCode = iota + 1 // 1: Mutation attempted on a sealed map or view.
	ErrCCastFailed                       // 2: A value could not be coerced to the requested kind.
	ErrCVisitorFailed                    // 3: A traversal callback raised an unexpected error.
	ErrCNoSuchElement                    // 4: An iterator has no current or next element.
	ErrCInvalidArg                       // 5: Malformed constructor input or nil-where-required argument.
)

// String returns the symbolic name of the error code.
func (c ErrCode) String() string {
	switch c {
	case ErrCReadOnly:
		return "ReadOnly"
	case ErrCCastFailed:
		return "CastFailed"
	case ErrCVisitorFailed:
		return "VisitorFailed"
	case ErrCNoSuchElement:
		return "NoSuchElement"
	case ErrCInvalidArg:
		return "InvalidArgument"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is the error type for all failures raised by this package. It wraps
// an error code, the name of the offending operation and an optional cause.
type Error struct {
	Code  ErrCode // The error code
	Op    string  // The operation that failed (e.g. "put", "delete", "cast")
	Msg   string  // The error message
	Cause error   // The underlying cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("recmap: %s (code %s, op %s): %v", e.Msg, e.Code, e.Op, e.Cause)
	}
	return fmt.Sprintf("recmap: %s (code %s, op %s)", e.Msg, e.Code, e.Op)
}

// Unwrap returns the underlying cause of the error (may be nil).
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code, operation and message.
func NewError(code ErrCode, op, msg string) *Error {
	return &Error{Code: code, Op: op, Msg: msg}
}

// --------------------------------------------------------------------------
// Constructors for the individual error kinds
// --------------------------------------------------------------------------

func errReadOnly(op string) *Error {
	return NewError(ErrCReadOnly, op, "map is read-only")
}

func errCastFailed(op string, value any, target Kind) *Error {
	return NewError(ErrCCastFailed, op, fmt.Sprintf("cannot cast %T to kind %s", value, target))
}

func errNoSuchElement(op string) *Error {
	return NewError(ErrCNoSuchElement, op, "no such element")
}

func errInvalidArg(op, msg string) *Error {
	return NewError(ErrCInvalidArg, op, msg)
}

func errVisitorFailed(cause error) *Error {
	return &Error{
		Code:  ErrCVisitorFailed,
		Op:    "forEach",
		Msg:   "visitor raised an error",
		Cause: cause,
	}
}

// --------------------------------------------------------------------------
// Predicates
// --------------------------------------------------------------------------

// is reports whether err is an *Error with the given code.
func is(err error, code ErrCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsReadOnly reports whether err signals a mutation on a sealed map or view.
func IsReadOnly(err error) bool { return is(err, ErrCReadOnly) }

// IsCastFailed reports whether err signals a failed kind coercion.
func IsCastFailed(err error) bool { return is(err, ErrCCastFailed) }

// IsVisitorFailed reports whether err wraps a failure raised inside a
// traversal callback.
func IsVisitorFailed(err error) bool { return is(err, ErrCVisitorFailed) }

// IsNoSuchElement reports whether err signals an exhausted or unset iterator.
func IsNoSuchElement(err error) bool { return is(err, ErrCNoSuchElement) }

// IsInvalidArgument reports whether err signals malformed input.
func IsInvalidArgument(err error) bool { return is(err, ErrCInvalidArg) }
