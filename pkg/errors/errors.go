// Package errors carries a machine-readable [Code] alongside error messages
// so that the CLI, the HTTP API and library callers can branch on the kind
// of failure instead of its text.
//
// Codes group by prefix. INVALID_* means the caller supplied bad data,
// NOT_FOUND and FILE_NOT_FOUND mean a missing resource, and DOMAIN_ERROR
// means the data was well-formed but the chart geometry cannot be computed
// from it (for example every value is zero and there are no gridlines).
//
//	if errors.Is(err, errors.ErrCodeDomain) {
//	    // report as 422
//	}
//
// The package shadows the standard library name on purpose; import the
// standard package under another name when both are needed.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code identifies a class of failure.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidSettings Code = "INVALID_SETTINGS"
	ErrCodeInvalidDataset  Code = "INVALID_DATASET"
	ErrCodeInvalidOutput   Code = "INVALID_OUTPUT"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// ErrCodeDomain marks data that parses but violates a layout
	// precondition.
	ErrCodeDomain Code = "DOMAIN_ERROR"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a printf-style message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap is New with a cause. The cause stays reachable through Unwrap.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Domain is shorthand for New(ErrCodeDomain, ...).
func Domain(format string, args ...any) *Error {
	return New(ErrCodeDomain, format, args...)
}

// outermost finds the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := stderrors.As(err, &e)
	return e, ok
}

// Is reports whether the first *Error in err's chain carries code.
func Is(err error, code Code) bool {
	e, ok := outermost(err)
	return ok && e.Code == code
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix and cause for display.
func UserMessage(err error) string {
	if e, ok := outermost(err); ok {
		return e.Message
	}
	return err.Error()
}
