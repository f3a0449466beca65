// Package outcome defines the categorical result every core operation reports.
// Handlers translate codes into HTTP statuses; services never hand a raw
// infrastructure error to the transport layer.
package outcome

import "fmt"

type Code int

const (
	OK Code = iota
	NotFound
	Forbidden
	BadInput
	Internal
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case NotFound:
		return "NOT_FOUND"
	case Forbidden:
		return "FORBIDDEN"
	case BadInput:
		return "BAD_INPUT"
	default:
		return "INTERNAL"
	}
}

// Error is an expected, recoverable failure with a human-readable message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Code: NotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...interface{}) *Error {
	return &Error{Code: Forbidden, Message: fmt.Sprintf(format, args...)}
}

func BadInputf(format string, args ...interface{}) *Error {
	return &Error{Code: BadInput, Message: fmt.Sprintf(format, args...)}
}

func Internalf(format string, args ...interface{}) *Error {
	return &Error{Code: Internal, Message: fmt.Sprintf(format, args...)}
}

// CodeOf classifies an error returned by a service operation. Anything that is
// not an *Error counts as Internal so that unexpected faults can never map to
// a success status.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	if oe, ok := err.(*Error); ok {
		return oe.Code
	}
	return Internal
}
