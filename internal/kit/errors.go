package kit

import (
	"errors"
	"fmt"
)

// StatusCode represents the category of a command rejection.
type StatusCode int

const (
	StatusInvalidArgument StatusCode = iota
	StatusFailedPrecondition
	StatusNotFound
)

func (s StatusCode) String() string {
	switch s {
	case StatusInvalidArgument:
		return "INVALID_ARGUMENT"
	case StatusFailedPrecondition:
		return "FAILED_PRECONDITION"
	case StatusNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// CommandError is returned when a command is rejected by business logic.
//
// Cause, when set, is the domain sentinel behind the rejection so callers can
// match it with errors.Is.
type CommandError struct {
	Code    StatusCode
	Message string
	Cause   error
}

func (e *CommandError) Error() string {
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}

// WithCause attaches the underlying domain error.
func (e *CommandError) WithCause(cause error) *CommandError {
	e.Cause = cause
	return e
}

// NewInvalidArgument creates a CommandError for invalid input.
func NewInvalidArgument(message string) *CommandError {
	return &CommandError{Code: StatusInvalidArgument, Message: message}
}

// NewFailedPrecondition creates a CommandError for violated preconditions.
func NewFailedPrecondition(message string) *CommandError {
	return &CommandError{Code: StatusFailedPrecondition, Message: message}
}

// NewFailedPreconditionf creates a CommandError with a formatted message.
func NewFailedPreconditionf(format string, args ...interface{}) *CommandError {
	return &CommandError{Code: StatusFailedPrecondition, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound creates a CommandError for a missing session or entity.
func NewNotFound(message string) *CommandError {
	return &CommandError{Code: StatusNotFound, Message: message}
}

// IsCode reports whether err is, or wraps, a CommandError with the given code.
func IsCode(err error, code StatusCode) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == code
}
