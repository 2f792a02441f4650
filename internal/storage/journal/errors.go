package journal

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownDriver is returned for a driver other than sqlite or postgres
	ErrUnknownDriver = errors.New("unknown journal driver")

	// ErrMissingDSN is returned when no data source name is configured
	ErrMissingDSN = errors.New("journal DSN is required")

	// ErrJournalClosed is returned by operations on a closed journal
	ErrJournalClosed = errors.New("journal is closed")
)

// Error provides the failing journal operation alongside its cause.
type Error struct {
	Operation string
	Message   string
	Cause     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(op, msg string, cause error) *Error {
	return &Error{Operation: op, Message: msg, Cause: cause}
}
