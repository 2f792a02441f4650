package invariant

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
)

// ErrViolation matches every invariant error via errors.Is.
var ErrViolation = errors.New("invariant violation")

// InvariantError represents an error found during invariant checking.
type InvariantError struct {
	Rule        string
	Key         keylet.Keylet
	Description string
	Err         error
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invariant %s violated at %s: %s: %v", e.Rule, e.Key, e.Description, e.Err)
	}
	return fmt.Sprintf("invariant %s violated at %s: %s", e.Rule, e.Key, e.Description)
}

// Unwrap returns the underlying error.
func (e *InvariantError) Unwrap() error {
	return e.Err
}

// Is makes every InvariantError match ErrViolation.
func (e *InvariantError) Is(target error) bool {
	return target == ErrViolation
}

func violation(rule string, k keylet.Keylet, format string, args ...any) *InvariantError {
	return &InvariantError{Rule: rule, Key: k, Description: fmt.Sprintf(format, args...)}
}
