package tx

import "errors"

var (
	// ErrNoSourceAccount is returned when the submitting account has no entry.
	ErrNoSourceAccount = errors.New("source account does not exist")

	// ErrNoAccount is returned when a reserve operation names a missing account.
	ErrNoAccount = errors.New("account does not exist")

	// ErrInsufficientBalance is returned when a debit would breach the minimum balance.
	ErrInsufficientBalance = errors.New("insufficient available balance")

	// ErrLineFull is returned when a credit would exceed the native ceiling.
	ErrLineFull = errors.New("native balance ceiling exceeded")

	// ErrEntryExists is returned when inserting over a live entry.
	ErrEntryExists = errors.New("entry already exists")

	// ErrEntryNotFound is returned when updating or erasing a missing entry.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrUnknownOperationType is returned when decoding an unregistered operation.
	ErrUnknownOperationType = errors.New("unknown operation type")
)
