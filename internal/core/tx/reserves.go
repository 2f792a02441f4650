package tx

import (
	"fmt"

	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
)

// ReserveLedger tracks native balances and the reserve requirements on them.
type ReserveLedger interface {
	// AvailableBalance is the balance above the account's minimum balance.
	// It is negative when the account is below its reserve.
	AvailableBalance(id sle.AccountID) (int64, error)

	// AvailableLimit is how much may be credited before the native ceiling.
	AvailableLimit(id sle.AccountID) (int64, error)

	// Debit removes amount from the balance. It fails with
	// ErrInsufficientBalance if the available balance is smaller than amount.
	Debit(id sle.AccountID, amount int64) error

	// Credit adds amount to the balance. It fails with ErrLineFull if the
	// result would exceed the ceiling.
	Credit(id sle.AccountID, amount int64) error

	// AddSubEntries adjusts the number of reserve-bearing sub-entries.
	AddSubEntries(id sle.AccountID, delta int32) error
}

// MinBalance returns the minimum balance for an account holding numSubEntries.
func MinBalance(cfg Config, numSubEntries uint32) int64 {
	return (2 + int64(numSubEntries)) * cfg.BaseReserve
}

// accountReserves implements ReserveLedger over account entries in a view,
// so reserve effects commit or roll back with the rest of the operation.
type accountReserves struct {
	view sle.LedgerView
	cfg  Config
}

// NewReserveLedger returns a ReserveLedger backed by account entries in view.
func NewReserveLedger(view sle.LedgerView, cfg Config) ReserveLedger {
	return &accountReserves{view: view, cfg: cfg}
}

func (r *accountReserves) load(id sle.AccountID) (*sle.AccountEntry, error) {
	acct, err := sle.ReadAccount(r.view, id)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoAccount, id)
	}
	return acct, nil
}

func (r *accountReserves) AvailableBalance(id sle.AccountID) (int64, error) {
	acct, err := r.load(id)
	if err != nil {
		return 0, err
	}
	return acct.Balance - MinBalance(r.cfg, acct.NumSubEntries), nil
}

func (r *accountReserves) AvailableLimit(id sle.AccountID) (int64, error) {
	acct, err := r.load(id)
	if err != nil {
		return 0, err
	}
	return r.cfg.MaxNativeBalance - acct.Balance, nil
}

func (r *accountReserves) Debit(id sle.AccountID, amount int64) error {
	acct, err := r.load(id)
	if err != nil {
		return err
	}
	if amount < 0 || acct.Balance-MinBalance(r.cfg, acct.NumSubEntries) < amount {
		return fmt.Errorf("%w: debit %d from %s", ErrInsufficientBalance, amount, id)
	}
	acct.Balance -= amount
	return sle.WriteAccount(r.view, acct)
}

func (r *accountReserves) Credit(id sle.AccountID, amount int64) error {
	acct, err := r.load(id)
	if err != nil {
		return err
	}
	if amount < 0 || r.cfg.MaxNativeBalance-acct.Balance < amount {
		return fmt.Errorf("%w: credit %d to %s", ErrLineFull, amount, id)
	}
	acct.Balance += amount
	return sle.WriteAccount(r.view, acct)
}

func (r *accountReserves) AddSubEntries(id sle.AccountID, delta int32) error {
	acct, err := r.load(id)
	if err != nil {
		return err
	}
	n := int64(acct.NumSubEntries) + int64(delta)
	if n < 0 {
		return fmt.Errorf("sub-entry count underflow for %s", id)
	}
	acct.NumSubEntries = uint32(n)
	return sle.WriteAccount(r.view, acct)
}
