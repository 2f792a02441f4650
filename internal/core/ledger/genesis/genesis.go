// Package genesis seeds the initial accounts of a ledger.
package genesis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
	crypto "github.com/LeJamon/goPreauthLedger/internal/crypto/common"
)

var (
	// ErrDuplicateAccount is returned when an address is listed twice.
	ErrDuplicateAccount = errors.New("duplicate genesis account")

	// ErrNegativeBalance is returned for an account seeded below zero.
	ErrNegativeBalance = errors.New("negative genesis balance")

	// ErrInvalidFlags is returned for unknown account flag bits.
	ErrInvalidFlags = errors.New("invalid genesis account flags")
)

// Account describes one seeded account.
type Account struct {
	Address string `mapstructure:"address" json:"address"`
	Balance int64  `mapstructure:"balance" json:"balance"`
	Flags   uint32 `mapstructure:"flags" json:"flags"`
}

// Entries validates accounts and converts them to ledger entries.
func Entries(accounts []Account) ([]*sle.AccountEntry, error) {
	seen := make(map[sle.AccountID]bool, len(accounts))
	out := make([]*sle.AccountEntry, 0, len(accounts))

	for _, a := range accounts {
		id, err := sle.DecodeAccountID(a.Address)
		if err != nil {
			return nil, fmt.Errorf("genesis account %q: %w", a.Address, err)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, a.Address)
		}
		if a.Balance < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNegativeBalance, a.Address)
		}
		if a.Flags&^entry.AccountAuthMask != 0 {
			return nil, fmt.Errorf("%w: %s has %#x", ErrInvalidFlags, a.Address, a.Flags)
		}
		seen[id] = true
		out = append(out, &sle.AccountEntry{AccountID: id, Balance: a.Balance, Flags: a.Flags})
	}
	return out, nil
}

// Seed inserts the accounts that do not exist yet in one commit and returns
// how many were created. Existing accounts are left untouched.
func Seed(ctx context.Context, store tx.LedgerEntryStore, accounts []*sle.AccountEntry) (int, error) {
	changes := make([]tx.Change, 0, len(accounts))
	for _, a := range accounts {
		existing, err := store.Read(ctx, a.Key())
		if err != nil {
			return 0, err
		}
		if existing != nil {
			continue
		}
		data, err := sle.SerializeAccount(a)
		if err != nil {
			return 0, err
		}
		changes = append(changes, tx.Change{Action: tx.ActionInsert, Key: a.Key(), After: data})
	}
	if err := store.Apply(ctx, changes); err != nil {
		return 0, fmt.Errorf("seed genesis accounts: %w", err)
	}
	return len(changes), nil
}

// StateHash fingerprints a set of seeded accounts independent of order.
func StateHash(accounts []*sle.AccountEntry) ([32]byte, error) {
	encoded := make([][]byte, 0, len(accounts))
	for _, a := range accounts {
		data, err := sle.SerializeAccount(a)
		if err != nil {
			return [32]byte{}, err
		}
		encoded = append(encoded, data)
	}
	sort.Slice(encoded, func(i, j int) bool { return bytes.Compare(encoded[i], encoded[j]) < 0 })
	return crypto.Sha512Half(encoded...), nil
}
