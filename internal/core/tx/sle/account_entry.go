package sle

import (
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
)

// AccountEntry is the account object backing the reserve ledger.
type AccountEntry struct {
	AccountID AccountID

	// Balance is the native balance in stroops
	Balance int64

	SeqNum int64

	// NumSubEntries counts trust lines and other entries whose reserve is
	// carried by the account's minimum balance
	NumSubEntries uint32

	// Flags holds the AUTH_* issuer flags
	Flags uint32
}

type accountWire struct {
	AccountID     []byte `codec:"account_id"`
	Balance       int64  `codec:"balance"`
	SeqNum        int64  `codec:"seq_num"`
	NumSubEntries uint32 `codec:"num_sub_entries"`
	Flags         uint32 `codec:"flags"`
}

// Key returns the keylet for this account.
func (a *AccountEntry) Key() keylet.Keylet {
	return keylet.Account(a.AccountID)
}

// AuthRequired reports whether holders need the issuer's authorization.
func (a *AccountEntry) AuthRequired() bool {
	return a.Flags&entry.AccountAuthRequired != 0
}

// AuthRevocable reports whether the issuer may revoke authorizations.
func (a *AccountEntry) AuthRevocable() bool {
	return a.Flags&entry.AccountAuthRevocable != 0
}

// SerializeAccount encodes an account entry.
func SerializeAccount(a *AccountEntry) ([]byte, error) {
	return encodeEntry(entry.TypeAccount, accountWire{
		AccountID:     a.AccountID[:],
		Balance:       a.Balance,
		SeqNum:        a.SeqNum,
		NumSubEntries: a.NumSubEntries,
		Flags:         a.Flags,
	})
}

// ParseAccount decodes an account entry.
func ParseAccount(data []byte) (*AccountEntry, error) {
	var w accountWire
	if err := decodeEntry(data, entry.TypeAccount, &w); err != nil {
		return nil, err
	}
	id, err := toAccountID(w.AccountID)
	if err != nil {
		return nil, err
	}
	return &AccountEntry{
		AccountID:     id,
		Balance:       w.Balance,
		SeqNum:        w.SeqNum,
		NumSubEntries: w.NumSubEntries,
		Flags:         w.Flags,
	}, nil
}
