package sle

import "github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"

// LedgerView provides read/write access to ledger state.
// Read returns (nil, nil) when the entry does not exist.
type LedgerView interface {
	// Read reads a ledger entry
	Read(k keylet.Keylet) ([]byte, error)

	// Exists checks if an entry exists
	Exists(k keylet.Keylet) (bool, error)

	// Insert adds a new entry
	Insert(k keylet.Keylet, data []byte) error

	// Update modifies an existing entry
	Update(k keylet.Keylet, data []byte) error

	// Erase removes an entry
	Erase(k keylet.Keylet) error
}
