package tx

import (
	"context"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
)

// Change is one committed write. Before is nil for inserts and After is nil
// for erases.
type Change struct {
	Action Action
	Key    keylet.Keylet
	Before []byte
	After  []byte
}

// LedgerEntryStore is the persistent entry store the engine commits into.
type LedgerEntryStore interface {
	// Read returns the entry at k, or (nil, nil) if there is none.
	Read(ctx context.Context, k keylet.Keylet) ([]byte, error)

	// Apply commits changes atomically: either all of them are visible
	// afterwards or none are.
	Apply(ctx context.Context, changes []Change) error

	// ForEach visits every entry of type t in key order. Returning an error
	// from fn stops iteration and is returned as is.
	ForEach(ctx context.Context, t entry.Type, fn func(k keylet.Keylet, data []byte) error) error
}

// storeView adapts a LedgerEntryStore to the read side of a LedgerView for
// the lifetime of one operation.
type storeView struct {
	ctx   context.Context
	store LedgerEntryStore
}

func (v storeView) Read(k keylet.Keylet) ([]byte, error) {
	return v.store.Read(v.ctx, k)
}
