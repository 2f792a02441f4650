package tx

import (
	"math"

	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
)

// DefaultBaseReserve is 0.5 units of the native asset expressed in stroops.
const DefaultBaseReserve int64 = 5_000_000

// Config holds the ledger parameters visible to operations.
type Config struct {
	// BaseReserve is the per-entry reserve in stroops.
	BaseReserve int64

	// MaxNativeBalance is the native ceiling an account balance may not exceed.
	MaxNativeBalance int64

	// LedgerSequence is the sequence of the ledger being built.
	LedgerSequence uint32
}

// DefaultConfig returns the parameters used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		BaseReserve:      DefaultBaseReserve,
		MaxNativeBalance: math.MaxInt64,
		LedgerSequence:   1,
	}
}

// ApplyContext provides all the state an operation may touch.
// It is passed to Operation.Apply instead of individual parameters.
type ApplyContext struct {
	// View is the per-operation write-tracking view of the entry store.
	View sle.LedgerView

	// Reserves is the native balance ledger, backed by the same view.
	Reserves ReserveLedger

	// SourceID is the account that submitted the operation.
	SourceID sle.AccountID

	// Config holds the ledger parameters.
	Config Config
}

// SourceAccount loads the source account entry.
func (ctx *ApplyContext) SourceAccount() (*sle.AccountEntry, error) {
	acct, err := sle.ReadAccount(ctx.View, ctx.SourceID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrNoSourceAccount
	}
	return acct, nil
}
