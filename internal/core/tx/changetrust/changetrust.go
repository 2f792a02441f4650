package changetrust

import (
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
)

func init() {
	tx.Register(tx.OpChangeTrust, func() tx.Operation {
		return &ChangeTrust{}
	})
}

// ChangeTrust creates, updates or deletes the source account's trust line
// in an asset.
type ChangeTrust struct {
	// AssetCode and Issuer identify the asset to trust
	AssetCode string        `json:"asset_code"`
	Issuer    sle.AccountID `json:"issuer"`

	// Limit is the maximum balance the source will hold. Zero deletes the line.
	Limit int64 `json:"limit"`
}

// NewChangeTrust creates a new ChangeTrust operation
func NewChangeTrust(asset sle.Asset, limit int64) *ChangeTrust {
	return &ChangeTrust{AssetCode: asset.Code, Issuer: asset.Issuer, Limit: limit}
}

// Type returns the operation type
func (op *ChangeTrust) Type() tx.OperationType {
	return tx.OpChangeTrust
}

// Asset returns the asset named by the operation.
func (op *ChangeTrust) Asset() sle.Asset {
	return sle.Asset{Code: op.AssetCode, Issuer: op.Issuer}
}

// Preflight validates the asset and limit
func (op *ChangeTrust) Preflight() tx.Result {
	if op.Asset().Validate() != nil || op.Limit < 0 {
		return Malformed
	}
	return Success
}

// Apply applies the ChangeTrust operation to ledger state.
func (op *ChangeTrust) Apply(ctx *tx.ApplyContext) (tx.Result, error) {
	asset := op.Asset()
	if asset.Issuer == ctx.SourceID {
		return SelfNotAllowed, nil
	}

	line, err := sle.ReadTrustLine(ctx.View, ctx.SourceID, asset)
	if err != nil {
		return nil, err
	}
	if line != nil {
		return op.modify(ctx, line)
	}
	return op.create(ctx, asset)
}

func (op *ChangeTrust) modify(ctx *tx.ApplyContext, line *sle.TrustLineEntry) (tx.Result, error) {
	if op.Limit < line.Balance {
		return InvalidLimit, nil
	}

	if op.Limit == 0 {
		// Balance is zero here, so the line can go
		if err := ctx.View.Erase(line.Key()); err != nil {
			return nil, err
		}
		if err := ctx.Reserves.AddSubEntries(ctx.SourceID, -1); err != nil {
			return nil, err
		}
		return Success, nil
	}

	line.Limit = op.Limit
	if err := sle.UpdateEntry(ctx.View, line); err != nil {
		return nil, err
	}
	return Success, nil
}

func (op *ChangeTrust) create(ctx *tx.ApplyContext, asset sle.Asset) (tx.Result, error) {
	if op.Limit == 0 {
		return InvalidLimit, nil
	}

	issuer, err := sle.ReadAccount(ctx.View, asset.Issuer)
	if err != nil {
		return nil, err
	}
	if issuer == nil {
		return NoIssuer, nil
	}

	available, err := ctx.Reserves.AvailableBalance(ctx.SourceID)
	if err != nil {
		return nil, err
	}
	if available < ctx.Config.BaseReserve {
		return LowReserve, nil
	}

	line := &sle.TrustLineEntry{
		AccountID: ctx.SourceID,
		Asset:     asset,
		Limit:     op.Limit,
	}
	if !issuer.AuthRequired() {
		line.Flags = entry.Authorized
	}

	// A preauthorization carries the issuer's decision over to the new line
	p, err := sle.ReadPreauthorization(ctx.View, ctx.SourceID, asset)
	if err != nil {
		return nil, err
	}
	if p != nil {
		line.Flags = p.Flags
	}

	if err := sle.InsertEntry(ctx.View, line); err != nil {
		return nil, err
	}
	if err := ctx.Reserves.AddSubEntries(ctx.SourceID, 1); err != nil {
		return nil, err
	}
	return Success, nil
}
