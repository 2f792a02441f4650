package preauth

import (
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
)

// RemovePreauthorization deletes a preauthorization created by the source
// account and refunds the reserve recorded on it.
type RemovePreauthorization struct {
	// AccountID is the preauthorized account
	AccountID sle.AccountID `json:"account_id"`

	// AssetCode is the code of the asset issued by the source account
	AssetCode string `json:"asset_code"`
}

// NewRemovePreauthorization creates a new RemovePreauthorization operation
func NewRemovePreauthorization(accountID sle.AccountID, assetCode string) *RemovePreauthorization {
	return &RemovePreauthorization{AccountID: accountID, AssetCode: assetCode}
}

// Type returns the operation type
func (op *RemovePreauthorization) Type() tx.OperationType {
	return tx.OpRemovePreauthorization
}

// Preflight validates the asset code and target account
func (op *RemovePreauthorization) Preflight() tx.Result {
	if sle.ValidateAssetCode(op.AssetCode) != nil || op.AccountID.IsZero() {
		return RemovePreauthorizationMalformed
	}
	return RemovePreauthorizationSuccess
}

// Apply applies the RemovePreauthorization operation to ledger state.
// A sibling trust line is left untouched.
func (op *RemovePreauthorization) Apply(ctx *tx.ApplyContext) (tx.Result, error) {
	asset := sle.Asset{Code: op.AssetCode, Issuer: ctx.SourceID}
	if asset.Validate() != nil {
		return RemovePreauthorizationMalformed, nil
	}

	p, err := sle.ReadPreauthorization(ctx.View, op.AccountID, asset)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return RemovePreauthorizationDoesNotExist, nil
	}

	// Refund what was paid, not the current base reserve
	limit, err := ctx.Reserves.AvailableLimit(ctx.SourceID)
	if err != nil {
		return nil, err
	}
	if p.Reserve > limit {
		return RemovePreauthorizationLineFull, nil
	}

	if err := ctx.Reserves.Credit(ctx.SourceID, p.Reserve); err != nil {
		return nil, err
	}
	if err := ctx.View.Erase(p.Key()); err != nil {
		return nil, err
	}
	return RemovePreauthorizationSuccess, nil
}
