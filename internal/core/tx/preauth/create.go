package preauth

import (
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
)

func init() {
	tx.Register(tx.OpCreatePreauthorization, func() tx.Operation {
		return &CreatePreauthorization{}
	})
	tx.Register(tx.OpRemovePreauthorization, func() tx.Operation {
		return &RemovePreauthorization{}
	})
}

// CreatePreauthorization lets the source account, as issuer, authorize
// AccountID to hold AssetCode before any trust line exists.
type CreatePreauthorization struct {
	// AccountID is the account being preauthorized
	AccountID sle.AccountID `json:"account_id"`

	// AssetCode is the code of the asset issued by the source account
	AssetCode string `json:"asset_code"`
}

// NewCreatePreauthorization creates a new CreatePreauthorization operation
func NewCreatePreauthorization(accountID sle.AccountID, assetCode string) *CreatePreauthorization {
	return &CreatePreauthorization{AccountID: accountID, AssetCode: assetCode}
}

// Type returns the operation type
func (op *CreatePreauthorization) Type() tx.OperationType {
	return tx.OpCreatePreauthorization
}

// Preflight validates the asset code and target account
func (op *CreatePreauthorization) Preflight() tx.Result {
	if sle.ValidateAssetCode(op.AssetCode) != nil || op.AccountID.IsZero() {
		return CreatePreauthorizationMalformed
	}
	return CreatePreauthorizationSuccess
}

// Apply applies the CreatePreauthorization operation to ledger state.
func (op *CreatePreauthorization) Apply(ctx *tx.ApplyContext) (tx.Result, error) {
	asset := sle.Asset{Code: op.AssetCode, Issuer: ctx.SourceID}
	if asset.Validate() != nil {
		return CreatePreauthorizationMalformed, nil
	}
	// An issuer never holds its own asset, so the entry could not pair
	// with a trust line.
	if op.AccountID == ctx.SourceID {
		return CreatePreauthorizationMalformed, nil
	}

	key := asset.PreauthorizationKey(op.AccountID)
	exists, err := ctx.View.Exists(key)
	if err != nil {
		return nil, err
	}
	if exists {
		return CreatePreauthorizationAlreadyExists, nil
	}

	reserve := ctx.Config.BaseReserve
	available, err := ctx.Reserves.AvailableBalance(ctx.SourceID)
	if err != nil {
		return nil, err
	}
	if available < reserve {
		return CreatePreauthorizationLowReserve, nil
	}

	issuer, err := ctx.SourceAccount()
	if err != nil {
		return nil, err
	}
	flags := entry.Authorized
	if issuer.AuthRequired() {
		flags = 0
	}

	// An existing trust line is authoritative for the flags
	line, err := sle.ReadTrustLine(ctx.View, op.AccountID, asset)
	if err != nil {
		return nil, err
	}
	if line != nil {
		flags = line.Flags
	}

	if err := ctx.Reserves.Debit(ctx.SourceID, reserve); err != nil {
		return nil, err
	}
	p := &sle.PreauthorizationEntry{
		AccountID: op.AccountID,
		Asset:     asset,
		Flags:     flags,
		Reserve:   reserve,
	}
	if err := sle.InsertEntry(ctx.View, p); err != nil {
		return nil, err
	}
	return CreatePreauthorizationSuccess, nil
}
