package allowtrust

import (
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
)

func init() {
	tx.Register(tx.OpAllowTrust, func() tx.Operation {
		return &AllowTrust{}
	})
}

// AllowTrust sets the issuer authorization of Trustor in an asset issued by
// the source account. It applies to the trust line and the preauthorization
// at that key, whichever exist.
type AllowTrust struct {
	Trustor   sle.AccountID `json:"trustor"`
	AssetCode string        `json:"asset_code"`

	// Authorize is the new flag value: 0, Authorized or
	// AuthorizedToMaintainLiabilities.
	Authorize uint32 `json:"authorize"`
}

// NewAllowTrust creates a new AllowTrust operation
func NewAllowTrust(trustor sle.AccountID, assetCode string, authorize uint32) *AllowTrust {
	return &AllowTrust{Trustor: trustor, AssetCode: assetCode, Authorize: authorize}
}

// Type returns the operation type
func (op *AllowTrust) Type() tx.OperationType {
	return tx.OpAllowTrust
}

// Preflight validates the asset code and the authorize value
func (op *AllowTrust) Preflight() tx.Result {
	if sle.ValidateAssetCode(op.AssetCode) != nil || op.Trustor.IsZero() {
		return Malformed
	}
	if op.Authorize&^entry.AuthorizationMask != 0 || op.Authorize == entry.AuthorizationMask {
		return Malformed
	}
	return Success
}

// Apply applies the AllowTrust operation to ledger state.
func (op *AllowTrust) Apply(ctx *tx.ApplyContext) (tx.Result, error) {
	if op.Trustor == ctx.SourceID {
		return SelfNotAllowed, nil
	}

	issuer, err := ctx.SourceAccount()
	if err != nil {
		return nil, err
	}
	if !issuer.AuthRequired() {
		return TrustNotRequired, nil
	}

	asset := sle.Asset{Code: op.AssetCode, Issuer: ctx.SourceID}
	targets, err := loadTargets(ctx.View, op.Trustor, asset)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return NoTrustLine, nil
	}

	if !issuer.AuthRevocable() {
		for _, t := range targets {
			if revokes(t.AuthFlags(), op.Authorize) {
				return CantRevoke, nil
			}
		}
	}

	for _, t := range targets {
		t.SetAuthFlags(op.Authorize)
		if err := sle.UpdateEntry(ctx.View, t); err != nil {
			return nil, err
		}
	}
	return Success, nil
}

// loadTargets returns the trust line and preauthorization at (trustor, asset)
// that exist, in that order.
func loadTargets(view sle.LedgerView, trustor sle.AccountID, asset sle.Asset) ([]sle.Authorizable, error) {
	var targets []sle.Authorizable

	line, err := sle.ReadTrustLine(view, trustor, asset)
	if err != nil {
		return nil, err
	}
	if line != nil {
		targets = append(targets, line)
	}

	p, err := sle.ReadPreauthorization(view, trustor, asset)
	if err != nil {
		return nil, err
	}
	if p != nil {
		targets = append(targets, p)
	}
	return targets, nil
}

// revokes reports whether moving from current to next takes authorization away.
func revokes(current, next uint32) bool {
	if current&entry.Authorized != 0 && next&entry.Authorized == 0 {
		return true
	}
	return current&entry.AuthorizedToMaintainLiabilities != 0 && next == 0
}
