package sle

import "github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"

// Authorizable is implemented by the sibling entry types that carry issuer
// authorization for (holder, asset): trust lines and preauthorizations.
type Authorizable interface {
	Key() keylet.Keylet
	Holder() AccountID
	HeldAsset() Asset
	AuthFlags() uint32
	SetAuthFlags(flags uint32)
	Serialize() ([]byte, error)
}

var (
	_ Authorizable = (*TrustLineEntry)(nil)
	_ Authorizable = (*PreauthorizationEntry)(nil)
)
