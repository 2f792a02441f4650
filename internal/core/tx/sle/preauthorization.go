package sle

import (
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
)

// PreauthorizationExt is the reserved extension union of a
// preauthorization. Only variant 0 (empty) exists.
type PreauthorizationExt struct {
	V int32
}

// PreauthorizationEntry records an issuer's authorization decision for
// an account that may not hold a trust line yet. It is a top-level entry;
// the reserve backing it is stored on the entry itself rather than on
// either account.
type PreauthorizationEntry struct {
	// AccountID is the holder being (de)authorized
	AccountID AccountID

	// Asset's issuer is the account that created the entry
	Asset Asset

	// Flags mirror TrustLineEntry.Flags
	Flags uint32

	// Reserve is the native amount debited from the creator, refunded
	// verbatim on removal
	Reserve int64

	Ext PreauthorizationExt
}

type preauthWire struct {
	AccountID []byte    `codec:"account_id"`
	Asset     assetWire `codec:"asset"`
	Flags     uint32    `codec:"flags"`
	Reserve   int64     `codec:"reserve"`
	ExtV      int32     `codec:"ext_v"`
}

// Key returns the keylet for this preauthorization.
func (p *PreauthorizationEntry) Key() keylet.Keylet {
	return p.Asset.PreauthorizationKey(p.AccountID)
}

// Holder returns the preauthorized account.
func (p *PreauthorizationEntry) Holder() AccountID { return p.AccountID }

// HeldAsset returns the asset the authorization applies to.
func (p *PreauthorizationEntry) HeldAsset() Asset { return p.Asset }

// AuthFlags returns the authorization bits.
func (p *PreauthorizationEntry) AuthFlags() uint32 { return p.Flags }

// SetAuthFlags replaces the authorization bits.
func (p *PreauthorizationEntry) SetAuthFlags(flags uint32) { p.Flags = flags }

// IsAuthorized reports whether the AUTHORIZED bit is set.
func (p *PreauthorizationEntry) IsAuthorized() bool {
	return p.Flags&entry.Authorized != 0
}

// Serialize encodes the preauthorization.
func (p *PreauthorizationEntry) Serialize() ([]byte, error) {
	return SerializePreauthorization(p)
}

// SerializePreauthorization encodes a preauthorization entry.
func SerializePreauthorization(p *PreauthorizationEntry) ([]byte, error) {
	return encodeEntry(entry.TypePreauthorization, preauthWire{
		AccountID: p.AccountID[:],
		Asset:     p.Asset.wire(),
		Flags:     p.Flags,
		Reserve:   p.Reserve,
		ExtV:      p.Ext.V,
	})
}

// ParsePreauthorization decodes a preauthorization entry.
func ParsePreauthorization(data []byte) (*PreauthorizationEntry, error) {
	var w preauthWire
	if err := decodeEntry(data, entry.TypePreauthorization, &w); err != nil {
		return nil, err
	}
	id, err := toAccountID(w.AccountID)
	if err != nil {
		return nil, err
	}
	asset, err := w.Asset.asset()
	if err != nil {
		return nil, err
	}
	return &PreauthorizationEntry{
		AccountID: id,
		Asset:     asset,
		Flags:     w.Flags,
		Reserve:   w.Reserve,
		Ext:       PreauthorizationExt{V: w.ExtV},
	}, nil
}
