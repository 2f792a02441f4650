package sle

import (
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
)

// TrustLineEntry is an account's holding of a credit asset.
type TrustLineEntry struct {
	AccountID AccountID
	Asset     Asset

	// Balance and Limit are in stroops of the asset
	Balance int64
	Limit   int64

	// Flags holds the issuer authorization bits
	Flags uint32
}

type trustLineWire struct {
	AccountID []byte    `codec:"account_id"`
	Asset     assetWire `codec:"asset"`
	Balance   int64     `codec:"balance"`
	Limit     int64     `codec:"limit"`
	Flags     uint32    `codec:"flags"`
}

// Key returns the keylet for this trust line.
func (tl *TrustLineEntry) Key() keylet.Keylet {
	return tl.Asset.TrustLineKey(tl.AccountID)
}

// Holder returns the account holding the line.
func (tl *TrustLineEntry) Holder() AccountID { return tl.AccountID }

// HeldAsset returns the line's asset.
func (tl *TrustLineEntry) HeldAsset() Asset { return tl.Asset }

// AuthFlags returns the authorization bits.
func (tl *TrustLineEntry) AuthFlags() uint32 { return tl.Flags }

// SetAuthFlags replaces the authorization bits.
func (tl *TrustLineEntry) SetAuthFlags(flags uint32) { tl.Flags = flags }

// IsAuthorized reports whether the AUTHORIZED bit is set.
func (tl *TrustLineEntry) IsAuthorized() bool {
	return tl.Flags&entry.Authorized != 0
}

// Serialize encodes the trust line.
func (tl *TrustLineEntry) Serialize() ([]byte, error) {
	return SerializeTrustLine(tl)
}

// SerializeTrustLine encodes a trust line entry.
func SerializeTrustLine(tl *TrustLineEntry) ([]byte, error) {
	return encodeEntry(entry.TypeTrustLine, trustLineWire{
		AccountID: tl.AccountID[:],
		Asset:     tl.Asset.wire(),
		Balance:   tl.Balance,
		Limit:     tl.Limit,
		Flags:     tl.Flags,
	})
}

// ParseTrustLine decodes a trust line entry.
func ParseTrustLine(data []byte) (*TrustLineEntry, error) {
	var w trustLineWire
	if err := decodeEntry(data, entry.TypeTrustLine, &w); err != nil {
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
	return &TrustLineEntry{
		AccountID: id,
		Asset:     asset,
		Balance:   w.Balance,
		Limit:     w.Limit,
		Flags:     w.Flags,
	}, nil
}
