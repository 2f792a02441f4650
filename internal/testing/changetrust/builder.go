// Package changetrust provides fluent builder helpers for ChangeTrust testing.
package changetrust

import (
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/changetrust"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
	"github.com/LeJamon/goPreauthLedger/internal/testing"
)

// DefaultLimit is the limit used when none is given.
var DefaultLimit = testing.Lumens("1000000")

// Builder provides a fluent interface for building ChangeTrust operations.
type Builder struct {
	holder *testing.Account
	asset  sle.Asset
	limit  int64
}

// TrustLine creates a builder for holder trusting issuer's code with DefaultLimit.
func TrustLine(holder, issuer *testing.Account, code string) *Builder {
	return &Builder{holder: holder, asset: issuer.Asset(code), limit: DefaultLimit}
}

// Delete creates a builder that removes holder's line by setting a zero limit.
func Delete(holder, issuer *testing.Account, code string) *Builder {
	return TrustLine(holder, issuer, code).Limit(0)
}

// Limit sets the trust limit.
func (b *Builder) Limit(limit int64) *Builder { b.limit = limit; return b }

// Asset overrides the asset.
func (b *Builder) Asset(a sle.Asset) *Builder { b.asset = a; return b }

// Build constructs the envelope.
func (b *Builder) Build() tx.Envelope {
	return tx.Envelope{
		Source:    b.holder.ID,
		Operation: changetrust.NewChangeTrust(b.asset, b.limit),
	}
}
