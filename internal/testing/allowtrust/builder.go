// Package allowtrust provides fluent builder helpers for AllowTrust testing.
package allowtrust

import (
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/allowtrust"
	"github.com/LeJamon/goPreauthLedger/internal/testing"
)

// Builder provides a fluent interface for building AllowTrust operations.
type Builder struct {
	issuer    *testing.Account
	trustor   *testing.Account
	code      string
	authorize uint32
}

// Authorize creates a builder that fully authorizes trustor.
func Authorize(issuer, trustor *testing.Account, code string) *Builder {
	return &Builder{issuer: issuer, trustor: trustor, code: code, authorize: entry.Authorized}
}

// Revoke creates a builder that clears all authorization from trustor.
func Revoke(issuer, trustor *testing.Account, code string) *Builder {
	return Authorize(issuer, trustor, code).Flags(0)
}

// MaintainLiabilities creates a builder that downgrades trustor to
// maintain-liabilities authorization.
func MaintainLiabilities(issuer, trustor *testing.Account, code string) *Builder {
	return Authorize(issuer, trustor, code).Flags(entry.AuthorizedToMaintainLiabilities)
}

// Flags sets the raw authorize value.
func (b *Builder) Flags(flags uint32) *Builder { b.authorize = flags; return b }

// Build constructs the envelope.
func (b *Builder) Build() tx.Envelope {
	return tx.Envelope{
		Source:    b.issuer.ID,
		Operation: allowtrust.NewAllowTrust(b.trustor.ID, b.code, b.authorize),
	}
}
