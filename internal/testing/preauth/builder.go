// Package preauth provides fluent builder helpers for CreatePreauthorization
// and RemovePreauthorization testing, plus integration tests for the
// preauthorization lifecycle.
package preauth

import (
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/preauth"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
	"github.com/LeJamon/goPreauthLedger/internal/testing"
)

// CreateBuilder provides a fluent interface for building CreatePreauthorization operations.
type CreateBuilder struct {
	issuer *testing.Account
	holder sle.AccountID
	code   string
}

// Create creates a builder for issuer preauthorizing holder in code.
func Create(issuer, holder *testing.Account, code string) *CreateBuilder {
	return &CreateBuilder{issuer: issuer, holder: holder.ID, code: code}
}

// Holder overrides the preauthorized account ID.
func (b *CreateBuilder) Holder(id sle.AccountID) *CreateBuilder { b.holder = id; return b }

// Code overrides the asset code.
func (b *CreateBuilder) Code(code string) *CreateBuilder { b.code = code; return b }

// Build constructs the envelope.
func (b *CreateBuilder) Build() tx.Envelope {
	return tx.Envelope{
		Source:    b.issuer.ID,
		Operation: preauth.NewCreatePreauthorization(b.holder, b.code),
	}
}

// RemoveBuilder provides a fluent interface for building RemovePreauthorization operations.
type RemoveBuilder struct {
	issuer *testing.Account
	holder sle.AccountID
	code   string
}

// Remove creates a builder for issuer removing holder's preauthorization in code.
func Remove(issuer, holder *testing.Account, code string) *RemoveBuilder {
	return &RemoveBuilder{issuer: issuer, holder: holder.ID, code: code}
}

// Holder overrides the preauthorized account ID.
func (b *RemoveBuilder) Holder(id sle.AccountID) *RemoveBuilder { b.holder = id; return b }

// Code overrides the asset code.
func (b *RemoveBuilder) Code(code string) *RemoveBuilder { b.code = code; return b }

// Build constructs the envelope.
func (b *RemoveBuilder) Build() tx.Envelope {
	return tx.Envelope{
		Source:    b.issuer.ID,
		Operation: preauth.NewRemovePreauthorization(b.holder, b.code),
	}
}
