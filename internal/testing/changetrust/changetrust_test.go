// Tests for ChangeTrust, including inheritance of preauthorized flags.
package changetrust_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/changetrust"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
	jtx "github.com/LeJamon/goPreauthLedger/internal/testing"
	"github.com/LeJamon/goPreauthLedger/internal/testing/allowtrust"
	ct "github.com/LeJamon/goPreauthLedger/internal/testing/changetrust"
	pa "github.com/LeJamon/goPreauthLedger/internal/testing/preauth"
)

func TestChangeTrust_InheritsPreauthorization(t *testing.T) {
	env := jtx.NewTestEnv(t)
	issuer := jtx.NewAccount("issuer")
	holder := jtx.NewAccount("holder")
	env.Fund(issuer, holder)

	jtx.RequireTxSuccess(t, env.Submit(pa.Create(issuer, holder, "USD").Build()))
	jtx.RequirePreauthFlags(t, env, holder, issuer, "USD", entry.Authorized)

	// AUTH_REQUIRED would start a plain line unauthorized
	env.EnableRequireAuth(issuer)

	result := env.Submit(ct.TrustLine(holder, issuer, "USD").Build())
	jtx.RequireTxSuccess(t, result)
	require.Equal(t, 1, result.Metadata.Count(tx.NodeCreated))
	jtx.RequireTrustLineFlags(t, env, holder, issuer, "USD", entry.Authorized)
	jtx.RequireSubEntries(t, env, holder, 1)

	// The preauthorization outlives the line's creation
	jtx.RequirePreauthFlags(t, env, holder, issuer, "USD", entry.Authorized)
	jtx.RequireInvariants(t, env)
}

func TestChangeTrust_InheritsUnauthorizedPreauthorization(t *testing.T) {
	env := jtx.NewTestEnv(t)
	issuer := jtx.NewAccount("issuer")
	holder := jtx.NewAccount("holder")
	env.Fund(issuer, holder)
	env.EnableRequireAuth(issuer)
	env.EnableRevocable(issuer)

	jtx.RequireTxSuccess(t, env.Submit(pa.Create(issuer, holder, "USD").Build()))
	jtx.RequireTxSuccess(t, env.Submit(allowtrust.MaintainLiabilities(issuer, holder, "USD").Build()))

	// Dropping AUTH_REQUIRED does not override the stored decision
	env.SetFlags(issuer, 0)
	jtx.RequireTxSuccess(t, env.Submit(ct.TrustLine(holder, issuer, "USD").Build()))
	jtx.RequireTrustLineFlags(t, env, holder, issuer, "USD", entry.AuthorizedToMaintainLiabilities)
	jtx.RequireInvariants(t, env)
}

func TestChangeTrust_DefaultFlags(t *testing.T) {
	env := jtx.NewTestEnv(t)
	open := jtx.NewAccount("open")
	gated := jtx.NewAccount("gated")
	holder := jtx.NewAccount("holder")
	env.Fund(open, gated, holder)
	env.EnableRequireAuth(gated)

	jtx.RequireTxSuccess(t, env.Submit(ct.TrustLine(holder, open, "USD").Build()))
	jtx.RequireTrustLineFlags(t, env, holder, open, "USD", entry.Authorized)

	jtx.RequireTxSuccess(t, env.Submit(ct.TrustLine(holder, gated, "USD").Build()))
	jtx.RequireTrustLineFlags(t, env, holder, gated, "USD", 0)

	jtx.RequireSubEntries(t, env, holder, 2)
	jtx.RequireInvariants(t, env)
}

func TestChangeTrust_ModifyAndDelete(t *testing.T) {
	env := jtx.NewTestEnv(t)
	issuer := jtx.NewAccount("issuer")
	holder := jtx.NewAccount("holder")
	env.Fund(issuer, holder)

	jtx.RequireTxSuccess(t, env.Submit(ct.TrustLine(holder, issuer, "USD").Limit(100).Build()))
	jtx.RequireTxSuccess(t, env.Submit(ct.TrustLine(holder, issuer, "USD").Limit(500).Build()))

	line := env.TrustLine(holder, issuer, "USD")
	require.NotNil(t, line)
	require.Equal(t, int64(500), line.Limit)
	jtx.RequireSubEntries(t, env, holder, 1)

	result := env.Submit(ct.Delete(holder, issuer, "USD").Build())
	jtx.RequireTxSuccess(t, result)
	require.Equal(t, 1, result.Metadata.Count(tx.NodeDeleted))
	jtx.RequireNoTrustLine(t, env, holder, issuer, "USD")
	jtx.RequireSubEntries(t, env, holder, 0)
	jtx.RequireInvariants(t, env)
}

func TestChangeTrust_DeleteKeepsPreauthorization(t *testing.T) {
	env := jtx.NewTestEnv(t)
	issuer := jtx.NewAccount("issuer")
	holder := jtx.NewAccount("holder")
	env.Fund(issuer, holder)

	jtx.RequireTxSuccess(t, env.Submit(pa.Create(issuer, holder, "USD").Build()))
	jtx.RequireTxSuccess(t, env.Submit(ct.TrustLine(holder, issuer, "USD").Build()))
	jtx.RequireTxSuccess(t, env.Submit(ct.Delete(holder, issuer, "USD").Build()))

	jtx.RequireNoTrustLine(t, env, holder, issuer, "USD")
	jtx.RequirePreauthFlags(t, env, holder, issuer, "USD", entry.Authorized)

	// Re-creating the line inherits again
	env.EnableRequireAuth(issuer)
	jtx.RequireTxSuccess(t, env.Submit(ct.TrustLine(holder, issuer, "USD").Build()))
	jtx.RequireTrustLineFlags(t, env, holder, issuer, "USD", entry.Authorized)
	jtx.RequireInvariants(t, env)
}

func TestChangeTrust_InvalidLimit(t *testing.T) {
	env := jtx.NewTestEnv(t)
	issuer := jtx.NewAccount("issuer")
	holder := jtx.NewAccount("holder")
	env.Fund(issuer, holder)

	// Deleting a line that does not exist
	result := env.Submit(ct.Delete(holder, issuer, "USD").Build())
	jtx.RequireTxFail(t, result, changetrust.InvalidLimit)
	jtx.RequireSubEntries(t, env, holder, 0)
}

func TestChangeTrust_NoIssuer(t *testing.T) {
	env := jtx.NewTestEnv(t)
	issuer := jtx.NewAccount("issuer")
	holder := jtx.NewAccount("holder")
	env.Fund(holder)

	result := env.Submit(ct.TrustLine(holder, issuer, "USD").Build())
	jtx.RequireTxFail(t, result, changetrust.NoIssuer)
	jtx.RequireNoTrustLine(t, env, holder, issuer, "USD")
}

func TestChangeTrust_LowReserve(t *testing.T) {
	env := jtx.NewTestEnv(t)
	issuer := jtx.NewAccount("issuer")
	holder := jtx.NewAccount("holder")
	env.Fund(issuer)
	env.FundAmount(holder, tx.MinBalance(tx.DefaultConfig(), 0)+env.BaseReserve()-1)

	result := env.Submit(ct.TrustLine(holder, issuer, "USD").Build())
	jtx.RequireTxFail(t, result, changetrust.LowReserve)
	jtx.RequireSubEntries(t, env, holder, 0)
}

func TestChangeTrust_SelfNotAllowed(t *testing.T) {
	env := jtx.NewTestEnv(t)
	issuer := jtx.NewAccount("issuer")
	env.Fund(issuer)

	result := env.Submit(ct.TrustLine(issuer, issuer, "USD").Build())
	jtx.RequireTxFail(t, result, changetrust.SelfNotAllowed)
}

func TestChangeTrust_Malformed(t *testing.T) {
	env := jtx.NewTestEnv(t)
	issuer := jtx.NewAccount("issuer")
	holder := jtx.NewAccount("holder")
	env.Fund(issuer, holder)

	tests := []struct {
		name    string
		builder *ct.Builder
	}{
		{"NegativeLimit", ct.TrustLine(holder, issuer, "USD").Limit(-1)},
		{"EmptyCode", ct.TrustLine(holder, issuer, "")},
		{"NoIssuer", ct.TrustLine(holder, issuer, "USD").Asset(sle.Asset{Code: "USD"})},
		{"TooLong", ct.TrustLine(holder, issuer, "ABCDEFGHIJKLM")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			jtx.RequireTxFail(t, env.Submit(tc.builder.Build()), changetrust.Malformed)
		})
	}
}
