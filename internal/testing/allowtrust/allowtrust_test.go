// Tests for AllowTrust over trust lines and preauthorizations.
package allowtrust_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/allowtrust"
	jtx "github.com/LeJamon/goPreauthLedger/internal/testing"
	at "github.com/LeJamon/goPreauthLedger/internal/testing/allowtrust"
	ct "github.com/LeJamon/goPreauthLedger/internal/testing/changetrust"
	pa "github.com/LeJamon/goPreauthLedger/internal/testing/preauth"
)

// setup funds an AUTH_REQUIRED issuer and a holder.
func setup(t *testing.T, revocable bool) (*jtx.TestEnv, *jtx.Account, *jtx.Account) {
	t.Helper()
	env := jtx.NewTestEnv(t)
	issuer := jtx.NewAccount("issuer")
	holder := jtx.NewAccount("holder")
	env.Fund(issuer, holder)
	env.EnableRequireAuth(issuer)
	if revocable {
		env.EnableRevocable(issuer)
	}
	return env, issuer, holder
}

func TestAllowTrust_UpdatesBothEntries(t *testing.T) {
	env, issuer, holder := setup(t, true)

	jtx.RequireTxSuccess(t, env.Submit(pa.Create(issuer, holder, "USD").Build()))
	jtx.RequireTxSuccess(t, env.Submit(at.Authorize(issuer, holder, "USD").Build()))
	jtx.RequireTxSuccess(t, env.Submit(ct.TrustLine(holder, issuer, "USD").Build()))
	jtx.RequireTrustLineFlags(t, env, holder, issuer, "USD", entry.Authorized)
	jtx.RequirePreauthFlags(t, env, holder, issuer, "USD", entry.Authorized)

	result := env.Submit(at.Revoke(issuer, holder, "USD").Build())
	jtx.RequireTxSuccess(t, result)
	require.Equal(t, 2, result.Metadata.Count(tx.NodeModified))
	jtx.RequireTrustLineFlags(t, env, holder, issuer, "USD", 0)
	jtx.RequirePreauthFlags(t, env, holder, issuer, "USD", 0)
	jtx.RequireInvariants(t, env)

	// With the preauthorization gone only the line is updated
	jtx.RequireTxSuccess(t, env.Submit(pa.Remove(issuer, holder, "USD").Build()))
	result = env.Submit(at.Authorize(issuer, holder, "USD").Build())
	jtx.RequireTxSuccess(t, result)
	require.Equal(t, 1, result.Metadata.Count(tx.NodeModified))
	jtx.RequireTrustLineFlags(t, env, holder, issuer, "USD", entry.Authorized)
	jtx.RequireNoPreauth(t, env, holder, issuer, "USD")
	jtx.RequireInvariants(t, env)
}

func TestAllowTrust_PreauthorizationOnly(t *testing.T) {
	env, issuer, holder := setup(t, false)

	jtx.RequireTxSuccess(t, env.Submit(pa.Create(issuer, holder, "USD").Build()))
	jtx.RequirePreauthFlags(t, env, holder, issuer, "USD", 0)

	jtx.RequireTxSuccess(t, env.Submit(at.Authorize(issuer, holder, "USD").Build()))
	jtx.RequirePreauthFlags(t, env, holder, issuer, "USD", entry.Authorized)
	jtx.RequireNoTrustLine(t, env, holder, issuer, "USD")
	jtx.RequireInvariants(t, env)
}

func TestAllowTrust_NoTrustLine(t *testing.T) {
	env, issuer, holder := setup(t, true)

	result := env.Submit(at.Authorize(issuer, holder, "USD").Build())
	jtx.RequireTxFail(t, result, allowtrust.NoTrustLine)
	jtx.RequireNoTrustLine(t, env, holder, issuer, "USD")
	jtx.RequireNoPreauth(t, env, holder, issuer, "USD")

	// A line in another code does not count
	jtx.RequireTxSuccess(t, env.Submit(ct.TrustLine(holder, issuer, "EUR").Build()))
	result = env.Submit(at.Authorize(issuer, holder, "USD").Build())
	jtx.RequireTxFail(t, result, allowtrust.NoTrustLine)
}

func TestAllowTrust_CantRevoke(t *testing.T) {
	tests := []struct {
		name      string
		preauth   bool
		trustLine bool
	}{
		{"PreauthorizationOnly", true, false},
		{"TrustLineOnly", false, true},
		{"Both", true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env, issuer, holder := setup(t, false)

			if tc.preauth {
				jtx.RequireTxSuccess(t, env.Submit(pa.Create(issuer, holder, "USD").Build()))
			}
			if tc.trustLine {
				jtx.RequireTxSuccess(t, env.Submit(ct.TrustLine(holder, issuer, "USD").Build()))
			}
			jtx.RequireTxSuccess(t, env.Submit(at.Authorize(issuer, holder, "USD").Build()))

			result := env.Submit(at.Revoke(issuer, holder, "USD").Build())
			jtx.RequireTxFail(t, result, allowtrust.CantRevoke)

			result = env.Submit(at.MaintainLiabilities(issuer, holder, "USD").Build())
			jtx.RequireTxFail(t, result, allowtrust.CantRevoke)

			if tc.preauth {
				jtx.RequirePreauthFlags(t, env, holder, issuer, "USD", entry.Authorized)
			}
			if tc.trustLine {
				jtx.RequireTrustLineFlags(t, env, holder, issuer, "USD", entry.Authorized)
			}

			// Re-granting the same authorization is not a revocation
			jtx.RequireTxSuccess(t, env.Submit(at.Authorize(issuer, holder, "USD").Build()))
			jtx.RequireInvariants(t, env)
		})
	}
}

func TestAllowTrust_MaintainLiabilitiesUpgrade(t *testing.T) {
	env, issuer, holder := setup(t, false)

	jtx.RequireTxSuccess(t, env.Submit(ct.TrustLine(holder, issuer, "USD").Build()))
	jtx.RequireTxSuccess(t, env.Submit(at.MaintainLiabilities(issuer, holder, "USD").Build()))
	jtx.RequireTrustLineFlags(t, env, holder, issuer, "USD", entry.AuthorizedToMaintainLiabilities)

	// Dropping to zero from maintain-liabilities needs revocability
	jtx.RequireTxFail(t, env.Submit(at.Revoke(issuer, holder, "USD").Build()), allowtrust.CantRevoke)

	jtx.RequireTxSuccess(t, env.Submit(at.Authorize(issuer, holder, "USD").Build()))
	jtx.RequireTrustLineFlags(t, env, holder, issuer, "USD", entry.Authorized)
}

func TestAllowTrust_TrustNotRequired(t *testing.T) {
	env := jtx.NewTestEnv(t)
	issuer := jtx.NewAccount("issuer")
	holder := jtx.NewAccount("holder")
	env.Fund(issuer, holder)

	jtx.RequireTxSuccess(t, env.Submit(pa.Create(issuer, holder, "USD").Build()))
	result := env.Submit(at.Revoke(issuer, holder, "USD").Build())
	jtx.RequireTxFail(t, result, allowtrust.TrustNotRequired)
	jtx.RequirePreauthFlags(t, env, holder, issuer, "USD", entry.Authorized)
}

func TestAllowTrust_SelfNotAllowed(t *testing.T) {
	env, issuer, _ := setup(t, true)

	result := env.Submit(at.Authorize(issuer, issuer, "USD").Build())
	jtx.RequireTxFail(t, result, allowtrust.SelfNotAllowed)
}

func TestAllowTrust_Malformed(t *testing.T) {
	env, issuer, holder := setup(t, true)
	jtx.RequireTxSuccess(t, env.Submit(pa.Create(issuer, holder, "USD").Build()))

	tests := []struct {
		name    string
		builder *at.Builder
	}{
		{"BothFlags", at.Authorize(issuer, holder, "USD").Flags(entry.AuthorizationMask)},
		{"UnknownFlag", at.Authorize(issuer, holder, "USD").Flags(0x4)},
		{"EmptyCode", at.Authorize(issuer, holder, "")},
		{"BadCharset", at.Authorize(issuer, holder, "U-D")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			jtx.RequireTxFail(t, env.Submit(tc.builder.Build()), allowtrust.Malformed)
		})
	}
	jtx.RequirePreauthFlags(t, env, holder, issuer, "USD", 0)
}
