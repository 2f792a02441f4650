package testing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
)

// RequireBalance asserts that an account has the expected native balance in stroops.
func RequireBalance(t *testing.T, env *TestEnv, acc *Account, expected int64) {
	t.Helper()
	actual := env.Balance(acc)
	require.Equal(t, expected, actual,
		"Account %s balance mismatch: expected %d stroops, got %d stroops",
		acc.Name, expected, actual)
}

// RequireSubEntries asserts the sub-entry count of an account.
func RequireSubEntries(t *testing.T, env *TestEnv, acc *Account, expected uint32) {
	t.Helper()
	require.Equal(t, expected, env.NumSubEntries(acc),
		"Account %s sub-entry count mismatch", acc.Name)
}

// RequireTxSuccess asserts that an operation was applied.
func RequireTxSuccess(t *testing.T, result TxResult) {
	t.Helper()
	require.True(t, result.Success, "Expected operation success, got %s", result.Code)
}

// RequireTxFail asserts that an operation failed with a specific result.
// Failed operations must leave no changes behind.
func RequireTxFail(t *testing.T, result TxResult, expected tx.Result) {
	t.Helper()
	require.False(t, result.Success,
		"Expected operation failure with %s, but operation succeeded", expected)
	require.Equal(t, expected.String(), result.Code,
		"Expected failure %s, got %s", expected, result.Code)
	require.Empty(t, result.Metadata.AffectedNodes,
		"Failed operation %s reported changes", result.Code)
}

// RequireInvariants runs a full audit over the store and fails on any violation.
func RequireInvariants(t *testing.T, env *TestEnv) {
	t.Helper()
	res := env.Audit()
	require.False(t, res.HasErrors(), "Invariant audit failed:\n%s", res)
}

// RequireTrustLineFlags asserts the flags of an existing trust line.
func RequireTrustLineFlags(t *testing.T, env *TestEnv, holder, issuer *Account, code string, flags uint32) {
	t.Helper()
	line := env.TrustLine(holder, issuer, code)
	require.NotNil(t, line, "Expected trust line %s:%s for %s", code, issuer.Name, holder.Name)
	require.Equal(t, flags, line.Flags,
		"Trust line %s:%s for %s has flags %#x, expected %#x", code, issuer.Name, holder.Name, line.Flags, flags)
}

// RequireNoTrustLine asserts that no trust line exists.
func RequireNoTrustLine(t *testing.T, env *TestEnv, holder, issuer *Account, code string) {
	t.Helper()
	require.Nil(t, env.TrustLine(holder, issuer, code),
		"Expected no trust line %s:%s for %s", code, issuer.Name, holder.Name)
}

// RequirePreauthFlags asserts the flags of an existing preauthorization.
func RequirePreauthFlags(t *testing.T, env *TestEnv, holder, issuer *Account, code string, flags uint32) {
	t.Helper()
	p := env.Preauthorization(holder, issuer, code)
	require.NotNil(t, p, "Expected preauthorization %s:%s for %s", code, issuer.Name, holder.Name)
	require.Equal(t, flags, p.Flags,
		"Preauthorization %s:%s for %s has flags %#x, expected %#x", code, issuer.Name, holder.Name, p.Flags, flags)
}

// RequireNoPreauth asserts that no preauthorization exists.
func RequireNoPreauth(t *testing.T, env *TestEnv, holder, issuer *Account, code string) {
	t.Helper()
	require.Nil(t, env.Preauthorization(holder, issuer, code),
		"Expected no preauthorization %s:%s for %s", code, issuer.Name, holder.Name)
}
