package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
)

func TestNewAccount(t *testing.T) {
	alice1 := NewAccount("alice")
	alice2 := NewAccount("alice")

	// Same name should produce same account
	assert.Equal(t, alice1.Address, alice2.Address)
	assert.Equal(t, alice1.ID, alice2.ID)
	assert.Equal(t, "G", alice1.Address[:1])

	bob := NewAccount("bob")
	assert.NotEqual(t, alice1.Address, bob.Address)
}

func TestLumens(t *testing.T) {
	assert.Equal(t, int64(10_000_000), Lumens("1"))
	assert.Equal(t, int64(5_000_000), Lumens("0.5"))
	assert.Equal(t, int64(1), Lumens("0.0000001"))
}

func TestFund(t *testing.T) {
	env := NewTestEnv(t)
	alice := NewAccount("alice")
	bob := NewAccount("bob")

	env.Fund(alice)
	env.FundAmount(bob, Lumens("2.5"))

	RequireBalance(t, env, alice, DefaultFunding)
	RequireBalance(t, env, bob, Lumens("2.5"))
	RequireSubEntries(t, env, alice, 0)
	assert.Same(t, alice, env.GetAccount("alice"))

	// Unfunded accounts read as empty
	assert.Nil(t, env.AccountEntry(NewAccount("carol")))
	RequireInvariants(t, env)
}

func TestAccountFlags(t *testing.T) {
	env := NewTestEnv(t)
	issuer := NewAccount("issuer")
	env.Fund(issuer)

	env.EnableRequireAuth(issuer)
	a := env.AccountEntry(issuer)
	require.NotNil(t, a)
	assert.True(t, a.AuthRequired())
	assert.False(t, a.AuthRevocable())

	env.EnableRevocable(issuer)
	a = env.AccountEntry(issuer)
	assert.True(t, a.AuthRevocable())

	env.SetFlags(issuer, 0)
	assert.Equal(t, uint32(0), env.AccountEntry(issuer).Flags)

	env.SetFlags(issuer, entry.AccountAuthRequired|entry.AccountAuthImmutable)
	assert.Equal(t, entry.AccountAuthRequired|entry.AccountAuthImmutable, env.AccountEntry(issuer).Flags)
}

func TestBaseReserve(t *testing.T) {
	env := NewTestEnv(t)
	assert.Equal(t, int64(5_000_000), env.BaseReserve())

	env.SetBaseReserve(Lumens("1"))
	assert.Equal(t, Lumens("1"), env.BaseReserve())
}
