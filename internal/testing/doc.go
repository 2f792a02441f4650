// Package testing provides test infrastructure for ledger operation testing.
//
// It offers a deterministic test environment in the style of a jtx harness:
// named accounts with reproducible keys, funding helpers, operation
// submission through the real engine, and assertions over ledger state.
//
// # Basic Usage
//
//	func TestCreate(t *testing.T) {
//	    env := jtx.NewTestEnv(t)
//
//	    issuer := jtx.NewAccount("issuer")
//	    holder := jtx.NewAccount("holder")
//	    env.Fund(issuer, holder)
//
//	    result := env.Submit(preauth.Create(issuer, holder, "USD").Build())
//	    jtx.RequireTxSuccess(t, result)
//	    jtx.RequireInvariants(t, env)
//	}
//
// # TestEnv
//
// TestEnv wraps an in-memory entry store and an engine with every invariant
// checker installed, so any operation that breaks a ledger rule fails the
// test at submission time.
//
//	env.Fund(alice)                         // Fund with DefaultFunding
//	env.FundAmount(bob, jtx.Lumens("2.5"))  // Fund with a specific amount
//	env.EnableRequireAuth(issuer)           // Set AUTH_REQUIRED on the issuer
//	env.Balance(alice)                      // Native balance in stroops
//
// # Builders
//
// The preauth, changetrust and allowtrust sub-packages provide fluent
// builders that produce envelopes for Submit.
package testing
