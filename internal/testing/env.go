package testing

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/LeJamon/goPreauthLedger/internal/core/invariant"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/genesis"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/state"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	_ "github.com/LeJamon/goPreauthLedger/internal/core/tx/all"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
	"github.com/LeJamon/goPreauthLedger/internal/storage/database/memory"
)

// TestEnv manages a test ledger environment for operation testing.
// It provides a simplified interface for creating accounts, funding them,
// submitting operations, and verifying results.
type TestEnv struct {
	t        *testing.T
	ctx      context.Context
	store    tx.LedgerEntryStore
	engine   *tx.Engine
	accounts map[string]*Account

	// Log captures engine log entries
	Log *test.Hook
}

// NewTestEnv creates a new test environment over an in-memory store.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	store, err := state.New(memory.NewDB(), state.Options{})
	if err != nil {
		t.Fatalf("Failed to create entry store: %v", err)
	}
	return NewTestEnvWithStore(t, store, tx.DefaultConfig())
}

// NewTestEnvWithStore creates a test environment over the given store.
func NewTestEnvWithStore(t *testing.T, store tx.LedgerEntryStore, cfg tx.Config) *TestEnv {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	return &TestEnv{
		t:     t,
		ctx:   context.Background(),
		store: store,
		engine: tx.NewEngine(store, cfg,
			tx.WithLogger(logger),
			tx.WithInvariants(invariant.Default()...),
		),
		accounts: make(map[string]*Account),
		Log:      hook,
	}
}

// Fund creates each account with DefaultFunding.
func (e *TestEnv) Fund(accounts ...*Account) {
	e.t.Helper()
	for _, acc := range accounts {
		e.FundAmount(acc, DefaultFunding)
	}
}

// FundAmount creates an account with the given balance in stroops.
func (e *TestEnv) FundAmount(acc *Account, balance int64) {
	e.t.Helper()
	e.seed(&sle.AccountEntry{AccountID: acc.ID, Balance: balance})
	e.accounts[acc.Name] = acc
}

func (e *TestEnv) seed(a *sle.AccountEntry) {
	e.t.Helper()
	n, err := genesis.Seed(e.ctx, e.store, []*sle.AccountEntry{a})
	if err != nil {
		e.t.Fatalf("Failed to fund account: %v", err)
	}
	if n != 1 {
		e.t.Fatalf("Account %s already exists", a.AccountID)
	}
}

// SetFlags replaces the account flags of acc.
func (e *TestEnv) SetFlags(acc *Account, flags uint32) {
	e.t.Helper()
	e.updateAccount(acc, func(a *sle.AccountEntry) { a.Flags = flags })
}

// EnableRequireAuth sets AUTH_REQUIRED on acc.
func (e *TestEnv) EnableRequireAuth(acc *Account) {
	e.t.Helper()
	e.updateAccount(acc, func(a *sle.AccountEntry) { a.Flags |= entry.AccountAuthRequired })
}

// EnableRevocable sets AUTH_REVOCABLE on acc.
func (e *TestEnv) EnableRevocable(acc *Account) {
	e.t.Helper()
	e.updateAccount(acc, func(a *sle.AccountEntry) { a.Flags |= entry.AccountAuthRevocable })
}

// SetBalance overwrites the native balance of acc.
func (e *TestEnv) SetBalance(acc *Account, balance int64) {
	e.t.Helper()
	e.updateAccount(acc, func(a *sle.AccountEntry) { a.Balance = balance })
}

func (e *TestEnv) updateAccount(acc *Account, fn func(*sle.AccountEntry)) {
	e.t.Helper()
	a := e.AccountEntry(acc)
	if a == nil {
		e.t.Fatalf("Account %s does not exist", acc)
	}
	before, err := sle.SerializeAccount(a)
	if err != nil {
		e.t.Fatalf("Failed to serialize account: %v", err)
	}
	fn(a)
	after, err := sle.SerializeAccount(a)
	if err != nil {
		e.t.Fatalf("Failed to serialize account: %v", err)
	}
	err = e.store.Apply(e.ctx, []tx.Change{{Action: tx.ActionModify, Key: a.Key(), Before: before, After: after}})
	if err != nil {
		e.t.Fatalf("Failed to update account: %v", err)
	}
}

// SetBaseReserve changes the base reserve for subsequent operations.
func (e *TestEnv) SetBaseReserve(reserve int64) {
	e.engine.SetBaseReserve(reserve)
}

// BaseReserve returns the current base reserve.
func (e *TestEnv) BaseReserve() int64 {
	return e.engine.Config().BaseReserve
}

// Submit applies an operation through the engine. Engine errors fail the test.
func (e *TestEnv) Submit(env tx.Envelope) TxResult {
	e.t.Helper()
	res, err := e.engine.Apply(e.ctx, env.Source, env.Operation)
	if err != nil {
		e.t.Fatalf("Engine error applying %s: %v", env.Operation.Type(), err)
	}
	return TxResult{
		Code:     res.Result.String(),
		Result:   res.Result,
		Success:  res.Applied,
		Metadata: res.Metadata,
	}
}

// SubmitErr applies an operation and returns the engine error instead of
// failing the test.
func (e *TestEnv) SubmitErr(env tx.Envelope) (*tx.ApplyResult, error) {
	return e.engine.Apply(e.ctx, env.Source, env.Operation)
}

// AccountEntry returns the account entry of acc, or nil.
func (e *TestEnv) AccountEntry(acc *Account) *sle.AccountEntry {
	e.t.Helper()
	data, err := e.store.Read(e.ctx, keylet.Account(acc.ID))
	if err != nil {
		e.t.Fatalf("Failed to read account: %v", err)
	}
	if data == nil {
		return nil
	}
	a, err := sle.ParseAccount(data)
	if err != nil {
		e.t.Fatalf("Failed to parse account: %v", err)
	}
	return a
}

// Balance returns the native balance of an account in stroops.
func (e *TestEnv) Balance(acc *Account) int64 {
	e.t.Helper()
	a := e.AccountEntry(acc)
	if a == nil {
		return 0
	}
	return a.Balance
}

// NumSubEntries returns the sub-entry count of an account.
func (e *TestEnv) NumSubEntries(acc *Account) uint32 {
	e.t.Helper()
	a := e.AccountEntry(acc)
	if a == nil {
		return 0
	}
	return a.NumSubEntries
}

// TrustLine returns holder's trust line in issuer's code, or nil.
func (e *TestEnv) TrustLine(holder, issuer *Account, code string) *sle.TrustLineEntry {
	e.t.Helper()
	data, err := e.store.Read(e.ctx, issuer.Asset(code).TrustLineKey(holder.ID))
	if err != nil {
		e.t.Fatalf("Failed to read trust line: %v", err)
	}
	if data == nil {
		return nil
	}
	line, err := sle.ParseTrustLine(data)
	if err != nil {
		e.t.Fatalf("Failed to parse trust line: %v", err)
	}
	return line
}

// Preauthorization returns holder's preauthorization in issuer's code, or nil.
func (e *TestEnv) Preauthorization(holder, issuer *Account, code string) *sle.PreauthorizationEntry {
	e.t.Helper()
	data, err := e.store.Read(e.ctx, issuer.Asset(code).PreauthorizationKey(holder.ID))
	if err != nil {
		e.t.Fatalf("Failed to read preauthorization: %v", err)
	}
	if data == nil {
		return nil
	}
	p, err := sle.ParsePreauthorization(data)
	if err != nil {
		e.t.Fatalf("Failed to parse preauthorization: %v", err)
	}
	return p
}

// Audit runs a full-store invariant audit.
func (e *TestEnv) Audit() *invariant.AuditResult {
	e.t.Helper()
	res, err := invariant.Audit(e.ctx, e.store)
	if err != nil {
		e.t.Fatalf("Audit failed: %v", err)
	}
	return res
}

// Store returns the underlying entry store.
func (e *TestEnv) Store() tx.LedgerEntryStore {
	return e.store
}

// GetAccount returns a funded account by name.
func (e *TestEnv) GetAccount(name string) *Account {
	return e.accounts[name]
}
