package invariant

import (
	"context"
	"fmt"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
)

// AuditResult contains the results of a full-store audit.
type AuditResult struct {
	Errors            []*InvariantError
	Accounts          int
	TrustLines        int
	Preauthorizations int

	// NativeTotal is the sum of account balances and preauthorization reserves
	NativeTotal int64
}

// HasErrors returns true if any invariant violations were found.
func (r *AuditResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// String returns a summary of the audit.
func (r *AuditResult) String() string {
	status := "PASSED"
	if r.HasErrors() {
		status = fmt.Sprintf("FAILED - %d errors found", len(r.Errors))
	}
	return fmt.Sprintf("Audit: %s (%d accounts, %d trust lines, %d preauthorizations)",
		status, r.Accounts, r.TrustLines, r.Preauthorizations)
}

// storeReader reads from a store with a fixed context.
type storeReader struct {
	ctx   context.Context
	store tx.LedgerEntryStore
}

func (r storeReader) Read(k keylet.Keylet) ([]byte, error) {
	return r.store.Read(r.ctx, k)
}

// Audit scans every entry in store and collects all violations. The returned
// error is reserved for storage failures.
func Audit(ctx context.Context, store tx.LedgerEntryStore) (*AuditResult, error) {
	res := &AuditResult{}
	reader := storeReader{ctx: ctx, store: store}

	visit := func(t entry.Type, count *int) error {
		return store.ForEach(ctx, t, func(k keylet.Keylet, data []byte) error {
			*count++
			if err := checkKey(k, data); err != nil {
				res.Errors = append(res.Errors, err.(*InvariantError))
				return nil
			}
			native, err := nativeHeld(data)
			if err != nil {
				return err
			}
			res.NativeTotal += native

			// Flags are compared once per pair, from the preauthorization side
			if t != entry.TypePreauthorization {
				return nil
			}
			change := []tx.Change{{Action: tx.ActionCache, Key: k, After: data}}
			if err := (FlagsAgree{}).Check(reader, change); err != nil {
				ie, ok := err.(*InvariantError)
				if !ok {
					return err
				}
				res.Errors = append(res.Errors, ie)
			}
			return nil
		})
	}

	if err := visit(entry.TypeAccount, &res.Accounts); err != nil {
		return nil, err
	}
	if err := visit(entry.TypeTrustLine, &res.TrustLines); err != nil {
		return nil, err
	}
	if err := visit(entry.TypePreauthorization, &res.Preauthorizations); err != nil {
		return nil, err
	}
	return res, nil
}
