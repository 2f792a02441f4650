package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/amount"

	"github.com/LeJamon/goPreauthLedger/internal/core/invariant"
	"github.com/LeJamon/goPreauthLedger/internal/di"
)

// ErrAuditFailed is returned when the audit finds violations.
var ErrAuditFailed = errors.New("ledger audit failed")

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check every ledger entry against the ledger invariants",
	Long: `Scan the whole store and verify that every entry is stored under its own
key and that each trust line and preauthorization for the same account and
asset carry the same authorization flags. Exits non-zero on any violation.`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, _ []string) error {
	return withProvider(cmd.Context(), func(p *di.Provider) error {
		store, err := p.Store()
		if err != nil {
			return err
		}
		res, err := invariant.Audit(cmd.Context(), store)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, res.String())
		fmt.Fprintf(out, "native total: %s\n", amount.StringFromInt64(res.NativeTotal))
		for _, violation := range res.Errors {
			fmt.Fprintf(out, "  %v\n", violation)
		}
		if res.HasErrors() {
			return fmt.Errorf("%w: %d violations", ErrAuditFailed, len(res.Errors))
		}
		return nil
	})
}
