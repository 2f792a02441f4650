package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/amount"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
	"github.com/LeJamon/goPreauthLedger/internal/di"
)

// ErrUnknownAccount is returned for an address with no account entry.
var ErrUnknownAccount = errors.New("account does not exist")

var entriesCmd = &cobra.Command{
	Use:   "entries <address>",
	Short: "List an account's trust lines and preauthorizations",
	Long: `Print the account entry for address followed by every trust line it holds
and every preauthorization naming it as the holder.`,
	Args: cobra.ExactArgs(1),
	RunE: runEntries,
}

func init() {
	rootCmd.AddCommand(entriesCmd)
}

// entryScanner is the part of the store entries needs.
type entryScanner interface {
	Read(ctx context.Context, k keylet.Keylet) ([]byte, error)
	ForEach(ctx context.Context, t entry.Type, fn func(k keylet.Keylet, data []byte) error) error
}

func runEntries(cmd *cobra.Command, args []string) error {
	holder, err := sle.DecodeAccountID(args[0])
	if err != nil {
		return fmt.Errorf("address: %w", err)
	}

	return withProvider(cmd.Context(), func(p *di.Provider) error {
		store, err := p.Store()
		if err != nil {
			return err
		}
		return listEntries(cmd.Context(), cmd.OutOrStdout(), store, holder)
	})
}

func listEntries(ctx context.Context, out io.Writer, store entryScanner, holder sle.AccountID) error {
	data, err := store.Read(ctx, keylet.Account(holder))
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, holder)
	}
	acct, err := sle.ParseAccount(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "account %s balance %s subentries %d flags %#x\n",
		holder, amount.StringFromInt64(acct.Balance), acct.NumSubEntries, acct.Flags)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENTRY\tASSET\tFLAGS\tBALANCE\tLIMIT\tRESERVE")

	err = store.ForEach(ctx, entry.TypeTrustLine, func(_ keylet.Keylet, data []byte) error {
		tl, err := sle.ParseTrustLine(data)
		if err != nil || tl.AccountID != holder {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t-\n", entry.TypeTrustLine, tl.Asset, flagNames(tl.Flags),
			amount.StringFromInt64(tl.Balance), amount.StringFromInt64(tl.Limit))
		return nil
	})
	if err != nil {
		return err
	}

	err = store.ForEach(ctx, entry.TypePreauthorization, func(_ keylet.Keylet, data []byte) error {
		pa, err := sle.ParsePreauthorization(data)
		if err != nil || pa.AccountID != holder {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t-\t-\t%s\n", entry.TypePreauthorization, pa.Asset, flagNames(pa.Flags),
			amount.StringFromInt64(pa.Reserve))
		return nil
	})
	if err != nil {
		return err
	}
	return w.Flush()
}

func flagNames(flags uint32) string {
	switch {
	case flags == entry.Authorized:
		return "AUTHORIZED"
	case flags == entry.AuthorizedToMaintainLiabilities:
		return "MAINTAIN_LIABILITIES"
	case flags == 0:
		return "UNAUTHORIZED"
	default:
		return fmt.Sprintf("%#x", flags)
	}
}
