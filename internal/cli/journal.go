package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
	"github.com/LeJamon/goPreauthLedger/internal/di"
	"github.com/LeJamon/goPreauthLedger/internal/storage/journal"
)

// ErrJournalDisabled is returned when no journal driver is configured.
var ErrJournalDisabled = errors.New("journal is disabled; set journal.driver")

var journalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal [address]",
	Short: "List journaled operation results",
	Long: `Print the most recent operations recorded in the journal database, newest
first. With an address, only operations submitted by that account are shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "maximum number of operations to show")
}

func runJournal(cmd *cobra.Command, args []string) error {
	if !cfg.JournalEnabled() {
		return ErrJournalDisabled
	}

	filter := journal.Filter{Limit: journalLimit}
	if len(args) == 1 {
		source, err := sle.DecodeAccountID(args[0])
		if err != nil {
			return fmt.Errorf("address: %w", err)
		}
		filter.Source = &source
	}

	return withProvider(cmd.Context(), func(p *di.Provider) error {
		j, err := p.Journal()
		if err != nil {
			return err
		}
		records, err := j.List(cmd.Context(), filter)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLEDGER\tTYPE\tSOURCE\tRESULT\tCHANGES\tDURATION")
		for _, r := range records {
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%d\t%s\n",
				r.ID, r.LedgerSequence, r.Type, r.Source, r.Result, r.Changes, r.Duration)
		}
		return w.Flush()
	})
}
