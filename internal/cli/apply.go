package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/amount"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
	"github.com/LeJamon/goPreauthLedger/internal/di"
	"github.com/LeJamon/goPreauthLedger/internal/metrics"
)

var applyJSON bool

var applyCmd = &cobra.Command{
	Use:   "apply <operations.json>",
	Short: "Apply a file of operations in order",
	Long: `Decode a JSON array of operation envelopes and apply them one at a time.
Each envelope names its source account, its operation type and the operation
body:

  [{"source": "G...", "type": "CREATE_PREAUTHORIZATION",
    "body": {"account_id": "G...", "asset_code": "USD"}}]

Use - to read the operations from standard input. An operation that fails
with a result code leaves the ledger unchanged and processing continues
with the next one. An operation that cannot be evaluated at all, such as
one whose source account does not exist, stops the run: the results so
far are printed and the command exits with the error.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVar(&applyJSON, "json", false, "print results with metadata as JSON")
}

// applyOutput is one result in --json output.
type applyOutput struct {
	Type     string       `json:"type"`
	Source   string       `json:"source"`
	Result   string       `json:"result"`
	Code     int32        `json:"code"`
	Applied  bool         `json:"applied"`
	Metadata *tx.Metadata `json:"metadata"`
}

func runApply(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}
	envelopes, err := tx.DecodeEnvelopes(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}

	ctx := cmd.Context()
	return withProvider(ctx, func(p *di.Provider) error {
		engine, err := p.Engine()
		if err != nil {
			return err
		}
		if cfg.Metrics.Enabled {
			m, err := p.Metrics()
			if err != nil {
				return err
			}
			stop, err := serveMetrics(cfg.Metrics.Listen, m)
			if err != nil {
				return err
			}
			defer stop()
		}

		results, applyErr := engine.ApplyLedger(ctx, envelopes)

		out := cmd.OutOrStdout()
		if applyJSON {
			err = printResultsJSON(out, results)
		} else {
			err = printResults(out, results)
		}
		if err != nil {
			return err
		}
		if applyErr != nil {
			return applyErr
		}

		store, err := p.Store()
		if err != nil {
			return err
		}
		return printBalances(ctx, out, store, envelopes)
	})
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func printResults(out io.Writer, results []*tx.ApplyResult) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTYPE\tSOURCE\tRESULT\tCHANGES")

	applied := 0
	for i, res := range results {
		if res.Applied {
			applied++
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
			i, res.Type, res.Source, res.Result, len(res.Metadata.AffectedNodes))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "applied %d of %d operations\n", applied, len(results))
	return err
}

func printResultsJSON(out io.Writer, results []*tx.ApplyResult) error {
	outputs := make([]applyOutput, 0, len(results))
	for _, res := range results {
		outputs = append(outputs, applyOutput{
			Type:     res.Type.String(),
			Source:   res.Source.String(),
			Result:   res.Result.String(),
			Code:     res.Result.Code(),
			Applied:  res.Applied,
			Metadata: res.Metadata,
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(outputs)
}

// printBalances shows the native balance of every source account, in the
// order they first appear.
func printBalances(ctx context.Context, out io.Writer, store tx.LedgerEntryStore, envelopes []tx.Envelope) error {
	seen := make(map[sle.AccountID]bool)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tBALANCE\tSUBENTRIES")

	for _, env := range envelopes {
		if seen[env.Source] {
			continue
		}
		seen[env.Source] = true

		data, err := store.Read(ctx, keylet.Account(env.Source))
		if err != nil {
			return err
		}
		if data == nil {
			fmt.Fprintf(w, "%s\t-\t-\n", env.Source)
			continue
		}
		acct, err := sle.ParseAccount(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", env.Source, amount.StringFromInt64(acct.Balance), acct.NumSubEntries)
	}
	return w.Flush()
}

// serveMetrics exposes m on listen until the returned stop function is called.
func serveMetrics(listen string, m *metrics.Service) (func(), error) {
	ln, err := net.Listen("tcp", listen)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("metrics server stopped")
		}
	}()
	logger.WithField("listen", ln.Addr().String()).Info("serving metrics")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Warn("metrics server shutdown")
		}
	}, nil
}
