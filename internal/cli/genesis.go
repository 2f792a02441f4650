package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/genesis"
	"github.com/LeJamon/goPreauthLedger/internal/di"
)

var genesisCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed the genesis accounts",
	Long: `Create the accounts listed under [genesis] in the configured store.
Accounts that already exist are left untouched, so init can be rerun after
adding accounts to the configuration.`,
	Args: cobra.NoArgs,
	RunE: runGenesis,
}

func init() {
	rootCmd.AddCommand(genesisCmd)
}

func runGenesis(cmd *cobra.Command, _ []string) error {
	accounts, err := genesis.Entries(cfg.Genesis.Accounts)
	if err != nil {
		return err
	}
	hash, err := genesis.StateHash(accounts)
	if err != nil {
		return err
	}

	return withProvider(cmd.Context(), func(p *di.Provider) error {
		store, err := p.Store()
		if err != nil {
			return err
		}
		created, err := genesis.Seed(cmd.Context(), store, accounts)
		if err != nil {
			return err
		}

		logger.WithFields(logrus.Fields{
			"created":  created,
			"existing": len(accounts) - created,
		}).Info("genesis accounts seeded")
		fmt.Fprintf(cmd.OutOrStdout(), "created %d of %d genesis accounts (state %X)\n",
			created, len(accounts), hash[:8])
		return nil
	})
}
