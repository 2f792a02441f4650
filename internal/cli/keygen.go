package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/keypair"
)

var keygenCount int

var keygenCmd = &cobra.Command{
	Use:         "keygen",
	Short:       "Generate account keypairs",
	Long:        `Print fresh random keypairs, one address and seed per line, for use in genesis configuration and operation files.`,
	Args:        cobra.NoArgs,
	Annotations: noConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		if keygenCount < 1 {
			return fmt.Errorf("count must be positive, got %d", keygenCount)
		}
		for i := 0; i < keygenCount; i++ {
			kp, err := keypair.Random()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", kp.Address(), kp.Seed())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().IntVarP(&keygenCount, "count", "n", 1, "number of keypairs to generate")
}
