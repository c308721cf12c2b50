package cmd

import (
	"fmt"

	"github.com/ledgermint/ledgermint/foundation/ledger/digest"
	"github.com/spf13/cobra"
)

// hashCmd digests the provided payloads the same way the ledger does.
var hashCmd = &cobra.Command{
	Use:   "hash [payload ...]",
	Short: "Digest payloads with the ledger hash function",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, payload := range args {
			fmt.Printf("%s  %s\n", digest.Hash(payload), payload)
		}
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}
