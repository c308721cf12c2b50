package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ledgermint/ledgermint/foundation/ledger/database"
	"github.com/spf13/cobra"
)

var (
	powDifficulty uint16
	powTimeout    time.Duration
)

// powCmd runs the proof of work search against a throwaway block so the
// cost of a difficulty setting can be measured before using it.
var powCmd = &cobra.Command{
	Use:   "pow",
	Short: "Benchmark the proof of work search",
	Run: func(cmd *cobra.Command, args []string) {
		tx, err := database.NewTx("bench-from", "bench-to", 1)
		if err != nil {
			log.Fatal(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), powTimeout)
		defer cancel()

		ev := func(v string, args ...any) {}

		start := time.Now()
		block, err := database.POW(ctx, powDifficulty, database.NewGenesisBlock(), []database.Tx{tx}, ev)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("difficulty : %d\n", powDifficulty)
		fmt.Printf("duration   : %s\n", time.Since(start))
		fmt.Printf("nonce      : %d\n", block.Header.Nonce)
		fmt.Printf("hash       : %s\n", block.BlockHash)
	},
}

func init() {
	rootCmd.AddCommand(powCmd)
	powCmd.Flags().Uint16VarP(&powDifficulty, "difficulty", "d", 2, "Leading hex zeros required of the block hash.")
	powCmd.Flags().DurationVarP(&powTimeout, "timeout", "t", 2*time.Minute, "Give up after this long.")
}
