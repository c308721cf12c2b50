package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ledgermint/ledgermint/foundation/ledger/genesis"
	"github.com/spf13/cobra"
)

var (
	genesisOut      string
	genesisAdmin    string
	genesisSupply   uint64
	genesisDiff     uint16
	genesisAccounts []string
)

// genesisCmd writes a genesis file that seeds a new ledger.
var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Write a genesis file",
	Run: func(cmd *cobra.Command, args []string) {
		gen := genesis.New(genesisAdmin, genesisSupply, genesisDiff)

		if len(genesisAccounts) > 0 {
			gen.Balances = make(map[string]uint64)
			for _, acct := range genesisAccounts {
				parts := strings.Split(acct, ":")
				if len(parts) != 2 {
					log.Fatalf("invalid account %q, want name:balance", acct)
				}
				balance, err := strconv.ParseUint(parts[1], 10, 64)
				if err != nil {
					log.Fatalf("invalid balance in %q: %s", acct, err)
				}
				gen.Balances[parts[0]] = balance
			}
		}

		data, err := json.MarshalIndent(gen, "", "  ")
		if err != nil {
			log.Fatal(err)
		}

		if err := os.MkdirAll(filepath.Dir(genesisOut), 0755); err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(genesisOut, data, 0644); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("wrote %s\n", genesisOut)
	},
}

func init() {
	rootCmd.AddCommand(genesisCmd)
	genesisCmd.Flags().StringVarP(&genesisOut, "out", "o", "zledger/genesis.json", "Path of the genesis file to write.")
	genesisCmd.Flags().StringVarP(&genesisAdmin, "admin", "a", "admin", "Account seeded with the initial supply.")
	genesisCmd.Flags().Uint64VarP(&genesisSupply, "supply", "s", 1000, "Initial supply for the admin account.")
	genesisCmd.Flags().Uint16VarP(&genesisDiff, "difficulty", "d", 2, "Leading hex zeros required of a block hash.")
	genesisCmd.Flags().StringSliceVarP(&genesisAccounts, "accounts", "b", nil, "Extra name:balance accounts to seed.")
}
