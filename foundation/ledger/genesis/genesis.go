// Package genesis maintains access to the genesis information that seeds
// a new ledger.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the initial configuration and seed balances for
// a ledger.
type Genesis struct {
	Date       time.Time         `json:"date"`
	ChainName  string            `json:"chain_name"` // A label for this running instance.
	Difficulty uint16            `json:"difficulty"` // How many leading hex zeros a block hash needs.
	Admin      string            `json:"admin"`      // Account seeded with the initial supply.
	Supply     uint64            `json:"supply"`     // Initial supply credited to the admin account.
	Balances   map[string]uint64 `json:"balances"`   // Additional accounts to seed.
}

// New constructs a Genesis that seeds the admin account with the
// initial supply.
func New(admin string, supply uint64, difficulty uint16) Genesis {
	return Genesis{
		Date:       time.Now().UTC(),
		Difficulty: difficulty,
		Admin:      admin,
		Supply:     supply,
	}
}

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
