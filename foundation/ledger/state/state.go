// Package state is the core API for the ledger and implements all the
// business rules for admission, mining, and validation.
package state

import (
	"sync"

	"github.com/ledgermint/ledgermint/foundation/ledger/database"
	"github.com/ledgermint/ledgermint/foundation/ledger/database/storage/memory"
	"github.com/ledgermint/ledgermint/foundation/ledger/genesis"
	"github.com/ledgermint/ledgermint/foundation/ledger/mempool"
)

// EventHandler defines a function that is called when events occur in the
// processing of transactions and blocks.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis   genesis.Genesis
	Storage   database.Storage
	EvHandler EventHandler
}

// State manages the ledger: the chain of blocks, the pool of pending
// transactions, and the account balances.
type State struct {
	mu sync.Mutex

	genesis   genesis.Genesis
	evHandler EventHandler

	mempool *mempool.Mempool
	db      *database.Database
}

// New constructs a new ledger state for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	strg := cfg.Storage
	if strg == nil {
		var err error
		strg, err = memory.New()
		if err != nil {
			return nil, err
		}
	}

	db, err := database.New(cfg.Genesis, strg, ev)
	if err != nil {
		return nil, err
	}

	state := State{
		genesis:   cfg.Genesis,
		evHandler: ev,
		mempool:   mempool.New(),
		db:        db,
	}

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	s.db.Close()
	return nil
}

// Truncate resets the ledger back to the genesis state: one genesis block,
// seeded balances, and an empty pool.
func (s *State) Truncate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mempool.Truncate()
	return s.db.Reset()
}
