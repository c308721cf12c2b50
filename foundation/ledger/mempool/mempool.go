// Package mempool maintains the pool of transactions accepted but not yet
// mined into a block. Transactions leave the pool in the order they came in.
package mempool

import (
	"errors"
	"sync"

	"github.com/ledgermint/ledgermint/foundation/ledger/database"
)

// Mempool represents a cache of accepted transactions in submission order
// with a secondary index on the transaction id.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.Tx
	ids  map[string]struct{}
}

// New constructs a new mempool for use.
func New() *Mempool {
	return &Mempool{
		ids: make(map[string]struct{}),
	}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the pool. A transaction that is already in
// the pool is rejected so it cannot be mined twice.
func (mp *Mempool) Add(tx database.Tx) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if _, exists := mp.ids[tx.ID]; exists {
		return errors.New("transaction already in the pool")
	}

	mp.ids[tx.ID] = struct{}{}
	mp.pool = append(mp.pool, tx)

	return nil
}

// PickAll returns a copy of every transaction in the pool in the order
// they were accepted.
func (mp *Mempool) PickAll() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return append([]database.Tx(nil), mp.pool...)
}

// Delete removes a transaction from the pool. Transactions accepted after
// a mining snapshot was taken are untouched.
func (mp *Mempool) Delete(tx database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if _, exists := mp.ids[tx.ID]; !exists {
		return
	}

	delete(mp.ids, tx.ID)
	for i, ptx := range mp.pool {
		if ptx.ID == tx.ID {
			mp.pool = append(mp.pool[:i], mp.pool[i+1:]...)
			break
		}
	}
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
	mp.ids = make(map[string]struct{})
}
