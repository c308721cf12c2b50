// Package memory implements the ability to read and write blocks to memory
// using a slice. Durable storage is out of scope for this ledger, so this
// is the storage every caller uses.
package memory

import (
	"errors"
	"sync"

	"github.com/ledgermint/ledgermint/foundation/ledger/database"
)

// Memory represents the storage implementation for reading and storing
// blocks in memory using a slice. This implements the database.Storage
// interface.
type Memory struct {
	mu     sync.RWMutex
	blocks []database.Block
}

// New constructs a Memory value for use.
func New() (*Memory, error) {
	return &Memory{}, nil
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Write takes the specified block and appends it in memory. Blocks must
// arrive in order so the chain stays contiguous.
func (m *Memory) Write(block database.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if uint64(len(m.blocks)) != block.Header.Number {
		return errors.New("block is out of order")
	}

	m.blocks = append(m.blocks, block)

	return nil
}

// GetBlock searches the chain to locate and return the contents of the
// specified block by number.
func (m *Memory) GetBlock(num uint64) (database.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if num >= uint64(len(m.blocks)) {
		return database.Block{}, errors.New("block does not exist")
	}

	return m.blocks[num], nil
}

// ForEach returns an iterator to walk through all the blocks starting
// with block number 0.
func (m *Memory) ForEach() database.Iterator {
	return &memoryIterator{storage: m}
}

// Reset clears out the stored chain.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = nil
	return nil
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking
// through and reading blocks in memory. This implements the database
// Iterator interface.
type memoryIterator struct {
	storage *Memory // Access to the storage API.
	current uint64  // Current block number being iterated over.
	eoc     bool    // Represents the iterator is at the end of the chain.
}

// Next retrieves the next block in the chain.
func (mi *memoryIterator) Next() (database.Block, error) {
	if mi.eoc {
		return database.Block{}, errors.New("end of chain")
	}

	block, err := mi.storage.GetBlock(mi.current)
	if err != nil {
		mi.eoc = true
	}

	mi.current++

	return block, err
}

// Done returns the end of chain value.
func (mi *memoryIterator) Done() bool {
	return mi.eoc
}
