// Package database handles the lower level support for maintaining the
// chain of blocks and the in memory account balances.
package database

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ledgermint/ledgermint/foundation/ledger/genesis"
)

// Set of errors the database can return for callers to branch on.
var (
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrBlockNotFound   = errors.New("block not found")
	ErrSelfTransfer    = errors.New("sending money to yourself")
)

// Database manages the chain of blocks and the accounts that transact
// on the ledger.
type Database struct {
	mu sync.RWMutex

	genesis     genesis.Genesis
	latestBlock Block
	accounts    map[AccountID]Account

	storage Storage
}

// New constructs a new database, seeds the account balances from the
// genesis information, and replays any blocks already in storage. When
// storage is empty, the genesis block is created and written.
func New(gen genesis.Genesis, storage Storage, ev func(v string, args ...any)) (*Database, error) {
	db := Database{
		genesis:  gen,
		accounts: make(map[AccountID]Account),
		storage:  storage,
	}

	if err := db.seedAccounts(); err != nil {
		return nil, err
	}

	// Replay the blocks found in storage so a pre-loaded chain is honored.
	var latestBlock Block
	var replayed bool

	iter := storage.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if block.Header.Number > 0 {
			if err := block.ValidateBlock(latestBlock, gen.Difficulty, ev); err != nil {
				return nil, err
			}
			for _, tx := range block.Trans {
				if err := db.applyTransaction(tx); err != nil {
					return nil, err
				}
			}
		}

		latestBlock = block
		replayed = true
	}

	// A fresh chain starts with exactly one block at number 0.
	if !replayed {
		latestBlock = NewGenesisBlock()
		if err := storage.Write(latestBlock); err != nil {
			return nil, err
		}
	}

	db.latestBlock = latestBlock

	return &db, nil
}

// Close closes the underlying storage.
func (db *Database) Close() {
	db.storage.Close()
}

// Reset re-initializes the database back to the genesis state.
func (db *Database) Reset() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.storage.Reset(); err != nil {
		return err
	}

	db.accounts = make(map[AccountID]Account)
	if err := db.seedAccounts(); err != nil {
		return err
	}

	db.latestBlock = NewGenesisBlock()
	return db.storage.Write(db.latestBlock)
}

// seedAccounts applies the genesis admin supply and any extra seed
// balances to the accounts map. The caller must own the lock.
func (db *Database) seedAccounts() error {
	if db.genesis.Admin != "" {
		adminID, err := ToAccountID(db.genesis.Admin)
		if err != nil {
			return fmt.Errorf("genesis admin: %w", err)
		}
		db.accounts[adminID] = newAccount(adminID, db.genesis.Supply)
	}

	for accountStr, balance := range db.genesis.Balances {
		accountID, err := ToAccountID(accountStr)
		if err != nil {
			return fmt.Errorf("genesis balance %q: %w", accountStr, err)
		}
		db.accounts[accountID] = newAccount(accountID, balance)
	}

	return nil
}

// =============================================================================

// CreateAccount inserts a new account with the specified starting balance.
// Creating an account that already exists reports ErrAccountExists and
// changes nothing.
func (db *Database) CreateAccount(accountID AccountID, balance uint64) error {
	if !accountID.IsAccountID() {
		return errors.New("invalid account format")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.accounts[accountID]; exists {
		return ErrAccountExists
	}

	db.accounts[accountID] = newAccount(accountID, balance)
	return nil
}

// Query returns a copy of the specified account. Callers must check the
// error to tell an unknown account apart from an empty one.
func (db *Database) Query(accountID AccountID) (Account, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	account, exists := db.accounts[accountID]
	if !exists {
		return Account{}, ErrAccountNotFound
	}

	return account, nil
}

// CopyAccounts makes a copy of the current accounts in the database.
func (db *Database) CopyAccounts() map[AccountID]Account {
	db.mu.RLock()
	defer db.mu.RUnlock()

	accounts := make(map[AccountID]Account, len(db.accounts))
	for accountID, account := range db.accounts {
		accounts[accountID] = account
	}
	return accounts
}

// ApplyTransaction performs the business logic for settling a transaction
// against the account balances: debit the sender, credit the recipient.
func (db *Database) ApplyTransaction(tx Tx) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.applyTransaction(tx)
}

// applyTransaction settles the transaction. The caller must own the lock.
func (db *Database) applyTransaction(tx Tx) error {
	if tx.FromID == tx.ToID {
		return fmt.Errorf("transaction invalid, tx[%s]: %w", tx, ErrSelfTransfer)
	}

	from, exists := db.accounts[tx.FromID]
	if !exists {
		return fmt.Errorf("sender %q: %w", tx.FromID, ErrAccountNotFound)
	}

	if from.Balance < tx.Value {
		return fmt.Errorf("insufficient balance settling tx[%s], bal %d, needed %d", tx, from.Balance, tx.Value)
	}

	// Recipients unknown to the ledger come into existence on first credit.
	to, exists := db.accounts[tx.ToID]
	if !exists {
		to = newAccount(tx.ToID, 0)
	}

	from.Balance -= tx.Value
	to.Balance += tx.Value

	db.accounts[tx.FromID] = from
	db.accounts[tx.ToID] = to

	return nil
}

// =============================================================================

// UpdateLatestBlock provides safe access to update the latest block.
func (db *Database) UpdateLatestBlock(block Block) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.latestBlock = block
}

// LatestBlock returns a copy of the current latest block.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.latestBlock
}

// Height returns the number of blocks in the chain.
func (db *Database) Height() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.latestBlock.Header.Number + 1
}

// Write appends a new block to the chain in storage.
func (db *Database) Write(block Block) error {
	return db.storage.Write(block)
}

// ForEach returns an iterator to walk through all the blocks starting
// with the genesis block.
func (db *Database) ForEach() Iterator {
	return db.storage.ForEach()
}

// GetBlock searches the chain to locate and return the specified block
// by number.
func (db *Database) GetBlock(num uint64) (Block, error) {
	block, err := db.storage.GetBlock(num)
	if err != nil {
		return Block{}, fmt.Errorf("block %d: %w", num, ErrBlockNotFound)
	}

	return block, nil
}

// GetBlockByHash walks the chain to locate and return the first block
// with the specified hash.
func (db *Database) GetBlockByHash(hash string) (Block, error) {
	iter := db.storage.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			break
		}
		if block.BlockHash == hash {
			return block, nil
		}
	}

	return Block{}, fmt.Errorf("block %q: %w", hash, ErrBlockNotFound)
}
