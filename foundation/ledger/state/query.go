package state

import (
	"github.com/ledgermint/ledgermint/foundation/ledger/database"
	"github.com/ledgermint/ledgermint/foundation/ledger/genesis"
)

// QueryAccount returns a copy of the specified account from the database.
func (s *State) QueryAccount(accountID database.AccountID) (database.Account, error) {
	return s.db.Query(accountID)
}

// QueryAccounts returns a copy of all the accounts and their balances.
func (s *State) QueryAccounts() map[database.AccountID]database.Account {
	return s.db.CopyAccounts()
}

// QueryBlockByNumber returns the specified block if it is in the chain.
func (s *State) QueryBlockByNumber(num uint64) (database.Block, error) {
	return s.db.GetBlock(num)
}

// QueryBlockByHash returns the first block in the chain with the
// specified hash.
func (s *State) QueryBlockByHash(hash string) (database.Block, error) {
	return s.db.GetBlockByHash(hash)
}

// QueryTransactionsByBlock returns the transactions settled in the
// specified block. A missing block reports the not found error and an
// empty set of transactions.
func (s *State) QueryTransactionsByBlock(num uint64) ([]database.Tx, error) {
	block, err := s.db.GetBlock(num)
	if err != nil {
		return nil, err
	}

	return append([]database.Tx(nil), block.Trans...), nil
}

// QueryMempool returns a copy of the pending transactions in
// submission order.
func (s *State) QueryMempool() []database.Tx {
	return s.mempool.PickAll()
}

// QueryMempoolLength returns the current length of the pending pool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// =============================================================================

// Genesis returns a copy of the genesis information.
func (s *State) Genesis() genesis.Genesis {
	return s.genesis
}

// LatestBlock returns a copy of the current tail of the chain.
func (s *State) LatestBlock() database.Block {
	return s.db.LatestBlock()
}

// Height returns the number of blocks in the chain.
func (s *State) Height() uint64 {
	return s.db.Height()
}
