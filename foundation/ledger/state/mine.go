package state

import (
	"context"
	"errors"

	"github.com/ledgermint/ledgermint/foundation/ledger/database"
)

// ErrNoTransactions is returned when a block is requested to be mined and
// there are no transactions pending. It reports a no-op, not a failure.
var ErrNoTransactions = errors.New("no transactions in mempool")

// MineNewBlock drains the pending pool into a new block, performs the
// proof of work to find a hash that satisfies the difficulty, and appends
// the block to the chain. The search runs on the calling goroutine and
// stops only on success or context cancellation.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	// Snapshot the pool in submission order together with the chain tail
	// so the candidate block is built from one consistent view.
	s.mu.Lock()
	trans := s.mempool.PickAll()
	tail := s.db.LatestBlock()
	s.mu.Unlock()

	if len(trans) == 0 {
		return database.Block{}, ErrNoTransactions
	}

	s.evHandler("state: MineNewBlock: MINING: perform POW")

	// Solve the POW puzzle on top of the tail. The lock is released while
	// the search runs so transactions can keep arriving. This can be
	// cancelled.
	block, err := database.POW(ctx, s.genesis.Difficulty, tail, trans, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MineNewBlock: MINING: update local state")

	if err := s.settleBlock(block); err != nil {
		return database.Block{}, err
	}

	return block, nil
}

// settleBlock appends the mined block to the chain, applies its
// transactions to the account balances, and removes exactly the mined
// transactions from the pool. Transactions accepted while the proof of
// work was running stay pending for the next block.
func (s *State) settleBlock(block database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-link the block to the current tail and recompute its hash. With
	// a single writer the tail has not moved, so the hash and the proof
	// of work are unchanged.
	block.Relink(s.db.LatestBlock().BlockHash)

	s.evHandler("state: settleBlock: append blk[%d] hash[%s]", block.Header.Number, block.BlockHash)

	if err := s.db.Write(block); err != nil {
		return err
	}
	s.db.UpdateLatestBlock(block)

	s.evHandler("state: settleBlock: settle accounts and remove from mempool")

	for _, tx := range block.Trans {
		if err := s.db.ApplyTransaction(tx); err != nil {
			s.evHandler("state: settleBlock: WARNING: %s", err)
		}

		s.mempool.Delete(tx)
	}

	return nil
}
