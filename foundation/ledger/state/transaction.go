package state

import (
	"errors"
	"fmt"

	"github.com/ledgermint/ledgermint/foundation/ledger/database"
)

// ErrInsufficientBalance is returned when a transaction is submitted and
// the sender's settled balance cannot cover the value.
var ErrInsufficientBalance = errors.New("insufficient balance")

// SubmitTransaction accepts a transaction for inclusion in the next mined
// block. The sender's settled balance must cover the value at the time of
// the check; rejected transactions leave the pool untouched. Pending
// transactions do not reserve funds.
func (s *State) SubmitTransaction(tx database.Tx) error {
	s.evHandler("state: SubmitTransaction: check balance: tx[%s]", tx)

	if tx.FromID == tx.ToID {
		return fmt.Errorf("tx[%s]: %w", tx, database.ErrSelfTransfer)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.db.Query(tx.FromID)
	if err != nil {
		return fmt.Errorf("sender %q: %w", tx.FromID, err)
	}

	if account.Balance < tx.Value {
		return fmt.Errorf("tx[%s], bal %d: %w", tx, account.Balance, ErrInsufficientBalance)
	}

	if err := s.mempool.Add(tx); err != nil {
		return err
	}

	s.evHandler("state: SubmitTransaction: accepted: tx[%s]: pool size %d", tx, s.mempool.Count())

	return nil
}
