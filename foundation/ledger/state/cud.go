package state

import (
	"github.com/ledgermint/ledgermint/foundation/ledger/database"
)

// CreateAccount registers a new account with the specified starting
// balance. Creating an account that already exists is reported through
// database.ErrAccountExists and changes nothing.
func (s *State) CreateAccount(accountID database.AccountID, balance uint64) error {
	s.evHandler("state: CreateAccount: account[%s] balance[%d]", accountID, balance)

	return s.db.CreateAccount(accountID, balance)
}
