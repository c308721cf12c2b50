package database

import (
	"errors"
	"strings"
)

// Account represents information stored in the database for an
// individual account.
type Account struct {
	AccountID AccountID
	Balance   uint64
}

// newAccount constructs a new account value for use.
func newAccount(accountID AccountID, balance uint64) Account {
	return Account{
		AccountID: accountID,
		Balance:   balance,
	}
}

// =============================================================================

// AccountID represents the name an account transacts under.
type AccountID string

// ToAccountID converts a string to an AccountID and validates it is
// properly formed.
func ToAccountID(s string) (AccountID, error) {
	a := AccountID(s)
	if !a.IsAccountID() {
		return "", errors.New("invalid account format")
	}

	return a, nil
}

// IsAccountID verifies the underlying data represents a usable account
// name: non-empty with no whitespace.
func (a AccountID) IsAccountID() bool {
	if len(a) == 0 {
		return false
	}

	return !strings.ContainsAny(string(a), " \t\n\r")
}
