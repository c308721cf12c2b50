package database

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgermint/ledgermint/foundation/ledger/digest"
)

// Tx is the transactional information between two parties. The timestamp
// is captured once at construction and never recomputed, so the digest of
// a transaction is stable for its lifetime.
type Tx struct {
	ID        string    `json:"id" validate:"required,uuid"`
	FromID    AccountID `json:"from" validate:"required"`
	ToID      AccountID `json:"to" validate:"required"`
	Value     uint64    `json:"value"`
	TimeStamp uint64    `json:"timestamp"`
}

// NewTx constructs a new transaction, assigning it a unique id and
// capturing the current time.
func NewTx(fromID AccountID, toID AccountID, value uint64) (Tx, error) {
	if !fromID.IsAccountID() {
		return Tx{}, fmt.Errorf("from account is not properly formatted")
	}
	if !toID.IsAccountID() {
		return Tx{}, fmt.Errorf("to account is not properly formatted")
	}

	tx := Tx{
		ID:        uuid.New().String(),
		FromID:    fromID,
		ToID:      toID,
		Value:     value,
		TimeStamp: uint64(time.Now().UTC().Unix()),
	}

	return tx, nil
}

// HashHex returns the digest for the transaction. The digest is recomputed
// from the current field values on every call, it is never cached.
func (tx Tx) HashHex() string {
	return digest.Hash(tx)
}

// Hash implements the merkle Hashable interface for providing a hash
// of a transaction.
func (tx Tx) Hash() ([]byte, error) {
	return hex.DecodeString(tx.HashHex()[2:])
}

// Equals implements the merkle Hashable interface for providing an
// equality check between two transactions.
func (tx Tx) Equals(otherTx Tx) bool {
	return tx.ID == otherTx.ID
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s:%s:%d", tx.FromID, tx.ToID, tx.Value)
}
