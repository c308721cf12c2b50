// Package merkle provides a merkle tree over the transactions in a block.
// The root hash binds the full transaction contents into the block header
// so any change to a settled transaction is detectable from the header.
package merkle

import (
	"crypto/sha256"
	"errors"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Hashable represents the behavior concrete data must exhibit to be used
// in the merkle tree.
type Hashable[T any] interface {
	Hash() ([]byte, error)
	Equals(other T) bool
}

// Tree represents a merkle tree of values of some type T that exhibits the
// behavior defined by the Hashable constraint.
type Tree[T Hashable[T]] struct {
	values []T
	root   []byte
}

// NewTree constructs a merkle tree from the specified values. The order of
// the values is preserved and is part of the root hash.
func NewTree[T Hashable[T]](values []T) (*Tree[T], error) {
	if len(values) == 0 {
		return nil, errors.New("cannot construct tree with no content")
	}

	var level [][]byte
	for _, value := range values {
		hash, err := value.Hash()
		if err != nil {
			return nil, err
		}
		level = append(level, hash)
	}

	// Reduce pairwise until a single root remains. An odd node at the end
	// of a level is paired with itself.
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}

		next := make([][]byte, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			h := sha256.New()
			h.Write(level[i])
			h.Write(level[i+1])
			next = append(next, h.Sum(nil))
		}
		level = next
	}

	t := Tree[T]{
		values: append([]T(nil), values...),
		root:   level[0],
	}

	return &t, nil
}

// Values returns a copy of the values in the tree in their original order.
func (t *Tree[T]) Values() []T {
	return append([]T(nil), t.values...)
}

// RootHex returns the root hash of the tree in hex encoding.
func (t *Tree[T]) RootHex() string {
	return hexutil.Encode(t.root)
}

// Contains reports whether the specified value is a leaf of the tree.
func (t *Tree[T]) Contains(value T) bool {
	for _, v := range t.values {
		if value.Equals(v) {
			return true
		}
	}

	return false
}
