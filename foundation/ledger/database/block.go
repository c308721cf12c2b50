package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgermint/ledgermint/foundation/ledger/digest"
	"github.com/ledgermint/ledgermint/foundation/ledger/merkle"
)

// BlockHeader represents the information that identifies a block and links
// it to its predecessor.
type BlockHeader struct {
	Number        uint64 `json:"number"`          // Block number in the chain, starting at 0.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	TimeStamp     uint64 `json:"timestamp"`       // Time the block was created.
	Nonce         uint64 `json:"nonce"`           // Value identified to solve the hash solution.
	TransRoot     string `json:"trans_root"`      // Merkle root over the transactions in this block.
}

// Block represents a group of transactions batched together along with the
// hash that settled them. The hash is stored, not derived, so validation
// can detect any field being changed after the block is settled.
type Block struct {
	Header    BlockHeader `json:"header"`
	Trans     []Tx        `json:"trans"`
	BlockHash string      `json:"hash"`
}

// NewGenesisBlock constructs block 0 of a chain. Its previous block hash is
// the zero sentinel, it carries no transactions, and its hash is fixed here
// and never re-linked.
func NewGenesisBlock() Block {
	b := Block{
		Header: BlockHeader{
			Number:        0,
			PrevBlockHash: digest.ZeroHash,
			TimeStamp:     uint64(time.Now().UTC().Unix()),
			Nonce:         0,
			TransRoot:     digest.ZeroHash,
		},
	}
	b.BlockHash = b.ComputeHash()

	return b
}

// NewBlock constructs a candidate block on top of the specified previous
// block. The hash is computed immediately from the given fields. The block
// is not settled until proof of work runs and the block is appended.
func NewBlock(prevBlock Block, trans []Tx) (Block, error) {
	transRoot, err := TransRoot(trans)
	if err != nil {
		return Block{}, err
	}

	b := Block{
		Header: BlockHeader{
			Number:        prevBlock.Header.Number + 1,
			PrevBlockHash: prevBlock.BlockHash,
			TimeStamp:     uint64(time.Now().UTC().Unix()),
			Nonce:         0,
			TransRoot:     transRoot,
		},
		Trans: append([]Tx(nil), trans...),
	}
	b.BlockHash = b.ComputeHash()

	return b, nil
}

// TransRoot computes the merkle root binding the specified transactions.
// An empty batch produces the zero sentinel.
func TransRoot(trans []Tx) (string, error) {
	if len(trans) == 0 {
		return digest.ZeroHash, nil
	}

	tree, err := merkle.NewTree(trans)
	if err != nil {
		return "", err
	}

	return tree.RootHex(), nil
}

// ComputeHash returns the hash for the block as a pure function of the
// current header fields.
func (b Block) ComputeHash() string {
	return digest.Hash(b.Header)
}

// Relink points the block at the specified chain tail and recomputes the
// stored hash. This runs exactly once when the block is appended. With a
// single writer the tail has not moved since the block was constructed, so
// the hash is unchanged and the proof of work still holds.
func (b *Block) Relink(tailHash string) {
	b.Header.PrevBlockHash = tailHash
	b.BlockHash = b.ComputeHash()
}

// =============================================================================

// POW constructs a new block on top of the previous block and performs the
// work to find a nonce that solves the difficulty puzzle. The search is
// unbounded except for cancellation through the context.
func POW(ctx context.Context, difficulty uint16, prevBlock Block, trans []Tx, ev func(v string, args ...any)) (Block, error) {
	nb, err := NewBlock(prevBlock, trans)
	if err != nil {
		return Block{}, err
	}

	if err := nb.performPOW(ctx, difficulty, ev); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid hash for the block.
// Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, difficulty uint16, ev func(v string, args ...any)) error {
	ev("database: performPOW: MINING: started: blk[%d]", b.Header.Number)
	defer ev("database: performPOW: MINING: completed: blk[%d]", b.Header.Number)

	for _, tx := range b.Trans {
		ev("database: performPOW: MINING: tx[%s]", tx)
	}

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: performPOW: MINING: attempts[%d]", attempts)
		}

		// Did the caller cancel the search.
		if ctx.Err() != nil {
			ev("database: performPOW: MINING: CANCELLED")
			return ctx.Err()
		}

		// Advance the nonce, then hash the block and check if we have
		// solved the puzzle.
		b.Header.Nonce++
		hash := b.ComputeHash()
		if !digest.IsSolved(difficulty, hash) {
			continue
		}

		ev("database: performPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.Header.PrevBlockHash, hash)
		ev("database: performPOW: MINING: attempts[%d]", attempts)

		b.BlockHash = hash
		return nil
	}
}

// =============================================================================

// ValidateBlock takes a block and validates it against its predecessor in
// the chain. Failures report the block number and the reason, they are
// never repaired.
func (b Block) ValidateBlock(prevBlock Block, difficulty uint16, ev func(v string, args ...any)) error {
	ev("database: ValidateBlock: blk[%d]: check: stored hash matches contents", b.Header.Number)

	transRoot, err := TransRoot(b.Trans)
	if err != nil {
		return fmt.Errorf("block %d: computing transaction root: %w", b.Header.Number, err)
	}
	if b.Header.TransRoot != transRoot {
		return fmt.Errorf("block %d: transaction root does not match transactions, got %s, exp %s", b.Header.Number, transRoot, b.Header.TransRoot)
	}

	if hash := b.ComputeHash(); b.BlockHash != hash {
		return fmt.Errorf("block %d: stored hash does not match contents, got %s, exp %s", b.Header.Number, hash, b.BlockHash)
	}

	ev("database: ValidateBlock: blk[%d]: check: hash solves the difficulty puzzle", b.Header.Number)

	if !digest.IsSolved(difficulty, b.BlockHash) {
		return fmt.Errorf("block %d: hash does not solve difficulty %d: %s", b.Header.Number, difficulty, b.BlockHash)
	}

	ev("database: ValidateBlock: blk[%d]: check: block number is the next number", b.Header.Number)

	if b.Header.Number != prevBlock.Header.Number+1 {
		return fmt.Errorf("block %d: not the next block number, exp %d", b.Header.Number, prevBlock.Header.Number+1)
	}

	ev("database: ValidateBlock: blk[%d]: check: previous hash matches parent block", b.Header.Number)

	if b.Header.PrevBlockHash != prevBlock.BlockHash {
		return fmt.Errorf("block %d: previous hash does not match parent, got %s, exp %s", b.Header.Number, b.Header.PrevBlockHash, prevBlock.BlockHash)
	}

	return nil
}
