package state

import (
	"github.com/ledgermint/ledgermint/foundation/ledger/database"
)

// Validate walks the chain from the genesis block and verifies every block
// is bound to its predecessor and that no settled content has changed. A
// nil return means the chain is intact; otherwise the error names the
// failing block and the reason. Failures are reported, never repaired.
func (s *State) Validate() error {
	s.evHandler("state: Validate: walk chain: height %d", s.db.Height())

	var prevBlock database.Block

	iter := s.db.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return err
		}

		if block.Header.Number > 0 {
			if err := block.ValidateBlock(prevBlock, s.genesis.Difficulty, s.evHandler); err != nil {
				return err
			}
		}

		prevBlock = block
	}

	return nil
}
