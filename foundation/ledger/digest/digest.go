// Package digest provides the content addressing support for the ledger.
// Every transaction and block identity in the system is a digest produced
// by this package.
package digest

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ZeroHash represents a hash code of zeros. It is the previous-block hash
// of the genesis block.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// HashLen is the length of a digest string including the 0x prefix.
const HashLen = 66

// Hash returns a unique string for the value. The value is marshaled to
// JSON so field order and encoding are deterministic, then hashed with
// sha256 and hex encoded.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// IsSolved checks the hash complies with the proof of work rules. The
// difficulty number of hex characters past the 0x prefix must all be 0.
func IsSolved(difficulty uint16, hash string) bool {
	if len(hash) != HashLen {
		return false
	}

	// A digest only carries HashLen-2 hex characters, so no hash can
	// satisfy a difficulty beyond that.
	if int(difficulty) > HashLen-2 {
		return false
	}

	for i := 2; i < int(difficulty)+2; i++ {
		if hash[i] != '0' {
			return false
		}
	}

	return true
}
