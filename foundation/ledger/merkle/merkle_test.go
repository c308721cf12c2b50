package merkle_test

import (
	"crypto/sha256"
	"testing"

	"github.com/ledgermint/ledgermint/foundation/ledger/merkle"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// payload implements the merkle Hashable interface for testing.
type payload string

func (p payload) Hash() ([]byte, error) {
	hash := sha256.Sum256([]byte(p))
	return hash[:], nil
}

func (p payload) Equals(other payload) bool {
	return p == other
}

// =============================================================================

func Test_Tree(t *testing.T) {
	t.Log("Given the need to bind an ordered batch of values to one root.")
	{
		t.Logf("\tTest 0:\tWhen building a tree from the same values twice.")
		{
			t1, err := merkle.NewTree([]payload{"a", "b", "c"})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to build the tree: %v", failed, err)
			}
			t2, err := merkle.NewTree([]payload{"a", "b", "c"})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to build the tree: %v", failed, err)
			}

			if t1.RootHex() != t2.RootHex() {
				t.Fatalf("\t%s\tTest 0:\tShould produce the same root: got %s and %s", failed, t1.RootHex(), t2.RootHex())
			}
			t.Logf("\t%s\tTest 0:\tShould produce the same root.", success)
		}

		t.Logf("\tTest 1:\tWhen changing the order or the content of the values.")
		{
			base, _ := merkle.NewTree([]payload{"a", "b", "c"})
			reordered, _ := merkle.NewTree([]payload{"b", "a", "c"})
			changed, _ := merkle.NewTree([]payload{"a", "b", "x"})

			if base.RootHex() == reordered.RootHex() {
				t.Errorf("\t%s\tTest 1:\tShould change the root when values are reordered.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould change the root when values are reordered.", success)
			}

			if base.RootHex() == changed.RootHex() {
				t.Errorf("\t%s\tTest 1:\tShould change the root when a value changes.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould change the root when a value changes.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen asking for the values back.")
		{
			tree, _ := merkle.NewTree([]payload{"a", "b", "c"})

			values := tree.Values()
			if len(values) != 3 || values[0] != "a" || values[1] != "b" || values[2] != "c" {
				t.Errorf("\t%s\tTest 2:\tShould return the values in their original order: got %v", failed, values)
			} else {
				t.Logf("\t%s\tTest 2:\tShould return the values in their original order.", success)
			}

			if !tree.Contains("b") {
				t.Errorf("\t%s\tTest 2:\tShould contain value %q.", failed, "b")
			} else {
				t.Logf("\t%s\tTest 2:\tShould contain value %q.", success, "b")
			}

			if tree.Contains("z") {
				t.Errorf("\t%s\tTest 2:\tShould not contain value %q.", failed, "z")
			} else {
				t.Logf("\t%s\tTest 2:\tShould not contain value %q.", success, "z")
			}
		}

		t.Logf("\tTest 3:\tWhen building a tree with no content.")
		{
			if _, err := merkle.NewTree([]payload{}); err == nil {
				t.Errorf("\t%s\tTest 3:\tShould reject an empty batch.", failed)
			} else {
				t.Logf("\t%s\tTest 3:\tShould reject an empty batch.", success)
			}
		}
	}
}
