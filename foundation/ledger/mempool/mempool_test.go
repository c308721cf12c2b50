package mempool_test

import (
	"testing"

	"github.com/ledgermint/ledgermint/foundation/ledger/database"
	"github.com/ledgermint/ledgermint/foundation/ledger/mempool"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func newTx(t *testing.T, from string, to string, value uint64) database.Tx {
	tx, err := database.NewTx(database.AccountID(from), database.AccountID(to), value)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
	}
	return tx
}

func Test_Mempool(t *testing.T) {
	t.Log("Given the need to hold pending transactions in submission order.")
	{
		mp := mempool.New()

		tx1 := newTx(t, "admin", "alice", 100)
		tx2 := newTx(t, "alice", "bob", 50)
		tx3 := newTx(t, "bob", "alice", 25)

		t.Logf("\tTest 0:\tWhen adding three transactions.")
		{
			for _, tx := range []database.Tx{tx1, tx2, tx3} {
				if err := mp.Add(tx); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to add tx[%s]: %v", failed, tx, err)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould be able to add all three.", success)

			if mp.Count() != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould have a count of 3: got %d", failed, mp.Count())
			}
			t.Logf("\t%s\tTest 0:\tShould have a count of 3.", success)

			picked := mp.PickAll()
			if picked[0].ID != tx1.ID || picked[1].ID != tx2.ID || picked[2].ID != tx3.ID {
				t.Fatalf("\t%s\tTest 0:\tShould return transactions in submission order.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould return transactions in submission order.", success)
		}

		t.Logf("\tTest 1:\tWhen adding a transaction that is already pending.")
		{
			if err := mp.Add(tx2); err == nil {
				t.Errorf("\t%s\tTest 1:\tShould reject the duplicate.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould reject the duplicate.", success)
			}

			if mp.Count() != 3 {
				t.Errorf("\t%s\tTest 1:\tShould keep the count at 3: got %d", failed, mp.Count())
			} else {
				t.Logf("\t%s\tTest 1:\tShould keep the count at 3.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen deleting a mined transaction.")
		{
			mp.Delete(tx2)

			picked := mp.PickAll()
			if len(picked) != 2 || picked[0].ID != tx1.ID || picked[1].ID != tx3.ID {
				t.Fatalf("\t%s\tTest 2:\tShould keep the remaining transactions in order.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould keep the remaining transactions in order.", success)

			// Deleting again changes nothing.
			mp.Delete(tx2)
			if mp.Count() != 2 {
				t.Errorf("\t%s\tTest 2:\tShould ignore a repeated delete: got count %d", failed, mp.Count())
			} else {
				t.Logf("\t%s\tTest 2:\tShould ignore a repeated delete.", success)
			}
		}

		t.Logf("\tTest 3:\tWhen truncating the pool.")
		{
			mp.Truncate()
			if mp.Count() != 0 {
				t.Errorf("\t%s\tTest 3:\tShould have an empty pool: got %d", failed, mp.Count())
			} else {
				t.Logf("\t%s\tTest 3:\tShould have an empty pool.", success)
			}

			if err := mp.Add(tx2); err != nil {
				t.Errorf("\t%s\tTest 3:\tShould accept a transaction after truncate: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 3:\tShould accept a transaction after truncate.", success)
			}
		}
	}
}
