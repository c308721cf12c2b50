package database_test

import (
	"errors"
	"testing"

	"github.com/ledgermint/ledgermint/foundation/ledger/database"
	"github.com/ledgermint/ledgermint/foundation/ledger/database/storage/memory"
	"github.com/ledgermint/ledgermint/foundation/ledger/genesis"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// noEv is an event handler that drops everything.
func noEv(v string, args ...any) {}

func newDatabase(t *testing.T, gen genesis.Genesis) *database.Database {
	strg, err := memory.New()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct storage: %v", failed, err)
	}

	db, err := database.New(gen, strg, noEv)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to open database: %v", failed, err)
	}

	return db
}

// =============================================================================

func Test_Accounts(t *testing.T) {
	gen := genesis.Genesis{
		Difficulty: 1,
		Admin:      "admin",
		Supply:     1000,
		Balances: map[string]uint64{
			"alice": 500,
		},
	}

	t.Log("Given the need to manage accounts and their balances.")
	{
		db := newDatabase(t, gen)

		t.Logf("\tTest 0:\tWhen seeding from genesis.")
		{
			admin, err := db.Query("admin")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould find the admin account: %v", failed, err)
			}
			if admin.Balance != 1000 {
				t.Fatalf("\t%s\tTest 0:\tShould seed admin with the supply: got %d", failed, admin.Balance)
			}
			t.Logf("\t%s\tTest 0:\tShould seed admin with the supply.", success)

			alice, err := db.Query("alice")
			if err != nil || alice.Balance != 500 {
				t.Fatalf("\t%s\tTest 0:\tShould seed the extra balances: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould seed the extra balances.", success)
		}

		t.Logf("\tTest 1:\tWhen creating accounts.")
		{
			if err := db.CreateAccount("bob", 300); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to create a new account: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to create a new account.", success)

			err := db.CreateAccount("bob", 9999)
			if !errors.Is(err, database.ErrAccountExists) {
				t.Fatalf("\t%s\tTest 1:\tShould report a duplicate account: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould report a duplicate account.", success)

			bob, _ := db.Query("bob")
			if bob.Balance != 300 {
				t.Fatalf("\t%s\tTest 1:\tShould leave the original balance untouched: got %d", failed, bob.Balance)
			}
			t.Logf("\t%s\tTest 1:\tShould leave the original balance untouched.", success)
		}

		t.Logf("\tTest 2:\tWhen querying an unknown account.")
		{
			if _, err := db.Query("nobody"); !errors.Is(err, database.ErrAccountNotFound) {
				t.Errorf("\t%s\tTest 2:\tShould report the account as not found: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 2:\tShould report the account as not found.", success)
			}
		}
	}
}

func Test_Settlement(t *testing.T) {
	gen := genesis.Genesis{
		Difficulty: 1,
		Admin:      "admin",
		Supply:     1000,
	}

	t.Log("Given the need to settle transactions against the balances.")
	{
		db := newDatabase(t, gen)

		t.Logf("\tTest 0:\tWhen settling a covered transaction.")
		{
			tx, err := database.NewTx("admin", "alice", 100)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the transaction: %v", failed, err)
			}

			if err := db.ApplyTransaction(tx); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to settle the transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to settle the transaction.", success)

			admin, _ := db.Query("admin")
			if admin.Balance != 900 {
				t.Errorf("\t%s\tTest 0:\tShould debit the sender: got %d", failed, admin.Balance)
			} else {
				t.Logf("\t%s\tTest 0:\tShould debit the sender.", success)
			}

			alice, err := db.Query("alice")
			if err != nil || alice.Balance != 100 {
				t.Errorf("\t%s\tTest 0:\tShould credit the recipient into existence: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 0:\tShould credit the recipient into existence.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen settling an uncovered transaction.")
		{
			tx, err := database.NewTx("alice", "admin", 5000)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct the transaction: %v", failed, err)
			}

			if err := db.ApplyTransaction(tx); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould refuse to settle.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould refuse to settle.", success)

			alice, _ := db.Query("alice")
			admin, _ := db.Query("admin")
			if alice.Balance != 100 || admin.Balance != 900 {
				t.Errorf("\t%s\tTest 1:\tShould leave both balances untouched: got %d and %d", failed, alice.Balance, admin.Balance)
			} else {
				t.Logf("\t%s\tTest 1:\tShould leave both balances untouched.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen settling from an unknown sender.")
		{
			tx, err := database.NewTx("ghost", "admin", 1)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to construct the transaction: %v", failed, err)
			}

			if err := db.ApplyTransaction(tx); !errors.Is(err, database.ErrAccountNotFound) {
				t.Errorf("\t%s\tTest 2:\tShould report the sender as not found: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 2:\tShould report the sender as not found.", success)
			}
		}

		t.Logf("\tTest 3:\tWhen settling a transfer to the sender itself.")
		{
			tx, err := database.NewTx("admin", "admin", 100)
			if err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould be able to construct the transaction: %v", failed, err)
			}

			if err := db.ApplyTransaction(tx); !errors.Is(err, database.ErrSelfTransfer) {
				t.Fatalf("\t%s\tTest 3:\tShould refuse to send money to yourself: %v", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould refuse to send money to yourself.", success)

			// A self transfer must never mint: the balance stays where the
			// earlier settlements left it.
			admin, _ := db.Query("admin")
			if admin.Balance != 900 {
				t.Errorf("\t%s\tTest 3:\tShould leave the balance untouched: got %d", failed, admin.Balance)
			} else {
				t.Logf("\t%s\tTest 3:\tShould leave the balance untouched.", success)
			}
		}
	}
}
