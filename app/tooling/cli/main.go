// This program provides handy tooling for working with the ledger: seeding
// genesis files, benchmarking the proof of work search, and hashing payloads.
package main

import (
	"github.com/ledgermint/ledgermint/app/tooling/cli/cmd"
)

func main() {
	cmd.Execute()
}
