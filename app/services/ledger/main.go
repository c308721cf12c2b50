// This program drives a complete ledger session: it seeds accounts from
// genesis, submits transfers, mines them into blocks, and validates the
// resulting chain. All human readable reporting lives here, the ledger
// engine only surfaces structured results.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ledgermint/ledgermint/business/sys/validate"
	"github.com/ledgermint/ledgermint/foundation/events"
	"github.com/ledgermint/ledgermint/foundation/ledger/database"
	"github.com/ledgermint/ledgermint/foundation/ledger/genesis"
	"github.com/ledgermint/ledgermint/foundation/ledger/state"
	"github.com/ledgermint/ledgermint/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("LEDGER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Ledger struct {
			GenesisFile string        `conf:"default:zledger/genesis.json"`
			Admin       string        `conf:"default:admin"`
			Supply      uint64        `conf:"default:1000"`
			Difficulty  uint16        `conf:"default:2"`
			Accounts    []string      `conf:"default:alice:500;bob:300"`
			Transfers   []string      `conf:"default:admin:alice:100;alice:bob:50"`
			MineTimeout time.Duration `conf:"default:2m"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting ledger session", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Genesis

	// Prefer the genesis file when one is present, otherwise build genesis
	// from the configured admin supply.
	gen, err := genesis.Load(cfg.Ledger.GenesisFile)
	if err != nil {
		log.Infow("startup", "status", "genesis file not found, using configured genesis")
		gen = genesis.New(cfg.Ledger.Admin, cfg.Ledger.Supply, cfg.Ledger.Difficulty)
	}

	// =========================================================================
	// Ledger Support

	evts := events.New()
	defer evts.Shutdown()

	// Drain mining progress on a side channel so slow logging never
	// stalls the search.
	ch := evts.Acquire("session")
	defer evts.Release("session")
	go func() {
		for s := range ch {
			log.Debugw("mining", "event", s)
		}
	}()

	// The event handler turns engine events into log lines and forwards
	// mining progress to any registered consumers.
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		if strings.HasPrefix(s, "database: performPOW") {
			evts.Send(s)
			return
		}
		log.Infow(s)
	}

	st, err := state.New(state.Config{
		Genesis:   gen,
		EvHandler: ev,
	})
	if err != nil {
		return fmt.Errorf("constructing ledger state: %w", err)
	}
	defer st.Shutdown()

	// =========================================================================
	// Session

	if err := createAccounts(log, st, cfg.Ledger.Accounts); err != nil {
		return err
	}

	accepted, err := submitTransfers(log, st, cfg.Ledger.Transfers)
	if err != nil {
		return err
	}

	if accepted == 0 {
		log.Infow("session", "status", "nothing to mine")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Ledger.MineTimeout)
	defer cancel()

	block, err := st.MineNewBlock(ctx)
	if err != nil {
		return fmt.Errorf("mining block: %w", err)
	}
	log.Infow("mined block", "number", block.Header.Number, "hash", block.BlockHash, "nonce", block.Header.Nonce, "trans", len(block.Trans))

	if err := st.Validate(); err != nil {
		return fmt.Errorf("chain validation: %w", err)
	}
	log.Infow("chain validated", "height", st.Height())

	for accountID, account := range st.QueryAccounts() {
		log.Infow("balance", "account", accountID, "value", account.Balance)
	}

	return nil
}

// =============================================================================

// createAccounts registers the configured name:balance accounts.
func createAccounts(log *zap.SugaredLogger, st *state.State, accounts []string) error {
	for _, acct := range accounts {
		name, balance, err := parseAccount(acct)
		if err != nil {
			return err
		}

		accountID, err := database.ToAccountID(name)
		if err != nil {
			return fmt.Errorf("account %q: %w", name, err)
		}

		if err := st.CreateAccount(accountID, balance); err != nil {
			if errors.Is(err, database.ErrAccountExists) {
				log.Infow("create account", "account", accountID, "status", "already exists")
				continue
			}
			return fmt.Errorf("creating account %q: %w", name, err)
		}
		log.Infow("create account", "account", accountID, "balance", balance)
	}

	return nil
}

// submitTransfers validates and submits the configured from:to:value
// transfers, reporting how many were accepted.
func submitTransfers(log *zap.SugaredLogger, st *state.State, transfers []string) (int, error) {
	var accepted int

	for _, tr := range transfers {
		req, err := parseTransfer(tr)
		if err != nil {
			return 0, err
		}

		if err := validate.Check(req); err != nil {
			return 0, fmt.Errorf("transfer %q: %w", tr, err)
		}

		tx, err := database.NewTx(database.AccountID(req.From), database.AccountID(req.To), req.Value)
		if err != nil {
			return 0, fmt.Errorf("transfer %q: %w", tr, err)
		}

		if err := st.SubmitTransaction(tx); err != nil {
			log.Infow("transfer rejected", "tx", tx, "ERROR", err)
			continue
		}

		log.Infow("transfer accepted", "tx", tx)
		accepted++
	}

	return accepted, nil
}

// =============================================================================

// transferRequest is the boundary form of a transfer before it becomes
// a transaction.
type transferRequest struct {
	From  string `json:"from" validate:"required"`
	To    string `json:"to" validate:"required"`
	Value uint64 `json:"value"`
}

// parseAccount splits a name:balance configuration entry.
func parseAccount(s string) (string, uint64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("invalid account %q, want name:balance", s)
	}

	balance, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid account balance %q: %w", s, err)
	}

	return parts[0], balance, nil
}

// parseTransfer splits a from:to:value configuration entry.
func parseTransfer(s string) (transferRequest, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return transferRequest{}, fmt.Errorf("invalid transfer %q, want from:to:value", s)
	}

	value, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return transferRequest{}, fmt.Errorf("invalid transfer value %q: %w", s, err)
	}

	return transferRequest{From: parts[0], To: parts[1], Value: value}, nil
}
