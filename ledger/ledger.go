// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledger

import (
	"errors"
	"io"
	"log/slog"
	"math"

	"github.com/blinklabs-io/airdrop-ledger/database"
	"github.com/blinklabs-io/airdrop-ledger/database/models"
	"github.com/blinklabs-io/airdrop-ledger/database/types"
	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

// Program identifies a tracker program. The ID is the namespace that all
// of the program's account addresses are derived in, so two programs
// never collide in the blob store.
type Program struct {
	Name string
	ID   solana.PublicKey
}

// Config holds the ledger engine configuration
type Config struct {
	Logger       *slog.Logger
	PromRegistry prometheus.Registerer
	Database     *database.Database
	Clock        clockwork.Clock
}

// Ledger implements the operations shared by all tracker programs:
// global state management and run accounting. Tracker packages embed a
// Ledger and add their own record semantics on top.
type Ledger struct {
	logger    *slog.Logger
	db        *database.Database
	clock     clockwork.Clock
	program   Program
	metrics   *operationMetrics
	stateKey  []byte
	stateBump uint8
}

// New creates a ledger engine for the given program
func New(program Program, cfg *Config) (*Ledger, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Database == nil {
		return nil, errors.New("no database provided")
	}
	logger := cfg.Logger
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	stateAddr, stateBump, err := StateAddress(program.ID)
	if err != nil {
		return nil, err
	}
	return &Ledger{
		logger: logger.With(
			"component", "ledger",
			"program", program.Name,
		),
		db:        cfg.Database,
		clock:     clock,
		program:   program,
		metrics:   newOperationMetrics(program.Name, cfg.PromRegistry),
		stateKey:  types.StateBlobKey(stateAddr.Bytes()),
		stateBump: stateBump,
	}, nil
}

// DB returns the database instance
func (l *Ledger) DB() *database.Database {
	return l.db
}

// Logger returns the logger instance
func (l *Ledger) Logger() *slog.Logger {
	return l.logger
}

// Clock returns the clock used for run dates and record update times
func (l *Ledger) Clock() clockwork.Clock {
	return l.clock
}

// Program returns the program this engine operates on
func (l *Ledger) Program() Program {
	return l.program
}

// ObserveOperation records the outcome of a named operation in the
// operation counter metrics
func (l *Ledger) ObserveOperation(operation string, err error) {
	l.metrics.observe(operation, err)
}

// CheckedAdd adds two cumulative amounts, returning ErrOverflow when the
// sum does not fit in 64 bits
func CheckedAdd(a uint64, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// InitializeState creates the singleton global state with the caller as
// authority. Fails with ErrAlreadyInitialized when state already exists.
func (l *Ledger) InitializeState(caller solana.PublicKey) (*GlobalState, error) {
	var state *GlobalState
	txn := l.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		_, err := l.db.GetStateBlob(l.stateKey, txn)
		if err == nil {
			return ErrAlreadyInitialized
		} else if !errors.Is(err, types.ErrBlobKeyNotFound) {
			return err
		}
		state = &GlobalState{
			Authority:  caller,
			RunCounter: 0,
			Bump:       l.stateBump,
		}
		return l.writeState(state, txn)
	})
	l.metrics.observe("initialize_state", err)
	if err != nil {
		return nil, err
	}
	l.logger.Info(
		"initialized global state",
		"authority", caller.String(),
	)
	return state, nil
}

// GetState returns the global state, or ErrStateNotFound when it has not
// been initialized
func (l *Ledger) GetState() (*GlobalState, error) {
	txn := l.db.Transaction(false)
	defer txn.Commit() //nolint:errcheck
	return l.LoadState(txn)
}

// LoadState reads the global state within an existing transaction
func (l *Ledger) LoadState(txn *database.Txn) (*GlobalState, error) {
	blobData, err := l.db.GetStateBlob(l.stateKey, txn)
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	var state GlobalState
	if err := state.UnmarshalBinary(blobData); err != nil {
		return nil, err
	}
	return &state, nil
}

// RequireAuthority loads the global state and verifies the caller is the
// configured authority. This runs before any mutation in authority-gated
// operations.
func (l *Ledger) RequireAuthority(
	txn *database.Txn,
	caller solana.PublicKey,
) (*GlobalState, error) {
	state, err := l.LoadState(txn)
	if err != nil {
		return nil, err
	}
	if !state.Authority.Equals(caller) {
		return nil, ErrUnauthorized
	}
	return state, nil
}

// CreateRun creates the next run and advances the run counter. The new
// run's ID equals the advanced counter value, keeping run IDs and the
// counter in lockstep with no gaps.
func (l *Ledger) CreateRun(
	caller solana.PublicKey,
	dryRun bool,
) (*AirdropRun, error) {
	var run *AirdropRun
	txn := l.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		state, err := l.RequireAuthority(txn, caller)
		if err != nil {
			return err
		}
		runId, err := CheckedAdd(state.RunCounter, 1)
		if err != nil {
			return err
		}
		runAddr, runBump, err := RunAddress(l.program.ID, runId)
		if err != nil {
			return err
		}
		run = &AirdropRun{
			RunId:   runId,
			RunDate: l.clock.Now().Unix(),
			DryRun:  dryRun,
			Bump:    runBump,
		}
		if err := l.writeRun(run, runAddr, txn); err != nil {
			return err
		}
		state.RunCounter = runId
		return l.writeState(state, txn)
	})
	l.metrics.observe("create_run", err)
	if err != nil {
		return nil, err
	}
	l.logger.Info(
		"created run",
		"run_id", run.RunId,
		"dry_run", run.DryRun,
	)
	return run, nil
}

// UpdateRunTotals sets the final recipient count and total amount on an
// existing run. Calling it again overwrites the totals.
func (l *Ledger) UpdateRunTotals(
	caller solana.PublicKey,
	runId uint64,
	totalRecipients uint32,
	totalAmount uint64,
) (*AirdropRun, error) {
	var run *AirdropRun
	txn := l.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if _, err := l.RequireAuthority(txn, caller); err != nil {
			return err
		}
		runAddr, _, err := RunAddress(l.program.ID, runId)
		if err != nil {
			return err
		}
		run, err = l.loadRun(runAddr, txn)
		if err != nil {
			return err
		}
		run.TotalRecipients = totalRecipients
		run.TotalAmount = totalAmount
		return l.writeRun(run, runAddr, txn)
	})
	l.metrics.observe("update_run_totals", err)
	if err != nil {
		return nil, err
	}
	l.logger.Info(
		"updated run totals",
		"run_id", run.RunId,
		"total_recipients", run.TotalRecipients,
		"total_amount", run.TotalAmount,
	)
	return run, nil
}

// GetRun returns the run with the given ID, or ErrRunNotFound
func (l *Ledger) GetRun(runId uint64) (*AirdropRun, error) {
	runAddr, _, err := RunAddress(l.program.ID, runId)
	if err != nil {
		return nil, err
	}
	txn := l.db.Transaction(false)
	defer txn.Commit() //nolint:errcheck
	return l.loadRun(runAddr, txn)
}

func (l *Ledger) loadRun(
	runAddr solana.PublicKey,
	txn *database.Txn,
) (*AirdropRun, error) {
	blobData, err := l.db.GetRunBlob(types.RunBlobKey(runAddr.Bytes()), txn)
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	var run AirdropRun
	if err := run.UnmarshalBinary(blobData); err != nil {
		return nil, err
	}
	return &run, nil
}

func (l *Ledger) writeRun(
	run *AirdropRun,
	runAddr solana.PublicKey,
	txn *database.Txn,
) error {
	blobData, err := run.MarshalBinary()
	if err != nil {
		return err
	}
	return l.db.SetRun(
		types.RunBlobKey(runAddr.Bytes()),
		blobData,
		models.AirdropRun{
			Program:         l.program.Name,
			RunId:           run.RunId,
			RunDate:         run.RunDate,
			TotalRecipients: run.TotalRecipients,
			TotalAmount:     types.Uint64(run.TotalAmount),
			DryRun:          run.DryRun,
		},
		txn,
	)
}

func (l *Ledger) writeState(state *GlobalState, txn *database.Txn) error {
	blobData, err := state.MarshalBinary()
	if err != nil {
		return err
	}
	return l.db.SetGlobalState(
		l.stateKey,
		blobData,
		models.GlobalState{
			Program:    l.program.Name,
			Authority:  state.Authority.String(),
			RunCounter: types.Uint64(state.RunCounter),
		},
		txn,
	)
}
