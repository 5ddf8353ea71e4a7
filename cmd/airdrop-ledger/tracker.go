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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/blinklabs-io/airdrop-ledger/database"
	"github.com/blinklabs-io/airdrop-ledger/internal/config"
	"github.com/blinklabs-io/airdrop-ledger/ledger"
	"github.com/blinklabs-io/airdrop-ledger/ledger/xenblocks"
	"github.com/blinklabs-io/airdrop-ledger/ledger/xnm"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

// sharedOps is the tracker surface common to both variants
type sharedOps interface {
	InitializeState(solana.PublicKey) (*ledger.GlobalState, error)
	GetState() (*ledger.GlobalState, error)
	CreateRun(solana.PublicKey, bool) (*ledger.AirdropRun, error)
	UpdateRunTotals(solana.PublicKey, uint64, uint32, uint64) (*ledger.AirdropRun, error)
	GetRun(uint64) (*ledger.AirdropRun, error)
}

// trackerHandle bundles an open database with the selected tracker
// engine. Exactly one of xnm/xenblocks is set.
type trackerHandle struct {
	db        *database.Database
	shared    sharedOps
	xnm       *xnm.Tracker
	xenblocks *xenblocks.Tracker
}

func openTracker(
	cfg *config.Config,
	logger *slog.Logger,
) (*trackerHandle, error) {
	db, err := database.New(&database.Config{
		Logger:         logger,
		DataDir:        cfg.DataDir,
		BlobPlugin:     cfg.BlobPlugin,
		MetadataPlugin: cfg.MetadataPlugin,
	})
	if err != nil {
		if db != nil {
			db.Close() //nolint:errcheck
		}
		return nil, err
	}
	ledgerCfg := &ledger.Config{
		Logger:   logger,
		Database: db,
	}
	handle := &trackerHandle{db: db}
	switch cfg.Tracker {
	case xnm.ProgramName:
		t, err := xnm.New(ledgerCfg)
		if err != nil {
			db.Close() //nolint:errcheck
			return nil, err
		}
		handle.xnm = t
		handle.shared = t
	case xenblocks.ProgramName:
		t, err := xenblocks.New(ledgerCfg)
		if err != nil {
			db.Close() //nolint:errcheck
			return nil, err
		}
		handle.xenblocks = t
		handle.shared = t
	default:
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("unknown tracker: %s", cfg.Tracker)
	}
	return handle, nil
}

func (h *trackerHandle) Close() error {
	return h.db.Close()
}

// mustOpenTracker opens the configured tracker or exits
func mustOpenTracker(
	cfg *config.Config,
	logger *slog.Logger,
) *trackerHandle {
	handle, err := openTracker(cfg, logger)
	if err != nil {
		logger.Error(
			"failed to open tracker",
			"tracker", cfg.Tracker,
			"error", err,
		)
		os.Exit(1)
	}
	return handle
}

// commandConfig pulls the loaded config out of the command context or
// exits
func commandConfig(cmd *cobra.Command) *config.Config {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		slog.Error("no config found in context")
		os.Exit(1)
	}
	return cfg
}

func callerKey(cfg *config.Config) (solana.PublicKey, error) {
	if cfg.Caller == "" {
		return solana.PublicKey{}, errors.New(
			"no caller provided (use --caller or config)",
		)
	}
	return solana.PublicKeyFromBase58(cfg.Caller)
}

func printJson(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.Error("failed to render output", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

type stateOutput struct {
	Authority  string `json:"authority"`
	RunCounter uint64 `json:"runCounter"`
}

func newStateOutput(s *ledger.GlobalState) stateOutput {
	return stateOutput{
		Authority:  s.Authority.String(),
		RunCounter: s.RunCounter,
	}
}

type runOutput struct {
	RunId           uint64 `json:"runId"`
	RunDate         int64  `json:"runDate"`
	TotalRecipients uint32 `json:"totalRecipients"`
	TotalAmount     uint64 `json:"totalAmount"`
	DryRun          bool   `json:"dryRun"`
}

func newRunOutput(r *ledger.AirdropRun) runOutput {
	return runOutput{
		RunId:           r.RunId,
		RunDate:         r.RunDate,
		TotalRecipients: r.TotalRecipients,
		TotalAmount:     r.TotalAmount,
		DryRun:          r.DryRun,
	}
}

type recordOutput struct {
	Wallet           string  `json:"wallet"`
	EthAddress       string  `json:"ethAddress"`
	XnmAirdropped    uint64  `json:"xnmAirdropped"`
	XblkAirdropped   uint64  `json:"xblkAirdropped"`
	XuniAirdropped   *uint64 `json:"xuniAirdropped,omitempty"`
	NativeAirdropped *uint64 `json:"nativeAirdropped,omitempty"`
	LastUpdated      int64   `json:"lastUpdated"`
}

func newXnmRecordOutput(r *xnm.Record) recordOutput {
	return recordOutput{
		Wallet:         r.Wallet.String(),
		EthAddress:     r.EthAddress.String(),
		XnmAirdropped:  r.XnmAirdropped,
		XblkAirdropped: r.XblkAirdropped,
		LastUpdated:    r.LastUpdated,
	}
}

func newXenblocksRecordOutput(r *xenblocks.Record) recordOutput {
	xuni := r.XuniAirdropped
	native := r.NativeAirdropped
	return recordOutput{
		Wallet:           r.Wallet.String(),
		EthAddress:       r.EthAddress.String(),
		XnmAirdropped:    r.XnmAirdropped,
		XblkAirdropped:   r.XblkAirdropped,
		XuniAirdropped:   &xuni,
		NativeAirdropped: &native,
		LastUpdated:      r.LastUpdated,
	}
}
