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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/blinklabs-io/airdrop-ledger/ledger"
	"github.com/blinklabs-io/airdrop-ledger/ledger/xenblocks"
	"github.com/blinklabs-io/airdrop-ledger/ledger/xnm"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

// recordAmounts holds the per-token delta flags. The xnm tracker uses
// token/amount, the xenblocks tracker uses the four per-token values.
type recordAmounts struct {
	token  string
	amount uint64
	xnm    uint64
	xblk   uint64
	xuni   uint64
	native uint64
}

func (a *recordAmounts) addFlags(cmd *cobra.Command) {
	cmd.Flags().
		StringVar(&a.token, "token", "", "token to update, xnm tracker only (XNM or XBLK)")
	cmd.Flags().
		Uint64Var(&a.amount, "amount", 0, "amount to add, xnm tracker only")
	cmd.Flags().
		Uint64Var(&a.xnm, "xnm", 0, "XNM amount to add, xenblocks tracker only")
	cmd.Flags().
		Uint64Var(&a.xblk, "xblk", 0, "XBLK amount to add, xenblocks tracker only")
	cmd.Flags().
		Uint64Var(&a.xuni, "xuni", 0, "XUNI amount to add, xenblocks tracker only")
	cmd.Flags().
		Uint64Var(&a.native, "native", 0, "native token amount to add, xenblocks tracker only")
}

func (a *recordAmounts) tokenKind() (xnm.TokenKind, error) {
	switch strings.ToUpper(a.token) {
	case "XNM":
		return xnm.TokenXnm, nil
	case "XBLK":
		return xnm.TokenXblk, nil
	default:
		return 0, fmt.Errorf("unknown token: %q (expected XNM or XBLK)", a.token)
	}
}

func (a *recordAmounts) xenblocksAmounts() xenblocks.Amounts {
	return xenblocks.Amounts{
		Xnm:    a.xnm,
		Xblk:   a.xblk,
		Xuni:   a.xuni,
		Native: a.native,
	}
}

func recordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Manage per-recipient airdrop records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(recordInitCommand())
	cmd.AddCommand(recordUpdateCommand())
	cmd.AddCommand(recordInitUpdateCommand())
	cmd.AddCommand(recordCloseCommand())
	cmd.AddCommand(recordGetCommand())
	return cmd
}

func parseRecordKey(
	logger *slog.Logger,
	args []string,
) (solana.PublicKey, ledger.EthAddress) {
	wallet, err := solana.PublicKeyFromBase58(args[0])
	if err != nil {
		logger.Error("invalid wallet", "value", args[0], "error", err)
		os.Exit(1)
	}
	ethAddress, err := ledger.EthAddressFromString(args[1])
	if err != nil {
		logger.Error("invalid eth address", "value", args[1], "error", err)
		os.Exit(1)
	}
	return wallet, ethAddress
}

func recordInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init <wallet> <eth-address>",
		Short: "Create a zeroed record for a recipient",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := commandConfig(cmd)
			logger := commonRun()
			caller, err := callerKey(cfg)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(1)
			}
			wallet, ethAddress := parseRecordKey(logger, args)
			handle := mustOpenTracker(cfg, logger)
			defer handle.Close() //nolint:errcheck
			if handle.xnm != nil {
				rec, err := handle.xnm.InitializeRecord(caller, wallet, ethAddress)
				if err != nil {
					logger.Error("failed to initialize record", "error", err)
					os.Exit(1)
				}
				printJson(newXnmRecordOutput(rec))
			} else {
				rec, err := handle.xenblocks.InitializeRecord(caller, wallet, ethAddress)
				if err != nil {
					logger.Error("failed to initialize record", "error", err)
					os.Exit(1)
				}
				printJson(newXenblocksRecordOutput(rec))
			}
		},
	}
}

func recordUpdateCommand() *cobra.Command {
	var amounts recordAmounts
	cmd := &cobra.Command{
		Use:   "update <wallet> <eth-address>",
		Short: "Add amounts to an existing record",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := commandConfig(cmd)
			logger := commonRun()
			caller, err := callerKey(cfg)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(1)
			}
			wallet, ethAddress := parseRecordKey(logger, args)
			handle := mustOpenTracker(cfg, logger)
			defer handle.Close() //nolint:errcheck
			if handle.xnm != nil {
				kind, err := amounts.tokenKind()
				if err != nil {
					logger.Error(err.Error())
					os.Exit(1)
				}
				rec, err := handle.xnm.UpdateRecord(
					caller,
					wallet,
					ethAddress,
					kind,
					amounts.amount,
				)
				if err != nil {
					logger.Error("failed to update record", "error", err)
					os.Exit(1)
				}
				printJson(newXnmRecordOutput(rec))
			} else {
				rec, err := handle.xenblocks.UpdateRecord(
					caller,
					wallet,
					ethAddress,
					amounts.xenblocksAmounts(),
				)
				if err != nil {
					logger.Error("failed to update record", "error", err)
					os.Exit(1)
				}
				printJson(newXenblocksRecordOutput(rec))
			}
		},
	}
	amounts.addFlags(cmd)
	return cmd
}

func recordInitUpdateCommand() *cobra.Command {
	var amounts recordAmounts
	cmd := &cobra.Command{
		Use:   "init-update <wallet> <eth-address>",
		Short: "Create a record and set its first amounts, atomically",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := commandConfig(cmd)
			logger := commonRun()
			caller, err := callerKey(cfg)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(1)
			}
			wallet, ethAddress := parseRecordKey(logger, args)
			handle := mustOpenTracker(cfg, logger)
			defer handle.Close() //nolint:errcheck
			if handle.xnm != nil {
				kind, err := amounts.tokenKind()
				if err != nil {
					logger.Error(err.Error())
					os.Exit(1)
				}
				rec, err := handle.xnm.InitializeAndUpdate(
					caller,
					wallet,
					ethAddress,
					kind,
					amounts.amount,
				)
				if err != nil {
					logger.Error("failed to initialize and update record", "error", err)
					os.Exit(1)
				}
				printJson(newXnmRecordOutput(rec))
			} else {
				rec, err := handle.xenblocks.InitializeAndUpdate(
					caller,
					wallet,
					ethAddress,
					amounts.xenblocksAmounts(),
				)
				if err != nil {
					logger.Error("failed to initialize and update record", "error", err)
					os.Exit(1)
				}
				printJson(newXenblocksRecordOutput(rec))
			}
		},
	}
	amounts.addFlags(cmd)
	return cmd
}

func recordCloseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close <wallet> <eth-address>",
		Short: "Destroy a record",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := commandConfig(cmd)
			logger := commonRun()
			caller, err := callerKey(cfg)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(1)
			}
			wallet, ethAddress := parseRecordKey(logger, args)
			handle := mustOpenTracker(cfg, logger)
			defer handle.Close() //nolint:errcheck
			if handle.xnm != nil {
				err = handle.xnm.CloseRecord(caller, wallet, ethAddress)
			} else {
				err = handle.xenblocks.CloseRecord(caller, wallet, ethAddress)
			}
			if err != nil {
				logger.Error("failed to close record", "error", err)
				os.Exit(1)
			}
			fmt.Println("record closed")
		},
	}
}

func recordGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <wallet> <eth-address>",
		Short: "Show a record",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := commandConfig(cmd)
			logger := commonRun()
			wallet, ethAddress := parseRecordKey(logger, args)
			handle := mustOpenTracker(cfg, logger)
			defer handle.Close() //nolint:errcheck
			if handle.xnm != nil {
				rec, err := handle.xnm.GetRecord(wallet, ethAddress)
				if err != nil {
					logger.Error("failed to get record", "error", err)
					os.Exit(1)
				}
				printJson(newXnmRecordOutput(rec))
			} else {
				rec, err := handle.xenblocks.GetRecord(wallet, ethAddress)
				if err != nil {
					logger.Error("failed to get record", "error", err)
					os.Exit(1)
				}
				printJson(newXenblocksRecordOutput(rec))
			}
		},
	}
}
