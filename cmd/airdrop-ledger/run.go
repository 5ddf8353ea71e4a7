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
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Manage airdrop runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(runCreateCommand())
	cmd.AddCommand(runTotalsCommand())
	cmd.AddCommand(runGetCommand())
	return cmd
}

func parseRunId(logger *slog.Logger, arg string) uint64 {
	runId, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		logger.Error("invalid run id", "value", arg, "error", err)
		os.Exit(1)
	}
	return runId
}

func runCreateCommand() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the next airdrop run",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := commandConfig(cmd)
			logger := commonRun()
			caller, err := callerKey(cfg)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(1)
			}
			handle := mustOpenTracker(cfg, logger)
			defer handle.Close() //nolint:errcheck
			run, err := handle.shared.CreateRun(caller, dryRun)
			if err != nil {
				logger.Error("failed to create run", "error", err)
				os.Exit(1)
			}
			printJson(newRunOutput(run))
		},
	}
	cmd.Flags().
		BoolVar(&dryRun, "dry-run", false, "mark the run as recording no actual transfers")
	return cmd
}

func runTotalsCommand() *cobra.Command {
	var totalRecipients uint32
	var totalAmount uint64
	cmd := &cobra.Command{
		Use:   "totals <run-id>",
		Short: "Set final totals on a run",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := commandConfig(cmd)
			logger := commonRun()
			caller, err := callerKey(cfg)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(1)
			}
			runId := parseRunId(logger, args[0])
			handle := mustOpenTracker(cfg, logger)
			defer handle.Close() //nolint:errcheck
			run, err := handle.shared.UpdateRunTotals(
				caller,
				runId,
				totalRecipients,
				totalAmount,
			)
			if err != nil {
				logger.Error("failed to update run totals", "error", err)
				os.Exit(1)
			}
			printJson(newRunOutput(run))
		},
	}
	cmd.Flags().
		Uint32Var(&totalRecipients, "recipients", 0, "number of successful recipients")
	cmd.Flags().
		Uint64Var(&totalAmount, "amount", 0, "total amount airdropped, in token base units")
	return cmd
}

func runGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <run-id>",
		Short: "Show an airdrop run",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := commandConfig(cmd)
			logger := commonRun()
			runId := parseRunId(logger, args[0])
			handle := mustOpenTracker(cfg, logger)
			defer handle.Close() //nolint:errcheck
			run, err := handle.shared.GetRun(runId)
			if err != nil {
				logger.Error("failed to get run", "error", err)
				os.Exit(1)
			}
			printJson(newRunOutput(run))
		},
	}
}
