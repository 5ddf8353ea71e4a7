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
	"os"

	"github.com/spf13/cobra"
)

func stateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Manage tracker global state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(stateInitCommand())
	cmd.AddCommand(stateGetCommand())
	return cmd
}

func stateInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize global state with the caller as authority",
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
			state, err := handle.shared.InitializeState(caller)
			if err != nil {
				logger.Error("failed to initialize state", "error", err)
				os.Exit(1)
			}
			printJson(newStateOutput(state))
		},
	}
}

func stateGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show global state",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := commandConfig(cmd)
			logger := commonRun()
			handle := mustOpenTracker(cfg, logger)
			defer handle.Close() //nolint:errcheck
			state, err := handle.shared.GetState()
			if err != nil {
				logger.Error("failed to get state", "error", err)
				os.Exit(1)
			}
			printJson(newStateOutput(state))
		},
	}
}
