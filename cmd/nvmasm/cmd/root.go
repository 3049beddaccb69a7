// This file is part of nvm - https://github.com/ngc6302h/nvm
//
// Copyright 2026 ngc6302h
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

// Package cmd holds the nvmasm cobra command tree, grounded on the
// teacher pack's keurnel-assembler cmd/cli layout: a root command plus one
// subcommand per concern.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nvmasm",
	Short: "NanoVM assembler",
	Long:  `nvmasm assembles NanoVM assembly source into a linked bytecode container.`,
}

// Execute runs the root command, exiting non-zero on any failure per the
// CLI surface's exit-code contract.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(assembleCmd)
}
