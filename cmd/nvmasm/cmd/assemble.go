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

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ngc6302h/nvm/container"
	"github.com/ngc6302h/nvm/encoder"
	"github.com/ngc6302h/nvm/internal/nvmio"
	"github.com/ngc6302h/nvm/lexer"
	"github.com/ngc6302h/nvm/parser"
	"github.com/ngc6302h/nvm/source"
)

var outPath string

var assembleCmd = &cobra.Command{
	Use:   "assemble <source-file>",
	Short: "Assemble a NanoVM source file into a container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssemble(cmd, args[0])
	},
}

func init() {
	assembleCmd.Flags().StringVarP(&outPath, "out", "o", "", "output container path (default: source path with its extension replaced by .nvm)")
}

// runAssemble drives the full pipeline and dumps tokens, the parsed object
// count and the disassembled bytecode to stdout for pedagogic purposes; per spec.md §6
// this dump is not a stable interface.
func runAssemble(cmd *cobra.Command, srcPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return errors.Wrap(err, "read source file")
	}

	buf := source.NewBuffer(srcPath, data)
	toks, err := lexer.New(buf).Tokenize()
	if err != nil {
		return err
	}

	out := nvmio.NewErrWriter(cmd.OutOrStdout())
	fmt.Fprintln(out, "tokens:")
	for _, t := range toks {
		fmt.Fprintf(out, "  %s %s %q\n", t.Pos, t.Kind, t.Lexeme)
	}

	objs, err := parser.Parse(toks)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "objects: %d parsed\n", len(objs))

	img, err := encoder.Encode(objs)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "bytecode:")
	for pc := 0; pc < len(img.Payload); {
		fmt.Fprintf(out, "  %04x: ", pc)
		pc = encoder.Disassemble(img.Payload, pc, out)
		fmt.Fprintln(out)
	}
	if out.Err != nil {
		return out.Err
	}

	dst := outPath
	if dst == "" {
		dst = defaultOutputPath(srcPath)
	}
	f, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "create output file")
	}
	defer f.Close()

	if err := container.Write(f, &container.Container{
		LoadOffset: img.LoadOffset,
		EntryPoint: img.EntryPoint,
		Payload:    img.Payload,
	}); err != nil {
		return errors.Wrap(err, "write container")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", dst, len(img.Payload))
	return nil
}

func defaultOutputPath(srcPath string) string {
	if ext := strings.LastIndexByte(srcPath, '.'); ext > strings.LastIndexByte(srcPath, '/') {
		return srcPath[:ext] + ".nvm"
	}
	return srcPath + ".nvm"
}
