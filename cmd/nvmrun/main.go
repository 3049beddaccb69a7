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

// Command nvmrun loads a NanoVM container and executes it. Flag handling
// and the exit-on-error shape follow the teacher's cmd/retro/main.go.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ngc6302h/nvm/container"
	"github.com/ngc6302h/nvm/vm"
)

var (
	debug     bool
	execStats bool
)

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		fmt.Fprintf(os.Stderr, "instructions executed: %d\n", i.InstructionCount())
	}
	os.Exit(1)
}

func main() {
	var err error
	var inst *vm.Instance

	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.BoolVar(&execStats, "stats", false, "print performance statistics upon exit")
	flag.Parse()

	defer func() { atExit(inst, err) }()

	if flag.NArg() != 1 {
		err = fmt.Errorf("usage: nvmrun [flags] <container-file>")
		return
	}

	f, ferr := os.Open(flag.Arg(0))
	if ferr != nil {
		err = ferr
		return
	}
	defer f.Close()

	c, rerr := container.Read(f)
	if rerr != nil {
		err = rerr
		return
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	inst, err = vm.New(c.Payload, c.LoadOffset, c.EntryPoint,
		vm.Input(bufio.NewReader(os.Stdin)),
		vm.Output(out))
	if err != nil {
		return
	}

	start := time.Now()
	err = inst.Run()
	out.Flush()
	if execStats {
		delta := time.Since(start)
		fmt.Fprintf(os.Stderr, "Executed %d instructions in %v (%.3f MHz).\n", inst.InstructionCount(), delta,
			float64(inst.InstructionCount())/float64(delta)*float64(time.Second)/1e6)
	}
}
