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

// Package vm executes linked NanoVM containers: a flat register file (r0
// hardwired to zero, r1-r8 general purpose, sp, ip) over sparse
// byte-addressable memory, dispatching the 22 opcodes from package isa.
// The instruction-set semantics are this package's own design — the
// original interpreter's run() never got past a stub (see DESIGN.md) — but
// the Instance/Option construction pattern and the panic-recovering Run
// loop are carried over from the teacher's vm.Instance.
package vm

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/ngc6302h/nvm/isa"
)

// IntHandler services an `int` trap. It returns whether execution should
// halt and any error encountered.
type IntHandler func(i *Instance) (halt bool, err error)

// Option configures an Instance at construction time.
type Option func(*Instance) error

// Input sets the reader consulted by the default read-byte interrupt.
func Input(r io.Reader) Option {
	return func(i *Instance) error { i.input = r; return nil }
}

// Output sets the writer used by the default write-byte interrupt.
func Output(w io.Writer) Option {
	return func(i *Instance) error { i.output = w; return nil }
}

// Handler overrides (or adds) the interrupt handler for the given `int`
// code, replacing the default table entry if one exists.
func Handler(code uint64, h IntHandler) Option {
	return func(i *Instance) error { i.handlers[code] = h; return nil }
}

// Instance is one running NanoVM program.
type Instance struct {
	regs     [11]uint64
	mem      *memory
	input    io.Reader
	output   io.Writer
	handlers map[uint64]IntHandler
	insCount int64
}

// New constructs an Instance, loads payload at loadOffset, and sets ip to
// entryPoint.
func New(payload []byte, loadOffset, entryPoint uint64, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem:      newMemory(),
		handlers: defaultHandlers(),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, errors.Wrap(err, "configure vm instance")
		}
	}
	if i.input == nil {
		i.input = strings.NewReader("")
	}
	if i.output == nil {
		i.output = io.Discard
	}
	i.mem.loadPayload(loadOffset, payload)
	i.regs[isa.IP] = entryPoint
	return i, nil
}

// Register returns the current value of r. r0 always reads as zero.
func (i *Instance) Register(r isa.Register) uint64 {
	if r == isa.R0 {
		return 0
	}
	return i.regs[r]
}

// SetRegister sets r's value. Writes to r0 are silently discarded, mirroring
// its role as the architectural constant-zero register.
func (i *Instance) SetRegister(r isa.Register, v uint64) {
	if r == isa.R0 {
		return
	}
	i.regs[r] = v
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}
