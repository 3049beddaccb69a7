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

package vm

import (
	"github.com/pkg/errors"

	"github.com/ngc6302h/nvm/isa"
)

// Run executes instructions until an interrupt handler halts the machine or
// an error occurs. Division by zero and similar arithmetic faults panic
// natively and are turned into errors here, the same shape as the
// teacher's Run(toIP).
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = errors.Errorf("%v", e)
		}
	}()

	for {
		halt, serr := i.step()
		if serr != nil {
			return serr
		}
		if halt {
			return nil
		}
	}
}

func (i *Instance) step() (halt bool, err error) {
	ip := i.regs[isa.IP]
	low := uint32(i.mem.Read(ip, 32))
	wide := low&(1<<31) != 0

	var word uint64
	var size uint64
	if wide {
		word = i.mem.Read(ip, 64)
		size = 8
	} else {
		word = uint64(low)
		size = 4
	}

	dec := decode(word, wide)
	i.regs[isa.IP] = ip + size

	switch {
	case isa.IsRegRegRegImm(dec.op):
		lhs := i.Register(dec.op2)
		rhs := dec.imm
		if !dec.useImm {
			rhs = i.Register(dec.op3)
		}
		i.SetRegister(dec.op1, arith(dec.op, lhs, rhs))

	case isa.IsRegReg(dec.op):
		i.SetRegister(dec.op1, unary(dec.op, i.Register(dec.op2)))

	case dec.op == isa.Load:
		addr := i.operandAddress(dec, ip)
		i.SetRegister(dec.op1, i.mem.Read(addr, widthFromCode(dec.op2)))

	case dec.op == isa.Store:
		addr := i.operandAddress(dec, ip)
		i.mem.Write(addr, widthFromCode(dec.op2), i.Register(dec.op1))

	case dec.op == isa.Int:
		h, ok := i.handlers[dec.imm]
		if !ok {
			return false, errors.Errorf("no interrupt handler registered for code %d", dec.imm)
		}
		if halt, herr := h(i); halt || herr != nil {
			return halt, herr
		}

	case isa.IsJump(dec.op):
		if jumpTaken(dec.op, i.Register(dec.op1), i.Register(dec.op2)) {
			i.regs[isa.IP] = i.operandAddress(dec, ip)
		}

	default:
		return false, errors.Errorf("unimplemented opcode %s", dec.op)
	}

	i.insCount++
	return false, nil
}

// operandAddress resolves a jump/load/store's third operand to an absolute
// byte address. A register operand is used directly; a wide immediate is
// an absolute address literal; a short immediate is a signed 12-bit
// PC-relative word offset. The encoder never emits a short use_imm word for
// a jump/load/store unless it came from tag-patching (see
// encoder.isAddressOperand), so that's the only source of short-form
// address operands this ever has to decode.
func (i *Instance) operandAddress(dec decoded, ip uint64) uint64 {
	if !dec.useImm {
		return i.Register(dec.op3)
	}
	if dec.wide {
		return dec.imm
	}
	return uint64(int64(ip) + signExtend12(dec.imm)*4)
}
