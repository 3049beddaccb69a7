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

import "github.com/ngc6302h/nvm/isa"

// arith evaluates one of the ten reg/reg/reg-or-imm opcodes. Division by
// zero panics natively (caught by Run's recover), matching the teacher's
// undivided-by-zero OpDimod.
func arith(op isa.Instruction, lhs, rhs uint64) uint64 {
	switch op {
	case isa.Add:
		return lhs + rhs
	case isa.Sub:
		return lhs - rhs
	case isa.Mul:
		return lhs * rhs
	case isa.Div:
		return lhs / rhs
	case isa.Shl:
		return lhs << (rhs & 63)
	case isa.Shr:
		return lhs >> (rhs & 63)
	case isa.Sra:
		return uint64(int64(lhs) >> (rhs & 63))
	case isa.And:
		return lhs & rhs
	case isa.Or:
		return lhs | rhs
	case isa.Xor:
		return lhs ^ rhs
	default:
		panic("arith: not a reg-reg-reg-or-imm opcode")
	}
}

// unary evaluates neg/not.
func unary(op isa.Instruction, v uint64) uint64 {
	switch op {
	case isa.Neg:
		return uint64(-int64(v))
	case isa.Not:
		return ^v
	default:
		panic("unary: not a reg-reg opcode")
	}
}

// jumpTaken evaluates a jump's comparison. Jmp itself is never emitted by
// the assembler grammar (an unconditional jump compiles as Je r0, r0) but
// is honored here as an always-taken jump for hand-assembled bytecode.
func jumpTaken(op isa.Instruction, a, b uint64) bool {
	switch op {
	case isa.Jmp:
		return true
	case isa.Je:
		return a == b
	case isa.Jne:
		return a != b
	case isa.Jg:
		return int64(a) > int64(b)
	case isa.Jgu:
		return a > b
	case isa.Jl:
		return int64(a) < int64(b)
	case isa.Jlu:
		return a < b
	default:
		panic("jumpTaken: not a jump opcode")
	}
}
