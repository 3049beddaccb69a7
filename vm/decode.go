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

// decoded is the unpacked form of one bit-packed instruction word.
type decoded struct {
	op     isa.Instruction
	op1    isa.Register
	op2    isa.Register
	op3    isa.Register
	useImm bool
	wide   bool
	imm    uint64 // raw field: 44 bits if wide, 12 bits if short
}

func decode(word uint64, wide bool) decoded {
	if wide {
		return decoded{
			wide:   true,
			useImm: word&(uint64(1)<<62) == 0,
			op:     isa.Instruction((word >> 56) & 0x3F),
			op1:    isa.Register((word >> 52) & 0xF),
			op2:    isa.Register((word >> 48) & 0xF),
			op3:    isa.Register((word >> 44) & 0xF),
			imm:    word & ((uint64(1) << 44) - 1),
		}
	}
	w32 := uint32(word)
	return decoded{
		wide:   false,
		useImm: w32&(1<<30) == 0,
		op:     isa.Instruction((w32 >> 24) & 0x3F),
		op1:    isa.Register((w32 >> 20) & 0xF),
		op2:    isa.Register((w32 >> 16) & 0xF),
		op3:    isa.Register((w32 >> 12) & 0xF),
		imm:    uint64(w32 & 0xFFF),
	}
}

// signExtend12 interprets the low 12 bits of v as a signed two's-complement
// word offset, matching the encoder's tag-patching convention.
func signExtend12(v uint64) int64 {
	return int64((int32(uint32(v)) << 20) >> 20)
}

// widthFromCode recovers a load/store width from the 2-bit code the encoder
// packs into the (otherwise unused for these opcodes) op2 field.
func widthFromCode(r isa.Register) int {
	switch r {
	case 1:
		return 16
	case 2:
		return 32
	case 3:
		return 64
	default:
		return 8
	}
}
