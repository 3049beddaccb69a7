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

package encoder

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ngc6302h/nvm/isa"
)

// Disassemble writes a textual rendering of the instruction word at pc to w
// and returns the offset of the next instruction. Adapted from the
// teacher's asm.Disassemble: same (pc, w) -> next shape, reused here for
// the wide/short variable-width encoding instead of a fixed cell size.
func Disassemble(payload []byte, pc int, w io.Writer) (next int) {
	if pc+4 > len(payload) {
		io.WriteString(w, "???")
		return len(payload)
	}

	low := binary.LittleEndian.Uint32(payload[pc : pc+4])
	wide := low&(1<<31) != 0

	if wide {
		if pc+8 > len(payload) {
			io.WriteString(w, "???")
			return len(payload)
		}
		word := binary.LittleEndian.Uint64(payload[pc : pc+8])
		writeDecoded(w, word, true)
		return pc + 8
	}

	writeDecoded(w, uint64(low), false)
	return pc + 4
}

func writeDecoded(w io.Writer, word uint64, wide bool) {
	var useImm bool
	var opcode isa.Instruction
	var op1, op2, op3 isa.Register
	var imm uint64

	if wide {
		useImm = word&(uint64(1)<<62) == 0
		opcode = isa.Instruction((word >> 56) & 0x3F)
		op1 = isa.Register((word >> 52) & 0xF)
		op2 = isa.Register((word >> 48) & 0xF)
		op3 = isa.Register((word >> 44) & 0xF)
		imm = word & ((uint64(1) << 44) - 1)
	} else {
		w32 := uint32(word)
		useImm = w32&(1<<30) == 0
		opcode = isa.Instruction((w32 >> 24) & 0x3F)
		op1 = isa.Register((w32 >> 20) & 0xF)
		op2 = isa.Register((w32 >> 16) & 0xF)
		op3 = isa.Register((w32 >> 12) & 0xF)
		field := w32 & 0xFFF
		signed := (int32(field) << 20) >> 20
		imm = uint64(int64(signed))
	}

	fmt.Fprintf(w, "%s %s %s", opcode, op1, op2)
	if useImm {
		fmt.Fprintf(w, " %d", int64(imm))
	} else {
		fmt.Fprintf(w, " %s", op3)
	}
}
