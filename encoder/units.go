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

import "github.com/ngc6302h/nvm/isa"

type unitKind uint8

const (
	kindRawByte unitKind = iota
	kindWord
)

// unit is one element of the intermediate sequence produced by pass 1 and
// consumed by pass 2: either a single raw byte, or an encoded instruction
// word that may still carry an unresolved tag reference.
type unit struct {
	kind unitKind
	raw  byte
	word uint64 // short words live in the low 32 bits; wide words use all 64
	wide bool
	tag  string // unresolved tag name; cleared once patched
}

func (u *unit) size() uint64 {
	if u.kind == kindRawByte {
		return 1
	}
	if u.wide {
		return 8
	}
	return 4
}

// packWide builds the full 64-bit bit-packed instruction word per
// spec.md §4.3: bit63 wide, bit62 !use_imm, bits61..56 opcode, bits55..52
// op1, bits51..48 op2, bits47..44 op3 register id, bits43..0 immediate.
func packWide(ins isa.Instruction, useImm bool, op1, op2, op3reg isa.Register, imm uint64) uint64 {
	var w uint64
	w |= uint64(1) << 63
	if !useImm {
		w |= uint64(1) << 62
	}
	w |= uint64(ins) << 56
	w |= uint64(op1) << 52
	w |= uint64(op2) << 48
	w |= uint64(op3reg) << 44
	if useImm {
		w |= imm & ((uint64(1) << 44) - 1)
	}
	return w
}

// packShort builds the 32-bit short encoding directly. Bits 31..12 (wide,
// !use_imm, opcode, op1, op2, op3) are what shifting the packWide word
// right by 32 gives; the immediate differs: its low 12 bits go into bits
// 11..0, where a shifted 64-bit word would hold immediate bits 43..32.
func packShort(ins isa.Instruction, useImm bool, op1, op2, op3reg isa.Register, imm12 uint64) uint32 {
	var w uint32
	if !useImm {
		w |= 1 << 30
	}
	w |= uint32(ins) << 24
	w |= uint32(op1) << 20
	w |= uint32(op2) << 16
	w |= uint32(op3reg) << 12
	if useImm {
		w |= uint32(imm12) & 0xFFF
	}
	return w
}
