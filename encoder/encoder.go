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

// Package encoder turns a parsed object sequence into a linked bytecode
// image: pass 1 lays out raw bytes and instruction words and builds the tag
// map, pass 2 patches tag-relative jump offsets, and a final walk emits the
// little-endian byte stream. Grounded on original_source/Assembler.cpp's
// generate_bytecode, restructured into the teacher's table/helper style.
package encoder

import (
	"encoding/binary"
	"fmt"

	"github.com/ngc6302h/nvm/isa"
	"github.com/ngc6302h/nvm/parser"
)

// Image is the fully linked result of Encode: a flat payload ready to be
// wrapped in a container, its entry point, and the base address it expects
// to be loaded at.
type Image struct {
	Payload    []byte
	EntryPoint uint64
	LoadOffset uint64
}

// Encode lays out, links and emits objects into an Image, or returns the
// accumulated Errors from whichever phase failed.
func Encode(objects []parser.Object) (*Image, error) {
	units, baseAddr, tagMap, errs := layout(objects)
	if len(errs) > 0 {
		return nil, errs
	}

	if perrs := patchTags(units, baseAddr, tagMap); len(perrs) > 0 {
		return nil, perrs
	}

	entry, ok := tagMap["start"]
	if !ok {
		return nil, Errors{{Msg: `program doesn't define required entry tag "start"`}}
	}

	return &Image{
		Payload:    emit(units),
		EntryPoint: entry,
		LoadOffset: baseAddr,
	}, nil
}

// layout is pass 1: walk objects in order, building the tag map and the
// intermediate unit sequence, tracking base_addr/current_addr per
// Assembler.cpp's generate_bytecode.
func layout(objects []parser.Object) (units []unit, baseAddr uint64, tagMap map[string]uint64, errs Errors) {
	tagMap = map[string]uint64{}
	var currentAddr uint64

	for _, obj := range objects {
		switch o := obj.(type) {
		case parser.TagDefinition:
			if _, exists := tagMap[o.Name]; exists {
				errs = append(errs, Error{o.Pos, fmt.Sprintf("tag %q is already defined", o.Name)})
				continue
			}
			tagMap[o.Name] = currentAddr

		case parser.DirectivePayload:
			switch o.Directive {
			case isa.DirAddr:
				baseAddr = o.Value
				currentAddr = baseAddr
			case isa.DirString:
				for i := 0; i < len(o.Str); i++ {
					units = append(units, unit{kind: kindRawByte, raw: o.Str[i]})
				}
				currentAddr += uint64(len(o.Str))
			default:
				n := o.Directive.Width() / 8
				for i := 0; i < n; i++ {
					units = append(units, unit{kind: kindRawByte, raw: byte(o.Value >> uint(8*i))})
				}
				currentAddr += uint64(n)
			}

		case parser.InstructionRecord:
			u := buildInstructionUnit(o)
			units = append(units, u)
			currentAddr += u.size()
		}
	}

	return units, baseAddr, tagMap, errs
}

// widthFieldCode packs a load/store width selector into the otherwise-unused
// op2 4-bit field. The spec's bit layout reserves no separate slot for
// misc, and the original source parses the width but never actually
// writes it into the encoded word (generate_bytecode never references
// InstructionData::misc) — a dead field we're not replicating. See
// DESIGN.md for the full account.
func widthFieldCode(width uint64) isa.Register {
	switch width {
	case 16:
		return 1
	case 32:
		return 2
	case 64:
		return 3
	default:
		return 0
	}
}

// isAddressOperand reports whether op3's value, when a literal immediate
// rather than a register or tag, is itself an absolute address (a
// load/store address or a jump target) as opposed to a plain arithmetic
// operand. Short+use_imm is reserved for tag-patched PC-relative word
// offsets (see patchTags), so any address literal must go out wide
// regardless of magnitude — otherwise a small literal address is
// indistinguishable from, and misdecoded as, a PC-relative offset.
func isAddressOperand(op isa.Instruction) bool {
	return op == isa.Load || op == isa.Store || isa.IsJump(op)
}

// buildInstructionUnit bit-packs one InstructionRecord into its unit,
// choosing short/wide encoding by op3's kind per spec.md's pass-1 rules.
func buildInstructionUnit(r parser.InstructionRecord) unit {
	op2 := r.Op2
	if r.Op == isa.Load || r.Op == isa.Store {
		op2 = widthFieldCode(r.Misc)
	}

	switch r.Op3.Kind {
	case isa.Op3Reg:
		w := packShort(r.Op, false, r.Op1, op2, r.Op3.Reg, 0)
		return unit{kind: kindWord, word: uint64(w)}

	case isa.Op3Tag:
		w := packShort(r.Op, true, r.Op1, op2, isa.R0, 0)
		return unit{kind: kindWord, word: uint64(w), tag: r.Op3.Tag}

	default: // Op3Imm
		if r.Op3.Imm >= 4096 || isAddressOperand(r.Op) {
			w := packWide(r.Op, true, r.Op1, op2, isa.R0, r.Op3.Imm)
			return unit{kind: kindWord, word: w, wide: true}
		}
		w := packShort(r.Op, true, r.Op1, op2, isa.R0, r.Op3.Imm)
		return unit{kind: kindWord, word: uint64(w)}
	}
}

// patchTags is pass 2: re-walk the units resolving each pending tag
// reference to a signed 12-bit word offset relative to the referencing
// instruction's own address.
func patchTags(units []unit, baseAddr uint64, tagMap map[string]uint64) Errors {
	var errs Errors
	currentAddr := baseAddr

	for i := range units {
		u := &units[i]
		if u.kind == kindWord && u.tag != "" {
			target, ok := tagMap[u.tag]
			if !ok {
				errs = append(errs, Error{Msg: fmt.Sprintf("undefined tag %q", u.tag)})
			} else {
				offsetWords := (int64(target) - int64(currentAddr)) / 4
				if offsetWords < -2048 || offsetWords > 2047 {
					errs = append(errs, Error{Msg: fmt.Sprintf(
						"tag %q is %d words away, outside the +-2048 word jump range; use a register jump instead",
						u.tag, offsetWords)})
				} else {
					u.word |= uint64(uint32(offsetWords) & 0xFFF)
				}
			}
			u.tag = ""
		}
		currentAddr += u.size()
	}

	return errs
}

// emit walks the patched units writing raw bytes and instruction words
// (4 or 8 bytes, little-endian, per each word's wide flag).
func emit(units []unit) []byte {
	var buf []byte
	for _, u := range units {
		switch {
		case u.kind == kindRawByte:
			buf = append(buf, u.raw)
		case u.wide:
			var b [8]byte
			binary.LittleEndian.PutUint64(b[:], u.word)
			buf = append(buf, b[:]...)
		default:
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], uint32(u.word))
			buf = append(buf, b[:]...)
		}
	}
	return buf
}
