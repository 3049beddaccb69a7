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

// Package isa holds the closed enumerations shared by the lexer, parser,
// encoder and VM: registers, instructions, directives, and the token/object
// kinds produced along the way. Mirrors the teacher's vm.Cell/opcode table
// pattern: a typed int constant block plus a literal<->value lookup table
// built once in init.
package isa

// Register is one of the 11 architectural registers. Ids are encoded
// directly into 4-bit instruction fields, so they must stay in 0..15.
type Register uint8

const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	SP
	IP
)

var registerNames = [...]string{
	R0: "r0", R1: "r1", R2: "r2", R3: "r3", R4: "r4",
	R5: "r5", R6: "r6", R7: "r7", R8: "r8", SP: "sp", IP: "ip",
}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return "?reg"
}

// Registers maps a register's source literal to its enum value.
var Registers = map[string]Register{}

func init() {
	for id, name := range registerNames {
		Registers[name] = Register(id)
	}
}

// Instruction is one of the 22 opcodes. The ordinal is the encoded 6-bit
// opcode field.
type Instruction uint8

const (
	Add Instruction = iota
	Sub
	Mul
	Div
	Neg
	Not
	Shl
	Shr
	Sra
	And
	Or
	Xor
	Load
	Store
	Int
	Jmp
	Je
	Jne
	Jg
	Jgu
	Jl
	Jlu
)

var instructionNames = [...]string{
	Add: "add", Sub: "sub", Mul: "mul", Div: "div", Neg: "neg", Not: "not",
	Shl: "shl", Shr: "shr", Sra: "sra", And: "and", Or: "or", Xor: "xor",
	Load: "load", Store: "store", Int: "int", Jmp: "jmp", Je: "je", Jne: "jne",
	Jg: "jg", Jgu: "jgu", Jl: "jl", Jlu: "jlu",
}

func (i Instruction) String() string {
	if int(i) < len(instructionNames) {
		return instructionNames[i]
	}
	return "?ins"
}

// Mnemonics maps the subset of instruction mnemonics that appear literally
// as lexer keywords (the conditional jump variants Je/Jne/Jg/Jgu/Jl/Jlu are
// selected by the jmp operand-shape parser, not looked up by name).
var Mnemonics = map[string]Instruction{
	"add": Add, "sub": Sub, "mul": Mul, "div": Div, "neg": Neg, "not": Not,
	"shl": Shl, "shr": Shr, "sra": Sra, "and": And, "or": Or, "xor": Xor,
	"load": Load, "store": Store, "int": Int, "jmp": Jmp,
}

// IsRegRegRegImm reports whether instruction i uses the "reg, reg, reg-or-imm"
// operand shape.
func IsRegRegRegImm(i Instruction) bool {
	switch i {
	case Add, Sub, Mul, Div, Shl, Shr, Sra, And, Or, Xor:
		return true
	default:
		return false
	}
}

// IsRegReg reports whether instruction i uses the "reg, reg" operand shape.
func IsRegReg(i Instruction) bool {
	return i == Neg || i == Not
}

// IsJump reports whether i is any jump-family opcode.
func IsJump(i Instruction) bool {
	switch i {
	case Jmp, Je, Jne, Jg, Jgu, Jl, Jlu:
		return true
	default:
		return false
	}
}

// Directive is one of the assembler's directive kinds.
type Directive uint8

const (
	DirAddr Directive = iota
	DirI8
	DirI16
	DirI32
	DirI64
	DirString
)

var directiveNames = [...]string{
	DirAddr: ".addr", DirI8: ".i8", DirI16: ".i16", DirI32: ".i32",
	DirI64: ".i64", DirString: ".string",
}

func (d Directive) String() string {
	if int(d) < len(directiveNames) {
		return directiveNames[d]
	}
	return "?dir"
}

// Directives maps a directive's source literal to its enum value.
var Directives = map[string]Directive{}

func init() {
	for id, name := range directiveNames {
		Directives[name] = Directive(id)
	}
}

// Width returns the bit width of a numeric directive (0 for .string, which
// carries no fixed element width).
func (d Directive) Width() int {
	switch d {
	case DirI8:
		return 8
	case DirI16:
		return 16
	case DirI32:
		return 32
	case DirI64:
		return 64
	default:
		return 0
	}
}

// ReservedWords are the non-instruction, non-register, non-directive
// keywords recognised by the lexer: load/store's "to"/"in" joiners, jmp's
// "if" clause introducer and its "unsigned" comparison suffix.
var ReservedWords = map[string]bool{
	"to": true, "in": true, "if": true, "unsigned": true,
}

// TokenKind classifies a lexer token.
type TokenKind uint8

const (
	TokInstructionKeyword TokenKind = iota
	TokRegisterKeyword
	TokNumericLiteral
	TokStringLiteral
	TokTagDefinition
	TokTag
	TokAssemblerDirective
	TokOtherKeyword
)

func (k TokenKind) String() string {
	switch k {
	case TokInstructionKeyword:
		return "InstructionKeyword"
	case TokRegisterKeyword:
		return "RegisterKeyword"
	case TokNumericLiteral:
		return "NumericLiteral"
	case TokStringLiteral:
		return "StringLiteral"
	case TokTagDefinition:
		return "TagDefinition"
	case TokTag:
		return "Tag"
	case TokAssemblerDirective:
		return "AssemblerDirective"
	case TokOtherKeyword:
		return "OtherKeyword"
	default:
		return "?tok"
	}
}

// ObjectKind classifies a parsed object.
type ObjectKind uint8

const (
	ObjTagDefinition ObjectKind = iota
	ObjDirectivePayload
	ObjInstructionRecord
)

// Op3Kind classifies the third operand of an InstructionRecord.
type Op3Kind uint8

const (
	Op3Reg Op3Kind = iota
	Op3Tag
	Op3Imm
)

// MaxImmediate is the exclusive upper bound (values must be strictly less)
// for a 44-bit immediate.
const MaxImmediate = 1 << 44

// FitsImmediate44 reports whether v fits in the 44-bit immediate field.
func FitsImmediate44(v uint64) bool {
	return v&^((uint64(1)<<44)-1) == 0
}
