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

package parser

import (
	"fmt"

	"github.com/ngc6302h/nvm/isa"
	"github.com/ngc6302h/nvm/lexer"
	"github.com/ngc6302h/nvm/source"
)

// instructionParser parses one instruction's operands after the leading
// mnemonic token has already been consumed from the cursor.
type instructionParser func(c *cursor, tok lexer.Token) (Object, error)

var instructionParsers = map[string]instructionParser{}

func init() {
	for name, ins := range map[string]isa.Instruction{
		"add": isa.Add, "sub": isa.Sub, "mul": isa.Mul, "div": isa.Div,
		"shl": isa.Shl, "shr": isa.Shr, "sra": isa.Sra,
		"and": isa.And, "or": isa.Or, "xor": isa.Xor,
	} {
		ins := ins
		instructionParsers[name] = func(c *cursor, tok lexer.Token) (Object, error) {
			return parseRegRegRegImm(c, tok, ins)
		}
	}
	for name, ins := range map[string]isa.Instruction{"neg": isa.Neg, "not": isa.Not} {
		ins := ins
		instructionParsers[name] = func(c *cursor, tok lexer.Token) (Object, error) {
			return parseRegReg(c, tok, ins)
		}
	}
	instructionParsers["load"] = parseLoad
	instructionParsers["store"] = parseStore
	instructionParsers["jmp"] = parseJmp
	instructionParsers["int"] = parseInt
}

func unexpectedEOS(insPos source.Pos) error {
	return Errors{{insPos, "unexpected end of token stream in the middle of parsing an instruction"}}
}

func expectRegister(c *cursor, insPos source.Pos, mnemonic string, n int) (isa.Register, error) {
	t, ok := c.cur()
	if !ok {
		return 0, unexpectedEOS(insPos)
	}
	if t.Kind != isa.TokRegisterKeyword {
		return 0, Errors{{t.Pos, fmt.Sprintf(
			"invalid token in %s instruction (operand %d); expected register identifier, got %s", mnemonic, n, t.Kind)}}
	}
	c.advance()
	return isa.Registers[t.Lexeme], nil
}

func expectRegOrImm(c *cursor, insPos source.Pos, mnemonic string, n int) (Op3, error) {
	t, ok := c.cur()
	if !ok {
		return Op3{}, unexpectedEOS(insPos)
	}
	switch t.Kind {
	case isa.TokRegisterKeyword:
		c.advance()
		return Op3{Kind: isa.Op3Reg, Reg: isa.Registers[t.Lexeme]}, nil
	case isa.TokNumericLiteral:
		v, err := parseNumeric(t.Lexeme)
		if err != nil {
			return Op3{}, Errors{{t.Pos, err.Error()}}
		}
		if !isa.FitsImmediate44(v) {
			return Op3{}, Errors{{t.Pos, "overflow in register immediate operand: value does not fit in 44 bits"}}
		}
		c.advance()
		return Op3{Kind: isa.Op3Imm, Imm: v}, nil
	default:
		return Op3{}, Errors{{t.Pos, fmt.Sprintf(
			"invalid token in %s instruction (operand %d); expected register identifier or numeric literal", mnemonic, n)}}
	}
}

func expectRegOrImmOrTag(c *cursor, insPos source.Pos, mnemonic string, n int) (Op3, error) {
	t, ok := c.cur()
	if !ok {
		return Op3{}, unexpectedEOS(insPos)
	}
	if t.Kind == isa.TokTag {
		c.advance()
		return Op3{Kind: isa.Op3Tag, Tag: t.Lexeme}, nil
	}
	return expectRegOrImm(c, insPos, mnemonic, n)
}

func expectKeyword(c *cursor, insPos source.Pos, kw string) error {
	t, ok := c.cur()
	if !ok {
		return unexpectedEOS(insPos)
	}
	if t.Kind != isa.TokOtherKeyword || t.Lexeme != kw {
		return Errors{{t.Pos, fmt.Sprintf("expected %q, got %q", kw, t.Lexeme)}}
	}
	c.advance()
	return nil
}

func expectWidth(c *cursor, insPos source.Pos) (uint64, error) {
	t, ok := c.cur()
	if !ok {
		return 0, unexpectedEOS(insPos)
	}
	if t.Kind != isa.TokNumericLiteral {
		return 0, Errors{{t.Pos, "expected a width literal (8, 16, 32 or 64)"}}
	}
	v, err := parseNumeric(t.Lexeme)
	if err != nil {
		return 0, Errors{{t.Pos, err.Error()}}
	}
	switch v {
	case 8, 16, 32, 64:
		c.advance()
		return v, nil
	default:
		return 0, Errors{{t.Pos, fmt.Sprintf("invalid load/store width %d: must be one of 8, 16, 32, 64", v)}}
	}
}

// parseRegRegRegImm handles add/sub/mul/div/shl/shr/sra/and/or/xor: reg,
// reg, reg-or-imm.
func parseRegRegRegImm(c *cursor, tok lexer.Token, ins isa.Instruction) (Object, error) {
	op1, err := expectRegister(c, tok.Pos, ins.String(), 1)
	if err != nil {
		return nil, err
	}
	op2, err := expectRegister(c, tok.Pos, ins.String(), 2)
	if err != nil {
		return nil, err
	}
	op3, err := expectRegOrImm(c, tok.Pos, ins.String(), 3)
	if err != nil {
		return nil, err
	}
	return InstructionRecord{Pos: tok.Pos, Op: ins, Op1: op1, Op2: op2, Op3: op3}, nil
}

// parseRegReg handles neg/not: reg, reg.
func parseRegReg(c *cursor, tok lexer.Token, ins isa.Instruction) (Object, error) {
	op1, err := expectRegister(c, tok.Pos, ins.String(), 1)
	if err != nil {
		return nil, err
	}
	op2, err := expectRegister(c, tok.Pos, ins.String(), 2)
	if err != nil {
		return nil, err
	}
	return InstructionRecord{Pos: tok.Pos, Op: ins, Op1: op1, Op2: op2, Op3: Op3{Kind: isa.Op3Imm, Imm: 0}, Misc: 2}, nil
}

// parseLoad handles: width, (reg|imm|tag), "to", reg.
func parseLoad(c *cursor, tok lexer.Token) (Object, error) {
	width, err := expectWidth(c, tok.Pos)
	if err != nil {
		return nil, err
	}
	src, err := expectRegOrImmOrTag(c, tok.Pos, "load", 2)
	if err != nil {
		return nil, err
	}
	if err := expectKeyword(c, tok.Pos, "to"); err != nil {
		return nil, err
	}
	dst, err := expectRegister(c, tok.Pos, "load", 4)
	if err != nil {
		return nil, err
	}
	return InstructionRecord{Pos: tok.Pos, Op: isa.Load, Op1: dst, Op2: isa.R0, Op3: src, Misc: width}, nil
}

// parseStore handles: width, reg, "in", (reg|imm|tag).
func parseStore(c *cursor, tok lexer.Token) (Object, error) {
	width, err := expectWidth(c, tok.Pos)
	if err != nil {
		return nil, err
	}
	src, err := expectRegister(c, tok.Pos, "store", 2)
	if err != nil {
		return nil, err
	}
	if err := expectKeyword(c, tok.Pos, "in"); err != nil {
		return nil, err
	}
	dst, err := expectRegOrImmOrTag(c, tok.Pos, "store", 4)
	if err != nil {
		return nil, err
	}
	return InstructionRecord{Pos: tok.Pos, Op: isa.Store, Op1: src, Op2: isa.R0, Op3: dst, Misc: width}, nil
}

// parseJmp handles: (reg|imm|tag), optional "if" reg op reg [unsigned].
// Per spec.md §9 open question 3, "if" is required whenever a comparison
// clause is present; without it the instruction compiles as an
// unconditional jump encoded as Je of r0 against r0.
func parseJmp(c *cursor, tok lexer.Token) (Object, error) {
	target, err := expectRegOrImmOrTag(c, tok.Pos, "jmp", 1)
	if err != nil {
		return nil, err
	}

	t, ok := c.cur()
	if !ok || t.Kind != isa.TokOtherKeyword || t.Lexeme != "if" {
		return InstructionRecord{Pos: tok.Pos, Op: isa.Je, Op1: isa.R0, Op2: isa.R0, Op3: target}, nil
	}
	c.advance()

	a, err := expectRegister(c, tok.Pos, "jmp", 2)
	if err != nil {
		return nil, err
	}

	opTok, ok := c.cur()
	if !ok {
		return nil, unexpectedEOS(tok.Pos)
	}
	var ins isa.Instruction
	switch {
	case opTok.Kind == isa.TokOtherKeyword && opTok.Lexeme == "==":
		ins = isa.Je
	case opTok.Kind == isa.TokOtherKeyword && opTok.Lexeme == "!=":
		ins = isa.Jne
	case opTok.Kind == isa.TokOtherKeyword && opTok.Lexeme == ">":
		ins = isa.Jg
	case opTok.Kind == isa.TokOtherKeyword && opTok.Lexeme == "<":
		ins = isa.Jl
	default:
		return nil, Errors{{opTok.Pos, "expected a comparison operator (==, !=, <, >) in jmp if-clause"}}
	}
	c.advance()

	b, err := expectRegister(c, tok.Pos, "jmp", 3)
	if err != nil {
		return nil, err
	}

	if ut, ok := c.cur(); ok && ut.Kind == isa.TokOtherKeyword && ut.Lexeme == "unsigned" {
		switch ins {
		case isa.Jg:
			ins = isa.Jgu
		case isa.Jl:
			ins = isa.Jlu
		default:
			return nil, Errors{{ut.Pos, "unsigned suffix can only be used with '<' and '>' comparisons"}}
		}
		c.advance()
	}

	return InstructionRecord{Pos: tok.Pos, Op: ins, Op1: a, Op2: b, Op3: target}, nil
}

// parseInt handles: imm.
func parseInt(c *cursor, tok lexer.Token) (Object, error) {
	t, ok := c.cur()
	if !ok {
		return nil, unexpectedEOS(tok.Pos)
	}
	if t.Kind != isa.TokNumericLiteral {
		return nil, Errors{{t.Pos, "expected a numeric literal operand for int"}}
	}
	v, err := parseNumeric(t.Lexeme)
	if err != nil {
		return nil, Errors{{t.Pos, err.Error()}}
	}
	if !isa.FitsImmediate44(v) {
		return nil, Errors{{t.Pos, "overflow in int operand: value does not fit in 44 bits"}}
	}
	c.advance()
	return InstructionRecord{Pos: tok.Pos, Op: isa.Int, Op1: isa.R0, Op2: isa.R0, Op3: Op3{Kind: isa.Op3Imm, Imm: v}}, nil
}
