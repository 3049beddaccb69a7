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
	"github.com/ngc6302h/nvm/isa"
	"github.com/ngc6302h/nvm/source"
)

// Object is the closed, post-parse representation of one source construct:
// a tag definition, a directive payload, or an instruction record. It is a
// variant-exhaustive sum type, kept as three concrete struct types behind
// an unexported marker method rather than the source's heap-allocated
// void*-tagged blob (spec.md §9).
type Object interface {
	object()
}

// TagDefinition introduces a label at the address of the next emitted unit.
type TagDefinition struct {
	Pos  source.Pos
	Name string
}

func (TagDefinition) object() {}

// DirectivePayload is one value produced by an assembler directive. Numeric
// directives populate Value; .string populates Str and sets IsString.
type DirectivePayload struct {
	Pos       source.Pos
	Directive isa.Directive
	IsString  bool
	Value     uint64
	Str       string
}

func (DirectivePayload) object() {}

// Op3 is the third operand of an InstructionRecord: exactly one of Reg, Tag
// or Imm is meaningful, selected by Kind.
type Op3 struct {
	Kind isa.Op3Kind
	Reg  isa.Register
	Tag  string
	Imm  uint64
}

// InstructionRecord is a fully parsed instruction, ready for layout.
type InstructionRecord struct {
	Pos  source.Pos
	Op   isa.Instruction
	Op1  isa.Register
	Op2  isa.Register
	Op3  Op3
	Misc uint64
}

func (InstructionRecord) object() {}
