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

// Package parser consumes a lexer.Token sequence and produces an ordered
// Object sequence (tag definitions, directive payloads, instruction
// records), dispatching per leading keyword to a small family of
// operand-shape and directive parsers kept as static lookup tables
// (spec.md §9's "dispatch tables for parsers" design note).
package parser

import (
	"fmt"

	"github.com/ngc6302h/nvm/isa"
	"github.com/ngc6302h/nvm/lexer"
)

// Parse consumes the token sequence and returns the parsed objects, or the
// accumulated error set if any of them failed to parse. A failure on one
// top-level construct does not prevent parsing of its siblings.
func Parse(toks []lexer.Token) ([]Object, error) {
	c := &cursor{toks: toks}
	var objs []Object
	var errs Errors

	for {
		tok, ok := c.cur()
		if !ok {
			break
		}

		switch tok.Kind {
		case isa.TokTagDefinition:
			c.advance()
			objs = append(objs, TagDefinition{Pos: tok.Pos, Name: tok.Lexeme})

		case isa.TokInstructionKeyword:
			c.advance()
			fn, ok := instructionParsers[tok.Lexeme]
			if !ok {
				errs = append(errs, Error{tok.Pos, "no parser registered for instruction " + tok.Lexeme})
				continue
			}
			obj, err := fn(c, tok)
			if err != nil {
				errs = append(errs, asErrors(err)...)
				continue
			}
			objs = append(objs, obj)

		case isa.TokAssemblerDirective:
			c.advance()
			fn, ok := directiveParsers[tok.Lexeme]
			if !ok {
				errs = append(errs, Error{tok.Pos, "no parser registered for directive " + tok.Lexeme})
				continue
			}
			for {
				obj, more, err := fn(c, tok.Pos)
				if err != nil {
					errs = append(errs, asErrors(err)...)
					break
				}
				objs = append(objs, obj)
				if !more {
					break
				}
			}

		default:
			c.advance()
			errs = append(errs, Error{tok.Pos, fmt.Sprintf("unexpected top-level token %q (%s)", tok.Lexeme, tok.Kind)})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return objs, nil
}

func asErrors(err error) Errors {
	if es, ok := err.(Errors); ok {
		return es
	}
	return Errors{{Msg: err.Error()}}
}
