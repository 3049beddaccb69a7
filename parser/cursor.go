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

import "github.com/ngc6302h/nvm/lexer"

// cursor is a forward-only view over a token slice, replacing the
// original's hand-rolled bidirectional iterator (spec.md §9) with the
// slice-index idiom common to the teacher's own token handling.
type cursor struct {
	toks []lexer.Token
	pos  int
}

func (c *cursor) cur() (lexer.Token, bool) {
	if c.pos >= len(c.toks) {
		return lexer.Token{}, false
	}
	return c.toks[c.pos], true
}

func (c *cursor) advance() {
	c.pos++
}
