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

package lexer

import (
	"strings"

	"github.com/ngc6302h/nvm/source"
)

// Error is a single lexical error tied to a source position.
type Error struct {
	Pos source.Pos
	Msg string
}

// Errors is the accumulated error set returned by Tokenize. A non-empty
// Errors value is the phase's failure value; it is never mixed with a
// partial token result.
type Errors []Error

func (e Errors) Error() string {
	l := make([]string, len(e))
	for i, err := range e {
		l[i] = err.Pos.String() + ": " + err.Msg
	}
	return strings.Join(l, "\n")
}
