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
	"strconv"
	"strings"
)

// parseNumeric converts a NumericLiteral lexeme to its value. Per spec.md
// §4.1, base is chosen by the presence of an 'x'/'X' in the lexeme, not by
// a required "0x" prefix, though a leading "0x"/"0X" is stripped for
// readability before the base-16 conversion.
func parseNumeric(lexeme string) (uint64, error) {
	if strings.ContainsAny(lexeme, "xX") {
		s := lexeme
		if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
			s = s[2:]
		}
		v, err := strconv.ParseUint(s, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("couldn't parse numeric token %q", lexeme)
		}
		return v, nil
	}
	v, err := strconv.ParseUint(lexeme, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("couldn't parse numeric token %q", lexeme)
	}
	return v, nil
}
