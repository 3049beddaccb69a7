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

// Package source owns the raw bytes of an assembly source file and
// translates byte offsets within them into line/column positions for
// diagnostics.
package source

import "fmt"

// Pos is a 1-based line/column position within a Buffer.
type Pos struct {
	Name   string
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Name, p.Line, p.Column)
}

// Buffer owns the bytes of a single source file and resolves byte offsets
// to positions on demand.
type Buffer struct {
	name  string
	data  []byte
	lines []int // cached byte offset of each line start, built lazily
}

// NewBuffer wraps data under the given name (typically a file name, used
// only for diagnostics).
func NewBuffer(name string, data []byte) *Buffer {
	return &Buffer{name: name, data: data}
}

// Name returns the buffer's name.
func (b *Buffer) Name() string { return b.name }

// Bytes returns the underlying source bytes.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// At returns the byte at offset i.
func (b *Buffer) At(i int) byte { return b.data[i] }

func (b *Buffer) ensureLines() {
	if b.lines != nil {
		return
	}
	lines := make([]int, 1, 64)
	lines[0] = 0
	for i, c := range b.data {
		if c == '\n' {
			lines = append(lines, i+1)
		}
	}
	b.lines = lines
}

// Position converts a byte offset into the buffer into a 1-based
// (line, column) pair.
func (b *Buffer) Position(offset int) Pos {
	b.ensureLines()
	// binary search for the last line start <= offset
	lo, hi := 0, len(b.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lines[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Pos{Name: b.name, Line: lo + 1, Column: offset - b.lines[lo] + 1}
}
