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

package vm

// chunkSize mirrors the 32 KiB chunk granularity of the original
// interpreter's sparse NVMMemory (NVMVirtualMachine.h): memory is allocated
// lazily per chunk so a program that writes to address 0 and address
// 1<<40 doesn't require an actual 1<<40-byte allocation.
const chunkSize = 32 * 1024

// memory is flat, byte-addressable, little-endian, and backed by
// on-demand chunks keyed by their base address.
type memory struct {
	chunks map[uint64][]byte
}

func newMemory() *memory {
	return &memory{chunks: map[uint64][]byte{}}
}

func (m *memory) chunkFor(addr uint64) []byte {
	base := addr - addr%chunkSize
	c, ok := m.chunks[base]
	if !ok {
		c = make([]byte, chunkSize)
		m.chunks[base] = c
	}
	return c
}

func (m *memory) readByte(addr uint64) byte {
	c := m.chunkFor(addr)
	return c[addr%chunkSize]
}

func (m *memory) writeByte(addr uint64, v byte) {
	c := m.chunkFor(addr)
	c[addr%chunkSize] = v
}

// Read reads a width-bit (8/16/32/64), little-endian value starting at addr.
func (m *memory) Read(addr uint64, width int) uint64 {
	var v uint64
	for i := 0; i < width/8; i++ {
		v |= uint64(m.readByte(addr+uint64(i))) << uint(8*i)
	}
	return v
}

// Write writes the low width bits of value, little-endian, starting at addr.
func (m *memory) Write(addr uint64, width int, value uint64) {
	for i := 0; i < width/8; i++ {
		m.writeByte(addr+uint64(i), byte(value>>uint(8*i)))
	}
}

func (m *memory) loadPayload(offset uint64, payload []byte) {
	for i, b := range payload {
		m.writeByte(offset+uint64(i), b)
	}
}
