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

// Package container reads and writes the 24-byte envelope that couples a
// linked bytecode payload to its load offset and entry point. Grounded on
// the teacher's vm.Load/Save (binary.Read/Write against a fixed record
// shape), adapted from a whole-image Cell slice to the NanoVM header+payload
// format described in spec.md §6.
package container

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/pkg/errors"
)

// Magic identifies a NanoVM container: the byte sequence 02 63 02 63.
const Magic uint32 = 0x63026302

const headerSize = 24

// Container is a linked bytecode payload plus its placement metadata.
type Container struct {
	LoadOffset uint64
	EntryPoint uint64
	Payload    []byte
}

// Write encodes c to w: magic, CRC32 of the load offset/entry
// point/payload, load offset, entry point, then the raw payload, all
// little-endian. Per spec.md §6 CRC32 is optional; Write always computes
// and stores it.
func Write(w io.Writer, c *Container) error {
	body := make([]byte, 16+len(c.Payload))
	binary.LittleEndian.PutUint64(body[0:8], c.LoadOffset)
	binary.LittleEndian.PutUint64(body[8:16], c.EntryPoint)
	copy(body[16:], c.Payload)

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], Magic)
	binary.LittleEndian.PutUint32(hdr[4:8], crc32.ChecksumIEEE(body))
	copy(hdr[8:], body[:16])

	if _, err := w.Write(hdr[:]); err != nil {
		return errors.Wrap(err, "write container header")
	}
	if _, err := w.Write(body[16:]); err != nil {
		return errors.Wrap(err, "write container payload")
	}
	return nil
}

// Read decodes a Container from r. It verifies the magic and the minimum
// length; CRC32 verification is skipped when the stored checksum is zero,
// per spec.md §6's "producers that skip it must write zero" contract.
func Read(r io.Reader) (*Container, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read container")
	}
	if len(buf) < headerSize {
		return nil, errors.Errorf("container too short: %d bytes, need at least %d", len(buf), headerSize)
	}

	magic := binary.LittleEndian.Uint32(buf[0:4])
	if magic != Magic {
		return nil, errors.Errorf("bad container magic: %#08x", magic)
	}

	storedCRC := binary.LittleEndian.Uint32(buf[4:8])
	if storedCRC != 0 {
		if got := crc32.ChecksumIEEE(buf[8:]); got != storedCRC {
			return nil, errors.Errorf("container CRC32 mismatch: stored %#08x, computed %#08x", storedCRC, got)
		}
	}

	c := &Container{
		LoadOffset: binary.LittleEndian.Uint64(buf[8:16]),
		EntryPoint: binary.LittleEndian.Uint64(buf[16:24]),
		Payload:    bytes.Clone(buf[24:]),
	}
	return c, nil
}
