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

import "github.com/ngc6302h/nvm/isa"

// defaultHandlers returns the three interrupt codes a NanoVM program can
// rely on without supplying its own Handler option: 0 writes r1's low byte
// to output, 1 reads one byte into r1 (0 on EOF), 255 halts the machine.
func defaultHandlers() map[uint64]IntHandler {
	return map[uint64]IntHandler{
		0:   writeByteHandler,
		1:   readByteHandler,
		255: haltHandler,
	}
}

func writeByteHandler(i *Instance) (bool, error) {
	_, err := i.output.Write([]byte{byte(i.Register(isa.R1))})
	return false, err
}

func readByteHandler(i *Instance) (bool, error) {
	var b [1]byte
	n, err := i.input.Read(b[:])
	if n == 0 || err != nil {
		i.SetRegister(isa.R1, 0)
		return false, nil
	}
	i.SetRegister(isa.R1, uint64(b[0]))
	return false, nil
}

func haltHandler(i *Instance) (bool, error) {
	return true, nil
}
