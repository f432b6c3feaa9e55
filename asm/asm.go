// This file is part of calcpvm - https://github.com/g19m7057/calcpvm
//
// Copyright 2026 The calcpvm Authors.
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

package asm

import (
	"io"
	"strconv"

	"github.com/g19m7057/calcpvm/internal/pvmi"
	"github.com/g19m7057/calcpvm/vm"
)

// Option is an assembler option.
type Option func(*parser)

// Warnings directs warnings to w. Warnings are discarded by default.
func Warnings(w io.Writer) Option {
	return func(p *parser) { p.warn = w }
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader, opts ...Option) (img vm.Image, err error) {
	p := newParser()
	for _, opt := range opts {
		opt(p)
	}
	if err = p.Parse(name, r); err != nil {
		return vm.Image{}, err
	}
	return p.g.Image(), nil
}

// decodeString walks the descending string at adr. It stops at the
// terminator or at the bottom of mem.
func decodeString(mem []vm.Cell, adr int) string {
	return vm.Memory(mem).DecodeString(adr)
}

// Disassemble writes a disassembly of the instruction in the given slice at
// position pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Opcode values outside the opcode table are reduced modulo the table size.
// Unassigned values are shown with an empty mnemonic.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := pvmi.NewErrWriter(w)

	op := vm.Reduce(mem[pc])
	pc++
	if !op.HasOperand() {
		io.WriteString(ew, op.String())
		return pc, ew.Err
	}
	ew.Printf("%-8s", op.String())
	if pc >= len(mem) {
		io.WriteString(ew, "???")
		return pc, ew.Err
	}
	v := int(mem[pc])
	if op == vm.OpPrns {
		io.WriteString(ew, ` "`)
		if v >= 0 && v < len(mem) {
			io.WriteString(ew, Escape(decodeString(mem, v)))
		}
		io.WriteString(ew, `"`)
	} else {
		io.WriteString(ew, strconv.Itoa(v))
	}
	return pc + 1, ew.Err
}

// DisassembleAll writes a code listing of the given image to the specified
// io.Writer. The listing walks addresses sequentially from 0 to the code
// length and can be read back with Assemble. It will return any write error.
func DisassembleAll(img vm.Image, w io.Writer) error {
	ew := pvmi.NewErrWriter(w)
	io.WriteString(ew, "ASSEM\nBEGIN\n")
	for pc := 0; pc < img.CodeLen && pc < len(img.Mem); {
		ew.Printf("  {%5d } ", pc)
		pc, _ = Disassemble(img.Mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	io.WriteString(ew, "END.\n")
	return ew.Err
}
