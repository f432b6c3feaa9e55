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

package vm

import (
	"math"
	"unicode/utf8"
)

// Cell is the raw type stored in a memory location.
type Cell int32

// MaxInt is the largest value a Cell can hold.
const MaxInt = math.MaxInt32

// MemSize is the default number of addressable words.
const MemSize = 5120

// Memory is the single word array shared by the code, string pool, heap and
// stack. These regions are index ranges with moving boundaries, not separate
// arrays: programs compute raw addresses and may legally point anywhere the
// bounds checks of the executing instruction allow.
//
// Addresses run from 0 to Size() inclusive.
type Memory []Cell

// NewMemory returns a zeroed Memory with addresses 0 through size.
func NewMemory(size int) Memory {
	return make(Memory, size+1)
}

// Size returns the highest valid address.
func (m Memory) Size() int {
	return len(m) - 1
}

// Contains returns true if adr is a valid address in m.
func (m Memory) Contains(adr int) bool {
	return adr >= 0 && adr < len(m)
}

// EncodeString stores s downward from top-1, one rune per cell with the first
// rune at the highest address, and terminates it with a 0 cell. It returns the
// new top, i.e. the address of the terminator. The caller is responsible for
// making room: len(s)+1 cells below top must be free.
func (m Memory) EncodeString(top int, s string) int {
	for _, r := range s {
		top--
		m[top] = Cell(r)
	}
	top--
	m[top] = 0
	return top
}

// DecodeString returns the descending, 0 terminated string whose first
// character is at address start. Decoding stops at the bottom of memory.
func (m Memory) DecodeString(start int) string {
	var b []byte
	for adr := start; m.Contains(adr) && m[adr] != 0; adr-- {
		b = appendRune(b, m[adr])
	}
	return string(b)
}

func appendRune(b []byte, c Cell) []byte {
	return utf8.AppendRune(b, rune(c))
}

// Image is the finished output of code generation: the memory contents
// (code at the bottom, string literals at the top), the code length and the
// initial stack pointer, which sits just below the string pool.
//
// An Image is never modified by the interpreter; each run works on a Clone.
type Image struct {
	Mem     Memory
	CodeLen int
	InitSP  int
}

// Clone returns a deep copy of the image.
func (img Image) Clone() Image {
	m := make(Memory, len(img.Mem))
	copy(m, img.Mem)
	img.Mem = m
	return img
}

// Code returns the code region of the image.
func (img Image) Code() []Cell {
	return img.Mem[:img.CodeLen]
}
