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

package codegen

import (
	"strconv"

	"github.com/g19m7057/calcpvm/vm"
)

// Undefined terminates a chain of forward references. It is never a valid
// address.
const Undefined = -1

// Label is a code address that may not be known yet.
//
// While a label is pending, adr is the head of a linked list of the operand
// words that refer to it. The list is threaded through the code array itself:
// each pending operand word holds the address of the previous reference, the
// oldest one holds Undefined. Here walks the list and overwrites every link
// with the final address. The operand words are the list cells; no other
// storage is involved.
type Label struct {
	g       *Generator
	adr     int
	defined bool
}

// NewLabel returns a new label. If known is true, the label is defined at the
// current code length; otherwise it is pending until Here is called.
func (g *Generator) NewLabel(known bool) *Label {
	l := &Label{g: g, adr: Undefined, defined: known}
	if known {
		l.adr = g.codeTop
	}
	return l
}

// Address returns the value to emit as the operand of an instruction
// referring to l, and must be called right before that operand is emitted.
//
// For a defined label, this is its address. For a pending label, it returns
// the previous head of the reference chain and makes the operand word about to
// be emitted the new head.
func (l *Label) Address() int {
	adr := l.adr
	if !l.defined && l.g.generating {
		l.adr = l.g.codeTop
	}
	return adr
}

// Here defines l at the current code length and patches all pending
// references. Calling Here on a defined label is a compiler error; the label
// keeps its original address.
func (l *Label) Here() {
	if l.defined {
		l.g.SemError("Compiler error - bad label")
		return
	}
	if l.g.generating {
		l.g.backPatch(l.adr)
	}
	l.adr = l.g.codeTop
	l.defined = true
}

// Defined returns true once the address of l is known.
func (l *Label) Defined() bool {
	return l.defined
}

func (l *Label) String() string {
	return strconv.Itoa(l.adr)
}

// backPatch stores the current code length in every operand word of the
// chain starting at adr.
func (g *Generator) backPatch(adr int) {
	for adr != Undefined && adr >= 0 && adr < g.codeTop {
		next := int(g.mem[adr])
		g.mem[adr] = vm.Cell(g.codeTop)
		adr = next
	}
}
