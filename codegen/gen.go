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

// Package codegen generates PVM code for a single pass front end.
//
// The front end drives a Generator with a sequence of emission calls as it
// recognizes the source; no syntax tree is built. Branch targets that are not
// known yet are represented by a Label and patched when the target is
// reached.
//
// Errors never interrupt generation. Once the code would run into the string
// literal pool, a single "program too long" error is reported and every
// further emission call does nothing, so that the front end can keep going
// and report more errors.
package codegen

import (
	"github.com/g19m7057/calcpvm/vm"
)

// Op is a source level operator.
type Op int

// Operators.
const (
	Nop Op = iota
	Add
	Sub
	Mul
	Div
	Rem
	And
	Or
	Ceq
	Cne
	Clt
	Cge
	Cgt
	Cle
)

var opcodeFor = [...]vm.Opcode{
	Add: vm.OpAdd,
	Sub: vm.OpSub,
	Mul: vm.OpMul,
	Div: vm.OpDiv,
	Rem: vm.OpRem,
	And: vm.OpAnd,
	Or:  vm.OpOr,
	Ceq: vm.OpCeq,
	Cne: vm.OpCne,
	Clt: vm.OpClt,
	Cge: vm.OpCge,
	Cgt: vm.OpCgt,
	Cle: vm.OpCle,
}

// IsComparison returns true if op yields a boolean.
func (op Op) IsComparison() bool {
	return op >= Ceq && op <= Cle
}

// Type is a value type for input and output.
type Type int

// Types.
const (
	Int Type = iota
	Bool
)

// Generator emits code into a vm.Memory. Code grows upward from address 0,
// string literals grow downward from the top of memory.
type Generator struct {
	mem        vm.Memory
	codeTop    int
	stkTop     int
	generating bool
	errors     int
	r          Reporter
}

// New returns a Generator with a memory of vm.MemSize words. Diagnostics are
// sent to r, which may be nil.
func New(r Reporter) *Generator {
	return NewSize(vm.MemSize, r)
}

// NewSize returns a Generator with a memory of the given size.
func NewSize(size int, r Reporter) *Generator {
	mem := vm.NewMemory(size)
	return &Generator{
		mem:        mem,
		stkTop:     mem.Size(),
		generating: true,
		r:          r,
	}
}

// SemError reports a semantic error. It counts against Successful.
func (g *Generator) SemError(msg string) {
	g.errors++
	if g.r != nil {
		g.r.Report(Error, msg)
	}
}

// Warning reports a warning.
func (g *Generator) Warning(msg string) {
	if g.r != nil {
		g.r.Report(Warning, msg)
	}
}

// ErrorCount returns the number of errors reported through g.
func (g *Generator) ErrorCount() int {
	return g.errors
}

func (g *Generator) tooLong() {
	g.SemError("program too long")
	g.generating = false
}

func (g *Generator) emit(word vm.Cell) {
	if !g.generating {
		return
	}
	if g.codeTop >= g.stkTop {
		g.tooLong()
		return
	}
	g.mem[g.codeTop] = word
	g.codeTop++
}

func (g *Generator) emitOp(op vm.Opcode) {
	g.emit(vm.Cell(op))
}

func (g *Generator) emit2(op vm.Opcode, operand int) {
	g.emitOp(op)
	g.emit(vm.Cell(operand))
}

// emitLabel emits op with the address of l as operand. The label must be
// consulted after the opcode is emitted: a pending label records the operand
// slot as the head of its reference chain.
func (g *Generator) emitLabel(op vm.Opcode, l *Label) {
	g.emitOp(op)
	g.emit(vm.Cell(l.Address()))
}

// NegateInteger negates the integer on top of the stack.
func (g *Generator) NegateInteger() { g.emitOp(vm.OpNeg) }

// NegateBoolean negates the boolean on top of the stack.
func (g *Generator) NegateBoolean() { g.emitOp(vm.OpNot) }

// BinaryOp pops B and A and pushes A op B. Comparison operators are accepted
// and behave as with Comparison. Nop emits nothing.
func (g *Generator) BinaryOp(op Op) {
	if op <= Nop || int(op) >= len(opcodeFor) {
		return
	}
	g.emitOp(opcodeFor[op])
}

// Comparison pops B and A and pushes the boolean A op B as 0 or 1. Non
// comparison operators, including Nop, emit nothing.
func (g *Generator) Comparison(op Op) {
	if !op.IsComparison() {
		return
	}
	g.emitOp(opcodeFor[op])
}

// Read pops an address and reads a value of type t into it.
func (g *Generator) Read(t Type) {
	switch t {
	case Int:
		g.emitOp(vm.OpInpi)
	case Bool:
		g.emitOp(vm.OpInpb)
	}
}

// Write pops and writes a value of type t.
func (g *Generator) Write(t Type) {
	switch t {
	case Int:
		g.emitOp(vm.OpPrni)
	case Bool:
		g.emitOp(vm.OpPrnb)
	}
}

// WriteLine writes a line mark.
func (g *Generator) WriteLine() { g.emitOp(vm.OpPrnl) }

// WriteString stores s in the string pool and writes it at run time.
func (g *Generator) WriteString(s string) {
	if !g.generating {
		return
	}
	l := len([]rune(s))
	first := g.stkTop - 1
	if g.stkTop <= g.codeTop+l+1 {
		g.tooLong()
		return
	}
	g.stkTop = g.mem.EncodeString(g.stkTop, s)
	g.emit2(vm.OpPrns, first)
}

// LoadConstant pushes n.
func (g *Generator) LoadConstant(n int) { g.emit2(vm.OpLdc, n) }

// LoadAddress pushes the address of the local variable at offset.
func (g *Generator) LoadAddress(offset int) { g.emit2(vm.OpLda, offset) }

// LoadValue pushes the value of the local variable at offset.
func (g *Generator) LoadValue(offset int) { g.emit2(vm.OpLdl, offset) }

// StoreValue pops a value into the local variable at offset.
func (g *Generator) StoreValue(offset int) { g.emit2(vm.OpStl, offset) }

// Index replaces a heap handle and an index by the element address.
func (g *Generator) Index() { g.emitOp(vm.OpLdxa) }

// Allocate replaces a size by the handle of a new heap block.
func (g *Generator) Allocate() { g.emitOp(vm.OpAnew) }

// Dereference replaces the address on top of the stack by the value stored
// there.
func (g *Generator) Dereference() { g.emitOp(vm.OpLdv) }

// Assign pops a value and an address and stores the value.
func (g *Generator) Assign() { g.emitOp(vm.OpSto) }

// Increment pops an address and increments the value stored there.
func (g *Generator) Increment() { g.emitOp(vm.OpInc) }

// Decrement pops an address and decrements the value stored there.
func (g *Generator) Decrement() { g.emitOp(vm.OpDec) }

// OpenStackFrame reserves size words for variables and returns the location
// of the reservation, to be passed to FixDSP when the real size is known.
func (g *Generator) OpenStackFrame(size int) (location int) {
	location = g.codeTop
	g.emit2(vm.OpDsp, size)
	return location
}

// FixDSP patches the frame reservation at location.
func (g *Generator) FixDSP(location, size int) {
	if location < 0 || location+1 >= g.codeTop || vm.Opcode(g.mem[location]) != vm.OpDsp {
		return
	}
	g.mem[location+1] = vm.Cell(size)
}

// LeaveProgram halts the machine.
func (g *Generator) LeaveProgram() { g.emitOp(vm.OpHalt) }

// Pop discards the top n values of the stack.
func (g *Generator) Pop(n int) { g.emit2(vm.OpDsp, -n) }

// Branch jumps to l.
func (g *Generator) Branch(l *Label) { g.emitLabel(vm.OpBrn, l) }

// BranchFalse pops a boolean and jumps to l if it is false.
func (g *Generator) BranchFalse(l *Label) { g.emitLabel(vm.OpBze, l) }

// Dump dumps the stack at run time.
func (g *Generator) Dump() { g.emitOp(vm.OpStk) }

func (g *Generator) lookup(mnemonic string) vm.Opcode {
	op, ok := vm.Lookup(mnemonic)
	if !ok {
		g.SemError("unknown mnemonic " + mnemonic)
	}
	return op
}

// OneWord emits the instruction named by mnemonic, without operand.
func (g *Generator) OneWord(mnemonic string) {
	g.emitOp(g.lookup(mnemonic))
}

// TwoWord emits the instruction named by mnemonic with an integer operand.
func (g *Generator) TwoWord(mnemonic string, operand int) {
	g.emit2(g.lookup(mnemonic), operand)
}

// BranchTo emits the instruction named by mnemonic with l as operand.
func (g *Generator) BranchTo(mnemonic string, l *Label) {
	g.emitLabel(g.lookup(mnemonic), l)
}

// CodeLength returns the length of the generated code.
func (g *Generator) CodeLength() int { return g.codeTop }

// InitSP returns the initial stack pointer: the bottom of the string pool.
func (g *Generator) InitSP() int { return g.stkTop }

// Generating returns false once the program has grown too long.
func (g *Generator) Generating() bool { return g.generating }

// Successful returns true if no error was reported and some code was
// generated.
func (g *Generator) Successful() bool {
	return g.errors == 0 && g.codeTop > 0
}

// Image returns the generated image. The Generator keeps ownership of the
// memory; callers that go on emitting code should Clone the result.
func (g *Generator) Image() vm.Image {
	return vm.Image{Mem: g.mem, CodeLen: g.codeTop, InitSP: g.stkTop}
}
