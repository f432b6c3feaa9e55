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

package codegen_test

import (
	"testing"

	"github.com/g19m7057/calcpvm/codegen"
	"github.com/g19m7057/calcpvm/vm"
)

type C []vm.Cell

func checkCode(t *testing.T, g *codegen.Generator, exp C) {
	t.Helper()
	code := g.Image().Code()
	diff := len(code) != len(exp)
	for i := 0; !diff && i < len(exp); i++ {
		diff = code[i] != exp[i]
	}
	if diff {
		t.Fatalf("Code error: expected %d, got %d", exp, code)
	}
}

func TestForwardChain(t *testing.T) {
	var d codegen.Diagnostics
	g := codegen.New(&d)
	l := g.NewLabel(false)
	g.Branch(l)
	g.BranchFalse(l)
	g.Branch(l)
	// the chain runs through the operand words: 5 -> 3 -> 1 -> Undefined
	checkCode(t, g, C{
		vm.Cell(vm.OpBrn), codegen.Undefined,
		vm.Cell(vm.OpBze), 1,
		vm.Cell(vm.OpBrn), 3,
	})
	g.LoadConstant(0)
	l.Here()
	if !l.Defined() || l.String() != "8" {
		t.Fatalf("label not defined at 8: %v", l)
	}
	checkCode(t, g, C{
		vm.Cell(vm.OpBrn), 8,
		vm.Cell(vm.OpBze), 8,
		vm.Cell(vm.OpBrn), 8,
		vm.Cell(vm.OpLdc), 0,
	})
	// references after definition use the address directly
	g.Branch(l)
	checkCode(t, g, C{
		vm.Cell(vm.OpBrn), 8,
		vm.Cell(vm.OpBze), 8,
		vm.Cell(vm.OpBrn), 8,
		vm.Cell(vm.OpLdc), 0,
		vm.Cell(vm.OpBrn), 8,
	})
	if d.Errors() != 0 {
		t.Fatal(d.Err())
	}
}

func TestInterleavedLabels(t *testing.T) {
	g := codegen.New(nil)
	a := g.NewLabel(false)
	b := g.NewLabel(false)
	top := g.NewLabel(true)
	g.BranchFalse(a) // 0
	g.Branch(b)      // 2
	g.BranchFalse(a) // 4
	a.Here()         // 6
	g.Branch(top)    // 6
	g.Branch(b)      // 8
	b.Here()         // 10
	g.LeaveProgram()
	checkCode(t, g, C{
		vm.Cell(vm.OpBze), 6,
		vm.Cell(vm.OpBrn), 10,
		vm.Cell(vm.OpBze), 6,
		vm.Cell(vm.OpBrn), 0,
		vm.Cell(vm.OpBrn), 10,
		vm.Cell(vm.OpHalt),
	})
	for i, c := range g.Image().Code() {
		if c == codegen.Undefined {
			t.Fatalf("unresolved reference at %d", i)
		}
	}
}

func TestLabelRedefinition(t *testing.T) {
	var d codegen.Diagnostics
	g := codegen.New(&d)
	l := g.NewLabel(false)
	g.Branch(l)
	l.Here()
	g.LoadConstant(1)
	l.Here()
	if d.Errors() != 1 {
		t.Fatalf("expected 1 error, got %d", d.Errors())
	}
	if msg := d.List()[0].Msg; msg != "Compiler error - bad label" {
		t.Fatalf("unexpected message %q", msg)
	}
	if l.String() != "2" {
		t.Fatalf("label moved to %v", l)
	}
	checkCode(t, g, C{vm.Cell(vm.OpBrn), 2, vm.Cell(vm.OpLdc), 1})
	if g.Successful() {
		t.Fatal("expected failure")
	}
}

func TestTooLong(t *testing.T) {
	var d codegen.Diagnostics
	g := codegen.NewSize(10, &d)
	l := g.NewLabel(false)
	for k := 0; k < 8; k++ {
		g.LoadConstant(k)
	}
	g.Branch(l)
	l.Here()
	g.WriteString("abc")
	g.LeaveProgram()
	if d.Errors() != 1 {
		t.Fatalf("expected a single error, got %v", d.Err())
	}
	if msg := d.List()[0].Msg; msg != "program too long" {
		t.Fatalf("unexpected message %q", msg)
	}
	if g.Generating() {
		t.Fatal("still generating")
	}
	if n := g.CodeLength(); n != 10 {
		t.Fatalf("expected code length 10, got %d", n)
	}
	if g.Successful() {
		t.Fatal("expected failure")
	}
}

func TestWriteString(t *testing.T) {
	g := codegen.New(nil)
	g.WriteString("ab")
	g.WriteString("c")
	g.WriteString("")
	top := vm.MemSize
	checkCode(t, g, C{
		vm.Cell(vm.OpPrns), vm.Cell(top - 1),
		vm.Cell(vm.OpPrns), vm.Cell(top - 4),
		vm.Cell(vm.OpPrns), vm.Cell(top - 6),
	})
	mem := g.Image().Mem
	pool := C(mem[top-6 : top])
	exp := C{0, 0, 'c', 0, 'b', 'a'}
	for i := range exp {
		if pool[i] != exp[i] {
			t.Fatalf("bad string pool: expected %d, got %d", exp, pool)
		}
	}
	if sp := g.InitSP(); sp != top-6 {
		t.Fatalf("expected initial SP %d, got %d", top-6, sp)
	}
	if s := mem.DecodeString(top - 1); s != "ab" {
		t.Fatalf("expected ab, got %q", s)
	}
}

func TestWriteStringTooLong(t *testing.T) {
	var d codegen.Diagnostics
	g := codegen.NewSize(8, &d)
	g.LoadConstant(1)
	g.WriteString("abcde")
	if d.Errors() != 1 || g.Generating() {
		t.Fatalf("expected program too long, got %v", d.Err())
	}
	if g.InitSP() != 8 {
		t.Fatalf("string pool modified: %d", g.InitSP())
	}
}

func TestFixDSP(t *testing.T) {
	g := codegen.New(nil)
	loc := g.OpenStackFrame(0)
	g.LoadConstant(3)
	g.StoreValue(0)
	g.FixDSP(loc, 4)
	g.FixDSP(2, 9) // not a DSP
	g.FixDSP(40, 9)
	g.Pop(1)
	checkCode(t, g, C{
		vm.Cell(vm.OpDsp), 4,
		vm.Cell(vm.OpLdc), 3,
		vm.Cell(vm.OpStl), 0,
		vm.Cell(vm.OpDsp), -1,
	})
}

func TestOperators(t *testing.T) {
	g := codegen.New(nil)
	g.BinaryOp(codegen.Nop)
	g.BinaryOp(codegen.Add)
	g.BinaryOp(codegen.Cle)
	g.Comparison(codegen.Mul)
	g.Comparison(codegen.Cgt)
	g.NegateInteger()
	g.NegateBoolean()
	g.Read(codegen.Bool)
	g.Write(codegen.Int)
	g.WriteLine()
	checkCode(t, g, C{
		vm.Cell(vm.OpAdd), vm.Cell(vm.OpCle), vm.Cell(vm.OpCgt),
		vm.Cell(vm.OpNeg), vm.Cell(vm.OpNot),
		vm.Cell(vm.OpInpb), vm.Cell(vm.OpPrni), vm.Cell(vm.OpPrnl),
	})
	if !codegen.Ceq.IsComparison() || codegen.Or.IsComparison() {
		t.Fatal("IsComparison")
	}
}

func TestMnemonics(t *testing.T) {
	var d codegen.Diagnostics
	g := codegen.New(&d)
	g.OneWord("halt")
	g.TwoWord("LDC", -3)
	g.OneWord("FOO")
	if d.Errors() != 1 || d.List()[0].Msg != "unknown mnemonic FOO" {
		t.Fatalf("unexpected diagnostics %v", d.Err())
	}
	checkCode(t, g, C{vm.Cell(vm.OpHalt), vm.Cell(vm.OpLdc), -3, vm.Cell(vm.OpNul)})
}

func TestDiagnostics(t *testing.T) {
	var d codegen.Diagnostics
	g := codegen.New(&d)
	d.At(1, 2)
	g.Warning("first")
	d.SetWarnings(false)
	g.Warning("dropped")
	d.At(3, 4)
	g.SemError("bad")
	if d.Errors() != 1 || d.Warnings() != 1 || g.ErrorCount() != 1 {
		t.Fatalf("bad counts: %d errors, %d warnings", d.Errors(), d.Warnings())
	}
	exp := "1:2: warning: first\n3:4: error: bad"
	if s := d.Err().Error(); s != exp {
		t.Fatalf("expected:\n%s\ngot:\n%s", exp, s)
	}
	var empty codegen.Diagnostics
	if empty.Err() != nil {
		t.Fatal("expected nil error")
	}
}
