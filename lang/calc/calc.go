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

// Package calc provides the semantic actions of the calculator language
// front end.
//
// A parser recognizes the source in a single left to right pass and calls the
// methods of a Compiler as it goes; each method emits code right away through
// a codegen.Generator. There is no syntax tree.
//
// The language has 26 integer or boolean variables named a to z, all living in
// the frame opened by Begin.
package calc

import (
	"github.com/g19m7057/calcpvm/codegen"
	"github.com/g19m7057/calcpvm/vm"
)

var operators = map[string]codegen.Op{
	"+":  codegen.Add,
	"-":  codegen.Sub,
	"||": codegen.Or,
	"*":  codegen.Mul,
	"/":  codegen.Div,
	"%":  codegen.Rem,
	"&&": codegen.And,
	"==": codegen.Ceq,
	"!=": codegen.Cne,
	"<":  codegen.Clt,
	"<=": codegen.Cle,
	">":  codegen.Cgt,
	">=": codegen.Cge,
}

// OpFor returns the operator for the given source symbol.
func OpFor(symbol string) (codegen.Op, bool) {
	op, ok := operators[symbol]
	return op, ok
}

// Compiler holds the code generator and the variable table of a single
// compilation.
type Compiler struct {
	Gen   *codegen.Generator
	Vars  Table
	frame int
}

// New returns a new Compiler. Diagnostics are sent to r.
func New(r codegen.Reporter) *Compiler {
	return &Compiler{Gen: codegen.New(r), frame: -1}
}

// Begin declares the variables and opens the program frame.
func (c *Compiler) Begin() {
	for name := 'a'; name <= 'z'; name++ {
		c.Vars.Declare(name)
	}
	c.frame = c.Gen.OpenStackFrame(c.Vars.Len())
}

// End terminates the program.
func (c *Compiler) End() {
	c.Gen.LeaveProgram()
	if c.frame >= 0 {
		c.Gen.FixDSP(c.frame, c.Vars.Len())
	}
}

func (c *Compiler) offset(name rune) (int, bool) {
	off, ok := c.Vars.Offset(name)
	if !ok {
		c.Gen.SemError("undeclared " + string(name))
	}
	return off, ok
}

// Assign pops the value of the expression just compiled into name.
func (c *Compiler) Assign(name rune) {
	if off, ok := c.offset(name); ok {
		c.Gen.StoreValue(off)
	}
}

// LoadVar pushes the value of name.
func (c *Compiler) LoadVar(name rune) {
	if off, ok := c.offset(name); ok {
		c.Gen.LoadValue(off)
	}
}

// Read reads an integer or boolean into name.
func (c *Compiler) Read(name rune, t codegen.Type) {
	if off, ok := c.offset(name); ok {
		c.Gen.LoadAddress(off)
		c.Gen.Read(t)
	}
}

// LoadConst pushes n.
func (c *Compiler) LoadConst(n int) {
	c.Gen.LoadConstant(n)
}

// LoadBool pushes b as 0 or 1.
func (c *Compiler) LoadBool(b bool) {
	if b {
		c.Gen.LoadConstant(1)
	} else {
		c.Gen.LoadConstant(0)
	}
}

// Operator applies the binary operator symbol to the two values on top of
// the stack.
func (c *Compiler) Operator(symbol string) {
	op, ok := OpFor(symbol)
	if !ok {
		c.Gen.SemError("unknown operator " + symbol)
		return
	}
	if op.IsComparison() {
		c.Gen.Comparison(op)
	} else {
		c.Gen.BinaryOp(op)
	}
}

// Negate negates the integer on top of the stack.
func (c *Compiler) Negate() { c.Gen.NegateInteger() }

// Not negates the boolean on top of the stack.
func (c *Compiler) Not() { c.Gen.NegateBoolean() }

// WriteExpr writes the integer on top of the stack.
func (c *Compiler) WriteExpr() { c.Gen.Write(codegen.Int) }

// WriteBool writes the boolean on top of the stack.
func (c *Compiler) WriteBool() { c.Gen.Write(codegen.Bool) }

// WriteString writes the string literal lit, quotes included.
func (c *Compiler) WriteString(lit string) {
	s, err := StringLiteral(lit)
	if err != nil {
		c.Gen.SemError(err.Error())
		return
	}
	c.Gen.WriteString(s)
}

// WriteLine ends the current output line.
func (c *Compiler) WriteLine() { c.Gen.WriteLine() }

// If compiles the test of a conditional: it pops the boolean just computed
// and skips to the returned label when false. The caller passes the label
// to EndIf once the conditional statement is compiled.
func (c *Compiler) If() *codegen.Label {
	l := c.Gen.NewLabel(false)
	c.Gen.BranchFalse(l)
	return l
}

// Else ends the then branch of the conditional started with If and starts
// the else branch. It returns the label to pass to EndIf.
func (c *Compiler) Else(l *codegen.Label) *codegen.Label {
	end := c.Gen.NewLabel(false)
	c.Gen.Branch(end)
	l.Here()
	return end
}

// EndIf ends a conditional.
func (c *Compiler) EndIf(l *codegen.Label) {
	l.Here()
}

// While marks the start of a loop. The returned label is passed to Do and
// EndWhile.
func (c *Compiler) While() *codegen.Label {
	return c.Gen.NewLabel(true)
}

// Do compiles the loop test, which pops the boolean just computed. It
// returns the exit label to pass to EndWhile.
func (c *Compiler) Do() *codegen.Label {
	return c.If()
}

// EndWhile closes the loop started at top.
func (c *Compiler) EndWhile(top, exit *codegen.Label) {
	c.Gen.Branch(top)
	exit.Here()
}

// Successful returns true if the program compiled without errors.
func (c *Compiler) Successful() bool {
	return c.Gen.Successful()
}

// Image returns the compiled program.
func (c *Compiler) Image() vm.Image {
	return c.Gen.Image()
}
