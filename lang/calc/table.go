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

package calc

import (
	"fmt"
	"io"
)

// Var is a variable table entry.
type Var struct {
	Name   rune
	Offset int
}

// Table is the variable table. Variables are single letters; each one gets
// the next free frame offset when declared.
type Table struct {
	vars []Var
}

// Declare adds name to the table and returns its offset. Declaring a name
// twice returns the existing offset.
func (t *Table) Declare(name rune) int {
	if off, ok := t.Offset(name); ok {
		return off
	}
	off := len(t.vars)
	t.vars = append(t.vars, Var{name, off})
	return off
}

// Offset returns the frame offset of name.
func (t *Table) Offset(name rune) (int, bool) {
	for _, v := range t.vars {
		if v.Name == name {
			return v.Offset, true
		}
	}
	return 0, false
}

// Len returns the number of declared variables, i.e. the frame size.
func (t *Table) Len() int {
	return len(t.vars)
}

// Vars returns the table entries in declaration order.
func (t *Table) Vars() []Var {
	return t.vars
}

// Print writes the table for diagnostic purposes.
func (t *Table) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w, "\nVariable table\n%6s%10s\n", "Name", "Offset")
	for _, v := range t.vars {
		if err != nil {
			break
		}
		_, err = fmt.Fprintf(w, "%6c%10d\n", v.Name, v.Offset)
	}
	return err
}
