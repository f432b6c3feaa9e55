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
	"io"

	"github.com/g19m7057/calcpvm/internal/pvmi"
)

// stackDump writes the local variable and evaluation stack area, from the
// initial stack pointer down to SP, eight entries per line.
func (i *Instance) stackDump(w *pvmi.ErrWriter, pcNow int) {
	w.Printf("\nStack dump at %d FP:%4d SP:%4d\n", pcNow, i.FP, i.SP)
	onLine := 0
	for adr := i.stackBase - 1; adr >= i.SP && adr >= 0; adr-- {
		w.Printf("%7d%5d", adr, i.mem[adr])
		onLine++
		if onLine%8 == 0 {
			w.Write([]byte{'\n'})
		}
	}
	w.Write([]byte{'\n'})
}

// traceStep writes the register snapshot and the decoded instruction. It is
// called after the opcode fetch, so PC points at the operand word, if any.
func (i *Instance) traceStep() {
	w := i.trace
	if i.traceStack {
		i.stackDump(w, i.pcNow)
	}
	w.Printf(" PC:%5d FP:%5d SP:%5d HP:%5d TOS:", i.pcNow, i.FP, i.SP, i.HP)
	if i.mem.Contains(i.SP) {
		w.Printf("%5d", i.mem[i.SP])
	} else {
		w.WriteString(" ????")
	}
	w.Printf("  %-8s", i.IR.String())
	if i.IR.HasOperand() && i.mem.Contains(i.PC) {
		w.Printf("%7d", i.mem[i.PC])
	}
	w.Write([]byte{'\n'})
}

// DumpStack writes the stack area of the last run to w, in the format used
// by the STK instruction.
func (i *Instance) DumpStack(w io.Writer) error {
	if i.mem == nil {
		return nil
	}
	ew := pvmi.NewErrWriter(w)
	i.stackDump(ew, i.pcNow)
	return ew.Err
}
