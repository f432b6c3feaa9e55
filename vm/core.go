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
	"strconv"

	"github.com/pkg/errors"
)

// fault sets the processor status unless it is already terminal.
func (i *Instance) fault(s Status) {
	if i.status == Running {
		i.status = s
	}
}

func (i *Instance) load(adr int) Cell {
	if !i.mem.Contains(adr) {
		i.fault(BadMem)
		return 0
	}
	return i.mem[adr]
}

func (i *Instance) store(adr int, v Cell) {
	if !i.mem.Contains(adr) {
		i.fault(BadMem)
		return
	}
	i.mem[adr] = v
}

// next fetches the word at PC and bumps PC.
func (i *Instance) next() Cell {
	v := i.load(i.PC)
	i.PC++
	return v
}

// inBounds checks that p lies in [heapBase, memSize]. It returns false if p
// is out of bounds or if the processor has already faulted.
func (i *Instance) inBounds(p int) bool {
	if p < i.heapBase || p > i.mem.Size() {
		i.fault(BadMem)
	}
	return i.status == Running
}

// Push pushes v on the stack. Pushing into the heap faults and leaves memory
// untouched.
func (i *Instance) push(v Cell) {
	i.SP--
	if i.SP < i.HP {
		i.fault(BadMem)
		return
	}
	i.store(i.SP, v)
}

// pop pops the top of stack. Popping past the frame pointer faults, but the
// word at SP is still returned and SP still moves, so the current instruction
// completes with that value before the loop notices the fault.
func (i *Instance) pop() Cell {
	if i.SP == i.FP {
		i.fault(BadMem)
	}
	v := i.load(i.SP)
	i.SP++
	return v
}

func (i *Instance) jump(target int) {
	i.PC = target
	if target < 0 || target >= i.heapBase {
		i.fault(BadAdr)
	}
}

func bool2Cell(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

var handlers = [NumOpcodes]func(*Instance){
	OpNop:  func(*Instance) {},
	OpDsp:  (*Instance).dsp,
	OpLdc:  func(i *Instance) { i.push(i.next()) },
	OpLda:  (*Instance).lda,
	OpLdv:  func(i *Instance) { i.push(i.load(int(i.pop()))) },
	OpSto:  (*Instance).sto,
	OpLdxa: (*Instance).ldxa,
	OpInpi: (*Instance).inpi,
	OpPrni: (*Instance).prni,
	OpInpb: (*Instance).inpb,
	OpPrnb: (*Instance).prnb,
	OpPrns: (*Instance).prns,
	OpPrnl: func(i *Instance) { i.output.Write([]byte{'\n'}) },
	OpNeg:  func(i *Instance) { i.push(-i.pop()) },
	OpAdd:  func(i *Instance) { a, b := i.pop2(); i.push(a + b) },
	OpSub:  func(i *Instance) { a, b := i.pop2(); i.push(a - b) },
	OpMul:  (*Instance).mul,
	OpDiv:  (*Instance).div,
	OpRem:  (*Instance).rem,
	OpNot:  func(i *Instance) { i.push(bool2Cell(i.pop() == 0)) },
	OpAnd:  func(i *Instance) { a, b := i.pop2(); i.push(a & b) },
	OpOr:   func(i *Instance) { a, b := i.pop2(); i.push(a | b) },
	OpCeq:  func(i *Instance) { a, b := i.pop2(); i.push(bool2Cell(a == b)) },
	OpCne:  func(i *Instance) { a, b := i.pop2(); i.push(bool2Cell(a != b)) },
	OpClt:  func(i *Instance) { a, b := i.pop2(); i.push(bool2Cell(a < b)) },
	OpCle:  func(i *Instance) { a, b := i.pop2(); i.push(bool2Cell(a <= b)) },
	OpCgt:  func(i *Instance) { a, b := i.pop2(); i.push(bool2Cell(a > b)) },
	OpCge:  func(i *Instance) { a, b := i.pop2(); i.push(bool2Cell(a >= b)) },
	OpBrn:  func(i *Instance) { i.jump(int(i.next())) },
	OpBze:  (*Instance).bze,
	OpAnew: (*Instance).anew,
	OpHalt: func(i *Instance) { i.status = Finished },
	OpStk:  func(i *Instance) { i.stackDump(i.output, i.pcNow) },
	OpLdl:  (*Instance).ldl,
	OpStl:  (*Instance).stl,
	OpInc:  func(i *Instance) { i.addTo(1) },
	OpDec:  func(i *Instance) { i.addTo(-1) },
}

// pop2 pops b then a, for an instruction computing a op b.
func (i *Instance) pop2() (a, b Cell) {
	b = i.pop()
	a = i.pop()
	return a, b
}

func (i *Instance) local() int {
	return i.FP - 1 - int(i.next())
}

func (i *Instance) dsp() {
	n := int(i.next())
	i.SP -= n
	if i.SP < i.HP {
		i.fault(BadMem)
		return
	}
	if i.inBounds(i.SP) {
		for k := 0; k < n; k++ {
			i.mem[i.SP+k] = 0
		}
	}
}

func (i *Instance) lda() {
	adr := i.local()
	if i.inBounds(adr) {
		i.push(Cell(adr))
	}
}

func (i *Instance) ldl() {
	adr := i.local()
	if i.inBounds(adr) {
		i.push(i.mem[adr])
	}
}

func (i *Instance) stl() {
	adr := i.local()
	if i.inBounds(adr) {
		i.mem[adr] = i.pop()
	}
}

func (i *Instance) sto() {
	v := i.pop()
	adr := int(i.pop())
	if i.inBounds(adr) {
		i.mem[adr] = v
	}
}

func (i *Instance) addTo(delta Cell) {
	adr := int(i.pop())
	if i.inBounds(adr) {
		i.mem[adr] += delta
	}
}

// ldxa pops an index and a heap handle and pushes the element address.
func (i *Instance) ldxa() {
	idx := int(i.pop())
	h := int(i.pop())
	switch {
	case h == 0:
		i.fault(NullRef)
	case h-1 < i.heapBase || h >= i.HP:
		i.fault(BadMem)
	case idx < 0 || idx >= int(i.mem[h-1]):
		i.fault(BadInd)
	default:
		adr := h + idx
		if i.inBounds(adr) {
			i.push(Cell(adr))
		}
	}
}

// anew pops a size, allocates a block [size][elements...] at HP and pushes
// the address of its first element.
func (i *Instance) anew() {
	size := int(i.pop())
	if size <= 0 || size+1 > i.SP-i.HP-2 {
		i.fault(BadAll)
		return
	}
	base := i.HP
	if !i.inBounds(base) {
		return
	}
	i.mem[base] = Cell(size)
	for k := 1; k <= size; k++ {
		i.mem[base+k] = 0
	}
	i.HP += size + 1
	i.push(Cell(base + 1))
}

func (i *Instance) mul() {
	a, b := i.pop2()
	if b != 0 && abs(int64(a)) > MaxInt/abs(int64(b)) {
		i.fault(BadVal)
		return
	}
	i.push(a * b)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func (i *Instance) div() {
	a, b := i.pop2()
	if b == 0 {
		i.fault(DivZero)
		return
	}
	i.push(a / b)
}

func (i *Instance) rem() {
	a, b := i.pop2()
	if b == 0 {
		i.fault(DivZero)
		return
	}
	i.push(a % b)
}

func (i *Instance) bze() {
	target := int(i.next())
	if i.pop() == 0 {
		i.jump(target)
	}
}

func (i *Instance) inpi() {
	adr := int(i.pop())
	if !i.inBounds(adr) {
		return
	}
	v, st := i.input.readInt()
	i.mem[adr] = v
	i.fault(st)
}

func (i *Instance) inpb() {
	adr := int(i.pop())
	if !i.inBounds(adr) {
		return
	}
	v, st := i.input.readBool()
	i.mem[adr] = v
	i.fault(st)
}

// padding precedes traced output so that it stands out from trace lines.
const padding = "                                                               "

func (i *Instance) beginOutput() {
	if i.trace != nil {
		i.output.WriteString(padding)
	}
}

func (i *Instance) endOutput() {
	if i.trace != nil {
		i.output.Write([]byte{'\n'})
	}
}

func (i *Instance) prni() {
	i.beginOutput()
	i.output.WriteString(strconv.Itoa(int(i.pop())))
	i.endOutput()
}

func (i *Instance) prnb() {
	i.beginOutput()
	if i.pop() != 0 {
		i.output.WriteString(" true  ")
	} else {
		i.output.WriteString(" false ")
	}
	i.endOutput()
}

// prns writes the descending string starting at the operand address.
func (i *Instance) prns() {
	i.beginOutput()
	adr := int(i.next())
	var b []byte
	for i.status == Running && i.load(adr) != 0 {
		b = appendRune(b, i.mem[adr])
		adr--
		if adr < i.stackBase {
			i.fault(BadMem)
		}
	}
	i.output.Write(b)
	i.endOutput()
}

// Run starts execution of the program at address 0. See RunFrom.
func (i *Instance) Run() error {
	return i.RunFrom(0)
}

// RunFrom resets the registers and executes the image starting at pc until
// the program halts or faults.
//
// Run returns nil if the program executed HALT. If it faulted, the returned
// error is a *Fault holding the status and the address of the faulting
// instruction. Output write errors are returned as is.
func (i *Instance) RunFrom(pc int) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = errors.Errorf("recovered: %v @pc=%d/%d, sp=%d, hp=%d", e, i.pcNow, i.heapBase, i.SP, i.HP)
		}
	}()
	i.reset(pc)
	i.log.Debugf("run: pc=%d code=%d sp=%d", pc, i.heapBase, i.stackBase)
	for i.status == Running {
		i.pcNow = i.PC
		if i.PC < 0 || i.PC >= i.heapBase {
			i.fault(BadAdr)
			break
		}
		i.IR = Opcode(i.next())
		i.insCount++
		if i.trace != nil {
			i.traceStep()
		}
		if i.IR < 0 || int(i.IR) >= NumOpcodes || handlers[i.IR] == nil {
			i.fault(BadOp)
			continue
		}
		handlers[i.IR](i)
	}
	i.log.Debugf("run: %d operations, status %v", i.insCount, i.status)
	if err = i.output.Flush(); err != nil {
		return err
	}
	if i.trace != nil {
		if err = i.trace.Flush(); err != nil {
			return err
		}
	}
	if i.status != Finished {
		return &Fault{Status: i.status, PC: i.pcNow, Count: i.insCount}
	}
	return nil
}
