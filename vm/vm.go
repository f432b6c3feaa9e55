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
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

// Registers is the processor register file.
type Registers struct {
	PC int    // Program Counter
	SP int    // Stack Pointer
	FP int    // Frame Pointer
	HP int    // Heap Pointer
	GP int    // Global frame Pointer
	MP int    // Mark stack Pointer
	IR Opcode // Instruction Register
}

// Instance represents a PVM instance.
//
// An Instance owns its registers and working memory. The Image it was
// created with is never written to: every run starts from a fresh copy, so the
// same Instance may be run repeatedly.
type Instance struct {
	Registers
	image      Image
	mem        Memory
	heapBase   int
	stackBase  int
	pcNow      int
	status     Status
	insCount   int64
	inputs     []io.Reader
	input      *dataReader
	output     *pvmi.ErrWriter
	trace      *pvmi.ErrWriter
	traceStack bool
	log        commonlog.Logger
}

// Option interface
type Option func(*Instance) error

// Input appends r to the data sources read by INPI and INPB. Sources are read
// in the order they were added.
func Input(r io.Reader) Option {
	return func(i *Instance) error {
		if r == nil {
			return errors.New("nil input")
		}
		i.inputs = append(i.inputs, r)
		return nil
	}
}

// Output sets the writer for PRNI, PRNB, PRNS, PRNL and STK. The default is
// io.Discard. If w has a Flush() error method, it is called at the end of each
// run.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = pvmi.NewErrWriter(w)
		return nil
	}
}

// Trace enables per-instruction tracing to w. Passing nil disables tracing.
func Trace(w io.Writer) Option {
	return func(i *Instance) error {
		if w == nil {
			i.trace = nil
			return nil
		}
		i.trace = pvmi.NewErrWriter(w)
		return nil
	}
}

// TraceStack enables a stack dump before every traced instruction. It has no
// effect unless tracing is enabled.
func TraceStack(enable bool) Option {
	return func(i *Instance) error { i.traceStack = enable; return nil }
}

// Logger sets the logger used to report run start and termination.
func Logger(l commonlog.Logger) Option {
	return func(i *Instance) error {
		if l != nil {
			i.log = l
		}
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new PVM instance for the given image.
//
// Options will be set by calling SetOptions.
func New(img Image, opts ...Option) (*Instance, error) {
	if img.CodeLen <= 0 || img.CodeLen > img.Mem.Size() {
		return nil, errors.Errorf("invalid code length %d", img.CodeLen)
	}
	if img.InitSP < img.CodeLen || img.InitSP > img.Mem.Size() {
		return nil, errors.Errorf("invalid initial stack pointer %d", img.InitSP)
	}
	i := &Instance{
		image:  img,
		output: pvmi.NewErrWriter(io.Discard),
		log:    commonlog.GetLogger("calcpvm.vm"),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// reset prepares the instance for a run starting at pc.
func (i *Instance) reset(pc int) {
	img := i.image.Clone()
	i.mem = img.Mem
	i.stackBase = img.InitSP
	i.heapBase = img.CodeLen
	i.Registers = Registers{
		PC: pc,
		SP: i.stackBase,
		FP: i.stackBase,
		GP: i.stackBase,
		MP: i.stackBase,
		HP: i.heapBase,
	}
	i.status = Running
	i.insCount = 0
	if len(i.inputs) > 0 && i.input == nil {
		i.input = &dataReader{newRuneReader(io.MultiReader(i.inputs...))}
	}
}

// Status returns the processor status.
func (i *Instance) Status() Status {
	return i.status
}

// InstructionCount returns the number of instructions executed during the
// last run.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Mem returns the working memory of the last run. It is nil before the first
// run.
func (i *Instance) Mem() Memory {
	return i.mem
}

// Stack returns a copy of the stack contents, from the first pushed value
// (just below the initial stack pointer) to the top of stack.
func (i *Instance) Stack() []Cell {
	if i.mem == nil || i.SP >= i.stackBase || i.SP < 0 {
		return nil
	}
	s := make([]Cell, 0, i.stackBase-i.SP)
	for adr := i.stackBase - 1; adr >= i.SP; adr-- {
		s = append(s, i.mem[adr])
	}
	return s
}
