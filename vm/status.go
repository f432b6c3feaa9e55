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

import "strconv"

// Status is the processor status. Every value other than Running is
// terminal.
type Status int

// Processor status values.
const (
	Running  Status = iota
	Finished        // HALT executed
	BadMem          // memory access out of bounds, stack underflow or heap/stack collision
	BadData         // input could not be parsed
	NoData          // input exhausted
	DivZero         // division or remainder by zero
	BadOp           // unassigned opcode
	BadInd          // heap subscript out of range
	BadVal          // multiplication overflow
	BadAdr          // control transfer outside the code region
	BadAll          // heap allocation failure
	NullRef         // heap access through address 0
)

var statusText = [...]string{
	Running:  "Running",
	Finished: "Finished",
	BadMem:   "Memory violation",
	BadData:  "Invalid data",
	NoData:   "No more data",
	DivZero:  "Division by zero",
	BadOp:    "Illegal opcode",
	BadInd:   "Subscript out of range",
	BadVal:   "Value out of range",
	BadAdr:   "Bad address",
	BadAll:   "Heap allocation error",
	NullRef:  "Null reference",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusText) {
		return "Interpreter error!"
	}
	return statusText[s]
}

// Fault is returned by Run when the program terminates with any status other
// than Finished.
type Fault struct {
	Status Status
	PC     int   // address of the faulting instruction
	Count  int64 // instructions executed, including the faulting one
}

func (f *Fault) Error() string {
	return f.Status.String() + " at " + strconv.Itoa(f.PC)
}
