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


// Package vm implements the PVM, a word addressed stack machine for the
// calculator language.
//
// The machine has a single Memory shared by three regions: code at the
// bottom, a heap growing upward from the end of the code, and a stack growing
// downward from just below the string literals stored at the top of memory.
// Programs compute raw addresses; every instruction that produces or uses an
// address checks it against the region boundaries and faults rather than
// corrupting memory.
//
// Run time errors do not unwind: the instruction that detects a violation
// sets the processor Status and the interpreter loop stops after that
// instruction. Run reports the terminal status as a *Fault.
//
// Opcodes:
//
//	opcode	asm	arg	description
//	------	---	---	------------------------------------------------------------
//	1	NOP		no-op
//	2	DSP	✓	SP -= arg; a positive arg reserves and zeroes, a negative one discards
//	3	LDC	✓	push arg
//	4	LDA	✓	push FP-1-arg
//	5	LDV		pop address, push the value stored there
//	6	STO		pop value, pop address, store value at address
//	7	LDXA		pop index, pop heap handle, push element address
//	8	INPI		pop address, read an integer into it
//	9	PRNI		pop and write an integer
//	10	INPB		pop address, read a boolean into it
//	11	PRNB		pop and write a boolean
//	12	PRNS	✓	write the descending string starting at arg
//	13	PRNL		write a newline
//	14	NEG		integer negation
//	15..19	ADD SUB MUL DIV REM	pop b, pop a, push a op b
//	20	NOT		logical negation
//	21, 22	AND OR	pop b, pop a, push a op b
//	23..28	CEQ CNE CLT CLE CGT CGE	pop b, pop a, push 1 if a op b, else 0
//	29	BRN	✓	jump to arg
//	30	BZE	✓	pop, jump to arg if 0
//	31	ANEW		pop size, allocate a heap block, push its handle
//	32	HALT		stop
//	33	STK		dump the stack
//	35	LDL	✓	push the value at FP-1-arg
//	36	STL	✓	pop into FP-1-arg
//	37	INC		pop address, increment the value stored there
//	38	DEC		pop address, decrement the value stored there
//
// Heap blocks are laid out as a size word followed by the elements; the
// handle pushed by ANEW is the address of the first element.
package vm
