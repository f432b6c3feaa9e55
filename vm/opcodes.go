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

import "strings"

// Opcode is a PVM machine instruction code.
type Opcode Cell

// PVM opcodes. The numbering leaves gaps: 0 and every value between OpDec and
// OpNul are unassigned and fault as illegal opcodes when executed.
const (
	OpNop Opcode = iota + 1
	OpDsp
	OpLdc
	OpLda
	OpLdv
	OpSto
	OpLdxa
	OpInpi
	OpPrni
	OpInpb
	OpPrnb
	OpPrns
	OpPrnl
	OpNeg
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpNot
	OpAnd
	OpOr
	OpCeq
	OpCne
	OpClt
	OpCle
	OpCgt
	OpCge
	OpBrn
	OpBze
	OpAnew
	OpHalt
	OpStk
	OpHeap
	OpLdl
	OpStl
	OpInc
	OpDec

	// OpNul is returned by Lookup for unknown mnemonics. It also bounds the
	// opcode table.
	OpNul Opcode = 99
)

// NumOpcodes is the size of the opcode table.
const NumOpcodes = int(OpNul) + 1

type opInfo struct {
	name    string
	operand bool
}

var opcodes = [NumOpcodes]opInfo{
	OpNop:  {"NOP", false},
	OpDsp:  {"DSP", true},
	OpLdc:  {"LDC", true},
	OpLda:  {"LDA", true},
	OpLdv:  {"LDV", false},
	OpSto:  {"STO", false},
	OpLdxa: {"LDXA", false},
	OpInpi: {"INPI", false},
	OpPrni: {"PRNI", false},
	OpInpb: {"INPB", false},
	OpPrnb: {"PRNB", false},
	OpPrns: {"PRNS", true},
	OpPrnl: {"PRNL", false},
	OpNeg:  {"NEG", false},
	OpAdd:  {"ADD", false},
	OpSub:  {"SUB", false},
	OpMul:  {"MUL", false},
	OpDiv:  {"DIV", false},
	OpRem:  {"REM", false},
	OpNot:  {"NOT", false},
	OpAnd:  {"AND", false},
	OpOr:   {"OR", false},
	OpCeq:  {"CEQ", false},
	OpCne:  {"CNE", false},
	OpClt:  {"CLT", false},
	OpCle:  {"CLE", false},
	OpCgt:  {"CGT", false},
	OpCge:  {"CGE", false},
	OpBrn:  {"BRN", true},
	OpBze:  {"BZE", true},
	OpAnew: {"ANEW", false},
	OpHalt: {"HALT", false},
	OpStk:  {"STK", false},
	OpHeap: {"HEAP", false},
	OpLdl:  {"LDL", true},
	OpStl:  {"STL", true},
	OpInc:  {"INC", false},
	OpDec:  {"DEC", false},
	OpNul:  {"NUL", false},
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for i, v := range opcodes {
		if v.name != "" {
			opcodeIndex[v.name] = Opcode(i)
		}
	}
}

// Valid returns true if op has an entry in the opcode table.
func (op Opcode) Valid() bool {
	return op >= 0 && int(op) < NumOpcodes && opcodes[op].name != ""
}

// String returns the mnemonic for op, or an empty string for unassigned
// values.
func (op Opcode) String() string {
	if op < 0 || int(op) >= NumOpcodes {
		return ""
	}
	return opcodes[op].name
}

// HasOperand returns true if op is followed by one operand word.
func (op Opcode) HasOperand() bool {
	return op.Valid() && opcodes[op].operand
}

// Lookup returns the opcode for the given mnemonic. The match is case
// insensitive. Unknown mnemonics return OpNul and false.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := opcodeIndex[strings.ToUpper(mnemonic)]
	if !ok {
		return OpNul, false
	}
	return op, true
}

// Reduce maps any cell value into the opcode table range. Listings of
// corrupted or partially generated code use it to keep going.
func Reduce(c Cell) Opcode {
	op := c % Cell(NumOpcodes)
	if op < 0 {
		op += Cell(NumOpcodes)
	}
	return Opcode(op)
}
