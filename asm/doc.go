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


// Package asm provides utility functions to assemble and disassemble PVM
// code.
//
// The disassembler produces a code listing, one instruction per line, each
// prefixed by its address:
//
//	ASSEM
//	BEGIN
//	  {    0 } DSP     26
//	  {    2 } LDA     0
//	  {    4 } LDC     5
//	  {    6 } STO
//	  {    7 } PRNS     "a\tb\n"
//	  {    9 } HALT
//	END.
//
// The assembler reads the same format back, so a listing can be edited and
// reassembled. The ASSEM, BEGIN and END. keywords are optional.
//
// Address annotations:
//
// A number between braces, i.e. '{' and '}', is checked against the address
// of the next instruction. It is an error if they differ. Annotations may be
// omitted.
//
// Labels:
//
// An identifier immediately followed by a colon defines a label at the
// current address:
//
//	loop:	LDL	0
//		BZE	done
//		...
//		BRN	loop
//	done:	HALT
//
// Any instruction that takes an operand accepts a label name in place of a
// number. Labels may be used before they are defined. Labels that are defined
// but never referenced produce a warning when the Warnings option is given.
//
// Strings:
//
// PRNS takes either an address or a double quoted string literal. Literals
// are placed in the string pool at the top of memory. The escape sequences
// \\ \" \' \b \t \n \f and \r are recognized.
//
// Comments:
//
// Go style comments, // to the end of the line and /* ... */, are ignored.
package asm
