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

package asm_test

import (
	"os"
	"strings"

	"github.com/g19m7057/calcpvm/asm"
)

func ExampleDisassembleAll() {
	code := `
	DSP 1
	LDC 3 STL 0
top:	LDL 0 PRNI
	LDA 0 DEC
	LDL 0 BZE end
	BRN top
end:	PRNS "\tdone\n"
	HALT`
	img, err := asm.Assemble("example", strings.NewReader(code))
	if err != nil {
		panic(err)
	}
	if err = asm.DisassembleAll(img, os.Stdout); err != nil {
		panic(err)
	}

	// Output:
	// ASSEM
	// BEGIN
	//   {    0 } DSP     1
	//   {    2 } LDC     3
	//   {    4 } STL     0
	//   {    6 } LDL     0
	//   {    8 } PRNI
	//   {    9 } LDA     0
	//   {   11 } DEC
	//   {   12 } LDL     0
	//   {   14 } BZE     18
	//   {   16 } BRN     6
	//   {   18 } PRNS     "\tdone\n"
	//   {   20 } HALT
	// END.
}
