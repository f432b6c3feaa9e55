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
	"strconv"

	"github.com/g19m7057/calcpvm/asm"
	"github.com/g19m7057/calcpvm/vm"
	"github.com/pkg/errors"
)

// ParseInt converts the text of an integer literal. Values that do not fit
// in a vm.Cell are reported as "number too large" and yield 0.
func (c *Compiler) ParseInt(text string) int {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil || n > vm.MaxInt {
		c.Gen.SemError("number too large")
		return 0
	}
	return int(n)
}

// StringLiteral returns the value of a quoted string literal.
func StringLiteral(text string) (string, error) {
	if len(text) < 2 || text[0] != text[len(text)-1] || (text[0] != '"' && text[0] != '\'') {
		return "", errors.Errorf("malformed string literal %s", text)
	}
	s, err := asm.Unescape(text[1 : len(text)-1])
	return s, errors.Wrap(err, "bad string literal")
}
