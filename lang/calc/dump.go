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
	"io"
	"strconv"

	"github.com/g19m7057/calcpvm/vm"
)

// DumpVars writes the value of every variable in t after a run of i, one
// "name = value" line per variable. Variables that lie below the final stack
// pointer are not shown.
func DumpVars(i *vm.Instance, t *Table, w io.Writer) error {
	stk := i.Stack()
	b := make([]byte, 0, 16)
	for _, v := range t.Vars() {
		if v.Offset >= len(stk) {
			break
		}
		b = append(append(b[:0], string(v.Name)...), " = "...)
		b = strconv.AppendInt(b, int64(stk[v.Offset]), 10)
		b = append(b, '\n')
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}
