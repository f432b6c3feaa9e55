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
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"
)

func newRuneReader(r io.Reader) io.RuneReader {
	switch rr := r.(type) {
	case nil:
		return nil
	case io.RuneReader:
		return rr
	default:
		return bufio.NewReader(r)
	}
}

// dataReader reads white space separated integer and boolean tokens for the
// INPI and INPB instructions.
type dataReader struct {
	r io.RuneReader
}

func (d *dataReader) token() (string, error) {
	if d == nil || d.r == nil {
		return "", io.EOF
	}
	var (
		b   strings.Builder
		r   rune
		err error
	)
	for {
		r, _, err = d.r.ReadRune()
		if err != nil {
			return "", err
		}
		if !unicode.IsSpace(r) {
			break
		}
	}
	for err == nil && !unicode.IsSpace(r) {
		b.WriteRune(r)
		r, _, err = d.r.ReadRune()
	}
	if err == io.EOF {
		err = nil
	}
	return b.String(), err
}

// readInt returns the next integer. On failure, the returned Status is NoData
// if the input is exhausted and BadData otherwise.
func (d *dataReader) readInt() (Cell, Status) {
	t, err := d.token()
	if err != nil {
		if err == io.EOF {
			return 0, NoData
		}
		return 0, BadData
	}
	n, err := strconv.ParseInt(t, 10, 32)
	if err != nil {
		return 0, BadData
	}
	return Cell(n), Running
}

// readBool returns 1 for "true" and 0 for "false", in any letter case.
func (d *dataReader) readBool() (Cell, Status) {
	t, err := d.token()
	if err != nil {
		if err == io.EOF {
			return 0, NoData
		}
		return 0, BadData
	}
	switch {
	case strings.EqualFold(t, "true"):
		return 1, Running
	case strings.EqualFold(t, "false"):
		return 0, Running
	}
	return 0, BadData
}
