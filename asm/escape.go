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

package asm

import (
	"strings"

	"github.com/pkg/errors"
)

var escapes = map[rune]string{
	'\\': `\\`,
	'"':  `\"`,
	'\'': `\'`,
	'\b': `\b`,
	'\t': `\t`,
	'\n': `\n`,
	'\f': `\f`,
	'\r': `\r`,
}

var unescapes = map[byte]rune{
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
	'b':  '\b',
	't':  '\t',
	'n':  '\n',
	'f':  '\f',
	'r':  '\r',
}

// Escape replaces the characters \ " ' and the control characters
// \b \t \n \f \r in s by their escape sequences. Other characters are left
// as is.
func Escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if e, ok := escapes[r]; ok {
			b.WriteString(e)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Unescape is the inverse of Escape. A backslash followed by any character
// other than the ones produced by Escape stands for that character; a
// trailing lone backslash is an error.
func Unescape(s string) (string, error) {
	if strings.IndexByte(s, '\\') < 0 {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return b.String(), errors.New("unterminated escape sequence")
		}
		if r, ok := unescapes[s[i]]; ok {
			b.WriteRune(r)
		} else {
			b.WriteByte(s[i])
		}
	}
	return b.String(), nil
}
