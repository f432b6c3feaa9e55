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

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/peterh/liner"
)

// prompter asks the interactive questions. On a terminal, yes/no questions
// take a single keystroke and file names are read with line editing and
// completion. Otherwise every answer is a line of standard input.
type prompter struct {
	out  io.Writer
	tty  bool
	line *liner.State
	in   *bufio.Reader
}

func newPrompter(out io.Writer) *prompter {
	p := &prompter{out: out, tty: isTerminal(os.Stdin) && liner.TerminalSupported()}
	if p.tty {
		p.line = liner.NewLiner()
		p.line.SetCtrlCAborts(true)
		p.line.SetCompleter(completeFile)
	} else {
		p.in = bufio.NewReader(os.Stdin)
	}
	return p
}

// stdin returns the reader to use for program data read from standard
// input.
func (p *prompter) stdin() io.Reader {
	if p.in != nil {
		return p.in
	}
	return os.Stdin
}

func (p *prompter) Close() error {
	if p.line != nil {
		return p.line.Close()
	}
	return nil
}

// key asks a question answered by a single character and returns it in
// upper case. An empty answer returns ' '.
func (p *prompter) key(prompt string) (byte, error) {
	fmt.Fprint(p.out, prompt)
	var c byte
	if p.tty {
		restore, err := setRawIO(os.Stdin)
		if err != nil {
			return 0, err
		}
		var b [1]byte
		_, err = os.Stdin.Read(b[:])
		restore()
		if err != nil {
			return 0, err
		}
		c = b[0]
		if c >= ' ' {
			fmt.Fprintf(p.out, "%c", c)
		}
		fmt.Fprintln(p.out)
	} else {
		s, err := p.readLine()
		if err != nil && s == "" {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return ' ', nil
		}
		c = s[0]
	}
	if c < ' ' {
		return ' ', nil
	}
	return byte(unicode.ToUpper(rune(c))), nil
}

// file asks for a file name. An empty answer returns "".
func (p *prompter) file(prompt string) (string, error) {
	if p.tty {
		rest := strings.TrimLeft(prompt, "\n")
		fmt.Fprint(p.out, prompt[:len(prompt)-len(rest)])
		s, err := p.line.Prompt(rest)
		if err != nil {
			return "", err
		}
		s = strings.TrimSpace(s)
		if s != "" {
			p.line.AppendHistory(s)
		}
		return s, nil
	}
	fmt.Fprint(p.out, prompt)
	s, err := p.readLine()
	if err != nil && s == "" {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func (p *prompter) readLine() (string, error) {
	s, err := p.in.ReadString('\n')
	if err == io.EOF && s != "" {
		err = nil
	}
	return strings.TrimRight(s, "\r\n"), err
}

// completeFile completes line as a file name.
func completeFile(line string) []string {
	m, err := filepath.Glob(line + "*")
	if err != nil {
		return nil
	}
	for i, f := range m {
		if fi, err := os.Stat(f); err == nil && fi.IsDir() {
			m[i] = f + string(filepath.Separator)
		}
	}
	return m
}
