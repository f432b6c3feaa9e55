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
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/g19m7057/calcpvm/codegen"
	"github.com/g19m7057/calcpvm/vm"
)

const maxErrors = 10

// ErrAsmEntry is a single assembly error.
type ErrAsmEntry struct {
	Pos scanner.Position
	Msg string
}

// ErrAsm is the error type returned by Assemble.
type ErrAsm []ErrAsmEntry

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i, v := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(v.Pos.String())
		b.WriteString(": ")
		b.WriteString(v.Msg)
	}
	return b.String()
}

type label struct {
	*codegen.Label
	pos  scanner.Position // definition, or first use while pending
	used bool
}

type parser struct {
	g      *codegen.Generator
	s      scanner.Scanner
	labels map[string]*label
	errs   ErrAsm
	warn   io.Writer
	done   bool
}

func newParser() *parser {
	p := &parser{labels: make(map[string]*label)}
	p.g = codegen.New(p)
	return p
}

// pos returns the position of the last scanned token.
func (p *parser) pos() scanner.Position {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	return pos
}

func (p *parser) errorAt(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrAsmEntry{pos, msg})
	}
}

func (p *parser) error(msg string) {
	p.errorAt(p.pos(), msg)
}

func (p *parser) warningAt(pos scanner.Position, msg string) {
	if p.warn != nil {
		io.WriteString(p.warn, pos.String()+": warning: "+msg+"\n")
	}
}

// Report implements codegen.Reporter.
func (p *parser) Report(sev codegen.Severity, msg string) {
	if sev == codegen.Error {
		p.error(msg)
	} else {
		p.warningAt(p.pos(), msg)
	}
}

// Parse does the parsing and code generation.
func (p *parser) Parse(name string, r io.Reader) error {
	p.s.Init(r)
	p.s.Filename = name
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanComments | scanner.SkipComments
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(msg)
	}

	for tok := p.s.Scan(); !p.done && tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		switch tok {
		case '{':
			p.annotation()
		case scanner.Ident:
			p.ident(p.s.TokenText())
		default:
			p.error("unexpected " + scanner.TokenString(tok))
		}
	}

	// unresolved and unused labels, reported in source order
	var list []*label
	names := make(map[*label]string)
	for n, l := range p.labels {
		list = append(list, l)
		names[l] = n
	}
	sort.Slice(list, func(i, j int) bool { return list[i].pos.Offset < list[j].pos.Offset })
	for _, l := range list {
		switch {
		case !l.Defined():
			p.errorAt(l.pos, "undefined label "+names[l])
		case !l.used:
			p.warningAt(l.pos, "label "+names[l]+" is never used")
		}
	}

	if len(p.errs) == 0 && !p.g.Successful() {
		p.error("no code generated")
	}
	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}

// annotation checks a { address } annotation against the current code
// address.
func (p *parser) annotation() {
	if p.s.Scan() != scanner.Int {
		p.error("expected address, got " + p.s.TokenText())
		return
	}
	n, err := strconv.Atoi(p.s.TokenText())
	if err != nil {
		p.error(err.Error())
		return
	}
	if p.s.Scan() != '}' {
		p.error("expected }, got " + p.s.TokenText())
		return
	}
	if n != p.g.CodeLength() {
		p.error("address annotation {" + strconv.Itoa(n) + "} does not match code address " + strconv.Itoa(p.g.CodeLength()))
	}
}

func (p *parser) ident(s string) {
	if p.s.Peek() == ':' {
		p.s.Next()
		p.define(s)
		return
	}
	switch strings.ToUpper(s) {
	case "ASSEM", "BEGIN":
		return
	case "END":
		if p.s.Scan() != '.' {
			p.error("expected . after END")
		}
		p.done = true
		return
	}
	op, ok := vm.Lookup(s)
	if !ok {
		p.error("unknown mnemonic " + s)
		return
	}
	if !op.HasOperand() {
		p.g.OneWord(s)
		return
	}
	p.operand(s, op)
}

func (p *parser) operand(mnemonic string, op vm.Opcode) {
	tok := p.s.Scan()
	sign := 1
	switch tok {
	case '-':
		sign = -1
		tok = p.s.Scan()
	case '+':
		tok = p.s.Scan()
	}
	switch {
	case tok == scanner.Int:
		n, err := strconv.ParseInt(p.s.TokenText(), 0, 32)
		if err != nil {
			p.error("bad operand " + p.s.TokenText())
			return
		}
		p.g.TwoWord(mnemonic, sign*int(n))
	case tok == scanner.Ident && sign == 1:
		p.g.BranchTo(mnemonic, p.use(p.s.TokenText()))
	case tok == '"' && sign == 1 && op == vm.OpPrns:
		s, ok := p.str()
		if ok {
			p.g.WriteString(s)
		}
	default:
		p.error("bad operand for " + mnemonic + ": " + p.s.TokenText())
	}
}

// str reads the body of a string literal after its opening quote and
// returns it unescaped.
func (p *parser) str() (string, bool) {
	pos := p.pos()
	var raw strings.Builder
	for {
		ch := p.s.Next()
		switch ch {
		case scanner.EOF, '\n':
			p.errorAt(pos, "unterminated string literal")
			return "", false
		case '"':
			s, err := Unescape(raw.String())
			if err != nil {
				p.errorAt(pos, err.Error())
				return "", false
			}
			return s, true
		case '\\':
			raw.WriteRune(ch)
			ch = p.s.Next()
			if ch == scanner.EOF {
				p.errorAt(pos, "unterminated string literal")
				return "", false
			}
		}
		raw.WriteRune(ch)
	}
}

func (p *parser) define(name string) {
	l := p.labels[name]
	switch {
	case l == nil:
		p.labels[name] = &label{Label: p.g.NewLabel(true), pos: p.pos()}
	case l.Defined():
		p.error("label redefinition: " + name + ", previous definition here: " + l.pos.String())
	default:
		l.Here()
		l.pos = p.pos()
	}
}

func (p *parser) use(name string) *codegen.Label {
	l := p.labels[name]
	if l == nil {
		l = &label{Label: p.g.NewLabel(false), pos: p.pos()}
		p.labels[name] = l
	}
	l.used = true
	return l.Label
}
