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
	"bytes"
	"strings"
	"testing"

	"github.com/g19m7057/calcpvm/asm"
	"github.com/g19m7057/calcpvm/vm"
)

func TestEscape(t *testing.T) {
	data := []struct{ in, out string }{
		{"plain", "plain"},
		{"\n", `\n`},
		{"\t", `\t`},
		{"\r", `\r`},
		{"\b", `\b`},
		{"\f", `\f`},
		{`\`, `\\`},
		{`"`, `\"`},
		{`'`, `\'`},
		{"a\tb\n", `a\tb\n`},
		{"héllo\x00", "héllo\x00"},
	}
	for _, d := range data {
		if s := asm.Escape(d.in); s != d.out {
			t.Errorf("Escape(%q): expected %q, got %q", d.in, d.out, s)
		}
		s, err := asm.Unescape(d.out)
		if err != nil {
			t.Errorf("Unescape(%q): %v", d.out, err)
		}
		if s != d.in {
			t.Errorf("Unescape(%q): expected %q, got %q", d.out, d.in, s)
		}
	}
	if s, _ := asm.Unescape(`\q`); s != "q" {
		t.Errorf("expected q, got %q", s)
	}
	if _, err := asm.Unescape(`abc\`); err == nil {
		t.Error("expected error on trailing backslash")
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"\n", "\t", "\r", "\b", "\f", `\`, `"`, `'`, "mixed \"quotes\" and 'ticks'\r\n"} {
		code := `PRNS "` + asm.Escape(s) + `" HALT`
		img, err := asm.Assemble("roundtrip", strings.NewReader(code))
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		var b bytes.Buffer
		if _, err = asm.Disassemble(img.Mem, 0, &b); err != nil {
			t.Fatal(err)
		}
		l := strings.TrimPrefix(b.String(), "PRNS")
		l = strings.TrimSpace(l)
		if len(l) < 2 || l[0] != '"' || l[len(l)-1] != '"' {
			t.Fatalf("%q: bad listing %q", s, b.String())
		}
		u, err := asm.Unescape(l[1 : len(l)-1])
		if err != nil {
			t.Fatal(err)
		}
		if u != s {
			t.Errorf("expected %q, got %q", s, u)
		}

		var out bytes.Buffer
		i, err := vm.New(img, vm.Output(&out))
		if err != nil {
			t.Fatal(err)
		}
		if err = i.Run(); err != nil {
			t.Fatal(err)
		}
		if out.String() != s {
			t.Errorf("run: expected %q, got %q", s, out.String())
		}
	}
}

func TestListing(t *testing.T) {
	code := `
	// count down from 3
	ASSEM
	BEGIN
	  {    0 } DSP     1
	  {    2 } LDC     3
	  {    4 } STL     0
	top:
	  {    6 } LDL     0
	  {    8 } LDC     0
	  {   10 } CGT
	  {   11 } BZE     end
	  {   13 } LDL     0
	  {   15 } PRNI
	  {   16 } PRNS    "\t"
	  {   18 } LDA     0
	  {   20 } DEC
	  {   21 } BRN     top
	end:
	  {   23 } HALT
	END.
	anything after END. is ignored`
	img, err := asm.Assemble("listing", strings.NewReader(code))
	if err != nil {
		t.Fatal(err)
	}
	if img.CodeLen != 24 {
		t.Fatalf("expected code length 24, got %d", img.CodeLen)
	}
	var b bytes.Buffer
	if err = asm.DisassembleAll(img, &b); err != nil {
		t.Fatal(err)
	}
	exp := []string{
		"ASSEM",
		"BEGIN",
		"  {    0 } DSP     1",
		"  {    2 } LDC     3",
		"  {    4 } STL     0",
		"  {    6 } LDL     0",
		"  {    8 } LDC     0",
		"  {   10 } CGT",
		"  {   11 } BZE     23",
		"  {   13 } LDL     0",
		"  {   15 } PRNI",
		`  {   16 } PRNS     "\t"`,
		"  {   18 } LDA     0",
		"  {   20 } DEC",
		"  {   21 } BRN     6",
		"  {   23 } HALT",
		"END.",
		"",
	}
	lines := strings.Split(b.String(), "\n")
	if len(lines) != len(exp) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(exp), len(lines), b.String())
	}
	for i := range exp {
		if l := strings.TrimRight(lines[i], " "); l != exp[i] {
			t.Errorf("line %d: expected %q, got %q", i, exp[i], l)
		}
	}

	// the listing assembles back to the same code
	img2, err := asm.Assemble("relisting", &b)
	if err != nil {
		t.Fatal(err)
	}
	if img2.CodeLen != img.CodeLen || img2.InitSP != img.InitSP {
		t.Fatalf("code length or SP mismatch: %d/%d, %d/%d", img2.CodeLen, img.CodeLen, img2.InitSP, img.InitSP)
	}
	for i := 0; i < len(img.Mem); i++ {
		if img.Mem[i] != img2.Mem[i] {
			t.Fatalf("mismatch at %d: %d != %d", i, img.Mem[i], img2.Mem[i])
		}
	}
}

func TestDisassembleCorrupt(t *testing.T) {
	mem := []vm.Cell{vm.Cell(vm.OpHalt) + vm.Cell(vm.NumOpcodes), -vm.Cell(vm.NumOpcodes) + vm.Cell(vm.OpNop), 50, vm.Cell(vm.OpLdc)}
	exp := []string{"HALT", "NOP", "", "LDC     ???"}
	for pc := 0; pc < len(mem); {
		var b bytes.Buffer
		next, err := asm.Disassemble(mem, pc, &b)
		if err != nil {
			t.Fatal(err)
		}
		if b.String() != exp[pc] {
			t.Errorf("%d: expected %q, got %q", pc, exp[pc], b.String())
		}
		pc = next
	}
	if vm.Reduce(-1) != vm.OpNul {
		t.Errorf("Reduce(-1) = %d", vm.Reduce(-1))
	}
}

// check some errors. We're not checking the messages, rather that they point at
// the correct place.
func TestAssemble_errors(t *testing.T) {
	code := `LDC ;
	FOO 3
	BRN nowhere
	dup: dup: HALT
	{ 7 } PRNS "open
	`
	_, err := asm.Assemble("test_errors", strings.NewReader(code))
	errs, ok := err.(asm.ErrAsm)
	if !ok {
		t.Fatalf("expected ErrAsm, got %v", err)
	}
	exp := []struct {
		line int
		msg  string
	}{
		{1, "bad operand for LDC: ;"},
		{2, "unknown mnemonic FOO"},
		{2, "unexpected Int"},
		{4, "label redefinition: dup, previous definition here: test_errors:4:2"},
		{5, "address annotation {7} does not match code address 3"},
		{5, "unterminated string literal"},
		{3, "undefined label nowhere"},
	}
	if len(errs) != len(exp) {
		t.Fatalf("expected %d errors, got %d:\n%v", len(exp), len(errs), err)
	}
	for i, e := range exp {
		if errs[i].Pos.Line != e.line || errs[i].Msg != e.msg {
			t.Errorf("error %d: expected %d: %s, got %s", i, e.line, e.msg, errs[i].Pos.String()+": "+errs[i].Msg)
		}
	}

	if _, err = asm.Assemble("empty", strings.NewReader("ASSEM BEGIN END.")); err == nil || !strings.Contains(err.Error(), "no code generated") {
		t.Errorf("expected no code error, got %v", err)
	}
}

func TestWarnings(t *testing.T) {
	var w bytes.Buffer
	_, err := asm.Assemble("warn", strings.NewReader("unused: NOP\nused: NOP BRN used"), asm.Warnings(&w))
	if err != nil {
		t.Fatal(err)
	}
	if s := w.String(); s != "warn:1:1: warning: label unused is never used\n" {
		t.Errorf("unexpected warnings %q", s)
	}
}
