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

package codegen

import (
	"fmt"
	"strings"
)

// Severity of a Diagnostic.
type Severity int

// Severities.
const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single message reported during compilation.
type Diagnostic struct {
	Line, Col int
	Msg       string
	Severity  Severity
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Col, d.Severity, d.Msg)
}

// Reporter receives diagnostics. Reporting never interrupts code generation;
// the reporter is expected to attach the current source position.
type Reporter interface {
	Report(sev Severity, msg string)
}

// Diagnostics is a Reporter that collects diagnostics. The front end calls
// At as it advances through the source so that messages are tagged with the
// position of the token being processed.
type Diagnostics struct {
	line, col int
	list      []Diagnostic
	errors    int
	noWarn    bool
}

// At sets the position used for subsequent reports.
func (d *Diagnostics) At(line, col int) {
	d.line, d.col = line, col
}

// SetWarnings enables or disables the recording of warnings. Warnings are
// enabled by default.
func (d *Diagnostics) SetWarnings(enable bool) {
	d.noWarn = !enable
}

// Report implements Reporter.
func (d *Diagnostics) Report(sev Severity, msg string) {
	if sev == Warning && d.noWarn {
		return
	}
	if sev == Error {
		d.errors++
	}
	d.list = append(d.list, Diagnostic{d.line, d.col, msg, sev})
}

// List returns all recorded diagnostics in report order.
func (d *Diagnostics) List() []Diagnostic {
	return d.list
}

// Errors returns the number of errors reported.
func (d *Diagnostics) Errors() int {
	return d.errors
}

// Warnings returns the number of warnings recorded.
func (d *Diagnostics) Warnings() int {
	return len(d.list) - d.errors
}

// Err returns nil if no error was reported, or an error listing all
// diagnostics otherwise.
func (d *Diagnostics) Err() error {
	if d.errors == 0 {
		return nil
	}
	return ErrList(d.list)
}

// ErrList is a list of diagnostics returned as an error.
type ErrList []Diagnostic

func (l ErrList) Error() string {
	s := make([]string, len(l))
	for i, d := range l {
		s[i] = d.String()
	}
	return strings.Join(s, "\n")
}
