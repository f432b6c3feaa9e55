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
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/g19m7057/calcpvm/asm"
	"github.com/g19m7057/calcpvm/vm"
	"github.com/google/uuid"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// runConfig holds the settings of a single interpretation.
type runConfig struct {
	trace      bool
	traceStack bool
	data       string
	results    string
}

var (
	debug     bool
	listing   bool
	noWarn    bool
	yes       bool
	verbosity int
	rc        runConfig

	log = commonlog.GetLogger("calcpvm")
)

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	os.Exit(1)
}

// codName returns the name of the listing file for the given source file.
func codName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".cod"
}

func assemble(name string) (vm.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return vm.Image{}, err
	}
	defer f.Close()
	var opts []asm.Option
	if !noWarn {
		opts = append(opts, asm.Warnings(os.Stderr))
	}
	return asm.Assemble(name, bufio.NewReader(f), opts...)
}

func writeListing(name string, img vm.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "listing")
	}
	w := bufio.NewWriter(f)
	err = asm.DisassembleAll(img, w)
	if err == nil {
		err = w.Flush()
	}
	if e := f.Close(); err == nil {
		err = e
	}
	return errors.Wrapf(err, "listing %s", name)
}

// interpret runs img once. A run time fault is reported on the results file
// and is not an error.
func interpret(img vm.Image, stdin io.Reader, c runConfig) (err error) {
	id := uuid.NewString()
	in := stdin
	if c.data != "" {
		f, e := os.Open(c.data)
		if e != nil {
			return errors.Wrap(e, "data file")
		}
		defer f.Close()
		in = f
	}
	var out io.Writer = os.Stdout
	if c.results != "" {
		f, e := os.Create(c.results)
		if e != nil {
			return errors.Wrap(e, "results file")
		}
		defer func() {
			if e := f.Close(); err == nil && e != nil {
				err = errors.Wrap(e, "results file")
			}
		}()
		out = f
	}
	w := bufio.NewWriter(out)
	opts := []vm.Option{
		vm.Input(in),
		vm.Output(w),
		vm.Logger(commonlog.NewKeyValueLogger(log, "run", id)),
	}
	if c.trace {
		opts = append(opts, vm.Trace(w), vm.TraceStack(c.traceStack))
	}
	i, err := vm.New(img, opts...)
	if err != nil {
		return err
	}
	err = i.Run()
	fmt.Fprintf(os.Stdout, "\n\n%d operations. \n", i.InstructionCount())
	if f, ok := errors.Cause(err).(*vm.Fault); ok {
		fmt.Fprintf(w, "\n%v\n", f)
		err = w.Flush()
	}
	log.Infof("run %s: %d operations, %v", id, i.InstructionCount(), i.Status())
	return err
}

// session asks whether and how to interpret img until the user declines.
func session(img vm.Image) error {
	p := newPrompter(os.Stdout)
	defer p.Close()
	if yes {
		return interpret(img, p.stdin(), rc)
	}
	for {
		c, err := p.key("\n\nInterpret [y/N]? ")
		if err != nil || c != 'Y' {
			return err
		}
		r := rc
		if c, err = p.key("\nTrace execution (y/N/q)? "); err != nil {
			return err
		}
		if c == 'Q' {
			continue
		}
		r.trace = c == 'Y'
		r.traceStack = false
		if r.trace {
			if c, err = p.key("\nTrace Stack (y/N)? "); err != nil {
				return err
			}
			r.traceStack = c == 'Y'
		}
		if r.data, err = p.file("\nData file [STDIN] ? "); err != nil {
			return err
		}
		if r.results, err = p.file("\nResults file [STDOUT] ? "); err != nil {
			return err
		}
		if err = interpret(img, p.stdin(), r); err != nil {
			return err
		}
	}
}

func main() {
	var err error
	defer func() {
		if err == io.EOF || err == liner.ErrPromptAborted {
			err = nil
		}
		atExit(err)
	}()

	configName := flag.String("config", "", "read settings from `file` (default "+defaultConfig+")")
	flag.BoolVar(&listing, "c", false, "list object code to the .cod file")
	flag.BoolVar(&debug, "d", false, "enable debug diagnostics")
	flag.BoolVar(&noWarn, "w", false, "suppress warnings")
	flag.BoolVar(&rc.trace, "trace", false, "trace execution")
	flag.BoolVar(&rc.traceStack, "stack", false, "dump the stack on every traced instruction")
	flag.StringVar(&rc.data, "data", "", "read program input from `file`")
	flag.StringVar(&rc.results, "results", "", "write program output to `file`")
	flag.BoolVar(&yes, "y", false, "interpret once without asking")
	flag.IntVar(&verbosity, "v", 0, "log verbosity")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		err = errors.New("no input file specified")
		return
	}

	cfg, err := loadConfig(*configName, *configName != "")
	if err != nil {
		return
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["c"] {
		listing = cfg.Listing.Enabled
	}
	if !set["trace"] {
		rc.trace = cfg.Run.Trace
	}
	if !set["stack"] {
		rc.traceStack = cfg.Run.TraceStack
	}
	if !set["data"] {
		rc.data = cfg.Run.Data
	}
	if !set["results"] {
		rc.results = cfg.Run.Results
	}
	if !set["v"] {
		verbosity = cfg.Log.Verbosity
	}
	commonlog.Configure(verbosity, nil)

	name := flag.Arg(0)
	img, err := assemble(name)
	if err != nil {
		if _, ok := err.(asm.ErrAsm); ok {
			fmt.Fprintln(os.Stderr, err)
			err = errors.New("Unable to interpret code")
		}
		return
	}
	log.Infof("%s: %d words of code, initial SP %d", name, img.CodeLen, img.InitSP)

	if listing {
		if err = writeListing(codName(name), img); err != nil {
			return
		}
	}
	err = session(img)
}
