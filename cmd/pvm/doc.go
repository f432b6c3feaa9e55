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

// The pvm command assembles a PVM assembly listing and interprets it.
//
// Usage:
//
//	pvm [flags] source
//
//	-c
//		  list object code to the .cod file
//	-config file
//		  read settings from file (default pvm.toml)
//	-d
//		  enable debug diagnostics
//	-data file
//		  read program input from file
//	-results file
//		  write program output to file
//	-stack
//		  dump the stack on every traced instruction
//	-trace
//		  trace execution
//	-v int
//		  log verbosity
//	-w
//		  suppress warnings
//	-y
//		  interpret once without asking
//
// The source is in the listing format written by -c, so that the output of a
// compiler front end can be edited and run again. See package
// github.com/g19m7057/calcpvm/asm for the syntax.
//
// Unless -y is given, pvm asks "Interpret [y/N]?" and, for each run, whether
// to trace execution and which data and results files to use. An empty file
// name stands for standard input or output. The same code is interpreted on
// every run. After each run, pvm prints the number of operations executed
// and, if the program did not halt normally, the run time error and the
// address of the faulting instruction.
//
// -d: will print a full stacktrace should pvm fail.
//
// Settings may also be read from a TOML file. Flags given on the command line
// take precedence:
//
//	[run]
//	trace = false
//	trace_stack = false
//	data = ""
//	results = ""
//
//	[listing]
//	enabled = false
//
//	[log]
//	verbosity = 0
//
// pvm exits with status 1 if the source cannot be assembled.
package main
