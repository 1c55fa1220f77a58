// This file is part of luar-sub001 - https://github.com/Malien/luar-sub001
//
// Copyright 2024 The luar-sub001 Authors
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
	"os"

	"github.com/Malien/luar-sub001/driver"
	"github.com/Malien/luar-sub001/value"
)

var (
	noRawIO  bool
	debug    bool
	compiled bool
)

func atExit(err error) {
	if err == nil {
		return
	}
	if debug {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(1)
}

func main() {
	flag.BoolVar(&noRawIO, "noraw", false, "disable raw terminal IO in the REPL")
	flag.BoolVar(&debug, "debug", false, "print the full error chain instead of just its message")
	flag.BoolVar(&compiled, "compiled", false, "run through the register-machine compiler instead of the tree-walking evaluator")
	flag.Parse()

	if flag.NArg() > 0 {
		atExit(runFile(flag.Arg(0)))
		return
	}
	runREPL()
}

func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	m := driver.New()
	run := m.RunSource
	if compiled {
		run = m.RunCompiled
	}
	ret, err := run(string(src))
	if err != nil {
		return err
	}
	printReturn(os.Stdout, ret)
	return nil
}

func printReturn(w *os.File, ret value.Return) {
	vs := driver.CollectAll(ret)
	if len(vs) == 0 {
		fmt.Fprintln(w, value.NilValue.String())
		return
	}
	for i, v := range vs {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, v.String())
	}
	fmt.Fprintln(w)
}

func runREPL() {
	raw := false
	var tearDown func()
	if !noRawIO {
		var err error
		tearDown, err = setRawIO()
		if err == nil {
			raw = true
			defer tearDown()
		}
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	reader := newLineReader(raw, os.Stdin, out)
	m := driver.New(driver.Stdout(out))
	run := m.RunSource
	if compiled {
		run = m.RunCompiled
	}

	for {
		fmt.Fprint(out, ">>> ")
		out.Flush()
		line, err := reader.readLine()
		if err != nil {
			return
		}
		ret, err := run(line)
		if err != nil {
			if debug {
				fmt.Fprintf(out, "%+v\n", err)
			} else {
				fmt.Fprintf(out, "%v\n", err)
			}
			out.Flush()
			continue
		}
		vs := driver.CollectAll(ret)
		if len(vs) == 0 {
			out.Flush()
			continue
		}
		for i, v := range vs {
			if i > 0 {
				fmt.Fprint(out, "\t")
			}
			fmt.Fprint(out, v.String())
		}
		fmt.Fprintln(out)
		out.Flush()
	}
}
