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

package driver

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/Malien/luar-sub001/ast"
	"github.com/Malien/luar-sub001/compiler"
	"github.com/Malien/luar-sub001/eval"
	"github.com/Malien/luar-sub001/global"
	"github.com/Malien/luar-sub001/rvm"
	"github.com/Malien/luar-sub001/stdlib"
	"github.com/Malien/luar-sub001/syn"
	"github.com/Malien/luar-sub001/value"
)

// Machine is a ready-to-use embedding of both backends over one shared
// global store: a tree-walking Evaluator and a register machine a module
// can be compiled into, per §6.3's "either walk it... or compile it and
// call the resulting block". Native functions registered through Native or
// Stdout land in Global directly, so both backends see the same builtins
// without a separate install step for each.
type Machine struct {
	Global   *global.Store
	Eval     *eval.Evaluator
	Register *rvm.Machine
}

// Option configures a Machine at construction time.
type Option func(*Machine)

// Stdout sets the writer print's output goes to. Defaults to os.Stdout.
func Stdout(w io.Writer) Option {
	return func(m *Machine) { stdlib.Install(m.Eval, w) }
}

// Native registers a host-provided native function under name, for
// embedders extending the builtin set.
func Native(name string, n *value.Native) Option {
	return func(m *Machine) { m.Eval.RegisterNative(name, n) }
}

// New constructs a Machine with the standard builtins already installed,
// writing print's output to os.Stdout unless overridden by a Stdout
// Option.
func New(opts ...Option) *Machine {
	g := global.NewStore()
	m := &Machine{Global: g, Eval: eval.New(g), Register: rvm.New(g)}
	stdlib.Install(m.Eval, os.Stdout)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RunSource parses src as a module and evaluates it with the tree-walking
// backend.
func (m *Machine) RunSource(src string) (value.Return, error) {
	mod, err := syn.Parse(src)
	if err != nil {
		return value.NoReturn, err
	}
	return m.RunModule(mod)
}

// RunModule evaluates an already-parsed module with the tree-walking
// backend.
func (m *Machine) RunModule(mod *ast.Module) (value.Return, error) {
	return m.Eval.EvalModule(mod)
}

// CompileModule compiles mod into m.Register, returning the id of its
// entry block. The block stays addressable for repeated calls via
// m.Register.Call.
func (m *Machine) CompileModule(mod *ast.Module) (value.BlockID, error) {
	return compiler.Compile(m.Register, m.Global, mod)
}

// RunCompiled parses src, compiles it into the register machine, and runs
// it once — the compiled-backend counterpart to RunSource.
func (m *Machine) RunCompiled(src string) (value.Return, error) {
	mod, err := syn.Parse(src)
	if err != nil {
		return value.NoReturn, err
	}
	id, err := m.CompileModule(mod)
	if err != nil {
		return value.NoReturn, err
	}
	return m.Register.Call(id, nil)
}

// ErrArity reports that a Return did not carry the number of values a
// Strict collector required.
type ErrArity struct {
	Want int
	Got  int
}

func (e *ErrArity) Error() string {
	return errors.Errorf("expected %d return value(s), got %d", e.Want, e.Got).Error()
}

// Collect reduces ret to a single host-side Value, the rule used
// everywhere a caller wants "the" result of a call: Nil if ret is empty,
// otherwise its first value.
func Collect(ret value.Return) value.Value {
	return ret.First()
}

// CollectAll exposes every value ret carries, for hosts that want the full
// multi-value result (e.g. to print all of a REPL line's results).
func CollectAll(ret value.Return) []value.Value {
	return ret.Values()
}

// CollectStrict asserts that ret carries exactly want values and returns
// them, or an *ErrArity if it does not.
func CollectStrict(ret value.Return, want int) ([]value.Value, error) {
	if ret.Len() != want {
		return nil, &ErrArity{Want: want, Got: ret.Len()}
	}
	return ret.Values(), nil
}

// CollectOneStrict is CollectStrict specialized to the common case of
// wanting exactly one return value.
func CollectOneStrict(ret value.Return) (value.Value, error) {
	vs, err := CollectStrict(ret, 1)
	if err != nil {
		return value.Value{}, err
	}
	return vs[0], nil
}
