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

package eval

import (
	"github.com/Malien/luar-sub001/ast"
	"github.com/Malien/luar-sub001/global"
	"github.com/Malien/luar-sub001/lerr"
	"github.com/Malien/luar-sub001/scope"
	"github.com/Malien/luar-sub001/value"
)

// funcDef is a user function's body as the tree-walking backend stores it:
// enough to bind parameters and run Body on a fresh scope stack.
type funcDef struct {
	name     string
	params   []string
	body     ast.Block
	selfName string // non-empty for `local function` sugar's recursive self-binding
}

// Evaluator runs ast.Modules against a global.Store, maintaining its own
// table of compiled-nowhere function bodies addressed by value.BlockID.
type Evaluator struct {
	Global *global.Store
	funcs  []funcDef
}

// New creates an Evaluator backed by g. Multiple Evaluators may share a
// Store only if the host is careful about function-table collisions; the
// common case is one Evaluator per Store.
func New(g *global.Store) *Evaluator {
	return &Evaluator{Global: g}
}

// Option configures an Evaluator at construction time, in the teacher's
// functional-options style.
type Option func(*Evaluator)

// NewWithOptions creates an Evaluator backed by g and applies opts.
func NewWithOptions(g *global.Store, opts ...Option) *Evaluator {
	e := New(g)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterNative installs a native function under name in the global
// store, for embedders wiring in host callables (the stdlib package uses
// this to install print, tonumber, and friends).
func (e *Evaluator) RegisterNative(name string, n *value.Native) {
	e.Global.Set(name, value.NativeFunc(n))
}

// WithNative returns an Option that installs a native function at
// construction time.
func WithNative(name string, n *value.Native) Option {
	return func(e *Evaluator) { e.RegisterNative(name, n) }
}

func (e *Evaluator) registerFunc(def funcDef) value.BlockID {
	id := value.BlockID(len(e.funcs))
	e.funcs = append(e.funcs, def)
	return id
}

// EvalModule evaluates m against e's global store and returns its trailing
// return value, per §6.3's module-evaluation entry point.
func (e *Evaluator) EvalModule(m *ast.Module) (value.Return, error) {
	local := scope.NewStack(e.Global).Top()

	for _, chunk := range m.Chunks {
		decl, ok := chunk.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		id := e.registerFunc(funcDef{name: decl.Name, params: decl.Params, body: decl.Body})
		e.Global.Set(decl.Name, value.Func(id))
	}

	for _, chunk := range m.Chunks {
		stmt, ok := chunk.(ast.Statement)
		if !ok {
			continue
		}
		ret, returned, err := e.evalStatement(stmt, local)
		if err != nil {
			return value.NoReturn, err
		}
		if returned {
			return ret, nil
		}
	}

	if m.Ret != nil {
		return e.evalExpressionList(m.Ret.Values, local)
	}
	return value.NoReturn, nil
}

// CallFunction invokes fn with args, per the "polymorphic capability"
// design note of §9: a user Function runs its body on a fresh, disjoint
// scope stack; a NativeFunction runs its Go closure directly.
func (e *Evaluator) CallFunction(fn value.Value, args []value.Value) (value.Return, error) {
	switch fn.Kind {
	case value.NativeFunction:
		return fn.Fn.Call(args)
	case value.Function:
		return e.callUserFunction(fn.Block, args)
	default:
		return value.NoReturn, lerr.IsNotCallable(fn)
	}
}

func (e *Evaluator) callUserFunction(id value.BlockID, args []value.Value) (value.Return, error) {
	def := e.funcs[id]
	local := scope.NewStack(e.Global).Top()
	for i, p := range def.params {
		if i < len(args) {
			local.DeclareLocal(p, args[i])
		} else {
			local.DeclareLocal(p, value.NilValue)
		}
	}
	if def.selfName != "" {
		local.DeclareLocal(def.selfName, value.Func(id))
	}
	ret, returned, err := e.evalBlockStatements(def.body, local)
	if err != nil {
		return value.NoReturn, err
	}
	if returned {
		return ret, nil
	}
	return value.NoReturn, nil
}

// evalBlockStatements runs a block's statements followed by its trailing
// return, reporting whether a return (explicit, or propagated from a
// nested construct) fired.
func (e *Evaluator) evalBlockStatements(b ast.Block, local scope.Local) (value.Return, bool, error) {
	for _, stmt := range b.Statements {
		ret, returned, err := e.evalStatement(stmt, local)
		if err != nil {
			return value.NoReturn, false, err
		}
		if returned {
			return ret, true, nil
		}
	}
	if b.Ret != nil {
		ret, err := e.evalExpressionList(b.Ret.Values, local)
		if err != nil {
			return value.NoReturn, false, err
		}
		return ret, true, nil
	}
	return value.NoReturn, false, nil
}
