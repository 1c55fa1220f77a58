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

package compiler

import (
	"github.com/Malien/luar-sub001/ast"
	"github.com/Malien/luar-sub001/global"
	"github.com/Malien/luar-sub001/rvm"
	"github.com/Malien/luar-sub001/value"
)

// binding resolves a name to a local register. Parameters are spilled into
// locals at function entry (see compileFunctionBody) precisely so that
// every resolved name, argument or declared local alike, is read and
// written through the same per-call local slot rather than through the
// machine's argument-register window, which is reused by every call a
// function body makes and so cannot hold a live value across one.
type binding struct {
	idx int32
}

// scope is a parent-linked map stack; lookup walks innermost to outermost
// and falls back to the global store (via funcState.global.CellFor) when a
// name is bound nowhere in the chain. Functions never close over an
// enclosing call's scope — every funcState starts a fresh, parentless
// scope, matching eval.Evaluator giving every call its own scope.Stack.
type scope struct {
	parent *scope
	vars   map[string]binding
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[string]binding)}
}

func (s *scope) define(name string, b binding) {
	s.vars[name] = b
}

func (s *scope) lookup(name string) (binding, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.vars[name]; ok {
			return b, true
		}
	}
	return binding{}, false
}

// funcState accumulates one CodeBlock's worth of instructions and interned
// strings while compiling a single function body (or the module's
// top-level chunk sequence).
type funcState struct {
	machine *rvm.Machine
	global  *global.Store

	instr     []rvm.Instruction
	strings   []string
	stringIdx map[string]int

	localCount int32
	argCount   int

	scope *scope

	returnArity rvm.ReturnArity
	sawReturn   bool
}

// recordReturnArity folds a newly compiled return site's arity into
// fs.returnArity. The zero ReturnArity is Unbounded, and Join always
// widens an Unbounded operand straight through — so the first return site
// seen is recorded directly rather than Joined, or every block's arity
// would collapse to Unbounded on the very first return.
func (fs *funcState) recordReturnArity(a rvm.ReturnArity) {
	if !fs.sawReturn {
		fs.returnArity = a
		fs.sawReturn = true
		return
	}
	fs.returnArity = fs.returnArity.Join(a)
}

func newFuncState(m *rvm.Machine, g *global.Store, argCount int) *funcState {
	return &funcState{
		machine:   m,
		global:    g,
		stringIdx: make(map[string]int),
		argCount:  argCount,
		scope:     newScope(nil),
	}
}

func (fs *funcState) emit(i rvm.Instruction) int {
	fs.instr = append(fs.instr, i)
	return len(fs.instr) - 1
}

func (fs *funcState) emitJump(op rvm.Opcode) int {
	return fs.emit(rvm.Instruction{Op: op})
}

func (fs *funcState) here() int {
	return len(fs.instr)
}

func (fs *funcState) patchJumpHere(idx int) {
	fs.instr[idx].A = int32(len(fs.instr))
}

func (fs *funcState) allocLocal() int32 {
	id := fs.localCount
	fs.localCount++
	return id
}

func (fs *funcState) internString(s string) int {
	if id, ok := fs.stringIdx[s]; ok {
		return id
	}
	id := len(fs.strings)
	fs.strings = append(fs.strings, s)
	fs.stringIdx[s] = id
	return id
}

// Compile lowers mod into the module's top-level CodeBlock, registering a
// CodeBlock for every top-level function declaration along the way.
// Function declarations are registered before any top-level statement is
// compiled — so the top-level block's own instructions begin with a
// ConstFn/StrDGl pair per declaration — mirroring eval.EvalModule's
// two-pass predeclaration that lets top-level functions call each other
// regardless of source order.
func Compile(m *rvm.Machine, g *global.Store, mod *ast.Module) (value.BlockID, error) {
	top := newFuncState(m, g, 0)

	type pending struct {
		decl *ast.FunctionDeclaration
		id   value.BlockID
	}
	var pendings []pending
	for _, chunk := range mod.Chunks {
		decl, ok := chunk.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		id := m.AddBlock(&rvm.CodeBlock{Name: decl.Name, Kind: rvm.NamedFunction})
		cell := g.CellFor(decl.Name)
		top.emit(rvm.Instruction{Op: rvm.OpConstFn, A: int32(id)})
		top.emit(rvm.Instruction{Op: rvm.OpStrDGl, Cell: cell})
		pendings = append(pendings, pending{decl: decl, id: id})
	}

	for _, p := range pendings {
		block, err := compileFunctionBody(m, g, p.decl.Params, p.decl.Body, "", 0, rvm.NamedFunction, p.decl.Name)
		if err != nil {
			return 0, err
		}
		*m.Blocks[p.id] = *block
	}

	for _, chunk := range mod.Chunks {
		stmt, ok := chunk.(ast.Statement)
		if !ok {
			continue
		}
		if err := top.compileStatement(stmt); err != nil {
			return 0, err
		}
	}

	if mod.Ret != nil {
		if err := top.compileReturn(mod.Ret.Values); err != nil {
			return 0, err
		}
	} else {
		top.emit(rvm.Instruction{Op: rvm.OpConstI, I: 0})
		top.emit(rvm.Instruction{Op: rvm.OpStrVC})
		top.emit(rvm.Instruction{Op: rvm.OpRet})
		top.recordReturnArity(rvm.ReturnArity{Kind: rvm.Constant, N: 0})
	}

	topBlock := &rvm.CodeBlock{
		Name:          "<module>",
		Kind:          rvm.TopLevel,
		Instructions:  top.instr,
		Strings:       top.strings,
		ArgumentCount: 0,
		LocalCount:    int(top.localCount),
		ReturnArity:   top.returnArity,
	}
	return m.AddBlock(topBlock), nil
}

// compileFunctionBody compiles a function's parameter list and body into a
// fresh CodeBlock. Every parameter is spilled out of its incoming argument
// register into a dedicated local in the same breath the `local function`
// self-binding below uses for its own Function value: the argument-register
// window is shared machine-wide across every call a body makes (or receives
// a return through), so a parameter left resolving straight to OpLdaRx would
// read whatever the most recent nested call left behind instead of the
// value it was called with. Locals are per-frame and don't have that
// problem. When selfName is non-empty the block starts by binding its own
// Function value, addressed by selfBlock, under that name as a local — the
// `local function` self-recursion trick: the block's id is reserved and
// known before compilation starts, so a ConstFn referencing it can be
// emitted before the body (which may call the name recursively) is compiled
// at all.
func compileFunctionBody(m *rvm.Machine, g *global.Store, params []string, body ast.Block, selfName string, selfBlock value.BlockID, kind rvm.FunctionKind, name string) (*rvm.CodeBlock, error) {
	fs := newFuncState(m, g, len(params))
	for i, p := range params {
		reg := fs.allocLocal()
		fs.emit(rvm.Instruction{Op: rvm.OpLdaRx, A: int32(i)})
		fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: reg})
		fs.scope.define(p, binding{idx: reg})
	}
	if selfName != "" {
		reg := fs.allocLocal()
		fs.emit(rvm.Instruction{Op: rvm.OpConstFn, A: int32(selfBlock)})
		fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: reg})
		fs.scope.define(selfName, binding{idx: reg})
	}

	if err := fs.compileBlock(body); err != nil {
		return nil, err
	}
	if body.Ret == nil {
		fs.emit(rvm.Instruction{Op: rvm.OpConstI, I: 0})
		fs.emit(rvm.Instruction{Op: rvm.OpStrVC})
		fs.emit(rvm.Instruction{Op: rvm.OpRet})
		fs.recordReturnArity(rvm.ReturnArity{Kind: rvm.Constant, N: 0})
	}

	return &rvm.CodeBlock{
		Name:          name,
		Kind:          kind,
		Instructions:  fs.instr,
		Strings:       fs.strings,
		ArgumentCount: len(params),
		LocalCount:    int(fs.localCount),
		ReturnArity:   fs.returnArity,
	}, nil
}

func (fs *funcState) compileBlock(b ast.Block) error {
	for _, stmt := range b.Statements {
		if err := fs.compileStatement(stmt); err != nil {
			return err
		}
	}
	if b.Ret != nil {
		return fs.compileReturn(b.Ret.Values)
	}
	return nil
}
