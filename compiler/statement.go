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
	"github.com/Malien/luar-sub001/lerr"
	"github.com/Malien/luar-sub001/rvm"
)

func (fs *funcState) compileStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Assignment:
		return fs.compileAssignment(s)
	case *ast.Declaration:
		return fs.compileDeclaration(s)
	case *ast.Conditional:
		return fs.compileConditional(s)
	case *ast.WhileLoop:
		return fs.compileWhileLoop(s)
	case *ast.RepeatLoop:
		return fs.compileRepeatLoop(s)
	case *ast.CallStatement:
		return fs.compileCallStatement(s)
	case *ast.LocalFunctionDecl:
		return fs.compileLocalFunctionDecl(s)
	default:
		panic("compiler: unhandled statement type")
	}
}

func (fs *funcState) compileCallStatement(s *ast.CallStatement) error {
	switch call := s.Call.(type) {
	case *ast.FunctionCall:
		return fs.compileCall(call)
	case *ast.MethodCall:
		return lerr.Parse("method-call syntax is not implemented")
	default:
		panic("compiler: unhandled call-statement expression")
	}
}

// compileLocalFunctionDecl compiles `local function name(...) ... end`
// sugar: the block is reserved (so its id is known) before the body is
// compiled, the body binds name to that block for self-recursion (see
// compileFunctionBody), and the enclosing scope binds name to the same
// function value as an ordinary local so later statements can call it.
func (fs *funcState) compileLocalFunctionDecl(s *ast.LocalFunctionDecl) error {
	id := fs.machine.AddBlock(&rvm.CodeBlock{Name: s.Name, Kind: rvm.NamedFunction})
	block, err := compileFunctionBody(fs.machine, fs.global, s.Params, s.Body, s.Name, id, rvm.NamedFunction, s.Name)
	if err != nil {
		return err
	}
	*fs.machine.Blocks[id] = *block

	reg := fs.allocLocal()
	fs.emit(rvm.Instruction{Op: rvm.OpConstFn, A: int32(id)})
	fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: reg})
	fs.scope.define(s.Name, binding{idx: reg})
	return nil
}

// compileConditional lowers the full if/elseif*/else chain: ast.Conditional
// already models elseif recursively via ElseIfTail, so the else-branch of
// this function simply recurses on the nested Conditional, compiling every
// elseif clause rather than stopping at the first one.
func (fs *funcState) compileConditional(c *ast.Conditional) error {
	if err := fs.compileExpr(c.Condition); err != nil {
		return err
	}
	fs.emit(rvm.Instruction{Op: rvm.OpNilTest})
	elseJump := fs.emitJump(rvm.OpJmpEQ)

	fs.scope = newScope(fs.scope)
	err := fs.compileBlock(c.Body)
	fs.scope = fs.scope.parent
	if err != nil {
		return err
	}
	end := fs.emitJump(rvm.OpJmp)
	fs.patchJumpHere(elseJump)

	switch tail := c.Tail.(type) {
	case ast.EndTail:
	case ast.ElseTail:
		fs.scope = newScope(fs.scope)
		err := fs.compileBlock(tail.Body)
		fs.scope = fs.scope.parent
		if err != nil {
			return err
		}
	case ast.ElseIfTail:
		if err := fs.compileConditional(tail.Conditional); err != nil {
			return err
		}
	default:
		panic("compiler: unhandled conditional tail")
	}
	fs.patchJumpHere(end)
	return nil
}

func (fs *funcState) compileWhileLoop(w *ast.WhileLoop) error {
	start := fs.here()
	if err := fs.compileExpr(w.Condition); err != nil {
		return err
	}
	fs.emit(rvm.Instruction{Op: rvm.OpNilTest})
	exit := fs.emitJump(rvm.OpJmpEQ)

	fs.scope = newScope(fs.scope)
	err := fs.compileBlock(w.Body)
	fs.scope = fs.scope.parent
	if err != nil {
		return err
	}
	fs.emit(rvm.Instruction{Op: rvm.OpJmp, A: int32(start)})
	fs.patchJumpHere(exit)
	return nil
}

// compileRepeatLoop compiles the loop condition in the same child scope the
// body ran in, per ast.RepeatLoop's doc, and loops while the condition
// stays falsy.
func (fs *funcState) compileRepeatLoop(r *ast.RepeatLoop) error {
	start := fs.here()
	fs.scope = newScope(fs.scope)
	err := fs.compileBlock(r.Body)
	if err == nil {
		err = fs.compileExpr(r.Condition)
	}
	fs.scope = fs.scope.parent
	if err != nil {
		return err
	}
	fs.emit(rvm.Instruction{Op: rvm.OpNilTest})
	fs.emit(rvm.Instruction{Op: rvm.OpJmpEQ, A: int32(start)})
	return nil
}

func (fs *funcState) compileAssignment(s *ast.Assignment) error {
	regs, err := fs.compileMultiValueInto(len(s.Targets), s.Values)
	if err != nil {
		return err
	}
	for i, target := range s.Targets {
		if i < len(regs) {
			fs.emit(rvm.Instruction{Op: rvm.OpLdaLx, A: regs[i]})
		} else {
			fs.emit(rvm.Instruction{Op: rvm.OpConstN})
		}
		if err := fs.compileStore(target); err != nil {
			return err
		}
	}
	return nil
}

func (fs *funcState) compileDeclaration(s *ast.Declaration) error {
	regs, err := fs.compileMultiValueInto(len(s.Names), s.InitialValues)
	if err != nil {
		return err
	}
	for i, name := range s.Names {
		reg := fs.allocLocal()
		if i < len(regs) {
			reg = regs[i]
		}
		fs.scope.define(name, binding{idx: reg})
	}
	return nil
}

// compileMultiValueInto compiles values and returns totalNames registers
// (fewer only if a caller-supplied totalNames is itself larger than what
// values could ever fill, which never happens from compileAssignment or
// compileDeclaration). The last expression expands into all of its values
// when it is a call and more than one target remains unfilled by the
// "head" (every expression but the last contributes exactly one value);
// otherwise only its first value lands in the first remaining slot and any
// further targets default to Nil, matching the last-position multi-value
// rule §4.4 defines for the tree-walking backend, applied here at the
// register level.
func (fs *funcState) compileMultiValueInto(totalNames int, values []ast.Expression) ([]int32, error) {
	if len(values) == 0 {
		regs := make([]int32, totalNames)
		for i := range regs {
			regs[i] = fs.allocLocal()
		}
		return regs, nil
	}

	head := values[:len(values)-1]
	last := values[len(values)-1]
	headCount := len(head)
	tailCount := totalNames - headCount
	if tailCount < 0 {
		tailCount = 0
	}

	headRegs := make([]int32, headCount)
	for i, e := range head {
		if err := fs.compileExpr(e); err != nil {
			return nil, err
		}
		reg := fs.allocLocal()
		fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: reg})
		headRegs[i] = reg
	}

	tailRegs := make([]int32, tailCount)
	for i := range tailRegs {
		tailRegs[i] = fs.allocLocal()
	}

	if call, ok := last.(*ast.FunctionCall); ok && tailCount > 1 {
		if err := fs.compileCall(call); err != nil {
			return nil, err
		}
		for i := 0; i < tailCount; i++ {
			fs.emit(rvm.Instruction{Op: rvm.OpLdaProt, A: int32(i)})
			fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: tailRegs[i]})
		}
	} else {
		if err := fs.compileExpr(last); err != nil {
			return nil, err
		}
		if tailCount > 0 {
			fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: tailRegs[0]})
		}
	}

	return append(headRegs, tailRegs...), nil
}

// compileStore stores the current accumulator value into target.
func (fs *funcState) compileStore(target ast.Var) error {
	switch v := target.(type) {
	case ast.NamedVar:
		if b, ok := fs.scope.lookup(v.Name); ok {
			fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: b.idx})
			return nil
		}
		cell := fs.global.CellFor(v.Name)
		fs.emit(rvm.Instruction{Op: rvm.OpStrDGl, Cell: cell})
		return nil
	case *ast.MemberLookup:
		valReg := fs.allocLocal()
		fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: valReg})
		if err := fs.compileExpr(v.From); err != nil {
			return err
		}
		fromReg := fs.allocLocal()
		fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: fromReg})
		if err := fs.compileExpr(v.Key); err != nil {
			return err
		}
		keyReg := fs.allocLocal()
		fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: keyReg})
		fs.emit(rvm.Instruction{Op: rvm.OpLdaLx, A: valReg})
		fs.emit(rvm.Instruction{Op: rvm.OpTableSetIdx, A: fromReg, B: keyReg})
		return nil
	case *ast.PropertyAccess:
		valReg := fs.allocLocal()
		fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: valReg})
		if err := fs.compileExpr(v.From); err != nil {
			return err
		}
		fromReg := fs.allocLocal()
		fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: fromReg})
		id := fs.internString(v.Property)
		fs.emit(rvm.Instruction{Op: rvm.OpLdaLx, A: valReg})
		fs.emit(rvm.Instruction{Op: rvm.OpTablePropSet, A: fromReg, S: id})
		return nil
	default:
		panic("compiler: unhandled assignment target")
	}
}
