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

// compileExpr compiles expr so its value ends up in the dynamic
// accumulator. A *ast.FunctionCall always yields its first result only here
// (via LdaProt(0)) — multi-value expansion only ever happens at the few
// last-position sites compileMultiValueInto and compileReturn implement
// explicitly, matching the original register compiler this machine is
// modeled on, which never expands a call used as a plain sub-expression
// either.
func (fs *funcState) compileExpr(e ast.Expression) error {
	switch x := e.(type) {
	case ast.NilLiteral:
		fs.emit(rvm.Instruction{Op: rvm.OpConstN})
		return nil
	case ast.IntLiteral:
		fs.emit(rvm.Instruction{Op: rvm.OpConstI, I: x.Value})
		fs.emit(rvm.Instruction{Op: rvm.OpWrapI})
		return nil
	case ast.FloatLiteral:
		fs.emit(rvm.Instruction{Op: rvm.OpConstF, F: x.Value})
		fs.emit(rvm.Instruction{Op: rvm.OpWrapF})
		return nil
	case ast.StringLiteral:
		id := fs.internString(x.Value)
		fs.emit(rvm.Instruction{Op: rvm.OpConstS, S: id})
		fs.emit(rvm.Instruction{Op: rvm.OpWrapS})
		return nil
	case ast.NamedVar:
		return fs.compileLoadNamed(x.Name)
	case *ast.MemberLookup:
		return fs.compileLoadMember(x)
	case *ast.PropertyAccess:
		return fs.compileLoadProperty(x)
	case *ast.UnaryOp:
		return fs.compileUnaryOp(x)
	case *ast.BinaryOp:
		return fs.compileBinaryOp(x)
	case *ast.TableConstructor:
		return fs.compileTableConstructor(x)
	case *ast.FunctionCall:
		if err := fs.compileCall(x); err != nil {
			return err
		}
		fs.emit(rvm.Instruction{Op: rvm.OpLdaProt, A: 0})
		return nil
	case *ast.MethodCall:
		return lerr.Parse("method-call syntax is not implemented")
	default:
		panic("compiler: unhandled expression type")
	}
}

func (fs *funcState) compileLoadNamed(name string) error {
	if b, ok := fs.scope.lookup(name); ok {
		fs.emit(rvm.Instruction{Op: rvm.OpLdaLx, A: b.idx})
		return nil
	}
	cell := fs.global.CellFor(name)
	fs.emit(rvm.Instruction{Op: rvm.OpLdaDGl, Cell: cell})
	return nil
}

func (fs *funcState) compileLoadMember(v *ast.MemberLookup) error {
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
	fs.emit(rvm.Instruction{Op: rvm.OpTableGetIdx, A: fromReg, B: keyReg})
	return nil
}

func (fs *funcState) compileLoadProperty(v *ast.PropertyAccess) error {
	if err := fs.compileExpr(v.From); err != nil {
		return err
	}
	fromReg := fs.allocLocal()
	fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: fromReg})
	id := fs.internString(v.Property)
	fs.emit(rvm.Instruction{Op: rvm.OpTablePropGet, A: fromReg, S: id})
	return nil
}

func (fs *funcState) compileUnaryOp(u *ast.UnaryOp) error {
	if err := fs.compileExpr(u.Operand); err != nil {
		return err
	}
	switch u.Op {
	case ast.OpNot:
		fs.emit(rvm.Instruction{Op: rvm.OpNot})
	case ast.OpUnaryMinus:
		fs.emit(rvm.Instruction{Op: rvm.OpDUnaryMinus})
	default:
		panic("compiler: unhandled unary operator")
	}
	return nil
}

// compileBinaryOp lowers a binary operator per §4.8: And/Or short-circuit
// via a NilTest-guarded jump around the right operand (the left operand's
// value is the result when it already decides the outcome); every other
// operator compiles its left operand, spills it to a freshly allocated
// local, compiles the right operand and spills it too, reloads the left
// operand into the accumulator, then emits the operator against the right
// operand's local (the machine computes accumulator op local). Equality and ordering don't produce a native boolean
// register — they set a flag and constant-fold it to dynamic Integer 1 (the
// condition held) or Nil (it didn't) via an explicit branch, the same
// shape the reference register compiler uses for `==`.
func (fs *funcState) compileBinaryOp(b *ast.BinaryOp) error {
	switch b.Op {
	case ast.OpAnd:
		if err := fs.compileExpr(b.Lhs); err != nil {
			return err
		}
		fs.emit(rvm.Instruction{Op: rvm.OpNilTest})
		skip := fs.emitJump(rvm.OpJmpEQ)
		if err := fs.compileExpr(b.Rhs); err != nil {
			return err
		}
		fs.patchJumpHere(skip)
		return nil
	case ast.OpOr:
		if err := fs.compileExpr(b.Lhs); err != nil {
			return err
		}
		fs.emit(rvm.Instruction{Op: rvm.OpNilTest})
		skip := fs.emitJump(rvm.OpJmpNE)
		if err := fs.compileExpr(b.Rhs); err != nil {
			return err
		}
		fs.patchJumpHere(skip)
		return nil
	case ast.OpExp:
		return lerr.Parse("the '^' operator is not implemented")
	}

	if err := fs.compileExpr(b.Lhs); err != nil {
		return err
	}
	reg := fs.allocLocal()
	fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: reg})
	if err := fs.compileExpr(b.Rhs); err != nil {
		return err
	}
	rhsReg := fs.allocLocal()
	fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: rhsReg})
	fs.emit(rvm.Instruction{Op: rvm.OpLdaLx, A: reg})

	switch b.Op {
	case ast.OpEquals:
		return fs.compileEqResult(rhsReg, false)
	case ast.OpNotEquals:
		return fs.compileEqResult(rhsReg, true)
	case ast.OpLess, ast.OpGreater, ast.OpLessOrEqual, ast.OpGreaterOrEqual:
		return fs.compileOrderResult(rhsReg, b.Op)
	case ast.OpConcat:
		fs.emit(rvm.Instruction{Op: rvm.OpDConcatL, A: rhsReg})
		return nil
	case ast.OpPlus:
		fs.emit(rvm.Instruction{Op: rvm.OpDAddL, A: rhsReg})
		return nil
	case ast.OpMinus:
		fs.emit(rvm.Instruction{Op: rvm.OpDSubL, A: rhsReg})
		return nil
	case ast.OpMul:
		fs.emit(rvm.Instruction{Op: rvm.OpDMulL, A: rhsReg})
		return nil
	case ast.OpDiv:
		fs.emit(rvm.Instruction{Op: rvm.OpDDivL, A: rhsReg})
		return nil
	default:
		panic("compiler: unhandled binary operator")
	}
}

func (fs *funcState) compileEqResult(reg int32, invert bool) error {
	fs.emit(rvm.Instruction{Op: rvm.OpEqTestL, A: reg})
	jumpOp := rvm.OpJmpEQ
	if invert {
		jumpOp = rvm.OpJmpNE
	}
	taken := fs.emitJump(jumpOp)
	fs.emit(rvm.Instruction{Op: rvm.OpConstN})
	cont := fs.emitJump(rvm.OpJmp)
	fs.patchJumpHere(taken)
	fs.emit(rvm.Instruction{Op: rvm.OpConstI, I: 1})
	fs.emit(rvm.Instruction{Op: rvm.OpWrapI})
	fs.patchJumpHere(cont)
	return nil
}

func (fs *funcState) compileOrderResult(reg int32, op ast.BinaryOperator) error {
	fs.emit(rvm.Instruction{Op: rvm.OpOrderTestL, A: reg})
	taken := fs.emitJump(orderJump(op))
	fs.emit(rvm.Instruction{Op: rvm.OpConstN})
	cont := fs.emitJump(rvm.OpJmp)
	fs.patchJumpHere(taken)
	fs.emit(rvm.Instruction{Op: rvm.OpConstI, I: 1})
	fs.emit(rvm.Instruction{Op: rvm.OpWrapI})
	fs.patchJumpHere(cont)
	return nil
}

func orderJump(op ast.BinaryOperator) rvm.Opcode {
	switch op {
	case ast.OpLess:
		return rvm.OpJmpLT
	case ast.OpGreater:
		return rvm.OpJmpGT
	case ast.OpLessOrEqual:
		return rvm.OpJmpLE
	default:
		return rvm.OpJmpGE
	}
}

// compileTableConstructor builds a table in a fresh local, setting its
// list fields at consecutive integer keys and its named fields by
// property, and leaves the table in the accumulator. Unlike the
// tree-walking backend's evalTableConstructor, a trailing call in the list
// part is not expanded to all of its results here — only its first value is
// used — since the register machine's table instructions this runtime
// adds (see rvm/opcode.go) have no multi-value story of their own to
// extend, and the original register compiler never compiled table
// construction at all.
func (fs *funcState) compileTableConstructor(tc *ast.TableConstructor) error {
	tblReg := fs.allocLocal()
	fs.emit(rvm.Instruction{Op: rvm.OpTableNewL, A: tblReg})

	n := int32(1)
	for _, e := range tc.ListFields {
		if err := fs.compileExpr(e); err != nil {
			return err
		}
		valReg := fs.allocLocal()
		fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: valReg})
		fs.emit(rvm.Instruction{Op: rvm.OpConstI, I: n})
		fs.emit(rvm.Instruction{Op: rvm.OpWrapI})
		keyReg := fs.allocLocal()
		fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: keyReg})
		fs.emit(rvm.Instruction{Op: rvm.OpLdaLx, A: valReg})
		fs.emit(rvm.Instruction{Op: rvm.OpTableSetIdx, A: tblReg, B: keyReg})
		n++
	}
	for _, f := range tc.Fields {
		if err := fs.compileExpr(f.Value); err != nil {
			return err
		}
		id := fs.internString(f.Name)
		fs.emit(rvm.Instruction{Op: rvm.OpTablePropSet, A: tblReg, S: id})
	}

	fs.emit(rvm.Instruction{Op: rvm.OpLdaLx, A: tblReg})
	return nil
}

// compileCall compiles a call's callee and arguments and emits the DCall
// itself. Each argument is compiled into its own fresh local independently
// — no last-position expansion of a call argument that is itself a
// multi-valued call — then moved into the argument-register window, ahead
// of the callee (compiled last, since evaluating it cannot itself need the
// argument registers this call is about to occupy).
func (fs *funcState) compileCall(call *ast.FunctionCall) error {
	argLocals := make([]int32, len(call.Args))
	for i, a := range call.Args {
		if err := fs.compileExpr(a); err != nil {
			return err
		}
		reg := fs.allocLocal()
		fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: reg})
		argLocals[i] = reg
	}
	for i, reg := range argLocals {
		fs.emit(rvm.Instruction{Op: rvm.OpLdaLx, A: reg})
		fs.emit(rvm.Instruction{Op: rvm.OpStrRx, A: int32(i)})
	}
	fs.emit(rvm.Instruction{Op: rvm.OpConstI, I: int32(len(call.Args))})
	fs.emit(rvm.Instruction{Op: rvm.OpStrVC})

	if err := fs.compileExpr(call.Callee); err != nil {
		return err
	}
	fs.emit(rvm.Instruction{Op: rvm.OpDCall})
	return nil
}

// compileReturn lowers a `return e1, ..., en` per §4.8: every expression but
// the last contributes exactly one value into the argument-register window;
// the last, if itself a call, contributes all of its results (shifted up
// past the already-placed leading values via RDShiftRight), otherwise just
// one more.
func (fs *funcState) compileReturn(exprs []ast.Expression) error {
	if len(exprs) == 0 {
		fs.emit(rvm.Instruction{Op: rvm.OpConstI, I: 0})
		fs.emit(rvm.Instruction{Op: rvm.OpStrVC})
		fs.emit(rvm.Instruction{Op: rvm.OpRet})
		fs.recordReturnArity(rvm.ReturnArity{Kind: rvm.Constant, N: 0})
		return nil
	}

	head := exprs[:len(exprs)-1]
	last := exprs[len(exprs)-1]
	n := int32(len(head))

	if call, ok := last.(*ast.FunctionCall); ok {
		if err := fs.compileCall(call); err != nil {
			return err
		}
		fs.emit(rvm.Instruction{Op: rvm.OpRDShiftRight, A: n})
		for i, e := range head {
			if err := fs.compileExpr(e); err != nil {
				return err
			}
			fs.emit(rvm.Instruction{Op: rvm.OpStrRx, A: int32(i)})
		}
		tmp := fs.allocLocal()
		fs.emit(rvm.Instruction{Op: rvm.OpConstI, I: n})
		fs.emit(rvm.Instruction{Op: rvm.OpWrapI})
		fs.emit(rvm.Instruction{Op: rvm.OpStrLx, A: tmp})
		fs.emit(rvm.Instruction{Op: rvm.OpLdaVC})
		fs.emit(rvm.Instruction{Op: rvm.OpDAddL, A: tmp})
		fs.emit(rvm.Instruction{Op: rvm.OpCastI})
		fs.emit(rvm.Instruction{Op: rvm.OpStrVC})
		fs.emit(rvm.Instruction{Op: rvm.OpRet})
		fs.recordReturnArity(rvm.ReturnArity{Kind: rvm.MinBounded, N: int(n)})
		return nil
	}

	for i, e := range head {
		if err := fs.compileExpr(e); err != nil {
			return err
		}
		fs.emit(rvm.Instruction{Op: rvm.OpStrRx, A: int32(i)})
	}
	if err := fs.compileExpr(last); err != nil {
		return err
	}
	fs.emit(rvm.Instruction{Op: rvm.OpStrRx, A: n})
	fs.emit(rvm.Instruction{Op: rvm.OpConstI, I: n + 1})
	fs.emit(rvm.Instruction{Op: rvm.OpStrVC})
	fs.emit(rvm.Instruction{Op: rvm.OpRet})
	fs.recordReturnArity(rvm.ReturnArity{Kind: rvm.Constant, N: int(n) + 1})
	return nil
}
