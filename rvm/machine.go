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

package rvm

import (
	"github.com/pkg/errors"

	"github.com/Malien/luar-sub001/global"
	"github.com/Malien/luar-sub001/lerr"
	"github.com/Malien/luar-sub001/value"
)

// Machine holds everything the dispatch loop needs: the global store, the
// table of compiled blocks, the shared 16-slot dynamic argument-register
// file (shared across calls, per §4.7 — only a block's locals are
// per-frame), and the typed/dynamic accumulators and flags the
// instruction set operates on.
type Machine struct {
	Global *global.Store
	Blocks []*CodeBlock

	argRegs [16]value.Value
	vc      int

	acc value.Value

	accI int32
	accF float64
	accS string

	eqFlag   bool
	cmp      int
	cmpValid bool

	depth int
}

// New creates an empty Machine backed by g.
func New(g *global.Store) *Machine {
	return &Machine{Global: g}
}

// AddBlock appends a compiled block and returns the value.BlockID it is
// now addressed by.
func (m *Machine) AddBlock(b *CodeBlock) value.BlockID {
	id := value.BlockID(len(m.Blocks))
	m.Blocks = append(m.Blocks, b)
	return id
}

// Fault wraps a dispatch-loop panic (an out-of-range register, a bad jump
// target — invariants the compiler is supposed to guarantee never fire),
// mirroring the teacher's vm.Instance.Run recover pattern. Block is the
// block Call was entered with, and Depth is read after the panic has
// unwound every nested runBlock, so it is the depth Call itself ran at;
// neither names the failing instruction's block or depth. PC is not
// recorded and stays 0.
type Fault struct {
	cause error
	Block value.BlockID
	PC    int
	Depth int
}

func (f *Fault) Error() string { return f.cause.Error() }
func (f *Fault) Cause() error  { return f.cause }

// Call invokes the block at id with args, recovering any dispatch-loop
// panic into a *Fault.
func (m *Machine) Call(id value.BlockID, args []value.Value) (ret value.Return, err error) {
	defer func() {
		if e := recover(); e != nil {
			cause, ok := e.(error)
			if !ok {
				panic(e)
			}
			err = errors.Wrapf(&Fault{cause: cause, Block: id, Depth: m.depth},
				"register machine fault in block %d at depth %d", id, m.depth)
		}
	}()
	vs, callErr := m.runBlock(id, args)
	if callErr != nil {
		return value.NoReturn, callErr
	}
	return value.Many(vs), nil
}

func (m *Machine) runBlock(id value.BlockID, args []value.Value) ([]value.Value, error) {
	if int(id) >= len(m.Blocks) {
		panic(errors.Errorf("call to undefined block %d", id))
	}
	block := m.Blocks[id]
	locals := make([]value.Value, block.LocalCount)

	for i, v := range args {
		if i >= len(m.argRegs) {
			break
		}
		m.argRegs[i] = v
	}

	m.depth++
	defer func() { m.depth-- }()

	pc := 0
	for pc < len(block.Instructions) {
		instr := block.Instructions[pc]
		switch instr.Op {
		case OpNop:
			pc++
		case OpConstN:
			m.acc = value.NilValue
			pc++
		case OpConstI:
			m.accI = instr.I
			pc++
		case OpConstF:
			m.accF = instr.F
			pc++
		case OpConstS:
			m.accS = block.Strings[instr.S]
			pc++
		case OpWrapI:
			m.acc = value.Integer(m.accI)
			pc++
		case OpWrapF:
			m.acc = value.Floating(m.accF)
			pc++
		case OpWrapS:
			m.acc = value.Str(m.accS)
			pc++
		case OpCastI:
			if m.acc.Kind == value.Int {
				m.accI = m.acc.I
				m.eqFlag = true
			} else {
				m.eqFlag = false
			}
			pc++
		case OpCastF:
			if m.acc.Kind == value.Float {
				m.accF = m.acc.F
				m.eqFlag = true
			} else {
				m.eqFlag = false
			}
			pc++
		case OpCastS:
			if m.acc.Kind == value.String {
				m.accS = m.acc.S
				m.eqFlag = true
			} else {
				m.eqFlag = false
			}
			pc++
		case OpLdaRx:
			m.acc = m.argRegs[instr.A]
			pc++
		case OpStrRx:
			m.argRegs[instr.A] = m.acc
			pc++
		case OpLdaLx:
			m.acc = locals[instr.A]
			pc++
		case OpStrLx:
			locals[instr.A] = m.acc
			pc++
		case OpLdaDGl:
			m.acc = m.Global.ValueOf(instr.Cell)
			pc++
		case OpStrDGl:
			m.Global.SetCell(instr.Cell, m.acc)
			pc++
		case OpDAddR, OpDAddL, OpDSubR, OpDSubL, OpDMulR, OpDMulL, OpDDivR, OpDDivL:
			rhs := m.operand(instr, locals)
			lhs, lok := value.CoerceNumber(m.acc)
			rn, rok := value.CoerceNumber(rhs)
			if !lok || !rok {
				return nil, lerr.Binary(m.acc, arithOp(instr.Op), rhs)
			}
			m.acc = applyArith(instr.Op, lhs, rn)
			pc++
		case OpDUnaryMinus:
			n, ok := value.CoerceNumber(m.acc)
			if !ok {
				return nil, lerr.UnaryMinus(m.acc)
			}
			m.acc = value.NegateNumber(n)
			pc++
		case OpDConcatR, OpDConcatL:
			rhs := m.operand(instr, locals)
			ls, lok := value.CoerceString(m.acc)
			rs, rok := value.CoerceString(rhs)
			if !lok || !rok {
				return nil, lerr.StringConcat(m.acc, rhs)
			}
			m.acc = value.Str(ls + rs)
			pc++
		case OpEqTestR, OpEqTestL:
			rhs := m.operand(instr, locals)
			m.eqFlag = m.acc.Equal(rhs)
			pc++
		case OpOrderTestR, OpOrderTestL:
			rhs := m.operand(instr, locals)
			cmp, ok, nan := value.Ordering(m.acc, rhs)
			if !ok {
				return nil, lerr.Ordering(m.acc, rhs, lerr.OpLess)
			}
			m.cmp, m.cmpValid = cmp, !nan
			pc++
		case OpNilTest:
			m.eqFlag = m.acc.IsFalsy()
			pc++
		case OpNot:
			m.acc = value.FromBool(m.acc.IsFalsy())
			pc++
		case OpJmp:
			pc = int(instr.A)
		case OpJmpEQ:
			pc = branch(m.eqFlag, int(instr.A), pc)
		case OpJmpNE:
			pc = branch(!m.eqFlag, int(instr.A), pc)
		case OpJmpLT:
			pc = branch(m.cmpValid && m.cmp < 0, int(instr.A), pc)
		case OpJmpGT:
			pc = branch(m.cmpValid && m.cmp > 0, int(instr.A), pc)
		case OpJmpLE:
			pc = branch(m.cmpValid && m.cmp <= 0, int(instr.A), pc)
		case OpJmpGE:
			pc = branch(m.cmpValid && m.cmp >= 0, int(instr.A), pc)
		case OpJmpN:
			pc = branch(m.acc.IsNil(), int(instr.A), pc)
		case OpJmpF:
			pc = branch(m.acc.Kind == value.Float, int(instr.A), pc)
		case OpJmpI:
			pc = branch(m.acc.Kind == value.Int, int(instr.A), pc)
		case OpJmpS:
			pc = branch(m.acc.Kind == value.String, int(instr.A), pc)
		case OpJmpT:
			pc = branch(m.acc.IsTable(), int(instr.A), pc)
		case OpJmpC:
			pc = branch(m.acc.IsCallable(), int(instr.A), pc)
		case OpStrVC:
			m.vc = int(m.accI)
			pc++
		case OpLdaVC:
			m.acc = value.Integer(int32(m.vc))
			pc++
		case OpRDShiftRight:
			n := int(instr.A)
			for i := m.vc - 1; i >= 0; i-- {
				m.argRegs[i+n] = m.argRegs[i]
			}
			pc++
		case OpLdaProt:
			idx := int(instr.A)
			if idx < m.vc {
				m.acc = m.argRegs[idx]
			} else {
				m.acc = value.NilValue
			}
			pc++
		case OpTableNewL:
			locals[instr.A] = value.TableValue(value.NewTable())
			pc++
		case OpTableGetIdx:
			tbl := locals[instr.A]
			key := locals[instr.B]
			if !tbl.IsTable() {
				return nil, lerr.CannotAccessMember(key, tbl)
			}
			m.acc = tbl.Tbl.Get(key)
			pc++
		case OpTableSetIdx:
			tbl := locals[instr.A]
			key := locals[instr.B]
			if !tbl.IsTable() {
				return nil, lerr.CannotAssignMember(key, tbl)
			}
			tbl.Tbl.Set(key, m.acc)
			pc++
		case OpTablePropGet:
			tbl := locals[instr.A]
			name := block.Strings[instr.S]
			if !tbl.IsTable() {
				return nil, lerr.CannotAccessProperty(name, tbl)
			}
			m.acc = tbl.Tbl.Get(value.Str(name))
			pc++
		case OpTablePropSet:
			tbl := locals[instr.A]
			name := block.Strings[instr.S]
			if !tbl.IsTable() {
				return nil, lerr.CannotAssignProperty(name, tbl)
			}
			tbl.Tbl.Set(value.Str(name), m.acc)
			pc++
		case OpConstFn:
			m.acc = value.Func(value.BlockID(instr.A))
			pc++
		case OpDCall:
			callee := m.acc
			callArgs := make([]value.Value, m.vc)
			copy(callArgs, m.argRegs[:m.vc])
			results, err := m.invoke(callee, callArgs)
			if err != nil {
				return nil, err
			}
			m.vc = len(results)
			for i, v := range results {
				if i >= len(m.argRegs) {
					break
				}
				m.argRegs[i] = v
			}
			pc++
		case OpRet:
			out := make([]value.Value, m.vc)
			copy(out, m.argRegs[:m.vc])
			return out, nil
		default:
			panic(errors.Errorf("unhandled opcode %s", instr.Op))
		}
	}
	return nil, nil
}

// invoke dispatches a dynamic call to either a compiled block or a native
// function, mirroring eval.Evaluator.CallFunction's capability dispatch.
func (m *Machine) invoke(callee value.Value, args []value.Value) ([]value.Value, error) {
	switch callee.Kind {
	case value.NativeFunction:
		ret, err := callee.Fn.Call(args)
		if err != nil {
			return nil, err
		}
		return ret.Values(), nil
	case value.Function:
		return m.runBlock(callee.Block, args)
	default:
		return nil, lerr.IsNotCallable(callee)
	}
}

func (m *Machine) operand(instr Instruction, locals []value.Value) value.Value {
	switch instr.Op {
	case OpDAddR, OpDSubR, OpDMulR, OpDDivR, OpDConcatR, OpEqTestR, OpOrderTestR:
		return m.argRegs[instr.A]
	default:
		return locals[instr.A]
	}
}

func branch(cond bool, target, fallthroughPC int) int {
	if cond {
		return target
	}
	return fallthroughPC + 1
}

func arithOp(op Opcode) lerr.ArithmeticOperator {
	switch op {
	case OpDAddR, OpDAddL:
		return lerr.OpAdd
	case OpDSubR, OpDSubL:
		return lerr.OpSub
	case OpDMulR, OpDMulL:
		return lerr.OpMul
	default:
		return lerr.OpDiv
	}
}

func applyArith(op Opcode, a, b value.Value) value.Value {
	switch op {
	case OpDAddR, OpDAddL:
		return value.AddNumbers(a, b)
	case OpDSubR, OpDSubL:
		return value.SubNumbers(a, b)
	case OpDMulR, OpDMulL:
		return value.MulNumbers(a, b)
	default:
		return value.DivNumbers(a, b)
	}
}
