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
	"github.com/Malien/luar-sub001/scope"
	"github.com/Malien/luar-sub001/value"
)

// evalStatement runs a single statement, reporting whether it (or
// something nested inside it) produced a return.
func (e *Evaluator) evalStatement(stmt ast.Statement, local scope.Local) (value.Return, bool, error) {
	switch s := stmt.(type) {
	case *ast.Assignment:
		return value.NoReturn, false, e.evalAssignment(s, local)
	case *ast.Declaration:
		return value.NoReturn, false, e.evalDeclaration(s, local)
	case *ast.Conditional:
		return e.evalConditional(s, local)
	case *ast.WhileLoop:
		return e.evalWhileLoop(s, local)
	case *ast.RepeatLoop:
		return e.evalRepeatLoop(s, local)
	case *ast.CallStatement:
		_, err := e.evalExpression(s.Call, local)
		return value.NoReturn, false, err
	case *ast.LocalFunctionDecl:
		id := e.registerFunc(funcDef{name: s.Name, params: s.Params, body: s.Body, selfName: s.Name})
		local.DeclareLocal(s.Name, value.Func(id))
		return value.NoReturn, false, nil
	default:
		panic("eval: unhandled statement type")
	}
}

func (e *Evaluator) evalAssignment(s *ast.Assignment, local scope.Local) error {
	ret, err := e.evalExpressionList(s.Values, local)
	if err != nil {
		return err
	}
	values := ret.Values()
	for i, target := range s.Targets {
		v := value.NilValue
		if i < len(values) {
			v = values[i]
		}
		if err := e.assignVar(target, v, local); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evalDeclaration(s *ast.Declaration, local scope.Local) error {
	ret, err := e.evalExpressionList(s.InitialValues, local)
	if err != nil {
		return err
	}
	values := ret.Values()
	for i, name := range s.Names {
		v := value.NilValue
		if i < len(values) {
			v = values[i]
		}
		local.DeclareLocal(name, v)
	}
	return nil
}

func (e *Evaluator) evalConditional(c *ast.Conditional, local scope.Local) (value.Return, bool, error) {
	cond, err := e.evalExpression(c.Condition, local)
	if err != nil {
		return value.NoReturn, false, err
	}
	if cond.First().IsTruthy() {
		return e.evalBlockStatements(c.Body, local.Child())
	}
	switch tail := c.Tail.(type) {
	case ast.EndTail:
		return value.NoReturn, false, nil
	case ast.ElseTail:
		return e.evalBlockStatements(tail.Body, local.Child())
	case ast.ElseIfTail:
		return e.evalConditional(tail.Conditional, local)
	default:
		panic("eval: unhandled conditional tail")
	}
}

func (e *Evaluator) evalWhileLoop(w *ast.WhileLoop, local scope.Local) (value.Return, bool, error) {
	for {
		cond, err := e.evalExpression(w.Condition, local)
		if err != nil {
			return value.NoReturn, false, err
		}
		if !cond.First().IsTruthy() {
			return value.NoReturn, false, nil
		}
		ret, returned, err := e.evalBlockStatements(w.Body, local.Child())
		if err != nil {
			return value.NoReturn, false, err
		}
		if returned {
			return ret, true, nil
		}
	}
}

func (e *Evaluator) evalRepeatLoop(r *ast.RepeatLoop, local scope.Local) (value.Return, bool, error) {
	for {
		child := local.Child()
		ret, returned, err := e.evalBlockStatements(r.Body, child)
		if err != nil {
			return value.NoReturn, false, err
		}
		if returned {
			return ret, true, nil
		}
		cond, err := e.evalExpression(r.Condition, child)
		if err != nil {
			return value.NoReturn, false, err
		}
		if cond.First().IsTruthy() {
			return value.NoReturn, false, nil
		}
	}
}
