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
	"github.com/Malien/luar-sub001/lerr"
	"github.com/Malien/luar-sub001/scope"
	"github.com/Malien/luar-sub001/value"
)

// evalExpressionList evaluates a list of expressions applying the
// last-position multi-value expansion rule of §4.4.
func (e *Evaluator) evalExpressionList(exprs []ast.Expression, local scope.Local) (value.Return, error) {
	if len(exprs) == 0 {
		return value.NoReturn, nil
	}
	rets := make([]value.Return, len(exprs))
	for i, expr := range exprs {
		r, err := e.evalExpression(expr, local)
		if err != nil {
			return value.NoReturn, err
		}
		rets[i] = r
	}
	return value.Many(value.CollectList(rets)), nil
}

// evalExpression evaluates expr to a Return — a single value for
// everything except a function call, which may carry many.
func (e *Evaluator) evalExpression(expr ast.Expression, local scope.Local) (value.Return, error) {
	switch x := expr.(type) {
	case ast.NilLiteral:
		return value.One(value.NilValue), nil
	case ast.IntLiteral:
		return value.One(value.Integer(x.Value)), nil
	case ast.FloatLiteral:
		return value.One(value.Floating(x.Value)), nil
	case ast.StringLiteral:
		return value.One(value.Str(x.Value)), nil
	case ast.Var:
		v, err := e.evalVar(x, local)
		if err != nil {
			return value.NoReturn, err
		}
		return value.One(v), nil
	case *ast.UnaryOp:
		return e.evalUnaryOp(x, local)
	case *ast.BinaryOp:
		return e.evalBinaryOp(x, local)
	case *ast.TableConstructor:
		return e.evalTableConstructor(x, local)
	case *ast.FunctionCall:
		return e.evalFunctionCall(x, local)
	case *ast.MethodCall:
		return value.NoReturn, lerr.Parse("method-call syntax is not implemented")
	default:
		panic("eval: unhandled expression type")
	}
}

func (e *Evaluator) evalUnaryOp(u *ast.UnaryOp, local scope.Local) (value.Return, error) {
	operand, err := e.evalExpression(u.Operand, local)
	if err != nil {
		return value.NoReturn, err
	}
	v := operand.First()
	switch u.Op {
	case ast.OpNot:
		return value.One(value.FromBool(v.IsFalsy())), nil
	case ast.OpUnaryMinus:
		n, ok := value.CoerceNumber(v)
		if !ok {
			return value.NoReturn, lerr.UnaryMinus(v)
		}
		return value.One(value.NegateNumber(n)), nil
	default:
		panic("eval: unhandled unary operator")
	}
}

func (e *Evaluator) evalBinaryOp(b *ast.BinaryOp, local scope.Local) (value.Return, error) {
	switch b.Op {
	case ast.OpAnd:
		lhs, err := e.evalExpression(b.Lhs, local)
		if err != nil {
			return value.NoReturn, err
		}
		l := lhs.First()
		if l.IsFalsy() {
			return value.One(l), nil
		}
		return e.evalExpression(b.Rhs, local)
	case ast.OpOr:
		lhs, err := e.evalExpression(b.Lhs, local)
		if err != nil {
			return value.NoReturn, err
		}
		l := lhs.First()
		if l.IsTruthy() {
			return value.One(l), nil
		}
		return e.evalExpression(b.Rhs, local)
	}

	lhsRet, err := e.evalExpression(b.Lhs, local)
	if err != nil {
		return value.NoReturn, err
	}
	rhsRet, err := e.evalExpression(b.Rhs, local)
	if err != nil {
		return value.NoReturn, err
	}
	lhs, rhs := lhsRet.First(), rhsRet.First()

	switch b.Op {
	case ast.OpEquals:
		return value.One(value.FromBool(lhs.Equal(rhs))), nil
	case ast.OpNotEquals:
		return value.One(value.FromBool(!lhs.Equal(rhs))), nil
	case ast.OpLess, ast.OpGreater, ast.OpLessOrEqual, ast.OpGreaterOrEqual:
		return evalOrdering(lhs, b.Op, rhs)
	case ast.OpConcat:
		return evalConcat(lhs, rhs)
	case ast.OpPlus, ast.OpMinus, ast.OpMul, ast.OpDiv:
		return evalArithmetic(lhs, b.Op, rhs)
	case ast.OpExp:
		return value.NoReturn, lerr.Parse("the '^' operator is not implemented")
	default:
		panic("eval: unhandled binary operator")
	}
}

func evalOrdering(lhs value.Value, op ast.BinaryOperator, rhs value.Value) (value.Return, error) {
	cmp, ok, nan := value.Ordering(lhs, rhs)
	if !ok {
		return value.NoReturn, lerr.Ordering(lhs, rhs, orderingErrOp(op))
	}
	if nan {
		return value.One(value.FromBool(false)), nil
	}
	var result bool
	switch op {
	case ast.OpLess:
		result = cmp < 0
	case ast.OpGreater:
		result = cmp > 0
	case ast.OpLessOrEqual:
		result = cmp <= 0
	case ast.OpGreaterOrEqual:
		result = cmp >= 0
	}
	return value.One(value.FromBool(result)), nil
}

func orderingErrOp(op ast.BinaryOperator) lerr.OrderingOperator {
	switch op {
	case ast.OpLess:
		return lerr.OpLess
	case ast.OpGreater:
		return lerr.OpGreater
	case ast.OpLessOrEqual:
		return lerr.OpLessOrEqual
	default:
		return lerr.OpGreaterOrEqual
	}
}

func evalConcat(lhs, rhs value.Value) (value.Return, error) {
	ls, lok := value.CoerceString(lhs)
	rs, rok := value.CoerceString(rhs)
	if !lok || !rok {
		return value.NoReturn, lerr.StringConcat(lhs, rhs)
	}
	return value.One(value.Str(ls + rs)), nil
}

func evalArithmetic(lhs value.Value, op ast.BinaryOperator, rhs value.Value) (value.Return, error) {
	ln, lok := value.CoerceNumber(lhs)
	rn, rok := value.CoerceNumber(rhs)
	if !lok || !rok {
		return value.NoReturn, lerr.Binary(lhs, arithErrOp(op), rhs)
	}
	switch op {
	case ast.OpPlus:
		return value.One(value.AddNumbers(ln, rn)), nil
	case ast.OpMinus:
		return value.One(value.SubNumbers(ln, rn)), nil
	case ast.OpMul:
		return value.One(value.MulNumbers(ln, rn)), nil
	case ast.OpDiv:
		return value.One(value.DivNumbers(ln, rn)), nil
	default:
		panic("eval: unhandled arithmetic operator")
	}
}

func arithErrOp(op ast.BinaryOperator) lerr.ArithmeticOperator {
	switch op {
	case ast.OpPlus:
		return lerr.OpAdd
	case ast.OpMinus:
		return lerr.OpSub
	case ast.OpMul:
		return lerr.OpMul
	default:
		return lerr.OpDiv
	}
}

func (e *Evaluator) evalTableConstructor(tc *ast.TableConstructor, local scope.Local) (value.Return, error) {
	t := value.NewTable()
	n := int32(1)
	for i, expr := range tc.ListFields {
		isLast := i == len(tc.ListFields)-1 && len(tc.Fields) == 0
		r, err := e.evalExpression(expr, local)
		if err != nil {
			return value.NoReturn, err
		}
		if isLast {
			for _, v := range r.Values() {
				t.Set(value.Integer(n), v)
				n++
			}
		} else {
			t.Set(value.Integer(n), r.First())
			n++
		}
	}
	for _, f := range tc.Fields {
		r, err := e.evalExpression(f.Value, local)
		if err != nil {
			return value.NoReturn, err
		}
		t.Set(value.Str(f.Name), r.First())
	}
	return value.One(value.TableValue(t)), nil
}

func (e *Evaluator) evalFunctionCall(c *ast.FunctionCall, local scope.Local) (value.Return, error) {
	calleeRet, err := e.evalExpression(c.Callee, local)
	if err != nil {
		return value.NoReturn, err
	}
	callee := calleeRet.First()
	args, err := e.evalExpressionList(c.Args, local)
	if err != nil {
		return value.NoReturn, err
	}
	return e.CallFunction(callee, args.Values())
}
