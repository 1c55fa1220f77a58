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

package ast

// Module is the top-level parse result: an ordered sequence of chunks
// (function declarations and statements, interleaved in source order)
// optionally followed by a return.
type Module struct {
	Chunks []Chunk
	Ret    *Return
}

// Chunk is either a FunctionDeclaration or a Statement at module scope.
type Chunk interface{ chunk() }

// Block is an ordered list of statements optionally followed by a return.
type Block struct {
	Statements []Statement
	Ret        *Return
}

// Return is a `return e1, e2, ...` with zero or more expressions.
type Return struct {
	Values []Expression
}

// FunctionDeclaration is `function name(params) body end`.
type FunctionDeclaration struct {
	Name   string
	Params []string
	Body   Block
}

func (*FunctionDeclaration) chunk() {}

// Statement is one of Assignment, Declaration, Conditional, WhileLoop,
// RepeatLoop, or a function call used for its side effect.
type Statement interface {
	Chunk
	stmt()
}

// Assignment is `v1, v2, ..., vn = e1, e2, ..., em`.
type Assignment struct {
	Targets []Var
	Values  []Expression
}

func (*Assignment) chunk() {}
func (*Assignment) stmt()  {}

// Declaration is `local n1, n2, ..., nk = e1, e2, ..., em`.
type Declaration struct {
	Names         []string
	InitialValues []Expression
}

func (*Declaration) chunk() {}
func (*Declaration) stmt()  {}

// Conditional is `if cond then body tail`.
type Conditional struct {
	Condition Expression
	Body      Block
	Tail      ConditionalTail
}

func (*Conditional) chunk() {}
func (*Conditional) stmt()  {}

// ConditionalTail is End, Else, or ElseIf.
type ConditionalTail interface{ tail() }

type EndTail struct{}

func (EndTail) tail() {}

type ElseTail struct{ Body Block }

func (ElseTail) tail() {}

type ElseIfTail struct{ Conditional *Conditional }

func (ElseIfTail) tail() {}

// WhileLoop is `while cond do body end`.
type WhileLoop struct {
	Condition Expression
	Body      Block
}

func (*WhileLoop) chunk() {}
func (*WhileLoop) stmt()  {}

// RepeatLoop is `repeat body until cond`; cond is evaluated in the same
// child scope the body ran in.
type RepeatLoop struct {
	Body      Block
	Condition Expression
}

func (*RepeatLoop) chunk() {}
func (*RepeatLoop) stmt()  {}

// LocalFunctionDecl is `local function name(params) body end` sugar: it
// behaves like `local name` declared before the body is compiled (so the
// body can call name recursively) immediately bound to the new function.
type LocalFunctionDecl struct {
	Name   string
	Params []string
	Body   Block
}

func (*LocalFunctionDecl) chunk() {}
func (*LocalFunctionDecl) stmt()  {}

// CallStatement is a function (or method) call used for its side effect,
// its results discarded.
type CallStatement struct {
	Call Expression // always *FunctionCall or *MethodCall
}

func (*CallStatement) chunk() {}
func (*CallStatement) stmt()  {}

// Expression is the syntax tree's expression sum: literals, variables,
// operators, table constructors and calls.
type Expression interface{ expr() }

type NilLiteral struct{}

func (NilLiteral) expr() {}

// IntLiteral is an integer numeric literal, lexed as digits with no
// decimal point or exponent: `1`, `42`, `-0` (the sign is a separate
// UnaryOp). Both backends lower it straight to an Integer value.
type IntLiteral struct{ Value int32 }

func (IntLiteral) expr() {}

// FloatLiteral is a numeric literal with a decimal point or exponent:
// `1.5`, `1e10`. Both backends lower it straight to a Float value.
type FloatLiteral struct{ Value float64 }

func (FloatLiteral) expr() {}

type StringLiteral struct{ Value string }

func (StringLiteral) expr() {}

type UnaryOp struct {
	Op      UnaryOperator
	Operand Expression
}

func (*UnaryOp) expr() {}

type BinaryOp struct {
	Lhs Expression
	Op  BinaryOperator
	Rhs Expression
}

func (*BinaryOp) expr() {}

// TableConstructor is `{ e1, e2, ...; name1 = f1, name2 = f2, ... }`: a list
// part and an associative part, either of which may be empty.
type TableConstructor struct {
	ListFields []Expression
	Fields     []FieldInit
}

func (*TableConstructor) expr() {}

type FieldInit struct {
	Name  string
	Value Expression
}

// FunctionCall is `callee(args)`.
type FunctionCall struct {
	Callee Expression
	Args   []Expression
}

func (*FunctionCall) expr() {}

// MethodCall is `obj:name(args)`, accepted syntactically per §6.1 but not
// evaluated: both backends reject it with an explicit not-implemented
// error, since the source language's Non-goals exclude method-call syntax.
type MethodCall struct {
	Object Var
	Method string
	Args   []Expression
}

func (*MethodCall) expr() {}

// Var is a place expression: a bare name, `t[e]`, or `t.name`.
type Var interface {
	Expression
	isVar()
}

type NamedVar struct{ Name string }

func (NamedVar) expr()  {}
func (NamedVar) isVar() {}

type MemberLookup struct {
	From Var
	Key  Expression
}

func (*MemberLookup) expr()  {}
func (*MemberLookup) isVar() {}

type PropertyAccess struct {
	From     Var
	Property string
}

func (*PropertyAccess) expr()  {}
func (*PropertyAccess) isVar() {}

// BinaryOperator enumerates the binary operators, grouped by ascending
// precedence: the logical operators bind loosest (`or` looser than `and`,
// although OpAnd is listed first), Exp binds tightest. `^` is accepted
// syntactically but rejected at evaluation and compilation time, per the
// Non-goals.
type BinaryOperator uint8

const (
	OpAnd BinaryOperator = iota
	OpOr
	OpLess
	OpGreater
	OpLessOrEqual
	OpGreaterOrEqual
	OpNotEquals
	OpEquals
	OpConcat
	OpPlus
	OpMinus
	OpMul
	OpDiv
	OpExp
)

type UnaryOperator uint8

const (
	OpUnaryMinus UnaryOperator = iota
	OpNot
)
