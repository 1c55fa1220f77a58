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

package syn_test

import (
	"strings"
	"testing"

	"github.com/Malien/luar-sub001/ast"
	"github.com/Malien/luar-sub001/syn"
)

func TestParseReturnExpressionList(t *testing.T) {
	mod, err := syn.Parse("return 1, 2 + 3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if mod.Ret == nil || len(mod.Ret.Values) != 2 {
		t.Fatalf("got %+v, want a 2-value return", mod.Ret)
	}
	if _, ok := mod.Ret.Values[0].(ast.IntLiteral); !ok {
		t.Fatalf("first return value is %T, want ast.IntLiteral", mod.Ret.Values[0])
	}
}

func TestParseFunctionDeclarationIsTopLevelChunk(t *testing.T) {
	mod, err := syn.Parse(`
		function add(a, b)
			return a + b
		end
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(mod.Chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(mod.Chunks))
	}
	decl, ok := mod.Chunks[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("chunk is %T, want *ast.FunctionDeclaration", mod.Chunks[0])
	}
	if decl.Name != "add" || len(decl.Params) != 2 {
		t.Fatalf("got %+v, want add(a, b)", decl)
	}
}

func TestParseLocalFunctionDecl(t *testing.T) {
	mod, err := syn.Parse(`
		local function fact(n)
			return n
		end
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(mod.Chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(mod.Chunks))
	}
	if _, ok := mod.Chunks[0].(*ast.LocalFunctionDecl); !ok {
		t.Fatalf("chunk is %T, want *ast.LocalFunctionDecl", mod.Chunks[0])
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	mod, err := syn.Parse("return 1 + 2 * 3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	top, ok := mod.Ret.Values[0].(*ast.BinaryOp)
	if !ok {
		t.Fatalf("got %T, want *ast.BinaryOp", mod.Ret.Values[0])
	}
	if top.Op != ast.OpPlus {
		t.Fatalf("top-level operator = %v, want OpPlus (lowest precedence binds loosest)", top.Op)
	}
	if _, ok := top.Rhs.(*ast.BinaryOp); !ok {
		t.Fatalf("rhs is %T, want a nested BinaryOp for 2 * 3", top.Rhs)
	}
}

func TestParseConcatIsRightAssociative(t *testing.T) {
	mod, err := syn.Parse(`return "a" .. "b" .. "c"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	top, ok := mod.Ret.Values[0].(*ast.BinaryOp)
	if !ok || top.Op != ast.OpConcat {
		t.Fatalf("got %+v, want a top-level concat", mod.Ret.Values[0])
	}
	if _, ok := top.Rhs.(*ast.BinaryOp); !ok {
		t.Fatalf("rhs is %T, want a nested concat (right-associative)", top.Rhs)
	}
	if _, ok := top.Lhs.(ast.StringLiteral); !ok {
		t.Fatalf("lhs is %T, want a bare StringLiteral", top.Lhs)
	}
}

func TestParseTableConstructorMixedFields(t *testing.T) {
	mod, err := syn.Parse(`return { 1, 2, name = "x" }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tc, ok := mod.Ret.Values[0].(*ast.TableConstructor)
	if !ok {
		t.Fatalf("got %T, want *ast.TableConstructor", mod.Ret.Values[0])
	}
	if len(tc.ListFields) != 2 || len(tc.Fields) != 1 {
		t.Fatalf("got %d list fields and %d named fields, want 2 and 1", len(tc.ListFields), len(tc.Fields))
	}
	if tc.Fields[0].Name != "name" {
		t.Fatalf("named field = %+v, want name=\"x\"", tc.Fields[0])
	}
}

func TestParseMemberAndPropertyAccess(t *testing.T) {
	mod, err := syn.Parse("return t[1], t.name")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := mod.Ret.Values[0].(*ast.MemberLookup); !ok {
		t.Fatalf("got %T, want *ast.MemberLookup", mod.Ret.Values[0])
	}
	if _, ok := mod.Ret.Values[1].(*ast.PropertyAccess); !ok {
		t.Fatalf("got %T, want *ast.PropertyAccess", mod.Ret.Values[1])
	}
}

func TestParseConditionalTailChain(t *testing.T) {
	mod, err := syn.Parse(`
		if x then
			return 1
		elseif y then
			return 2
		else
			return 3
		end
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cond, ok := mod.Chunks[0].(*ast.Conditional)
	if !ok {
		t.Fatalf("got %T, want *ast.Conditional", mod.Chunks[0])
	}
	elseIf, ok := cond.Tail.(ast.ElseIfTail)
	if !ok {
		t.Fatalf("tail is %T, want ast.ElseIfTail", cond.Tail)
	}
	if _, ok := elseIf.Conditional.Tail.(ast.ElseTail); !ok {
		t.Fatalf("nested tail is %T, want ast.ElseTail", elseIf.Conditional.Tail)
	}
}

func TestParseAssignmentRequiresVarTargets(t *testing.T) {
	if _, err := syn.Parse("1 = 2"); err == nil {
		t.Fatal("assigning to a literal should be a parse error")
	}
}

func TestParseMultipleAssignmentTargets(t *testing.T) {
	mod, err := syn.Parse("a, b = 1, 2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	assign, ok := mod.Chunks[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("got %T, want *ast.Assignment", mod.Chunks[0])
	}
	if len(assign.Targets) != 2 || len(assign.Values) != 2 {
		t.Fatalf("got %+v, want 2 targets and 2 values", assign)
	}
}

func TestParseCallStatement(t *testing.T) {
	mod, err := syn.Parse(`print("hi")`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := mod.Chunks[0].(*ast.CallStatement); !ok {
		t.Fatalf("got %T, want *ast.CallStatement", mod.Chunks[0])
	}
}

func TestParseMethodCallSyntaxAccepted(t *testing.T) {
	mod, err := syn.Parse(`obj:method(1, 2)`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	stmt, ok := mod.Chunks[0].(*ast.CallStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.CallStatement", mod.Chunks[0])
	}
	if _, ok := stmt.Call.(*ast.MethodCall); !ok {
		t.Fatalf("call is %T, want *ast.MethodCall (accepted syntactically, even though evaluation rejects it)", stmt.Call)
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := syn.Parse("local x =")
	if err == nil {
		t.Fatal("expected a parse error for a local declaration missing its initializer")
	}
	if !strings.Contains(err.Error(), "line 1:10") {
		t.Fatalf("parse error %q does not report position line 1:10", err)
	}
}

func TestParseIntegerVsFloatLiteral(t *testing.T) {
	mod, err := syn.Parse("return 3, 3.0, 3.5")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := mod.Ret.Values[0].(ast.IntLiteral); !ok {
		t.Fatalf("3 parsed as %T, want ast.IntLiteral", mod.Ret.Values[0])
	}
	if _, ok := mod.Ret.Values[1].(ast.FloatLiteral); !ok {
		t.Fatalf("3.0 parsed as %T, want ast.FloatLiteral", mod.Ret.Values[1])
	}
	if _, ok := mod.Ret.Values[2].(ast.FloatLiteral); !ok {
		t.Fatalf("3.5 parsed as %T, want ast.FloatLiteral", mod.Ret.Values[2])
	}
}
