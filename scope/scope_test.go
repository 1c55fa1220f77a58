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

package scope_test

import (
	"testing"

	"github.com/Malien/luar-sub001/global"
	"github.com/Malien/luar-sub001/scope"
	"github.com/Malien/luar-sub001/value"
)

func TestLocalFallsThroughToGlobal(t *testing.T) {
	g := global.NewStore()
	g.Set("x", value.Integer(99))
	s := scope.NewStack(g)
	top := s.Top()
	if got := top.Get("x"); got.I != 99 {
		t.Fatalf("Get(\"x\") = %v, want Integer(99) from the global store", got)
	}
}

func TestDeclareLocalShadowsGlobal(t *testing.T) {
	g := global.NewStore()
	g.Set("x", value.Integer(1))
	s := scope.NewStack(g)
	top := s.Top()
	top.DeclareLocal("x", value.Integer(2))
	if got := top.Get("x"); got.I != 2 {
		t.Fatalf("Get(\"x\") = %v, want the shadowing local Integer(2)", got)
	}
	if got := g.Get("x"); got.I != 1 {
		t.Fatalf("global \"x\" = %v, want unchanged Integer(1)", got)
	}
}

func TestSetFindsOuterFrameBeforeGlobal(t *testing.T) {
	g := global.NewStore()
	s := scope.NewStack(g)
	top := s.Top()
	top.DeclareLocal("x", value.Integer(1))
	child := top.Child()
	child.Set("x", value.Integer(2))
	if got := top.Get("x"); got.I != 2 {
		t.Fatalf("outer frame's \"x\" = %v, want Integer(2) after Set from the child", got)
	}
	if got := g.Get("x"); !got.IsNil() {
		t.Fatalf("global \"x\" = %v, want Nil (Set should have found the outer frame first)", got)
	}
}

func TestSetOfUnboundNameCreatesGlobal(t *testing.T) {
	g := global.NewStore()
	s := scope.NewStack(g)
	top := s.Top()
	top.Set("y", value.Integer(5))
	if got := g.Get("y"); got.I != 5 {
		t.Fatalf("global \"y\" = %v, want Integer(5)", got)
	}
}

func TestChildDoesNotSeeSiblingLocals(t *testing.T) {
	g := global.NewStore()
	s := scope.NewStack(g)
	top := s.Top()

	c1 := top.Child()
	c1.DeclareLocal("only_in_c1", value.Integer(1))

	top2 := s.Top()
	c2 := top2.Child()
	if got := c2.Get("only_in_c1"); !got.IsNil() {
		t.Fatalf("Get(\"only_in_c1\") in a fresh sibling frame = %v, want Nil (frame was cleared for reuse)", got)
	}
}

func TestDeclareLocalDoesNotLeakToParent(t *testing.T) {
	g := global.NewStore()
	s := scope.NewStack(g)
	top := s.Top()
	child := top.Child()
	child.DeclareLocal("inner", value.Integer(7))
	if got := top.Get("inner"); !got.IsNil() {
		t.Fatalf("parent frame's Get(\"inner\") = %v, want Nil", got)
	}
}
