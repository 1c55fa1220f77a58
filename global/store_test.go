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

package global_test

import (
	"testing"

	"github.com/Malien/luar-sub001/global"
	"github.com/Malien/luar-sub001/value"
)

func TestGetOnUnknownNameIsNil(t *testing.T) {
	s := global.NewStore()
	if got := s.Get("missing"); !got.IsNil() {
		t.Fatalf("Get(\"missing\") = %v, want Nil", got)
	}
}

func TestSetThenGet(t *testing.T) {
	s := global.NewStore()
	s.Set("x", value.Integer(10))
	if got := s.Get("x"); got.I != 10 {
		t.Fatalf("Get(\"x\") = %v, want Integer(10)", got)
	}
}

func TestCellForIsStableAndCreatesOnce(t *testing.T) {
	s := global.NewStore()
	id1 := s.CellFor("x")
	id2 := s.CellFor("x")
	if id1 != id2 {
		t.Fatalf("CellFor(\"x\") returned %v then %v, want the same id", id1, id2)
	}
}

func TestLookupCellDoesNotCreate(t *testing.T) {
	s := global.NewStore()
	if _, ok := s.LookupCell("never-set"); ok {
		t.Fatal("LookupCell should not find a name that was never assigned or looked up via CellFor")
	}
	s.CellFor("now-exists")
	if _, ok := s.LookupCell("now-exists"); !ok {
		t.Fatal("LookupCell should find a name after CellFor created it")
	}
}

func TestValueOfAndSetCellRoundTrip(t *testing.T) {
	s := global.NewStore()
	id := s.CellFor("x")
	s.SetCell(id, value.Str("hi"))
	if got := s.ValueOf(id); got.S != "hi" {
		t.Fatalf("ValueOf(id) = %v, want \"hi\"", got)
	}
	if got := s.Get("x"); got.S != "hi" {
		t.Fatalf("Get(\"x\") after SetCell = %v, want \"hi\"", got)
	}
}

func TestLenCountsDistinctNames(t *testing.T) {
	s := global.NewStore()
	s.Set("a", value.Integer(1))
	s.Set("b", value.Integer(2))
	s.Set("a", value.Integer(3))
	if got := s.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}
