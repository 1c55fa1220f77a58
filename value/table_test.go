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

package value_test

import (
	"testing"

	"github.com/Malien/luar-sub001/value"
)

func TestTableArrayPartGrowsContiguously(t *testing.T) {
	tbl := value.NewTable()
	tbl.Set(value.Integer(1), value.Str("a"))
	tbl.Set(value.Integer(2), value.Str("b"))
	tbl.Set(value.Integer(3), value.Str("c"))
	if got := tbl.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	if got := tbl.Get(value.Integer(2)); got.S != "b" {
		t.Fatalf("Get(2) = %v, want \"b\"", got)
	}
}

func TestTableHashAbsorbedWhenContiguous(t *testing.T) {
	tbl := value.NewTable()
	tbl.Set(value.Integer(2), value.Str("second"))
	if got := tbl.Len(); got != 0 {
		t.Fatalf("Len() = %d before index 1 is set, want 0", got)
	}
	tbl.Set(value.Integer(1), value.Str("first"))
	if got := tbl.Len(); got != 2 {
		t.Fatalf("Len() = %d after absorbing index 2 from the hash part, want 2", got)
	}
	if got := tbl.Get(value.Integer(2)); got.S != "second" {
		t.Fatalf("Get(2) = %v, want \"second\"", got)
	}
}

func TestTableIntegralFloatKeySharesIntegerSlot(t *testing.T) {
	tbl := value.NewTable()
	tbl.Set(value.Integer(3), value.Str("x"))
	if got := tbl.Get(value.Floating(3.0)); got.S != "x" {
		t.Fatalf("Get(3.0) = %v, want \"x\" (shares slot with Integer(3))", got)
	}
}

func TestTableStringAndNumberKeysAreDistinct(t *testing.T) {
	tbl := value.NewTable()
	tbl.Set(value.Str("1"), value.Str("string-key"))
	tbl.Set(value.Integer(1), value.Str("int-key"))
	if got := tbl.Get(value.Str("1")); got.S != "string-key" {
		t.Fatalf("Get(\"1\") = %v, want \"string-key\"", got)
	}
	if got := tbl.Get(value.Integer(1)); got.S != "int-key" {
		t.Fatalf("Get(1) = %v, want \"int-key\"", got)
	}
}

func TestTableGetMissingIsNil(t *testing.T) {
	tbl := value.NewTable()
	if got := tbl.Get(value.Str("absent")); !got.IsNil() {
		t.Fatalf("Get on a missing key = %v, want Nil", got)
	}
}

func TestTableSetNilValueDeletesFromHash(t *testing.T) {
	tbl := value.NewTable()
	tbl.Set(value.Str("k"), value.Integer(1))
	tbl.Set(value.Str("k"), value.NilValue)
	if got := tbl.Get(value.Str("k")); !got.IsNil() {
		t.Fatalf("Get after Set(nil) = %v, want Nil", got)
	}
}

func TestTableCanKeyRejectsNilAndNaN(t *testing.T) {
	if value.CanKey(value.NilValue) {
		t.Fatal("Nil should not be a usable table key")
	}
	nan := value.Floating(nanValue())
	if value.CanKey(nan) {
		t.Fatal("NaN should not be a usable table key")
	}
	if !value.CanKey(value.Integer(0)) {
		t.Fatal("Integer(0) should be a usable table key")
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func TestTableLenStopsAtHole(t *testing.T) {
	tbl := value.NewTable()
	tbl.Set(value.Integer(1), value.Integer(1))
	tbl.Set(value.Integer(2), value.Integer(2))
	tbl.Set(value.Integer(2), value.NilValue)
	if got := tbl.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1 (trailing Nil trimmed)", got)
	}
}

func TestTableIterateVisitsArrayThenHash(t *testing.T) {
	tbl := value.NewTable()
	tbl.Set(value.Integer(1), value.Str("a"))
	tbl.Set(value.Integer(2), value.Str("b"))
	tbl.Set(value.Str("k"), value.Str("c"))

	seen := map[string]value.Value{}
	tbl.Iterate(func(k, v value.Value) bool {
		seen[k.String()] = v
		return true
	})
	if len(seen) != 3 {
		t.Fatalf("Iterate visited %d pairs, want 3: %v", len(seen), seen)
	}
	if seen["1"].S != "a" || seen["2"].S != "b" || seen["k"].S != "c" {
		t.Fatalf("unexpected pairs: %v", seen)
	}
}

func TestTableIterateStopsEarly(t *testing.T) {
	tbl := value.NewTable()
	tbl.Set(value.Integer(1), value.Integer(1))
	tbl.Set(value.Integer(2), value.Integer(2))
	tbl.Set(value.Integer(3), value.Integer(3))

	count := 0
	tbl.Iterate(func(k, v value.Value) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("Iterate invoked fn %d times after a false return, want 1", count)
	}
}
