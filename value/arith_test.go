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

func TestCoerceNumber(t *testing.T) {
	if v, ok := value.CoerceNumber(value.Integer(3)); !ok || v.I != 3 {
		t.Fatalf("CoerceNumber(Integer(3)) = %v, %v", v, ok)
	}
	if v, ok := value.CoerceNumber(value.Str("42")); !ok || v.Kind != value.Int || v.I != 42 {
		t.Fatalf("CoerceNumber(\"42\") = %v, %v, want Integer(42)", v, ok)
	}
	if v, ok := value.CoerceNumber(value.Str("3.5")); !ok || v.Kind != value.Float || v.F != 3.5 {
		t.Fatalf("CoerceNumber(\"3.5\") = %v, %v, want Float(3.5)", v, ok)
	}
	if _, ok := value.CoerceNumber(value.Str("nope")); ok {
		t.Fatal("CoerceNumber(\"nope\") should fail")
	}
	if _, ok := value.CoerceNumber(value.TableValue(value.NewTable())); ok {
		t.Fatal("CoerceNumber(table) should fail")
	}
}

func TestCoerceString(t *testing.T) {
	if s, ok := value.CoerceString(value.Str("hi")); !ok || s != "hi" {
		t.Fatalf("CoerceString(\"hi\") = %q, %v", s, ok)
	}
	if s, ok := value.CoerceString(value.Integer(7)); !ok || s != "7" {
		t.Fatalf("CoerceString(Integer(7)) = %q, %v, want \"7\"", s, ok)
	}
	if _, ok := value.CoerceString(value.TableValue(value.NewTable())); ok {
		t.Fatal("CoerceString(table) should fail")
	}
}

func TestArithmeticIntegerStaysInteger(t *testing.T) {
	got := value.AddNumbers(value.Integer(2), value.Integer(3))
	if got.Kind != value.Int || got.I != 5 {
		t.Fatalf("AddNumbers(2, 3) = %v, want Integer(5)", got)
	}
}

func TestArithmeticFloatPromotes(t *testing.T) {
	got := value.AddNumbers(value.Integer(2), value.Floating(0.5))
	if got.Kind != value.Float || got.F != 2.5 {
		t.Fatalf("AddNumbers(2, 0.5) = %v, want Float(2.5)", got)
	}
}

func TestArithmeticIntegerOverflowWraps(t *testing.T) {
	max := value.Integer(2147483647)
	got := value.AddNumbers(max, value.Integer(1))
	if got.Kind != value.Int || got.I != -2147483648 {
		t.Fatalf("AddNumbers(MaxInt32, 1) = %v, want two's-complement wraparound", got)
	}
}

func TestDivAlwaysYieldsFloat(t *testing.T) {
	got := value.DivNumbers(value.Integer(4), value.Integer(2))
	if got.Kind != value.Float || got.F != 2.0 {
		t.Fatalf("DivNumbers(4, 2) = %v, want Float(2.0)", got)
	}
}

func TestNegateNumber(t *testing.T) {
	if got := value.NegateNumber(value.Integer(5)); got.Kind != value.Int || got.I != -5 {
		t.Fatalf("NegateNumber(5) = %v, want Integer(-5)", got)
	}
	if got := value.NegateNumber(value.Floating(2.5)); got.Kind != value.Float || got.F != -2.5 {
		t.Fatalf("NegateNumber(2.5) = %v, want Float(-2.5)", got)
	}
}

func TestOrderingNumbers(t *testing.T) {
	cmp, ok, nan := value.Ordering(value.Integer(1), value.Integer(2))
	if !ok || nan || cmp >= 0 {
		t.Fatalf("Ordering(1, 2) = %d, %v, %v, want negative, true, false", cmp, ok, nan)
	}
}

func TestOrderingStrings(t *testing.T) {
	cmp, ok, nan := value.Ordering(value.Str("a"), value.Str("b"))
	if !ok || nan || cmp >= 0 {
		t.Fatalf("Ordering(\"a\", \"b\") = %d, %v, %v, want negative, true, false", cmp, ok, nan)
	}
}

func TestOrderingNaNIsComparableButUnordered(t *testing.T) {
	var zero float64
	nanValue := value.Floating(zero / zero)
	_, ok, nan := value.Ordering(nanValue, value.Integer(1))
	if !ok {
		t.Fatal("Ordering against NaN should still report ok=true (it's a type error only for incomparable kinds)")
	}
	if !nan {
		t.Fatal("Ordering against NaN should report nan=true")
	}
}

func TestOrderingIncomparableKinds(t *testing.T) {
	if _, ok, _ := value.Ordering(value.TableValue(value.NewTable()), value.Integer(1)); ok {
		t.Fatal("Ordering a table against a number should report ok=false")
	}
}
