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

package stdlib_test

import (
	"bytes"
	"testing"

	"github.com/Malien/luar-sub001/eval"
	"github.com/Malien/luar-sub001/global"
	"github.com/Malien/luar-sub001/stdlib"
	"github.com/Malien/luar-sub001/syn"
	"github.com/Malien/luar-sub001/value"
)

func newEvaluator(out *bytes.Buffer) *eval.Evaluator {
	e := eval.New(global.NewStore())
	stdlib.Install(e, out)
	return e
}

func runOne(t *testing.T, e *eval.Evaluator, src string) value.Value {
	t.Helper()
	mod, err := syn.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	ret, err := e.EvalModule(mod)
	if err != nil {
		t.Fatalf("EvalModule(%q): %+v", src, err)
	}
	return ret.First()
}

func TestPrintWritesTabSeparatedLine(t *testing.T) {
	var out bytes.Buffer
	e := newEvaluator(&out)
	mod, err := syn.Parse(`print(1, "two", nil)`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := e.EvalModule(mod); err != nil {
		t.Fatalf("EvalModule: %+v", err)
	}
	if got, want := out.String(), "1\ttwo\tnil\n"; got != want {
		t.Fatalf("print output = %q, want %q", got, want)
	}
}

func TestTonumber(t *testing.T) {
	var out bytes.Buffer
	e := newEvaluator(&out)
	if v := runOne(t, e, `return tonumber("42")`); v.Kind != value.Int || v.I != 42 {
		t.Fatalf("tonumber(\"42\") = %v, want Integer(42)", v)
	}
	if v := runOne(t, e, `return tonumber("nope")`); !v.IsNil() {
		t.Fatalf("tonumber(\"nope\") = %v, want Nil", v)
	}
}

func TestTypeFn(t *testing.T) {
	var out bytes.Buffer
	e := newEvaluator(&out)
	cases := map[string]string{
		`return type(1)`:     "number",
		`return type("s")`:   "string",
		`return type(nil)`:   "nil",
		`return type({})`:    "table",
		`return type(print)`: "function",
	}
	for src, want := range cases {
		if v := runOne(t, e, src); v.S != want {
			t.Errorf("%s = %v, want %q", src, v, want)
		}
	}
}

func TestAssertPassesThroughTruthyValue(t *testing.T) {
	var out bytes.Buffer
	e := newEvaluator(&out)
	if v := runOne(t, e, `return assert(5)`); v.I != 5 {
		t.Fatalf("assert(5) = %v, want Integer(5)", v)
	}
}

func TestAssertFailsOnFalsy(t *testing.T) {
	var out bytes.Buffer
	e := newEvaluator(&out)
	mod, err := syn.Parse(`return assert(nil, "boom")`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := e.EvalModule(mod); err == nil {
		t.Fatal("assert(nil, ...) should error")
	}
}

func TestFloor(t *testing.T) {
	var out bytes.Buffer
	e := newEvaluator(&out)
	if v := runOne(t, e, `return floor(3.7)`); v.Kind != value.Int || v.I != 3 {
		t.Fatalf("floor(3.7) = %v, want Integer(3)", v)
	}
	if v := runOne(t, e, `return floor(-3.2)`); v.Kind != value.Int || v.I != -4 {
		t.Fatalf("floor(-3.2) = %v, want Integer(-4)", v)
	}
}

func TestRandomIsWithinUnitRange(t *testing.T) {
	var out bytes.Buffer
	e := newEvaluator(&out)
	v := runOne(t, e, `return random()`)
	if v.Kind != value.Float || v.F < 0 || v.F >= 1 {
		t.Fatalf("random() = %v, want a Float in [0, 1)", v)
	}
}

func TestStrlen(t *testing.T) {
	var out bytes.Buffer
	e := newEvaluator(&out)
	if v := runOne(t, e, `return strlen("hello")`); v.I != 5 {
		t.Fatalf("strlen(\"hello\") = %v, want Integer(5)", v)
	}
}

func TestStrsub(t *testing.T) {
	var out bytes.Buffer
	e := newEvaluator(&out)
	if v := runOne(t, e, `return strsub("hello world", 1, 5)`); v.S != "hello" {
		t.Fatalf("strsub(\"hello world\", 1, 5) = %v, want \"hello\"", v)
	}
	if v := runOne(t, e, `return strsub("hello world", 7)`); v.S != "world" {
		t.Fatalf("strsub(\"hello world\", 7) = %v, want \"world\"", v)
	}
	if v := runOne(t, e, `return strsub("hello", -3, -1)`); v.S != "llo" {
		t.Fatalf("strsub(\"hello\", -3, -1) = %v, want \"llo\"", v)
	}
}

func TestStrsubArgumentTypeError(t *testing.T) {
	var out bytes.Buffer
	e := newEvaluator(&out)
	mod, err := syn.Parse(`return strsub({}, 1)`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := e.EvalModule(mod); err == nil {
		t.Fatal("strsub({}, 1) should error since a table does not coerce to a string")
	}
}
