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

package value

import (
	"fmt"
	"strconv"
)

// Kind discriminates the variant held by a Value.
type Kind uint8

const (
	Nil Kind = iota
	Int
	Float
	String
	Function
	NativeFunction
	TableKind
)

func (k Kind) String() string {
	switch k {
	case Nil:
		return "nil"
	case Int, Float:
		return "number"
	case String:
		return "string"
	case Function, NativeFunction:
		return "function"
	case TableKind:
		return "table"
	default:
		return "unknown"
	}
}

// BlockID indexes a compiled function body in the register machine's code
// block table. It also doubles as the identity of a user Function value.
type BlockID int32

// Native wraps a host-provided callable. Equality of NativeFunction values
// is by pointer identity of this wrapper, mirroring the reference
// implementation's Rc pointer-equality on native function handles.
type Native struct {
	Name string
	Call func(args []Value) (Return, error)
}

// Value is a runtime value of the scripting language: Nil, Integer, Float,
// String, a reference to a host-provided NativeFunction, a code-block index
// identifying a user Function, or a shared handle to a Table.
//
// Only one payload field is meaningful at a time, selected by Kind; this
// costs a little memory over a true tagged union but keeps the type a plain
// comparable-where-possible struct, which is convenient for tests and table
// keys.
type Value struct {
	Kind  Kind
	I     int32
	F     float64
	S     string
	Block BlockID
	Fn    *Native
	Tbl   *Table
}

// NilValue is the canonical Nil value.
var NilValue = Value{Kind: Nil}

func Integer(i int32) Value { return Value{Kind: Int, I: i} }
func Floating(f float64) Value { return Value{Kind: Float, F: f} }
func Str(s string) Value { return Value{Kind: String, S: s} }
func Func(block BlockID) Value { return Value{Kind: Function, Block: block} }
func NativeFunc(n *Native) Value { return Value{Kind: NativeFunction, Fn: n} }
func TableValue(t *Table) Value { return Value{Kind: TableKind, Tbl: t} }

// True and False are the canonical truth values used by comparisons and by
// the `not` operator: a truthy result is the Integer 1, a falsy result is
// Nil. This runtime has no dedicated boolean variant, per design note 9(a).
func True() Value  { return Integer(1) }
func False() Value { return NilValue }

// FromBool converts a Go bool into the runtime's truth encoding.
func FromBool(b bool) Value {
	if b {
		return True()
	}
	return False()
}

// IsTruthy reports whether v is anything other than Nil. 0, "", and an
// empty table are all truthy.
func (v Value) IsTruthy() bool { return v.Kind != Nil }

// IsFalsy is the complement of IsTruthy.
func (v Value) IsFalsy() bool { return v.Kind == Nil }

func (v Value) IsNil() bool            { return v.Kind == Nil }
func (v Value) IsNumber() bool         { return v.Kind == Int || v.Kind == Float }
func (v Value) IsString() bool         { return v.Kind == String }
func (v Value) IsTable() bool          { return v.Kind == TableKind }
func (v Value) IsCallable() bool       { return v.Kind == Function || v.Kind == NativeFunction }

// TypeName reports one of "nil", "number", "string", "function", "table"
// per the `type` builtin (§4.9).
func (v Value) TypeName() string { return v.Kind.String() }

// AsFloat64 returns the IEEE-754 value of a Number, promoting Integer.
// It panics if v is not a Number; callers must check IsNumber first.
func (v Value) AsFloat64() float64 {
	switch v.Kind {
	case Int:
		return float64(v.I)
	case Float:
		return v.F
	default:
		panic("value: AsFloat64 called on a non-Number value")
	}
}

// Equal implements `==` semantics (§4.1): cross-variant is always unequal;
// Numbers compare by numeric value with NaN unequal to itself; Strings by
// value; Functions by code-block identity; NativeFunctions and Tables by
// handle identity.
func (a Value) Equal(b Value) bool {
	switch {
	case a.IsNumber() && b.IsNumber():
		af, bf := a.AsFloat64(), b.AsFloat64()
		return af == bf
	case a.Kind != b.Kind:
		return false
	}
	switch a.Kind {
	case Nil:
		return true
	case String:
		return a.S == b.S
	case Function:
		return a.Block == b.Block
	case NativeFunction:
		return a.Fn == b.Fn
	case TableKind:
		return a.Tbl == b.Tbl
	default:
		return false
	}
}

// String formats v for display and for §4.1 "string coercion": numbers use
// the shortest round-trip representation, other kinds get a debug-ish
// rendering analogous to the reference implementation's Debug fallback.
func (v Value) String() string {
	switch v.Kind {
	case Nil:
		return "nil"
	case Int:
		return strconv.FormatInt(int64(v.I), 10)
	case Float:
		return formatFloat(v.F)
	case String:
		return v.S
	case Function:
		return fmt.Sprintf("<function %d>", v.Block)
	case NativeFunction:
		if v.Fn != nil && v.Fn.Name != "" {
			return fmt.Sprintf("<native function %q>", v.Fn.Name)
		}
		return "<native function>"
	case TableKind:
		return fmt.Sprintf("<table %p>", v.Tbl)
	default:
		return "<invalid value>"
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
