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

import "strconv"

// CoerceNumber implements the arithmetic-coercion rule of §4.1: a Number
// coerces to itself; a String coerces if it parses as an integer or float;
// anything else fails.
func CoerceNumber(v Value) (Value, bool) {
	switch v.Kind {
	case Int, Float:
		return v, true
	case String:
		return ParseNumberString(v.S)
	default:
		return Value{}, false
	}
}

// ParseNumberString parses s the same way the lexer parses a numeric
// literal: an integer form first, falling back to float, so that "3"
// coerces to an Integer (preserving two's-complement arithmetic) while
// "3.5" coerces to a Float.
func ParseNumberString(s string) (Value, bool) {
	if i, err := strconv.ParseInt(s, 10, 32); err == nil {
		return Integer(int32(i)), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Floating(f), true
	}
	return Value{}, false
}

// CoerceString implements the concatenation/string-coercion side of §4.1:
// a String coerces to itself; a Number formats via its shortest
// round-trip representation; anything else fails.
func CoerceString(v Value) (string, bool) {
	switch v.Kind {
	case String:
		return v.S, true
	case Int, Float:
		return v.String(), true
	default:
		return "", false
	}
}

// AddNumbers, SubNumbers, MulNumbers and DivNumbers implement the
// promotion rule of §3: Integer-Integer wraps in two's complement and
// stays Integer; any Float operand promotes the result to Float; Div
// always yields Float.

func AddNumbers(a, b Value) Value {
	if a.Kind == Int && b.Kind == Int {
		return Integer(a.I + b.I)
	}
	return Floating(a.AsFloat64() + b.AsFloat64())
}

func SubNumbers(a, b Value) Value {
	if a.Kind == Int && b.Kind == Int {
		return Integer(a.I - b.I)
	}
	return Floating(a.AsFloat64() - b.AsFloat64())
}

func MulNumbers(a, b Value) Value {
	if a.Kind == Int && b.Kind == Int {
		return Integer(a.I * b.I)
	}
	return Floating(a.AsFloat64() * b.AsFloat64())
}

func DivNumbers(a, b Value) Value {
	return Floating(a.AsFloat64() / b.AsFloat64())
}

// NegateNumber implements unary minus on an already-coerced Number.
func NegateNumber(v Value) Value {
	if v.Kind == Int {
		return Integer(-v.I)
	}
	return Floating(-v.F)
}

// Ordering reports the three-way comparison between two comparable
// values, per §4.1: Number-Number compares numerically; String-String
// compares lexicographically by byte; a String paired with a Number
// compares after formatting the Number as a String. Any other pairing is
// not comparable at all and reports ok=false.
//
// A NaN operand is a comparable Number that simply has no ordering
// against anything, itself included: nan reports this case separately
// from ok so a caller can tell "these two values cannot be compared"
// (a type error) apart from "these compare, but every directional
// comparison is false" (not an error — per §3 a NaN comparison is just
// falsy). cmp is meaningless when nan is true.
func Ordering(a, b Value) (cmp int, ok bool, nan bool) {
	switch {
	case a.IsNumber() && b.IsNumber():
		af, bf := a.AsFloat64(), b.AsFloat64()
		if af != af || bf != bf {
			return 0, true, true
		}
		switch {
		case af < bf:
			return -1, true, false
		case af > bf:
			return 1, true, false
		default:
			return 0, true, false
		}
	case a.IsString() && b.IsString():
		return compareStrings(a.S, b.S), true, false
	case a.IsString() && b.IsNumber():
		return compareStrings(a.S, b.String()), true, false
	case a.IsNumber() && b.IsString():
		return compareStrings(a.String(), b.S), true, false
	default:
		return 0, false, false
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
