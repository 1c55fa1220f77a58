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

// Return is the result of evaluating an expression or a call: zero, one, or
// many values. Only the last expression in a given position (a return
// statement's value list, the right-hand side of an assignment, a local
// declaration's initializer list, or a call's argument list) is allowed to
// contribute more than its first value; every other position collapses a
// Return down to its first value via Single.
type Return struct {
	values []Value
}

// NoReturn is the empty Return, equivalent to a statement that produced no
// values at all (a bare `return` with no expressions, or any multi-value
// position reached with no arguments supplied).
var NoReturn = Return{}

// One wraps a single value as a Return.
func One(v Value) Return { return Return{values: []Value{v}} }

// Many wraps an already-collected slice of values as a Return. The slice is
// taken by reference; callers should not mutate it afterwards.
func Many(vs []Value) Return {
	if len(vs) == 0 {
		return NoReturn
	}
	return Return{values: vs}
}

// Len reports how many values this Return carries.
func (r Return) Len() int { return len(r.values) }

// Values exposes the full slice of values, e.g. for spreading into a call's
// final argument position or a return statement's tail.
func (r Return) Values() []Value { return r.values }

// First collapses r down to its first value, or Nil if r is empty. This is
// the rule applied everywhere except the one trailing position per
// expression list that is allowed to expand.
func (r Return) First() Value {
	if len(r.values) == 0 {
		return NilValue
	}
	return r.values[0]
}

// IsMulti reports whether r carries more than one value.
func (r Return) IsMulti() bool { return len(r.values) > 1 }

// ExpandInto appends the values this Return contributes to an
// expression-list position: all of them if this is the last expression in
// the list, otherwise just the first.
func ExpandInto(dst []Value, r Return, isLast bool) []Value {
	if isLast {
		if r.Len() == 0 {
			return dst
		}
		return append(dst, r.Values()...)
	}
	return append(dst, r.First())
}

// CollectList evaluates an expression list's Returns into a flat []Value
// slice applying the last-position expansion rule: rs[len(rs)-1] contributes
// all of its values, every earlier Return contributes only its first value.
func CollectList(rs []Return) []Value {
	if len(rs) == 0 {
		return nil
	}
	out := make([]Value, 0, len(rs))
	for i, r := range rs {
		out = ExpandInto(out, r, i == len(rs)-1)
	}
	return out
}
