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

import "math"

// Table is a shared, mutable associative array, the runtime's single
// compound data structure. It keeps a dense "array part" for consecutive
// positive-integer keys starting at 1 and a hash part for everything else,
// mirroring the two-part table representation of the reference
// implementation this runtime is modeled on. Values are addressed through a
// *Table handle, so assigning a table to a variable or passing it as an
// argument aliases the same storage rather than copying it.
type Table struct {
	array []Value
	hash  map[hashKey]Value
}

// NewTable allocates an empty table.
func NewTable() *Table {
	return &Table{}
}

// hashKey is the canonical, comparable form of a Value used as a table key.
// Integral floats are folded into the same key as the equal Integer (so
// t[3] and t[3.0] refer to the same slot), matching the Equal semantics
// Values already use for numbers.
type hashKey struct {
	kind Kind
	i    int64
	f    float64
	s    string
	tbl  *Table
	fn   *Native
	blk  BlockID
}

// canonicalKey reports the hashKey for v, and whether v is usable as a
// table key at all (Nil and NaN are not).
func canonicalKey(v Value) (hashKey, bool) {
	switch v.Kind {
	case Nil:
		return hashKey{}, false
	case Int:
		return hashKey{kind: Int, i: int64(v.I)}, true
	case Float:
		if math.IsNaN(v.F) {
			return hashKey{}, false
		}
		if isIntegralFloat(v.F) {
			return hashKey{kind: Int, i: int64(v.F)}, true
		}
		return hashKey{kind: Float, f: v.F}, true
	case String:
		return hashKey{kind: String, s: v.S}, true
	case TableKind:
		return hashKey{kind: TableKind, tbl: v.Tbl}, true
	case NativeFunction:
		return hashKey{kind: NativeFunction, fn: v.Fn}, true
	case Function:
		return hashKey{kind: Function, blk: v.Block}, true
	default:
		return hashKey{}, false
	}
}

func isIntegralFloat(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0)
}

// arrayIndex reports the 1-based array-part index this key addresses, and
// whether it is array-shaped at all (a positive integral key).
func (k hashKey) arrayIndex() (int, bool) {
	if k.kind != Int || k.i < 1 {
		return 0, false
	}
	const maxArrayIndex = 1 << 30
	if k.i > maxArrayIndex {
		return 0, false
	}
	return int(k.i), true
}

// Get looks up key in the table, returning Nil if absent or if key is not a
// usable key (Nil or NaN key lookups simply miss, they don't error; only
// Set on such a key is an error).
func (t *Table) Get(key Value) Value {
	k, ok := canonicalKey(key)
	if !ok {
		return NilValue
	}
	if idx, isArr := k.arrayIndex(); isArr && idx <= len(t.array) {
		return t.array[idx-1]
	}
	if t.hash == nil {
		return NilValue
	}
	return t.hash[k]
}

// CanKey reports whether v may be used as a table key in a Set call.
func CanKey(v Value) bool {
	_, ok := canonicalKey(v)
	return ok
}

// Set stores value under key. Key must not be Nil or NaN; callers are
// expected to have already checked CanKey and raised the appropriate
// NilAssign/NaNAssign error before calling Set, since the assignment-target
// value (not the key) is what those errors report.
//
// A positive integer key equal to len(array)+1 extends the dense array part
// and then absorbs any now-contiguous keys waiting in the hash part; a key
// within [1, len(array)] overwrites in place (storing Nil there does not
// shrink the array, matching the "holes are just Nil" rule); every other
// key goes to the hash part.
func (t *Table) Set(key, val Value) {
	k, ok := canonicalKey(key)
	if !ok {
		return
	}
	idx, isArr := k.arrayIndex()
	if !isArr {
		t.setHash(k, val)
		return
	}
	switch {
	case idx <= len(t.array):
		t.array[idx-1] = val
	case idx == len(t.array)+1:
		t.array = append(t.array, val)
		t.absorbFromHash()
	default:
		t.setHash(k, val)
	}
}

func (t *Table) setHash(k hashKey, val Value) {
	if val.IsNil() {
		if t.hash != nil {
			delete(t.hash, k)
		}
		return
	}
	if t.hash == nil {
		t.hash = make(map[hashKey]Value)
	}
	t.hash[k] = val
}

// absorbFromHash pulls consecutive integer keys immediately following the
// array part out of the hash and into the array, in case earlier Sets
// landed them there before the array grew to reach them.
func (t *Table) absorbFromHash() {
	if t.hash == nil {
		return
	}
	for {
		next := hashKey{kind: Int, i: int64(len(t.array) + 1)}
		v, ok := t.hash[next]
		if !ok {
			return
		}
		delete(t.hash, next)
		t.array = append(t.array, v)
	}
}

// Len reports the table's "border": the length of the contiguous run of
// non-Nil values starting at index 1 in the array part. A table with holes
// has an implementation-defined border, as in the reference language; this
// runtime always returns the array part's trimmed length.
func (t *Table) Len() int {
	n := len(t.array)
	for n > 0 && t.array[n-1].IsNil() {
		n--
	}
	return n
}

// Iterate calls fn once for every non-Nil key/value pair in the table, array
// part first (in index order) then the hash part (in unspecified order),
// stopping early if fn returns false.
func (t *Table) Iterate(fn func(key, val Value) bool) {
	for i, v := range t.array {
		if v.IsNil() {
			continue
		}
		if !fn(Integer(int32(i+1)), v) {
			return
		}
	}
	for k, v := range t.hash {
		if !fn(keyToValue(k), v) {
			return
		}
	}
}

func keyToValue(k hashKey) Value {
	switch k.kind {
	case Int:
		return Integer(int32(k.i))
	case Float:
		return Floating(k.f)
	case String:
		return Str(k.s)
	case TableKind:
		return TableValue(k.tbl)
	case NativeFunction:
		return NativeFunc(k.fn)
	case Function:
		return Func(k.blk)
	default:
		return NilValue
	}
}
