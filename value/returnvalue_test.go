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

func TestReturnFirstOnEmptyIsNil(t *testing.T) {
	if got := value.NoReturn.First(); !got.IsNil() {
		t.Fatalf("NoReturn.First() = %v, want Nil", got)
	}
}

func TestReturnOneAndMany(t *testing.T) {
	one := value.One(value.Integer(5))
	if one.Len() != 1 || one.First().I != 5 {
		t.Fatalf("One(5) = %v, want a single Integer(5)", one.Values())
	}
	many := value.Many([]value.Value{value.Integer(1), value.Integer(2)})
	if !many.IsMulti() || many.Len() != 2 {
		t.Fatalf("Many([1 2]) = %v, want a multi-value Return of len 2", many.Values())
	}
}

func TestManyOfEmptySliceIsNoReturn(t *testing.T) {
	got := value.Many(nil)
	if got.Len() != 0 {
		t.Fatalf("Many(nil).Len() = %d, want 0", got.Len())
	}
}

func TestCollectListExpandsOnlyLastPosition(t *testing.T) {
	rs := []value.Return{
		value.Many([]value.Value{value.Integer(1), value.Integer(2)}),
		value.Many([]value.Value{value.Integer(3), value.Integer(4)}),
	}
	got := value.CollectList(rs)
	want := []value.Value{value.Integer(1), value.Integer(3), value.Integer(4)}
	if len(got) != len(want) {
		t.Fatalf("CollectList = %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("CollectList[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCollectListOfSingleEmptyReturn(t *testing.T) {
	got := value.CollectList([]value.Return{value.NoReturn})
	if len(got) != 0 {
		t.Fatalf("CollectList([NoReturn]) = %v, want empty", got)
	}
}

func TestCollectListOnEmptyList(t *testing.T) {
	if got := value.CollectList(nil); got != nil {
		t.Fatalf("CollectList(nil) = %v, want nil", got)
	}
}

func TestExpandIntoNonLastCollapsesToFirst(t *testing.T) {
	r := value.Many([]value.Value{value.Integer(1), value.Integer(2), value.Integer(3)})
	got := value.ExpandInto(nil, r, false)
	if len(got) != 1 || got[0].I != 1 {
		t.Fatalf("ExpandInto(non-last) = %v, want [1]", got)
	}
}
