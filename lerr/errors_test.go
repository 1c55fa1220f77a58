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

package lerr_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/Malien/luar-sub001/lerr"
	"github.com/Malien/luar-sub001/value"
)

func TestKindsAreClassified(t *testing.T) {
	cases := []struct {
		err  *lerr.Error
		kind lerr.Kind
	}{
		{lerr.Parse("bad token %q", "}"), lerr.KindParse},
		{lerr.IsNotCallable(value.Integer(1)), lerr.KindType},
		{lerr.Assertion(""), lerr.KindAssertion},
		{lerr.IO(errors.New("disk is full")), lerr.KindIO},
		{lerr.Utf8(), lerr.KindUtf8},
	}
	for _, c := range cases {
		if c.err.Kind != c.kind {
			t.Errorf("%q: Kind = %v, want %v", c.err.Error(), c.err.Kind, c.kind)
		}
	}
}

func TestTypeErrorsCarryTypeKind(t *testing.T) {
	cases := []struct {
		err  *lerr.Error
		kind lerr.TypeKind
	}{
		{lerr.IsNotIndexable(value.Integer(1)), lerr.TypeIsNotIndexable},
		{lerr.CannotAccessMember(value.Str("k"), value.Integer(1)), lerr.TypeCannotAccessMember},
		{lerr.CannotAssignMember(value.Str("k"), value.Integer(1)), lerr.TypeCannotAssignMember},
		{lerr.CannotAccessProperty("x", value.Integer(1)), lerr.TypeCannotAccessProperty},
		{lerr.CannotAssignProperty("x", value.Integer(1)), lerr.TypeCannotAssignProperty},
		{lerr.NilAssign(value.Integer(1)), lerr.TypeNilAssign},
		{lerr.NaNAssign(value.Integer(1)), lerr.TypeNaNAssign},
		{lerr.UnaryMinus(value.Str("x")), lerr.TypeArithmeticUnaryMinus},
		{lerr.Binary(value.Str("x"), lerr.OpAdd, value.Integer(1)), lerr.TypeArithmeticBinary},
		{lerr.Ordering(value.Integer(1), value.Str("x"), lerr.OpLess), lerr.TypeOrdering},
		{lerr.StringConcat(value.TableValue(value.NewTable()), value.Integer(1)), lerr.TypeStringConcat},
		{lerr.ArgumentType(1, lerr.ExpectedNumber, value.Str("x")), lerr.TypeArgumentType},
	}
	for _, c := range cases {
		if c.err.Kind != lerr.KindType {
			t.Errorf("%q: Kind = %v, want KindType", c.err.Error(), c.err.Kind)
		}
		if c.err.Type != c.kind {
			t.Errorf("%q: Type = %v, want %v", c.err.Error(), c.err.Type, c.kind)
		}
	}
}

func TestAssertionMessageFormatting(t *testing.T) {
	if got := lerr.Assertion("").Error(); got != "Assertion failed" {
		t.Fatalf("Assertion(\"\") = %q, want \"Assertion failed\"", got)
	}
	if got := lerr.Assertion("oops").Error(); !strings.Contains(got, "oops") {
		t.Fatalf("Assertion(\"oops\") = %q, want it to contain \"oops\"", got)
	}
}

func TestExpectedTypeString(t *testing.T) {
	if got := lerr.ExpectedNumber.String(); got != "number" {
		t.Fatalf("ExpectedNumber.String() = %q, want \"number\"", got)
	}
	if got := lerr.ExpectedString.String(); got != "string" {
		t.Fatalf("ExpectedString.String() = %q, want \"string\"", got)
	}
}

func TestIOWrapsCause(t *testing.T) {
	cause := errors.New("disk is full")
	err := lerr.IO(cause)
	if !strings.Contains(err.Error(), "disk is full") {
		t.Fatalf("IO(cause).Error() = %q, want it to mention the cause", err.Error())
	}
}
