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

package lerr

import (
	"github.com/Malien/luar-sub001/value"
	"github.com/pkg/errors"
)

// Kind classifies an *Error for callers that want to branch on it without a
// full type switch (e.g. telling a parse error apart from a runtime type
// error).
type Kind uint8

const (
	KindParse Kind = iota
	KindType
	KindArithmetic
	KindAssertion
	KindIO
	KindUtf8
)

// Error is the single error type produced by this runtime's own
// classification logic. Library code elsewhere in the module wraps *Error
// values with errors.Wrap/errors.Wrapf to attach call-site context; the
// classification survives underneath and is recovered with errors.Cause.
type Error struct {
	Kind Kind
	Type TypeKind // meaningful only when Kind == KindType
	msg  string
}

func (e *Error) Error() string { return e.msg }

// TypeKind further classifies a KindType error.
type TypeKind uint8

const (
	TypeIsNotCallable TypeKind = iota
	TypeArgumentType
	TypeNilAssign
	TypeNaNAssign
	TypeIsNotIndexable
	TypeCannotAccessProperty
	TypeCannotAssignProperty
	TypeCannotAccessMember
	TypeCannotAssignMember
	TypeOrdering
	TypeStringConcat
	TypeArithmeticUnaryMinus
	TypeArithmeticBinary
)

func newType(tk TypeKind, msg string, args ...interface{}) *Error {
	return &Error{Kind: KindType, Type: tk, msg: "Type Error: " + errors.Errorf(msg, args...).Error()}
}

// Parse reports a syntax error produced by package syn, with position info
// already folded into msg by the caller.
func Parse(msg string, args ...interface{}) *Error {
	return &Error{Kind: KindParse, msg: errors.Errorf(msg, args...).Error()}
}

// IsNotCallable reports an attempt to call a non-function value.
func IsNotCallable(v value.Value) *Error {
	return newType(TypeIsNotCallable, "Attempting to call %s, which is not callable", v)
}

// ExpectedType names the argument type a native function requires.
type ExpectedType uint8

const (
	ExpectedNumber ExpectedType = iota
	ExpectedString
)

func (e ExpectedType) String() string {
	if e == ExpectedString {
		return "string"
	}
	return "number"
}

// ArgumentType reports a native function call whose argument at position
// (1-based) did not have the required type.
func ArgumentType(position int, expected ExpectedType, got value.Value) *Error {
	return newType(TypeArgumentType,
		"Invalid argument type at position %d, expected %s, got %s", position, expected, got)
}

// NilAssign reports `t[nil] = value`; value is the value that was being
// assigned, not the key.
func NilAssign(assigned value.Value) *Error {
	return newType(TypeNilAssign, "Tried to assign value %s to a nil key in a table", assigned)
}

// NaNAssign reports `t[0/0] = value`; value is the value that was being
// assigned, not the key.
func NaNAssign(assigned value.Value) *Error {
	return newType(TypeNaNAssign, "Tried to assign value %s to a NaN key in a table", assigned)
}

// IsNotIndexable reports `v[k]` where v is not a table.
func IsNotIndexable(v value.Value) *Error {
	return newType(TypeIsNotIndexable, "Value %s cannot be indexed", v)
}

// CannotAccessProperty reports `v.name` where v is not a table.
func CannotAccessProperty(property string, of value.Value) *Error {
	return newType(TypeCannotAccessProperty, "Cannot access property %s of %s", property, of)
}

// CannotAssignProperty reports `v.name = x` where v is not a table.
func CannotAssignProperty(property string, of value.Value) *Error {
	return newType(TypeCannotAssignProperty, "Cannot assign to property %s of %s", property, of)
}

// CannotAccessMember reports `v[k]` on a non-indexable v, named by the key
// expression rather than a dotted property.
func CannotAccessMember(member, of value.Value) *Error {
	return newType(TypeCannotAccessMember, "Cannot access member %s of %s", member, of)
}

// CannotAssignMember reports `v[k] = x` on a non-indexable v.
func CannotAssignMember(member, of value.Value) *Error {
	return newType(TypeCannotAssignMember, "Cannot assign to a member %s of %s", member, of)
}

// OrderingOperator names the comparison operator involved in an Ordering
// error.
type OrderingOperator uint8

const (
	OpLess OrderingOperator = iota
	OpGreater
	OpLessOrEqual
	OpGreaterOrEqual
)

func (o OrderingOperator) String() string {
	switch o {
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpLessOrEqual:
		return "<="
	case OpGreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

// Ordering reports a comparison between two values that cannot be ordered
// (different types, or a type that has no ordering at all, e.g. tables).
func Ordering(lhs, rhs value.Value, op OrderingOperator) *Error {
	return newType(TypeOrdering,
		"Cannot compare %s and %s with an \"%s\" operator", lhs, rhs, op)
}

// StringConcat reports `..` applied to an operand that is neither a string
// nor a number.
func StringConcat(lhs, rhs value.Value) *Error {
	return newType(TypeStringConcat, "Cannot do a string concatenation of %s and %s", lhs, rhs)
}

// ArithmeticOperator names the arithmetic operator involved in a Binary
// arithmetic error.
type ArithmeticOperator uint8

const (
	OpAdd ArithmeticOperator = iota
	OpSub
	OpMul
	OpDiv
)

func (o ArithmeticOperator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// UnaryMinus reports unary `-` applied to a value that cannot be negated.
func UnaryMinus(v value.Value) *Error {
	return newType(TypeArithmeticUnaryMinus,
		"Arithmetic Error: Cannot apply unary minus operator to %s", v)
}

// Binary reports a binary arithmetic operator applied to operands that
// cannot be coerced to numbers.
func Binary(lhs value.Value, op ArithmeticOperator, rhs value.Value) *Error {
	return newType(TypeArithmeticBinary,
		"Arithmetic Error: Cannot apply operator \"%s\" to operands %s and %s", op, lhs, rhs)
}

// Assertion reports a failed call to the `assert` builtin. msg is empty when
// assert was called with no message argument.
func Assertion(msg string) *Error {
	if msg == "" {
		return &Error{Kind: KindAssertion, msg: "Assertion failed"}
	}
	return &Error{Kind: KindAssertion, msg: "Assertion failed: " + msg}
}

// IO wraps an underlying I/O error (e.g. a failed read from the REPL's
// input stream).
func IO(cause error) *Error {
	return &Error{Kind: KindIO, msg: errors.Wrap(cause, "IO Error").Error()}
}

// Utf8 reports that an operation (e.g. strsub slicing a string at a
// non-boundary) would produce invalid UTF-8.
func Utf8() *Error {
	return &Error{Kind: KindUtf8, msg: "Operation produced invalid utf-8 sequence"}
}
