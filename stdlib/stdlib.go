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

package stdlib

import (
	"io"
	"math"
	"math/rand"
	"strings"
	"unicode/utf8"

	"github.com/Malien/luar-sub001/lerr"
	"github.com/Malien/luar-sub001/value"
)

// registerer is the minimal surface for installing native functions;
// eval.Evaluator satisfies it. rvm.Machine has no RegisterNative method and
// reads natives from the global.Store it shares with the evaluator.
type registerer interface {
	RegisterNative(name string, n *value.Native)
}

// Install registers every built-in of §4.9 into r, writing print's output
// to out.
func Install(r registerer, out io.Writer) {
	r.RegisterNative("print", &value.Native{Name: "print", Call: printFn(out)})
	r.RegisterNative("tonumber", &value.Native{Name: "tonumber", Call: tonumberFn})
	r.RegisterNative("type", &value.Native{Name: "type", Call: typeFn})
	r.RegisterNative("assert", &value.Native{Name: "assert", Call: assertFn})
	r.RegisterNative("floor", &value.Native{Name: "floor", Call: floorFn})
	r.RegisterNative("random", &value.Native{Name: "random", Call: randomFn})
	r.RegisterNative("strlen", &value.Native{Name: "strlen", Call: strlenFn})
	r.RegisterNative("strsub", &value.Native{Name: "strsub", Call: strsubFn})
}

func arg(args []value.Value, i int) value.Value {
	if i < len(args) {
		return args[i]
	}
	return value.NilValue
}

func printFn(out io.Writer) func([]value.Value) (value.Return, error) {
	return func(args []value.Value) (value.Return, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		if _, err := io.WriteString(out, strings.Join(parts, "\t")+"\n"); err != nil {
			return value.NoReturn, lerr.IO(err)
		}
		return value.NoReturn, nil
	}
}

func tonumberFn(args []value.Value) (value.Return, error) {
	n, ok := value.CoerceNumber(arg(args, 0))
	if !ok {
		return value.One(value.NilValue), nil
	}
	return value.One(n), nil
}

func typeFn(args []value.Value) (value.Return, error) {
	return value.One(value.Str(arg(args, 0).TypeName())), nil
}

func assertFn(args []value.Value) (value.Return, error) {
	v := arg(args, 0)
	if v.IsTruthy() {
		return value.One(v), nil
	}
	msg := ""
	if len(args) > 1 && args[1].IsTruthy() {
		msg = args[1].String()
	}
	return value.NoReturn, lerr.Assertion(msg)
}

func floorFn(args []value.Value) (value.Return, error) {
	v := arg(args, 0)
	n, ok := value.CoerceNumber(v)
	if !ok {
		return value.NoReturn, lerr.UnaryMinus(v)
	}
	f := math.Floor(n.AsFloat64())
	if f >= math.MinInt32 && f <= math.MaxInt32 {
		return value.One(value.Integer(int32(f))), nil
	}
	return value.One(value.Floating(f)), nil
}

func randomFn(args []value.Value) (value.Return, error) {
	return value.One(value.Floating(rand.Float64())), nil
}

func strlenFn(args []value.Value) (value.Return, error) {
	v := arg(args, 0)
	s, ok := value.CoerceString(v)
	if !ok {
		return value.NoReturn, lerr.ArgumentType(1, lerr.ExpectedString, v)
	}
	return value.One(value.Integer(int32(len(s)))), nil
}

func strsubFn(args []value.Value) (value.Return, error) {
	v := arg(args, 0)
	s, ok := value.CoerceString(v)
	if !ok {
		return value.NoReturn, lerr.ArgumentType(1, lerr.ExpectedString, v)
	}
	start := arg(args, 1)
	startN, ok := value.CoerceNumber(start)
	if !ok {
		return value.NoReturn, lerr.ArgumentType(2, lerr.ExpectedNumber, start)
	}
	end := len(s)
	if len(args) > 2 && !args[2].IsNil() {
		endN, ok := value.CoerceNumber(args[2])
		if !ok {
			return value.NoReturn, lerr.ArgumentType(3, lerr.ExpectedNumber, args[2])
		}
		end = resolveIndex(int(endN.AsFloat64()), len(s))
	}
	start1 := resolveIndex(int(startN.AsFloat64()), len(s))
	if start1 < 1 {
		start1 = 1
	}
	if end > len(s) {
		end = len(s)
	}
	if start1 > end {
		return value.One(value.Str("")), nil
	}
	out := s[start1-1 : end]
	if !utf8.ValidString(out) {
		return value.NoReturn, lerr.Utf8()
	}
	return value.One(value.Str(out)), nil
}

// resolveIndex turns a 1-based Lua-style index (negative counts from the
// end) into a 1-based index clamped against a string of the given length.
func resolveIndex(idx, length int) int {
	if idx < 0 {
		idx = length + idx + 1
	}
	if idx < 1 {
		idx = 1
	}
	if idx > length {
		idx = length
	}
	return idx
}
