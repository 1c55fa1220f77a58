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

package eval

import (
	"math"

	"github.com/Malien/luar-sub001/ast"
	"github.com/Malien/luar-sub001/lerr"
	"github.com/Malien/luar-sub001/scope"
	"github.com/Malien/luar-sub001/value"
)

// evalVar reads the value a Var currently refers to.
func (e *Evaluator) evalVar(v ast.Var, local scope.Local) (value.Value, error) {
	switch v := v.(type) {
	case ast.NamedVar:
		return local.Get(v.Name), nil
	case *ast.MemberLookup:
		from, err := e.evalVar(v.From, local)
		if err != nil {
			return value.Value{}, err
		}
		if !from.IsTable() {
			return value.Value{}, lerr.IsNotIndexable(from)
		}
		keyRet, err := e.evalExpression(v.Key, local)
		if err != nil {
			return value.Value{}, err
		}
		return from.Tbl.Get(keyRet.First()), nil
	case *ast.PropertyAccess:
		from, err := e.evalVar(v.From, local)
		if err != nil {
			return value.Value{}, err
		}
		if !from.IsTable() {
			return value.Value{}, lerr.CannotAccessProperty(v.Property, from)
		}
		return from.Tbl.Get(value.Str(v.Property)), nil
	default:
		panic("eval: unhandled var type")
	}
}

// assignVar stores val at the location v refers to.
func (e *Evaluator) assignVar(v ast.Var, val value.Value, local scope.Local) error {
	switch v := v.(type) {
	case ast.NamedVar:
		local.Set(v.Name, val)
		return nil
	case *ast.MemberLookup:
		from, err := e.evalVar(v.From, local)
		if err != nil {
			return err
		}
		if !from.IsTable() {
			return lerr.IsNotIndexable(from)
		}
		keyRet, err := e.evalExpression(v.Key, local)
		if err != nil {
			return err
		}
		key := keyRet.First()
		if key.IsNil() {
			return lerr.NilAssign(val)
		}
		if key.Kind == value.Float && math.IsNaN(key.F) {
			return lerr.NaNAssign(val)
		}
		from.Tbl.Set(key, val)
		return nil
	case *ast.PropertyAccess:
		from, err := e.evalVar(v.From, local)
		if err != nil {
			return err
		}
		if !from.IsTable() {
			return lerr.CannotAssignProperty(v.Property, from)
		}
		from.Tbl.Set(value.Str(v.Property), val)
		return nil
	default:
		panic("eval: unhandled var type")
	}
}
