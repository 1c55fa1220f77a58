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

// Package value defines the runtime value representation shared by both
// execution backends: the tree-walking evaluator in package eval and the
// register machine in package rvm.
//
// A Value is a small tagged struct rather than an interface, mirroring the
// tagged-union LuaValue of the reference implementation this runtime is
// modeled on. Go's native string type already behaves the way that
// reference implementation wants its strings to behave (immutable, cheap to
// copy, value-equal), so String values are held directly rather than behind
// a reference-counted wrapper. Tables are held behind a pointer, which
// already gives the aliasing and shared-mutation semantics the design
// calls for; Go's garbage collector reclaims them once unreferenced, so no
// manual reference counting is implemented here.
package value
