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

// Package ast defines the syntax-tree contract consumed by both execution
// backends: the tree-walking evaluator in package eval and the compiler in
// package compiler. Package syn is the only producer of these types; ast
// itself has no parsing logic, only the shapes both downstream consumers
// need to agree on.
//
// Expression, Statement, Var and ConditionalTail are small closed sums,
// modeled the Go way as an interface with an unexported marker method
// rather than a tagged enum, since each variant carries different fields.
package ast
