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

// Package global implements the store backing every name that isn't bound
// to a local scope: a flat table of named cells, each addressable both by
// name (for the tree-walking evaluator) and by a stable numeric CellID (for
// the register machine, which resolves a global reference to a cell index
// once at compile time and never looks its name up again at run time).
//
// Cells are never removed once created, only ever assigned Nil, so a
// CellID baked into compiled code by the compiler always stays valid for
// the lifetime of the Store it was produced against.
package global
