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

// Package eval is the tree-walking execution backend: recursive evaluation
// of expressions, statements, blocks, conditional chains, loops,
// assignments and function calls directly over an ast.Module, without a
// compilation step.
//
// An Evaluator owns its own function-body table, separate from the
// register machine's package rvm code-block table even though both are
// addressed by the same value.BlockID type — the two backends never share
// a run, so there is no need to unify the two tables.
package eval
