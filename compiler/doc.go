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

// Package compiler lowers an ast.Module into rvm.CodeBlocks: one block per
// function declaration, plus an implicit top-level block for the module's
// own statements and trailing return.
//
// Every local and argument slot this compiler allocates is dynamic (see
// rvm's package doc) — there is no separate pass choosing a narrower
// register type for a known-integer loop counter or the like. Local
// registers are never reused across sibling blocks within the same
// function: each nested if/while/repeat body just keeps allocating fresh
// indices off the enclosing function's monotonic counter, rather than
// reusing one slot per nesting depth the way the tree-walking backend's
// scope.Stack reuses (and clears on entry) its frames. This trades a larger reported LocalCount for
// a compiler with no scope-exit bookkeeping to get wrong, and nothing in
// §8's testable properties constrains exact register counts.
//
// Calls and returns never need an explicit jump back into the caller's
// block: every instruction lives in one flat per-function instruction
// stream, branches are all intra-block, and a function call is compiled as
// a single DCall instruction that the register machine itself resolves by
// recursing into rvm.Machine.runBlock. A `return` nested inside a
// conditional or loop body compiles to the same StrVC/Ret sequence as a
// block-level return; it does not need to unwind through enclosing control
// structures the way the tree-walking backend's "returned" bool does,
// since OpRet exits runBlock immediately regardless of how deep the
// current jump target is.
package compiler
