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

// Package lerr defines the error taxonomy shared by the parser, the
// tree-walking evaluator, and the register machine: parse errors, the
// family of type errors (indexing, calling, assignment, ordering,
// concatenation, arithmetic, argument checking), assertion failures, I/O
// errors and UTF-8 decoding errors.
//
// Every constructor returns a plain *Error (github.com/pkg/errors only
// formats its message), so that callers further up the call stack (e.g. the register machine's
// dispatch loop, or the driver's module-evaluation entry point) can add
// execution-context stack traces with errors.Wrap without losing the
// original classification, which callers recover with errors.Cause or by
// type-asserting the *Error payload directly.
package lerr
