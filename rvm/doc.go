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

// Package rvm is the register-based bytecode machine: typed accumulators,
// fixed-arity argument-register files, per-block local registers, a
// CodeBlock table addressed by value.BlockID, and a dispatch loop that
// mirrors the teacher's vm.Instance.Run — a flat switch over the current
// instruction, with a deferred recover() at the Call boundary turning a
// dispatch-loop panic into a wrapped *Fault (see Fault for what it
// records).
//
// The instruction set names a full family of typed load/store and typed
// arithmetic opcodes per §4.7 (one per data type), so the machine's
// register-file type models all of them. The compiler in package compiler,
// however, never allocates a local or argument slot narrower than the
// dynamic (value.Value) type — every local this runtime's compiler emits
// is a dynamic slot, Wrap'd immediately after construction. This is a
// deliberate, documented simplification (see DESIGN.md): a fully
// type-specialized register allocator belongs to a much larger machine
// than an interpreter for a small scripting core needs, and the dynamic
// path already satisfies every testable property in §8. The typed
// accumulators and Cast/Wrap instructions are still real, exercised by
// every literal and by the CastI the compiler emits to turn a return's
// computed value count back into an integer; comparisons use
// EqTest/OrderTest and flag jumps, not Cast.
package rvm
