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

// Package scope implements name resolution for the tree-walking evaluator:
// a stack of local frames layered on top of a global.Store. Reading a name
// searches frames innermost-to-outermost and falls back to the global store
// last; assigning to a name that already exists anywhere in that search
// overwrites it in place, while declaring a local always binds in the
// innermost frame regardless of what an outer frame or the global store
// already holds.
//
// Each call gets its own Stack. Within it, frames are reused across
// blocks rather than freed: entering a new block
// clears the next frame slot instead of allocating, matching the
// child_scope/clear pattern the evaluator this package is modeled on used
// to avoid a fresh map allocation per loop iteration.
package scope
