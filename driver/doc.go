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

// Package driver is the embedding interface of §6.3: construct a Machine,
// optionally register native functions, feed in source or a pre-parsed
// module, run it against the tree-walking evaluator, and collect the
// resulting value.Return into host-side values. cmd/luasvc is the one
// driver caller in this module, but the package is written to be usable by
// any host embedding the runtime.
package driver
