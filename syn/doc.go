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

// Package syn is the external collaborator sketched, not specified, by
// the runtime: a lexer and a recursive-descent parser that turn source
// text into the ast.Module both execution backends consume. Its scanning
// approach is modeled on a classic Pike-style state-function lexer, kept
// synchronous (no goroutine/channel handoff) since nothing here needs to
// overlap scanning with parsing.
//
// Identifiers follow [_A-Za-z][_A-Za-z0-9]*. Operator precedence, loosest
// to tightest: `or`; `and`; the comparisons `< > <= >= ~= ==`; `..`;
// binary `+ -`; `* /`; unary `- not`; `^` (accepted here, rejected later
// by both backends, per the Non-goals).
package syn
