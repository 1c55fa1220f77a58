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

// The luasvc command is a showcase for the github.com/Malien/luar-sub001
// packages: given a file argument, it parses and evaluates the file as a
// single module and prints its return value; given none, it launches a
// REPL that prompts with ">>> ", evaluates each line as its own module,
// and prints the result or the error.
//
// Usage:
//
//	luasvc [file]
//	-debug
//		  print the full error chain instead of just its message
//	-noraw
//		  disable raw terminal IO in the REPL
//	-compiled
//		  run through the register-machine compiler instead of the
//		  tree-walking evaluator
package main
