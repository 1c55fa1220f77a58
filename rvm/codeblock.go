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

package rvm

import "github.com/Malien/luar-sub001/global"

// Instruction is one bytecode op plus its operands. Which fields are
// meaningful depends on Op; see opcode.go for the per-opcode contract.
type Instruction struct {
	Op   Opcode
	A    int32         // register index, jump target, or small immediate
	B    int32         // second register index, for the two-operand table ops
	I    int32         // ConstI operand
	F    float64       // ConstF operand
	S    int           // string-table index for ConstS/OpTablePropGet/OpTablePropSet
	Cell global.CellID // LdaDGl/StrDGl operand
}

// FunctionKind distinguishes the module's implicit top-level block from a
// block compiled from a named function declaration.
type FunctionKind uint8

const (
	TopLevel FunctionKind = iota
	NamedFunction
)

// ReturnArityKind classifies how precisely a block's return arity is known
// statically, per §4.8's lattice: Unbounded > MinBounded > Bounded >
// Constant(n). Bounded and Constant both name an exact upper bound; this
// implementation's return-count traversal (recordReturnArity in
// compiler/compiler.go) only
// ever produces Unbounded, MinBounded or Constant — Bounded (a known exact
// maximum that isn't a single constant across all return sites) would
// arise from join-ing two different Constant arities, which the traversal
// widens directly to Unbounded instead. This is a documented narrowing of
// the four-element lattice to three values actually reachable by the
// analysis as implemented (see DESIGN.md).
type ReturnArityKind uint8

const (
	Unbounded ReturnArityKind = iota
	MinBounded
	Bounded
	Constant
)

// ReturnArity is a block's statically known return shape.
type ReturnArity struct {
	Kind ReturnArityKind
	N    int // meaningful for MinBounded, Bounded and Constant
}

// Join combines the return arity of two reachable return sites within the
// same block, per the lattice order in §4.8.
func (a ReturnArity) Join(b ReturnArity) ReturnArity {
	if a.Kind == Unbounded || b.Kind == Unbounded {
		return ReturnArity{Kind: Unbounded}
	}
	if a.Kind == Constant && b.Kind == Constant {
		if a.N == b.N {
			return a
		}
		return ReturnArity{Kind: Unbounded}
	}
	// Any other mix (Constant/MinBounded, MinBounded/MinBounded with
	// differing N, ...) widens to the weaker MinBounded bound, taking
	// the smaller guaranteed count.
	an, bn := arityFloor(a), arityFloor(b)
	n := an
	if bn < an {
		n = bn
	}
	return ReturnArity{Kind: MinBounded, N: n}
}

func arityFloor(a ReturnArity) int {
	switch a.Kind {
	case Constant, MinBounded, Bounded:
		return a.N
	default:
		return 0
	}
}

// CodeBlock is one compiled function body (or the module's top-level
// block): its instructions, interned string table, declared register
// counts, and return-arity metadata.
type CodeBlock struct {
	Name          string
	Kind          FunctionKind
	Instructions  []Instruction
	Strings       []string
	ArgumentCount int
	LocalCount    int // high-water mark of dynamic locals used
	ReturnArity   ReturnArity
}
