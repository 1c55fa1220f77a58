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

// Opcode identifies a single register-machine instruction, per §4.7's
// instruction families.
type Opcode uint8

const (
	OpNop Opcode = iota

	// Constants, loaded into a typed accumulator.
	OpConstN
	OpConstI
	OpConstF
	OpConstS

	// Wrap moves a typed accumulator into the dynamic accumulator.
	OpWrapI
	OpWrapF
	OpWrapS

	// Cast extracts from the dynamic accumulator into a typed one,
	// setting the equality flag to "not equal" on a type mismatch so a
	// following JmpEQ falls through.
	OpCastI
	OpCastF
	OpCastS

	// Dynamic register load/store. Every local and argument register
	// this machine's compiler allocates is dynamic; see package doc.
	OpLdaRx
	OpStrRx
	OpLdaLx
	OpStrLx

	// Global cell load/store, dynamic path (the only path the compiler
	// emits — see package doc).
	OpLdaDGl
	OpStrDGl

	// Dynamic arithmetic: accumulator op register/local, coercing both
	// operands per §4.1.
	OpDAddR
	OpDAddL
	OpDSubR
	OpDSubL
	OpDMulR
	OpDMulL
	OpDDivR
	OpDDivL
	OpDUnaryMinus

	// Concatenation.
	OpDConcatR
	OpDConcatL

	// Comparison. EqTest sets the equality flag; OrderTest sets the
	// three-way ordering result consumed by JmpLT/JmpGT/JmpLE/JmpGE.
	// NilTest sets the equality flag from whether the accumulator holds
	// Nil (falsy-ness), the test a conditional/while lowers to.
	OpEqTestR
	OpEqTestL
	OpOrderTestR
	OpOrderTestL
	OpNilTest
	OpNot

	// Branches by flag.
	OpJmp
	OpJmpEQ
	OpJmpNE
	OpJmpLT
	OpJmpGT
	OpJmpLE
	OpJmpGE

	// Branches by the dynamic accumulator's runtime type.
	OpJmpN
	OpJmpF
	OpJmpI
	OpJmpS
	OpJmpT
	OpJmpC

	// Tables. The register-level instruction families of §4.7 are
	// silent on table construction and member access — the original
	// implementation's own register compiler leaves them as an explicit
	// unimplemented case too (see DESIGN.md). This machine models a
	// small, consistent extension: a table is built with OpTableNewL,
	// indexed/assigned through a spilled table local, a CannotAccess/
	// CannotAssignMember-style fault on a non-table operand.
	OpTableNewL
	OpTableGetIdx
	OpTableSetIdx
	OpTablePropGet
	OpTablePropSet

	// Loads a Function value addressing another CodeBlock into the dynamic
	// accumulator — used to predeclare top-level functions and to bind a
	// local function's own name for self-recursion before its body is
	// compiled.
	OpConstFn

	// Calls and returns.
	OpDCall
	OpRet

	// Propagated argument load: loads Nil if argIdx >= the call's value
	// count instead of reading past what the caller actually passed.
	OpLdaProt

	// Value-count bookkeeping for variadic call/return handling.
	OpStrVC
	OpLdaVC
	OpRDShiftRight
)

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return "OpUnknown"
}

var opcodeNames = map[Opcode]string{
	OpNop:          "Nop",
	OpConstN:       "ConstN",
	OpConstI:       "ConstI",
	OpConstF:       "ConstF",
	OpConstS:       "ConstS",
	OpWrapI:        "WrapI",
	OpWrapF:        "WrapF",
	OpWrapS:        "WrapS",
	OpCastI:        "CastI",
	OpCastF:        "CastF",
	OpCastS:        "CastS",
	OpLdaRx:        "LdaRx",
	OpStrRx:        "StrRx",
	OpLdaLx:        "LdaLx",
	OpStrLx:        "StrLx",
	OpLdaDGl:       "LdaDGl",
	OpStrDGl:       "StrDGl",
	OpDAddR:        "DAddR",
	OpDAddL:        "DAddL",
	OpDSubR:        "DSubR",
	OpDSubL:        "DSubL",
	OpDMulR:        "DMulR",
	OpDMulL:        "DMulL",
	OpDDivR:        "DDivR",
	OpDDivL:        "DDivL",
	OpDUnaryMinus:  "DUnaryMinus",
	OpDConcatR:     "DConcatR",
	OpDConcatL:     "DConcatL",
	OpEqTestR:      "EqTestR",
	OpEqTestL:      "EqTestL",
	OpOrderTestR:   "OrderTestR",
	OpOrderTestL:   "OrderTestL",
	OpNilTest:      "NilTest",
	OpNot:          "Not",
	OpJmp:          "Jmp",
	OpJmpEQ:        "JmpEQ",
	OpJmpNE:        "JmpNE",
	OpJmpLT:        "JmpLT",
	OpJmpGT:        "JmpGT",
	OpJmpLE:        "JmpLE",
	OpJmpGE:        "JmpGE",
	OpJmpN:         "JmpN",
	OpJmpF:         "JmpF",
	OpJmpI:         "JmpI",
	OpJmpS:         "JmpS",
	OpJmpT:         "JmpT",
	OpJmpC:         "JmpC",
	OpTableNewL:    "TableNewL",
	OpTableGetIdx:  "TableGetIdx",
	OpTableSetIdx:  "TableSetIdx",
	OpTablePropGet: "TablePropGet",
	OpTablePropSet: "TablePropSet",
	OpConstFn:      "ConstFn",
	OpDCall:        "DCall",
	OpRet:          "Ret",
	OpLdaProt:      "LdaProt",
	OpStrVC:        "StrVC",
	OpLdaVC:        "LdaVC",
	OpRDShiftRight: "RDShiftRight",
}
