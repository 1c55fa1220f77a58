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

import (
	"fmt"
	"strconv"
	"strings"
)

// Disassemble renders a CodeBlock's instructions as human-readable text,
// one per line, for tests and debugging — carried over from the teacher's
// asm.Disassemble, retargeted at this instruction set.
func Disassemble(b *CodeBlock) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "block %q (args=%d locals=%d)\n", b.Name, b.ArgumentCount, b.LocalCount)
	for pc, instr := range b.Instructions {
		fmt.Fprintf(&sb, "%4d  %-12s %s\n", pc, instr.Op, operandString(instr, b))
	}
	return sb.String()
}

func operandString(instr Instruction, b *CodeBlock) string {
	switch instr.Op {
	case OpConstI:
		return strconv.Itoa(int(instr.I))
	case OpConstF:
		return strconv.FormatFloat(instr.F, 'g', -1, 64)
	case OpConstS:
		if instr.S >= 0 && instr.S < len(b.Strings) {
			return strconv.Quote(b.Strings[instr.S])
		}
		return fmt.Sprintf("#%d", instr.S)
	case OpLdaDGl, OpStrDGl:
		return fmt.Sprintf("cell#%d", instr.Cell)
	case OpTableGetIdx, OpTableSetIdx:
		return fmt.Sprintf("L%d L%d", instr.A, instr.B)
	case OpTablePropGet, OpTablePropSet:
		name := ""
		if instr.S >= 0 && instr.S < len(b.Strings) {
			name = b.Strings[instr.S]
		}
		return fmt.Sprintf("L%d %s", instr.A, strconv.Quote(name))
	case OpNop, OpWrapI, OpWrapF, OpWrapS, OpCastI, OpCastF, OpCastS,
		OpNilTest, OpNot, OpDCall, OpRet, OpLdaVC:
		return ""
	default:
		return strconv.Itoa(int(instr.A))
	}
}
