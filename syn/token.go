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

package syn

// tokenType differentiates the lexemes the lexer emits.
type tokenType int

const (
	tokEOF tokenType = iota
	tokError

	tokIdent
	tokNumber
	tokString

	tokNil
	tokLocal
	tokFunction
	tokEnd
	tokIf
	tokThen
	tokElse
	tokElseIf
	tokWhile
	tokDo
	tokRepeat
	tokUntil
	tokReturn
	tokAnd
	tokOr
	tokNot

	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokConcat
	tokEquals
	tokNotEquals
	tokLess
	tokGreater
	tokLessOrEqual
	tokGreaterOrEqual
	tokAssign

	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokComma
	tokSemicolon
	tokDot
	tokColon
)

var keywords = map[string]tokenType{
	"nil":      tokNil,
	"local":    tokLocal,
	"function": tokFunction,
	"end":      tokEnd,
	"if":       tokIf,
	"then":     tokThen,
	"else":     tokElse,
	"elseif":   tokElseIf,
	"while":    tokWhile,
	"do":       tokDo,
	"repeat":   tokRepeat,
	"until":    tokUntil,
	"return":   tokReturn,
	"and":      tokAnd,
	"or":       tokOr,
	"not":      tokNot,
}

// token is a lexeme scanned from the input and its position, used to
// produce readable Parse errors.
type token struct {
	typ  tokenType
	val  string
	line int
	col  int
}

func (t token) String() string {
	if t.typ == tokEOF {
		return "end of input"
	}
	return t.val
}
