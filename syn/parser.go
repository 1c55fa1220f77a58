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

import (
	"strconv"
	"strings"

	"github.com/Malien/luar-sub001/ast"
	"github.com/Malien/luar-sub001/lerr"
)

// Parse scans and parses src into an ast.Module.
func Parse(src string) (*ast.Module, error) {
	p := &parser{lex: newLexer(src)}
	p.advance()
	chunks, ret, err := p.parseChunks(tokEOF)
	if err != nil {
		return nil, err
	}
	return &ast.Module{Chunks: chunks, Ret: ret}, nil
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() { p.tok = p.lex.next() }

func (p *parser) errorf(format string, args ...interface{}) error {
	args = append([]interface{}{p.tok.line, p.tok.col}, args...)
	return lerr.Parse("line %d:%d: "+format, args...)
}

func (p *parser) expect(tt tokenType, what string) (token, error) {
	if p.tok.typ == tokError {
		return token{}, p.errorf("%s", p.tok.val)
	}
	if p.tok.typ != tt {
		return token{}, p.errorf("expected %s, got %q", what, p.tok.String())
	}
	t := p.tok
	p.advance()
	return t, nil
}

// parseChunks parses a sequence of chunks (function declarations and
// statements) up to a trailing return and one of the terminator tokens.
func (p *parser) parseChunks(terminators ...tokenType) ([]ast.Chunk, *ast.Return, error) {
	var chunks []ast.Chunk
	for {
		if p.atAny(terminators...) {
			return chunks, nil, nil
		}
		if p.tok.typ == tokError {
			return nil, nil, p.errorf("%s", p.tok.val)
		}
		if p.tok.typ == tokReturn {
			ret, err := p.parseReturn()
			if err != nil {
				return nil, nil, err
			}
			if !p.atAny(terminators...) {
				return nil, nil, p.errorf("unexpected %q after return", p.tok.String())
			}
			return chunks, ret, nil
		}
		if p.tok.typ == tokFunction {
			decl, err := p.parseFunctionDeclaration()
			if err != nil {
				return nil, nil, err
			}
			chunks = append(chunks, decl)
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, nil, err
		}
		chunks = append(chunks, stmt)
	}
}

func (p *parser) atAny(tts ...tokenType) bool {
	for _, tt := range tts {
		if p.tok.typ == tt {
			return true
		}
	}
	return false
}

// parseBlock parses statements (no top-level function declarations) up to
// a trailing return and one of the terminator tokens, which are left
// unconsumed.
func (p *parser) parseBlock(terminators ...tokenType) (ast.Block, error) {
	var stmts []ast.Statement
	for {
		if p.atAny(terminators...) {
			return ast.Block{Statements: stmts}, nil
		}
		if p.tok.typ == tokError {
			return ast.Block{}, p.errorf("%s", p.tok.val)
		}
		if p.tok.typ == tokReturn {
			ret, err := p.parseReturn()
			if err != nil {
				return ast.Block{}, err
			}
			if !p.atAny(terminators...) {
				return ast.Block{}, p.errorf("unexpected %q after return", p.tok.String())
			}
			return ast.Block{Statements: stmts, Ret: ret}, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return ast.Block{}, err
		}
		stmts = append(stmts, stmt)
	}
}

func (p *parser) parseReturn() (*ast.Return, error) {
	p.advance() // consume 'return'
	if p.atExpressionListEnd() {
		return &ast.Return{}, nil
	}
	exprs, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Values: exprs}, nil
}

func (p *parser) atExpressionListEnd() bool {
	switch p.tok.typ {
	case tokEOF, tokEnd, tokElse, tokElseIf, tokUntil, tokSemicolon:
		return true
	default:
		return false
	}
}

func (p *parser) parseStatement() (ast.Statement, error) {
	switch p.tok.typ {
	case tokSemicolon:
		p.advance()
		return p.parseStatement()
	case tokLocal:
		return p.parseLocal()
	case tokIf:
		return p.parseConditional()
	case tokWhile:
		return p.parseWhile()
	case tokRepeat:
		return p.parseRepeat()
	default:
		return p.parseExprStatement()
	}
}

func (p *parser) parseLocal() (ast.Statement, error) {
	p.advance() // 'local'
	if p.tok.typ == tokFunction {
		p.advance()
		name, err := p.expect(tokIdent, "identifier")
		if err != nil {
			return nil, err
		}
		params, body, err := p.parseFunctionRest()
		if err != nil {
			return nil, err
		}
		return &ast.LocalFunctionDecl{Name: name.val, Params: params, Body: body}, nil
	}
	first, err := p.expect(tokIdent, "identifier")
	if err != nil {
		return nil, err
	}
	names := []string{first.val}
	for p.tok.typ == tokComma {
		p.advance()
		id, err := p.expect(tokIdent, "identifier")
		if err != nil {
			return nil, err
		}
		names = append(names, id.val)
	}
	var inits []ast.Expression
	if p.tok.typ == tokAssign {
		p.advance()
		inits, err = p.parseExpressionList()
		if err != nil {
			return nil, err
		}
	}
	return &ast.Declaration{Names: names, InitialValues: inits}, nil
}

func (p *parser) parseConditional() (*ast.Conditional, error) {
	p.advance() // 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokThen, "'then'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(tokEnd, tokElse, tokElseIf)
	if err != nil {
		return nil, err
	}
	tail, err := p.parseConditionalTail()
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{Condition: cond, Body: body, Tail: tail}, nil
}

func (p *parser) parseConditionalTail() (ast.ConditionalTail, error) {
	switch p.tok.typ {
	case tokEnd:
		p.advance()
		return ast.EndTail{}, nil
	case tokElse:
		p.advance()
		body, err := p.parseBlock(tokEnd)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokEnd, "'end'"); err != nil {
			return nil, err
		}
		return ast.ElseTail{Body: body}, nil
	case tokElseIf:
		p.advance()
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokThen, "'then'"); err != nil {
			return nil, err
		}
		body, err := p.parseBlock(tokEnd, tokElse, tokElseIf)
		if err != nil {
			return nil, err
		}
		tail, err := p.parseConditionalTail()
		if err != nil {
			return nil, err
		}
		return ast.ElseIfTail{Conditional: &ast.Conditional{Condition: cond, Body: body, Tail: tail}}, nil
	default:
		return nil, p.errorf("expected 'end', 'else' or 'elseif', got %q", p.tok.String())
	}
}

func (p *parser) parseWhile() (*ast.WhileLoop, error) {
	p.advance() // 'while'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokDo, "'do'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(tokEnd)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokEnd, "'end'"); err != nil {
		return nil, err
	}
	return &ast.WhileLoop{Condition: cond, Body: body}, nil
}

func (p *parser) parseRepeat() (*ast.RepeatLoop, error) {
	p.advance() // 'repeat'
	body, err := p.parseBlock(tokUntil)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokUntil, "'until'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.RepeatLoop{Body: body, Condition: cond}, nil
}

func (p *parser) parseFunctionDeclaration() (*ast.FunctionDeclaration, error) {
	p.advance() // 'function'
	name, err := p.expect(tokIdent, "identifier")
	if err != nil {
		return nil, err
	}
	params, body, err := p.parseFunctionRest()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{Name: name.val, Params: params, Body: body}, nil
}

func (p *parser) parseFunctionRest() ([]string, ast.Block, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, ast.Block{}, err
	}
	var params []string
	if p.tok.typ != tokRParen {
		id, err := p.expect(tokIdent, "identifier")
		if err != nil {
			return nil, ast.Block{}, err
		}
		params = append(params, id.val)
		for p.tok.typ == tokComma {
			p.advance()
			id, err := p.expect(tokIdent, "identifier")
			if err != nil {
				return nil, ast.Block{}, err
			}
			params = append(params, id.val)
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, ast.Block{}, err
	}
	body, err := p.parseBlock(tokEnd)
	if err != nil {
		return nil, ast.Block{}, err
	}
	if _, err := p.expect(tokEnd, "'end'"); err != nil {
		return nil, ast.Block{}, err
	}
	return params, body, nil
}

// parseExprStatement disambiguates assignment from a bare call statement:
// both start with a prefix expression (a var or a call chain).
func (p *parser) parseExprStatement() (ast.Statement, error) {
	first, err := p.parseSuffixedExpression()
	if err != nil {
		return nil, err
	}
	if p.tok.typ == tokAssign || p.tok.typ == tokComma {
		targets := []ast.Var{}
		v, ok := first.(ast.Var)
		if !ok {
			return nil, p.errorf("cannot assign to this expression")
		}
		targets = append(targets, v)
		for p.tok.typ == tokComma {
			p.advance()
			next, err := p.parseSuffixedExpression()
			if err != nil {
				return nil, err
			}
			v, ok := next.(ast.Var)
			if !ok {
				return nil, p.errorf("cannot assign to this expression")
			}
			targets = append(targets, v)
		}
		if _, err := p.expect(tokAssign, "'='"); err != nil {
			return nil, err
		}
		values, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Targets: targets, Values: values}, nil
	}
	switch first.(type) {
	case *ast.FunctionCall, *ast.MethodCall:
		return &ast.CallStatement{Call: first}, nil
	default:
		return nil, p.errorf("expected assignment or function call statement")
	}
}

func (p *parser) parseExpressionList() ([]ast.Expression, error) {
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	exprs := []ast.Expression{first}
	for p.tok.typ == tokComma {
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// Expression grammar, loosest to tightest:
//
//	or
//	and
//	comparisons (< > <= >= ~= ==)
//	..
//	+ -
//	* /
//	unary (- not)
//	^
//	primary / suffixed

func (p *parser) parseExpression() (ast.Expression, error) { return p.parseOr() }

func (p *parser) parseOr() (ast.Expression, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.typ == tokOr {
		p.advance()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryOp{Lhs: lhs, Op: ast.OpOr, Rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parseAnd() (ast.Expression, error) {
	lhs, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.tok.typ == tokAnd {
		p.advance()
		rhs, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryOp{Lhs: lhs, Op: ast.OpAnd, Rhs: rhs}
	}
	return lhs, nil
}

var comparisonOps = map[tokenType]ast.BinaryOperator{
	tokLess:           ast.OpLess,
	tokGreater:        ast.OpGreater,
	tokLessOrEqual:    ast.OpLessOrEqual,
	tokGreaterOrEqual: ast.OpGreaterOrEqual,
	tokNotEquals:      ast.OpNotEquals,
	tokEquals:         ast.OpEquals,
}

func (p *parser) parseComparison() (ast.Expression, error) {
	lhs, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := comparisonOps[p.tok.typ]
		if !ok {
			return lhs, nil
		}
		p.advance()
		rhs, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryOp{Lhs: lhs, Op: op, Rhs: rhs}
	}
}

func (p *parser) parseConcat() (ast.Expression, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.tok.typ == tokConcat {
		p.advance()
		rhs, err := p.parseConcat() // right-associative
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Lhs: lhs, Op: ast.OpConcat, Rhs: rhs}, nil
	}
	return lhs, nil
}

func (p *parser) parseAdditive() (ast.Expression, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.tok.typ == tokPlus || p.tok.typ == tokMinus {
		op := ast.OpPlus
		if p.tok.typ == tokMinus {
			op = ast.OpMinus
		}
		p.advance()
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryOp{Lhs: lhs, Op: op, Rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parseMultiplicative() (ast.Expression, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.typ == tokStar || p.tok.typ == tokSlash {
		op := ast.OpMul
		if p.tok.typ == tokSlash {
			op = ast.OpDiv
		}
		p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryOp{Lhs: lhs, Op: op, Rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parseUnary() (ast.Expression, error) {
	switch p.tok.typ {
	case tokMinus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: ast.OpUnaryMinus, Operand: operand}, nil
	case tokNot:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: ast.OpNot, Operand: operand}, nil
	default:
		return p.parseExp()
	}
}

func (p *parser) parseExp() (ast.Expression, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok.typ == tokCaret {
		p.advance()
		rhs, err := p.parseUnary() // right-associative, binds through unary
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Lhs: lhs, Op: ast.OpExp, Rhs: rhs}, nil
	}
	return lhs, nil
}

func (p *parser) parsePrimary() (ast.Expression, error) {
	switch p.tok.typ {
	case tokNil:
		p.advance()
		return ast.NilLiteral{}, nil
	case tokNumber:
		text := p.tok.val
		p.advance()
		if !strings.ContainsAny(text, ".eE") {
			if i, err := strconv.ParseInt(text, 10, 32); err == nil {
				return ast.IntLiteral{Value: int32(i)}, nil
			}
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf("invalid number literal %q", text)
		}
		return ast.FloatLiteral{Value: f}, nil
	case tokString:
		s := p.tok.val
		p.advance()
		return ast.StringLiteral{Value: s}, nil
	case tokLBrace:
		return p.parseTableConstructor()
	case tokLParen, tokIdent:
		return p.parseSuffixedExpression()
	default:
		return nil, p.errorf("unexpected token %q in expression", p.tok.String())
	}
}

// parseSuffixedExpression parses a prefix expression (a parenthesized
// expression or a bare identifier) followed by any chain of `.name`,
// `[expr]`, `(args)` or `:name(args)` suffixes.
func (p *parser) parseSuffixedExpression() (ast.Expression, error) {
	var expr ast.Expression
	if p.tok.typ == tokLParen {
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		expr = inner
	} else {
		id, err := p.expect(tokIdent, "identifier")
		if err != nil {
			return nil, err
		}
		expr = ast.NamedVar{Name: id.val}
	}

	for {
		switch p.tok.typ {
		case tokDot:
			p.advance()
			id, err := p.expect(tokIdent, "identifier")
			if err != nil {
				return nil, err
			}
			v, ok := expr.(ast.Var)
			if !ok {
				return nil, p.errorf("cannot access a property of a non-variable expression")
			}
			expr = &ast.PropertyAccess{From: v, Property: id.val}
		case tokLBracket:
			p.advance()
			key, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRBracket, "']'"); err != nil {
				return nil, err
			}
			v, ok := expr.(ast.Var)
			if !ok {
				return nil, p.errorf("cannot index a non-variable expression")
			}
			expr = &ast.MemberLookup{From: v, Key: key}
		case tokLParen:
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &ast.FunctionCall{Callee: expr, Args: args}
		case tokColon:
			p.advance()
			method, err := p.expect(tokIdent, "identifier")
			if err != nil {
				return nil, err
			}
			v, ok := expr.(ast.Var)
			if !ok {
				return nil, p.errorf("method call target must be a variable")
			}
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &ast.MethodCall{Object: v, Method: method.val, Args: args}
		default:
			return expr, nil
		}
	}
}

func (p *parser) parseArgs() ([]ast.Expression, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	if p.tok.typ == tokRParen {
		p.advance()
		return nil, nil
	}
	args, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parseTableConstructor() (*ast.TableConstructor, error) {
	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	tc := &ast.TableConstructor{}
	for p.tok.typ != tokRBrace {
		if p.tok.typ == tokIdent && p.peekIsAssignAfterIdent() {
			name := p.tok.val
			p.advance() // ident
			p.advance() // '='
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			tc.Fields = append(tc.Fields, ast.FieldInit{Name: name, Value: val})
		} else {
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			tc.ListFields = append(tc.ListFields, val)
		}
		if p.tok.typ == tokComma || p.tok.typ == tokSemicolon {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return tc, nil
}

// peekIsAssignAfterIdent reports whether the current ident token is
// immediately followed by '=', which this single-token-lookahead parser
// resolves by re-lexing from a saved position.
func (p *parser) peekIsAssignAfterIdent() bool {
	save := *p.lex
	savedTok := p.tok
	p.advance()
	isAssign := p.tok.typ == tokAssign
	*p.lex = save
	p.tok = savedTok
	return isAssign
}
