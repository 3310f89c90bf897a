// Copyright 2020 CUE Authors
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

package testlang

import (
	"strconv"
	"strings"

	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/token"
)

// Parser holds one token of lookahead over a lexer.
type Parser struct {
	lx  *lexer
	cur tok
}

func newParser(file, src string) *Parser {
	lx := newLexer(file, src)
	p := &Parser{lx: lx}
	p.cur = p.lx.next()
	return p
}

func (p *Parser) advance() tok {
	t := p.cur
	p.cur = p.lx.next()
	return t
}

func (p *Parser) accept(k tokKind) (tok, bool) {
	if p.cur.kind == k {
		return p.advance(), true
	}
	return tok{}, false
}

func (p *Parser) expect(k tokKind, what string) tok {
	if p.cur.kind != k {
		panic(parseErr(p.cur.pos, "expected "+what))
	}
	return p.advance()
}

func (p *Parser) snapshot() (lexer, tok) { return *p.lx, p.cur }

func (p *Parser) restore(lx lexer, cur tok) {
	*p.lx = lx
	p.cur = cur
}

func mkBase(from, to token.Pos) ast.Base { return ast.Base{From: from, To: to} }

func endOf(t tok) token.Pos {
	return token.Pos{File: t.pos.File, Offset: t.pos.Offset + len(t.text), Line: t.pos.Line, Column: t.pos.Column + len(t.text)}
}

// Parse parses src (attributed to file for diagnostics) as a single
// top-level expression, returning it wrapped in an ast.Root.
func Parse(file, src string) (ast.Expr, error) {
	var result ast.Expr
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				if pe, ok := r.(*parseError); ok {
					err = pe
					return
				}
				panic(r)
			}
		}()
		p := newParser(file, src)
		e := p.parseExpr()
		if p.cur.kind != tEOF {
			panic(parseErr(p.cur.pos, "unexpected trailing input"))
		}
		result = &ast.Root{Base: mkBase(e.Pos(), e.End()), Expr: e}
		return nil
	}()
	return result, err
}

func (p *Parser) parseExpr() ast.Expr {
	switch p.cur.kind {
	case tLet:
		return p.parseLet()
	case tIf:
		return p.parseIf()
	case tAssert:
		return p.parseAssert()
	case tWith:
		return p.parseWith()
	case tIdent:
		snapLx, snapCur := p.snapshot()
		nameTok := p.advance()
		if _, ok := p.accept(tColon); ok {
			body := p.parseExpr()
			return &ast.Lambda{
				Base:  mkBase(nameTok.pos, body.End()),
				Param: ast.Param{Kind: ast.ParamIdent, Ident: nameTok.text},
				Body:  body,
			}
		}
		p.restore(snapLx, snapCur)
	case tLBrace:
		if lam, ok := p.tryParseLambdaPattern(); ok {
			return lam
		}
	}
	return p.parseBin(1)
}

func (p *Parser) parseLet() ast.Expr {
	start := p.expect(tLet, "let").pos
	if p.cur.kind == tLBrace {
		// Legacy `let { ... }` form (spec §6): contents are skipped, not
		// bound; evaluating the resulting node always fails.
		p.advance()
		depth := 1
		for depth > 0 {
			switch p.cur.kind {
			case tLBrace:
				depth++
			case tRBrace:
				depth--
			case tEOF:
				panic(parseErr(p.cur.pos, "unterminated legacy let"))
			}
			p.advance()
		}
		return &ast.LegacyLet{Base: mkBase(start, p.cur.pos)}
	}
	entries, inherits := p.parseBindings(tIn)
	p.expect(tIn, "in")
	body := p.parseExpr()
	return &ast.LetIn{Base: mkBase(start, body.End()), Entries: entries, Inherits: inherits, Body: body}
}

func (p *Parser) parseIf() ast.Expr {
	start := p.expect(tIf, "if").pos
	cond := p.parseExpr()
	p.expect(tThen, "then")
	then := p.parseExpr()
	p.expect(tElse, "else")
	els := p.parseExpr()
	return &ast.IfElse{Base: mkBase(start, els.End()), Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseAssert() ast.Expr {
	start := p.expect(tAssert, "assert").pos
	cond := p.parseExpr()
	p.expect(tSemi, ";")
	body := p.parseExpr()
	return &ast.Assert{Base: mkBase(start, body.End()), Cond: cond, Body: body}
}

func (p *Parser) parseWith() ast.Expr {
	start := p.expect(tWith, "with").pos
	env := p.parseExpr()
	p.expect(tSemi, ";")
	body := p.parseExpr()
	return &ast.With{Base: mkBase(start, body.End()), Env: env, Body: body}
}

// parseBindings parses `inherit`/`attrpath = value;` entries up to (but not
// consuming) a token of kind stop.
func (p *Parser) parseBindings(stop tokKind) (entries []ast.AttrpathValue, inherits []ast.Inherit) {
	for p.cur.kind != stop && p.cur.kind != tRBrace && p.cur.kind != tEOF {
		if p.cur.kind == tInherit {
			inherits = append(inherits, p.parseInherit())
			continue
		}
		path := p.parseAttrPath()
		p.expect(tAssign, "=")
		val := p.parseExpr()
		p.expect(tSemi, ";")
		entries = append(entries, ast.AttrpathValue{Path: path, Value: val})
	}
	return entries, inherits
}

func (p *Parser) parseInherit() ast.Inherit {
	pos := p.expect(tInherit, "inherit").pos
	var from ast.Expr
	if _, ok := p.accept(tLParen); ok {
		from = p.parseExpr()
		p.expect(tRParen, ")")
	}
	var attrs []string
	for p.cur.kind == tIdent {
		attrs = append(attrs, p.advance().text)
	}
	p.expect(tSemi, ";")
	return ast.Inherit{From: from, Attrs: attrs, Pos: pos}
}

func (p *Parser) parseAttrPath() ast.AttrPath {
	path := ast.AttrPath{p.parseAttr()}
	for p.cur.kind == tDot {
		p.advance()
		path = append(path, p.parseAttr())
	}
	return path
}

func (p *Parser) parseAttr() ast.Attr {
	switch p.cur.kind {
	case tIdent:
		t := p.advance()
		return ast.Attr{Kind: ast.AttrIdent, Name: t.text, Pos: t.pos}
	case tDQuote:
		pos := p.cur.pos
		text, isInterp := p.lx.scanStringPart()
		p.cur = p.lx.next()
		if isInterp {
			panic(parseErr(pos, "interpolated attribute names are not supported"))
		}
		return ast.Attr{Kind: ast.AttrString, Name: text, Pos: pos}
	case tDollarBrace:
		pos := p.cur.pos
		p.advance()
		e := p.parseExpr()
		p.expect(tRBrace, "}")
		return ast.Attr{Kind: ast.AttrDynamic, Expr: e, Pos: pos}
	default:
		panic(parseErr(p.cur.pos, "expected an attribute name"))
	}
}

func (p *Parser) parseAttrSetBody(start token.Pos, rec bool) ast.Expr {
	p.expect(tLBrace, "{")
	entries, inherits := p.parseBindings(tRBrace)
	end := p.cur.pos
	p.expect(tRBrace, "}")
	return &ast.AttrSetExpr{Base: mkBase(start, end), Rec: rec, Entries: entries, Inherits: inherits}
}

// tryParseLambdaPattern speculatively parses a `{ ... } [@ name]: body`
// pattern lambda, restoring all lexer/parser state and reporting ok=false
// if the token stream instead turns out to be a plain attrset literal.
func (p *Parser) tryParseLambdaPattern() (ast.Expr, bool) {
	snapLx, snapCur := p.snapshot()
	start := p.cur.pos
	if _, ok := p.accept(tLBrace); !ok {
		return nil, false
	}
	var entries []ast.PatternEntry
	ellipsis := false
	for p.cur.kind != tRBrace {
		if _, ok := p.accept(tEllipsis); ok {
			ellipsis = true
			break
		}
		nameTok, ok := p.accept(tIdent)
		if !ok {
			p.restore(snapLx, snapCur)
			return nil, false
		}
		var def ast.Expr
		if _, ok := p.accept(tQuestion); ok {
			def = p.parseExpr()
		}
		entries = append(entries, ast.PatternEntry{Name: nameTok.text, Default: def})
		if _, ok := p.accept(tComma); ok {
			continue
		}
		break
	}
	if _, ok := p.accept(tRBrace); !ok {
		p.restore(snapLx, snapCur)
		return nil, false
	}
	at := ""
	if _, ok := p.accept(tAt); ok {
		nameTok, ok := p.accept(tIdent)
		if !ok {
			p.restore(snapLx, snapCur)
			return nil, false
		}
		at = nameTok.text
	}
	if _, ok := p.accept(tColon); !ok {
		p.restore(snapLx, snapCur)
		return nil, false
	}
	body := p.parseExpr()
	return &ast.Lambda{
		Base:  mkBase(start, body.End()),
		Param: ast.Param{Kind: ast.ParamPattern, Entries: entries, Ellipsis: ellipsis, At: at},
		Body:  body,
	}, true
}

type opInfo struct {
	kind  ast.BinOpKind
	prec  int
	right bool
}

var binOps = map[tokKind]opInfo{
	tArrow:      {ast.OpImplies, 1, true},
	tOrOr:       {ast.OpOr, 2, false},
	tAndAnd:     {ast.OpAnd, 3, false},
	tEqEq:       {ast.OpEq, 4, false},
	tNotEq:      {ast.OpNeq, 4, false},
	tLt:         {ast.OpLt, 5, false},
	tLe:         {ast.OpLe, 5, false},
	tGt:         {ast.OpGt, 5, false},
	tGe:         {ast.OpGe, 5, false},
	tSlashSlash: {ast.OpUpdate, 6, true},
	tPlus:       {ast.OpAdd, 7, false},
	tMinus:      {ast.OpSub, 7, false},
	tStar:       {ast.OpMul, 8, false},
	tSlash:      {ast.OpDiv, 8, false},
	tPlusPlus:   {ast.OpConcat, 9, true},
}

func (p *Parser) parseBin(minPrec int) ast.Expr {
	lhs := p.parseUnary()
	for {
		info, ok := binOps[p.cur.kind]
		if !ok || info.prec < minPrec {
			return lhs
		}
		p.advance()
		nextMin := info.prec + 1
		if info.right {
			nextMin = info.prec
		}
		rhs := p.parseBin(nextMin)
		lhs = &ast.BinOp{Base: mkBase(lhs.Pos(), rhs.End()), Kind: info.kind, Lhs: lhs, Rhs: rhs}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur.kind {
	case tBang:
		t := p.advance()
		e := p.parseUnary()
		return &ast.UnaryOp{Base: mkBase(t.pos, e.End()), Kind: ast.OpNot, Expr: e}
	case tMinus:
		t := p.advance()
		e := p.parseUnary()
		return &ast.UnaryOp{Base: mkBase(t.pos, e.End()), Kind: ast.OpNeg, Expr: e}
	}
	return p.parseApp()
}

func canStartAtom(k tokKind) bool {
	switch k {
	case tIdent, tInt, tFloat, tPath, tDQuote, tLBrace, tLBrack, tLParen, tRec:
		return true
	default:
		return false
	}
}

func (p *Parser) parseApp() ast.Expr {
	e := p.parseSelect()
	for canStartAtom(p.cur.kind) {
		arg := p.parseSelect()
		e = &ast.Apply{Base: mkBase(e.Pos(), arg.End()), Func: e, Arg: arg}
	}
	if _, ok := p.accept(tQuestion); ok {
		path := p.parseAttrPath()
		end := path[len(path)-1].Pos
		e = &ast.HasAttr{Base: mkBase(e.Pos(), end), Target: e, Path: path}
	}
	return e
}

func (p *Parser) parseSelect() ast.Expr {
	e := p.parsePrimary()
	if _, ok := p.accept(tDot); ok {
		path := p.parseAttrPath()
		end := path[len(path)-1].Pos
		var def ast.Expr
		if _, ok := p.accept(tOr); ok {
			def = p.parseSelect()
			end = def.End()
		}
		e = &ast.Select{Base: mkBase(e.Pos(), end), Target: e, Path: path, Default: def}
	}
	return e
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.cur.kind {
	case tInt:
		t := p.advance()
		n, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			panic(parseErr(t.pos, "invalid integer literal: "+t.text))
		}
		return &ast.Literal{Base: mkBase(t.pos, endOf(t)), Kind: ast.IntLit, Int: n}
	case tFloat:
		t := p.advance()
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			panic(parseErr(t.pos, "invalid float literal: "+t.text))
		}
		return &ast.Literal{Base: mkBase(t.pos, endOf(t)), Kind: ast.FloatLit, Float: f}
	case tPath:
		t := p.advance()
		abs := strings.HasPrefix(t.text, "/") || strings.HasPrefix(t.text, "~")
		return &ast.PathExpr{Base: mkBase(t.pos, endOf(t)), Absolute: abs, Parts: []ast.StringPart{{Text: t.text}}}
	case tIdent:
		t := p.advance()
		return &ast.Ident{Base: mkBase(t.pos, endOf(t)), Name: t.text}
	case tDQuote:
		return p.parseString()
	case tLParen:
		start := p.advance().pos
		e := p.parseExpr()
		end := p.cur.pos
		p.expect(tRParen, ")")
		return &ast.Paren{Base: mkBase(start, end), Expr: e}
	case tLBrack:
		start := p.advance().pos
		var elems []ast.Expr
		for p.cur.kind != tRBrack {
			// List elements are select-level, not full applications: like
			// real Nix, `[ f x ]` is the two elements f and x, not f applied
			// to x (write `[ (f x) ]` for that).
			elems = append(elems, p.parseSelect())
		}
		end := p.cur.pos
		p.expect(tRBrack, "]")
		return &ast.ListExpr{Base: mkBase(start, end), Elems: elems}
	case tRec:
		start := p.advance().pos
		return p.parseAttrSetBody(start, true)
	case tLBrace:
		start := p.cur.pos
		return p.parseAttrSetBody(start, false)
	default:
		panic(parseErr(p.cur.pos, "expected an expression"))
	}
}

// parseString scans a (possibly interpolated) string literal. p.cur must be
// the opening tDQuote. Content is scanned directly off the lexer's raw
// source, bypassing the generic tokenizer, since string text is not made
// of ordinary tokens; each "${...}" run switches back into normal token-
// by-token parsing for the embedded expression, then resumes raw scanning
// right after the closing "}".
func (p *Parser) parseString() ast.Expr {
	start := p.cur.pos
	// p.cur is the opening tDQuote; the lexer is already positioned just past it.
	var parts []ast.StringPart
	for {
		text, isInterp := p.lx.scanStringPart()
		if text != "" || !isInterp {
			parts = append(parts, ast.StringPart{Text: text})
		}
		if !isInterp {
			break
		}
		p.cur = p.lx.next()
		e := p.parseExpr()
		if p.cur.kind != tRBrace {
			panic(parseErr(p.cur.pos, "expected } to close string interpolation"))
		}
		parts = append(parts, ast.StringPart{Interp: e})
	}
	end := p.lx.curPos()
	p.cur = p.lx.next()
	return &ast.StringExpr{Base: mkBase(start, end), Parts: parts}
}
