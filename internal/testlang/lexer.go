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

// Package testlang is a minimal recursive-descent parser from source text
// to ast nodes, used only by this module's own _test.go files to build
// fixtures for spec.md §8's scenarios. It stands in for the real surface
// parser spec.md names as an out-of-scope external collaborator (spec.md
// §1) and is not part of the module's public surface: it covers literals,
// interpolated strings, bare path literals, lists, attrsets (plain and
// rec), let...in, both inherit forms, selection with "or", "?" has-attr,
// if/then/else, assert, with, both lambda parameter shapes, application,
// and the full unary/binary operator set.
package testlang

import (
	"fmt"
	"strings"

	"github.com/nixlang/evalcore/token"
)

type tokKind int

const (
	tEOF tokKind = iota
	tIdent
	tInt
	tFloat
	tPath
	tDQuote // opening/closing '"'; string contents are scanned separately
	tLBrace
	tRBrace
	tLBrack
	tRBrack
	tLParen
	tRParen
	tSemi
	tAssign // =
	tDot
	tComma
	tQuestion
	tEllipsis // ...
	tAt
	tColon // lambda param separator
	tPlus
	tMinus
	tStar
	tSlash
	tPlusPlus   // ++
	tSlashSlash // //
	tEqEq
	tNotEq
	tLt
	tLe
	tGt
	tGe
	tAndAnd
	tOrOr
	tArrow // ->
	tBang
	tDollarBrace // ${
	// keywords
	tIf
	tThen
	tElse
	tLet
	tIn
	tRec
	tInherit
	tWith
	tAssert
	tOr // contextual "or" after a Select path
)

var keywords = map[string]tokKind{
	"if": tIf, "then": tThen, "else": tElse, "let": tLet, "in": tIn,
	"rec": tRec, "inherit": tInherit, "with": tWith, "assert": tAssert,
	"or": tOr,
}

type tok struct {
	kind tokKind
	text string
	pos  token.Pos
}

type lexer struct {
	src  string
	file string
	pos  int
	line int
	col  int
}

func newLexer(file, src string) *lexer {
	return &lexer{src: src, file: file, pos: 0, line: 1, col: 1}
}

func (l *lexer) curPos() token.Pos {
	return token.Pos{File: l.file, Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *lexer) skipTrivia() {
	for l.pos < len(l.src) {
		b := l.peekByte()
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			l.advance()
		case b == '#':
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.advance()
			}
		case b == '/' && l.peekByteAt(1) == '*':
			l.advance()
			l.advance()
			for l.pos < len(l.src) && !(l.peekByte() == '*' && l.peekByteAt(1) == '/') {
				l.advance()
			}
			if l.pos < len(l.src) {
				l.advance()
				l.advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9') || b == '-' || b == '\''
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isPathStart reports whether the lexer is looking at the start of a bare
// path literal: "./", "../", "/", or "~/", followed by at least one
// further "/"-separated segment character. Interpolated paths are not
// supported by this minimal grammar — test fixtures needing one build the
// ast.PathExpr node directly.
func (l *lexer) isPathStart() bool {
	b := l.peekByte()
	n := 0
	switch {
	case b == '/':
		n = 1
	case b == '.' && l.peekByteAt(1) == '/':
		n = 2
	case b == '.' && l.peekByteAt(1) == '.' && l.peekByteAt(2) == '/':
		n = 3
	case b == '~' && l.peekByteAt(1) == '/':
		n = 2
	default:
		return false
	}
	c := l.peekByteAt(n)
	return isIdentCont(c) || c == '.'
}

func isPathCont(b byte) bool {
	return isIdentCont(b) || b == '/' || b == '.'
}

// next returns the next token, not consuming string contents (callers must
// switch into scanStringPart after seeing tDQuote / tDollarBrace-closing).
func (l *lexer) next() tok {
	l.skipTrivia()
	pos := l.curPos()
	if l.pos >= len(l.src) {
		return tok{kind: tEOF, pos: pos}
	}

	if l.isPathStart() {
		start := l.pos
		for l.pos < len(l.src) && isPathCont(l.peekByte()) {
			l.advance()
		}
		return tok{kind: tPath, text: l.src[start:l.pos], pos: pos}
	}

	b := l.peekByte()

	if isIdentStart(b) {
		start := l.pos
		for l.pos < len(l.src) && isIdentCont(l.peekByte()) {
			l.advance()
		}
		text := l.src[start:l.pos]
		if kw, ok := keywords[text]; ok {
			return tok{kind: kw, text: text, pos: pos}
		}
		return tok{kind: tIdent, text: text, pos: pos}
	}

	if isDigit(b) {
		start := l.pos
		for l.pos < len(l.src) && isDigit(l.peekByte()) {
			l.advance()
		}
		isFloat := false
		if l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
			isFloat = true
			l.advance()
			for l.pos < len(l.src) && isDigit(l.peekByte()) {
				l.advance()
			}
		}
		kind := tInt
		if isFloat {
			kind = tFloat
		}
		return tok{kind: kind, text: l.src[start:l.pos], pos: pos}
	}

	switch b {
	case '"':
		l.advance()
		return tok{kind: tDQuote, pos: pos}
	case '{':
		l.advance()
		return tok{kind: tLBrace, pos: pos}
	case '}':
		l.advance()
		return tok{kind: tRBrace, pos: pos}
	case '[':
		l.advance()
		return tok{kind: tLBrack, pos: pos}
	case ']':
		l.advance()
		return tok{kind: tRBrack, pos: pos}
	case '(':
		l.advance()
		return tok{kind: tLParen, pos: pos}
	case ')':
		l.advance()
		return tok{kind: tRParen, pos: pos}
	case ';':
		l.advance()
		return tok{kind: tSemi, pos: pos}
	case ',':
		l.advance()
		return tok{kind: tComma, pos: pos}
	case ':':
		l.advance()
		return tok{kind: tColon, pos: pos}
	case '@':
		l.advance()
		return tok{kind: tAt, pos: pos}
	case '?':
		l.advance()
		return tok{kind: tQuestion, pos: pos}
	case '!':
		l.advance()
		if l.peekByte() == '=' {
			l.advance()
			return tok{kind: tNotEq, pos: pos}
		}
		return tok{kind: tBang, pos: pos}
	case '.':
		if l.peekByteAt(1) == '.' && l.peekByteAt(2) == '.' {
			l.advance()
			l.advance()
			l.advance()
			return tok{kind: tEllipsis, pos: pos}
		}
		l.advance()
		return tok{kind: tDot, pos: pos}
	case '=':
		l.advance()
		if l.peekByte() == '=' {
			l.advance()
			return tok{kind: tEqEq, pos: pos}
		}
		return tok{kind: tAssign, pos: pos}
	case '<':
		l.advance()
		if l.peekByte() == '=' {
			l.advance()
			return tok{kind: tLe, pos: pos}
		}
		return tok{kind: tLt, pos: pos}
	case '>':
		l.advance()
		if l.peekByte() == '=' {
			l.advance()
			return tok{kind: tGe, pos: pos}
		}
		return tok{kind: tGt, pos: pos}
	case '+':
		l.advance()
		if l.peekByte() == '+' {
			l.advance()
			return tok{kind: tPlusPlus, pos: pos}
		}
		return tok{kind: tPlus, pos: pos}
	case '-':
		l.advance()
		if l.peekByte() == '>' {
			l.advance()
			return tok{kind: tArrow, pos: pos}
		}
		return tok{kind: tMinus, pos: pos}
	case '*':
		l.advance()
		return tok{kind: tStar, pos: pos}
	case '/':
		l.advance()
		if l.peekByte() == '/' {
			l.advance()
			return tok{kind: tSlashSlash, pos: pos}
		}
		return tok{kind: tSlash, pos: pos}
	case '&':
		l.advance()
		if l.peekByte() == '&' {
			l.advance()
			return tok{kind: tAndAnd, pos: pos}
		}
	case '|':
		l.advance()
		if l.peekByte() == '|' {
			l.advance()
			return tok{kind: tOrOr, pos: pos}
		}
	case '$':
		if l.peekByteAt(1) == '{' {
			l.advance()
			l.advance()
			return tok{kind: tDollarBrace, pos: pos}
		}
	}

	panic(parseErr(pos, fmt.Sprintf("unexpected character %q", string(b))))
}

// scanStringPart scans raw string content starting right after the
// opening quote (or a closing "}" of an interpolation) up to the next
// "${" or closing '"'. It returns the literal text and which delimiter
// stopped it (isInterp true for "${", false for the closing quote).
func (l *lexer) scanStringPart() (text string, isInterp bool) {
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			panic(parseErr(l.curPos(), "unterminated string literal"))
		}
		c := l.peekByte()
		if c == '"' {
			l.advance()
			return b.String(), false
		}
		if c == '$' && l.peekByteAt(1) == '{' {
			l.advance()
			l.advance()
			return b.String(), true
		}
		if c == '\\' {
			l.advance()
			esc := l.advance()
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"', '\\', '$':
				b.WriteByte(esc)
			default:
				b.WriteByte(esc)
			}
			continue
		}
		b.WriteByte(l.advance())
	}
}

type parseError struct {
	pos token.Pos
	msg string
}

func (e *parseError) Error() string { return fmt.Sprintf("%s: %s", e.pos, e.msg) }

func parseErr(pos token.Pos, msg string) *parseError { return &parseError{pos: pos, msg: msg} }
