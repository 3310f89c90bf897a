// Copyright 2018 The CUE Authors
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

// Package ast declares the syntax tree node kinds the evaluator consumes.
// These shapes are fixed by spec §6: the surface parser that produces them
// is an external collaborator, out of scope for this module. Every Expr
// carries enough position information for diagnostics to point back into
// source text.
package ast

import "github.com/nixlang/evalcore/token"

// Node is the interface implemented by every syntax tree node.
type Node interface {
	Pos() token.Pos
	End() token.Pos
	Span() token.Span
}

// Expr is the interface implemented by every expression node — the only
// kind of node this evaluator evaluates (spec §4.5 enumerates the cases).
type Expr interface {
	Node
	exprNode()
}

type Base struct {
	From, To token.Pos
}

func (b Base) Pos() token.Pos   { return b.From }
func (b Base) End() token.Pos   { return b.To }
func (b Base) Span() token.Span { return token.Span{Start: b.From, End: b.To} }

func (*Root) exprNode()         {}
func (*Paren) exprNode()        {}
func (*Literal) exprNode()      {}
func (*StringExpr) exprNode()   {}
func (*PathExpr) exprNode()     {}
func (*Ident) exprNode()        {}
func (*ListExpr) exprNode()     {}
func (*AttrSetExpr) exprNode()  {}
func (*LetIn) exprNode()        {}
func (*LegacyLet) exprNode()    {}
func (*Select) exprNode()       {}
func (*HasAttr) exprNode()      {}
func (*IfElse) exprNode()       {}
func (*Assert) exprNode()       {}
func (*With) exprNode()         {}
func (*Lambda) exprNode()       {}
func (*Apply) exprNode()        {}
func (*BinOp) exprNode()        {}
func (*UnaryOp) exprNode()      {}
func (*ErrorExpr) exprNode()    {}

// Root wraps the top-level expression of a file.
type Root struct {
	Base
	Expr Expr
}

// Paren is a parenthesized expression; transparent to evaluation.
type Paren struct {
	Base
	Expr Expr
}

// LitKind distinguishes the three Literal forms.
type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	UriLit // unsupported; evaluating one is an Unimplemented error.
)

// Literal is an Int, Float, or (unsupported) Uri literal.
type Literal struct {
	Base
	Kind  LitKind
	Int   int64
	Float float64
	Text  string // raw source text, used for UriLit's Unimplemented message
}

// StringPart is either a literal chunk or an interpolated expression
// within a StringExpr or PathExpr.
type StringPart struct {
	Text string // valid when Interp == nil
	Interp Expr // valid when non-nil; Text is ignored
}

// StringExpr is a (possibly interpolated) string literal.
type StringExpr struct {
	Base
	Parts []StringPart
}

// PathExpr is a (possibly interpolated) path literal. Absolute reports
// whether the first chunk is already absolute (begins with "/"); every
// other path, including one beginning with "..", resolves against the
// current file's directory (spec §4.5.Path).
type PathExpr struct {
	Base
	Absolute bool
	Parts    []StringPart
}

// Ident is a bare identifier reference.
type Ident struct {
	Base
	Name string
}

// ListExpr is a list literal; each element becomes a PendingExpr thunk.
type ListExpr struct {
	Base
	Elems []Expr
}

// AttrKind distinguishes the three syntactic Attr forms (spec §4.4).
type AttrKind int

const (
	AttrIdent AttrKind = iota
	AttrString
	AttrDynamic
)

// Attr is one segment of an attribute path.
type Attr struct {
	Kind AttrKind
	Name string // valid for AttrIdent/AttrString
	Expr Expr   // valid for AttrDynamic
	Pos  token.Pos
}

// AttrPath is a dotted sequence of Attr segments, e.g. a.b."c".${d}.
type AttrPath []Attr

// AttrpathValue is one `path = value;` (or `path;` for a bare inherit-like
// shorthand, not used directly — see Inherit) entry of an AttrSetExpr or
// LetIn.
type AttrpathValue struct {
	Path  AttrPath
	Value Expr
}

// AttrSetExpr is `{ ... }` or `rec { ... }`.
type AttrSetExpr struct {
	Base
	Rec      bool
	Entries  []AttrpathValue
	Inherits []Inherit
}

// LetIn is `let ... in body`.
type LetIn struct {
	Base
	Entries  []AttrpathValue
	Inherits []Inherit
	Body     Expr
}

// LegacyLet is the unsupported `let { ... }` form; evaluating one is an
// Unimplemented error (spec §6).
type LegacyLet struct {
	Base
}

// Inherit is `inherit a b c;` (From == nil) or `inherit (e) a b c;`
// (From != nil), per spec §4.5.Inherit.
type Inherit struct {
	From  Expr // nil for the bare form
	Attrs []string
	Pos   token.Pos
}

// Select is `e.path` or `e.path or default`.
type Select struct {
	Base
	Target  Expr
	Path    AttrPath
	Default Expr // nil if no "or default" clause
}

// HasAttr is `e ? path`.
type HasAttr struct {
	Base
	Target Expr
	Path   AttrPath
}

// IfElse is `if cond then then else els`.
type IfElse struct {
	Base
	Cond, Then, Else Expr
}

// Assert is `assert cond; body`.
type Assert struct {
	Base
	Cond Expr
	Body Expr // may be nil; produces Null per spec §4.5.Assert
}

// With is `with e; body`.
type With struct {
	Base
	Env  Expr
	Body Expr
}

// ParamKind distinguishes the two lambda parameter shapes (spec
// §4.5 "Parameter binding").
type ParamKind int

const (
	ParamIdent ParamKind = iota
	ParamPattern
)

// PatternEntry is one `name` or `name ? default` of a pattern parameter.
type PatternEntry struct {
	Name    string
	Default Expr // nil if no default
}

// Param is a lambda parameter: either a bare identifier or a destructured
// attrset pattern, optionally bound in full via `@ all`.
type Param struct {
	Kind     ParamKind
	Ident    string         // valid for ParamIdent
	Entries  []PatternEntry // valid for ParamPattern
	Ellipsis bool           // `...` present: unmentioned keys are allowed
	At       string         // `@ all` binding name, "" if absent
}

// Lambda is `param: body`.
type Lambda struct {
	Base
	Param Param
	Body  Expr
}

// Apply is `f arg`.
type Apply struct {
	Base
	Func Expr
	Arg  Expr
}

// BinOpKind enumerates the binary operators of spec §4.5's BinOp table.
type BinOpKind int

const (
	OpAnd BinOpKind = iota
	OpOr
	OpImplies
	OpEq
	OpNeq
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpConcat // ++
	OpUpdate // //
	OpLt
	OpLe
	OpGt
	OpGe
)

// BinOp is a binary operator application.
type BinOp struct {
	Base
	Kind     BinOpKind
	Lhs, Rhs Expr
}

// UnaryOpKind enumerates the unary operators.
type UnaryOpKind int

const (
	OpNot UnaryOpKind = iota
	OpNeg
)

// UnaryOp is a unary operator application.
type UnaryOp struct {
	Base
	Kind UnaryOpKind
	Expr Expr
}

// ErrorExpr marks a node the parser could not produce (spec §6's "Error"
// node kind); evaluating one always fails.
type ErrorExpr struct {
	Base
	Message string
}
