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

// Package eval is the node-dispatched Evaluator of spec §4.5: one case per
// ast.Expr kind, threading a diagnostic backtrace and implementing
// object.Interp so Thunks and Builtins can force expressions without this
// package being imported by internal/core/object or internal/core/builtin.
package eval

import (
	"strings"

	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/internal/core/attrpath"
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/diag"
)

// Evaluator has no state of its own; every piece of mutable state lives in
// the Scope/Thunk graph it is handed. A single Evaluator value may safely
// be shared by every Thunk and Builtin in a program (spec §5: scheduling
// is single-threaded and cooperative, so no synchronization is needed).
type Evaluator struct{}

// New creates an Evaluator.
func New() *Evaluator { return &Evaluator{} }

var _ object.Interp = (*Evaluator)(nil)

// thunk wraps expr as a PendingExpr thunk captured in scope, recording bt
// as its definition backtrace.
func (e *Evaluator) thunk(scope *object.Scope, expr ast.Expr, bt *diag.Frame) *object.Thunk {
	return object.NewExprThunk(e, scope, expr, bt)
}

// Eval dispatches on the kind of expr and returns its value, or a
// diagnostic error. It is the sole entry point the rest of the core calls
// to force an AST node, and the method that makes *Evaluator satisfy
// object.Interp.
func (e *Evaluator) Eval(scope *object.Scope, expr ast.Expr, bt *diag.Frame) (object.Value, *diag.Error) {
	switch n := expr.(type) {
	case *ast.Root:
		return e.Eval(scope, n.Expr, bt)
	case *ast.Paren:
		return e.Eval(scope, n.Expr, bt)
	case *ast.Literal:
		return e.evalLiteral(n, bt)
	case *ast.Ident:
		return e.evalIdent(scope, n, bt)
	case *ast.StringExpr:
		return e.evalString(scope, n, bt)
	case *ast.PathExpr:
		return e.evalPath(scope, n, bt)
	case *ast.ListExpr:
		return e.evalList(scope, n, bt)
	case *ast.AttrSetExpr:
		return e.evalAttrSet(scope, n, bt)
	case *ast.LetIn:
		return e.evalLetIn(scope, n, bt)
	case *ast.LegacyLet:
		return nil, diag.Errorf(diag.Unimplemented, bt, n.Span(), "legacy let expressions are not supported")
	case *ast.Select:
		return e.evalSelect(scope, n, bt)
	case *ast.HasAttr:
		return e.evalHasAttr(scope, n, bt)
	case *ast.IfElse:
		return e.evalIfElse(scope, n, bt)
	case *ast.Assert:
		return e.evalAssert(scope, n, bt)
	case *ast.With:
		return e.evalWith(scope, n, bt)
	case *ast.Lambda:
		return &object.UserLambda{Captured: scope, Param: n.Param, Body: n.Body}, nil
	case *ast.Apply:
		return e.evalApply(scope, n, bt)
	case *ast.BinOp:
		return e.evalBinOp(scope, n, bt)
	case *ast.UnaryOp:
		return e.evalUnaryOp(scope, n, bt)
	case *ast.ErrorExpr:
		return nil, diag.Errorf(diag.Unimplemented, bt, n.Span(), "%s", errMsg(n))
	default:
		return nil, diag.Errorf(diag.Unimplemented, bt, expr.Span(), "unhandled syntax node %T", expr)
	}
}

func errMsg(n *ast.ErrorExpr) string {
	if n.Message != "" {
		return n.Message
	}
	return "parse error"
}

func (e *Evaluator) evalLiteral(n *ast.Literal, bt *diag.Frame) (object.Value, *diag.Error) {
	switch n.Kind {
	case ast.IntLit:
		return object.Int(n.Int), nil
	case ast.FloatLit:
		return object.Float(n.Float), nil
	case ast.UriLit:
		return nil, diag.Errorf(diag.Unimplemented, bt, n.Span(), "URI literals are not supported: %s", n.Text)
	default:
		return nil, diag.Errorf(diag.Unimplemented, bt, n.Span(), "unknown literal kind")
	}
}

func (e *Evaluator) evalIdent(scope *object.Scope, n *ast.Ident, bt *diag.Frame) (object.Value, *diag.Error) {
	t, ok := scope.GetVariable(n.Name)
	if !ok {
		return nil, diag.Errorf(diag.VariableNotFound, bt, n.Span(), "variable %q not found", n.Name)
	}
	return t.Force(bt)
}

func (e *Evaluator) evalString(scope *object.Scope, n *ast.StringExpr, bt *diag.Frame) (object.Value, *diag.Error) {
	var b strings.Builder
	for _, p := range n.Parts {
		if p.Interp == nil {
			b.WriteString(p.Text)
			continue
		}
		v, err := e.Eval(scope, p.Interp, bt)
		if err != nil {
			return nil, err
		}
		s, ok := object.AsString(v)
		if !ok {
			return nil, diag.Errorf(diag.TypeError, bt, p.Interp.Span(),
				"cannot coerce %s to a string in string interpolation", object.TypeName(v))
		}
		b.WriteString(s)
	}
	return object.String(b.String()), nil
}

func (e *Evaluator) evalList(scope *object.Scope, n *ast.ListExpr, bt *diag.Frame) (object.Value, *diag.Error) {
	elems := make([]*object.Thunk, len(n.Elems))
	for i, el := range n.Elems {
		elems[i] = e.thunk(scope, el, bt)
	}
	return object.NewList(elems), nil
}

func (e *Evaluator) evalIfElse(scope *object.Scope, n *ast.IfElse, bt *diag.Frame) (object.Value, *diag.Error) {
	cv, err := e.Eval(scope, n.Cond, bt)
	if err != nil {
		return nil, err
	}
	b, ok := cv.(object.Bool)
	if !ok {
		return nil, diag.Errorf(diag.TypeError, bt, n.Cond.Span(), "condition must be a bool, found %s", object.TypeName(cv))
	}
	if b {
		return e.Eval(scope, n.Then, bt)
	}
	return e.Eval(scope, n.Else, bt)
}

func (e *Evaluator) evalAssert(scope *object.Scope, n *ast.Assert, bt *diag.Frame) (object.Value, *diag.Error) {
	cv, err := e.Eval(scope, n.Cond, bt)
	if err != nil {
		return nil, err
	}
	b, ok := cv.(object.Bool)
	if !ok {
		return nil, diag.Errorf(diag.TypeError, bt, n.Cond.Span(), "assertion condition must be a bool, found %s", object.TypeName(cv))
	}
	if !b {
		return nil, diag.Errorf(diag.AssertionFailed, bt, n.Cond.Span(), "assertion failed")
	}
	if n.Body == nil {
		return object.Null{}, nil
	}
	return e.Eval(scope, n.Body, bt)
}

func (e *Evaluator) evalWith(scope *object.Scope, n *ast.With, bt *diag.Frame) (object.Value, *diag.Error) {
	ev, err := e.Eval(scope, n.Env, bt)
	if err != nil {
		return nil, err
	}
	set, ok := ev.(*object.AttrSet)
	if !ok {
		return nil, diag.Errorf(diag.TypeError, bt, n.Env.Span(), "with expression must evaluate to a set, found %s", object.TypeName(ev))
	}
	child := scope.NewChildFrom(set)
	return e.Eval(child, n.Body, bt)
}

func (e *Evaluator) evalSelect(scope *object.Scope, n *ast.Select, bt *diag.Frame) (object.Value, *diag.Error) {
	tv, err := e.Eval(scope, n.Target, bt)
	if err != nil {
		return nil, err
	}
	frame := bt.Push(n.Span())
	t, serr := attrpath.ResolveAttrPath(e, scope, frame, tv, n.Target.Span(), n.Path)
	if serr != nil {
		if n.Default != nil {
			return e.Eval(scope, n.Default, bt)
		}
		return nil, serr
	}
	return t.Force(frame)
}

func (e *Evaluator) evalHasAttr(scope *object.Scope, n *ast.HasAttr, bt *diag.Frame) (object.Value, *diag.Error) {
	tv, err := e.Eval(scope, n.Target, bt)
	if err != nil {
		return nil, err
	}
	frame := bt.Push(n.Span())
	ok := attrpath.Has(e, scope, frame, tv, n.Target.Span(), n.Path)
	return object.Bool(ok), nil
}

func (e *Evaluator) evalApply(scope *object.Scope, n *ast.Apply, bt *diag.Frame) (object.Value, *diag.Error) {
	fv, err := e.Eval(scope, n.Func, bt)
	if err != nil {
		return nil, err
	}
	frame := bt.Push(n.Span())
	switch f := fv.(type) {
	case *object.UserLambda:
		return e.applyLambda(f, n.Arg, scope, frame)
	case *object.Builtin:
		return f.Call(e, frame, scope, n.Arg)
	default:
		return nil, diag.Errorf(diag.TypeError, bt, n.Func.Span(), "value is not a function (found %s)", object.TypeName(fv))
	}
}
