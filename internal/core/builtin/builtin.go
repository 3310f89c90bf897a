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

// Package builtin implements the currying harness of spec §4.6: turning an
// arity-N builtin body into N chained single-argument object.Builtin
// values, and a small FromExpression-style coercion helper set that forces
// and type-checks a raw (scope, expr) argument pair on demand.
//
// The harness never forces an argument itself — the body decides, which is
// what lets lazy primitives like short-circuiting conditionals, tryEval,
// and element-wise map exist at all (spec §4.6).
package builtin

import (
	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/diag"
)

// RawArg is one unforced (expression, defining scope) pair supplied to a
// curried application, along with the backtrace in effect at the call
// site. The `backtrace` pseudo-parameter spec §4.6 describes as
// auto-threaded and not counting towards arity is realized here simply by
// always passing bt to Body — every builtin receives it for free.
type RawArg struct {
	Scope *object.Scope
	Expr  ast.Expr
	BT    *diag.Frame
}

// Force evaluates the argument, forwarding to interp.Eval.
func (a RawArg) Force(interp object.Interp) (object.Value, *diag.Error) {
	return interp.Eval(a.Scope, a.Expr, a.BT)
}

// Body is the N-ary implementation of a builtin, invoked once all N
// arguments have been curried in.
type Body func(interp object.Interp, bt *diag.Frame, args []RawArg) (object.Value, *diag.Error)

// Curry builds an object.Builtin of the given arity from body. Applying it
// fewer than arity times yields an intermediate Builtin that remembers the
// arguments seen so far (spec §4.6); the arity-th application invokes
// body.
func Curry(name string, arity int, body Body) *object.Builtin {
	if arity <= 0 {
		return &object.Builtin{Name: name, Func: func(interp object.Interp, bt *diag.Frame, scope *object.Scope, arg ast.Expr) (object.Value, *diag.Error) {
			return body(interp, bt, nil)
		}}
	}
	return curryStep(name, arity, nil, body)
}

func curryStep(name string, arity int, collected []RawArg, body Body) *object.Builtin {
	return &object.Builtin{
		Name: name,
		Func: func(interp object.Interp, bt *diag.Frame, scope *object.Scope, arg ast.Expr) (object.Value, *diag.Error) {
			next := make([]RawArg, len(collected), len(collected)+1)
			copy(next, collected)
			next = append(next, RawArg{Scope: scope, Expr: arg, BT: bt})
			if len(next) == arity {
				return body(interp, bt, next)
			}
			return curryStep(name, arity, next, body), nil
		},
	}
}

// Int64 forces arg and requires it be an Int.
func Int64(interp object.Interp, arg RawArg) (int64, *diag.Error) {
	v, err := arg.Force(interp)
	if err != nil {
		return 0, err
	}
	i, ok := v.(object.Int)
	if !ok {
		return 0, diag.Errorf(diag.TypeError, arg.BT, arg.Expr.Span(),
			"expected an integer, found %s", object.TypeName(v))
	}
	return int64(i), nil
}

// Str forces arg and coerces it via as_string.
func Str(interp object.Interp, arg RawArg) (string, *diag.Error) {
	v, err := arg.Force(interp)
	if err != nil {
		return "", err
	}
	s, ok := object.AsString(v)
	if !ok {
		return "", diag.Errorf(diag.TypeError, arg.BT, arg.Expr.Span(),
			"cannot coerce %s to a string", object.TypeName(v))
	}
	return s, nil
}

// AttrSetVal forces arg and requires it be an AttrSet.
func AttrSetVal(interp object.Interp, arg RawArg) (*object.AttrSet, *diag.Error) {
	v, err := arg.Force(interp)
	if err != nil {
		return nil, err
	}
	a, ok := v.(*object.AttrSet)
	if !ok {
		return nil, diag.Errorf(diag.TypeError, arg.BT, arg.Expr.Span(),
			"expected a set, found %s", object.TypeName(v))
	}
	return a, nil
}

// ListVal forces arg and requires it be a List.
func ListVal(interp object.Interp, arg RawArg) (*object.List, *diag.Error) {
	v, err := arg.Force(interp)
	if err != nil {
		return nil, err
	}
	l, ok := v.(*object.List)
	if !ok {
		return nil, diag.Errorf(diag.TypeError, arg.BT, arg.Expr.Span(),
			"expected a list, found %s", object.TypeName(v))
	}
	return l, nil
}

// Any forces arg and returns whatever value it produces, for lazy or
// polymorphic builtins that don't type-check their argument up front.
func Any(interp object.Interp, arg RawArg) (object.Value, *diag.Error) {
	return arg.Force(interp)
}
