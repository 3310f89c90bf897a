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

package eval

import (
	"strings"

	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/diag"
	"github.com/nixlang/evalcore/token"
)

// applyLambda implements spec §4.5's "Parameter binding": an identifier
// parameter binds the unforced argument as-is; a pattern parameter forces
// the argument, destructures it, and applies defaults. Defaults are
// evaluated lazily in the same child scope the pattern's own bindings land
// in, so one default may refer to a sibling parameter.
func (e *Evaluator) applyLambda(f *object.UserLambda, argExpr ast.Expr, callerScope *object.Scope, bt *diag.Frame) (object.Value, *diag.Error) {
	switch f.Param.Kind {
	case ast.ParamIdent:
		child := f.Captured.NewChild()
		child.SetVariable(f.Param.Ident, e.thunk(callerScope, argExpr, bt))
		return e.Eval(child, f.Body, bt)
	case ast.ParamPattern:
		return e.applyPattern(f, e.thunk(callerScope, argExpr, bt), argExpr.Span(), bt)
	default:
		return nil, diag.Errorf(diag.TypeError, bt, f.Body.Span(), "unknown parameter kind")
	}
}

// Apply implements object.Interp's higher-order application hook: invoking
// fn on an already-built argument thunk rather than an ast.Apply node.
// Builtins that take a callback (map and similar) use this to apply the
// callback to each element lazily without re-entering the parser's Apply
// dispatch. A Builtin callee is driven through a synthetic single-variable
// scope and an Ident referring to it, so the ordinary curried Builtin
// protocol (which expects a (scope, expr) pair) needs no special case.
func (e *Evaluator) Apply(fn object.Value, arg *object.Thunk, bt *diag.Frame) (object.Value, *diag.Error) {
	switch f := fn.(type) {
	case *object.UserLambda:
		switch f.Param.Kind {
		case ast.ParamIdent:
			child := f.Captured.NewChild()
			child.SetVariable(f.Param.Ident, arg)
			return e.Eval(child, f.Body, bt)
		case ast.ParamPattern:
			return e.applyPattern(f, arg, token.NoSpan, bt)
		default:
			return nil, diag.Errorf(diag.TypeError, bt, f.Body.Span(), "unknown parameter kind")
		}
	case *object.Builtin:
		const synthName = "$arg"
		scope := object.NewRootScope(nil)
		scope.SetVariable(synthName, arg)
		return f.Call(e, bt, scope, &ast.Ident{Name: synthName})
	default:
		return nil, diag.Errorf(diag.TypeError, bt, token.NoSpan, "value is not a function (found %s)", object.TypeName(fn))
	}
}

func (e *Evaluator) applyPattern(f *object.UserLambda, argThunk *object.Thunk, argSpan token.Span, bt *diag.Frame) (object.Value, *diag.Error) {
	argVal, err := argThunk.Force(bt)
	if err != nil {
		return nil, err
	}
	argSet, ok := argVal.(*object.AttrSet)
	if !ok {
		return nil, diag.Errorf(diag.TypeError, bt, argSpan,
			"pattern parameter requires a set argument, found %s", object.TypeName(argVal))
	}

	params := object.NewAttrSet()
	child := f.Captured.NewChildWithVars(params)

	if f.Param.At != "" {
		params.Insert(f.Param.At, object.NewConcreteThunk(argSet))
	}

	declared := make(map[string]bool, len(f.Param.Entries))
	var missing []string
	for _, entry := range f.Param.Entries {
		declared[entry.Name] = true
		if t, ok := argSet.Get(entry.Name); ok {
			params.Insert(entry.Name, t)
			continue
		}
		if entry.Default != nil {
			params.Insert(entry.Name, e.thunk(child, entry.Default, bt))
			continue
		}
		missing = append(missing, entry.Name)
	}
	if len(missing) > 0 {
		return nil, diag.Errorf(diag.MissingRequiredArgument, bt, f.Body.Span(),
			"missing required argument(s): %s", strings.Join(missing, ", "))
	}

	if !f.Param.Ellipsis {
		var unused []string
		for _, k := range argSet.Keys() {
			if !declared[k] {
				unused = append(unused, k)
			}
		}
		if len(unused) > 0 {
			return nil, diag.Errorf(diag.UnusedArgument, bt, argSpan,
				"unexpected argument(s): %s", strings.Join(unused, ", "))
		}
	}

	return e.Eval(child, f.Body, bt)
}
