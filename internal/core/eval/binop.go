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
)

func (e *Evaluator) evalBinOp(scope *object.Scope, n *ast.BinOp, bt *diag.Frame) (object.Value, *diag.Error) {
	switch n.Kind {
	case ast.OpAnd:
		return e.shortCircuit(scope, n, bt, false)
	case ast.OpOr:
		return e.shortCircuit(scope, n, bt, true)
	case ast.OpImplies:
		lv, err := e.evalBool(scope, n.Lhs, bt)
		if err != nil {
			return nil, err
		}
		if !lv {
			return object.Bool(true), nil
		}
		return e.Eval(scope, n.Rhs, bt)
	}

	lv, err := e.Eval(scope, n.Lhs, bt)
	if err != nil {
		return nil, err
	}
	rv, err := e.Eval(scope, n.Rhs, bt)
	if err != nil {
		return nil, err
	}

	switch n.Kind {
	case ast.OpEq:
		return object.Bool(object.Equal(lv, rv)), nil
	case ast.OpNeq:
		return object.Bool(!object.Equal(lv, rv)), nil
	case ast.OpAdd:
		return e.evalAdd(n, lv, rv, bt)
	case ast.OpSub, ast.OpMul, ast.OpDiv:
		return evalArith(n, lv, rv, bt)
	case ast.OpConcat:
		return evalConcat(n, lv, rv, bt)
	case ast.OpUpdate:
		return evalUpdate(n, lv, rv, bt)
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return evalCompare(n, lv, rv, bt)
	default:
		return nil, diag.Errorf(diag.Unimplemented, bt, n.Span(), "unknown binary operator")
	}
}

func (e *Evaluator) evalBool(scope *object.Scope, expr ast.Expr, bt *diag.Frame) (bool, *diag.Error) {
	v, err := e.Eval(scope, expr, bt)
	if err != nil {
		return false, err
	}
	b, ok := v.(object.Bool)
	if !ok {
		return false, diag.Errorf(diag.TypeError, bt, expr.Span(), "expected a bool, found %s", object.TypeName(v))
	}
	return bool(b), nil
}

// shortCircuit implements && (shortValue=false forces rhs only when lhs is
// true) and || (shortValue=true forces rhs only when lhs is false) — spec
// §4.5's BinOp table entry "short-circuit on Bool lhs".
func (e *Evaluator) shortCircuit(scope *object.Scope, n *ast.BinOp, bt *diag.Frame, shortValue bool) (object.Value, *diag.Error) {
	lv, err := e.evalBool(scope, n.Lhs, bt)
	if err != nil {
		return nil, err
	}
	if lv == shortValue {
		return object.Bool(shortValue), nil
	}
	return e.Eval(scope, n.Rhs, bt)
}

func typeErr2(bt *diag.Frame, lhsSpan, rhsSpan ast.Expr, format string, args ...interface{}) *diag.Error {
	e := diag.Errorf(diag.TypeError, bt, lhsSpan.Span(), format, args...)
	e.WithLabel(rhsSpan.Span(), diag.SevError, diag.TypeError, "other operand here")
	return e
}

func (e *Evaluator) evalAdd(n *ast.BinOp, lv, rv object.Value, bt *diag.Frame) (object.Value, *diag.Error) {
	// + has a single non-numeric success arm: a String lhs, which coerces
	// rhs via AsString (this is what makes String + Path succeed as
	// concatenation). A Path lhs has no arm of its own, so Path + anything
	// — including Path + String and Path + Path — is a TypeError.
	if _, ok := lv.(object.Path); ok {
		return nil, typeErr2(bt, n.Lhs, n.Rhs, "cannot add %s to a path", object.TypeName(rv))
	}
	if ls, ok := lv.(object.String); ok {
		rs, rok := object.AsString(rv)
		if !rok {
			return nil, typeErr2(bt, n.Lhs, n.Rhs, "cannot coerce %s to a string", object.TypeName(rv))
		}
		return object.String(string(ls) + rs), nil
	}
	if _, ok := rv.(object.Path); ok {
		return nil, typeErr2(bt, n.Lhs, n.Rhs, "cannot add a path to %s", object.TypeName(lv))
	}

	return evalArith(n, lv, rv, bt)
}

func numeric(v object.Value) (isInt bool, i int64, f float64, ok bool) {
	switch x := v.(type) {
	case object.Int:
		return true, int64(x), float64(x), true
	case object.Float:
		return false, 0, float64(x), true
	default:
		return false, 0, 0, false
	}
}

// evalArith implements -, *, / and the numeric leg of + (spec §4.5's
// BinOp table: "Int×Int→Int, else promote to Float").
func evalArith(n *ast.BinOp, lv, rv object.Value, bt *diag.Frame) (object.Value, *diag.Error) {
	lIsInt, li, lf, lok := numeric(lv)
	rIsInt, ri, rf, rok := numeric(rv)
	if !lok {
		return nil, typeErr2(bt, n.Lhs, n.Rhs, "expected a number, found %s", object.TypeName(lv))
	}
	if !rok {
		return nil, typeErr2(bt, n.Lhs, n.Rhs, "expected a number, found %s", object.TypeName(rv))
	}

	if lIsInt && rIsInt {
		switch n.Kind {
		case ast.OpAdd:
			return object.Int(li + ri), nil
		case ast.OpSub:
			return object.Int(li - ri), nil
		case ast.OpMul:
			return object.Int(li * ri), nil
		case ast.OpDiv:
			if ri == 0 {
				return nil, diag.Errorf(diag.TypeError, bt, n.Rhs.Span(), "division by zero")
			}
			return object.Int(li / ri), nil
		}
	}

	switch n.Kind {
	case ast.OpAdd:
		return object.Float(lf + rf), nil
	case ast.OpSub:
		return object.Float(lf - rf), nil
	case ast.OpMul:
		return object.Float(lf * rf), nil
	case ast.OpDiv:
		return object.Float(lf / rf), nil
	}
	return nil, diag.Errorf(diag.Unimplemented, bt, n.Span(), "unknown arithmetic operator")
}

func evalConcat(n *ast.BinOp, lv, rv object.Value, bt *diag.Frame) (object.Value, *diag.Error) {
	ll, ok := lv.(*object.List)
	if !ok {
		return nil, typeErr2(bt, n.Lhs, n.Rhs, "expected a list, found %s", object.TypeName(lv))
	}
	rl, ok := rv.(*object.List)
	if !ok {
		return nil, typeErr2(bt, n.Lhs, n.Rhs, "expected a list, found %s", object.TypeName(rv))
	}
	out := make([]*object.Thunk, 0, len(ll.Elems)+len(rl.Elems))
	out = append(out, ll.Elems...)
	out = append(out, rl.Elems...)
	return object.NewList(out), nil
}

// evalUpdate implements `//`: a shallow attrset merge where rhs keys
// override lhs keys (spec §4.5's BinOp table).
func evalUpdate(n *ast.BinOp, lv, rv object.Value, bt *diag.Frame) (object.Value, *diag.Error) {
	la, ok := lv.(*object.AttrSet)
	if !ok {
		return nil, typeErr2(bt, n.Lhs, n.Rhs, "expected a set, found %s", object.TypeName(lv))
	}
	ra, ok := rv.(*object.AttrSet)
	if !ok {
		return nil, typeErr2(bt, n.Lhs, n.Rhs, "expected a set, found %s", object.TypeName(rv))
	}
	out := la.Clone()
	for _, k := range ra.Keys() {
		t, _ := ra.Get(k)
		out.Insert(k, t)
	}
	return out, nil
}

func evalCompare(n *ast.BinOp, lv, rv object.Value, bt *diag.Frame) (object.Value, *diag.Error) {
	c, err := compareValues(n, lv, rv, bt)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case ast.OpLt:
		return object.Bool(c < 0), nil
	case ast.OpLe:
		return object.Bool(c <= 0), nil
	case ast.OpGt:
		return object.Bool(c > 0), nil
	case ast.OpGe:
		return object.Bool(c >= 0), nil
	default:
		return nil, diag.Errorf(diag.Unimplemented, bt, n.Span(), "unknown comparison operator")
	}
}

// compareValues implements the ordering operators' pointwise comparisons
// (spec §4.5's BinOp table): Int/Float with full mutual promotion (the
// Open Question SPEC_FULL.md §6.1 resolves by extending the arithmetic
// promotion rule to ordering), lexicographic String, and textual Path.
func compareValues(n *ast.BinOp, lv, rv object.Value, bt *diag.Frame) (int, *diag.Error) {
	if lIsInt, li, lf, lok := numeric(lv); lok {
		if rIsInt, ri, rf, rok := numeric(rv); rok {
			if lIsInt && rIsInt {
				return cmpInt64(li, ri), nil
			}
			return cmpFloat64(lf, rf), nil
		}
		return 0, typeErr2(bt, n.Lhs, n.Rhs, "cannot compare a number with %s", object.TypeName(rv))
	}
	if ls, ok := lv.(object.String); ok {
		if rs, ok := rv.(object.String); ok {
			return strings.Compare(string(ls), string(rs)), nil
		}
		return 0, typeErr2(bt, n.Lhs, n.Rhs, "cannot compare a string with %s", object.TypeName(rv))
	}
	if lp, ok := lv.(object.Path); ok {
		if rp, ok := rv.(object.Path); ok {
			return strings.Compare(string(lp), string(rp)), nil
		}
		return 0, typeErr2(bt, n.Lhs, n.Rhs, "cannot compare a path with %s", object.TypeName(rv))
	}
	return 0, typeErr2(bt, n.Lhs, n.Rhs, "%s is not orderable", object.TypeName(lv))
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
