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

package object

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/internal/diag"
)

// fakeInterp lets this package's tests drive the Thunk state machine without
// depending on internal/core/eval (which itself depends on this package).
type fakeInterp struct {
	evalFn  func(scope *Scope, expr ast.Expr, bt *diag.Frame) (Value, *diag.Error)
	applyFn func(fn Value, arg *Thunk, bt *diag.Frame) (Value, *diag.Error)
}

func (f *fakeInterp) Eval(scope *Scope, expr ast.Expr, bt *diag.Frame) (Value, *diag.Error) {
	return f.evalFn(scope, expr, bt)
}

func (f *fakeInterp) Apply(fn Value, arg *Thunk, bt *diag.Frame) (Value, *diag.Error) {
	if f.applyFn == nil {
		return nil, diag.Errorf(diag.Unimplemented, bt, a.Span(), "apply not supported")
	}
	return f.applyFn(fn, arg, bt)
}

var a = &ast.Ident{Name: "x"}

func TestThunkLazinessNeverEvaluatesUntilForced(t *testing.T) {
	called := false
	interp := &fakeInterp{evalFn: func(scope *Scope, expr ast.Expr, bt *diag.Frame) (Value, *diag.Error) {
		called = true
		return nil, diag.Errorf(diag.Custom, bt, a.Span(), "boom")
	}}
	th := NewExprThunk(interp, nil, a, nil)
	qt.Assert(t, qt.IsFalse(th.IsConcrete()))
	qt.Assert(t, qt.IsFalse(called))
}

func TestThunkMemoizesOnSuccess(t *testing.T) {
	calls := 0
	interp := &fakeInterp{evalFn: func(scope *Scope, expr ast.Expr, bt *diag.Frame) (Value, *diag.Error) {
		calls++
		return Int(7), nil
	}}
	th := NewExprThunk(interp, nil, a, nil)

	v1, err1 := th.Force(nil)
	qt.Assert(t, qt.IsNil(err1))
	qt.Assert(t, qt.Equals(v1, Value(Int(7))))
	qt.Assert(t, qt.IsTrue(th.IsConcrete()))

	v2, err2 := th.Force(nil)
	qt.Assert(t, qt.IsNil(err2))
	qt.Assert(t, qt.Equals(v2, Value(Int(7))))
	qt.Assert(t, qt.Equals(calls, 1))
}

func TestThunkEvalClosureRunsOnce(t *testing.T) {
	calls := 0
	closure := func(interp Interp, bt *diag.Frame) (Value, *diag.Error) {
		calls++
		return String("hi"), nil
	}
	th := NewEvalThunk(&fakeInterp{}, closure, nil, a.Span())
	_, err := th.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	_, err = th.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(calls, 1))
}

func TestThunkInfiniteRecursionOnSelfReentry(t *testing.T) {
	var th *Thunk
	interp := &fakeInterp{evalFn: func(scope *Scope, expr ast.Expr, bt *diag.Frame) (Value, *diag.Error) {
		return th.Force(bt)
	}}
	th = NewExprThunk(interp, nil, a, nil)
	_, err := th.Force(nil)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, diag.InfiniteRecursion))
}

func TestThunkConcreteShortCircuitsInterp(t *testing.T) {
	th := NewConcreteThunk(Bool(true))
	qt.Assert(t, qt.IsTrue(th.IsConcrete()))
	v, err := th.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, Value(Bool(true))))
}

func TestForceDeepDescendsListAndAttrSet(t *testing.T) {
	order := []string{}
	mk := func(name string, v Value) *Thunk {
		return NewEvalThunk(&fakeInterp{}, func(interp Interp, bt *diag.Frame) (Value, *diag.Error) {
			order = append(order, name)
			return v, nil
		}, nil, a.Span())
	}

	inner := NewAttrSet()
	inner.Insert("k", mk("inner.k", Int(1)))
	list := NewList([]*Thunk{mk("elem0", inner), mk("elem1", Int(2))})

	outerThunk := NewConcreteThunk(list)
	v, err := ForceDeep(outerThunk, true, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, Value(list)))
	qt.Assert(t, qt.DeepEquals(order, []string{"elem0", "inner.k", "elem1"}))

	// Forcing again must not re-invoke any already-Concrete cell.
	order = nil
	_, err = ForceDeep(outerThunk, true, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(order, 0))
}

func TestForceDeepNonRecursiveStopsAtOneLevel(t *testing.T) {
	leafForced := false
	leaf := NewEvalThunk(&fakeInterp{}, func(interp Interp, bt *diag.Frame) (Value, *diag.Error) {
		leafForced = true
		return Int(1), nil
	}, nil, a.Span())
	inner := NewAttrSet()
	inner.Insert("k", leaf)
	elem := NewEvalThunk(&fakeInterp{}, func(interp Interp, bt *diag.Frame) (Value, *diag.Error) {
		return inner, nil
	}, nil, a.Span())
	list := NewList([]*Thunk{elem})

	_, err := ForceDeep(NewConcreteThunk(list), false, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(elem.IsConcrete()))
	qt.Assert(t, qt.IsFalse(leafForced))
}
