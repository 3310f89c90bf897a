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

package builtins

import (
	"github.com/nixlang/evalcore/internal/core/builtin"
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/diag"
)

// Head returns the first element of a non-empty list, forced.
func Head() *object.Builtin {
	return builtin.Curry("head", 1, func(interp object.Interp, bt *diag.Frame, args []builtin.RawArg) (object.Value, *diag.Error) {
		l, err := builtin.ListVal(interp, args[0])
		if err != nil {
			return nil, err
		}
		if len(l.Elems) == 0 {
			return nil, diag.Errorf(diag.Custom, bt, args[0].Expr.Span(), "head of an empty list")
		}
		return l.Elems[0].Force(bt)
	})
}

// Tail returns every element but the first, as a new (still lazy) List.
func Tail() *object.Builtin {
	return builtin.Curry("tail", 1, func(interp object.Interp, bt *diag.Frame, args []builtin.RawArg) (object.Value, *diag.Error) {
		l, err := builtin.ListVal(interp, args[0])
		if err != nil {
			return nil, err
		}
		if len(l.Elems) == 0 {
			return nil, diag.Errorf(diag.Custom, bt, args[0].Expr.Span(), "tail of an empty list")
		}
		rest := make([]*object.Thunk, len(l.Elems)-1)
		copy(rest, l.Elems[1:])
		return object.NewList(rest), nil
	})
}

// Length reports the number of elements in a list.
func Length() *object.Builtin {
	return builtin.Curry("length", 1, func(interp object.Interp, bt *diag.Frame, args []builtin.RawArg) (object.Value, *diag.Error) {
		l, err := builtin.ListVal(interp, args[0])
		if err != nil {
			return nil, err
		}
		return object.Int(len(l.Elems)), nil
	})
}

// Map applies a function to every element of a list, element-wise and
// lazily: the function is only invoked once an element of the result list
// is itself forced (spec §4.6's laziness guarantee extended to this
// reference library's own higher-order builtins).
func Map() *object.Builtin {
	return builtin.Curry("map", 2, func(interp object.Interp, bt *diag.Frame, args []builtin.RawArg) (object.Value, *diag.Error) {
		fn, err := builtin.Any(interp, args[0])
		if err != nil {
			return nil, err
		}
		l, err := builtin.ListVal(interp, args[1])
		if err != nil {
			return nil, err
		}
		out := make([]*object.Thunk, len(l.Elems))
		for i, el := range l.Elems {
			el := el
			out[i] = object.NewEvalThunk(interp, func(interp object.Interp, fbt *diag.Frame) (object.Value, *diag.Error) {
				return interp.Apply(fn, el, fbt)
			}, bt, args[1].Expr.Span())
		}
		return object.NewList(out), nil
	})
}
