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

// Throw raises a Custom diagnostic carrying the given message, forced via
// as_string — the language's only user-triggerable abort (spec §8).
func Throw() *object.Builtin {
	return builtin.Curry("throw", 1, func(interp object.Interp, bt *diag.Frame, args []builtin.RawArg) (object.Value, *diag.Error) {
		msg, err := builtin.Str(interp, args[0])
		if err != nil {
			return nil, err
		}
		return nil, diag.Errorf(diag.Custom, bt, args[0].Expr.Span(), "%s", msg)
	})
}

// TryEval evaluates its argument and reports whether it failed, rather
// than propagating the failure — `{ success = true; value = v; }` or
// `{ success = false; value = false; }`, matching Nix's own tryEval shape.
// It catches every diag.Error, InfiniteRecursion included. A thunk whose
// force failed is left Resolving (spec §4.2), so forcing that same cell
// again later reports InfiniteRecursion rather than the original failure.
func TryEval() *object.Builtin {
	return builtin.Curry("tryEval", 1, func(interp object.Interp, bt *diag.Frame, args []builtin.RawArg) (object.Value, *diag.Error) {
		v, evalErr := builtin.Any(interp, args[0])
		out := object.NewAttrSet()
		if evalErr != nil {
			out.Insert("success", object.NewConcreteThunk(object.Bool(false)))
			out.Insert("value", object.NewConcreteThunk(object.Bool(false)))
			return out, nil
		}
		out.Insert("success", object.NewConcreteThunk(object.Bool(true)))
		out.Insert("value", object.NewConcreteThunk(v))
		return out, nil
	})
}
