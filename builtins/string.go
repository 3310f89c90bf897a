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
	"strconv"

	"github.com/nixlang/evalcore/internal/core/builtin"
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/diag"
)

// ToString coerces its argument to a String: via as_string for the kinds
// spec §4.1 covers directly (Bool, Null, Path, String), and via the
// language's own number-literal rendering for Int/Float, matching the way
// a user would expect `"${n}"` interpolation to already stringify n.
func ToString() *object.Builtin {
	return builtin.Curry("toString", 1, func(interp object.Interp, bt *diag.Frame, args []builtin.RawArg) (object.Value, *diag.Error) {
		v, err := builtin.Any(interp, args[0])
		if err != nil {
			return nil, err
		}
		if s, ok := object.AsString(v); ok {
			return object.String(s), nil
		}
		switch x := v.(type) {
		case object.Int:
			return object.String(strconv.FormatInt(int64(x), 10)), nil
		case object.Float:
			return object.String(object.Print(x)), nil
		default:
			return nil, diag.Errorf(diag.TypeError, bt, args[0].Expr.Span(), "cannot convert %s to a string", object.TypeName(v))
		}
	})
}
