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

// curry1 builds an arity-1 Builtin that forces its argument to whatever
// Value it produces before calling body — the shape most of this
// package's type predicates and toString share.
func curry1(name string, body func(interp object.Interp, bt *diag.Frame, v object.Value) (object.Value, *diag.Error)) *object.Builtin {
	return builtin.Curry(name, 1, func(interp object.Interp, bt *diag.Frame, args []builtin.RawArg) (object.Value, *diag.Error) {
		v, err := builtin.Any(interp, args[0])
		if err != nil {
			return nil, err
		}
		return body(interp, bt, v)
	})
}
