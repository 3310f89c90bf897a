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

// Import loads the file named by a Path argument through imp, evaluating
// its root expression in a fresh scope anchored at that file (so its own
// relative Path literals resolve against its own directory, not the
// importer's). A directory lacking the host's entry-point file convention
// surfaces as an IO diagnostic from imp.Load, not a panic (SPEC_FULL.md
// §6.4). Calling import with a nil imp is itself an IO diagnostic: the
// host simply never wired a loader in.
func Import(imp Importer) *object.Builtin {
	return builtin.Curry("import", 1, func(interp object.Interp, bt *diag.Frame, args []builtin.RawArg) (object.Value, *diag.Error) {
		v, err := builtin.Any(interp, args[0])
		if err != nil {
			return nil, err
		}
		p, ok := v.(object.Path)
		if !ok {
			return nil, diag.Errorf(diag.TypeError, bt, args[0].Expr.Span(),
				"import requires a path argument, found %s", object.TypeName(v))
		}
		if imp == nil {
			return nil, diag.Errorf(diag.IO, bt, args[0].Expr.Span(), "import is not supported: no loader configured")
		}
		file, expr, lerr := imp.Load(string(p))
		if lerr != nil {
			return nil, lerr
		}
		return interp.Eval(imp.RootScope(file), expr, bt)
	})
}
