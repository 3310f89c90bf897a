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

// Package builtins is a reference concrete builtin library: just enough of
// the functions spec.md §8's testable properties name (head, throw,
// tryEval, import, …) for those properties to be exercisable. spec.md §1
// explicitly places "the concrete library of builtin functions" outside
// the CORE's scope — this package is additive, not part of
// internal/core/*, and wired the same way a host's own library would be:
// through the currying harness in internal/core/builtin and the `object`
// value domain. internal/core never imports this package.
package builtins

import (
	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/diag"
)

// Importer is the capability the import builtin needs from its host: load
// a path to a parsed file (or an IO diagnostic, per the Open Question
// resolution in SPEC_FULL.md §6.4), and build a fresh root scope anchored
// at the loaded file so its own relative Path literals resolve correctly.
// internal/core/runtime.Runtime satisfies this directly; no import of that
// package is needed here, only of its method shapes.
type Importer interface {
	Load(path string) (*object.File, ast.Expr, *diag.Error)
	RootScope(file *object.File) *object.Scope
}

// Default assembles the reference library as a name -> Builtin map, ready
// to hand to runtime.Options.Builtins. imp may be nil if the caller knows
// the program never calls import; calling import with a nil imp raises an
// IO diagnostic rather than panicking.
func Default(imp Importer) map[string]*object.Builtin {
	return map[string]*object.Builtin{
		"head":       Head(),
		"tail":       Tail(),
		"length":     Length(),
		"map":        Map(),
		"throw":      Throw(),
		"tryEval":    TryEval(),
		"toString":   ToString(),
		"isAttrs":    isKind("isAttrs", object.KindAttrSet),
		"isList":     isKind("isList", object.KindList),
		"isString":   isKind("isString", object.KindString),
		"isInt":      isKind("isInt", object.KindInt),
		"isFloat":    isKind("isFloat", object.KindFloat),
		"isBool":     isKind("isBool", object.KindBool),
		"isNull":     isKind("isNull", object.KindNull),
		"isFunction": isKind("isFunction", object.KindFunction),
		"import":     Import(imp),
	}
}

// TopLevelAliases names the Default entries the language also exposes as
// unqualified identifiers, mirroring the small set of primops Nix itself
// aliases at the root scope alongside builtins.*.
var TopLevelAliases = []string{"import", "map", "throw", "toString"}

func isKind(name string, k object.Kind) *object.Builtin {
	return curry1(name, func(interp object.Interp, bt *diag.Frame, v object.Value) (object.Value, *diag.Error) {
		return object.Bool(v.Kind() == k), nil
	})
}
