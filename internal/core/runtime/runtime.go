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

// Package runtime is the host-facing shell around internal/core/eval: it
// owns the root Scope (pre-populated with true/false/null/builtins and any
// configured top-level aliases, spec §3.3), the Loader collaborator
// (spec §6's "surface parser/file loader" external interface), and the
// Eval/ForceDeep entry points a caller uses instead of reaching into
// internal/core directly.
package runtime

import (
	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/internal/core/eval"
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/diag"
	"github.com/nixlang/evalcore/token"
)

// Loader resolves a path (already evaluated to an object.Path, e.g. by the
// `import` builtin) to the file it names: the file handle used to anchor
// further relative path literals, and the parsed root expression. A
// directory lacking whatever entry-point file convention the host uses
// should return an *diag.Error of Kind diag.IO (Open Question resolution,
// SPEC_FULL.md §6.4) rather than panicking.
type Loader interface {
	Load(path string) (*object.File, ast.Expr, *diag.Error)
}

// Options configures a Runtime.
type Options struct {
	// Loader resolves import targets. May be nil if the program never
	// calls import.
	Loader Loader
	// Builtins is inserted wholesale into the root scope's `builtins`
	// attrset.
	Builtins map[string]*object.Builtin
	// Aliases names entries of Builtins that are additionally bound as
	// free identifiers at the root scope, mirroring the handful of
	// primops the language exposes unqualified (e.g. import, throw).
	Aliases []string
}

// Runtime is the host-facing evaluator instance: one Runtime per loaded
// program tree, shared across every file reached by import.
type Runtime struct {
	interp     *eval.Evaluator
	loader     Loader
	builtinSet *object.AttrSet
	aliases    map[string]*object.Builtin
}

// New builds a Runtime from opts.
func New(opts Options) *Runtime {
	bset := object.NewAttrSet()
	for name, b := range opts.Builtins {
		bset.Insert(name, object.NewConcreteThunk(b))
	}
	aliases := make(map[string]*object.Builtin, len(opts.Aliases))
	for _, name := range opts.Aliases {
		if b, ok := opts.Builtins[name]; ok {
			aliases[name] = b
		}
	}
	return &Runtime{
		interp:     eval.New(),
		loader:     opts.Loader,
		builtinSet: bset,
		aliases:    aliases,
	}
}

// RootScope builds a fresh root Scope anchored at file, pre-populated with
// true, false, null, builtins, and the configured aliases (spec §3.3).
// Every import target gets its own RootScope so each file's relative Path
// literals resolve against its own directory.
func (rt *Runtime) RootScope(file *object.File) *object.Scope {
	scope := object.NewRootScope(file)
	scope.SetVariable("true", object.NewConcreteThunk(object.Bool(true)))
	scope.SetVariable("false", object.NewConcreteThunk(object.Bool(false)))
	scope.SetVariable("null", object.NewConcreteThunk(object.Null{}))
	scope.SetVariable("builtins", object.NewConcreteThunk(rt.builtinSet))
	for name, b := range rt.aliases {
		scope.SetVariable(name, object.NewConcreteThunk(b))
	}
	return scope
}

// Interp exposes the underlying object.Interp capability, for collaborators
// (e.g. the builtins package's higher-order functions) that need to force
// or apply values outside of a normal ast.Expr dispatch.
func (rt *Runtime) Interp() object.Interp { return rt.interp }

// Load delegates to the configured Loader. Runtime itself satisfies the
// Importer shape builtins.Import needs (Load + RootScope) so the builtins
// package can depend on builtins.Importer without depending on the rest of
// this package's construction details.
func (rt *Runtime) Load(path string) (*object.File, ast.Expr, *diag.Error) {
	if rt.loader == nil {
		return nil, nil, diag.Errorf(diag.IO, nil, token.NoSpan, "import is not supported: no loader configured")
	}
	return rt.loader.Load(path)
}

// Eval evaluates expr in scope with no caller backtrace — the entry point
// for a freshly loaded file's root expression.
func (rt *Runtime) Eval(scope *object.Scope, expr ast.Expr) (object.Value, *diag.Error) {
	return rt.interp.Eval(scope, expr, nil)
}

// EvalFile loads path via the configured Loader and evaluates its root
// expression in a fresh RootScope anchored at the loaded file.
func (rt *Runtime) EvalFile(path string) (object.Value, *diag.Error) {
	file, expr, err := rt.Load(path)
	if err != nil {
		return nil, err
	}
	return rt.Eval(rt.RootScope(file), expr)
}

// ForceDeep evaluates expr in scope and then forces the result recursively
// (or one level deep, if recursive is false) — the entry point a host uses
// before serializing a program's result (spec §6).
func (rt *Runtime) ForceDeep(scope *object.Scope, expr ast.Expr, recursive bool) (object.Value, *diag.Error) {
	t := object.NewExprThunk(rt.interp, scope, expr, nil)
	return object.ForceDeep(t, recursive, nil)
}
