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

// Package lang is the public facade over internal/core/*: a host imports
// lang, not internal/core/eval or internal/core/object, directly.
package lang

import (
	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/builtins"
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/core/runtime"
	"github.com/nixlang/evalcore/internal/diag"
)

// Value re-exports the evaluator's runtime value type for callers that
// don't need to reach into internal/core/object directly.
type Value = object.Value

// Error re-exports the diagnostic error type.
type Error = diag.Error

// Loader re-exports the host collaborator interface import depends on.
type Loader = runtime.Loader

// deferredImporter breaks the construction cycle between builtins.Default
// (which needs an Importer to build the import builtin) and runtime.New
// (which needs the finished builtin set, and is itself the Importer):
// it's handed to builtins.Default before the Runtime exists, then pointed
// at the real Runtime once New has it in hand.
type deferredImporter struct{ rt *runtime.Runtime }

func (d *deferredImporter) Load(path string) (*object.File, ast.Expr, *Error) {
	return d.rt.Load(path)
}

func (d *deferredImporter) RootScope(file *object.File) *object.Scope {
	return d.rt.RootScope(file)
}

// New builds an evaluator instance wired with the reference builtin
// library (builtins.Default) and the given Loader (nil if the caller's
// program tree never calls import).
func New(loader Loader) *runtime.Runtime {
	imp := &deferredImporter{}
	lib := builtins.Default(imp)
	rt := runtime.New(runtime.Options{
		Loader:   loader,
		Builtins: lib,
		Aliases:  builtins.TopLevelAliases,
	})
	imp.rt = rt
	return rt
}

// Eval evaluates a pre-parsed expression directly, anchored at file (nil
// for a program with no meaningful directory, e.g. one built purely by
// internal/testlang in a test).
func Eval(rt *runtime.Runtime, file *object.File, expr ast.Expr) (Value, *Error) {
	return rt.Eval(rt.RootScope(file), expr)
}

// EvalFile loads and evaluates path through rt's configured Loader.
func EvalFile(rt *runtime.Runtime, path string) (Value, *Error) {
	return rt.EvalFile(path)
}

// ForceDeep evaluates expr and forces the result recursively, the shape a
// host uses right before serializing a program's output (spec §6).
func ForceDeep(rt *runtime.Runtime, file *object.File, expr ast.Expr, recursive bool) (Value, *Error) {
	return rt.ForceDeep(rt.RootScope(file), expr, recursive)
}

// Print renders v in the language's compact textual convention.
func Print(v Value) string { return object.Print(v) }

// PrettyPrint renders v indented.
func PrettyPrint(v Value) string { return object.PrettyPrint(v) }
