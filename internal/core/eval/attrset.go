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
	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/internal/core/attrpath"
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/diag"
)

// evalAttrSet builds a non-recursive or rec attrset (spec §4.5.AttrSet).
// Non-recursive: entries are PendingExpr thunks evaluated in a fresh child
// of the defining scope — they cannot see each other. Recursive (rec):
// entries are evaluated in a child scope whose variables field IS the
// attrset being built, so bindings observe each other exactly the way a
// let-in's entries do.
func (e *Evaluator) evalAttrSet(scope *object.Scope, n *ast.AttrSetExpr, bt *diag.Frame) (object.Value, *diag.Error) {
	set := object.NewAttrSet()
	entryScope := scope.NewChild()
	if n.Rec {
		entryScope = scope.NewChildWithVars(set)
	}
	if err := e.populateAttrSet(entryScope, scope, set, n.Entries, n.Inherits, bt); err != nil {
		return nil, err
	}
	return set, nil
}

// populateAttrSet inserts every AttrpathValue entry (via the write-walk,
// auto-vivifying intermediate sets) and every Inherit clause into set,
// evaluating values lazily in entryScope. outerScope is the scope that
// encloses the set being built (entryScope's parent in every case; for a
// rec attrset or let-in, entryScope.Variables() aliases set) — a bare
// `inherit a;` resolves a from
// outerScope, never from the set under construction, so it can never
// shadow itself into a self-referential cycle.
func (e *Evaluator) populateAttrSet(entryScope, outerScope *object.Scope, set *object.AttrSet, entries []ast.AttrpathValue, inherits []ast.Inherit, bt *diag.Frame) *diag.Error {
	for _, entry := range entries {
		target, name, err := attrpath.ResolveAttrSetPath(e, entryScope, bt, set, entry.Path)
		if err != nil {
			return err
		}
		t := e.thunk(entryScope, entry.Value, bt)
		target.Insert(name, t)
	}
	for _, inh := range inherits {
		if err := e.evalInherit(entryScope, outerScope, set, inh, bt); err != nil {
			return err
		}
	}
	return nil
}

// evalLetIn implements `let ... in body` (spec §4.5.LetIn): entries behave
// like a rec attrset built directly into the current scope's child, then
// body is evaluated in that same child.
func (e *Evaluator) evalLetIn(scope *object.Scope, n *ast.LetIn, bt *diag.Frame) (object.Value, *diag.Error) {
	set := object.NewAttrSet()
	child := scope.NewChildWithVars(set)
	if err := e.populateAttrSet(child, scope, set, n.Entries, n.Inherits, bt); err != nil {
		return nil, err
	}
	return e.Eval(child, n.Body, bt)
}
