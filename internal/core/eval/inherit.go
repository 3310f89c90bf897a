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
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/diag"
)

// evalInherit implements both Inherit flavours (spec §4.5.Inherit):
// `inherit a b c;` binds each name to a PendingEval that looks the name up
// in outerScope (the scope enclosing the set under construction) at force
// time — never in entryScope itself, which would self-shadow in a rec
// attrset or let-in, where entryScope's variables alias set; `inherit (E)
// a b c;` captures E (evaluated in entryScope, so it may reference sibling
// rec bindings) as a single shared thunk and binds each name to a
// PendingEval that forces that thunk, requires an attrset, and reads the
// key.
func (e *Evaluator) evalInherit(entryScope, outerScope *object.Scope, set *object.AttrSet, inh ast.Inherit, bt *diag.Frame) *diag.Error {
	if inh.From == nil {
		for _, name := range inh.Attrs {
			name := name
			closure := func(interp object.Interp, fbt *diag.Frame) (object.Value, *diag.Error) {
				t, ok := outerScope.GetVariable(name)
				if !ok {
					return nil, diag.Errorf(diag.VariableNotFound, fbt, inh.Pos.Span(), "variable %q not found", name)
				}
				return t.Force(fbt)
			}
			set.Insert(name, object.NewEvalThunk(e, closure, bt, inh.Pos.Span()))
		}
		return nil
	}

	from := e.thunk(entryScope, inh.From, bt)
	for _, name := range inh.Attrs {
		name := name
		closure := func(interp object.Interp, fbt *diag.Frame) (object.Value, *diag.Error) {
			fv, err := from.Force(fbt)
			if err != nil {
				return nil, err
			}
			src, ok := fv.(*object.AttrSet)
			if !ok {
				return nil, diag.Errorf(diag.TypeError, fbt, inh.From.Span(),
					"inherit source must be a set, found %s", object.TypeName(fv))
			}
			t, ok := src.Get(name)
			if !ok {
				return nil, diag.Errorf(diag.AttributeMissing, fbt, inh.Pos.Span(), "attribute %q missing", name)
			}
			return t.Force(fbt)
		}
		set.Insert(name, object.NewEvalThunk(e, closure, bt, inh.Pos.Span()))
	}
	return nil
}
