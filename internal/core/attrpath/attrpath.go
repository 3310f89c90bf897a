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

// Package attrpath implements the two attribute-path walks of spec §4.4:
// the read-walk used by Select/HasAttr/inherit-from, and the write-walk
// used by nested attrset construction, which auto-vivifies intermediate
// attrsets.
package attrpath

import (
	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/diag"
	"github.com/nixlang/evalcore/token"
)

// ResolveName resolves one Attr segment to its string name. Ident and
// StringLit segments are used verbatim; Dynamic segments are evaluated,
// forced, and coerced via as_string (spec §4.4).
func ResolveName(interp object.Interp, scope *object.Scope, bt *diag.Frame, a ast.Attr) (string, *diag.Error) {
	switch a.Kind {
	case ast.AttrIdent, ast.AttrString:
		return a.Name, nil
	case ast.AttrDynamic:
		v, err := interp.Eval(scope, a.Expr, bt)
		if err != nil {
			return "", err
		}
		s, ok := object.AsString(v)
		if !ok {
			return "", diag.Errorf(diag.TypeError, bt, a.Expr.Span(),
				"cannot coerce %s to a string for use as an attribute name", object.TypeName(v))
		}
		return s, nil
	default:
		return "", diag.Errorf(diag.TypeError, bt, a.Pos.Span(), "unknown attribute name form")
	}
}

// ResolveAttrPath is the read-walk: for each segment, force the current
// value, require it be an attrset, look up the segment, and fail
// AttributeMissing if absent. It returns the final, still-unforced thunk.
// An empty path returns root itself wrapped in a Concrete thunk.
func ResolveAttrPath(interp object.Interp, scope *object.Scope, bt *diag.Frame, root object.Value, rootSpan token.Span, path ast.AttrPath) (*object.Thunk, *diag.Error) {
	if len(path) == 0 {
		return object.NewConcreteThunk(root), nil
	}
	cur := root
	curSpan := rootSpan
	for i, seg := range path {
		name, err := ResolveName(interp, scope, bt, seg)
		if err != nil {
			return nil, err
		}
		set, ok := cur.(*object.AttrSet)
		if !ok {
			return nil, diag.Errorf(diag.TypeError, bt, curSpan,
				"expected a set to select attribute %q, found %s", name, object.TypeName(cur))
		}
		t, ok := set.Get(name)
		if !ok {
			return nil, diag.Errorf(diag.AttributeMissing, bt, seg.Pos.Span(),
				"attribute %q missing", name)
		}
		if i == len(path)-1 {
			return t, nil
		}
		v, err := t.Force(bt)
		if err != nil {
			return nil, err
		}
		cur = v
		curSpan = seg.Pos.Span()
	}
	panic("unreachable")
}

// Has reports whether the read-walk against root succeeds; failures of any
// kind are coerced to false per spec §4.5.HasAttr.
func Has(interp object.Interp, scope *object.Scope, bt *diag.Frame, root object.Value, rootSpan token.Span, path ast.AttrPath) bool {
	_, err := ResolveAttrPath(interp, scope, bt, root, rootSpan, path)
	return err == nil
}

// ResolveAttrSetPath is the write-walk: for each non-final segment, force
// the current value; if absent, auto-vivify an empty attrset under that
// key; if present and not an attrset, fail. It returns the attrset into
// which the final segment should be inserted, and the final segment's
// name. path must be non-empty.
func ResolveAttrSetPath(interp object.Interp, scope *object.Scope, bt *diag.Frame, root *object.AttrSet, path ast.AttrPath) (*object.AttrSet, string, *diag.Error) {
	cur := root
	for i, seg := range path {
		name, err := ResolveName(interp, scope, bt, seg)
		if err != nil {
			return nil, "", err
		}
		if i == len(path)-1 {
			return cur, name, nil
		}
		t, ok := cur.Get(name)
		if !ok {
			next := object.NewAttrSet()
			cur.Insert(name, object.NewConcreteThunk(next))
			cur = next
			continue
		}
		v, err := t.Force(bt)
		if err != nil {
			return nil, "", err
		}
		next, ok := v.(*object.AttrSet)
		if !ok {
			return nil, "", diag.Errorf(diag.TypeError, bt, seg.Pos.Span(),
				"cannot extend %q: not a set (found %s)", name, object.TypeName(v))
		}
		cur = next
	}
	panic("unreachable")
}
