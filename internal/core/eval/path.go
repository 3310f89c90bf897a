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
	"path/filepath"
	"strings"

	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/diag"
)

// evalPath implements spec §4.5.Path: a path literal is resolved to an
// absolute Path value at evaluation time, not at parse time, so that
// interpolated segments can only be known once their expressions are
// forced. An absolute literal (leading "/") is cleaned as-is; anything
// else — including a leading ".." — resolves against the defining
// file's directory, joined against the current file's parent before
// normalizing.
func (e *Evaluator) evalPath(scope *object.Scope, n *ast.PathExpr, bt *diag.Frame) (object.Value, *diag.Error) {
	var b strings.Builder
	for _, p := range n.Parts {
		if p.Interp == nil {
			b.WriteString(p.Text)
			continue
		}
		v, err := e.Eval(scope, p.Interp, bt)
		if err != nil {
			return nil, err
		}
		s, ok := object.AsString(v)
		if !ok {
			return nil, diag.Errorf(diag.TypeError, bt, p.Interp.Span(),
				"cannot coerce %s to a string in path interpolation", object.TypeName(v))
		}
		b.WriteString(s)
	}
	raw := b.String()

	if n.Absolute {
		return object.Path(filepath.Clean(raw)), nil
	}

	file := scope.File()
	if file == nil || file.Dir == "" {
		return object.Path(filepath.Clean(raw)), nil
	}
	return object.Path(filepath.Clean(filepath.Join(file.Dir, raw))), nil
}
