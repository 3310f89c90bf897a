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

// evalUnaryOp implements `!` (Bool negation) and unary `-` (numeric
// negation), spec §4.5's UnaryOp table.
func (e *Evaluator) evalUnaryOp(scope *object.Scope, n *ast.UnaryOp, bt *diag.Frame) (object.Value, *diag.Error) {
	v, err := e.Eval(scope, n.Expr, bt)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case ast.OpNot:
		b, ok := v.(object.Bool)
		if !ok {
			return nil, diag.Errorf(diag.TypeError, bt, n.Expr.Span(), "expected a bool, found %s", object.TypeName(v))
		}
		return object.Bool(!b), nil
	case ast.OpNeg:
		switch x := v.(type) {
		case object.Int:
			return object.Int(-x), nil
		case object.Float:
			return object.Float(-x), nil
		default:
			return nil, diag.Errorf(diag.TypeError, bt, n.Expr.Span(), "expected a number, found %s", object.TypeName(v))
		}
	default:
		return nil, diag.Errorf(diag.Unimplemented, bt, n.Span(), "unknown unary operator")
	}
}
