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

package object

import (
	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/internal/diag"
)

// Function is implemented by the two callable members of the Value domain:
// UserLambda and Builtin (spec §3.1).
type Function interface {
	Value
	functionNode()
}

// UserLambda is a lambda value: a captured scope, a parameter shape, and a
// body expression, not evaluated until applied (spec §4.5.Lambda).
type UserLambda struct {
	Captured *Scope
	Param    ast.Param
	Body     ast.Expr
}

func (*UserLambda) Kind() Kind      { return KindFunction }
func (*UserLambda) functionNode()   {}

// BuiltinFunc is the shape of a single curried application step of the
// Builtin protocol (spec §4.6): it receives the caller's backtrace, the
// caller's scope, and the unforced argument expression, and chooses for
// itself whether and when to force it via interp.
type BuiltinFunc func(interp Interp, bt *diag.Frame, scope *Scope, arg ast.Expr) (Value, *diag.Error)

// Builtin is an opaque callable value. A multi-argument builtin is
// represented, after currying (see internal/core/builtin), as a chain of
// single-argument Builtins that close over previously supplied arguments.
type Builtin struct {
	Name string
	Func BuiltinFunc
}

func (*Builtin) Kind() Kind    { return KindFunction }
func (*Builtin) functionNode() {}

// Call applies the builtin to one more argument.
func (b *Builtin) Call(interp Interp, bt *diag.Frame, scope *Scope, arg ast.Expr) (Value, *diag.Error) {
	return b.Func(interp, bt, scope, arg)
}
