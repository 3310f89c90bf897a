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

// Package object is the runtime value model: the nine-kind closed Value
// domain (spec §3.1), the four-state lazy Thunk (spec §3.2), and the Scope
// chain (spec §3.3). The three live in one package, the same way a
// unification engine's internal/core/adt bundles Value + Environment +
// OpContext, because they are mutually recursive: an AttrSet holds Thunks,
// a Thunk closes over a Scope, and a Scope's variables are themselves an
// AttrSet value.
//
// The only open extension point, the Builtin protocol (spec §4.6), is kept
// from needing to import the evaluator package by going through Interp, a
// small capability interface (Eval, Apply) the evaluator implements and injects
// into every PendingExpr/PendingEval Thunk and every Builtin invocation
// (spec design notes §9).
package object

import "fmt"

// Kind tags the nine members of the Value domain.
type Kind int

const (
	KindAttrSet Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindPath
	KindList
	KindNull
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindAttrSet:
		return "set"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindPath:
		return "path"
	case KindList:
		return "list"
	case KindNull:
		return "null"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is the interface implemented by every member of the closed Value
// domain (spec §3.1).
type Value interface {
	Kind() Kind
}

// Bool is the Value domain's boolean member.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

// Int is the Value domain's signed 64-bit integer member.
type Int int64

func (Int) Kind() Kind { return KindInt }

// Float is the Value domain's IEEE-754 double member.
type Float float64

func (Float) Kind() Kind { return KindFloat }

// String is the Value domain's string member.
type String string

func (String) Kind() Kind { return KindString }

// Path is the Value domain's filesystem-path member. A Path is absolute
// once constructed whenever the defining scope has a file handle with a
// directory (spec §4.5.path resolves relative forms against that directory
// at evaluation time). With no file handle, a relative literal is only
// cleaned and stays relative.
type Path string

func (Path) Kind() Kind { return KindPath }

// Null is the Value domain's unit member.
type Null struct{}

func (Null) Kind() Kind { return KindNull }

// AsString implements spec §4.1's as_string coercion, total on
// {Bool, Null, Path, String}. Returns ok=false for every other kind.
func AsString(v Value) (s string, ok bool) {
	switch x := v.(type) {
	case Bool:
		if x {
			return "1", true
		}
		return "", true
	case Null:
		return "", true
	case Path:
		return string(x), true
	case String:
		return string(x), true
	default:
		return "", false
	}
}

// Equal implements spec §4.1's structural equality. Lambdas are equal
// only by identity (pointer equality); other function values (Builtin)
// are never equal, even to themselves, since they have no useful notion
// of structural identity exposed to the language.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Bool:
		return av == b.(Bool)
	case Int:
		return av == b.(Int)
	case Float:
		return av == b.(Float)
	case String:
		return av == b.(String)
	case Path:
		return av == b.(Path)
	case Null:
		return true
	case *AttrSet:
		return equalAttrSet(av, b.(*AttrSet))
	case *List:
		return equalList(av, b.(*List))
	case *UserLambda:
		return av == b.(*UserLambda)
	case *Builtin:
		return false
	default:
		return false
	}
}

func equalAttrSet(a, b *AttrSet) bool {
	if a == b {
		return true
	}
	if len(a.order) != len(b.order) {
		return false
	}
	for _, k := range a.order {
		bt, ok := b.entries[k]
		if !ok {
			return false
		}
		at := a.entries[k]
		av, aerr := at.ForceNoTrace()
		if aerr != nil {
			return false
		}
		bv, berr := bt.ForceNoTrace()
		if berr != nil {
			return false
		}
		if !Equal(av, bv) {
			return false
		}
	}
	return true
}

func equalList(a, b *List) bool {
	if a == b {
		return true
	}
	if len(a.Elems) != len(b.Elems) {
		return false
	}
	for i := range a.Elems {
		av, aerr := a.Elems[i].ForceNoTrace()
		if aerr != nil {
			return false
		}
		bv, berr := b.Elems[i].ForceNoTrace()
		if berr != nil {
			return false
		}
		if !Equal(av, bv) {
			return false
		}
	}
	return true
}

// TypeName is used in diagnostics to name a Value's kind the way a user
// would expect to read it (e.g. "a set", "a list").
func TypeName(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("a %s", v.Kind())
}
