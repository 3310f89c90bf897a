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
	"testing"

	"github.com/go-quicktest/qt"
)

func TestScopeChainWalksToParent(t *testing.T) {
	root := NewRootScope(nil)
	root.SetVariable("a", NewConcreteThunk(Int(1)))

	child := root.NewChild()
	child.SetVariable("b", NewConcreteThunk(Int(2)))

	ta, ok := child.GetVariable("a")
	qt.Assert(t, qt.IsTrue(ok))
	v, err := ta.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, Value(Int(1))))

	_, ok = child.GetVariable("b")
	qt.Assert(t, qt.IsTrue(ok))

	_, ok = root.GetVariable("b")
	qt.Assert(t, qt.IsFalse(ok))

	_, ok = child.GetVariable("nope")
	qt.Assert(t, qt.IsFalse(ok))
}

func TestScopeSetVariableOwnScopeOnly(t *testing.T) {
	root := NewRootScope(nil)
	root.SetVariable("a", NewConcreteThunk(Int(1)))
	child := root.NewChild()

	// Shadow a in child without touching root's binding.
	child.SetVariable("a", NewConcreteThunk(Int(2)))

	ca, ok := child.GetVariable("a")
	qt.Assert(t, qt.IsTrue(ok))
	cv, err := ca.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(cv, Value(Int(2))))

	ra, ok := root.GetVariable("a")
	qt.Assert(t, qt.IsTrue(ok))
	rv, err := ra.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(rv, Value(Int(1))))
}

func TestScopeWithFallbackShadowsThenFalls(t *testing.T) {
	root := NewRootScope(nil)
	root.SetVariable("a", NewConcreteThunk(Int(1)))
	root.SetVariable("b", NewConcreteThunk(Int(100)))

	withSet := NewAttrSet()
	withSet.Insert("a", NewConcreteThunk(Int(2)))
	withScope := root.NewChildFrom(withSet)

	// a is shadowed by the with-set within the with body.
	wa, ok := withScope.GetVariable("a")
	qt.Assert(t, qt.IsTrue(ok))
	wv, err := wa.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(wv, Value(Int(2))))

	// b is not in the with-set, so lookup falls back to the parent chain.
	wb, ok := withScope.GetVariable("b")
	qt.Assert(t, qt.IsTrue(ok))
	wbv, err := wb.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(wbv, Value(Int(100))))
}

func TestScopeChildWithVarsAliasesBackingAttrSet(t *testing.T) {
	root := NewRootScope(nil)
	vars := NewAttrSet()
	child := root.NewChildWithVars(vars)

	// Mutating the backing attrset after scope creation must be visible
	// through the scope, since rec/let-in rely on this aliasing for mutual
	// recursion among bindings populated after the scope is constructed.
	vars.Insert("x", NewConcreteThunk(Int(9)))

	tx, ok := child.GetVariable("x")
	qt.Assert(t, qt.IsTrue(ok))
	v, err := tx.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, Value(Int(9))))

	qt.Assert(t, qt.Equals(child.Variables(), vars))
}

func TestScopeAccessors(t *testing.T) {
	f := &File{AbsPath: "/a/b.nix", Dir: "/a"}
	root := NewRootScope(f)
	qt.Assert(t, qt.IsNil(root.Parent()))
	qt.Assert(t, qt.Equals(root.File(), f))

	child := root.NewChild()
	qt.Assert(t, qt.Equals(child.Parent(), root))
	qt.Assert(t, qt.Equals(child.File(), f))

	f2 := &File{AbsPath: "/c/d.nix", Dir: "/c"}
	reFiled := child.WithFile(f2)
	qt.Assert(t, qt.Equals(reFiled.File(), f2))
	// WithFile must not mutate the original scope's file handle.
	qt.Assert(t, qt.Equals(child.File(), f))
	qt.Assert(t, qt.Equals(reFiled.Parent(), root))
}
