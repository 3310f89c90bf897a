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

package runtime_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/nixlang/evalcore/ast"
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/core/runtime"
	"github.com/nixlang/evalcore/internal/diag"
	"github.com/nixlang/evalcore/internal/testlang"
)

// fakeLoader resolves every path to a single fixed, pre-parsed expression,
// regardless of the requested path, so these tests don't touch the real
// filesystem.
type fakeLoader struct {
	file *object.File
	expr ast.Expr
	err  *diag.Error
}

func (f *fakeLoader) Load(path string) (*object.File, ast.Expr, *diag.Error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.file, f.expr, nil
}

func parse(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, err := testlang.Parse("test.nix", src)
	qt.Assert(t, qt.IsNil(err))
	return e
}

func TestEvalFileSuccessPath(t *testing.T) {
	loader := &fakeLoader{
		file: &object.File{AbsPath: "/pkg/default.nix", Dir: "/pkg"},
		expr: parse(t, "1 + 2"),
	}
	rt := runtime.New(runtime.Options{Loader: loader})
	v, err := rt.EvalFile("default.nix")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, object.Value(object.Int(3))))
}

func TestEvalFileWithoutLoaderIsIOError(t *testing.T) {
	rt := runtime.New(runtime.Options{})
	_, err := rt.EvalFile("anything.nix")
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, diag.IO))
}

func TestRootScopePrePopulatesGlobals(t *testing.T) {
	b := &object.Builtin{Name: "dummy", Func: func(interp object.Interp, bt *diag.Frame, scope *object.Scope, arg ast.Expr) (object.Value, *diag.Error) {
		return object.Null{}, nil
	}}
	rt := runtime.New(runtime.Options{
		Builtins: map[string]*object.Builtin{"dummy": b},
		Aliases:  []string{"dummy"},
	})
	scope := rt.RootScope(nil)

	tv, ok := scope.GetVariable("true")
	qt.Assert(t, qt.IsTrue(ok))
	v, err := tv.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, object.Value(object.Bool(true))))

	fv, ok := scope.GetVariable("false")
	qt.Assert(t, qt.IsTrue(ok))
	v, err = fv.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, object.Value(object.Bool(false))))

	nv, ok := scope.GetVariable("null")
	qt.Assert(t, qt.IsTrue(ok))
	v, err = nv.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, object.Value(object.Null{})))

	bset, ok := scope.GetVariable("builtins")
	qt.Assert(t, qt.IsTrue(ok))
	bsv, err := bset.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	set, isSet := bsv.(*object.AttrSet)
	qt.Assert(t, qt.IsTrue(isSet))
	_, hasDummy := set.Get("dummy")
	qt.Assert(t, qt.IsTrue(hasDummy))

	aliasT, ok := scope.GetVariable("dummy")
	qt.Assert(t, qt.IsTrue(ok))
	av, err := aliasT.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(av, object.Value(b)))
}
