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

// Package eval_test exercises the core evaluator directly, with a
// minimal root scope (true/false/null only) that deliberately bypasses
// internal/core/runtime and builtins/ so these tests stay scoped to
// core language semantics.
package eval_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/nixlang/evalcore/internal/core/eval"
	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/diag"
	"github.com/nixlang/evalcore/internal/testlang"
)

func rootScope() *object.Scope {
	s := object.NewRootScope(nil)
	s.SetVariable("true", object.NewConcreteThunk(object.Bool(true)))
	s.SetVariable("false", object.NewConcreteThunk(object.Bool(false)))
	s.SetVariable("null", object.NewConcreteThunk(object.Null{}))
	return s
}

func run(t *testing.T, src string) (object.Value, *diag.Error) {
	t.Helper()
	e, perr := testlang.Parse("test.nix", src)
	qt.Assert(t, qt.IsNil(perr))
	ev := eval.New()
	return ev.Eval(rootScope(), e, nil)
}

func mustRun(t *testing.T, src string) object.Value {
	t.Helper()
	v, err := run(t, src)
	qt.Assert(t, qt.IsNil(err))
	return v
}

func TestArithmeticIntPromotion(t *testing.T) {
	qt.Assert(t, qt.Equals(mustRun(t, "1 + 2"), object.Value(object.Int(3))))
	qt.Assert(t, qt.Equals(mustRun(t, "7 / 2"), object.Value(object.Int(3))))
	qt.Assert(t, qt.Equals(mustRun(t, "2 * 3"), object.Value(object.Int(6))))
	qt.Assert(t, qt.Equals(mustRun(t, "5 - 8"), object.Value(object.Int(-3))))
}

func TestArithmeticMixedPromotesToFloat(t *testing.T) {
	qt.Assert(t, qt.Equals(mustRun(t, "1 + 2.5"), object.Value(object.Float(3.5))))
	qt.Assert(t, qt.Equals(mustRun(t, "1.0 * 4"), object.Value(object.Float(4.0))))
}

func TestDivisionByZeroIsTypeError(t *testing.T) {
	_, err := run(t, "1 / 0")
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, diag.TypeError))
}

func TestStringConcatenationAndInterpolation(t *testing.T) {
	qt.Assert(t, qt.Equals(mustRun(t, `"a" + "b"`), object.Value(object.String("ab"))))
	qt.Assert(t, qt.Equals(mustRun(t, `"x${"y"}z"`), object.Value(object.String("xyz"))))
}

func TestPathArithmetic(t *testing.T) {
	// + only has a success arm for a String lhs, which coerces rhs via
	// AsString — so String + Path concatenates as plain text, while a Path
	// lhs (Path + String, Path + Path) has no arm of its own and fails.
	v := mustRun(t, `"a" + /a/b`)
	s, ok := v.(object.String)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(string(s), "a/a/b"))

	_, err := run(t, `/a/b + "/c"`)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, diag.TypeError))

	_, err = run(t, `/a/b + /c/d`)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, diag.TypeError))
}

func TestComparisonsWithNumericPromotion(t *testing.T) {
	qt.Assert(t, qt.Equals(mustRun(t, "1 < 2"), object.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, "1 < 1.5"), object.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, "2.0 >= 2"), object.Value(object.Bool(true))))
}

func TestLexicographicStringAndPathComparison(t *testing.T) {
	qt.Assert(t, qt.Equals(mustRun(t, `"a" < "b"`), object.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, `/a/a < /a/b`), object.Value(object.Bool(true))))
}

func TestBooleanShortCircuit(t *testing.T) {
	qt.Assert(t, qt.Equals(mustRun(t, "false && (1/0 == 0)"), object.Value(object.Bool(false))))
	qt.Assert(t, qt.Equals(mustRun(t, "true || (1/0 == 0)"), object.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, "false -> (1/0 == 0)"), object.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, "true -> false"), object.Value(object.Bool(false))))
}

func TestListConcat(t *testing.T) {
	v := mustRun(t, "[1 2] ++ [3]")
	l, ok := v.(*object.List)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(l.Elems, 3))
}

func TestAttrSetUpdate(t *testing.T) {
	v := mustRun(t, "{ a = 1; b = 2; } // { b = 3; c = 4; }")
	s, ok := v.(*object.AttrSet)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(s.Len(), 3))
	bt, _ := s.Get("b")
	bv, err := bt.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(bv, object.Value(object.Int(3))))
}

func TestEquality(t *testing.T) {
	qt.Assert(t, qt.Equals(mustRun(t, "1 == 1"), object.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, "1 == 2"), object.Value(object.Bool(false))))
	qt.Assert(t, qt.Equals(mustRun(t, "1 != 2"), object.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, "[1 2] == [1 2]"), object.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, "{ a = 1; } == { a = 1; }"), object.Value(object.Bool(true))))
}

func TestUnaryOperators(t *testing.T) {
	qt.Assert(t, qt.Equals(mustRun(t, "!true"), object.Value(object.Bool(false))))
	qt.Assert(t, qt.Equals(mustRun(t, "-5"), object.Value(object.Int(-5))))
	qt.Assert(t, qt.Equals(mustRun(t, "-1.5"), object.Value(object.Float(-1.5))))
}

func TestAttrSetConstructionPlainRecAndAutoVivify(t *testing.T) {
	plain := mustRun(t, "{ a = 1; b = 2; }").(*object.AttrSet)
	qt.Assert(t, qt.Equals(plain.Len(), 2))

	rec := mustRun(t, "rec { a = 1; b = a + 1; }").(*object.AttrSet)
	bt, _ := rec.Get("b")
	bv, err := bt.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(bv, object.Value(object.Int(2))))

	nested := mustRun(t, "{ a.b.c = 1; a.b.d = 2; }.a.b").(*object.AttrSet)
	qt.Assert(t, qt.Equals(nested.Len(), 2))
	ct, _ := nested.Get("c")
	cv, err := ct.Force(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(cv, object.Value(object.Int(1))))
}

func TestLetInMutualRecursion(t *testing.T) {
	v := mustRun(t, "let a = 1; b = a + 1; in a + b")
	qt.Assert(t, qt.Equals(v, object.Value(object.Int(3))))

	v2 := mustRun(t, "let isEven = n: if n == 0 then true else isOdd (n - 1); isOdd = n: if n == 0 then false else isEven (n - 1); in isEven 4")
	qt.Assert(t, qt.Equals(v2, object.Value(object.Bool(true))))
}

func TestWithFallback(t *testing.T) {
	v := mustRun(t, "with { a = 1; }; a")
	qt.Assert(t, qt.Equals(v, object.Value(object.Int(1))))

	v2 := mustRun(t, "let a = 100; in with { b = 1; }; a + b")
	qt.Assert(t, qt.Equals(v2, object.Value(object.Int(101))))
}

func TestPatternParameterStrictness(t *testing.T) {
	v := mustRun(t, "({ a, b ? 10 }: a + b) { a = 5; }")
	qt.Assert(t, qt.Equals(v, object.Value(object.Int(15))))

	_, err := run(t, "({ a }: a) { }")
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, diag.MissingRequiredArgument))

	_, err = run(t, "({ a }: a) { a = 1; b = 2; }")
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, diag.UnusedArgument))

	v3 := mustRun(t, "({ a, ... }: a) { a = 1; b = 2; }")
	qt.Assert(t, qt.Equals(v3, object.Value(object.Int(1))))

	v4 := mustRun(t, "({ a, ... } @ all: all.b) { a = 1; b = 2; }")
	qt.Assert(t, qt.Equals(v4, object.Value(object.Int(2))))
}

func TestInheritBareResolvesOuterScope(t *testing.T) {
	// A bare `inherit a;` inside rec/let-in must resolve `a` from the
	// scope enclosing the set under construction, not from the set's own
	// (self-aliased) variables -- otherwise this cycles into
	// InfiniteRecursion instead of finding the outer binding.
	v := mustRun(t, "let a = 1; in let inherit a; in a")
	qt.Assert(t, qt.Equals(v, object.Value(object.Int(1))))

	v2 := mustRun(t, "let a = 1; in (rec { inherit a; b = a + 1; }).b")
	qt.Assert(t, qt.Equals(v2, object.Value(object.Int(2))))
}

func TestInheritFromSource(t *testing.T) {
	v := mustRun(t, "let s = { x = 1; y = 2; }; in (let inherit (s) x y; in x + y)")
	qt.Assert(t, qt.Equals(v, object.Value(object.Int(3))))
}

func TestInfiniteRecursionDetection(t *testing.T) {
	_, err := run(t, "let x = x; in x")
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, diag.InfiniteRecursion))
}
