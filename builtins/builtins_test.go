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

package builtins_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/nixlang/evalcore/internal/core/object"
	"github.com/nixlang/evalcore/internal/testlang"
	"github.com/nixlang/evalcore/lang"
)

func run(t *testing.T, src string) (lang.Value, *lang.Error) {
	t.Helper()
	e, perr := testlang.Parse("test.nix", src)
	qt.Assert(t, qt.IsNil(perr))
	rt := lang.New(nil)
	return lang.Eval(rt, nil, e)
}

func mustRun(t *testing.T, src string) lang.Value {
	t.Helper()
	v, err := run(t, src)
	qt.Assert(t, qt.IsNil(err))
	return v
}

func TestHeadTailLength(t *testing.T) {
	qt.Assert(t, qt.Equals(mustRun(t, "builtins.head [ 1 2 3 ]"), lang.Value(object.Int(1))))
	qt.Assert(t, qt.Equals(mustRun(t, "builtins.length (builtins.tail [ 1 2 3 ])"), lang.Value(object.Int(2))))

	_, err := run(t, "builtins.head []")
	qt.Assert(t, qt.IsNotNil(err))

	_, err = run(t, "builtins.tail []")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestMapIsLazyPerElement(t *testing.T) {
	// The thrown element must only fail once actually forced, not at map
	// construction time, and builtins.head must never force it.
	v := mustRun(t, `builtins.head (map (x: x + 1) [ 1 (throw "boom") ])`)
	qt.Assert(t, qt.Equals(v, lang.Value(object.Int(2))))

	_, err := run(t, `builtins.length (map (x: x + 1) [ 1 (throw "boom") ])`)
	qt.Assert(t, qt.IsNil(err))
}

func TestThrowPropagatesMessage(t *testing.T) {
	_, err := run(t, `throw "custom failure"`)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Error(), "custom failure"))
}

func TestTryEvalSuccessAndFailure(t *testing.T) {
	failV := mustRun(t, `(builtins.tryEval (throw "x")).success`)
	qt.Assert(t, qt.Equals(failV, lang.Value(object.Bool(false))))

	succV := mustRun(t, `(builtins.tryEval 42).value`)
	qt.Assert(t, qt.Equals(succV, lang.Value(object.Int(42))))
}

func TestToStringCoercions(t *testing.T) {
	qt.Assert(t, qt.Equals(mustRun(t, `toString true`), lang.Value(object.String("1"))))
	qt.Assert(t, qt.Equals(mustRun(t, `toString false`), lang.Value(object.String(""))))
	qt.Assert(t, qt.Equals(mustRun(t, `toString null`), lang.Value(object.String(""))))
	qt.Assert(t, qt.Equals(mustRun(t, `toString "hi"`), lang.Value(object.String("hi"))))
	qt.Assert(t, qt.Equals(mustRun(t, `toString 42`), lang.Value(object.String("42"))))
	qt.Assert(t, qt.Equals(mustRun(t, `toString /a/b`), lang.Value(object.String("/a/b"))))
}

func TestKindPredicates(t *testing.T) {
	qt.Assert(t, qt.Equals(mustRun(t, `builtins.isAttrs { }`), lang.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, `builtins.isList [ ]`), lang.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, `builtins.isString "a"`), lang.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, `builtins.isInt 1`), lang.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, `builtins.isFloat 1.0`), lang.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, `builtins.isBool true`), lang.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, `builtins.isNull null`), lang.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, `builtins.isFunction (x: x)`), lang.Value(object.Bool(true))))
	qt.Assert(t, qt.Equals(mustRun(t, `builtins.isInt "a"`), lang.Value(object.Bool(false))))
}
