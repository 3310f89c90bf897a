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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"
)

func buildSample() *AttrSet {
	set := NewAttrSet()
	set.Insert("a", NewConcreteThunk(Int(1)))
	set.Insert("b", NewConcreteThunk(NewList([]*Thunk{
		NewConcreteThunk(String("x")),
		NewConcreteThunk(Bool(true)),
	})))
	set.Insert("c", NewConcreteThunk(Null{}))
	return set
}

// requireContains fails with a kr/pretty dump of got whenever want is
// missing, so a mismatch shows the full rendered structure rather than
// just the missing fragment.
func requireContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Fatalf("expected %q to contain %q\n%# v", got, want, pretty.Formatter(got))
	}
}

func TestPrintCompactFormShape(t *testing.T) {
	set := buildSample()
	got := Print(set)
	if !strings.HasPrefix(got, "{") || !strings.HasSuffix(got, "}") {
		t.Fatalf("compact attrset print must be brace-delimited, got %q", got)
	}
	requireContains(t, got, "a = 1")
	requireContains(t, got, `b = [`)
	requireContains(t, got, `"x"`)
	requireContains(t, got, "true")
	requireContains(t, got, "c = null")
	if strings.Contains(got, "\n") {
		t.Fatalf("compact form must not contain newlines, got %q", got)
	}
}

func TestPrintPrettyFormDiffersAndIndents(t *testing.T) {
	set := buildSample()
	compact := Print(set)
	prettied := PrettyPrint(set)

	if diff := cmp.Diff(compact, prettied); diff == "" {
		t.Fatalf("expected PrettyPrint to differ from Print, got identical output %q", compact)
	}
	if !strings.Contains(prettied, "\n") {
		t.Fatalf("pretty form should indent across multiple lines, got %q", prettied)
	}
	if !strings.Contains(prettied, "  a = 1") {
		t.Fatalf("expected a two-space-indented entry in pretty output, got %q", prettied)
	}
}

func TestPrintEmptyAttrSetAndList(t *testing.T) {
	if got := Print(NewAttrSet()); got != "{ }" {
		t.Fatalf("empty attrset should print as \"{ }\", got %q", got)
	}
	if got := Print(NewList(nil)); got != "[ ]" {
		t.Fatalf("empty list should print as \"[ ]\", got %q", got)
	}
}

func TestPrintUnforcedThunkIsCODE(t *testing.T) {
	set := NewAttrSet()
	set.Insert("pending", NewExprThunk(&fakeInterp{}, nil, a, nil))
	got := Print(set)
	requireContains(t, got, "pending = <CODE>")
}
