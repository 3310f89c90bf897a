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
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Print renders v in the language's compact textual convention (spec §6):
// attrsets as "{ k = v; ... }", lists as "[ v v ... ]", strings double
// quoted with no escape handling beyond the raw stored bytes, paths as
// their filesystem text, null as "null". Unforced thunks are printed as
// "<CODE>" rather than forced, matching the host's expectation that
// force_deep runs before serialization (spec §6).
func Print(v Value) string {
	var b strings.Builder
	writeValue(&b, v, -1, 0)
	return b.String()
}

// PrettyPrint renders v the same way but indents nested attrsets and
// lists by two spaces per level (spec §6's "Alternate (pretty) form").
func PrettyPrint(v Value) string {
	var b strings.Builder
	writeValue(&b, v, 0, 0)
	return b.String()
}

func writeValue(b *strings.Builder, v Value, indent, depth int) {
	switch x := v.(type) {
	case nil:
		b.WriteString("<CODE>")
	case Bool:
		if x {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Int:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case Float:
		b.WriteString(formatFloat(float64(x)))
	case String:
		b.WriteByte('"')
		b.WriteString(string(x))
		b.WriteByte('"')
	case Path:
		b.WriteString(string(x))
	case Null:
		b.WriteString("null")
	case *AttrSet:
		writeAttrSet(b, x, indent, depth)
	case *List:
		writeList(b, x, indent, depth)
	case *UserLambda:
		b.WriteString("<lambda>")
	case *Builtin:
		fmt.Fprintf(b, "<builtin %s>", x.Name)
	default:
		fmt.Fprintf(b, "<unknown %T>", v)
	}
}

func writeAttrSet(b *strings.Builder, a *AttrSet, indent, depth int) {
	if a.Len() == 0 {
		b.WriteString("{ }")
		return
	}
	b.WriteString("{")
	nl, pad, padClose := layout(indent, depth)
	for _, k := range a.Keys() {
		b.WriteString(nl)
		b.WriteString(pad)
		b.WriteString(quoteIfNeeded(k))
		b.WriteString(" = ")
		t, _ := a.Get(k)
		writeThunk(b, t, indent, depth+1)
		b.WriteString(";")
	}
	b.WriteString(nl)
	b.WriteString(padClose)
	b.WriteString("}")
}

func writeList(b *strings.Builder, l *List, indent, depth int) {
	if len(l.Elems) == 0 {
		b.WriteString("[ ]")
		return
	}
	b.WriteString("[")
	nl, pad, padClose := layout(indent, depth)
	for _, t := range l.Elems {
		b.WriteString(nl)
		b.WriteString(pad)
		writeThunk(b, t, indent, depth+1)
	}
	b.WriteString(nl)
	b.WriteString(padClose)
	b.WriteString("]")
}

func writeThunk(b *strings.Builder, t *Thunk, indent, depth int) {
	if t == nil || !t.IsConcrete() {
		b.WriteString("<CODE>")
		return
	}
	v, _ := t.ForceNoTrace()
	writeValue(b, v, indent, depth)
}

// layout returns the newline/indent fragments for the given pretty-print
// indent step (-1 means compact, single-line output).
func layout(indent, depth int) (nl, pad, padClose string) {
	if indent < 0 {
		return " ", "", ""
	}
	step := indent
	if step == 0 {
		step = 2
	}
	return "\n", strings.Repeat(" ", step*(depth+1)), strings.Repeat(" ", step*depth)
}

func quoteIfNeeded(name string) string {
	if name == "" {
		return `""`
	}
	for i, r := range name {
		ok := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9')
		if !ok {
			return strconv.Quote(name)
		}
	}
	return name
}

// formatFloat renders f the way the language's own literals look:
// shortest round-tripping decimal text, never scientific notation for the
// ranges a configuration file realistically holds. strconv.FormatFloat's
// 'g' verb switches to exponent form outside a narrow magnitude window and
// its 'f' verb doesn't know how many digits are "enough" to round-trip, so
// we go through apd.Decimal instead, the same arbitrary-precision decimal
// type a configuration-language evaluator would reach for to get
// predictable, non-scientific rendering.
func formatFloat(f float64) string {
	d := &apd.Decimal{}
	if _, err := d.SetFloat64(f); err != nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := d.Text('f')
	if !strings.ContainsAny(s, ".") && !strings.Contains(s, "Inf") && !strings.Contains(s, "NaN") {
		s += ".0"
	}
	return s
}
