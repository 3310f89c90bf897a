// Copyright 2018 The CUE Authors
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

// Package token defines the source position types shared by ast and diag.
//
// Positions are supplied by the external parser (spec §6 treats the
// surface parser as a fixed collaborator); this package only defines the
// shapes that flow through the syntax tree and into diagnostics.
package token

import "fmt"

// Pos is a compact source position. The zero value is NoPos.
type Pos struct {
	File   string
	Offset int
	Line   int
	Column int
}

// NoPos is the zero value for Pos; it carries no file or line information.
var NoPos = Pos{}

// IsValid reports whether p has line information.
func (p Pos) IsValid() bool { return p.Line > 0 }

// Span returns the zero-width span [p, p).
func (p Pos) Span() Span {
	return Span{Start: p, End: p}
}

// Position returns p's own fields as a Position (Pos doubles as Position
// in this simplified model; kept as a distinct method since callers that
// only have a Pos still expect the richer Position shape).
func (p Pos) Position() Position {
	return Position{File: p.File, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

// String renders a position as file:line:column, line:column, file, or "-".
func (p Pos) String() string {
	s := p.File
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// Position is the exported, user-facing form of Pos.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

// IsValid reports whether the position is valid.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string { return Pos(p).String() }

// Span is a half-open source range [Start, End).
type Span struct {
	Start, End Pos
}

// NoSpan is the zero value for Span.
var NoSpan = Span{}

// IsValid reports whether both endpoints of the span are valid.
func (s Span) IsValid() bool { return s.Start.IsValid() && s.End.IsValid() }

func (s Span) String() string {
	if s.Start.File == s.End.File && s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s-%d:%d", s.Start, s.End.Line, s.End.Column)
	}
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
