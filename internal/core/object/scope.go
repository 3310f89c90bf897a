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

// File is the file handle a Scope carries for resolving relative Path
// literals against the directory of the source file that defined it
// (spec §3.3, §4.5.path). It is supplied by the external loader
// (spec §6) and otherwise opaque to the evaluator.
type File struct {
	// AbsPath is the canonicalised absolute path of the source file.
	AbsPath string
	// Dir is AbsPath's containing directory, used as the base for
	// relative path literals.
	Dir string
}

// Scope is the lexical environment chain of spec §3.3: an ordered chain of
// frames, each an attribute set, linked to an optional parent. Lookup
// walks parent pointers until the name is bound or the chain ends.
type Scope struct {
	variables *AttrSet
	parent    *Scope
	file      *File
}

// NewRootScope creates the root frame, pre-populated by the host with the
// standard globals (spec §3.3: "true, false, null, builtins, and top-level
// aliases"). The core itself does not hardcode which builtins exist.
func NewRootScope(file *File) *Scope {
	return &Scope{variables: NewAttrSet(), file: file}
}

// NewChild creates an empty frame whose parent is s.
func (s *Scope) NewChild() *Scope {
	return &Scope{variables: NewAttrSet(), parent: s, file: s.file}
}

// NewChildFrom creates a frame whose variables are exactly vars — the
// `with E; body` construct (spec §3.3) — with fallback lookups to s and
// then s's parent chain.
func (s *Scope) NewChildFrom(vars *AttrSet) *Scope {
	return &Scope{variables: vars, parent: s, file: s.file}
}

// NewChildWithVars creates a frame whose variables attrset is supplied by
// the caller (used by rec-attrset and let-in construction, where bindings
// must observe each other through the very attrset being populated).
func (s *Scope) NewChildWithVars(vars *AttrSet) *Scope {
	return &Scope{variables: vars, parent: s, file: s.file}
}

// SetVariable inserts name into this scope's own variables attrset,
// returning the thunk it displaced, if any. It never reaches into a
// parent scope.
func (s *Scope) SetVariable(name string, t *Thunk) (prev *Thunk, hadPrev bool) {
	return s.variables.Insert(name, t)
}

// GetVariable walks the scope chain outward looking for name.
func (s *Scope) GetVariable(name string) (*Thunk, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.variables.Get(name); ok {
			return t, true
		}
	}
	return nil, false
}

// Variables returns this scope's own attrset (not the chain).
func (s *Scope) Variables() *AttrSet { return s.variables }

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// File returns the file handle associated with this scope's source file.
func (s *Scope) File() *File { return s.file }

// WithFile returns a copy of s with its file handle replaced — used when
// entering an imported file's root expression (the new file's directory
// becomes the base for its own relative path literals).
func (s *Scope) WithFile(f *File) *Scope {
	n := *s
	n.file = f
	return &n
}
