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

// AttrSet is the mapping String -> Thunk member of the Value domain. Key
// order is immaterial to equality (spec §3.1) but iteration must be
// deterministic for printing, so AttrSet tracks insertion order alongside
// the map.
type AttrSet struct {
	entries map[string]*Thunk
	order   []string
}

func (*AttrSet) Kind() Kind { return KindAttrSet }

// NewAttrSet creates an empty attribute set.
func NewAttrSet() *AttrSet {
	return &AttrSet{entries: make(map[string]*Thunk)}
}

// Get returns the thunk bound to attr, or ok=false if absent.
func (a *AttrSet) Get(attr string) (t *Thunk, ok bool) {
	t, ok = a.entries[attr]
	return t, ok
}

// Insert binds attr to t, returning the previously bound thunk if any
// (spec §4.1's insert).
func (a *AttrSet) Insert(attr string, t *Thunk) (prev *Thunk, hadPrev bool) {
	if a.entries == nil {
		a.entries = make(map[string]*Thunk)
	}
	prev, hadPrev = a.entries[attr]
	if !hadPrev {
		a.order = append(a.order, attr)
	}
	a.entries[attr] = t
	return prev, hadPrev
}

// Len reports the number of entries.
func (a *AttrSet) Len() int { return len(a.order) }

// Keys returns the attribute names in deterministic (insertion) order.
func (a *AttrSet) Keys() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Clone returns a shallow copy: a new AttrSet with the same thunks bound
// to the same keys, in the same order. Used by the `//` update operator,
// which must not mutate either operand.
func (a *AttrSet) Clone() *AttrSet {
	n := &AttrSet{
		entries: make(map[string]*Thunk, len(a.entries)),
		order:   append([]string(nil), a.order...),
	}
	for k, v := range a.entries {
		n.entries[k] = v
	}
	return n
}
