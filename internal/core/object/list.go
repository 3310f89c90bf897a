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

// List is the ordered-sequence-of-Thunk member of the Value domain.
type List struct {
	Elems []*Thunk
}

func (*List) Kind() Kind { return KindList }

// NewList wraps a slice of thunks as a List value.
func NewList(elems []*Thunk) *List {
	return &List{Elems: elems}
}
