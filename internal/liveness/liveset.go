// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package liveness

import (
	"slices"

	"fillmore-labs.com/lastuse/internal/ir"
)

// entry holds the pending uses of one binding.
type entry struct {
	binding ir.BindingID
	uses    []ir.UseID
}

// liveSet is the set of bindings with unresolved uses at one point of the walk.
// It holds at most one entry per binding.
type liveSet []entry

// find returns the index of the entry for binding b.
func (s liveSet) find(b ir.BindingID) int {
	return slices.IndexFunc(s, func(e entry) bool { return e.binding == b })
}

// record adds a pending use to binding b.
func (s *liveSet) record(b ir.BindingID, use ir.UseID) {
	if i := s.find(b); i >= 0 {
		(*s)[i].uses = append((*s)[i].uses, use)

		return
	}

	*s = append(*s, entry{binding: b, uses: []ir.UseID{use}})
}

// resolve marks all pending uses of binding b and removes its entry.
func (s *liveSet) resolve(t *Result, b ir.BindingID, last bool) {
	i := s.find(b)
	if i < 0 {
		return
	}

	for _, use := range (*s)[i].uses {
		t.mark(use, last)
	}

	*s = slices.Delete(*s, i, i+1)
}

// shadow silently drops the entries of all bindings matching shadowed.
func (s *liveSet) shadow(shadowed func(ir.BindingID) bool) {
	*s = slices.DeleteFunc(*s, func(e entry) bool { return shadowed(e.binding) })
}

// leave marks all pending uses as last and empties the set.
func (s *liveSet) leave(t *Result) {
	for _, e := range *s {
		for _, use := range e.uses {
			t.mark(use, true)
		}
	}

	*s = nil
}

// clone returns a copy of s that does not share storage with it.
func (s liveSet) clone() liveSet {
	if s == nil {
		return nil
	}

	c := make(liveSet, len(s))
	for i, e := range s {
		c[i] = entry{binding: e.binding, uses: slices.Clone(e.uses)}
	}

	return c
}
