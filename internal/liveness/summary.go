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
	"maps"
	"slices"

	"fillmore-labs.com/lastuse/internal/ir"
)

// Summary is the view of a [Result] a code generator works with.
type Summary struct {
	// last is the set of variable references that may move their value.
	last map[ir.NodeID]struct{}

	// closesOver maps escaping closures to the bindings they capture with their last use.
	closesOver map[ir.NodeID][]ir.BindingID

	// spills is the set of bindings needing an addressable slot,
	// including those moved from.
	spills map[ir.BindingID]struct{}
}

// Summarize condenses the result into per-node decisions.
//
// Moving a value out of a binding requires it to live in memory, so every
// binding with a last use is added to the spill set. info must be the one
// passed to [Analyze].
func (r *Result) Summarize(info *ir.Info) *Summary {
	s := &Summary{
		last:       make(map[ir.NodeID]struct{}),
		closesOver: make(map[ir.NodeID][]ir.BindingID),
		spills:     maps.Clone(r.spills),
	}

	for use, last := range r.lastUses {
		if !last {
			continue
		}

		switch use := use.(type) {
		case ir.DirectUse:
			s.last[use.Node] = struct{}{}

			if def, ok := info.Uses[use.Node]; ok {
				s.spills[def.Binding] = struct{}{}
			}

		case ir.CaptureUse:
			s.spills[use.Binding] = struct{}{}
			s.closesOver[use.Func] = append(s.closesOver[use.Func], use.Binding)
		}
	}

	for _, bindings := range s.closesOver {
		slices.Sort(bindings)
	}

	return s
}

// LastUse reports whether the variable reference node is a last use.
func (s *Summary) LastUse(node ir.NodeID) bool {
	_, ok := s.last[node]

	return ok
}

// ClosesOver returns the bindings the escaping closure fn captures with their last use, in ascending order.
func (s *Summary) ClosesOver(fn ir.NodeID) []ir.BindingID {
	return s.closesOver[fn]
}

// Spilled reports whether binding b needs an addressable slot.
func (s *Summary) Spilled(b ir.BindingID) bool {
	_, ok := s.spills[b]

	return ok
}
