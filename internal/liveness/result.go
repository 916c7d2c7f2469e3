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
	"iter"
	"maps"

	"fillmore-labs.com/lastuse/internal/ir"
)

// Result holds the tables produced by [Analyze].
type Result struct {
	// lastUses maps decided uses to whether they are last uses.
	// An entry once false stays false.
	lastUses map[ir.UseID]bool

	// spills is the set of bindings needing an addressable slot.
	spills map[ir.BindingID]struct{}
}

func newResult() *Result {
	return &Result{
		lastUses: make(map[ir.UseID]bool),
		spills:   make(map[ir.BindingID]struct{}),
	}
}

// mark records the decision for use.
//
// A use is only marked as last when it has not been decided yet, so that a
// previous not-last decision from another path is never retracted.
func (r *Result) mark(use ir.UseID, last bool) {
	if last {
		if _, ok := r.lastUses[use]; ok {
			return
		}
	}

	r.lastUses[use] = last
}

func (r *Result) spill(b ir.BindingID) {
	r.spills[b] = struct{}{}
}

// LastUse returns whether use is a last use. ok is false when no decision was recorded,
// which consumers must treat like a not-last use.
func (r *Result) LastUse(use ir.UseID) (last, ok bool) {
	last, ok = r.lastUses[use]

	return last, ok
}

// Spilled reports whether binding b needs an addressable slot.
func (r *Result) Spilled(b ir.BindingID) bool {
	_, ok := r.spills[b]

	return ok
}

// LastUses returns all decided uses.
func (r *Result) LastUses() iter.Seq2[ir.UseID, bool] {
	return maps.All(r.lastUses)
}

// Spills returns all bindings needing an addressable slot.
func (r *Result) Spills() iter.Seq[ir.BindingID] {
	return maps.Keys(r.spills)
}
