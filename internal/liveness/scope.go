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

// scopeKind is the kind of construct an early exit leaves.
type scopeKind uint8

const (
	// scopeFunc is left by return.
	scopeFunc scopeKind = iota

	// scopeLoop is left by break.
	scopeLoop
)

// exitScope collects the live sets at the early exits of a loop or function body.
type exitScope struct {
	kind   scopeKind
	second bool      // The body is visited for the second time
	exits  []liveSet // Live sets at early exits, during the first visit
}

// visitTwice runs visit two times inside a new scope of the given kind
// and joins the live sets of all exits afterward.
//
// The second visit catches reads that follow a use on the next iteration.
// Early exits are only collected during the first visit, the end of the second
// visit is the fall-through exit.
func (w *walker) visitTwice(kind scopeKind, visit func()) {
	s := &exitScope{kind: kind}
	w.scopes = append(w.scopes, s)

	visit()

	s.second = true
	s.exits = nil

	visit()

	w.scopes = w.scopes[:len(w.scopes)-1]

	s.exits = append(s.exits, w.cur)
	w.cur = join(s.exits...)
}

// addExit routes the current live set to the innermost scope of the given kind.
// It reports whether such a scope exists.
func (w *walker) addExit(kind scopeKind) bool {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		s := w.scopes[i]
		if s.kind != kind {
			continue
		}

		if !s.second {
			s.exits = append(s.exits, w.cur.clone())
		}

		return true
	}

	return false
}
