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

// fn handles a function literal.
func (w *walker) fn(f *ir.Func) {
	switch w.info.FuncKind(f.ID) {
	case ir.FuncInline:
		w.inline(f)

	default:
		w.capture(f)
		w.escaping(f)
	}
}

// inline walks an inline closure in the live set of its caller.
// It may run any number of times, so its body is visited twice.
func (w *walker) inline(f *ir.Func) {
	w.visitTwice(scopeFunc, func() {
		w.cur.shadow(func(b ir.BindingID) bool { return slices.Contains(f.Params, b) })
		w.body(f)
	})
}

// capture records the captures of an escaping closure as uses of the captured bindings.
func (w *walker) capture(f *ir.Func) {
	for _, def := range w.info.FreeVars[f.ID] {
		b, ok := w.owned(def)
		if !ok {
			continue
		}

		w.cur.resolve(w.res, b, false)
		w.cur.record(b, ir.CaptureUse{Func: f.ID, Binding: b})
	}
}

// escaping walks an independently callable function with a fresh state.
func (w *walker) escaping(f *ir.Func) {
	cur, scopes := w.cur, w.scopes
	w.cur, w.scopes = nil, nil

	w.body(f)

	w.scopes = scopes
	w.cur.leave(w.res)
	w.cur = cur
}

func (w *walker) body(f *ir.Func) {
	w.depth++
	w.block(f.Body)
	w.depth--
}

// call handles a call expression.
func (w *walker) call(c *ir.Call) {
	w.expr(c.Fun)

	// Inline closures run interleaved with the call, after the arguments are evaluated.
	var inline []*ir.Func

	for i, arg := range c.Args {
		if f, ok := arg.(*ir.Func); ok && w.info.FuncKind(f.ID) == ir.FuncInline {
			inline = append(inline, f)

			continue
		}

		if w.info.ArgMode(c.ID, i) == ir.ModeMutRef {
			// Written, not read.
			w.clearIfPath(arg, false)

			continue
		}

		w.expr(arg)
	}

	for _, f := range inline {
		w.inline(f)
	}

	for i, arg := range c.Args {
		if w.info.ArgMode(c.ID, i) == ir.ModeMutRef {
			continue
		}

		if b, ok := w.ownedPath(arg); ok {
			w.res.spill(b)
			w.cur.resolve(w.res, b, false)
		}
	}
}
