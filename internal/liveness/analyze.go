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

// Analyze finds the last uses and spilled bindings of a compilation unit.
//
// It returns an *[InternalError] when the tree violates an invariant the
// producing passes guarantee, like a return statement outside of any function.
func Analyze(unit *ir.Unit, info *ir.Info) (res *Result, err error) {
	w := walker{info: info, res: newResult()}

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		ie, ok := r.(*InternalError)
		if !ok {
			panic(r)
		}

		res, err = nil, ie
	}()

	for _, s := range unit.Globals {
		w.stmt(s)
	}

	for _, f := range unit.Funcs {
		w.escaping(f)
	}

	return w.res, nil
}

// walker carries the state of one traversal.
type walker struct {
	info *ir.Info
	res  *Result

	// cur is the live set at the current position.
	cur liveSet

	// scopes is the stack of loop and function bodies of the current function.
	scopes []*exitScope

	// depth is the number of function bodies entered.
	depth int
}

func (w *walker) stmt(s ir.Stmt) {
	switch s := s.(type) {
	case nil:

	case *ir.Let:
		// Loop bodies are visited twice and declare the same bindings again:
		// forget stale uses from the previous visit.
		w.cur.shadow(func(b ir.BindingID) bool { return slices.Contains(s.Bindings, b) })
		w.expr(s.Init)

	case *ir.ExprStmt:
		w.expr(s.X)

	case *ir.Block:
		w.block(s)

	default:
		abort(ir.NoNode, ErrUnknownNode)
	}
}

func (w *walker) block(b *ir.Block) {
	if b == nil {
		return
	}

	for _, s := range b.Stmts {
		w.stmt(s)
	}
}

func (w *walker) exprs(es []ir.Expr) {
	for _, e := range es {
		w.expr(e)
	}
}

func (w *walker) expr(e ir.Expr) {
	switch e := e.(type) {
	case nil:

	// keep-sorted start newline_separated=yes
	case *ir.Assign:
		w.expr(e.Src)
		w.clearIfPath(e.Dest, true)

	case *ir.AssignOp:
		w.expr(e.Src)
		w.expr(e.Dest)
		w.clearIfPath(e.Dest, true)

	case *ir.Break:
		w.addExit(scopeLoop)

	case *ir.Call:
		w.call(e)

	case *ir.Continue:
		// The second visit of the loop body covers the back edge.

	case *ir.Fail:
		w.expr(e.Arg)
		w.cur.leave(w.res)

	case *ir.ForEach:
		w.expr(e.Coll)
		w.visitTwice(scopeLoop, func() { w.block(e.Body) })

	case *ir.Func:
		w.fn(e)

	case *ir.If:
		w.expr(e.Cond)

		before := w.cur.clone()
		w.block(e.Then)
		then := w.cur

		w.cur = before
		w.block(e.Else)

		w.cur = join(then, w.cur)

	case *ir.Loop:
		w.visitTwice(scopeLoop, func() {
			w.expr(e.Cond)
			w.block(e.Body)
			w.stmt(e.Post)
		})

	case *ir.Match:
		w.expr(e.Scrutinee)

		before := w.cur
		arms := make([]liveSet, 0, len(e.Arms))

		for _, arm := range e.Arms {
			w.cur = before.clone()
			w.expr(arm.Guard)
			w.block(arm.Body)
			arms = append(arms, w.cur)
		}

		w.cur = join(arms...)

	case *ir.Op:
		w.exprs(e.Args)

	case *ir.Path:
		w.path(e)

	case *ir.Ref:
		w.ref(e)

	case *ir.Return:
		w.expr(e.Result)

		if w.depth == 0 {
			abort(e.ID, ErrReturnOutsideFunction)
		}

		if !w.addExit(scopeFunc) {
			w.cur.leave(w.res)
		}

	case *ir.Swap:
		w.clearIfPath(e.X, false)
		w.clearIfPath(e.Y, false)

		// keep-sorted end

	default:
		abort(ir.NoNode, ErrUnknownNode)
	}
}

// path handles a variable reference.
func (w *walker) path(p *ir.Path) {
	def, ok := w.info.Uses[p.ID]
	if !ok {
		return
	}

	if def.Kind != ir.DefOther {
		if root, ok := w.info.Aliases[def.Binding]; ok {
			// A later read through the alias may be invisible to us.
			w.cur.resolve(w.res, root, false)

			return
		}
	}

	b, ok := w.owned(def)
	if !ok {
		return
	}

	w.cur.resolve(w.res, b, false)
	w.cur.record(b, ir.DirectUse{Node: p.ID})
}

// ref handles taking the address of an expression.
func (w *walker) ref(r *ir.Ref) {
	b, ok := w.ownedPath(r.X)
	if !ok {
		w.expr(r.X)

		return
	}

	w.res.spill(b)
	w.cur.resolve(w.res, b, false)
}

// clearIfPath resolves the pending uses of e when it is a variable reference and visits it otherwise.
func (w *walker) clearIfPath(e ir.Expr, last bool) {
	if _, ok := e.(*ir.Path); !ok {
		w.expr(e)

		return
	}

	if b, ok := w.ownedPath(e); ok {
		w.cur.resolve(w.res, b, last)
	}
}

// ownedPath returns the owned binding e refers to, if e is a variable reference.
func (w *walker) ownedPath(e ir.Expr) (ir.BindingID, bool) {
	p, ok := e.(*ir.Path)
	if !ok {
		return 0, false
	}

	def, ok := w.info.Uses[p.ID]
	if !ok {
		return 0, false
	}

	return w.owned(def)
}

// owned returns the binding of a definition whose value belongs to the analyzed function.
func (w *walker) owned(def ir.Def) (ir.BindingID, bool) {
	switch def.Kind {
	case ir.DefLocal:
		return def.Binding, true

	case ir.DefArg:
		if def.Mode.Owned() {
			return def.Binding, true
		}

	case ir.DefUpvar:
		// Only inline closures share the value with the enclosing function.
		if def.Outer != nil && w.info.FuncKind(def.Closure) == ir.FuncInline {
			return w.owned(*def.Outer)
		}
	}

	return 0, false
}
