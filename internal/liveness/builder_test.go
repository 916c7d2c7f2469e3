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

package liveness_test

import (
	"maps"
	"testing"

	"fillmore-labs.com/lastuse/internal/ir"
	. "fillmore-labs.com/lastuse/internal/liveness"
)

// builder constructs trees for tests, allocating node ids and recording definitions.
type builder struct {
	next ir.NodeID
	info *ir.Info
}

func newBuilder() *builder {
	return &builder{info: ir.NewInfo()}
}

func (b *builder) id() ir.NodeID {
	b.next++

	return b.next
}

// ref returns a reference to def.
func (b *builder) ref(def ir.Def) *ir.Path {
	p := &ir.Path{ID: b.id()}
	b.info.Uses[p.ID] = def

	return p
}

// local returns a reference to local variable x.
func (b *builder) local(x ir.BindingID) *ir.Path {
	return b.ref(ir.Local(x))
}

func (b *builder) op(args ...ir.Expr) *ir.Op {
	return &ir.Op{ID: b.id(), Args: args}
}

// read evaluates args in a statement.
func (b *builder) read(args ...ir.Expr) ir.Stmt {
	return b.do(b.op(args...))
}

func (b *builder) do(e ir.Expr) ir.Stmt {
	return &ir.ExprStmt{X: e}
}

func (b *builder) let(x ir.BindingID, init ir.Expr) ir.Stmt {
	return &ir.Let{ID: b.id(), Bindings: []ir.BindingID{x}, Init: init}
}

func (b *builder) block(stmts ...ir.Stmt) *ir.Block {
	return &ir.Block{ID: b.id(), Stmts: stmts}
}

func (b *builder) fn(params []ir.BindingID, stmts ...ir.Stmt) *ir.Func {
	return &ir.Func{ID: b.id(), Params: params, Body: b.block(stmts...)}
}

// inline returns an inline closure without body.
func (b *builder) inline(params ...ir.BindingID) *ir.Func {
	f := &ir.Func{ID: b.id(), Params: params}
	b.info.FuncKinds[f.ID] = ir.FuncInline

	return f
}

// closure returns an escaping closure capturing free, without body.
func (b *builder) closure(free ...ir.Def) *ir.Func {
	f := &ir.Func{ID: b.id()}
	b.info.FuncKinds[f.ID] = ir.FuncEscaping
	b.info.FreeVars[f.ID] = free

	return f
}

// with sets the body of f.
func (b *builder) with(f *ir.Func, stmts ...ir.Stmt) *ir.Func {
	f.Body = b.block(stmts...)

	return f
}

// upvar returns a reference to local variable x from inside the closure f.
func (b *builder) upvar(x ir.BindingID, f *ir.Func) *ir.Path {
	return b.ref(ir.Upvar(ir.Local(x), f.ID))
}

func (b *builder) call(fun ir.Expr, modes []ir.Mode, args ...ir.Expr) *ir.Call {
	c := &ir.Call{ID: b.id(), Fun: fun, Args: args}
	b.info.ArgModes[c.ID] = modes

	return c
}

func (b *builder) ifElse(cond ir.Expr, then, els *ir.Block) ir.Stmt {
	return b.do(&ir.If{ID: b.id(), Cond: cond, Then: then, Else: els})
}

func (b *builder) loop(stmts ...ir.Stmt) ir.Stmt {
	return b.do(&ir.Loop{ID: b.id(), Body: b.block(stmts...)})
}

// analyze runs the analysis over a unit consisting of the given functions.
func (b *builder) analyze(t *testing.T, funcs ...*ir.Func) *Result {
	t.Helper()

	res, err := Analyze(&ir.Unit{Funcs: funcs}, b.info)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	return res
}

func use(p *ir.Path) ir.UseID {
	return ir.DirectUse{Node: p.ID}
}

func lastUses(res *Result) map[ir.UseID]bool {
	return maps.Collect(res.LastUses())
}
