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

package lower

import (
	"go/ast"
	"go/types"
	"iter"
	"maps"

	"fillmore-labs.com/lastuse/internal/ir"
)

// Program is a lowered package together with the mapping back to its syntax.
type Program struct {
	Unit *ir.Unit
	Info *ir.Info

	refs     map[ir.NodeID]*ast.Ident
	nodes    map[*ast.Ident]ir.NodeID
	lits     map[ir.NodeID]*ast.FuncLit
	funcs    map[*ast.FuncLit]ir.NodeID
	vars     []*types.Var // indexed by binding
	bindings map[*types.Var]ir.BindingID
	shared   map[*types.Var]struct{}
}

func newProgram() *Program {
	return &Program{
		Unit:     &ir.Unit{},
		Info:     ir.NewInfo(),
		refs:     make(map[ir.NodeID]*ast.Ident),
		nodes:    make(map[*ast.Ident]ir.NodeID),
		lits:     make(map[ir.NodeID]*ast.FuncLit),
		funcs:    make(map[*ast.FuncLit]ir.NodeID),
		bindings: make(map[*types.Var]ir.BindingID),
		shared:   make(map[*types.Var]struct{}),
	}
}

// Refs returns all variable references with their nodes.
func (p *Program) Refs() iter.Seq2[ir.NodeID, *ast.Ident] {
	return maps.All(p.refs)
}

// Node returns the node of the variable reference id.
func (p *Program) Node(id *ast.Ident) (ir.NodeID, bool) {
	n, ok := p.nodes[id]

	return n, ok
}

// Ident returns the identifier of the variable reference node.
func (p *Program) Ident(node ir.NodeID) *ast.Ident {
	return p.refs[node]
}

// Closures returns all escaping function literals with their nodes.
func (p *Program) Closures() iter.Seq2[ir.NodeID, *ast.FuncLit] {
	return maps.All(p.lits)
}

// Closure returns the node of the escaping function literal lit.
func (p *Program) Closure(lit *ast.FuncLit) (ir.NodeID, bool) {
	n, ok := p.funcs[lit]

	return n, ok
}

// Vars returns all variables with their bindings.
func (p *Program) Vars() iter.Seq2[ir.BindingID, *types.Var] {
	return func(yield func(ir.BindingID, *types.Var) bool) {
		for b, v := range p.vars {
			if !yield(ir.BindingID(b), v) {
				return
			}
		}
	}
}

// Var returns the variable of binding b.
func (p *Program) Var(b ir.BindingID) *types.Var {
	if b < 0 || int(b) >= len(p.vars) {
		return nil
	}

	return p.vars[b]
}

// Binding returns the binding of v.
func (p *Program) Binding(v *types.Var) (ir.BindingID, bool) {
	b, ok := p.bindings[v]

	return b, ok
}

// Shared reports whether v is shared with an escaping function literal or
// accessed through a pointer, so that none of its reads is a last use.
func (p *Program) Shared(v *types.Var) bool {
	_, ok := p.shared[v]

	return ok
}
