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
	"go/token"
	"go/types"

	"fillmore-labs.com/lastuse/internal/ir"
)

// expr lowers the expression e. It returns nil for expressions without operands,
// like constants, types and function names.
func (f *lowering) expr(e ast.Expr) ir.Expr {
	if e == nil {
		return nil
	}

	if tv, ok := f.info.Types[e]; ok && (tv.IsType() || tv.Value != nil) {
		return nil
	}

	switch e := e.(type) {
	// keep-sorted start newline_separated=yes
	case *ast.BinaryExpr:
		if e.Op == token.LAND || e.Op == token.LOR {
			// The right operand is evaluated conditionally.
			cond := &ir.If{ID: f.id(), Then: &ir.Block{ID: f.id(), Stmts: f.do(nil, f.expr(e.Y))}}

			return &ir.Op{ID: f.id(), Args: []ir.Expr{f.expr(e.X), cond}}
		}

		return f.op(e.X, e.Y)

	case *ast.CallExpr:
		return f.call(e)

	case *ast.CompositeLit:
		return f.compositeLit(e)

	case *ast.FuncLit:
		return f.funcLit(e)

	case *ast.Ident:
		return f.ident(e)

	case *ast.IndexExpr:
		return f.op(e.X, e.Index)

	case *ast.IndexListExpr:
		return f.op(e.X)

	case *ast.KeyValueExpr:
		return f.op(e.Key, e.Value)

	case *ast.ParenExpr:
		return f.expr(e.X)

	case *ast.SelectorExpr:
		return f.selector(e)

	case *ast.SliceExpr:
		op := f.op(e.Low, e.High, e.Max)
		if isArray(f.info.TypeOf(e.X)) {
			// Slicing an array takes its address.
			op.Args = append([]ir.Expr{f.addr(e.X)}, op.Args...)
		} else {
			op.Args = append([]ir.Expr{f.expr(e.X)}, op.Args...)
		}

		return op

	case *ast.StarExpr:
		return f.op(e.X)

	case *ast.TypeAssertExpr:
		return f.op(e.X)

	case *ast.UnaryExpr:
		if e.Op == token.AND {
			return f.addr(e.X)
		}

		return f.op(e.X)

		// keep-sorted end

	default: // *ast.BasicLit, *ast.Ellipsis, *ast.BadExpr, type expressions
		return nil
	}
}

// op lowers the operands es into an operator.
func (f *lowering) op(es ...ast.Expr) *ir.Op {
	op := &ir.Op{ID: f.id()}

	for _, e := range es {
		if x := f.expr(e); x != nil {
			op.Args = append(op.Args, x)
		}
	}

	return op
}

// ident lowers a reference to a variable.
func (f *lowering) ident(id *ast.Ident) ir.Expr {
	v, ok := f.info.Uses[id].(*types.Var)
	if !ok || v.IsField() {
		return nil
	}

	return f.ref(v, id)
}

// ref returns a reference to v. id is nil for implicit references.
func (f *lowering) ref(v *types.Var, id *ast.Ident) *ir.Path {
	p := &ir.Path{ID: f.id()}
	f.prog.Info.Uses[p.ID] = f.def(v)

	if id != nil {
		f.prog.refs[p.ID] = id
		f.prog.nodes[id] = p.ID
	}

	return p
}

// addr lowers the address of e, which refers to the base variable when e denotes its storage.
func (f *lowering) addr(e ast.Expr) ir.Expr {
	switch x := ast.Unparen(e).(type) {
	case *ast.Ident:
		p := f.ident(x)
		if p == nil {
			return nil
		}

		return &ir.Ref{ID: f.id(), X: p}

	case *ast.SelectorExpr:
		if sel, ok := f.info.Selections[x]; ok && sel.Kind() == types.FieldVal && !sel.Indirect() {
			return f.addr(x.X)
		}

	case *ast.IndexExpr:
		if isArray(f.info.TypeOf(x.X)) {
			return &ir.Op{ID: f.id(), Args: []ir.Expr{f.addr(x.X), f.expr(x.Index)}}
		}
	}

	return f.expr(e)
}

func (f *lowering) selector(e *ast.SelectorExpr) ir.Expr {
	if _, ok := f.info.Selections[e]; !ok {
		return f.expr(e.Sel) // qualified identifier
	}

	if implicitAddr(f.info, e) {
		return &ir.Op{ID: f.id(), Args: []ir.Expr{f.addr(e.X)}}
	}

	return f.op(e.X)
}

func (f *lowering) compositeLit(e *ast.CompositeLit) ir.Expr {
	_, isStruct := f.info.TypeOf(e).Underlying().(*types.Struct)

	op := &ir.Op{ID: f.id()}

	for _, elt := range e.Elts {
		if kv, ok := elt.(*ast.KeyValueExpr); ok && isStruct {
			elt = kv.Value // field name
		}

		if x := f.expr(elt); x != nil {
			op.Args = append(op.Args, x)
		}
	}

	return op
}

func (f *lowering) call(e *ast.CallExpr) ir.Expr {
	if tv, ok := f.info.Types[e.Fun]; ok && tv.IsType() {
		return f.op(e.Args...) // conversion
	}

	if f.builtin(e.Fun) {
		return f.op(e.Args...)
	}

	c := &ir.Call{ID: f.id(), Fun: f.expr(e.Fun)}
	for _, arg := range e.Args {
		c.Args = append(c.Args, f.expr(arg))
	}

	return c
}

func (f *lowering) builtin(fun ast.Expr) bool {
	var id *ast.Ident

	switch fun := ast.Unparen(fun).(type) {
	case *ast.Ident:
		id = fun

	case *ast.SelectorExpr: // unsafe.Sizeof
		id = fun.Sel

	default:
		return false
	}

	_, ok := f.info.Uses[id].(*types.Builtin)

	return ok
}

func (f *lowering) funcLit(lit *ast.FuncLit) ir.Expr {
	fn := &ir.Func{ID: f.id()}

	kind := ir.FuncEscaping
	if _, ok := f.facts.inline[lit]; ok {
		kind = ir.FuncInline
	} else {
		f.prog.lits[fn.ID] = lit
		f.prog.funcs[lit] = fn.ID
	}

	f.prog.Info.FuncKinds[fn.ID] = kind

	// break and continue don't cross function boundaries.
	jumps := f.jumps
	f.jumps = nil

	fn.Params = f.enter(fn.ID, lit, kind, nil, lit.Type)
	fn.Body = f.block(lit.Body)
	f.exit()

	f.jumps = jumps

	return fn
}
