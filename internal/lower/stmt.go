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
	"fillmore-labs.com/lastuse/internal/noreturn"
)

func (f *lowering) block(b *ast.BlockStmt) *ir.Block {
	if b == nil {
		return nil
	}

	return &ir.Block{ID: f.id(), Stmts: f.stmts(nil, b.List)}
}

func (f *lowering) stmts(out []ir.Stmt, list []ast.Stmt) []ir.Stmt {
	for _, s := range list {
		out = f.stmt(out, s)
	}

	return out
}

// stmt appends the lowered statement s to out.
func (f *lowering) stmt(out []ir.Stmt, s ast.Stmt) []ir.Stmt {
	label := f.label
	f.label = nil

	switch s := s.(type) {
	case nil:
		return out

	// keep-sorted start newline_separated=yes
	case *ast.AssignStmt:
		return f.assign(out, s)

	case *ast.BlockStmt:
		return append(out, f.block(s))

	case *ast.BranchStmt:
		return f.branch(out, s)

	case *ast.DeclStmt:
		return f.declStmt(out, s)

	case *ast.DeferStmt:
		return f.do(out, f.call(s.Call))

	case *ast.ExprStmt:
		if call, ok := ast.Unparen(s.X).(*ast.CallExpr); ok && noreturn.CantReturn(f.info, call) {
			return f.do(out, &ir.Fail{ID: f.id(), Arg: f.call(call)})
		}

		return f.do(out, f.expr(s.X))

	case *ast.ForStmt:
		return f.forStmt(out, s, label)

	case *ast.GoStmt:
		return f.do(out, f.call(s.Call))

	case *ast.IfStmt:
		return f.ifStmt(out, s)

	case *ast.IncDecStmt:
		return f.do(out, &ir.AssignOp{ID: f.id(), Dest: f.expr(s.X)})

	case *ast.LabeledStmt:
		f.label, _ = f.info.Defs[s.Label].(*types.Label)

		return f.stmt(out, s.Stmt)

	case *ast.RangeStmt:
		return f.rangeStmt(out, s, label)

	case *ast.ReturnStmt:
		return f.returnStmt(out, s)

	case *ast.SelectStmt:
		return f.selectStmt(out, s, label)

	case *ast.SendStmt:
		return f.do(out, f.op(s.Chan, s.Value))

	case *ast.SwitchStmt:
		return f.switchStmt(out, s, label)

	case *ast.TypeSwitchStmt:
		return f.typeSwitchStmt(out, s, label)

		// keep-sorted end

	default: // *ast.EmptyStmt, *ast.BadStmt
		return out
	}
}

// do appends an expression statement for e to out.
func (f *lowering) do(out []ir.Stmt, e ir.Expr) []ir.Stmt {
	if e == nil {
		return out
	}

	return append(out, &ir.ExprStmt{X: e})
}

// scoped appends stmts to out, wrapped in a block when init declares variables.
func (f *lowering) scoped(out []ir.Stmt, init ast.Stmt, stmts ...ir.Stmt) []ir.Stmt {
	if init == nil {
		return append(out, stmts...)
	}

	inner := f.stmt(nil, init)

	return append(out, &ir.Block{ID: f.id(), Stmts: append(inner, stmts...)})
}

func (f *lowering) assign(out []ir.Stmt, s *ast.AssignStmt) []ir.Stmt {
	switch s.Tok {
	case token.DEFINE, token.ASSIGN:

	default: // op=
		return f.do(out, &ir.AssignOp{ID: f.id(), Dest: f.expr(s.Lhs[0]), Src: f.expr(s.Rhs[0])})
	}

	if len(s.Lhs) == 1 && len(s.Rhs) == 1 {
		f.alias(s.Lhs[0], s.Rhs[0])

		return f.store(out, s.Tok, s.Lhs[0], f.expr(s.Rhs[0]))
	}

	if swap := f.swap(s); swap != nil {
		return f.do(out, swap)
	}

	// All operands are evaluated before any variable is stored.
	op := &ir.Op{ID: f.id()}

	for _, lhs := range s.Lhs {
		if _, ok := ast.Unparen(lhs).(*ast.Ident); !ok {
			op.Args = append(op.Args, f.expr(lhs))
		}
	}

	for _, rhs := range s.Rhs {
		op.Args = append(op.Args, f.expr(rhs))
	}

	out = f.do(out, op)

	for _, lhs := range s.Lhs {
		if _, ok := ast.Unparen(lhs).(*ast.Ident); ok {
			out = f.store(out, s.Tok, lhs, nil)
		}
	}

	return out
}

// store appends the assignment of src to lhs. A new variable of a short variable declaration is declared.
func (f *lowering) store(out []ir.Stmt, tok token.Token, lhs ast.Expr, src ir.Expr) []ir.Stmt {
	id, ok := ast.Unparen(lhs).(*ast.Ident)
	switch {
	case !ok:
		return f.do(out, &ir.Assign{ID: f.id(), Dest: f.expr(lhs), Src: src})

	case id.Name == "_":
		return f.do(out, src)
	}

	if v, ok := f.info.Defs[id].(*types.Var); ok && tok == token.DEFINE {
		return append(out, &ir.Let{ID: f.id(), Bindings: []ir.BindingID{f.binding(v)}, Init: src})
	}

	return f.do(out, &ir.Assign{ID: f.id(), Dest: f.ident(id), Src: src})
}

// swap recognizes the exchange of two variables.
func (f *lowering) swap(s *ast.AssignStmt) ir.Expr {
	if s.Tok != token.ASSIGN || len(s.Lhs) != 2 || len(s.Rhs) != 2 {
		return nil
	}

	a, b := f.variable(s.Lhs[0]), f.variable(s.Lhs[1])
	if a == nil || b == nil || a == b || f.variable(s.Rhs[0]) != b || f.variable(s.Rhs[1]) != a {
		return nil
	}

	return &ir.Swap{ID: f.id(), X: f.expr(s.Lhs[0]), Y: f.expr(s.Lhs[1])}
}

// variable returns the variable e refers to, if e is an identifier.
func (f *lowering) variable(e ast.Expr) *types.Var {
	id, ok := ast.Unparen(e).(*ast.Ident)
	if !ok {
		return nil
	}

	v, _ := f.info.Uses[id].(*types.Var)

	return v
}

func (f *lowering) declStmt(out []ir.Stmt, s *ast.DeclStmt) []ir.Stmt {
	decl, ok := s.Decl.(*ast.GenDecl)
	if !ok || decl.Tok != token.VAR {
		return out // constants and types
	}

	for _, spec := range decl.Specs {
		vspec, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		switch len(vspec.Values) {
		case len(vspec.Names):
			for i, name := range vspec.Names {
				f.alias(name, vspec.Values[i])
				out = f.let(out, vspec.Names[i:i+1], f.expr(vspec.Values[i]))
			}

		case 0:
			out = f.let(out, vspec.Names, nil)

		default: // multi-value expression
			out = f.let(out, vspec.Names, f.expr(vspec.Values[0]))
		}
	}

	return out
}

// let appends the declaration of names, initialized by init.
func (f *lowering) let(out []ir.Stmt, names []*ast.Ident, init ir.Expr) []ir.Stmt {
	var bindings []ir.BindingID

	for _, name := range names {
		if v, ok := f.info.Defs[name].(*types.Var); ok && name.Name != "_" {
			bindings = append(bindings, f.binding(v))
		}
	}

	if len(bindings) == 0 {
		return f.do(out, init)
	}

	return append(out, &ir.Let{ID: f.id(), Bindings: bindings, Init: init})
}

func (f *lowering) returnStmt(out []ir.Stmt, s *ast.ReturnStmt) []ir.Stmt {
	var result ir.Expr

	switch len(s.Results) {
	case 0:
		// A bare return reads the named results.
		if f.frame == nil || len(f.frame.results) == 0 {
			break
		}

		op := &ir.Op{ID: f.id()}
		for _, v := range f.frame.results {
			op.Args = append(op.Args, f.ref(v, nil))
		}

		result = op

	case 1:
		result = f.expr(s.Results[0])

	default:
		result = f.op(s.Results...)
	}

	return f.do(out, &ir.Return{ID: f.id(), Result: result})
}

func (f *lowering) ifStmt(out []ir.Stmt, s *ast.IfStmt) []ir.Stmt {
	ifx := &ir.If{ID: f.id(), Cond: f.expr(s.Cond), Then: f.block(s.Body)}

	switch e := s.Else.(type) {
	case *ast.BlockStmt:
		ifx.Else = f.block(e)

	case *ast.IfStmt:
		ifx.Else = &ir.Block{ID: f.id(), Stmts: f.ifStmt(nil, e)}
	}

	return f.scoped(out, s.Init, &ir.ExprStmt{X: ifx})
}

func (f *lowering) forStmt(out []ir.Stmt, s *ast.ForStmt, label *types.Label) []ir.Stmt {
	f.push(label, true)
	defer f.pop()

	loop := &ir.Loop{ID: f.id(), Cond: f.expr(s.Cond), Body: f.block(s.Body)}

	if post := f.stmt(nil, s.Post); len(post) > 0 {
		loop.Post = &ir.Block{ID: f.id(), Stmts: post}
	}

	return f.scoped(out, s.Init, &ir.ExprStmt{X: loop})
}

func (f *lowering) rangeStmt(out []ir.Stmt, s *ast.RangeStmt, label *types.Label) []ir.Stmt {
	coll := f.expr(s.X)

	f.push(label, true)
	defer f.pop()

	// The iteration variables are assigned at the start of each iteration.
	var body []ir.Stmt

	switch s.Tok {
	case token.DEFINE:
		var names []*ast.Ident

		for _, e := range [...]ast.Expr{s.Key, s.Value} {
			if id, ok := e.(*ast.Ident); ok {
				names = append(names, id)
			}
		}

		body = f.let(body, names, nil)

	case token.ASSIGN:
		for _, e := range [...]ast.Expr{s.Key, s.Value} {
			if e != nil {
				body = f.store(body, token.ASSIGN, e, nil)
			}
		}
	}

	body = f.stmts(body, s.Body.List)

	return f.do(out, &ir.ForEach{ID: f.id(), Coll: coll, Body: &ir.Block{ID: f.id(), Stmts: body}})
}

func (f *lowering) switchStmt(out []ir.Stmt, s *ast.SwitchStmt, label *types.Label) []ir.Stmt {
	// Case expressions are evaluated until one matches, so every arm may follow all of them.
	scrutinee := &ir.Op{ID: f.id()}
	scrutinee.Args = append(scrutinee.Args, f.expr(s.Tag))

	clauses := caseClauses(s.Body)
	for _, cc := range clauses {
		for _, e := range cc.List {
			scrutinee.Args = append(scrutinee.Args, f.expr(e))
		}
	}

	f.push(label, false)
	defer f.pop()

	bodies := make([]*ir.Block, len(clauses))
	for i, cc := range clauses {
		bodies[i] = &ir.Block{ID: f.id(), Stmts: f.stmts(nil, cc.Body)}
	}

	match := &ir.Match{ID: f.id(), Scrutinee: scrutinee}
	hasDefault := false

	for i, cc := range clauses {
		if cc.List == nil {
			hasDefault = true
		}

		if fallsThrough(cc) && i+1 < len(bodies) {
			bodies[i].Stmts = append(bodies[i].Stmts, bodies[i+1])
		}

		match.Arms = append(match.Arms, &ir.Arm{Body: bodies[i]})
	}

	if !hasDefault {
		match.Arms = append(match.Arms, &ir.Arm{})
	}

	return f.scoped(out, s.Init, &ir.ExprStmt{X: match})
}

func (f *lowering) typeSwitchStmt(out []ir.Stmt, s *ast.TypeSwitchStmt, label *types.Label) []ir.Stmt {
	var x ast.Expr

	switch a := s.Assign.(type) {
	case *ast.AssignStmt: // v := x.(type)
		x = a.Rhs[0]

	case *ast.ExprStmt: // x.(type)
		x = a.X
	}

	if ta, ok := ast.Unparen(x).(*ast.TypeAssertExpr); ok {
		x = ta.X
	}

	f.push(label, false)
	defer f.pop()

	match := &ir.Match{ID: f.id(), Scrutinee: f.expr(x)}
	hasDefault := false

	for _, cc := range caseClauses(s.Body) {
		if cc.List == nil {
			hasDefault = true
		}

		var body []ir.Stmt
		if v, ok := f.info.Implicits[cc].(*types.Var); ok {
			body = append(body, &ir.Let{ID: f.id(), Bindings: []ir.BindingID{f.binding(v)}})
		}

		body = f.stmts(body, cc.Body)

		match.Arms = append(match.Arms, &ir.Arm{Body: &ir.Block{ID: f.id(), Stmts: body}})
	}

	if !hasDefault {
		match.Arms = append(match.Arms, &ir.Arm{})
	}

	return f.scoped(out, s.Init, &ir.ExprStmt{X: match})
}

func (f *lowering) selectStmt(out []ir.Stmt, s *ast.SelectStmt, label *types.Label) []ir.Stmt {
	// All channel operands and sent values are evaluated on entry.
	scrutinee := &ir.Op{ID: f.id()}

	f.push(label, false)
	defer f.pop()

	match := &ir.Match{ID: f.id(), Scrutinee: scrutinee}

	for _, stmt := range s.Body.List {
		cc, ok := stmt.(*ast.CommClause)
		if !ok {
			continue
		}

		var body []ir.Stmt

		switch comm := cc.Comm.(type) {
		case *ast.SendStmt:
			scrutinee.Args = append(scrutinee.Args, f.expr(comm.Chan), f.expr(comm.Value))

		case *ast.ExprStmt: // <-ch
			scrutinee.Args = append(scrutinee.Args, f.expr(comm.X))

		case *ast.AssignStmt: // v, ok := <-ch
			scrutinee.Args = append(scrutinee.Args, f.expr(comm.Rhs[0]))

			for _, lhs := range comm.Lhs {
				body = f.store(body, comm.Tok, lhs, nil)
			}
		}

		body = f.stmts(body, cc.Body)

		match.Arms = append(match.Arms, &ir.Arm{Body: &ir.Block{ID: f.id(), Stmts: body}})
	}

	return f.do(out, match)
}

func (f *lowering) branch(out []ir.Stmt, s *ast.BranchStmt) []ir.Stmt {
	switch s.Tok {
	case token.BREAK:
		if f.breaksLoop(s.Label) {
			return f.do(out, &ir.Break{ID: f.id()})
		}

	case token.CONTINUE:
		return f.do(out, &ir.Continue{ID: f.id()})
	}

	// fallthrough is handled by the enclosing switch, goto rejected beforehand.
	return out
}

// breaksLoop reports whether a break statement with the given label leaves a loop.
// Breaking out of a switch or select statement continues after it.
func (f *lowering) breaksLoop(label *ast.Ident) bool {
	var target types.Object
	if label != nil {
		target = f.info.Uses[label]
	}

	for i := len(f.jumps) - 1; i >= 0; i-- {
		j := f.jumps[i]
		if target == nil || j.label == target {
			return j.loop
		}
	}

	return false
}

func (f *lowering) push(label *types.Label, loop bool) {
	f.jumps = append(f.jumps, jumpTarget{label: label, loop: loop})
}

func (f *lowering) pop() {
	f.jumps = f.jumps[:len(f.jumps)-1]
}

func caseClauses(body *ast.BlockStmt) []*ast.CaseClause {
	clauses := make([]*ast.CaseClause, 0, len(body.List))

	for _, s := range body.List {
		if cc, ok := s.(*ast.CaseClause); ok {
			clauses = append(clauses, cc)
		}
	}

	return clauses
}

func fallsThrough(cc *ast.CaseClause) bool {
	if len(cc.Body) == 0 {
		return false
	}

	b, ok := cc.Body[len(cc.Body)-1].(*ast.BranchStmt)

	return ok && b.Tok == token.FALLTHROUGH
}
