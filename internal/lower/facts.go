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
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"
)

// facts are properties of a declaration that influence how it is lowered.
type facts struct {
	// inline is the set of function literals called immediately where they are written.
	inline map[*ast.FuncLit]struct{}

	// mutated is the set of variables assigned after their declaration.
	mutated map[*types.Var]struct{}

	// captured is the set of variables referenced from an escaping function literal.
	captured map[*types.Var]struct{}

	// addressed is the set of variables whose address is taken, explicitly or implicitly.
	addressed map[*types.Var]struct{}
}

// shared reports whether v can be accessed by code the analysis doesn't see at the reference.
func (f *facts) shared(v *types.Var) bool {
	if _, ok := f.addressed[v]; ok {
		return true
	}

	_, mutated := f.mutated[v]

	return f.escaped(v) && mutated
}

// escaped reports whether v is referenced from an escaping function literal.
func (f *facts) escaped(v *types.Var) bool {
	_, ok := f.captured[v]

	return ok
}

// collectFacts gathers the facts of the declaration at c.
func collectFacts(info *types.Info, c inspector.Cursor) (*facts, error) {
	f := &facts{
		inline:    make(map[*ast.FuncLit]struct{}),
		mutated:   make(map[*types.Var]struct{}),
		captured:  make(map[*types.Var]struct{}),
		addressed: make(map[*types.Var]struct{}),
	}

	nodeTypes := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.BranchStmt)(nil),
		(*ast.FuncLit)(nil),
		(*ast.FuncType)(nil),
		(*ast.Ident)(nil),
		(*ast.IncDecStmt)(nil),
		(*ast.RangeStmt)(nil),
		(*ast.SelectorExpr)(nil),
		(*ast.SliceExpr)(nil),
		(*ast.UnaryExpr)(nil),
	}

	for cur := range c.Preorder(nodeTypes...) {
		switch n := cur.Node().(type) {
		case *ast.AssignStmt:
			for _, lhs := range n.Lhs {
				id, ok := ast.Unparen(lhs).(*ast.Ident)
				if !ok || n.Tok == token.DEFINE && info.Defs[id] != nil {
					continue
				}

				f.mutate(info.Uses[id])
			}

		case *ast.BranchStmt:
			if n.Tok == token.GOTO {
				return nil, fmt.Errorf("%w: goto %s", ErrUnsupported, n.Label.Name)
			}

		case *ast.FuncLit:
			if inlineLit(cur) {
				f.inline[n] = struct{}{}
			}

		case *ast.FuncType:
			// Named results are assigned by every return statement.
			if n.Results == nil {
				break
			}

			for _, field := range n.Results.List {
				for _, name := range field.Names {
					f.mutate(info.Defs[name])
				}
			}

		case *ast.Ident:
			v, ok := info.Uses[n].(*types.Var)
			if !ok || v.IsField() {
				break
			}

			if f.escapes(cur, v) {
				f.captured[v] = struct{}{}
			}

		case *ast.IncDecStmt:
			if id, ok := ast.Unparen(n.X).(*ast.Ident); ok {
				f.mutate(info.Uses[id])
			}

		case *ast.RangeStmt:
			if n.Tok != token.ASSIGN {
				break
			}

			for _, e := range [...]ast.Expr{n.Key, n.Value} {
				if id, ok := ast.Unparen(e).(*ast.Ident); ok {
					f.mutate(info.Uses[id])
				}
			}

		case *ast.SelectorExpr:
			if implicitAddr(info, n) {
				f.address(addressedVar(info, n.X))
			}

		case *ast.SliceExpr:
			if isArray(info.TypeOf(n.X)) {
				f.address(addressedVar(info, n.X))
			}

		case *ast.UnaryExpr:
			if n.Op == token.AND {
				f.address(addressedVar(info, n.X))
			}
		}
	}

	return f, nil
}

func (f *facts) mutate(obj types.Object) {
	if v, ok := obj.(*types.Var); ok {
		f.mutated[v] = struct{}{}
	}
}

func (f *facts) address(v *types.Var) {
	if v != nil {
		f.addressed[v] = struct{}{}
	}
}

// escapes reports whether the reference at c reaches v through an escaping function literal.
func (f *facts) escapes(c inspector.Cursor, v *types.Var) bool {
	for lit := range c.Enclosing((*ast.FuncLit)(nil)) {
		n := lit.Node()
		if contains(n, v.Pos()) {
			return false
		}

		if _, ok := f.inline[n.(*ast.FuncLit)]; !ok {
			return true
		}
	}

	return false
}

// inlineLit reports whether the function literal at c is called immediately
// by a call that is neither deferred nor run in a new goroutine.
// A literal passed as an argument may be retained by the callee.
func inlineLit(c inspector.Cursor) bool {
	if k, _ := c.ParentEdge(); k != edge.CallExpr_Fun {
		return false
	}

	switch k, _ := c.Parent().ParentEdge(); k {
	case edge.GoStmt_Call, edge.DeferStmt_Call:
		return false

	default:
		return true
	}
}

// implicitAddr reports whether the method selection x.m takes the address of x.
func implicitAddr(info *types.Info, x *ast.SelectorExpr) bool {
	sel, ok := info.Selections[x]
	if !ok || sel.Kind() != types.MethodVal || sel.Indirect() {
		return false
	}

	fun, ok := sel.Obj().(*types.Func)
	if !ok {
		return false
	}

	recv := fun.Signature().Recv()
	if recv == nil {
		return false
	}

	_, ptr := types.Unalias(recv.Type()).(*types.Pointer)

	return ptr
}

// addressedVar returns the variable whose storage e denotes, if any.
func addressedVar(info *types.Info, e ast.Expr) *types.Var {
	for {
		switch x := ast.Unparen(e).(type) {
		case *ast.Ident:
			v, ok := info.Uses[x].(*types.Var)
			if !ok || v.IsField() {
				return nil
			}

			return v

		case *ast.SelectorExpr:
			sel, ok := info.Selections[x]
			if !ok || sel.Kind() != types.FieldVal || sel.Indirect() {
				return nil
			}

			e = x.X

		case *ast.IndexExpr:
			if !isArray(info.TypeOf(x.X)) {
				return nil
			}

			e = x.X

		default:
			return nil
		}
	}
}

func isArray(t types.Type) bool {
	if t == nil {
		return false
	}

	_, ok := t.Underlying().(*types.Array)

	return ok
}

func contains(n ast.Node, pos token.Pos) bool {
	return n.Pos() <= pos && pos < n.End()
}
