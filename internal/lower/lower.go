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
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"iter"
	"slices"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/lastuse/internal/ir"
)

var (
	// ErrUnsupported is returned for declarations using constructs the analysis can't model.
	ErrUnsupported = errors.New("unsupported construct")

	// ErrUnexpectedNode is returned when a cursor doesn't point to the expected declaration.
	ErrUnexpectedNode = errors.New("unexpected node")
)

// Lowerer accumulates the lowered declarations of one package.
type Lowerer struct {
	info *types.Info
	prog *Program
	next ir.NodeID

	// args is the set of parameters of top-level functions and escaping function literals.
	args map[*types.Var]struct{}
}

// New creates a [Lowerer] for a package with the given type information.
func New(info *types.Info) *Lowerer {
	return &Lowerer{
		info: info,
		prog: newProgram(),
		args: make(map[*types.Var]struct{}),
	}
}

// Program returns the declarations lowered so far.
func (l *Lowerer) Program() *Program {
	return l.prog
}

// Func lowers the function declaration at c.
func (l *Lowerer) Func(c inspector.Cursor) error {
	decl, ok := c.Node().(*ast.FuncDecl)
	if !ok {
		return fmt.Errorf("%w %T, expected function declaration", ErrUnexpectedNode, c.Node())
	}

	if decl.Body == nil {
		return nil // external function
	}

	f, err := l.lowering(c)
	if err != nil {
		return fmt.Errorf("function %s: %w", decl.Name.Name, err)
	}

	fn := &ir.Func{ID: l.id()}
	fn.Params = f.enter(fn.ID, decl, ir.FuncEscaping, decl.Recv, decl.Type)
	fn.Body = f.block(decl.Body)
	f.exit()

	l.prog.Unit.Funcs = append(l.prog.Unit.Funcs, fn)

	return nil
}

// Globals lowers the initializers of the package-level variable declaration at c.
func (l *Lowerer) Globals(c inspector.Cursor) error {
	decl, ok := c.Node().(*ast.GenDecl)
	if !ok {
		return fmt.Errorf("%w %T, expected declaration", ErrUnexpectedNode, c.Node())
	}

	if decl.Tok != token.VAR {
		return nil
	}

	f, err := l.lowering(c)
	if err != nil {
		return fmt.Errorf("variable declaration: %w", err)
	}

	for _, spec := range decl.Specs {
		vspec, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		for _, value := range vspec.Values {
			l.prog.Unit.Globals = f.do(l.prog.Unit.Globals, f.expr(value))
		}
	}

	return nil
}

func (l *Lowerer) lowering(c inspector.Cursor) (*lowering, error) {
	facts, err := collectFacts(l.info, c)
	if err != nil {
		return nil, err
	}

	return &lowering{Lowerer: l, facts: facts}, nil
}

func (l *Lowerer) id() ir.NodeID {
	l.next++

	return l.next
}

// lowering holds the state of lowering one declaration.
type lowering struct {
	*Lowerer
	facts *facts

	// frame is the innermost function being lowered.
	frame *frame

	// jumps is the stack of statements a break in the current function can leave.
	jumps []jumpTarget

	// label is the label of the statement about to be lowered.
	label *types.Label
}

// frame is a function body being lowered.
type frame struct {
	id      ir.NodeID
	node    ast.Node // *ast.FuncDecl or *ast.FuncLit
	kind    ir.FuncKind
	results []*types.Var // Named results
	parent  *frame
}

type jumpTarget struct {
	label *types.Label
	loop  bool
}

// enter starts lowering a function body and returns the bindings of its parameters and named results.
func (f *lowering) enter(id ir.NodeID, node ast.Node, kind ir.FuncKind, recv *ast.FieldList, typ *ast.FuncType) []ir.BindingID {
	f.frame = &frame{id: id, node: node, kind: kind, parent: f.frame}

	var params []ir.BindingID

	for _, list := range [...]*ast.FieldList{recv, typ.Params} {
		for v := range f.fieldVars(list) {
			if kind == ir.FuncEscaping {
				f.args[v] = struct{}{}
			}

			params = append(params, f.binding(v))
		}
	}

	for v := range f.fieldVars(typ.Results) {
		f.frame.results = append(f.frame.results, v)
		params = append(params, f.binding(v))
	}

	return params
}

func (f *lowering) exit() {
	f.frame = f.frame.parent
}

// binding returns the binding of v, allocating one on first use.
func (f *lowering) binding(v *types.Var) ir.BindingID {
	if b, ok := f.prog.bindings[v]; ok {
		return b
	}

	b := ir.BindingID(len(f.prog.vars))
	f.prog.vars = append(f.prog.vars, v)
	f.prog.bindings[v] = b

	switch {
	case f.facts.shared(v):
		f.prog.shared[v] = struct{}{}
		f.prog.Info.Aliases[b] = b

	case f.facts.escaped(v):
		// An escaping function literal may read v whenever it runs.
		f.prog.Info.Aliases[b] = b
	}

	return b
}

// def returns the definition of v as seen from the current function.
func (f *lowering) def(v *types.Var) ir.Def {
	if global(v) {
		return ir.Def{Kind: ir.DefOther}
	}

	var crossed []*frame

	fr := f.frame
	for ; fr != nil && !contains(fr.node, v.Pos()); fr = fr.parent {
		crossed = append(crossed, fr)
	}

	if fr == nil {
		return ir.Def{Kind: ir.DefOther}
	}

	b := f.binding(v)

	def := ir.Local(b)
	if _, ok := f.args[v]; ok {
		def = ir.Arg(b, ir.ModeCopy)
	}

	for _, c := range slices.Backward(crossed) {
		if c.kind == ir.FuncEscaping && !f.prog.Shared(v) {
			f.capture(c.id, def)
		}

		def = ir.Upvar(def, c.id)
	}

	return def
}

// local reports whether v is declared in one of the functions being lowered.
func (f *lowering) local(v *types.Var) bool {
	if global(v) {
		return false
	}

	for fr := f.frame; fr != nil; fr = fr.parent {
		if contains(fr.node, v.Pos()) {
			return true
		}
	}

	return false
}

// global reports whether v is a package-level variable or a struct field.
func global(v *types.Var) bool {
	pkg, parent := v.Pkg(), v.Parent()

	return pkg == nil || parent == nil || parent == pkg.Scope()
}

// fieldVars yields the named variables declared by list.
func (f *lowering) fieldVars(list *ast.FieldList) iter.Seq[*types.Var] {
	return func(yield func(*types.Var) bool) {
		if list == nil {
			return
		}

		for _, field := range list.List {
			for _, name := range field.Names {
				v, ok := f.info.Defs[name].(*types.Var)
				if !ok {
					continue
				}

				if !yield(v) {
					return
				}
			}
		}
	}
}

// capture adds def to the free variables of the escaping function literal fn.
func (f *lowering) capture(fn ir.NodeID, def ir.Def) {
	free := f.prog.Info.FreeVars[fn]
	if slices.ContainsFunc(free, func(d ir.Def) bool { return d.Binding == def.Binding }) {
		return
	}

	f.prog.Info.FreeVars[fn] = append(free, def)
}

// alias records that the pointer variable lhs points into the storage of the variable addressed by rhs.
func (f *lowering) alias(lhs, rhs ast.Expr) {
	id, ok := ast.Unparen(lhs).(*ast.Ident)
	if !ok {
		return
	}

	u, ok := ast.Unparen(rhs).(*ast.UnaryExpr)
	if !ok || u.Op != token.AND {
		return
	}

	p, ok := f.info.ObjectOf(id).(*types.Var)
	if !ok || !f.local(p) {
		return
	}

	x := addressedVar(f.info, u.X)
	if x == nil || !f.local(x) {
		return
	}

	pb := f.binding(p)
	if _, ok := f.prog.Info.Aliases[pb]; ok {
		return
	}

	f.prog.Info.Aliases[pb] = f.binding(x)
}
