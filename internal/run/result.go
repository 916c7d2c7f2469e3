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

package run

import (
	"go/ast"
	"go/types"

	"fillmore-labs.com/lastuse/internal/liveness"
	"fillmore-labs.com/lastuse/internal/lower"
)

// Result holds the last-use tables of a package for consumption by other analyzers.
type Result struct {
	prog *lower.Program
	sum  *liveness.Summary
}

// LastUse reports whether the variable reference id is the last use of its variable.
func (r *Result) LastUse(id *ast.Ident) bool {
	node, ok := r.prog.Node(id)

	return ok && r.sum.LastUse(node)
}

// Spilled reports whether v needs an addressable slot.
func (r *Result) Spilled(v *types.Var) bool {
	b, ok := r.prog.Binding(v)

	return ok && r.sum.Spilled(b)
}

// ClosesOver returns the variables the escaping function literal takes with their last use.
func (r *Result) ClosesOver(lit *ast.FuncLit) []*types.Var {
	node, ok := r.prog.Closure(lit)
	if !ok {
		return nil
	}

	bindings := r.sum.ClosesOver(node)
	if len(bindings) == 0 {
		return nil
	}

	vars := make([]*types.Var, 0, len(bindings))
	for _, b := range bindings {
		vars = append(vars, r.prog.Var(b))
	}

	return vars
}
