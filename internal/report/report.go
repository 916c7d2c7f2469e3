// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

// Package report turns the liveness tables into diagnostics.
package report

import (
	"cmp"
	"context"
	"fmt"
	"go/token"
	"runtime/trace"
	"slices"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/lastuse/internal/config"
	"fillmore-labs.com/lastuse/internal/liveness"
	"fillmore-labs.com/lastuse/internal/lower"
)

// Diagnostics emits the enabled reports for a lowered package in source order.
//
// Diagnostics on a line carrying a //nolint:lastuse comment are suppressed.
func Diagnostics(ctx context.Context, p *analysis.Pass, files Files, prog *lower.Program, sum *liveness.Summary, reports config.Reports) {
	defer trace.StartRegion(ctx, "Report").End()

	var diagnostics []analysis.Diagnostic

	if reports.Enabled(config.ReportLast) {
		diagnostics = lastUses(diagnostics, prog, sum)
	}

	if reports.Enabled(config.ReportSpill) {
		diagnostics = spills(diagnostics, prog, sum)
	}

	if reports.Enabled(config.ReportCapture) {
		diagnostics = captures(diagnostics, prog, sum)
	}

	slices.SortFunc(diagnostics, func(a, b analysis.Diagnostic) int {
		return cmp.Or(cmp.Compare(a.Pos, b.Pos), cmp.Compare(a.Message, b.Message))
	})

	for _, diagnostic := range diagnostics {
		if files.At(diagnostic.Pos).NoLintComment(diagnostic.Pos) {
			continue
		}

		p.Report(diagnostic)
	}
}

func lastUses(diagnostics []analysis.Diagnostic, prog *lower.Program, sum *liveness.Summary) []analysis.Diagnostic {
	for node, id := range prog.Refs() {
		if !sum.LastUse(node) {
			continue
		}

		diagnostics = append(diagnostics, analysis.Diagnostic{
			Pos:     id.Pos(),
			End:     id.End(),
			Message: fmt.Sprintf("last use of '%s' (lu:last)", id.Name),
		})
	}

	return diagnostics
}

func spills(diagnostics []analysis.Diagnostic, prog *lower.Program, sum *liveness.Summary) []analysis.Diagnostic {
	for b, v := range prog.Vars() {
		if !sum.Spilled(b) || !named(v.Name()) {
			continue
		}

		diagnostics = append(diagnostics, analysis.Diagnostic{
			Pos:     v.Pos(),
			End:     v.Pos() + token.Pos(len(v.Name())),
			Message: fmt.Sprintf("variable '%s' needs an addressable slot (lu:spill)", v.Name()),
		})
	}

	return diagnostics
}

func captures(diagnostics []analysis.Diagnostic, prog *lower.Program, sum *liveness.Summary) []analysis.Diagnostic {
	for node, lit := range prog.Closures() {
		bindings := sum.ClosesOver(node)
		if len(bindings) == 0 {
			continue
		}

		varNames := make([]string, 0, len(bindings))
		for _, b := range bindings {
			if v := prog.Var(b); v != nil {
				varNames = append(varNames, v.Name())
			}
		}

		format := "function literal takes %s with its last use (lu:capt)"
		if len(varNames) > 1 {
			format = "function literal takes %s with their last uses (lu:capt)"
		}

		diagnostics = append(diagnostics, analysis.Diagnostic{
			Pos:     lit.Pos(),
			End:     lit.Type.End(),
			Message: fmt.Sprintf(format, concatNames(varNames)),
		})
	}

	return diagnostics
}

func named(name string) bool {
	return name != "" && name != "_"
}
