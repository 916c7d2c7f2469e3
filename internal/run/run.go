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

package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/lastuse/internal/astutil"
	"fillmore-labs.com/lastuse/internal/config"
	"fillmore-labs.com/lastuse/internal/liveness"
	"fillmore-labs.com/lastuse/internal/lower"
	"fillmore-labs.com/lastuse/internal/report"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the lastuse analyzer's pipeline.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("lastuse: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "LastUse")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	l := lower.New(p.TypesInfo)

	var files report.Files

	// Loop over all files
	for f := range in.Root().Children() {
		file := f.Node().(*ast.File)

		currentFile := astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			astutil.InternalError(p, file, "File %s without valid info", file.Name.Name)

			continue
		}

		// Skip generated files
		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		// Skip files with nolint comment
		if astutil.HasNoLintDoc(file.Doc) {
			continue
		}

		files = append(files, currentFile)

		// Stage 1: Lower declarations
		lowerFile(ctx, p, l, f)
	}

	prog := l.Program()

	// Stage 2: Compute last uses and spills
	sum, err := analyze(ctx, prog)
	if err != nil {
		return nil, fmt.Errorf("lastuse: %s: %w", p.Pkg.Path(), err)
	}

	// Stage 3: Generate diagnostics
	report.Diagnostics(ctx, p, files, prog, sum, r.Reports)

	return &Result{prog: prog, sum: sum}, nil
}

// lowerFile lowers the top-level declarations of a file.
func lowerFile(ctx context.Context, p *analysis.Pass, l *lower.Lowerer, f inspector.Cursor) {
	defer trace.StartRegion(ctx, "Lower").End()

	for c := range f.Children() {
		switch n := c.Node().(type) {
		case *ast.FuncDecl:
			// Skip functions with nolint comment
			if astutil.HasNoLintDoc(n.Doc) {
				continue
			}

			checkLowered(ctx, p, n, l.Func(c))

		case *ast.GenDecl:
			checkLowered(ctx, p, n, l.Globals(c))
		}
	}
}

// checkLowered reports lowering failures, except for unsupported constructs, which are skipped.
func checkLowered(ctx context.Context, p *analysis.Pass, n ast.Node, err error) {
	switch {
	case err == nil:

	case errors.Is(err, lower.ErrUnsupported):
		trace.Log(ctx, "skipped", err.Error())

	default:
		astutil.InternalError(p, n, "%v", err)
	}
}

func analyze(ctx context.Context, prog *lower.Program) (*liveness.Summary, error) {
	defer trace.StartRegion(ctx, "Analyze").End()

	res, err := liveness.Analyze(prog.Unit, prog.Info)
	if err != nil {
		return nil, err
	}

	return res.Summarize(prog.Info), nil
}
