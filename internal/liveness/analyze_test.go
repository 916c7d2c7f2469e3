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
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fillmore-labs.com/lastuse/internal/ir"
	. "fillmore-labs.com/lastuse/internal/liveness"
)

const (
	x ir.BindingID = iota + 1
	y
	z
)

func TestLastUses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(b *builder) (*ir.Func, map[ir.UseID]bool)
	}{
		{
			name: "straight line",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2 := b.local(x), b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(x1),
					b.read(x2),
				), map[ir.UseID]bool{use(x1): false, use(x2): true}
			},
		},
		{
			name: "branch join widens liveness",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2 := b.local(x), b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(x1),
					b.ifElse(b.op(), b.block(b.read(x2)), nil),
				), map[ir.UseID]bool{use(x1): false, use(x2): true}
			},
		},
		{
			name: "reads in both branches",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2, x3 := b.local(x), b.local(x), b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(x1),
					b.ifElse(b.op(), b.block(b.read(x2)), b.block(b.read(x3))),
				), map[ir.UseID]bool{use(x1): false, use(x2): true, use(x3): true}
			},
		},
		{
			name: "loop back edge",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1 := b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.loop(b.read(x1)),
				), map[ir.UseID]bool{use(x1): false}
			},
		},
		{
			name: "collection loop",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, y1 := b.local(x), b.local(y)

				return b.fn(nil,
					b.let(x, b.op()),
					b.let(y, b.op()),
					b.do(&ir.ForEach{ID: b.id(), Coll: b.op(y1), Body: b.block(b.read(x1))}),
				), map[ir.UseID]bool{use(x1): false, use(y1): true}
			},
		},
		{
			name: "declaration in loop",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				y1 := b.local(y)

				return b.fn(nil,
					b.loop(
						b.let(y, b.op()),
						b.read(y1),
					),
				), map[ir.UseID]bool{use(y1): true}
			},
		},
		{
			name: "break",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2 := b.local(x), b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.loop(
						b.read(x1),
						b.ifElse(b.op(), b.block(b.do(&ir.Break{ID: b.id()})), nil),
					),
					b.read(x2),
				), map[ir.UseID]bool{use(x1): false, use(x2): true}
			},
		},
		{
			name: "break outside loop",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2 := b.local(x), b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(x1),
					b.do(&ir.Break{ID: b.id()}),
					b.read(x2),
				), map[ir.UseID]bool{use(x1): false, use(x2): true}
			},
		},
		{
			name: "assignment kills prior reads",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2, x3 := b.local(x), b.local(x), b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(x1),
					b.do(&ir.Assign{ID: b.id(), Dest: x2, Src: b.op()}),
					b.read(x3),
				), map[ir.UseID]bool{use(x1): true, use(x3): true}
			},
		},
		{
			name: "compound assignment",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2 := b.local(x), b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(x1),
					b.do(&ir.AssignOp{ID: b.id(), Dest: x2, Src: b.op()}),
				), map[ir.UseID]bool{use(x1): false, use(x2): true}
			},
		},
		{
			name: "swap",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, y1, x2, y2, x3 := b.local(x), b.local(y), b.local(x), b.local(y), b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.let(y, b.op()),
					b.read(x1, y1),
					b.do(&ir.Swap{ID: b.id(), X: x2, Y: y2}),
					b.read(x3),
				), map[ir.UseID]bool{use(x1): false, use(y1): false, use(x3): true}
			},
		},
		{
			name: "alias",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, p1 := b.local(x), b.local(y)
				b.info.Aliases[y] = x

				return b.fn(nil,
					b.let(x, b.op()),
					b.let(y, b.op()),
					b.read(x1),
					b.read(p1),
				), map[ir.UseID]bool{use(x1): false}
			},
		},
		{
			name: "address taken",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2 := b.local(x), b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(x1),
					b.read(&ir.Ref{ID: b.id(), X: x2}),
				), map[ir.UseID]bool{use(x1): false}
			},
		},
		{
			name: "diverging",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2 := b.local(x), b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(x1),
					b.ifElse(b.op(), b.block(b.do(&ir.Fail{ID: b.id()})), nil),
					b.read(x2),
				), map[ir.UseID]bool{use(x1): false, use(x2): true}
			},
		},
		{
			name: "diverging only",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1 := b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(x1),
					b.ifElse(b.op(), b.block(b.do(&ir.Fail{ID: b.id()})), nil),
				), map[ir.UseID]bool{use(x1): true}
			},
		},
		{
			name: "return",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2, x3 := b.local(x), b.local(x), b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(x1),
					b.ifElse(b.op(), b.block(b.do(&ir.Return{ID: b.id(), Result: x2})), nil),
					b.read(x3),
				), map[ir.UseID]bool{use(x1): false, use(x2): true, use(x3): true}
			},
		},
		{
			name: "match",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2, x3 := b.local(x), b.local(x), b.local(x)

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(x1),
					b.do(&ir.Match{ID: b.id(), Scrutinee: b.op(), Arms: []*ir.Arm{
						{Body: b.block(b.read(x2))},
						{Body: b.block()},
						{Body: b.block(b.do(&ir.Assign{ID: b.id(), Dest: x3, Src: b.op()}))},
					}}),
				), map[ir.UseID]bool{use(x1): false, use(x2): true}
			},
		},
		{
			name: "arguments",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				byRef, byMove := b.ref(ir.Arg(x, ir.ModeRef)), b.ref(ir.Arg(y, ir.ModeMove))

				return b.fn([]ir.BindingID{x, y},
					b.read(byRef, byMove),
				), map[ir.UseID]bool{use(byMove): true}
			},
		},
		{
			name: "escaping closure captures",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2 := b.local(x), b.local(x)
				f := b.closure(ir.Local(x))
				b.with(f, b.read(b.upvar(x, f)))

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(x1),
					b.let(y, f),
					b.read(x2),
				), map[ir.UseID]bool{use(x1): false, ir.CaptureUse{Func: f.ID, Binding: x}: false, use(x2): true}
			},
		},
		{
			name: "escaping closure has own state",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2, z1, z2 := b.local(x), b.local(x), b.local(z), b.local(z)
				f := b.with(b.closure(), b.let(z, b.op()), b.read(z1), b.read(z2))

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(x1),
					b.let(y, f),
					b.read(x2),
				), map[ir.UseID]bool{use(x1): false, use(x2): true, use(z1): false, use(z2): true}
			},
		},
		{
			name: "inline closure",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1, x2 := b.local(x), b.local(x)
				f := b.inline()
				u1 := b.upvar(x, f)
				b.with(f, b.read(u1), b.do(&ir.Return{ID: b.id()}))

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(b.call(b.op(), []ir.Mode{ir.ModeCopy}, f)),
					b.read(x1),
					b.read(x2),
				), map[ir.UseID]bool{use(u1): false, use(x1): false, use(x2): true}
			},
		},
		{
			name: "inline closure arguments run last",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				x1 := b.local(x)
				f := b.inline()
				u1 := b.upvar(x, f)
				b.with(f, b.read(u1))

				return b.fn(nil,
					b.let(x, b.op()),
					b.read(b.call(b.op(), []ir.Mode{ir.ModeCopy, ir.ModeCopy}, f, b.op(x1))),
				), map[ir.UseID]bool{use(x1): false, use(u1): false}
			},
		},
		{
			name: "inline closure parameters",
			build: func(b *builder) (*ir.Func, map[ir.UseID]bool) {
				z1 := b.local(z)
				f := b.with(b.inline(z), b.read(z1))

				return b.fn(nil,
					b.read(b.call(b.op(), []ir.Mode{ir.ModeCopy}, f)),
				), map[ir.UseID]bool{use(z1): true}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newBuilder()
			f, want := tt.build(b)

			res := b.analyze(t, f)

			if diff := cmp.Diff(want, lastUses(res)); diff != "" {
				t.Errorf("LastUses() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSpills(t *testing.T) {
	t.Parallel()

	modes := []ir.Mode{ir.ModeCopy, ir.ModeMove, ir.ModeRef, ir.ModeVal, ir.ModeMutRef}

	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()

			b := newBuilder()
			x1, x2 := b.local(x), b.local(x)
			f := b.fn(nil,
				b.let(x, b.op()),
				b.read(x1),
				b.read(b.call(b.op(), []ir.Mode{mode}, x2)),
			)

			res := b.analyze(t, f)

			if got, want := res.Spilled(x), mode != ir.ModeMutRef; got != want {
				t.Errorf("Spilled() = %t, want %t", got, want)
			}

			want := map[ir.UseID]bool{use(x1): false}
			if mode != ir.ModeMutRef {
				want[use(x2)] = false // the argument itself is resolved after the call
			}

			if diff := cmp.Diff(want, lastUses(res)); diff != "" {
				t.Errorf("LastUses() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSpillAddressTaken(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	f := b.fn(nil,
		b.let(x, b.op()),
		b.let(y, b.op()),
		b.read(&ir.Ref{ID: b.id(), X: b.local(x)}),
		b.read(&ir.Ref{ID: b.id(), X: b.op(b.local(y))}),
	)

	res := b.analyze(t, f)

	if !res.Spilled(x) {
		t.Error("Expected address taken variable to be spilled")
	}

	if diff := cmp.Diff([]ir.BindingID{x}, slices.Sorted(res.Spills())); diff != "" {
		t.Errorf("Spills() mismatch (-want +got):\n%s", diff)
	}
}

func TestMonotonicity(t *testing.T) {
	t.Parallel()

	// The uses are reached through both loop visits, several arms and a diverging arm.
	// x1 is marked last by the diverging arm first and must end up as not last.
	// x2 is pending at the end of the first visit and read again by the second.
	b := newBuilder()
	x1, x2, x3 := b.local(x), b.local(x), b.local(x)
	f := b.fn(nil,
		b.let(x, b.op()),
		b.loop(
			b.read(x1),
			b.do(&ir.Match{ID: b.id(), Scrutinee: b.op(), Arms: []*ir.Arm{
				{Body: b.block(b.do(&ir.Fail{ID: b.id()}))},
				{Body: b.block(b.read(x2), b.do(&ir.Break{ID: b.id()}))},
				{Body: b.block(b.do(&ir.Return{ID: b.id()}))},
			}}),
		),
		b.read(x3),
	)

	res := b.analyze(t, f)

	want := map[ir.UseID]bool{use(x1): false, use(x2): false, use(x3): true}
	if diff := cmp.Diff(want, lastUses(res)); diff != "" {
		t.Errorf("LastUses() mismatch (-want +got):\n%s", diff)
	}
}

func TestReturnOutsideFunction(t *testing.T) {
	t.Parallel()

	unit := &ir.Unit{Globals: []ir.Stmt{&ir.ExprStmt{X: &ir.Return{ID: 7}}}}

	res, err := Analyze(unit, ir.NewInfo())
	if !errors.Is(err, ErrReturnOutsideFunction) {
		t.Fatalf("Analyze() error = %v, want %v", err, ErrReturnOutsideFunction)
	}

	var ie *InternalError
	if !errors.As(err, &ie) || ie.Node != 7 {
		t.Errorf("Analyze() error = %#v, want internal error at node 7", err)
	}

	if res != nil {
		t.Errorf("Analyze() result = %v, want nil", res)
	}
}

func TestGlobals(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	z1 := b.local(z)
	f := b.with(b.closure(), b.let(z, b.op()), b.read(z1), b.do(&ir.Return{ID: b.id()}))
	unit := &ir.Unit{Globals: []ir.Stmt{&ir.Let{ID: b.id(), Init: f}}}

	res, err := Analyze(unit, b.info)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	want := map[ir.UseID]bool{use(z1): true}
	if diff := cmp.Diff(want, lastUses(res)); diff != "" {
		t.Errorf("LastUses() mismatch (-want +got):\n%s", diff)
	}
}
