// Copyright 2025 Oliver Eikemeier. All Rights Reserved.
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

package a

func sum(a, b int) int {
	c := a + b // want "last use of 'a'" "last use of 'b'"
	return c   // want "last use of 'c'"
}

func twice(s string) int {
	n := len(s)
	return n + len(s) // want "last use of 'n'" "last use of 's'"
}

func branch(ok bool, x int) int {
	if ok { // want "last use of 'ok'"
		return x // want "last use of 'x'"
	}

	return -x // want "last use of 'x'"
}

func loop(xs []int) int {
	total := 0
	for _, x := range xs { // want "last use of 'xs'"
		total += x // want "last use of 'total'" "last use of 'x'"
	}

	return total // want "last use of 'total'"
}

func mustPositive(x int) int {
	if x < 0 {
		panic("negative")
	}

	return x // want "last use of 'x'"
}

type point struct{ x, y int }

func (p point) norm() int {
	return p.x*p.x + p.y*p.y // want "last use of 'p'"
}

func counter() func() int {
	n := 0
	return func() int {
		n++
		return n
	}
}

func pointer() int {
	v := 1
	p := &v
	*p = 2
	return v
}

func jump(x int) int {
loop:
	if x > 0 {
		x--
		goto loop
	}

	return x
}

func suppressed(x int) int {
	return x //nolint:lastuse
}

//nolint:lastuse
func skipped(x int) int {
	return x
}

var double = func(x int) int {
	return x + x // want "last use of 'x'"
}

func retained() []func() string {
	var fs []func() string
	x := "a"
	fs = append(fs, func() string { return x }) // want "last use of 'fs'"
	x = "b"
	y := x
	println(y) // want "last use of 'y'"
	return fs  // want "last use of 'fs'"
}

func bound() (func() string, string) {
	x := "a"
	f := func() string { return x }
	y := x
	return f, y // want "last use of 'f'" "last use of 'y'"
}

func deferredRead(x string) (s string) {
	defer func() { s = x }()
	y := x
	return y // want "last use of 'y'"
}
