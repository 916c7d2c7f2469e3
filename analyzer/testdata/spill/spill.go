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

package spill

import "fmt"

func show(x int) { // want "variable 'x' needs an addressable slot"
	fmt.Println(x)
}

func local() int {
	y := 1 // want "variable 'y' needs an addressable slot"
	return y
}

func counter() func() int {
	n := 0
	return func() int {
		n++
		return n
	}
}
