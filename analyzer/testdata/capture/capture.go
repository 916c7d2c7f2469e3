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

package capture

import "fmt"

func deferred(msg string) func() {
	return func() { // want "function literal takes 'msg' with its last use"
		fmt.Println(msg)
	}
}

func both(a, b int) func() int {
	return func() int { // want "function literal takes 'a' and 'b' with their last uses"
		return a + b
	}
}

func spawn(ch chan int, v int) {
	go func() { ch <- v }() // want "function literal takes 'ch' and 'v' with their last uses"
}

func reused(s string) (func() string, string) {
	f := func() string { return s }
	return f, s
}

func logged(msg string) string {
	defer func() { fmt.Println(msg) }()
	return msg
}
