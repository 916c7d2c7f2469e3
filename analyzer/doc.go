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

// Package analyzer implements the lastuse static analysis pass.
//
// # Overview
//
// lastuse finds, for every read of a local variable, whether it is the last
// read of the value the variable holds at that point. A value read for the
// last time may be moved out of the variable instead of being copied.
//
// # Example
//
//	func greet(name string) string {
//	    msg := "hello " + name  // last use of 'name'
//	    if len(msg) > 80 {
//	        return msg[:80]     // last use of 'msg'
//	    }
//	    return msg              // last use of 'msg'
//	}
//
// The analysis is conservative. A read inside a loop is last only if the next
// iteration doesn't read the variable again. Variables whose address is taken
// or that are shared with a goroutine or deferred function never have a last
// use. Arguments of ordinary calls keep their value.
//
// # Reports
//
//   - -last (default): the last use of a variable (lu:last)
//   - -spill: variables needing an addressable slot (lu:spill)
//   - -capture: function literals taking a variable with its last use (lu:capt)
//
// Functions containing goto statements are not analyzed.
// A //nolint:lastuse comment suppresses diagnostics on its line, or for the
// whole function or file when placed in its doc comment.
package analyzer
