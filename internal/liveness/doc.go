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

// Package liveness finds the last read of every value stored in a binding owned by
// the analyzed function: locals, arguments passed by copy or move and variables
// captured by inline closures.
//
// # Overview
//
// The analysis walks the syntax tree directly instead of building a control-flow
// graph. It keeps a live set of pending uses per binding. A pending use is resolved
// as not last when another read of the same binding follows, and as last when the
// binding is overwritten or the function is left.
//
// Branches start from the same live set and are joined by union, so a use stays
// pending as long as at least one path may still read the binding. Loop and
// function bodies are visited twice to account for back edges; early exits
// (return, break) collect the live set at the exit point and are joined after
// the body.
//
// # Monotonicity
//
// A use once marked not last is never marked last again. Consumers may treat a
// missing entry like a not-last one.
//
// # Spilling
//
// Independently of last uses, bindings that need an addressable slot are
// collected in a spill set: bindings passed to calls in a mode needing an
// address and bindings whose address is taken.
package liveness
