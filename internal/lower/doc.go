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

// Package lower translates type-checked Go functions into the tree the last-use analysis walks.
//
// Each variable gets a binding, each variable reference a [ir.Path] node. Control
// flow maps onto loops, conditionals and matches; all other expressions become
// operators evaluating their operands from left to right.
//
// Go semantics the analysis cannot express are approximated conservatively:
// variables referenced from escaping function literals or whose address is
// taken alias themselves, so none of their direct reads is a last use. Function
// literals passed as arguments are escaping, since the callee may retain them.
// Functions containing goto statements are rejected with [ErrUnsupported].
package lower
