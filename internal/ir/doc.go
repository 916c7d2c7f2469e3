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

// Package ir defines the syntax tree the last-use analysis walks, together with
// the information external passes supply about it.
//
// The tree is deliberately small: it distinguishes only the constructs whose
// control flow or ownership semantics matter to the analysis. Everything else
// is an [Op] that evaluates its operands left to right.
//
// Identifiers are opaque. [NodeID] values are unique per tree, [BindingID]
// values per unit. Producers (the Go front end, tests) choose them freely.
package ir
