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

package config

// ReportFlags selects the diagnostics to emit.
type ReportFlags uint8

const (
	// ReportLast reports every identifier that is the last use of its variable.
	ReportLast ReportFlags = 1 << iota

	// ReportSpill reports variables that need an addressable slot.
	ReportSpill

	// ReportCapture reports function literals that take a variable with its last use.
	ReportCapture
)

// Reports is the set of enabled diagnostics.
type Reports = BitMask[ReportFlags]

// DefaultReports returns the diagnostics enabled by default.
func DefaultReports() Reports {
	return NewBitMask(ReportLast)
}

// BehaviorFlags represents configuration options for the analyzer.
type BehaviorFlags uint8

const (
	// IncludeGenerated specifies whether to include analysis of generated files.
	IncludeGenerated BehaviorFlags = 1 << iota
)

// Behavior is the set of enabled options.
type Behavior = BitMask[BehaviorFlags]

// DefaultBehavior returns the options enabled by default.
func DefaultBehavior() Behavior {
	return Behavior{}
}
