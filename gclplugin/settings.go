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

package gclplugin

import "fillmore-labs.com/lastuse/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Last enables last-use diagnostics.
	Last *bool `json:"last,omitzero"`
	// Spill enables diagnostics for variables needing an addressable slot.
	Spill *bool `json:"spill,omitzero"`
	// Capture enables diagnostics for function literals taking variables with their last use.
	Capture *bool `json:"capture,omitzero"`
}

// Options converts [Settings] into a list of [analyzer.Option] for the lastuse analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []analyzer.Option {
	var opts []analyzer.Option

	opts = appendOption(opts, s.Last, analyzer.WithLastUse)
	opts = appendOption(opts, s.Spill, analyzer.WithSpill)
	opts = appendOption(opts, s.Capture, analyzer.WithCapture)

	return opts
}

// appendOption appends a non-nil setting to an [analyzer.Option] list.
func appendOption[T any](opts []analyzer.Option, value *T, constructor func(T) analyzer.Option) []analyzer.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
