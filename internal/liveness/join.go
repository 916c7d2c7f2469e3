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

package liveness

import "slices"

// join merges the live sets of several branches.
//
// A binding pending in any branch stays pending, with the union of its uses over
// all branches. A binding missing from a branch is not penalized.
func join(branches ...liveSet) liveSet {
	var joined liveSet

	for _, branch := range branches {
		for _, e := range branch {
			i := joined.find(e.binding)
			if i < 0 {
				joined = append(joined, entry{binding: e.binding, uses: slices.Clone(e.uses)})

				continue
			}

			for _, use := range e.uses {
				if !slices.Contains(joined[i].uses, use) {
					joined[i].uses = append(joined[i].uses, use)
				}
			}
		}
	}

	return joined
}
