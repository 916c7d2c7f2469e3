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

import (
	"errors"
	"fmt"

	"fillmore-labs.com/lastuse/internal/ir"
)

var (
	// ErrReturnOutsideFunction indicates a return statement outside of any function body.
	ErrReturnOutsideFunction = errors.New("return outside of function body")

	// ErrUnknownNode indicates a node type the walker does not handle.
	ErrUnknownNode = errors.New("unknown node type")
)

// InternalError is an invariant violation in the analyzed tree.
// The results of an analysis that failed with an InternalError are incomplete.
type InternalError struct {
	Node ir.NodeID
	Err  error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error at node %d: %v", e.Node, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// abort stops the walk. It is recovered in [Analyze].
func abort(node ir.NodeID, err error) {
	panic(&InternalError{Node: node, Err: err})
}
