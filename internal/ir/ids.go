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

package ir

import "fmt"

// NodeID identifies a node of the tree.
type NodeID int32

// NoNode is the zero value for an absent node.
const NoNode NodeID = -1

// BindingID identifies the defining occurrence of a variable: a local, an argument or a captured variable.
type BindingID int32

// UseID identifies one occurrence whose last-use status is decided.
//
// A UseID is either a [DirectUse] or a [CaptureUse]. Both are comparable and can be used as map keys.
type UseID interface {
	fmt.Stringer
	useID()
}

// DirectUse is a read of a binding by a variable reference.
type DirectUse struct {
	Node NodeID // The [Path] expression
}

// CaptureUse is the act of capturing a binding into an escaping closure.
type CaptureUse struct {
	Func    NodeID    // The escaping [Func]
	Binding BindingID // The captured binding
}

func (DirectUse) useID()  {}
func (CaptureUse) useID() {}

func (u DirectUse) String() string { return fmt.Sprintf("use(%d)", u.Node) }

func (u CaptureUse) String() string { return fmt.Sprintf("capture(%d, %d)", u.Func, u.Binding) }
