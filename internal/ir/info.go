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

// Mode is the passing mode of an argument.
type Mode uint8

//go:generate go tool stringer -type Mode -linecomment
const (
	// ModeCopy passes a copy of the value; the callee owns the copy.
	ModeCopy Mode = iota // copy

	// ModeMove passes ownership of the value to the callee.
	ModeMove // move

	// ModeRef passes an immutable reference.
	ModeRef // ref

	// ModeVal passes the value without transferring ownership.
	ModeVal // val

	// ModeMutRef passes a mutable reference the callee writes through.
	ModeMutRef // mutref
)

// Owned reports whether a callee receiving an argument in this mode owns it.
func (m Mode) Owned() bool {
	return m == ModeCopy || m == ModeMove
}

// FuncKind is the calling convention of a function literal.
type FuncKind uint8

//go:generate go tool stringer -type FuncKind -linecomment
const (
	// FuncEscaping is an independently callable closure. It is an ownership boundary.
	FuncEscaping FuncKind = iota // escaping

	// FuncInline is a block that shares the control flow of its caller.
	FuncInline // inline
)

// DefKind classifies the definition a variable reference resolves to.
type DefKind uint8

const (
	// DefOther is anything not owned by the analyzed function: globals, fields, functions, constants.
	DefOther DefKind = iota

	// DefLocal is a local variable.
	DefLocal

	// DefArg is a function argument, passed in [Def.Mode].
	DefArg

	// DefUpvar is a variable captured from an enclosing function by [Def.Closure].
	DefUpvar
)

// Def is the resolved definition of a variable reference.
type Def struct {
	Kind    DefKind
	Binding BindingID

	// Mode is the passing mode of an argument.
	Mode Mode

	// Closure is the function literal capturing an upvar.
	Closure NodeID

	// Outer is the definition of an upvar in the enclosing function.
	Outer *Def
}

// Local returns the definition of a local variable.
func Local(b BindingID) Def { return Def{Kind: DefLocal, Binding: b} }

// Arg returns the definition of an argument passed in mode m.
func Arg(b BindingID, m Mode) Def { return Def{Kind: DefArg, Binding: b, Mode: m} }

// Upvar returns the definition of outer as captured by closure fn.
func Upvar(outer Def, fn NodeID) Def {
	return Def{Kind: DefUpvar, Binding: outer.Binding, Closure: fn, Outer: &outer}
}

// Info holds the results of the passes preceding the last-use analysis.
//
// Only maps needed by the analysis must be non-nil. Missing entries are
// treated conservatively: an unresolved reference is not owned, an argument
// without mode is passed by copy and a function literal without kind escapes.
type Info struct {
	// Uses maps [Path] nodes to the definition they resolve to.
	Uses map[NodeID]Def

	// Aliases maps reference-typed bindings to the root binding they alias.
	Aliases map[BindingID]BindingID

	// FreeVars maps escaping [Func] nodes to the definitions they capture.
	FreeVars map[NodeID][]Def

	// ArgModes maps [Call] nodes to the passing mode of each argument.
	ArgModes map[NodeID][]Mode

	// FuncKinds maps [Func] nodes to their calling convention.
	FuncKinds map[NodeID]FuncKind
}

// NewInfo returns an [Info] with all maps initialized.
func NewInfo() *Info {
	return &Info{
		Uses:      make(map[NodeID]Def),
		Aliases:   make(map[BindingID]BindingID),
		FreeVars:  make(map[NodeID][]Def),
		ArgModes:  make(map[NodeID][]Mode),
		FuncKinds: make(map[NodeID]FuncKind),
	}
}

// ArgMode returns the passing mode of argument i of call.
func (i *Info) ArgMode(call NodeID, arg int) Mode {
	modes := i.ArgModes[call]
	if arg >= len(modes) {
		return ModeCopy
	}

	return modes[arg]
}

// FuncKind returns the calling convention of the function literal fn.
func (i *Info) FuncKind(fn NodeID) FuncKind {
	return i.FuncKinds[fn]
}
