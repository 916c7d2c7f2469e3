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

package noreturn

import "go/types"

// FuncName identifies a function or method independent of its instantiation.
type FuncName struct {
	Path     string // Import path of the package declaring the function or receiver type
	Receiver string // Name of the receiver type, empty for functions
	Name     string
}

// FuncNameOf returns the name of fun. Methods on pointers and aliases are
// attributed to the named base type.
func FuncNameOf(fun *types.Func) FuncName {
	fun = fun.Origin()

	recv := fun.Signature().Recv()
	if recv == nil {
		var path string
		if pkg := fun.Pkg(); pkg != nil {
			path = pkg.Path()
		}

		return FuncName{Path: path, Name: fun.Name()}
	}

	typ := types.Unalias(recv.Type())
	if ptr, ok := typ.(*types.Pointer); ok {
		typ = types.Unalias(ptr.Elem())
	}

	switch typ := typ.(type) {
	case *types.Named:
		obj := typ.Obj()

		var path string
		if pkg := obj.Pkg(); pkg != nil {
			path = pkg.Path()
		}

		return FuncName{Path: path, Receiver: obj.Name(), Name: fun.Name()}

	case *types.Interface:
		return FuncName{Receiver: "interface", Name: fun.Name()}

	default:
		return FuncName{Receiver: "<invalid>", Name: fun.Name()}
	}
}

func (f FuncName) String() string {
	switch {
	case f.Receiver == "" && f.Path == "":
		return f.Name

	case f.Receiver == "":
		return f.Path + "." + f.Name

	case f.Path == "":
		return "(" + f.Receiver + ")." + f.Name

	default:
		return "(" + f.Path + "." + f.Receiver + ")." + f.Name
	}
}
