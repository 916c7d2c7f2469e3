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

// Expr is an expression node.
type Expr interface {
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	stmtNode()
}

// Unit is one compilation unit: top-level functions and statements outside of any function.
type Unit struct {
	Globals []Stmt
	Funcs   []*Func
}

type (
	// Path is a variable reference.
	Path struct {
		ID NodeID
	}

	// Ref takes the address of X.
	Ref struct {
		ID NodeID
		X  Expr
	}

	// Swap exchanges the values of X and Y in place.
	Swap struct {
		ID   NodeID
		X, Y Expr
	}

	// Assign stores Src into Dest. Src is nil when the value is produced elsewhere,
	// e.g. by a preceding multi-value expression.
	Assign struct {
		ID   NodeID
		Dest Expr
		Src  Expr
		Move bool // Src is moved, not copied
	}

	// AssignOp reads Dest, combines it with Src and stores the result into Dest.
	// Src is nil for increments and decrements.
	AssignOp struct {
		ID   NodeID
		Dest Expr
		Src  Expr
	}

	// Return leaves the innermost function. Result may be nil.
	Return struct {
		ID     NodeID
		Result Expr
	}

	// Fail evaluates Arg and aborts unconditionally. Arg may be nil.
	Fail struct {
		ID  NodeID
		Arg Expr
	}

	// Break leaves the innermost loop.
	Break struct {
		ID NodeID
	}

	// Continue starts the next iteration of the innermost loop.
	Continue struct {
		ID NodeID
	}

	// Loop repeats Cond, Body and Post. A nil Cond loops unconditionally.
	Loop struct {
		ID   NodeID
		Cond Expr
		Body *Block
		Post Stmt
	}

	// ForEach evaluates Coll once and runs Body for each element.
	ForEach struct {
		ID   NodeID
		Coll Expr
		Body *Block
	}

	// If runs Then when Cond holds, Else otherwise. Else may be nil.
	If struct {
		ID   NodeID
		Cond Expr
		Then *Block
		Else *Block
	}

	// Match evaluates Scrutinee and runs exactly one of Arms.
	Match struct {
		ID        NodeID
		Scrutinee Expr
		Arms      []*Arm
	}

	// Func is a function literal or a top-level function.
	Func struct {
		ID     NodeID
		Params []BindingID
		Body   *Block
	}

	// Call calls Fun with Args.
	Call struct {
		ID   NodeID
		Fun  Expr
		Args []Expr
	}

	// Op is any other expression. It evaluates Args from left to right.
	Op struct {
		ID   NodeID
		Args []Expr
	}
)

// Arm is one branch of a [Match]. Guard may be nil.
type Arm struct {
	Guard Expr
	Body  *Block
}

type (
	// Let declares Bindings, initialized by Init. Init may be nil.
	Let struct {
		ID       NodeID
		Bindings []BindingID
		Init     Expr
	}

	// ExprStmt evaluates X for its effects.
	ExprStmt struct {
		X Expr
	}

	// Block is a sequence of statements.
	Block struct {
		ID    NodeID
		Stmts []Stmt
	}
)

func (*Path) exprNode()     {}
func (*Ref) exprNode()      {}
func (*Swap) exprNode()     {}
func (*Assign) exprNode()   {}
func (*AssignOp) exprNode() {}
func (*Return) exprNode()   {}
func (*Fail) exprNode()     {}
func (*Break) exprNode()    {}
func (*Continue) exprNode() {}
func (*Loop) exprNode()     {}
func (*ForEach) exprNode()  {}
func (*If) exprNode()       {}
func (*Match) exprNode()    {}
func (*Func) exprNode()     {}
func (*Call) exprNode()     {}
func (*Op) exprNode()       {}

func (*Let) stmtNode()      {}
func (*ExprStmt) stmtNode() {}
func (*Block) stmtNode()    {}
