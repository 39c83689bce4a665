// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ir

import (
	"github.com/consensys/go-vams/pkg/vams/deps"
	"github.com/consensys/go-vams/pkg/vams/topology"
)

// Symbol is a named entity which an expression can refer to, such as a
// parameter or a variable.
type Symbol interface {
	Name() string
}

// Node is a resolved IR node.  The set of node kinds is closed, and every
// operation over nodes is implemented as a type switch.  Each node owns its
// operands, and carries the dependency summary of the subexpression it roots.
type Node interface {
	// Summary returns the dependency summary of this node.
	Summary() *deps.Summary
	// Children returns the operands owned by this node.
	Children() []Node
	node()
}

// Literal is a compile-time known value.  A literal is both a raw token and a
// resolved node.
type Literal struct {
	Value Value
	// Parameter from which this value was obtained (or nil).
	Origin  Symbol
	summary *deps.Summary
}

// ParamRef is a symbolic reference to a parameter with no known value.
type ParamRef struct {
	Param   Symbol
	summary *deps.Summary
}

// VarRef reads a variable.  The variable itself is not owned by this node,
// and the summary is a snapshot of the variable's summary when resolved.
type VarRef struct {
	Var     Symbol
	summary *deps.Summary
}

// VarDecl is the root of a resolved variable initialiser.
type VarDecl struct {
	Var     Symbol
	Init    Node
	summary *deps.Summary
}

// BranchAccess reads a quantity of a branch (e.g. V(p,n)).
type BranchAccess struct {
	// Name of the access function used (e.g. "V").
	Function string
	Ref      topology.BranchRef
	Access   topology.Access
	summary  *deps.Summary
}

// NodeRef refers to an internal node.
type NodeRef struct {
	Node    *topology.Node
	summary *deps.Summary
}

// PortRef refers to a port of the enclosing module.
type PortRef struct {
	Node    *topology.Node
	summary *deps.Summary
}

// Unary applies a unary operator to an operand.
type Unary struct {
	Op      Op
	Operand Node
	summary *deps.Summary
}

// Binary applies a binary operator to two operands.
type Binary struct {
	Op      Op
	Lhs     Node
	Rhs     Node
	summary *deps.Summary
}

// Ternary is a conditional expression whose condition is not known.
type Ternary struct {
	Cond    Node
	Then    Node
	Else    Node
	summary *deps.Summary
}

// Call applies a (built-in) function to its arguments.
type Call struct {
	Name string
	Args *Args
	// Internal branch allocated for a filter function (or nil).
	Filter  *topology.Branch
	summary *deps.Summary
}

// Args is a resolved argument list.
type Args struct {
	Items   []Node
	summary *deps.Summary
}

// Marker delimits the start of an argument list.  A marker is both a raw
// token and a (transient) resolved node.
type Marker struct{}

// Deferred is a placeholder for an identifier which does not (yet) name
// anything, but which may later be declared as a branch.
type Deferred struct {
	Name string
}

// NewLiteral constructs a literal, whose summary is constant and has an offset
// if the value may be nonzero.
func NewLiteral(value Value) *Literal {
	return &Literal{value, nil, deps.Constant(!IsZero(value))}
}

// NewParamLiteral constructs a literal holding the known value of a given
// parameter.
func NewParamLiteral(value Value, param Symbol) *Literal {
	return &Literal{value, param, deps.Constant(!IsZero(value))}
}

// NewParamRef constructs a parameter reference.  Parameters are constant but
// their value is unknown, hence they have an offset.
func NewParamRef(param Symbol) *ParamRef {
	return &ParamRef{param, deps.Constant(true)}
}

// NewVarRef constructs a variable reference with a given summary snapshot.
func NewVarRef(variable Symbol, summary *deps.Summary) *VarRef {
	return &VarRef{variable, summary}
}

// NewVarDecl constructs the root of a variable initialiser.
func NewVarDecl(variable Symbol, init Node) *VarDecl {
	return &VarDecl{variable, init, init.Summary()}
}

// NewBranchAccess constructs an access of a given branch, whose summary has a
// single linear edge to the accessed probe.
func NewBranchAccess(function string, ref topology.BranchRef, access topology.Access) *BranchAccess {
	var probe = ref.Branch.Probe(access)
	//
	return &BranchAccess{function, ref, access, deps.OfProbe(probe)}
}

// NewNodeRef constructs a node reference.
func NewNodeRef(node *topology.Node) *NodeRef {
	return &NodeRef{node, deps.Constant(false)}
}

// NewPortRef constructs a port reference.
func NewPortRef(node *topology.Node) *PortRef {
	return &PortRef{node, deps.Constant(false)}
}

// NewUnary constructs a unary operation with a given summary.
func NewUnary(op Op, operand Node, summary *deps.Summary) *Unary {
	return &Unary{op, operand, summary}
}

// NewBinary constructs a binary operation with a given summary.
func NewBinary(op Op, lhs Node, rhs Node, summary *deps.Summary) *Binary {
	return &Binary{op, lhs, rhs, summary}
}

// NewTernary constructs a conditional with a given summary.
func NewTernary(cond Node, then Node, els Node, summary *deps.Summary) *Ternary {
	return &Ternary{cond, then, els, summary}
}

// NewCall constructs a function call with a given summary.
func NewCall(name string, args *Args, filter *topology.Branch, summary *deps.Summary) *Call {
	return &Call{name, args, filter, summary}
}

// NewArgs constructs an argument list, whose summary combines those of its
// items.
func NewArgs(items ...Node) *Args {
	var summaries = make([]*deps.Summary, len(items))
	//
	for i, item := range items {
		summaries[i] = item.Summary()
	}
	//
	return &Args{items, deps.Combine(summaries...)}
}

// Summary implementations.

func (n *Literal) Summary() *deps.Summary      { return n.summary }
func (n *ParamRef) Summary() *deps.Summary     { return n.summary }
func (n *VarRef) Summary() *deps.Summary       { return n.summary }
func (n *VarDecl) Summary() *deps.Summary      { return n.summary }
func (n *BranchAccess) Summary() *deps.Summary { return n.summary }
func (n *NodeRef) Summary() *deps.Summary      { return n.summary }
func (n *PortRef) Summary() *deps.Summary      { return n.summary }
func (n *Unary) Summary() *deps.Summary        { return n.summary }
func (n *Binary) Summary() *deps.Summary       { return n.summary }
func (n *Ternary) Summary() *deps.Summary      { return n.summary }
func (n *Call) Summary() *deps.Summary         { return n.summary }
func (n *Args) Summary() *deps.Summary         { return n.summary }
func (n *Marker) Summary() *deps.Summary       { return deps.Constant(false) }
func (n *Deferred) Summary() *deps.Summary     { return deps.Constant(false) }

// Children implementations.

func (n *Literal) Children() []Node      { return nil }
func (n *ParamRef) Children() []Node     { return nil }
func (n *VarRef) Children() []Node       { return nil }
func (n *VarDecl) Children() []Node      { return []Node{n.Init} }
func (n *BranchAccess) Children() []Node { return nil }
func (n *NodeRef) Children() []Node      { return nil }
func (n *PortRef) Children() []Node      { return nil }
func (n *Unary) Children() []Node        { return []Node{n.Operand} }
func (n *Binary) Children() []Node       { return []Node{n.Lhs, n.Rhs} }
func (n *Ternary) Children() []Node      { return []Node{n.Cond, n.Then, n.Else} }
func (n *Call) Children() []Node         { return []Node{n.Args} }
func (n *Args) Children() []Node         { return n.Items }
func (n *Marker) Children() []Node       { return nil }
func (n *Deferred) Children() []Node     { return nil }

func (*Literal) node()      {}
func (*ParamRef) node()     {}
func (*VarRef) node()       {}
func (*VarDecl) node()      {}
func (*BranchAccess) node() {}
func (*NodeRef) node()      {}
func (*PortRef) node()      {}
func (*Unary) node()        {}
func (*Binary) node()       {}
func (*Ternary) node()      {}
func (*Call) node()         {}
func (*Args) node()         {}
func (*Marker) node()       {}
func (*Deferred) node()     {}
