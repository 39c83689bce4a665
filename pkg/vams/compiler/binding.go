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
package compiler

import (
	"github.com/consensys/go-vams/pkg/util"
	"github.com/consensys/go-vams/pkg/vams/deps"
	"github.com/consensys/go-vams/pkg/vams/ir"
	"github.com/consensys/go-vams/pkg/vams/topology"
)

// Binding is something which a name can be bound to within a scope.
type Binding interface {
	// Name returns the name being bound.
	Name() string
	binding()
}

// Type identifies the type of a parameter or variable.
type Type uint8

// REAL identifies real-valued parameters and variables.
const REAL Type = 0

// INTEGER identifies integer-valued parameters and variables.
const INTEGER Type = 1

// STRING identifies string-valued parameters.
const STRING Type = 2

func (t Type) String() string {
	switch t {
	case REAL:
		return "real"
	case INTEGER:
		return "integer"
	default:
		return "string"
	}
}

// ============================================================================
// Parameters
// ============================================================================

// Parameter is a module parameter.  A parameter has a hard value when it is
// known at compile time (i.e. a local parameter whose default folds to a
// literal, or any parameter overridden by the configuration).  Otherwise, it
// is resolved as a symbolic reference.
type Parameter struct {
	name  string
	typ   Type
	local bool
	// Resolved default value.
	def *ir.Expression
	// Compile-time value (if known).
	value util.Option[ir.Value]
	// Whether the parameter was given when instantiated (if known).
	given util.Option[bool]
}

// NewParameter constructs a new parameter with no known value.
func NewParameter(name string, typ Type, local bool) *Parameter {
	var given = util.None[bool]()
	// Local parameters can never be given
	if local {
		given = util.Some(false)
	}
	//
	return &Parameter{name, typ, local, nil, util.None[ir.Value](), given}
}

// Name returns the name of this parameter.
func (p *Parameter) Name() string {
	return p.name
}

// Type returns the declared type of this parameter.
func (p *Parameter) Type() Type {
	return p.typ
}

// IsLocal checks whether this is a local parameter.
func (p *Parameter) IsLocal() bool {
	return p.local
}

// Default returns the resolved default value of this parameter.
func (p *Parameter) Default() *ir.Expression {
	return p.def
}

// Value returns the compile-time value of this parameter (if known).
func (p *Parameter) Value() util.Option[ir.Value] {
	return p.value
}

// Given returns whether this parameter was given on instantiation (if known).
func (p *Parameter) Given() util.Option[bool] {
	return p.given
}

// Override gives this parameter a hard value, as though it was given on
// instantiation.
func (p *Parameter) Override(value ir.Value) {
	p.value = util.Some(value)
	p.given = util.Some(true)
}

// ============================================================================
// Variables
// ============================================================================

// Variable is a real or integer variable.  The summary of a variable
// over-approximates the summaries of every value assigned to it, and only
// ever grows.
type Variable struct {
	name    string
	typ     Type
	summary *deps.Summary
	// Markers pushed through this variable so far.
	rdeps *topology.RDeps
}

// NewVariable constructs a new variable.  Variables are initially zero.
func NewVariable(name string, typ Type) *Variable {
	return &Variable{name, typ, deps.Constant(false), topology.NewRDeps()}
}

// Name returns the name of this variable.
func (p *Variable) Name() string {
	return p.name
}

// Type returns the declared type of this variable.
func (p *Variable) Type() Type {
	return p.typ
}

// Summary returns the current summary of this variable.
func (p *Variable) Summary() *deps.Summary {
	return p.summary
}

// RDeps returns the markers pushed through this variable.
func (p *Variable) RDeps() *topology.RDeps {
	return p.rdeps
}

// Snapshot returns a copy of the current summary of this variable, recording
// this variable as a consumer.
func (p *Variable) Snapshot() *deps.Summary {
	var summary = p.summary.Clone()
	//
	summary.AddConsumer(p)
	//
	return summary
}

// Assign merges the summary of an assigned value into this variable,
// returning true if the variable's summary changed.
func (p *Variable) Assign(summary *deps.Summary) bool {
	return p.summary.Absorb(summary)
}

// PropagateRDeps pushes markers through this variable onto everything it was
// assigned from.  Markers already seen are not pushed again, which ensures
// termination when variables are (transitively) assigned from themselves.
func (p *Variable) PropagateRDeps(markers *topology.RDeps) {
	if p.rdeps.InsertAll(markers) {
		p.summary.PropagateRDeps(markers)
	}
}

func (p *Variable) String() string {
	return p.name
}

// ============================================================================
// Nodes, ports & branches
// ============================================================================

// Port is a node of the circuit which is visible externally.
type Port struct {
	node *topology.Node
}

// Node returns the circuit node of this port.
func (p *Port) Node() *topology.Node {
	return p.node
}

// Name returns the name of this port.
func (p *Port) Name() string {
	return p.node.Name()
}

// Net is an internal node of the circuit.
type Net struct {
	node *topology.Node
}

// Node returns the circuit node.
func (p *Net) Node() *topology.Node {
	return p.node
}

// Name returns the name of this node.
func (p *Net) Name() string {
	return p.node.Name()
}

// NamedBranch binds a name to a branch declaration.
type NamedBranch struct {
	branch *topology.Branch
}

// Branch returns the declared branch.
func (p *NamedBranch) Branch() *topology.Branch {
	return p.branch
}

// Name returns the name of this branch.
func (p *NamedBranch) Name() string {
	return p.branch.Name()
}

func (*Parameter) binding()   {}
func (*Variable) binding()    {}
func (*Port) binding()        {}
func (*Net) binding()         {}
func (*NamedBranch) binding() {}
