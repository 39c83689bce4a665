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
	"github.com/consensys/go-vams/pkg/vams/ir"
	"github.com/consensys/go-vams/pkg/vams/topology"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Module is a device being elaborated.  Declarations are made in source order,
// and analog blocks are resolved as soon as they are complete.  An analog
// block which accesses a branch declared later on is retried after every
// subsequent branch declaration.  Once all declarations have been made, Finish
// runs the dataflow to a fixpoint and propagates reverse dependencies.
type Module struct {
	name     string
	circuit  *topology.Circuit
	scope    *Scope
	resolver *Resolver
	// Root block, which holds each analog block in order.
	analog *Block
	// Analog blocks awaiting a branch declaration.
	pending []deferral
	// Parameters in order of declaration.
	params []*Parameter
	// Ports in order of declaration.
	ports []*Port
	// Markers of all contributions.
	markers *topology.RDeps
	// Accumulated errors.
	errs  error
	stats *util.PerfStats
}

type deferral struct {
	block *Block
	err   error
}

// NewModule constructs an empty module with a given configuration.
func NewModule(name string, config Config) *Module {
	var (
		circuit = topology.NewCircuit()
		scope   = NewScope(nil)
		m       = &Module{name: name, circuit: circuit, scope: scope, stats: util.NewPerfStats()}
	)
	//
	m.resolver = NewResolver(circuit, config)
	m.analog = NewBlock(scope)
	m.markers = topology.NewRDeps()
	//
	if err := config.Validate(); err != nil {
		m.errs = err
	}
	//
	return m
}

// Name returns the name of this module.
func (m *Module) Name() string {
	return m.name
}

// Circuit returns the circuit topology of this module.
func (m *Module) Circuit() *topology.Circuit {
	return m.circuit
}

// Scope returns the module-level scope.
func (m *Module) Scope() *Scope {
	return m.scope
}

// Analog returns the root block, which contains every analog block.
func (m *Module) Analog() *Block {
	return m.analog
}

// Parameters returns the parameters of this module in declaration order.
func (m *Module) Parameters() []*Parameter {
	return m.params
}

// Ports returns the ports of this module in declaration order.
func (m *Module) Ports() []*Port {
	return m.ports
}

// Markers returns the markers of all contributions, as determined by Finish.
func (m *Module) Markers() *topology.RDeps {
	return m.markers
}

// DeclarePort declares a port of this module.
func (m *Module) DeclarePort(name string) error {
	node, ok := m.circuit.NewNode(name)
	port := &Port{node}
	//
	if !ok || !m.scope.Define(port) {
		return newError(ALREADY_DECLARED, name, "port already declared")
	}
	//
	m.ports = append(m.ports, port)
	//
	return nil
}

// DeclareNode declares a node of this module.  Declaring the discipline of a
// port (e.g. "electrical p") does not create a new node.
func (m *Module) DeclareNode(name string) error {
	if _, ok := m.scope.Lookup(name).(*Port); ok {
		return nil
	}
	//
	node, ok := m.circuit.NewNode(name)
	//
	if !ok || !m.scope.Define(&Net{node}) {
		return newError(ALREADY_DECLARED, name, "node already declared")
	}
	//
	return nil
}

// DeclareParameter declares a parameter with a given default value.  The
// default can refer to previously declared parameters.
func (m *Module) DeclareParameter(name string, typ Type, def *ir.Raw, local bool) error {
	var param = NewParameter(name, typ, local)
	//
	if !m.scope.Define(param) {
		return newError(ALREADY_DECLARED, name, "parameter already declared")
	}
	//
	m.params = append(m.params, param)
	//
	expr, err := m.resolver.Resolve(def, m.scope)
	if err != nil {
		return errors.Wrapf(err, "parameter %s", name)
	} else if expr.Summary().HasDeps() {
		ir.Release(expr.Root())
		return newError(TYPE_MISMATCH, name, "parameter depends on circuit quantities")
	}
	//
	param.def = expr
	//
	if value, ok, err := m.resolver.config.Override(name); err != nil {
		return err
	} else if ok {
		param.Override(value)
	} else if lit, ok := expr.Root().(*ir.Literal); ok && local {
		param.value = util.Some(lit.Value)
	}
	//
	log.Debugf("declared parameter %s (value %s, given %s)", name, param.value.String(), param.given.String())
	//
	return nil
}

// DeclareVariable declares a module-level variable.
func (m *Module) DeclareVariable(name string, typ Type) error {
	if !m.scope.Define(NewVariable(name, typ)) {
		return newError(ALREADY_DECLARED, name, "variable already declared")
	}
	//
	return nil
}

// DeclareBranch declares a named branch between two nodes, where an empty
// negative node indicates ground.  Any analog blocks awaiting a branch
// declaration are then retried.
func (m *Module) DeclareBranch(name string, p string, n string) error {
	pnode, err := m.node(p)
	if err != nil {
		return err
	}
	//
	var nnode *topology.Node
	//
	if n != "" {
		if nnode, err = m.node(n); err != nil {
			return err
		}
	}
	//
	ref, err := m.circuit.NewBranch(pnode, nnode)
	if err != nil {
		return newError(TYPE_MISMATCH, name, "%s", err.Error())
	}
	//
	branch, ok := m.circuit.NewNamedBranch(ref, name)
	if !ok || !m.scope.Define(&NamedBranch{branch}) {
		return newError(ALREADY_DECLARED, name, "branch already declared")
	}
	//
	m.retry()
	//
	return nil
}

func (m *Module) node(name string) (*topology.Node, error) {
	switch b := m.scope.Lookup(name).(type) {
	case *Port:
		return b.node, nil
	case *Net:
		return b.node, nil
	case nil:
		return nil, newError(UNRESOLVED_SYMBOL, name, "node not declared")
	default:
		return nil, newError(TYPE_MISMATCH, name, "not a node")
	}
}

// NewAnalog constructs a new (empty) analog block.  Statements should be
// added to this block before calling Settle.
func (m *Module) NewAnalog() *Block {
	return m.analog.Begin()
}

// Settle resolves an analog block once all its statements have been added.
// If the block accesses a branch which is not yet declared, it is retried
// after later branch declarations.  Any other error is returned to the caller.
func (m *Module) Settle(block *Block) error {
	_, err := block.Update(m.resolver)
	//
	if IsDeferred(err) {
		log.Debugf("deferring analog block (%s)", err.Error())
		m.pending = append(m.pending, deferral{block, err})
		//
		return nil
	}
	//
	return err
}

// retry resolution of any deferred analog blocks.
func (m *Module) retry() {
	for i := range m.pending {
		_, err := m.pending[i].block.Update(m.resolver)
		//
		if err != nil && !IsDeferred(err) {
			m.fail(err)
		}
		//
		m.pending[i].err = err
	}
	//
	m.pending = util.RemoveMatching(m.pending, func(d deferral) bool { return d.err == nil || !IsDeferred(d.err) })
}

// Finish elaboration of this module by running the dataflow to a fixpoint and
// propagating reverse dependencies from contributions.  Any errors arising
// whilst retrying deferred analog blocks are returned together.  Errors
// returned from declarations (or from Settle) are left to the caller.
func (m *Module) Finish() error {
	for _, d := range m.pending {
		e, _ := errors.Cause(d.err).(*Error)
		m.fail(errors.Wrap(newError(UNRESOLVED_SYMBOL, e.Name, "branch never declared"), m.name))
	}
	//
	m.pending = nil
	//
	if m.errs != nil {
		return m.errs
	}
	//
	n, err := Fixpoint(m.analog, m.resolver)
	if err != nil {
		return m.fail(err)
	}
	//
	m.markers = PropagateRDeps(m.analog)
	//
	log.Debugf("module %s stabilised after %d iterations", m.name, n)
	m.stats.Log("Elaborating module " + m.name)
	//
	return nil
}

// Lines renders the analog blocks of this module, annotated with summaries.
func (m *Module) Lines() []string {
	var lines []string
	//
	for _, stmt := range m.analog.statements {
		lines = append(lines, "analog")
		lines = append(lines, stmt.Lines("")...)
	}
	//
	return lines
}

// fail records an error against this module, and returns it.
func (m *Module) fail(err error) error {
	m.errs = multierr.Append(m.errs, err)
	return err
}
