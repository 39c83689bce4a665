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
	"github.com/consensys/go-vams/pkg/util/collection/stack"
	"github.com/consensys/go-vams/pkg/vams/ir"
	"github.com/consensys/go-vams/pkg/vams/topology"
)

// Resolver turns raw expressions into resolved expressions by binding
// identifiers against a scope chain.  Resolution consults (and modifies) the
// circuit topology, since accessing a quantity materialises the branch being
// accessed.  Operators are simplified as they are resolved.
type Resolver struct {
	circuit *topology.Circuit
	config  Config
	// Filter branches allocated for each filter call site.  These are reused
	// when the same raw expression is resolved again.
	filters map[*ir.Identifier]*topology.Branch
}

// NewResolver constructs a resolver for a given circuit.
func NewResolver(circuit *topology.Circuit, config Config) *Resolver {
	return &Resolver{circuit, config, make(map[*ir.Identifier]*topology.Branch)}
}

// Circuit returns the circuit being resolved against.
func (r *Resolver) Circuit() *topology.Circuit {
	return r.circuit
}

// Config returns the configuration of this resolver.
func (r *Resolver) Config() Config {
	return r.config
}

// Resolve a raw expression within a given scope.  A raw expression either
// resolves completely or not at all: on error, any branch usage registered
// whilst resolving is given back.
func (r *Resolver) Resolve(raw *ir.Raw, scope *Scope) (*ir.Expression, error) {
	root, err := r.resolve(raw, scope)
	//
	if err != nil {
		return nil, err
	}
	//
	return ir.NewExpression(root), nil
}

// Target resolves the target of a contribution, such as I(p,n), returning the
// branch and quantity being contributed to.  No probe usage is registered for
// the target.
func (r *Resolver) Target(raw *ir.Raw, scope *Scope) (*ir.BranchAccess, error) {
	root, err := r.resolve(raw, scope)
	//
	if err != nil {
		return nil, err
	}
	//
	ir.Release(root)
	//
	if access, ok := root.(*ir.BranchAccess); ok {
		return access, nil
	}
	//
	return nil, newError(TYPE_MISMATCH, "", "cannot contribute to %s", ir.Dump(root))
}

func (r *Resolver) resolve(raw *ir.Raw, scope *Scope) (ir.Node, error) {
	var st = stack.NewStack[ir.Node]()
	//
	for _, token := range raw.Tokens() {
		if err := r.step(token, st, scope); err != nil {
			releaseAll(st.Items())
			return nil, err
		}
	}
	//
	if st.Len() != 1 {
		releaseAll(st.Items())
		return nil, newError(MALFORMED, "", "%s yields %d values", raw.String(), st.Len())
	}
	//
	root := st.Pop()
	//
	if err := checkValue(root); err != nil {
		ir.Release(root)
		return nil, err
	}
	//
	return root, nil
}

// step resolves a single token, updating the working stack accordingly.  On
// error, any operands taken from the stack are given back.
func (r *Resolver) step(token ir.Token, st *stack.Stack[ir.Node], scope *Scope) error {
	var (
		node     ir.Node
		operands []ir.Node
		ok       bool
		err      error
	)
	//
	switch t := token.(type) {
	case *ir.Literal:
		node = ir.NewLiteral(t.Value)
	case *ir.Marker:
		node = &ir.Marker{}
	case *ir.Identifier:
		if args, isCall := peekArgs(st); isCall {
			operands = []ir.Node{st.Pop()}
			node, err = r.call(t, args, scope)
		} else {
			node = r.identifier(t.Name, scope)
		}
	case *ir.UnaryOp:
		if operands, ok = st.PopN(1); ok {
			node, err = r.unary(t.Op, operands[0])
		}
	case *ir.BinaryOp:
		if operands, ok = st.PopN(2); ok {
			node, err = r.binary(t.Op, operands[0], operands[1])
		}
	case *ir.TernaryOp:
		if operands, ok = st.PopN(1); ok {
			node, err = r.ternary(operands[0], t, scope)
		}
	case *ir.ArgList:
		var items []ir.Node
		//
		if items, ok = st.PopUntil(isMarker); ok {
			node = ir.NewArgs(items...)
		}
	}
	//
	if err != nil {
		releaseAll(operands)
		return err
	} else if node == nil {
		return newError(MALFORMED, "", "insufficient operands")
	}
	//
	st.Push(node)
	//
	return nil
}

// identifier resolves a name which is not being called.  Names which are not
// bound (or which are bound to a branch) produce a placeholder, which is only
// valid as the sole argument of an access function.
func (r *Resolver) identifier(name string, scope *Scope) ir.Node {
	switch b := scope.Lookup(name).(type) {
	case *Parameter:
		if b.value.HasValue() {
			return ir.NewParamLiteral(b.value.Unwrap(), b)
		}
		//
		return ir.NewParamRef(b)
	case *Variable:
		return ir.NewVarRef(b, b.Snapshot())
	case *Port:
		return ir.NewPortRef(b.node)
	case *Net:
		return ir.NewNodeRef(b.node)
	}
	//
	if fn, ok := BUILTINS[name]; ok && fn.min == 0 {
		return ir.NewCall(name, ir.NewArgs(), nil, fn.summarise(nil))
	}
	//
	return &ir.Deferred{Name: name}
}

// call resolves an identifier applied to an argument list, which is either an
// access function or a built-in function.
func (r *Resolver) call(id *ir.Identifier, args *ir.Args, scope *Scope) (ir.Node, error) {
	if access, ok := r.config.Access(id.Name); ok {
		return r.access(id.Name, access, args)
	} else if fn, ok := BUILTINS[id.Name]; ok {
		return r.builtin(id, fn, args)
	} else if scope.Lookup(id.Name) != nil {
		return nil, newError(TYPE_MISMATCH, id.Name, "not a function")
	}
	//
	return nil, newError(UNRESOLVED_SYMBOL, id.Name, "unknown function")
}

// access resolves a quantity access, such as V(p,n) or I(br), materialising
// the branch being accessed.
func (r *Resolver) access(name string, access topology.Access, args *ir.Args) (ir.Node, error) {
	ref, err := r.branch(name, args.Items)
	//
	if err != nil {
		return nil, err
	}
	//
	ref.Branch.Inc(topology.ProbeUsage(access))
	//
	return ir.NewBranchAccess(name, ref, access), nil
}

// branch determines the branch identified by the arguments of an access.
func (r *Resolver) branch(name string, items []ir.Node) (topology.BranchRef, error) {
	switch len(items) {
	case 1:
		if d, ok := items[0].(*ir.Deferred); ok {
			if b := r.circuit.Lookup(d.Name); b != nil {
				return topology.BranchRef{Branch: b}, nil
			}
			//
			return topology.BranchRef{}, newError(DEFERRED, d.Name, "branch not declared")
		} else if p, ok := nodeOf(items[0]); ok {
			return r.newBranch(name, p, nil)
		}
	case 2:
		for _, item := range items {
			if d, ok := item.(*ir.Deferred); ok {
				return topology.BranchRef{}, newError(UNRESOLVED_SYMBOL, d.Name, "node not declared")
			}
		}
		//
		p, pok := nodeOf(items[0])
		n, nok := nodeOf(items[1])
		//
		if pok && nok {
			return r.newBranch(name, p, n)
		}
	default:
		return topology.BranchRef{}, newError(ARGUMENT_COUNT, name, "expected 1 or 2 arguments, found %d",
			len(items))
	}
	//
	return topology.BranchRef{}, newError(TYPE_MISMATCH, name, "expected nodes or a branch")
}

func (r *Resolver) newBranch(name string, p *topology.Node, n *topology.Node) (topology.BranchRef, error) {
	ref, err := r.circuit.NewBranch(p, n)
	//
	if err != nil {
		return ref, newError(TYPE_MISMATCH, name, "%s", err.Error())
	}
	//
	return ref, nil
}

// ternary resolves a conditional expression.  When the condition is known, only
// the selected branch is resolved and the other is discarded without ever
// being resolved.
func (r *Resolver) ternary(cond ir.Node, t *ir.TernaryOp, scope *Scope) (ir.Node, error) {
	if err := checkValue(cond); err != nil {
		return nil, err
	}
	//
	if lit, ok := cond.(*ir.Literal); ok && r.config.Simplify {
		if truth, err := ir.Truth(lit.Value); err == nil && truth {
			return r.resolve(t.Then, scope)
		} else if err == nil {
			return r.resolve(t.Else, scope)
		}
	}
	//
	then, err := r.resolve(t.Then, scope)
	if err != nil {
		return nil, err
	}
	//
	els, err := r.resolve(t.Else, scope)
	if err != nil {
		ir.Release(then)
		return nil, err
	}
	//
	summary := selectSummary(cond, then, els)
	//
	return ir.NewTernary(cond, then, els, summary), nil
}

// checkValue checks that a resolved node can be used as a value.
func checkValue(node ir.Node) error {
	switch n := node.(type) {
	case *ir.Deferred:
		return newError(UNRESOLVED_SYMBOL, n.Name, "not declared")
	case *ir.NodeRef:
		return newError(TYPE_MISMATCH, n.Node.Name(), "node used as a value")
	case *ir.PortRef:
		return newError(TYPE_MISMATCH, n.Node.Name(), "port used as a value")
	case *ir.Marker, *ir.Args:
		return newError(MALFORMED, "", "argument list used as a value")
	}
	//
	return nil
}

func nodeOf(node ir.Node) (*topology.Node, bool) {
	switch n := node.(type) {
	case *ir.PortRef:
		return n.Node, true
	case *ir.NodeRef:
		return n.Node, true
	default:
		return nil, false
	}
}

func peekArgs(st *stack.Stack[ir.Node]) (*ir.Args, bool) {
	if st.IsEmpty() {
		return nil, false
	}
	//
	args, ok := st.Peek(0).(*ir.Args)
	//
	return args, ok
}

func isMarker(node ir.Node) bool {
	_, ok := node.(*ir.Marker)
	return ok
}

func releaseAll(nodes []ir.Node) {
	for _, n := range nodes {
		ir.Release(n)
	}
}
