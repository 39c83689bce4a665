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

// Reachability determines whether the statements of a scope are executed.
type Reachability uint8

// ALWAYS indicates statements are always executed.
const ALWAYS Reachability = 0

// UNKNOWN indicates statements may (or may not) be executed.
const UNKNOWN Reachability = 1

// NEVER indicates statements are never executed.
const NEVER Reachability = 2

// Join combines the reachability of an enclosing scope with that of a nested
// scope.
func (r Reachability) Join(other Reachability) Reachability {
	return max(r, other)
}

func (r Reachability) String() string {
	switch r {
	case ALWAYS:
		return "always"
	case NEVER:
		return "never"
	default:
		return "unknown"
	}
}

// Scope is a lexical region which binds names, and which is nested within an
// enclosing scope.  Looking up a name searches outwards through the enclosing
// scopes.  A scope also acts as the guard for shorts made by statements within
// it.
type Scope struct {
	parent *Scope
	// Maps names to their bindings.
	bindings map[string]Binding
	// Names in order of declaration.
	names []string
	// Reachability of this scope, irrespective of its parent.
	reach Reachability
	// Condition under which this scope is entered (if any).
	cond string
}

// NewScope constructs a new scope within a given parent, which can be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent, make(map[string]Binding), nil, ALWAYS, ""}
}

// Parent returns the enclosing scope (or nil).
func (p *Scope) Parent() *Scope {
	return p.parent
}

// Define binds a name within this scope.  If the name is already bound in this
// scope, then false is returned.  Binding a name already bound in an enclosing
// scope is permitted (i.e. it shadows the outer binding).
func (p *Scope) Define(binding Binding) bool {
	var name = binding.Name()
	//
	if _, ok := p.bindings[name]; ok {
		return false
	}
	//
	p.bindings[name] = binding
	p.names = append(p.names, name)
	//
	return true
}

// Lookup a name in this scope or, failing that, in an enclosing scope.  If the
// name is not bound, nil is returned.
func (p *Scope) Lookup(name string) Binding {
	for s := p; s != nil; s = s.parent {
		if b, ok := s.bindings[name]; ok {
			return b
		}
	}
	//
	return nil
}

// Bindings returns the bindings of this scope in order of declaration.
func (p *Scope) Bindings() []Binding {
	var bindings = make([]Binding, len(p.names))
	//
	for i, name := range p.names {
		bindings[i] = p.bindings[name]
	}
	//
	return bindings
}

// Reachability determines whether statements in this scope are executed,
// taking into account the enclosing scopes.
func (p *Scope) Reachability() Reachability {
	var reach = p.reach
	//
	for s := p.parent; s != nil; s = s.parent {
		reach = reach.Join(s.reach)
	}
	//
	return reach
}

// SetReachability sets the reachability of this scope, along with a rendering
// of the condition under which it is entered.
func (p *Scope) SetReachability(reach Reachability, cond string) {
	p.reach = reach
	p.cond = cond
}

// Always implementation for the topology.Guard interface.
func (p *Scope) Always() bool {
	return p.Reachability() == ALWAYS
}

// String implementation for the topology.Guard interface, which renders the
// conjunction of all enclosing conditions.
func (p *Scope) String() string {
	var cond string
	//
	for s := p; s != nil; s = s.parent {
		switch {
		case s.cond == "":
			continue
		case cond == "":
			cond = s.cond
		default:
			cond = s.cond + " && " + cond
		}
	}
	//
	return cond
}
