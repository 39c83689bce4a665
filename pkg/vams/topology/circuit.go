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
package topology

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// GROUND_NAME is the name given to the ground node.
const GROUND_NAME = "gnd"

// Circuit holds the topology of a device: its nodes and its branches.
// Branches are deduplicated by their node pair, so there is at most one branch
// for any given pair of nodes.  Named branches are aliases over the branch for
// their node pair.
type Circuit struct {
	// Nodes in order of declaration (ground first).
	nodes []*Node
	// Maps node names to nodes.
	nodemap map[string]*Node
	// Branches in order of creation.
	branches []*Branch
	// Maps node pairs to (unnamed) branches.
	pairs map[nodePair]*Branch
	// Maps names to named branches.
	names map[string]*Branch
	// Counts filter branches allocated so far.
	filters uint
}

type nodePair struct {
	p, n *Node
}

// NewCircuit constructs an initially empty circuit, which contains only the
// ground node.
func NewCircuit() *Circuit {
	ground := &Node{GROUND_NAME, GROUND, nil, nil}
	//
	return &Circuit{
		[]*Node{ground},
		map[string]*Node{GROUND_NAME: ground},
		nil,
		make(map[nodePair]*Branch),
		make(map[string]*Branch),
		0,
	}
}

// Ground returns the ground node of this circuit.
func (c *Circuit) Ground() *Node {
	return c.nodes[GROUND]
}

// NewNode declares a new node with the given name.  If a node with that name
// already exists, then it is returned along with false.
func (c *Circuit) NewNode(name string) (*Node, bool) {
	if node, ok := c.nodemap[name]; ok {
		return node, false
	}
	//
	node := &Node{name, uint(len(c.nodes)), nil, nil}
	c.nodes = append(c.nodes, node)
	c.nodemap[name] = node
	//
	return node, true
}

// Node returns the node with the given name, or nil if no such node exists.
func (c *Circuit) Node(name string) *Node {
	return c.nodemap[name]
}

// Nodes returns all nodes of this circuit, with ground first.
func (c *Circuit) Nodes() []*Node {
	return c.nodes
}

// NewBranch returns a reference to the branch between two nodes, creating it
// if it does not already exist.  A nil negative node indicates ground.  If the
// branch exists only in the opposite direction, a reversed reference to it is
// returned.
func (c *Circuit) NewBranch(p *Node, n *Node) (BranchRef, error) {
	if n == nil {
		n = c.Ground()
	}
	//
	if p == n {
		return BranchRef{}, fmt.Errorf("branch from node %s to itself", p.Name())
	} else if branch, ok := c.pairs[nodePair{p, n}]; ok {
		return BranchRef{branch, false}, nil
	} else if branch, ok := c.pairs[nodePair{n, p}]; ok {
		return BranchRef{branch, true}, nil
	}
	//
	branch := newBranch("", p, n, nil, false)
	c.pairs[nodePair{p, n}] = branch
	c.branches = append(c.branches, branch)
	//
	log.Debugf("new branch %s", branch.String())
	//
	return BranchRef{branch, false}, nil
}

// NewNamedBranch registers a named alias over an existing branch.  No new
// electrical element is created, even when the alias runs in the opposite
// direction to that branch.  If the name is already taken, then false is
// returned.
func (c *Circuit) NewNamedBranch(ref BranchRef, name string) (*Branch, bool) {
	if _, ok := c.names[name]; ok {
		return nil, false
	}
	// The alias takes the declared direction, which is opposite to that of its
	// base for a reversed reference.
	alias := newBranch(name, ref.P(), ref.N(), ref.Branch.Base(), false)
	alias.reversed = ref.Reversed
	//
	c.names[name] = alias
	c.branches = append(c.branches, alias)
	//
	return alias, true
}

// NewFilterBranch allocates a fresh internal node and a branch from it to
// ground, flagged as a filter.  Filters are used to implement operators such as
// ddt() and idt(), whose outputs are then probed as ordinary potentials.
func (c *Circuit) NewFilterBranch(prefix string) *Branch {
	for {
		name := fmt.Sprintf("_%s%d", prefix, c.filters)
		c.filters++
		//
		if node, ok := c.NewNode(name); ok {
			branch := newBranch("", node, c.Ground(), nil, true)
			c.pairs[nodePair{node, c.Ground()}] = branch
			c.branches = append(c.branches, branch)
			//
			log.Debugf("new filter branch %s", branch.String())
			//
			return branch
		}
	}
}

// Lookup returns the named branch with a given name, or nil if there is none.
func (c *Circuit) Lookup(name string) *Branch {
	return c.names[name]
}

// Branches returns all branches of this circuit in order of creation.
func (c *Circuit) Branches() []*Branch {
	return c.branches
}

// UsedBranches returns those branches of this circuit which are used.  Unused
// branches are not needed for code generation.
func (c *Circuit) UsedBranches() []*Branch {
	var used []*Branch
	//
	for _, b := range c.branches {
		if b.IsUsed() {
			used = append(used, b)
		}
	}
	//
	return used
}

// Prune removes unnamed branches which are no longer used, returning the
// number removed.  This must only be called once no expression refers to the
// pruned branches.
func (c *Circuit) Prune() uint {
	var (
		kept    []*Branch
		removed uint
	)
	//
	for _, b := range c.branches {
		if b.IsUsed() || b.IsAlias() || b.Name() != "" || b.IsFilter() || c.hasAlias(b) {
			kept = append(kept, b)
		} else {
			delete(c.pairs, nodePair{b.p, b.n})
			removed++
		}
	}
	//
	c.branches = kept
	//
	return removed
}

func (c *Circuit) hasAlias(branch *Branch) bool {
	for _, alias := range c.names {
		if alias.base == branch {
			return true
		}
	}
	//
	return false
}
