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
)

// Usage identifies one of the ways in which a branch can be used.
type Usage uint8

// POTENTIAL_PROBE counts potential accesses (e.g. V(p,n)) of a branch.
const POTENTIAL_PROBE Usage = 0

// FLOW_PROBE counts flow accesses (e.g. I(p,n)) of a branch.
const FLOW_PROBE Usage = 1

// POTENTIAL_SOURCE counts potential contributions (e.g. V(p,n) <+ x).
const POTENTIAL_SOURCE Usage = 2

// FLOW_SOURCE counts flow contributions (e.g. I(p,n) <+ x).
const FLOW_SOURCE Usage = 3

// SHORT counts potential contributions of zero (e.g. V(p,n) <+ 0).
const SHORT Usage = 4

// NUM_USAGES is the number of distinct usage kinds.
const NUM_USAGES = 5

// ProbeUsage returns the usage corresponding to a probe of the given kind.
func ProbeUsage(access Access) Usage {
	if access == POTENTIAL {
		return POTENTIAL_PROBE
	}
	//
	return FLOW_PROBE
}

// SourceUsage returns the usage corresponding to a contribution of the given
// kind.
func SourceUsage(access Access) Usage {
	if access == POTENTIAL {
		return POTENTIAL_SOURCE
	}
	//
	return FLOW_SOURCE
}

// Branch connects two nodes of the circuit.  A branch can also be a named
// alias of another branch, in which case it shares the electrical
// classification of its base but carries independent usage counters.
type Branch struct {
	// Name of this branch (empty for unnamed branches).
	name string
	// Positive and negative nodes.
	p, n *Node
	// Underlying branch for a named alias (nil otherwise).
	base *Branch
	// Indicates an alias whose nodes are swapped with respect to its base.
	reversed bool
	// Interned probes.
	potential, flow *Probe
	// Usage counters.
	usage [NUM_USAGES]uint
	// Indicates an internal branch allocated for a filter (e.g. ddt).
	filter bool
	// Markers indicating who needs this branch.
	rdeps *RDeps
}

func newBranch(name string, p *Node, n *Node, base *Branch, filter bool) *Branch {
	return &Branch{name, p, n, base, false, nil, nil, [NUM_USAGES]uint{}, filter, NewRDeps()}
}

// Name returns the name of this branch, which is empty for unnamed branches.
func (p *Branch) Name() string {
	return p.name
}

// P returns the positive node of this branch.
func (p *Branch) P() *Node {
	return p.p
}

// N returns the negative node of this branch.
func (p *Branch) N() *Node {
	return p.n
}

// Base returns the branch underlying this branch.  For anything other than a
// named alias, this is the branch itself.
func (p *Branch) Base() *Branch {
	if p.base != nil {
		return p.base
	}
	//
	return p
}

// IsReversed checks whether this is a named alias which runs in the opposite
// direction to its base.
func (p *Branch) IsReversed() bool {
	return p.reversed
}

// IsAlias checks whether this is a named alias of some other branch.
func (p *Branch) IsAlias() bool {
	return p.base != nil
}

// Probe returns the (interned) probe for a given kind of access on this
// branch.  Probes of an alias are those of its base.
func (p *Branch) Probe(access Access) *Probe {
	var base = p.Base()
	//
	if access == POTENTIAL {
		if base.potential == nil {
			base.potential = &Probe{base, POTENTIAL, NewRDeps()}
		}
		//
		return base.potential
	}
	//
	if base.flow == nil {
		base.flow = &Probe{base, FLOW, NewRDeps()}
	}
	//
	return base.flow
}

// Inc increments a given usage counter of this branch.  For an alias, the
// counter of the base is also incremented.
func (p *Branch) Inc(usage Usage) {
	p.usage[usage]++
	//
	if p.base != nil {
		p.base.Inc(usage)
	}
}

// Dec decrements a given usage counter of this branch.  For an alias, the
// counter of the base is also decremented.  Counters can never go negative.
func (p *Branch) Dec(usage Usage) {
	if p.usage[usage] == 0 {
		panic(fmt.Sprintf("negative usage count for branch %s", p.String()))
	}
	//
	p.usage[usage]--
	//
	if p.base != nil {
		p.base.Dec(usage)
	}
}

// Count returns the value of a given usage counter of this branch.
func (p *Branch) Count(usage Usage) uint {
	return p.usage[usage]
}

// Uses returns the total usage of this branch.
func (p *Branch) Uses() uint {
	var total uint
	//
	for _, n := range p.usage {
		total += n
	}
	//
	return total
}

// IsUsed checks whether this branch is used at all.  Unused branches are
// excluded from code generation.
func (p *Branch) IsUsed() bool {
	return p.Uses() > 0
}

// HasPotentialProbe checks whether the potential of this branch is read.
func (p *Branch) HasPotentialProbe() bool {
	return p.Base().usage[POTENTIAL_PROBE] > 0
}

// HasFlowProbe checks whether the flow of this branch is read.
func (p *Branch) HasFlowProbe() bool {
	return p.Base().usage[FLOW_PROBE] > 0
}

// HasPotentialSource checks whether a potential is contributed to this branch.
func (p *Branch) HasPotentialSource() bool {
	return p.Base().usage[POTENTIAL_SOURCE] > 0
}

// HasFlowSource checks whether a flow is contributed to this branch.
func (p *Branch) HasFlowSource() bool {
	return p.Base().usage[FLOW_SOURCE] > 0
}

// IsShort checks whether this branch is (potentially) a short.
func (p *Branch) IsShort() bool {
	return p.Base().usage[SHORT] > 0
}

// IsFilter checks whether this is an internal filter branch.
func (p *Branch) IsFilter() bool {
	return p.Base().filter
}

// RDeps returns the reverse dependencies recorded against this branch.
func (p *Branch) RDeps() *RDeps {
	return p.Base().rdeps
}

// Pair returns a string representation of the node pair of this branch.
func (p *Branch) Pair() string {
	var base = p.Base()
	//
	if base.n.IsGround() {
		return fmt.Sprintf("(%s)", base.p.name)
	}
	//
	return fmt.Sprintf("(%s,%s)", base.p.name, base.n.name)
}

func (p *Branch) String() string {
	if p.name != "" {
		return p.name
	}
	//
	return p.Pair()
}

// BranchRef is a reference to a branch, which may access the branch in the
// reverse direction.  For example, if branch (p,n) exists then V(n,p) is a
// reversed reference to it.
type BranchRef struct {
	Branch   *Branch
	Reversed bool
}

// P returns the positive node of the referenced branch, as seen through this
// reference.
func (r BranchRef) P() *Node {
	if r.Reversed {
		return r.Branch.N()
	}
	//
	return r.Branch.P()
}

// N returns the negative node of the referenced branch, as seen through this
// reference.
func (r BranchRef) N() *Node {
	if r.Reversed {
		return r.Branch.P()
	}
	//
	return r.Branch.N()
}

// Args returns the access arguments for this reference, as they would be
// written in source form.
func (r BranchRef) Args() string {
	if r.Branch.Name() != "" {
		return r.Branch.Name()
	} else if r.N().IsGround() {
		return r.P().Name()
	}
	//
	return fmt.Sprintf("%s, %s", r.P().Name(), r.N().Name())
}
