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

import "fmt"

// GROUND is the slot number reserved for the ground node.
const GROUND uint = 0

// Guard determines when a short between two nodes is in effect.  A nil guard
// indicates an unconditional short.
type Guard interface {
	// Always determines whether this guard is statically known to hold.
	Always() bool
	// String returns a human-readable rendering of the guard.
	String() string
}

// Node represents an electrical node of the circuit.  Every node is identified
// by its name and by a slot number, where slot 0 is reserved for ground.  A
// node can be shorted onto another node, possibly under some guard condition.
type Node struct {
	name   string
	number uint
	// Node onto which this node is shorted (or nil).
	short *Node
	// Condition under which the short applies (nil means always).
	guard Guard
}

// Name returns the name of this node.
func (p *Node) Name() string {
	return p.name
}

// Number returns the slot number of this node.
func (p *Node) Number() uint {
	return p.number
}

// IsGround checks whether this is the ground node.
func (p *Node) IsGround() bool {
	return p.number == GROUND
}

// ShortTo records that this node is shorted onto a given target node under a
// given guard.  Shorting a node onto itself, or onto a node which is
// (unconditionally) shorted back onto it, is ignored.
func (p *Node) ShortTo(target *Node, guard Guard) {
	if target.Resolve() == p.Resolve() {
		return
	}
	//
	p.short = target
	p.guard = guard
}

// Short returns the node onto which this node is shorted (if any), along with
// the guard under which the short applies.
func (p *Node) Short() (*Node, Guard) {
	return p.short, p.guard
}

// Resolve follows unconditional shorts from this node, returning the node
// which ultimately represents it.
func (p *Node) Resolve() *Node {
	var node = p
	//
	for node.short != nil && (node.guard == nil || node.guard.Always()) {
		node = node.short
	}
	//
	return node
}

func (p *Node) String() string {
	if p.short != nil && p.guard != nil {
		return fmt.Sprintf("%s=>%s if %s", p.name, p.short.name, p.guard.String())
	} else if p.short != nil {
		return fmt.Sprintf("%s=>%s", p.name, p.short.name)
	}
	//
	return p.name
}
