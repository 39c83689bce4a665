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
package deps

import (
	"fmt"

	"github.com/consensys/go-vams/pkg/util/collection/set"
	"github.com/consensys/go-vams/pkg/vams/topology"
)

// Consumer is anything whose value was read in order to compute a summary
// (e.g. a variable declaration).  Reverse dependencies flow from a summary back
// through its consumers, and from them onwards to their own dependencies.
type Consumer interface {
	// PropagateRDeps pushes a given set of markers through this consumer.
	PropagateRDeps(markers *topology.RDeps)
}

// Consumers is an identity set of consumers.
type Consumers = set.IdentitySet[Consumer]

// Summary captures the dependency information for a single (sub)expression.
// The offset flag indicates the value may be nonzero when all of its probe
// dependencies are zero, whilst the constant flag indicates the value does not
// vary during simulation.
type Summary struct {
	deps      Set
	consumers *Consumers
	offset    bool
	constant  bool
}

// NewSummary constructs an empty summary with the given flags.
func NewSummary(offset bool, constant bool) *Summary {
	return &Summary{Set{}, set.NewIdentitySet[Consumer](), offset, constant}
}

// Constant returns the summary of a constant value which may (or may not) be
// nonzero.
func Constant(offset bool) *Summary {
	return NewSummary(offset, true)
}

// Varying returns the summary of a value which varies during simulation, but
// does not depend upon any probe (e.g. the circuit temperature).
func Varying() *Summary {
	return NewSummary(true, false)
}

// OfProbe returns the summary of a value which reads a given probe directly.
func OfProbe(probe *topology.Probe) *Summary {
	var s = NewSummary(false, false)
	//
	s.deps.Insert(NewEdge(probe, LINEAR))
	//
	return s
}

// Deps returns the dependency edges of this summary.
func (s *Summary) Deps() *Set {
	return &s.deps
}

// Consumers returns the consumers recorded for this summary.
func (s *Summary) Consumers() *Consumers {
	return s.consumers
}

// AddConsumer records a consumer against this summary.
func (s *Summary) AddConsumer(consumer Consumer) bool {
	return s.consumers.Insert(consumer)
}

// AddDep inserts a dependency edge into this summary.  Existing edges for the
// same probe take precedence.
func (s *Summary) AddDep(edge Edge) bool {
	return s.deps.Insert(edge)
}

// IsOffset checks whether this value may be nonzero when all dependencies are
// zero.
func (s *Summary) IsOffset() bool {
	return s.offset
}

// IsConstant checks whether this value is invariant during simulation.
func (s *Summary) IsConstant() bool {
	return s.constant
}

// SetOffset sets the offset flag for this summary.
func (s *Summary) SetOffset(offset bool) {
	s.offset = offset
}

// SetConstant sets the constant flag for this summary.
func (s *Summary) SetConstant(constant bool) {
	s.constant = constant
}

// HasDeps checks whether this summary has any dependency edges.
func (s *Summary) HasDeps() bool {
	return s.deps.Len() > 0
}

// IsLinear checks whether this value has no offset and every dependency is at
// most linear.
func (s *Summary) IsLinear() bool {
	return s.bounded(LINEAR)
}

// IsQuadratic checks whether this value has no offset and every dependency is
// at most quadratic.
func (s *Summary) IsQuadratic() bool {
	return s.bounded(QUADRATIC)
}

func (s *Summary) bounded(order Order) bool {
	if s.offset {
		return false
	}
	//
	for _, e := range s.deps.edges {
		if e.order > order {
			return false
		}
	}
	//
	return true
}

// Clone returns a copy of this summary.  Consumers are shared by identity,
// though the set holding them is not.
func (s *Summary) Clone() *Summary {
	return &Summary{s.deps.Clone(), s.consumers.Clone(), s.offset, s.constant}
}

// Equals checks whether two summaries agree on their flags and probe sets.
// Edge orders and consumers are not considered.
func (s *Summary) Equals(other *Summary) bool {
	return s.offset == other.offset && s.constant == other.constant && s.deps.Equals(other.deps)
}

// Absorb merges another summary into this one such that the result
// over-approximates both: edge orders are joined, consumers are unioned, the
// offset flag is or'd and the constant flag is and'd.  This returns true if
// anything changed.  Since every component only ever increases, repeatedly
// absorbing is guaranteed to converge.
func (s *Summary) Absorb(other *Summary) bool {
	var changed = false
	//
	for _, e := range other.deps.edges {
		changed = s.deps.Widen(e) || changed
	}
	//
	changed = s.consumers.InsertAll(other.consumers) || changed
	//
	if other.offset && !s.offset {
		s.offset = true
		changed = true
	}
	//
	if !other.constant && s.constant {
		s.constant = false
		changed = true
	}
	//
	return changed
}

// PropagateRDeps pushes a given set of markers through every consumer and
// every probe recorded in this summary.  This returns true if any probe
// acquired a new marker.
func (s *Summary) PropagateRDeps(markers *topology.RDeps) bool {
	var changed = false
	//
	for _, c := range s.consumers.Items() {
		c.PropagateRDeps(markers)
	}
	//
	for _, e := range s.deps.edges {
		changed = e.PropagateRDeps(markers) || changed
	}
	//
	return changed
}

func (s *Summary) String() string {
	return fmt.Sprintf("deps=%s offset=%t constant=%t", s.deps.String(), s.offset, s.constant)
}
