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
	"strings"

	"github.com/consensys/go-vams/pkg/vams/topology"
)

// Edge records that a value depends upon a given probe with a given order.
// Two edges are considered equal when they refer to the same probe,
// irrespective of their order.
type Edge struct {
	probe *topology.Probe
	order Order
}

// NewEdge constructs a new dependency edge.
func NewEdge(probe *topology.Probe, order Order) Edge {
	return Edge{probe, order}
}

// Probe returns the probe of this edge.
func (e Edge) Probe() *topology.Probe {
	return e.probe
}

// Order returns the order of this edge.
func (e Edge) Order() Order {
	return e.order
}

// WithOrder returns a copy of this edge with the given order.
func (e Edge) WithOrder(order Order) Edge {
	return Edge{e.probe, order}
}

// Equals checks whether two edges refer to the same probe.
func (e Edge) Equals(other Edge) bool {
	return e.probe == other.probe
}

// PropagateRDeps pushes a given set of markers onto the probe of this edge.
func (e Edge) PropagateRDeps(markers *topology.RDeps) bool {
	return e.probe.PropagateRDeps(markers)
}

func (e Edge) String() string {
	return fmt.Sprintf("%s:%s", e.probe.String(), e.order.String())
}

// Set is a deduplicated set of dependency edges, held in order of insertion.
type Set struct {
	edges []Edge
}

// NewSet constructs a set from zero or more edges.  Later duplicates are
// ignored.
func NewSet(edges ...Edge) Set {
	var set Set
	//
	for _, e := range edges {
		set.Insert(e)
	}
	//
	return set
}

// Len returns the number of edges in this set.
func (s *Set) Len() uint {
	return uint(len(s.edges))
}

// Edges returns the edges of this set in insertion order.  The returned slice
// must not be modified.
func (s *Set) Edges() []Edge {
	return s.edges
}

// Find returns the edge for a given probe (if any).
func (s *Set) Find(probe *topology.Probe) (Edge, bool) {
	for _, e := range s.edges {
		if e.probe == probe {
			return e, true
		}
	}
	//
	return Edge{}, false
}

// Insert an edge into this set, returning true if it was not already present.
// Inserting an edge for a probe which is already present has no effect: in
// particular, the order of the existing edge is neither strengthened nor
// weakened.
func (s *Set) Insert(edge Edge) bool {
	if _, ok := s.Find(edge.probe); ok {
		return false
	}
	//
	s.edges = append(s.edges, edge)
	//
	return true
}

// Union inserts every edge of another set into this set.
func (s *Set) Union(other Set) {
	for _, e := range other.edges {
		s.Insert(e)
	}
}

// Widen inserts an edge into this set or, if an edge for the same probe is
// already present, raises its order to the join of both.  This returns true if
// the set changed.
func (s *Set) Widen(edge Edge) bool {
	for i, e := range s.edges {
		if e.probe == edge.probe {
			if joined := e.order.Join(edge.order); joined != e.order {
				s.edges[i] = e.WithOrder(joined)
				return true
			}
			//
			return false
		}
	}
	//
	s.edges = append(s.edges, edge)
	//
	return true
}

// Map returns a new set obtained by applying a given function to the order of
// every edge.
func (s *Set) Map(fn func(Order) Order) Set {
	var edges = make([]Edge, len(s.edges))
	//
	for i, e := range s.edges {
		edges[i] = e.WithOrder(fn(e.order))
	}
	//
	return Set{edges}
}

// Equals checks whether two sets refer to exactly the same probes, irrespective
// of the order of their edges (and of insertion order).
func (s *Set) Equals(other Set) bool {
	if len(s.edges) != len(other.edges) {
		return false
	}
	//
	for _, e := range s.edges {
		if _, ok := other.Find(e.probe); !ok {
			return false
		}
	}
	//
	return true
}

// Clone returns a copy of this set.
func (s *Set) Clone() Set {
	var edges = make([]Edge, len(s.edges))
	//
	copy(edges, s.edges)
	//
	return Set{edges}
}

func (s *Set) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i, e := range s.edges {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(e.String())
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}
