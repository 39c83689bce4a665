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
	"testing"

	"github.com/consensys/go-vams/pkg/vams/topology"
	"github.com/stretchr/testify/require"
)

func Test_Order_00(t *testing.T) {
	require.Equal(t, NONE, NONE.Raise())
	require.Equal(t, QUADRATIC, LINEAR.Raise())
	require.Equal(t, ANY, QUADRATIC.Raise())
	require.Equal(t, ANY, ANY.Raise())
	require.Equal(t, QUADRATIC, LINEAR.Join(QUADRATIC))
}

func Test_Set_00(t *testing.T) {
	a, _ := probes(t)
	s := NewSet(NewEdge(a, NONE), NewEdge(a, ANY))
	//
	require.Equal(t, uint(1), s.Len())
	require.Equal(t, NONE, s.Edges()[0].Order())
	require.False(t, s.Insert(NewEdge(a, LINEAR)))
	// Widening does raise the order
	require.True(t, s.Widen(NewEdge(a, QUADRATIC)))
	require.False(t, s.Widen(NewEdge(a, LINEAR)))
	require.Equal(t, QUADRATIC, s.Edges()[0].Order())
}

func Test_Set_01(t *testing.T) {
	a, b := probes(t)
	l := NewSet(NewEdge(a, LINEAR), NewEdge(b, ANY))
	r := NewSet(NewEdge(b, NONE), NewEdge(a, QUADRATIC))
	//
	require.True(t, l.Equals(r))
	require.False(t, l.Equals(NewSet(NewEdge(a, LINEAR))))
}

func Test_Summary_00(t *testing.T) {
	a, b := probes(t)
	s := Combine(OfProbe(a), OfProbe(b), Constant(true))
	//
	require.Equal(t, uint(2), s.Deps().Len())
	require.False(t, s.IsLinear())
	require.True(t, s.IsOffset())
	require.True(t, Combine(OfProbe(a), OfProbe(b)).IsLinear())
	require.False(t, s.IsConstant())
	//
	z := Combine(Constant(false), Constant(false))
	require.False(t, z.IsOffset())
	require.True(t, z.IsConstant())
}

func Test_Summary_01(t *testing.T) {
	a, b := probes(t)
	// Scaling by a constant keeps linearity
	s := Multiply(Constant(true), OfProbe(a))
	require.True(t, s.IsLinear())
	require.False(t, s.IsOffset())
	require.False(t, s.IsConstant())
	// Product of probes is quadratic
	q := Multiply(OfProbe(a), OfProbe(b))
	require.False(t, q.IsLinear())
	require.True(t, q.IsQuadratic())
	// And cubic is anything
	c := Multiply(q, OfProbe(a))
	require.False(t, c.IsQuadratic())
}

func Test_Summary_02(t *testing.T) {
	a, b := probes(t)
	s := Divide(OfProbe(a), Constant(true))
	require.True(t, s.IsLinear())
	//
	d := Divide(OfProbe(a), OfProbe(b))
	require.Equal(t, uint(2), d.Deps().Len())
	//
	for _, e := range d.Deps().Edges() {
		require.Equal(t, ANY, e.Order())
	}
	//
	require.True(t, Divide(Constant(true), OfProbe(a)).IsOffset())
}

func Test_Summary_03(t *testing.T) {
	a, _ := probes(t)
	s := Logical(OfProbe(a), Constant(true))
	//
	require.Equal(t, NONE, s.Deps().Edges()[0].Order())
	require.True(t, s.IsOffset())
	require.False(t, s.IsConstant())
	require.Equal(t, ANY, Opaque(OfProbe(a)).Deps().Edges()[0].Order())
}

func Test_Summary_04(t *testing.T) {
	a, b := probes(t)
	// Condition reads a, whilst the true branch reads a linearly
	s := Select(Logical(OfProbe(a)), OfProbe(a), Constant(false))
	e, ok := s.Deps().Find(a)
	require.True(t, ok)
	require.Equal(t, LINEAR, e.Order())
	// Condition only probe is NONE
	s = Select(Logical(OfProbe(b)), OfProbe(a), Constant(false))
	e, ok = s.Deps().Find(b)
	require.True(t, ok)
	require.Equal(t, NONE, e.Order())
	require.False(t, s.IsOffset())
	// Constant follows the condition
	s = Select(Constant(true), OfProbe(a), Constant(false))
	require.True(t, s.IsConstant())
}

func Test_Summary_05(t *testing.T) {
	a, b := probes(t)
	acc := Constant(false)
	//
	require.True(t, acc.Absorb(OfProbe(a)))
	require.False(t, acc.IsConstant())
	require.False(t, acc.Absorb(OfProbe(a)))
	require.True(t, acc.Absorb(Multiply(OfProbe(a), OfProbe(b))))
	require.False(t, acc.IsLinear())
	// Absorbing something weaker never narrows
	require.False(t, acc.Absorb(Constant(false)))
	require.False(t, acc.IsLinear())
	require.True(t, acc.Absorb(Constant(true)))
	require.True(t, acc.IsOffset())
}

type consumer struct {
	name     string
	upstream *Summary
}

func (c *consumer) String() string { return c.name }

func (c *consumer) PropagateRDeps(markers *topology.RDeps) {
	c.upstream.PropagateRDeps(markers)
}

func Test_Summary_06(t *testing.T) {
	a, b := probes(t)
	// x = V(a); y = x * V(b)
	x := &consumer{"x", OfProbe(a)}
	y := Multiply(NewSummary(false, false), OfProbe(b))
	y.AddConsumer(x)
	//
	marker := &consumer{"out", nil}
	require.True(t, y.PropagateRDeps(topology.NewRDeps(marker)))
	require.True(t, a.RDeps().Contains(marker))
	require.True(t, b.RDeps().Contains(marker))
	require.False(t, y.PropagateRDeps(topology.NewRDeps(marker)))
}

func probes(t *testing.T) (*topology.Probe, *topology.Probe) {
	c := topology.NewCircuit()
	p, _ := c.NewNode("p")
	n, _ := c.NewNode("n")
	ra, err := c.NewBranch(p, nil)
	require.NoError(t, err)
	rb, err := c.NewBranch(p, n)
	require.NoError(t, err)
	//
	return ra.Branch.Probe(topology.POTENTIAL), rb.Branch.Probe(topology.FLOW)
}
