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
package ir

import (
	"testing"

	"github.com/consensys/go-vams/pkg/vams/deps"
	"github.com/consensys/go-vams/pkg/vams/topology"
	"github.com/google/go-cmp/cmp"
)

type symbol string

func (s symbol) Name() string { return string(s) }

func Test_Dump_00(t *testing.T) {
	var (
		a = NewParamRef(symbol("a"))
		b = NewParamRef(symbol("b"))
		c = NewParamRef(symbol("c"))
	)
	// (a + b) * c
	checkDump(t, "(a + b) * c", binary(MUL, binary(ADD, a, b), c))
	// a + b * c
	checkDump(t, "a + b * c", binary(ADD, a, binary(MUL, b, c)))
	// a - (b - c)
	checkDump(t, "a - (b - c)", binary(SUB, a, binary(SUB, b, c)))
	// (a - b) - c
	checkDump(t, "a - b - c", binary(SUB, binary(SUB, a, b), c))
	// a ** (b ** c)
	checkDump(t, "a ** b ** c", binary(POW, a, binary(POW, b, c)))
	checkDump(t, "(a ** b) ** c", binary(POW, binary(POW, a, b), c))
}

func Test_Dump_01(t *testing.T) {
	var (
		a = NewParamRef(symbol("a"))
		b = NewParamRef(symbol("b"))
		n = NewLiteral(IntValue(-2))
	)
	//
	checkDump(t, "-(a + b)", NewUnary(NEG, binary(ADD, a, b), deps.Constant(true)))
	checkDump(t, "a - -2", binary(SUB, a, n))
	checkDump(t, "-(-2)", NewUnary(NEG, n, deps.Constant(true)))
	checkDump(t, "(a < b ? a : b) + 1.0",
		binary(ADD, NewTernary(binary(LT, a, b), a, b, deps.Constant(true)), NewLiteral(RealValue(1))))
	checkDump(t, "max(a, 1)", NewCall("max", NewArgs(a, NewLiteral(IntValue(1))), nil, deps.Constant(true)))
}

func Test_Dump_02(t *testing.T) {
	c := topology.NewCircuit()
	p, _ := c.NewNode("p")
	n, _ := c.NewNode("n")
	ref, _ := c.NewBranch(p, n)
	rev, _ := c.NewBranch(n, p)
	//
	checkDump(t, "V(p, n)", NewBranchAccess("V", ref, topology.POTENTIAL))
	checkDump(t, "I(n, p)", NewBranchAccess("I", rev, topology.FLOW))
}

func Test_Postfix_00(t *testing.T) {
	var (
		a    = NewParamRef(symbol("a"))
		b    = NewParamRef(symbol("b"))
		one  = NewLiteral(IntValue(1))
		expr = NewExpression(binary(MUL, binary(ADD, a, one), b))
	)
	//
	var actual []string
	for _, n := range expr.Postfix() {
		actual = append(actual, Dump(n))
	}
	//
	expected := []string{"a", "1", "a + 1", "b", "(a + 1) * b"}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("postfix mismatch (-want +got):\n%s", diff)
	}
	// Root is last
	if expr.Postfix()[4] != expr.Root() {
		t.Errorf("root not last")
	}
}

func Test_Clone_00(t *testing.T) {
	c := topology.NewCircuit()
	p, _ := c.NewNode("p")
	ref, _ := c.NewBranch(p, nil)
	//
	access := NewBranchAccess("V", ref, topology.POTENTIAL)
	expr := NewExpression(binary(MUL, NewParamRef(symbol("g")), access))
	clone := expr.Clone()
	//
	if clone.Root() == expr.Root() || clone.String() != expr.String() {
		t.Errorf("clone should be a distinct but equal tree")
	}
	//
	if clone.Summary() == expr.Summary() || !clone.Summary().Equals(expr.Summary()) {
		t.Errorf("clone should have a distinct but equal summary")
	}
	// Probes are shared
	edge := clone.Summary().Deps().Edges()[0]
	if edge.Probe() != ref.Branch.Probe(topology.POTENTIAL) {
		t.Errorf("clone should share probes")
	}
}

func Test_Release_00(t *testing.T) {
	c := topology.NewCircuit()
	p, _ := c.NewNode("p")
	ref, _ := c.NewBranch(p, nil)
	filter := c.NewFilterBranch("ddt")
	//
	ref.Branch.Inc(topology.POTENTIAL_PROBE)
	AcquireFilter(filter)
	//
	access := NewBranchAccess("V", ref, topology.POTENTIAL)
	call := NewCall("ddt", NewArgs(access), filter, deps.Constant(false))
	Release(call)
	//
	if ref.Branch.IsUsed() || filter.IsUsed() {
		t.Errorf("release should drop all usage")
	}
}

func Test_Clone_01(t *testing.T) {
	c := topology.NewCircuit()
	p, _ := c.NewNode("p")
	ref, _ := c.NewBranch(p, nil)
	filter := c.NewFilterBranch("ddt")
	//
	ref.Branch.Inc(topology.POTENTIAL_PROBE)
	AcquireFilter(filter)
	//
	access := NewBranchAccess("V", ref, topology.POTENTIAL)
	expr := NewExpression(NewCall("ddt", NewArgs(access), filter, deps.Constant(false)))
	clone := expr.Clone()
	// The clone holds its own usage
	if ref.Branch.Count(topology.POTENTIAL_PROBE) != 2 || filter.Count(topology.FLOW_SOURCE) != 2 {
		t.Errorf("clone should acquire branch usage")
	}
	//
	Release(clone.Root())
	//
	if ref.Branch.Count(topology.POTENTIAL_PROBE) != 1 || filter.Count(topology.FLOW_SOURCE) != 1 {
		t.Errorf("releasing clone should leave original usage")
	}
	//
	Release(expr.Root())
	//
	if ref.Branch.IsUsed() || filter.IsUsed() {
		t.Errorf("release should drop all usage")
	}
}

func binary(op Op, lhs Node, rhs Node) *Binary {
	return NewBinary(op, lhs, rhs, deps.Combine(lhs.Summary(), rhs.Summary()))
}

func checkDump(t *testing.T, expected string, node Node) {
	if actual := Dump(node); actual != expected {
		t.Errorf("expected %s, got %s", expected, actual)
	}
}
