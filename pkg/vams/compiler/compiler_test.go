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
	"testing"

	"github.com/consensys/go-vams/pkg/vams/ir"
	"github.com/consensys/go-vams/pkg/vams/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Config_00(t *testing.T) {
	var config = DefaultConfig()
	//
	config.Parameters["b"] = "2.5"
	config.Parameters["a"] = "10k"
	//
	assert.Equal(t, []string{"a", "b"}, config.Overrides())
	//
	value, ok, err := config.Override("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ir.RealValue(10000), value)
	//
	_, ok, err = config.Override("c")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func Test_Config_01(t *testing.T) {
	var (
		config = DefaultConfig()
		clone  = config.Clone()
	)
	//
	clone.AccessFunctions["Temp"] = "potential"
	clone.Parameters["x"] = "1"
	// Modifying a clone does not affect the original.
	_, ok := config.Access("Temp")
	assert.False(t, ok)
	assert.Empty(t, config.Parameters)
	//
	access, ok := clone.Access("Temp")
	assert.True(t, ok)
	assert.Equal(t, topology.POTENTIAL, access)
	//
	clone.AccessFunctions["Q"] = "charge"
	assert.Error(t, clone.Validate())
	assert.NoError(t, config.Validate())
}

func Test_Config_02(t *testing.T) {
	var config = DefaultConfig()
	//
	config.Parameters["a"] = "\"unterminated"
	//
	_, _, err := config.Override("a")
	assert.Error(t, err)
}

func Test_Scope_00(t *testing.T) {
	var (
		outer = NewScope(nil)
		inner = NewScope(outer)
		x     = NewVariable("x", REAL)
		y     = NewVariable("x", INTEGER)
	)
	//
	assert.True(t, outer.Define(x))
	assert.False(t, outer.Define(NewVariable("x", REAL)))
	// Shadowing an outer binding is permitted.
	assert.True(t, inner.Define(y))
	assert.Same(t, y, inner.Lookup("x"))
	assert.Same(t, x, outer.Lookup("x"))
	assert.Nil(t, inner.Lookup("z"))
	assert.Len(t, outer.Bindings(), 1)
}

func Test_Scope_01(t *testing.T) {
	var (
		outer = NewScope(nil)
		inner = NewScope(outer)
	)
	//
	assert.Equal(t, ALWAYS, inner.Reachability())
	assert.True(t, inner.Always())
	//
	outer.SetReachability(UNKNOWN, "a > 0")
	inner.SetReachability(ALWAYS, "b")
	//
	assert.Equal(t, UNKNOWN, inner.Reachability())
	assert.False(t, inner.Always())
	assert.Equal(t, "a > 0 && b", inner.String())
	//
	inner.SetReachability(NEVER, "!(b)")
	assert.Equal(t, NEVER, inner.Reachability())
}

func Test_Errors_00(t *testing.T) {
	var err = newError(DEFERRED, "br", "branch not declared")
	//
	assert.True(t, IsDeferred(err))
	assert.Equal(t, "unknown branch \"br\": branch not declared", err.Error())
	//
	kind, ok := KindOf(newError(MALFORMED, "", "oops"))
	assert.True(t, ok)
	assert.Equal(t, MALFORMED, kind)
	assert.Equal(t, "malformed expression: oops", newError(MALFORMED, "", "oops").Error())
}

func Test_Resolver_00(t *testing.T) {
	var (
		circuit  = topology.NewCircuit()
		resolver = NewResolver(circuit, DefaultConfig())
		scope    = NewScope(nil)
	)
	// An operator without enough operands.
	_, err := resolver.Resolve(ir.NewRaw(ir.NewLiteral(ir.IntValue(1)), &ir.BinaryOp{Op: ir.ADD}), scope)
	kind, _ := KindOf(err)
	assert.Equal(t, MALFORMED, kind)
	// Too many values.
	_, err = resolver.Resolve(ir.NewRaw(ir.NewLiteral(ir.IntValue(1)), ir.NewLiteral(ir.IntValue(2))), scope)
	kind, _ = KindOf(err)
	assert.Equal(t, MALFORMED, kind)
}

func Test_Resolver_01(t *testing.T) {
	var (
		circuit  = topology.NewCircuit()
		resolver = NewResolver(circuit, DefaultConfig())
		scope    = NewScope(nil)
		p, _     = circuit.NewNode("p")
	)
	//
	scope.Define(&Port{p})
	// V(p) + undefined
	raw := ir.NewRaw(&ir.Marker{}, &ir.Identifier{Name: "p"}, &ir.ArgList{}, &ir.Identifier{Name: "V"},
		&ir.Identifier{Name: "q"}, &ir.BinaryOp{Op: ir.ADD})
	//
	_, err := resolver.Resolve(raw, scope)
	require.Error(t, err)
	// Usage registered before the failure is given back.
	for _, b := range circuit.Branches() {
		assert.False(t, b.IsUsed())
	}
}
