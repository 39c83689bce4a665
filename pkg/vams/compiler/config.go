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
	"github.com/consensys/go-vams/pkg/vams/ir"
	"github.com/consensys/go-vams/pkg/vams/topology"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DEFAULT_ACCESS_FUNCTIONS are the access functions of the electrical
// discipline.
var DEFAULT_ACCESS_FUNCTIONS = map[string]string{"V": "potential", "I": "flow"}

// Config determines how modules are elaborated.
type Config struct {
	// Simplify enables algebraic simplification during resolution.
	Simplify bool `yaml:"simplify"`
	// Parameters maps parameter names to overriding values (in source form).
	// An overridden parameter has a hard value.
	Parameters map[string]string `yaml:"parameters"`
	// AccessFunctions maps access function names to "potential" or "flow".
	AccessFunctions map[string]string `yaml:"access"`
	// MaxIterations bounds the dataflow fixpoint.  Zero selects a bound
	// derived from the number of statements.
	MaxIterations uint `yaml:"max-iterations"`
}

// DefaultConfig returns the default configuration, which simplifies and
// recognises the access functions of the electrical discipline.
func DefaultConfig() Config {
	return Config{true, make(map[string]string), maps.Clone(DEFAULT_ACCESS_FUNCTIONS), 0}
}

// Clone returns a copy of this configuration, which can be modified without
// affecting the original.
func (c Config) Clone() Config {
	var clone = c
	//
	clone.Parameters = maps.Clone(c.Parameters)
	clone.AccessFunctions = maps.Clone(c.AccessFunctions)
	//
	return clone
}

// Overrides returns the names of all overridden parameters in sorted order.
func (c Config) Overrides() []string {
	var names = make([]string, 0, len(c.Parameters))
	//
	for name := range c.Parameters {
		names = append(names, name)
	}
	//
	slices.Sort(names)
	//
	return names
}

// Override returns the overriding value of a given parameter (if any).
func (c Config) Override(name string) (ir.Value, bool, error) {
	text, ok := c.Parameters[name]
	//
	if !ok {
		return nil, false, nil
	}
	//
	value, err := ir.ParseValue(text)
	if err != nil {
		return nil, false, errors.Wrapf(err, "parameter %s", name)
	}
	//
	return value, true, nil
}

// Access determines whether a given name is an access function and, if so,
// what it accesses.
func (c Config) Access(name string) (topology.Access, bool) {
	switch c.AccessFunctions[name] {
	case "potential":
		return topology.POTENTIAL, true
	case "flow":
		return topology.FLOW, true
	default:
		return 0, false
	}
}

// Validate checks that every access function is either a potential or a flow.
func (c Config) Validate() error {
	for name, kind := range c.AccessFunctions {
		if kind != "potential" && kind != "flow" {
			return errors.Errorf("access function %s has unknown kind %s", name, kind)
		}
	}
	//
	return nil
}
