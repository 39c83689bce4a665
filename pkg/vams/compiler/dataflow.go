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
	"github.com/consensys/go-vams/pkg/vams/topology"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ORDER_LEVELS is the height of the dependency order lattice, which bounds how
// many times a given summary can be raised.
const ORDER_LEVELS = 4

// Fixpoint repeatedly updates a block until no summary changes, returning the
// number of iterations taken.  Since updates are monotonic, this terminates.
// Nevertheless, an iteration bound is enforced (see Config.MaxIterations).
func Fixpoint(block *Block, r *Resolver) (uint, error) {
	var bound = r.config.MaxIterations
	//
	if bound == 0 {
		bound = (block.Count() * ORDER_LEVELS) + 1
	}
	//
	for i := uint(1); i <= bound; i++ {
		changed, err := block.Update(r)
		//
		if err != nil {
			return i, err
		}
		//
		log.Debugf("dataflow iteration %d (changed %t)", i, changed)
		//
		if !changed {
			return i, nil
		}
	}
	//
	return bound, errors.Errorf("dataflow did not stabilise within %d iterations", bound)
}

// PropagateRDeps pushes reverse dependencies back from every contribution in a
// block, through the variables they read, to the probes they ultimately
// depend upon.  The markers for all contributions are returned.
func PropagateRDeps(block *Block) *topology.RDeps {
	return block.SeedRDeps()
}
