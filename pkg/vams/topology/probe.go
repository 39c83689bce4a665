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

	"github.com/consensys/go-vams/pkg/util/collection/set"
)

// Access identifies the kind of quantity accessed on a branch.
type Access uint8

// POTENTIAL identifies a potential (i.e. voltage) access.
const POTENTIAL Access = 0

// FLOW identifies a flow (i.e. current) access.
const FLOW Access = 1

func (a Access) String() string {
	if a == POTENTIAL {
		return "V"
	}
	//
	return "I"
}

// Marker records a reason why some quantity is needed.  Markers are pushed
// backwards from consumers (e.g. contributions) to the probes they read.
type Marker interface {
	String() string
}

// RDeps is a reverse-dependency set, which is an identity set of markers.
type RDeps = set.IdentitySet[Marker]

// NewRDeps constructs a reverse-dependency set from zero or more markers.
func NewRDeps(markers ...Marker) *RDeps {
	return set.NewIdentitySet(markers...)
}

// Probe represents a specific quantity access on a given branch.  Probes are
// interned per branch, hence two probes are the same iff they are pointer
// equal.
type Probe struct {
	branch *Branch
	access Access
	// Markers indicating who needs this probe.
	rdeps *RDeps
}

// Branch returns the branch being probed.
func (p *Probe) Branch() *Branch {
	return p.branch
}

// Access returns the kind of quantity being probed.
func (p *Probe) Access() Access {
	return p.access
}

// RDeps returns the reverse dependencies recorded against this probe.
func (p *Probe) RDeps() *RDeps {
	return p.rdeps
}

// PropagateRDeps records a given set of markers against this probe and its
// branch.  This returns true if the probe gained any new markers.
func (p *Probe) PropagateRDeps(markers *RDeps) bool {
	p.branch.rdeps.InsertAll(markers)
	//
	return p.rdeps.InsertAll(markers)
}

func (p *Probe) String() string {
	return fmt.Sprintf("%s%s", p.access.String(), p.branch.Pair())
}
