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
	"github.com/consensys/go-vams/pkg/vams/topology"
)

// Release walks a resolved node which is being discarded, and gives back the
// branch usage registered when it was resolved.
func Release(node Node) {
	switch n := node.(type) {
	case *BranchAccess:
		n.Ref.Branch.Dec(topology.ProbeUsage(n.Access))
	case *Call:
		if n.Filter != nil {
			ReleaseFilter(n.Filter)
		}
	}
	//
	for _, child := range node.Children() {
		Release(child)
	}
}

// AcquireFilter registers the usage of an internal filter branch, which is
// driven by a flow source and read through its potential.
func AcquireFilter(filter *topology.Branch) {
	filter.Inc(topology.POTENTIAL_PROBE)
	filter.Inc(topology.FLOW_SOURCE)
}

// ReleaseFilter gives back the usage registered by AcquireFilter.
func ReleaseFilter(filter *topology.Branch) {
	filter.Dec(topology.POTENTIAL_PROBE)
	filter.Dec(topology.FLOW_SOURCE)
}
