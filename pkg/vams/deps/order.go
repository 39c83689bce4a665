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

// Order describes how strongly a value depends upon a probe.  Orders form a
// lattice NONE < LINEAR < QUADRATIC < ANY.
type Order uint8

// NONE indicates the value depends upon the probe, but with zero derivative
// (e.g. the probe only appears within a condition).
const NONE Order = 0

// LINEAR indicates the value is (at most) linear in the probe.
const LINEAR Order = 1

// QUADRATIC indicates the value is (at most) quadratic in the probe.
const QUADRATIC Order = 2

// ANY indicates the value depends upon the probe in an arbitrary fashion.
const ANY Order = 3

// Raise returns the order obtained by multiplying with something which itself
// varies.  Observe that NONE is unaffected, since a piecewise-constant factor
// remains piecewise constant.
func (o Order) Raise() Order {
	if o == NONE || o == ANY {
		return o
	}
	//
	return o + 1
}

// Join returns the least upper bound of two orders.
func (o Order) Join(other Order) Order {
	return max(o, other)
}

func (o Order) String() string {
	switch o {
	case NONE:
		return "none"
	case LINEAR:
		return "linear"
	case QUADRATIC:
		return "quadratic"
	default:
		return "any"
	}
}
