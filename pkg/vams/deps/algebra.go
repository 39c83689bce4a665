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

// Combine returns the summary of an additive combination (e.g. addition or
// subtraction) of zero or more operands.  Edges are unioned in operand order,
// the result has an offset if any operand does, and is constant only if every
// operand is.
func Combine(operands ...*Summary) *Summary {
	var result = NewSummary(false, true)
	//
	for _, op := range operands {
		result.include(op, op.deps)
		result.offset = result.offset || op.offset
		result.constant = result.constant && op.constant
	}
	//
	return result
}

// Multiply returns the summary of a product.  When one operand has probe
// dependencies, the edges of the other operand are raised by one order (since
// e.g. a product of two linear terms is quadratic).  The result has an offset
// only when both operands do.
func Multiply(lhs *Summary, rhs *Summary) *Summary {
	var (
		result = NewSummary(lhs.offset && rhs.offset, lhs.constant && rhs.constant)
		ldeps  = lhs.deps
		rdeps  = rhs.deps
	)
	//
	if rhs.HasDeps() {
		ldeps = lhs.deps.Map(Order.Raise)
	}
	//
	if lhs.HasDeps() {
		rdeps = rhs.deps.Map(Order.Raise)
	}
	//
	result.include(lhs, ldeps)
	result.include(rhs, rdeps)
	//
	return result
}

// Divide returns the summary of a quotient.  When the denominator has probe
// dependencies, every edge of the result is of arbitrary order.  The result has
// an offset exactly when the numerator does.
func Divide(num *Summary, den *Summary) *Summary {
	var (
		result = NewSummary(num.offset, num.constant && den.constant)
		ndeps  = num.deps
		ddeps  = den.deps
	)
	//
	if den.HasDeps() {
		ndeps = num.deps.Map(toAny)
		ddeps = den.deps.Map(toAny)
	}
	//
	result.include(num, ndeps)
	result.include(den, ddeps)
	//
	return result
}

// Logical returns the summary of a relational or logical operation.  Such
// values are piecewise constant in their inputs, hence every edge is NONE.
// The result is conservatively assumed to have an offset.
func Logical(operands ...*Summary) *Summary {
	var result = NewSummary(true, true)
	//
	for _, op := range operands {
		result.include(op, op.deps.Map(toNone))
		result.constant = result.constant && op.constant
	}
	//
	return result
}

// Opaque returns the summary of an arbitrary function application (e.g. exp or
// sin), where nothing is known about the function other than its arguments.
func Opaque(operands ...*Summary) *Summary {
	var result = NewSummary(true, true)
	//
	for _, op := range operands {
		result.include(op, op.deps.Map(toAny))
		result.constant = result.constant && op.constant
	}
	//
	return result
}

// Select returns the summary of a conditional expression "cond ? lhs : rhs".
// Edges from both branches are inserted before those of the condition, so a
// probe appearing in a branch retains its order from that branch whilst a
// probe appearing only in the condition is NONE.  The constant flag follows
// the condition alone.
func Select(cond *Summary, lhs *Summary, rhs *Summary) *Summary {
	var result = NewSummary(lhs.offset || rhs.offset, cond.constant)
	//
	result.include(lhs, lhs.deps)
	result.include(rhs, rhs.deps)
	result.include(cond, cond.deps.Map(toNone))
	//
	return result
}

// include inserts a set of (possibly transformed) edges along with the
// consumers of their originating summary.
func (s *Summary) include(origin *Summary, edges Set) {
	s.deps.Union(edges)
	s.consumers.InsertAll(origin.consumers)
}

func toNone(Order) Order {
	return NONE
}

func toAny(Order) Order {
	return ANY
}
