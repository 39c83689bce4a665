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
package stack

// Stack represents a reusable LIFO stack which is implemented using an array.
// This is the working stack used when resolving postfix expressions, hence it
// supports popping a fixed number of operands in their original order, and
// popping back to the most recent item matching some predicate (e.g. a marker
// pushed at the start of an argument list).
type Stack[T any] struct {
	items []T
}

// NewStack returns an empty stack
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// IsEmpty checks whether or not there are still items on the stack
func (p *Stack[T]) IsEmpty() bool {
	return p.Len() == 0
}

// Len returns the number of items on the stack.
func (p *Stack[T]) Len() uint {
	return uint(len(p.items))
}

// Peek returns the item at a given offset from the top of the stack, where an
// offset of 0 identifies the topmost item.
func (p *Stack[T]) Peek(offset uint) T {
	var n = len(p.items) - int(offset) - 1
	//
	if n < 0 {
		panic("peek out-of-bounds")
	}
	//
	return p.items[n]
}

// Push an item onto the stack.
func (p *Stack[T]) Push(item T) {
	p.items = append(p.items, item)
}

// Pop the topmost item off the stack.
func (p *Stack[T]) Pop() T {
	var n = len(p.items)
	//
	if n == 0 {
		panic("cannot pop from empty stack")
	}
	// Get last item
	item := p.items[n-1]
	// Remove last item
	p.items = p.items[:n-1]
	// Done
	return item
}

// PopN pops the topmost n items off the stack, returning them in the order
// they were pushed (i.e. the deepest item first).  If fewer than n items are
// present, then nothing is popped and false is returned.
func (p *Stack[T]) PopN(n uint) ([]T, bool) {
	var m = len(p.items) - int(n)
	//
	if m < 0 {
		return nil, false
	}
	//
	items := make([]T, n)
	copy(items, p.items[m:])
	p.items = p.items[:m]
	//
	return items, true
}

// PopUntil pops items until one matching the given predicate is found.  The
// matching item is also removed, but is not returned.  Items are returned in
// the order they were pushed.  If no matching item exists, the stack is left
// unchanged and false is returned.
func (p *Stack[T]) PopUntil(predicate func(T) bool) ([]T, bool) {
	for i := len(p.items) - 1; i >= 0; i-- {
		if predicate(p.items[i]) {
			items := make([]T, len(p.items)-i-1)
			copy(items, p.items[i+1:])
			p.items = p.items[:i]
			//
			return items, true
		}
	}
	//
	return nil, false
}

// Items returns the items currently on the stack, deepest first.  The returned
// slice must not be modified.
func (p *Stack[T]) Items() []T {
	return p.items
}
