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
package set

// IdentitySet is a set of items compared by identity (i.e. using Go's built-in
// equality, which for pointers means pointer equality).  Iteration follows
// insertion order, which keeps any output derived from the set deterministic,
// although nothing else relies upon that order.
type IdentitySet[T comparable] struct {
	// Index of each item within the items array.
	index map[T]uint
	// Items in the order of insertion.
	items []T
}

// NewIdentitySet constructs an empty identity set, optionally initialised with
// some items.
func NewIdentitySet[T comparable](items ...T) *IdentitySet[T] {
	var set = &IdentitySet[T]{make(map[T]uint), nil}
	//
	for _, item := range items {
		set.Insert(item)
	}
	//
	return set
}

// Len returns the number of items in this set.
func (p *IdentitySet[T]) Len() uint {
	if p == nil {
		return 0
	}
	//
	return uint(len(p.items))
}

// IsEmpty checks whether this set contains any items.
func (p *IdentitySet[T]) IsEmpty() bool {
	return p.Len() == 0
}

// Contains checks whether a given item is contained in this set.
func (p *IdentitySet[T]) Contains(item T) bool {
	if p == nil {
		return false
	}
	//
	_, ok := p.index[item]
	//
	return ok
}

// Insert an item into this set, returning true if the item was not already
// present.
func (p *IdentitySet[T]) Insert(item T) bool {
	if _, ok := p.index[item]; ok {
		return false
	}
	//
	p.index[item] = uint(len(p.items))
	p.items = append(p.items, item)
	//
	return true
}

// InsertAll inserts every item of another set into this set, returning true if
// at least one item was not already present.
func (p *IdentitySet[T]) InsertAll(other *IdentitySet[T]) bool {
	var changed = false
	//
	if other == nil {
		return false
	}
	//
	for _, item := range other.items {
		changed = p.Insert(item) || changed
	}
	//
	return changed
}

// Items returns the items of this set in insertion order.  The returned slice
// must not be modified.
func (p *IdentitySet[T]) Items() []T {
	if p == nil {
		return nil
	}
	//
	return p.items
}

// SubsetOf checks whether every item in this set is contained in another.
func (p *IdentitySet[T]) SubsetOf(other *IdentitySet[T]) bool {
	for _, item := range p.Items() {
		if !other.Contains(item) {
			return false
		}
	}
	//
	return true
}

// Equals checks whether two sets contain exactly the same items, irrespective
// of insertion order.
func (p *IdentitySet[T]) Equals(other *IdentitySet[T]) bool {
	return p.Len() == other.Len() && p.SubsetOf(other)
}

// Clone returns a shallow copy of this set.
func (p *IdentitySet[T]) Clone() *IdentitySet[T] {
	var clone = NewIdentitySet[T]()
	//
	clone.InsertAll(p)
	//
	return clone
}
