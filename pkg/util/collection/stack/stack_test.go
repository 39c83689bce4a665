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

import (
	"slices"
	"testing"
)

func Test_Stack_00(t *testing.T) {
	var s = NewStack[int]()
	//
	s.Push(1)
	s.Push(2)
	s.Push(3)
	//
	if s.Peek(0) != 3 || s.Peek(2) != 1 {
		t.Errorf("unexpected peek")
	}
	//
	if s.Pop() != 3 || s.Len() != 2 {
		t.Errorf("unexpected pop")
	}
}

func Test_Stack_01(t *testing.T) {
	var s = NewStack[int]()
	//
	for i := range 5 {
		s.Push(i)
	}
	//
	items, ok := s.PopN(3)
	if !ok || !slices.Equal(items, []int{2, 3, 4}) {
		t.Errorf("unexpected items %v", items)
	}
	//
	if _, ok := s.PopN(3); ok || s.Len() != 2 {
		t.Errorf("popping too many items should fail without effect")
	}
}

func Test_Stack_02(t *testing.T) {
	var s = NewStack[int]()
	//
	for _, i := range []int{7, -1, 8, 9} {
		s.Push(i)
	}
	//
	items, ok := s.PopUntil(func(i int) bool { return i < 0 })
	if !ok || !slices.Equal(items, []int{8, 9}) || s.Len() != 1 {
		t.Errorf("unexpected items %v", items)
	}
	//
	if _, ok := s.PopUntil(func(i int) bool { return i < 0 }); ok || s.Len() != 1 {
		t.Errorf("missing marker should leave stack unchanged")
	}
}
