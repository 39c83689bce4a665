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
package util

import (
	"slices"
	"testing"
)

func Test_RemoveMatching_00(t *testing.T) {
	var (
		items  = []uint{1, 2, 3, 4, 5}
		actual = RemoveMatching(items, func(n uint) bool { return n%2 == 0 })
	)
	//
	if !slices.Equal(actual, []uint{1, 3, 5}) {
		t.Errorf("unexpected result %v", actual)
	} else if !slices.Equal(items, []uint{1, 2, 3, 4, 5}) {
		t.Errorf("original modified %v", items)
	}
}

func Test_RemoveMatching_01(t *testing.T) {
	var actual = RemoveMatching([]string{"a", "b"}, func(s string) bool { return s == "c" })
	//
	if !slices.Equal(actual, []string{"a", "b"}) {
		t.Errorf("unexpected result %v", actual)
	}
}

func Test_Option_00(t *testing.T) {
	var (
		some = Some(true)
		none = None[bool]()
	)
	//
	if !some.HasValue() || !some.Unwrap() || some.String() != "Some(true)" {
		t.Errorf("unexpected option %s", some.String())
	} else if !none.IsEmpty() || none.String() != "None" {
		t.Errorf("unexpected option %s", none.String())
	}
}
