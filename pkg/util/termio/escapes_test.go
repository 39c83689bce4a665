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
package termio

import "testing"

func Test_Escape_00(t *testing.T) {
	if actual := BoldAnsiEscape().FgColour(TERM_RED).Build(); actual != "\033[1;31m" {
		t.Errorf("unexpected escape %q", actual)
	}
}

func Test_Escape_01(t *testing.T) {
	if actual := Highlight("^^", TERM_GREEN, true); actual != "\033[1;32m^^\033[0m" {
		t.Errorf("unexpected highlight %q", actual)
	} else if actual := Highlight("^^", TERM_GREEN, false); actual != "^^" {
		t.Errorf("unexpected highlight %q", actual)
	}
}
