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
	"testing"

	"github.com/pkg/errors"
)

func Test_Fold_00(t *testing.T) {
	checkFold(t, ADD, IntValue(2), IntValue(3), IntValue(5))
	checkFold(t, MUL, IntValue(3), IntValue(4), IntValue(12))
	checkFold(t, DIV, IntValue(7), IntValue(2), IntValue(3))
	checkFold(t, MOD, IntValue(7), IntValue(2), IntValue(1))
	checkFold(t, POW, IntValue(2), IntValue(10), IntValue(1024))
}

func Test_Fold_01(t *testing.T) {
	checkFold(t, ADD, IntValue(1), RealValue(0.5), RealValue(1.5))
	checkFold(t, DIV, RealValue(1), IntValue(4), RealValue(0.25))
	checkFold(t, POW, IntValue(2), IntValue(-1), RealValue(0.5))
}

func Test_Fold_02(t *testing.T) {
	checkFold(t, LT, IntValue(1), RealValue(1.5), IntValue(1))
	checkFold(t, EQ, StrValue("a"), StrValue("a"), IntValue(1))
	checkFold(t, NEQ, StrValue("a"), StrValue("a"), IntValue(0))
	checkFold(t, LAND, IntValue(2), RealValue(0), IntValue(0))
	checkFold(t, LOR, IntValue(0), IntValue(3), IntValue(1))
}

func Test_Fold_03(t *testing.T) {
	// Division by zero substitutes a tiny divisor
	var tiny = RealValue(EPSILON)
	//
	checkFold(t, DIV, RealValue(1), RealValue(0), 1/tiny)
	checkFold(t, DIV, IntValue(1), IntValue(0), 1/tiny)
}

func Test_Fold_04(t *testing.T) {
	_, err := Fold(ADD, StrValue("a"), IntValue(1))
	//
	if errors.Cause(err) != ErrTypeMismatch {
		t.Errorf("expected type mismatch, got %v", err)
	}
	//
	if _, err = FoldUnary(NEG, StrValue("a")); errors.Cause(err) != ErrTypeMismatch {
		t.Errorf("expected type mismatch, got %v", err)
	}
}

func Test_FoldUnary_00(t *testing.T) {
	checkFoldUnary(t, NEG, IntValue(2), IntValue(-2))
	checkFoldUnary(t, NEG, RealValue(2.5), RealValue(-2.5))
	checkFoldUnary(t, NOT, IntValue(0), IntValue(1))
	checkFoldUnary(t, NOT, RealValue(1.5), IntValue(0))
}

func Test_Value_00(t *testing.T) {
	checkString(t, IntValue(-3), "-3")
	checkString(t, RealValue(2), "2.0")
	checkString(t, RealValue(0.5), "0.5")
	checkString(t, RealValue(1e-30), "1e-30")
	checkString(t, StrValue("x\"y"), `"x\"y"`)
}

func checkFold(t *testing.T, op Op, lhs Value, rhs Value, expected Value) {
	actual, err := Fold(op, lhs, rhs)
	//
	if err != nil {
		t.Errorf("%s %s %s: unexpected error %v", lhs, op, rhs, err)
	} else if actual != expected {
		t.Errorf("%s %s %s: expected %s, got %s", lhs, op, rhs, expected, actual)
	}
}

func checkFoldUnary(t *testing.T, op Op, arg Value, expected Value) {
	actual, err := FoldUnary(op, arg)
	//
	if err != nil {
		t.Errorf("%s%s: unexpected error %v", op, arg, err)
	} else if actual != expected {
		t.Errorf("%s%s: expected %s, got %s", op, arg, expected, actual)
	}
}

func checkString(t *testing.T, value Value, expected string) {
	if actual := value.String(); actual != expected {
		t.Errorf("expected %s, got %s", expected, actual)
	}
}

func Test_ParseValue_00(t *testing.T) {
	checkParse(t, "42", IntValue(42))
	checkParse(t, "1_000", IntValue(1000))
	checkParse(t, "1.5", RealValue(1.5))
	checkParse(t, "2e3", RealValue(2000))
	checkParse(t, "10k", RealValue(10000))
	checkParse(t, "2m", RealValue(0.002))
	checkParse(t, `"abc"`, StrValue("abc"))
	//
	for _, bad := range []string{"", "x", "1.2.3", `"abc`} {
		if _, err := ParseValue(bad); err == nil {
			t.Errorf("expected error parsing %q", bad)
		}
	}
}

func checkParse(t *testing.T, text string, expected Value) {
	actual, err := ParseValue(text)
	//
	if err != nil {
		t.Errorf("%s: unexpected error %v", text, err)
	} else if actual != expected {
		t.Errorf("%s: expected %s, got %s", text, expected, actual)
	}
}
