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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// EPSILON is substituted for an exact-zero divisor when folding a division.
const EPSILON = 1e-30

// ErrTypeMismatch is returned when an operator is applied to values it cannot
// combine (e.g. a string in an arithmetic position).
var ErrTypeMismatch = errors.New("type mismatch")

// Value is a compile-time known value, which is either an integer, a real or
// a string.
type Value interface {
	// String returns a source-level rendering of this value.
	String() string
	isValue()
}

// IntValue is an integer value.
type IntValue int64

// RealValue is a real value.
type RealValue float64

// StrValue is a string value.
type StrValue string

func (IntValue) isValue()  {}
func (RealValue) isValue() {}
func (StrValue) isValue()  {}

func (v IntValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

// String renders a real such that it is always read back as a real.
func (v RealValue) String() string {
	var s = strconv.FormatFloat(float64(v), 'g', -1, 64)
	//
	if !strings.ContainsAny(s, ".eIN") {
		s = s + ".0"
	}
	//
	return s
}

func (v StrValue) String() string {
	return strconv.Quote(string(v))
}

// IsZero checks whether a value is an exact numeric zero.
func IsZero(v Value) bool {
	switch v := v.(type) {
	case IntValue:
		return v == 0
	case RealValue:
		return v == 0
	default:
		return false
	}
}

// IsOne checks whether a value is an exact numeric one.
func IsOne(v Value) bool {
	switch v := v.(type) {
	case IntValue:
		return v == 1
	case RealValue:
		return v == 1
	default:
		return false
	}
}

// Truth determines the truth of a value used as a condition.
func Truth(v Value) (bool, error) {
	switch v := v.(type) {
	case IntValue:
		return v != 0, nil
	case RealValue:
		return v != 0, nil
	default:
		return false, errors.Wrapf(ErrTypeMismatch, "%s used as condition", v.String())
	}
}

// FoldUnary applies a unary operator to a known value.
func FoldUnary(op Op, v Value) (Value, error) {
	switch op {
	case NEG:
		switch v := v.(type) {
		case IntValue:
			return -v, nil
		case RealValue:
			return -v, nil
		}
	case NOT:
		if b, err := Truth(v); err == nil {
			return boolValue(!b), nil
		}
	}
	//
	return nil, errors.Wrapf(ErrTypeMismatch, "%s%s", op.Symbol(), v.String())
}

// Fold applies a binary operator to two known values.  Integer operands yield
// integer results (except for exponentiation with a negative exponent), and
// mixed operands are promoted to reals.  Relational and logical operators
// yield integers 0 or 1.
func Fold(op Op, lhs Value, rhs Value) (Value, error) {
	switch {
	case op == LAND || op == LOR:
		return foldLogical(op, lhs, rhs)
	case op == EQ || op == NEQ:
		if l, ok := lhs.(StrValue); ok {
			if r, ok := rhs.(StrValue); ok {
				return boolValue((l == r) == (op == EQ)), nil
			}
		}
	}
	//
	l, lok := lhs.(IntValue)
	r, rok := rhs.(IntValue)
	//
	if lok && rok {
		if v, ok := foldInt(op, l, r); ok {
			return v, nil
		}
	}
	//
	lr, lok := asReal(lhs)
	rr, rok := asReal(rhs)
	//
	if !lok || !rok {
		return nil, mismatch(op, lhs, rhs)
	}
	//
	return foldReal(op, lr, rr)
}

func foldLogical(op Op, lhs Value, rhs Value) (Value, error) {
	l, lerr := Truth(lhs)
	r, rerr := Truth(rhs)
	//
	if lerr != nil || rerr != nil {
		return nil, mismatch(op, lhs, rhs)
	} else if op == LAND {
		return boolValue(l && r), nil
	}
	//
	return boolValue(l || r), nil
}

// foldInt folds integer operands, returning false when the result must be
// computed over reals instead.
func foldInt(op Op, l IntValue, r IntValue) (Value, bool) {
	switch op {
	case ADD:
		return l + r, true
	case SUB:
		return l - r, true
	case MUL:
		return l * r, true
	case DIV:
		if r == 0 {
			return nil, false
		}
		//
		return l / r, true
	case MOD:
		if r == 0 {
			return nil, false
		}
		//
		return l % r, true
	case POW:
		if r < 0 || r > 63 {
			return nil, false
		}
		//
		var acc IntValue = 1
		for i := IntValue(0); i < r; i++ {
			acc *= l
		}
		//
		return acc, true
	case EQ:
		return boolValue(l == r), true
	case NEQ:
		return boolValue(l != r), true
	case LT:
		return boolValue(l < r), true
	case LTEQ:
		return boolValue(l <= r), true
	case GT:
		return boolValue(l > r), true
	case GTEQ:
		return boolValue(l >= r), true
	}
	//
	return nil, false
}

func foldReal(op Op, l RealValue, r RealValue) (Value, error) {
	switch op {
	case ADD:
		return l + r, nil
	case SUB:
		return l - r, nil
	case MUL:
		return l * r, nil
	case DIV:
		if r == 0 {
			r = EPSILON
		}
		//
		return l / r, nil
	case MOD:
		if r == 0 {
			return nil, mismatch(op, l, r)
		}
		//
		return RealValue(math.Mod(float64(l), float64(r))), nil
	case POW:
		return RealValue(math.Pow(float64(l), float64(r))), nil
	case EQ:
		return boolValue(l == r), nil
	case NEQ:
		return boolValue(l != r), nil
	case LT:
		return boolValue(l < r), nil
	case LTEQ:
		return boolValue(l <= r), nil
	case GT:
		return boolValue(l > r), nil
	case GTEQ:
		return boolValue(l >= r), nil
	}
	//
	return nil, mismatch(op, l, r)
}

func asReal(v Value) (RealValue, bool) {
	switch v := v.(type) {
	case IntValue:
		return RealValue(v), true
	case RealValue:
		return v, true
	default:
		return 0, false
	}
}

func boolValue(b bool) IntValue {
	if b {
		return 1
	}
	//
	return 0
}

func mismatch(op Op, lhs Value, rhs Value) error {
	return errors.Wrap(ErrTypeMismatch, fmt.Sprintf("%s %s %s", lhs.String(), op.Symbol(), rhs.String()))
}
