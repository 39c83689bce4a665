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

// Op identifies a unary or binary operator.
type Op uint8

// ADD represents addition (a + b).
const ADD Op = 0

// SUB represents subtraction (a - b).
const SUB Op = 1

// MUL represents multiplication (a * b).
const MUL Op = 2

// DIV represents division (a / b).
const DIV Op = 3

// MOD represents remainder (a % b).
const MOD Op = 4

// POW represents exponentiation (a ** b).
const POW Op = 5

// EQ represents equality (a == b).
const EQ Op = 6

// NEQ represents non-equality (a != b).
const NEQ Op = 7

// LT represents strictly less than (a < b).
const LT Op = 8

// LTEQ represents less than or equal (a <= b).
const LTEQ Op = 9

// GT represents strictly greater than (a > b).
const GT Op = 10

// GTEQ represents greater than or equal (a >= b).
const GTEQ Op = 11

// LAND represents logical conjunction (a && b).
const LAND Op = 12

// LOR represents logical disjunction (a || b).
const LOR Op = 13

// NEG represents arithmetic negation (-a).
const NEG Op = 14

// NOT represents logical negation (!a).
const NOT Op = 15

// PREC_TERNARY is the binding strength of a conditional expression.
const PREC_TERNARY uint = 0

// PREC_UNARY is the binding strength of unary operators.
const PREC_UNARY uint = 8

// PREC_ATOM is the binding strength of literals, references and calls.
const PREC_ATOM uint = 9

var opSymbols = []string{"+", "-", "*", "/", "%", "**", "==", "!=", "<", "<=", ">", ">=", "&&", "||", "-", "!"}

var opPrecedence = []uint{5, 5, 6, 6, 6, 7, 3, 3, 4, 4, 4, 4, 2, 1, PREC_UNARY, PREC_UNARY}

// Symbol returns the source-level symbol of this operator.
func (op Op) Symbol() string {
	return opSymbols[op]
}

// Precedence returns the binding strength of this operator, where higher
// values bind more tightly.
func (op Op) Precedence() uint {
	return opPrecedence[op]
}

// IsUnary checks whether this is a unary operator.
func (op Op) IsUnary() bool {
	return op == NEG || op == NOT
}

// IsCommutative checks whether operands of this operator can be swapped.
func (op Op) IsCommutative() bool {
	switch op {
	case ADD, MUL, EQ, NEQ, LAND, LOR:
		return true
	default:
		return false
	}
}

// IsAdditive checks whether this operator is addition or subtraction.
func (op Op) IsAdditive() bool {
	return op == ADD || op == SUB
}

// IsMultiplicative checks whether this operator is multiplication or division.
func (op Op) IsMultiplicative() bool {
	return op == MUL || op == DIV
}

// IsLogical checks whether this operator yields a truth value (i.e. is
// relational or logical).
func (op Op) IsLogical() bool {
	return (op >= EQ && op <= LOR) || op == NOT
}

// IsRightAssociative checks whether chains of this operator group to the
// right.
func (op Op) IsRightAssociative() bool {
	return op == POW
}

func (op Op) String() string {
	return op.Symbol()
}
