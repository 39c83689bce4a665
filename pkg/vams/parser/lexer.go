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
package parser

import (
	"github.com/consensys/go-vams/pkg/util/source/lex"
	"github.com/consensys/go-vams/pkg/vams/ir"
)

// END_OF signals "end of file"
const END_OF uint = 0

// NUMBER signals an integer or real number
const NUMBER uint = 3

// STRING signals a quoted string
const STRING uint = 4

// IDENTIFIER signals an identifier (or keyword)
const IDENTIFIER uint = 5

// LBRACE signals "left brace"
const LBRACE uint = 6

// RBRACE signals "right brace"
const RBRACE uint = 7

// COMMA signals a comma
const COMMA uint = 8

// SEMICOLON signals a semicolon
const SEMICOLON uint = 9

// COLON signals a colon
const COLON uint = 10

// QMARK signals the question mark of a conditional expression
const QMARK uint = 11

// CONTRIBUTE signals a contribution "<+"
const CONTRIBUTE uint = 12

// ASSIGN signals an assignment "="
const ASSIGN uint = 13

// ADD signals addition
const ADD uint = 14

// SUB signals subtraction (or negation)
const SUB uint = 15

// MUL signals multiplication
const MUL uint = 16

// DIV signals division
const DIV uint = 17

// MOD signals remainder
const MOD uint = 18

// POW signals exponentiation
const POW uint = 19

// EQUALS signals an equality
const EQUALS uint = 20

// NOT_EQUALS signals a non-equality
const NOT_EQUALS uint = 21

// LESSTHAN signals a (strict) inequality X < Y
const LESSTHAN uint = 22

// LESSTHAN_EQUALS signals a (non-strict) inequality X <= Y
const LESSTHAN_EQUALS uint = 23

// GREATERTHAN signals a (strict) inequality X > Y
const GREATERTHAN uint = 24

// GREATERTHAN_EQUALS signals a (non-strict) inequality X >= Y
const GREATERTHAN_EQUALS uint = 25

// AND represents logical conjunction
const AND uint = 26

// OR represents logical disjunction
const OR uint = 27

// NOT represents logical negation
const NOT uint = 28

// LSQUARE signals "left square bracket"
const LSQUARE uint = 29

// RSQUARE signals "right square bracket"
const RSQUARE uint = 30

// BINOPS maps binary operator tokens to their operators.
var BINOPS = map[uint]ir.Op{
	ADD: ir.ADD, SUB: ir.SUB, MUL: ir.MUL, DIV: ir.DIV, MOD: ir.MOD, POW: ir.POW,
	EQUALS: ir.EQ, NOT_EQUALS: ir.NEQ, LESSTHAN: ir.LT, LESSTHAN_EQUALS: ir.LTEQ,
	GREATERTHAN: ir.GT, GREATERTHAN_EQUALS: ir.GTEQ, AND: ir.LAND, OR: ir.LOR,
}

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\n'), lex.Unit('\r')))

// Rule for describing line comments
var lineComment lex.Scanner[rune] = lex.SequenceNullableLast(lex.String("//"), lex.Until('\n'))

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Unit('$'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Unit('$'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.Then(identifierStart, identifierRest)

// Rule for describing block comments
var blockComment lex.Scanner[rune] = lex.Between([]rune("/*"), []rune("*/"))

// Rule for describing numbers
var number lex.Scanner[rune] = scanNumber

// Rule for describing strings
var str lex.Scanner[rune] = scanString

// lexing rules.  Since the first matching rule wins, longer operators precede
// their prefixes.
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Skip(lineComment),
	lex.Skip(blockComment),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('['), LSQUARE),
	lex.Rule(lex.Unit(']'), RSQUARE),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(lex.Unit(':'), COLON),
	lex.Rule(lex.Unit('?'), QMARK),
	lex.Rule(lex.Unit('<', '+'), CONTRIBUTE),
	lex.Rule(lex.Unit('<', '='), LESSTHAN_EQUALS),
	lex.Rule(lex.Unit('<'), LESSTHAN),
	lex.Rule(lex.Unit('>', '='), GREATERTHAN_EQUALS),
	lex.Rule(lex.Unit('>'), GREATERTHAN),
	lex.Rule(lex.Unit('=', '='), EQUALS),
	lex.Rule(lex.Unit('='), ASSIGN),
	lex.Rule(lex.Unit('!', '='), NOT_EQUALS),
	lex.Rule(lex.Unit('!'), NOT),
	lex.Rule(lex.Unit('&', '&'), AND),
	lex.Rule(lex.Unit('|', '|'), OR),
	lex.Rule(lex.Unit('+'), ADD),
	lex.Rule(lex.Unit('-'), SUB),
	lex.Rule(lex.Unit('*', '*'), POW),
	lex.Rule(lex.Unit('*'), MUL),
	lex.Rule(lex.Unit('/'), DIV),
	lex.Rule(lex.Unit('%'), MOD),
	lex.Skip(whitespace),
	lex.Rule(number, NUMBER),
	lex.Rule(str, STRING),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// scanString matches a quoted string, which may contain escaped characters.
func scanString(items []rune) uint {
	if len(items) == 0 || items[0] != '"' {
		return 0
	}
	//
	for i := 1; i < len(items); i++ {
		switch items[i] {
		case '\\':
			i++
		case '"':
			return uint(i + 1)
		}
	}
	//
	return 0
}

// scanNumber matches a decimal number with an optional fraction, exponent and
// scale factor (e.g. "10", "1.5e-3" or "4.7k").
func scanNumber(items []rune) uint {
	var n = digits(items)
	//
	if n == 0 {
		return 0
	}
	// Fraction
	if n < len(items) && items[n] == '.' {
		if m := digits(items[n+1:]); m > 0 {
			n += m + 1
		}
	}
	// Exponent
	if n < len(items) && (items[n] == 'e' || items[n] == 'E') {
		var sign = n + 1
		//
		if sign < len(items) && (items[sign] == '+' || items[sign] == '-') {
			sign++
		}
		//
		if m := digits(items[sign:]); m > 0 {
			return uint(sign + m)
		}
	}
	// Scale factor, provided it is not the start of an identifier
	if n < len(items) && ir.SCALE_FACTORS[byte(items[n])] != 0 && items[n] < 128 {
		if n+1 == len(items) || identifierRest(items[n+1:n+2]) == 0 {
			return uint(n + 1)
		}
	}
	//
	return uint(n)
}

func digits(items []rune) int {
	var n = 0
	//
	for n < len(items) && (items[n] == '_' || ('0' <= items[n] && items[n] <= '9')) {
		n++
	}
	//
	return n
}
