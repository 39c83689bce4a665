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
	"strings"
)

// Token is an element of a raw (i.e. unresolved) expression.  Tokens are held
// in postfix order, and operator tokens carry no operands: these are taken
// from the working stack during resolution.
type Token interface {
	token()
}

// Identifier is a name yet to be looked up.  When the top of the working
// stack is an argument list, the identifier denotes a call or an access.
type Identifier struct {
	Name string
}

// UnaryOp applies a unary operator to the topmost stack entry.
type UnaryOp struct {
	Op Op
}

// BinaryOp applies a binary operator to the two topmost stack entries.
type BinaryOp struct {
	Op Op
}

// TernaryOp selects between two nested expressions, based on the topmost
// stack entry.  Holding the branches as nested expressions means a branch can
// be discarded without ever being resolved.
type TernaryOp struct {
	Then *Raw
	Else *Raw
}

// ArgList collects every stack entry above the most recent marker.
type ArgList struct{}

func (*Literal) token()    {}
func (*Marker) token()     {}
func (*Identifier) token() {}
func (*UnaryOp) token()    {}
func (*BinaryOp) token()   {}
func (*TernaryOp) token()  {}
func (*ArgList) token()    {}

// Raw is an unresolved expression, as produced by a parser.  Construction is
// append-only.
type Raw struct {
	tokens []Token
}

// NewRaw constructs a raw expression from zero or more tokens.
func NewRaw(tokens ...Token) *Raw {
	return &Raw{tokens}
}

// Push appends a token onto this expression.
func (r *Raw) Push(token Token) {
	r.tokens = append(r.tokens, token)
}

// Tokens returns the tokens of this expression in postfix order.
func (r *Raw) Tokens() []Token {
	return r.tokens
}

// Len returns the number of tokens in this expression.
func (r *Raw) Len() uint {
	return uint(len(r.tokens))
}

// String renders this expression in postfix form, which is useful for
// debugging.
func (r *Raw) String() string {
	var parts = make([]string, len(r.tokens))
	//
	for i, t := range r.tokens {
		switch t := t.(type) {
		case *Literal:
			parts[i] = t.Value.String()
		case *Marker:
			parts[i] = "["
		case *Identifier:
			parts[i] = t.Name
		case *UnaryOp:
			parts[i] = fmt.Sprintf("u%s", t.Op.Symbol())
		case *BinaryOp:
			parts[i] = t.Op.Symbol()
		case *TernaryOp:
			parts[i] = fmt.Sprintf("?{%s}:{%s}", t.Then.String(), t.Else.String())
		case *ArgList:
			parts[i] = "]"
		}
	}
	//
	return strings.Join(parts, " ")
}

// Infix renders this expression in source form, with parentheses inserted
// only where operator precedence requires them.  A malformed expression is
// rendered in postfix form instead.
func (r *Raw) Infix() string {
	var (
		stack []infix
		marks []int
	)
	//
	for _, t := range r.tokens {
		n := len(stack)
		//
		switch t := t.(type) {
		case *Literal:
			stack = append(stack, infix{t.Value.String(), PREC_ATOM, false})
		case *Marker:
			marks = append(marks, n)
		case *ArgList:
			if len(marks) == 0 || marks[len(marks)-1] > n {
				return r.String()
			}
			//
			var (
				mark  = marks[len(marks)-1]
				items = make([]string, 0, n-mark)
			)
			//
			for _, item := range stack[mark:] {
				items = append(items, item.text)
			}
			//
			marks = marks[:len(marks)-1]
			stack = append(stack[:mark], infix{strings.Join(items, ", "), PREC_ATOM, true})
		case *Identifier:
			if n > 0 && stack[n-1].args {
				stack[n-1] = infix{fmt.Sprintf("%s(%s)", t.Name, stack[n-1].text), PREC_ATOM, false}
			} else {
				stack = append(stack, infix{t.Name, PREC_ATOM, false})
			}
		case *UnaryOp:
			if n < 1 {
				return r.String()
			}
			//
			stack[n-1] = infix{t.Op.Symbol() + stack[n-1].bracket(PREC_UNARY+1), PREC_UNARY, false}
		case *BinaryOp:
			if n < 2 {
				return r.String()
			}
			//
			var (
				prec       = t.Op.Precedence()
				lmin, rmin = prec, prec + 1
			)
			//
			if t.Op.IsRightAssociative() {
				lmin, rmin = prec+1, prec
			}
			//
			text := fmt.Sprintf("%s %s %s", stack[n-2].bracket(lmin), t.Op.Symbol(), stack[n-1].bracket(rmin))
			stack = append(stack[:n-2], infix{text, prec, false})
		case *TernaryOp:
			if n < 1 {
				return r.String()
			}
			//
			text := fmt.Sprintf("%s ? %s : %s", stack[n-1].bracket(PREC_TERNARY+1), t.Then.Infix(), t.Else.Infix())
			stack[n-1] = infix{text, PREC_TERNARY, false}
		}
	}
	//
	if len(stack) != 1 || len(marks) != 0 {
		return r.String()
	}
	//
	return stack[0].text
}

// infix is a partially rendered operand, where args indicates an argument
// list awaiting the name of its call.
type infix struct {
	text string
	prec uint
	args bool
}

func (p infix) bracket(bound uint) string {
	if p.prec < bound {
		return fmt.Sprintf("(%s)", p.text)
	}
	//
	return p.text
}
