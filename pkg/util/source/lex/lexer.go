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
package lex

import "github.com/consensys/go-vams/pkg/util/source"

// Token associates a piece of information with a given range of characters in
// the string being scanned.
type Token struct {
	Kind uint
	Span source.Span
}

// LexRule associates the characters matched by a scanner with a given tag.
// Characters matched by a skipping rule are consumed without producing a
// token.
//
// nolint
type LexRule[T any] struct {
	scanner Scanner[T]
	tag     uint
	skip    bool
}

// Rule constructs a new lexing rule which maps matching characters to a given
// tag.
func Rule[T any](scanner Scanner[T], tag uint) LexRule[T] {
	return LexRule[T]{scanner, tag, false}
}

// Skip constructs a lexing rule for characters which only separate tokens,
// such as whitespace and comments.
func Skip[T any](scanner Scanner[T]) LexRule[T] {
	return LexRule[T]{scanner, 0, true}
}

// Lexer splits an input sequence into tokens.  At each position, the rules are
// tried in order and the first to match wins.
type Lexer[T any] struct {
	items []T
	index int
	rules []LexRule[T]
}

// NewLexer constructs a new lexer with a given set of lexing rules.
func NewLexer[T any](input []T, rules ...LexRule[T]) *Lexer[T] {
	return &Lexer[T]{input, 0, rules}
}

// Remaining determines how many characters from the original sequence were
// left.
func (p *Lexer[T]) Remaining() uint {
	return uint(max(0, len(p.items)-p.index))
}

// Unmatched returns the span of those characters from the original sequence
// which could not be matched by any rule.  This is empty when the entire
// sequence was matched.
func (p *Lexer[T]) Unmatched() source.Span {
	var start = min(p.index, len(p.items))
	//
	return source.NewSpan(start, start+int(p.Remaining()))
}

// Collect tokenises the input, stopping either once the end of input has been
// matched or at the first position where no rule matches.
func (p *Lexer[T]) Collect() []Token {
	var tokens []Token
	//
	for p.index <= len(p.items) {
		rule, n := p.match()
		if n == 0 {
			break
		}
		//
		end := min(len(p.items), p.index+int(n))
		//
		if !rule.skip {
			tokens = append(tokens, Token{rule.tag, source.NewSpan(p.index, end)})
		}
		// Matching the end of input consumes it
		if p.index == len(p.items) {
			p.index++
		} else {
			p.index = end
		}
	}
	//
	return tokens
}

func (p *Lexer[T]) match() (LexRule[T], uint) {
	for _, r := range p.rules {
		if n := r.scanner(p.items[p.index:]); n > 0 {
			return r, n
		}
	}
	//
	return LexRule[T]{}, 0
}
