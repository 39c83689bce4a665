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
	"github.com/consensys/go-vams/pkg/util/source"
	"github.com/consensys/go-vams/pkg/util/source/lex"
	"github.com/consensys/go-vams/pkg/vams/ir"
)

// ParseExpression parses a standalone expression (e.g. a parameter value given
// on the command line) into its raw form.
func ParseExpression(input string) (*ir.Raw, []source.SyntaxError) {
	var srcfile = source.NewSourceFile("expr", []byte(input))
	//
	tokens, errs := tokenise(srcfile)
	if len(errs) != 0 {
		return nil, errs
	}
	//
	parser := newParser(srcfile, tokens)
	raw := ir.NewRaw()
	//
	if errs = parser.parseExpression(raw); len(errs) != 0 {
		return nil, errs
	} else if !parser.follows(END_OF) {
		return nil, parser.syntaxErrors(parser.lookahead(), "unknown token")
	}
	//
	return raw, nil
}

// Parse an expression, emitting its tokens onto a given raw expression in
// postfix order.  Conditional expressions have the lowest precedence, and
// associate to the right.
func (p *Parser) parseExpression(raw *ir.Raw) []source.SyntaxError {
	if errs := p.parseBinary(raw, 1); len(errs) != 0 || !p.match(QMARK) {
		return errs
	}
	//
	var then, els = ir.NewRaw(), ir.NewRaw()
	//
	if errs := p.parseExpression(then); len(errs) != 0 {
		return errs
	} else if !p.match(COLON) {
		return p.syntaxErrors(p.lookahead(), "expected ':'")
	} else if errs := p.parseExpression(els); len(errs) != 0 {
		return errs
	}
	//
	raw.Push(&ir.TernaryOp{Then: then, Else: els})
	//
	return nil
}

// Parse a sequence of binary operators whose precedence is at least a given
// bound, using precedence climbing.
func (p *Parser) parseBinary(raw *ir.Raw, bound uint) []source.SyntaxError {
	if errs := p.parseUnary(raw); len(errs) != 0 {
		return errs
	}
	//
	for {
		op, ok := BINOPS[p.lookahead().Kind]
		//
		if !ok || op.Precedence() < bound {
			return nil
		}
		//
		p.index++
		next := op.Precedence() + 1
		//
		if op.IsRightAssociative() {
			next = op.Precedence()
		}
		//
		if errs := p.parseBinary(raw, next); len(errs) != 0 {
			return errs
		}
		//
		raw.Push(&ir.BinaryOp{Op: op})
	}
}

func (p *Parser) parseUnary(raw *ir.Raw) []source.SyntaxError {
	var op ir.Op
	//
	switch {
	case p.match(ADD):
		return p.parseUnary(raw)
	case p.match(SUB):
		op = ir.NEG
	case p.match(NOT):
		op = ir.NOT
	default:
		return p.parsePrimary(raw)
	}
	//
	if errs := p.parseUnary(raw); len(errs) != 0 {
		return errs
	}
	//
	raw.Push(&ir.UnaryOp{Op: op})
	//
	return nil
}

func (p *Parser) parsePrimary(raw *ir.Raw) []source.SyntaxError {
	var token = p.lookahead()
	//
	switch token.Kind {
	case LBRACE:
		p.expect(LBRACE)
		//
		if errs := p.parseExpression(raw); len(errs) != 0 {
			return errs
		} else if !p.match(RBRACE) {
			return p.syntaxErrors(p.lookahead(), "expected ')'")
		}
		//
		return nil
	case NUMBER, STRING:
		p.expect(token.Kind)
		//
		value, err := ir.ParseValue(p.string(token))
		if err != nil {
			return p.syntaxErrors(token, err.Error())
		}
		//
		raw.Push(ir.NewLiteral(value))
		//
		return nil
	case IDENTIFIER:
		p.expect(IDENTIFIER)
		//
		if p.follows(LBRACE) {
			return p.parseCall(raw, token)
		}
		//
		raw.Push(&ir.Identifier{Name: p.string(token)})
		//
		return nil
	}
	//
	return p.syntaxErrors(token, "unknown expression")
}

// Parse the arguments of a call (or branch access), which are bracketed by a
// marker and an argument list so that the arity is recovered on resolution.
func (p *Parser) parseCall(raw *ir.Raw, name lex.Token) []source.SyntaxError {
	p.expect(LBRACE)
	raw.Push(&ir.Marker{})
	//
	if !p.follows(RBRACE) {
		for {
			if errs := p.parseExpression(raw); len(errs) != 0 {
				return errs
			} else if !p.match(COMMA) {
				break
			}
		}
	}
	//
	if !p.match(RBRACE) {
		return p.syntaxErrors(p.lookahead(), "expected ')'")
	}
	//
	raw.Push(&ir.ArgList{})
	raw.Push(&ir.Identifier{Name: p.string(name)})
	//
	return nil
}
