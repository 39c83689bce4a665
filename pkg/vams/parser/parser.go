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
	"slices"

	"github.com/consensys/go-vams/pkg/util/source"
	"github.com/consensys/go-vams/pkg/util/source/lex"
	"github.com/consensys/go-vams/pkg/vams/compiler"
	"github.com/consensys/go-vams/pkg/vams/ir"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Parse a given source file into zero or more elaborated modules.  Each
// analog block is resolved as soon as it has been parsed, and each module is
// finished (i.e. its dataflow run to a fixpoint) once all modules have been
// parsed.
func Parse(srcfile *source.File, config compiler.Config) ([]*compiler.Module, []source.SyntaxError) {
	var modules []*compiler.Module
	//
	tokens, errs := tokenise(srcfile)
	if len(errs) != 0 {
		return nil, errs
	}
	//
	parser := newParser(srcfile, tokens)
	//
	for !parser.follows(END_OF) {
		module, errs := parser.parseModule(config)
		if len(errs) != 0 {
			return nil, errs
		}
		//
		modules = append(modules, module)
	}
	//
	for _, m := range modules {
		if err := m.Finish(); err != nil {
			for _, e := range multierr.Errors(err) {
				errs = append(errs, *parser.srcmap.SyntaxError(m, e.Error()))
			}
		}
	}
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	return modules, nil
}

// Split a source file into tokens, discarding whitespace and comments.
func tokenise(srcfile *source.File) ([]lex.Token, []source.SyntaxError) {
	var (
		lexer = lex.NewLexer[rune](srcfile.Contents(), rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		err := srcfile.SyntaxError(lexer.Unmatched(), "unknown text encountered")
		//
		return nil, []source.SyntaxError{*err}
	}
	//
	log.Debugf("lexed %d tokens from %s", len(tokens), srcfile.Filename())
	//
	return tokens, nil
}

// Parser is responsible for parsing modules from a stream of tokens, and
// elaborating them as it goes.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
	// Span of each module's name
	srcmap *source.Map[*compiler.Module]
}

func newParser(srcfile *source.File, tokens []lex.Token) *Parser {
	return &Parser{srcfile, tokens, 0, source.NewSourceMap[*compiler.Module](srcfile)}
}

// ============================================================================
// Module items
// ============================================================================

func (p *Parser) parseModule(config compiler.Config) (*compiler.Module, []source.SyntaxError) {
	if !p.matchKeyword("module") {
		return nil, p.syntaxErrors(p.lookahead(), "expected module")
	}
	//
	name, errs := p.require(IDENTIFIER, "expected module name")
	if len(errs) != 0 {
		return nil, errs
	}
	//
	module := compiler.NewModule(p.string(name), config)
	p.srcmap.Put(module, name.Span)
	// Ports (if any)
	if p.match(LBRACE) {
		if !p.follows(RBRACE) {
			if errs = p.declareEach(module.DeclarePort); len(errs) != 0 {
				return nil, errs
			}
		}
		//
		if _, errs = p.require(RBRACE, "expected ')'"); len(errs) != 0 {
			return nil, errs
		}
	}
	//
	if _, errs = p.require(SEMICOLON, "expected ';'"); len(errs) != 0 {
		return nil, errs
	}
	//
	for !p.matchKeyword("endmodule") {
		if p.follows(END_OF) {
			return nil, p.syntaxErrors(p.lookahead(), "expected endmodule")
		} else if errs = p.parseItem(module); len(errs) != 0 {
			return nil, errs
		}
	}
	//
	return module, nil
}

func (p *Parser) parseItem(module *compiler.Module) []source.SyntaxError {
	var token = p.lookahead()
	//
	if token.Kind != IDENTIFIER {
		return p.syntaxErrors(token, "unknown declaration")
	}
	//
	switch keyword := p.string(token); keyword {
	case "input", "output", "inout":
		p.expect(IDENTIFIER)
		return p.parseDirection(module)
	case "electrical":
		p.expect(IDENTIFIER)
		return p.declareEach(module.DeclareNode)
	case "parameter", "localparam":
		p.expect(IDENTIFIER)
		return p.parseParameter(module, keyword == "localparam")
	case "real", "integer":
		typ, _ := p.parseType()
		//
		return p.declareEach(func(name string) error {
			return module.DeclareVariable(name, typ)
		})
	case "branch":
		p.expect(IDENTIFIER)
		return p.parseBranch(module)
	case "analog":
		p.expect(IDENTIFIER)
		return p.parseAnalog(module, token)
	}
	//
	return p.syntaxErrors(token, "unknown declaration")
}

var errNotPort = errors.New("not a port")

// Parse a port direction, which can only be given for a declared port.
func (p *Parser) parseDirection(module *compiler.Module) []source.SyntaxError {
	return p.declareEach(func(name string) error {
		if _, ok := module.Scope().Lookup(name).(*compiler.Port); !ok {
			return errNotPort
		}
		//
		return nil
	})
}

// Parse one or more parameter declarations, each of which has a default
// value and an optional (and ignored) range constraint.
func (p *Parser) parseParameter(module *compiler.Module, local bool) []source.SyntaxError {
	var typ, _ = p.parseType()
	//
	for {
		name, errs := p.require(IDENTIFIER, "expected parameter name")
		if len(errs) != 0 {
			return errs
		} else if _, errs = p.require(ASSIGN, "expected '='"); len(errs) != 0 {
			return errs
		}
		//
		def := ir.NewRaw()
		if errs = p.parseExpression(def); len(errs) != 0 {
			return errs
		}
		//
		p.skipRanges()
		//
		if err := module.DeclareParameter(p.string(name), typ, def, local); err != nil {
			return p.syntaxErrors(name, err.Error())
		} else if !p.match(COMMA) {
			break
		}
	}
	//
	_, errs := p.require(SEMICOLON, "expected ';'")
	//
	return errs
}

// Skip over range constraints (e.g. "from [0:inf)" or "exclude 0").
func (p *Parser) skipRanges() {
	for p.matchKeyword("from") || p.matchKeyword("exclude") {
		var depth = 0
		//
		for depth > 0 || !p.follows(COMMA, SEMICOLON, END_OF) {
			switch p.lookahead().Kind {
			case LBRACE, LSQUARE:
				depth++
			case RBRACE, RSQUARE:
				depth--
			case END_OF:
				return
			}
			//
			p.index++
		}
	}
}

// Parse a branch declaration, such as "branch (p, n) b1, b2;".  A branch with
// only one node is connected to ground.
func (p *Parser) parseBranch(module *compiler.Module) []source.SyntaxError {
	var pos, neg lex.Token
	//
	_, errs := p.require(LBRACE, "expected '('")
	if len(errs) == 0 {
		pos, errs = p.require(IDENTIFIER, "expected node")
	}
	//
	if len(errs) == 0 && p.match(COMMA) {
		neg, errs = p.require(IDENTIFIER, "expected node")
	}
	//
	if len(errs) == 0 {
		_, errs = p.require(RBRACE, "expected ')'")
	}
	//
	if len(errs) != 0 {
		return errs
	}
	//
	return p.declareEach(func(name string) error {
		var n string
		//
		if neg.Kind == IDENTIFIER {
			n = p.string(neg)
		}
		//
		return module.DeclareBranch(name, p.string(pos), n)
	})
}

// Parse an analog block, which is resolved as soon as it is complete.
func (p *Parser) parseAnalog(module *compiler.Module, keyword lex.Token) []source.SyntaxError {
	var block = module.NewAnalog()
	//
	if errs := p.parseBody(block); len(errs) != 0 {
		return errs
	} else if err := module.Settle(block); err != nil {
		return p.syntaxErrors(keyword, err.Error())
	}
	//
	return nil
}

// ============================================================================
// Statements
// ============================================================================

// Parse the body of an analog block or conditional into a given block.  A
// sequential block is flattened into the given block, rather than being nested
// within it.
func (p *Parser) parseBody(block *compiler.Block) []source.SyntaxError {
	if !p.matchKeyword("begin") {
		return p.parseStatement(block)
	}
	// Optional block name
	if p.match(COLON) {
		if _, errs := p.require(IDENTIFIER, "expected block name"); len(errs) != 0 {
			return errs
		}
	}
	//
	for !p.matchKeyword("end") {
		if p.follows(END_OF) {
			return p.syntaxErrors(p.lookahead(), "expected end")
		} else if errs := p.parseStatement(block); len(errs) != 0 {
			return errs
		}
	}
	//
	return nil
}

func (p *Parser) parseStatement(block *compiler.Block) []source.SyntaxError {
	var token = p.lookahead()
	//
	switch {
	case p.match(SEMICOLON):
		return nil
	case p.followsKeyword("begin"):
		return p.parseBody(block.Begin())
	case p.matchKeyword("if"):
		return p.parseConditional(block)
	case p.followsKeyword("real", "integer"):
		return p.parseDeclaration(block)
	case token.Kind == IDENTIFIER && p.peek(1).Kind == ASSIGN:
		return p.parseAssignment(block)
	}
	//
	return p.parseContribution(block)
}

func (p *Parser) parseConditional(block *compiler.Block) []source.SyntaxError {
	var cond = ir.NewRaw()
	//
	if _, errs := p.require(LBRACE, "expected '('"); len(errs) != 0 {
		return errs
	} else if errs := p.parseExpression(cond); len(errs) != 0 {
		return errs
	} else if _, errs := p.require(RBRACE, "expected ')'"); len(errs) != 0 {
		return errs
	}
	//
	then, els := block.If(cond)
	//
	if errs := p.parseBody(then); len(errs) != 0 {
		return errs
	} else if p.matchKeyword("else") {
		return p.parseBody(els)
	}
	//
	return nil
}

// Parse a declaration of one or more variables, each with an optional
// initialiser.
func (p *Parser) parseDeclaration(block *compiler.Block) []source.SyntaxError {
	var typ, _ = p.parseType()
	//
	for {
		var init *ir.Raw
		//
		name, errs := p.require(IDENTIFIER, "expected variable name")
		if len(errs) != 0 {
			return errs
		}
		//
		if p.match(ASSIGN) {
			init = ir.NewRaw()
			//
			if errs = p.parseExpression(init); len(errs) != 0 {
				return errs
			}
		}
		//
		if _, err := block.Declare(p.string(name), typ, init); err != nil {
			return p.syntaxErrors(name, err.Error())
		} else if !p.match(COMMA) {
			break
		}
	}
	//
	_, errs := p.require(SEMICOLON, "expected ';'")
	//
	return errs
}

func (p *Parser) parseAssignment(block *compiler.Block) []source.SyntaxError {
	var (
		name = p.expect(IDENTIFIER)
		rhs  = ir.NewRaw()
	)
	//
	p.expect(ASSIGN)
	//
	if errs := p.parseExpression(rhs); len(errs) != 0 {
		return errs
	} else if _, errs := p.require(SEMICOLON, "expected ';'"); len(errs) != 0 {
		return errs
	}
	//
	block.Assign(p.string(name), rhs)
	//
	return nil
}

// Parse a contribution statement, such as "I(p, n) <+ V(p, n) / r;".
func (p *Parser) parseContribution(block *compiler.Block) []source.SyntaxError {
	var target, rhs = ir.NewRaw(), ir.NewRaw()
	//
	if errs := p.parseExpression(target); len(errs) != 0 {
		return errs
	} else if _, errs := p.require(CONTRIBUTE, "expected '<+'"); len(errs) != 0 {
		return errs
	} else if errs := p.parseExpression(rhs); len(errs) != 0 {
		return errs
	} else if _, errs := p.require(SEMICOLON, "expected ';'"); len(errs) != 0 {
		return errs
	}
	//
	block.Contribute(target, rhs)
	//
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

// Parse an optional type keyword, defaulting to real.
func (p *Parser) parseType() (compiler.Type, bool) {
	switch {
	case p.matchKeyword("real"):
		return compiler.REAL, true
	case p.matchKeyword("integer"):
		return compiler.INTEGER, true
	case p.matchKeyword("string"):
		return compiler.STRING, true
	}
	//
	return compiler.REAL, false
}

// Parse a comma-separated list of names, applying a given declaration to
// each, followed by a semicolon.  Errors from the declaration are reported
// against the offending name.
func (p *Parser) declareEach(declare func(string) error) []source.SyntaxError {
	for {
		name, errs := p.require(IDENTIFIER, "expected identifier")
		if len(errs) != 0 {
			return errs
		} else if err := declare(p.string(name)); err != nil {
			return p.syntaxErrors(name, err.Error())
		} else if !p.match(COMMA) {
			break
		}
	}
	// Port lists are terminated by a brace, rather than a semicolon.
	if p.follows(RBRACE) {
		return nil
	}
	//
	_, errs := p.require(SEMICOLON, "expected ';'")
	//
	return errs
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	start, end := token.Span.Start(), token.Span.End()
	return string(p.srcfile.Contents()[start:end])
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

// FollowsKeyword checks whether one of the given keywords is next.
func (p *Parser) followsKeyword(keywords ...string) bool {
	var token = p.lookahead()
	//
	return token.Kind == IDENTIFIER && slices.Contains(keywords, p.string(token))
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Peek returns the token a given distance beyond the next token, or the final
// (i.e. EOF) token if that is beyond the end.
func (p *Parser) peek(offset int) lex.Token {
	return p.tokens[min(p.index+offset, len(p.tokens)-1)]
}

func (p *Parser) expect(kind uint) lex.Token {
	if p.lookahead().Kind != kind {
		panic("internal failure")
	}
	//
	token := p.tokens[p.index]
	p.index++
	//
	return token
}

func (p *Parser) require(kind uint, msg string) (lex.Token, []source.SyntaxError) {
	var token = p.lookahead()
	//
	if token.Kind != kind {
		return token, p.syntaxErrors(token, msg)
	}
	//
	p.index++
	//
	return token, nil
}

func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) matchKeyword(keyword string) bool {
	if p.followsKeyword(keyword) {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}
