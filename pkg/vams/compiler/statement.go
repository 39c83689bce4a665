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
package compiler

import (
	"fmt"

	"github.com/consensys/go-vams/pkg/vams/deps"
	"github.com/consensys/go-vams/pkg/vams/ir"
	"github.com/consensys/go-vams/pkg/vams/topology"
	"github.com/pkg/errors"
)

// Statement is a statement within an analog block.  Statements are resolved
// repeatedly, since the variables they read may be assigned later on.
type Statement interface {
	// Update (re-)resolves this statement against the current bindings,
	// returning true if any summary changed as a result.
	Update(r *Resolver) (bool, error)
	// SeedRDeps pushes markers for the contributions made by this statement
	// back through everything they read, and returns those markers.
	SeedRDeps() *topology.RDeps
	// Scope returns the scope in which this statement is resolved.
	Scope() *Scope
	// Count returns the number of statements, including nested statements.
	Count() uint
	// Lines renders this statement in source form, annotated with summaries.
	Lines(indent string) []string
}

// replace swaps the resolved expression of a statement for a newly resolved
// one, giving back the usage of the old expression.
func replace(old *ir.Expression, expr *ir.Expression) *ir.Expression {
	if old != nil {
		ir.Release(old.Root())
	}
	//
	return expr
}

// accumulate merges a newly resolved summary into the accumulated summary of
// a statement, returning true if it grew.
func accumulate(acc **deps.Summary, summary *deps.Summary) bool {
	if *acc == nil {
		*acc = summary.Clone()
		return true
	}
	//
	return (*acc).Absorb(summary)
}

func annotate(expr *ir.Expression) string {
	if expr == nil {
		return "// unreachable"
	}
	//
	return fmt.Sprintf("// %s", expr.Summary().String())
}

func dumpOrRaw(expr *ir.Expression, raw *ir.Raw) string {
	if expr == nil {
		return fmt.Sprintf("{%s}", raw.Infix())
	}
	//
	return expr.String()
}

// ============================================================================
// Variable declarations
// ============================================================================

// VariableDecl declares a variable within a block, with an optional
// initialiser.
type VariableDecl struct {
	variable *Variable
	init     *ir.Raw
	expr     *ir.Expression
	scope    *Scope
}

// Variable returns the declared variable.
func (s *VariableDecl) Variable() *Variable {
	return s.variable
}

// Expression returns the resolved initialiser (or nil).
func (s *VariableDecl) Expression() *ir.Expression {
	return s.expr
}

// Update implementation for Statement interface.
func (s *VariableDecl) Update(r *Resolver) (bool, error) {
	if s.init == nil {
		return false, nil
	}
	//
	expr, err := r.Resolve(s.init, s.scope)
	if err != nil {
		return false, errors.Wrapf(err, "declaration of %s", s.variable.Name())
	}
	//
	decl := ir.NewExpression(ir.NewVarDecl(s.variable, expr.Root()))
	s.expr = replace(s.expr, decl)
	//
	return s.variable.Assign(decl.Summary()), nil
}

// SeedRDeps implementation for Statement interface.
func (s *VariableDecl) SeedRDeps() *topology.RDeps {
	return topology.NewRDeps()
}

// Scope implementation for Statement interface.
func (s *VariableDecl) Scope() *Scope {
	return s.scope
}

// Count implementation for Statement interface.
func (s *VariableDecl) Count() uint {
	return 1
}

// Lines implementation for Statement interface.
func (s *VariableDecl) Lines(indent string) []string {
	var decl = fmt.Sprintf("%s%s %s", indent, s.variable.Type().String(), s.variable.Name())
	//
	if s.init == nil {
		return []string{decl + ";"}
	} else if s.expr == nil {
		return []string{fmt.Sprintf("%s = %s; %s", decl, s.init.String(), annotate(nil))}
	}
	//
	return []string{fmt.Sprintf("%s %s; %s", indent+s.variable.Type().String(), s.expr.String(), annotate(s.expr))}
}

// ============================================================================
// Assignments
// ============================================================================

// Assignment assigns a value to a variable.
type Assignment struct {
	name     string
	variable *Variable
	rhs      *ir.Raw
	expr     *ir.Expression
	scope    *Scope
}

// Expression returns the resolved right-hand side (or nil).
func (s *Assignment) Expression() *ir.Expression {
	return s.expr
}

// Update implementation for Statement interface.
func (s *Assignment) Update(r *Resolver) (bool, error) {
	if s.variable == nil {
		switch b := s.scope.Lookup(s.name).(type) {
		case *Variable:
			s.variable = b
		case nil:
			return false, newError(UNRESOLVED_SYMBOL, s.name, "variable not declared")
		default:
			return false, newError(TYPE_MISMATCH, s.name, "cannot assign to %s", s.name)
		}
	}
	//
	expr, err := r.Resolve(s.rhs, s.scope)
	if err != nil {
		return false, errors.Wrapf(err, "assignment to %s", s.name)
	}
	//
	s.expr = replace(s.expr, expr)
	//
	return s.variable.Assign(expr.Summary()), nil
}

// SeedRDeps implementation for Statement interface.
func (s *Assignment) SeedRDeps() *topology.RDeps {
	return topology.NewRDeps()
}

// Scope implementation for Statement interface.
func (s *Assignment) Scope() *Scope {
	return s.scope
}

// Count implementation for Statement interface.
func (s *Assignment) Count() uint {
	return 1
}

// Lines implementation for Statement interface.
func (s *Assignment) Lines(indent string) []string {
	return []string{fmt.Sprintf("%s%s = %s; %s", indent, s.name, dumpOrRaw(s.expr, s.rhs), annotate(s.expr))}
}

// ============================================================================
// Contributions
// ============================================================================

// Contribution contributes a value to a quantity of a branch, such as
// "I(p,n) <+ x".  A potential contribution of zero shorts the branch.
type Contribution struct {
	target *ir.Raw
	rhs    *ir.Raw
	scope  *Scope
	// Resolved target.
	access *ir.BranchAccess
	expr   *ir.Expression
	// Union of all summaries resolved so far.
	summary *deps.Summary
	short   bool
}

// Target returns the resolved target (or nil).
func (s *Contribution) Target() *ir.BranchAccess {
	return s.access
}

// Expression returns the resolved right-hand side (or nil).
func (s *Contribution) Expression() *ir.Expression {
	return s.expr
}

// IsShort checks whether this contribution shorts its branch.
func (s *Contribution) IsShort() bool {
	return s.short
}

// Update implementation for Statement interface.
func (s *Contribution) Update(r *Resolver) (bool, error) {
	if s.access == nil {
		access, err := r.Target(s.target, s.scope)
		if err != nil {
			return false, errors.Wrapf(err, "contribution to %s", s.target.Infix())
		}
		//
		s.access = access
		access.Ref.Branch.Inc(topology.SourceUsage(access.Access))
	}
	//
	expr, err := r.Resolve(s.rhs, s.scope)
	if err != nil {
		return false, errors.Wrapf(err, "contribution to %s", ir.Dump(s.access))
	}
	//
	s.expr = replace(s.expr, expr)
	//
	if lit, ok := expr.Root().(*ir.Literal); ok && !s.short && s.access.Access == topology.POTENTIAL &&
		ir.IsZero(lit.Value) {
		s.shorten()
	}
	//
	return accumulate(&s.summary, expr.Summary()), nil
}

func (s *Contribution) shorten() {
	var (
		ref   = s.access.Ref
		guard topology.Guard
	)
	//
	if !s.scope.Always() {
		guard = s.scope
	}
	//
	s.short = true
	ref.Branch.Inc(topology.SHORT)
	ref.P().ShortTo(ref.N(), guard)
}

// SeedRDeps implementation for Statement interface.  The marker for a
// contribution is the branch being contributed to.
func (s *Contribution) SeedRDeps() *topology.RDeps {
	if s.access == nil || s.summary == nil {
		return topology.NewRDeps()
	}
	//
	markers := topology.NewRDeps(s.access.Ref.Branch.Base())
	s.summary.PropagateRDeps(markers)
	//
	return markers
}

// Scope implementation for Statement interface.
func (s *Contribution) Scope() *Scope {
	return s.scope
}

// Count implementation for Statement interface.
func (s *Contribution) Count() uint {
	return 1
}

// Lines implementation for Statement interface.
func (s *Contribution) Lines(indent string) []string {
	var target = s.target.String()
	//
	if s.access != nil {
		target = ir.Dump(s.access)
	}
	//
	return []string{fmt.Sprintf("%s%s <+ %s; %s", indent, target, dumpOrRaw(s.expr, s.rhs), annotate(s.expr))}
}

// ============================================================================
// Conditionals
// ============================================================================

// Conditional selects between two blocks.  When the condition is known, the
// block which is not selected is never reached and, hence, never resolved.
type Conditional struct {
	cond    *ir.Raw
	expr    *ir.Expression
	summary *deps.Summary
	then    *Block
	els     *Block
	scope   *Scope
}

// Then returns the block executed when the condition holds.
func (s *Conditional) Then() *Block {
	return s.then
}

// Else returns the block executed when the condition does not hold.
func (s *Conditional) Else() *Block {
	return s.els
}

// Expression returns the resolved condition (or nil).
func (s *Conditional) Expression() *ir.Expression {
	return s.expr
}

// Update implementation for Statement interface.
func (s *Conditional) Update(r *Resolver) (bool, error) {
	expr, err := r.Resolve(s.cond, s.scope)
	if err != nil {
		return false, errors.Wrap(err, "condition")
	}
	//
	s.expr = replace(s.expr, expr)
	//
	var (
		text      = expr.String()
		then, els = UNKNOWN, UNKNOWN
	)
	//
	if lit, ok := expr.Root().(*ir.Literal); ok {
		if truth, err := ir.Truth(lit.Value); err == nil && truth {
			then, els = ALWAYS, NEVER
		} else if err == nil {
			then, els = NEVER, ALWAYS
		}
	}
	//
	s.then.scope.SetReachability(then, text)
	s.els.scope.SetReachability(els, fmt.Sprintf("!(%s)", text))
	//
	changed := accumulate(&s.summary, expr.Summary())
	//
	for _, b := range []*Block{s.then, s.els} {
		c, err := b.Update(r)
		if err != nil {
			return false, err
		}
		//
		changed = changed || c
	}
	//
	return changed, nil
}

// SeedRDeps implementation for Statement interface.  The condition is needed by
// every contribution made under it.
func (s *Conditional) SeedRDeps() *topology.RDeps {
	var markers = s.then.SeedRDeps()
	//
	markers.InsertAll(s.els.SeedRDeps())
	//
	if !markers.IsEmpty() && s.summary != nil {
		s.summary.PropagateRDeps(markers)
	}
	//
	return markers
}

// Scope implementation for Statement interface.
func (s *Conditional) Scope() *Scope {
	return s.scope
}

// Count implementation for Statement interface.
func (s *Conditional) Count() uint {
	return 1 + s.then.Count() + s.els.Count()
}

// Lines implementation for Statement interface.
func (s *Conditional) Lines(indent string) []string {
	var lines = []string{fmt.Sprintf("%sif (%s) %s", indent, dumpOrRaw(s.expr, s.cond), annotate(s.expr))}
	//
	lines = append(lines, s.then.Lines(indent)...)
	//
	if len(s.els.statements) > 0 {
		lines = append(lines, indent+"else")
		lines = append(lines, s.els.Lines(indent)...)
	}
	//
	return lines
}

// ============================================================================
// Blocks
// ============================================================================

// Block is a sequence of statements with its own scope.
type Block struct {
	scope      *Scope
	statements []Statement
}

// NewBlock constructs an empty block, whose scope is nested within a given
// scope.
func NewBlock(parent *Scope) *Block {
	return &Block{NewScope(parent), nil}
}

// Statements returns the statements of this block.
func (b *Block) Statements() []Statement {
	return b.statements
}

// Declare a variable within this block, with an optional initialiser.
func (b *Block) Declare(name string, typ Type, init *ir.Raw) (*Variable, error) {
	var variable = NewVariable(name, typ)
	//
	if !b.scope.Define(variable) {
		return nil, newError(ALREADY_DECLARED, name, "variable already declared")
	}
	//
	b.statements = append(b.statements, &VariableDecl{variable, init, nil, b.scope})
	//
	return variable, nil
}

// Assign a value to a named variable.
func (b *Block) Assign(name string, rhs *ir.Raw) *Assignment {
	var stmt = &Assignment{name, nil, rhs, nil, b.scope}
	//
	b.statements = append(b.statements, stmt)
	//
	return stmt
}

// Contribute a value to the quantity identified by a target access.
func (b *Block) Contribute(target *ir.Raw, rhs *ir.Raw) *Contribution {
	var stmt = &Contribution{target: target, rhs: rhs, scope: b.scope}
	//
	b.statements = append(b.statements, stmt)
	//
	return stmt
}

// If appends a conditional statement, returning the blocks for when the
// condition holds and for when it does not.
func (b *Block) If(cond *ir.Raw) (*Block, *Block) {
	var stmt = &Conditional{cond, nil, nil, NewBlock(b.scope), NewBlock(b.scope), b.scope}
	//
	b.statements = append(b.statements, stmt)
	//
	return stmt.then, stmt.els
}

// Begin appends a nested block.
func (b *Block) Begin() *Block {
	var block = NewBlock(b.scope)
	//
	b.statements = append(b.statements, block)
	//
	return block
}

// Update implementation for Statement interface.  Statements which are never
// reached are skipped.
func (b *Block) Update(r *Resolver) (bool, error) {
	var changed = false
	//
	for _, stmt := range b.statements {
		if stmt.Scope().Reachability() == NEVER {
			continue
		}
		//
		c, err := stmt.Update(r)
		if err != nil {
			return false, err
		}
		//
		changed = changed || c
	}
	//
	return changed, nil
}

// SeedRDeps implementation for Statement interface.
func (b *Block) SeedRDeps() *topology.RDeps {
	var markers = topology.NewRDeps()
	//
	for _, stmt := range b.statements {
		if stmt.Scope().Reachability() != NEVER {
			markers.InsertAll(stmt.SeedRDeps())
		}
	}
	//
	return markers
}

// Scope implementation for Statement interface.
func (b *Block) Scope() *Scope {
	return b.scope
}

// Count implementation for Statement interface.
func (b *Block) Count() uint {
	var count uint
	//
	for _, stmt := range b.statements {
		count += stmt.Count()
	}
	//
	return count
}

// Lines implementation for Statement interface.
func (b *Block) Lines(indent string) []string {
	var lines = []string{indent + "begin"}
	//
	for _, stmt := range b.statements {
		lines = append(lines, stmt.Lines(indent+"  ")...)
	}
	//
	return append(lines, indent+"end")
}
