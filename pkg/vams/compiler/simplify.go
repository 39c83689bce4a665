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
	"github.com/consensys/go-vams/pkg/vams/deps"
	"github.com/consensys/go-vams/pkg/vams/ir"
)

// unary resolves a unary operation on an already resolved operand.
func (r *Resolver) unary(op ir.Op, operand ir.Node) (ir.Node, error) {
	if err := checkValue(operand); err != nil {
		return nil, err
	}
	//
	if r.config.Simplify {
		switch n := operand.(type) {
		case *ir.Literal:
			if v, err := ir.FoldUnary(op, n.Value); err == nil {
				return ir.NewLiteral(v), nil
			}
		case *ir.Unary:
			// -(-x) ==> x
			if op == ir.NEG && n.Op == ir.NEG {
				return n.Operand, nil
			}
		}
	}
	//
	if op == ir.NOT {
		return ir.NewUnary(op, operand, deps.Logical(operand.Summary())), nil
	}
	//
	return ir.NewUnary(op, operand, deps.Combine(operand.Summary())), nil
}

// binary resolves a binary operation on already resolved operands.  When
// simplification is enabled, literal operands are folded, identities are
// eliminated and chains of compatible operators are re-associated so that
// their literals can be folded together.
func (r *Resolver) binary(op ir.Op, lhs ir.Node, rhs ir.Node) (ir.Node, error) {
	if err := checkValue(lhs); err != nil {
		return nil, err
	} else if err := checkValue(rhs); err != nil {
		return nil, err
	} else if !r.config.Simplify {
		return symbolic(op, lhs, rhs), nil
	}
	//
	l, lok := lhs.(*ir.Literal)
	c, rok := rhs.(*ir.Literal)
	//
	if lok && rok {
		if v, err := ir.Fold(op, l.Value, c.Value); err == nil {
			return ir.NewLiteral(v), nil
		}
		// Cannot fold (e.g. type mismatch), so leave it symbolic with any
		// numeric literal on the right.
		if op.IsCommutative() && isNumeric(l) && !isNumeric(c) {
			lhs, rhs = rhs, lhs
		}
		//
		return symbolic(op, lhs, rhs), nil
	} else if lok && op.IsCommutative() {
		// Literals go on the right, to expose further folding
		lhs, rhs, c, rok = rhs, lhs, l, true
	}
	//
	if rok {
		if node, ok := identity(op, lhs, c); ok {
			return node, nil
		} else if node, ok := r.reassociate(op, lhs, c); ok {
			return node, nil
		}
	}
	//
	return symbolic(op, lhs, rhs), nil
}

// identity eliminates an operation whose right-hand side is a literal, when
// the result is known without the left-hand side (e.g. x*0) or is the left-hand
// side itself (e.g. x+0).
func identity(op ir.Op, x ir.Node, c *ir.Literal) (ir.Node, bool) {
	switch {
	case op == ir.MUL && ir.IsZero(c.Value):
		ir.Release(x)
		return c, true
	case op == ir.LAND && ir.IsZero(c.Value):
		ir.Release(x)
		return ir.NewLiteral(ir.IntValue(0)), true
	case op.IsMultiplicative() && ir.IsOne(c.Value):
		return x, true
	case op.IsAdditive() && ir.IsZero(c.Value):
		return x, true
	}
	//
	return nil, false
}

// reassociate rewrites (y op1 c1) op2 c2 as y op (c1 op' c2) when op1 and op2
// are both additive or both multiplicative.  Since integer division truncates,
// chains involving division are only re-associated over reals.
func (r *Resolver) reassociate(op ir.Op, x ir.Node, c2 *ir.Literal) (ir.Node, bool) {
	inner, ok := x.(*ir.Binary)
	if !ok {
		return nil, false
	}
	//
	c1, ok := inner.Rhs.(*ir.Literal)
	if !ok {
		return nil, false
	}
	//
	var fold ir.Op
	//
	switch {
	case op.IsAdditive() && inner.Op.IsAdditive():
		// (y+c1)+c2 = y+(c1+c2), (y+c1)-c2 = y+(c1-c2), etc
		fold = ir.SUB
		if op == inner.Op {
			fold = ir.ADD
		}
	case op.IsMultiplicative() && inner.Op.IsMultiplicative():
		if (op == ir.DIV || inner.Op == ir.DIV) && !(isReal(c1) && isReal(c2)) {
			return nil, false
		}
		//
		fold = ir.DIV
		if op == inner.Op {
			fold = ir.MUL
		}
	default:
		return nil, false
	}
	//
	folded, err := ir.Fold(fold, c1.Value, c2.Value)
	if err != nil {
		return nil, false
	}
	// Since y has already been checked, this cannot fail.
	node, err := r.binary(inner.Op, inner.Lhs, ir.NewLiteral(folded))
	//
	return node, err == nil
}

func isReal(lit *ir.Literal) bool {
	_, ok := lit.Value.(ir.RealValue)
	return ok
}

func isNumeric(lit *ir.Literal) bool {
	_, ok := lit.Value.(ir.StrValue)
	return !ok
}

func symbolic(op ir.Op, lhs ir.Node, rhs ir.Node) ir.Node {
	return ir.NewBinary(op, lhs, rhs, summarise(op, lhs.Summary(), rhs.Summary()))
}

// summarise determines the summary of a binary operation from those of its
// operands.
func summarise(op ir.Op, lhs *deps.Summary, rhs *deps.Summary) *deps.Summary {
	switch {
	case op.IsAdditive():
		return deps.Combine(lhs, rhs)
	case op == ir.MUL:
		return deps.Multiply(lhs, rhs)
	case op == ir.DIV:
		return deps.Divide(lhs, rhs)
	case op.IsLogical():
		return deps.Logical(lhs, rhs)
	default:
		return deps.Opaque(lhs, rhs)
	}
}

func selectSummary(cond ir.Node, then ir.Node, els ir.Node) *deps.Summary {
	return deps.Select(cond.Summary(), then.Summary(), els.Summary())
}
