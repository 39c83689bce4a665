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

// Dump renders a resolved node in infix form.  Parentheses are inserted only
// where operator precedence requires them, hence the result can be parsed
// back into an equivalent expression.
func Dump(node Node) string {
	var builder strings.Builder
	//
	dump(&builder, node)
	//
	return builder.String()
}

func dump(builder *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Literal:
		builder.WriteString(n.Value.String())
	case *ParamRef:
		builder.WriteString(n.Param.Name())
	case *VarRef:
		builder.WriteString(n.Var.Name())
	case *VarDecl:
		builder.WriteString(n.Var.Name())
		builder.WriteString(" = ")
		dump(builder, n.Init)
	case *BranchAccess:
		fmt.Fprintf(builder, "%s(%s)", n.Function, n.Ref.Args())
	case *NodeRef:
		builder.WriteString(n.Node.Name())
	case *PortRef:
		builder.WriteString(n.Node.Name())
	case *Unary:
		builder.WriteString(n.Op.Symbol())
		dumpOperand(builder, n.Operand, PREC_UNARY+1)
	case *Binary:
		dumpBinary(builder, n)
	case *Ternary:
		dumpOperand(builder, n.Cond, PREC_TERNARY+1)
		builder.WriteString(" ? ")
		dump(builder, n.Then)
		builder.WriteString(" : ")
		dump(builder, n.Else)
	case *Call:
		builder.WriteString(n.Name)
		builder.WriteString("(")
		dump(builder, n.Args)
		builder.WriteString(")")
	case *Args:
		for i, item := range n.Items {
			if i != 0 {
				builder.WriteString(", ")
			}
			//
			dump(builder, item)
		}
	case *Marker:
		// nothing to show
	case *Deferred:
		builder.WriteString(n.Name)
	default:
		panic(fmt.Sprintf("unknown node %T", node))
	}
}

func dumpBinary(builder *strings.Builder, n *Binary) {
	var (
		prec = n.Op.Precedence()
		lmin = prec
		rmin = prec + 1
	)
	// Chains group to the left, except for right associative operators.
	if n.Op.IsRightAssociative() {
		lmin, rmin = prec+1, prec
	}
	//
	dumpOperand(builder, n.Lhs, lmin)
	fmt.Fprintf(builder, " %s ", n.Op.Symbol())
	dumpOperand(builder, n.Rhs, rmin)
}

// dumpOperand renders an operand, adding parentheses when it binds less
// tightly than the given minimum.
func dumpOperand(builder *strings.Builder, node Node, bound uint) {
	if precedence(node) < bound {
		builder.WriteString("(")
		dump(builder, node)
		builder.WriteString(")")
	} else {
		dump(builder, node)
	}
}

func precedence(node Node) uint {
	switch n := node.(type) {
	case *Unary:
		return PREC_UNARY
	case *Binary:
		return n.Op.Precedence()
	case *Ternary, *VarDecl:
		return PREC_TERNARY
	case *Literal:
		// Negative literals behave as unary negation.
		if strings.HasPrefix(n.Value.String(), "-") {
			return PREC_UNARY
		}
		//
		return PREC_ATOM
	default:
		return PREC_ATOM
	}
}
