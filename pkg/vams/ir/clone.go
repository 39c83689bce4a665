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

	"github.com/consensys/go-vams/pkg/vams/topology"
)

// Clone returns a deep copy of a resolved node, including the summaries of it
// and all its operands.  References to variables, parameters, branches and
// nodes are shared rather than copied.  The clone registers its own branch
// usage, so it must be released independently of the original.
func Clone(node Node) Node {
	switch n := node.(type) {
	case *Literal:
		return &Literal{n.Value, n.Origin, n.summary.Clone()}
	case *ParamRef:
		return &ParamRef{n.Param, n.summary.Clone()}
	case *VarRef:
		return &VarRef{n.Var, n.summary.Clone()}
	case *VarDecl:
		init := Clone(n.Init)
		return &VarDecl{n.Var, init, init.Summary()}
	case *BranchAccess:
		n.Ref.Branch.Inc(topology.ProbeUsage(n.Access))
		//
		return &BranchAccess{n.Function, n.Ref, n.Access, n.summary.Clone()}
	case *NodeRef:
		return &NodeRef{n.Node, n.summary.Clone()}
	case *PortRef:
		return &PortRef{n.Node, n.summary.Clone()}
	case *Unary:
		return &Unary{n.Op, Clone(n.Operand), n.summary.Clone()}
	case *Binary:
		return &Binary{n.Op, Clone(n.Lhs), Clone(n.Rhs), n.summary.Clone()}
	case *Ternary:
		return &Ternary{Clone(n.Cond), Clone(n.Then), Clone(n.Else), n.summary.Clone()}
	case *Call:
		if n.Filter != nil {
			AcquireFilter(n.Filter)
		}
		//
		return &Call{n.Name, cloneArgs(n.Args), n.Filter, n.summary.Clone()}
	case *Args:
		return cloneArgs(n)
	case *Marker:
		return &Marker{}
	case *Deferred:
		return &Deferred{n.Name}
	default:
		panic(fmt.Sprintf("unknown node %T", node))
	}
}

func cloneArgs(args *Args) *Args {
	var items = make([]Node, len(args.Items))
	//
	for i, item := range args.Items {
		items[i] = Clone(item)
	}
	//
	return &Args{items, args.summary.Clone()}
}
