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
	"github.com/consensys/go-vams/pkg/vams/deps"
)

// Expression is a resolved expression.  This holds a single root node, and can
// be viewed as a postfix sequence of nodes where the last node is the root.
type Expression struct {
	root Node
}

// NewExpression constructs a resolved expression from a given root.
func NewExpression(root Node) *Expression {
	return &Expression{root}
}

// Root returns the root node of this expression.
func (e *Expression) Root() Node {
	return e.root
}

// Summary returns the dependency summary of the whole expression.
func (e *Expression) Summary() *deps.Summary {
	return e.root.Summary()
}

// Postfix returns the nodes of this expression in postfix order.  The last node
// is always the root.
func (e *Expression) Postfix() []Node {
	return appendPostfix(nil, e.root)
}

// Clone returns a deep copy of this expression.
func (e *Expression) Clone() *Expression {
	return &Expression{Clone(e.root)}
}

func (e *Expression) String() string {
	return Dump(e.root)
}

func appendPostfix(nodes []Node, node Node) []Node {
	for _, child := range node.Children() {
		nodes = appendPostfix(nodes, child)
	}
	//
	return append(nodes, node)
}
