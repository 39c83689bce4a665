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

	"github.com/pkg/errors"
)

// ErrorKind classifies the errors which can arise during resolution.
type ErrorKind uint8

// UNRESOLVED_SYMBOL indicates an identifier which is not bound in any
// enclosing scope.
const UNRESOLVED_SYMBOL ErrorKind = 0

// TYPE_MISMATCH indicates an operand of the wrong kind (e.g. a string where a
// number is required, or a number where a node is required).
const TYPE_MISMATCH ErrorKind = 1

// ARGUMENT_COUNT indicates a call or access with the wrong number of
// arguments.
const ARGUMENT_COUNT ErrorKind = 2

// ALREADY_DECLARED indicates a name which collides with an existing
// declaration in the same scope.
const ALREADY_DECLARED ErrorKind = 3

// DEFERRED indicates an access of a branch name which is not (yet) declared.
// Resolution of the enclosing statement can be retried once further branches
// have been declared.
const DEFERRED ErrorKind = 4

// MALFORMED indicates a raw expression which does not evaluate to exactly one
// value (e.g. because of an operator without enough operands).
const MALFORMED ErrorKind = 5

var errorKinds = []string{"unresolved symbol", "type mismatch", "argument count mismatch", "already declared",
	"unknown branch", "malformed expression"}

func (k ErrorKind) String() string {
	return errorKinds[k]
}

// Error is a fatal error arising during resolution, carrying the offending
// name (where available).
type Error struct {
	Kind ErrorKind
	Name string
	Msg  string
}

func newError(kind ErrorKind, name string, format string, args ...any) *Error {
	return &Error{kind, name, fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %s", e.Kind.String(), e.Msg)
	}
	//
	return fmt.Sprintf("%s \"%s\": %s", e.Kind.String(), e.Name, e.Msg)
}

// KindOf returns the kind of a (possibly wrapped) resolution error, or false
// if the error did not arise from resolution.
func KindOf(err error) (ErrorKind, bool) {
	if e, ok := errors.Cause(err).(*Error); ok {
		return e.Kind, true
	}
	//
	return 0, false
}

// IsDeferred checks whether a (possibly wrapped) error indicates resolution
// should be retried later.
func IsDeferred(err error) bool {
	kind, ok := KindOf(err)
	//
	return ok && kind == DEFERRED
}
