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
	"math"

	"github.com/consensys/go-vams/pkg/vams/deps"
	"github.com/consensys/go-vams/pkg/vams/ir"
	"github.com/consensys/go-vams/pkg/vams/topology"
)

// FunctionKind classifies built-in functions by how they are resolved.
type FunctionKind uint8

// ENVIRONMENT identifies system functions whose values vary during simulation,
// but not with any circuit quantity (e.g. $temperature).
const ENVIRONMENT FunctionKind = 0

// PARAM_GIVEN identifies the $param_given() system function.
const PARAM_GIVEN FunctionKind = 1

// MATH identifies pure mathematical functions.
const MATH FunctionKind = 2

// FILTER identifies analog operators which are implemented with an internal
// branch (e.g. ddt()).
const FILTER FunctionKind = 3

// Builtin describes a built-in function.
type Builtin struct {
	kind FunctionKind
	// Bounds on the number of arguments.
	min, max uint
	// Evaluates a math function over known arguments.
	eval func(args []float64) float64
	// Indicates a math function which maps integers to integers.
	integral bool
}

// BUILTINS maps the names of built-in functions to their descriptions.
var BUILTINS = map[string]*Builtin{
	"$temperature": {ENVIRONMENT, 0, 0, nil, false},
	"$abstime":     {ENVIRONMENT, 0, 0, nil, false},
	"$vt":          {ENVIRONMENT, 0, 1, nil, false},
	"$param_given": {PARAM_GIVEN, 1, 1, nil, false},
	"ddt":          {FILTER, 1, 1, nil, false},
	"idt":          {FILTER, 1, 2, nil, false},
	"exp":          {MATH, 1, 1, arity1(math.Exp), false},
	"limexp":       {MATH, 1, 1, arity1(math.Exp), false},
	"ln":           {MATH, 1, 1, arity1(math.Log), false},
	"log":          {MATH, 1, 1, arity1(math.Log10), false},
	"sqrt":         {MATH, 1, 1, arity1(math.Sqrt), false},
	"sin":          {MATH, 1, 1, arity1(math.Sin), false},
	"cos":          {MATH, 1, 1, arity1(math.Cos), false},
	"tan":          {MATH, 1, 1, arity1(math.Tan), false},
	"asin":         {MATH, 1, 1, arity1(math.Asin), false},
	"acos":         {MATH, 1, 1, arity1(math.Acos), false},
	"atan":         {MATH, 1, 1, arity1(math.Atan), false},
	"sinh":         {MATH, 1, 1, arity1(math.Sinh), false},
	"cosh":         {MATH, 1, 1, arity1(math.Cosh), false},
	"tanh":         {MATH, 1, 1, arity1(math.Tanh), false},
	"abs":          {MATH, 1, 1, arity1(math.Abs), true},
	"floor":        {MATH, 1, 1, arity1(math.Floor), true},
	"ceil":         {MATH, 1, 1, arity1(math.Ceil), true},
	"pow":          {MATH, 2, 2, arity2(math.Pow), false},
	"atan2":        {MATH, 2, 2, arity2(math.Atan2), false},
	"hypot":        {MATH, 2, 2, arity2(math.Hypot), false},
	"min":          {MATH, 2, 2, arity2(math.Min), true},
	"max":          {MATH, 2, 2, arity2(math.Max), true},
}

func arity1(fn func(float64) float64) func([]float64) float64 {
	return func(args []float64) float64 { return fn(args[0]) }
}

func arity2(fn func(float64, float64) float64) func([]float64) float64 {
	return func(args []float64) float64 { return fn(args[0], args[1]) }
}

// summarise determines the summary of a call to this function from the
// summaries of its arguments.
func (fn *Builtin) summarise(args []ir.Node) *deps.Summary {
	var summaries = make([]*deps.Summary, len(args))
	//
	for i, arg := range args {
		summaries[i] = arg.Summary()
	}
	//
	switch fn.kind {
	case ENVIRONMENT:
		return deps.Combine(append(summaries, deps.Varying())...)
	case PARAM_GIVEN:
		return deps.Constant(true)
	default:
		return deps.Opaque(summaries...)
	}
}

// builtin resolves a call to a built-in function.
func (r *Resolver) builtin(id *ir.Identifier, fn *Builtin, args *ir.Args) (ir.Node, error) {
	var n = uint(len(args.Items))
	//
	if n < fn.min || n > fn.max {
		return nil, newError(ARGUMENT_COUNT, id.Name, "expected %d to %d arguments, found %d", fn.min, fn.max, n)
	} else if fn.kind == PARAM_GIVEN {
		return r.paramGiven(id.Name, args)
	}
	//
	for _, arg := range args.Items {
		if err := checkValue(arg); err != nil {
			return nil, err
		}
	}
	//
	switch fn.kind {
	case FILTER:
		return r.filter(id, args), nil
	case MATH:
		if lit, ok := fn.fold(args.Items); ok && r.config.Simplify {
			return lit, nil
		}
	}
	//
	return ir.NewCall(id.Name, args, nil, fn.summarise(args.Items)), nil
}

// fold evaluates a math function whose arguments are all known numbers.
func (fn *Builtin) fold(args []ir.Node) (*ir.Literal, bool) {
	var (
		values   = make([]float64, len(args))
		integral = fn.integral
	)
	//
	for i, arg := range args {
		lit, ok := arg.(*ir.Literal)
		if !ok {
			return nil, false
		}
		//
		switch v := lit.Value.(type) {
		case ir.IntValue:
			values[i] = float64(v)
		case ir.RealValue:
			values[i] = float64(v)
			integral = false
		default:
			return nil, false
		}
	}
	//
	result := fn.eval(values)
	//
	if integral {
		return ir.NewLiteral(ir.IntValue(result)), true
	}
	//
	return ir.NewLiteral(ir.RealValue(result)), true
}

// paramGiven resolves $param_given(p), which folds to 0 or 1 when it is known
// whether the parameter was given.
func (r *Resolver) paramGiven(name string, args *ir.Args) (ir.Node, error) {
	var param *Parameter
	//
	switch arg := args.Items[0].(type) {
	case *ir.ParamRef:
		param, _ = arg.Param.(*Parameter)
	case *ir.Literal:
		param, _ = arg.Origin.(*Parameter)
	}
	//
	if param == nil {
		return nil, newError(TYPE_MISMATCH, name, "expected a parameter, found %s", ir.Dump(args.Items[0]))
	} else if given := param.Given(); given.HasValue() && r.config.Simplify {
		if given.Unwrap() {
			return ir.NewLiteral(ir.IntValue(1)), nil
		}
		//
		return ir.NewLiteral(ir.IntValue(0)), nil
	}
	//
	return ir.NewCall(name, args, nil, deps.Constant(true)), nil
}

// filter resolves an analog filter, such as ddt(x).  The output of the filter
// is modelled as the potential of an internal branch, so the result depends
// linearly upon that potential (along with whatever the argument depends upon).
// The derivative of a known value is zero.
func (r *Resolver) filter(id *ir.Identifier, args *ir.Args) ir.Node {
	if _, ok := args.Items[0].(*ir.Literal); ok && id.Name == "ddt" && r.config.Simplify {
		return ir.NewLiteral(ir.IntValue(0))
	}
	//
	branch, ok := r.filters[id]
	if !ok {
		branch = r.circuit.NewFilterBranch(id.Name)
		r.filters[id] = branch
	}
	//
	ir.AcquireFilter(branch)
	//
	summary := deps.Combine(deps.OfProbe(branch.Probe(topology.POTENTIAL)), args.Summary())
	summary.SetOffset(false)
	summary.SetConstant(false)
	//
	return ir.NewCall(id.Name, args, branch, summary)
}
