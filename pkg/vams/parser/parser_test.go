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
	"strings"
	"testing"

	"github.com/consensys/go-vams/pkg/util/source"
	"github.com/consensys/go-vams/pkg/vams/compiler"
	"github.com/consensys/go-vams/pkg/vams/deps"
)

// ============================================================================
// Lexing
// ============================================================================

func Test_Lexer_00(t *testing.T) {
	checkTokens(t, "I(p,n) <+ 4.7k*V(p);", IDENTIFIER, LBRACE, IDENTIFIER, COMMA, IDENTIFIER, RBRACE, CONTRIBUTE,
		NUMBER, MUL, IDENTIFIER, LBRACE, IDENTIFIER, RBRACE, SEMICOLON, END_OF)
}

func Test_Lexer_01(t *testing.T) {
	checkTokens(t, "x // comment\n /* block\n comment */ y", IDENTIFIER, IDENTIFIER, END_OF)
}

func Test_Lexer_02(t *testing.T) {
	checkTokens(t, "a<=b**c", IDENTIFIER, LESSTHAN_EQUALS, IDENTIFIER, POW, IDENTIFIER, END_OF)
}

func Test_Lexer_03(t *testing.T) {
	checkTokens(t, "1e-3 2.5 10m $vt", NUMBER, NUMBER, NUMBER, IDENTIFIER, END_OF)
}

func Test_Lexer_04(t *testing.T) {
	checkTokens(t, "a!=b && !c || d>=e", IDENTIFIER, NOT_EQUALS, IDENTIFIER, AND, NOT, IDENTIFIER, OR, IDENTIFIER,
		GREATERTHAN_EQUALS, IDENTIFIER, END_OF)
}

func Test_Lexer_05(t *testing.T) {
	checkTokens(t, "\"a \\\" b\" x", STRING, IDENTIFIER, END_OF)
}

func Test_Lexer_06(t *testing.T) {
	var srcfile = source.NewSourceFile("test", []byte("x # y"))
	//
	if _, errs := tokenise(srcfile); len(errs) != 1 {
		t.Errorf("expected lexing error, got %v", errs)
	}
}

// ============================================================================
// Expressions
// ============================================================================

func Test_Expression_00(t *testing.T) {
	checkExpression(t, "1 + 2 * 3", "1 2 3 * +")
}

func Test_Expression_01(t *testing.T) {
	checkExpression(t, "a - b - c", "a b - c -")
}

func Test_Expression_02(t *testing.T) {
	checkExpression(t, "a ** b ** c", "a b c ** **")
}

func Test_Expression_03(t *testing.T) {
	checkExpression(t, "-x * y", "x u- y *")
}

func Test_Expression_04(t *testing.T) {
	checkExpression(t, "!a && b || c", "a u! b && c ||")
}

func Test_Expression_05(t *testing.T) {
	checkExpression(t, "f(a, b + 1)", "[ a b 1 + ] f")
}

func Test_Expression_06(t *testing.T) {
	checkExpression(t, "$temperature()", "[ ] $temperature")
}

func Test_Expression_07(t *testing.T) {
	checkExpression(t, "c ? a : b ? d : e", "c ?{a}:{b ?{d}:{e}}")
}

func Test_Expression_08(t *testing.T) {
	checkExpression(t, "(a + b) * +c", "a b + c *")
}

func Test_Expression_09(t *testing.T) {
	checkExpression(t, "1.5k / x", "1500.0 x /")
}

func Test_Expression_10(t *testing.T) {
	checkExpression(t, "a < b == c >= d", "a b < c d >= ==")
}

func Test_Expression_11(t *testing.T) {
	for _, input := range []string{"", "a +", "(a", "f(a,", "a ? b", "a b"} {
		if _, errs := ParseExpression(input); len(errs) == 0 {
			t.Errorf("expected syntax error for \"%s\"", input)
		}
	}
}

func Test_Expression_12(t *testing.T) {
	for _, input := range []string{"1 + 2 * 3", "(a + b) * c", "a - (b - c)", "(a ** b) ** c", "-x * y",
		"f(a, b + 1)", "$temperature()", "c ? a : b ? d : e", "(c ? a : b) + 1", "I(p, n, p)", "!(a && b)"} {
		raw, errs := ParseExpression(input)
		//
		if len(errs) != 0 {
			t.Fatalf("unexpected syntax error: %s", errs[0].Message())
		} else if actual := raw.Infix(); actual != input {
			t.Errorf("got \"%s\", expected \"%s\"", actual, input)
		}
	}
}

// ============================================================================
// Modules
// ============================================================================

const RESISTOR = `
module resistor(p, n);
  inout p, n;
  electrical p, n;
  parameter real r = 1k from (0:inf);
  analog begin
    I(p, n) <+ V(p, n) / r;
  end
endmodule
`

func Test_Module_00(t *testing.T) {
	var modules = checkParse(t, RESISTOR)
	//
	if len(modules) != 1 || modules[0].Name() != "resistor" {
		t.Fatalf("expected module resistor")
	} else if len(modules[0].Ports()) != 2 || len(modules[0].Parameters()) != 1 {
		t.Errorf("expected two ports and one parameter")
	}
	//
	stmt := contribution(t, modules[0], 0)
	summary := stmt.Expression().Summary()
	//
	if summary.Deps().Len() != 1 || summary.Deps().Edges()[0].Order() != deps.LINEAR {
		t.Errorf("expected one linear dependency, got %s", summary.String())
	} else if !summary.IsLinear() || summary.IsConstant() {
		t.Errorf("unexpected summary %s", summary.String())
	}
	//
	branch := stmt.Target().Ref.Branch
	if !branch.HasPotentialProbe() || !branch.HasFlowSource() || branch.HasFlowProbe() {
		t.Errorf("unexpected usage of branch %s", branch.String())
	}
}

func Test_Module_01(t *testing.T) {
	var modules = checkParse(t, `
module m1(a); electrical a; analog V(a) <+ 1; endmodule
module m2(a); electrical a; analog I(a) <+ 2; endmodule
`)
	//
	if len(modules) != 2 || modules[0].Name() != "m1" || modules[1].Name() != "m2" {
		t.Errorf("expected modules m1 and m2")
	}
}

func Test_Module_02(t *testing.T) {
	var modules = checkParse(t, `
module m(a, b);
  electrical a, b;
  parameter integer n = 2, k = n * 3;
  localparam real half = 0.5;
  real x;
  analog begin : body
    real y = half * V(a, b);
    x = y;
    if (n > 1) begin
      I(a, b) <+ x;
    end else
      I(a, b) <+ 0;
    ;
  end
endmodule
`)
	//
	if len(modules[0].Parameters()) != 3 {
		t.Errorf("expected three parameters")
	}
	//
	if value := modules[0].Parameters()[2].Value(); !value.HasValue() {
		t.Errorf("expected local parameter to have a value")
	}
}

func Test_Module_03(t *testing.T) {
	checkError(t, "module m; analog V(a) <+ 1 endmodule", "expected ';'")
}

func Test_Module_04(t *testing.T) {
	checkError(t, "module m(a, a); endmodule", "already declared")
}

func Test_Module_05(t *testing.T) {
	checkError(t, "module m(a); electrical a; analog I(br) <+ 1; endmodule", "branch never declared")
}

func Test_Module_06(t *testing.T) {
	checkError(t, "module m(a); electrical a; analog I(a) <+ x; endmodule", "unresolved symbol")
}

func Test_Module_07(t *testing.T) {
	checkError(t, "module m(a); input b; endmodule", "not a port")
}

func Test_Module_08(t *testing.T) {
	checkError(t, "module m(a); electrical a; analog begin V(a) <+ 1;", "expected end")
}

func Test_Module_09(t *testing.T) {
	checkError(t, "module m(a); electrical a; real x; real x; endmodule", "already declared")
}

// ============================================================================
// Framework
// ============================================================================

func checkTokens(t *testing.T, input string, expected ...uint) {
	var srcfile = source.NewSourceFile("test", []byte(input))
	//
	tokens, errs := tokenise(srcfile)
	if len(errs) != 0 {
		t.Fatalf("unexpected lexing error: %s", errs[0].Message())
	}
	//
	kinds := make([]uint, len(tokens))
	for i, token := range tokens {
		kinds[i] = token.Kind
	}
	//
	if !slices.Equal(kinds, expected) {
		t.Errorf("got %v, expected %v", kinds, expected)
	}
}

func checkExpression(t *testing.T, input string, expected string) {
	raw, errs := ParseExpression(input)
	//
	if len(errs) != 0 {
		t.Fatalf("unexpected syntax error: %s", errs[0].Message())
	} else if actual := raw.String(); actual != expected {
		t.Errorf("got \"%s\", expected \"%s\"", actual, expected)
	}
}

func checkParse(t *testing.T, input string) []*compiler.Module {
	var srcfile = source.NewSourceFile("test.va", []byte(input))
	//
	modules, errs := Parse(srcfile, compiler.DefaultConfig())
	//
	for _, err := range errs {
		t.Errorf("unexpected error: %s", err.Message())
	}
	//
	if len(errs) != 0 {
		t.FailNow()
	}
	//
	return modules
}

func checkError(t *testing.T, input string, expected string) {
	var srcfile = source.NewSourceFile("test.va", []byte(input))
	//
	_, errs := Parse(srcfile, compiler.DefaultConfig())
	//
	for _, err := range errs {
		if strings.Contains(err.Message(), expected) {
			return
		}
	}
	//
	t.Errorf("expected error containing \"%s\", got %v", expected, errs)
}

// Extract the nth contribution from the first analog block of a module.
func contribution(t *testing.T, module *compiler.Module, n int) *compiler.Contribution {
	var count = 0
	//
	analog, ok := module.Analog().Statements()[0].(*compiler.Block)
	if !ok {
		t.Fatalf("expected analog block")
	}
	//
	for _, stmt := range analog.Statements() {
		if c, ok := stmt.(*compiler.Contribution); ok {
			if count == n {
				return c
			}
			//
			count++
		}
	}
	//
	t.Fatalf("missing contribution %d", n)
	//
	return nil
}
