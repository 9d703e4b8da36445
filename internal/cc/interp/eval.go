// Copyright 2025 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package interp

import (
	"strconv"
	"strings"

	"github.com/ccdeps/ccdeps/internal/cc/ccerr"
	"github.com/ccdeps/ccdeps/internal/cc/expr"
	"github.com/ccdeps/ccdeps/internal/cc/lexer"
	"github.com/ccdeps/ccdeps/internal/cc/parser"
)

// valueKind distinguishes a pending, unresolved identifier from a value
// already resolved to an integer or string.
type valueKind int

const (
	identKind valueKind = iota
	intKind
	stringKind
)

// value is an evaluation-stack entry. An identKind value is kept unresolved
// until either "defined" consumes it directly (testing macro-table
// membership, never resolving it) or some other operator needs its value
// (macro lookup, with an unbound identifier evaluating to 0).
type value struct {
	kind   valueKind
	ident  lexer.Token
	intVal int
	strVal string
}

func intValue(n int) value { return value{kind: intKind, intVal: n} }

func boolValue(b bool) value {
	if b {
		return intValue(1)
	}
	return intValue(0)
}

func (v value) truthy() bool {
	if v.kind == stringKind {
		return v.strVal != ""
	}
	return v.intVal != 0
}

// evaluate walks expression's RPN stack against table, honoring defined's
// special-cased identifier operand. line anchors MalformedExpression when
// the stack isn't left with exactly one value.
func evaluate(expression expr.Expression, line int, table MacroTable) (value, error) {
	var stack []value
	pop := func() value {
		n := len(stack) - 1
		v := stack[n]
		stack = stack[:n]
		return v
	}

	for _, tok := range expression {
		switch tok.Kind {
		case lexer.Identifier:
			stack = append(stack, value{kind: identKind, ident: tok})

		case lexer.IntegerConst:
			n, err := parseIntegerConst(tok.Text)
			if err != nil {
				return value{}, err
			}
			stack = append(stack, intValue(n))

		case lexer.CharConst:
			stack = append(stack, intValue(charConstValue(tok.Text)))

		case lexer.Defined:
			if len(stack) == 0 {
				return value{}, &ccerr.MalformedExpression{Line: tok.Pos.Line, Column: tok.Pos.Column, StackDepth: 0}
			}
			operand := pop()
			if operand.kind != identKind {
				stack = append(stack, operand)
				continue
			}
			_, bound := table[operand.ident.Text]
			stack = append(stack, boolValue(bound))

		case lexer.Not:
			if len(stack) == 0 {
				return value{}, &ccerr.MalformedExpression{Line: tok.Pos.Line, Column: tok.Pos.Column, StackDepth: 0}
			}
			operand, err := resolve(pop(), table)
			if err != nil {
				return value{}, err
			}
			stack = append(stack, boolValue(!operand.truthy()))

		default:
			if len(stack) < 2 {
				return value{}, &ccerr.MalformedExpression{Line: tok.Pos.Line, Column: tok.Pos.Column, StackDepth: len(stack)}
			}
			right, err := resolve(pop(), table)
			if err != nil {
				return value{}, err
			}
			left, err := resolve(pop(), table)
			if err != nil {
				return value{}, err
			}
			result, err := applyBinary(tok, left, right)
			if err != nil {
				return value{}, err
			}
			stack = append(stack, result)
		}
	}

	if len(stack) != 1 {
		return value{}, &ccerr.MalformedExpression{Line: line, StackDepth: len(stack)}
	}
	return resolve(stack[0], table)
}

// resolve turns a pending identifier into its macro-table value. An unbound
// identifier is 0; an ObjectMacro's value comes from its first body token;
// a FunctionMacro referenced bare (no call) inside an expression is an
// error, never a value.
func resolve(v value, table MacroTable) (value, error) {
	if v.kind != identKind {
		return v, nil
	}
	bound, ok := table[v.ident.Text]
	if !ok {
		return intValue(0), nil
	}
	switch m := bound.(type) {
	case parser.ObjectMacro:
		if len(m.Body) == 0 {
			return intValue(0), nil
		}
		first := m.Body[0]
		switch first.Kind {
		case lexer.IntegerConst:
			n, err := parseIntegerConst(first.Text)
			if err != nil {
				return value{}, err
			}
			return intValue(n), nil
		case lexer.CharConst:
			return intValue(charConstValue(first.Text)), nil
		case lexer.String:
			return value{kind: stringKind, strVal: strings.Trim(first.Text, `"`)}, nil
		default:
			return value{kind: stringKind, strVal: first.Text}, nil
		}
	case parser.FunctionMacro:
		return value{}, &ccerr.FunctionMacroInExpression{Line: v.ident.Pos.Line, Column: v.ident.Pos.Column, Name: v.ident.Text}
	default:
		return intValue(0), nil
	}
}

func applyBinary(tok lexer.Token, left, right value) (value, error) {
	switch tok.Kind {
	case lexer.Equal:
		return boolValue(valuesEqual(left, right)), nil
	case lexer.NotEqual:
		return boolValue(!valuesEqual(left, right)), nil
	case lexer.LessThan:
		return boolValue(compareNumeric(left, right) < 0), nil
	case lexer.LessEqual:
		return boolValue(compareNumeric(left, right) <= 0), nil
	case lexer.GreaterThan:
		return boolValue(compareNumeric(left, right) > 0), nil
	case lexer.GreaterEqual:
		return boolValue(compareNumeric(left, right) >= 0), nil
	case lexer.And:
		return boolValue(left.truthy() && right.truthy()), nil
	case lexer.Or:
		return boolValue(left.truthy() || right.truthy()), nil
	default:
		return value{}, &ccerr.MalformedExpression{Line: tok.Pos.Line, Column: tok.Pos.Column, StackDepth: -1}
	}
}

func valuesEqual(left, right value) bool {
	if left.kind == stringKind || right.kind == stringKind {
		return toString(left) == toString(right)
	}
	return left.intVal == right.intVal
}

func compareNumeric(left, right value) int {
	switch {
	case left.intVal < right.intVal:
		return -1
	case left.intVal > right.intVal:
		return 1
	default:
		return 0
	}
}

func toString(v value) string {
	if v.kind == stringKind {
		return v.strVal
	}
	return strconv.Itoa(v.intVal)
}

// parseIntegerConst parses a lexed IntegerConst, tolerating the u/l/U/L
// integer-suffix letters a #if constant may carry.
func parseIntegerConst(text string) (int, error) {
	trimmed := strings.TrimRight(text, "uUlL")
	n, err := strconv.ParseInt(trimmed, 0, 64)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// charConstValue returns the ISO numeric value of a lexed CharConst's
// single interior character, honoring the common C escape sequences.
func charConstValue(text string) int {
	inner := strings.TrimSuffix(strings.TrimPrefix(text, "'"), "'")
	if inner == "" {
		return 0
	}
	if inner[0] != '\\' {
		r := []rune(inner)
		return int(r[0])
	}
	if len(inner) < 2 {
		return int('\\')
	}
	switch inner[1] {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\':
		return '\\'
	case '\'':
		return '\''
	case '"':
		return '"'
	default:
		return int(inner[1])
	}
}
