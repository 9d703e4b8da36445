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

// Package expr compiles the infix operator/operand token sequence inside a
// #if/#elif directive into a Reverse Polish Notation token stack, via
// Shunting-Yard.
package expr

import (
	"github.com/ccdeps/ccdeps/internal/cc/ccerr"
	"github.com/ccdeps/ccdeps/internal/cc/lexer"
)

// Expression is a compiled conditional: an RPN token stack. Values sit in
// lexer.ClassValue, operators in lexer.ClassOperator or lexer.ClassRTLUnary.
// No LParen/RParen ever appears in a compiled Expression.
type Expression []lexer.Token

// precedence gives each operator's binding strength. Higher binds tighter.
// defined/! sit above every comparison so "defined X && Y" parses as
// "(defined X) && Y".
func precedence(kind lexer.Kind) int {
	switch kind {
	case lexer.Defined, lexer.Not:
		return 100
	case lexer.LessEqual, lexer.GreaterEqual, lexer.LessThan, lexer.GreaterThan:
		return 90
	case lexer.Equal, lexer.NotEqual:
		return 80
	case lexer.And:
		return 50
	case lexer.Or:
		return 40
	default:
		return 0
	}
}

// Compile runs Shunting-Yard over infix, the tokens following a #if/#elif
// directive on one logical line.
func Compile(infix []lexer.Token) (Expression, error) {
	var output Expression
	var operators []lexer.Token

	popToOutput := func() {
		n := len(operators)
		output = append(output, operators[n-1])
		operators = operators[:n-1]
	}

	for _, tok := range infix {
		switch {
		case tok.Kind.Class() == lexer.ClassValue:
			output = append(output, tok)

		case tok.Kind.Class() == lexer.ClassRTLUnary:
			// defined/! are right-associative unary prefixes: always pushed
			// without popping anything. A later binary operator pops them
			// regardless of precedence (see below).
			operators = append(operators, tok)

		case tok.Kind.Class() == lexer.ClassOperator:
			for len(operators) > 0 {
				top := operators[len(operators)-1]
				if top.Kind == lexer.LParen {
					break
				}
				if top.Kind.Class() == lexer.ClassRTLUnary || precedence(top.Kind) > precedence(tok.Kind) {
					popToOutput()
					continue
				}
				break
			}
			operators = append(operators, tok)

		case tok.Kind == lexer.LParen:
			operators = append(operators, tok)

		case tok.Kind == lexer.RParen:
			found := false
			for len(operators) > 0 {
				top := operators[len(operators)-1]
				if top.Kind == lexer.LParen {
					operators = operators[:len(operators)-1]
					found = true
					break
				}
				popToOutput()
			}
			if !found {
				return nil, &ccerr.UnmatchedRParen{Line: tok.Pos.Line, Column: tok.Pos.Column}
			}

		default:
			// Anything else (String, Comma, Stringification, ...) has no
			// operator role here. The parser passes every token after
			// #if/#elif unfiltered, so such tokens can arrive; they are
			// carried through to the output rather than panicking, and the
			// interpreter rejects them as a malformed expression.
			output = append(output, tok)
		}
	}

	for len(operators) > 0 {
		top := operators[len(operators)-1]
		if top.Kind == lexer.LParen || top.Kind == lexer.RParen {
			return nil, &ccerr.UnmatchedLParen{Line: top.Pos.Line, Column: top.Pos.Column}
		}
		popToOutput()
	}

	return output, nil
}
