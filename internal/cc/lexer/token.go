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

package lexer

// Kind is the closed set of lexical token kinds the lexer can produce.
type Kind int

const (
	// Directive is a '#' followed, after optional spaces or tabs, by a
	// directive name, e.g. "#include" or "# ifdef". The directive name is
	// matched as a unit.
	Directive Kind = iota
	// Identifier is a macro name, parameter name, or bare preprocessing
	// identifier such as __STDC__.
	Identifier
	// IntegerConst is an integer literal appearing in a #if expression.
	IntegerConst
	// CharConst is a character literal, e.g. 'a' or '\n', appearing in a #if
	// expression. Its Text is the raw source spelling, quotes and any escape
	// sequence included.
	CharConst
	// String is a double-quoted string, used as a #include argument or
	// inside a #error/#warning message.
	String
	// Filename is an angle-bracket delimited #include argument, e.g.
	// <stdio.h>. Recognized directly after an #include/#include_next
	// directive token, and for the single token right after a #define's
	// macro name (the "#define HDR <x.h>" pattern).
	Filename
	// Defined is the "defined" operator keyword inside a #if expression.
	Defined
	// Not is the unary '!' operator.
	Not
	// And is the binary '&&' operator.
	And
	// Or is the binary '||' operator.
	Or
	// Equal is the binary '==' operator.
	Equal
	// NotEqual is the binary '!=' operator.
	NotEqual
	// LessThan is the binary '<' operator.
	LessThan
	// LessEqual is the binary '<=' operator.
	LessEqual
	// GreaterThan is the binary '>' operator.
	GreaterThan
	// GreaterEqual is the binary '>=' operator.
	GreaterEqual
	// TokenConcatenation is the macro-body '##' operator.
	TokenConcatenation
	// Stringification is the macro-body '#' operator. The lexer emits it
	// for any '#' that does not open a directive name, including a line
	// holding a bare '#'.
	Stringification
	// LParen is '('.
	LParen
	// RParen is ')'.
	RParen
	// Comma is ','.
	Comma
	// Ellipsis is the variadic-macro '...' token.
	Ellipsis
)

// String names a Kind for diagnostics and test failure messages.
func (k Kind) String() string {
	switch k {
	case Directive:
		return "Directive"
	case Identifier:
		return "Identifier"
	case IntegerConst:
		return "IntegerConst"
	case CharConst:
		return "CharConst"
	case String:
		return "String"
	case Filename:
		return "Filename"
	case Defined:
		return "Defined"
	case Not:
		return "Not"
	case And:
		return "And"
	case Or:
		return "Or"
	case Equal:
		return "Equal"
	case NotEqual:
		return "NotEqual"
	case LessThan:
		return "LessThan"
	case LessEqual:
		return "LessEqual"
	case GreaterThan:
		return "GreaterThan"
	case GreaterEqual:
		return "GreaterEqual"
	case TokenConcatenation:
		return "TokenConcatenation"
	case Stringification:
		return "Stringification"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case Comma:
		return "Comma"
	case Ellipsis:
		return "Ellipsis"
	default:
		return "Unknown"
	}
}

// Class is the coarse grammatical role a Kind plays in a #if expression,
// used by the expression compiler's Shunting-Yard precedence table.
type Class int

const (
	// ClassNone is the class of tokens that never appear as Shunting-Yard
	// operands/operators (Directive, String, Filename, TokenConcatenation,
	// Stringification, LParen, RParen, Comma, Ellipsis).
	ClassNone Class = iota
	// ClassValue is a self-evaluating operand: Identifier, IntegerConst, or
	// CharConst.
	ClassValue
	// ClassRTLUnary is a right-associative unary prefix operator: Defined
	// or Not.
	ClassRTLUnary
	// ClassOperator is a binary infix operator. The expression compiler
	// pops an operator only for a strictly lower-precedence arrival, so a
	// chain of equal-precedence operators groups to the right.
	ClassOperator
)

// Class reports the Shunting-Yard role of k.
func (k Kind) Class() Class {
	switch k {
	case Identifier, IntegerConst, CharConst:
		return ClassValue
	case Defined, Not:
		return ClassRTLUnary
	case And, Or, Equal, NotEqual, LessThan, LessEqual, GreaterThan, GreaterEqual:
		return ClassOperator
	default:
		return ClassNone
	}
}

// Position is the physical source location a Token was lexed from.
type Position struct {
	Line, Column int
}

// Token is a single lexical unit together with its originating position and
// exact source spelling.
type Token struct {
	Kind Kind
	Pos  Position
	Text string
}
