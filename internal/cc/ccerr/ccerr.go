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

// Package ccerr defines the fatal diagnostic taxonomy shared by the lexer,
// parser, expression compiler and interpreter. Every error type carries the
// source line/column it was raised at so a caller can report precisely
// where a translation unit failed to analyze.
package ccerr

import "fmt"

// UnknownToken is raised by the lexer when no matching rule applies at the
// current cursor position.
type UnknownToken struct {
	Line, Column int
	Lexeme       string
}

func (e *UnknownToken) Error() string {
	return fmt.Sprintf("%d:%d: unknown token %q", e.Line, e.Column, e.Lexeme)
}

// UnexpectedToken is raised by the parser when a token of an unexpected kind
// is encountered. Got and Expected are human-readable token-kind or
// directive names.
type UnexpectedToken struct {
	Line, Column int
	Got          string
	Expected     []string
}

func (e *UnexpectedToken) Error() string {
	return fmt.Sprintf("%d:%d: unexpected token %s, expected one of %v", e.Line, e.Column, e.Got, e.Expected)
}

// UnknownDirective is raised by the parser for a directive name outside the
// recognized set.
type UnknownDirective struct {
	Line, Column int
	Name         string
}

func (e *UnknownDirective) Error() string {
	return fmt.Sprintf("%d:%d: unknown directive %q", e.Line, e.Column, e.Name)
}

// UnterminatedConditional is raised when a conditional block opened by
// #if/#ifdef/#ifndef never reaches a matching #endif.
type UnterminatedConditional struct {
	Line, Column int
}

func (e *UnterminatedConditional) Error() string {
	return fmt.Sprintf("%d:%d: unterminated conditional block, missing #endif", e.Line, e.Column)
}

// UnmatchedLParen is raised by the expression compiler when an operator
// stack still holds a '(' once the input is exhausted.
type UnmatchedLParen struct {
	Line, Column int
}

func (e *UnmatchedLParen) Error() string {
	return fmt.Sprintf("%d:%d: unmatched '('", e.Line, e.Column)
}

// UnmatchedRParen is raised by the expression compiler when a ')' is seen
// with no corresponding '(' on the operator stack.
type UnmatchedRParen struct {
	Line, Column int
}

func (e *UnmatchedRParen) Error() string {
	return fmt.Sprintf("%d:%d: unmatched ')'", e.Line, e.Column)
}

// MalformedExpression is raised by the interpreter when RPN evaluation ends
// with a value-stack depth other than 1.
type MalformedExpression struct {
	Line, Column int
	StackDepth   int
}

func (e *MalformedExpression) Error() string {
	return fmt.Sprintf("%d:%d: malformed expression, evaluation stack has %d values, expected 1", e.Line, e.Column, e.StackDepth)
}

// FunctionMacroInInclude is raised when a #include SOMEMACRO resolves to a
// function-like macro, which cannot stand in for a header name.
type FunctionMacroInInclude struct {
	Line, Column int
	Name         string
}

func (e *FunctionMacroInInclude) Error() string {
	return fmt.Sprintf("%d:%d: function-like macro %q cannot be used as an #include argument", e.Line, e.Column, e.Name)
}

// FunctionMacroInExpression is raised when a function-like macro name is
// referenced (without a call) inside a #if/#elif expression.
type FunctionMacroInExpression struct {
	Line, Column int
	Name         string
}

func (e *FunctionMacroInExpression) Error() string {
	return fmt.Sprintf("%d:%d: function-like macro %q cannot be used in a conditional expression", e.Line, e.Column, e.Name)
}

// UndefinedIncludeMacro is raised when a #include SOMEMACRO identifier is
// not bound in the macro table at interpretation time.
type UndefinedIncludeMacro struct {
	Line, Column int
	Name         string
}

func (e *UndefinedIncludeMacro) Error() string {
	return fmt.Sprintf("%d:%d: undefined macro %q used as #include argument", e.Line, e.Column, e.Name)
}

// ExpectedIncludeArgument is raised when #include is not followed by an
// identifier, a quoted string, or an angle-bracket filename.
type ExpectedIncludeArgument struct {
	Line, Column int
}

func (e *ExpectedIncludeArgument) Error() string {
	return fmt.Sprintf("%d:%d: expected a filename or identifier after #include", e.Line, e.Column)
}

// ExpectedCommaOrRParen is raised while parsing a function-macro parameter
// list when neither ',' nor ')' follows a parameter name.
type ExpectedCommaOrRParen struct {
	Line, Column int
	Got          string
}

func (e *ExpectedCommaOrRParen) Error() string {
	return fmt.Sprintf("%d:%d: expected ',' or ')' in macro parameter list, got %q", e.Line, e.Column, e.Got)
}
