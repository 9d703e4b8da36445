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

// Package parser consumes the lexer's directive token-lines and builds the
// AST node list: Include, DeferredInclude, ObjectMacro, FunctionMacro, and
// ConditionalBlock.
package parser

import (
	"strings"

	"github.com/ccdeps/ccdeps/internal/cc/ccerr"
	"github.com/ccdeps/ccdeps/internal/cc/expr"
	"github.com/ccdeps/ccdeps/internal/cc/lexer"
)

// knownDirectives lists the directives that may appear outside a
// conditional block. It is reported as the expected set when a stray
// #elif/#else/#endif is found; Parse's switch decides which names fail
// UnknownDirective.
var knownDirectives = []string{
	"#include", "#define", "#if", "#ifdef", "#ifndef", "#pragma",
}

// Parse builds an ordered AST node list from lines, recursing into nested
// conditional blocks. A TokenLine whose first token is not a Directive (a
// bare '#') is skipped.
func Parse(lines []lexer.TokenLine) ([]Node, error) {
	var nodes []Node
	i := 0
	for i < len(lines) {
		tl := lines[i]
		if len(tl.Tokens) == 0 || tl.Tokens[0].Kind != lexer.Directive {
			// A bare '#' with nothing recognizable following it (no letter
			// after any whitespace) never matches the directive rule, so
			// the lexer reports whatever single token it found instead.
			// Per the no-op "# alone" line, skip rather than fail.
			i++
			continue
		}
		directiveTok := tl.Tokens[0]
		name := directiveName(directiveTok.Text)

		switch name {
		case "include":
			node, err := parseInclude(tl)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			i++

		case "define":
			node, err := parseDefine(tl)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			i++

		case "pragma":
			i++

		case "if", "ifdef", "ifndef":
			block, consumed, err := parseConditionalBlock(lines[i:])
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, block)
			i += consumed

		case "elif", "else", "endif":
			return nil, &ccerr.UnexpectedToken{
				Line:     directiveTok.Pos.Line,
				Column:   directiveTok.Pos.Column,
				Got:      "#" + name,
				Expected: knownDirectives,
			}

		default:
			return nil, &ccerr.UnknownDirective{
				Name:   name,
				Line:   directiveTok.Pos.Line,
				Column: directiveTok.Pos.Column,
			}
		}
	}
	return nodes, nil
}

// directiveName strips the leading '#' and any whitespace the lexer
// captured between it and the directive name.
func directiveName(text string) string {
	return strings.TrimSpace(strings.TrimPrefix(text, "#"))
}

func parseInclude(tl lexer.TokenLine) (Node, error) {
	directiveTok := tl.Tokens[0]
	args := tl.Tokens[1:]
	if len(args) == 0 {
		return nil, &ccerr.ExpectedIncludeArgument{Line: directiveTok.Pos.Line, Column: directiveTok.Pos.Column}
	}
	arg := args[0]
	switch arg.Kind {
	case lexer.Identifier:
		return DeferredInclude{Identifier: arg}, nil
	case lexer.Filename:
		return Include{Path: strings.Trim(arg.Text, "<>"), Quoted: false}, nil
	case lexer.String:
		return Include{Path: strings.Trim(arg.Text, `"`), Quoted: true}, nil
	default:
		return nil, &ccerr.ExpectedIncludeArgument{Line: arg.Pos.Line, Column: arg.Pos.Column}
	}
}

func parseDefine(tl lexer.TokenLine) (Node, error) {
	directiveTok := tl.Tokens[0]
	rest := tl.Tokens[1:]
	if len(rest) == 0 || rest[0].Kind != lexer.Identifier {
		got := "end of line"
		pos := directiveTok.Pos
		if len(rest) > 0 {
			got = rest[0].Kind.String()
			pos = rest[0].Pos
		}
		return nil, &ccerr.UnexpectedToken{Line: pos.Line, Column: pos.Column, Got: got, Expected: []string{"Identifier"}}
	}
	nameTok := rest[0]
	tail := rest[1:]

	if len(tail) > 0 && tail[0].Kind == lexer.LParen && isAdjacent(nameTok, tail[0]) {
		params, bodyStart, err := parseMacroParams(tail[1:])
		if err != nil {
			return nil, err
		}
		return FunctionMacro{Name: nameTok.Text, Params: params, Body: tail[1+bodyStart:]}, nil
	}
	return ObjectMacro{Name: nameTok.Text, Body: tail}, nil
}

// isAdjacent reports whether b immediately follows a with no intervening
// whitespace: ISO C requires this for a function-like macro's '('.
func isAdjacent(a, b lexer.Token) bool {
	return a.Pos.Line == b.Pos.Line && b.Pos.Column == a.Pos.Column+len(a.Text)
}

// parseMacroParams parses a function-macro parameter list starting just
// after '(', returning the parameter names and the index of the first
// body token (immediately after the closing ')').
func parseMacroParams(tokens []lexer.Token) (params []string, bodyStart int, err error) {
	if len(tokens) > 0 && tokens[0].Kind == lexer.RParen {
		return nil, 1, nil
	}
	idx := 0
	for {
		if idx >= len(tokens) {
			return nil, 0, expectedCommaOrRParenAtEnd(tokens)
		}
		tok := tokens[idx]
		switch tok.Kind {
		case lexer.Ellipsis:
			params = append(params, "...")
			idx++
			if idx >= len(tokens) || tokens[idx].Kind != lexer.RParen {
				return nil, 0, expectedCommaOrRParenAt(tokens, idx)
			}
			return params, idx + 1, nil
		case lexer.Identifier:
			params = append(params, tok.Text)
			idx++
		default:
			return nil, 0, expectedCommaOrRParenAt(tokens, idx)
		}

		if idx >= len(tokens) {
			return nil, 0, expectedCommaOrRParenAtEnd(tokens)
		}
		switch tokens[idx].Kind {
		case lexer.Comma:
			idx++
			continue
		case lexer.RParen:
			return params, idx + 1, nil
		default:
			return nil, 0, expectedCommaOrRParenAt(tokens, idx)
		}
	}
}

func expectedCommaOrRParenAt(tokens []lexer.Token, idx int) error {
	tok := tokens[idx]
	return &ccerr.ExpectedCommaOrRParen{Line: tok.Pos.Line, Column: tok.Pos.Column, Got: tok.Kind.String()}
}

func expectedCommaOrRParenAtEnd(tokens []lexer.Token) error {
	if len(tokens) == 0 {
		return &ccerr.ExpectedCommaOrRParen{Got: "end of line"}
	}
	last := tokens[len(tokens)-1]
	return &ccerr.ExpectedCommaOrRParen{Line: last.Pos.Line, Column: last.Pos.Column, Got: "end of line"}
}

// parseConditionalBlock parses the conditional block opening at lines[0]
// (an if/ifdef/ifndef). It returns the block and the number of TokenLines
// consumed from lines, including the closing #endif.
func parseConditionalBlock(lines []lexer.TokenLine) (Node, int, error) {
	markers, consumed, err := scanConditionalMarkers(lines)
	if err != nil {
		return nil, 0, err
	}

	var branches []Branch
	for j := 0; j < len(markers)-1; j++ {
		branchStart := markers[j]
		branchEnd := markers[j+1]
		branch, err := buildBranch(lines[branchStart])
		if err != nil {
			return nil, 0, err
		}
		children, err := Parse(lines[branchStart+1 : branchEnd])
		if err != nil {
			return nil, 0, err
		}
		branch.Children = children
		branches = append(branches, branch)
	}
	return ConditionalBlock{Branches: branches}, consumed, nil
}

// scanConditionalMarkers scans forward from lines[0] (the opening
// if/ifdef/ifndef) tracking nesting depth, returning the indices of every
// depth-1 marker (the opener, each elif/else, and the closing endif) plus
// the total number of lines consumed.
func scanConditionalMarkers(lines []lexer.TokenLine) (markers []int, consumed int, err error) {
	markers = []int{0}
	depth := 1
	for i := 1; i < len(lines); i++ {
		switch directiveName(lines[i].Tokens[0].Text) {
		case "if", "ifdef", "ifndef":
			depth++
		case "endif":
			depth--
			if depth == 0 {
				markers = append(markers, i)
				return markers, i + 1, nil
			}
		case "elif", "else":
			if depth == 1 {
				markers = append(markers, i)
			}
		}
	}
	openTok := lines[0].Tokens[0]
	return nil, 0, &ccerr.UnterminatedConditional{Line: openTok.Pos.Line, Column: openTok.Pos.Column}
}

func buildBranch(tl lexer.TokenLine) (Branch, error) {
	directiveTok := tl.Tokens[0]
	name := directiveName(directiveTok.Text)
	branch := Branch{Line: tl.Line}

	switch name {
	case "if":
		branch.Kind = If
		cond, err := expr.Compile(tl.Tokens[1:])
		if err != nil {
			return Branch{}, err
		}
		branch.Condition = cond
	case "elif":
		branch.Kind = Elif
		cond, err := expr.Compile(tl.Tokens[1:])
		if err != nil {
			return Branch{}, err
		}
		branch.Condition = cond
	case "ifdef", "ifndef":
		if name == "ifdef" {
			branch.Kind = Ifdef
		} else {
			branch.Kind = Ifndef
		}
		if len(tl.Tokens) < 2 || tl.Tokens[1].Kind != lexer.Identifier {
			pos := directiveTok.Pos
			got := "end of line"
			if len(tl.Tokens) >= 2 {
				pos = tl.Tokens[1].Pos
				got = tl.Tokens[1].Kind.String()
			}
			return Branch{}, &ccerr.UnexpectedToken{Line: pos.Line, Column: pos.Column, Got: got, Expected: []string{"Identifier"}}
		}
		id := tl.Tokens[1]
		branch.Identifier = &id
	case "else":
		branch.Kind = Else
	}
	return branch, nil
}
