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

// Package interp walks a parsed AST against a mutable macro table,
// evaluating conditional expressions and collecting the set of headers
// reachable under that table.
package interp

import (
	"strings"

	"github.com/ccdeps/ccdeps/internal/cc/ccerr"
	"github.com/ccdeps/ccdeps/internal/cc/lexer"
	"github.com/ccdeps/ccdeps/internal/cc/parser"
	"github.com/ccdeps/ccdeps/internal/collections"
)

// MacroTable maps a macro name to its definition. It is owned by a single
// top-level Run invocation and passed by reference into branch recursion,
// so a #define inside a taken branch is visible to every node that follows.
type MacroTable map[string]parser.Node

// DependencySet is the set of headers reachable under a fixed macro table.
type DependencySet = collections.Set[parser.Include]

// Run walks nodes against table, mutating table in place and returning the
// set of Includes reached. table may be nil, in which case an empty table
// is used; pass a pre-seeded table (see internal/platform) to model
// compiler-default or command-line macros.
func Run(nodes []parser.Node, table MacroTable) (DependencySet, error) {
	if table == nil {
		table = make(MacroTable)
	}
	deps := make(DependencySet)
	if err := run(nodes, table, deps); err != nil {
		return deps, err
	}
	return deps, nil
}

func run(nodes []parser.Node, table MacroTable, deps DependencySet) error {
	for _, node := range nodes {
		switch n := node.(type) {
		case parser.Include:
			deps.Add(n)

		case parser.DeferredInclude:
			include, err := resolveDeferredInclude(n, table)
			if err != nil {
				return err
			}
			deps.Add(include)

		case parser.ObjectMacro:
			table[n.Name] = n

		case parser.FunctionMacro:
			table[n.Name] = n

		case parser.ConditionalBlock:
			branch, err := selectBranch(n, table)
			if err != nil {
				return err
			}
			if branch == nil {
				continue
			}
			if err := run(branch.Children, table, deps); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveDeferredInclude looks up a `#include SOMEMACRO` identifier in
// table. Its body's first token supplies the path; Filename and String
// tokens resolve as angle-bracket and quoted includes respectively, any
// other first token is treated as an unquoted bare path.
func resolveDeferredInclude(n parser.DeferredInclude, table MacroTable) (parser.Include, error) {
	id := n.Identifier
	bound, ok := table[id.Text]
	if !ok {
		return parser.Include{}, &ccerr.UndefinedIncludeMacro{Line: id.Pos.Line, Column: id.Pos.Column, Name: id.Text}
	}
	object, ok := bound.(parser.ObjectMacro)
	if !ok {
		return parser.Include{}, &ccerr.FunctionMacroInInclude{Line: id.Pos.Line, Column: id.Pos.Column, Name: id.Text}
	}
	if len(object.Body) == 0 {
		return parser.Include{}, &ccerr.UndefinedIncludeMacro{Line: id.Pos.Line, Column: id.Pos.Column, Name: id.Text}
	}
	first := object.Body[0]
	switch first.Kind {
	case lexer.Filename:
		return parser.Include{Path: strings.Trim(first.Text, "<>"), Quoted: false}, nil
	case lexer.String:
		return parser.Include{Path: strings.Trim(first.Text, `"`), Quoted: true}, nil
	default:
		return parser.Include{Path: first.Text, Quoted: false}, nil
	}
}

// selectBranch evaluates branches left to right, returning the first whose
// condition is truthy (or the first Else reached). Returns nil if none is
// selected, per branch-exclusivity.
func selectBranch(block parser.ConditionalBlock, table MacroTable) (*parser.Branch, error) {
	for i := range block.Branches {
		branch := &block.Branches[i]
		selected, err := branchTaken(branch, table)
		if err != nil {
			return nil, err
		}
		if selected {
			return branch, nil
		}
	}
	return nil, nil
}

func branchTaken(branch *parser.Branch, table MacroTable) (bool, error) {
	switch branch.Kind {
	case parser.Else:
		return true, nil
	case parser.Ifdef:
		_, ok := table[branch.Identifier.Text]
		return ok, nil
	case parser.Ifndef:
		_, ok := table[branch.Identifier.Text]
		return !ok, nil
	case parser.If, parser.Elif:
		value, err := evaluate(branch.Condition, branch.Line, table)
		if err != nil {
			return false, err
		}
		return value.truthy(), nil
	default:
		return false, nil
	}
}
