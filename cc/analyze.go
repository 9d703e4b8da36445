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

// Package cc is the public facade over the preprocessing pipeline: splice,
// lex, parse, and interpret a translation unit, producing the set of
// headers it depends on under a given macro environment.
package cc

import (
	"os"

	"github.com/ccdeps/ccdeps/internal/cc/interp"
	"github.com/ccdeps/ccdeps/internal/cc/lexer"
	"github.com/ccdeps/ccdeps/internal/cc/parser"
)

// DependencySet is the set of headers a translation unit reaches under a
// fixed macro table.
type DependencySet = interp.DependencySet

// MacroTable is the mutable macro environment a translation unit is
// analyzed against; a #define encountered along a taken branch is added to
// it, so callers reusing a table across files see prior files' definitions.
type MacroTable = interp.MacroTable

// AnalyzeSource runs the full pipeline over an in-memory buffer. table may
// be nil; a pre-seeded table (see internal/platform, internal/buildconfig)
// models compiler-default and -D macros.
func AnalyzeSource(source string, table MacroTable) (DependencySet, error) {
	lines, err := lexer.LexDirectiveLines(source)
	if err != nil {
		return nil, err
	}
	nodes, err := parser.Parse(lines)
	if err != nil {
		return nil, err
	}
	return interp.Run(nodes, table)
}

// AnalyzeFile opens filename and runs AnalyzeSource over its contents.
func AnalyzeFile(filename string, table MacroTable) (DependencySet, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return AnalyzeSource(string(content), table)
}
