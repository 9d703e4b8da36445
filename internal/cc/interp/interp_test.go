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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ccdeps/ccdeps/internal/cc/ccerr"
	"github.com/ccdeps/ccdeps/internal/cc/lexer"
	"github.com/ccdeps/ccdeps/internal/cc/parser"
)

func runSource(t *testing.T, source string, table MacroTable) (DependencySet, error) {
	t.Helper()
	lines, err := lexer.LexDirectiveLines(source)
	require.NoError(t, err)
	nodes, err := parser.Parse(lines)
	require.NoError(t, err)
	return Run(nodes, table)
}

func defined(names ...string) MacroTable {
	table := make(MacroTable)
	for _, name := range names {
		table[name] = parser.ObjectMacro{Name: name}
	}
	return table
}

func TestRunSimpleInclude(t *testing.T) {
	deps, err := runSource(t, "#include <stdio.h>\n", nil)
	require.NoError(t, err)
	require.Equal(t, DependencySet{{Path: "stdio.h", Quoted: false}: struct{}{}}, deps)
}

func TestRunQuotedVsAngle(t *testing.T) {
	deps, err := runSource(t, "#include \"a.h\"\n#include <b.h>\n", nil)
	require.NoError(t, err)
	require.True(t, deps.Contains(parser.Include{Path: "a.h", Quoted: true}))
	require.True(t, deps.Contains(parser.Include{Path: "b.h", Quoted: false}))
	require.Len(t, deps, 2)
}

func TestRunObjectMacroAndDeferredInclude(t *testing.T) {
	deps, err := runSource(t, "#define HDR <x.h>\n#include HDR\n", nil)
	require.NoError(t, err)
	require.Equal(t, DependencySet{{Path: "x.h", Quoted: false}: struct{}{}}, deps)
}

func TestRunTakenIfElse(t *testing.T) {
	deps, err := runSource(t, "#define V 2\n#if V == 2\n#include <a.h>\n#else\n#include <b.h>\n#endif\n", nil)
	require.NoError(t, err)
	require.Equal(t, DependencySet{{Path: "a.h", Quoted: false}: struct{}{}}, deps)
}

func TestRunNestedConditionalsWithDefined(t *testing.T) {
	source := "#ifdef FOO\n#if defined(BAR) && !defined(BAZ)\n#include <y.h>\n#endif\n#endif\n"
	deps, err := runSource(t, source, defined("FOO", "BAR"))
	require.NoError(t, err)
	require.Equal(t, DependencySet{{Path: "y.h", Quoted: false}: struct{}{}}, deps)
}

func TestRunFunctionMacroInExpressionFails(t *testing.T) {
	_, err := runSource(t, "#define F(x) x\n#if F\n#endif\n", nil)
	require.Error(t, err)
	var target *ccerr.FunctionMacroInExpression
	require.ErrorAs(t, err, &target)
	require.Equal(t, 2, target.Line)
	require.Equal(t, "F", target.Name)
}

func TestRunDependencyDeterminismAcrossInvocations(t *testing.T) {
	source := "#define V 2\n#if V == 2\n#include <a.h>\n#endif\n"
	first, err := runSource(t, source, nil)
	require.NoError(t, err)
	second, err := runSource(t, source, nil)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRunBranchExclusivity(t *testing.T) {
	source := "#if 1\n#define TAKEN 1\n#else\n#define NOT_TAKEN 1\n#endif\n#if defined(NOT_TAKEN)\n#include <unreachable.h>\n#endif\n#if defined(TAKEN)\n#include <reachable.h>\n#endif\n"
	deps, err := runSource(t, source, nil)
	require.NoError(t, err)
	require.Equal(t, DependencySet{{Path: "reachable.h", Quoted: false}: struct{}{}}, deps)
}

func TestRunMacroVisibilityAfterTakenBranch(t *testing.T) {
	source := "#ifdef ENABLE\n#define EXTRA <extra.h>\n#endif\n#include EXTRA\n"
	deps, err := runSource(t, source, defined("ENABLE"))
	require.NoError(t, err)
	require.Equal(t, DependencySet{{Path: "extra.h", Quoted: false}: struct{}{}}, deps)
}

func TestRunUndefinedDeferredIncludeFails(t *testing.T) {
	_, err := runSource(t, "#include MISSING\n", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "undefined macro")
}

func TestRunFunctionMacroAsDeferredIncludeFails(t *testing.T) {
	_, err := runSource(t, "#define HDR(x) x\n#include HDR\n", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot be used as an #include argument")
}
