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

package buildconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefinitionBareNameDefaultsToOne(t *testing.T) {
	defn, err := ParseDefinition("DEBUG")
	require.NoError(t, err)
	require.Equal(t, Definition{Name: "DEBUG", IntValue: 1}, defn)
}

func TestParseDefinitionWithValue(t *testing.T) {
	defn, err := ParseDefinition("LEVEL=3")
	require.NoError(t, err)
	require.Equal(t, Definition{Name: "LEVEL", IntValue: 3}, defn)
}

func TestParseDefinitionToleratesDashDPrefix(t *testing.T) {
	defn, err := ParseDefinition("-DVERSION=0x10")
	require.NoError(t, err)
	require.Equal(t, Definition{Name: "VERSION", IntValue: 16}, defn)
}

func TestParseDefinitionRejectsInvalidName(t *testing.T) {
	_, err := ParseDefinition("1BAD=2")
	require.Error(t, err)
}

func TestParseDefinitionRejectsNonIntegerValue(t *testing.T) {
	_, err := ParseDefinition("NAME=abc")
	require.Error(t, err)
}

func TestParseDefinitionsAccumulatesAllErrors(t *testing.T) {
	env, err := ParseDefinitions([]string{"OK=1", "1BAD=2", "ALSO_OK", "2ALSOBAD=3"})
	require.Error(t, err)
	require.Equal(t, 1, env["OK"])
	require.Equal(t, 1, env["ALSO_OK"])
	require.Len(t, env, 2)
}

func TestParseIntLiteralOctalAndSuffixes(t *testing.T) {
	n, err := parseIntLiteral("017ULL")
	require.NoError(t, err)
	require.Equal(t, 15, n)
}
