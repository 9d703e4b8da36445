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

package pathset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	return p
}

func TestExpandLiteralPath(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.c")

	result, err := Expand([]Spec{{Value: p}})
	require.NoError(t, err)
	require.Equal(t, []string{p}, result.Files)
	require.Empty(t, result.Unmatched)
}

func TestExpandDirectoryIsNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.c")
	writeFile(t, dir, "nested/skip.c")

	result, err := Expand([]Spec{{Value: dir, Dir: true}})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "top.c")}, result.Files)
}

func TestExpandGlobWithDoubleStar(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "src/a.c")
	b := writeFile(t, dir, "src/nested/b.c")

	result, err := Expand([]Spec{{Value: filepath.Join(dir, "src", "**", "*.c")}})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{a, b}, result.Files)
}

func TestExpandDeduplicatesAcrossSpecs(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.c")

	result, err := Expand([]Spec{{Value: p}, {Value: p}})
	require.NoError(t, err)
	require.Equal(t, []string{p}, result.Files)
}

func TestExpandReportsUnmatchedSpecs(t *testing.T) {
	result, err := Expand([]Spec{{Value: "/does/not/exist.c"}})
	require.NoError(t, err)
	require.Empty(t, result.Files)
	require.Equal(t, []Spec{{Value: "/does/not/exist.c"}}, result.Unmatched)
}

func TestExpandSortsResultsLexicographically(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.c")
	a := writeFile(t, dir, "a.c")

	result, err := Expand([]Spec{{Value: b}, {Value: a}})
	require.NoError(t, err)
	require.Equal(t, []string{a, b}, result.Files)
}
