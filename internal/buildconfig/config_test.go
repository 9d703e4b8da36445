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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ccdeps/ccdeps/internal/cc/parser"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("// header\n"), 0o644))
}

func TestResolveQuotedSearchesOwnDirFirst(t *testing.T) {
	wd := t.TempDir()
	includeDir := t.TempDir()
	writeFile(t, wd, "local.h")
	writeFile(t, includeDir, "local.h")

	cfg := Config{IncludeDirs: []string{includeDir}, QuoteSearchFirst: true}
	resolved, ok := cfg.Resolve(parser.Include{Path: "local.h", Quoted: true}, wd)
	require.True(t, ok)
	require.Equal(t, filepath.Join(wd, "local.h"), resolved)
}

func TestResolveFallsThroughToIncludeDirs(t *testing.T) {
	wd := t.TempDir()
	includeDir := t.TempDir()
	writeFile(t, includeDir, "shared.h")

	cfg := Config{IncludeDirs: []string{includeDir}, QuoteSearchFirst: true}
	resolved, ok := cfg.Resolve(parser.Include{Path: "shared.h", Quoted: true}, wd)
	require.True(t, ok)
	require.Equal(t, filepath.Join(includeDir, "shared.h"), resolved)
}

func TestResolveAngleIncludeSkipsOwnDir(t *testing.T) {
	wd := t.TempDir()
	includeDir := t.TempDir()
	writeFile(t, wd, "sys.h")
	writeFile(t, includeDir, "sys.h")

	cfg := Config{IncludeDirs: []string{includeDir}, QuoteSearchFirst: true}
	resolved, ok := cfg.Resolve(parser.Include{Path: "sys.h", Quoted: false}, wd)
	require.True(t, ok)
	require.Equal(t, filepath.Join(includeDir, "sys.h"), resolved)
}

func TestResolveUnresolvedReturnsFalse(t *testing.T) {
	cfg := Config{IncludeDirs: []string{t.TempDir()}}
	_, ok := cfg.Resolve(parser.Include{Path: "missing.h", Quoted: false}, t.TempDir())
	require.False(t, ok)
}

func TestResolvePreservesIncludeDirOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, second, "dup.h")
	writeFile(t, first, "dup.h")

	cfg := Config{IncludeDirs: []string{first, second}}
	resolved, ok := cfg.Resolve(parser.Include{Path: "dup.h", Quoted: false}, t.TempDir())
	require.True(t, ok)
	require.Equal(t, filepath.Join(first, "dup.h"), resolved)
}
