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

package cc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ccdeps/ccdeps/internal/cc/parser"
	"github.com/ccdeps/ccdeps/internal/platform"
)

func TestAnalyzeSourceBasicIncludes(t *testing.T) {
	deps, err := AnalyzeSource("#include <a.h>\n#include \"b.h\"\n", nil)
	require.NoError(t, err)
	require.True(t, deps.Contains(parser.Include{Path: "a.h", Quoted: false}))
	require.True(t, deps.Contains(parser.Include{Path: "b.h", Quoted: true}))
}

func TestAnalyzeSourceWithPlatformSeed(t *testing.T) {
	source := "#ifdef __linux__\n#include <linux_only.h>\n#else\n#include <other.h>\n#endif\n"

	linuxDeps, err := AnalyzeSource(source, platform.Seed(platform.Platform{OS: platform.Linux, Arch: platform.AMD64}).MacroTable())
	require.NoError(t, err)
	require.True(t, linuxDeps.Contains(parser.Include{Path: "linux_only.h"}))

	winDeps, err := AnalyzeSource(source, platform.Seed(platform.Platform{OS: platform.Windows, Arch: platform.AMD64}).MacroTable())
	require.NoError(t, err)
	require.True(t, winDeps.Contains(parser.Include{Path: "other.h"}))
}

func TestAnalyzeFileReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unit.c")
	require.NoError(t, os.WriteFile(path, []byte("#include <stdio.h>\n"), 0o644))

	deps, err := AnalyzeFile(path, nil)
	require.NoError(t, err)
	require.True(t, deps.Contains(parser.Include{Path: "stdio.h"}))
}

func TestAnalyzeFileMissingReturnsError(t *testing.T) {
	_, err := AnalyzeFile("/does/not/exist.c", nil)
	require.Error(t, err)
}
