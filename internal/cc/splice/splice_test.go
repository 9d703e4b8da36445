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

package splice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpliceNoContinuation(t *testing.T) {
	lines := Splice("a\nb\nc\n")
	require.Len(t, lines, 3)
	require.Equal(t, "a", lines[0].Text())
	require.Equal(t, "b", lines[1].Text())
	require.Equal(t, "c", lines[2].Text())
	for i, l := range lines {
		require.Len(t, l.Segments, 1)
		require.Equal(t, i+1, l.Segments[0].PhysicalLine)
	}
}

func TestSpliceJoinsBackslashContinuation(t *testing.T) {
	lines := Splice("#define FOO \\\n  1\n#endif\n")
	require.Len(t, lines, 2)
	require.Equal(t, "#define FOO   1", lines[0].Text())
	require.Len(t, lines[0].Segments, 2)
	require.Equal(t, 1, lines[0].Segments[0].PhysicalLine)
	require.Equal(t, 2, lines[0].Segments[1].PhysicalLine)
	require.Equal(t, "#endif", lines[1].Text())
}

func TestSpliceThreePhysicalLinesOneLogical(t *testing.T) {
	lines := Splice("a\\\nb\\\nc\n")
	require.Len(t, lines, 1)
	require.Equal(t, "abc", lines[0].Text())
	require.Len(t, lines[0].Segments, 3)
	require.Equal(t, 3, lines[0].LocateOffset(2))
	require.Equal(t, 1, lines[0].LocateOffset(0))
}

func TestSpliceTrailingUnterminatedContinuation(t *testing.T) {
	lines := Splice("a\\")
	require.Len(t, lines, 1)
	require.Equal(t, "a\\", lines[0].Text())
}

func TestSpliceEmptyInput(t *testing.T) {
	lines := Splice("")
	require.Empty(t, lines)
}

func TestSpliceInvariantSumOfSegments(t *testing.T) {
	src := "a\\\nb\nc\\\nd\\\ne\nf\n"
	physicalLineCount := 6
	lines := Splice(src)
	total := 0
	for _, l := range lines {
		total += len(l.Segments)
	}
	require.Equal(t, physicalLineCount, total)
}
