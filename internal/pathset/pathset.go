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

// Package pathset expands a mix of literal paths, glob patterns, and
// directories into a concrete, duplicate-free, ordered list of files.
package pathset

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ccdeps/ccdeps/internal/collections"
)

// Spec is one input entry: either a literal path, a glob pattern (may
// contain doublestar's "**"), or a directory to enumerate non-recursively.
type Spec struct {
	Value string
	// Dir marks Value as a directory to list rather than a path or glob.
	Dir bool
}

// Result is the outcome of expanding a slice of Specs: the resolved,
// deduplicated, lexicographically sorted file list, plus any input specs
// that matched nothing (a driver-level warning, never a hard error).
type Result struct {
	Files     []string
	Unmatched []Spec
}

// Expand resolves every spec against specs, in order, accumulating into a
// single deduplicated Result.
func Expand(specs []Spec) (Result, error) {
	seen := make(map[string]struct{})
	var result Result

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		result.Files = append(result.Files, path)
	}

	for _, spec := range specs {
		matched, err := expandOne(spec)
		if err != nil {
			return Result{}, err
		}
		if len(matched) == 0 {
			result.Unmatched = append(result.Unmatched, spec)
			continue
		}
		for _, m := range matched {
			add(m)
		}
	}

	sort.Strings(result.Files)
	return result, nil
}

func expandOne(spec Spec) ([]string, error) {
	if spec.Dir {
		return listDir(spec.Value)
	}
	if !doublestar.ValidatePattern(spec.Value) {
		if info, err := os.Stat(spec.Value); err == nil && !info.IsDir() {
			return []string{spec.Value}, nil
		}
		return nil, nil
	}
	return doublestar.FilepathGlob(spec.Value)
}

// listDir returns every non-directory entry directly inside dir, not
// descending into subdirectories.
func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	regularFiles := collections.FilterSlice(entries, func(entry os.DirEntry) bool {
		return !entry.IsDir()
	})
	return collections.MapSlice(regularFiles, func(entry os.DirEntry) string {
		return filepath.Join(dir, entry.Name())
	}), nil
}
