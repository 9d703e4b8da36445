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

	"github.com/ccdeps/ccdeps/internal/cc/parser"
	"github.com/ccdeps/ccdeps/internal/platform"
)

// Config is a minimal stand-in for a compiler invocation: the -I search
// path, in order, and the -D macro definitions a translation unit is
// compiled with.
type Config struct {
	IncludeDirs []string
	Defines     platform.Environment
	// QuoteSearchFirst: a quoted #include searches the translation unit's
	// own directory before falling through to IncludeDirs. Angle-bracket
	// includes always skip straight to IncludeDirs.
	QuoteSearchFirst bool
}

// Resolve maps dep to the first filesystem path, among its candidate search
// locations, that names an existing regular file. wd is the directory the
// translation unit containing dep was read from.
//
// This models the single most common subset of real search-path semantics
// (quote-then-system, in declared -I order) rather than full compiler
// include resolution, which is deliberately out of scope.
func (c Config) Resolve(dep parser.Include, wd string) (string, bool) {
	var candidates []string
	if dep.Quoted && c.QuoteSearchFirst {
		candidates = append(candidates, filepath.Join(wd, dep.Path))
	}
	for _, dir := range c.IncludeDirs {
		candidates = append(candidates, filepath.Join(dir, dep.Path))
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
