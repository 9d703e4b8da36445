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

// Command ccdeps analyzes one or more C/C++ translation units and prints
// the headers each one depends on, under a chosen platform and set of -D
// macros, resolved against a set of -I search directories.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/ccdeps/ccdeps/cc"
	"github.com/ccdeps/ccdeps/internal/buildconfig"
	"github.com/ccdeps/ccdeps/internal/cc/parser"
	"github.com/ccdeps/ccdeps/internal/collections"
	"github.com/ccdeps/ccdeps/internal/pathset"
	"github.com/ccdeps/ccdeps/internal/platform"
)

func main() {
	var includeDirs stringList
	var defines stringList
	var dirs stringList

	targetOS := flag.String("os", runtime.GOOS, "Target operating system (linux, darwin, windows, freebsd, android)")
	targetArch := flag.String("arch", runtime.GOARCH, "Target architecture (amd64, arm64, 386, arm)")
	quoteSearchFirst := flag.Bool("quote-search-first", true, `Search a quoted #include's own directory before -I search dirs`)
	jobs := flag.Int("jobs", runtime.GOMAXPROCS(0), "Number of translation units analyzed concurrently")
	flag.Var(&includeDirs, "I", "Repeated -I search directory")
	flag.Var(&defines, "D", "Repeated -D NAME[=VALUE] macro definition")
	flag.Var(&dirs, "dir", "Repeated directory to enumerate non-recursively for translation units")
	flag.Parse()

	if flag.NArg() == 0 && len(dirs.values) == 0 {
		flag.Usage()
		log.Fatalf("ccdeps requires at least one translation unit path, glob, or -dir")
	}

	specs := make([]pathset.Spec, 0, flag.NArg()+len(dirs.values))
	for _, arg := range flag.Args() {
		specs = append(specs, pathset.Spec{Value: arg})
	}
	for _, d := range dirs.values {
		specs = append(specs, pathset.Spec{Value: d, Dir: true})
	}

	resolved, err := pathset.Expand(specs)
	if err != nil {
		log.Fatalf("failed to expand translation unit paths: %v", err)
	}
	for _, unmatched := range resolved.Unmatched {
		log.Printf("ccdeps: no files matched %q", unmatched.Value)
	}

	env, err := buildconfig.ParseDefinitions(defines.values)
	if err != nil {
		log.Fatalf("failed to parse -D definitions: %v", err)
	}
	seed := platform.Seed(platform.Parse(*targetOS, *targetArch))
	for name, value := range env {
		seed[name] = value
	}

	cfg := buildconfig.Config{
		IncludeDirs:      includeDirs.values,
		Defines:          seed,
		QuoteSearchFirst: *quoteSearchFirst,
	}

	results := analyzeAll(resolved.Files, cfg, *jobs)
	exitCode := 0
	for _, r := range results {
		if r.err != nil {
			log.Printf("ccdeps: %s: %v", r.path, r.err)
			exitCode = 1
			continue
		}
		printDependencies(r.path, r.deps, cfg)
	}
	os.Exit(exitCode)
}

type fileResult struct {
	path string
	deps cc.DependencySet
	err  error
}

// analyzeAll runs the core pipeline over every file, bounded to jobs
// concurrent translation units. Each unit gets its own MacroTable clone, so
// no state is shared across goroutines.
func analyzeAll(files []string, cfg buildconfig.Config, jobs int) []fileResult {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]fileResult, len(files))
	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup

	for i, path := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			deps, err := cc.AnalyzeFile(path, cfg.Defines.MacroTable())
			results[i] = fileResult{path: path, deps: deps, err: err}
		}(i, path)
	}
	wg.Wait()
	return results
}

func printDependencies(path string, deps cc.DependencySet, cfg buildconfig.Config) {
	fmt.Printf("%s:\n", path)
	wd := dirOf(path)

	lines := collections.MapSlice(deps.Values(), func(dep parser.Include) string {
		resolvedPath, ok := cfg.Resolve(dep, wd)
		open, shut := "<", ">"
		if dep.Quoted {
			open, shut = `"`, `"`
		}
		if !ok {
			return fmt.Sprintf("  %s%s%s -> (unresolved)", open, dep.Path, shut)
		}
		return fmt.Sprintf("  %s%s%s -> %s", open, dep.Path, shut, resolvedPath)
	})
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Println(line)
	}
}

func dirOf(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[:idx]
	}
	return "."
}

// stringList accumulates repeated flag occurrences into an ordered slice.
type stringList struct {
	values []string
}

func (s *stringList) String() string {
	return strings.Join(s.values, ",")
}

func (s *stringList) Set(value string) error {
	s.values = append(s.values, value)
	return nil
}
