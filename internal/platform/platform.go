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

// Package platform maps an (OS, Arch) pair to the predefined macro
// environment a C/C++ compiler would seed conditional compilation with,
// so the same translation unit can be analyzed once per target and yield
// a different dependency set for each.
package platform

import (
	"fmt"
	"strconv"

	"github.com/ccdeps/ccdeps/internal/cc/interp"
	"github.com/ccdeps/ccdeps/internal/cc/lexer"
	"github.com/ccdeps/ccdeps/internal/cc/parser"
)

// OS is a normalized operating system identifier, spelled the way Go's
// runtime.GOOS does.
type OS string

const (
	Linux   OS = "linux"
	Darwin  OS = "darwin"
	Windows OS = "windows"
	FreeBSD OS = "freebsd"
	Android OS = "android"
)

// Arch is a normalized architecture identifier, spelled the way Go's
// runtime.GOARCH does.
type Arch string

const (
	AMD64 Arch = "amd64"
	ARM64 Arch = "arm64"
	I386  Arch = "386"
	ARM   Arch = "arm"
)

// Environment is a predefined macro table: name to integer value, mirroring
// how a compiler's `-D` defaults are modeled.
type Environment map[string]int

// Platform is an (OS, Arch) pair identifying a compilation target.
type Platform struct {
	OS   OS
	Arch Arch
}

func (p Platform) String() string {
	return fmt.Sprintf("%s/%s", p.OS, p.Arch)
}

// knownEnvironments seeds every (OS, Arch) combination this analyzer
// recognizes with the predefined macros a real compiler would define for
// that target, reduced to the identifiers most dependency-affecting
// #ifdef/#if chains actually test.
var knownEnvironments = map[Platform]Environment{}

func define(names []string, platforms []Platform) {
	for _, p := range platforms {
		env, ok := knownEnvironments[p]
		if !ok {
			env = make(Environment, 8)
			knownEnvironments[p] = env
		}
		for _, name := range names {
			env[name] = 1
		}
	}
}

func matrix(oses []OS, arches []Arch) []Platform {
	var result []Platform
	for _, os := range oses {
		for _, arch := range arches {
			result = append(result, Platform{OS: os, Arch: arch})
		}
	}
	return result
}

func init() {
	allArches := []Arch{AMD64, ARM64, I386, ARM}

	define([]string{"__linux__", "__linux", "linux", "__gnu_linux__"}, matrix([]OS{Linux}, allArches))
	define([]string{"unix", "__unix", "__unix__"}, matrix([]OS{Linux, Darwin, FreeBSD, Android}, allArches))
	define([]string{"__ANDROID__"}, matrix([]OS{Android}, allArches))

	define([]string{"__APPLE__", "__MACH__"}, matrix([]OS{Darwin}, []Arch{AMD64, ARM64}))
	define([]string{"TARGET_OS_MAC", "TARGET_OS_OSX"}, matrix([]OS{Darwin}, []Arch{AMD64, ARM64}))

	define([]string{"_WIN32"}, matrix([]OS{Windows}, allArches))
	define([]string{"_WIN64"}, matrix([]OS{Windows}, []Arch{AMD64, ARM64}))

	define([]string{"__FreeBSD__"}, matrix([]OS{FreeBSD}, allArches))

	define([]string{"__x86_64__", "__amd64__", "__amd64"}, matrix([]OS{Linux, Darwin, Windows, FreeBSD, Android}, []Arch{AMD64}))
	define([]string{"__aarch64__", "__arm64", "__arm64__"}, matrix([]OS{Linux, Darwin, Windows, FreeBSD, Android}, []Arch{ARM64}))
	define([]string{"__i386__", "__i386"}, matrix([]OS{Linux, Windows, FreeBSD, Android}, []Arch{I386}))
	define([]string{"__arm__", "__thumb__"}, matrix([]OS{Linux, Windows, FreeBSD, Android}, []Arch{ARM}))
}

// Seed returns the predefined macro environment for p. Unknown platforms
// return an empty, non-nil Environment rather than an error: analyzing
// under "no predefined macros" is a legitimate, if unusual, request.
func Seed(p Platform) Environment {
	if env, ok := knownEnvironments[p]; ok {
		out := make(Environment, len(env))
		for name, value := range env {
			out[name] = value
		}
		return out
	}
	return make(Environment)
}

// MacroTable converts env into the interp.MacroTable form Run expects,
// synthesizing a single-token ObjectMacro body for each predefined value.
func (env Environment) MacroTable() interp.MacroTable {
	table := make(interp.MacroTable, len(env))
	for name, value := range env {
		table[name] = parser.ObjectMacro{
			Name: name,
			Body: []lexer.Token{{
				Kind: lexer.IntegerConst,
				Text: strconv.Itoa(value),
			}},
		}
	}
	return table
}

// Parse normalizes free-form os/arch strings (as a user might type on a
// command line) into a Platform, accepting a small set of common aliases.
func Parse(os, arch string) Platform {
	return Platform{OS: OS(dealias(os, osAlias)), Arch: Arch(dealias(arch, archAlias))}
}

var osAlias = map[string]string{"macos": "darwin", "osx": "darwin", "win32": "windows"}
var archAlias = map[string]string{"x86_64": "amd64", "aarch64": "arm64", "x86": "386"}

func dealias(value string, aliases map[string]string) string {
	if dealiased, ok := aliases[value]; ok {
		return dealiased
	}
	return value
}
