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

// Package buildconfig models the small slice of a compiler invocation this
// analyzer cares about: -I search directories and -D macro definitions, plus
// resolving a dependency into a candidate filesystem path.
package buildconfig

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ccdeps/ccdeps/internal/platform"
)

// macroIdentifierRegex: first character '_' or a letter, the rest letters,
// digits, or '_'.
var macroIdentifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
var parsableIntegerRegex = regexp.MustCompile(`^(?:0[xX][0-9a-fA-F]+|0[0-7]*|[1-9][0-9]*)(?:[uU](?:ll?|LL?)?|ll?[uU]?|LL?[uU]?)?$`)

// Definition is a single parsed -D flag.
type Definition struct {
	Name     string
	IntValue int
}

// ParseDefinition parses one -D flag ("NAME", "NAME=VALUE", or "-DNAME=VALUE"),
// defaulting a bare name to 1.
func ParseDefinition(raw string) (Definition, error) {
	raw = strings.TrimPrefix(raw, "-D")
	name, stringValue := raw, ""
	if eqIdx := strings.Index(raw, "="); eqIdx >= 0 {
		name, stringValue = raw[:eqIdx], raw[eqIdx+1:]
	}

	if !macroIdentifierRegex.MatchString(name) {
		return Definition{}, fmt.Errorf("invalid macro name %q", name)
	}

	if stringValue == "" {
		return Definition{Name: name, IntValue: 1}, nil
	}
	if !parsableIntegerRegex.MatchString(stringValue) {
		return Definition{}, fmt.Errorf("macro %s=%s: only integer literal values are allowed", name, stringValue)
	}
	n, err := parseIntLiteral(stringValue)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to parse macro value %s: %w", raw, err)
	}
	return Definition{Name: name, IntValue: n}, nil
}

// ParseDefinitions parses every -D flag in definitions into a
// platform.Environment, accumulating every parse failure instead of stopping
// at the first.
func ParseDefinitions(definitions []string) (platform.Environment, error) {
	out := make(platform.Environment, len(definitions))
	var parseErrors []error
	for _, d := range definitions {
		defn, err := ParseDefinition(d)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("failed to parse %q: %w", d, err))
			continue
		}
		out[defn.Name] = defn.IntValue
	}
	return out, errors.Join(parseErrors...)
}

// parseIntLiteral parses a decimal, octal, or hex integer literal, ignoring
// the u/U/l/L integer-suffix letters.
func parseIntLiteral(tok string) (int, error) {
	tok = strings.TrimRightFunc(tok, func(r rune) bool {
		return r == 'u' || r == 'U' || r == 'l' || r == 'L'
	})
	v, err := strconv.ParseInt(tok, 0, 64)
	return int(v), err
}
