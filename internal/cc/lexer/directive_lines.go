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

package lexer

import (
	"strings"

	"github.com/ccdeps/ccdeps/internal/cc/splice"
)

// TokenLine is every token lexed from one directive logical line, plus the
// physical line it opened on (used to anchor diagnostics such as an
// unterminated conditional's opening line).
type TokenLine struct {
	Tokens []Token
	Line   int
}

// IsDirectiveLine reports whether line's first non-whitespace character is
// '#'. Dependency analysis only cares about directive lines; everything
// else is ordinary C/C++ text the core never tokenizes.
func IsDirectiveLine(line splice.LogicalLine) bool {
	text := line.Text()
	trimmed := strings.TrimLeft(text, " \t")
	return strings.HasPrefix(trimmed, "#")
}

// LexDirectiveLines splices source and lexes every directive line into a
// TokenLine, skipping non-directive lines entirely.
func LexDirectiveLines(source string) ([]TokenLine, error) {
	logicalLines := splice.Splice(source)
	var result []TokenLine
	for _, line := range logicalLines {
		if !IsDirectiveLine(line) {
			continue
		}
		tokens, err := New(line).AllTokens()
		if err != nil {
			return nil, err
		}
		openingLine, _ := line.Locate(0)
		result = append(result, TokenLine{Tokens: tokens, Line: openingLine})
	}
	return result, nil
}
