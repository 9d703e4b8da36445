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

import "regexp"

// matchState is the subset of lexer context a rule needs to decide whether
// it applies at the current position. Rules are tried in priority order;
// the first one whose pattern matches at the cursor wins.
type matchState struct {
	atLineStart    bool
	expectFilename bool
}

// rule is one entry in the lexer's priority-ordered matching table.
type rule struct {
	name    string
	applies func(matchState) bool
	match   func(remaining string) (text string, kind Kind, ok bool)
}

var (
	directivePattern = regexp.MustCompile(`^#[ \t]*[A-Za-z_][A-Za-z0-9_]*`)
	filenamePattern  = regexp.MustCompile(`^<[^>\n]*>`)
	definedPattern   = regexp.MustCompile(`^defined\b`)
	charConstPattern = regexp.MustCompile(`^'(\\.|[^'\\])*'`)
	stringPattern    = regexp.MustCompile(`^"(\\.|[^"\\])*"`)
	integerPattern   = regexp.MustCompile(`^(0[xX][0-9a-fA-F]+|[0-9]+)[uUlL]*`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
)

// multiCharOperators are tried longest-first so "##" is not mistaken for two
// Stringification tokens and "<=" is not mistaken for LessThan then '='.
var multiCharOperators = []struct {
	text string
	kind Kind
}{
	{"...", Ellipsis},
	{"##", TokenConcatenation},
	{"<=", LessEqual},
	{">=", GreaterEqual},
	{"==", Equal},
	{"!=", NotEqual},
	{"&&", And},
	{"||", Or},
}

var singleCharTokens = map[byte]Kind{
	'!': Not,
	'<': LessThan,
	'>': GreaterThan,
	'(': LParen,
	')': RParen,
	',': Comma,
	'#': Stringification,
}

// rules is the lexer's priority-ordered matching table. Earlier entries
// take precedence: a directive name is recognized before a bare identifier
// could claim the same text, "defined" is recognized as a keyword before
// the identifier rule would claim it, and multi-character operators are
// tried before the single-character punctuation they begin with.
var rules = []rule{
	{
		name:    "directive",
		applies: func(s matchState) bool { return s.atLineStart },
		match: func(remaining string) (string, Kind, bool) {
			m := directivePattern.FindString(remaining)
			if m == "" {
				return "", 0, false
			}
			return m, Directive, true
		},
	},
	{
		name:    "filename",
		applies: func(s matchState) bool { return s.expectFilename },
		match: func(remaining string) (string, Kind, bool) {
			m := filenamePattern.FindString(remaining)
			if m == "" {
				return "", 0, false
			}
			return m, Filename, true
		},
	},
	{
		name:    "defined",
		applies: func(matchState) bool { return true },
		match: func(remaining string) (string, Kind, bool) {
			m := definedPattern.FindString(remaining)
			if m == "" {
				return "", 0, false
			}
			return m, Defined, true
		},
	},
	{
		name:    "char-const",
		applies: func(matchState) bool { return true },
		match: func(remaining string) (string, Kind, bool) {
			m := charConstPattern.FindString(remaining)
			if m == "" {
				return "", 0, false
			}
			return m, CharConst, true
		},
	},
	{
		name:    "string",
		applies: func(matchState) bool { return true },
		match: func(remaining string) (string, Kind, bool) {
			m := stringPattern.FindString(remaining)
			if m == "" {
				return "", 0, false
			}
			return m, String, true
		},
	},
	{
		name:    "integer-const",
		applies: func(matchState) bool { return true },
		match: func(remaining string) (string, Kind, bool) {
			m := integerPattern.FindString(remaining)
			if m == "" {
				return "", 0, false
			}
			return m, IntegerConst, true
		},
	},
	{
		name:    "identifier",
		applies: func(matchState) bool { return true },
		match: func(remaining string) (string, Kind, bool) {
			m := identifierPattern.FindString(remaining)
			if m == "" {
				return "", 0, false
			}
			return m, Identifier, true
		},
	},
	{
		name:    "operators-and-punctuation",
		applies: func(matchState) bool { return true },
		match: func(remaining string) (string, Kind, bool) {
			for _, op := range multiCharOperators {
				if len(remaining) >= len(op.text) && remaining[:len(op.text)] == op.text {
					return op.text, op.kind, true
				}
			}
			if len(remaining) == 0 {
				return "", 0, false
			}
			if kind, ok := singleCharTokens[remaining[0]]; ok {
				return remaining[0:1], kind, true
			}
			return "", 0, false
		},
	},
}
