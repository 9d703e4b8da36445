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
	"unicode/utf8"
)

// StringCursor is a position in a logical line's text. Line and Column are
// 1-based, which is natural for diagnostics.
type StringCursor struct {
	Line, Column int
}

// CursorInit is the starting position of a freshly spliced logical line.
var CursorInit = StringCursor{Line: 1, Column: 1}

// AdvancedBy returns a new cursor advanced past lookAhead, assuming the
// receiver points at the beginning of lookAhead. Newlines in lookAhead
// increment Line and reset Column; other runes only increment Column.
func (c StringCursor) AdvancedBy(lookAhead string) StringCursor {
	newlines := strings.Count(lookAhead, "\n")
	tailBegin := 1 + strings.LastIndex(lookAhead, "\n")
	tailLength := utf8.RuneCountInString(lookAhead[tailBegin:])

	if newlines == 0 {
		c.Column += tailLength
		return c
	}
	c.Line += newlines
	c.Column = 1 + tailLength
	return c
}
