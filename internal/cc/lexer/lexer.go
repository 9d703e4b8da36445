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

// Package lexer converts one already-spliced logical line into an ordered
// sequence of Tokens, reporting each token's originating physical line and
// column via the splice.LogicalLine it was built from.
package lexer

import (
	"strings"
	"unicode"

	"github.com/ccdeps/ccdeps/internal/cc/ccerr"
	"github.com/ccdeps/ccdeps/internal/cc/splice"
)

// Lexer walks a single splice.LogicalLine, producing Tokens on demand.
type Lexer struct {
	line   splice.LogicalLine
	text   string
	cursor StringCursor
	// byteOffset is the current position in text, in bytes. cursor.Column
	// tracks the same position in runes (for line/column bookkeeping in the
	// teacher's AdvancedBy style), but text must be indexed by byte offset
	// since a logical line containing multibyte UTF-8 runes would otherwise
	// slice mid-rune.
	byteOffset int

	sawDirective   bool
	directiveText  string
	expectFilename bool
	bodyTokenCount int
}

// New returns a Lexer positioned at the start of line.
func New(line splice.LogicalLine) *Lexer {
	return &Lexer{
		line:   line,
		text:   line.Text(),
		cursor: CursorInit,
	}
}

// offset returns the current byte offset into the logical line's text.
func (lx *Lexer) offset() int {
	return lx.byteOffset
}

func (lx *Lexer) remaining() string {
	return lx.text[lx.offset():]
}

// advance moves the lexer past consumed, which must be the text starting at
// the current offset. It keeps cursor (rune-based line/column bookkeeping)
// and byteOffset (byte-based text indexing) in lockstep.
func (lx *Lexer) advance(consumed string) {
	lx.cursor = lx.cursor.AdvancedBy(consumed)
	lx.byteOffset += len(consumed)
}

func (lx *Lexer) skipWhitespace() {
	for {
		rest := lx.remaining()
		if rest == "" {
			return
		}
		r := rune(rest[0])
		if r != ' ' && r != '\t' {
			return
		}
		lx.advance(rest[:1])
	}
}

// AllTokens drains the lexer, returning every token on the line.
func (lx *Lexer) AllTokens() ([]Token, error) {
	var tokens []Token
	for {
		tok, ok, err := lx.NextToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token on the line, or ok=false once the line is
// exhausted (after only whitespace remains).
func (lx *Lexer) NextToken() (Token, bool, error) {
	lx.skipWhitespace()
	rest := lx.remaining()
	if rest == "" {
		return Token{}, false, nil
	}

	state := matchState{
		atLineStart:    !lx.sawDirective && lx.offset() == leadingOffset(lx.text),
		expectFilename: lx.expectFilename,
	}

	for _, r := range rules {
		if !r.applies(state) {
			continue
		}
		text, kind, ok := r.match(rest)
		if !ok || text == "" {
			continue
		}
		startOffset := lx.offset()
		physicalLine, column := lx.line.Locate(startOffset)
		lx.advance(text)
		lx.afterToken(kind, text)
		return Token{
			Kind: kind,
			Pos:  Position{Line: physicalLine, Column: column},
			Text: text,
		}, true, nil
	}

	physicalLine, column := lx.line.Locate(lx.offset())
	return Token{}, false, &ccerr.UnknownToken{
		Line:   physicalLine,
		Column: column,
		Lexeme: firstRuneOrByte(rest),
	}
}

// afterToken updates lexer context that later rules depend on: the
// directive name (so the parser/lexer know which directive is active) and
// whether the very next token should be matched as a Filename rather than a
// LessThan/Identifier/String sequence.
func (lx *Lexer) afterToken(kind Kind, text string) {
	if kind == Directive {
		lx.sawDirective = true
		lx.directiveText = strings.TrimSpace(strings.TrimPrefix(text, "#"))
		lx.expectFilename = lx.directiveText == "include" || lx.directiveText == "include_next"
		lx.bodyTokenCount = 0
		return
	}
	lx.bodyTokenCount++
	// An object macro's value is very often a bracketed header, the
	// deferred-include pattern ("#define HDR <x.h>"); give the token right
	// after the macro name one chance to match as a Filename. Every other
	// position on the line falls back to ordinary LessThan/GreaterThan
	// splitting, so arithmetic comparisons inside a function-macro body
	// are unaffected.
	lx.expectFilename = lx.directiveText == "define" && lx.bodyTokenCount == 1
}

// firstRuneOrByte returns the first rune of s for use in an error message,
// falling back to the first byte if s begins with invalid UTF-8.
func firstRuneOrByte(s string) string {
	for _, r := range s {
		return string(r)
	}
	if len(s) > 0 {
		return string(s[0])
	}
	return ""
}

// leadingOffset returns the offset of the first non-whitespace byte in s,
// which is the only position "atLineStart" can be true.
func leadingOffset(s string) int {
	for i := 0; i < len(s); i++ {
		if !unicode.IsSpace(rune(s[i])) {
			return i
		}
	}
	return len(s)
}
