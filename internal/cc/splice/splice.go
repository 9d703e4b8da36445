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

// Package splice joins physical source lines that end in a trailing
// backslash into logical lines, preserving a map from logical offsets back
// to the physical line they came from so later stages can report accurate
// error locations.
package splice

import "strings"

// Segment is one physical line's contribution to a LogicalLine. PhysicalLine
// is 1-based.
type Segment struct {
	PhysicalLine int
	Text         string
}

// LogicalLine is an ordered run of physical-line segments joined by
// backslash-newline continuation. Every segment but the last originates
// from a physical line that ended in a backslash; that backslash is
// stripped from Text.
type LogicalLine struct {
	Segments []Segment
}

// Len returns the total length of the logical line's text, the sum of each
// segment's text length.
func (l LogicalLine) Len() int {
	n := 0
	for _, seg := range l.Segments {
		n += len(seg.Text)
	}
	return n
}

// Text concatenates all segments into the full logical line text.
func (l LogicalLine) Text() string {
	var b strings.Builder
	for _, seg := range l.Segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// LocateOffset maps a 0-based offset into Text() back to the physical line
// it came from. An offset at or past the end maps to the last segment's
// physical line; a line with no segments yields 0.
func (l LogicalLine) LocateOffset(offset int) int {
	for _, seg := range l.Segments {
		if offset < len(seg.Text) {
			return seg.PhysicalLine
		}
		offset -= len(seg.Text)
	}
	if len(l.Segments) > 0 {
		return l.Segments[len(l.Segments)-1].PhysicalLine
	}
	return 0
}

// Locate maps a 0-based offset into Text() back to the physical line it
// came from and a 1-based column within that physical line's segment.
// An offset at or past the end maps to the last segment, one column past
// its text; a line with no segments yields (0, 0).
func (l LogicalLine) Locate(offset int) (physicalLine, column int) {
	for _, seg := range l.Segments {
		if offset < len(seg.Text) {
			return seg.PhysicalLine, offset + 1
		}
		offset -= len(seg.Text)
	}
	if n := len(l.Segments); n > 0 {
		last := l.Segments[n-1]
		return last.PhysicalLine, len(last.Text) + 1
	}
	return 0, 0
}

// Equal reports structural, segment-wise equality.
func (l LogicalLine) Equal(other LogicalLine) bool {
	if len(l.Segments) != len(other.Segments) {
		return false
	}
	for i, seg := range l.Segments {
		if seg != other.Segments[i] {
			return false
		}
	}
	return true
}

// Splice splits source into physical lines and joins any that end in a
// single trailing backslash with the line that follows. The sum of
// len(segments) across all returned LogicalLines equals the number of
// physical lines in source. A trailing unterminated continuation (a
// backslash with no following physical line) emits the in-progress logical
// line as-is rather than failing.
func Splice(source string) []LogicalLine {
	physicalLines := splitPhysicalLines(source)

	var result []LogicalLine
	var current LogicalLine
	for i, line := range physicalLines {
		physicalIndex := i + 1
		hasNext := i+1 < len(physicalLines)
		if continued, stripped := continuesNextLine(line); continued && hasNext {
			current.Segments = append(current.Segments, Segment{PhysicalLine: physicalIndex, Text: stripped})
			continue
		}
		current.Segments = append(current.Segments, Segment{PhysicalLine: physicalIndex, Text: line})
		result = append(result, current)
		current = LogicalLine{}
	}
	if len(current.Segments) > 0 {
		result = append(result, current)
	}
	return result
}

// continuesNextLine reports whether line ends in a single, unescaped
// backslash, and if so returns the line with that backslash stripped.
func continuesNextLine(line string) (bool, string) {
	if !strings.HasSuffix(line, "\\") {
		return false, line
	}
	// A line ending in an even number of backslashes does not continue:
	// each pair is a literal escaped backslash, not a continuation marker.
	trailing := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		trailing++
	}
	if trailing%2 == 0 {
		return false, line
	}
	return true, line[:len(line)-1]
}

// splitPhysicalLines splits source on '\n', tolerating '\r\n' line endings
// and a missing trailing newline on the final line.
func splitPhysicalLines(source string) []string {
	if source == "" {
		return nil
	}
	raw := strings.Split(source, "\n")
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	for i, line := range raw {
		raw[i] = strings.TrimSuffix(line, "\r")
	}
	return raw
}
