// Copyright 2024 The Marco Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package marco

import "unicode/utf8"

// sanitizeUTF8 replaces invalid UTF-8 byte sequences and NUL bytes
// with U+FFFD, recording a diagnostic for each replacement (§6 "input
// format"). It returns the possibly-rewritten buffer.
func sanitizeUTF8(source []byte) ([]byte, []Diagnostic) {
	if utf8.Valid(source) {
		hasNUL := false
		for _, b := range source {
			if b == 0 {
				hasNUL = true
				break
			}
		}
		if !hasNUL {
			return source, nil
		}
	}

	var out []byte
	var diags []Diagnostic
	for i := 0; i < len(source); {
		b := source[i]
		if b == 0 {
			out = append(out, "�"...)
			diags = append(diags, newDiagnostic(CodeInvalidUTF8, SeverityWarning,
				Span{Start: Position{Offset: int64(i)}, End: Position{Offset: int64(i + 1)}},
				"replaced NUL byte with U+FFFD"))
			i++
			continue
		}
		if b < utf8.RuneSelf {
			out = append(out, b)
			i++
			continue
		}
		r, size := utf8.DecodeRune(source[i:])
		if r == utf8.RuneError && size <= 1 {
			out = append(out, "�"...)
			diags = append(diags, newDiagnostic(CodeInvalidUTF8, SeverityWarning,
				Span{Start: Position{Offset: int64(i)}, End: Position{Offset: int64(i + 1)}},
				"replaced invalid UTF-8 byte with U+FFFD"))
			i++
			continue
		}
		out = append(out, source[i:i+size]...)
		i += size
	}
	return out, diags
}

// lineIndex precomputes, for a source buffer, the byte offset at
// which every line begins, so that offset->(line,column) lookups
// during parsing are O(log n) instead of O(n) per lookup.
type lineIndex struct {
	starts []int64 // starts[i] = offset of first byte of line i+1 (0-based slice, 1-based line numbers)
}

func newLineIndex(source []byte) *lineIndex {
	idx := &lineIndex{starts: []int64{0}}
	for i, b := range source {
		if b == '\n' {
			idx.starts = append(idx.starts, int64(i+1))
		}
	}
	return idx
}

// position computes the Position for a byte offset, using binary
// search over the precomputed line starts and counting Unicode scalar
// values since the start of the line for the column.
func (idx *lineIndex) position(source []byte, offset int64) Position {
	lo, hi := 0, len(idx.starts)
	for lo < hi-1 {
		mid := (lo + hi) / 2
		if idx.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid
		}
	}
	line := lo + 1
	col := 1
	for i := idx.starts[lo]; i < offset; {
		_, size := utf8.DecodeRune(source[i:])
		if size <= 0 {
			size = 1
		}
		i += int64(size)
		col++
	}
	return Position{Offset: offset, Line: line, Column: col}
}

func (idx *lineIndex) span(source []byte, start, end int64) Span {
	return Span{Start: idx.position(source, start), End: idx.position(source, end)}
}

// columnWidth returns the display width in columns of b, starting at
// column start (0-based), expanding tabs to the next multiple of
// tabWidth. Grounded on the teacher's columnWidth in parse.go,
// generalized to a configurable tab width (spec §6 tab_width).
func columnWidth(start, tabWidth int, b []byte) int {
	end := start
	for _, bi := range b {
		switch {
		case bi == '\t':
			end = end + tabWidth - end%tabWidth
		case bi&0x80 == 0:
			end++
		}
	}
	return end - start
}

func indentLength(line []byte) int {
	for i, b := range line {
		if b != ' ' && b != '\t' {
			return i
		}
	}
	return len(line)
}

func isBlankLine(line []byte) bool {
	for _, b := range line {
		if b != ' ' && b != '\t' && b != '\r' && b != '\n' {
			return false
		}
	}
	return true
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isASCIISpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isASCIIPunctuation(c byte) bool {
	switch {
	case c >= '!' && c <= '/':
		return true
	case c >= ':' && c <= '@':
		return true
	case c >= '[' && c <= '`':
		return true
	case c >= '{' && c <= '~':
		return true
	default:
		return false
	}
}

// isEndEscaped reports whether s ends with an odd number of trailing
// backslashes (so the character following s, if any, is escaped).
func isEndEscaped(s []byte) bool {
	n := 0
	for ; n < len(s); n++ {
		if s[len(s)-n-1] != '\\' {
			break
		}
	}
	return n%2 == 1
}

// splitLines splits source into lines, keeping the trailing line
// terminator attached to each line (as the teacher's readline does),
// so spans reconstructed from lines remain contiguous with the source.
func splitLines(source []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			lines = append(lines, source[start:i+1])
			start = i + 1
		}
	}
	if start < len(source) {
		lines = append(lines, source[start:])
	}
	return lines
}
