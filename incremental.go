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

import "errors"

// EditRange identifies a single contiguous replacement against a
// Document's Source: the half-open byte range [Start, End) is cut out
// and Replacement is spliced in its place.
type EditRange struct {
	Start, End int64
}

// ErrReparseBaseNil is returned by [Reparse] when prev is nil; there
// is nothing to reuse and callers should call [Parse] directly.
var ErrReparseBaseNil = errors.New("marco: Reparse requires a non-nil previous Document")

// Reparse incrementally updates prev by applying a single edit,
// re-segmenting only the affected block plus any block whose
// continuation depends on it, and reusing every other top-level block
// by reference rather than reparsing the whole source (§4.2).
//
// Stage 2 (inline expansion) only re-runs over the re-segmented
// region unless the edit changed the resolved content of the
// reference-definition map, in which case every block is re-expanded
// since any paragraph in the document could reference the changed
// label.
//
// A nil opts reuses prev's options.
func Reparse(prev *Document, edit EditRange, replacement []byte, opts *Options) (*Document, error) {
	if prev == nil {
		return nil, ErrReparseBaseNil
	}
	resolved := prev.options
	if opts != nil {
		resolved = opts.normalize()
	}

	sanitizedReplacement, sanitizeDiags := sanitizeUTF8(replacement)
	for i := range sanitizeDiags {
		sanitizeDiags[i].Span = offsetSpanBytesOnly(sanitizeDiags[i].Span, edit.Start)
	}

	newSource := make([]byte, 0, len(prev.Source)-int(edit.End-edit.Start)+len(sanitizedReplacement))
	newSource = append(newSource, prev.Source[:edit.Start]...)
	newSource = append(newSource, sanitizedReplacement...)
	newSource = append(newSource, prev.Source[edit.End:]...)
	delta := int64(len(sanitizedReplacement)) - (edit.End - edit.Start)

	firstIdx, lastIdx := affectedBlockRange(prev.Blocks, edit.Start, edit.End)
	if firstIdx < 0 {
		return Parse(newSource, &resolved)
	}

	regionStart := prev.Blocks[firstIdx].Span().Start.Offset
	oldRegionEnd := prev.Blocks[lastIdx].Span().End.Offset
	newRegionEnd := oldRegionEnd + delta
	if newRegionEnd < regionStart {
		newRegionEnd = regionStart
	}
	if newRegionEnd > int64(len(newSource)) {
		newRegionEnd = int64(len(newSource))
	}
	regionSource := newSource[regionStart:newRegionEnd]

	regionBlocks, regionDiags := parseTopLevel(regionSource, &resolved, nil)
	offsetBlocksBytesOnly(regionBlocks, regionStart)
	for i := range regionDiags {
		regionDiags[i].Span = offsetSpanBytesOnly(regionDiags[i].Span, regionStart)
	}

	idx := newLineIndex(newSource)

	var blocks []*Block
	blocks = append(blocks, prev.Blocks[:firstIdx]...)
	blocks = append(blocks, regionBlocks...)
	for _, b := range prev.Blocks[lastIdx+1:] {
		blocks = append(blocks, copyBlockShifted(b, delta))
	}
	renumberBlockSpans(blocks[firstIdx:], idx, newSource)

	refs, refDiags := extractReferences(blocks)

	var inlineDiags []Diagnostic
	if refsContentEqual(prev.References, refs) {
		inlineDiags = expandInlines(regionBlocks, newSource, refs, &resolved, nil)
	} else {
		inlineDiags = expandInlines(blocks, newSource, refs, &resolved, nil)
	}
	renumberBlockSpans(blocks[firstIdx:], idx, newSource)

	var freshDiags []Diagnostic
	freshDiags = append(freshDiags, sanitizeDiags...)
	freshDiags = append(freshDiags, regionDiags...)
	freshDiags = append(freshDiags, refDiags...)
	freshDiags = append(freshDiags, inlineDiags...)
	renumberDiagnosticSpans(freshDiags, idx, newSource)

	var diags []Diagnostic
	for _, d := range prev.Diagnostics {
		switch {
		case d.Span.End.Offset <= regionStart:
			diags = append(diags, d)
		case d.Span.Start.Offset >= oldRegionEnd:
			shifted := d
			shifted.Span = idx.span(newSource, d.Span.Start.Offset+delta, d.Span.End.Offset+delta)
			diags = append(diags, shifted)
		}
	}
	diags = append(diags, freshDiags...)

	return &Document{
		Blocks:      blocks,
		References:  refs,
		Diagnostics: diags,
		Source:      newSource,
		options:     resolved,
	}, nil
}

// affectedBlockRange finds the span of top-level block indices
// touched by [start, end), expanded by one block on each side so a
// paragraph that grows into a newly blank line, a list item whose
// marker line changed, or a fence that moved are all re-examined
// together with their neighbor (§4.2). Returns (-1, -1) if blocks is
// empty.
func affectedBlockRange(blocks []*Block, start, end int64) (first, last int) {
	first, last = -1, -1
	for i, b := range blocks {
		s, e := b.Span().Start.Offset, b.Span().End.Offset
		if e < start {
			continue
		}
		if s > end {
			break
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return -1, -1
	}
	if first > 0 {
		first--
	}
	if last < len(blocks)-1 {
		last++
	}
	return first, last
}

// refsContentEqual reports whether a and b resolve every label to the
// same destination/title, ignoring each definition's Span: a
// reference definition outside the edited region keeps its resolved
// content even though its Span shifts, and that alone must not force
// a full stage-2 re-expansion.
func refsContentEqual(a, b ReferenceMap) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || v.Destination != w.Destination || v.Title != w.Title || v.TitlePresent != w.TitlePresent {
			return false
		}
	}
	return true
}

// offsetBlocksBytesOnly shifts every span's byte Offset (but not Line
// or Column, which are corrected afterward by renumberBlockSpans) by
// base, including the stage-1 RawSlice placeholders that haven't been
// expanded yet. Used once to anchor a freshly parsed region's
// 0-based offsets into the full document.
func offsetBlocksBytesOnly(blocks []*Block, base int64) {
	for _, b := range blocks {
		b.span = offsetSpanBytesOnly(b.span, base)
		if b.raw != nil {
			b.raw.Span = offsetSpanBytesOnly(b.raw.Span, base)
		}
		if b.rawTitle != nil {
			b.rawTitle.Span = offsetSpanBytesOnly(b.rawTitle.Span, base)
		}
		for _, row := range b.rawHeader {
			for i := range row {
				row[i].Span = offsetSpanBytesOnly(row[i].Span, base)
			}
		}
		for _, row := range b.rawRows {
			for i := range row {
				row[i].Span = offsetSpanBytesOnly(row[i].Span, base)
			}
		}
		offsetBlocksBytesOnly(b.blockChildren, base)
	}
}

func offsetSpanBytesOnly(s Span, base int64) Span {
	if !s.IsValid() {
		return s
	}
	s.Start.Offset += base
	s.End.Offset += base
	return s
}

// copyBlockShifted returns a deep copy of b (already fully stage-2
// expanded, as every block reused from a previous Document is) with
// every span's byte offset shifted by delta. Line/Column are left
// stale; renumberBlockSpans corrects them afterward against the new
// source. Copying (rather than mutating b in place) keeps prev
// untouched, matching the "Document is immutable" contract.
func copyBlockShifted(b *Block, delta int64) *Block {
	if b == nil {
		return nil
	}
	nb := *b
	nb.span = offsetSpanBytesOnly(b.span, delta)
	if b.blockChildren != nil {
		nb.blockChildren = make([]*Block, len(b.blockChildren))
		for i, c := range b.blockChildren {
			nb.blockChildren[i] = copyBlockShifted(c, delta)
		}
	}
	if b.inlineChildren != nil {
		nb.inlineChildren = copyInlinesShifted(b.inlineChildren, delta)
	}
	if b.admonitionTitle != nil {
		nb.admonitionTitle = copyInlinesShifted(b.admonitionTitle, delta)
	}
	if b.tableHeader != nil {
		nb.tableHeader = make([]Inlines, len(b.tableHeader))
		for i, row := range b.tableHeader {
			nb.tableHeader[i] = copyInlinesShifted(row, delta)
		}
	}
	if b.tableRows != nil {
		nb.tableRows = copyInlinesShifted(b.tableRows, delta)
	}
	return &nb
}

func copyInlinesShifted(in Inlines, delta int64) Inlines {
	if in == nil {
		return nil
	}
	out := make(Inlines, len(in))
	for i, n := range in {
		nn := *n
		nn.span = offsetSpanBytesOnly(n.span, delta)
		nn.children = copyInlinesShifted(n.children, delta)
		out[i] = &nn
	}
	return out
}

// renumberBlockSpans recomputes Line/Column for every span reachable
// from blocks against source, trusting each span's already-correct
// byte Offset. This is the second half of the two-phase offset
// update: byte offsets are cheap to shift arithmetically, but
// Line/Column must be recomputed whenever the edit changed the
// source's newline count.
func renumberBlockSpans(blocks []*Block, idx *lineIndex, source []byte) {
	for _, b := range blocks {
		b.span = idx.span(source, b.span.Start.Offset, b.span.End.Offset)
		renumberBlockSpans(b.blockChildren, idx, source)
		renumberInlineSpans(b.inlineChildren, idx, source)
		renumberInlineSpans(b.admonitionTitle, idx, source)
		for _, row := range b.tableHeader {
			renumberInlineSpans(row, idx, source)
		}
		renumberInlineSpans(b.tableRows, idx, source)
	}
}

func renumberInlineSpans(in Inlines, idx *lineIndex, source []byte) {
	for _, n := range in {
		n.span = idx.span(source, n.span.Start.Offset, n.span.End.Offset)
		renumberInlineSpans(n.children, idx, source)
	}
}

// renumberDiagnosticSpans fills in Line/Column for a batch of
// diagnostics whose Span so far only carries a byte Offset, the same
// two-phase offset-then-renumber split used for node spans.
func renumberDiagnosticSpans(diags []Diagnostic, idx *lineIndex, source []byte) {
	for i := range diags {
		diags[i].Span = idx.span(source, diags[i].Span.Start.Offset, diags[i].Span.End.Offset)
	}
}
