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

package lsp

import (
	"sort"

	"github.com/marcolang/marco"
)

// Highlights walks doc and returns every span an editor should color,
// ordered by source position. Spans sharing a token class never
// overlap; spans of different classes may nest (a link_text span
// inside an emphasis span inside a heading span, for instance), the
// same layering any semantic-highlighting client already expects.
//
// Destination text for an inline link/image is not separately spanned
// in the source the way its visible text is (only the resolved string
// is stored on the node), so NSLinkURL is only emitted for Autolink
// nodes, whose whole span literally is the URL; inline and reference
// links only contribute NSLinkText.
func Highlights(doc *marco.Document) []Highlight {
	var out []Highlight
	var walkBlocks func([]*marco.Block)
	var walkInlines func(marco.Inlines)

	emit := func(span marco.Span, ns string, modifiers ...string) {
		if !span.IsValid() {
			return
		}
		out = append(out, Highlight{Span: span, Class: TokenClass{Namespace: ns, Modifiers: modifiers}})
	}

	walkInlines = func(in marco.Inlines) {
		for _, n := range in {
			switch n.Kind() {
			case marco.EmphasisKind:
				switch n.Strength() {
				case 1:
					emit(n.Span(), NSEmphasis)
				case 2:
					emit(n.Span(), NSStrong)
				case 3:
					emit(n.Span(), NSEmphasis)
					emit(n.Span(), NSStrong)
				}
			case marco.CodeSpanKind:
				emit(n.Span(), NSCode)
			case marco.LinkKind, marco.ImageKind:
				emit(n.Span(), NSLinkText)
			case marco.AutolinkKind:
				emit(n.Span(), NSLinkURL)
			case marco.HTMLInlineKind:
				emit(n.Span(), NSHTML)
			case marco.MathInlineKind:
				emit(n.Span(), NSMath)
			case marco.StrikethroughKind, marco.HighlightKind, marco.SuperscriptKind,
				marco.SubscriptKind, marco.FootnoteRefKind, marco.UserMentionKind,
				marco.BookmarkKind, marco.PageTagKind, marco.TocKind, marco.DocRefKind,
				marco.RunInlineKind:
				emit(n.Span(), NSExtensionTag)
			}
			walkInlines(n.Children())
		}
	}

	walkBlocks = func(blocks []*marco.Block) {
		for _, b := range blocks {
			switch b.Kind() {
			case marco.HeadingKind:
				emit(b.Span(), NSHeading)
				walkInlines(b.Content())
			case marco.ThematicBreakKind:
				emit(b.Span(), NSThematicBreak)
			case marco.BlockQuoteKind:
				emit(b.Span(), NSQuoteMarker)
				walkBlocks(b.Children())
			case marco.ListItemKind:
				emit(b.Span(), NSListMarker)
				walkBlocks(b.Children())
			case marco.FencedCodeBlockKind, marco.IndentedCodeBlockKind:
				emit(b.Span(), NSCodeFence)
			case marco.HTMLBlockKind:
				emit(b.Span(), NSHTML)
			case marco.MathBlockKind:
				emit(b.Span(), NSMath)
			case marco.AdmonitionKind:
				emit(b.Span(), NSExtensionTag)
				walkInlines(b.AdmonitionTitle())
				walkBlocks(b.Children())
			case marco.RunBlockKind:
				emit(b.Span(), NSExtensionTag)
			case marco.TableKind:
				for _, row := range b.TableHeader() {
					walkInlines(row)
				}
				for i := 0; i < b.TableRowCount(); i++ {
					for _, cell := range b.TableRow(i) {
						walkInlines(cell)
					}
				}
			case marco.ParagraphKind:
				walkInlines(b.Content())
			default:
				walkBlocks(b.Children())
				walkInlines(b.Content())
			}
		}
	}

	walkBlocks(doc.TopLevelBlocks())
	for _, d := range doc.Diagnostics {
		emit(d.Span, NSDiagnosticRange)
	}

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].Span.Start.Offset, out[j].Span.Start.Offset
		if si != sj {
			return si < sj
		}
		return out[i].Span.End.Offset < out[j].Span.End.Offset
	})
	return out
}
