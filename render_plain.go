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

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// RenderPlain writes a whitespace-preserving Markdown projection of
// doc to w: the text P4 re-parses to recover the same Inline
// structure for paragraphs containing no block constructs. It is not
// guaranteed to be byte-identical to the original source (list
// markers and link forms are normalized), only structurally
// equivalent once re-parsed.
func RenderPlain(w io.Writer, doc *Document) error {
	type frame struct {
		block  *Block
		indent int
	}
	ww := &errWriter{w: w}
	stack := make([]frame, 0, len(doc.Blocks))
	for i := len(doc.Blocks) - 1; i >= 0; i-- {
		stack = append(stack, frame{block: doc.Blocks[i]})
	}

	var prevKind BlockKind
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch k := curr.block.Kind(); k {
		case HeadingKind:
			if prevKind != 0 {
				ww.WriteString("\n")
			}
			ww.WriteString(strings.Repeat("#", curr.block.HeadingLevel()))
			ww.WriteString(" ")
			writePlainInlines(ww, doc.Source, curr.block.Content())
			ww.WriteString("\n")
			prevKind = k
		case ParagraphKind:
			if prevKind != 0 {
				ww.WriteString("\n")
			}
			writePlainInlines(ww, doc.Source, curr.block.Content())
			ww.WriteString("\n")
			prevKind = k
		case ThematicBreakKind:
			if prevKind != 0 {
				ww.WriteString("\n")
			}
			ww.WriteString("---\n")
			prevKind = k
		case BlockQuoteKind:
			if prevKind != 0 {
				ww.WriteString("\n")
			}
			writeQuoted(ww, doc.Source, curr.block)
			prevKind = k
		case ListKind:
			if prevKind != 0 {
				ww.WriteString("\n")
			}
			children := curr.block.Children()
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, frame{block: children[i], indent: curr.indent})
			}
			prevKind = 0 // let first item decide spacing
		case ListItemKind:
			marker := "-"
			if curr.block.IsOrderedList() {
				marker = "1."
			}
			ww.WriteString(strings.Repeat(" ", curr.indent))
			ww.WriteString(marker)
			ww.WriteString(" ")
			extra := curr.indent + len(marker) + 1
			children := curr.block.Children()
			if len(children) == 1 && children[0].Kind() == ParagraphKind {
				writePlainInlines(ww, doc.Source, children[0].Content())
				ww.WriteString("\n")
			} else {
				ww.WriteString("\n")
				for i := len(children) - 1; i >= 0; i-- {
					stack = append(stack, frame{block: children[i], indent: extra})
				}
			}
			prevKind = k
		case FencedCodeBlockKind, IndentedCodeBlockKind:
			if prevKind != 0 {
				ww.WriteString("\n")
			}
			ww.WriteString("```")
			ww.WriteString(curr.block.CodeLanguage())
			ww.WriteString("\n")
			ww.WriteString(curr.block.CodeContent())
			if !strings.HasSuffix(curr.block.CodeContent(), "\n") {
				ww.WriteString("\n")
			}
			ww.WriteString("```\n")
			prevKind = k
		case LinkReferenceDefinitionKind:
			if prevKind != 0 {
				ww.WriteString("\n")
			}
			ww.WriteString("[")
			ww.WriteString(curr.block.ReferenceLabel())
			ww.WriteString("]: ")
			ww.WriteString(curr.block.ReferenceDestination())
			if title, ok := curr.block.ReferenceTitle(); ok {
				fmt.Fprintf(ww, " %q", title)
			}
			ww.WriteString("\n")
			prevKind = k
		case AdmonitionKind:
			if prevKind != 0 {
				ww.WriteString("\n")
			}
			ww.WriteString(":::")
			ww.WriteString(string(curr.block.AdmonitionKind()))
			ww.WriteString("\n")
			var inner bytes.Buffer
			sub := &Document{Blocks: curr.block.Children(), Source: doc.Source}
			RenderPlain(&inner, sub)
			ww.WriteString(inner.String())
			ww.WriteString(":::\n")
			prevKind = k
		default:
			if curr.block.Span().IsValid() {
				ww.Write(curr.block.Span().Slice(doc.Source))
				ww.WriteString("\n")
			}
			prevKind = k
		}
	}
	return ww.err
}

func writeQuoted(w *errWriter, source []byte, block *Block) {
	var inner bytes.Buffer
	sub := &Document{Blocks: block.Children(), Source: source}
	RenderPlain(&inner, sub)
	for _, line := range strings.SplitAfter(inner.String(), "\n") {
		if line == "" {
			continue
		}
		w.WriteString("> ")
		w.WriteString(line)
	}
}

// writePlainInlines walks content with [Walk], emitting the opening
// half of each node's markdown form in Pre and the closing half in
// Post. Leaf kinds (code spans, breaks, and anything not specially
// handled) write their whole representation in Pre and tell Walk not
// to descend, since their text already covers their children.
func writePlainInlines(w *errWriter, source []byte, content Inlines) {
	for _, inline := range content {
		Walk(inline.AsNode(), &WalkOptions{
			Pre: func(c *Cursor) bool {
				in := c.Node().Inline()
				switch in.Kind() {
				case LinkKind, ImageKind:
					prefix := "["
					if in.Kind() == ImageKind {
						prefix = "!["
					}
					w.WriteString(prefix)
					return true
				case EmphasisKind:
					w.WriteString(strings.Repeat(string(in.Delimiter()), in.Strength()))
					return true
				case CodeSpanKind:
					w.WriteString("`")
					w.WriteString(in.Text())
					w.WriteString("`")
					return false
				case HardBreakKind:
					w.WriteString("\\\n")
					return false
				case SoftBreakKind:
					w.WriteString("\n")
					return false
				default:
					if in.Span().IsValid() {
						w.Write(in.Span().Slice(source))
					} else {
						w.WriteString(in.Text())
					}
					return false
				}
			},
			Post: func(c *Cursor) bool {
				in := c.Node().Inline()
				switch in.Kind() {
				case LinkKind, ImageKind:
					w.WriteString("](")
					w.WriteString(in.Destination())
					if title, ok := in.Title(); ok {
						fmt.Fprintf(w, " %q", title)
					}
					w.WriteString(")")
				case EmphasisKind:
					w.WriteString(strings.Repeat(string(in.Delimiter()), in.Strength()))
				}
				return true
			},
		})
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}
