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
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/atom"
)

// HTMLRenderer converts a fully parsed [Document] into HTML (§4.4).
//
// # Security considerations
//
// Markdown permits raw HTML, which can introduce XSS when used with
// untrusted input. AllowRawHTML (via [Options]) can suppress it
// entirely; FilterTag escapes specific element names while still
// showing the source text.
type HTMLRenderer struct {
	Options *Options

	// FilterTag is a predicate reporting whether an element with the
	// given lowercased tag name should have its leading angle bracket
	// escaped. Nil disables filtering.
	FilterTag func(tag []byte) bool
}

// RenderHTML writes doc's rendered HTML to w using the renderer
// configured by doc's parse options.
func RenderHTML(w io.Writer, doc *Document) error {
	return (&HTMLRenderer{Options: &doc.options}).Render(w, doc)
}

// Render writes doc's rendered HTML to w.
func (r *HTMLRenderer) Render(w io.Writer, doc *Document) error {
	state := &renderState{HTMLRenderer: r, doc: doc}
	for i, b := range doc.Blocks {
		if i > 0 {
			state.dst = append(state.dst, "\n\n"...)
		}
		state.block(b)
	}
	if _, err := w.Write(state.dst); err != nil {
		return fmt.Errorf("render markdown to html: %w", err)
	}
	return nil
}

// AppendBlock appends the rendered HTML of a single top-level block to dst.
func (r *HTMLRenderer) AppendBlock(dst []byte, doc *Document, block *Block) []byte {
	state := &renderState{HTMLRenderer: r, doc: doc, dst: dst}
	state.block(block)
	return state.dst
}

type renderState struct {
	*HTMLRenderer
	doc      *Document
	dst      []byte
	lowerBuf []byte
}

func (r *renderState) openTagAttr(name atom.Atom) {
	start := len(r.dst)
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
	if r.FilterTag != nil && r.FilterTag(r.dst[start+1:]) {
		r.dst = r.dst[:start]
		r.dst = append(r.dst, "&lt;"...)
		r.dst = append(r.dst, name.String()...)
	}
}

func (r *renderState) openTag(name atom.Atom) {
	r.openTagAttr(name)
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeTag(name atom.Atom) {
	start := len(r.dst)
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	if r.FilterTag != nil && r.FilterTag(r.dst[start+1:]) {
		r.dst = r.dst[:start]
		r.dst = append(r.dst, "&lt;/"...)
		r.dst = append(r.dst, name.String()...)
	}
	r.dst = append(r.dst, '>')
}

func (r *renderState) headingID(heading *Block) string {
	scheme := HeadingIDGitHub
	if r.Options != nil {
		scheme = r.Options.HeadingIDScheme
	}
	if scheme == HeadingIDNone {
		return ""
	}
	var buf strings.Builder
	var collect func(Inlines)
	collect = func(in Inlines) {
		for _, n := range in {
			if n.Kind() == TextKind {
				buf.WriteString(n.Text())
			}
			collect(n.Children())
		}
	}
	collect(heading.Content())
	switch scheme {
	case HeadingIDGitHub:
		return githubSlug(buf.String())
	case HeadingIDNumeric:
		return fmt.Sprintf("heading-%d", heading.Span().Start.Line)
	default:
		return ""
	}
}

func githubSlug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r == ' ' || r == '\t':
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		case r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = r == '-'
		default:
			// drop punctuation, matching GitHub's heading-anchor scheme.
		}
	}
	return strings.Trim(b.String(), "-")
}

func (r *renderState) block(block *Block) {
	switch block.Kind() {
	case ParagraphKind:
		r.openTag(atom.P)
		r.inlines(block.Content())
		r.closeTag(atom.P)
	case ThematicBreakKind:
		r.openTag(atom.Hr)
	case HeadingKind:
		tagName := headingTag(block.HeadingLevel())
		r.openTagAttr(tagName)
		if id := r.headingID(block); id != "" {
			r.dst = append(r.dst, ` id="`...)
			r.dst = append(r.dst, html.EscapeString(id)...)
			r.dst = append(r.dst, `"`...)
		}
		r.dst = append(r.dst, '>')
		r.inlines(block.Content())
		r.closeTag(tagName)
	case FencedCodeBlockKind, IndentedCodeBlockKind:
		r.renderCodeBlock(block)
	case BlockQuoteKind:
		r.openTag(atom.Blockquote)
		r.blockChildren(block, false)
		r.closeTag(atom.Blockquote)
	case ListKind:
		r.renderList(block)
	case ListItemKind:
		r.openTagAttr(atom.Li)
		if t := block.TaskState(); t != NoTask {
			r.dst = append(r.dst, ` class="task-list-item"`...)
		}
		r.dst = append(r.dst, '>')
		if t := block.TaskState(); t != NoTask {
			r.dst = append(r.dst, `<input type="checkbox" disabled`...)
			if t == TaskChecked {
				r.dst = append(r.dst, ` checked`...)
			}
			r.dst = append(r.dst, `> `...)
		}
		r.blockChildren(block, block.IsTightList())
		r.closeTag(atom.Li)
	case HTMLBlockKind:
		if r.Options == nil || r.Options.AllowRawHTML {
			if r.FilterTag == nil {
				r.dst = append(r.dst, block.HTMLContent()...)
			} else {
				r.filterRaw([]byte(block.HTMLContent()))
			}
		}
	case AdmonitionKind:
		r.renderAdmonition(block)
	case MathBlockKind:
		r.dst = append(r.dst, `<div class="math math-display">`...)
		r.dst = append(r.dst, html.EscapeString(block.MathContent())...)
		r.dst = append(r.dst, `</div>`...)
	case RunBlockKind:
		r.renderRunBlock(block)
	case LinkReferenceDefinitionKind:
		// Reference definitions produce no direct HTML output.
	case TableKind:
		r.renderTable(block)
	}
}

func headingTag(level int) atom.Atom {
	switch level {
	case 1:
		return atom.H1
	case 2:
		return atom.H2
	case 3:
		return atom.H3
	case 4:
		return atom.H4
	case 5:
		return atom.H5
	default:
		return atom.H6
	}
}

func (r *renderState) renderCodeBlock(block *Block) {
	r.openTag(atom.Pre)
	r.openTagAttr(atom.Code)
	language := block.CodeLanguage()
	highlighted := false
	if language != "" {
		words := strings.Fields(language)
		if len(words) > 0 {
			if r.Options != nil && r.Options.CodeHighlight != nil {
				if out, ok := r.Options.CodeHighlight(words[0], block.CodeContent()); ok {
					r.dst = append(r.dst, ` class="language-`...)
					r.dst = append(r.dst, html.EscapeString(words[0])...)
					r.dst = append(r.dst, `">`...)
					r.dst = append(r.dst, out...)
					highlighted = true
				}
			}
			if !highlighted {
				r.dst = append(r.dst, ` class="language-`...)
				r.dst = append(r.dst, html.EscapeString(words[0])...)
				r.dst = append(r.dst, `"`...)
			}
		}
	}
	if !highlighted {
		r.dst = append(r.dst, '>')
		r.dst = append(r.dst, escapeHTML(nil, []byte(block.CodeContent()))...)
	}
	r.closeTag(atom.Code)
	r.closeTag(atom.Pre)
}

func (r *renderState) renderList(block *Block) {
	var tagName atom.Atom
	if block.IsOrderedList() {
		tagName = atom.Ol
		r.openTagAttr(tagName)
		if start, ok := block.ListStart(); ok && start != 1 {
			r.dst = append(r.dst, ` start="`...)
			r.dst = strconv.AppendUint(r.dst, start, 10)
			r.dst = append(r.dst, `"`...)
		}
		r.dst = append(r.dst, '>')
	} else {
		tagName = atom.Ul
		r.openTag(tagName)
	}
	r.blockChildren(block, false)
	r.closeTag(tagName)
}

func (r *renderState) renderAdmonition(block *Block) {
	r.dst = append(r.dst, `<div class="admonition admonition-`...)
	r.dst = append(r.dst, html.EscapeString(string(block.AdmonitionKind()))...)
	r.dst = append(r.dst, `">`...)
	if title := block.AdmonitionTitle(); len(title) > 0 {
		r.dst = append(r.dst, `<p class="admonition-title">`...)
		r.inlines(title)
		r.dst = append(r.dst, `</p>`...)
	}
	r.blockChildren(block, false)
	r.dst = append(r.dst, `</div>`...)
}

func (r *renderState) renderRunBlock(block *Block) {
	r.dst = append(r.dst, `<pre><code class="language-`...)
	r.dst = append(r.dst, html.EscapeString(block.RunScriptType())...)
	r.dst = append(r.dst, `" data-run="`...)
	r.dst = append(r.dst, html.EscapeString(block.RunScriptType())...)
	r.dst = append(r.dst, `">`...)
	r.dst = append(r.dst, escapeHTML(nil, []byte(block.RunContent()))...)
	r.dst = append(r.dst, `</code></pre>`...)
}

func (r *renderState) renderTable(block *Block) {
	r.openTag(atom.Table)
	r.openTag(atom.Thead)
	r.openTag(atom.Tr)
	aligns := block.TableAlignments()
	for i, cell := range block.TableHeader() {
		r.openTagAttr(atom.Th)
		r.writeAlign(aligns, i)
		r.dst = append(r.dst, '>')
		r.inlines(cell)
		r.closeTag(atom.Th)
	}
	r.closeTag(atom.Tr)
	r.closeTag(atom.Thead)
	r.openTag(atom.Tbody)
	for row := 0; row < block.TableRowCount(); row++ {
		r.openTag(atom.Tr)
		for i, cell := range block.TableRow(row) {
			r.openTagAttr(atom.Td)
			r.writeAlign(aligns, i)
			r.dst = append(r.dst, '>')
			r.inlines(cell)
			r.closeTag(atom.Td)
		}
		r.closeTag(atom.Tr)
	}
	r.closeTag(atom.Tbody)
	r.closeTag(atom.Table)
}

func (r *renderState) writeAlign(aligns []Alignment, i int) {
	if i >= len(aligns) {
		return
	}
	switch aligns[i] {
	case LeftAlignment:
		r.dst = append(r.dst, ` style="text-align:left"`...)
	case CenterAlignment:
		r.dst = append(r.dst, ` style="text-align:center"`...)
	case RightAlignment:
		r.dst = append(r.dst, ` style="text-align:right"`...)
	}
}

func (r *renderState) blockChildren(parent *Block, tight bool) {
	for _, c := range parent.Children() {
		if tight && c.Kind() == ParagraphKind {
			r.inlines(c.Content())
		} else {
			r.block(c)
		}
	}
}

func (r *renderState) inlines(in Inlines) {
	for _, n := range in {
		r.inline(n)
	}
}

func (r *renderState) inline(inline *Inline) {
	const hardLineBreak = "<br>\n"
	switch inline.Kind() {
	case TextKind:
		r.dst = escapeHTML(r.dst, []byte(inline.Text()))
	case EntityKind:
		r.dst = escapeHTML(r.dst, []byte(inline.Resolved()))
	case HTMLInlineKind:
		if r.Options == nil || r.Options.AllowRawHTML {
			if r.FilterTag == nil {
				r.dst = append(r.dst, inline.Text()...)
			} else {
				r.filterRaw([]byte(inline.Text()))
			}
		}
	case SoftBreakKind:
		if r.Options != nil && r.Options.HardBreakAsBR {
			r.dst = append(r.dst, '\n')
		} else {
			r.dst = append(r.dst, '\n')
		}
	case HardBreakKind:
		r.dst = append(r.dst, hardLineBreak...)
	case EmphasisKind:
		tag := atom.Em
		if inline.Strength() >= 2 {
			tag = atom.Strong
		}
		r.openTag(tag)
		r.inlines(inline.Children())
		r.closeTag(tag)
		if inline.Strength() >= 3 {
			r.openTag(atom.Em)
			r.closeTag(atom.Em)
		}
	case StrikethroughKind:
		r.dst = append(r.dst, "<del>"...)
		r.inlines(inline.Children())
		r.dst = append(r.dst, "</del>"...)
	case HighlightKind:
		r.dst = append(r.dst, `<mark>`...)
		r.inlines(inline.Children())
		r.dst = append(r.dst, `</mark>`...)
	case SuperscriptKind:
		r.openTag(atom.Sup)
		r.inlines(inline.Children())
		r.closeTag(atom.Sup)
	case SubscriptKind:
		r.openTag(atom.Sub)
		r.inlines(inline.Children())
		r.closeTag(atom.Sub)
	case CodeSpanKind:
		r.openTag(atom.Code)
		r.dst = escapeHTML(r.dst, []byte(inline.Text()))
		r.closeTag(atom.Code)
	case LinkKind:
		def := r.resolveLink(inline)
		r.openTagAttr(atom.A)
		r.dst = append(r.dst, ` href="`...)
		r.dst = append(r.dst, html.EscapeString(r.rewriteLink(NormalizeURI(def.Destination)))...)
		r.dst = append(r.dst, `"`...)
		if def.TitlePresent {
			r.dst = append(r.dst, ` title="`...)
			r.dst = append(r.dst, html.EscapeString(def.Title)...)
			r.dst = append(r.dst, `"`...)
		}
		r.dst = append(r.dst, '>')
		r.inlines(inline.Children())
		r.closeTag(atom.A)
	case ImageKind:
		def := r.resolveLink(inline)
		r.openTagAttr(atom.Img)
		r.dst = append(r.dst, ` src="`...)
		r.dst = append(r.dst, html.EscapeString(r.rewriteLink(NormalizeURI(def.Destination)))...)
		r.dst = append(r.dst, `"`...)
		if def.TitlePresent {
			r.dst = append(r.dst, ` title="`...)
			r.dst = append(r.dst, html.EscapeString(def.Title)...)
			r.dst = append(r.dst, `"`...)
		}
		r.dst = appendAltText(r.dst, inline)
		r.dst = append(r.dst, '>')
	case AutolinkKind:
		dest := inline.Destination()
		r.openTagAttr(atom.A)
		r.dst = append(r.dst, ` href="`...)
		r.dst = append(r.dst, html.EscapeString(r.rewriteLink(NormalizeURI(dest)))...)
		r.dst = append(r.dst, `">`...)
		display := dest
		if inline.AutolinkKind() == EmailAutolink {
			display = strings.TrimPrefix(dest, "mailto:")
		}
		r.dst = append(r.dst, html.EscapeString(display)...)
		r.closeTag(atom.A)
	case MathInlineKind:
		r.dst = append(r.dst, `<span class="math math-inline">`...)
		r.dst = append(r.dst, html.EscapeString(inline.Text())...)
		r.dst = append(r.dst, `</span>`...)
	case FootnoteRefKind:
		if inline.ChildCount() > 0 {
			r.dst = append(r.dst, `<sup class="footnote-ref footnote-inline"><span class="footnote-body">`...)
			r.inlines(inline.Children())
			r.dst = append(r.dst, `</span></sup>`...)
		} else {
			r.dst = append(r.dst, `<sup class="footnote-ref"><a href="#fn-`...)
			r.dst = append(r.dst, html.EscapeString(inline.Label())...)
			r.dst = append(r.dst, `">`...)
			r.dst = append(r.dst, html.EscapeString(inline.Label())...)
			r.dst = append(r.dst, `</a></sup>`...)
		}
	case UserMentionKind:
		r.dst = append(r.dst, `<a class="user-mention" href="/`...)
		r.dst = append(r.dst, html.EscapeString(inline.Label())...)
		r.dst = append(r.dst, `">@`...)
		if display, ok := inline.Display(); ok {
			r.dst = append(r.dst, html.EscapeString(display)...)
		} else {
			r.dst = append(r.dst, html.EscapeString(inline.Label())...)
		}
		r.dst = append(r.dst, `</a>`...)
	case BookmarkKind:
		r.dst = append(r.dst, `<a class="bookmark-ref" href="#bookmark-`...)
		r.dst = append(r.dst, html.EscapeString(inline.Label())...)
		r.dst = append(r.dst, `">`...)
		r.dst = append(r.dst, html.EscapeString(inline.Label())...)
		r.dst = append(r.dst, `</a>`...)
	case PageTagKind:
		r.dst = append(r.dst, `<a class="page-tag" href="`...)
		if path, ok := inline.Path(); ok {
			r.dst = append(r.dst, html.EscapeString(r.rewriteLink(path))...)
		}
		r.dst = append(r.dst, `">`...)
		r.dst = append(r.dst, html.EscapeString(inline.Label())...)
		r.dst = append(r.dst, `</a>`...)
	case TocKind:
		r.dst = append(r.dst, `<nav class="toc" data-depth="`...)
		r.dst = strconv.AppendInt(r.dst, int64(inline.Depth()), 10)
		r.dst = append(r.dst, `"></nav>`...)
	case DocRefKind:
		r.dst = append(r.dst, `<a class="doc-ref" href="`...)
		if path, ok := inline.Path(); ok {
			r.dst = append(r.dst, html.EscapeString(r.rewriteLink(path))...)
		}
		r.dst = append(r.dst, `">`...)
		r.dst = append(r.dst, html.EscapeString(inline.Label())...)
		r.dst = append(r.dst, `</a>`...)
	case RunInlineKind:
		r.dst = append(r.dst, `<code class="language-`...)
		r.dst = append(r.dst, html.EscapeString(inline.ScriptType())...)
		r.dst = append(r.dst, `" data-run="true">`...)
		r.dst = escapeHTML(r.dst, []byte(inline.Text()))
		r.dst = append(r.dst, `</code>`...)
	}
}

func (r *renderState) resolveLink(inline *Inline) LinkDefinition {
	if inline.ReferenceKind() == InlineReference {
		title, titlePresent := inline.Title()
		return LinkDefinition{Destination: inline.Destination(), Title: title, TitlePresent: titlePresent}
	}
	if def, ok := r.doc.ResolveReference(shortcutLabelOf(inline.Children())); ok {
		return def
	}
	title, titlePresent := inline.Title()
	return LinkDefinition{Destination: inline.Destination(), Title: title, TitlePresent: titlePresent}
}

func (r *renderState) rewriteLink(dest string) string {
	if r.Options != nil && r.Options.LinkRewriter != nil {
		return r.Options.LinkRewriter(dest)
	}
	return dest
}

func appendAltText(dst []byte, parent *Inline) []byte {
	stack := []*Inline{parent}
	hasAttr := false
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch curr.Kind() {
		case TextKind:
			if !hasAttr {
				dst = append(dst, ` alt="`...)
				hasAttr = true
			}
			dst = append(dst, html.EscapeString(curr.Text())...)
		case SoftBreakKind, HardBreakKind:
			if !hasAttr {
				dst = append(dst, ` alt="`...)
				hasAttr = true
			}
			dst = append(dst, ' ')
		default:
			children := curr.Children()
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
	if !hasAttr {
		dst = append(dst, ` alt=""`...)
		return dst
	}
	dst = append(dst, `"`...)
	return dst
}

// filterRaw performs GFM-style tag filtering
// (https://github.github.com/gfm/#disallowed-raw-html-extension-).
// It cannot use a conventional HTML parser since raw HTML in Markdown
// may be incomplete or start mid-tag.
func (r *renderState) filterRaw(rawHTML []byte) {
	const (
		copyState = iota
		commentState
		declState
		cdataState
	)
	const (
		cdataPrefix       = "<![CDATA["
		cdataSuffix       = "]]>"
		htmlCommentPrefix = "<!--"
		htmlCommentSuffix = "-->"
	)
	state := copyState
	copyStart := 0
	for i := 0; i < len(rawHTML); {
		switch state {
		case copyState:
			if rawHTML[i] == '<' {
				switch {
				case hasBytePrefix(rawHTML[i:], cdataPrefix):
					state = cdataState
					i += len(cdataPrefix)
				case hasBytePrefix(rawHTML[i:], htmlCommentPrefix):
					state = commentState
					i += len(htmlCommentPrefix)
				case i+2 < len(rawHTML) && rawHTML[i+1] == '!':
					state = declState
					i += 2
				default:
					tagNameStart := i + 1
					tagEnd := len(rawHTML)
					if j := indexByte(rawHTML[tagNameStart:], '>'); j >= 0 {
						tagEnd = tagNameStart + j + 1
					}
					tagNameEnd := tagNameStart + htmlTagNameEnd(rawHTML[tagNameStart:tagEnd])
					tagName := maybeLower(rawHTML[tagNameStart:tagNameEnd], &r.lowerBuf)
					if r.FilterTag(tagName) {
						r.dst = append(r.dst, rawHTML[copyStart:i]...)
						r.dst = append(r.dst, "&lt;"...)
						r.dst = append(r.dst, rawHTML[tagNameStart:tagEnd]...)
						copyStart = tagEnd
					}
					i = tagEnd
				}
			} else {
				i++
			}
		case commentState:
			if hasBytePrefix(rawHTML[i:], htmlCommentSuffix) {
				state = copyState
				i += len(htmlCommentSuffix)
			} else {
				i++
			}
		case declState:
			if rawHTML[i] == '>' {
				state = copyState
			}
			i++
		case cdataState:
			if hasBytePrefix(rawHTML[i:], cdataSuffix) {
				state = copyState
				i += len(cdataSuffix)
			} else {
				i++
			}
		}
	}
	r.dst = append(r.dst, rawHTML[copyStart:]...)
}

func hasBytePrefix(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && string(b[:len(prefix)]) == prefix
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

func htmlTagNameEnd(b []byte) int {
	i := 0
	if i < len(b) && b[i] == '/' {
		i++
	}
	for i < len(b) && b[i] != ' ' && b[i] != '\t' && b[i] != '\n' && b[i] != '>' && b[i] != '/' {
		i++
	}
	return i
}

func maybeLower(x []byte, buf *[]byte) []byte {
	hasUpper := false
	for _, b := range x {
		if 'A' <= b && b <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return x
	}
	*buf = (*buf)[:0]
	for _, b := range x {
		if 'A' <= b && b <= 'Z' {
			*buf = append(*buf, b-'A'+'a')
		} else {
			*buf = append(*buf, b)
		}
	}
	return *buf
}

// FilterTagGFM performs the same tag filtering as the GFM tagfilter
// extension. Suitable for use as HTMLRenderer.FilterTag.
func FilterTagGFM(tag []byte) bool {
	tagAtom := atom.Lookup(tag)
	return tagAtom == atom.Title ||
		tagAtom == atom.Textarea ||
		tagAtom == atom.Style ||
		tagAtom == atom.Xmp ||
		tagAtom == atom.Iframe ||
		tagAtom == atom.Noembed ||
		tagAtom == atom.Noframes ||
		tagAtom == atom.Script ||
		tagAtom == atom.Plaintext
}

// escapeHTML appends the HTML-escaped version of src to dst.
func escapeHTML(dst []byte, src []byte) []byte {
	verbatimStart := 0
	for i, b := range src {
		switch b {
		case '&':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&amp;"...)
			verbatimStart = i + 1
		case '\'':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&#39;"...)
			verbatimStart = i + 1
		case '<':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&lt;"...)
			verbatimStart = i + 1
		case '>':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&gt;"...)
			verbatimStart = i + 1
		case '"':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&quot;"...)
			verbatimStart = i + 1
		}
	}
	if verbatimStart < len(src) {
		dst = append(dst, src[verbatimStart:]...)
	}
	return dst
}

// NormalizeURI percent-encodes characters in s that are not reserved
// or unreserved URI characters, for use in href/src attributes.
func NormalizeURI(s string) string {
	const safeSet = `;/?:@&=+$,-_.!~*'()#`
	var sb strings.Builder
	sb.Grow(len(s))
	skip := 0
	var buf [utf8.UTFMax]byte
	for i, c := range s {
		if skip > 0 {
			skip--
			sb.WriteRune(c)
			continue
		}
		switch {
		case c == '%':
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				skip = 2
				sb.WriteByte('%')
			} else {
				sb.WriteString("%25")
			}
		case (c < 0x80 && (isASCIIAlpha(byte(c)) || isASCIIDigit(byte(c)))) || strings.ContainsRune(safeSet, c):
			sb.WriteRune(c)
		default:
			n := utf8.EncodeRune(buf[:], c)
			for _, b := range buf[:n] {
				sb.WriteByte('%')
				sb.WriteByte(urlHexDigit(b >> 4))
				sb.WriteByte(urlHexDigit(b & 0x0f))
			}
		}
	}
	return sb.String()
}

func isHex(c byte) bool {
	return 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F' || isASCIIDigit(c)
}

func urlHexDigit(x byte) byte {
	switch {
	case x < 0xa:
		return '0' + x
	default:
		return 'A' + x - 0xa
	}
}
