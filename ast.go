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

import "github.com/marcolang/marco/internal/fold"

// Inlines is an ordered sequence of inline nodes.
type Inlines = []*Inline

// A Block is a structural element of a Document: a heading,
// paragraph, list, code block, table, and so on.
//
// Block is a single struct with kind-specific fields, following the
// same "one struct, tagged by Kind" shape as RootBlock in the teacher
// repository, rather than one Go type per CommonMark construct: the
// tree is walked generically by [Walk] and kind-specific fields are
// only read once a caller has checked Kind().
type Block struct {
	kind BlockKind
	span Span

	// At most one of blockChildren or inlineChildren is populated,
	// except for TableKind, which uses tableHeader/tableRows instead
	// of either.
	blockChildren  []*Block
	inlineChildren []*Inline

	// raw holds the stage-1 placeholder text for inlineChildren
	// before stage 2 has run. It is nil once expansion has completed.
	raw *RawSlice

	// HeadingKind
	level int

	// ListKind
	listOrdered  bool
	listStart    uint64
	listHasStart bool
	listTight    bool

	// ListItemKind
	itemMarkerKind byte // '-', '+', '*', '.', or ')'
	itemTask       TaskState

	// FencedCodeBlockKind / IndentedCodeBlockKind
	codeLanguage string
	codeContent  string

	// HTMLBlockKind
	htmlContent string

	// AdmonitionKind
	admonitionKind  AdmonitionKindValue
	admonitionTitle []*Inline
	rawTitle        *RawSlice

	// MathBlockKind
	mathContent string

	// RunBlockKind
	runScriptType string
	runContent    string

	// LinkReferenceDefinitionKind
	refLabel        string
	refDestination  string
	refTitle        string
	refTitlePresent bool

	// TableKind
	tableAlignments []Alignment
	tableHeader     []Inlines
	tableRows       Inlines // flattened row-major cell wrappers; index with tableColumns
	tableColumns    int
	rawHeader       [][]RawSlice
	rawRows         [][]RawSlice
}

// RawSlice is the stage-1 placeholder for text awaiting inline
// expansion in stage 2.
type RawSlice struct {
	Text []byte
	Span Span
}

// Kind returns the type of block node, or zero if b is nil.
func (b *Block) Kind() BlockKind {
	if b == nil {
		return 0
	}
	return b.kind
}

// Span returns the node's position in the original source.
func (b *Block) Span() Span {
	if b == nil {
		return NullSpan()
	}
	return b.span
}

// ChildCount returns the number of children the node has.
func (b *Block) ChildCount() int {
	switch {
	case b == nil:
		return 0
	case len(b.blockChildren) > 0:
		return len(b.blockChildren)
	default:
		return len(b.inlineChildren)
	}
}

// Child returns the i'th child of the node.
func (b *Block) Child(i int) Node {
	if len(b.blockChildren) > 0 {
		return b.blockChildren[i].AsNode()
	}
	return b.inlineChildren[i].AsNode()
}

// Children returns the block's direct block children (for BlockQuote,
// List, ListItem, and the document root). Returns nil for kinds whose
// content is Inlines instead.
func (b *Block) Children() []*Block {
	if b == nil {
		return nil
	}
	return b.blockChildren
}

// Content returns the block's inline content (for Heading and
// Paragraph). Returns nil for other kinds.
func (b *Block) Content() Inlines {
	if b == nil {
		return nil
	}
	return b.inlineChildren
}

// HeadingLevel returns the 1-based heading level, or zero if b is not
// a HeadingKind block.
func (b *Block) HeadingLevel() int {
	if b.Kind() != HeadingKind {
		return 0
	}
	return b.level
}

// IsOrderedList reports whether the block is an ordered list or an
// item of one.
func (b *Block) IsOrderedList() bool {
	return b != nil && b.listOrdered
}

// ListStart returns the starting number of an ordered list and
// whether one was present in the source.
func (b *Block) ListStart() (start uint64, ok bool) {
	if b == nil || b.kind != ListKind {
		return 0, false
	}
	return b.listStart, b.listHasStart
}

// IsTightList reports whether a List or ListItem renders without
// paragraph wrapping (invariant I3).
func (b *Block) IsTightList() bool {
	return b != nil && (b.kind == ListKind || b.kind == ListItemKind) && b.listTight
}

// TaskState returns the checkbox state of a ListItemKind block.
func (b *Block) TaskState() TaskState {
	if b.Kind() != ListItemKind {
		return NoTask
	}
	return b.itemTask
}

// CodeLanguage returns the info-string-derived language of a fenced
// code block, or "" otherwise.
func (b *Block) CodeLanguage() string {
	if b == nil {
		return ""
	}
	return b.codeLanguage
}

// CodeContent returns the literal text of a code block.
func (b *Block) CodeContent() string {
	if b == nil {
		return ""
	}
	return b.codeContent
}

// HTMLContent returns the literal text of an HTMLBlockKind block.
func (b *Block) HTMLContent() string {
	if b == nil {
		return ""
	}
	return b.htmlContent
}

// AdmonitionKind returns the callout kind of an AdmonitionKind block.
func (b *Block) AdmonitionKind() AdmonitionKindValue {
	if b == nil {
		return ""
	}
	return b.admonitionKind
}

// AdmonitionTitle returns the optional title of an admonition.
func (b *Block) AdmonitionTitle() Inlines {
	if b == nil {
		return nil
	}
	return b.admonitionTitle
}

// MathContent returns the literal text of a MathBlockKind block.
func (b *Block) MathContent() string {
	if b == nil {
		return ""
	}
	return b.mathContent
}

// RunScriptType returns the shell/interpreter tag of a RunBlockKind block.
func (b *Block) RunScriptType() string {
	if b == nil {
		return ""
	}
	return b.runScriptType
}

// RunContent returns the literal command text of a RunBlockKind block.
func (b *Block) RunContent() string {
	if b == nil {
		return ""
	}
	return b.runContent
}

// ReferenceLabel returns the label of a LinkReferenceDefinitionKind block.
func (b *Block) ReferenceLabel() string {
	if b == nil {
		return ""
	}
	return b.refLabel
}

// ReferenceDestination returns the destination of a
// LinkReferenceDefinitionKind block.
func (b *Block) ReferenceDestination() string {
	if b == nil {
		return ""
	}
	return b.refDestination
}

// ReferenceTitle returns the title of a LinkReferenceDefinitionKind
// block and whether one was present.
func (b *Block) ReferenceTitle() (title string, ok bool) {
	if b == nil {
		return "", false
	}
	return b.refTitle, b.refTitlePresent
}

// TableAlignments returns the per-column alignment of a TableKind block.
func (b *Block) TableAlignments() []Alignment {
	if b == nil {
		return nil
	}
	return b.tableAlignments
}

// TableHeader returns the header row's cells.
func (b *Block) TableHeader() []Inlines {
	if b == nil {
		return nil
	}
	return b.tableHeader
}

// TableRowCount returns the number of data rows in a TableKind block.
func (b *Block) TableRowCount() int {
	if b == nil || b.tableColumns == 0 {
		return 0
	}
	return len(b.tableRows) / b.tableColumns
}

// TableRow returns the cells of the i'th data row.
func (b *Block) TableRow(i int) []Inlines {
	if b == nil || b.tableColumns == 0 {
		return nil
	}
	start := i * b.tableColumns
	row := make([]Inlines, b.tableColumns)
	for c, cell := range b.tableRows[start : start+b.tableColumns] {
		row[c] = cell.Children()
	}
	return row
}

func (b *Block) firstChild() Node {
	if b.ChildCount() == 0 {
		return Node{}
	}
	return b.Child(0)
}

func (b *Block) lastChild() Node {
	n := b.ChildCount()
	if n == 0 {
		return Node{}
	}
	return b.Child(n - 1)
}

func (b *Block) isOpen() bool {
	return b != nil && !b.span.End.IsValid()
}

// Inline represents a span-level construct: text, emphasis, a code
// span, a link, and so on.
type Inline struct {
	kind     InlineKind
	span     Span
	children []*Inline

	// TextKind / CodeSpanKind / HTMLInlineKind / MathInlineKind / RunInlineKind content
	text string

	// EmphasisKind
	delimiter byte // '*' or '_'
	strength  int  // 1, 2, or 3

	// LinkKind / ImageKind
	destination   string
	title         string
	titlePresent  bool
	referenceKind ReferenceKind

	// AutolinkKind
	autolinkKind AutolinkKindValue

	// EntityKind
	resolved string

	// FootnoteRefKind / UserMentionKind / BookmarkKind / PageTagKind / TocKind / DocRefKind
	label    string
	platform string
	display  string
	path     string
	line     int
	hasLine  bool
	depth    int

	// RunInlineKind
	scriptType string
}

// Kind returns the type of inline node, or zero if inline is nil.
func (inline *Inline) Kind() InlineKind {
	if inline == nil {
		return 0
	}
	return inline.kind
}

// Span returns the node's position in the original source.
func (inline *Inline) Span() Span {
	if inline == nil {
		return NullSpan()
	}
	return inline.span
}

// ChildCount returns the number of children the node has.
func (inline *Inline) ChildCount() int {
	if inline == nil {
		return 0
	}
	return len(inline.children)
}

// Child returns the i'th child of the node.
func (inline *Inline) Child(i int) *Inline {
	return inline.children[i]
}

// Children returns the node's children (emphasis/link text/image
// alt/extension content).
func (inline *Inline) Children() []*Inline {
	if inline == nil {
		return nil
	}
	return inline.children
}

// Text returns the literal content of a Text, Code, HtmlInline,
// MathInline, or RunInline node.
func (inline *Inline) Text() string {
	if inline == nil {
		return ""
	}
	return inline.text
}

// Delimiter returns the delimiter character of an Emphasis node.
func (inline *Inline) Delimiter() byte {
	if inline == nil {
		return 0
	}
	return inline.delimiter
}

// Strength returns the emphasis strength (1, 2, or 3) of an Emphasis node.
func (inline *Inline) Strength() int {
	if inline == nil {
		return 0
	}
	return inline.strength
}

// Destination returns the URL target of a Link or Image node.
func (inline *Inline) Destination() string {
	if inline == nil {
		return ""
	}
	return inline.destination
}

// Title returns the optional title of a Link or Image node.
func (inline *Inline) Title() (title string, ok bool) {
	if inline == nil {
		return "", false
	}
	return inline.title, inline.titlePresent
}

// ReferenceKind returns the surface form of a resolved Link node.
func (inline *Inline) ReferenceKind() ReferenceKind {
	if inline == nil {
		return 0
	}
	return inline.referenceKind
}

// AutolinkKind returns whether an Autolink node is a URI or email autolink.
func (inline *Inline) AutolinkKind() AutolinkKindValue {
	if inline == nil {
		return 0
	}
	return inline.autolinkKind
}

// Resolved returns the decoded text of an Entity node.
func (inline *Inline) Resolved() string {
	if inline == nil {
		return ""
	}
	return inline.resolved
}

// Label returns the label of a FootnoteRef, or the looked-up name of
// a UserMention, or the id of a Bookmark, or the doc id of a DocRef.
func (inline *Inline) Label() string {
	if inline == nil {
		return ""
	}
	return inline.label
}

// Platform returns the optional platform qualifier of a UserMention node.
func (inline *Inline) Platform() (platform string, ok bool) {
	if inline == nil {
		return "", false
	}
	return inline.platform, inline.platform != ""
}

// Display returns the optional display text of a UserMention node.
func (inline *Inline) Display() (display string, ok bool) {
	if inline == nil {
		return "", false
	}
	return inline.display, inline.display != ""
}

// Path returns the optional path qualifier of a Bookmark, Toc, or
// DocRef node.
func (inline *Inline) Path() (path string, ok bool) {
	if inline == nil {
		return "", false
	}
	return inline.path, inline.path != ""
}

// Line returns the optional line qualifier of a Bookmark node.
func (inline *Inline) Line() (line int, ok bool) {
	if inline == nil {
		return 0, false
	}
	return inline.line, inline.hasLine
}

// Depth returns the heading-depth argument of a Toc node.
func (inline *Inline) Depth() int {
	if inline == nil {
		return 0
	}
	return inline.depth
}

// ScriptType returns the shell/interpreter tag of a RunInline node.
func (inline *Inline) ScriptType() string {
	if inline == nil {
		return ""
	}
	return inline.scriptType
}

// Document is an ordered sequence of top-level blocks plus the
// reference-definition map gathered during stage 1. A Document is
// built once by [Parse] and is thereafter immutable; incremental
// reparse (see [Reparse]) produces a new Document rather than
// mutating an existing one.
type Document struct {
	Blocks      []*Block
	References  ReferenceMap
	Diagnostics []Diagnostic
	Source      []byte
	options     Options
}

// TopLevelBlocks returns a restartable slice of the document's
// top-level blocks.
func (d *Document) TopLevelBlocks() []*Block {
	if d == nil {
		return nil
	}
	return d.Blocks
}

// ResolveReference looks up label (after Unicode simple case-folding)
// in the document's reference-definition map (P6).
func (d *Document) ResolveReference(label string) (LinkDefinition, bool) {
	if d == nil {
		return LinkDefinition{}, false
	}
	def, ok := d.References[fold.Label(label)]
	return def, ok
}

// NodeAt returns the innermost node whose span contains offset,
// resolved by binary search on children at each level.
func (d *Document) NodeAt(offset int64) Node {
	if d == nil {
		return Node{}
	}
	idx := blockIndexForOffset(d.Blocks, offset)
	if idx < 0 {
		return Node{}
	}
	return descendToOffset(d.Blocks[idx].AsNode(), offset)
}

func blockIndexForOffset(blocks []*Block, offset int64) int {
	lo, hi := 0, len(blocks)
	for lo < hi {
		mid := (lo + hi) / 2
		b := blocks[mid]
		switch {
		case offset < b.span.Start.Offset:
			hi = mid
		case offset >= b.span.End.Offset:
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}

func descendToOffset(n Node, offset int64) Node {
	count := n.ChildCount()
	lo, hi := 0, count
	for lo < hi {
		mid := (lo + hi) / 2
		c := n.Child(mid)
		span := c.Span()
		switch {
		case offset < span.Start.Offset:
			hi = mid
		case offset >= span.End.Offset:
			lo = mid + 1
		default:
			return descendToOffset(c, offset)
		}
	}
	return n
}
