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

//go:generate stringer -type=BlockKind,InlineKind -output=kind_string.go

// BlockKind is an enumeration of values returned by [*Block.Kind].
type BlockKind uint16

const (
	HeadingKind BlockKind = 1 + iota
	ParagraphKind
	BlockQuoteKind
	ListKind
	ListItemKind
	FencedCodeBlockKind
	IndentedCodeBlockKind
	TableKind
	ThematicBreakKind
	HTMLBlockKind
	AdmonitionKind
	MathBlockKind
	RunBlockKind
	LinkReferenceDefinitionKind

	documentKind
)

// IsCode reports whether the kind is [FencedCodeBlockKind] or [IndentedCodeBlockKind].
func (k BlockKind) IsCode() bool {
	return k == FencedCodeBlockKind || k == IndentedCodeBlockKind
}

// InlineKind is an enumeration of values returned by [*Inline.Kind].
type InlineKind uint16

const (
	TextKind InlineKind = 1 + iota
	SoftBreakKind
	HardBreakKind
	EmphasisKind
	CodeSpanKind
	LinkKind
	ImageKind
	AutolinkKind
	HTMLInlineKind
	MathInlineKind
	EntityKind
	StrikethroughKind
	HighlightKind
	SuperscriptKind
	SubscriptKind
	FootnoteRefKind
	UserMentionKind
	BookmarkKind
	PageTagKind
	TocKind
	DocRefKind
	RunInlineKind

	// UnparsedKind is used for inline text that has not yet been
	// expanded by stage 2; it is never present in a finished Document.
	UnparsedKind
)

var blockKindNames = map[BlockKind]string{
	HeadingKind:                 "Heading",
	ParagraphKind:               "Paragraph",
	BlockQuoteKind:              "BlockQuote",
	ListKind:                    "List",
	ListItemKind:                "ListItem",
	FencedCodeBlockKind:         "FencedCodeBlock",
	IndentedCodeBlockKind:       "IndentedCodeBlock",
	TableKind:                   "Table",
	ThematicBreakKind:           "ThematicBreak",
	HTMLBlockKind:               "HTMLBlock",
	AdmonitionKind:              "Admonition",
	MathBlockKind:               "MathBlock",
	RunBlockKind:                "RunBlock",
	LinkReferenceDefinitionKind: "LinkReferenceDefinition",
	documentKind:                "document",
}

func (k BlockKind) String() string {
	if s, ok := blockKindNames[k]; ok {
		return s
	}
	return "BlockKind(0)"
}

var inlineKindNames = map[InlineKind]string{
	TextKind:          "Text",
	SoftBreakKind:     "SoftBreak",
	HardBreakKind:     "HardBreak",
	EmphasisKind:      "Emphasis",
	CodeSpanKind:      "CodeSpan",
	LinkKind:          "Link",
	ImageKind:         "Image",
	AutolinkKind:      "Autolink",
	HTMLInlineKind:    "HTMLInline",
	MathInlineKind:    "MathInline",
	EntityKind:        "Entity",
	StrikethroughKind: "Strikethrough",
	HighlightKind:     "Highlight",
	SuperscriptKind:   "Superscript",
	SubscriptKind:     "Subscript",
	FootnoteRefKind:   "FootnoteRef",
	UserMentionKind:   "UserMention",
	BookmarkKind:      "Bookmark",
	PageTagKind:       "PageTag",
	TocKind:           "Toc",
	DocRefKind:        "DocRef",
	RunInlineKind:     "RunInline",
	UnparsedKind:      "Unparsed",
}

func (k InlineKind) String() string {
	if s, ok := inlineKindNames[k]; ok {
		return s
	}
	return "InlineKind(0)"
}

// ReferenceKind distinguishes the four surface forms a resolved [Link]
// or collapsed/shortcut reference can take.
type ReferenceKind uint8

const (
	InlineReference ReferenceKind = 1 + iota
	FullReference
	CollapsedReference
	ShortcutReference
)

// Alignment is a table column's alignment, as set by the separator row.
type Alignment uint8

const (
	DefaultAlignment Alignment = iota
	LeftAlignment
	CenterAlignment
	RightAlignment
)

// TaskState is the checkbox state of a task-list item.
type TaskState uint8

const (
	NoTask TaskState = iota
	TaskUnchecked
	TaskChecked
)

// AdmonitionKindValue names a recognized admonition callout kind.
type AdmonitionKindValue string

const (
	AdmonitionNote    AdmonitionKindValue = "note"
	AdmonitionTip     AdmonitionKindValue = "tip"
	AdmonitionWarning AdmonitionKindValue = "warning"
	AdmonitionDanger  AdmonitionKindValue = "danger"
	AdmonitionInfo    AdmonitionKindValue = "info"
)

// AutolinkKindValue distinguishes a URI autolink from an email autolink.
type AutolinkKindValue uint8

const (
	URIAutolink AutolinkKindValue = 1 + iota
	EmailAutolink
)
