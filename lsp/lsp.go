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

// Package lsp derives editor-facing views (highlights, hover text,
// completion candidates, diagnostics) from a [marco.Document]. Every
// function here is a pure function of its Document argument: none of
// them mutate the Document or retain it past the call.
package lsp

import "github.com/marcolang/marco"

// TokenClass identifies a highlighted span's semantic category.
// Namespace is one of the token namespaces listed below; Modifiers is
// an optional refinement of it. [Highlights] reports strong emphasis
// under its own [NSStrong] namespace and leaves Modifiers empty.
type TokenClass struct {
	Namespace string
	Modifiers []string
}

// Highlight pairs a source span with the token class an editor should
// use to color it.
type Highlight struct {
	Span  marco.Span
	Class TokenClass
}

// Token namespaces produced by [Highlights].
const (
	NSHeading         = "heading"
	NSEmphasis        = "emphasis"
	NSStrong          = "strong"
	NSCode            = "code"
	NSCodeFence       = "code_fence"
	NSLinkText        = "link_text"
	NSLinkURL         = "link_url"
	NSListMarker      = "list_marker"
	NSQuoteMarker     = "quote_marker"
	NSThematicBreak   = "thematic_break"
	NSHTML            = "html"
	NSMath            = "math"
	NSExtensionTag    = "extension_tag"
	NSDiagnosticRange = "diagnostic_range"
)

// HoverKind distinguishes the shape of a [HoverResult].
type HoverKind uint8

const (
	// HoverGeneric carries only Kind and Text: the node's kind name
	// and its literal source text.
	HoverGeneric HoverKind = 1 + iota
	// HoverLink carries Destination and optional Title, for a Link or
	// Image node, or a resolved reference.
	HoverLink
	// HoverFootnote carries a footnote's Text: the source text of an
	// inline footnote body, or the bare label of a reference footnote.
	HoverFootnote
)

// HoverResult is the information [Hover] returns for the node found
// at a queried offset.
type HoverResult struct {
	Span         marco.Span
	Kind         HoverKind
	NodeKind     string
	Text         string
	Destination  string
	Title        string
	TitlePresent bool
}

// CompletionContext names which of the six triggering contexts a
// [Completion] query landed in.
type CompletionContext uint8

const (
	_ CompletionContext = iota
	// CompletionReferenceLabel triggers inside an unresolved "[...][ "
	// reference-link bracket.
	CompletionReferenceLabel
	// CompletionFootnoteLabel triggers inside a "[^" footnote prefix.
	CompletionFootnoteLabel
	// CompletionLanguageID triggers inside a fenced code block's info
	// string.
	CompletionLanguageID
	// CompletionAdmonitionKind triggers inside a ":::" opener.
	CompletionAdmonitionKind
	// CompletionScriptType triggers inside a run block/inline's
	// "run@<shell>" tag.
	CompletionScriptType
	// CompletionUserMention triggers after an "@" sigil; candidates
	// come from the injected [MentionSource].
	CompletionUserMention
)

// CompletionItem is one candidate suggestion: Label is the text to
// insert, ReplaceSpan is the source range it replaces (possibly
// empty, for a pure insertion at the query offset).
type CompletionItem struct {
	Label       string
	ReplaceSpan marco.Span
	Context     CompletionContext
}

// MentionSource supplies user-mention candidates for [Completion];
// hosts inject their own directory lookup (organization roster, chat
// membership, and so on). Implementations must not block.
type MentionSource interface {
	Mentions(prefix string) []string
}
