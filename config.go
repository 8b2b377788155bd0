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

// Extension names a togglable grammar feature beyond bare CommonMark.
type Extension string

// Recognized extensions. All are enabled by default in [DefaultOptions].
const (
	ExtTables           Extension = "tables"
	ExtStrikethrough    Extension = "strikethrough"
	ExtHighlight        Extension = "highlight"
	ExtSuperscript      Extension = "superscript"
	ExtSubscript        Extension = "subscript"
	ExtFootnotes        Extension = "footnotes"
	ExtMath             Extension = "math"
	ExtAdmonitions      Extension = "admonitions"
	ExtUserMentions     Extension = "user_mentions"
	ExtBookmarks        Extension = "bookmarks"
	ExtPageTags         Extension = "page_tags"
	ExtToc              Extension = "toc"
	ExtDocRefs          Extension = "doc_refs"
	ExtRunBlocks        Extension = "run_blocks"
	ExtDefinitionLists  Extension = "definition_lists"
	ExtAutolink         Extension = "autolink"
)

var allExtensions = []Extension{
	ExtTables, ExtStrikethrough, ExtHighlight, ExtSuperscript, ExtSubscript,
	ExtFootnotes, ExtMath, ExtAdmonitions, ExtUserMentions, ExtBookmarks,
	ExtPageTags, ExtToc, ExtDocRefs, ExtRunBlocks, ExtDefinitionLists,
	ExtAutolink,
}

// HeadingIDScheme controls how the renderer assigns automatic heading ids.
type HeadingIDScheme string

const (
	HeadingIDNone    HeadingIDScheme = "none"
	HeadingIDGitHub  HeadingIDScheme = "github"
	HeadingIDNumeric HeadingIDScheme = "numeric"
)

// CodeHighlighter renders a fenced code block's language and content
// as pre-styled HTML, or returns ok == false to fall back to
// escaped, verbatim output.
type CodeHighlighter func(languageID, code string) (html string, ok bool)

// LinkRewriter rewrites a destination URL before it is emitted, e.g.
// to rebase relative links.
type LinkRewriter func(destination string) string

// Options controls both grammar behavior (stage 1/2) and HTML
// rendering. The zero Options is not valid; use [DefaultOptions] and
// override individual fields.
type Options struct {
	// Extensions is the set of enabled extensions beyond bare
	// CommonMark. A nil map is treated as "all extensions enabled";
	// to disable everything, use an empty non-nil map.
	Extensions map[Extension]bool

	// MaxNestingDepth bounds block container nesting (I/P robustness
	// against pathological input); inline delimiter nesting is not
	// limited by it. Must be positive.
	MaxNestingDepth int

	// TabWidth is the column width of a tab character for indentation
	// purposes, in the range [1, 16].
	TabWidth int

	// AllowRawHTML permits raw HTML blocks/inlines to pass through
	// the renderer unescaped.
	AllowRawHTML bool

	// HardBreakAsBR maps HardBreak to <br/> instead of a literal newline.
	HardBreakAsBR bool

	// HeadingIDScheme controls automatic heading id generation.
	HeadingIDScheme HeadingIDScheme

	// CodeHighlight is consulted for every fenced code block; nil means
	// always escape verbatim.
	CodeHighlight CodeHighlighter

	// LinkRewriter is applied to every emitted URL; nil means identity.
	LinkRewriter LinkRewriter
}

// DefaultOptions returns the default configuration: all extensions
// enabled, max nesting depth 100, tab width 4, raw HTML and hard
// breaks as <br/> both on, and GitHub-style heading ids.
func DefaultOptions() Options {
	return Options{
		Extensions:      nil,
		MaxNestingDepth: 100,
		TabWidth:        4,
		AllowRawHTML:    true,
		HardBreakAsBR:   true,
		HeadingIDScheme: HeadingIDGitHub,
	}
}

// Enabled reports whether ext is enabled under these options.
func (o *Options) Enabled(ext Extension) bool {
	if o.Extensions == nil {
		return true
	}
	return o.Extensions[ext]
}

func (o *Options) normalize() Options {
	n := *o
	if n.MaxNestingDepth <= 0 {
		n.MaxNestingDepth = 100
	}
	if n.TabWidth <= 0 || n.TabWidth > 16 {
		n.TabWidth = 4
	}
	return n
}
