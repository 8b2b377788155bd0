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
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/marcolang/marco"
	"github.com/marcolang/marco/internal/fold"
)

// builtinScriptTypes lists the run-block/run-inline interpreter tags
// recognized without consulting a host-provided list; a host is free
// to offer a richer set through its own completion layer.
var builtinScriptTypes = []string{"sh", "bash", "zsh", "python", "node", "ruby"}

// Completion detects which of the six triggering contexts the cursor
// at offset sits in, by scanning backward from offset to the start of
// its line, and returns the matching candidates. It returns nil if
// offset does not sit in any recognized trigger context.
//
// Detection works on raw source text rather than the parsed tree,
// because the triggering syntax is by definition incomplete (a
// reference link whose closing "]" hasn't been typed yet, a fence
// whose info string is mid-word) and so has no corresponding AST
// node to look up.
func Completion(doc *marco.Document, offset int64, mentions MentionSource) []CompletionItem {
	source := doc.Source
	if offset < 0 || offset > int64(len(source)) {
		return nil
	}
	lineStart := offset
	for lineStart > 0 && source[lineStart-1] != '\n' {
		lineStart--
	}
	prefix := string(source[lineStart:offset])

	if partial, start, ok := detectRunTag(prefix); ok {
		return scriptTypeCandidates(partial, lineStart+int64(start), offset)
	}
	if partial, start, ok := detectAdmonitionOpener(prefix); ok {
		return admonitionCandidates(partial, lineStart+int64(start), offset)
	}
	if partial, start, ok := detectFenceInfoString(prefix); ok {
		return languageCandidates(partial, lineStart+int64(start), offset)
	}
	if partial, start, ok := detectFootnoteLabel(prefix); ok {
		return footnoteCandidates(doc, partial, lineStart+int64(start), offset)
	}
	if partial, start, ok := detectReferenceLabel(prefix); ok {
		return referenceCandidates(doc, partial, lineStart+int64(start), offset)
	}
	if partial, start, ok := detectUserMention(prefix); ok {
		return mentionCandidates(mentions, partial, lineStart+int64(start), offset)
	}
	return nil
}

func isLabelByte(c byte) bool {
	return c != ']' && c != '[' && c != '\n'
}

func isWordByte(c byte) bool {
	return c == '_' || c == '-' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// detectFootnoteLabel matches a trailing "[^partial" with no closing
// "]" yet typed.
func detectFootnoteLabel(prefix string) (partial string, start int, ok bool) {
	i := strings.LastIndex(prefix, "[^")
	if i < 0 {
		return "", 0, false
	}
	rest := prefix[i+2:]
	for j := 0; j < len(rest); j++ {
		if !isLabelByte(rest[j]) {
			return "", 0, false
		}
	}
	return rest, i + 2, true
}

// detectReferenceLabel matches a trailing "][partial", the open
// bracket of a full reference link whose link text has already
// closed.
func detectReferenceLabel(prefix string) (partial string, start int, ok bool) {
	i := strings.LastIndex(prefix, "][")
	if i < 0 {
		return "", 0, false
	}
	rest := prefix[i+2:]
	for j := 0; j < len(rest); j++ {
		if !isLabelByte(rest[j]) {
			return "", 0, false
		}
	}
	return rest, i + 2, true
}

// detectRunTag matches a trailing "run@partial" with no "(" typed
// yet, for either a run block (line starts the tag) or a run inline.
func detectRunTag(prefix string) (partial string, start int, ok bool) {
	i := strings.LastIndex(prefix, "run@")
	if i < 0 {
		return "", 0, false
	}
	rest := prefix[i+4:]
	for j := 0; j < len(rest); j++ {
		if !isWordByte(rest[j]) {
			return "", 0, false
		}
	}
	return rest, i + 4, true
}

// detectAdmonitionOpener matches a line consisting of only leading
// whitespace, ":::", and a partial admonition-kind word.
func detectAdmonitionOpener(prefix string) (partial string, start int, ok bool) {
	trimmed := strings.TrimLeft(prefix, " \t")
	if !strings.HasPrefix(trimmed, ":::") {
		return "", 0, false
	}
	rest := strings.TrimLeft(trimmed[3:], " ")
	for j := 0; j < len(rest); j++ {
		if !isWordByte(rest[j]) {
			return "", 0, false
		}
	}
	return rest, len(prefix) - len(rest), true
}

// detectFenceInfoString matches a line that opens a fenced code block
// (three or more backticks or tildes) followed by a partial language
// id, with nothing else on the line yet.
func detectFenceInfoString(prefix string) (partial string, start int, ok bool) {
	trimmed := strings.TrimLeft(prefix, " \t")
	var fence byte
	switch {
	case strings.HasPrefix(trimmed, "```"):
		fence = '`'
	case strings.HasPrefix(trimmed, "~~~"):
		fence = '~'
	default:
		return "", 0, false
	}
	i := 0
	for i < len(trimmed) && trimmed[i] == fence {
		i++
	}
	if i < 3 {
		return "", 0, false
	}
	rest := trimmed[i:]
	for j := 0; j < len(rest); j++ {
		if rest[j] == ' ' || rest[j] == '\t' {
			return "", 0, false
		}
	}
	return rest, len(prefix) - len(rest), true
}

// detectUserMention matches a trailing "@partial" sigil not preceded
// by a word character (so an email-local-part "@" doesn't trigger).
func detectUserMention(prefix string) (partial string, start int, ok bool) {
	i := strings.LastIndexByte(prefix, '@')
	if i < 0 {
		return "", 0, false
	}
	if i > 0 && isWordByte(prefix[i-1]) {
		return "", 0, false
	}
	rest := prefix[i+1:]
	for j := 0; j < len(rest); j++ {
		if !isWordByte(rest[j]) {
			return "", 0, false
		}
	}
	return rest, i + 1, true
}

func replaceSpan(start, end int64) marco.Span {
	return marco.Span{
		Start: marco.Position{Offset: start},
		End:   marco.Position{Offset: end},
	}
}

// filterPrefix matches case-insensitively: chroma's canonical lexer
// names are mixed-case ("Python", "JavaScript") while a typed fence
// info string is almost always lowercase.
func filterPrefix(candidates []string, partial string) []CompletionItem {
	var out []CompletionItem
	lowerPartial := strings.ToLower(partial)
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lowerPartial) {
			out = append(out, CompletionItem{Label: c})
		}
	}
	return out
}

func withSpans(items []CompletionItem, start, end int64, ctx CompletionContext) []CompletionItem {
	for i := range items {
		items[i].ReplaceSpan = replaceSpan(start, end)
		items[i].Context = ctx
	}
	return items
}

func languageCandidates(partial string, start, end int64) []CompletionItem {
	names := lexers.Names(false)
	sort.Strings(names)
	return withSpans(filterPrefix(names, strings.ToLower(partial)), start, end, CompletionLanguageID)
}

func scriptTypeCandidates(partial string, start, end int64) []CompletionItem {
	return withSpans(filterPrefix(builtinScriptTypes, strings.ToLower(partial)), start, end, CompletionScriptType)
}

func admonitionCandidates(partial string, start, end int64) []CompletionItem {
	kinds := []string{
		string(marco.AdmonitionNote), string(marco.AdmonitionTip),
		string(marco.AdmonitionWarning), string(marco.AdmonitionDanger),
		string(marco.AdmonitionInfo),
	}
	return withSpans(filterPrefix(kinds, strings.ToLower(partial)), start, end, CompletionAdmonitionKind)
}

func footnoteCandidates(doc *marco.Document, partial string, start, end int64) []CompletionItem {
	labels := collectFootnoteLabels(doc)
	return withSpans(filterPrefix(labels, partial), start, end, CompletionFootnoteLabel)
}

func referenceCandidates(doc *marco.Document, partial string, start, end int64) []CompletionItem {
	labels := collectReferenceLabels(doc)
	folded := fold.Label(partial)
	var out []CompletionItem
	for _, label := range labels {
		if strings.HasPrefix(fold.Label(label), folded) {
			out = append(out, CompletionItem{Label: label})
		}
	}
	return withSpans(out, start, end, CompletionReferenceLabel)
}

func mentionCandidates(mentions MentionSource, partial string, start, end int64) []CompletionItem {
	if mentions == nil {
		return nil
	}
	names := mentions.Mentions(partial)
	var out []CompletionItem
	for _, n := range names {
		out = append(out, CompletionItem{Label: n})
	}
	return withSpans(out, start, end, CompletionUserMention)
}

// collectReferenceLabels walks every block for a
// LinkReferenceDefinitionKind, returning labels in their original
// case: [marco.ReferenceMap] only retains the folded key, which isn't
// suitable to offer back to a user as an insertion candidate.
func collectReferenceLabels(doc *marco.Document) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func([]*marco.Block)
	walk = func(blocks []*marco.Block) {
		for _, b := range blocks {
			if b.Kind() == marco.LinkReferenceDefinitionKind {
				label := b.ReferenceLabel()
				if !seen[label] {
					seen[label] = true
					out = append(out, label)
				}
			}
			walk(b.Children())
		}
	}
	walk(doc.TopLevelBlocks())
	sort.Strings(out)
	return out
}

// collectFootnoteLabels walks every inline for a labeled FootnoteRef,
// returning the labels already in use across the document: this
// grammar has no standalone footnote-definition block, so a label
// already referenced elsewhere is the best completion source
// available.
func collectFootnoteLabels(doc *marco.Document) []string {
	seen := make(map[string]bool)
	var out []string
	var walkInlines func(marco.Inlines)
	walkInlines = func(in marco.Inlines) {
		for _, n := range in {
			if n.Kind() == marco.FootnoteRefKind && n.ChildCount() == 0 {
				label := n.Label()
				if label != "" && !seen[label] {
					seen[label] = true
					out = append(out, label)
				}
			}
			walkInlines(n.Children())
		}
	}
	var walkBlocks func([]*marco.Block)
	walkBlocks = func(blocks []*marco.Block) {
		for _, b := range blocks {
			walkInlines(b.Content())
			walkBlocks(b.Children())
		}
	}
	walkBlocks(doc.TopLevelBlocks())
	sort.Strings(out)
	return out
}
