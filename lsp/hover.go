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

import "github.com/marcolang/marco"

// Hover finds the innermost node whose span contains offset and
// describes it: a Link or Image node reports its destination and
// title directly (stage 2 already resolved these against the
// Document's reference map before building the node, for every
// ReferenceKind); a FootnoteRef node reports its inline definition
// body when it has one, or its bare label otherwise, since this
// grammar only has an inline footnote-body form; every other node
// reports its kind name and literal source text.
//
// The second return value is false if offset lies outside every node
// (an empty Document, or an offset past the end of source).
func Hover(doc *marco.Document, offset int64) (HoverResult, bool) {
	node := doc.NodeAt(offset)
	if node == (marco.Node{}) {
		return HoverResult{}, false
	}

	if b := node.Block(); b != nil {
		if b.Kind() == marco.LinkReferenceDefinitionKind {
			title, ok := b.ReferenceTitle()
			return HoverResult{
				Span:         b.Span(),
				Kind:         HoverLink,
				NodeKind:     b.Kind().String(),
				Destination:  b.ReferenceDestination(),
				Title:        title,
				TitlePresent: ok,
			}, true
		}
		return HoverResult{
			Span:     b.Span(),
			Kind:     HoverGeneric,
			NodeKind: b.Kind().String(),
			Text:     string(b.Span().Slice(doc.Source)),
		}, true
	}

	in := node.Inline()
	switch in.Kind() {
	case marco.LinkKind, marco.ImageKind:
		// Stage 2 already resolves a reference-style link against the
		// Document's ReferenceMap before constructing the node, so
		// Destination/Title are the final answer regardless of
		// ReferenceKind; there is nothing left to look up here.
		title, titlePresent := "", false
		if t, ok := in.Title(); ok {
			title, titlePresent = t, true
		}
		return HoverResult{
			Span:         in.Span(),
			Kind:         HoverLink,
			NodeKind:     in.Kind().String(),
			Destination:  in.Destination(),
			Title:        title,
			TitlePresent: titlePresent,
		}, true
	case marco.FootnoteRefKind:
		if in.ChildCount() > 0 {
			return HoverResult{
				Span:     in.Span(),
				Kind:     HoverFootnote,
				NodeKind: in.Kind().String(),
				Text:     string(in.Span().Slice(doc.Source)),
			}, true
		}
		return HoverResult{
			Span:     in.Span(),
			Kind:     HoverFootnote,
			NodeKind: in.Kind().String(),
			Text:     in.Label(),
		}, true
	default:
		return HoverResult{
			Span:     in.Span(),
			Kind:     HoverGeneric,
			NodeKind: in.Kind().String(),
			Text:     string(in.Span().Slice(doc.Source)),
		}, true
	}
}
