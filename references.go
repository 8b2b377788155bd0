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

// A ReferenceMatcher can be checked for the presence of link
// reference definitions, independent of how the definitions are
// stored.
type ReferenceMatcher interface {
	MatchReference(foldedLabel string) bool
}

// LinkDefinition is the resolved data of a link reference definition:
// `[label]: destination "title"`.
type LinkDefinition struct {
	Destination  string
	Title        string
	TitlePresent bool

	// Span is the source range of the defining block, used by hover
	// and go-to-definition style LSP queries.
	Span Span
}

// ReferenceMap maps folded labels (see [fold.Label]) to their
// definitions, gathered once per Document during stage 1 before any
// inline parsing begins (the two-pass ordering guarantee).
type ReferenceMap map[string]LinkDefinition

// MatchReference reports whether foldedLabel appears in the map. The
// argument must already be folded; callers resolving a raw label
// should use [Document.ResolveReference] instead.
func (m ReferenceMap) MatchReference(foldedLabel string) bool {
	_, ok := m[foldedLabel]
	return ok
}

// extractReferences collects all LinkReferenceDefinitionKind blocks
// reachable from blocks into a ReferenceMap, folding labels for
// case-insensitive matching (P6). The first definition of a given
// label wins; later duplicates produce a duplicate-reference
// diagnostic instead of replacing it.
func extractReferences(blocks []*Block) (ReferenceMap, []Diagnostic) {
	m := make(ReferenceMap)
	var diags []Diagnostic
	var walk func([]*Block)
	walk = func(bs []*Block) {
		for _, b := range bs {
			if b.Kind() == LinkReferenceDefinitionKind {
				label := fold.Label(b.ReferenceLabel())
				if label == "" {
					continue
				}
				if _, exists := m[label]; exists {
					diags = append(diags, newDiagnostic(
						CodeDuplicateReference, SeverityWarning, b.Span(),
						"duplicate link reference definition for label %q", b.ReferenceLabel(),
					))
					continue
				}
				title, titlePresent := b.ReferenceTitle()
				m[label] = LinkDefinition{
					Destination:  b.ReferenceDestination(),
					Title:        title,
					TitlePresent: titlePresent,
					Span:         b.Span(),
				}
				continue
			}
			if children := b.Children(); children != nil {
				walk(children)
			}
		}
	}
	walk(blocks)
	return m, diags
}
