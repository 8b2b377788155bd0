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
	"errors"
	"testing"
)

func TestParseSimpleParagraph(t *testing.T) {
	doc, err := Parse([]byte("Hello *world*.\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("len(Blocks) = %d; want 1", len(doc.Blocks))
	}
	p := doc.Blocks[0]
	if p.Kind() != ParagraphKind {
		t.Fatalf("Blocks[0].Kind() = %v; want %v", p.Kind(), ParagraphKind)
	}
	content := p.Content()
	if len(content) != 3 {
		t.Fatalf("len(Content()) = %d; want 3 (text, emphasis, text)", len(content))
	}
	if content[1].Kind() != EmphasisKind {
		t.Errorf("Content()[1].Kind() = %v; want %v", content[1].Kind(), EmphasisKind)
	}
}

func TestParseFillsLineColumn(t *testing.T) {
	doc, err := Parse([]byte("one\n\ntwo\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d; want 2", len(doc.Blocks))
	}
	second := doc.Blocks[1].Span()
	if second.Start.Line != 3 || second.Start.Column != 1 {
		t.Errorf("Blocks[1].Span().Start = %v; want 3:1", second.Start)
	}
}

func TestParseNilOptionsUsesDefaults(t *testing.T) {
	doc, err := Parse([]byte("# Title\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind() != HeadingKind {
		t.Fatalf("expected a single heading block, got %+v", doc.Blocks)
	}
}

func TestParseCancelled(t *testing.T) {
	token := NewCancelToken()
	token.Cancel()

	doc, err := Parse([]byte("some text\n\nmore text\n"), nil, WithCancel(token))
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v; want ErrCancelled", err)
	}
	if doc != nil {
		t.Errorf("doc = %v; want nil", doc)
	}
}

func TestParseInvalidUTF8ProducesDiagnostic(t *testing.T) {
	doc, err := Parse([]byte("Hello,\x00World\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, d := range doc.Diagnostics {
		if d.Code == CodeInvalidUTF8 {
			found = true
			if !d.Span.IsValid() {
				t.Error("diagnostic span is invalid")
			}
		}
	}
	if !found {
		t.Errorf("Diagnostics = %v; want a %v entry", doc.Diagnostics, CodeInvalidUTF8)
	}
}

func TestParseUndefinedReferenceDiagnostic(t *testing.T) {
	doc, err := Parse([]byte("See [missing][nope].\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, d := range doc.Diagnostics {
		if d.Code == CodeUndefinedReference {
			found = true
		}
	}
	if !found {
		t.Fatalf("Diagnostics = %v; want a %v entry", doc.Diagnostics, CodeUndefinedReference)
	}
}
