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

import "testing"

func paraContent(t *testing.T, source string) Inlines {
	t.Helper()
	doc := mustParse(t, source)
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind() != ParagraphKind {
		t.Fatalf("Parse(%q).Blocks = %+v; want single paragraph", source, doc.Blocks)
	}
	return doc.Blocks[0].Content()
}

func TestCodeSpan(t *testing.T) {
	content := paraContent(t, "Use `fmt.Println`.\n")
	if len(content) != 3 {
		t.Fatalf("len(content) = %d; want 3", len(content))
	}
	if content[1].Kind() != CodeSpanKind {
		t.Fatalf("content[1].Kind() = %v; want %v", content[1].Kind(), CodeSpanKind)
	}
	if content[1].Text() != "fmt.Println" {
		t.Errorf("content[1].Text() = %q; want %q", content[1].Text(), "fmt.Println")
	}
}

func TestStrikethroughAndSubscript(t *testing.T) {
	content := paraContent(t, "~~gone~~ and H~2~O\n")
	if content[0].Kind() != StrikethroughKind {
		t.Fatalf("content[0].Kind() = %v; want %v", content[0].Kind(), StrikethroughKind)
	}
	var sawSubscript bool
	for _, n := range content {
		if n.Kind() == SubscriptKind {
			sawSubscript = true
		}
	}
	if !sawSubscript {
		t.Errorf("content = %+v; want a SubscriptKind node", content)
	}
}

func TestHighlightAndSuperscript(t *testing.T) {
	content := paraContent(t, "==important== and x^2^\n")
	if content[0].Kind() != HighlightKind {
		t.Fatalf("content[0].Kind() = %v; want %v", content[0].Kind(), HighlightKind)
	}
	var sawSuperscript bool
	for _, n := range content {
		if n.Kind() == SuperscriptKind {
			sawSuperscript = true
		}
	}
	if !sawSuperscript {
		t.Errorf("content = %+v; want a SuperscriptKind node", content)
	}
}

func TestInlineLink(t *testing.T) {
	content := paraContent(t, "[text](/dest \"title\")\n")
	if len(content) != 1 || content[0].Kind() != LinkKind {
		t.Fatalf("content = %+v; want single Link", content)
	}
	link := content[0]
	if link.Destination() != "/dest" {
		t.Errorf("Destination() = %q; want %q", link.Destination(), "/dest")
	}
	title, ok := link.Title()
	if !ok || title != "title" {
		t.Errorf("Title() = (%q, %v); want (%q, true)", title, ok, "title")
	}
}

func TestReferenceLink(t *testing.T) {
	doc := mustParse(t, "[text][ref]\n\n[ref]: /dest\n")
	if len(doc.Blocks) != 2 || doc.Blocks[0].Kind() != ParagraphKind {
		t.Fatalf("Blocks = %+v; want paragraph then link-reference-definition", doc.Blocks)
	}
	content := doc.Blocks[0].Content()
	if len(content) != 1 || content[0].Kind() != LinkKind {
		t.Fatalf("content = %+v; want single Link", content)
	}
	if got := content[0].Destination(); got != "/dest" {
		t.Errorf("Destination() = %q; want %q", got, "/dest")
	}
}

func TestAutolink(t *testing.T) {
	content := paraContent(t, "<https://example.com>\n")
	if len(content) != 1 || content[0].Kind() != AutolinkKind {
		t.Fatalf("content = %+v; want single Autolink", content)
	}
	if got := content[0].Destination(); got != "https://example.com" {
		t.Errorf("Destination() = %q; want %q", got, "https://example.com")
	}
}

func TestEntity(t *testing.T) {
	content := paraContent(t, "AT&amp;T\n")
	var found bool
	for _, n := range content {
		if n.Kind() == EntityKind && n.Resolved() == "&" {
			found = true
		}
	}
	if !found {
		t.Errorf("content = %+v; want an EntityKind resolving to &", content)
	}
}

func TestMathInline(t *testing.T) {
	content := paraContent(t, "Energy is $E=mc^2$.\n")
	var found bool
	for _, n := range content {
		if n.Kind() == MathInlineKind && n.Text() == "E=mc^2" {
			found = true
		}
	}
	if !found {
		t.Errorf("content = %+v; want a MathInlineKind node with text %q", content, "E=mc^2")
	}
}

func TestUserMention(t *testing.T) {
	content := paraContent(t, "cc @octocat\n")
	var found *Inline
	for _, n := range content {
		if n.Kind() == UserMentionKind {
			found = n
		}
	}
	if found == nil {
		t.Fatalf("content = %+v; want a UserMentionKind node", content)
	}
	if found.Label() != "octocat" {
		t.Errorf("Label() = %q; want %q", found.Label(), "octocat")
	}
}

func TestFootnoteReference(t *testing.T) {
	content := paraContent(t, "Noted[^1].\n")
	var found *Inline
	for _, n := range content {
		if n.Kind() == FootnoteRefKind {
			found = n
		}
	}
	if found == nil {
		t.Fatalf("content = %+v; want a FootnoteRefKind node", content)
	}
	if found.Label() != "1" {
		t.Errorf("Label() = %q; want %q", found.Label(), "1")
	}
	if found.ChildCount() != 0 {
		t.Errorf("ChildCount() = %d; want 0", found.ChildCount())
	}
}

func TestInlineFootnoteBody(t *testing.T) {
	content := paraContent(t, "Noted^[a *nested* note].\n")
	var found *Inline
	for _, n := range content {
		if n.Kind() == FootnoteRefKind {
			found = n
		}
	}
	if found == nil {
		t.Fatalf("content = %+v; want a FootnoteRefKind node", content)
	}
	if found.ChildCount() == 0 {
		t.Fatal("ChildCount() = 0; want an expanded inline footnote body")
	}
	var sawEmphasis bool
	for _, c := range found.Children() {
		if c.Kind() == EmphasisKind {
			sawEmphasis = true
		}
	}
	if !sawEmphasis {
		t.Errorf("Children() = %+v; want a nested EmphasisKind", found.Children())
	}
}

func TestBookmark(t *testing.T) {
	content := paraContent(t, "See [bookmark:intro](guide.md=12).\n")
	var found *Inline
	for _, n := range content {
		if n.Kind() == BookmarkKind {
			found = n
		}
	}
	if found == nil {
		t.Fatalf("content = %+v; want a BookmarkKind node", content)
	}
	if found.Label() != "intro" {
		t.Errorf("Label() = %q; want %q", found.Label(), "intro")
	}
	path, ok := found.Path()
	if !ok || path != "guide.md" {
		t.Errorf("Path() = (%q, %v); want (%q, true)", path, ok, "guide.md")
	}
	line, ok := found.Line()
	if !ok || line != 12 {
		t.Errorf("Line() = (%d, %v); want (12, true)", line, ok)
	}
}

func TestPageTag(t *testing.T) {
	content := paraContent(t, "Jump to [page=appendix].\n")
	var found *Inline
	for _, n := range content {
		if n.Kind() == PageTagKind {
			found = n
		}
	}
	if found == nil {
		t.Fatalf("content = %+v; want a PageTagKind node", content)
	}
	if found.Label() != "appendix" {
		t.Errorf("Label() = %q; want %q", found.Label(), "appendix")
	}
	path, ok := found.Path()
	if !ok || path != "appendix" {
		t.Errorf("Path() = (%q, %v); want (%q, true)", path, ok, "appendix")
	}
}

func TestToc(t *testing.T) {
	content := paraContent(t, "[toc=2](@guide)\n")
	if len(content) != 1 || content[0].Kind() != TocKind {
		t.Fatalf("content = %+v; want single TocKind", content)
	}
	if got := content[0].Depth(); got != 2 {
		t.Errorf("Depth() = %d; want 2", got)
	}
	path, ok := content[0].Path()
	if !ok || path != "@guide" {
		t.Errorf("Path() = (%q, %v); want (%q, true)", path, ok, "@guide")
	}
}

func TestDocRef(t *testing.T) {
	content := paraContent(t, "See [@onboarding](team/onboarding.md).\n")
	var found *Inline
	for _, n := range content {
		if n.Kind() == DocRefKind {
			found = n
		}
	}
	if found == nil {
		t.Fatalf("content = %+v; want a DocRefKind node", content)
	}
	if found.Label() != "onboarding" {
		t.Errorf("Label() = %q; want %q", found.Label(), "onboarding")
	}
	path, ok := found.Path()
	if !ok || path != "team/onboarding.md" {
		t.Errorf("Path() = (%q, %v); want (%q, true)", path, ok, "team/onboarding.md")
	}
}

func TestRunInline(t *testing.T) {
	content := paraContent(t, "Run run@sh(echo hi) inline.\n")
	var found *Inline
	for _, n := range content {
		if n.Kind() == RunInlineKind {
			found = n
		}
	}
	if found == nil {
		t.Fatalf("content = %+v; want a RunInlineKind node", content)
	}
	if found.ScriptType() != "sh" {
		t.Errorf("ScriptType() = %q; want %q", found.ScriptType(), "sh")
	}
	if found.Text() != "echo hi" {
		t.Errorf("Text() = %q; want %q", found.Text(), "echo hi")
	}
}

func TestExtensionDisabledFallsBackToText(t *testing.T) {
	opts := DefaultOptions()
	opts.Extensions = map[Extension]bool{} // disable everything
	doc, err := Parse([]byte("Noted[^1] and cc @octo.\n"), &opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range doc.Blocks[0].Content() {
		if n.Kind() == FootnoteRefKind || n.Kind() == UserMentionKind {
			t.Errorf("content = %+v; extensions disabled, want no extension nodes", doc.Blocks[0].Content())
		}
	}
}
