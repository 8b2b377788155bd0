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
	"bytes"
	"strings"
	"testing"
)

func renderToString(t *testing.T, source string) string {
	t.Helper()
	doc := mustParse(t, source)
	var buf bytes.Buffer
	if err := RenderHTML(&buf, doc); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	return buf.String()
}

func TestRenderParagraphAndEmphasis(t *testing.T) {
	got := renderToString(t, "Hello *world*.\n")
	if !strings.Contains(got, "<p>Hello <em>world</em>.</p>") {
		t.Errorf("render = %q; want a <p> with <em>world</em>", got)
	}
}

func TestRenderHeadingID(t *testing.T) {
	got := renderToString(t, "# Hello World\n")
	if !strings.Contains(got, `id="hello-world"`) {
		t.Errorf("render = %q; want a github-style heading id", got)
	}
}

func TestRenderCodeBlockEscapesHTML(t *testing.T) {
	got := renderToString(t, "```\n<script>\n```\n")
	if strings.Contains(got, "<script>") {
		t.Errorf("render = %q; fenced code content must be escaped", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("render = %q; want escaped script tag", got)
	}
}

func TestRenderTable(t *testing.T) {
	got := renderToString(t, "| a | b |\n| :- | -: |\n| 1 | 2 |\n")
	for _, want := range []string{"<table>", "<thead>", "<tbody>", `text-align:left`, `text-align:right`} {
		if !strings.Contains(got, want) {
			t.Errorf("render = %q; want substring %q", got, want)
		}
	}
}

func TestRenderAdmonition(t *testing.T) {
	got := renderToString(t, ":::tip\nPro tip.\n:::\n")
	if !strings.Contains(got, `class="admonition admonition-tip"`) {
		t.Errorf("render = %q; want admonition-tip class", got)
	}
}

func TestRenderFootnoteRef(t *testing.T) {
	got := renderToString(t, "Noted[^1].\n")
	if !strings.Contains(got, `href="#fn-1"`) {
		t.Errorf("render = %q; want a footnote-ref anchor", got)
	}
}

func TestRenderInlineFootnoteBody(t *testing.T) {
	got := renderToString(t, "Noted^[a side note].\n")
	if !strings.Contains(got, `class="footnote-ref footnote-inline"`) {
		t.Errorf("render = %q; want an inline footnote body span", got)
	}
	if !strings.Contains(got, "a side note") {
		t.Errorf("render = %q; want the footnote body text rendered", got)
	}
	if strings.Contains(got, `href="#fn-"`) {
		t.Errorf("render = %q; must not emit an empty footnote anchor for an inline body", got)
	}
}

func TestRenderRunBlock(t *testing.T) {
	got := renderToString(t, "```run@sh\necho hi\n```\n")
	if !strings.Contains(got, `data-run="sh"`) {
		t.Errorf("render = %q; want a run-block marker", got)
	}
}

func TestRenderLinkRewriter(t *testing.T) {
	doc := mustParse(t, "[text](/old)\n")
	opts := DefaultOptions()
	opts.LinkRewriter = func(dest string) string {
		return strings.Replace(dest, "/old", "/new", 1)
	}
	renderer := &HTMLRenderer{Options: &opts}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `href="/new"`) {
		t.Errorf("render = %q; want rewritten link /new", buf.String())
	}
}

func TestRenderDisallowRawHTML(t *testing.T) {
	doc := mustParse(t, "<div>raw</div>\n")
	opts := DefaultOptions()
	opts.AllowRawHTML = false
	renderer := &HTMLRenderer{Options: &opts}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<div>raw</div>") {
		t.Errorf("render = %q; AllowRawHTML=false must suppress raw HTML block", buf.String())
	}
}
