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
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// inlineShape renders the Kind of every inline reachable from content,
// depth first, via Walk. RenderPlain normalizes link forms and list
// markers (see its doc comment), so P4 only promises the re-parsed
// Inline *structure* matches, not a byte-identical span.
func inlineShape(content Inlines) string {
	var sb strings.Builder
	for _, in := range content {
		Walk(in.AsNode(), &WalkOptions{
			Pre: func(c *Cursor) bool {
				fmt.Fprintf(&sb, "%d ", c.Node().Kind())
				return true
			},
		})
	}
	return sb.String()
}

// TestRenderPlainRoundTripsParagraphInlines checks P4: for a paragraph
// containing no block constructs, re-parsing RenderPlain's output
// reproduces the same sequence of Inline kinds as the original parse.
func TestRenderPlainRoundTripsParagraphInlines(t *testing.T) {
	tests := []string{
		"Hello *world* and **bold** and ***both***.\n",
		"A `code span` and a [link](/dest \"a title\") and an ![image](/img).\n",
		"Line one with a hard break\\\nand a soft break\ncontinuing.\n",
		"Plain text with no markup at all.\n",
	}
	for _, source := range tests {
		t.Run(source, func(t *testing.T) {
			doc := mustParse(t, source)
			if len(doc.Blocks) != 1 || doc.Blocks[0].Kind() != ParagraphKind {
				t.Fatalf("Blocks = %+v; want single Paragraph", doc.Blocks)
			}

			var buf bytes.Buffer
			if err := RenderPlain(&buf, doc); err != nil {
				t.Fatal(err)
			}

			reparsed := mustParse(t, buf.String())
			if len(reparsed.Blocks) != 1 || reparsed.Blocks[0].Kind() != ParagraphKind {
				t.Fatalf("RenderPlain(%q) = %q; re-parse gave %+v, want single Paragraph", source, buf.String(), reparsed.Blocks)
			}

			want := inlineShape(doc.Blocks[0].Content())
			got := inlineShape(reparsed.Blocks[0].Content())
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("RenderPlain(%q) = %q; round-tripped Inline shape differs (-want +got):\n%s", source, buf.String(), diff)
			}
		})
	}
}
