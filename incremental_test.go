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
	"errors"
	"testing"
)

// applyEdit mirrors what a real editor buffer does to source when it
// reports an EditRange, so tests can derive the post-edit source for
// a sanity re-parse to compare against Reparse's incremental result.
func applyEdit(source []byte, edit EditRange, replacement []byte) []byte {
	var out []byte
	out = append(out, source[:edit.Start]...)
	out = append(out, replacement...)
	out = append(out, source[edit.End:]...)
	return out
}

func TestReparseNilPrev(t *testing.T) {
	_, err := Reparse(nil, EditRange{}, nil, nil)
	if !errors.Is(err, ErrReparseBaseNil) {
		t.Fatalf("err = %v; want ErrReparseBaseNil", err)
	}
}

func TestReparseMatchesFreshParse(t *testing.T) {
	source := []byte("one\n\ntwo\n\nthree\n")
	prev, err := Parse(source, nil)
	if err != nil {
		t.Fatal(err)
	}

	edit := EditRange{Start: 5, End: 8} // replaces "two"
	replacement := []byte("TWO-CHANGED")
	next, err := Reparse(prev, edit, replacement, nil)
	if err != nil {
		t.Fatal(err)
	}

	wantSource := applyEdit(source, edit, replacement)
	fresh, err := Parse(wantSource, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(next.Source, wantSource) {
		t.Fatalf("Reparse Source = %q; want %q", next.Source, wantSource)
	}
	if len(next.Blocks) != len(fresh.Blocks) {
		t.Fatalf("len(Reparse.Blocks) = %d; want %d (fresh parse)", len(next.Blocks), len(fresh.Blocks))
	}
	for i := range next.Blocks {
		if next.Blocks[i].Kind() != fresh.Blocks[i].Kind() {
			t.Errorf("Blocks[%d].Kind() = %v; want %v", i, next.Blocks[i].Kind(), fresh.Blocks[i].Kind())
		}
		if next.Blocks[i].Span() != fresh.Blocks[i].Span() {
			t.Errorf("Blocks[%d].Span() = %v; want %v", i, next.Blocks[i].Span(), fresh.Blocks[i].Span())
		}
	}
}

func TestReparseReusesUnaffectedBlocks(t *testing.T) {
	source := []byte("zero\n\nfirst\n\nsecond\n\nthird\n")
	prev, err := Parse(source, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(prev.Blocks) != 4 {
		t.Fatalf("len(Blocks) = %d; want 4", len(prev.Blocks))
	}

	// Edit only within "second" (block index 2); affectedBlockRange
	// widens by one neighbor on each side (index 1 and 3), so only
	// "zero" (index 0) lies entirely outside the widened region and
	// should be reused by reference rather than rebuilt.
	edit := EditRange{Start: 13, End: 19}
	next, err := Reparse(prev, edit, []byte("2ND"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if next.Blocks[0] != prev.Blocks[0] {
		t.Error("Blocks[0] was rebuilt; want the original *Block reused by reference")
	}
}

func TestReparseShiftsTrailingSpans(t *testing.T) {
	source := []byte("aa\n\nbb\n\ncc\n\ndd\n")
	prev, err := Parse(source, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(prev.Blocks) != 4 {
		t.Fatalf("len(Blocks) = %d; want 4", len(prev.Blocks))
	}
	// Editing "bb" (index 1) widens the affected region to indices
	// [0,2]; "dd" (index 3) lies entirely after it and is reached via
	// copyBlockShifted rather than being re-parsed.
	lastBefore := prev.Blocks[3].Span()

	next, err := Reparse(prev, EditRange{Start: 4, End: 6}, []byte("longer"), nil)
	if err != nil {
		t.Fatal(err)
	}
	lastAfter := next.Blocks[3].Span()
	wantDelta := int64(len("longer") - len("bb"))
	if lastAfter.Start.Offset != lastBefore.Start.Offset+wantDelta {
		t.Errorf("Blocks[3].Span().Start.Offset = %d; want %d", lastAfter.Start.Offset, lastBefore.Start.Offset+wantDelta)
	}
	if lastAfter.Start.Line != lastBefore.Start.Line {
		t.Errorf("Blocks[3].Span().Start.Line = %d; want unchanged %d", lastAfter.Start.Line, lastBefore.Start.Line)
	}
}

func TestReparseReResolvesUndefinedReference(t *testing.T) {
	source := []byte("See [x][missing].\n")
	prev, err := Parse(source, nil)
	if err != nil {
		t.Fatal(err)
	}
	var hadDiagnostic bool
	for _, d := range prev.Diagnostics {
		if d.Code == CodeUndefinedReference {
			hadDiagnostic = true
		}
	}
	if !hadDiagnostic {
		t.Fatal("expected initial parse to report an undefined reference")
	}

	// Append a definition for "missing" at the end of the document; the
	// whole document must be re-expanded since any paragraph could
	// reference the newly defined label.
	appendAt := int64(len(source))
	next, err := Reparse(prev, EditRange{Start: appendAt, End: appendAt}, []byte("\n[missing]: /found\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range next.Diagnostics {
		if d.Code == CodeUndefinedReference {
			t.Errorf("Diagnostics = %v; want no undefined-reference after defining the label", next.Diagnostics)
		}
	}
}
