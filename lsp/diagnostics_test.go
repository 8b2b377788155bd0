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
	"testing"

	"github.com/marcolang/marco"
)

func TestDiagnosticsEmpty(t *testing.T) {
	doc := mustParse(t, "Nothing wrong here.\n")
	if got := Diagnostics(doc); len(got) != 0 {
		t.Errorf("Diagnostics = %+v; want none", got)
	}
}

func TestDiagnosticsLevelTranslation(t *testing.T) {
	doc := mustParse(t, "See [x][missing].\n")
	got := Diagnostics(doc)
	if len(got) == 0 {
		t.Fatal("Diagnostics returned nothing; want an undefined-reference entry")
	}
	var found bool
	for _, d := range got {
		if d.Code == string(marco.CodeUndefinedReference) {
			found = true
			if d.Level != LevelError && d.Level != LevelWarning {
				t.Errorf("Level = %v; want Error or Warning for an undefined reference", d.Level)
			}
		}
	}
	if !found {
		t.Errorf("Diagnostics = %+v; want code %q", got, marco.CodeUndefinedReference)
	}
}

func TestDiagnosticsSortedByPosition(t *testing.T) {
	source := "See [a][missing-a] and [b][missing-b].\n"
	doc := mustParse(t, source)
	got := Diagnostics(doc)
	if len(got) < 2 {
		t.Fatalf("len(Diagnostics) = %d; want at least 2", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Span.Start.Offset < got[i-1].Span.Start.Offset {
			t.Errorf("Diagnostics[%d] starts before Diagnostics[%d]; not sorted", i, i-1)
		}
	}
}
