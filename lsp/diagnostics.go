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

	"github.com/marcolang/marco"
)

// DiagnosticView is one diagnostic positioned for an editor: the same
// data as [marco.Diagnostic], with Severity pre-translated to an LSP
// style numeric level and the originating Code's stable string kept
// alongside for clients that key off it directly.
type DiagnosticView struct {
	Span    marco.Span
	Level   DiagnosticLevel
	Code    string
	Message string
}

// DiagnosticLevel mirrors the LSP `DiagnosticSeverity` enum ordering
// (1 = Error through 4 = Hint). [Diagnostics] translates explicitly
// rather than casting [marco.Severity] directly so that a host never
// depends on marco's raw iota values, and so the Hint level (which
// marco has no equivalent of) has somewhere to come from.
type DiagnosticLevel int

const (
	LevelError       DiagnosticLevel = 1
	LevelWarning     DiagnosticLevel = 2
	LevelInformation DiagnosticLevel = 3
	LevelHint        DiagnosticLevel = 4
)

func levelFor(sev marco.Severity) DiagnosticLevel {
	switch sev {
	case marco.SeverityError:
		return LevelError
	case marco.SeverityWarning:
		return LevelWarning
	case marco.SeverityInfo:
		return LevelInformation
	default:
		return LevelHint
	}
}

// Diagnostics returns doc's diagnostics ordered by source position,
// translated to the shape an editor's diagnostics panel expects.
// Parsing never stops at a diagnostic (marco.Diagnostic's own doc
// comment), so this is a pure view over already-collected data, not a
// re-derivation.
func Diagnostics(doc *marco.Document) []DiagnosticView {
	out := make([]DiagnosticView, len(doc.Diagnostics))
	for i, d := range doc.Diagnostics {
		out[i] = DiagnosticView{
			Span:    d.Span,
			Level:   levelFor(d.Severity),
			Code:    string(d.Code),
			Message: d.Message,
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].Span.Start.Offset, out[j].Span.Start.Offset
		if si != sj {
			return si < sj
		}
		return out[i].Span.End.Offset < out[j].Span.End.Offset
	})
	return out
}
