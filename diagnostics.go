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

import "fmt"

// Severity is the seriousness of a Diagnostic.
type Severity uint8

const (
	SeverityError Severity = 1 + iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Code is a stable diagnostic identifier, suitable for filtering or
// machine comparison across Marco versions.
type Code string

// Recognized diagnostic codes. These strings are part of the public
// contract: once a Document is produced, LSP consumers may key off
// them, so existing codes are never renamed.
const (
	CodeUnterminatedFence      Code = "unterminated-fence"
	CodeUnterminatedAdmonition Code = "unterminated-admonition"
	CodeUndefinedReference     Code = "undefined-reference"
	CodeDuplicateReference     Code = "duplicate-reference"
	CodeMalformedTableRow      Code = "malformed-table-row"
	CodeNestingDepthExceeded   Code = "nesting-depth-exceeded"
	CodeInvalidUTF8            Code = "invalid-utf8"
)

// Diagnostic is a non-fatal problem found while parsing a Document.
// Parsing never stops at a Diagnostic; it is recorded and parsing
// continues so that callers always get a best-effort tree (§5).
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Span     Span
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%v: %s: %s (%v)", d.Severity, d.Code, d.Message, d.Span)
}

func newDiagnostic(code Code, sev Severity, span Span, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	}
}
