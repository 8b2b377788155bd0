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

// Package marco provides a two-stage CommonMark-derived Markdown
// engine: a block grammar that segments source into a
// position-preserving tree, an inline grammar that resolves emphasis,
// links, and extension syntax within it, and an HTML renderer and LSP
// derivation layer (highlights, hover, completion, diagnostics) built
// on the resulting [Document].
package marco

// ParseOption configures a single call to [Parse]; see [WithCancel].
type ParseOption func(*parseConfig)

type parseConfig struct {
	cancel *CancelToken
}

// WithCancel attaches a [CancelToken] to a [Parse] call. The token is
// polled once per top-level block during stage 1 and once per block
// during stage 2; if it is signaled, Parse returns ErrCancelled
// instead of a Document.
func WithCancel(token *CancelToken) ParseOption {
	return func(c *parseConfig) {
		c.cancel = token
	}
}

// Parse runs the full pipeline over source: UTF-8 sanitization, stage
// 1 (block recognition), reference-definition extraction, and stage 2
// (inline expansion), producing a single immutable [Document] (§3,
// §4). Parsing never aborts on malformed input — every problem
// encountered is recorded as a [Diagnostic] and parsing continues, so
// a caller always receives a best-effort tree (§5) — except when
// explicitly cancelled via [WithCancel], which returns [ErrCancelled]
// with no Document.
//
// A nil opts is treated as [DefaultOptions].
func Parse(source []byte, opts *Options, parseOpts ...ParseOption) (*Document, error) {
	var cfg parseConfig
	for _, o := range parseOpts {
		o(&cfg)
	}

	resolved := DefaultOptions()
	if opts != nil {
		resolved = opts.normalize()
	}

	sanitized, sanitizeDiags := sanitizeUTF8(source)
	if cfg.cancel.Cancelled() {
		return nil, ErrCancelled
	}

	blocks, blockDiags := parseTopLevel(sanitized, &resolved, cfg.cancel)
	if cfg.cancel.Cancelled() {
		return nil, ErrCancelled
	}

	refs, refDiags := extractReferences(blocks)
	if cfg.cancel.Cancelled() {
		return nil, ErrCancelled
	}

	inlineDiags := expandInlines(blocks, sanitized, refs, &resolved, cfg.cancel)
	if cfg.cancel.Cancelled() {
		return nil, ErrCancelled
	}

	// Block and inline construction above only track byte Offset, the
	// cheap part of a span to compute while scanning forward; Line and
	// Column are filled in here in one O(n log n) sweep against a
	// single lineIndex rather than threaded through every constructor.
	idx := newLineIndex(sanitized)
	renumberBlockSpans(blocks, idx, sanitized)

	var diags []Diagnostic
	diags = append(diags, sanitizeDiags...)
	diags = append(diags, blockDiags...)
	diags = append(diags, refDiags...)
	diags = append(diags, inlineDiags...)
	renumberDiagnosticSpans(diags, idx, sanitized)

	return &Document{
		Blocks:      blocks,
		References:  refs,
		Diagnostics: diags,
		Source:      sanitized,
		options:     resolved,
	}, nil
}
