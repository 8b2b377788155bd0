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
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// resolveEntity decodes a single HTML/XML entity or numeric character
// reference found at s[0] == '&', returning the decoded text, the
// byte length consumed (including the leading '&' and the trailing
// ';', which is required), and whether s began with a recognized
// entity.
//
// Named entities are resolved via [golang.org/x/net/html.UnescapeString],
// the same table the teacher's HTML tokenizer relies on in
// internal/normhtml, so entity decoding in prose matches entity
// decoding in raw HTML blocks.
func resolveEntity(s string) (decoded string, length int, ok bool) {
	if len(s) < 2 || s[0] != '&' {
		return "", 0, false
	}
	semi := strings.IndexByte(s, ';')
	if semi < 0 || semi > 32 {
		return "", 0, false
	}
	body := s[1:semi]
	switch {
	case strings.HasPrefix(body, "#x") || strings.HasPrefix(body, "#X"):
		n, err := strconv.ParseInt(body[2:], 16, 32)
		if err != nil || !validCodePoint(rune(n)) {
			return "", 0, false
		}
		return string(rune(n)), semi + 1, true
	case strings.HasPrefix(body, "#"):
		n, err := strconv.ParseInt(body[1:], 10, 32)
		if err != nil || !validCodePoint(rune(n)) {
			return "", 0, false
		}
		return string(rune(n)), semi + 1, true
	default:
		unescaped := html.UnescapeString(s[:semi+1])
		if unescaped == s[:semi+1] {
			return "", 0, false
		}
		return unescaped, semi + 1, true
	}
}

func validCodePoint(r rune) bool {
	if r <= 0 || r > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
		return false
	}
	return true
}
