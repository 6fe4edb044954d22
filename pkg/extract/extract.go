// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package extract

import (
	"regexp"
	"strings"
)

// 🎯 tokenPattern matches standalone alphanumeric words of invite-code length.
// Longer runs have no internal word boundary, so a 9+ character word is
// rejected whole rather than matched partially.
var tokenPattern = regexp.MustCompile(`\b[A-Z0-9]{5,8}\b`)

// 🚫 excludeSubstrings filters protocol/format noise that passes the shape
// check ("HTTP" also covers "HTTPS")
var excludeSubstrings = []string{"HTTP", "HTML", "JSON", "XML"}

// 📝 Tokens extracts candidate invite codes from free text. Matching is
// case-insensitive and every code is returned uppercased. A code must be
// 5-8 alphanumeric characters and contain at least one digit. Duplicates
// within a single call are collapsed, first occurrence wins.
func Tokens(text string) []string {
	if text == "" {
		return nil
	}

	upper := strings.ToUpper(text)

	var (
		tokens []string
		seen   map[string]struct{}
	)
	for _, tok := range tokenPattern.FindAllString(upper, -1) {
		// Pure numbers are allowed, pure letters are not
		if !strings.ContainsAny(tok, "0123456789") {
			continue
		}
		if containsAnySubstring(tok, excludeSubstrings) {
			continue
		}
		if seen == nil {
			seen = make(map[string]struct{})
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}

func containsAnySubstring(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
