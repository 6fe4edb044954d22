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
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// snippetRadius is how many characters of context to keep on each side
	// of the matched code
	snippetRadius = 60

	// snippetFallbackLen bounds the snippet when the code cannot be located
	snippetFallbackLen = 200
)

// ✂️ Snippet returns an HTML-safe excerpt of title+body centered on code,
// with every occurrence of the code wrapped in <mark> tags. Newlines are
// flattened to spaces so the excerpt renders on one line.
func Snippet(title, body, code string) string {
	combined := strings.TrimSpace(title + "\n" + body)
	if combined == "" {
		if title != "" {
			return html.EscapeString(title)
		}
		return html.EscapeString(code)
	}

	codeRe, err := regexp.Compile("(?i)" + regexp.QuoteMeta(code))
	if err != nil {
		return html.EscapeString(flatten(truncateRunes(combined, snippetFallbackLen)))
	}

	var start, end int
	if loc := codeRe.FindStringIndex(combined); loc != nil {
		// Expand the window rune by rune so multi-byte text never splits
		start = loc[0]
		for i := 0; i < snippetRadius && start > 0; i++ {
			_, size := utf8.DecodeLastRuneInString(combined[:start])
			start -= size
		}
		end = loc[1]
		for i := 0; i < snippetRadius && end < len(combined); i++ {
			_, size := utf8.DecodeRuneInString(combined[end:])
			end += size
		}
	} else {
		start = 0
		end = len(truncateRunes(combined, snippetFallbackLen))
	}

	snippet := flatten(combined[start:end])
	escaped := html.EscapeString(snippet)
	return codeRe.ReplaceAllString(escaped, "<mark>$0</mark>")
}

func flatten(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
