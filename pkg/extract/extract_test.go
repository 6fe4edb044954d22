package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 🧪 TestTokens tests invite code extraction from free text
func TestTokens(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		want        []string
		description string
	}{
		{
			name:        "single_code_lowercase",
			text:        "just got s0ra1x working, enjoy",
			want:        []string{"S0RA1X"},
			description: "should uppercase codes found in lowercase text",
		},
		{
			name:        "mixed_case_duplicates_collapse",
			text:        "use S0RA1X or s0ra1x, both are the same S0RA1X",
			want:        []string{"S0RA1X"},
			description: "should collapse case variants of the same code",
		},
		{
			name:        "minimum_length_five",
			text:        "short A1B2 no, but A1B2C yes",
			want:        []string{"A1B2C"},
			description: "should reject 4-char words and accept 5-char words",
		},
		{
			name:        "maximum_length_eight",
			text:        "good ABCD1234 bad ABCD12345",
			want:        []string{"ABCD1234"},
			description: "should reject 9-char words entirely, not truncate them",
		},
		{
			name:        "requires_a_digit",
			text:        "INVITE CODES here but also REAL0NE",
			want:        []string{"REAL0NE"},
			description: "should drop all-letter words of valid length",
		},
		{
			name:        "all_digits_allowed",
			text:        "the code is 123456",
			want:        []string{"123456"},
			description: "should keep pure-digit codes",
		},
		{
			name:        "protocol_noise_excluded",
			text:        "served over HTTP2X with HTML5A and JSON5B or XML12 payloads",
			want:        nil,
			description: "should drop tokens containing protocol/format substrings",
		},
		{
			name:        "embedded_in_longer_word",
			text:        "checksum deadbeef12cafe here",
			want:        nil,
			description: "should not carve codes out of longer alphanumeric runs",
		},
		{
			name:        "punctuation_boundaries",
			text:        "code: XK3R7!! (also TR1AL9.)",
			want:        []string{"XK3R7", "TR1AL9"},
			description: "should treat punctuation as a word boundary",
		},
		{
			name:        "first_occurrence_order",
			text:        "ZZ9TOP then AA1BB then ZZ9TOP again",
			want:        []string{"ZZ9TOP", "AA1BB"},
			description: "should preserve first-seen order",
		},
		{
			name:        "empty_input",
			text:        "",
			want:        nil,
			description: "should return nothing for empty text",
		},
		{
			name:        "no_codes_at_all",
			text:        "nothing interesting in this sentence whatsoever",
			want:        nil,
			description: "should return nothing when no token qualifies",
		},
		{
			name:        "unicode_text_around_code",
			text:        "código de convite → V1BE42 ← aproveite",
			want:        []string{"V1BE42"},
			description: "should find codes surrounded by non-ASCII text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.text)
			assert.Equal(t, tt.want, got, tt.description)
		})
	}
}

// 🧪 TestTokensLargeInput tests that extraction stays sane on oversized text
func TestTokensLargeInput(t *testing.T) {
	// A megabyte of filler with one real code buried in the middle
	var b strings.Builder
	for i := 0; i < 50000; i++ {
		b.WriteString("lorem ipsum dolor sit amet ")
	}
	b.WriteString(" hidden B4R3T7 treasure ")
	for i := 0; i < 50000; i++ {
		b.WriteString("consectetur adipiscing elit ")
	}

	got := Tokens(b.String())
	assert.Equal(t, []string{"B4R3T7"}, got, "should find the single buried code")
}

// 🧪 TestSnippet tests context window extraction and highlighting
func TestSnippet(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		body        string
		code        string
		want        string
		description string
	}{
		{
			name:        "short_text_fits_whole",
			title:       "",
			body:        "the code S0RA1X works",
			code:        "S0RA1X",
			want:        "the code <mark>S0RA1X</mark> works",
			description: "should highlight in place when text fits the window",
		},
		{
			name:        "title_and_body_joined",
			title:       "Sora codes",
			body:        "grab XK3R7 now",
			code:        "XK3R7",
			want:        "Sora codes grab <mark>XK3R7</mark> now",
			description: "should flatten the title/body newline to a space",
		},
		{
			name:        "case_insensitive_highlight",
			title:       "",
			body:        "try s0ra1x today",
			code:        "S0RA1X",
			want:        "try <mark>s0ra1x</mark> today",
			description: "should highlight the original casing",
		},
		{
			name:        "every_occurrence_highlighted",
			title:       "",
			body:        "F1ND42 again F1ND42",
			code:        "F1ND42",
			want:        "<mark>F1ND42</mark> again <mark>F1ND42</mark>",
			description: "should mark repeated occurrences inside the window",
		},
		{
			name:        "html_is_escaped",
			title:       "",
			body:        "<b>grab</b> K1NG99 & run",
			code:        "K1NG99",
			want:        "&lt;b&gt;grab&lt;/b&gt; <mark>K1NG99</mark> &amp; run",
			description: "should escape markup before highlighting",
		},
		{
			name:        "code_missing_falls_back",
			title:       "",
			body:        "no such code here",
			code:        "Z9Z9Z9",
			want:        "no such code here",
			description: "should return escaped text when the code is absent",
		},
		{
			name:        "empty_text_returns_title",
			title:       "only a title",
			body:        "",
			code:        "Z9Z9Z9",
			want:        "only a title",
			description: "should fall back to the title without a body",
		},
		{
			name:        "everything_empty_returns_code",
			title:       "",
			body:        "",
			code:        "AB12CD",
			want:        "AB12CD",
			description: "should fall back to the code itself as a last resort",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Snippet(tt.title, tt.body, tt.code)
			assert.Equal(t, tt.want, got, tt.description)
		})
	}
}

// 🧪 TestSnippetWindow tests the ±60 char window around a buried code
func TestSnippetWindow(t *testing.T) {
	left := strings.Repeat("a", 200)
	right := strings.Repeat("b", 200)

	got := Snippet("", left+" F1ND42 "+right, "F1ND42")

	assert.Contains(t, got, "<mark>F1ND42</mark>", "should highlight the code")

	// 60 context chars per side around the 6-char code and its two spaces
	inner := strings.ReplaceAll(got, "<mark>", "")
	inner = strings.ReplaceAll(inner, "</mark>", "")
	assert.Len(t, inner, 126, "should keep 60 chars of context per side")
	assert.True(t, strings.HasPrefix(inner, "aaa"), "should start inside the left context")
	assert.True(t, strings.HasSuffix(inner, "bbb"), "should end inside the right context")
}

// 🧪 TestConfidence tests keyword-based confidence scoring
func TestConfidence(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		subject     string
		want        float64
		description string
	}{
		{
			name:        "bare_mention",
			text:        "found this: AB12CD",
			subject:     "sora",
			want:        0.5,
			description: "should score base 0.5 with no keywords",
		},
		{
			name:        "invite_keywords_capped",
			text:        "invite code access redeem working valid AB12CD",
			subject:     "sora",
			want:        0.8,
			description: "should cap keyword bonus at +0.3",
		},
		{
			name:        "subject_bonus",
			text:        "sora invite AB12CD",
			subject:     "sora",
			want:        0.75,
			description: "should add 0.15 for the hunt subject plus 0.1 for one keyword",
		},
		{
			name:        "noise_penalty",
			text:        "error: invite AB12CD raised an exception",
			subject:     "sora",
			want:        0.3,
			description: "should subtract 0.3 once for noise keywords",
		},
		{
			name:        "noise_only_text",
			text:        "stack trace debug output",
			subject:     "",
			want:        0.2,
			description: "should subtract the noise penalty from the base",
		},
		{
			name:        "every_bonus_applied",
			text:        "sora invite code access redeem working valid",
			subject:     "sora",
			want:        0.95,
			description: "should stay within bounds with every bonus applied",
		},
		{
			name:        "empty_subject_no_bonus",
			text:        "sora invite",
			subject:     "",
			want:        0.6,
			description: "should skip the subject bonus when unset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.text, tt.subject)
			assert.InDelta(t, tt.want, got, 1e-9, tt.description)
		})
	}
}
