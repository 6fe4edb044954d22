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

package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/invitehound/pkg/hunt"
	"gitlab.com/tozd/go/errors"
)

func TestReporter(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, reporter *Reporter)
		wantLogs []string
	}{
		{
			name: "cycle_with_candidates",
			op: func(t *testing.T, reporter *Reporter) {
				reporter.Cycle(hunt.Report{
					Started:   time.Now(),
					Attempted: 6,
					Succeeded: 5,
					Failed:    1,
					Cooling:   2,
					New: []hunt.Candidate{
						{
							Code:        "AB12CD",
							SourceType:  "bluesky",
							SourceTitle: "[Bluesky search] spare codes",
							Confidence:  0.85,
						},
						{
							Code:        "ZX81Q2",
							SourceType:  "x_live",
							SourceTitle: "[X live] low context",
							Confidence:  0.3,
						},
					},
					Errors: []error{errors.New("source Mastodon search: unexpected status 503")},
				})
			},
			wantLogs: []string{
				"◆ cycle 1 • 2 new • 5/6 sources ok, 2 cooling",
				"    ✓ AB12CD     bluesky       85% [Bluesky search] spare codes",
				"    - ZX81Q2     x_live        30% [X live] low context",
				"⚠️  source Mastodon search: unexpected status 503",
			},
		},
		{
			name: "quiet_cycle",
			op: func(t *testing.T, reporter *Reporter) {
				reporter.Cycle(hunt.Report{Attempted: 3, Succeeded: 3})
			},
			wantLogs: []string{
				"◆ cycle 1 • 0 new • 3/3 sources ok",
			},
		},
		{
			name: "cycle_counter_increments",
			op: func(t *testing.T, reporter *Reporter) {
				reporter.Cycle(hunt.Report{Attempted: 1, Succeeded: 1})
				reporter.Cycle(hunt.Report{Attempted: 1, Succeeded: 1})
			},
			wantLogs: []string{
				"◆ cycle 1 • 0 new • 1/1 sources ok",
				"◆ cycle 2 • 0 new • 1/1 sources ok",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, reporter *Reporter) {
				reporter.Info("info message")
				reporter.Warning("warning message")
				reporter.Error("error message")
				reporter.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "header",
			op: func(t *testing.T, reporter *Reporter) {
				reporter.Header("hunting for invite codes")
			},
			wantLogs: []string{
				"invitehound • hunting for invite codes",
			},
		},
		{
			name: "formatted_messages",
			op: func(t *testing.T, reporter *Reporter) {
				reporter.Infof("listening on %s", ":3000")
				reporter.Successf("%d candidates so far", 7)
			},
			wantLogs: []string{
				"ℹ️  listening on :3000",
				"✅ 7 candidates so far",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reporter := New(&buf, zerolog.Disabled)

			tt.op(t, reporter)

			output := buf.String()
			for _, want := range tt.wantLogs {
				assert.Contains(t, output, want, "console output should carry the line")
			}
		})
	}
}

// 🧪 TestFormatCandidateSymbols tests the confidence-driven symbols
func TestFormatCandidateSymbols(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	reporter := New(&bytes.Buffer{}, zerolog.Disabled)

	tests := []struct {
		name       string
		confidence float64
		symbol     string
	}{
		{name: "strong_context", confidence: 0.9, symbol: "✓"},
		{name: "plain_context", confidence: 0.6, symbol: "•"},
		{name: "weak_context", confidence: 0.2, symbol: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := reporter.formatCandidate(hunt.Candidate{
				Code:       "AB12CD",
				SourceType: "rss",
				Confidence: tt.confidence,
			})
			require.True(t, strings.HasPrefix(strings.TrimLeft(line, " "), tt.symbol),
				"line should open with the confidence symbol: %q", line)
		})
	}
}
