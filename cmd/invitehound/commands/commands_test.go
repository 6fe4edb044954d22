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

package commands

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/invitehound/cmd/invitehound/opts"
	"github.com/walteh/invitehound/pkg/config"
	"github.com/walteh/invitehound/pkg/hunt"
	"github.com/walteh/invitehound/pkg/report"
)

func testOpts() *opts.RootOpts {
	return &opts.RootOpts{
		Config:   config.Default(),
		Reporter: report.New(io.Discard, zerolog.InfoLevel),
	}
}

// capturePterm redirects pterm output to a buffer for the test's duration
func capturePterm(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	pterm.SetDefaultOutput(&buf)
	// Prefix printers bind their Writer at pterm's package init, so
	// SetDefaultOutput alone cannot redirect them
	pterm.Info.Writer = &buf
	pterm.Warning.Writer = &buf
	pterm.DisableStyling()
	t.Cleanup(func() {
		pterm.EnableStyling()
		pterm.SetDefaultOutput(os.Stdout)
		pterm.Info.Writer = os.Stdout
		pterm.Warning.Writer = os.Stdout
	})
	return &buf
}

// 🧪 TestCommandWiring tests that every command registers its flags
func TestCommandWiring(t *testing.T) {
	o := testOpts()

	serveCmd := NewServeCmd(o)
	assert.Equal(t, "serve", serveCmd.Use)
	assert.NotNil(t, serveCmd.Flags().Lookup("listen"))

	huntCmd := NewHuntCmd(o)
	assert.Equal(t, "hunt", huntCmd.Use)
	assert.NotNil(t, huntCmd.Flags().Lookup("cycles"))

	sourcesCmd := NewSourcesCmd(o)
	assert.Equal(t, "sources", sourcesCmd.Use)
	assert.Contains(t, sourcesCmd.Long, "reddit_search", "help lists the available kinds")
}

// 🧪 TestHuntRejectsZeroCycles tests cycle count validation
func TestHuntRejectsZeroCycles(t *testing.T) {
	cmd := NewHuntCmd(testOpts())
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{"--cycles", "0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1")
}

// 🧪 TestSourcesTable tests the rendered source listing
func TestSourcesTable(t *testing.T) {
	buf := capturePterm(t)

	o := testOpts()
	o.Config.Sources = []config.SourceDef{
		{Name: "Bluesky search", Kind: "bluesky"},
		{Name: "Old forum", Kind: "discourse", URL: "https://forum.example.com", Disabled: true, MaxItems: 10, Delay: config.Duration(2 * time.Second)},
	}

	cmd := NewSourcesCmd(o)
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Bluesky search")
	assert.Contains(t, out, "enabled")
	assert.Contains(t, out, "Old forum")
	assert.Contains(t, out, "disabled")
	assert.Contains(t, out, "2s")
}

// 🧪 TestSummarize tests the end-of-hunt summary output
func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		snap     *hunt.Snapshot
		contains []string
	}{
		{
			name: "empty_hunt",
			snap: &hunt.Snapshot{},
			contains: []string{
				"0 candidates, 0 unique codes",
				"No candidates discovered",
			},
		},
		{
			name: "with_discoveries",
			snap: &hunt.Snapshot{
				Candidates: []hunt.Candidate{{
					Code:        "AB12CD",
					SourceTitle: "[Bluesky search] spare codes",
					URL:         "https://bsky.app/profile/alice/post/1",
					Confidence:  0.85,
				}},
				UniqueCodes: 3,
				Successes:   12,
				Errors:      1,
			},
			contains: []string{
				"1 candidates, 3 unique codes, 12 successful fetches, 1 errors",
				"AB12CD",
				"85%",
				"[Bluesky search] spare codes",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capturePterm(t)

			require.NoError(t, summarize(tt.snap))

			out := buf.String()
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}
