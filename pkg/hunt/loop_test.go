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

package hunt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/invitehound/pkg/config"
)

// 🧪 TestRunFirstCycleImmediate tests that the loop polls right away
// and stops cleanly on cancellation
func TestRunFirstCycleImmediate(t *testing.T) {
	feed := &fakeSource{name: "feed", items: nil}
	cfg := engineConfig(config.SourceDef{Name: "feed", Kind: "rss"})
	engine, _, _ := testEngine(cfg, feed)

	cycles := make(chan Report, 8)
	engine.OnCycle = func(r Report) { cycles <- r }

	ctx, cancel := context.WithCancel(testContext())
	done := make(chan error, 1)
	go func() { done <- engine.Run(ctx) }()

	select {
	case report := <-cycles:
		assert.Equal(t, 1, report.Attempted, "the first cycle runs without waiting a full interval")
	case <-time.After(5 * time.Second):
		t.Fatal("first cycle never completed")
	}

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled, "shutdown is the only way out of the loop")
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after cancellation")
	}

	assert.Empty(t, cycles, "no second cycle starts before the interval elapses")
	assert.Equal(t, 1, feed.calls)
}
