package hunt

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// minCycleGap floors the pause between cycles, so a cycle that overruns
// the poll interval never leads to back-to-back hammering
const minCycleGap = 5 * time.Second

// 🔁 Run drives poll cycles until ctx is cancelled. The first cycle
// starts immediately; afterwards the loop sleeps out the rest of the
// poll interval, floored at minCycleGap. Cancellation lands at the next
// cycle boundary or mid-sleep, never mid-publish.
func (e *Engine) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	for {
		report := e.RunCycle(ctx)
		logger.Info().
			Int("new_candidates", len(report.New)).
			Int("succeeded", report.Succeeded).
			Int("failed", report.Failed).
			Int("cooling", report.Cooling).
			Dur("took", report.Duration).
			Msg("poll cycle completed")

		gap := e.cfg.PollInterval.Std() - report.Duration
		if gap < minCycleGap {
			gap = minCycleGap
		}

		timer := time.NewTimer(gap)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
