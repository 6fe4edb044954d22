package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/invitehound/cmd/invitehound/opts"
	"github.com/walteh/invitehound/pkg/hunt"
	"github.com/walteh/invitehound/pkg/schedule"
	"github.com/walteh/invitehound/pkg/source"
	"gitlab.com/tozd/go/errors"
)

// summaryRows caps the candidate table in the end-of-hunt summary
const summaryRows = 15

// NewHuntCmd creates a new hunt command
func NewHuntCmd(opts *opts.RootOpts) *cobra.Command {
	var cycles int

	cmd := &cobra.Command{
		Use:   "hunt",
		Short: "Run a fixed number of poll cycles and print discoveries",
		Long: `Hunt polls every configured source for a fixed number of cycles,
printing each discovery as it lands, then summarizes what it found.
Useful for one-shot checks and for trying out a configuration without
starting the dashboard.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cycles < 1 {
				return errors.New("cycles must be at least 1")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := opts.Config
			client := source.NewClient(cfg.UserAgent)
			sources, err := source.BuildAll(ctx, cfg, client)
			if err != nil {
				return errors.Errorf("building sources: %w", err)
			}

			store := hunt.NewStore()
			engine := hunt.New(cfg, sources, schedule.New(cfg), store)
			engine.OnCycle = opts.Reporter.Cycle

			opts.Reporter.Header(cfg.String())

			interrupted := false
			for i := 0; i < cycles; i++ {
				if i > 0 {
					timer := time.NewTimer(cfg.PollInterval.Std())
					select {
					case <-ctx.Done():
						timer.Stop()
						interrupted = true
					case <-timer.C:
					}
				}
				if interrupted || ctx.Err() != nil {
					opts.Reporter.Warning("interrupted, summarizing what we have")
					break
				}
				engine.RunCycle(ctx)
			}

			return summarize(store.Read())
		},
	}

	cmd.Flags().IntVarP(&cycles, "cycles", "n", 1, "number of poll cycles to run")

	return cmd
}

// summarize prints the final snapshot once the hunt is over
func summarize(snap *hunt.Snapshot) error {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📊"}).Printfln(
		"%d candidates, %d unique codes, %d successful fetches, %d errors",
		len(snap.Candidates), snap.UniqueCodes, snap.Successes, snap.Errors)

	if len(snap.Candidates) == 0 {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "🔍"}).Println("No candidates discovered")
		return nil
	}

	rows := pterm.TableData{{"CODE", "CONF", "SOURCE", "URL"}}
	for i, c := range snap.Candidates {
		if i == summaryRows {
			break
		}
		rows = append(rows, []string{
			c.Code,
			fmt.Sprintf("%.0f%%", c.Confidence*100),
			c.SourceTitle,
			c.URL,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return errors.Errorf("rendering summary table: %w", err)
	}
	return nil
}
