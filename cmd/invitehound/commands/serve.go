package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/walteh/invitehound/cmd/invitehound/opts"
	"github.com/walteh/invitehound/pkg/hunt"
	"github.com/walteh/invitehound/pkg/schedule"
	"github.com/walteh/invitehound/pkg/serve"
	"github.com/walteh/invitehound/pkg/source"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// NewServeCmd creates a new serve command
func NewServeCmd(opts *opts.RootOpts) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Poll sources continuously and serve the dashboard",
		Long: `Serve runs the full hunt as a long-lived process.
It will:
1. Build an adapter for every configured source
2. Poll eligible sources on the configured interval
3. Publish every discovery to the in-memory snapshot
4. Serve the dashboard and /codes.json until interrupted`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := opts.Config
			if listen != "" {
				cfg.Listen = listen
			}

			client := source.NewClient(cfg.UserAgent)
			sources, err := source.BuildAll(ctx, cfg, client)
			if err != nil {
				return errors.Errorf("building sources: %w", err)
			}

			sched := schedule.New(cfg)
			store := hunt.NewStore()
			engine := hunt.New(cfg, sources, sched, store)
			engine.OnCycle = opts.Reporter.Cycle

			server := serve.New(cfg, store, sched)

			opts.Reporter.Header(cfg.String())
			opts.Reporter.Infof("dashboard on %s", cfg.Listen)

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error { return engine.Run(ctx) })
			g.Go(func() error { return server.Run(ctx) })

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return errors.Errorf("running hunt: %w", err)
			}

			opts.Reporter.Success("stopped cleanly")
			return nil
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address override (host:port)")

	return cmd
}
