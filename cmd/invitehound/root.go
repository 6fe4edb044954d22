package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/invitehound/cmd/invitehound/opts"
	"github.com/walteh/invitehound/pkg/config"
	"github.com/walteh/invitehound/pkg/report"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (yaml, json, or hcl; environment only when empty)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

// initRootOpts fills in the dependencies shared by every command
func initRootOpts(ctx context.Context, o *opts.RootOpts) error {
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	o.Config = cfg
	o.Reporter = report.New(os.Stdout, level)
	return nil
}
