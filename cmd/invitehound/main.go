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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/invitehound/cmd/invitehound/commands"
	"github.com/walteh/invitehound/cmd/invitehound/opts"
)

func main() {
	ctx := context.Background()

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "invitehound",
		Short: "Hunt invite codes across public sources",
		Long: `invitehound polls public surfaces (Reddit, Hacker News, Bluesky,
Mastodon, GitHub, Discourse forums, news feeds) for invite code mentions,
extracts candidate codes, and serves them on a live dashboard.`,
		SilenceUsage: true,
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Shared dependencies are built after flag parsing so overrides are
	// respected
	rootOpts := &opts.RootOpts{}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		setupLogging()
		return initRootOpts(cmd.Context(), rootOpts)
	}

	// Add commands
	rootCmd.AddCommand(
		commands.NewServeCmd(rootOpts),
		commands.NewHuntCmd(rootOpts),
		commands.NewSourcesCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
