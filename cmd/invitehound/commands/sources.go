package commands

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/invitehound/cmd/invitehound/opts"
	"github.com/walteh/invitehound/pkg/source"
	"gitlab.com/tozd/go/errors"
)

// NewSourcesCmd creates a new sources command
func NewSourcesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List the configured sources",
		Long: `Sources shows every source the current configuration defines,
including disabled ones, along with the adapter kind each uses.
Available kinds: ` + strings.Join(source.Kinds(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.Config

			rows := pterm.TableData{{"NAME", "KIND", "STATUS", "LIMIT", "DELAY"}}
			for _, def := range cfg.Sources {
				status := "enabled"
				if cfg.SourceDisabled(def) {
					status = "disabled"
				}
				limit := "default"
				if def.MaxItems > 0 {
					limit = strconv.Itoa(def.MaxItems)
				}
				delay := "-"
				if def.Delay > 0 {
					delay = def.Delay.Std().String()
				}
				rows = append(rows, []string{def.Name, def.Kind, status, limit, delay})
			}

			if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
				return errors.Errorf("rendering sources table: %w", err)
			}
			return nil
		},
	}

	return cmd
}
