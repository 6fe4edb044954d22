package opts

import (
	"github.com/walteh/invitehound/pkg/config"
	"github.com/walteh/invitehound/pkg/report"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config   *config.Config
	Reporter *report.Reporter
}
