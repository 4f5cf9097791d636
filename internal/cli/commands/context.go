package commands

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"typeprobe/internal/config"
	"typeprobe/internal/engine"
	"typeprobe/internal/render"
)

var errNoModules = errors.New("no modules given, use --module or the modules config key")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Session  *engine.Session
	Renderer *render.Renderer
}

// NewCommandContext creates a CommandContext whose session has loaded the
// configured modules.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cc := NewCommandContextWithoutModules(cmd, "")
	if len(cc.Cfg.Modules) == 0 {
		return nil, errNoModules
	}

	if _, err := cc.Session.Load(cmd.Context(), cc.Cfg.Modules...); err != nil {
		return nil, err
	}

	return cc, nil
}

// NewCommandContextWithoutModules creates a CommandContext with an empty
// session. A non-empty marker overrides the configured one.
func NewCommandContextWithoutModules(cmd *cobra.Command, marker string) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	if marker == "" {
		marker = cfg.Marker
	}

	session := engine.NewSession(engine.WithLogger(logger), engine.WithMarker(marker))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Session:  session,
		Renderer: render.New(cmd.OutOrStdout(), cfg.Output, render.WithDump(cfg.Dump)),
	}
}
