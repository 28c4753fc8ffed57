// Package commands provides the CLI subcommands of mstables.
package commands

import (
	"log/slog"

	"github.com/leapstack-labs/mstables/internal/cli/config"
	"github.com/leapstack-labs/mstables/internal/session"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for commands.
type CommandContext struct {
	Cfg     *config.Config
	Logger  *slog.Logger
	Session *session.Session
}

// NewCommandContext opens a session from the command's configuration.
// Progress lines go to the command's stderr. The returned cleanup closes
// the session.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	s, err := session.Open(cmd.Context(), session.Options{
		Store:    cfg.Store.Core(),
		Verbose:  cfg.Verbose,
		Mode:     cfg.Mode(),
		Progress: cmd.ErrOrStderr(),
		Logger:   logger,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := s.Close(); err != nil {
			logger.Warn("failed to close session", slog.String("error", err.Error()))
		}
	}

	return &CommandContext{
		Cfg:     cfg,
		Logger:  logger,
		Session: s,
	}, cleanup, nil
}
