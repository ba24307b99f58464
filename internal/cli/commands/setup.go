package commands

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/leapstack-labs/sqlround/internal/cli/config"
	"github.com/leapstack-labs/sqlround/internal/cli/output"
	"github.com/leapstack-labs/sqlround/pkg/engine"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Pipeline *engine.Pipeline
	Renderer *output.Renderer
	RunID    string
}

// NewCommandContext creates a CommandContext with a pipeline for the
// configured dialect. An unimplemented dialect fails here with a
// *dialect.ConfigurationError.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cc := NewCommandContextWithoutEngine(cmd)
	p, err := cc.Cfg.NewPipeline()
	if err != nil {
		return nil, err
	}
	cc.Pipeline = p
	cc.Logger = cc.Logger.With("dialect", p.Dialect().ID.String())
	return cc, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without a
// pipeline. Useful for commands that don't parse SQL.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := config.GetCurrentConfig()
	runID := uuid.NewString()
	logger := config.GetLogger(cmd.Context()).With("run_id", runID)

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ParseMode(cfg.Output))
	r.SetNoColor(cfg.NoColor)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
		RunID:    runID,
	}
}
