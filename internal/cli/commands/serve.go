package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/sqlround/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve parse, reconstruct and format over HTTP",
		Long: `Start the HTTP API.

Endpoints:
  POST /v1/parse        {"sql": "...", "dialect": "mssql"} -> {"ast": ...}
  POST /v1/reconstruct  {"sql": "...", "dialect": "mssql"} -> {"sql": "..."}
  POST /v1/format       {"sql": "...", "format": {"indent": 4}} -> {"sql": "..."}
  GET  /v1/dialects
  GET  /healthz

Parse errors answer 400 with the error offset, line and column. A dialect
without an implementation answers 422. The server stops gracefully on
SIGINT or SIGTERM.`,
		Example: `  sqlround serve --addr :9000 -d postgres`,
		Args:    cobra.NoArgs,
		RunE:    runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	cmd.Flags().Duration("shutdown-timeout", 0, "Graceful shutdown timeout (default 5s)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cc)
}

func serve(ctx context.Context, cc *CommandContext) error {
	srv := server.New(server.Config{
		Addr:            cc.Cfg.Serve.Addr,
		ShutdownTimeout: cc.Cfg.Serve.ShutdownTimeout,
		Dialect:         cc.Pipeline.Dialect().ID,
		Options:         cc.Cfg.EngineOptions(),
		Logger:          cc.Logger,
	})
	cc.Renderer.Muted("Serving on " + cc.Cfg.Serve.Addr + " (Ctrl+C to stop)")
	return srv.Serve(ctx)
}
