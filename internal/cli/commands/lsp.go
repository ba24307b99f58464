package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/sqlround/internal/cli/config"
	"github.com/leapstack-labs/sqlround/internal/lsp"
	"github.com/spf13/cobra"
)

// NewLSPCommand serves the language server on stdin and stdout.
func NewLSPCommand() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Serve editors over stdin/stdout with JSON-RPC.

Open documents are parsed with the configured dialect on every change.
Lex and parse errors come back as diagnostics, whole-document formatting
follows the editor's tab size, and keywords of the dialect are offered as
completions and hovers.

Logs go to stderr unless --log-file is set; stdout carries only protocol
messages.`,
		Example: `  # Usually launched by an editor
  sqlround lsp --dialect mssql

  # Keep a debug log for troubleshooting an editor session
  sqlround lsp --dialect postgres --log-level debug --log-file /tmp/sqlround-lsp.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			logger := cc.Logger
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //#nosec G304 -- user-chosen log path
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer func() { _ = f.Close() }()
				logger = config.NewLogger(f, cc.Cfg).With("run_id", cc.RunID, "dialect", cc.Pipeline.Dialect().ID.String())
			}

			return lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.Config{
				Pipeline: cc.Pipeline,
				Version:  cmd.Root().Version,
				Logger:   logger,
			}).Run()
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Append logs to this file instead of stderr")
	return cmd
}
