// Package cli provides the command-line interface for sqlround.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/sqlround/internal/cli/commands"
	"github.com/leapstack-labs/sqlround/internal/cli/config"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/format"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "sqlround",
		Short: "sqlround - SQL parser and formatter for several dialects",
		Long: `sqlround parses SQL text for a chosen dialect (SQL Server, PostgreSQL,
SQL Anywhere or a generic ANSI dialect) into a syntax tree and renders it
back either as compact single-line statements or as indented, formatted
SQL. Parsing and rendering are round-trip stable.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg)
			cmd.SetContext(config.WithLogger(cmd.Context(), logger))

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./sqlround.yaml)")
	pf.StringP("dialect", "d", "", "SQL dialect (generic|mssql|postgres|sqlanywhere)")
	pf.StringP("output", "o", "", "Output format (auto|text|markdown|json|yaml)")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.Bool("no-color", false, "Disable colored output")
	pf.Int("indent", 0, "Spaces per indentation level when formatting (default 2)")
	pf.String("keyword-case", "", "Keyword case when formatting (upper|lower)")
	pf.Int("max-depth", 0, "Maximum expression nesting depth (default 200)")
	pf.String("log-level", "", "Log level on stderr (debug|info|warn|error)")

	registerFlagValues(rootCmd)

	rootCmd.AddCommand(commands.NewFormatCommand())
	rootCmd.AddCommand(commands.NewReconstructCommand())
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewTokensCommand())
	rootCmd.AddCommand(commands.NewDialectsCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewLSPCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// flagValues lists the fixed choices offered by shell completion for each
// global flag.
func flagValues() map[string][]string {
	dialects := make([]string, 0, len(dialect.All()))
	for _, id := range dialect.All() {
		dialects = append(dialects, id.String())
	}
	return map[string][]string{
		"dialect":      dialects,
		"output":       config.OutputModes,
		"keyword-case": {format.KeywordUpper.String(), format.KeywordLower.String()},
		"log-level":    {"debug", "info", "warn", "error"},
	}
}

func registerFlagValues(cmd *cobra.Command) {
	for flag, values := range flagValues() {
		_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the given shell. Completions cover
subcommands, flags and the fixed values of --dialect, --output,
--keyword-case and --log-level.`,
		Example: `  source <(sqlround completion bash)
  sqlround completion zsh > "${fpath[1]}/_sqlround"
  sqlround completion fish > ~/.config/fish/completions/sqlround.fish
  sqlround completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionScript(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
	return cmd
}

func completionScript(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return fmt.Errorf("unsupported shell %q", shell)
}
