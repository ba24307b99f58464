package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/sqlround/internal/astdump"
	"github.com/leapstack-labs/sqlround/internal/cli/output"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/engine"
	"github.com/spf13/cobra"
)

const (
	replPrompt         = "sqlround> "
	replContinuePrompt = "    ...> "
)

// replModes are the renderings the REPL can show for a statement.
var replModes = []string{"format", "reconstruct", "ast", "tokens"}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive SQL shell that formats as you type",
		Long: `Start an interactive shell. Each statement ending in a semicolon is
parsed and shown in the current mode: formatted, reconstructed, as a
syntax tree or as tokens. Statements may span several lines.

Commands:
  .dialect [name]   Show or switch the dialect
  .mode [name]      Show or switch the mode (format, reconstruct, ast, tokens)
  .help             Show help
  .quit / .exit     Exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			s, err := newREPLSession(cc, mode)
			if err != nil {
				return err
			}
			return runREPL(cmd, s)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "format", "Initial mode: format, reconstruct, ast or tokens")
	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return replModes, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// replSession holds the state of one REPL run, independent of the
// terminal so it can be driven line by line.
type replSession struct {
	cc       *CommandContext
	renderer *output.Renderer
	pipeline *engine.Pipeline
	mode     string
	buf      strings.Builder
}

func newREPLSession(cc *CommandContext, mode string) (*replSession, error) {
	if !validREPLMode(mode) {
		return nil, fmt.Errorf("unknown mode %q (want one of %s)", mode, strings.Join(replModes, ", "))
	}
	return &replSession{cc: cc, renderer: cc.Renderer, pipeline: cc.Pipeline, mode: mode}, nil
}

func validREPLMode(mode string) bool {
	for _, m := range replModes {
		if m == mode {
			return true
		}
	}
	return false
}

// prompt returns the prompt for the next line.
func (s *replSession) prompt() string {
	if s.buf.Len() > 0 {
		return replContinuePrompt
	}
	return replPrompt
}

// reset drops a partially entered statement.
func (s *replSession) reset() { s.buf.Reset() }

// handleLine processes one input line and reports whether to quit.
func (s *replSession) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if s.buf.Len() == 0 && strings.HasPrefix(line, ".") {
		return s.dotCommand(line)
	}

	if s.buf.Len() > 0 {
		s.buf.WriteString("\n")
	}
	s.buf.WriteString(line)
	if !strings.HasSuffix(line, ";") {
		return false
	}

	sql := s.buf.String()
	s.buf.Reset()
	s.eval(sql)
	return false
}

func (s *replSession) eval(sql string) {
	r := s.renderer
	switch s.mode {
	case "tokens":
		infos, err := tokenInfos(sql, s.pipeline.Dialect())
		if err != nil {
			r.SQLError("", sql, err)
			return
		}
		if err := renderTokens(r, infos); err != nil {
			r.Error(err.Error())
		}

	case "ast":
		stmts, err := s.pipeline.Parse(sql)
		if err != nil {
			r.SQLError("", sql, err)
			return
		}
		var doc any = stmts
		if len(stmts) == 1 {
			doc = stmts[0]
		}
		if err := astdump.WriteYAML(r.Writer(), doc); err != nil {
			r.Error(err.Error())
		}

	default:
		mode := engine.ModeFormat
		if s.mode == "reconstruct" {
			mode = engine.ModeReconstruct
		}
		out, err := s.pipeline.Run(sql, mode)
		if err != nil {
			r.SQLError("", sql, err)
			return
		}
		r.Println(out)
	}
	r.Println()
}

func (s *replSession) dotCommand(line string) bool {
	r := s.renderer
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Writer())

	case ".dialect":
		if len(parts) < 2 {
			r.Println(s.pipeline.Dialect().ID.String())
			return false
		}
		id, err := dialect.ParseID(parts[1])
		if err != nil {
			r.Error(err.Error())
			return false
		}
		p, err := engine.New(id, s.cc.Cfg.EngineOptions())
		if err != nil {
			r.Error(err.Error())
			return false
		}
		s.pipeline = p
		s.cc.Logger.Debug("switched dialect", "to", id.String())
		r.Success("dialect " + id.String())

	case ".mode":
		if len(parts) < 2 {
			r.Println(s.mode)
			return false
		}
		mode := strings.ToLower(parts[1])
		if !validREPLMode(mode) {
			r.Error(fmt.Sprintf("unknown mode %q (want one of %s)", mode, strings.Join(replModes, ", ")))
			return false
		}
		s.mode = mode
		r.Success("mode " + mode)

	default:
		r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .dialect [name]  Show or switch the dialect
  .mode [name]     Show or switch the mode (format, reconstruct, ast, tokens)
  .help            Show this help message
  .quit / .exit    Exit the REPL

Tips:
  - Statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completes commands, dialects and modes
`
	_, _ = fmt.Fprintln(w, help)
}

func newREPLCompleter() *readline.PrefixCompleter {
	dialects := make([]readline.PrefixCompleterInterface, 0, len(dialect.All()))
	for _, id := range dialect.All() {
		dialects = append(dialects, readline.PcItem(id.String()))
	}
	modes := make([]readline.PrefixCompleterInterface, 0, len(replModes))
	for _, m := range replModes {
		modes = append(modes, readline.PcItem(m))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".dialect", dialects...),
		readline.PcItem(".mode", modes...),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

// historyPath returns the REPL history file, or "" when no cache
// directory is available.
func historyPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "sqlround")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

func runREPL(cmd *cobra.Command, s *replSession) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyPath(),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s.renderer.Printf("sqlround REPL (dialect: %s, mode: %s)\n", s.pipeline.Dialect().ID, s.mode)
	s.renderer.Println("Type .help for commands, .quit to exit")
	s.renderer.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.reset()
			rl.SetPrompt(s.prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if s.handleLine(line) {
			break
		}
		rl.SetPrompt(s.prompt())
	}
	return nil
}
