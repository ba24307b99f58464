package commands

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/leapstack-labs/sqlround/internal/cli/output"
	"github.com/leapstack-labs/sqlround/pkg/engine"
	"github.com/spf13/cobra"
)

// ErrCheckFailed is returned by format --check when a file would change.
var ErrCheckFailed = errors.New("some files are not formatted")

// RenderOptions holds options for the format and reconstruct commands.
type RenderOptions struct {
	Write bool
	Check bool
	Jobs  int
}

// FileResult is the structured output for one input.
type FileResult struct {
	File    string              `json:"file" yaml:"file"`
	SQL     string              `json:"sql,omitempty" yaml:"sql,omitempty"`
	Changed bool                `json:"changed" yaml:"changed"`
	Error   *output.ErrorDetail `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	opts := &RenderOptions{}
	cmd := &cobra.Command{
		Use:   "format [files...]",
		Short: "Format SQL over indented lines",
		Long: `Parse SQL and print it in the canonical multi-line layout of the dialect.

With no arguments, or "-", SQL is read from stdin. Directories are searched
recursively for .sql files. Every input may hold several statements
separated by semicolons.

Output adapts to environment:
  - Single input: the formatted SQL only
  - Several inputs: one section per file (markdown when piped)
  - JSON/YAML: one record per file`,
		Example: `  # Format a file for SQL Server
  sqlround format -d mssql query.sql

  # Rewrite every .sql file below models/
  sqlround format --write models/

  # Fail in CI when a file is not formatted
  sqlround format --check models/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, engine.ModeFormat, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Rewrite files in place")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Exit non-zero when a file is not formatted")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Files processed in parallel")
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	return cmd
}

// NewReconstructCommand creates the reconstruct command.
func NewReconstructCommand() *cobra.Command {
	opts := &RenderOptions{}
	cmd := &cobra.Command{
		Use:     "reconstruct [files...]",
		Aliases: []string{"compact"},
		Short:   "Print SQL as compact single-line statements",
		Long: `Parse SQL and print each statement on one line in the dialect's canonical
spelling. Identifier quoting from the source is preserved.`,
		Example: `  echo "select top 5 [Name] from [Users]" | sqlround reconstruct -d mssql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, engine.ModeReconstruct, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Files processed in parallel")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, mode engine.Mode, opts *RenderOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cc.Renderer

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	if opts.Write && len(inputs) == 1 && inputs[0].Name == stdinName {
		return errors.New("--write needs file arguments")
	}

	cc.Logger.Debug("rendering inputs", "mode", mode.String(), "count", len(inputs))
	results, err := cc.Pipeline.Batch(cmd.Context(), inputs, engine.BatchOptions{
		Mode:   mode,
		Jobs:   opts.Jobs,
		Logger: cc.Logger,
	})
	if err != nil {
		return err
	}

	sources := make(map[string]string, len(inputs))
	for _, in := range inputs {
		sources[in.Name] = in.SQL
	}

	var failed, changed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			if !r.EffectiveMode().Structured() {
				r.SQLError(res.Name, sources[res.Name], res.Err)
			}
			continue
		}
		if res.Changed {
			changed++
		}
	}

	switch {
	case r.EffectiveMode().Structured():
		if err := r.Structured(fileResults(results)); err != nil {
			return err
		}
	case opts.Check:
		for _, res := range results {
			if res.Err == nil && res.Changed {
				r.StatusLine(res.Name, "changed", "would reformat")
			}
		}
	case opts.Write:
		if err := writeResults(cc, results); err != nil {
			return err
		}
	default:
		printResults(r, results)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed to parse", failed, len(results))
	}
	if opts.Check && changed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrCheckFailed, changed, len(results))
	}
	return nil
}

func fileResults(results []engine.Result) []FileResult {
	out := make([]FileResult, 0, len(results))
	for _, res := range results {
		fr := FileResult{File: res.Name, SQL: res.Output, Changed: res.Changed}
		if res.Err != nil {
			detail := output.NewErrorDetail("", res.Err)
			fr.Error = &detail
		}
		out = append(out, fr)
	}
	return out
}

func writeResults(cc *CommandContext, results []engine.Result) error {
	r := cc.Renderer
	var written int
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if !res.Changed {
			r.StatusLine(res.Name, "success", "unchanged")
			continue
		}
		if err := writeFile(res.Name, res.Output+"\n"); err != nil {
			return fmt.Errorf("failed to write %s: %w", res.Name, err)
		}
		cc.Logger.Info("rewrote file", "file", res.Name)
		r.StatusLine(res.Name, "changed", "rewritten")
		written++
	}
	r.Muted(fmt.Sprintf("%d of %d files rewritten", written, len(results)))
	return nil
}

// printResults prints rendered SQL. A single input prints bare so the
// command can sit in a pipe.
func printResults(r *output.Renderer, results []engine.Result) {
	if len(results) == 1 {
		if results[0].Err == nil && results[0].Output != "" {
			r.Println(results[0].Output)
		}
		return
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	for i, res := range results {
		if res.Err != nil {
			continue
		}
		if markdown {
			r.Println(output.FormatHeader(2, res.Name))
			r.Println()
			r.Println(output.FormatCodeBlock("sql", res.Output))
			r.Println()
			continue
		}
		if i > 0 {
			r.Println()
		}
		r.Println(r.Styles().Muted.Render("-- " + res.Name))
		r.Println(strings.TrimRight(res.Output, "\n"))
	}
}
