package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlround/internal/astdump"
	"github.com/leapstack-labs/sqlround/internal/cli/output"
	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/spf13/cobra"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Print the syntax tree of SQL statements",
		Long: `Parse SQL and dump the syntax tree.

The tree is printed as YAML unless --output json is given. Each node shows
its kind and the fields present in the source; absent clauses are omitted.`,
		Example: `  # Show the tree of a query
  echo "SELECT a FROM t WHERE b = 1" | sqlround parse

  # As JSON for tooling
  sqlround parse -o json query.sql`,
		RunE: runParse,
	}
	return cmd
}

type parsedFile struct {
	File       string
	Statements []*core.SqlStatement
}

func runParse(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cc.Renderer

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	var files []parsedFile
	var failed int
	for _, in := range inputs {
		stmts, err := cc.Pipeline.Parse(in.SQL)
		if err != nil {
			failed++
			r.SQLError(in.Name, in.SQL, err)
			continue
		}
		files = append(files, parsedFile{File: in.Name, Statements: stmts})
	}

	if len(files) == 0 {
		return fmt.Errorf("%d of %d inputs failed to parse", failed, len(inputs))
	}

	var doc any
	if len(inputs) == 1 && len(files) == 1 {
		doc = files[0].Statements
	} else {
		doc = files
	}

	if r.EffectiveMode() == output.ModeJSON {
		err = astdump.WriteJSON(r.Writer(), doc)
	} else {
		err = astdump.WriteYAML(r.Writer(), doc)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed to parse", failed, len(inputs))
	}
	return nil
}
