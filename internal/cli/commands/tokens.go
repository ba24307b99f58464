package commands

import (
	"strconv"

	"github.com/leapstack-labs/sqlround/internal/cli/output"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/parser"
	"github.com/leapstack-labs/sqlround/pkg/token"
	"github.com/spf13/cobra"
)

// TokenInfo is the structured output for one token.
type TokenInfo struct {
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Offset int    `json:"offset" yaml:"offset"`
	Quote  string `json:"quote,omitempty" yaml:"quote,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "List the tokens of SQL text",
		Long: `Run the lexer of the selected dialect and list every token with its kind,
text and position. Keywords are classified by the dialect's keyword list.`,
		Example: `  echo "SELECT [a b] FROM t" | sqlround tokens -d mssql`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runTokens,
	}
	return cmd
}

func runTokens(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cc.Renderer

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	in := inputs[0]

	infos, err := tokenInfos(in.SQL, cc.Pipeline.Dialect())
	if err != nil {
		r.SQLError(in.Name, in.SQL, err)
		return err
	}

	return renderTokens(r, infos)
}

// tokenInfos lexes sql and returns every token except the end of input
// marker.
func tokenInfos(sql string, d *dialect.Dialect) ([]TokenInfo, error) {
	toks, err := parser.NewLexer(sql, d).Tokenize()
	if err != nil {
		return nil, err
	}
	toks = toks[:len(toks)-1]

	infos := make([]TokenInfo, 0, len(toks))
	for _, tok := range toks {
		info := TokenInfo{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
			Offset: tok.Pos.Offset,
			Prefix: tok.Prefix,
		}
		if tok.Quote != token.QuoteNone {
			info.Quote = tok.Quote.String()
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func renderTokens(r *output.Renderer, infos []TokenInfo) error {
	if r.EffectiveMode().Structured() {
		return r.Structured(infos)
	}

	rows := make([][]string, 0, len(infos))
	for i, info := range infos {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			info.Kind,
			info.Text,
			strconv.Itoa(info.Line) + ":" + strconv.Itoa(info.Column),
			strconv.Itoa(info.Offset),
			info.Quote + info.Prefix,
		})
	}
	r.Table([]string{"#", "Kind", "Text", "Pos", "Offset", "Quote"}, rows)
	if r.EffectiveMode() == output.ModeText {
		r.Muted(output.Count(len(infos), "token"))
	}
	return nil
}
