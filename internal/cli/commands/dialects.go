package commands

import (
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/engine"
	"github.com/spf13/cobra"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the SQL dialects",
		Long: `List every dialect identifier with its implementation status, default
identifier quoting and accepted row-limiting forms.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContextWithoutEngine(cmd)
			r := cc.Renderer

			infos := engine.Describe()
			if r.EffectiveMode().Structured() {
				return r.Structured(infos)
			}

			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				implemented := "no"
				if info.Implemented {
					implemented = "yes"
				}
				rows = append(rows, []string{
					info.ID,
					info.Name,
					implemented,
					info.Quote,
					strings.Join(info.LimitForms, ", "),
				})
			}
			r.Table([]string{"ID", "Name", "Implemented", "Quote", "Row limits"}, rows)
			return nil
		},
	}
}
