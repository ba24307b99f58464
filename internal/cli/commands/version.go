package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/engine"
	"github.com/spf13/cobra"
)

// NewVersionCommand prints build metadata and the dialects compiled in.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the sqlround version, build metadata and the dialects this binary can parse.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			if short {
				_, _ = fmt.Fprintln(w, version)
				return
			}

			var dialects []string
			for _, info := range engine.Describe() {
				if info.Implemented {
					dialects = append(dialects, info.ID)
				}
			}
			_, _ = fmt.Fprintf(w, "sqlround v%s\n", version)
			_, _ = fmt.Fprintf(w, "  commit:   %s\n", commit)
			_, _ = fmt.Fprintf(w, "  built:    %s\n", date)
			_, _ = fmt.Fprintf(w, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			_, _ = fmt.Fprintf(w, "  dialects: %s\n", strings.Join(dialects, ", "))
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}
