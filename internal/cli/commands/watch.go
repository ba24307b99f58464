package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/sqlround/internal/watch"
	"github.com/spf13/cobra"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Write bool
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-check .sql files whenever they change",
		Long: `Watch a directory tree and format every .sql file that is written or
created. Files that are not formatted are reported; with --write they are
rewritten in place. Parse errors are reported with their position.

Every file is checked once at startup. Rapid successive writes are
debounced. Stop with Ctrl+C.`,
		Example: `  # Report unformatted files below models/
  sqlround watch models

  # Keep files formatted while editing
  sqlround watch --write --debounce 500ms .`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			info, err := os.Stat(dir)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watchDir(ctx, cc, dir, opts.Write || cc.Cfg.Watch.Write)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Rewrite files that are not formatted")
	cmd.Flags().Duration("debounce", 0, "Wait this long after the last change (default 200ms)")

	return cmd
}

func watchDir(ctx context.Context, cc *CommandContext, dir string, write bool) error {
	r := cc.Renderer
	w := watch.New(watch.Config{
		Pipeline: cc.Pipeline,
		Debounce: cc.Cfg.Watch.Debounce,
		Write:    write,
		Initial:  true,
		Logger:   cc.Logger,
		OnEvent: func(ev watch.Event) {
			switch {
			case ev.Err != nil && !ev.Changed:
				src, _ := os.ReadFile(ev.File) //nolint:gosec // file was just checked
				r.SQLError(ev.File, string(src), ev.Err)
			case ev.Err != nil:
				r.Error(fmt.Sprintf("%s: %v", ev.File, ev.Err))
			case ev.Written:
				r.StatusLine(ev.File, "changed", "rewritten")
			case ev.Changed:
				r.StatusLine(ev.File, "changed", "not formatted")
			default:
				r.StatusLine(ev.File, "success", "formatted")
			}
		},
	})

	r.Muted(fmt.Sprintf("Watching %s (Ctrl+C to stop)", dir))
	return w.Run(ctx, dir)
}
