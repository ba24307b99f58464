package engine

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Input is one named script.
type Input struct {
	Name string
	SQL  string
}

// Result is the outcome for one Input. Err holds the parse error, if any;
// Output is empty in that case.
type Result struct {
	Name    string
	Output  string
	Changed bool
	Err     error
}

// BatchOptions configures Batch.
type BatchOptions struct {
	Mode Mode
	// Jobs bounds concurrent renders. Zero or less uses GOMAXPROCS.
	Jobs   int
	Logger *slog.Logger
}

// Batch renders every input concurrently. Results keep input order. A
// parse error is recorded on its Result and does not stop the batch; the
// returned error is non-nil only when ctx is cancelled.
func (p *Pipeline) Batch(ctx context.Context, inputs []Input, opts BatchOptions) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	start := time.Now()
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := Result{Name: in.Name}
			out, err := p.Run(in.SQL, opts.Mode)
			if err != nil {
				logger.Debug("render failed", "name", in.Name, "error", err)
				res.Err = err
			} else {
				res.Output = out
				res.Changed = out != trimTrailingNewlines(in.SQL)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("batch complete",
		"inputs", len(inputs),
		"mode", opts.Mode.String(),
		"jobs", jobs,
		"duration", time.Since(start))
	return results, nil
}

// trimTrailingNewlines drops the final newlines an editor adds, so a file
// holding exactly the rendered text plus a newline is unchanged.
func trimTrailingNewlines(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
