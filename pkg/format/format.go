// Package format renders syntax trees back to SQL text.
//
// A Reconstructor emits compact single-line SQL, a Formatter emits the
// same tokens laid out over indented lines. Both share one set of
// per-node rendering methods on Printer, so anything the Reconstructor
// can print the Formatter prints too, and both re-parse to the same tree.
package format

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
)

// KeywordCase selects how the Formatter spells keywords.
type KeywordCase int

// Keyword cases.
const (
	KeywordUpper KeywordCase = iota
	KeywordLower
)

func (k KeywordCase) String() string {
	if k == KeywordLower {
		return "lower"
	}
	return "upper"
}

// ParseKeywordCase parses "upper" or "lower".
func ParseKeywordCase(s string) (KeywordCase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upper", "":
		return KeywordUpper, nil
	case "lower":
		return KeywordLower, nil
	}
	return KeywordUpper, fmt.Errorf("invalid keyword case %q (want upper or lower)", s)
}

// Indentation bounds for Options.IndentWidth.
const (
	MinIndent     = 1
	MaxIndent     = 8
	DefaultIndent = 2
)

// Options configures a Formatter.
type Options struct {
	IndentWidth int
	KeywordCase KeywordCase
}

// DefaultOptions returns two-space indentation with upper-case keywords.
func DefaultOptions() Options {
	return Options{IndentWidth: DefaultIndent, KeywordCase: KeywordUpper}
}

func (o Options) normalized() Options {
	if o.IndentWidth < MinIndent || o.IndentWidth > MaxIndent {
		o.IndentWidth = DefaultIndent
	}
	return o
}

// Reconstructor renders statements as compact SQL for one dialect. It
// holds no mutable state and is safe for concurrent use.
type Reconstructor struct {
	dialect *dialect.Dialect
}

// NewReconstructor returns a Reconstructor bound to d.
func NewReconstructor(d *dialect.Dialect) *Reconstructor {
	return &Reconstructor{dialect: d}
}

// Dialect returns the bound dialect.
func (r *Reconstructor) Dialect() *dialect.Dialect { return r.dialect }

// Reconstruct renders stmt on a single line. Keywords are upper case.
func (r *Reconstructor) Reconstruct(stmt *core.SqlStatement) string {
	p := newPrinter(r.dialect, false, 0, KeywordUpper)
	p.formatStatement(stmt)
	return p.String()
}

// Formatter renders statements as indented multi-line SQL. It holds no
// mutable state and is safe for concurrent use.
type Formatter struct {
	dialect *dialect.Dialect
	opts    Options
}

// NewFormatter returns a Formatter bound to d. Out of range indentation
// falls back to DefaultIndent.
func NewFormatter(d *dialect.Dialect, opts Options) *Formatter {
	return &Formatter{dialect: d, opts: opts.normalized()}
}

// Dialect returns the bound dialect.
func (f *Formatter) Dialect() *dialect.Dialect { return f.dialect }

// Options returns the effective options.
func (f *Formatter) Options() Options { return f.opts }

// WithOptions returns a Formatter for the same dialect with other options.
func (f *Formatter) WithOptions(opts Options) *Formatter {
	return NewFormatter(f.dialect, opts)
}

// Format renders stmt over indented lines, without a trailing newline.
func (f *Formatter) Format(stmt *core.SqlStatement) string {
	p := newPrinter(f.dialect, true, f.opts.IndentWidth, f.opts.KeywordCase)
	p.formatStatement(stmt)
	return p.String()
}

// Reconstruct renders stmt as compact SQL in dialect d.
func Reconstruct(stmt *core.SqlStatement, d *dialect.Dialect) string {
	return NewReconstructor(d).Reconstruct(stmt)
}

// Format renders stmt as indented SQL in dialect d with default options.
func Format(stmt *core.SqlStatement, d *dialect.Dialect) string {
	return NewFormatter(d, DefaultOptions()).Format(stmt)
}
