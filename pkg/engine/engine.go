// Package engine is the entry point for parsing and rendering SQL by
// dialect ID.
//
// CreateParser, CreateReconstructor and CreateFormatter return
// process-wide instances, wired once per dialect on first use and shared
// read-only afterwards. Requesting a dialect without an implementation
// fails immediately with a *dialect.ConfigurationError.
//
// A Pipeline bundles the three for callers that work on scripts rather
// than single statements: the CLI, the HTTP API and Batch.
package engine

import (
	"strings"
	"sync"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/format"
	"github.com/leapstack-labs/sqlround/pkg/parser"

	// Implemented dialects register themselves at init.
	_ "github.com/leapstack-labs/sqlround/pkg/dialects/generic"
	_ "github.com/leapstack-labs/sqlround/pkg/dialects/mssql"
	_ "github.com/leapstack-labs/sqlround/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/sqlround/pkg/dialects/sqlanywhere"
)

// components is the wired set for one dialect.
type components struct {
	once          sync.Once
	dialect       *dialect.Dialect
	parser        *parser.Parser
	reconstructor *format.Reconstructor
	formatter     *format.Formatter
	err           error
}

var (
	cacheMu sync.Mutex
	cache   = make(map[dialect.ID]*components)
)

func load(id dialect.ID) (*components, error) {
	if !id.Valid() {
		return nil, &dialect.ConfigurationError{Dialect: id, Message: "unknown dialect"}
	}

	cacheMu.Lock()
	c, ok := cache[id]
	if !ok {
		c = &components{}
		cache[id] = c
	}
	cacheMu.Unlock()

	c.once.Do(func() {
		d, err := dialect.Lookup(id)
		if err != nil {
			c.err = err
			return
		}
		c.dialect = d
		c.parser = parser.New(d, parser.Options{})
		c.reconstructor = format.NewReconstructor(d)
		c.formatter = format.NewFormatter(d, format.DefaultOptions())
	})
	if c.err != nil {
		return nil, c.err
	}
	return c, nil
}

// CreateParser returns the shared parser for id.
func CreateParser(id dialect.ID) (*parser.Parser, error) {
	c, err := load(id)
	if err != nil {
		return nil, err
	}
	return c.parser, nil
}

// CreateReconstructor returns the shared reconstructor for id.
func CreateReconstructor(id dialect.ID) (*format.Reconstructor, error) {
	c, err := load(id)
	if err != nil {
		return nil, err
	}
	return c.reconstructor, nil
}

// CreateFormatter returns the shared formatter for id, configured with
// format.DefaultOptions. Use Formatter.WithOptions for other layouts.
func CreateFormatter(id dialect.ID) (*format.Formatter, error) {
	c, err := load(id)
	if err != nil {
		return nil, err
	}
	return c.formatter, nil
}

// Mode selects the renderer a Pipeline applies.
type Mode int

// Render modes.
const (
	ModeFormat Mode = iota
	ModeReconstruct
)

func (m Mode) String() string {
	if m == ModeReconstruct {
		return "reconstruct"
	}
	return "format"
}

// Options configures a Pipeline. The zero value selects the shared
// instances.
type Options struct {
	Parser parser.Options
	Format format.Options
}

// Pipeline parses scripts and renders them back in one dialect. It is
// safe for concurrent use.
type Pipeline struct {
	parser        *parser.Parser
	reconstructor *format.Reconstructor
	formatter     *format.Formatter
}

// New returns a Pipeline for id. Parser options other than the default
// get a dedicated parser; format options are applied to the shared
// formatter.
func New(id dialect.ID, opts Options) (*Pipeline, error) {
	c, err := load(id)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{parser: c.parser, reconstructor: c.reconstructor, formatter: c.formatter}
	if opts.Parser != (parser.Options{}) {
		p.parser = parser.New(c.dialect, opts.Parser)
	}
	if opts.Format != (format.Options{}) {
		p.formatter = c.formatter.WithOptions(opts.Format)
	}
	return p, nil
}

// WithFormat returns a copy of p whose formatter uses opts. The zero
// Options returns p unchanged.
func (p *Pipeline) WithFormat(opts format.Options) *Pipeline {
	if opts == (format.Options{}) {
		return p
	}
	cp := *p
	cp.formatter = p.formatter.WithOptions(opts)
	return &cp
}

// Dialect returns the pipeline's dialect.
func (p *Pipeline) Dialect() *dialect.Dialect { return p.parser.Dialect() }

// Parser returns the pipeline's parser.
func (p *Pipeline) Parser() *parser.Parser { return p.parser }

// Formatter returns the pipeline's formatter.
func (p *Pipeline) Formatter() *format.Formatter { return p.formatter }

// Parse parses a semicolon separated script.
func (p *Pipeline) Parse(sql string) ([]*core.SqlStatement, error) {
	return p.parser.ParseScript(sql)
}

// Render renders parsed statements. A single statement is rendered bare;
// several are each terminated by a semicolon, separated by a blank line
// when formatting and by a space when reconstructing.
func (p *Pipeline) Render(stmts []*core.SqlStatement, mode Mode) string {
	render := p.formatter.Format
	sep := "\n\n"
	if mode == ModeReconstruct {
		render = p.reconstructor.Reconstruct
		sep = " "
	}
	if len(stmts) == 1 {
		return render(stmts[0])
	}

	var sb strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(render(stmt))
		sb.WriteByte(';')
	}
	return sb.String()
}

// Run parses sql and renders it in mode.
func (p *Pipeline) Run(sql string, mode Mode) (string, error) {
	stmts, err := p.Parse(sql)
	if err != nil {
		return "", err
	}
	return p.Render(stmts, mode), nil
}

// Format parses sql and returns it formatted.
func (p *Pipeline) Format(sql string) (string, error) {
	return p.Run(sql, ModeFormat)
}

// Reconstruct parses sql and returns it as compact SQL.
func (p *Pipeline) Reconstruct(sql string) (string, error) {
	return p.Run(sql, ModeReconstruct)
}

// FormatSQL formats a script in dialect id.
func FormatSQL(sql string, id dialect.ID, opts format.Options) (string, error) {
	p, err := New(id, Options{Format: opts})
	if err != nil {
		return "", err
	}
	return p.Format(sql)
}

// ReconstructSQL reconstructs a script in dialect id.
func ReconstructSQL(sql string, id dialect.ID) (string, error) {
	p, err := New(id, Options{})
	if err != nil {
		return "", err
	}
	return p.Reconstruct(sql)
}
