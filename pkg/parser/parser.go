// Package parser turns SQL text into the tree defined in pkg/core.
//
// # Usage
//
//	d, err := dialect.Lookup(dialect.MsSqlServer)
//	if err != nil {
//	    // handle ConfigurationError
//	}
//	p := parser.New(d, parser.Options{})
//	stmt, err := p.Parse("SELECT TOP 5 [Name] FROM [Users]")
//
// Most callers go through pkg/engine, which caches one wired Parser per
// dialect.
//
// # Structure
//
// The Lexer produces tokens; a Cursor walks them. Statement parsers (one
// per statement shape) are registered with a Dispatcher in a fixed order
// and chosen by lookahead. Expressions are parsed by precedence climbing
// over the dialect's operator table. Nested queries (subqueries, CTE
// bodies, INSERT ... SELECT) go back through the Dispatcher via a cell
// that is bound once, after every parser exists.
//
// Errors are never recovered: the first LexError or ParseError aborts the
// parse. A Parser holds no per-call state and is safe for concurrent use.
package parser

import (
	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// Options configures a Parser.
type Options struct {
	// MaxDepth bounds expression and subquery nesting. Zero selects
	// DefaultMaxDepth.
	MaxDepth int
}

// Parser parses SQL in one dialect.
type Parser struct {
	dialect    *dialect.Dialect
	dispatcher *Dispatcher
	maxDepth   int
}

// New wires a parser for the dialect. Wiring builds the expression parser
// and statement parsers against an unbound cell, builds the dispatcher
// from them and then binds the cell.
func New(d *dialect.Dialect, opts Options) *Parser {
	cell := &dispatchCell{}
	b := base{d: d, expr: &exprParser{d: d, stmts: cell}, stmts: cell}

	// CREATE TABLE and CREATE INDEX share the CREATE prefix; each
	// CanParse looks past it.
	dispatcher := NewDispatcher(
		&selectParser{b},
		&insertParser{b},
		&updateParser{b},
		&deleteParser{b},
		&createTableParser{b},
		&createIndexParser{b},
		&alterTableParser{b},
		&dropIndexParser{b},
		&dropTableParser{b},
	)
	cell.bind(dispatcher)

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{dialect: d, dispatcher: dispatcher, maxDepth: maxDepth}
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// Tokenize lexes sql without parsing it.
func (p *Parser) Tokenize(sql string) ([]token.Token, error) {
	return NewLexer(sql, p.dialect).Tokenize()
}

// Parse parses exactly one statement, optionally terminated by a semicolon.
func (p *Parser) Parse(sql string) (*core.SqlStatement, error) {
	c, err := p.cursor(sql)
	if err != nil {
		return nil, err
	}
	if c.AtEnd() {
		return nil, c.Errorf(ErrEmptyStatement)
	}
	stmt, err := p.parseOne(c)
	if err != nil {
		return nil, err
	}
	c.Accept(";", token.Semicolon)
	if !c.AtEnd() {
		return nil, c.Errorf(ErrTrailingInput, c.Current())
	}
	return stmt, nil
}

// ParseScript parses a semicolon separated sequence of statements. Empty
// statements are skipped.
func (p *Parser) ParseScript(sql string) ([]*core.SqlStatement, error) {
	c, err := p.cursor(sql)
	if err != nil {
		return nil, err
	}
	var stmts []*core.SqlStatement
	for {
		skipSemicolons(c)
		if c.AtEnd() {
			return stmts, nil
		}
		stmt, err := p.parseOne(c)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if !c.Accept(";", token.Semicolon) && !c.AtEnd() {
			return nil, c.Errorf(ErrTrailingInput, c.Current())
		}
	}
}

func (p *Parser) cursor(sql string) (*Cursor, error) {
	tokens, err := p.Tokenize(sql)
	if err != nil {
		return nil, err
	}
	return NewCursor(tokens, p.maxDepth), nil
}

func (p *Parser) parseOne(c *Cursor) (*core.SqlStatement, error) {
	body, err := p.dispatcher.Dispatch(c)
	if err != nil {
		return nil, err
	}
	return core.NewStatement(body), nil
}

func skipSemicolons(c *Cursor) {
	for c.Match(";", token.Semicolon) {
		c.Next()
	}
}
