package parser

import (
	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// StatementParser parses one statement shape.
type StatementParser interface {
	// CanParse reports whether the cursor is at this statement's leading
	// keywords. It must not consume tokens.
	CanParse(c *Cursor) bool
	// Parse consumes the statement.
	Parse(c *Cursor) (core.Body, error)
}

// Dispatcher selects a statement parser by lookahead. Parsers are tried
// in registration order and the first whose CanParse succeeds is used.
type Dispatcher struct {
	parsers []StatementParser
}

// NewDispatcher creates a dispatcher over the given parsers.
func NewDispatcher(parsers ...StatementParser) *Dispatcher {
	return &Dispatcher{parsers: parsers}
}

// Dispatch parses the statement at the cursor.
func (d *Dispatcher) Dispatch(c *Cursor) (core.Body, error) {
	for _, p := range d.parsers {
		if p.CanParse(c) {
			return p.Parse(c)
		}
	}
	return nil, c.Errorf(ErrUnrecognizedStatement, c.Current())
}

// dispatchCell is the indirection through which expression and statement
// parsers reach the dispatcher that is built after them. It is bound once
// during wiring and only read afterwards.
type dispatchCell struct {
	d *Dispatcher
}

func (cell *dispatchCell) bind(d *Dispatcher) {
	if cell.d != nil {
		panic("parser: dispatcher already bound")
	}
	cell.d = d
}

func (cell *dispatchCell) dispatch(c *Cursor) (core.Body, error) {
	if cell.d == nil {
		panic("parser: dispatcher used before binding")
	}
	if err := c.enter(); err != nil {
		return nil, err
	}
	defer c.leave()
	return cell.d.Dispatch(c)
}

// query parses a nested query (subquery, CTE body, INSERT source) through
// the dispatcher and requires it to be a SELECT.
func (cell *dispatchCell) query(c *Cursor) (*core.SelectStatement, error) {
	start := c.Current()
	if !startsQuery(c) {
		return nil, c.Errorf(ErrUnexpectedToken, start, "SELECT")
	}
	body, err := cell.dispatch(c)
	if err != nil {
		return nil, err
	}
	q, ok := body.(*core.SelectStatement)
	if !ok {
		return nil, &ParseError{Pos: start.Pos, Token: start, Message: "expected a query"}
	}
	return q, nil
}

// startsQuery reports whether the cursor is at SELECT or WITH.
func startsQuery(c *Cursor) bool {
	return c.IsKeyword("SELECT") || c.IsKeyword("WITH")
}

// startsParenQuery reports whether the cursor is at ( SELECT or ( WITH.
func startsParenQuery(c *Cursor) bool {
	return c.Match("(", token.Parenthesis) && (c.PeekKeyword(1, "SELECT") || c.PeekKeyword(1, "WITH"))
}
