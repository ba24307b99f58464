package parser

import (
	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// createIndexParser parses
//
//	CREATE [UNIQUE] [CLUSTERED|NONCLUSTERED] INDEX [IF NOT EXISTS] name
//	  ON table ( col [ASC|DESC] {, col [ASC|DESC]} )
type createIndexParser struct{ base }

func (p *createIndexParser) CanParse(c *Cursor) bool {
	if !c.IsKeyword("CREATE") {
		return false
	}
	i := 1
	if c.PeekKeyword(i, "UNIQUE") {
		i++
	}
	if c.PeekKeyword(i, "CLUSTERED") || c.PeekKeyword(i, "NONCLUSTERED") {
		i++
	}
	return c.PeekKeyword(i, "INDEX")
}

func (p *createIndexParser) Parse(c *Cursor) (core.Body, error) {
	c.Next() // CREATE
	stmt := &core.CreateIndexStatement{Unique: c.AcceptKeyword("UNIQUE")}
	switch {
	case c.AcceptKeyword("CLUSTERED"):
		stmt.Clustering = core.IndexClustered
	case c.AcceptKeyword("NONCLUSTERED"):
		stmt.Clustering = core.IndexNonClustered
	}
	if err := c.ExpectKeyword("INDEX"); err != nil {
		return nil, err
	}
	stmt.IfNotExists = acceptIfNotExists(c)

	var err error
	if stmt.Name, err = p.expr.parseIdent(c); err != nil {
		return nil, err
	}
	if err := c.ExpectKeyword("ON"); err != nil {
		return nil, err
	}
	if stmt.Table, err = p.expr.parseObjectName(c); err != nil {
		return nil, err
	}
	if stmt.Columns, err = p.parseIndexColumns(c); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseIndexColumns parses ( col [ASC|DESC] {, ...} ).
func (b base) parseIndexColumns(c *Cursor) ([]*core.IndexColumn, error) {
	if _, err := c.Expect("(", token.Parenthesis); err != nil {
		return nil, err
	}
	var cols []*core.IndexColumn
	for {
		name, err := b.expr.parseIdent(c)
		if err != nil {
			return nil, err
		}
		col := &core.IndexColumn{Name: name}
		switch {
		case c.AcceptKeyword("ASC"):
			col.Direction = core.SortAsc
		case c.AcceptKeyword("DESC"):
			col.Direction = core.SortDesc
		}
		cols = append(cols, col)
		if !c.Accept(",", token.Comma) {
			break
		}
	}
	if _, err := c.Expect(")", token.Parenthesis); err != nil {
		return nil, err
	}
	return cols, nil
}

// dropIndexParser parses DROP INDEX [IF EXISTS] name [ON table].
type dropIndexParser struct{ base }

func (p *dropIndexParser) CanParse(c *Cursor) bool {
	return c.IsKeyword("DROP") && c.PeekKeyword(1, "INDEX")
}

func (p *dropIndexParser) Parse(c *Cursor) (core.Body, error) {
	c.Next() // DROP
	c.Next() // INDEX
	stmt := &core.DropIndexStatement{IfExists: acceptIfExists(c)}

	var err error
	if stmt.Name, err = p.expr.parseObjectName(c); err != nil {
		return nil, err
	}
	if c.AcceptKeyword("ON") {
		if stmt.Table, err = p.expr.parseObjectName(c); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// dropTableParser parses DROP TABLE [IF EXISTS] name {, name} [CASCADE|RESTRICT].
type dropTableParser struct{ base }

func (p *dropTableParser) CanParse(c *Cursor) bool {
	return c.IsKeyword("DROP") && c.PeekKeyword(1, "TABLE")
}

func (p *dropTableParser) Parse(c *Cursor) (core.Body, error) {
	c.Next() // DROP
	c.Next() // TABLE
	stmt := &core.DropTableStatement{IfExists: acceptIfExists(c)}
	for {
		name, err := p.expr.parseObjectName(c)
		if err != nil {
			return nil, err
		}
		stmt.Tables = append(stmt.Tables, name)
		if !c.Accept(",", token.Comma) {
			break
		}
	}
	switch {
	case c.AcceptKeyword("CASCADE"):
		stmt.Behavior = core.DropCascade
	case c.AcceptKeyword("RESTRICT"):
		stmt.Behavior = core.DropRestrict
	}
	return stmt, nil
}
