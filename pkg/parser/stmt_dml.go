package parser

import (
	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// insertParser parses
//
//	INSERT [INTO] name [( cols )]
//	  (VALUES ( exprs ) {, ( exprs )} | statement | DEFAULT VALUES)
//	  [RETURNING select_list]
type insertParser struct{ base }

func (p *insertParser) CanParse(c *Cursor) bool {
	return c.IsKeyword("INSERT")
}

func (p *insertParser) Parse(c *Cursor) (core.Body, error) {
	c.Next() // INSERT
	c.AcceptKeyword("INTO")

	table, err := p.expr.parseObjectName(c)
	if err != nil {
		return nil, err
	}
	stmt := &core.InsertStatement{Table: table}

	if c.Match("(", token.Parenthesis) && !startsParenQuery(c) {
		if stmt.Columns, err = p.expr.parseIdentList(c); err != nil {
			return nil, err
		}
	}

	switch {
	case c.AcceptKeyword("VALUES"):
		for {
			if _, err := c.Expect("(", token.Parenthesis); err != nil {
				return nil, err
			}
			row, err := p.expr.parseExprList(c)
			if err != nil {
				return nil, err
			}
			if _, err := c.Expect(")", token.Parenthesis); err != nil {
				return nil, err
			}
			stmt.Values = append(stmt.Values, row)
			if !c.Accept(",", token.Comma) {
				break
			}
		}
	case c.IsKeyword("DEFAULT") && c.PeekKeyword(1, "VALUES"):
		c.Next()
		c.Next()
		stmt.DefaultValues = true
	case startsQuery(c):
		if stmt.Query, err = p.stmts.query(c); err != nil {
			return nil, err
		}
	default:
		return nil, c.Errorf(ErrUnexpectedToken, c.Current(), "VALUES or SELECT")
	}

	if stmt.Returning, err = p.parseReturning(c); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseReturning parses an optional RETURNING list.
func (b base) parseReturning(c *Cursor) ([]*core.SelectItem, error) {
	if !c.IsKeyword("RETURNING") {
		return nil, nil
	}
	if !b.d.Supports(dialect.FeatureReturning) {
		return nil, b.unsupported(c, "RETURNING")
	}
	c.Next()
	return parseSelectItems(b.expr, c)
}

// parseTarget parses the target table of UPDATE and DELETE.
func (b base) parseTarget(c *Cursor) (*core.TableName, error) {
	name, err := b.expr.parseObjectName(c)
	if err != nil {
		return nil, err
	}
	tn := &core.TableName{Name: name}
	if tn.Alias, err = b.expr.parseAlias(c); err != nil {
		return nil, err
	}
	return tn, nil
}

// updateParser parses
//
//	UPDATE target SET col = expr {, col = expr}
//	  [FROM from] [WHERE expr] [RETURNING select_list]
type updateParser struct{ base }

func (p *updateParser) CanParse(c *Cursor) bool {
	return c.IsKeyword("UPDATE")
}

func (p *updateParser) Parse(c *Cursor) (core.Body, error) {
	c.Next() // UPDATE
	target, err := p.parseTarget(c)
	if err != nil {
		return nil, err
	}
	stmt := &core.UpdateStatement{Table: target}

	if err := c.ExpectKeyword("SET"); err != nil {
		return nil, err
	}
	for {
		a, err := p.parseAssignment(c)
		if err != nil {
			return nil, err
		}
		stmt.Set = append(stmt.Set, a)
		if !c.Accept(",", token.Comma) {
			break
		}
	}

	if c.AcceptKeyword("FROM") {
		if stmt.From, err = p.parseFrom(c); err != nil {
			return nil, err
		}
	}
	if c.AcceptKeyword("WHERE") {
		if stmt.Where, err = p.expr.parseExpr(c); err != nil {
			return nil, err
		}
	}
	if stmt.Returning, err = p.parseReturning(c); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseAssignment parses [table.]col = expr.
func (p *updateParser) parseAssignment(c *Cursor) (*core.Assignment, error) {
	first, err := p.expr.parseIdent(c)
	if err != nil {
		return nil, err
	}
	col := &core.ColumnRef{Column: first}
	if c.Accept(".", token.Operator) {
		col.Table = first
		if col.Column, err = p.expr.parseIdent(c); err != nil {
			return nil, err
		}
	}
	if _, err := c.Expect("=", token.Operator); err != nil {
		return nil, err
	}
	value, err := p.expr.parseExpr(c)
	if err != nil {
		return nil, err
	}
	return &core.Assignment{Column: col, Value: value}, nil
}

// deleteParser parses
//
//	DELETE [FROM] target [WHERE expr] [RETURNING select_list]
type deleteParser struct{ base }

func (p *deleteParser) CanParse(c *Cursor) bool {
	return c.IsKeyword("DELETE")
}

func (p *deleteParser) Parse(c *Cursor) (core.Body, error) {
	c.Next() // DELETE
	c.AcceptKeyword("FROM")

	target, err := p.parseTarget(c)
	if err != nil {
		return nil, err
	}
	stmt := &core.DeleteStatement{Table: target}

	if c.AcceptKeyword("WHERE") {
		if stmt.Where, err = p.expr.parseExpr(c); err != nil {
			return nil, err
		}
	}
	if stmt.Returning, err = p.parseReturning(c); err != nil {
		return nil, err
	}
	return stmt, nil
}
