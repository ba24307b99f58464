package parser

import (
	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// createTableParser parses
//
//	CREATE TABLE [IF NOT EXISTS] name ( element {, element} )
//	element           → column_def | table_constraint
//	column_def        → name type { column_constraint }
//	column_constraint → [CONSTRAINT name] (NOT NULL | NULL | PRIMARY KEY
//	                    | UNIQUE | DEFAULT expr | DEFAULT AUTOINCREMENT
//	                    | CHECK ( expr ) | references | IDENTITY [( s, i )])
//	table_constraint  → [CONSTRAINT name] (PRIMARY KEY ( cols ) | UNIQUE ( cols )
//	                    | FOREIGN KEY ( cols ) references | CHECK ( expr ))
//	references        → REFERENCES name [( cols )] [ON (DELETE|UPDATE) action]...
type createTableParser struct{ base }

func (p *createTableParser) CanParse(c *Cursor) bool {
	return c.IsKeyword("CREATE") && c.PeekKeyword(1, "TABLE")
}

func (p *createTableParser) Parse(c *Cursor) (core.Body, error) {
	c.Next() // CREATE
	c.Next() // TABLE
	stmt := &core.CreateTableStatement{IfNotExists: acceptIfNotExists(c)}

	var err error
	if stmt.Table, err = p.expr.parseObjectName(c); err != nil {
		return nil, err
	}
	if _, err := c.Expect("(", token.Parenthesis); err != nil {
		return nil, err
	}
	for {
		if p.startsTableConstraint(c) {
			tc, err := p.parseTableConstraint(c)
			if err != nil {
				return nil, err
			}
			stmt.Constraints = append(stmt.Constraints, tc)
		} else {
			col, err := p.parseColumnDef(c)
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, col)
		}
		if !c.Accept(",", token.Comma) {
			break
		}
	}
	if _, err := c.Expect(")", token.Parenthesis); err != nil {
		return nil, err
	}
	return stmt, nil
}

// acceptIfNotExists consumes IF NOT EXISTS.
func acceptIfNotExists(c *Cursor) bool {
	if c.IsKeyword("IF") && c.PeekKeyword(1, "NOT") && c.PeekKeyword(2, "EXISTS") {
		c.Next()
		c.Next()
		c.Next()
		return true
	}
	return false
}

// acceptIfExists consumes IF EXISTS.
func acceptIfExists(c *Cursor) bool {
	if c.IsKeyword("IF") && c.PeekKeyword(1, "EXISTS") {
		c.Next()
		c.Next()
		return true
	}
	return false
}

func (b base) startsTableConstraint(c *Cursor) bool {
	return c.IsKeyword("CONSTRAINT") || c.IsKeyword("PRIMARY") || c.IsKeyword("UNIQUE") ||
		c.IsKeyword("FOREIGN") || c.IsKeyword("CHECK")
}

func (b base) parseColumnDef(c *Cursor) (*core.ColumnDef, error) {
	name, err := b.expr.parseIdent(c)
	if err != nil {
		return nil, err
	}
	typ, err := b.expr.parseDataType(c)
	if err != nil {
		return nil, err
	}
	col := &core.ColumnDef{Name: name, Type: typ}
	if col.Constraints, err = b.parseColumnConstraints(c); err != nil {
		return nil, err
	}
	return col, nil
}

func (b base) parseColumnConstraints(c *Cursor) ([]*core.ColumnConstraint, error) {
	var out []*core.ColumnConstraint
	for {
		var name core.QuotedIdentifier
		named := c.AcceptKeyword("CONSTRAINT")
		if named {
			var err error
			if name, err = b.expr.parseIdent(c); err != nil {
				return nil, err
			}
		}
		cc, err := b.parseColumnConstraint(c)
		if err != nil {
			return nil, err
		}
		if cc == nil {
			if named {
				return nil, c.Errorf(ErrUnexpectedToken, c.Current(), "constraint")
			}
			return out, nil
		}
		cc.Name = name
		out = append(out, cc)
	}
}

// parseColumnConstraint parses one constraint, or returns nil if the
// cursor is not at one.
func (b base) parseColumnConstraint(c *Cursor) (*core.ColumnConstraint, error) {
	var err error
	switch {
	case c.IsKeyword("NOT") && c.PeekKeyword(1, "NULL"):
		c.Next()
		c.Next()
		return &core.ColumnConstraint{Type: core.ColumnNotNull}, nil
	case c.AcceptKeyword("NULL"):
		return &core.ColumnConstraint{Type: core.ColumnNull}, nil
	case c.IsKeyword("PRIMARY"):
		if err := c.ExpectKeywords("PRIMARY", "KEY"); err != nil {
			return nil, err
		}
		return &core.ColumnConstraint{Type: core.ColumnPrimaryKey}, nil
	case c.AcceptKeyword("UNIQUE"):
		return &core.ColumnConstraint{Type: core.ColumnUnique}, nil
	case c.AcceptKeyword("DEFAULT"):
		if c.IsKeyword("AUTOINCREMENT") && b.d.Supports(dialect.FeatureAutoIncrement) {
			c.Next()
			return &core.ColumnConstraint{Type: core.ColumnAutoIncrement}, nil
		}
		cc := &core.ColumnConstraint{Type: core.ColumnDefault}
		if cc.Expr, err = b.expr.parseExpr(c); err != nil {
			return nil, err
		}
		return cc, nil
	case c.AcceptKeyword("CHECK"):
		cc := &core.ColumnConstraint{Type: core.ColumnCheck}
		if cc.Expr, err = b.parseParenExpr(c); err != nil {
			return nil, err
		}
		return cc, nil
	case c.IsKeyword("REFERENCES"):
		cc := &core.ColumnConstraint{Type: core.ColumnReferences}
		if cc.Reference, err = b.parseReference(c); err != nil {
			return nil, err
		}
		return cc, nil
	case c.IsKeyword("IDENTITY") && b.d.Supports(dialect.FeatureIdentity):
		c.Next()
		cc := &core.ColumnConstraint{Type: core.ColumnIdentity}
		if c.Accept("(", token.Parenthesis) {
			if cc.Seed, err = b.expr.parseExpr(c); err != nil {
				return nil, err
			}
			if _, err := c.Expect(",", token.Comma); err != nil {
				return nil, err
			}
			if cc.Increment, err = b.expr.parseExpr(c); err != nil {
				return nil, err
			}
			if _, err := c.Expect(")", token.Parenthesis); err != nil {
				return nil, err
			}
		}
		return cc, nil
	}
	return nil, nil
}

// parseParenExpr parses ( expr ) and returns the inner expression.
func (b base) parseParenExpr(c *Cursor) (core.Expr, error) {
	if _, err := c.Expect("(", token.Parenthesis); err != nil {
		return nil, err
	}
	e, err := b.expr.parseExpr(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.Expect(")", token.Parenthesis); err != nil {
		return nil, err
	}
	return e, nil
}

func (b base) parseReference(c *Cursor) (*core.Reference, error) {
	c.Next() // REFERENCES
	table, err := b.expr.parseObjectName(c)
	if err != nil {
		return nil, err
	}
	ref := &core.Reference{Table: table}
	if c.Match("(", token.Parenthesis) {
		if ref.Columns, err = b.expr.parseIdentList(c); err != nil {
			return nil, err
		}
	}
	for c.IsKeyword("ON") && (c.PeekKeyword(1, "DELETE") || c.PeekKeyword(1, "UPDATE")) {
		c.Next()
		onDelete := c.Next().IsKeyword("DELETE")
		action, err := parseReferentialAction(c)
		if err != nil {
			return nil, err
		}
		if onDelete {
			ref.OnDelete = action
		} else {
			ref.OnUpdate = action
		}
	}
	return ref, nil
}

func parseReferentialAction(c *Cursor) (core.ReferentialAction, error) {
	switch {
	case c.IsKeyword("NO") && c.PeekKeyword(1, "ACTION"):
		c.Next()
		c.Next()
		return core.ActionNoAction, nil
	case c.AcceptKeyword("RESTRICT"):
		return core.ActionRestrict, nil
	case c.AcceptKeyword("CASCADE"):
		return core.ActionCascade, nil
	case c.IsKeyword("SET") && c.PeekKeyword(1, "NULL"):
		c.Next()
		c.Next()
		return core.ActionSetNull, nil
	case c.IsKeyword("SET") && c.PeekKeyword(1, "DEFAULT"):
		c.Next()
		c.Next()
		return core.ActionSetDefault, nil
	}
	return core.ActionUnspecified, c.Errorf(ErrUnexpectedToken, c.Current(), "referential action")
}

func (b base) parseTableConstraint(c *Cursor) (*core.TableConstraint, error) {
	tc := &core.TableConstraint{}
	var err error
	if c.AcceptKeyword("CONSTRAINT") {
		if tc.Name, err = b.expr.parseIdent(c); err != nil {
			return nil, err
		}
	}
	switch {
	case c.IsKeyword("PRIMARY"):
		if err := c.ExpectKeywords("PRIMARY", "KEY"); err != nil {
			return nil, err
		}
		tc.Type = core.TablePrimaryKey
		tc.Columns, err = b.expr.parseIdentList(c)
	case c.AcceptKeyword("UNIQUE"):
		tc.Type = core.TableUnique
		tc.Columns, err = b.expr.parseIdentList(c)
	case c.IsKeyword("FOREIGN"):
		if err := c.ExpectKeywords("FOREIGN", "KEY"); err != nil {
			return nil, err
		}
		tc.Type = core.TableForeignKey
		if tc.Columns, err = b.expr.parseIdentList(c); err != nil {
			return nil, err
		}
		if !c.IsKeyword("REFERENCES") {
			return nil, c.Errorf(ErrUnexpectedToken, c.Current(), "REFERENCES")
		}
		tc.Reference, err = b.parseReference(c)
	case c.AcceptKeyword("CHECK"):
		tc.Type = core.TableCheck
		tc.Check, err = b.parseParenExpr(c)
	default:
		return nil, c.Errorf(ErrUnexpectedToken, c.Current(), "PRIMARY KEY, UNIQUE, FOREIGN KEY or CHECK")
	}
	if err != nil {
		return nil, err
	}
	return tc, nil
}
