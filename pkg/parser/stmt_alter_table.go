package parser

import (
	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// alterTableParser parses
//
//	ALTER TABLE name action {, action}
//	action → ADD [COLUMN] column_def | ADD table_constraint
//	       | ADD INDEX name ( index_cols )
//	       | DROP [COLUMN] [IF EXISTS] name | DROP CONSTRAINT [IF EXISTS] name
//	       | DROP INDEX name
//	       | ALTER [COLUMN] name [SET DATA] [TYPE] type {column_constraint}
//	       | MODIFY [COLUMN] column_def
//	       | RENAME [TO] name | RENAME [COLUMN] name TO name
//
// After a comma an action may omit its verb, in which case the previous
// ADD or DROP carries over: ADD a INT, b INT.
type alterTableParser struct{ base }

func (p *alterTableParser) CanParse(c *Cursor) bool {
	return c.IsKeyword("ALTER") && c.PeekKeyword(1, "TABLE")
}

func (p *alterTableParser) Parse(c *Cursor) (core.Body, error) {
	c.Next() // ALTER
	c.Next() // TABLE
	table, err := p.expr.parseObjectName(c)
	if err != nil {
		return nil, err
	}
	stmt := &core.AlterTableStatement{Table: table}

	var prev *core.AlterTableAction
	for {
		var action *core.AlterTableAction
		if prev != nil && !p.startsAlterVerb(c) {
			action, err = p.parseContinuation(c, prev)
		} else {
			action, err = p.parseAction(c)
		}
		if err != nil {
			return nil, err
		}
		stmt.Actions = append(stmt.Actions, action)
		prev = action
		if !c.Accept(",", token.Comma) {
			return stmt, nil
		}
	}
}

func (p *alterTableParser) startsAlterVerb(c *Cursor) bool {
	return c.IsKeyword("ADD") || c.IsKeyword("DROP") || c.IsKeyword("ALTER") ||
		c.IsKeyword("MODIFY") || c.IsKeyword("RENAME")
}

func (p *alterTableParser) parseAction(c *Cursor) (*core.AlterTableAction, error) {
	switch {
	case c.AcceptKeyword("ADD"):
		return p.parseAdd(c, true)
	case c.AcceptKeyword("DROP"):
		return p.parseDrop(c)
	case c.AcceptKeyword("ALTER"):
		c.AcceptKeyword("COLUMN")
		return p.parseAlterColumn(c)
	case c.AcceptKeyword("MODIFY"):
		c.AcceptKeyword("COLUMN")
		col, err := p.parseColumnDef(c)
		if err != nil {
			return nil, err
		}
		return &core.AlterTableAction{Type: core.AlterModifyColumn, Column: col}, nil
	case c.AcceptKeyword("RENAME"):
		return p.parseRename(c)
	}
	return nil, c.Errorf(ErrUnexpectedToken, c.Current(), "ADD, DROP, ALTER, MODIFY or RENAME")
}

// parseContinuation parses a verb-less action following prev.
func (p *alterTableParser) parseContinuation(c *Cursor, prev *core.AlterTableAction) (*core.AlterTableAction, error) {
	switch prev.Type {
	case core.AlterAddColumn, core.AlterAddConstraint:
		return p.parseAdd(c, false)
	case core.AlterDropColumn, core.AlterDropConstraint:
		action := &core.AlterTableAction{Type: prev.Type, IfExists: acceptIfExists(c)}
		var err error
		if action.Name, err = p.expr.parseIdent(c); err != nil {
			return nil, err
		}
		return action, nil
	}
	return nil, c.Errorf(ErrUnexpectedToken, c.Current(), "ADD, DROP, ALTER, MODIFY or RENAME")
}

// parseAdd parses the body of an ADD action. Index additions need an
// explicit verb.
func (p *alterTableParser) parseAdd(c *Cursor, verb bool) (*core.AlterTableAction, error) {
	if p.startsTableConstraint(c) {
		tc, err := p.parseTableConstraint(c)
		if err != nil {
			return nil, err
		}
		return &core.AlterTableAction{Type: core.AlterAddConstraint, Constraint: tc}, nil
	}
	if verb && c.IsKeyword("INDEX") && p.isIdentToken(c.Peek(1)) && c.Peek(2).Is(token.Parenthesis, "(") {
		c.Next()
		name, err := p.expr.parseIdent(c)
		if err != nil {
			return nil, err
		}
		cols, err := p.parseIndexColumns(c)
		if err != nil {
			return nil, err
		}
		return &core.AlterTableAction{Type: core.AlterAddIndex, Name: name, IndexColumns: cols}, nil
	}
	if verb {
		c.AcceptKeyword("COLUMN")
	}
	col, err := p.parseColumnDef(c)
	if err != nil {
		return nil, err
	}
	return &core.AlterTableAction{Type: core.AlterAddColumn, Column: col}, nil
}

func (p *alterTableParser) parseDrop(c *Cursor) (*core.AlterTableAction, error) {
	var err error
	switch {
	case c.AcceptKeyword("CONSTRAINT"):
		action := &core.AlterTableAction{Type: core.AlterDropConstraint, IfExists: acceptIfExists(c)}
		if action.Name, err = p.expr.parseIdent(c); err != nil {
			return nil, err
		}
		return action, nil
	case c.IsKeyword("INDEX") && p.isIdentToken(c.Peek(1)):
		c.Next()
		action := &core.AlterTableAction{Type: core.AlterDropIndex}
		if action.Name, err = p.expr.parseIdent(c); err != nil {
			return nil, err
		}
		return action, nil
	}
	c.AcceptKeyword("COLUMN")
	action := &core.AlterTableAction{Type: core.AlterDropColumn, IfExists: acceptIfExists(c)}
	if action.Name, err = p.expr.parseIdent(c); err != nil {
		return nil, err
	}
	return action, nil
}

// parseAlterColumn parses name [SET DATA] [TYPE] type {column_constraint}.
func (p *alterTableParser) parseAlterColumn(c *Cursor) (*core.AlterTableAction, error) {
	name, err := p.expr.parseIdent(c)
	if err != nil {
		return nil, err
	}
	if c.IsKeyword("SET") && c.PeekKeyword(1, "DATA") {
		c.Next()
		c.Next()
		if err := c.ExpectKeyword("TYPE"); err != nil {
			return nil, err
		}
	} else {
		c.AcceptKeyword("TYPE")
	}
	typ, err := p.expr.parseDataType(c)
	if err != nil {
		return nil, err
	}
	col := &core.ColumnDef{Name: name, Type: typ}
	if col.Constraints, err = p.parseColumnConstraints(c); err != nil {
		return nil, err
	}
	return &core.AlterTableAction{Type: core.AlterModifyColumn, Column: col}, nil
}

// parseRename parses RENAME [TO] t, RENAME COLUMN a TO b and RENAME a TO b.
func (p *alterTableParser) parseRename(c *Cursor) (*core.AlterTableAction, error) {
	var err error
	if c.AcceptKeyword("TO") {
		action := &core.AlterTableAction{Type: core.AlterRenameTable}
		if action.NewName, err = p.expr.parseIdent(c); err != nil {
			return nil, err
		}
		return action, nil
	}
	column := c.AcceptKeyword("COLUMN")
	name, err := p.expr.parseIdent(c)
	if err != nil {
		return nil, err
	}
	if !column && !c.IsKeyword("TO") {
		return &core.AlterTableAction{Type: core.AlterRenameTable, NewName: name}, nil
	}
	if err := c.ExpectKeyword("TO"); err != nil {
		return nil, err
	}
	action := &core.AlterTableAction{Type: core.AlterRenameColumn, Name: name}
	if action.NewName, err = p.expr.parseIdent(c); err != nil {
		return nil, err
	}
	return action, nil
}

func (b base) isIdentToken(tok token.Token) bool {
	return b.expr.isIdentToken(tok)
}
