package format

import (
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
)

func (p *Printer) formatCreateTable(stmt *core.CreateTableStatement) {
	p.kw("CREATE", "TABLE")
	if stmt.IfNotExists {
		p.space()
		p.kw("IF", "NOT", "EXISTS")
	}
	p.space()
	p.objectName(stmt.Table)
	p.space()

	// Columns first, then table constraints.
	count := len(stmt.Columns) + len(stmt.Constraints)
	p.block(func() {
		p.formatList(count, func(i int) {
			if i < len(stmt.Columns) {
				p.formatColumnDef(stmt.Columns[i])
				return
			}
			p.formatTableConstraint(stmt.Constraints[i-len(stmt.Columns)])
		}, true)
	})
}

func (p *Printer) formatColumnDef(col *core.ColumnDef) {
	p.ident(col.Name)
	p.space()
	p.formatDataType(col.Type)
	p.formatColumnConstraints(col.Constraints)
}

func (p *Printer) formatColumnConstraints(constraints []*core.ColumnConstraint) {
	for _, cc := range constraints {
		p.space()
		p.formatColumnConstraint(cc)
	}
}

func (p *Printer) formatColumnConstraint(cc *core.ColumnConstraint) {
	p.constraintName(cc.Name)
	switch cc.Type {
	case core.ColumnNotNull:
		p.kw("NOT", "NULL")
	case core.ColumnNull:
		p.kw("NULL")
	case core.ColumnPrimaryKey:
		p.kw("PRIMARY", "KEY")
	case core.ColumnUnique:
		p.kw("UNIQUE")
	case core.ColumnDefault:
		p.kw("DEFAULT")
		p.space()
		p.formatExpr(cc.Expr)
	case core.ColumnAutoIncrement:
		p.kw("DEFAULT", "AUTOINCREMENT")
	case core.ColumnCheck:
		p.kw("CHECK")
		p.space()
		p.parenExpr(cc.Expr)
	case core.ColumnReferences:
		p.formatReference(cc.Reference)
	case core.ColumnIdentity:
		p.kw("IDENTITY")
		if cc.Seed != nil {
			p.write("(")
			p.formatExpr(cc.Seed)
			p.write(",")
			p.space()
			p.formatExpr(cc.Increment)
			p.write(")")
		}
	}
}

func (p *Printer) constraintName(name core.QuotedIdentifier) {
	if name.IsZero() {
		return
	}
	p.kw("CONSTRAINT")
	p.space()
	p.ident(name)
	p.space()
}

func (p *Printer) formatReference(ref *core.Reference) {
	p.kw("REFERENCES")
	p.space()
	p.objectName(ref.Table)
	if len(ref.Columns) > 0 {
		p.space()
		p.identList(ref.Columns)
	}
	if ref.OnDelete != core.ActionUnspecified {
		p.space()
		p.kw("ON", "DELETE")
		p.space()
		p.kw(strings.Fields(ref.OnDelete.String())...)
	}
	if ref.OnUpdate != core.ActionUnspecified {
		p.space()
		p.kw("ON", "UPDATE")
		p.space()
		p.kw(strings.Fields(ref.OnUpdate.String())...)
	}
}

func (p *Printer) formatTableConstraint(tc *core.TableConstraint) {
	p.constraintName(tc.Name)
	switch tc.Type {
	case core.TablePrimaryKey:
		p.kw("PRIMARY", "KEY")
		p.space()
		p.identList(tc.Columns)
	case core.TableUnique:
		p.kw("UNIQUE")
		p.space()
		p.identList(tc.Columns)
	case core.TableForeignKey:
		p.kw("FOREIGN", "KEY")
		p.space()
		p.identList(tc.Columns)
		p.space()
		p.formatReference(tc.Reference)
	case core.TableCheck:
		p.kw("CHECK")
		p.space()
		p.parenExpr(tc.Check)
	}
}

// ---------- ALTER TABLE ----------

func (p *Printer) formatAlterTable(stmt *core.AlterTableStatement) {
	p.kw("ALTER", "TABLE")
	p.space()
	p.objectName(stmt.Table)

	p.indent()
	p.writeln()
	for i, action := range stmt.Actions {
		grouped := false
		if i > 0 {
			p.write(",")
			p.writeln()
			grouped = p.dialect.Alter.GroupActions && sharesVerb(stmt.Actions[i-1], action)
		}
		p.formatAlterAction(action, grouped)
	}
	p.dedent()
}

// sharesVerb reports whether cur may follow prev without repeating the
// verb. Additions of columns and constraints continue each other; drops
// continue only a drop of the same kind.
func sharesVerb(prev, cur *core.AlterTableAction) bool {
	isAdd := func(t core.AlterActionType) bool {
		return t == core.AlterAddColumn || t == core.AlterAddConstraint
	}
	switch {
	case isAdd(prev.Type) && isAdd(cur.Type):
		return true
	case prev.Type == cur.Type:
		return cur.Type == core.AlterDropColumn || cur.Type == core.AlterDropConstraint
	}
	return false
}

func (p *Printer) formatAlterAction(a *core.AlterTableAction, grouped bool) {
	style := p.dialect.Alter
	switch a.Type {
	case core.AlterAddColumn:
		if !grouped {
			p.kw("ADD")
			if style.AddColumnKeyword {
				p.space()
				p.kw("COLUMN")
			}
			p.space()
		}
		p.formatColumnDef(a.Column)

	case core.AlterAddConstraint:
		if !grouped {
			p.kw("ADD")
			p.space()
		}
		p.formatTableConstraint(a.Constraint)

	case core.AlterAddIndex:
		p.kw("ADD", "INDEX")
		p.space()
		p.ident(a.Name)
		p.space()
		p.formatIndexColumns(a.IndexColumns)

	case core.AlterDropColumn:
		if !grouped {
			p.kw("DROP")
			if style.DropColumnKeyword {
				p.space()
				p.kw("COLUMN")
			}
			p.space()
		}
		p.ifExists(a.IfExists)
		p.ident(a.Name)

	case core.AlterDropConstraint:
		if !grouped {
			p.kw("DROP", "CONSTRAINT")
			p.space()
		}
		p.ifExists(a.IfExists)
		p.ident(a.Name)

	case core.AlterDropIndex:
		p.kw("DROP", "INDEX")
		p.space()
		p.ident(a.Name)

	case core.AlterModifyColumn:
		p.formatModifyColumn(a.Column, style.Modify)

	case core.AlterRenameTable:
		p.kw("RENAME")
		if style.RenameTableTo {
			p.space()
			p.kw("TO")
		}
		p.space()
		p.ident(a.NewName)

	case core.AlterRenameColumn:
		p.kw("RENAME")
		if style.RenameColumnKeyword {
			p.space()
			p.kw("COLUMN")
		}
		p.space()
		p.ident(a.Name)
		p.space()
		p.kw("TO")
		p.space()
		p.ident(a.NewName)
	}
}

func (p *Printer) formatModifyColumn(col *core.ColumnDef, form dialect.ModifyColumnForm) {
	switch form {
	case dialect.ModifyAlterColumnType:
		p.kw("ALTER", "COLUMN")
		p.space()
		p.ident(col.Name)
		p.space()
		p.kw("TYPE")
		p.space()
		p.formatDataType(col.Type)
		p.formatColumnConstraints(col.Constraints)
		return
	case dialect.ModifyAlter:
		p.kw("ALTER")
	case dialect.ModifyKeyword:
		p.kw("MODIFY")
	default:
		p.kw("ALTER", "COLUMN")
	}
	p.space()
	p.formatColumnDef(col)
}

func (p *Printer) ifExists(ok bool) {
	if ok {
		p.kw("IF", "EXISTS")
		p.space()
	}
}

// ---------- Indexes and DROP ----------

func (p *Printer) formatCreateIndex(stmt *core.CreateIndexStatement) {
	p.kw("CREATE")
	if stmt.Unique {
		p.space()
		p.kw("UNIQUE")
	}
	switch stmt.Clustering {
	case core.IndexClustered:
		p.space()
		p.kw("CLUSTERED")
	case core.IndexNonClustered:
		p.space()
		p.kw("NONCLUSTERED")
	}
	p.space()
	p.kw("INDEX")
	if stmt.IfNotExists {
		p.space()
		p.kw("IF", "NOT", "EXISTS")
	}
	p.space()
	p.ident(stmt.Name)
	p.space()
	p.kw("ON")
	p.space()
	p.objectName(stmt.Table)
	p.space()
	p.formatIndexColumns(stmt.Columns)
}

func (p *Printer) formatIndexColumns(cols []*core.IndexColumn) {
	p.write("(")
	p.formatList(len(cols), func(i int) {
		p.ident(cols[i].Name)
		switch cols[i].Direction {
		case core.SortAsc:
			p.space()
			p.kw("ASC")
		case core.SortDesc:
			p.space()
			p.kw("DESC")
		}
	}, false)
	p.write(")")
}

func (p *Printer) formatDropIndex(stmt *core.DropIndexStatement) {
	p.kw("DROP", "INDEX")
	p.space()
	p.ifExists(stmt.IfExists)
	p.objectName(stmt.Name)
	if !stmt.Table.IsZero() {
		p.space()
		p.kw("ON")
		p.space()
		p.objectName(stmt.Table)
	}
}

func (p *Printer) formatDropTable(stmt *core.DropTableStatement) {
	p.kw("DROP", "TABLE")
	p.space()
	p.ifExists(stmt.IfExists)
	p.formatList(len(stmt.Tables), func(i int) { p.objectName(stmt.Tables[i]) }, false)
	switch stmt.Behavior {
	case core.DropCascade:
		p.space()
		p.kw("CASCADE")
	case core.DropRestrict:
		p.space()
		p.kw("RESTRICT")
	}
}
