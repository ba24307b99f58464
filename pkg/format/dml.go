package format

import "github.com/leapstack-labs/sqlround/pkg/core"

func (p *Printer) formatInsert(stmt *core.InsertStatement) {
	p.kw("INSERT", "INTO")
	p.space()
	p.objectName(stmt.Table)
	if len(stmt.Columns) > 0 {
		p.space()
		p.identList(stmt.Columns)
	}

	switch {
	case stmt.DefaultValues:
		p.writeln()
		p.kw("DEFAULT", "VALUES")
	case stmt.Query != nil:
		p.writeln()
		p.formatSelectStmt(stmt.Query)
	default:
		p.writeln()
		p.kw("VALUES")
		p.indent()
		p.writeln()
		p.formatList(len(stmt.Values), func(i int) {
			row := stmt.Values[i]
			p.write("(")
			p.formatList(len(row), func(j int) { p.formatExpr(row[j]) }, false)
			p.write(")")
		}, true)
		p.dedent()
	}
	p.formatReturning(stmt.Returning)
}

func (p *Printer) formatUpdate(stmt *core.UpdateStatement) {
	p.kw("UPDATE")
	p.space()
	p.formatTableName(stmt.Table)

	p.writeln()
	p.kw("SET")
	p.indent()
	p.writeln()
	p.formatList(len(stmt.Set), func(i int) {
		a := stmt.Set[i]
		p.formatColumnRef(a.Column)
		p.space()
		p.write("=")
		p.space()
		p.formatExpr(a.Value)
	}, true)
	p.dedent()

	if stmt.From != nil {
		p.writeln()
		p.kw("FROM")
		p.space()
		p.formatFromClause(stmt.From)
	}
	if stmt.Where != nil {
		p.formatExprClause("WHERE", stmt.Where)
	}
	p.formatReturning(stmt.Returning)
}

func (p *Printer) formatDelete(stmt *core.DeleteStatement) {
	p.kw("DELETE", "FROM")
	p.space()
	p.formatTableName(stmt.Table)
	if stmt.Where != nil {
		p.formatExprClause("WHERE", stmt.Where)
	}
	p.formatReturning(stmt.Returning)
}

func (p *Printer) formatReturning(items []*core.SelectItem) {
	if len(items) == 0 {
		return
	}
	p.writeln()
	p.kw("RETURNING")
	p.indent()
	p.writeln()
	p.formatSelectItems(items)
	p.dedent()
}
