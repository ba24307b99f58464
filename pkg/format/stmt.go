package format

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/core"
)

// formatStatement dispatches on the statement body. A body outside the
// closed set is a caller bug.
func (p *Printer) formatStatement(stmt *core.SqlStatement) {
	switch body := stmt.Body().(type) {
	case *core.SelectStatement:
		p.formatSelectStmt(body)
	case *core.InsertStatement:
		p.formatInsert(body)
	case *core.UpdateStatement:
		p.formatUpdate(body)
	case *core.DeleteStatement:
		p.formatDelete(body)
	case *core.CreateTableStatement:
		p.formatCreateTable(body)
	case *core.AlterTableStatement:
		p.formatAlterTable(body)
	case *core.CreateIndexStatement:
		p.formatCreateIndex(body)
	case *core.DropIndexStatement:
		p.formatDropIndex(body)
	case *core.DropTableStatement:
		p.formatDropTable(body)
	default:
		panic(fmt.Sprintf("format: unexpected statement body %T", body))
	}
}

func (p *Printer) formatSelectStmt(stmt *core.SelectStatement) {
	if stmt.With != nil {
		p.formatWithClause(stmt.With)
	}
	p.formatSelectBody(stmt.Body)
}

func (p *Printer) formatWithClause(with *core.WithClause) {
	p.kw("WITH")
	if with.Recursive {
		p.space()
		p.kw("RECURSIVE")
	}

	p.indent()
	p.writeln()
	p.formatList(len(with.CTEs), func(i int) {
		cte := with.CTEs[i]
		p.ident(cte.Name)
		if len(cte.Columns) > 0 {
			p.space()
			p.identList(cte.Columns)
		}
		p.space()
		p.kw("AS")
		p.space()
		p.formatQueryBlock(cte.Query)
	}, true)
	p.dedent()
	p.writeln()
}

func (p *Printer) formatSelectBody(body *core.SelectBody) {
	for i, m := range setMembers(body) {
		if i > 0 {
			p.writeln()
			p.kw(m.op.String())
			if m.all {
				p.space()
				p.kw("ALL")
			}
			p.writeln()
		}
		p.formatSelectCore(m.sel)
	}
	if body.Compound() {
		p.formatOrderAndLimit(body.OrderBy, body.Limit, body.OffsetFetch)
	}
}

// setMember is one SELECT block of a compound and the operator before it.
type setMember struct {
	op  core.SetOp
	all bool
	sel *core.SelectCore
}

// setMembers flattens a compound into source order. The left spine is
// walked iteratively, so long chains do not deepen the call stack; right
// operands are at most an INTERSECT chain.
func setMembers(body *core.SelectBody) []setMember {
	var spine []*core.SelectBody
	for body.Compound() {
		spine = append(spine, body)
		body = body.Left
	}
	members := []setMember{{sel: body.Core}}
	for i := len(spine) - 1; i >= 0; i-- {
		right := setMembers(spine[i].Right)
		right[0].op, right[0].all = spine[i].Op, spine[i].All
		members = append(members, right...)
	}
	return members
}

func (p *Printer) formatSelectCore(sc *core.SelectCore) {
	p.kw("SELECT")
	if sc.Distinct {
		p.space()
		p.kw("DISTINCT")
	}
	if sc.Top != nil {
		p.space()
		p.formatTop(sc.Top)
	}
	p.indent()
	p.writeln()
	p.formatSelectItems(sc.Columns)
	p.dedent()

	if sc.From != nil {
		p.writeln()
		p.kw("FROM")
		p.space()
		p.formatFromClause(sc.From)
	}
	if sc.Where != nil {
		p.formatExprClause("WHERE", sc.Where)
	}
	if len(sc.GroupBy) > 0 {
		p.writeln()
		p.kw("GROUP", "BY")
		p.indent()
		p.writeln()
		p.formatList(len(sc.GroupBy), func(i int) { p.formatExpr(sc.GroupBy[i]) }, true)
		p.dedent()
	}
	if sc.Having != nil {
		p.formatExprClause("HAVING", sc.Having)
	}
	p.formatOrderAndLimit(sc.OrderBy, sc.Limit, sc.OffsetFetch)
}

func (p *Printer) formatOrderAndLimit(orderBy []*core.OrderByItem, limit *core.LimitClause, of *core.OffsetFetchClause) {
	if len(orderBy) > 0 {
		p.writeln()
		p.kw("ORDER", "BY")
		p.indent()
		p.writeln()
		p.formatList(len(orderBy), func(i int) { p.formatOrderByItem(orderBy[i]) }, true)
		p.dedent()
	}
	if limit != nil {
		p.formatLimit(limit)
	}
	if of != nil {
		p.formatOffsetFetch(of)
	}
}

// formatExprClause writes a keyword followed by an indented condition.
func (p *Printer) formatExprClause(keyword string, e core.Expr) {
	p.writeln()
	p.kw(keyword)
	p.indent()
	p.writeln()
	p.formatExpr(e)
	p.dedent()
}

func (p *Printer) formatSelectItems(items []*core.SelectItem) {
	p.formatList(len(items), func(i int) {
		p.formatExpr(items[i].Expr)
		p.alias(items[i].Alias)
	}, true)
}

func (p *Printer) formatTop(top *core.TopClause) {
	p.kw("TOP")
	p.space()
	if top.Parens || !isRowCount(top.Count) {
		p.parenExpr(top.Count)
	} else {
		p.formatExpr(top.Count)
	}
	if top.Percent {
		p.space()
		p.kw("PERCENT")
	}
	if top.WithTies {
		p.space()
		p.kw("WITH", "TIES")
	}
	if top.StartAt != nil {
		p.space()
		p.kw("START", "AT")
		p.space()
		p.formatExpr(top.StartAt)
	}
}

// isRowCount reports whether e may follow TOP without parentheses.
func isRowCount(e core.Expr) bool {
	switch x := e.(type) {
	case *core.Literal:
		return x.Type == core.LiteralNumber
	case *core.ColumnRef:
		return x.Table.IsZero() && x.Schema.IsZero()
	}
	return false
}

func (p *Printer) formatLimit(lim *core.LimitClause) {
	if lim.Count != nil {
		p.writeln()
		p.kw("LIMIT")
		p.space()
		p.formatExpr(lim.Count)
	}
	if lim.Offset != nil {
		p.writeln()
		p.kw("OFFSET")
		p.space()
		p.formatExpr(lim.Offset)
	}
}

func (p *Printer) formatOffsetFetch(of *core.OffsetFetchClause) {
	if of.Offset != nil {
		p.writeln()
		p.kw("OFFSET")
		p.space()
		p.formatExpr(of.Offset)
		p.space()
		p.kw(rowsKeyword(of.OffsetRow))
	}
	if of.Fetch != nil {
		p.writeln()
		p.kw("FETCH")
		p.space()
		if of.First {
			p.kw("FIRST")
		} else {
			p.kw("NEXT")
		}
		p.space()
		p.formatExpr(of.Fetch)
		p.space()
		p.kw(rowsKeyword(of.FetchRow), "ONLY")
	}
}

func rowsKeyword(singular bool) string {
	if singular {
		return "ROW"
	}
	return "ROWS"
}

func (p *Printer) formatOrderByItem(item *core.OrderByItem) {
	p.formatExpr(item.Expr)
	switch item.Direction {
	case core.SortAsc:
		p.space()
		p.kw("ASC")
	case core.SortDesc:
		p.space()
		p.kw("DESC")
	}
	switch item.Nulls {
	case core.NullsFirst:
		p.space()
		p.kw("NULLS", "FIRST")
	case core.NullsLast:
		p.space()
		p.kw("NULLS", "LAST")
	}
}

// ---------- FROM ----------

func (p *Printer) formatFromClause(from *core.FromClause) {
	p.formatTableRef(from.Source)
	for _, join := range from.Joins {
		p.formatJoin(join)
	}
}

func (p *Printer) formatTableRef(ref core.TableRef) {
	switch t := ref.(type) {
	case *core.TableName:
		p.formatTableName(t)
	case *core.DerivedTable:
		p.formatQueryBlock(t.Query)
		p.alias(t.Alias)
	case *core.TableFunction:
		p.objectName(t.Name)
		p.write("(")
		p.formatList(len(t.Args), func(i int) { p.formatExpr(t.Args[i]) }, false)
		p.write(")")
		p.alias(t.Alias)
	default:
		panic(fmt.Sprintf("format: unexpected table reference %T", ref))
	}
}

func (p *Printer) formatTableName(t *core.TableName) {
	p.objectName(t.Name)
	p.alias(t.Alias)
}

// formatJoin writes one join. Comma joins stay on the line of the
// preceding source; keyword joins start a new line.
func (p *Printer) formatJoin(join *core.Join) {
	if join.Type == core.JoinComma {
		p.write(",")
		p.space()
		p.formatTableRef(join.Table)
		return
	}

	p.writeln()
	p.kw(strings.Fields(string(join.Type))...)
	p.space()
	p.formatTableRef(join.Table)

	switch {
	case join.On != nil:
		p.indent()
		p.writeln()
		p.kw("ON")
		p.space()
		p.formatExpr(join.On)
		p.dedent()
	case len(join.Using) > 0:
		p.space()
		p.kw("USING")
		p.space()
		p.identList(join.Using)
	}
}
