package format

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
)

const complexityThreshold = 5

// precedenceAtom is the binding power of nodes that are self-delimiting:
// literals, names, calls and anything already wrapped in parentheses.
const precedenceAtom = 100

func binaryPrecedence(op core.BinaryOp) int {
	switch op {
	case core.OpOr:
		return dialect.PrecedenceOr
	case core.OpAnd:
		return dialect.PrecedenceAnd
	case core.OpAdd, core.OpSub, core.OpConcat:
		return dialect.PrecedenceAddition
	case core.OpMul, core.OpDiv, core.OpMod:
		return dialect.PrecedenceMultiply
	default:
		return dialect.PrecedenceComparison
	}
}

// precedence mirrors the parser's binding powers for each node shape.
func precedence(e core.Expr) int {
	switch x := e.(type) {
	case *core.BinaryExpr:
		return binaryPrecedence(x.Op)
	case *core.LikeExpr, *core.InExpr, *core.BetweenExpr, *core.IsNullExpr:
		return dialect.PrecedenceComparison
	case *core.UnaryExpr:
		if x.Op == core.OpNot {
			return dialect.PrecedenceNot
		}
		return dialect.PrecedenceUnary
	case *core.CastExpr:
		if x.Shorthand {
			return dialect.PrecedencePostfix
		}
	}
	return precedenceAtom
}

func isPrefixUnary(e core.Expr) bool {
	_, ok := e.(*core.UnaryExpr)
	return ok
}

// leftOperand writes the left side of an infix form whose own binding
// power is prec. Equal power needs no parentheses: operators are
// left-associative.
func (p *Printer) leftOperand(e core.Expr, prec int) {
	if precedence(e) < prec {
		p.parenExpr(e)
		return
	}
	p.formatExpr(e)
}

// operand writes an expression the parser reads at minimum binding power
// bound: the right side of a binary operator, the operand of a prefix
// operator, a LIKE pattern or a BETWEEN bound. Prefix operators are
// accepted there as they stand.
func (p *Printer) operand(e core.Expr, bound int) {
	if !isPrefixUnary(e) && precedence(e) <= bound {
		p.parenExpr(e)
		return
	}
	p.formatExpr(e)
}

func (p *Printer) parenExpr(e core.Expr) {
	p.write("(")
	p.formatExpr(e)
	p.write(")")
}

func (p *Printer) formatExpr(e core.Expr) {
	switch expr := e.(type) {
	case *core.Literal:
		p.formatLiteral(expr)
	case *core.ColumnRef:
		p.formatColumnRef(expr)
	case *core.StarExpr:
		p.formatStarExpr(expr)
	case *core.BinaryExpr:
		p.formatBinaryExpr(expr)
	case *core.UnaryExpr:
		p.formatUnaryExpr(expr)
	case *core.LikeExpr:
		p.formatLikeExpr(expr)
	case *core.InExpr:
		p.formatInExpr(expr)
	case *core.BetweenExpr:
		p.formatBetweenExpr(expr)
	case *core.IsNullExpr:
		p.formatIsNullExpr(expr)
	case *core.FuncCall:
		p.formatFuncCall(expr)
	case *core.ParenExpr:
		p.parenExpr(expr.Expr)
	case *core.SubqueryExpr:
		p.formatQueryBlock(expr.Query)
	case *core.ExistsExpr:
		p.kw("EXISTS")
		p.space()
		p.formatQueryBlock(expr.Query)
	case *core.CaseExpr:
		p.formatCaseExpr(expr)
	case *core.CastExpr:
		p.formatCastExpr(expr)
	default:
		panic(fmt.Sprintf("format: unexpected expression %T", e))
	}
}

func (p *Printer) exprComplexity(e core.Expr) int {
	switch expr := e.(type) {
	case nil:
		return 0
	case *core.BinaryExpr:
		return 1 + p.exprComplexity(expr.Left) + p.exprComplexity(expr.Right)
	case *core.UnaryExpr:
		return 1 + p.exprComplexity(expr.Expr)
	case *core.FuncCall:
		score := 2
		for _, arg := range expr.Args {
			score += p.exprComplexity(arg)
		}
		return score
	case *core.ParenExpr:
		return p.exprComplexity(expr.Expr)
	case *core.CaseExpr:
		score := 2
		for _, w := range expr.Whens {
			score += p.exprComplexity(w.Condition) + p.exprComplexity(w.Result)
		}
		return score
	case *core.LikeExpr:
		return 1 + p.exprComplexity(expr.Expr) + p.exprComplexity(expr.Pattern)
	case *core.BetweenExpr:
		return 1 + p.exprComplexity(expr.Expr) + p.exprComplexity(expr.Low) + p.exprComplexity(expr.High)
	case *core.InExpr:
		return 1 + p.exprComplexity(expr.Expr) + len(expr.Values)
	default:
		return 1
	}
}

func isLogicalOp(op core.BinaryOp) bool {
	return op == core.OpAnd || op == core.OpOr
}

func (p *Printer) formatLiteral(lit *core.Literal) {
	switch lit.Type {
	case core.LiteralString:
		national := lit.National && p.dialect.Supports(dialect.FeatureNationalStrings)
		p.write(p.dialect.QuoteString(lit.Value, national))
	case core.LiteralBool:
		// Dialects without boolean keywords spell them 1 and 0.
		p.keyword(p.dialect.BooleanLiteral(strings.EqualFold(lit.Value, "true")))
	case core.LiteralNull:
		p.keyword("NULL")
	default:
		p.write(lit.Value)
	}
}

func (p *Printer) formatColumnRef(col *core.ColumnRef) {
	var parts []string
	if !col.Schema.IsZero() {
		parts = append(parts, p.identText(col.Schema))
	}
	if !col.Table.IsZero() {
		parts = append(parts, p.identText(col.Table))
	}
	parts = append(parts, p.identText(col.Column))
	p.write(strings.Join(parts, "."))
}

func (p *Printer) formatStarExpr(star *core.StarExpr) {
	if star.Table.IsZero() {
		p.write("*")
		return
	}
	p.write(p.identText(star.Table) + ".*")
}

func (p *Printer) formatBinaryExpr(expr *core.BinaryExpr) {
	prec := binaryPrecedence(expr.Op)
	shouldBreak := p.pretty && isLogicalOp(expr.Op) && p.exprComplexity(expr) > complexityThreshold

	p.leftOperand(expr.Left, prec)
	if shouldBreak {
		p.writeln()
	} else {
		p.space()
	}
	p.keyword(expr.Op.String())
	p.space()
	p.operand(expr.Right, prec)
}

func (p *Printer) formatUnaryExpr(expr *core.UnaryExpr) {
	switch expr.Op {
	case core.OpNot:
		p.kw("NOT")
		p.space()
		p.operand(expr.Expr, dialect.PrecedenceNot)
	default:
		p.write(expr.Op.String())
		// "- -x", never "--x", which would start a comment.
		if inner, ok := expr.Expr.(*core.UnaryExpr); ok && inner.Op == core.OpNeg && expr.Op == core.OpNeg {
			p.space()
		}
		p.operand(expr.Expr, dialect.PrecedenceUnary)
	}
}

func (p *Printer) formatLikeExpr(like *core.LikeExpr) {
	p.leftOperand(like.Expr, dialect.PrecedenceComparison)
	p.space()
	if like.Not {
		p.kw("NOT")
		p.space()
	}
	if like.CaseInsensitive {
		p.kw("ILIKE")
	} else {
		p.kw("LIKE")
	}
	p.space()
	p.operand(like.Pattern, dialect.PrecedenceComparison)
	if like.Escape != nil {
		p.space()
		p.kw("ESCAPE")
		p.space()
		p.operand(like.Escape, dialect.PrecedenceComparison)
	}
}

func (p *Printer) formatInExpr(in *core.InExpr) {
	p.leftOperand(in.Expr, dialect.PrecedenceComparison)
	p.space()
	if in.Not {
		p.kw("NOT")
		p.space()
	}
	p.kw("IN")
	p.space()
	if in.Query != nil {
		p.formatQueryBlock(in.Query)
		return
	}
	p.write("(")
	p.formatList(len(in.Values), func(i int) { p.formatExpr(in.Values[i]) }, false)
	p.write(")")
}

func (p *Printer) formatBetweenExpr(b *core.BetweenExpr) {
	p.leftOperand(b.Expr, dialect.PrecedenceComparison)
	p.space()
	if b.Not {
		p.kw("NOT")
		p.space()
	}
	p.kw("BETWEEN")
	p.space()
	p.operand(b.Low, dialect.PrecedenceComparison)
	p.space()
	p.kw("AND")
	p.space()
	p.operand(b.High, dialect.PrecedenceComparison)
}

func (p *Printer) formatIsNullExpr(is *core.IsNullExpr) {
	p.leftOperand(is.Expr, dialect.PrecedenceComparison)
	p.space()
	if is.Not {
		p.kw("IS", "NOT", "NULL")
	} else {
		p.kw("IS", "NULL")
	}
}

// formatFuncCall writes a call. Unquoted function names are emitted as
// written: LEFT and RIGHT are reserved yet valid call names.
func (p *Printer) formatFuncCall(fn *core.FuncCall) {
	parts := fn.Name.Parts()
	texts := make([]string, len(parts))
	for i, part := range parts {
		if part.Quoted {
			texts[i] = p.identText(part)
		} else {
			texts[i] = part.Name
		}
	}
	p.write(strings.Join(texts, "."))
	p.write("(")
	switch {
	case fn.Star:
		p.write("*")
	default:
		if fn.Distinct {
			p.kw("DISTINCT")
			p.space()
		}
		p.formatList(len(fn.Args), func(i int) { p.formatExpr(fn.Args[i]) }, false)
	}
	p.write(")")

	if fn.Over != nil {
		p.space()
		p.kw("OVER")
		p.space()
		p.formatWindowSpec(fn.Over)
	}
}

// formatWindowSpec writes the window inline in both modes.
func (p *Printer) formatWindowSpec(w *core.WindowSpec) {
	p.write("(")
	needSpace := false
	sep := func() {
		if needSpace {
			p.space()
		}
		needSpace = true
	}

	if len(w.PartitionBy) > 0 {
		sep()
		p.kw("PARTITION", "BY")
		p.space()
		p.formatList(len(w.PartitionBy), func(i int) { p.formatExpr(w.PartitionBy[i]) }, false)
	}
	if len(w.OrderBy) > 0 {
		sep()
		p.kw("ORDER", "BY")
		p.space()
		p.formatList(len(w.OrderBy), func(i int) { p.formatOrderByItem(w.OrderBy[i]) }, false)
	}
	if w.Frame != nil {
		sep()
		p.formatFrameSpec(w.Frame)
	}
	p.write(")")
}

func (p *Printer) formatFrameSpec(f *core.FrameSpec) {
	if f.Unit == core.FrameRange {
		p.kw("RANGE")
	} else {
		p.kw("ROWS")
	}
	p.space()
	if f.End == nil {
		p.formatFrameBound(f.Start)
		return
	}
	p.kw("BETWEEN")
	p.space()
	p.formatFrameBound(f.Start)
	p.space()
	p.kw("AND")
	p.space()
	p.formatFrameBound(*f.End)
}

func (p *Printer) formatFrameBound(b core.FrameBound) {
	switch b.Type {
	case core.BoundUnboundedPreceding:
		p.kw("UNBOUNDED", "PRECEDING")
	case core.BoundUnboundedFollowing:
		p.kw("UNBOUNDED", "FOLLOWING")
	case core.BoundCurrentRow:
		p.kw("CURRENT", "ROW")
	case core.BoundPreceding:
		p.operand(b.Offset, dialect.PrecedenceComparison)
		p.space()
		p.kw("PRECEDING")
	case core.BoundFollowing:
		p.operand(b.Offset, dialect.PrecedenceComparison)
		p.space()
		p.kw("FOLLOWING")
	}
}

func (p *Printer) formatCaseExpr(c *core.CaseExpr) {
	p.kw("CASE")
	if c.Operand != nil {
		p.space()
		p.formatExpr(c.Operand)
	}
	p.indent()
	for _, w := range c.Whens {
		p.writeln()
		p.kw("WHEN")
		p.space()
		p.formatExpr(w.Condition)
		p.space()
		p.kw("THEN")
		p.space()
		p.formatExpr(w.Result)
	}
	if c.Else != nil {
		p.writeln()
		p.kw("ELSE")
		p.space()
		p.formatExpr(c.Else)
	}
	p.dedent()
	p.writeln()
	p.kw("END")
}

func (p *Printer) formatCastExpr(c *core.CastExpr) {
	if c.Shorthand {
		p.leftOperand(c.Expr, dialect.PrecedencePostfix)
		p.write("::")
		p.formatDataType(c.Type)
		return
	}
	p.kw("CAST")
	p.write("(")
	p.formatExpr(c.Expr)
	p.space()
	p.kw("AS")
	p.space()
	p.formatDataType(c.Type)
	p.write(")")
}

// formatDataType writes a type as written in the source. Only the time
// zone suffix follows the keyword case.
func (p *Printer) formatDataType(dt *core.DataType) {
	p.write(dt.Name)
	if len(dt.Args) > 0 {
		p.write("(" + strings.Join(dt.Args, ", ") + ")")
	}
	if dt.Suffix != "" {
		p.space()
		p.kw(strings.Fields(dt.Suffix)...)
	}
}

// formatQueryBlock writes a parenthesized query, indented on its own
// lines in pretty mode.
func (p *Printer) formatQueryBlock(q *core.SelectStatement) {
	p.block(func() { p.formatSelectStmt(q) })
}
