package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// base carries what every statement parser shares.
type base struct {
	d     *dialect.Dialect
	expr  *exprParser
	stmts *dispatchCell
}

func (b base) unsupported(c *Cursor, what string) *ParseError {
	return b.unsupportedAt(c.Current(), what)
}

func (b base) unsupportedAt(tok token.Token, what string) *ParseError {
	return &ParseError{Pos: tok.Pos, Token: tok, Message: fmt.Sprintf(ErrUnsupportedSyntax, what, b.d.Name)}
}

// selectParser parses queries.
//
//	statement   → [WITH [RECURSIVE] cte {, cte}] select_body
//	cte         → name [( cols )] AS ( statement )
//	select_body → intersect {(UNION | EXCEPT) [ALL] intersect} [ORDER BY order_list] [limit]
//	intersect   → select_core {INTERSECT [ALL] select_core}
//	select_core → SELECT [ALL|DISTINCT] [top] select_list
//	              [FROM from] [WHERE expr] [GROUP BY expr_list]
//	              [HAVING expr] [ORDER BY order_list] [limit]
//	top         → TOP (n | ( expr )) [PERCENT] [WITH TIES] [START AT n]
//	limit       → LIMIT expr [OFFSET expr] | OFFSET expr
//	            | OFFSET expr (ROWS|ROW) [FETCH (NEXT|FIRST) expr (ROWS|ROW) ONLY]
//	            | FETCH (NEXT|FIRST) expr (ROWS|ROW) ONLY
type selectParser struct{ base }

func (p *selectParser) CanParse(c *Cursor) bool {
	return startsQuery(c)
}

func (p *selectParser) Parse(c *Cursor) (core.Body, error) {
	stmt, err := p.parseStatement(c)
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *selectParser) parseStatement(c *Cursor) (*core.SelectStatement, error) {
	stmt := &core.SelectStatement{}
	if c.IsKeyword("WITH") {
		with, err := p.parseWith(c)
		if err != nil {
			return nil, err
		}
		stmt.With = with
	}
	body, err := p.parseBody(c)
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *selectParser) parseWith(c *Cursor) (*core.WithClause, error) {
	c.Next() // WITH
	with := &core.WithClause{Recursive: c.AcceptKeyword("RECURSIVE")}
	for {
		cte, err := p.parseCTE(c)
		if err != nil {
			return nil, err
		}
		with.CTEs = append(with.CTEs, cte)
		if !c.Accept(",", token.Comma) {
			return with, nil
		}
	}
}

func (p *selectParser) parseCTE(c *Cursor) (*core.CTE, error) {
	name, err := p.expr.parseIdent(c)
	if err != nil {
		return nil, err
	}
	cte := &core.CTE{Name: name}
	if c.Match("(", token.Parenthesis) {
		if cte.Columns, err = p.expr.parseIdentList(c); err != nil {
			return nil, err
		}
	}
	if err := c.ExpectKeyword("AS"); err != nil {
		return nil, err
	}
	if _, err := c.Expect("(", token.Parenthesis); err != nil {
		return nil, err
	}
	if cte.Query, err = p.stmts.query(c); err != nil {
		return nil, err
	}
	if _, err := c.Expect(")", token.Parenthesis); err != nil {
		return nil, err
	}
	return cte, nil
}

// parseBody parses a chain of set operations into a left-deep tree.
// INTERSECT runs are folded first so they bind tighter than UNION and
// EXCEPT. ORDER BY and row limits after the last member move to the
// compound; on any earlier member they are an error.
func (p *selectParser) parseBody(c *Cursor) (*core.SelectBody, error) {
	var last *core.SelectCore
	body, err := p.parseIntersection(c, &last)
	if err != nil {
		return nil, err
	}
	for {
		op, all, err := p.acceptSetOp(c, last, core.SetOpUnion, core.SetOpExcept)
		if err != nil {
			return nil, err
		}
		if op == core.SetOpNone {
			break
		}
		right, err := p.parseIntersection(c, &last)
		if err != nil {
			return nil, err
		}
		body = &core.SelectBody{Op: op, All: all, Left: body, Right: right}
	}

	if body.Compound() {
		body.OrderBy, last.OrderBy = last.OrderBy, nil
		body.Limit, last.Limit = last.Limit, nil
		body.OffsetFetch, last.OffsetFetch = last.OffsetFetch, nil
	}
	return body, nil
}

func (p *selectParser) parseIntersection(c *Cursor, last **core.SelectCore) (*core.SelectBody, error) {
	sc, err := p.parseCore(c)
	if err != nil {
		return nil, err
	}
	*last = sc
	body := core.Single(sc)
	for {
		op, all, err := p.acceptSetOp(c, sc, core.SetOpIntersect)
		if err != nil {
			return nil, err
		}
		if op == core.SetOpNone {
			return body, nil
		}
		if sc, err = p.parseCore(c); err != nil {
			return nil, err
		}
		*last = sc
		body = &core.SelectBody{Op: op, All: all, Left: body, Right: core.Single(sc)}
	}
}

// acceptSetOp consumes one of ops and an optional ALL. prev is the member
// just parsed, which may not end in ORDER BY or a row limit when another
// member follows.
func (p *selectParser) acceptSetOp(c *Cursor, prev *core.SelectCore, ops ...core.SetOp) (core.SetOp, bool, error) {
	for _, op := range ops {
		if !c.IsKeyword(op.String()) {
			continue
		}
		if len(prev.OrderBy) > 0 || prev.Limit != nil || prev.OffsetFetch != nil {
			return core.SetOpNone, false, c.Errorf(ErrTrailingInput, c.Current())
		}
		c.Next()
		return op, c.AcceptKeyword("ALL"), nil
	}
	return core.SetOpNone, false, nil
}

func (p *selectParser) parseCore(c *Cursor) (*core.SelectCore, error) {
	if err := c.ExpectKeyword("SELECT"); err != nil {
		return nil, err
	}
	sc := &core.SelectCore{}

	if !c.AcceptKeyword("ALL") {
		sc.Distinct = c.AcceptKeyword("DISTINCT")
	}

	if c.IsKeyword("TOP") {
		if !p.d.SupportsLimit(dialect.LimitTop) {
			return nil, p.unsupported(c, "TOP")
		}
		top, err := p.parseTop(c)
		if err != nil {
			return nil, err
		}
		sc.Top = top
	}

	cols, err := p.parseSelectList(c)
	if err != nil {
		return nil, err
	}
	sc.Columns = cols

	if c.AcceptKeyword("FROM") {
		if sc.From, err = p.parseFrom(c); err != nil {
			return nil, err
		}
	}

	if c.AcceptKeyword("WHERE") {
		if sc.Where, err = p.expr.parseExpr(c); err != nil {
			return nil, err
		}
	}

	if c.IsKeyword("GROUP") {
		if err := c.ExpectKeywords("GROUP", "BY"); err != nil {
			return nil, err
		}
		if sc.GroupBy, err = p.expr.parseExprList(c); err != nil {
			return nil, err
		}
	}

	if c.AcceptKeyword("HAVING") {
		if sc.Having, err = p.expr.parseExpr(c); err != nil {
			return nil, err
		}
	}

	if c.IsKeyword("ORDER") {
		if err := c.ExpectKeywords("ORDER", "BY"); err != nil {
			return nil, err
		}
		if sc.OrderBy, err = p.expr.parseOrderByList(c); err != nil {
			return nil, err
		}
	}

	if err := p.parseLimit(c, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// parseSelectList parses item {, item} where item is expr [[AS] alias].
func (p *selectParser) parseSelectList(c *Cursor) ([]*core.SelectItem, error) {
	return parseSelectItems(p.expr, c)
}

func parseSelectItems(ep *exprParser, c *Cursor) ([]*core.SelectItem, error) {
	var items []*core.SelectItem
	for {
		e, err := ep.parseExpr(c)
		if err != nil {
			return nil, err
		}
		item := &core.SelectItem{Expr: e}
		if item.Alias, err = ep.parseAlias(c); err != nil {
			return nil, err
		}
		items = append(items, item)
		if !c.Accept(",", token.Comma) {
			return items, nil
		}
	}
}

// parseTop parses TOP n | TOP ( expr ) and its modifiers.
func (p *selectParser) parseTop(c *Cursor) (*core.TopClause, error) {
	c.Next() // TOP
	top := &core.TopClause{}
	var err error
	if c.Accept("(", token.Parenthesis) {
		top.Parens = true
		if top.Count, err = p.expr.parseExpr(c); err != nil {
			return nil, err
		}
		if _, err := c.Expect(")", token.Parenthesis); err != nil {
			return nil, err
		}
	} else if top.Count, err = p.parseRowCount(c); err != nil {
		return nil, err
	}

	top.Percent = c.AcceptKeyword("PERCENT")
	if c.IsKeyword("WITH") && c.PeekKeyword(1, "TIES") {
		c.Next()
		c.Next()
		top.WithTies = true
	}
	if c.IsKeyword("START") && c.PeekKeyword(1, "AT") && p.d.Supports(dialect.FeatureTopStartAt) {
		c.Next()
		c.Next()
		if top.StartAt, err = p.parseRowCount(c); err != nil {
			return nil, err
		}
	}
	return top, nil
}

// parseRowCount parses the unparenthesized count of TOP: a number or a
// variable name. A full expression would swallow the * of SELECT TOP 5 *.
func (p *selectParser) parseRowCount(c *Cursor) (core.Expr, error) {
	tok := c.Current()
	switch tok.Kind {
	case token.NumericLiteral:
		c.Next()
		return &core.Literal{Type: core.LiteralNumber, Value: tok.Text}, nil
	case token.Identifier:
		c.Next()
		return &core.ColumnRef{Column: core.QuotedIdent(tok.Text, tok.Quote)}, nil
	}
	return nil, c.Errorf(ErrUnexpectedToken, tok, "row count")
}

// parseLimit parses the trailing row-limiting clause, if any. A core
// carries at most one limiting form.
func (p *selectParser) parseLimit(c *Cursor, sc *core.SelectCore) error {
	start := c.Current()
	if err := p.parseLimitClause(c, sc); err != nil {
		return err
	}
	if sc.Top != nil && (sc.Limit != nil || sc.OffsetFetch != nil) {
		return &ParseError{Pos: start.Pos, Token: start, Message: fmt.Sprintf(ErrConflictingLimitClauses, "TOP", start.Text)}
	}
	return nil
}

func (p *selectParser) parseLimitClause(c *Cursor, sc *core.SelectCore) error {
	var err error
	switch {
	case c.IsKeyword("LIMIT"):
		if !p.d.SupportsLimit(dialect.LimitLimitOffset) {
			return p.unsupported(c, "LIMIT")
		}
		c.Next()
		lim := &core.LimitClause{}
		if lim.Count, err = p.expr.parseExpr(c); err != nil {
			return err
		}
		if c.AcceptKeyword("OFFSET") {
			if lim.Offset, err = p.expr.parseExpr(c); err != nil {
				return err
			}
		}
		sc.Limit = lim

	case c.IsKeyword("OFFSET"):
		offsetTok := c.Next()
		offset, err := p.expr.parseExpr(c)
		if err != nil {
			return err
		}
		if !c.IsKeyword("ROWS") && !c.IsKeyword("ROW") {
			if !p.d.SupportsLimit(dialect.LimitLimitOffset) {
				return c.Errorf(ErrUnexpectedToken, c.Current(), "ROWS")
			}
			sc.Limit = &core.LimitClause{Offset: offset}
			return nil
		}
		if !p.d.SupportsLimit(dialect.LimitOffsetFetch) {
			return p.unsupportedAt(offsetTok, "OFFSET ... ROWS")
		}
		of := &core.OffsetFetchClause{Offset: offset, OffsetRow: c.IsKeyword("ROW")}
		c.Next() // ROWS
		if c.IsKeyword("FETCH") {
			if err := p.parseFetch(c, of); err != nil {
				return err
			}
		}
		sc.OffsetFetch = of

	case c.IsKeyword("FETCH"):
		if !p.d.SupportsLimit(dialect.LimitOffsetFetch) {
			return p.unsupported(c, "FETCH")
		}
		of := &core.OffsetFetchClause{}
		if err := p.parseFetch(c, of); err != nil {
			return err
		}
		sc.OffsetFetch = of
	}
	return nil
}

// parseFetch parses FETCH (NEXT|FIRST) n (ROWS|ROW) ONLY.
func (p *selectParser) parseFetch(c *Cursor, of *core.OffsetFetchClause) error {
	c.Next() // FETCH
	switch {
	case c.AcceptKeyword("FIRST"):
		of.First = true
	case c.AcceptKeyword("NEXT"):
	default:
		return c.Errorf(ErrUnexpectedToken, c.Current(), "NEXT or FIRST")
	}
	var err error
	if of.Fetch, err = p.expr.parseExpr(c); err != nil {
		return err
	}
	of.FetchRow = c.IsKeyword("ROW")
	if !c.AcceptKeyword("ROWS") && !c.AcceptKeyword("ROW") {
		return c.Errorf(ErrUnexpectedToken, c.Current(), "ROWS")
	}
	return c.ExpectKeyword("ONLY")
}
