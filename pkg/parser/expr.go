package parser

import (
	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// exprParser parses value expressions using precedence climbing over the
// dialect's operator table.
//
//	expr      → prefix { infix }
//	prefix    → NOT expr | (+|-) expr | primary
//	infix     → binop expr
//	          | [NOT] IN ( expr_list | query )
//	          | [NOT] (LIKE|ILIKE) expr [ESCAPE expr]
//	          | [NOT] BETWEEN expr AND expr
//	          | IS [NOT] NULL
//	          | :: type
type exprParser struct {
	d     *dialect.Dialect
	stmts *dispatchCell
}

// parseExpr parses a full expression.
func (p *exprParser) parseExpr(c *Cursor) (core.Expr, error) {
	return p.parseExprPrec(c, dialect.PrecedenceNone)
}

// parseExprPrec parses an expression whose infix operators all bind
// tighter than minPrec. Equal precedence stops the loop, which makes every
// binary operator left-associative.
func (p *exprParser) parseExprPrec(c *Cursor, minPrec int) (core.Expr, error) {
	if err := c.enter(); err != nil {
		return nil, err
	}
	defer c.leave()

	left, err := p.parsePrefix(c)
	if err != nil {
		return nil, err
	}
	for {
		prec := p.infixPrecedence(c)
		if prec <= minPrec {
			return left, nil
		}
		left, err = p.parseInfix(c, left, prec)
		if err != nil {
			return nil, err
		}
	}
}

// infixPrecedence returns the binding power of the current token in infix
// position. NOT is infix only when it negates IN, LIKE, ILIKE or BETWEEN.
func (p *exprParser) infixPrecedence(c *Cursor) int {
	tok := c.Current()
	if tok.IsKeyword("NOT") {
		next := c.Peek(1)
		if next.IsKeyword("IN") || next.IsKeyword("LIKE") || next.IsKeyword("ILIKE") || next.IsKeyword("BETWEEN") {
			return dialect.PrecedenceComparison
		}
		return dialect.PrecedenceNone
	}
	return p.d.Precedence(tok)
}

func (p *exprParser) parsePrefix(c *Cursor) (core.Expr, error) {
	tok := c.Current()
	switch {
	case tok.IsKeyword("NOT"):
		c.Next()
		operand, err := p.parseExprPrec(c, dialect.PrecedenceNot)
		if err != nil {
			return nil, err
		}
		return &core.UnaryExpr{Op: core.OpNot, Expr: operand}, nil
	case tok.Is(token.Operator, "-"), tok.Is(token.Operator, "+"):
		c.Next()
		operand, err := p.parseExprPrec(c, dialect.PrecedenceUnary)
		if err != nil {
			return nil, err
		}
		op := core.OpNeg
		if tok.Text == "+" {
			op = core.OpPlus
		}
		return &core.UnaryExpr{Op: op, Expr: operand}, nil
	}
	return p.parsePrimary(c)
}

func (p *exprParser) parseInfix(c *Cursor, left core.Expr, prec int) (core.Expr, error) {
	tok := c.Current()

	not := false
	if tok.IsKeyword("NOT") {
		c.Next()
		not = true
		tok = c.Current()
	}

	switch {
	case tok.IsKeyword("IN"):
		return p.parseIn(c, left, not)
	case tok.IsKeyword("LIKE"), tok.IsKeyword("ILIKE"):
		return p.parseLike(c, left, not)
	case tok.IsKeyword("BETWEEN"):
		return p.parseBetween(c, left, not)
	case tok.IsKeyword("IS"):
		return p.parseIs(c, left)
	case tok.Is(token.Operator, "::"):
		c.Next()
		typ, err := p.parseDataType(c)
		if err != nil {
			return nil, err
		}
		return &core.CastExpr{Expr: left, Type: typ, Shorthand: true}, nil
	}

	def, ok := p.d.Operator(tok)
	if !ok || !def.Binary {
		return nil, c.Errorf(ErrUnexpectedToken, tok, "operator")
	}
	c.Next()
	right, err := p.parseExprPrec(c, prec)
	if err != nil {
		return nil, err
	}
	return &core.BinaryExpr{Left: left, Op: def.Op, Right: right}, nil
}

// parseIn parses IN (values) or IN (subquery).
func (p *exprParser) parseIn(c *Cursor, left core.Expr, not bool) (core.Expr, error) {
	c.Next() // IN
	if _, err := c.Expect("(", token.Parenthesis); err != nil {
		return nil, err
	}
	in := &core.InExpr{Expr: left, Not: not}
	if startsQuery(c) {
		q, err := p.stmts.query(c)
		if err != nil {
			return nil, err
		}
		in.Query = q
	} else {
		values, err := p.parseExprList(c)
		if err != nil {
			return nil, err
		}
		in.Values = values
	}
	if _, err := c.Expect(")", token.Parenthesis); err != nil {
		return nil, err
	}
	return in, nil
}

// parseLike parses [NOT] LIKE|ILIKE pattern [ESCAPE escape].
func (p *exprParser) parseLike(c *Cursor, left core.Expr, not bool) (core.Expr, error) {
	ilike := c.Next().IsKeyword("ILIKE")
	pattern, err := p.parseExprPrec(c, dialect.PrecedenceComparison)
	if err != nil {
		return nil, err
	}
	like := &core.LikeExpr{Expr: left, Not: not, CaseInsensitive: ilike, Pattern: pattern}
	if c.AcceptKeyword("ESCAPE") {
		if like.Escape, err = p.parseExprPrec(c, dialect.PrecedenceComparison); err != nil {
			return nil, err
		}
	}
	return like, nil
}

// parseBetween parses [NOT] BETWEEN low AND high. The bounds bind tighter
// than comparison so the AND is not taken as a logical operator.
func (p *exprParser) parseBetween(c *Cursor, left core.Expr, not bool) (core.Expr, error) {
	c.Next() // BETWEEN
	low, err := p.parseExprPrec(c, dialect.PrecedenceComparison)
	if err != nil {
		return nil, err
	}
	if err := c.ExpectKeyword("AND"); err != nil {
		return nil, err
	}
	high, err := p.parseExprPrec(c, dialect.PrecedenceComparison)
	if err != nil {
		return nil, err
	}
	return &core.BetweenExpr{Expr: left, Not: not, Low: low, High: high}, nil
}

// parseIs parses IS [NOT] NULL.
func (p *exprParser) parseIs(c *Cursor, left core.Expr) (core.Expr, error) {
	c.Next() // IS
	not := c.AcceptKeyword("NOT")
	if err := c.ExpectKeyword("NULL"); err != nil {
		return nil, err
	}
	return &core.IsNullExpr{Expr: left, Not: not}, nil
}

// parseExprList parses expr {, expr}.
func (p *exprParser) parseExprList(c *Cursor) ([]core.Expr, error) {
	var exprs []core.Expr
	for {
		e, err := p.parseExpr(c)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if !c.Accept(",", token.Comma) {
			return exprs, nil
		}
	}
}

// parseOrderByList parses expr [ASC|DESC] [NULLS FIRST|LAST] {, ...}.
func (p *exprParser) parseOrderByList(c *Cursor) ([]*core.OrderByItem, error) {
	var items []*core.OrderByItem
	for {
		e, err := p.parseExpr(c)
		if err != nil {
			return nil, err
		}
		item := &core.OrderByItem{Expr: e}
		switch {
		case c.AcceptKeyword("ASC"):
			item.Direction = core.SortAsc
		case c.AcceptKeyword("DESC"):
			item.Direction = core.SortDesc
		}
		if c.AcceptKeyword("NULLS") {
			switch {
			case c.AcceptKeyword("FIRST"):
				item.Nulls = core.NullsFirst
			case c.AcceptKeyword("LAST"):
				item.Nulls = core.NullsLast
			default:
				return nil, c.Errorf(ErrUnexpectedToken, c.Current(), "FIRST or LAST")
			}
		}
		items = append(items, item)
		if !c.Accept(",", token.Comma) {
			return items, nil
		}
	}
}
