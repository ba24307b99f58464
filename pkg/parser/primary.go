package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// parsePrimary parses literals, names, calls and parenthesized forms.
//
//	primary → literal | * | name [. name]... [( args ) [OVER window]]
//	        | name . *
//	        | CASE ... END | CAST ( expr AS type ) | EXISTS ( query )
//	        | ( query ) | ( expr )
func (p *exprParser) parsePrimary(c *Cursor) (core.Expr, error) {
	tok := c.Current()

	switch tok.Kind {
	case token.NumericLiteral:
		c.Next()
		return &core.Literal{Type: core.LiteralNumber, Value: tok.Text}, nil
	case token.StringLiteral:
		c.Next()
		return &core.Literal{Type: core.LiteralString, Value: tok.Text, National: tok.Prefix == "N"}, nil
	case token.Parenthesis:
		if tok.Text == "(" {
			return p.parseParen(c)
		}
	case token.Operator:
		if tok.Text == "*" {
			c.Next()
			return &core.StarExpr{}, nil
		}
	case token.Keyword:
		switch strings.ToUpper(tok.Text) {
		case "NULL":
			c.Next()
			return &core.Literal{Type: core.LiteralNull, Value: "NULL"}, nil
		case "TRUE", "FALSE":
			c.Next()
			return &core.Literal{Type: core.LiteralBool, Value: strings.ToLower(tok.Text)}, nil
		case "CASE":
			return p.parseCase(c)
		case "CAST":
			return p.parseCast(c)
		case "EXISTS":
			return p.parseExists(c)
		case "LEFT", "RIGHT":
			if c.Peek(1).Is(token.Parenthesis, "(") {
				c.Next()
				return p.parseFuncCall(c, core.NewObjectName(core.Ident(tok.Text)))
			}
		}
		if p.isSoftKeyword(tok) {
			return p.parseName(c)
		}
	case token.Identifier:
		return p.parseName(c)
	}
	return nil, c.Errorf(ErrExpectedExpression, tok)
}

// parseParen parses ( query ) or ( expr ).
func (p *exprParser) parseParen(c *Cursor) (core.Expr, error) {
	if startsParenQuery(c) {
		c.Next()
		q, err := p.stmts.query(c)
		if err != nil {
			return nil, err
		}
		if _, err := c.Expect(")", token.Parenthesis); err != nil {
			return nil, err
		}
		return &core.SubqueryExpr{Query: q}, nil
	}
	c.Next()
	inner, err := p.parseExpr(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.Expect(")", token.Parenthesis); err != nil {
		return nil, err
	}
	return &core.ParenExpr{Expr: inner}, nil
}

// parseName parses a column reference, a qualified star or a function call.
func (p *exprParser) parseName(c *Cursor) (core.Expr, error) {
	first, err := p.parseIdent(c)
	if err != nil {
		return nil, err
	}
	parts := []core.QuotedIdentifier{first}
	for c.Match(".", token.Operator) {
		c.Next()
		if c.Match("*", token.Operator) {
			if len(parts) > 1 {
				return nil, c.Errorf(ErrUnexpectedToken, c.Current(), "identifier")
			}
			c.Next()
			return &core.StarExpr{Table: parts[0]}, nil
		}
		part, err := p.parseIdent(c)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	if len(parts) > 3 {
		return nil, c.Errorf("name has too many parts")
	}

	if c.Match("(", token.Parenthesis) {
		return p.parseFuncCall(c, core.NewObjectName(parts...))
	}

	ref := &core.ColumnRef{Column: parts[len(parts)-1]}
	if len(parts) > 1 {
		ref.Table = parts[len(parts)-2]
	}
	if len(parts) > 2 {
		ref.Schema = parts[0]
	}
	return ref, nil
}

// parseFuncCall parses ( [DISTINCT] args | * ) [OVER ( window )].
func (p *exprParser) parseFuncCall(c *Cursor, name core.ObjectName) (core.Expr, error) {
	c.Next() // (
	fn := &core.FuncCall{Name: name}
	switch {
	case c.Match(")", token.Parenthesis):
	case c.Match("*", token.Operator):
		c.Next()
		fn.Star = true
	default:
		fn.Distinct = c.AcceptKeyword("DISTINCT")
		args, err := p.parseExprList(c)
		if err != nil {
			return nil, err
		}
		fn.Args = args
	}
	if _, err := c.Expect(")", token.Parenthesis); err != nil {
		return nil, err
	}
	if c.AcceptKeyword("OVER") {
		spec, err := p.parseWindowSpec(c)
		if err != nil {
			return nil, err
		}
		fn.Over = spec
	}
	return fn, nil
}

// parseCase parses CASE [operand] WHEN cond THEN result ... [ELSE e] END.
func (p *exprParser) parseCase(c *Cursor) (core.Expr, error) {
	c.Next() // CASE
	ce := &core.CaseExpr{}
	if !c.IsKeyword("WHEN") {
		operand, err := p.parseExpr(c)
		if err != nil {
			return nil, err
		}
		ce.Operand = operand
	}
	for c.AcceptKeyword("WHEN") {
		cond, err := p.parseExpr(c)
		if err != nil {
			return nil, err
		}
		if err := c.ExpectKeyword("THEN"); err != nil {
			return nil, err
		}
		result, err := p.parseExpr(c)
		if err != nil {
			return nil, err
		}
		ce.Whens = append(ce.Whens, &core.WhenClause{Condition: cond, Result: result})
	}
	if len(ce.Whens) == 0 {
		return nil, c.Errorf(ErrUnexpectedToken, c.Current(), "WHEN")
	}
	if c.AcceptKeyword("ELSE") {
		e, err := p.parseExpr(c)
		if err != nil {
			return nil, err
		}
		ce.Else = e
	}
	if err := c.ExpectKeyword("END"); err != nil {
		return nil, err
	}
	return ce, nil
}

// parseCast parses CAST ( expr AS type ).
func (p *exprParser) parseCast(c *Cursor) (core.Expr, error) {
	c.Next() // CAST
	if _, err := c.Expect("(", token.Parenthesis); err != nil {
		return nil, err
	}
	e, err := p.parseExpr(c)
	if err != nil {
		return nil, err
	}
	if err := c.ExpectKeyword("AS"); err != nil {
		return nil, err
	}
	typ, err := p.parseDataType(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.Expect(")", token.Parenthesis); err != nil {
		return nil, err
	}
	return &core.CastExpr{Expr: e, Type: typ}, nil
}

// parseExists parses EXISTS ( query ).
func (p *exprParser) parseExists(c *Cursor) (core.Expr, error) {
	c.Next() // EXISTS
	if _, err := c.Expect("(", token.Parenthesis); err != nil {
		return nil, err
	}
	q, err := p.stmts.query(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.Expect(")", token.Parenthesis); err != nil {
		return nil, err
	}
	return &core.ExistsExpr{Query: q}, nil
}

// ---------- Names ----------

// isSoftKeyword reports whether a keyword may stand in for an identifier.
func (p *exprParser) isSoftKeyword(tok token.Token) bool {
	return tok.Kind == token.Keyword && !p.d.IsReservedWord(tok.Text)
}

// isIdentToken reports whether tok can be read as an identifier.
func (p *exprParser) isIdentToken(tok token.Token) bool {
	return tok.Kind == token.Identifier || p.isSoftKeyword(tok)
}

// parseIdent parses an identifier, keeping its quoting.
func (p *exprParser) parseIdent(c *Cursor) (core.QuotedIdentifier, error) {
	tok := c.Current()
	if !p.isIdentToken(tok) {
		return core.QuotedIdentifier{}, c.Errorf(ErrExpectedIdentifier, tok)
	}
	c.Next()
	return core.QuotedIdent(tok.Text, tok.Quote), nil
}

// parseIdentList parses ( ident {, ident} ).
func (p *exprParser) parseIdentList(c *Cursor) ([]core.QuotedIdentifier, error) {
	if _, err := c.Expect("(", token.Parenthesis); err != nil {
		return nil, err
	}
	var idents []core.QuotedIdentifier
	for {
		id, err := p.parseIdent(c)
		if err != nil {
			return nil, err
		}
		idents = append(idents, id)
		if !c.Accept(",", token.Comma) {
			break
		}
	}
	if _, err := c.Expect(")", token.Parenthesis); err != nil {
		return nil, err
	}
	return idents, nil
}

// parseObjectName parses [catalog.][schema.]name.
func (p *exprParser) parseObjectName(c *Cursor) (core.ObjectName, error) {
	var parts []core.QuotedIdentifier
	for {
		part, err := p.parseIdent(c)
		if err != nil {
			return core.ObjectName{}, err
		}
		parts = append(parts, part)
		if !c.Match(".", token.Operator) {
			break
		}
		if len(parts) == 3 {
			return core.ObjectName{}, c.Errorf("name has too many parts")
		}
		c.Next()
	}
	return core.NewObjectName(parts...), nil
}

// parseAlias parses [AS] alias. Without AS only a plain identifier token is
// taken, so soft keywords that open the next clause are left alone.
func (p *exprParser) parseAlias(c *Cursor) (core.QuotedIdentifier, error) {
	if c.AcceptKeyword("AS") {
		return p.parseIdent(c)
	}
	if tok := c.Current(); tok.Kind == token.Identifier {
		c.Next()
		return core.QuotedIdent(tok.Text, tok.Quote), nil
	}
	return core.QuotedIdentifier{}, nil
}

// ---------- Data types ----------

// typeModifiers are words that continue into a multi-word type name, as
// in DOUBLE PRECISION or CHARACTER VARYING.
var typeModifiers = map[string]bool{
	"DOUBLE": true, "CHARACTER": true, "CHAR": true, "NATIONAL": true,
	"LONG": true, "UNSIGNED": true, "BIT": true,
}

// parseDataType parses name [( arg {, arg} )] [WITH|WITHOUT TIME ZONE].
func (p *exprParser) parseDataType(c *Cursor) (*core.DataType, error) {
	tok := c.Current()
	if !isTypeWord(tok) || p.d.IsReservedWord(tok.Text) {
		return nil, c.Errorf(ErrUnexpectedToken, tok, "data type")
	}
	c.Next()
	words := []string{tok.Text}
	for typeModifiers[strings.ToUpper(words[len(words)-1])] && isTypeWord(c.Current()) && !p.d.IsReservedWord(c.Current().Text) {
		words = append(words, c.Next().Text)
	}

	dt := &core.DataType{Name: strings.Join(words, " ")}
	if c.Accept("(", token.Parenthesis) {
		for {
			arg := c.Current()
			if arg.Kind != token.NumericLiteral && !isTypeWord(arg) {
				return nil, c.Errorf(ErrUnexpectedToken, arg, "type argument")
			}
			c.Next()
			dt.Args = append(dt.Args, arg.Text)
			if !c.Accept(",", token.Comma) {
				break
			}
		}
		if _, err := c.Expect(")", token.Parenthesis); err != nil {
			return nil, err
		}
	}

	if (c.IsWord("WITH") || c.IsWord("WITHOUT")) && isWord(c.Peek(1), "TIME") && isWord(c.Peek(2), "ZONE") {
		dt.Suffix = strings.ToUpper(c.Next().Text) + " TIME ZONE"
		c.Next()
		c.Next()
	}
	return dt, nil
}

// isTypeWord reports whether tok is a bare word.
func isTypeWord(t token.Token) bool {
	return t.Kind == token.Keyword || t.Kind == token.Identifier && t.Quote == token.QuoteNone
}
