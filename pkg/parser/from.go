package parser

import (
	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// parseFrom parses the FROM clause body.
//
//	from      → table_ref { join }
//	join      → , table_ref
//	          | join_type table_ref [ON expr | USING ( cols )]
//	join_type → [INNER] JOIN | (LEFT|RIGHT|FULL) [OUTER] JOIN | CROSS JOIN
//	          | CROSS APPLY | OUTER APPLY
//	table_ref → name [[AS] alias] | name ( args ) [[AS] alias]
//	          | ( query ) [[AS] alias]
func (b base) parseFrom(c *Cursor) (*core.FromClause, error) {
	source, err := b.parseTableRef(c)
	if err != nil {
		return nil, err
	}
	from := &core.FromClause{Source: source}

	for {
		start := c.Current()
		jt, ok := b.joinType(c)
		if !ok {
			return from, nil
		}
		def, supported := b.d.JoinTypeDef(jt)
		if !supported {
			return nil, b.unsupportedAt(start, string(jt))
		}

		table, err := b.parseTableRef(c)
		if err != nil {
			return nil, err
		}
		join := &core.Join{Type: jt, Table: table}

		if def.RequiresOn {
			switch {
			case c.AcceptKeyword("ON"):
				if join.On, err = b.expr.parseExpr(c); err != nil {
					return nil, err
				}
			case def.AllowsUsing && c.AcceptKeyword("USING"):
				if join.Using, err = b.expr.parseIdentList(c); err != nil {
					return nil, err
				}
			default:
				return nil, c.Errorf(ErrUnexpectedToken, c.Current(), "ON")
			}
		}
		from.Joins = append(from.Joins, join)
	}
}

// joinType consumes a join introducer and returns its type.
func (b base) joinType(c *Cursor) (core.JoinType, bool) {
	if c.Accept(",", token.Comma) {
		return core.JoinComma, true
	}

	// Keyword sequences, longest first.
	sequences := []struct {
		words []string
		typ   core.JoinType
	}{
		{[]string{"LEFT", "OUTER", "JOIN"}, core.JoinLeftOuter},
		{[]string{"RIGHT", "OUTER", "JOIN"}, core.JoinRightOuter},
		{[]string{"FULL", "OUTER", "JOIN"}, core.JoinFullOuter},
		{[]string{"INNER", "JOIN"}, core.JoinInner},
		{[]string{"LEFT", "JOIN"}, core.JoinLeft},
		{[]string{"RIGHT", "JOIN"}, core.JoinRight},
		{[]string{"FULL", "JOIN"}, core.JoinFull},
		{[]string{"CROSS", "JOIN"}, core.JoinCross},
		{[]string{"CROSS", "APPLY"}, core.JoinCrossApply},
		{[]string{"OUTER", "APPLY"}, core.JoinOuterApply},
		{[]string{"JOIN"}, core.JoinPlain},
	}
	for _, seq := range sequences {
		if matchKeywords(c, seq.words) {
			for range seq.words {
				c.Next()
			}
			return seq.typ, true
		}
	}
	return "", false
}

// matchKeywords reports whether the next tokens spell the given words.
// APPLY is not a keyword in every dialect, so bare identifiers match too;
// an unsupported join is then reported instead of a stray word.
func matchKeywords(c *Cursor, words []string) bool {
	for i, w := range words {
		if !isWord(c.Peek(i), w) {
			return false
		}
	}
	return true
}

func (b base) parseTableRef(c *Cursor) (core.TableRef, error) {
	if c.Match("(", token.Parenthesis) {
		if !startsParenQuery(c) {
			return nil, c.Errorf(ErrUnexpectedToken, c.Peek(1), "SELECT")
		}
		c.Next()
		q, err := b.stmts.query(c)
		if err != nil {
			return nil, err
		}
		if _, err := c.Expect(")", token.Parenthesis); err != nil {
			return nil, err
		}
		dt := &core.DerivedTable{Query: q}
		if dt.Alias, err = b.expr.parseAlias(c); err != nil {
			return nil, err
		}
		return dt, nil
	}

	name, err := b.expr.parseObjectName(c)
	if err != nil {
		return nil, err
	}

	if c.Match("(", token.Parenthesis) {
		c.Next()
		fn := &core.TableFunction{Name: name}
		if !c.Match(")", token.Parenthesis) {
			if fn.Args, err = b.expr.parseExprList(c); err != nil {
				return nil, err
			}
		}
		if _, err := c.Expect(")", token.Parenthesis); err != nil {
			return nil, err
		}
		if fn.Alias, err = b.expr.parseAlias(c); err != nil {
			return nil, err
		}
		return fn, nil
	}

	tn := &core.TableName{Name: name}
	if tn.Alias, err = b.expr.parseAlias(c); err != nil {
		return nil, err
	}
	return tn, nil
}
