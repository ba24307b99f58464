package parser

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/dialects/generic"
	"github.com/leapstack-labs/sqlround/pkg/dialects/mssql"
	"github.com/leapstack-labs/sqlround/pkg/dialects/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func col(name string) *core.ColumnRef { return &core.ColumnRef{Column: core.Ident(name)} }

func num(v string) *core.Literal { return &core.Literal{Type: core.LiteralNumber, Value: v} }

func str(v string) *core.Literal { return &core.Literal{Type: core.LiteralString, Value: v} }

func bin(l core.Expr, op core.BinaryOp, r core.Expr) *core.BinaryExpr {
	return &core.BinaryExpr{Left: l, Op: op, Right: r}
}

// parseExprIn parses "SELECT <expr>" and returns the first select item.
func parseExprIn(t *testing.T, d *dialect.Dialect, expr string) core.Expr {
	t.Helper()
	stmt, err := New(d, Options{}).Parse("SELECT " + expr)
	require.NoError(t, err)
	return stmt.Select().Body.Core.Columns[0].Expr
}

func TestExprPrecedence(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want core.Expr
	}{
		{
			name: "AND binds tighter than OR",
			expr: "a OR b AND c",
			want: bin(col("a"), core.OpOr, bin(col("b"), core.OpAnd, col("c"))),
		},
		{
			name: "multiplication binds tighter than addition",
			expr: "a + b * c",
			want: bin(col("a"), core.OpAdd, bin(col("b"), core.OpMul, col("c"))),
		},
		{
			name: "subtraction is left associative",
			expr: "a - b - c",
			want: bin(bin(col("a"), core.OpSub, col("b")), core.OpSub, col("c")),
		},
		{
			name: "chained comparison is left associative",
			expr: "a = b = c",
			want: bin(bin(col("a"), core.OpEq, col("b")), core.OpEq, col("c")),
		},
		{
			name: "NOT binds looser than comparison",
			expr: "NOT a = b",
			want: &core.UnaryExpr{Op: core.OpNot, Expr: bin(col("a"), core.OpEq, col("b"))},
		},
		{
			name: "NOT binds tighter than AND",
			expr: "NOT a AND b",
			want: bin(&core.UnaryExpr{Op: core.OpNot, Expr: col("a")}, core.OpAnd, col("b")),
		},
		{
			name: "unary minus binds tighter than multiplication",
			expr: "-a * b",
			want: bin(&core.UnaryExpr{Op: core.OpNeg, Expr: col("a")}, core.OpMul, col("b")),
		},
		{
			name: "unary operators nest innermost first",
			expr: "NOT NOT a",
			want: &core.UnaryExpr{Op: core.OpNot, Expr: &core.UnaryExpr{Op: core.OpNot, Expr: col("a")}},
		},
		{
			name: "parentheses override precedence",
			expr: "(a + b) * c",
			want: bin(&core.ParenExpr{Expr: bin(col("a"), core.OpAdd, col("b"))}, core.OpMul, col("c")),
		},
		{
			name: "comparison binds looser than arithmetic",
			expr: "a + 1 > b * 2",
			want: bin(bin(col("a"), core.OpAdd, num("1")), core.OpGt, bin(col("b"), core.OpMul, num("2"))),
		},
		{
			name: "not equal spellings share an operator",
			expr: "a != b",
			want: bin(col("a"), core.OpNe, col("b")),
		},
		{
			name: "concatenation",
			expr: "a || 'x'",
			want: bin(col("a"), core.OpConcat, str("x")),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseExprIn(t, generic.Generic, tt.expr))
		})
	}
}

func TestExprPredicates(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want core.Expr
	}{
		{
			name: "IN list",
			expr: "a IN (1, 2)",
			want: &core.InExpr{Expr: col("a"), Values: []core.Expr{num("1"), num("2")}},
		},
		{
			name: "NOT IN list",
			expr: "a NOT IN (1)",
			want: &core.InExpr{Expr: col("a"), Not: true, Values: []core.Expr{num("1")}},
		},
		{
			name: "BETWEEN inside AND",
			expr: "a BETWEEN 1 AND 2 AND b",
			want: bin(&core.BetweenExpr{Expr: col("a"), Low: num("1"), High: num("2")}, core.OpAnd, col("b")),
		},
		{
			name: "NOT BETWEEN with arithmetic bounds",
			expr: "a NOT BETWEEN b - 1 AND b + 1",
			want: &core.BetweenExpr{
				Expr: col("a"), Not: true,
				Low:  bin(col("b"), core.OpSub, num("1")),
				High: bin(col("b"), core.OpAdd, num("1")),
			},
		},
		{
			name: "IS NOT NULL",
			expr: "a IS NOT NULL",
			want: &core.IsNullExpr{Expr: col("a"), Not: true},
		},
		{
			name: "LIKE with ESCAPE",
			expr: `a LIKE 'x!%' ESCAPE '!'`,
			want: &core.LikeExpr{Expr: col("a"), Pattern: str("x!%"), Escape: str("!")},
		},
		{
			name: "NOT LIKE",
			expr: "a NOT LIKE 'x%'",
			want: &core.LikeExpr{Expr: col("a"), Not: true, Pattern: str("x%")},
		},
		{
			name: "NOT before IS NULL negates the whole predicate",
			expr: "NOT a IS NULL",
			want: &core.UnaryExpr{Op: core.OpNot, Expr: &core.IsNullExpr{Expr: col("a")}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseExprIn(t, generic.Generic, tt.expr))
		})
	}
}

func TestExprPrimaries(t *testing.T) {
	tests := []struct {
		name string
		d    *dialect.Dialect
		expr string
		want core.Expr
	}{
		{
			name: "qualified column",
			d:    generic.Generic,
			expr: "s.t.c",
			want: &core.ColumnRef{Schema: core.Ident("s"), Table: core.Ident("t"), Column: core.Ident("c")},
		},
		{
			name: "qualified star",
			d:    generic.Generic,
			expr: "t.*",
			want: &core.StarExpr{Table: core.Ident("t")},
		},
		{
			name: "count star",
			d:    generic.Generic,
			expr: "COUNT(*)",
			want: &core.FuncCall{Name: core.NewObjectName(core.Ident("COUNT")), Star: true},
		},
		{
			name: "count distinct",
			d:    generic.Generic,
			expr: "count(DISTINCT a)",
			want: &core.FuncCall{Name: core.NewObjectName(core.Ident("count")), Distinct: true, Args: []core.Expr{col("a")}},
		},
		{
			name: "empty call",
			d:    generic.Generic,
			expr: "now()",
			want: &core.FuncCall{Name: core.NewObjectName(core.Ident("now"))},
		},
		{
			name: "LEFT as a function",
			d:    mssql.MsSQL,
			expr: "LEFT(a, 2)",
			want: &core.FuncCall{Name: core.NewObjectName(core.Ident("LEFT")), Args: []core.Expr{col("a"), num("2")}},
		},
		{
			name: "booleans",
			d:    generic.Generic,
			expr: "TRUE",
			want: &core.Literal{Type: core.LiteralBool, Value: "true"},
		},
		{
			name: "null",
			d:    generic.Generic,
			expr: "null",
			want: &core.Literal{Type: core.LiteralNull, Value: "NULL"},
		},
		{
			name: "national string",
			d:    mssql.MsSQL,
			expr: "N'abc'",
			want: &core.Literal{Type: core.LiteralString, Value: "abc", National: true},
		},
		{
			name: "bracket quoted column",
			d:    mssql.MsSQL,
			expr: "[t].[Col]",
			want: &core.ColumnRef{
				Table:  core.QuotedIdent("t", core.QuoteBracket),
				Column: core.QuotedIdent("Col", core.QuoteBracket),
			},
		},
		{
			name: "soft keyword as column",
			d:    generic.Generic,
			expr: "key",
			want: col("key"),
		},
		{
			name: "searched case",
			d:    generic.Generic,
			expr: "CASE WHEN a > 0 THEN 'pos' ELSE 'neg' END",
			want: &core.CaseExpr{
				Whens: []*core.WhenClause{{Condition: bin(col("a"), core.OpGt, num("0")), Result: str("pos")}},
				Else:  str("neg"),
			},
		},
		{
			name: "simple case",
			d:    generic.Generic,
			expr: "CASE a WHEN 1 THEN 'one' END",
			want: &core.CaseExpr{
				Operand: col("a"),
				Whens:   []*core.WhenClause{{Condition: num("1"), Result: str("one")}},
			},
		},
		{
			name: "cast",
			d:    generic.Generic,
			expr: "CAST(a AS DECIMAL(10, 2))",
			want: &core.CastExpr{Expr: col("a"), Type: &core.DataType{Name: "DECIMAL", Args: []string{"10", "2"}}},
		},
		{
			name: "multi word type",
			d:    generic.Generic,
			expr: "CAST(a AS DOUBLE PRECISION)",
			want: &core.CastExpr{Expr: col("a"), Type: &core.DataType{Name: "DOUBLE PRECISION"}},
		},
		{
			name: "varchar max",
			d:    mssql.MsSQL,
			expr: "CAST(a AS NVARCHAR(MAX))",
			want: &core.CastExpr{Expr: col("a"), Type: &core.DataType{Name: "NVARCHAR", Args: []string{"MAX"}}},
		},
		{
			name: "shorthand cast",
			d:    postgres.Postgres,
			expr: "a::timestamp with time zone",
			want: &core.CastExpr{Expr: col("a"), Type: &core.DataType{Name: "timestamp", Suffix: "WITH TIME ZONE"}, Shorthand: true},
		},
		{
			name: "ilike",
			d:    postgres.Postgres,
			expr: "a ILIKE 'x%'",
			want: &core.LikeExpr{Expr: col("a"), CaseInsensitive: true, Pattern: str("x%")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseExprIn(t, tt.d, tt.expr))
		})
	}
}

func TestExprWindow(t *testing.T) {
	e := parseExprIn(t, generic.Generic,
		"ROW_NUMBER() OVER (PARTITION BY a ORDER BY b DESC NULLS LAST ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)")

	fn, ok := e.(*core.FuncCall)
	require.True(t, ok)
	require.NotNil(t, fn.Over)
	assert.Equal(t, []core.Expr{col("a")}, fn.Over.PartitionBy)
	assert.Equal(t, []*core.OrderByItem{{Expr: col("b"), Direction: core.SortDesc, Nulls: core.NullsLast}}, fn.Over.OrderBy)
	require.NotNil(t, fn.Over.Frame)
	assert.Equal(t, core.FrameRows, fn.Over.Frame.Unit)
	assert.Equal(t, core.BoundUnboundedPreceding, fn.Over.Frame.Start.Type)
	require.NotNil(t, fn.Over.Frame.End)
	assert.Equal(t, core.BoundCurrentRow, fn.Over.Frame.End.Type)
}

func TestExprWindowOffsets(t *testing.T) {
	e := parseExprIn(t, generic.Generic, "SUM(x) OVER (ORDER BY d RANGE BETWEEN 3 PRECEDING AND 1 FOLLOWING)")
	frame := e.(*core.FuncCall).Over.Frame
	assert.Equal(t, core.FrameRange, frame.Unit)
	assert.Equal(t, core.FrameBound{Type: core.BoundPreceding, Offset: num("3")}, frame.Start)
	assert.Equal(t, &core.FrameBound{Type: core.BoundFollowing, Offset: num("1")}, frame.End)

	e = parseExprIn(t, generic.Generic, "SUM(x) OVER (ROWS UNBOUNDED PRECEDING)")
	frame = e.(*core.FuncCall).Over.Frame
	assert.Nil(t, frame.End)
}

func TestExprSubqueries(t *testing.T) {
	stmt, err := New(generic.Generic, Options{}).Parse(
		"SELECT (SELECT MAX(b) FROM u) AS m FROM t WHERE a IN (SELECT b FROM u) AND NOT EXISTS (SELECT 1 FROM v)")
	require.NoError(t, err)
	sc := stmt.Select().Body.Core

	sub, ok := sc.Columns[0].Expr.(*core.SubqueryExpr)
	require.True(t, ok)
	assert.Equal(t, "m", sc.Columns[0].Alias.Name)
	assert.NotNil(t, sub.Query)

	and, ok := sc.Where.(*core.BinaryExpr)
	require.True(t, ok)
	in, ok := and.Left.(*core.InExpr)
	require.True(t, ok)
	assert.NotNil(t, in.Query)
	assert.Nil(t, in.Values)

	not, ok := and.Right.(*core.UnaryExpr)
	require.True(t, ok)
	assert.IsType(t, &core.ExistsExpr{}, not.Expr)
}

func TestExprErrors(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		offset int
		msg    string
	}{
		{"missing operand", "SELECT a +", 10, "expected expression"},
		{"unmatched paren", "SELECT (a + b", 13, `expected ")"`},
		{"reserved word as operand", "SELECT a = FROM", 11, "expected expression"},
		{"case without when", "SELECT CASE a END", 14, "expected WHEN"},
		{"between without and", "SELECT a BETWEEN 1 OR 2", 19, "expected AND"},
		{"is without null", "SELECT a IS 1", 12, "expected NULL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(generic.Generic, Options{}).Parse(tt.sql)
			require.Error(t, err)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.offset, pe.Offset())
			assert.Contains(t, pe.Message, tt.msg)
		})
	}
}

func TestExprDepthLimit(t *testing.T) {
	deep := "SELECT " + strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50)

	_, err := New(generic.Generic, Options{MaxDepth: 20}).Parse(deep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum depth of 20")

	_, err = New(generic.Generic, Options{}).Parse(deep)
	require.NoError(t, err)

	pathological := "SELECT " + strings.Repeat("(", 100000) + "1" + strings.Repeat(")", 100000)
	_, err = New(generic.Generic, Options{}).Parse(pathological)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestExprSubqueryAliasOnItem(t *testing.T) {
	sc := mustParse(t, mssql.MsSQL, "SELECT (SELECT 1) n, (SELECT 2) AS [m] FROM (SELECT 3 AS x) d").Select().Body.Core

	require.Len(t, sc.Columns, 2)
	assert.IsType(t, &core.SubqueryExpr{}, sc.Columns[0].Expr)
	assert.Equal(t, core.Ident("n"), sc.Columns[0].Alias)
	assert.Equal(t, core.QuotedIdent("m", core.QuoteBracket), sc.Columns[1].Alias)
	assert.Equal(t, core.Ident("d"), sc.From.Source.(*core.DerivedTable).Alias)
}
