package format

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/dialects/generic"
	"github.com/leapstack-labs/sqlround/pkg/dialects/mssql"
	"github.com/leapstack-labs/sqlround/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlround/pkg/dialects/sqlanywhere"
	"github.com/leapstack-labs/sqlround/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roundTripCorpus = map[*dialect.Dialect][]string{
	generic.Generic: {
		"SELECT DISTINCT a, b + 1 AS c FROM s.t WHERE a BETWEEN 1 AND 10 AND b NOT LIKE 'x%' ESCAPE '!'",
		"SELECT a FROM t WHERE NOT (a = 1 OR b IS NULL) ORDER BY a NULLS LAST",
		"SELECT a FROM t1 INNER JOIN t2 ON t1.id = t2.id RIGHT JOIN t3 USING (id) CROSS JOIN t4",
		"SELECT COUNT(*) FROM t GROUP BY a, b HAVING SUM(c) > 10 ORDER BY 1 DESC LIMIT 5",
		"SELECT a FROM t OFFSET 3",
		"SELECT a FROM t UNION SELECT b FROM u EXCEPT SELECT c FROM v",
		"SELECT 1 UNION ALL SELECT 2 INTERSECT SELECT 3 EXCEPT SELECT 4 ORDER BY 1 DESC LIMIT 2 OFFSET 1",
		"WITH x (a) AS (SELECT 1), y AS (SELECT a FROM x) SELECT * FROM y",
		"SELECT CASE a WHEN 1 THEN 'one' WHEN 2 THEN 'two' END FROM t",
		"SELECT SUM(a) OVER (ORDER BY b RANGE BETWEEN 1 PRECEDING AND 1 FOLLOWING) FROM t",
		"SELECT a || b, -c, (SELECT MAX(d) FROM u) FROM t",
		"SELECT a FROM t WHERE a NOT IN (SELECT b FROM u) AND NOT EXISTS (SELECT 1 FROM v WHERE v.a = t.a)",
		"INSERT INTO t DEFAULT VALUES",
		"UPDATE t SET a = NULL WHERE b IN (1, 2, 3)",
		"CREATE TABLE t (a INT CHECK (a > 0), b VARCHAR(10) UNIQUE REFERENCES u (b) ON UPDATE SET NULL, CHECK (a < 100))",
		"CREATE INDEX IF NOT EXISTS ix ON t (a)",
		"DROP INDEX IF EXISTS s.ix",
	},
	mssql.MsSQL: {
		"SELECT TOP 10 [Name], N'x' AS [n] FROM [dbo].[Users] AS u",
		"SELECT a FROM t ORDER BY a OFFSET 0 ROWS",
		"SELECT a FROM t ORDER BY a OFFSET 5 ROW FETCH FIRST 1 ROW ONLY",
		"SELECT a FROM t CROSS APPLY dbo.f(t.id) AS x",
		"UPDATE x SET a = 1 FROM t AS x INNER JOIN u ON u.id = x.id",
		"ALTER TABLE t ADD CONSTRAINT pk PRIMARY KEY (a), CONSTRAINT u UNIQUE (b)",
		"ALTER TABLE t DROP CONSTRAINT IF EXISTS c1, c2",
		"CREATE TABLE #tmp (id INT IDENTITY PRIMARY KEY, flag BIT NOT NULL DEFAULT 0)",
		"DROP TABLE IF EXISTS #tmp",
	},
	postgres.Postgres: {
		"SELECT a::text, b ILIKE 'x%' FROM t WHERE c IS NOT NULL FETCH FIRST 1 ROWS ONLY",
		"INSERT INTO t (a) SELECT b FROM u RETURNING *",
		"DELETE FROM t WHERE a = TRUE RETURNING a, b AS c",
		"ALTER TABLE t ALTER COLUMN a TYPE NUMERIC(10, 2) NOT NULL, DROP CONSTRAINT IF EXISTS c",
		"SELECT a FROM t ORDER BY a DESC NULLS FIRST LIMIT 10 OFFSET 20",
	},
	sqlanywhere.SQLAnywhere: {
		"SELECT TOP 10 START AT 5 a FROM t ORDER BY a",
		"SELECT a FROM t LIMIT 5",
		"SELECT [a], 'back\\slash' FROM t",
		"SELECT 'a\\nb', '\\x41', 'tab\\x09' FROM t",
		"CREATE TABLE t (id INT DEFAULT AUTOINCREMENT PRIMARY KEY, v LONG VARCHAR NULL)",
		"CREATE CLUSTERED INDEX ix ON t (v DESC)",
		"ALTER TABLE t MODIFY a VARCHAR(20), DROP b",
	},
}

func TestRoundTrip(t *testing.T) {
	type renderer func(*core.SqlStatement, *dialect.Dialect) string
	lower := Options{IndentWidth: 4, KeywordCase: KeywordLower}
	renderers := map[string]renderer{
		"reconstruct": Reconstruct,
		"format":      Format,
		"format lower": func(stmt *core.SqlStatement, d *dialect.Dialect) string {
			return NewFormatter(d, lower).Format(stmt)
		},
	}

	for d, corpus := range roundTripCorpus {
		for _, sql := range corpus {
			t.Run(d.Name+"/"+sql, func(t *testing.T) {
				stmt := parse(t, d, sql)
				for name, render := range renderers {
					out := render(stmt, d)
					again, err := parser.New(d, parser.Options{}).Parse(out)
					require.NoError(t, err, "%s output:\n%s", name, out)
					assert.Equal(t, stmt, again, "%s changed the tree:\n%s", name, out)
					assert.Equal(t, out, render(again, d), "%s is not idempotent", name)
				}
			})
		}
	}
}

func TestRoundTrip_BackslashEscapes(t *testing.T) {
	tests := []struct {
		sql   string
		value string
		out   string
	}{
		{`SELECT 'a\nb'`, "a\nb", `SELECT 'a\nb'`},
		{`SELECT '\x41'`, "A", `SELECT 'A'`},
		{`SELECT 'back\slash'`, `back\slash`, `SELECT 'back\\slash'`},
		{`SELECT 'it\'s'`, "it's", `SELECT 'it''s'`},
	}
	d := sqlanywhere.SQLAnywhere
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			stmt := parse(t, d, tt.sql)
			lit := stmt.Select().Body.Core.Columns[0].Expr.(*core.Literal)
			assert.Equal(t, tt.value, lit.Value)

			out := Reconstruct(stmt, d)
			assert.Equal(t, tt.out, out)

			again := parse(t, d, out)
			assert.Equal(t, tt.value, again.Select().Body.Core.Columns[0].Expr.(*core.Literal).Value)
		})
	}
}

func TestRoundTrip_LongSetChain(t *testing.T) {
	sql := "SELECT 0" + strings.Repeat(" UNION ALL SELECT 1", 5000) + " ORDER BY 1"
	stmt := parse(t, generic.Generic, sql)

	out := Reconstruct(stmt, generic.Generic)
	assert.Equal(t, sql, out)
	assert.Equal(t, 5001, strings.Count(Format(stmt, generic.Generic), "SELECT"))
}
