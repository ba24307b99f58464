package format

import (
	"testing"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/dialects/generic"
	"github.com/leapstack-labs/sqlround/pkg/dialects/mssql"
	"github.com/leapstack-labs/sqlround/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, d *dialect.Dialect, sql string) *core.SqlStatement {
	t.Helper()
	stmt, err := parser.New(d, parser.Options{}).Parse(sql)
	require.NoError(t, err, sql)
	return stmt
}

func TestFormat_Select(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "simple select",
			input: "SELECT a, b FROM t",
			expected: `SELECT
  a,
  b
FROM t`,
		},
		{
			name:  "select with alias and star",
			input: "select a as col1, t.* from t",
			expected: `SELECT
  a AS col1,
  t.*
FROM t`,
		},
		{
			name:  "all clauses",
			input: "SELECT a, b FROM t JOIN u ON t.id = u.id WHERE x = 1 GROUP BY a ORDER BY a DESC LIMIT 10 OFFSET 5",
			expected: `SELECT
  a,
  b
FROM t
JOIN u
  ON t.id = u.id
WHERE
  x = 1
GROUP BY
  a
ORDER BY
  a DESC
LIMIT 10
OFFSET 5`,
		},
		{
			name:  "comma join stays inline",
			input: "SELECT a FROM t, u LEFT OUTER JOIN v USING (id)",
			expected: `SELECT
  a
FROM t, u
LEFT OUTER JOIN v USING (id)`,
		},
		{
			name:  "long conditions break before logical operators",
			input: "SELECT a FROM t WHERE a = 1 AND b = 2 AND c = 3",
			expected: `SELECT
  a
FROM t
WHERE
  a = 1
  AND b = 2
  AND c = 3`,
		},
		{
			name:  "short conditions stay inline",
			input: "SELECT a FROM t WHERE a = 1 OR b",
			expected: `SELECT
  a
FROM t
WHERE
  a = 1 OR b`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parse(t, generic.Generic, tt.input)
			assert.Equal(t, tt.expected, Format(stmt, generic.Generic))
		})
	}
}

func TestFormat_Nesting(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "cte",
			input: "WITH cte AS (SELECT a FROM t) SELECT a FROM cte",
			expected: `WITH
  cte AS (
    SELECT
      a
    FROM t
  )
SELECT
  a
FROM cte`,
		},
		{
			name:  "derived table",
			input: "SELECT a FROM (SELECT a FROM t) AS sub",
			expected: `SELECT
  a
FROM (
  SELECT
    a
  FROM t
) AS sub`,
		},
		{
			name:  "case",
			input: "SELECT CASE WHEN x = 1 THEN 'a' ELSE 'b' END AS c FROM t",
			expected: `SELECT
  CASE
    WHEN x = 1 THEN 'a'
    ELSE 'b'
  END AS c
FROM t`,
		},
		{
			name:  "union",
			input: "SELECT a FROM t UNION ALL SELECT b FROM u",
			expected: `SELECT
  a
FROM t
UNION ALL
SELECT
  b
FROM u`,
		},
		{
			name:  "union with order by",
			input: "SELECT a FROM t UNION SELECT b FROM u ORDER BY 1",
			expected: `SELECT
  a
FROM t
UNION
SELECT
  b
FROM u
ORDER BY
  1`,
		},
		{
			name:  "exists",
			input: "SELECT a FROM t WHERE EXISTS (SELECT 1 FROM u)",
			expected: `SELECT
  a
FROM t
WHERE
  EXISTS (
    SELECT
      1
    FROM u
  )`,
		},
		{
			name:  "window stays inline",
			input: "SELECT ROW_NUMBER() OVER (PARTITION BY a ORDER BY b) AS rn FROM t",
			expected: `SELECT
  ROW_NUMBER() OVER (PARTITION BY a ORDER BY b) AS rn
FROM t`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parse(t, generic.Generic, tt.input)
			assert.Equal(t, tt.expected, Format(stmt, generic.Generic))
		})
	}
}

func TestFormat_Statements(t *testing.T) {
	tests := []struct {
		name     string
		d        *dialect.Dialect
		input    string
		expected string
	}{
		{
			name:  "insert values",
			d:     generic.Generic,
			input: "INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')",
			expected: `INSERT INTO t (a, b)
VALUES
  (1, 'x'),
  (2, 'y')`,
		},
		{
			name:  "insert select",
			d:     generic.Generic,
			input: "INSERT INTO t SELECT a FROM u",
			expected: `INSERT INTO t
SELECT
  a
FROM u`,
		},
		{
			name:  "update",
			d:     generic.Generic,
			input: "UPDATE t SET a = 1, b = 2 WHERE id = 3",
			expected: `UPDATE t
SET
  a = 1,
  b = 2
WHERE
  id = 3`,
		},
		{
			name:  "delete",
			d:     generic.Generic,
			input: "DELETE t WHERE id = 3",
			expected: `DELETE FROM t
WHERE
  id = 3`,
		},
		{
			name:  "create table",
			d:     generic.Generic,
			input: "CREATE TABLE t (id INT NOT NULL, CONSTRAINT pk PRIMARY KEY (id))",
			expected: `CREATE TABLE t (
  id INT NOT NULL,
  CONSTRAINT pk PRIMARY KEY (id)
)`,
		},
		{
			name:  "grouped alter",
			d:     mssql.MsSQL,
			input: "ALTER TABLE t ADD a INT, b INT",
			expected: `ALTER TABLE t
  ADD a INT,
  b INT`,
		},
		{
			name:  "offset fetch",
			d:     mssql.MsSQL,
			input: "SELECT a FROM t ORDER BY a OFFSET 10 ROWS FETCH NEXT 5 ROWS ONLY",
			expected: `SELECT
  a
FROM t
ORDER BY
  a
OFFSET 10 ROWS
FETCH NEXT 5 ROWS ONLY`,
		},
		{
			name:     "index stays on one line",
			d:        mssql.MsSQL,
			input:    "CREATE UNIQUE CLUSTERED INDEX ix ON t (a DESC)",
			expected: "CREATE UNIQUE CLUSTERED INDEX ix ON t (a DESC)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parse(t, tt.d, tt.input)
			assert.Equal(t, tt.expected, Format(stmt, tt.d))
		})
	}
}

func TestFormat_Options(t *testing.T) {
	stmt := parse(t, generic.Generic, "SELECT a FROM t WHERE x IS NOT NULL AND y IN (1, 2)")

	f := NewFormatter(generic.Generic, Options{IndentWidth: 4, KeywordCase: KeywordLower})
	assert.Equal(t, `select
    a
from t
where
    x is not null
    and y in (1, 2)`, f.Format(stmt))

	// Out of range indentation falls back to the default.
	f = NewFormatter(generic.Generic, Options{IndentWidth: 40})
	assert.Equal(t, DefaultIndent, f.Options().IndentWidth)
	assert.Equal(t, Format(stmt, generic.Generic), f.Format(stmt))

	upper := f.WithOptions(Options{IndentWidth: 2, KeywordCase: KeywordUpper})
	assert.Same(t, generic.Generic, upper.Dialect())
}

func TestFormat_KeywordCaseLeavesNamesAlone(t *testing.T) {
	stmt := parse(t, generic.Generic, `SELECT MyCol, "Mixed", COUNT(*) FROM Tbl`)
	f := NewFormatter(generic.Generic, Options{KeywordCase: KeywordLower})
	assert.Equal(t, `select
  MyCol,
  "Mixed",
  COUNT(*)
from Tbl`, f.Format(stmt))
}

func TestParseKeywordCase(t *testing.T) {
	tests := []struct {
		in      string
		want    KeywordCase
		wantErr bool
	}{
		{"upper", KeywordUpper, false},
		{"LOWER", KeywordLower, false},
		{"", KeywordUpper, false},
		{"title", KeywordUpper, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKeywordCase(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustKeywordCase(t, got.String()))
		})
	}
}

func mustKeywordCase(t *testing.T, s string) KeywordCase {
	t.Helper()
	kc, err := ParseKeywordCase(s)
	require.NoError(t, err)
	return kc
}
