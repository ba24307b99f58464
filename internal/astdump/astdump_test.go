package astdump

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialects/generic"
	"github.com/leapstack-labs/sqlround/pkg/dialects/mssql"
	"github.com/leapstack-labs/sqlround/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func path(t *testing.T, v any, keys ...string) any {
	t.Helper()
	for _, k := range keys {
		m, ok := v.(map[string]any)
		require.True(t, ok, "expected mapping at %q, got %T", k, v)
		v, ok = m[k]
		require.True(t, ok, "missing key %q in %v", k, m)
	}
	return v
}

func TestValue_Select(t *testing.T) {
	stmt, err := parser.New(generic.Generic, parser.Options{}).Parse("SELECT a FROM t WHERE b = 1")
	require.NoError(t, err)

	v, err := Value(stmt)
	require.NoError(t, err)

	assert.Equal(t, "SELECT", path(t, v, "statement"))
	assert.Equal(t, "Select", path(t, v, "body", "node"))

	sc := path(t, v, "body", "body", "left")
	assert.Equal(t, "SelectCore", path(t, sc, "node"))

	cols, ok := path(t, sc, "columns").([]any)
	require.True(t, ok)
	require.Len(t, cols, 1)
	assert.Equal(t, "a", path(t, cols[0], "expr", "column", "name"))

	assert.Equal(t, "t", path(t, sc, "from", "source", "name", "name", "name"))

	where := path(t, sc, "where")
	assert.Equal(t, "Binary", path(t, where, "node"))
	assert.Equal(t, "=", path(t, where, "op"))
	assert.Equal(t, "number", path(t, where, "right", "type"))
	assert.Equal(t, "1", path(t, where, "right", "value"))

	// Absent clauses and false flags are omitted.
	m := sc.(map[string]any)
	assert.NotContains(t, m, "group_by")
	assert.NotContains(t, m, "distinct")
	assert.NotContains(t, path(t, v, "body", "body").(map[string]any), "op")
}

func TestValue_QuotedIdentifiers(t *testing.T) {
	stmt, err := parser.New(mssql.MsSQL, parser.Options{}).Parse("SELECT TOP 3 [Order Id] FROM dbo.[Orders]")
	require.NoError(t, err)

	v, err := Value(stmt)
	require.NoError(t, err)

	sc := path(t, v, "body", "body", "left")
	assert.Equal(t, "Top", path(t, sc, "top", "node"))

	col := path(t, sc, "columns").([]any)[0]
	ident := path(t, col, "expr", "column")
	assert.Equal(t, "Order Id", path(t, ident, "name"))
	assert.Equal(t, true, path(t, ident, "quoted"))
	assert.Equal(t, "bracket", path(t, ident, "style"))

	name := path(t, sc, "from", "source", "name")
	assert.Equal(t, "dbo", path(t, name, "schema", "name"))
	assert.Equal(t, "Orders", path(t, name, "name", "name"))
}

func TestWriteYAML_Script(t *testing.T) {
	stmts, err := parser.New(generic.Generic, parser.Options{}).ParseScript("DELETE FROM t; DROP TABLE IF EXISTS t CASCADE")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, stmts))

	var docs []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "DELETE", docs[0]["statement"])
	assert.Equal(t, "DROP TABLE", docs[1]["statement"])
	assert.True(t, strings.HasPrefix(buf.String(), "- statement: DELETE\n"))
	assert.Contains(t, buf.String(), "behavior: CASCADE")
}

func TestWriteJSON(t *testing.T) {
	stmt, err := parser.New(generic.Generic, parser.Options{}).Parse("UPDATE t SET a = NULL")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, stmt))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "UPDATE", got["statement"])
	assert.Equal(t, "null", path(t, got, "body", "set").([]any)[0].(map[string]any)["value"].(map[string]any)["type"])
}

func TestNode_Nil(t *testing.T) {
	var stmt *core.SqlStatement
	assert.Equal(t, "null", Node(stmt).Value)
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Name":        "name",
		"OrderBy":     "order_by",
		"CTEs":        "ctes",
		"IfNotExists": "if_not_exists",
		"HTTPServer":  "http_server",
		"StartAt":     "start_at",
	}
	for in, want := range tests {
		assert.Equal(t, want, snakeCase(in), in)
	}
}
