package commands

import (
	"testing"

	clitestutil "github.com/leapstack-labs/sqlround/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, mode string) (*replSession, *clitestutil.TestRenderer) {
	t.Helper()
	tr := clitestutil.NewTestRendererMarkdown()
	s, err := newREPLSession(newTestContext(t, tr, "generic"), mode)
	require.NoError(t, err)
	return s, tr
}

func TestREPL_MultiLineStatement(t *testing.T) {
	s, tr := newTestSession(t, "format")

	assert.False(t, s.handleLine("select a"))
	assert.Equal(t, replContinuePrompt, s.prompt())
	assert.Empty(t, tr.Output())

	assert.False(t, s.handleLine("from t;"))
	assert.Equal(t, replPrompt, s.prompt())
	assert.Equal(t, "SELECT\n  a\nFROM t\n\n", tr.Output())
}

func TestREPL_Modes(t *testing.T) {
	tests := []struct {
		mode string
		want string
	}{
		{"reconstruct", "SELECT a FROM t\n"},
		{"ast", "statement: SELECT\n"},
		{"tokens", "| Keyword"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			s, tr := newTestSession(t, tt.mode)
			s.handleLine("select a from t;")
			clitestutil.AssertContains(t, tr.Output(), tt.want)
		})
	}
}

func TestREPL_DotCommands(t *testing.T) {
	s, tr := newTestSession(t, "format")

	s.handleLine(".mode reconstruct")
	assert.Equal(t, "reconstruct", s.mode)

	s.handleLine(".dialect mssql")
	assert.Equal(t, "mssql", s.pipeline.Dialect().ID.String())

	tr.Reset()
	s.handleLine("select [a] from t;")
	assert.Equal(t, "SELECT [a] FROM t\n\n", tr.Output())

	tr.Reset()
	s.handleLine(".dialect")
	assert.Equal(t, "mssql\n", tr.Output())

	tr.Reset()
	s.handleLine(".dialect mysql")
	clitestutil.AssertContains(t, tr.ErrorOutput(), "not supported")
	assert.Equal(t, "mssql", s.pipeline.Dialect().ID.String())

	tr.Reset()
	s.handleLine(".mode nope")
	clitestutil.AssertContains(t, tr.ErrorOutput(), `unknown mode "nope"`)

	tr.Reset()
	s.handleLine(".bogus")
	clitestutil.AssertContains(t, tr.ErrorOutput(), "Unknown command: .bogus")

	tr.Reset()
	s.handleLine(".help")
	clitestutil.AssertContains(t, tr.Output(), ".dialect [name]")

	assert.True(t, s.handleLine(".quit"))
	assert.True(t, s.handleLine(".EXIT"))
}

func TestREPL_ParseErrorKeepsSession(t *testing.T) {
	s, tr := newTestSession(t, "format")

	s.handleLine("select a from;")
	clitestutil.AssertContains(t, tr.ErrorOutput(), "^")
	assert.Equal(t, replPrompt, s.prompt())

	tr.Reset()
	s.handleLine("select 1;")
	assert.Equal(t, "SELECT\n  1\n\n", tr.Output())
}

func TestREPL_Reset(t *testing.T) {
	s, _ := newTestSession(t, "format")
	s.handleLine("select a")
	s.reset()
	assert.Equal(t, replPrompt, s.prompt())

	// A dot at the start of a continuation line is SQL, not a command.
	s.handleLine("select t")
	assert.False(t, s.handleLine(".a from t;"))
}

func TestNewREPLSession_BadMode(t *testing.T) {
	tr := clitestutil.NewTestRendererMarkdown()
	_, err := newREPLSession(newTestContext(t, tr, "generic"), "html")
	require.Error(t, err)
}
