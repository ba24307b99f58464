package parser

import (
	"testing"

	"github.com/leapstack-labs/sqlround/pkg/dialects/generic"
	"github.com/leapstack-labs/sqlround/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorPeekPastEnd(t *testing.T) {
	c := NewCursor(lex(t, generic.Generic, "SELECT a"), 0)

	assert.Equal(t, "SELECT", c.Current().Text)
	assert.Equal(t, "a", c.Peek(1).Text)
	assert.Equal(t, token.EndOfInput, c.Peek(2).Kind)
	assert.Equal(t, token.EndOfInput, c.Peek(50).Kind)
	assert.Equal(t, "SELECT", c.Current().Text, "peek must not move")
}

func TestCursorNextStopsAtEnd(t *testing.T) {
	c := NewCursor(lex(t, generic.Generic, "a"), 0)
	assert.Equal(t, "a", c.Next().Text)
	assert.True(t, c.AtEnd())
	assert.Equal(t, token.EndOfInput, c.Next().Kind)
	assert.Equal(t, token.EndOfInput, c.Next().Kind)
	assert.True(t, c.AtEnd())
}

func TestCursorAppendsEndOfInput(t *testing.T) {
	c := NewCursor([]token.Token{{Kind: token.Identifier, Text: "x"}}, 0)
	c.Next()
	assert.True(t, c.AtEnd())

	empty := NewCursor(nil, 0)
	assert.True(t, empty.AtEnd())
}

func TestCursorExpect(t *testing.T) {
	c := NewCursor(lex(t, generic.Generic, "select ( x"), 0)

	tok, err := c.Expect("SELECT", token.Keyword)
	require.NoError(t, err)
	assert.Equal(t, "select", tok.Text)

	_, err = c.Expect("(", token.Parenthesis)
	require.NoError(t, err)

	_, err = c.Expect(")", token.Parenthesis)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 9, pe.Offset())
	assert.Equal(t, "x", pe.Token.Text)
	assert.Contains(t, pe.Message, `expected ")"`)

	// A failed Expect does not consume.
	assert.Equal(t, "x", c.Current().Text)
}

func TestCursorExpectKindMismatch(t *testing.T) {
	// A quoted identifier spelled like a keyword is not the keyword.
	c := NewCursor(lex(t, generic.Generic, `"FROM"`), 0)
	assert.False(t, c.IsKeyword("FROM"))
	assert.False(t, c.IsWord("FROM"))
	require.Error(t, c.ExpectKeyword("FROM"))
}

func TestCursorAcceptAndMatch(t *testing.T) {
	c := NewCursor(lex(t, generic.Generic, "ORDER BY a, b"), 0)
	assert.False(t, c.AcceptKeyword("GROUP"))
	require.NoError(t, c.ExpectKeywords("ORDER", "BY"))
	assert.True(t, c.IsWord("A"))
	c.Next()
	assert.True(t, c.Match(",", token.Comma))
	assert.True(t, c.Accept(",", token.Comma))
	assert.False(t, c.Accept(",", token.Comma))
}

func TestCursorDepth(t *testing.T) {
	c := NewCursor(nil, 2)
	require.NoError(t, c.enter())
	require.NoError(t, c.enter())
	err := c.enter()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum depth of 2")
	c.leave()
	require.NoError(t, c.enter())
}
