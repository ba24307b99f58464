package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/token"
)

// DefaultMaxDepth bounds expression and subquery nesting.
const DefaultMaxDepth = 200

// Cursor is a forward-only view over a token sequence. Statement and
// expression parsers read tokens only through it.
type Cursor struct {
	tokens   []token.Token
	pos      int
	depth    int
	maxDepth int
}

// NewCursor creates a cursor over tokens. An EndOfInput token is appended
// if the sequence does not already end with one. maxDepth <= 0 selects
// DefaultMaxDepth.
func NewCursor(tokens []token.Token, maxDepth int) *Cursor {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != token.EndOfInput {
		var pos token.Position
		if n > 0 {
			pos = tokens[n-1].Pos
		}
		tokens = append(tokens, token.Token{Kind: token.EndOfInput, Pos: pos})
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Cursor{tokens: tokens, maxDepth: maxDepth}
}

// Peek returns the token offset positions ahead without moving. Reading
// past the end returns the EndOfInput token.
func (c *Cursor) Peek(offset int) token.Token {
	i := c.pos + offset
	if i < 0 {
		i = 0
	}
	if i >= len(c.tokens) {
		i = len(c.tokens) - 1
	}
	return c.tokens[i]
}

// Current returns the current token.
func (c *Cursor) Current() token.Token {
	return c.Peek(0)
}

// Next returns the current token and advances. At EndOfInput it does not
// move.
func (c *Cursor) Next() token.Token {
	tok := c.Current()
	if c.pos < len(c.tokens)-1 {
		c.pos++
	}
	return tok
}

// Expect consumes the current token if it has the given kind and text
// (case-insensitive for keywords; empty text matches any), and fails with
// a ParseError otherwise.
func (c *Cursor) Expect(text string, kind token.Kind) (token.Token, error) {
	if !c.Match(text, kind) {
		want := text
		switch {
		case want == "":
			want = strings.ToLower(kind.String())
		case kind == token.Keyword:
			want = strings.ToUpper(text)
		default:
			want = fmt.Sprintf("%q", text)
		}
		return token.Token{}, c.Errorf(ErrUnexpectedToken, c.Current(), want)
	}
	return c.Next(), nil
}

// Match reports whether the current token has the given kind and text
// without consuming it.
func (c *Cursor) Match(text string, kind token.Kind) bool {
	return c.Current().Is(kind, text)
}

// IsKeyword reports whether the current token is the given keyword.
func (c *Cursor) IsKeyword(word string) bool {
	return c.Current().IsKeyword(word)
}

// PeekKeyword reports whether the token offset positions ahead is the
// given keyword.
func (c *Cursor) PeekKeyword(offset int, word string) bool {
	return c.Peek(offset).IsKeyword(word)
}

// IsWord reports whether the current token is the given word written bare,
// as a keyword or as an unquoted identifier. It serves contextual words
// that not every dialect lists as keywords.
func (c *Cursor) IsWord(word string) bool {
	return isWord(c.Current(), word)
}

func isWord(t token.Token, word string) bool {
	if t.Kind != token.Keyword && (t.Kind != token.Identifier || t.Quote != token.QuoteNone) {
		return false
	}
	return strings.EqualFold(t.Text, word)
}

// AcceptKeyword consumes the current token if it is the given keyword.
func (c *Cursor) AcceptKeyword(word string) bool {
	if c.IsKeyword(word) {
		c.Next()
		return true
	}
	return false
}

// Accept consumes the current token if it matches text and kind.
func (c *Cursor) Accept(text string, kind token.Kind) bool {
	if c.Match(text, kind) {
		c.Next()
		return true
	}
	return false
}

// ExpectKeyword consumes the given keyword or fails.
func (c *Cursor) ExpectKeyword(word string) error {
	_, err := c.Expect(word, token.Keyword)
	return err
}

// ExpectKeywords consumes a keyword sequence such as ORDER BY.
func (c *Cursor) ExpectKeywords(words ...string) error {
	for _, w := range words {
		if err := c.ExpectKeyword(w); err != nil {
			return err
		}
	}
	return nil
}

// AtEnd reports whether the cursor is at EndOfInput.
func (c *Cursor) AtEnd() bool {
	return c.Current().Kind == token.EndOfInput
}

// Errorf returns a ParseError at the current token.
func (c *Cursor) Errorf(format string, args ...any) *ParseError {
	tok := c.Current()
	return &ParseError{Pos: tok.Pos, Token: tok, Message: fmt.Sprintf(format, args...)}
}

// enter increments the nesting depth, failing once the limit is exceeded.
// Every successful enter must be paired with leave.
func (c *Cursor) enter() error {
	if c.depth >= c.maxDepth {
		return c.Errorf(ErrMaxDepth, c.maxDepth)
	}
	c.depth++
	return nil
}

func (c *Cursor) leave() {
	c.depth--
}
