// Package token defines the lexical units produced by the SQL lexer.
//
// The set of token kinds is closed. Keywords are not distinguished by
// individual token types: a keyword token carries its source text and
// consumers compare it case-insensitively, which keeps the keyword list
// a property of the dialect instead of this package.
package token

import (
	"fmt"
	"strings"
)

// Kind classifies a token.
type Kind int

const (
	EndOfInput Kind = iota
	Keyword
	Identifier
	StringLiteral
	NumericLiteral
	Operator
	Parenthesis
	Comma
	Semicolon
)

var kindNames = [...]string{
	EndOfInput:     "EndOfInput",
	Keyword:        "Keyword",
	Identifier:     "Identifier",
	StringLiteral:  "StringLiteral",
	NumericLiteral: "NumericLiteral",
	Operator:       "Operator",
	Parenthesis:    "Parenthesis",
	Comma:          "Comma",
	Semicolon:      "Semicolon",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// QuoteStyle records which delimiter wrapped an identifier in the source.
type QuoteStyle int

const (
	QuoteNone QuoteStyle = iota
	QuoteDouble
	QuoteBracket
)

func (q QuoteStyle) String() string {
	switch q {
	case QuoteDouble:
		return "double"
	case QuoteBracket:
		return "bracket"
	default:
		return "none"
	}
}

// Token is a classified lexical unit. Tokens are values and never mutated
// after the lexer produces them.
type Token struct {
	Kind Kind
	// Text is the source text for keywords, identifiers, numbers and
	// punctuation. For string literals and quoted identifiers it is the
	// unescaped content without delimiters.
	Text string
	Pos  Position
	// Quote is set on quoted identifiers.
	Quote QuoteStyle
	// Prefix holds a string literal prefix such as N in N'abc'.
	Prefix string
}

// Is reports whether the token has the given kind and, when text is not
// empty, the given text. Keyword text is compared case-insensitively.
func (t Token) Is(kind Kind, text string) bool {
	if t.Kind != kind {
		return false
	}
	if text == "" {
		return true
	}
	if kind == Keyword {
		return strings.EqualFold(t.Text, text)
	}
	return t.Text == text
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(word string) bool {
	return t.Is(Keyword, word)
}

// String renders the token for error messages.
func (t Token) String() string {
	switch t.Kind {
	case EndOfInput:
		return "end of input"
	case StringLiteral:
		return fmt.Sprintf("string '%s'", t.Text)
	case Keyword:
		return fmt.Sprintf("keyword %s", strings.ToUpper(t.Text))
	default:
		return fmt.Sprintf("%s %q", strings.ToLower(t.Kind.String()), t.Text)
	}
}
