package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// Lexer tokenizes SQL input. It works on runes so that offsets and columns
// count characters, not bytes.
type Lexer struct {
	d   *dialect.Dialect
	src []rune
	pos int            // index of the current rune
	at  token.Position // location of src[pos]
}

// NewLexer creates a new Lexer for the given input and dialect.
func NewLexer(input string, d *dialect.Dialect) *Lexer {
	return &Lexer{
		d:   d,
		src: []rune(input),
		at:  token.Start,
	}
}

// Tokenize lexes the whole input. The returned sequence always ends with a
// single EndOfInput token.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EndOfInput {
			return tokens, nil
		}
	}
}

// peekChar returns the rune at pos+offset, or 0 past the end.
func (l *Lexer) peekChar(offset int) rune {
	if i := l.pos + offset; i < len(l.src) {
		return l.src[i]
	}
	return 0
}

// ch returns the current rune, or 0 at end of input.
func (l *Lexer) ch() rune {
	return l.peekChar(0)
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.eof() {
		return
	}
	l.at = l.at.Advance(l.src[l.pos])
	l.pos++
}

// Pos returns the location of the next unread character.
func (l *Lexer) Pos() token.Position {
	return l.at
}

func (l *Lexer) errorf(pos token.Position, format string, args ...any) *LexError {
	return &LexError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() (token.Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return token.Token{}, err
	}

	pos := l.Pos()
	if l.eof() {
		return token.Token{Kind: token.EndOfInput, Pos: pos}, nil
	}

	ch := l.ch()
	switch {
	case ch == '\'':
		return l.readString(pos, "")
	case (ch == 'N' || ch == 'n') && l.peekChar(1) == '\'' && l.d.Supports(dialect.FeatureNationalStrings):
		l.readChar()
		return l.readString(pos, "N")
	case isDigit(ch) || ch == '.' && isDigit(l.peekChar(1)):
		return l.readNumber(pos)
	case ch == '"' && l.d.Identifiers.Double:
		return l.readQuotedIdentifier(pos, '"', token.QuoteDouble)
	case ch == '[' && l.d.Identifiers.Bracket:
		return l.readQuotedIdentifier(pos, ']', token.QuoteBracket)
	}

	// Multi-character operators, longest first.
	for _, sym := range l.d.Symbols() {
		if l.hasPrefix(sym) {
			for range []rune(sym) {
				l.readChar()
			}
			return token.Token{Kind: token.Operator, Text: sym, Pos: pos}, nil
		}
	}

	switch ch {
	case '+', '-', '*', '/', '%', '=', '<', '>', '.':
		l.readChar()
		return token.Token{Kind: token.Operator, Text: string(ch), Pos: pos}, nil
	case '(', ')':
		l.readChar()
		return token.Token{Kind: token.Parenthesis, Text: string(ch), Pos: pos}, nil
	case ',':
		l.readChar()
		return token.Token{Kind: token.Comma, Text: ",", Pos: pos}, nil
	case ';':
		l.readChar()
		return token.Token{Kind: token.Semicolon, Text: ";", Pos: pos}, nil
	}

	if l.d.IsIdentStart(ch) {
		word := l.readIdentifier()
		kind := token.Identifier
		if l.d.IsKeyword(word) {
			kind = token.Keyword
		}
		return token.Token{Kind: kind, Text: word, Pos: pos}, nil
	}

	return token.Token{}, l.errorf(pos, ErrIllegalCharacter, ch)
}

func (l *Lexer) hasPrefix(s string) bool {
	i := l.pos
	for _, r := range s {
		if i >= len(l.src) || l.src[i] != r {
			return false
		}
		i++
	}
	return true
}

// skipWhitespaceAndComments skips whitespace, -- line comments and
// /* block */ comments.
func (l *Lexer) skipWhitespaceAndComments() error {
	for !l.eof() {
		ch := l.ch()
		switch {
		case unicode.IsSpace(ch):
			l.readChar()
		case ch == '-' && l.peekChar(1) == '-':
			for !l.eof() && l.ch() != '\n' {
				l.readChar()
			}
		case ch == '/' && l.peekChar(1) == '*':
			start := l.Pos()
			l.readChar()
			l.readChar()
			for {
				if l.eof() {
					return l.errorf(start, ErrUnterminatedComment)
				}
				if l.ch() == '*' && l.peekChar(1) == '/' {
					l.readChar()
					l.readChar()
					break
				}
				l.readChar()
			}
		default:
			return nil
		}
	}
	return nil
}

// readString reads a quoted string literal. A doubled quote is a literal
// quote; dialects with backslash escapes also accept \' and \\.
func (l *Lexer) readString(pos token.Position, prefix string) (token.Token, error) {
	var sb strings.Builder
	l.readChar() // skip opening quote

	for {
		if l.eof() {
			return token.Token{}, l.errorf(pos, ErrUnterminatedString)
		}
		ch := l.ch()
		switch {
		case ch == '\'':
			if l.peekChar(1) == '\'' {
				sb.WriteRune('\'')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			return token.Token{Kind: token.StringLiteral, Text: sb.String(), Pos: pos, Prefix: prefix}, nil
		case ch == '\\' && l.d.Strings == dialect.EscapeBackslash:
			if l.pos+1 >= len(l.src) {
				return token.Token{}, l.errorf(pos, ErrUnterminatedString)
			}
			r, n := l.backslashEscape()
			sb.WriteRune(r)
			for range n {
				l.readChar()
			}
		default:
			sb.WriteRune(ch)
			l.readChar()
		}
	}
}

// backslashEscape decodes the escape starting at the current backslash and
// reports how many characters it spans. \\, \', \n and \xHH are escapes;
// any other backslash stands for itself.
func (l *Lexer) backslashEscape() (rune, int) {
	switch l.peekChar(1) {
	case '\\':
		return '\\', 2
	case '\'':
		return '\'', 2
	case 'n':
		return '\n', 2
	case 'x':
		hi, ok1 := hexValue(l.peekChar(2))
		lo, ok2 := hexValue(l.peekChar(3))
		if ok1 && ok2 {
			return rune(hi<<4 | lo), 4
		}
	}
	return '\\', 1
}

func hexValue(r rune) (int, bool) {
	switch {
	case '0' <= r && r <= '9':
		return int(r - '0'), true
	case 'a' <= r && r <= 'f':
		return int(r-'a') + 10, true
	case 'A' <= r && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}

// readQuotedIdentifier reads a delimited identifier. The closing delimiter
// is escaped by doubling it.
func (l *Lexer) readQuotedIdentifier(pos token.Position, closing rune, style token.QuoteStyle) (token.Token, error) {
	var sb strings.Builder
	l.readChar() // skip opening delimiter

	for {
		if l.eof() {
			return token.Token{}, l.errorf(pos, ErrUnterminatedIdentifier)
		}
		ch := l.ch()
		if ch == closing {
			if l.peekChar(1) == closing {
				sb.WriteRune(closing)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			return token.Token{Kind: token.Identifier, Text: sb.String(), Pos: pos, Quote: style}, nil
		}
		sb.WriteRune(ch)
		l.readChar()
	}
}

// readNumber reads integer, decimal and exponent forms: 42, 3.14, .5, 1e10,
// 2.5E-3.
func (l *Lexer) readNumber(pos token.Position) (token.Token, error) {
	start := l.pos

	for isDigit(l.ch()) {
		l.readChar()
	}
	if l.ch() == '.' {
		l.readChar()
		for isDigit(l.ch()) {
			l.readChar()
		}
	}
	if ch := l.ch(); ch == 'e' || ch == 'E' {
		next := l.peekChar(1)
		if isDigit(next) || (next == '+' || next == '-') && isDigit(l.peekChar(2)) {
			l.readChar()
			if next == '+' || next == '-' {
				l.readChar()
			}
			for isDigit(l.ch()) {
				l.readChar()
			}
		}
	}

	text := string(l.src[start:l.pos])
	if ch := l.ch(); ch != 0 && (l.d.IsIdentPart(ch) || ch == '.') {
		return token.Token{}, l.errorf(pos, ErrInvalidNumber, text+string(ch))
	}
	return token.Token{Kind: token.NumericLiteral, Text: text, Pos: pos}, nil
}

// readIdentifier reads a bare word.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	l.readChar()
	for !l.eof() && l.d.IsIdentPart(l.ch()) {
		l.readChar()
	}
	return string(l.src[start:l.pos])
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
