package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqlround/pkg/token"
)

// ParseError represents a parsing error with position information and the
// token seen at that position.
type ParseError struct {
	Pos     token.Position
	Token   token.Token
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d (offset %d): %s", e.Pos.Line, e.Pos.Column, e.Pos.Offset, e.Message)
}

// Offset returns the 0-based character offset of the error.
func (e *ParseError) Offset() int { return e.Pos.Offset }

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d (offset %d): %s", e.Pos.Line, e.Pos.Column, e.Pos.Offset, e.Message)
}

// Offset returns the 0-based character offset of the error.
func (e *LexError) Offset() int { return e.Pos.Offset }

// ErrorPosition returns the source position carried by a ParseError or
// LexError anywhere in err's chain.
func ErrorPosition(err error) (token.Position, bool) {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Pos, true
	}
	var lerr *LexError
	if errors.As(err, &lerr) {
		return lerr.Pos, true
	}
	return token.Position{}, false
}

// ErrorMessage returns the bare message of a positioned error, without the
// location prefix. Other errors return err.Error().
func ErrorMessage(err error) string {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Message
	}
	var lerr *LexError
	if errors.As(err, &lerr) {
		return lerr.Message
	}
	return err.Error()
}

// Common error messages
const (
	ErrUnexpectedToken         = "unexpected %s, expected %s"
	ErrUnterminatedString      = "unterminated string literal"
	ErrUnterminatedIdentifier  = "unterminated quoted identifier"
	ErrUnterminatedComment     = "unterminated block comment"
	ErrIllegalCharacter        = "illegal character %q"
	ErrInvalidNumber           = "invalid number literal %q"
	ErrUnrecognizedStatement   = "unrecognized statement starting with %s"
	ErrExpectedExpression      = "expected expression, got %s"
	ErrExpectedIdentifier      = "expected identifier, got %s"
	ErrMaxDepth                = "expression nesting exceeds maximum depth of %d"
	ErrTrailingInput           = "unexpected %s after end of statement"
	ErrUnsupportedSyntax       = "%s is not supported in %s dialect"
	ErrEmptyStatement          = "empty statement"
	ErrConflictingLimitClauses = "%s cannot be combined with %s"
)
