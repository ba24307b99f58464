package core

import "github.com/leapstack-labs/sqlround/pkg/token"

// QuoteStyle records the delimiter an identifier was written with.
type QuoteStyle = token.QuoteStyle

// Quote styles.
const (
	QuoteNone    = token.QuoteNone
	QuoteDouble  = token.QuoteDouble
	QuoteBracket = token.QuoteBracket
)

// QuotedIdentifier is a user supplied name together with its quoting
// metadata. When Quoted is false Style is always QuoteNone.
type QuotedIdentifier struct {
	Name   string
	Quoted bool
	Style  QuoteStyle
}

// Ident returns an unquoted identifier.
func Ident(name string) QuotedIdentifier {
	return QuotedIdentifier{Name: name}
}

// QuotedIdent returns an identifier written with the given delimiter.
// QuoteNone yields an unquoted identifier.
func QuotedIdent(name string, style QuoteStyle) QuotedIdentifier {
	if style == QuoteNone {
		return Ident(name)
	}
	return QuotedIdentifier{Name: name, Quoted: true, Style: style}
}

// IsZero reports whether the identifier is absent.
func (q QuotedIdentifier) IsZero() bool {
	return q.Name == "" && !q.Quoted
}

// ObjectName is a possibly qualified name of a table, index or function:
// [catalog.][schema.]name.
type ObjectName struct {
	Catalog QuotedIdentifier
	Schema  QuotedIdentifier
	Name    QuotedIdentifier
}

// NewObjectName builds a name from one to three dotted parts.
func NewObjectName(parts ...QuotedIdentifier) ObjectName {
	switch len(parts) {
	case 0:
		return ObjectName{}
	case 1:
		return ObjectName{Name: parts[0]}
	case 2:
		return ObjectName{Schema: parts[0], Name: parts[1]}
	default:
		n := len(parts)
		return ObjectName{Catalog: parts[n-3], Schema: parts[n-2], Name: parts[n-1]}
	}
}

// Parts returns the present parts in source order.
func (o ObjectName) Parts() []QuotedIdentifier {
	parts := make([]QuotedIdentifier, 0, 3)
	if !o.Catalog.IsZero() {
		parts = append(parts, o.Catalog)
	}
	if !o.Schema.IsZero() || !o.Catalog.IsZero() {
		parts = append(parts, o.Schema)
	}
	return append(parts, o.Name)
}

// IsZero reports whether the name is absent.
func (o ObjectName) IsZero() bool {
	return o.Name.IsZero() && o.Schema.IsZero() && o.Catalog.IsZero()
}
