// Package dialect provides the SQL dialect capability object consumed by the
// lexer, the parser and the renderers.
//
// A Dialect is pure configuration: keyword and reserved word sets,
// identifier quoting, string escaping, the operator precedence table, the
// accepted join and row-limiting forms, and rendering choices for DDL.
// Shared parsing and rendering code asks the dialect what is allowed
// instead of branching on a dialect name. Concrete dialects are built with
// the fluent Builder and registered from pkg/dialects/*/ packages.
package dialect

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// LimitForm is a set of row-limiting clause forms.
type LimitForm uint8

// Row-limiting forms.
const (
	LimitTop         LimitForm = 1 << iota // TOP n
	LimitLimitOffset                       // LIMIT n OFFSET m
	LimitOffsetFetch                       // OFFSET m ROWS FETCH NEXT n ROWS ONLY
)

// StringEscape is the rule for embedding a quote in a string literal.
type StringEscape int

// String escape rules.
const (
	EscapeDoubled   StringEscape = iota // 'it''s'
	EscapeBackslash                     // 'it\'s', doubled quotes also accepted
)

// Feature is an optional grammar capability.
type Feature uint32

// Optional features.
const (
	FeatureNullsOrdering   Feature = 1 << iota // ORDER BY x NULLS FIRST
	FeatureReturning                           // INSERT/UPDATE/DELETE ... RETURNING
	FeatureCastOperator                        // expr::type
	FeatureIlike                               // ILIKE
	FeatureNationalStrings                     // N'...'
	FeatureTopStartAt                          // TOP n START AT m
	FeatureIdentity                            // IDENTITY(seed, increment)
	FeatureAutoIncrement                       // DEFAULT AUTOINCREMENT
	FeatureClusteredIndex                      // CREATE CLUSTERED INDEX
	FeatureConcatOperator                      // ||
)

// IdentifierConfig describes identifier quoting.
type IdentifierConfig struct {
	// Default is the style applied when an unquoted identifier needs quoting.
	Default token.QuoteStyle
	// Double and Bracket enable "x" and [x] in the lexer.
	Double  bool
	Bracket bool
	// ExtraStart and ExtraPart list characters beyond letters, digits and
	// underscore allowed in bare identifiers (# and @ in T-SQL).
	ExtraStart string
	ExtraPart  string
}

// ModifyColumnForm selects how an ALTER TABLE column modification renders.
type ModifyColumnForm int

// Column modification forms.
const (
	ModifyAlterColumn     ModifyColumnForm = iota // ALTER COLUMN c INT NOT NULL
	ModifyAlterColumnType                         // ALTER COLUMN c TYPE INT
	ModifyAlter                                   // ALTER c INT
	ModifyKeyword                                 // MODIFY c INT
)

// AlterStyle collects ALTER TABLE rendering choices.
type AlterStyle struct {
	AddColumnKeyword    bool // ADD COLUMN c vs ADD c
	DropColumnKeyword   bool // DROP COLUMN c vs DROP c
	GroupActions        bool // ADD a INT, b INT shares one verb
	Modify              ModifyColumnForm
	RenameTableTo       bool // RENAME TO t vs RENAME t
	RenameColumnKeyword bool // RENAME COLUMN a TO b vs RENAME a TO b
}

// Dialect is a named SQL grammar and rendering variant. A built Dialect is
// immutable and safe for concurrent use.
type Dialect struct {
	ID          ID
	Name        string
	Identifiers IdentifierConfig
	Strings     StringEscape
	Alter       AlterStyle

	trueLiteral  string
	falseLiteral string

	keywords      map[string]struct{}
	reservedWords map[string]struct{}
	operators     map[string]OperatorDef
	symbols       []string
	joinTypes     map[core.JoinType]JoinTypeDef
	limitForms    LimitForm
	features      Feature
}

// IsKeyword reports whether the lexer classifies word as a keyword.
func (d *Dialect) IsKeyword(word string) bool {
	_, ok := d.keywords[strings.ToUpper(word)]
	return ok
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToUpper(word)]
	return ok
}

// Keywords returns the keyword list, sorted.
func (d *Dialect) Keywords() []string {
	return sortedKeys(d.keywords)
}

// Supports reports whether every given feature is enabled.
func (d *Dialect) Supports(f Feature) bool {
	return d.features&f == f
}

// SupportsLimit reports whether the row-limiting form is accepted.
func (d *Dialect) SupportsLimit(f LimitForm) bool {
	return d.limitForms&f == f
}

// LimitForms returns the accepted row-limiting forms.
func (d *Dialect) LimitForms() LimitForm {
	return d.limitForms
}

// BooleanLiteral returns the spelling of a boolean literal.
func (d *Dialect) BooleanLiteral(v bool) string {
	if v {
		return d.trueLiteral
	}
	return d.falseLiteral
}

// ---------- Quoting ----------

// QuoteIdentifier quotes an identifier with the given style, escaping the
// closing delimiter by doubling it. QuoteNone selects the dialect default.
func (d *Dialect) QuoteIdentifier(name string, style token.QuoteStyle) string {
	if style == token.QuoteNone {
		style = d.Identifiers.Default
	}
	if style == token.QuoteBracket {
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteIdentifierIfNeeded quotes an identifier with the dialect default only
// if it is reserved or cannot be written bare.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.NeedsQuoting(name) {
		return d.QuoteIdentifier(name, d.Identifiers.Default)
	}
	return name
}

// NeedsQuoting reports whether name must be quoted to re-lex as the same
// identifier.
func (d *Dialect) NeedsQuoting(name string) bool {
	if name == "" || d.IsReservedWord(name) {
		return true
	}
	for i, r := range name {
		if i == 0 {
			if !d.IsIdentStart(r) {
				return true
			}
			continue
		}
		if !d.IsIdentPart(r) {
			return true
		}
	}
	return false
}

// IsIdentStart reports whether r may begin a bare identifier.
func (d *Dialect) IsIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || strings.ContainsRune(d.Identifiers.ExtraStart, r)
}

// IsIdentPart reports whether r may continue a bare identifier.
func (d *Dialect) IsIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || strings.ContainsRune(d.Identifiers.ExtraPart, r)
}

// QuoteString renders a string literal using the dialect's escape rule.
// Backslash dialects get \\, \n and \xHH for backslashes and control
// characters so the literal reads back to the same value.
func (d *Dialect) QuoteString(s string, national bool) string {
	var sb strings.Builder
	if national {
		sb.WriteByte('N')
	}
	sb.WriteByte('\'')
	for _, r := range s {
		switch {
		case r == '\'':
			sb.WriteString("''")
		case d.Strings != EscapeBackslash:
			sb.WriteRune(r)
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02X`, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

// ---------- Operators and joins ----------

// Symbols returns the multi-character operator symbols, longest first.
func (d *Dialect) Symbols() []string {
	return d.symbols
}

// Operator returns the operator definition for a token, if the token is an
// infix operator in this dialect.
func (d *Dialect) Operator(t token.Token) (OperatorDef, bool) {
	switch t.Kind {
	case token.Operator:
		def, ok := d.operators[t.Text]
		return def, ok
	case token.Keyword:
		def, ok := d.operators[strings.ToUpper(t.Text)]
		return def, ok
	}
	return OperatorDef{}, false
}

// Precedence returns the infix precedence of a token, or PrecedenceNone.
func (d *Dialect) Precedence(t token.Token) int {
	if def, ok := d.Operator(t); ok {
		return def.Precedence
	}
	return PrecedenceNone
}

// JoinTypeDef returns the definition of an accepted join type.
func (d *Dialect) JoinTypeDef(t core.JoinType) (JoinTypeDef, bool) {
	def, ok := d.joinTypes[t]
	return def, ok
}

// SupportsJoin reports whether the join type is accepted.
func (d *Dialect) SupportsJoin(t core.JoinType) bool {
	_, ok := d.joinTypes[t]
	return ok
}
