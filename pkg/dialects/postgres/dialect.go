// Package postgres provides the PostgreSQL SQL dialect definition.
// Importing it registers the dialect.
package postgres

import (
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

func init() {
	dialect.Register(Postgres)
}

// postgresReservedWords contains common PostgreSQL reserved words beyond the
// core set. For a complete list, use pg_get_keywords() at runtime.
var postgresReservedWords = []string{
	"analyse", "analyze", "any", "array", "asymmetric", "both", "collate",
	"deferrable", "do", "for", "grant", "initially", "lateral", "leading",
	"natural", "placing", "similar", "some", "symmetric", "trailing",
	"variadic", "window",
}

// Postgres is the PostgreSQL dialect:
// - ILIKE, :: casts and || concatenation
// - LIMIT/OFFSET and OFFSET/FETCH
// - RETURNING on INSERT, UPDATE and DELETE
// - NULLS FIRST/LAST ordering
var Postgres = dialect.NewDialect(dialect.PostgreSql, "PostgreSQL").
	Identifiers(dialect.IdentifierConfig{Default: token.QuoteDouble, Double: true}).
	Keywords(dialect.CoreKeywords...).
	WithReservedWords(dialect.CoreReservedWords...).
	WithReservedWords(postgresReservedWords...).
	Operators(dialect.ANSIOperators).
	JoinTypes(dialect.ANSIJoinTypes).
	LimitForms(dialect.LimitLimitOffset | dialect.LimitOffsetFetch).
	BooleanLiterals().
	Enable(
		dialect.FeatureIlike,
		dialect.FeatureCastOperator,
		dialect.FeatureConcatOperator,
		dialect.FeatureReturning,
		dialect.FeatureNullsOrdering,
	).
	AlterStyle(dialect.AlterStyle{
		AddColumnKeyword:    true,
		DropColumnKeyword:   true,
		Modify:              dialect.ModifyAlterColumnType,
		RenameTableTo:       true,
		RenameColumnKeyword: true,
	}).
	Build()
