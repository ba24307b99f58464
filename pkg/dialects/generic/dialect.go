// Package generic provides the vendor-neutral SQL dialect. It accepts every
// row-limiting form and the standard join set, and quotes with double quotes.
package generic

import (
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

func init() {
	dialect.Register(Generic)
}

// Generic is the ANSI-flavoured default dialect.
var Generic = dialect.NewDialect(dialect.Generic, "Generic").
	Identifiers(dialect.IdentifierConfig{Default: token.QuoteDouble, Double: true}).
	Keywords(dialect.CoreKeywords...).
	WithReservedWords(dialect.CoreReservedWords...).
	Operators(dialect.ANSIOperators).
	JoinTypes(dialect.ANSIJoinTypes).
	LimitForms(dialect.LimitTop | dialect.LimitLimitOffset | dialect.LimitOffsetFetch).
	BooleanLiterals().
	Enable(dialect.FeatureConcatOperator, dialect.FeatureNullsOrdering).
	AlterStyle(dialect.AlterStyle{
		AddColumnKeyword:    true,
		DropColumnKeyword:   true,
		Modify:              dialect.ModifyAlterColumnType,
		RenameTableTo:       true,
		RenameColumnKeyword: true,
	}).
	Build()
