package dialect

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// Builder provides a fluent API for constructing a Dialect.
type Builder struct {
	d *Dialect
}

// NewDialect starts building a dialect. Unless overridden it quotes with
// double quotes, doubles embedded string quotes and spells booleans as
// 1 and 0.
func NewDialect(id ID, name string) *Builder {
	return &Builder{
		d: &Dialect{
			ID:   id,
			Name: name,
			Identifiers: IdentifierConfig{
				Default: token.QuoteDouble,
				Double:  true,
			},
			trueLiteral:   "1",
			falseLiteral:  "0",
			keywords:      make(map[string]struct{}),
			reservedWords: make(map[string]struct{}),
			operators:     make(map[string]OperatorDef),
			joinTypes:     make(map[core.JoinType]JoinTypeDef),
		},
	}
}

// Identifiers sets identifier quoting.
func (b *Builder) Identifiers(cfg IdentifierConfig) *Builder {
	b.d.Identifiers = cfg
	return b
}

// StringEscape sets the string literal escape rule.
func (b *Builder) StringEscape(e StringEscape) *Builder {
	b.d.Strings = e
	return b
}

// Keywords adds words the lexer classifies as keywords.
func (b *Builder) Keywords(words ...string) *Builder {
	for _, w := range words {
		b.d.keywords[strings.ToUpper(w)] = struct{}{}
	}
	return b
}

// WithReservedWords adds reserved words. Reserved words are keywords too.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		w = strings.ToUpper(w)
		b.d.reservedWords[w] = struct{}{}
		b.d.keywords[w] = struct{}{}
	}
	return b
}

// Operators adds infix operators. Word operators become reserved words.
func (b *Builder) Operators(ops ...[]OperatorDef) *Builder {
	for _, list := range ops {
		for _, op := range list {
			b.d.operators[op.Symbol] = op
			if isWord(op.Symbol) {
				b.WithReservedWords(op.Symbol)
			}
		}
	}
	return b
}

// JoinTypes adds accepted join types.
func (b *Builder) JoinTypes(types ...[]JoinTypeDef) *Builder {
	for _, list := range types {
		for _, jt := range list {
			b.d.joinTypes[jt.Type] = jt
		}
	}
	if _, ok := b.d.joinTypes[core.JoinCrossApply]; ok {
		b.Keywords("APPLY")
	}
	return b
}

// LimitForms sets the accepted row-limiting forms and their keywords.
func (b *Builder) LimitForms(f LimitForm) *Builder {
	b.d.limitForms = f
	if f&LimitTop != 0 {
		b.WithReservedWords("TOP")
		b.Keywords("PERCENT", "TIES")
	}
	if f&LimitLimitOffset != 0 {
		b.WithReservedWords("LIMIT", "OFFSET")
	}
	if f&LimitOffsetFetch != 0 {
		b.WithReservedWords("OFFSET", "FETCH")
		b.Keywords("NEXT", "FIRST", "ONLY")
	}
	return b
}

// BooleanLiterals makes TRUE and FALSE reserved literal keywords.
func (b *Builder) BooleanLiterals() *Builder {
	b.d.trueLiteral = "TRUE"
	b.d.falseLiteral = "FALSE"
	return b.WithReservedWords(BooleanKeywords...)
}

// Enable turns on optional features and registers the words they need.
func (b *Builder) Enable(features ...Feature) *Builder {
	for _, f := range features {
		b.d.features |= f
	}
	if b.d.features&FeatureNullsOrdering != 0 {
		b.Keywords("NULLS", "FIRST", "LAST")
	}
	if b.d.features&FeatureReturning != 0 {
		b.WithReservedWords("RETURNING")
	}
	if b.d.features&FeatureCastOperator != 0 {
		b.Operators([]OperatorDef{CastOperator})
	}
	if b.d.features&FeatureIlike != 0 {
		b.Operators([]OperatorDef{IlikeOperator})
	}
	if b.d.features&FeatureConcatOperator != 0 {
		b.Operators([]OperatorDef{ConcatOperator})
	}
	if b.d.features&FeatureTopStartAt != 0 {
		b.Keywords("START", "AT")
	}
	if b.d.features&FeatureIdentity != 0 {
		b.WithReservedWords("IDENTITY")
	}
	if b.d.features&FeatureAutoIncrement != 0 {
		b.Keywords("AUTOINCREMENT")
	}
	if b.d.features&FeatureClusteredIndex != 0 {
		b.WithReservedWords("CLUSTERED", "NONCLUSTERED")
	}
	return b
}

// AlterStyle sets ALTER TABLE rendering choices.
func (b *Builder) AlterStyle(s AlterStyle) *Builder {
	b.d.Alter = s
	return b
}

// Build finalizes the dialect. The builder must not be used afterwards.
func (b *Builder) Build() *Dialect {
	d := b.d
	for sym := range d.operators {
		if len(sym) > 1 && !isWord(sym) {
			d.symbols = append(d.symbols, sym)
		}
	}
	sort.Slice(d.symbols, func(i, j int) bool {
		if len(d.symbols[i]) != len(d.symbols[j]) {
			return len(d.symbols[i]) > len(d.symbols[j])
		}
		return d.symbols[i] < d.symbols[j]
	})
	b.d = nil
	return d
}

func isWord(s string) bool {
	for _, r := range s {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z') {
			return false
		}
	}
	return s != ""
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
