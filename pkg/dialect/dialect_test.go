package dialect

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDialect() *Dialect {
	return NewDialect(Generic, "test").
		Identifiers(IdentifierConfig{Default: token.QuoteBracket, Double: true, Bracket: true, ExtraStart: "#", ExtraPart: "#$"}).
		Keywords(CoreKeywords...).
		WithReservedWords(CoreReservedWords...).
		Operators(ANSIOperators).
		JoinTypes(ANSIJoinTypes, ApplyJoinTypes).
		LimitForms(LimitTop | LimitOffsetFetch).
		Enable(FeatureConcatOperator, FeatureCastOperator).
		Build()
}

func TestKeywordClassification(t *testing.T) {
	d := testDialect()

	tests := []struct {
		word     string
		keyword  bool
		reserved bool
	}{
		{"select", true, true},
		{"Select", true, true},
		{"key", true, false},
		{"top", true, true},
		{"percent", true, false},
		{"apply", true, false},
		{"limit", false, false},
		{"customer", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.keyword, d.IsKeyword(tt.word))
			assert.Equal(t, tt.reserved, d.IsReservedWord(tt.word))
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	d := testDialect()

	tests := []struct {
		name  string
		in    string
		style token.QuoteStyle
		want  string
	}{
		{"default style", "a", token.QuoteNone, "[a]"},
		{"bracket escape", "a]b", token.QuoteBracket, "[a]]b]"},
		{"double escape", `a"b`, token.QuoteDouble, `"a""b"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.QuoteIdentifier(tt.in, tt.style))
		})
	}
}

func TestQuoteIdentifierIfNeeded(t *testing.T) {
	d := testDialect()

	tests := []struct {
		in   string
		want string
	}{
		{"orders", "orders"},
		{"#temp", "#temp"},
		{"a$1", "a$1"},
		{"key", "key"},
		{"select", "[select]"},
		{"Order", "[Order]"},
		{"first name", "[first name]"},
		{"1abc", "[1abc]"},
		{"", "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, d.QuoteIdentifierIfNeeded(tt.in))
		})
	}
}

func TestQuoteString(t *testing.T) {
	d := testDialect()
	assert.Equal(t, "'it''s'", d.QuoteString("it's", false))
	assert.Equal(t, "N'x'", d.QuoteString("x", true))

	bs := NewDialect(Generic, "bs").StringEscape(EscapeBackslash).Build()
	assert.Equal(t, `'a\\b''c'`, bs.QuoteString(`a\b'c`, false))
	assert.Equal(t, `'a\nb\x09'`, bs.QuoteString("a\nb\t", false))
	assert.Equal(t, "'a\nb'", d.QuoteString("a\nb", false), "standard strings keep raw newlines")
}

func TestOperators(t *testing.T) {
	d := testDialect()

	assert.Equal(t, []string{"!=", "::", "<=", "<>", ">=", "||"}, d.Symbols())

	tests := []struct {
		tok  token.Token
		prec int
		op   core.BinaryOp
	}{
		{token.Token{Kind: token.Keyword, Text: "or"}, PrecedenceOr, core.OpOr},
		{token.Token{Kind: token.Keyword, Text: "AND"}, PrecedenceAnd, core.OpAnd},
		{token.Token{Kind: token.Operator, Text: "!="}, PrecedenceComparison, core.OpNe},
		{token.Token{Kind: token.Operator, Text: "||"}, PrecedenceAddition, core.OpConcat},
		{token.Token{Kind: token.Operator, Text: "%"}, PrecedenceMultiply, core.OpMod},
	}
	for _, tt := range tests {
		t.Run(tt.tok.Text, func(t *testing.T) {
			def, ok := d.Operator(tt.tok)
			require.True(t, ok)
			assert.True(t, def.Binary)
			assert.Equal(t, tt.op, def.Op)
			assert.Equal(t, tt.prec, d.Precedence(tt.tok))
		})
	}

	assert.Equal(t, PrecedencePostfix, d.Precedence(token.Token{Kind: token.Operator, Text: "::"}))
	assert.Equal(t, PrecedenceNone, d.Precedence(token.Token{Kind: token.Identifier, Text: "AND"}))
	assert.Equal(t, PrecedenceNone, d.Precedence(token.Token{Kind: token.Keyword, Text: "ILIKE"}))
}

func TestPrecedenceOrdering(t *testing.T) {
	order := []int{
		PrecedenceOr, PrecedenceAnd, PrecedenceNot, PrecedenceComparison,
		PrecedenceAddition, PrecedenceMultiply, PrecedenceUnary, PrecedencePostfix,
	}
	for i := 1; i < len(order); i++ {
		assert.Less(t, order[i-1], order[i])
	}
}

func TestFeaturesAndLimits(t *testing.T) {
	d := testDialect()
	assert.True(t, d.Supports(FeatureConcatOperator))
	assert.True(t, d.Supports(FeatureConcatOperator|FeatureCastOperator))
	assert.False(t, d.Supports(FeatureReturning))
	assert.True(t, d.SupportsLimit(LimitTop))
	assert.False(t, d.SupportsLimit(LimitLimitOffset))
	assert.True(t, d.SupportsJoin(core.JoinOuterApply))
	assert.Equal(t, "1", d.BooleanLiteral(true))

	b := NewDialect(PostgreSql, "b").BooleanLiterals().Build()
	assert.Equal(t, "FALSE", b.BooleanLiteral(false))
	assert.True(t, b.IsReservedWord("true"))
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{"generic", Generic, false},
		{"MSSQL", MsSqlServer, false},
		{"tsql", MsSqlServer, false},
		{"postgresql", PostgreSql, false},
		{" sqlanywhere ", SqlAnywhere, false},
		{"mysql", MySql, false},
		{"oracle", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "mssql", MsSqlServer.String())
	assert.Equal(t, "ID(42)", ID(42).String())
	assert.Len(t, All(), 5)
}

func TestLookupUnregistered(t *testing.T) {
	_, err := Lookup(MySql)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, MySql, cfgErr.Dialect)
	assert.True(t, errors.Is(err, ErrUnsupportedDialect))
	assert.Contains(t, err.Error(), "mysql")

	_, err = Lookup(ID(99))
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}
