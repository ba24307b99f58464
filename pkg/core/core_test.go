package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStatementTagsFromBody(t *testing.T) {
	tests := []struct {
		body Body
		want StatementType
		kind NodeKind
	}{
		{&SelectStatement{}, StatementSelect, KindSelect},
		{&InsertStatement{}, StatementInsert, KindInsert},
		{&UpdateStatement{}, StatementUpdate, KindUpdate},
		{&DeleteStatement{}, StatementDelete, KindDelete},
		{&CreateTableStatement{}, StatementCreateTable, KindCreateTable},
		{&AlterTableStatement{}, StatementAlterTable, KindAlterTable},
		{&CreateIndexStatement{}, StatementCreateIndex, KindCreateIndex},
		{&DropIndexStatement{}, StatementDropIndex, KindDropIndex},
		{&DropTableStatement{}, StatementDropTable, KindDropTable},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			stmt := NewStatement(tt.body)
			assert.Equal(t, tt.want, stmt.Type())
			assert.Same(t, tt.body, stmt.Body())
			assert.Equal(t, tt.kind, stmt.Body().Kind())
		})
	}
}

func TestNewStatementNilBodyPanics(t *testing.T) {
	assert.Panics(t, func() { NewStatement(nil) })
}

func TestSelectAccessor(t *testing.T) {
	q := &SelectStatement{}
	assert.Same(t, q, NewStatement(q).Select())
	assert.Nil(t, NewStatement(&DropTableStatement{}).Select())
}

func TestQuotedIdent(t *testing.T) {
	assert.Equal(t, QuotedIdentifier{Name: "a"}, QuotedIdent("a", QuoteNone))
	assert.Equal(t, QuotedIdentifier{Name: "a", Quoted: true, Style: QuoteBracket}, QuotedIdent("a", QuoteBracket))
	assert.True(t, QuotedIdentifier{}.IsZero())
	assert.False(t, QuotedIdent("", QuoteDouble).IsZero())
}

func TestObjectNameParts(t *testing.T) {
	tests := []struct {
		name  string
		parts []QuotedIdentifier
	}{
		{"one part", []QuotedIdentifier{Ident("t")}},
		{"two parts", []QuotedIdentifier{Ident("dbo"), Ident("t")}},
		{"three parts", []QuotedIdentifier{Ident("db"), Ident("dbo"), Ident("t")}},
		{"empty schema", []QuotedIdentifier{Ident("db"), {}, Ident("t")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.parts, NewObjectName(tt.parts...).Parts())
		})
	}
	assert.True(t, ObjectName{}.IsZero())
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "Select", KindSelect.String())
	assert.Equal(t, "NodeKind(999)", NodeKind(999).String())
	for k := KindLiteral; k <= KindDropTable; k++ {
		assert.NotContains(t, k.String(), "NodeKind(", "missing name for kind %d", int(k))
	}
	assert.Equal(t, "<>", OpNe.String())
	assert.Equal(t, "NOT", OpNot.String())
	assert.Equal(t, "SET NULL", ActionSetNull.String())
}

func TestEnumNames(t *testing.T) {
	tests := []struct {
		got  fmt.Stringer
		want string
	}{
		{LiteralString, "string"},
		{FrameRange, "RANGE"},
		{BoundCurrentRow, "CURRENT ROW"},
		{SortDesc, "DESC"},
		{NullsLast, "NULLS LAST"},
		{ColumnAutoIncrement, "AUTOINCREMENT"},
		{TableForeignKey, "FOREIGN KEY"},
		{AlterRenameColumn, "rename column"},
		{IndexNonClustered, "NONCLUSTERED"},
		{DropCascade, "CASCADE"},
		{SortDirection(9), "SortDirection(9)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got.String())
	}
}
