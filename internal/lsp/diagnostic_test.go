package lsp

import (
	"testing"

	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/dialects/generic"
	"github.com/leapstack-labs/sqlround/pkg/dialects/mssql"
	"github.com/leapstack-labs/sqlround/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorDiagnostic_Range(t *testing.T) {
	tests := []struct {
		name string
		d    *dialect.Dialect
		text string
		want Range
	}{
		{"string literal includes quotes", generic.Generic, "SELECT a 'abc'",
			Range{Start: Position{Line: 0, Character: 9}, End: Position{Line: 0, Character: 14}}},
		{"national string includes prefix and escapes", mssql.MsSQL, "SELECT a N'it''s'",
			Range{Start: Position{Line: 0, Character: 9}, End: Position{Line: 0, Character: 17}}},
		{"multi-line string", generic.Generic, "SELECT a 'x\ny'",
			Range{Start: Position{Line: 0, Character: 9}, End: Position{Line: 1, Character: 2}}},
		{"identifier", generic.Generic, "SELECT a FROM t t2 t3",
			Range{Start: Position{Line: 0, Character: 19}, End: Position{Line: 0, Character: 21}}},
		{"end of input", generic.Generic, "SELECT a\nFROM",
			Range{Start: Position{Line: 1, Character: 4}, End: Position{Line: 1, Character: 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.New(tt.d, parser.Options{}).Parse(tt.text)
			require.Error(t, err)

			diag := errorDiagnostic(newDocument(testURI, tt.text, 1), tt.d, err)
			assert.Equal(t, codeParseError, diag.Code)
			assert.Equal(t, tt.want, diag.Range)
		})
	}
}
