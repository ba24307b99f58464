// Package mssql provides the Microsoft SQL Server (T-SQL) dialect.
package mssql

import (
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

func init() {
	dialect.Register(MsSQL)
}

var tsqlReservedWords = []string{
	"backup", "browse", "bulk", "checkpoint", "clustered", "compute",
	"contains", "containstable", "database", "dbcc", "deny", "disk",
	"distributed", "dump", "errlvl", "exec", "execute", "exit", "file",
	"fillfactor", "for", "freetext", "go", "goto", "grant", "holdlock",
	"kill", "lineno", "load", "merge", "nocheck", "off", "offsets",
	"open", "openquery", "option", "over", "pivot", "plan", "print", "proc",
	"procedure", "public", "raiserror", "read", "readtext", "reconfigure",
	"replication", "return", "revert", "revoke", "rowcount", "rule", "save",
	"schema", "setuser", "shutdown", "statistics", "tablesample", "textsize",
	"tran", "transaction", "trigger", "truncate", "tsequal", "unpivot",
	"updatetext", "use", "user", "view", "waitfor", "while", "writetext",
}

// MsSQL is the T-SQL dialect:
// - [bracket] identifiers by default, "double" accepted
// - TOP n [PERCENT] [WITH TIES] and OFFSET/FETCH
// - CROSS APPLY / OUTER APPLY
// - N'...' strings, IDENTITY(seed, increment), CLUSTERED indexes
// - no boolean literals and no || operator
var MsSQL = dialect.NewDialect(dialect.MsSqlServer, "SQL Server").
	Identifiers(dialect.IdentifierConfig{
		Default:    token.QuoteBracket,
		Double:     true,
		Bracket:    true,
		ExtraStart: "#@",
		ExtraPart:  "#@$",
	}).
	Keywords(dialect.CoreKeywords...).
	WithReservedWords(dialect.CoreReservedWords...).
	WithReservedWords(tsqlReservedWords...).
	Operators(dialect.ANSIOperators).
	JoinTypes(dialect.ANSIJoinTypes, dialect.ApplyJoinTypes).
	LimitForms(dialect.LimitTop | dialect.LimitOffsetFetch).
	Enable(
		dialect.FeatureNationalStrings,
		dialect.FeatureIdentity,
		dialect.FeatureClusteredIndex,
	).
	AlterStyle(dialect.AlterStyle{
		DropColumnKeyword: true,
		GroupActions:      true,
		Modify:            dialect.ModifyAlterColumn,
	}).
	Build()
