// Package sqlanywhere provides the SAP SQL Anywhere dialect.
package sqlanywhere

import (
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

func init() {
	dialect.Register(SQLAnywhere)
}

var sqlAnywhereReservedWords = []string{
	"backup", "bottom", "break", "call", "checkpoint", "comment",
	"compressed", "connect", "contains", "cube", "cursor", "dbspace",
	"deallocate", "declare", "dynamic", "encrypted", "endif", "execute",
	"existing", "externlogin", "fetch", "first", "for", "forward", "grant",
	"identified", "isolation", "kerberos", "lock", "login", "message",
	"natural", "new", "nocheck", "notify", "of", "off", "open", "option",
	"options", "others", "output", "over", "passthrough", "prepare", "print",
	"privileges", "proc", "publication", "raiserror", "readtext", "reference",
	"release", "remote", "remove", "reorganize", "resource", "restore",
	"return", "revoke", "rollup", "save", "savepoint", "sensitive", "session",
	"setuser", "share", "some", "sqlcode", "sqlstate", "start", "stop",
	"subtrans", "subtransaction", "synchronize", "temporary", "top", "tran",
	"treat", "trigger", "truncate", "tsequal", "unbounded", "unknown", "user",
	"validate", "variable", "view", "wait", "waitfor", "whenever", "while",
	"window", "within", "work", "writetext",
}

// SQLAnywhere is the SQL Anywhere dialect:
// - double quotes by default, [brackets] accepted
// - backslash escapes in string literals
// - TOP n START AT m and LIMIT/OFFSET
// - DEFAULT AUTOINCREMENT, CLUSTERED indexes, APPLY joins
// - ADD/DROP without COLUMN, ALTER c type, RENAME without TO
var SQLAnywhere = dialect.NewDialect(dialect.SqlAnywhere, "SQL Anywhere").
	Identifiers(dialect.IdentifierConfig{
		Default:    token.QuoteDouble,
		Double:     true,
		Bracket:    true,
		ExtraStart: "@#",
		ExtraPart:  "@#$",
	}).
	StringEscape(dialect.EscapeBackslash).
	Keywords(dialect.CoreKeywords...).
	WithReservedWords(dialect.CoreReservedWords...).
	Operators(dialect.ANSIOperators).
	JoinTypes(dialect.ANSIJoinTypes, dialect.ApplyJoinTypes).
	LimitForms(dialect.LimitTop | dialect.LimitLimitOffset).
	Enable(
		dialect.FeatureTopStartAt,
		dialect.FeatureAutoIncrement,
		dialect.FeatureClusteredIndex,
		dialect.FeatureConcatOperator,
	).
	AlterStyle(dialect.AlterStyle{Modify: dialect.ModifyAlter}).
	Build()
