package dialect

// CoreKeywords are the words every dialect's grammar uses.
var CoreKeywords = []string{
	"ACTION", "ADD", "ALL", "ALTER", "AND", "AS", "ASC", "BETWEEN", "BY",
	"CASCADE", "CASE", "CAST", "CHECK", "COLUMN", "CONSTRAINT", "CREATE",
	"CROSS", "CURRENT", "DATA", "DEFAULT", "DELETE", "DESC", "DISTINCT", "DROP",
	"ELSE", "END", "ESCAPE", "EXCEPT", "EXISTS", "FOLLOWING", "FOREIGN",
	"FROM", "FULL", "GROUP", "HAVING", "IF", "IN", "INDEX", "INNER", "INSERT",
	"INTERSECT", "INTO", "IS", "JOIN", "KEY", "LEFT", "LIKE", "MODIFY", "NO",
	"NOT", "NULL", "ON", "OR", "ORDER", "OUTER", "OVER", "PARTITION",
	"PRECEDING", "PRIMARY", "RANGE", "RECURSIVE", "REFERENCES", "RENAME",
	"RESTRICT", "RIGHT", "ROW", "ROWS", "SELECT", "SET", "TABLE", "THEN", "TO",
	"TYPE", "UNBOUNDED", "UNION", "UNIQUE", "UPDATE", "USING", "VALUES",
	"WHEN", "WHERE", "WITH",
}

// CoreReservedWords are keywords that can never be bare identifiers
// because they start or delimit a clause.
var CoreReservedWords = []string{
	"ALL", "ALTER", "AND", "AS", "ASC", "BETWEEN", "BY", "CASE", "CAST",
	"CHECK", "CONSTRAINT", "CREATE", "CROSS", "DEFAULT", "DELETE", "DESC",
	"DISTINCT", "DROP", "ELSE", "END", "EXCEPT", "EXISTS", "FOREIGN", "FROM",
	"FULL", "GROUP", "HAVING", "IN", "INNER", "INSERT", "INTERSECT", "INTO",
	"IS", "JOIN", "LEFT", "LIKE", "NOT", "NULL", "ON", "OR", "ORDER", "OUTER",
	"PRIMARY", "REFERENCES", "RIGHT", "SELECT", "SET", "TABLE", "THEN",
	"UNION", "UNIQUE", "UPDATE", "USING", "VALUES", "WHEN", "WHERE", "WITH",
}

// BooleanKeywords spell the boolean literals in dialects that have them.
var BooleanKeywords = []string{"TRUE", "FALSE"}
