package core

// ---------- FROM clause and table references ----------

// FromClause is a source followed by a chain of joins.
type FromClause struct {
	Source TableRef
	Joins  []*Join
}

// JoinType is the exact keyword sequence introducing a join.
type JoinType string

// Join types, including the comma form and the APPLY extensions.
const (
	JoinPlain      JoinType = "JOIN"
	JoinInner      JoinType = "INNER JOIN"
	JoinLeft       JoinType = "LEFT JOIN"
	JoinLeftOuter  JoinType = "LEFT OUTER JOIN"
	JoinRight      JoinType = "RIGHT JOIN"
	JoinRightOuter JoinType = "RIGHT OUTER JOIN"
	JoinFull       JoinType = "FULL JOIN"
	JoinFullOuter  JoinType = "FULL OUTER JOIN"
	JoinCross      JoinType = "CROSS JOIN"
	JoinCrossApply JoinType = "CROSS APPLY"
	JoinOuterApply JoinType = "OUTER APPLY"
	JoinComma      JoinType = ","
)

// Join is one element of a join chain. At most one of On and Using is set.
type Join struct {
	Type  JoinType
	Table TableRef
	On    Expr
	Using []QuotedIdentifier
}

// TableName is a named table with an optional alias.
type TableName struct {
	Name  ObjectName
	Alias QuotedIdentifier
}

// DerivedTable is a parenthesized subquery in FROM position.
type DerivedTable struct {
	Query *SelectStatement
	Alias QuotedIdentifier
}

// TableFunction is a table-valued function call in FROM or APPLY position.
type TableFunction struct {
	Name  ObjectName
	Args  []Expr
	Alias QuotedIdentifier
}

func (*FromClause) Kind() NodeKind    { return KindFrom }
func (*Join) Kind() NodeKind          { return KindJoin }
func (*TableName) Kind() NodeKind     { return KindTableName }
func (*DerivedTable) Kind() NodeKind  { return KindDerivedTable }
func (*TableFunction) Kind() NodeKind { return KindTableFunction }

func (*FromClause) node()    {}
func (*Join) node()          {}
func (*TableName) node()     {}
func (*DerivedTable) node()  {}
func (*TableFunction) node() {}

func (*TableName) tableRefNode()     {}
func (*DerivedTable) tableRefNode()  {}
func (*TableFunction) tableRefNode() {}
