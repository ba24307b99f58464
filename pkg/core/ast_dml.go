package core

// ---------- INSERT / UPDATE / DELETE ----------

// InsertStatement is INSERT INTO table [(columns)] followed by VALUES rows,
// a query, or DEFAULT VALUES. Exactly one source is present.
type InsertStatement struct {
	Table         ObjectName
	Columns       []QuotedIdentifier
	Values        [][]Expr
	Query         *SelectStatement
	DefaultValues bool
	Returning     []*SelectItem
}

// Assignment is column = value in an UPDATE SET list.
type Assignment struct {
	Column *ColumnRef
	Value  Expr
}

// UpdateStatement is UPDATE table SET ... [FROM ...] [WHERE ...].
type UpdateStatement struct {
	Table     *TableName
	Set       []*Assignment
	From      *FromClause
	Where     Expr
	Returning []*SelectItem
}

// DeleteStatement is DELETE FROM table [WHERE ...].
type DeleteStatement struct {
	Table     *TableName
	Where     Expr
	Returning []*SelectItem
}

// StatementType implements Body.
func (*InsertStatement) StatementType() StatementType { return StatementInsert }

// StatementType implements Body.
func (*UpdateStatement) StatementType() StatementType { return StatementUpdate }

// StatementType implements Body.
func (*DeleteStatement) StatementType() StatementType { return StatementDelete }

func (*InsertStatement) Kind() NodeKind { return KindInsert }
func (*Assignment) Kind() NodeKind      { return KindAssignment }
func (*UpdateStatement) Kind() NodeKind { return KindUpdate }
func (*DeleteStatement) Kind() NodeKind { return KindDelete }

func (*InsertStatement) node() {}
func (*Assignment) node()      {}
func (*UpdateStatement) node() {}
func (*DeleteStatement) node() {}
