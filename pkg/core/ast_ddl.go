package core

// ---------- DDL ----------

// DataType is a column type as written: Name holds the (possibly
// multi-word) type name, Args its parenthesized arguments such as 10, 2
// or MAX, and Suffix a trailing WITH TIME ZONE or WITHOUT TIME ZONE.
type DataType struct {
	Name   string
	Args   []string
	Suffix string
}

// ColumnDef defines a column in CREATE TABLE or ALTER TABLE.
type ColumnDef struct {
	Name        QuotedIdentifier
	Type        *DataType
	Constraints []*ColumnConstraint
}

// ColumnConstraintType tags a column constraint.
type ColumnConstraintType int

// Column constraint types.
const (
	ColumnNotNull ColumnConstraintType = iota
	ColumnNull
	ColumnPrimaryKey
	ColumnUnique
	ColumnDefault
	ColumnCheck
	ColumnReferences
	ColumnIdentity
	ColumnAutoIncrement
)

// ColumnConstraint is one constraint attached to a column definition.
// Expr holds the DEFAULT value or CHECK condition, Reference the
// REFERENCES target, Seed and Increment the IDENTITY arguments.
type ColumnConstraint struct {
	Type      ColumnConstraintType
	Name      QuotedIdentifier
	Expr      Expr
	Reference *Reference
	Seed      Expr
	Increment Expr
}

// ReferentialAction is an ON DELETE / ON UPDATE action.
type ReferentialAction int

// Referential actions. ActionUnspecified means the clause is absent.
const (
	ActionUnspecified ReferentialAction = iota
	ActionNoAction
	ActionRestrict
	ActionCascade
	ActionSetNull
	ActionSetDefault
)

func (a ReferentialAction) String() string {
	switch a {
	case ActionNoAction:
		return "NO ACTION"
	case ActionRestrict:
		return "RESTRICT"
	case ActionCascade:
		return "CASCADE"
	case ActionSetNull:
		return "SET NULL"
	case ActionSetDefault:
		return "SET DEFAULT"
	default:
		return ""
	}
}

// Reference is a REFERENCES target of a foreign key.
type Reference struct {
	Table    ObjectName
	Columns  []QuotedIdentifier
	OnDelete ReferentialAction
	OnUpdate ReferentialAction
}

// TableConstraintType tags a table level constraint.
type TableConstraintType int

// Table constraint types.
const (
	TablePrimaryKey TableConstraintType = iota
	TableUnique
	TableForeignKey
	TableCheck
)

// TableConstraint is a table level constraint.
type TableConstraint struct {
	Name      QuotedIdentifier
	Type      TableConstraintType
	Columns   []QuotedIdentifier
	Reference *Reference
	Check     Expr
}

// CreateTableStatement is CREATE TABLE. Column definitions precede table
// constraints when rendered.
type CreateTableStatement struct {
	Table       ObjectName
	IfNotExists bool
	Columns     []*ColumnDef
	Constraints []*TableConstraint
}

// AlterActionType tags an ALTER TABLE action.
type AlterActionType int

// ALTER TABLE action types.
const (
	AlterAddColumn AlterActionType = iota
	AlterDropColumn
	AlterModifyColumn
	AlterAddConstraint
	AlterDropConstraint
	AlterAddIndex
	AlterDropIndex
	AlterRenameTable
	AlterRenameColumn
)

// AlterTableAction is one action of an ALTER TABLE statement. Fields are
// populated according to Type:
//
//	AlterAddColumn, AlterModifyColumn   Column
//	AlterDropColumn                     Name, IfExists
//	AlterAddConstraint                  Constraint
//	AlterDropConstraint                 Name, IfExists
//	AlterAddIndex                       Name, IndexColumns
//	AlterDropIndex                      Name
//	AlterRenameTable                    NewName
//	AlterRenameColumn                   Name, NewName
type AlterTableAction struct {
	Type         AlterActionType
	Column       *ColumnDef
	Constraint   *TableConstraint
	Name         QuotedIdentifier
	NewName      QuotedIdentifier
	IndexColumns []*IndexColumn
	IfExists     bool
}

// AlterTableStatement is ALTER TABLE name action, action...
type AlterTableStatement struct {
	Table   ObjectName
	Actions []*AlterTableAction
}

// IndexColumn is a key column of an index.
type IndexColumn struct {
	Name      QuotedIdentifier
	Direction SortDirection
}

// IndexClustering records CLUSTERED or NONCLUSTERED.
type IndexClustering int

// Index clustering options.
const (
	IndexDefault IndexClustering = iota
	IndexClustered
	IndexNonClustered
)

// CreateIndexStatement is CREATE [UNIQUE] INDEX name ON table (columns).
type CreateIndexStatement struct {
	Name        QuotedIdentifier
	Table       ObjectName
	Unique      bool
	Clustering  IndexClustering
	IfNotExists bool
	Columns     []*IndexColumn
}

// DropIndexStatement is DROP INDEX [IF EXISTS] name [ON table].
type DropIndexStatement struct {
	Name     ObjectName
	Table    ObjectName
	IfExists bool
}

// DropBehavior is CASCADE or RESTRICT on DROP TABLE.
type DropBehavior int

// Drop behaviors.
const (
	DropDefault DropBehavior = iota
	DropCascade
	DropRestrict
)

// DropTableStatement is DROP TABLE [IF EXISTS] t1, t2...
type DropTableStatement struct {
	IfExists bool
	Tables   []ObjectName
	Behavior DropBehavior
}

// StatementType implements Body.
func (*CreateTableStatement) StatementType() StatementType { return StatementCreateTable }

// StatementType implements Body.
func (*AlterTableStatement) StatementType() StatementType { return StatementAlterTable }

// StatementType implements Body.
func (*CreateIndexStatement) StatementType() StatementType { return StatementCreateIndex }

// StatementType implements Body.
func (*DropIndexStatement) StatementType() StatementType { return StatementDropIndex }

// StatementType implements Body.
func (*DropTableStatement) StatementType() StatementType { return StatementDropTable }

func (*DataType) Kind() NodeKind             { return KindDataType }
func (*ColumnDef) Kind() NodeKind            { return KindColumnDef }
func (*ColumnConstraint) Kind() NodeKind     { return KindColumnConstraint }
func (*Reference) Kind() NodeKind            { return KindReference }
func (*TableConstraint) Kind() NodeKind      { return KindTableConstraint }
func (*CreateTableStatement) Kind() NodeKind { return KindCreateTable }
func (*AlterTableAction) Kind() NodeKind     { return KindAlterAction }
func (*AlterTableStatement) Kind() NodeKind  { return KindAlterTable }
func (*IndexColumn) Kind() NodeKind          { return KindIndexColumn }
func (*CreateIndexStatement) Kind() NodeKind { return KindCreateIndex }
func (*DropIndexStatement) Kind() NodeKind   { return KindDropIndex }
func (*DropTableStatement) Kind() NodeKind   { return KindDropTable }

func (*DataType) node()             {}
func (*ColumnDef) node()            {}
func (*ColumnConstraint) node()     {}
func (*Reference) node()            {}
func (*TableConstraint) node()      {}
func (*CreateTableStatement) node() {}
func (*AlterTableAction) node()     {}
func (*AlterTableStatement) node()  {}
func (*IndexColumn) node()          {}
func (*CreateIndexStatement) node() {}
func (*DropIndexStatement) node()   {}
func (*DropTableStatement) node()   {}
