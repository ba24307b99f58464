package core

import "fmt"

func enumName(names []string, v int, typ string) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", typ, v)
}

func (k LiteralKind) String() string {
	return enumName([]string{"number", "string", "bool", "null"}, int(k), "LiteralKind")
}

func (u FrameUnit) String() string {
	return enumName([]string{"ROWS", "RANGE"}, int(u), "FrameUnit")
}

func (k FrameBoundKind) String() string {
	return enumName([]string{
		"UNBOUNDED PRECEDING", "PRECEDING", "CURRENT ROW", "FOLLOWING", "UNBOUNDED FOLLOWING",
	}, int(k), "FrameBoundKind")
}

func (d SortDirection) String() string {
	return enumName([]string{"default", "ASC", "DESC"}, int(d), "SortDirection")
}

func (n NullsOrder) String() string {
	return enumName([]string{"default", "NULLS FIRST", "NULLS LAST"}, int(n), "NullsOrder")
}

func (t ColumnConstraintType) String() string {
	return enumName([]string{
		"NOT NULL", "NULL", "PRIMARY KEY", "UNIQUE", "DEFAULT", "CHECK", "REFERENCES", "IDENTITY", "AUTOINCREMENT",
	}, int(t), "ColumnConstraintType")
}

func (t TableConstraintType) String() string {
	return enumName([]string{"PRIMARY KEY", "UNIQUE", "FOREIGN KEY", "CHECK"}, int(t), "TableConstraintType")
}

func (t AlterActionType) String() string {
	return enumName([]string{
		"add column", "drop column", "modify column", "add constraint", "drop constraint",
		"add index", "drop index", "rename table", "rename column",
	}, int(t), "AlterActionType")
}

func (c IndexClustering) String() string {
	return enumName([]string{"default", "CLUSTERED", "NONCLUSTERED"}, int(c), "IndexClustering")
}

func (b DropBehavior) String() string {
	return enumName([]string{"default", "CASCADE", "RESTRICT"}, int(b), "DropBehavior")
}
