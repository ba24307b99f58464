package core

import "fmt"

// NodeKind tags every variant of the syntax tree.
type NodeKind int

//nolint:revive // grouped by role, see NodeKind.String
const (
	KindInvalid NodeKind = iota

	// Expressions
	KindLiteral
	KindColumnRef
	KindStar
	KindBinary
	KindUnary
	KindLike
	KindIn
	KindBetween
	KindIsNull
	KindFuncCall
	KindParen
	KindSubquery
	KindExists
	KindCase
	KindCast

	// Expression parts
	KindWindowSpec
	KindFrameSpec
	KindWhen

	// Query parts
	KindWith
	KindCTE
	KindSelectBody
	KindSelectCore
	KindSelectItem
	KindTop
	KindLimit
	KindOffsetFetch
	KindOrderByItem
	KindFrom
	KindJoin
	KindTableName
	KindDerivedTable
	KindTableFunction

	// DML and DDL parts
	KindAssignment
	KindDataType
	KindColumnDef
	KindColumnConstraint
	KindTableConstraint
	KindReference
	KindIndexColumn
	KindAlterAction

	// Statement bodies
	KindSelect
	KindInsert
	KindUpdate
	KindDelete
	KindCreateTable
	KindAlterTable
	KindCreateIndex
	KindDropIndex
	KindDropTable
)

var nodeKindNames = map[NodeKind]string{
	KindLiteral:          "Literal",
	KindColumnRef:        "ColumnRef",
	KindStar:             "Star",
	KindBinary:           "Binary",
	KindUnary:            "Unary",
	KindLike:             "Like",
	KindIn:               "In",
	KindBetween:          "Between",
	KindIsNull:           "IsNull",
	KindFuncCall:         "FuncCall",
	KindParen:            "Paren",
	KindSubquery:         "Subquery",
	KindExists:           "Exists",
	KindCase:             "Case",
	KindCast:             "Cast",
	KindWindowSpec:       "WindowSpec",
	KindFrameSpec:        "FrameSpec",
	KindWhen:             "When",
	KindWith:             "With",
	KindCTE:              "CTE",
	KindSelectBody:       "SelectBody",
	KindSelectCore:       "SelectCore",
	KindSelectItem:       "SelectItem",
	KindTop:              "Top",
	KindLimit:            "Limit",
	KindOffsetFetch:      "OffsetFetch",
	KindOrderByItem:      "OrderByItem",
	KindFrom:             "From",
	KindJoin:             "Join",
	KindTableName:        "TableName",
	KindDerivedTable:     "DerivedTable",
	KindTableFunction:    "TableFunction",
	KindAssignment:       "Assignment",
	KindDataType:         "DataType",
	KindColumnDef:        "ColumnDef",
	KindColumnConstraint: "ColumnConstraint",
	KindTableConstraint:  "TableConstraint",
	KindReference:        "Reference",
	KindIndexColumn:      "IndexColumn",
	KindAlterAction:      "AlterAction",
	KindSelect:           "Select",
	KindInsert:           "Insert",
	KindUpdate:           "Update",
	KindDelete:           "Delete",
	KindCreateTable:      "CreateTable",
	KindAlterTable:       "AlterTable",
	KindCreateIndex:      "CreateIndex",
	KindDropIndex:        "DropIndex",
	KindDropTable:        "DropTable",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is implemented by every tree node. The unexported method seals the
// set of implementations to this package.
type Node interface {
	Kind() NodeKind
	node()
}

// Expr is a value expression.
type Expr interface {
	Node
	exprNode()
}

// TableRef is an item of a FROM clause or a join target.
type TableRef interface {
	Node
	tableRefNode()
}

// Body is the payload of a SqlStatement.
type Body interface {
	Node
	StatementType() StatementType
}
