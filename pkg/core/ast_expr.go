package core

// ---------- Expression Types ----------

// LiteralKind tags the kind of a literal value.
type LiteralKind int

// LiteralKind constants for SQL literal value types.
const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// Literal represents a literal value. For strings Value is the unescaped
// content; for booleans it is "true" or "false".
type Literal struct {
	Type  LiteralKind
	Value string
	// National marks T-SQL N'...' strings.
	National bool
}

// ColumnRef is a possibly qualified column reference.
type ColumnRef struct {
	Schema QuotedIdentifier
	Table  QuotedIdentifier
	Column QuotedIdentifier
}

// StarExpr is * or table.*.
type StarExpr struct {
	Table QuotedIdentifier
}

// BinaryOp is an infix operator.
type BinaryOp int

// Binary operators.
const (
	OpOr BinaryOp = iota
	OpAnd
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpConcat
)

var binaryOpText = [...]string{
	OpOr:     "OR",
	OpAnd:    "AND",
	OpEq:     "=",
	OpNe:     "<>",
	OpLt:     "<",
	OpLe:     "<=",
	OpGt:     ">",
	OpGe:     ">=",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpMod:    "%",
	OpConcat: "||",
}

func (o BinaryOp) String() string { return binaryOpText[o] }

// BinaryExpr represents a binary expression. All binary operators are
// left-associative.
type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
}

// UnaryOp is a prefix operator.
type UnaryOp int

// Unary operators.
const (
	OpNot UnaryOp = iota
	OpNeg
	OpPlus
)

func (o UnaryOp) String() string {
	switch o {
	case OpNeg:
		return "-"
	case OpPlus:
		return "+"
	default:
		return "NOT"
	}
}

// UnaryExpr represents a prefix operator applied to an operand.
type UnaryExpr struct {
	Op   UnaryOp
	Expr Expr
}

// LikeExpr represents [NOT] LIKE / ILIKE with an optional ESCAPE.
type LikeExpr struct {
	Expr            Expr
	Not             bool
	CaseInsensitive bool // ILIKE
	Pattern         Expr
	Escape          Expr
}

// InExpr represents [NOT] IN (values) or [NOT] IN (subquery).
// Exactly one of Values and Query is set.
type InExpr struct {
	Expr   Expr
	Not    bool
	Values []Expr
	Query  *SelectStatement
}

// BetweenExpr represents [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

// IsNullExpr represents IS [NOT] NULL.
type IsNullExpr struct {
	Expr Expr
	Not  bool
}

// FuncCall represents a function call. COUNT(*) sets Star instead of
// carrying a star argument. Over is set for window function calls.
type FuncCall struct {
	Name     ObjectName
	Distinct bool
	Star     bool
	Args     []Expr
	Over     *WindowSpec
}

// WindowSpec is the body of an OVER clause.
type WindowSpec struct {
	PartitionBy []Expr
	OrderBy     []*OrderByItem
	Frame       *FrameSpec
}

// FrameUnit is ROWS or RANGE.
type FrameUnit int

// Frame units.
const (
	FrameRows FrameUnit = iota
	FrameRange
)

// FrameBoundKind tags a window frame bound.
type FrameBoundKind int

// Frame bound kinds.
const (
	BoundUnboundedPreceding FrameBoundKind = iota
	BoundPreceding
	BoundCurrentRow
	BoundFollowing
	BoundUnboundedFollowing
)

// FrameBound is one end of a window frame. Offset is set for
// BoundPreceding and BoundFollowing only.
type FrameBound struct {
	Type   FrameBoundKind
	Offset Expr
}

// FrameSpec is a window frame clause. End is nil for the single bound
// form (ROWS UNBOUNDED PRECEDING).
type FrameSpec struct {
	Unit  FrameUnit
	Start FrameBound
	End   *FrameBound
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Expr Expr
}

// SubqueryExpr is a parenthesized query used as a value.
type SubqueryExpr struct {
	Query *SelectStatement
}

// ExistsExpr represents EXISTS (subquery). NOT EXISTS is a UnaryExpr over it.
type ExistsExpr struct {
	Query *SelectStatement
}

// WhenClause is one WHEN ... THEN ... arm.
type WhenClause struct {
	Condition Expr
	Result    Expr
}

// CaseExpr represents a simple (Operand set) or searched CASE.
type CaseExpr struct {
	Operand Expr
	Whens   []*WhenClause
	Else    Expr
}

// CastExpr represents CAST(expr AS type) or, with Shorthand, expr::type.
type CastExpr struct {
	Expr      Expr
	Type      *DataType
	Shorthand bool
}

func (*Literal) Kind() NodeKind      { return KindLiteral }
func (*ColumnRef) Kind() NodeKind    { return KindColumnRef }
func (*StarExpr) Kind() NodeKind     { return KindStar }
func (*BinaryExpr) Kind() NodeKind   { return KindBinary }
func (*UnaryExpr) Kind() NodeKind    { return KindUnary }
func (*LikeExpr) Kind() NodeKind     { return KindLike }
func (*InExpr) Kind() NodeKind       { return KindIn }
func (*BetweenExpr) Kind() NodeKind  { return KindBetween }
func (*IsNullExpr) Kind() NodeKind   { return KindIsNull }
func (*FuncCall) Kind() NodeKind     { return KindFuncCall }
func (*ParenExpr) Kind() NodeKind    { return KindParen }
func (*SubqueryExpr) Kind() NodeKind { return KindSubquery }
func (*ExistsExpr) Kind() NodeKind   { return KindExists }
func (*CaseExpr) Kind() NodeKind     { return KindCase }
func (*CastExpr) Kind() NodeKind     { return KindCast }
func (*WindowSpec) Kind() NodeKind   { return KindWindowSpec }
func (*FrameSpec) Kind() NodeKind    { return KindFrameSpec }
func (*WhenClause) Kind() NodeKind   { return KindWhen }

func (*Literal) node()      {}
func (*ColumnRef) node()    {}
func (*StarExpr) node()     {}
func (*BinaryExpr) node()   {}
func (*UnaryExpr) node()    {}
func (*LikeExpr) node()     {}
func (*InExpr) node()       {}
func (*BetweenExpr) node()  {}
func (*IsNullExpr) node()   {}
func (*FuncCall) node()     {}
func (*ParenExpr) node()    {}
func (*SubqueryExpr) node() {}
func (*ExistsExpr) node()   {}
func (*CaseExpr) node()     {}
func (*CastExpr) node()     {}
func (*WindowSpec) node()   {}
func (*FrameSpec) node()    {}
func (*WhenClause) node()   {}

func (*Literal) exprNode()      {}
func (*ColumnRef) exprNode()    {}
func (*StarExpr) exprNode()     {}
func (*BinaryExpr) exprNode()   {}
func (*UnaryExpr) exprNode()    {}
func (*LikeExpr) exprNode()     {}
func (*InExpr) exprNode()       {}
func (*BetweenExpr) exprNode()  {}
func (*IsNullExpr) exprNode()   {}
func (*FuncCall) exprNode()     {}
func (*ParenExpr) exprNode()    {}
func (*SubqueryExpr) exprNode() {}
func (*ExistsExpr) exprNode()   {}
func (*CaseExpr) exprNode()     {}
func (*CastExpr) exprNode()     {}
