package core

// ---------- SELECT ----------

// SelectStatement is a complete query: optional WITH clause and a body.
type SelectStatement struct {
	With *WithClause
	Body *SelectBody
}

// WithClause holds common table expressions.
type WithClause struct {
	Recursive bool
	CTEs      []*CTE
}

// CTE is a single common table expression.
type CTE struct {
	Name    QuotedIdentifier
	Columns []QuotedIdentifier
	Query   *SelectStatement
}

// SetOp is a set operation joining two query bodies.
type SetOp int

// Set operations.
const (
	SetOpNone SetOp = iota
	SetOpUnion
	SetOpIntersect
	SetOpExcept
)

func (s SetOp) String() string {
	switch s {
	case SetOpUnion:
		return "UNION"
	case SetOpIntersect:
		return "INTERSECT"
	case SetOpExcept:
		return "EXCEPT"
	default:
		return ""
	}
}

// SelectBody is a query expression: a single Core when Op is SetOpNone,
// otherwise Left Op Right. Chains fold to the left and INTERSECT binds
// tighter than UNION and EXCEPT, so Right is a Core or an INTERSECT.
//
// OrderBy, Limit and OffsetFetch belong to a compound and apply to its whole
// result; a single block keeps them on its Core.
type SelectBody struct {
	Core *SelectCore

	Op    SetOp
	All   bool
	Left  *SelectBody
	Right *SelectBody

	OrderBy     []*OrderByItem
	Limit       *LimitClause
	OffsetFetch *OffsetFetchClause
}

// Single wraps one SELECT block as a body.
func Single(sc *SelectCore) *SelectBody { return &SelectBody{Core: sc} }

// Compound reports whether b is a set operation.
func (b *SelectBody) Compound() bool { return b.Op != SetOpNone }

// SelectCore is a single SELECT block. Clauses absent from the source are
// nil; collections keep source order.
type SelectCore struct {
	Distinct    bool
	Top         *TopClause
	Columns     []*SelectItem
	From        *FromClause
	Where       Expr
	GroupBy     []Expr
	Having      Expr
	OrderBy     []*OrderByItem
	Limit       *LimitClause
	OffsetFetch *OffsetFetchClause
}

// SelectItem is one entry of the select list.
type SelectItem struct {
	Expr  Expr
	Alias QuotedIdentifier
}

// TopClause is TOP n [PERCENT] [WITH TIES] [START AT m].
type TopClause struct {
	Count    Expr
	Parens   bool // TOP (n)
	Percent  bool
	WithTies bool
	StartAt  Expr
}

// LimitClause is LIMIT n [OFFSET m], or OFFSET m alone when Count is nil.
type LimitClause struct {
	Count  Expr
	Offset Expr
}

// OffsetFetchClause is OFFSET m ROWS [FETCH NEXT|FIRST n ROWS ONLY].
// Offset is nil for the FETCH FIRST n ROWS ONLY form. OffsetRow and
// FetchRow record the singular ROW spelling of each part.
type OffsetFetchClause struct {
	Offset    Expr
	OffsetRow bool
	Fetch     Expr
	First     bool
	FetchRow  bool
}

// SortDirection records an explicit ASC or DESC.
type SortDirection int

// Sort directions.
const (
	SortDefault SortDirection = iota
	SortAsc
	SortDesc
)

// NullsOrder records NULLS FIRST or NULLS LAST.
type NullsOrder int

// Null orderings.
const (
	NullsDefault NullsOrder = iota
	NullsFirst
	NullsLast
)

// OrderByItem is one ORDER BY key.
type OrderByItem struct {
	Expr      Expr
	Direction SortDirection
	Nulls     NullsOrder
}

// StatementType implements Body.
func (*SelectStatement) StatementType() StatementType { return StatementSelect }

func (*SelectStatement) Kind() NodeKind   { return KindSelect }
func (*WithClause) Kind() NodeKind        { return KindWith }
func (*CTE) Kind() NodeKind               { return KindCTE }
func (*SelectBody) Kind() NodeKind        { return KindSelectBody }
func (*SelectCore) Kind() NodeKind        { return KindSelectCore }
func (*SelectItem) Kind() NodeKind        { return KindSelectItem }
func (*TopClause) Kind() NodeKind         { return KindTop }
func (*LimitClause) Kind() NodeKind       { return KindLimit }
func (*OffsetFetchClause) Kind() NodeKind { return KindOffsetFetch }
func (*OrderByItem) Kind() NodeKind       { return KindOrderByItem }

func (*SelectStatement) node()   {}
func (*WithClause) node()        {}
func (*CTE) node()               {}
func (*SelectBody) node()        {}
func (*SelectCore) node()        {}
func (*SelectItem) node()        {}
func (*TopClause) node()         {}
func (*LimitClause) node()       {}
func (*OffsetFetchClause) node() {}
func (*OrderByItem) node()       {}
