package dialect

import "github.com/leapstack-labs/sqlround/pkg/core"

// Operator precedence, loosest to tightest. Unary NOT binds looser than
// comparison, so NOT a = b parses as NOT (a = b).
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, <>, <, <=, >, >=, LIKE, IN, BETWEEN, IS
	PrecedenceAddition   = 5 // +, -, ||
	PrecedenceMultiply   = 6 // *, /, %
	PrecedenceUnary      = 7 // unary -, +
	PrecedencePostfix    = 8 // ::
)

// OperatorDef binds an operator spelling to its precedence. Binary is
// false for operators with a dedicated node shape (LIKE, IN, BETWEEN, IS,
// NOT IN, ::), which the expression parser handles itself.
type OperatorDef struct {
	Symbol     string
	Op         core.BinaryOp
	Binary     bool
	Precedence int
}

// ANSIOperators contains the standard SQL operators with their precedence.
var ANSIOperators = []OperatorDef{
	// Logical operators (lowest precedence)
	{Symbol: "OR", Op: core.OpOr, Binary: true, Precedence: PrecedenceOr},
	{Symbol: "AND", Op: core.OpAnd, Binary: true, Precedence: PrecedenceAnd},

	// Comparison operators
	{Symbol: "=", Op: core.OpEq, Binary: true, Precedence: PrecedenceComparison},
	{Symbol: "<>", Op: core.OpNe, Binary: true, Precedence: PrecedenceComparison},
	{Symbol: "!=", Op: core.OpNe, Binary: true, Precedence: PrecedenceComparison},
	{Symbol: "<", Op: core.OpLt, Binary: true, Precedence: PrecedenceComparison},
	{Symbol: "<=", Op: core.OpLe, Binary: true, Precedence: PrecedenceComparison},
	{Symbol: ">", Op: core.OpGt, Binary: true, Precedence: PrecedenceComparison},
	{Symbol: ">=", Op: core.OpGe, Binary: true, Precedence: PrecedenceComparison},
	{Symbol: "LIKE", Precedence: PrecedenceComparison},
	{Symbol: "IN", Precedence: PrecedenceComparison},
	{Symbol: "BETWEEN", Precedence: PrecedenceComparison},
	{Symbol: "IS", Precedence: PrecedenceComparison},
	{Symbol: "NOT", Precedence: PrecedenceComparison}, // NOT IN / NOT LIKE / NOT BETWEEN

	// Arithmetic operators
	{Symbol: "+", Op: core.OpAdd, Binary: true, Precedence: PrecedenceAddition},
	{Symbol: "-", Op: core.OpSub, Binary: true, Precedence: PrecedenceAddition},

	// Multiplicative operators (highest precedence for binary ops)
	{Symbol: "*", Op: core.OpMul, Binary: true, Precedence: PrecedenceMultiply},
	{Symbol: "/", Op: core.OpDiv, Binary: true, Precedence: PrecedenceMultiply},
	{Symbol: "%", Op: core.OpMod, Binary: true, Precedence: PrecedenceMultiply},
}

// ConcatOperator is the || string concatenation operator.
var ConcatOperator = OperatorDef{Symbol: "||", Op: core.OpConcat, Binary: true, Precedence: PrecedenceAddition}

// IlikeOperator is the case-insensitive LIKE.
var IlikeOperator = OperatorDef{Symbol: "ILIKE", Precedence: PrecedenceComparison}

// CastOperator is the postfix :: cast.
var CastOperator = OperatorDef{Symbol: "::", Precedence: PrecedencePostfix}
