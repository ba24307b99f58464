package core

import "fmt"

// StatementType tags the shape of a top-level statement.
type StatementType int

// Statement types.
const (
	StatementSelect StatementType = iota + 1
	StatementInsert
	StatementUpdate
	StatementDelete
	StatementCreateTable
	StatementAlterTable
	StatementCreateIndex
	StatementDropIndex
	StatementDropTable
)

var statementTypeNames = map[StatementType]string{
	StatementSelect:      "SELECT",
	StatementInsert:      "INSERT",
	StatementUpdate:      "UPDATE",
	StatementDelete:      "DELETE",
	StatementCreateTable: "CREATE TABLE",
	StatementAlterTable:  "ALTER TABLE",
	StatementCreateIndex: "CREATE INDEX",
	StatementDropIndex:   "DROP INDEX",
	StatementDropTable:   "DROP TABLE",
}

func (t StatementType) String() string {
	if name, ok := statementTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("StatementType(%d)", int(t))
}

// SqlStatement is the root of a parsed statement. Its type tag is taken
// from the body when the statement is built, so the two always agree.
//
//nolint:revive // SqlStatement is the established name of the root node
type SqlStatement struct {
	typ  StatementType
	body Body
}

// NewStatement wraps a statement body. It panics on a nil body.
func NewStatement(body Body) *SqlStatement {
	if body == nil {
		panic("core: NewStatement with nil body")
	}
	return &SqlStatement{typ: body.StatementType(), body: body}
}

// Type returns the statement type tag.
func (s *SqlStatement) Type() StatementType { return s.typ }

// Body returns the statement body.
func (s *SqlStatement) Body() Body { return s.body }

// Select returns the body as a query, or nil for other statement types.
func (s *SqlStatement) Select() *SelectStatement {
	q, _ := s.body.(*SelectStatement)
	return q
}
