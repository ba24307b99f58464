package token

import "strconv"

// Position locates a character in SQL source. Line and Column are 1-based;
// Offset is 0-based. All three count characters, not bytes.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Start is the position of the first character of any input.
var Start = Position{Line: 1, Column: 1}

// IsValid reports whether p was set; the zero Position is not.
func (p Position) IsValid() bool { return p.Line > 0 }

// Advance returns the position of the character after r, which sits at p.
func (p Position) Advance(r rune) Position {
	p.Offset++
	if r == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}
	return p
}

// String renders p as line:column.
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}
