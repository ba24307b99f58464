package output

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/parser"
)

// ErrorDetail is the structured form of a SQL error.
type ErrorDetail struct {
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Message string `json:"error" yaml:"error"`
	Offset  *int   `json:"offset,omitempty" yaml:"offset,omitempty"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// NewErrorDetail extracts the position of a parse or lex error.
func NewErrorDetail(file string, err error) ErrorDetail {
	d := ErrorDetail{File: file, Message: parser.ErrorMessage(err)}
	if pos, ok := parser.ErrorPosition(err); ok {
		off := pos.Offset
		d.Offset = &off
		d.Line = pos.Line
		d.Column = pos.Column
	}
	return d
}

// Snippet returns the offending source line with a caret under the error
// column, or "" when err carries no position.
func Snippet(sql string, err error) string {
	pos, ok := parser.ErrorPosition(err)
	if !ok || !pos.IsValid() {
		return ""
	}
	lines := strings.Split(sql, "\n")
	if pos.Line > len(lines) {
		return ""
	}
	line := strings.TrimRight(lines[pos.Line-1], "\r")
	col := max(pos.Column-1, 0)

	// Tabs keep their width in the caret line so the caret lines up.
	var pad strings.Builder
	for i, r := range []rune(line) {
		if i >= col {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	for range col - len([]rune(line)) {
		pad.WriteByte(' ')
	}
	return line + "\n" + pad.String() + "^"
}

// SQLError reports a parse or lex error on the diagnostic writer with the
// location and a source snippet.
func (r *Renderer) SQLError(file, sql string, err error) {
	d := NewErrorDetail(file, err)
	loc := file
	if d.Offset != nil {
		if loc == "" {
			loc = "<input>"
		}
		loc = fmt.Sprintf("%s:%d:%d", loc, d.Line, d.Column)
	}
	w := r.ErrWriter()
	if loc != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", r.styles.Bold.Render(loc+":"), r.styles.Error.Render(d.Message))
	} else {
		_, _ = fmt.Fprintln(w, r.styles.Error.Render(err.Error()))
	}
	snippet := Snippet(sql, err)
	if snippet == "" {
		return
	}
	src, caret, _ := strings.Cut(snippet, "\n")
	_, _ = fmt.Fprintf(w, "  %s\n  %s\n", src, r.styles.Caret.Render(caret))
}
