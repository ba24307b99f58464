package format

import (
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// breakKind is the separator owed before the next write.
type breakKind int

const (
	breakNone breakKind = iota
	breakSpace
	breakLine
)

// Printer renders a tree as SQL text. The same rendering methods serve
// both modes: in pretty mode writeln breaks the line and indents, in
// compact mode it becomes a single space. Separators are recorded as
// pending and only emitted before the next write, so no output ever ends
// in a dangling space or blank line.
type Printer struct {
	dialect     *dialect.Dialect
	output      strings.Builder
	pretty      bool
	indentWidth int
	caser       cases.Caser
	depth       int
	pending     breakKind
}

// newPrinter creates a printer. Casers keep state, so every printer owns
// its own.
func newPrinter(d *dialect.Dialect, pretty bool, indentWidth int, kc KeywordCase) *Printer {
	caser := cases.Upper(language.Und)
	if kc == KeywordLower {
		caser = cases.Lower(language.Und)
	}
	return &Printer{
		dialect:     d,
		pretty:      pretty,
		indentWidth: indentWidth,
		caser:       caser,
	}
}

// String returns the rendered output.
func (p *Printer) String() string {
	return p.output.String()
}

func (p *Printer) write(s string) {
	if s == "" {
		return
	}
	if p.output.Len() > 0 {
		switch p.pending {
		case breakSpace:
			p.output.WriteByte(' ')
		case breakLine:
			p.output.WriteByte('\n')
			p.writeIndent()
		}
	}
	p.pending = breakNone
	p.output.WriteString(s)
}

// writeln ends the line in pretty mode and separates by a space otherwise.
func (p *Printer) writeln() {
	if p.pretty {
		p.pending = breakLine
		return
	}
	p.space()
}

// softln ends the line in pretty mode only. It is used just inside
// parentheses, where compact output stays tight.
func (p *Printer) softln() {
	if p.pretty {
		p.pending = breakLine
	}
}

func (p *Printer) writeIndent() {
	p.output.WriteString(strings.Repeat(" ", p.depth*p.indentWidth))
}

func (p *Printer) space() {
	if p.pending == breakNone {
		p.pending = breakSpace
	}
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// keyword writes a keyword in the configured case.
func (p *Printer) keyword(s string) {
	p.write(p.caser.String(s))
}

// kw writes a keyword sequence separated by single spaces.
func (p *Printer) kw(words ...string) {
	for i, w := range words {
		if i > 0 {
			p.space()
		}
		p.keyword(w)
	}
}

// formatList prints count items separated by commas. Multiline lists put
// each item on its own line in pretty mode.
func (p *Printer) formatList(count int, format func(i int), multiline bool) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(",")
			if multiline {
				p.writeln()
			} else {
				p.space()
			}
		}
	}
}

// block renders body inside parentheses. In pretty mode the body is
// indented on its own lines.
func (p *Printer) block(body func()) {
	p.write("(")
	p.indent()
	p.softln()
	body()
	p.dedent()
	p.softln()
	p.write(")")
}

// ---------- Identifiers ----------

// ident writes an identifier. A quoted identifier keeps its delimiter when
// the dialect accepts it; an unquoted one is quoted with the dialect
// default only when it would not re-lex as the same identifier.
func (p *Printer) ident(id core.QuotedIdentifier) {
	p.write(p.identText(id))
}

func (p *Printer) identText(id core.QuotedIdentifier) string {
	if !id.Quoted {
		return p.dialect.QuoteIdentifierIfNeeded(id.Name)
	}
	style := id.Style
	switch {
	case style == token.QuoteBracket && !p.dialect.Identifiers.Bracket,
		style == token.QuoteDouble && !p.dialect.Identifiers.Double:
		style = p.dialect.Identifiers.Default
	}
	return p.dialect.QuoteIdentifier(id.Name, style)
}

// objectName writes a dotted name.
func (p *Printer) objectName(name core.ObjectName) {
	parts := name.Parts()
	texts := make([]string, len(parts))
	for i, part := range parts {
		texts[i] = p.identText(part)
	}
	p.write(strings.Join(texts, "."))
}

// identList writes ( a, b, c ).
func (p *Printer) identList(ids []core.QuotedIdentifier) {
	p.write("(")
	p.formatList(len(ids), func(i int) { p.ident(ids[i]) }, false)
	p.write(")")
}

// alias writes AS alias when present. AS is always emitted so that soft
// keywords remain valid aliases.
func (p *Printer) alias(id core.QuotedIdentifier) {
	if id.IsZero() {
		return
	}
	p.space()
	p.kw("AS")
	p.space()
	p.ident(id)
}
