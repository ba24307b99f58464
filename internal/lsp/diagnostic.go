package lsp

import (
	"errors"

	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/parser"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

const diagnosticSource = "sqlround"

// Diagnostic codes.
const (
	codeParseError = "parse-error"
	codeLexError   = "lex-error"
)

// publishDiagnostics parses the document and sends its errors to the
// client. A document that parses cleanly gets an empty list, which clears
// earlier diagnostics.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	diagnostics := s.diagnose(doc)
	s.notify("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// diagnose returns the diagnostics for a document.
func (s *Server) diagnose(doc *Document) []Diagnostic {
	_, err := s.pipeline.Parse(doc.Text)
	if err == nil {
		return []Diagnostic{}
	}
	return []Diagnostic{errorDiagnostic(doc, s.pipeline.Dialect(), err)}
}

// errorDiagnostic converts a parse or lex error into a diagnostic that
// spans the offending token as written, or one character when the token
// is unknown.
func errorDiagnostic(doc *Document, d *dialect.Dialect, err error) Diagnostic {
	diag := Diagnostic{
		Severity: DiagnosticSeverityError,
		Source:   diagnosticSource,
		Message:  parser.ErrorMessage(err),
	}

	var lexErr *parser.LexError
	if errors.As(err, &lexErr) {
		diag.Code = codeLexError
	} else {
		diag.Code = codeParseError
	}

	pos, ok := parser.ErrorPosition(err)
	if !ok {
		diag.Range = Range{Start: Position{}, End: Position{}}
		return diag
	}

	start := doc.SourcePosition(pos.Line, pos.Column)
	end := doc.SourcePosition(pos.Line, pos.Column+1)
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) && parseErr.Token.Kind != token.EndOfInput {
		if line, column, ok := tokenEnd(doc, d, start, pos); ok {
			end = doc.SourcePosition(line, column)
		}
	}
	if end == start {
		end = doc.End()
	}
	diag.Range = Range{Start: start, End: end}
	return diag
}

// tokenEnd re-lexes the token at pos and returns the parser location just
// past it. Quotes, escapes and prefixes are part of the span.
func tokenEnd(doc *Document, d *dialect.Dialect, start Position, pos token.Position) (line, column int, ok bool) {
	lx := parser.NewLexer(doc.Text[doc.Offset(start):], d)
	tok, err := lx.NextToken()
	if err != nil || tok.Kind == token.EndOfInput || tok.Pos != token.Start {
		return 0, 0, false
	}
	rel := lx.Pos()
	if rel.Line == 1 {
		return pos.Line, pos.Column + rel.Column - 1, true
	}
	return pos.Line + rel.Line - 1, rel.Column, true
}
