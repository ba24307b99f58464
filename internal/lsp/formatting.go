package lsp

import (
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/format"
)

// formatDocument returns the edits that format a whole document. It
// returns nil when the document is unknown or does not parse; the
// diagnostics already report why.
func (s *Server) formatDocument(params DocumentFormattingParams) []TextEdit {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	p := s.pipeline
	opts := params.Options
	if opts.InsertSpaces && opts.TabSize >= format.MinIndent && opts.TabSize <= format.MaxIndent {
		current := p.Formatter().Options()
		p = p.WithFormat(format.Options{IndentWidth: opts.TabSize, KeywordCase: current.KeywordCase})
	}

	out, err := p.Format(doc.Text)
	if err != nil {
		s.logger.Debug("not formatting unparsable document", "uri", doc.URI, "error", err)
		return nil
	}

	newText := out + "\n"
	if out == "" || newText == doc.Text {
		return []TextEdit{}
	}
	if strings.HasSuffix(doc.Text, "\r\n") {
		newText = strings.ReplaceAll(newText, "\n", "\r\n")
	}

	return []TextEdit{{
		Range:   Range{Start: Position{}, End: doc.End()},
		NewText: newText,
	}}
}
