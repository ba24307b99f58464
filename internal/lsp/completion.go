package lsp

import (
	"fmt"
	"strings"
	"unicode"
)

func (s *Server) getCompletionList(params CompletionParams) *CompletionList {
	return &CompletionList{Items: s.getCompletions(params)}
}

// getCompletions offers the dialect's keywords that start with the word
// being typed, in the case the user is typing in.
func (s *Server) getCompletions(params CompletionParams) []CompletionItem {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return []CompletionItem{}
	}

	before := doc.TextBefore(params.Position)
	if inStringOrQuote(before) {
		return []CompletionItem{}
	}
	prefix := extractPrefix(before)

	lower := prefix != "" && strings.ToLower(prefix) == prefix
	upperPrefix := strings.ToUpper(prefix)

	d := s.pipeline.Dialect()
	items := []CompletionItem{}
	for _, kw := range d.Keywords() {
		if !strings.HasPrefix(kw, upperPrefix) {
			continue
		}
		detail := "keyword"
		sortText := "1" + kw
		if d.IsReservedWord(kw) {
			detail = "reserved keyword"
			sortText = "0" + kw
		}
		item := CompletionItem{
			Label:    kw,
			Kind:     CompletionItemKindKeyword,
			Detail:   detail,
			SortText: sortText,
		}
		if lower {
			item.InsertText = strings.ToLower(kw)
		}
		items = append(items, item)
	}
	return items
}

// extractPrefix returns the identifier characters immediately before the
// cursor.
func extractPrefix(before string) string {
	end := len(before)
	start := end
	for start > 0 && isWordChar(before[start-1]) {
		start--
	}
	return before[start:end]
}

// inStringOrQuote reports whether the text before the cursor leaves a
// string literal or quoted identifier open.
func inStringOrQuote(before string) bool {
	var open rune
	for _, r := range before {
		switch {
		case open != 0:
			if r == open {
				open = 0
			}
		case r == '\'':
			open = '\''
		case r == '"':
			open = '"'
		case r == '[':
			open = ']'
		}
	}
	return open != 0
}

// getHover describes the keyword under the cursor.
func (s *Server) getHover(params HoverParams) *Hover {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	word, r := doc.WordAt(params.Position)
	if word == "" || unicode.IsDigit(rune(word[0])) {
		return nil
	}

	d := s.pipeline.Dialect()
	var kind string
	switch {
	case d.IsReservedWord(word):
		kind = "reserved keyword"
	case d.IsKeyword(word):
		kind = "keyword"
	default:
		return nil
	}

	return &Hover{
		Contents: MarkupContent{
			Kind:  MarkupKindMarkdown,
			Value: fmt.Sprintf("**%s** is a %s in %s", strings.ToUpper(word), kind, d.Name),
		},
		Range: &r,
	}
}
