package lsp

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"
)

// Document is an immutable snapshot of an editor buffer. Edits replace the
// whole snapshot, so handlers may hold one without locking.
type Document struct {
	URI     string
	Text    string
	Version int

	starts []int // byte offset where each line begins
}

func newDocument(uri, text string, version int) *Document {
	d := &Document{URI: uri, Text: text, Version: version, starts: []int{0}}
	for off := 0; ; {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			break
		}
		off += i + 1
		d.starts = append(d.starts, off)
	}
	return d
}

// DocumentStore holds the documents the client has open, keyed by URI.
type DocumentStore struct {
	mu   sync.RWMutex
	open map[string]*Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{open: map[string]*Document{}}
}

func (s *DocumentStore) Open(uri, text string, version int) {
	s.mu.Lock()
	s.open[uri] = newDocument(uri, text, version)
	s.mu.Unlock()
}

// Update swaps in new text for an open document. Unknown URIs and versions
// older than the current one are dropped.
func (s *DocumentStore) Update(uri, text string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.open[uri]; ok && version >= cur.Version {
		s.open[uri] = newDocument(uri, text, version)
	}
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	delete(s.open, uri)
	s.mu.Unlock()
}

// Get returns nil when uri is not open.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open[uri]
}

// lineSpan returns the byte range of line n, excluding its terminator.
func (d *Document) lineSpan(n int) (start, end int) {
	start = d.starts[n]
	end = len(d.Text)
	if n+1 < len(d.starts) {
		end = d.starts[n+1] - 1
		if end > start && d.Text[end-1] == '\r' {
			end--
		}
	}
	return start, end
}

// Offset converts a client position to a byte offset. Characters are
// UTF-16 code units and are clamped to the end of the line.
func (d *Document) Offset(pos Position) int {
	n := int(pos.Line)
	if n >= len(d.starts) {
		return len(d.Text)
	}
	off, end := d.lineSpan(n)
	for units := int(pos.Character); units > 0 && off < end; {
		r, size := utf8.DecodeRuneInString(d.Text[off:end])
		units -= utf16.RuneLen(r)
		off += size
	}
	return off
}

// PositionAt converts a byte offset, clamped to the document, to a client
// position.
func (d *Document) PositionAt(offset int) Position {
	offset = max(0, min(offset, len(d.Text)))
	n := sort.Search(len(d.starts), func(i int) bool { return d.starts[i] > offset }) - 1
	return Position{Line: uint32(n), Character: utf16Len(d.Text[d.starts[n]:offset])}
}

// SourcePosition converts a parser location (1-based line, 1-based
// character column) to a client position.
func (d *Document) SourcePosition(line, column int) Position {
	n := max(line, 1) - 1
	if n >= len(d.starts) {
		return d.End()
	}
	start, end := d.lineSpan(n)
	off := start
	for ; column > 1 && off < end; column-- {
		_, size := utf8.DecodeRuneInString(d.Text[off:end])
		off += size
	}
	return Position{Line: uint32(n), Character: utf16Len(d.Text[start:off])}
}

// End is the position after the last character.
func (d *Document) End() Position {
	return d.PositionAt(len(d.Text))
}

// TextBefore returns the document text up to pos.
func (d *Document) TextBefore(pos Position) string {
	return d.Text[:d.Offset(pos)]
}

// WordAt returns the identifier-like word touching pos and its range. The
// word is empty when pos sits between two non-word characters.
func (d *Document) WordAt(pos Position) (string, Range) {
	off := d.Offset(pos)
	start, end := off, off
	for start > 0 && isWordChar(d.Text[start-1]) {
		start--
	}
	for end < len(d.Text) && isWordChar(d.Text[end]) {
		end++
	}
	return d.Text[start:end], Range{Start: d.PositionAt(start), End: d.PositionAt(end)}
}

func utf16Len(s string) uint32 {
	var n int
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return uint32(n)
}

func isWordChar(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
