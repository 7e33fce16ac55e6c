package lsp

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// Document is an open SQL buffer mirrored from the client.
type Document struct {
	URI     string
	Content string
	Version int
	lines   []int // byte offsets of line starts
}

func newDocument(uri, content string, version int) *Document {
	return &Document{URI: uri, Content: content, Version: version, lines: lineOffsets(content)}
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Open adds or replaces a document.
func (s *DocumentStore) Open(uri, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[uri] = newDocument(uri, content, version)
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, uri)
}

// Get returns a document by URI, or nil when it is not open.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documents[uri]
}

// Apply applies content changes to an open document. A change without a
// range replaces the whole text. Unknown URIs are ignored.
func (s *DocumentStore) Apply(uri string, version int, changes []TextDocumentContentChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[uri]
	if !ok {
		return
	}
	content := doc.Content
	for _, ch := range changes {
		if ch.Range == nil {
			content = ch.Text
			continue
		}
		cur := newDocument(uri, content, version)
		start := cur.PositionToOffset(ch.Range.Start)
		end := max(start, cur.PositionToOffset(ch.Range.End))
		content = content[:start] + ch.Text + content[end:]
	}
	s.documents[uri] = newDocument(uri, content, version)
}

// List returns all open document URIs, sorted.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

func lineOffsets(content string) []int {
	offsets := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// PositionToOffset converts a Position to a byte offset. Characters count
// UTF-16 code units; positions past a line end clamp to it.
func (d *Document) PositionToOffset(pos Position) int {
	line := int(pos.Line)
	if line >= len(d.lines) {
		return len(d.Content)
	}
	off := d.lines[line]
	end := len(d.Content)
	if line+1 < len(d.lines) {
		end = d.lines[line+1] - 1
	}

	for units := 0; off < end; {
		r, w := utf8.DecodeRuneInString(d.Content[off:])
		n := utf16Len(r)
		if units+n > int(pos.Character) {
			break
		}
		units += n
		off += w
	}
	return off
}

// OffsetToPosition converts a byte offset to a Position.
func (d *Document) OffsetToPosition(offset int) Position {
	offset = max(0, min(offset, len(d.Content)))
	line := sort.Search(len(d.lines), func(i int) bool { return d.lines[i] > offset }) - 1

	units := 0
	for _, r := range d.Content[d.lines[line]:offset] {
		units += utf16Len(r)
	}
	return Position{Line: uint32(line), Character: uint32(units)}
}

// End returns the position just past the last character.
func (d *Document) End() Position {
	return d.OffsetToPosition(len(d.Content))
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
