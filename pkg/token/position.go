package token

import (
	"strings"
	"unicode/utf8"
)

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in runes
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// PositionAt converts a byte offset into a line and column. The offset is
// clamped to the text.
func PositionAt(text string, offset int) Position {
	offset = max(0, min(offset, len(text)))
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	return Position{
		Line:   strings.Count(text[:offset], "\n") + 1,
		Column: utf8.RuneCountInString(text[lineStart:offset]) + 1,
		Offset: offset,
	}
}

// OffsetAt converts a 1-based line and column into a byte offset. A column
// past the end of its line lands on the line end; a line past the end of
// the text lands on the text end.
func OffsetAt(text string, line, column int) int {
	off := 0
	for l := 1; l < line; l++ {
		nl := strings.IndexByte(text[off:], '\n')
		if nl < 0 {
			return len(text)
		}
		off += nl + 1
	}

	lineEnd := len(text)
	if nl := strings.IndexByte(text[off:], '\n'); nl >= 0 {
		lineEnd = off + nl
	}
	for c := 1; c < column && off < lineEnd; c++ {
		_, w := utf8.DecodeRuneInString(text[off:])
		off += w
	}
	return off
}
