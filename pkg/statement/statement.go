// Package statement isolates the semicolon-delimited statement under a
// cursor.
//
// Boundaries come from raw ';' bytes, not from the lexer, so a semicolon
// inside a string literal or comment still splits.
package statement

import "strings"

// Bounds returns the byte span [start, end) of the statement containing
// cursor. Start is one past the last ';' strictly before cursor, end is the
// first ';' at or after cursor. The cursor is clamped to [0, len(text)].
func Bounds(text string, cursor int) (start, end int) {
	cursor = clamp(cursor, len(text))

	if i := strings.LastIndexByte(text[:cursor], ';'); i >= 0 {
		start = i + 1
	}
	end = len(text)
	if i := strings.IndexByte(text[cursor:], ';'); i >= 0 {
		end = cursor + i
	}
	return start, end
}

// Current returns the trimmed statement containing cursor. Text without any
// ';' is returned whole.
func Current(text string, cursor int) string {
	if !strings.Contains(text, ";") {
		return strings.TrimSpace(text)
	}
	start, end := Bounds(text, cursor)
	return strings.TrimSpace(text[start:end])
}

// Split returns every non-empty trimmed statement in order.
func Split(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ";") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func clamp(cursor, n int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > n {
		return n
	}
	return cursor
}
