package complete

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Context is a coarse guess at what the cursor is positioned to type.
type Context int

// Completion contexts.
const (
	ContextGeneral Context = iota
	ContextTableName
	ContextColumnName
)

func (c Context) String() string {
	switch c {
	case ContextTableName:
		return "table"
	case ContextColumnName:
		return "column"
	}
	return "general"
}

// AnalyzeContext classifies the text preceding the current word. This is
// plain substring matching, not parsing:
//   - a "FROM " with no WHERE after it means a table name,
//   - a leading "SELECT " with no FROM yet means a column,
//   - any "WHERE " or "ON " means a column.
func AnalyzeContext(before string) Context {
	upper := asciiUpper(before)

	if from := strings.LastIndex(upper, "FROM "); from >= 0 && strings.LastIndex(upper, "WHERE") < from {
		return ContextTableName
	}
	if strings.HasPrefix(upper, "SELECT ") && !strings.Contains(upper, "FROM") {
		return ContextColumnName
	}
	if strings.Contains(upper, "WHERE ") || strings.Contains(upper, "ON ") {
		return ContextColumnName
	}
	return ContextGeneral
}

// WordAt returns the byte span of the identifier run touching cursor. The
// span extends both ways over letters, digits and '_', so a cursor inside
// or at either edge of a word selects the whole word.
func WordAt(text string, cursor int) (start, end int) {
	cursor = clampCursor(text, cursor)

	start = cursor
	for start > 0 {
		r, w := utf8.DecodeLastRuneInString(text[:start])
		if !isWordRune(r) {
			break
		}
		start -= w
	}

	end = cursor
	for end < len(text) {
		r, w := utf8.DecodeRuneInString(text[end:])
		if !isWordRune(r) {
			break
		}
		end += w
	}
	return start, end
}

// tableBeforeDot returns the identifier immediately before a '.' that ends
// at wordStart, as in "users.na".
func tableBeforeDot(text string, wordStart int) (string, bool) {
	if wordStart == 0 || text[wordStart-1] != '.' {
		return "", false
	}
	dot := wordStart - 1
	start := dot
	for start > 0 {
		r, w := utf8.DecodeLastRuneInString(text[:start])
		if !isWordRune(r) {
			break
		}
		start -= w
	}
	if start == dot {
		return "", false
	}
	return text[start:dot], true
}

// tableNearCursor returns the first word after the "FROM " closest to the
// word at pos: the last one before it, else the first one after it.
func tableNearCursor(text string, pos int) (string, bool) {
	upper := asciiUpper(text)

	at := strings.LastIndex(upper[:pos], "FROM ")
	if at < 0 {
		if i := strings.Index(upper[pos:], "FROM "); i >= 0 {
			at = pos + i
		}
	}
	if at < 0 {
		return "", false
	}

	fields := strings.Fields(text[at+len("FROM "):])
	if len(fields) == 0 {
		return "", false
	}
	name := strings.TrimRightFunc(fields[0], func(r rune) bool { return !isWordRune(r) })
	return name, name != ""
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// clampCursor bounds cursor to [0, len(text)] and moves it back onto a rune
// boundary.
func clampCursor(text string, cursor int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > len(text) {
		return len(text)
	}
	for cursor > 0 && cursor < len(text) && !utf8.RuneStart(text[cursor]) {
		cursor--
	}
	return cursor
}

// asciiUpper upper-cases ASCII letters only, so byte offsets in the result
// line up with the input.
func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
