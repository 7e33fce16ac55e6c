// Package complete suggests keywords, tables and columns for the word under
// an editor cursor.
//
// The Engine holds an immutable schema snapshot that UpdateSchema replaces
// wholesale; readers never observe a partially built schema.
package complete

import (
	"strings"
	"sync/atomic"
)

// MaxSuggestions caps every suggestion list.
const MaxSuggestions = 10

// Kind is the provenance of a suggestion.
type Kind int

// Suggestion kinds.
const (
	KindKeyword Kind = iota
	KindTable
	KindColumn
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindTable:
		return "table"
	case KindColumn:
		return "column"
	case KindFunction:
		return "function"
	}
	return "unknown"
}

// Suggestion is one completion candidate.
type Suggestion struct {
	Kind        Kind   `json:"kind"`
	Text        string `json:"text"`
	Description string `json:"description"`
}

// Table is a table name with its columns in ordinal order.
type Table struct {
	Name    string   `json:"name" yaml:"name"`
	Columns []string `json:"columns" yaml:"columns"`
}

type snapshot struct {
	tables []Table
	byName map[string]int
	byFold map[string]int
}

func newSnapshot(tables []Table) *snapshot {
	s := &snapshot{
		tables: make([]Table, 0, len(tables)),
		byName: make(map[string]int, len(tables)),
		byFold: make(map[string]int, len(tables)),
	}
	for _, t := range tables {
		if i, dup := s.byName[t.Name]; dup {
			s.tables[i].Columns = append([]string(nil), t.Columns...)
			continue
		}
		s.byName[t.Name] = len(s.tables)
		fold := strings.ToLower(t.Name)
		if _, ok := s.byFold[fold]; !ok {
			s.byFold[fold] = len(s.tables)
		}
		s.tables = append(s.tables, Table{Name: t.Name, Columns: append([]string(nil), t.Columns...)})
	}
	return s
}

// lookup finds a table by exact name, then case-insensitively, then by the
// last segment of a qualified name.
func (s *snapshot) lookup(name string) (Table, bool) {
	if i, ok := s.byName[name]; ok {
		return s.tables[i], true
	}
	if i, ok := s.byFold[strings.ToLower(name)]; ok {
		return s.tables[i], true
	}
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 && dot < len(name)-1 {
		return s.lookup(name[dot+1:])
	}
	return Table{}, false
}

// Engine produces suggestions against the current schema snapshot. It is
// safe for one writer calling UpdateSchema alongside many readers.
type Engine struct {
	schema atomic.Pointer[snapshot]
}

// New returns an Engine with an empty schema.
func New() *Engine {
	e := &Engine{}
	e.schema.Store(newSnapshot(nil))
	return e
}

// UpdateSchema replaces the whole schema. Table order is preserved and
// later duplicates of a name replace the earlier columns.
func (e *Engine) UpdateSchema(tables []Table) {
	e.schema.Store(newSnapshot(tables))
}

// Tables returns a copy of the current schema.
func (e *Engine) Tables() []Table {
	snap := e.schema.Load()
	out := make([]Table, len(snap.tables))
	for i, t := range snap.tables {
		out[i] = Table{Name: t.Name, Columns: append([]string(nil), t.Columns...)}
	}
	return out
}

// Columns returns the columns of table, matched as in dot completion.
func (e *Engine) Columns(table string) ([]string, bool) {
	t, ok := e.schema.Load().lookup(table)
	if !ok {
		return nil, false
	}
	return append([]string(nil), t.Columns...), true
}

// Suggestions returns at most MaxSuggestions candidates matching the part of
// the word typed before cursor, or nil when nothing has been typed.
func (e *Engine) Suggestions(text string, cursor int) []Suggestion {
	cursor = clampCursor(text, cursor)
	start, end := WordAt(text, cursor)
	typed := text[start:cursor]
	snap := e.schema.Load()

	// "table.col" completes only that table's columns. A cursor right after
	// the dot matches against the whole word that follows it.
	if name, ok := tableBeforeDot(text, start); ok {
		if t, found := snap.lookup(name); found {
			word := typed
			if word == "" {
				word = text[start:end]
			}
			if word == "" {
				return nil
			}
			return limit(matchColumns(t, strings.ToUpper(word)))
		}
	}

	if typed == "" {
		return nil
	}
	prefix := strings.ToUpper(typed)

	var out []Suggestion
	switch AnalyzeContext(text[:start]) {
	case ContextTableName:
		out = append(out, matchTables(snap, prefix)...)
		out = append(out, matchVocabulary(prefix)...)
	case ContextColumnName:
		out = append(out, matchContextColumns(snap, prefix, text, start)...)
		out = append(out, matchVocabulary(prefix)...)
	case ContextGeneral:
		out = append(out, matchVocabulary(prefix)...)
		out = append(out, matchTables(snap, prefix)...)
		out = append(out, matchAllColumns(snap, prefix)...)
	}
	return limit(out)
}

// Accept replaces the word under cursor with s. Keywords get one trailing
// space. It returns the new text and the cursor just past the insertion.
func Accept(text string, cursor int, s Suggestion) (string, int) {
	start, end := WordAt(text, cursor)
	insert := s.Text
	if s.Kind == KindKeyword {
		insert += " "
	}
	return text[:start] + insert + text[end:], start + len(insert)
}

func matchVocabulary(prefix string) []Suggestion {
	var out []Suggestion
	for _, v := range vocabulary {
		if strings.HasPrefix(v.text, prefix) {
			out = append(out, newSuggestion(v.kind, v.text, ""))
		}
	}
	return out
}

func matchTables(snap *snapshot, prefix string) []Suggestion {
	var out []Suggestion
	for _, t := range snap.tables {
		if hasPrefixFold(t.Name, prefix) {
			out = append(out, newSuggestion(KindTable, t.Name, ""))
		}
	}
	return out
}

func matchColumns(t Table, prefix string) []Suggestion {
	var out []Suggestion
	for _, c := range t.Columns {
		if hasPrefixFold(c, prefix) {
			out = append(out, newSuggestion(KindColumn, c, t.Name))
		}
	}
	return out
}

// matchContextColumns prefers the table named by the nearest FROM and falls
// back to every known column.
func matchContextColumns(snap *snapshot, prefix, text string, pos int) []Suggestion {
	if name, ok := tableNearCursor(text, pos); ok {
		if t, found := snap.lookup(name); found {
			return matchColumns(t, prefix)
		}
	}
	return matchAllColumns(snap, prefix)
}

func matchAllColumns(snap *snapshot, prefix string) []Suggestion {
	var out []Suggestion
	for _, t := range snap.tables {
		out = append(out, matchColumns(t, prefix)...)
	}
	return out
}

func hasPrefixFold(s, upperPrefix string) bool {
	return strings.HasPrefix(strings.ToUpper(s), upperPrefix)
}

func limit(s []Suggestion) []Suggestion {
	if len(s) > MaxSuggestions {
		return s[:MaxSuggestions]
	}
	return s
}
