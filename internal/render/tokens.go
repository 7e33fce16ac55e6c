package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlpad/pkg/complete"
	"github.com/leapstack-labs/sqlpad/pkg/token"
)

type tokenJSON struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Tokens writes a lexer dump. Token text is quoted so whitespace is visible.
func Tokens(w io.Writer, toks []token.Token, f Format) error {
	if f == FormatJSON {
		out := make([]tokenJSON, len(toks))
		for i, t := range toks {
			out[i] = tokenJSON{Kind: t.Kind.String(), Text: t.Text}
		}
		return writeJSON(w, out)
	}

	rows := make([][]string, len(toks))
	for i, t := range toks {
		rows[i] = []string{strconv.Itoa(i), t.Kind.String(), strconv.Quote(t.Text)}
	}
	return grid(w, f, []string{"#", "kind", "text"}, rows)
}

type suggestionJSON struct {
	Kind        string `json:"kind"`
	Text        string `json:"text"`
	Description string `json:"description"`
}

// Suggestions writes a completion list. Plain output is one text per line.
func Suggestions(w io.Writer, list []complete.Suggestion, f Format) error {
	switch f {
	case FormatJSON:
		out := make([]suggestionJSON, len(list))
		for i, s := range list {
			out[i] = suggestionJSON{Kind: s.Kind.String(), Text: s.Text, Description: s.Description}
		}
		return writeJSON(w, out)
	case FormatPlain:
		rows := make([][]string, len(list))
		for i, s := range list {
			rows[i] = []string{s.Text}
		}
		return grid(w, f, nil, rows)
	}

	rows := make([][]string, len(list))
	for i, s := range list {
		rows[i] = []string{s.Kind.String(), s.Text, s.Description}
	}
	return grid(w, f, []string{"kind", "text", "description"}, rows)
}

// Tables writes a schema listing, one row per table. Plain output is one
// table name per line.
func Tables(w io.Writer, tables []complete.Table, f Format) error {
	switch f {
	case FormatJSON:
		if tables == nil {
			tables = []complete.Table{}
		}
		return writeJSON(w, tables)
	case FormatPlain:
		rows := make([][]string, len(tables))
		for i, t := range tables {
			rows[i] = []string{t.Name}
		}
		return grid(w, f, nil, rows)
	}

	rows := make([][]string, len(tables))
	for i, t := range tables {
		rows[i] = []string{t.Name, strings.Join(t.Columns, ", ")}
	}
	return grid(w, f, []string{"table", "columns"}, rows)
}
