package complete

// vocabularyEntry is a fixed keyword or function suggestion.
type vocabularyEntry struct {
	text string
	kind Kind
}

// vocabulary is the static list offered in every context, in suggestion
// order. Multi-word entries complete a whole phrase.
var vocabulary = concat(
	entries(KindKeyword,
		// DML
		"SELECT", "FROM", "WHERE", "INSERT", "INTO", "VALUES", "UPDATE", "SET", "DELETE",
		"JOIN", "INNER JOIN", "LEFT JOIN", "RIGHT JOIN", "FULL JOIN", "CROSS JOIN",
		"ON", "AND", "OR", "NOT", "IN", "BETWEEN", "LIKE", "IS", "NULL",
		"ORDER BY", "GROUP BY", "HAVING", "LIMIT", "OFFSET",
		"DISTINCT", "AS", "ASC", "DESC",

		// DDL
		"CREATE", "ALTER", "DROP", "TABLE", "DATABASE", "INDEX", "VIEW",
		"PRIMARY KEY", "FOREIGN KEY", "REFERENCES", "CONSTRAINT", "UNIQUE",
		"CHECK", "DEFAULT", "AUTO_INCREMENT",

		// Types
		"INTEGER", "INT", "SMALLINT", "BIGINT", "SERIAL", "BIGSERIAL",
		"NUMERIC", "DECIMAL", "REAL", "DOUBLE PRECISION", "FLOAT",
		"VARCHAR", "CHAR", "TEXT", "BOOLEAN", "BOOL",
		"DATE", "TIME", "TIMESTAMP", "TIMESTAMPTZ", "INTERVAL",
		"JSON", "JSONB", "UUID", "BYTEA",
	),
	entries(KindFunction,
		"COUNT", "SUM", "AVG", "MIN", "MAX",
		"CONCAT", "SUBSTRING", "LENGTH", "UPPER", "LOWER", "TRIM",
		"NOW",
	),
	entries(KindKeyword,
		"CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP",
		"CASE", "WHEN", "THEN", "ELSE", "END",
		"EXISTS", "ANY", "ALL", "UNION", "INTERSECT", "EXCEPT",
		"BEGIN", "COMMIT", "ROLLBACK", "TRANSACTION",
	),
	entries(KindFunction, "COALESCE", "NULLIF"),
)

func entries(kind Kind, words ...string) []vocabularyEntry {
	out := make([]vocabularyEntry, len(words))
	for i, w := range words {
		out[i] = vocabularyEntry{text: w, kind: kind}
	}
	return out
}

func concat(groups ...[]vocabularyEntry) []vocabularyEntry {
	var out []vocabularyEntry
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Vocabulary returns the fixed keyword and function suggestions.
func Vocabulary() []Suggestion {
	out := make([]Suggestion, len(vocabulary))
	for i, v := range vocabulary {
		out[i] = newSuggestion(v.kind, v.text, "")
	}
	return out
}

func newSuggestion(kind Kind, text, table string) Suggestion {
	var desc string
	switch kind {
	case KindKeyword:
		desc = "SQL Keyword"
	case KindFunction:
		desc = "SQL Function"
	case KindTable:
		desc = "Table"
	case KindColumn:
		desc = "Column in " + table
	}
	return Suggestion{Kind: kind, Text: text, Description: desc}
}
