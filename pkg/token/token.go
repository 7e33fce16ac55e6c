// Package token defines the lexical token model shared by the lexer,
// formatter and highlighter.
//
// The keyword vocabulary is a static table built once at package init and
// never mutated afterwards.
package token

import "strings"

// Kind classifies a token.
type Kind int32

// Token kinds. The set is closed; switches over Kind are exhaustive.
const (
	Whitespace Kind = iota
	Keyword
	Identifier
	String
	Number
	Operator
	Punctuation
	Comment
)

var kindNames = map[Kind]string{
	Whitespace:  "Whitespace",
	Keyword:     "Keyword",
	Identifier:  "Identifier",
	String:      "String",
	Number:      "Number",
	Operator:    "Operator",
	Punctuation: "Punctuation",
	Comment:     "Comment",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Kinds returns every token kind in declaration order.
func Kinds() []Kind {
	return []Kind{Whitespace, Keyword, Identifier, String, Number, Operator, Punctuation, Comment}
}

// Token is a classified span of source text. Text is the exact source slice,
// so concatenating the Text of a token stream reproduces its input.
type Token struct {
	Kind Kind
	Text string
}

// Is reports whether t is a keyword equal to kw, ignoring case.
func (t Token) Is(kw string) bool {
	return t.Kind == Keyword && strings.EqualFold(t.Text, kw)
}

// Upper returns the token text upper-cased.
func (t Token) Upper() string {
	return strings.ToUpper(t.Text)
}

// keywordList holds the uppercase keyword vocabulary: DML, DDL, types,
// aggregate/string/date functions and control flow.
var keywordList = []string{
	// DML
	"SELECT", "FROM", "WHERE", "INSERT", "INTO", "VALUES", "UPDATE", "SET", "DELETE",
	"JOIN", "INNER", "LEFT", "RIGHT", "FULL", "OUTER", "CROSS", "ON",
	"AND", "OR", "NOT", "IN", "BETWEEN", "LIKE", "IS", "NULL",
	"AS", "ORDER", "BY", "GROUP", "HAVING", "LIMIT", "OFFSET",
	"DISTINCT", "ASC", "DESC", "UNION", "INTERSECT", "EXCEPT", "ALL", "ANY",

	// DDL
	"CREATE", "ALTER", "DROP", "TABLE", "DATABASE", "INDEX", "VIEW", "SCHEMA",
	"PRIMARY", "KEY", "FOREIGN", "REFERENCES", "CONSTRAINT", "UNIQUE",
	"CHECK", "DEFAULT", "CASCADE",

	// Types
	"INTEGER", "INT", "SMALLINT", "BIGINT", "SERIAL", "BIGSERIAL",
	"NUMERIC", "DECIMAL", "REAL", "DOUBLE", "PRECISION", "FLOAT",
	"VARCHAR", "CHAR", "TEXT", "BOOLEAN", "BOOL",
	"DATE", "TIME", "TIMESTAMP", "TIMESTAMPTZ", "INTERVAL",
	"JSON", "JSONB", "UUID", "BYTEA", "ARRAY",

	// Functions
	"COUNT", "SUM", "AVG", "MIN", "MAX",
	"COALESCE", "NULLIF", "CONCAT", "SUBSTRING", "LENGTH", "UPPER", "LOWER", "TRIM",
	"NOW", "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP",

	// Control flow and transactions
	"CASE", "WHEN", "THEN", "ELSE", "END", "EXISTS",
	"BEGIN", "COMMIT", "ROLLBACK", "TRANSACTION",
}

var keywords = func() map[string]struct{} {
	m := make(map[string]struct{}, len(keywordList))
	for _, kw := range keywordList {
		m[kw] = struct{}{}
	}
	return m
}()

// IsKeyword reports whether word is a SQL keyword, ignoring case.
func IsKeyword(word string) bool {
	_, ok := keywords[strings.ToUpper(word)]
	return ok
}

// LookupIdent returns Keyword if ident is in the keyword table and
// Identifier otherwise.
func LookupIdent(ident string) Kind {
	if IsKeyword(ident) {
		return Keyword
	}
	return Identifier
}

// KeywordList returns a copy of the keyword vocabulary in table order.
func KeywordList() []string {
	out := make([]string, len(keywordList))
	copy(out, keywordList)
	return out
}
