package lexer

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlpad/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Text: text}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Token
	}{
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
		{
			name:  "simple select",
			input: "SELECT id FROM users",
			expected: []token.Token{
				tok(token.Keyword, "SELECT"),
				tok(token.Whitespace, " "),
				tok(token.Identifier, "id"),
				tok(token.Whitespace, " "),
				tok(token.Keyword, "FROM"),
				tok(token.Whitespace, " "),
				tok(token.Identifier, "users"),
			},
		},
		{
			name:  "keyword casing preserved",
			input: "select",
			expected: []token.Token{
				tok(token.Keyword, "select"),
			},
		},
		{
			name:  "whitespace run",
			input: "a \t\r\n b",
			expected: []token.Token{
				tok(token.Identifier, "a"),
				tok(token.Whitespace, " \t\r\n "),
				tok(token.Identifier, "b"),
			},
		},
		{
			name:  "string with escape",
			input: `'it\'s' x`,
			expected: []token.Token{
				tok(token.String, `'it\'s'`),
				tok(token.Whitespace, " "),
				tok(token.Identifier, "x"),
			},
		},
		{
			name:  "unterminated string",
			input: "'abc def",
			expected: []token.Token{
				tok(token.String, "'abc def"),
			},
		},
		{
			name:  "comment stops before newline",
			input: "-- hi\nx",
			expected: []token.Token{
				tok(token.Comment, "-- hi"),
				tok(token.Whitespace, "\n"),
				tok(token.Identifier, "x"),
			},
		},
		{
			name:  "comment at end of input",
			input: "x -- trailing",
			expected: []token.Token{
				tok(token.Identifier, "x"),
				tok(token.Whitespace, " "),
				tok(token.Comment, "-- trailing"),
			},
		},
		{
			name:  "number with one dot",
			input: "3.14.15",
			expected: []token.Token{
				tok(token.Number, "3.14"),
				tok(token.Punctuation, "."),
				tok(token.Number, "15"),
			},
		},
		{
			name:  "merged operators",
			input: "a>=b<>c!=d<=e",
			expected: []token.Token{
				tok(token.Identifier, "a"),
				tok(token.Operator, ">="),
				tok(token.Identifier, "b"),
				tok(token.Operator, "<>"),
				tok(token.Identifier, "c"),
				tok(token.Operator, "!="),
				tok(token.Identifier, "d"),
				tok(token.Operator, "<="),
				tok(token.Identifier, "e"),
			},
		},
		{
			name:  "single operators do not merge",
			input: "=>",
			expected: []token.Token{
				tok(token.Operator, "="),
				tok(token.Operator, ">"),
			},
		},
		{
			name:  "punctuation",
			input: "f(a.b, c);",
			expected: []token.Token{
				tok(token.Identifier, "f"),
				tok(token.Punctuation, "("),
				tok(token.Identifier, "a"),
				tok(token.Punctuation, "."),
				tok(token.Identifier, "b"),
				tok(token.Punctuation, ","),
				tok(token.Whitespace, " "),
				tok(token.Identifier, "c"),
				tok(token.Punctuation, ")"),
				tok(token.Punctuation, ";"),
			},
		},
		{
			name:  "unknown runes are punctuation",
			input: `"x"@`,
			expected: []token.Token{
				tok(token.Punctuation, `"`),
				tok(token.Identifier, "x"),
				tok(token.Punctuation, `"`),
				tok(token.Punctuation, "@"),
			},
		},
		{
			name:  "unicode identifier",
			input: "café_1",
			expected: []token.Token{
				tok(token.Identifier, "café_1"),
			},
		},
		{
			name:  "underscore start",
			input: "_tmp",
			expected: []token.Token{
				tok(token.Identifier, "_tmp"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"SELECT * FROM users WHERE id = 1;",
		"select a,b from t -- note\nwhere x >= 'y\\'z'",
		"'unterminated",
		"1.2.3..4",
		"SELECT 'é', \"q\" FROM `t` WHERE a <> b AND c !> d",
		"\x00\xff\xfe broken utf8",
		"--",
		"-",
		"🚀 emoji;;",
		"CREATE TABLE t (id SERIAL PRIMARY KEY, name VARCHAR(10))",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			var sb strings.Builder
			for _, tk := range Tokenize(in) {
				require.NotEmpty(t, tk.Text, "tokens are never empty")
				sb.WriteString(tk.Text)
			}
			assert.Equal(t, in, sb.String())
		})
	}
}

func TestLexer_NextToken(t *testing.T) {
	l := New("a b")

	first, ok := l.NextToken()
	require.True(t, ok)
	assert.Equal(t, tok(token.Identifier, "a"), first)

	_, ok = l.NextToken()
	require.True(t, ok)

	last, ok := l.NextToken()
	require.True(t, ok)
	assert.Equal(t, tok(token.Identifier, "b"), last)

	_, ok = l.NextToken()
	assert.False(t, ok)
}

func TestIsIdentChar(t *testing.T) {
	assert.True(t, IsIdentChar('a'))
	assert.True(t, IsIdentChar('9'))
	assert.True(t, IsIdentChar('_'))
	assert.True(t, IsIdentChar('é'))
	assert.False(t, IsIdentChar('.'))
	assert.False(t, IsIdentChar(' '))
}
