// Package format re-emits SQL text with clause-per-line layout and
// normalized keyword casing.
//
// Formatting works on the lexer's token stream, not on a syntax tree, so any
// input is accepted and formatting formatted output is a no-op.
package format

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlpad/pkg/lexer"
	"github.com/leapstack-labs/sqlpad/pkg/token"
)

// DefaultIndentSize is the number of spaces per indent level.
const DefaultIndentSize = 4

// KeywordCase selects how keywords are cased in the output.
type KeywordCase int

// Keyword casing styles.
const (
	Upper KeywordCase = iota
	Lower
)

func (c KeywordCase) String() string {
	if c == Lower {
		return "lower"
	}
	return "upper"
}

// ParseKeywordCase parses "upper" or "lower", ignoring case.
func ParseKeywordCase(s string) (KeywordCase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "upper":
		return Upper, nil
	case "lower":
		return Lower, nil
	}
	return Upper, fmt.Errorf("invalid keyword case %q (expected upper or lower)", s)
}

// Options configures the formatter.
type Options struct {
	KeywordCase KeywordCase
	IndentSize  int
}

// DefaultOptions returns upper-case keywords and four-space indents.
func DefaultOptions() Options {
	return Options{
		KeywordCase: Upper,
		IndentSize:  DefaultIndentSize,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithKeywordCase sets the keyword casing.
func WithKeywordCase(c KeywordCase) Option {
	return func(o *Options) { o.KeywordCase = c }
}

// WithIndentSize sets the spaces per indent level. Negative sizes are
// treated as zero.
func WithIndentSize(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.IndentSize = n
	}
}

// SQL formats sql and returns the result trimmed of surrounding whitespace.
func SQL(sql string, opts ...Option) string {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	f := &formatter{
		p:      newPrinter(o),
		tokens: significant(lexer.Tokenize(sql)),
	}
	f.run()
	return f.p.String()
}

// significant drops whitespace; the layout re-derives all spacing.
func significant(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != token.Whitespace {
			out = append(out, t)
		}
	}
	return out
}
