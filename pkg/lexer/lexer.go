// Package lexer splits SQL text into classified tokens.
//
// The lexer is total: every input produces a token stream, unknown runes
// become single-rune Punctuation tokens, and the concatenated token text
// always equals the input.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlpad/pkg/token"
)

// Lexer tokenizes SQL input.
type Lexer struct {
	input   string
	pos     int  // start of current rune
	readPos int  // start of next rune
	ch      rune // current rune, valid while pos < len(input)
}

// New creates a Lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize returns every token of text, whitespace and comments included.
func Tokenize(text string) []token.Token {
	l := New(text)
	var tokens []token.Token
	for {
		tok, ok := l.NextToken()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// readChar advances to the next rune.
func (l *Lexer) readChar() {
	l.pos = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.readPos += w
}

// peekChar returns the rune after the current one without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token, or false once the input is exhausted.
func (l *Lexer) NextToken() (token.Token, bool) {
	if l.eof() {
		return token.Token{}, false
	}

	start := l.pos
	var kind token.Kind

	switch {
	case isSpace(l.ch):
		for !l.eof() && isSpace(l.ch) {
			l.readChar()
		}
		kind = token.Whitespace

	case l.ch == '\'':
		l.readString()
		kind = token.String

	case l.ch == '-' && l.peekChar() == '-':
		for !l.eof() && l.ch != '\n' {
			l.readChar()
		}
		kind = token.Comment

	case isDigit(l.ch):
		l.readNumber()
		kind = token.Number

	case isOperator(l.ch):
		first := l.ch
		l.readChar()
		if (first == '>' || first == '<' || first == '!') && !l.eof() && (l.ch == '=' || l.ch == '>') {
			l.readChar()
		}
		kind = token.Operator

	case isIdentStart(l.ch):
		for !l.eof() && IsIdentChar(l.ch) {
			l.readChar()
		}
		return token.Token{Kind: token.LookupIdent(l.input[start:l.pos]), Text: l.input[start:l.pos]}, true

	default:
		// ( ) , ; . and anything unrecognized
		l.readChar()
		kind = token.Punctuation
	}

	return token.Token{Kind: kind, Text: l.input[start:l.pos]}, true
}

// readString consumes a single-quoted literal. A backslash escapes the next
// rune; an unterminated literal runs to end of input.
func (l *Lexer) readString() {
	l.readChar() // opening quote
	for !l.eof() {
		switch l.ch {
		case '\\':
			l.readChar()
			if !l.eof() {
				l.readChar()
			}
		case '\'':
			l.readChar()
			return
		default:
			l.readChar()
		}
	}
}

// readNumber consumes digits with at most one decimal point.
func (l *Lexer) readNumber() {
	seenDot := false
	for !l.eof() {
		switch {
		case isDigit(l.ch):
		case l.ch == '.' && !seenDot:
			seenDot = true
		default:
			return
		}
		l.readChar()
	}
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isOperator(ch rune) bool {
	switch ch {
	case '=', '>', '<', '!', '+', '-', '*', '/', '%', '|', '&':
		return true
	}
	return false
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

// IsIdentChar reports whether ch can continue an identifier.
func IsIdentChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsNumber(ch) || ch == '_'
}
