package format

import (
	"strings"

	"github.com/leapstack-labs/sqlpad/pkg/token"
)

var majorClauses = map[string]bool{
	"SELECT":    true,
	"FROM":      true,
	"WHERE":     true,
	"GROUP":     true,
	"HAVING":    true,
	"ORDER":     true,
	"LIMIT":     true,
	"OFFSET":    true,
	"UNION":     true,
	"INTERSECT": true,
	"EXCEPT":    true,
}

var joinKeywords = map[string]bool{
	"JOIN":  true,
	"INNER": true,
	"LEFT":  true,
	"RIGHT": true,
	"FULL":  true,
	"OUTER": true,
	"CROSS": true,
}

// formatter is the layout state machine. It sees only significant tokens.
type formatter struct {
	p      *Printer
	tokens []token.Token

	level int

	afterSelect    bool // inside a SELECT list
	selectLevel    int  // paren level of the active SELECT
	firstColumn    bool // next item is the first column of the SELECT list
	firstPredicate bool // next item is the first predicate of WHERE/HAVING
}

func (f *formatter) run() {
	for i, tok := range f.tokens {
		switch tok.Kind {
		case token.Keyword:
			f.keyword(i, tok)
		case token.Identifier, token.String, token.Number:
			f.operand(tok)
		case token.Operator:
			f.beginItem()
			f.p.space()
			f.p.write(tok.Text)
		case token.Punctuation:
			f.punctuation(i, tok)
		case token.Comment:
			f.p.space()
			f.p.write(tok.Text)
			f.p.breakLine()
		case token.Whitespace:
		}
	}
}

// beginItem opens the first SELECT column or the first WHERE/HAVING
// predicate on its own line, one level deeper than the clause.
func (f *formatter) beginItem() {
	switch {
	case f.afterSelect && f.firstColumn:
		f.firstColumn = false
		f.p.writeln(f.level + 1)
	case f.firstPredicate:
		f.firstPredicate = false
		f.p.writeln(f.level + 1)
	}
}

func (f *formatter) keyword(i int, tok token.Token) {
	up := tok.Upper()

	switch {
	case majorClauses[up]:
		f.p.writeln(f.level)
		f.p.keyword(tok.Text)
		f.firstPredicate = up == "WHERE" || up == "HAVING"
		if up == "SELECT" {
			f.afterSelect = true
			f.selectLevel = f.level
			f.firstColumn = true
		} else {
			f.afterSelect = false
		}

	case joinKeywords[up]:
		if f.startsJoin(i) {
			f.p.writeln(f.level)
		} else {
			f.p.space()
		}
		f.p.keyword(tok.Text)

	case up == "ON" || up == "AND" || up == "OR":
		f.firstPredicate = false
		f.p.writeln(f.level + 1)
		f.p.keyword(tok.Text)

	case up == "BY":
		f.p.space()
		f.p.keyword(tok.Text)

	default:
		// SELECT DISTINCT / SELECT ALL stay on the SELECT line.
		if !(f.afterSelect && f.firstColumn && (up == "DISTINCT" || up == "ALL")) {
			f.beginItem()
		}
		f.p.space()
		f.p.keyword(tok.Text)
	}
}

// startsJoin reports whether the join keyword at i begins a run of join
// keywords that ends in JOIN.
func (f *formatter) startsJoin(i int) bool {
	if i > 0 {
		prev := f.tokens[i-1]
		if prev.Kind == token.Keyword && joinKeywords[prev.Upper()] {
			return false
		}
	}
	for _, t := range f.tokens[i:] {
		if t.Kind != token.Keyword || !joinKeywords[t.Upper()] {
			return false
		}
		if t.Upper() == "JOIN" {
			return true
		}
	}
	return false
}

func (f *formatter) operand(tok token.Token) {
	f.beginItem()
	if tok.Kind == token.Number && f.p.lastByte() == '.' {
		// keep "1. 5" from re-lexing as "1.5"
		f.p.forceSpace()
	} else {
		f.p.space()
	}
	f.p.write(tok.Text)
}

func (f *formatter) punctuation(i int, tok token.Token) {
	switch tok.Text {
	case ",":
		f.p.write(",")
		if f.afterSelect && f.level == f.selectLevel {
			f.firstColumn = false
			f.p.writeln(f.level + 1)
		}

	case "(":
		f.beginItem()
		f.p.write("(")
		f.level++

	case ")":
		if f.level > 0 {
			f.level--
		}
		if f.level < f.selectLevel {
			f.afterSelect = false
		}
		f.p.write(")")

	case ".":
		if i > 0 {
			prev := f.tokens[i-1]
			if prev.Kind == token.Number && !strings.Contains(prev.Text, ".") {
				f.p.space()
			}
		}
		f.p.write(".")

	case ";":
		f.p.write(";")
		f.level = 0
		f.selectLevel = 0
		f.afterSelect = false
		f.firstColumn = false
		f.firstPredicate = false

	default:
		f.beginItem()
		f.p.write(tok.Text)
	}
}
