package format

import (
	"bytes"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Printer accumulates formatted output. Indentation is written lazily when
// the first text of a line arrives, so broken lines never carry trailing
// spaces.
type Printer struct {
	output      *bytes.Buffer
	caser       cases.Caser
	indentSize  int
	depth       int
	atLineStart bool
}

func newPrinter(opts Options) *Printer {
	caser := cases.Upper(language.Und)
	if opts.KeywordCase == Lower {
		caser = cases.Lower(language.Und)
	}
	return &Printer{
		output:      &bytes.Buffer{},
		caser:       caser,
		indentSize:  opts.IndentSize,
		atLineStart: true,
	}
}

// String returns the formatted output without surrounding whitespace.
func (p *Printer) String() string {
	return strings.TrimSpace(p.output.String())
}

func (p *Printer) write(s string) {
	if s == "" {
		return
	}
	if p.atLineStart {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

// writeln ends the current line, unless nothing has been written to it yet,
// and sets the depth of the next one.
func (p *Printer) writeln(depth int) {
	if p.output.Len() > 0 && !p.atLineStart {
		p.output.WriteByte('\n')
	}
	p.atLineStart = true
	p.depth = depth
}

// breakLine ends the current line keeping its depth.
func (p *Printer) breakLine() {
	p.writeln(p.depth)
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*p.indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) keyword(s string) {
	p.write(p.caser.String(s))
}

// space separates the next token from the previous one. Nothing is written
// at the start of a line or after an opening paren or a dot.
func (p *Printer) space() {
	if p.atLineStart || p.output.Len() == 0 {
		return
	}
	switch p.lastByte() {
	case ' ', '\n', '(', '.':
		return
	}
	p.output.WriteByte(' ')
}

// forceSpace separates tokens even after a dot.
func (p *Printer) forceSpace() {
	if p.atLineStart || p.output.Len() == 0 {
		return
	}
	switch p.lastByte() {
	case ' ', '\n':
		return
	}
	p.output.WriteByte(' ')
}

func (p *Printer) lastByte() byte {
	b := p.output.Bytes()
	if len(b) == 0 {
		return 0
	}
	return b[len(b)-1]
}
