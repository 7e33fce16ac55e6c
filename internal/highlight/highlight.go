// Package highlight colours SQL token streams for terminal output.
package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/sqlpad/pkg/lexer"
	"github.com/leapstack-labs/sqlpad/pkg/token"
	"github.com/muesli/termenv"
)

// ColorMode controls whether escape sequences are emitted.
type ColorMode string

// Colour modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (expected auto, always or never)", s)
}

// NewRenderer returns a lipgloss renderer for w. Auto detects the profile
// from w; always forces ANSI colours; never strips them.
func NewRenderer(w io.Writer, mode ColorMode) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// Theme maps token kinds to styles. Kinds without an entry are unstyled.
type Theme map[token.Kind]lipgloss.Style

// DefaultTheme uses the 16-colour palette: keywords cyan, strings green,
// numbers yellow, comments dark gray, operators magenta, identifiers and
// punctuation white.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c)).TabWidth(lipgloss.NoTabConversion)
	}
	return Theme{
		token.Keyword:     fg("6"),
		token.String:      fg("2"),
		token.Number:      fg("3"),
		token.Comment:     fg("8"),
		token.Operator:    fg("5"),
		token.Identifier:  fg("7"),
		token.Punctuation: fg("7"),
	}
}

// Render styles each token by kind. Whitespace is written through as is.
// Multi-line tokens are styled line by line so no padding is introduced.
func Render(tokens []token.Token, theme Theme) string {
	var b strings.Builder
	for _, tok := range tokens {
		style, ok := theme[tok.Kind]
		if !ok || tok.Kind == token.Whitespace {
			b.WriteString(tok.Text)
			continue
		}
		for i, line := range strings.Split(tok.Text, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String()
}

// SQL tokenizes and renders text.
func SQL(text string, theme Theme) string {
	return Render(lexer.Tokenize(text), theme)
}
