package repl

import (
	"context"
	"strings"
	"unicode"

	"github.com/leapstack-labs/sqlpad/internal/session"
	"github.com/leapstack-labs/sqlpad/pkg/complete"
)

// Completer adapts the completion engine to readline's AutoCompleter.
type Completer struct {
	sess *session.Session
	ctx  context.Context
}

// NewCompleter returns a readline completer backed by sess.
func NewCompleter(ctx context.Context, sess *session.Session) *Completer {
	return &Completer{sess: sess, ctx: ctx}
}

// Do returns completion candidates for the current line/cursor position.
// length is the number of runes before pos that form the prefix being
// completed; newLine holds the suffix to append for each candidate.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	pos = max(0, min(pos, len(line)))
	text := string(line)
	cursor := len(string(line[:pos]))

	if strings.HasPrefix(strings.TrimSpace(text), ".") {
		return completeCommand(strings.TrimLeft(string(line[:pos]), " \t"))
	}

	start, _ := complete.WordAt(text, cursor)
	prefix := []rune(text[start:cursor])
	if len(prefix) == 0 {
		return nil, 0
	}

	lower := !hasUpper(string(prefix))
	for _, s := range c.sess.Suggest(c.ctx, text, cursor) {
		cand := s.Text
		if lower && (s.Kind == complete.KindKeyword || s.Kind == complete.KindFunction) {
			cand = strings.ToLower(cand)
		}
		runes := []rune(cand)
		if len(runes) < len(prefix) {
			continue
		}
		suffix := string(runes[len(prefix):])
		if s.Kind == complete.KindKeyword {
			suffix += " "
		}
		newLine = append(newLine, []rune(suffix))
	}
	return newLine, len(prefix)
}

func completeCommand(typed string) ([][]rune, int) {
	if strings.ContainsAny(typed, " \t") {
		return nil, 0
	}
	var out [][]rune
	for _, cmd := range commandNames() {
		if strings.HasPrefix(cmd, typed) {
			out = append(out, []rune(cmd[len(typed):]+" "))
		}
	}
	return out, len([]rune(typed))
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
