package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/sqlpad/internal/render"
	"github.com/leapstack-labs/sqlpad/pkg/lexer"
	"github.com/leapstack-labs/sqlpad/pkg/token"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sqlpad"))
	b.WriteString("\n\n")
	b.WriteString(m.renderBuffer())
	b.WriteString("\n")

	if m.popup.Visible() {
		b.WriteString(m.renderPopup())
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	if out := m.renderResult(); out != "" {
		b.WriteString("\n")
		b.WriteString(out)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return b.String()
}

// renderBuffer highlights the buffer and draws the cursor as a reversed cell
// inside the token it falls in.
func (m Model) renderBuffer() string {
	var b strings.Builder
	offset := 0
	drawn := false
	for _, tok := range lexer.Tokenize(m.text) {
		end := offset + len(tok.Text)
		if !drawn && m.cursor >= offset && m.cursor < end {
			at := m.cursor - offset
			_, size := utf8.DecodeRuneInString(tok.Text[at:])
			b.WriteString(m.paint(tok.Kind, tok.Text[:at]))
			b.WriteString(cursorCell(tok.Text[at : at+size]))
			b.WriteString(m.paint(tok.Kind, tok.Text[at+size:]))
			drawn = true
		} else {
			b.WriteString(m.paint(tok.Kind, tok.Text))
		}
		offset = end
	}
	if !drawn {
		b.WriteString(cursorStyle.Render(" "))
	}
	return b.String()
}

func cursorCell(ch string) string {
	if ch == "\n" {
		return cursorStyle.Render(" ") + "\n"
	}
	return cursorStyle.Render(ch)
}

func (m Model) paint(kind token.Kind, text string) string {
	style, ok := m.theme[kind]
	if !ok || kind == token.Whitespace || text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPopup() string {
	items := m.popup.Items()
	width := 0
	for _, s := range items {
		width = max(width, utf8.RuneCountInString(s.Text))
	}

	rows := make([]string, len(items))
	for i, s := range items {
		label := s.Text + strings.Repeat(" ", width-utf8.RuneCountInString(s.Text))
		if i == m.popup.Index() {
			label = selectedStyle.Render(label)
		}
		rows[i] = label + "  " + descriptionStyle.Render(s.Description)
	}
	return popupStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderStatus() string {
	pos := token.PositionAt(m.text, m.cursor)
	status := fmt.Sprintf("Ln %d, Col %d", pos.Line, pos.Column)
	if m.running {
		status += "  running..."
	}
	return statusStyle.Render(status)
}

func (m Model) renderResult() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.result == nil {
		return ""
	}
	var b strings.Builder
	if err := render.Results(&b, m.result, render.FormatTable); err != nil {
		return errorStyle.Render("Error: " + err.Error())
	}
	return strings.TrimRight(b.String(), "\n")
}
