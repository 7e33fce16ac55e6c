// Package editor is the interactive full-screen SQL editor: a single text
// buffer with syntax highlighting, a completion popup, formatting and
// execution of the statement under the cursor.
package editor

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leapstack-labs/sqlpad/internal/highlight"
	"github.com/leapstack-labs/sqlpad/internal/render"
	"github.com/leapstack-labs/sqlpad/internal/session"
	"github.com/leapstack-labs/sqlpad/pkg/complete"
	"github.com/leapstack-labs/sqlpad/pkg/format"
)

// Options configures a new Model.
type Options struct {
	// Text is the initial buffer content. The cursor starts at its end.
	Text string

	// FormatOptions are passed to format.SQL.
	FormatOptions []format.Option

	// Theme styles tokens. Nil renders plain text.
	Theme highlight.Theme
}

// resultMsg carries the outcome of an executed statement back to Update.
type resultMsg struct {
	result *render.Result
	err    error
}

// Model is the bubbletea model of the editor. The cursor is a byte offset
// into text and always sits on a rune boundary.
type Model struct {
	ctx  context.Context
	sess *session.Session

	text   string
	cursor int
	popup  complete.Popup

	keys     keyMap
	help     help.Model
	showHelp bool

	theme      highlight.Theme
	formatOpts []format.Option

	running bool
	result  *render.Result
	err     error
	width   int
}

// New creates an editor over sess.
func New(ctx context.Context, sess *session.Session, opts Options) Model {
	return Model{
		ctx:        ctx,
		sess:       sess,
		text:       opts.Text,
		cursor:     len(opts.Text),
		keys:       keys,
		help:       help.New(),
		theme:      opts.Theme,
		formatOpts: opts.FormatOptions,
	}
}

// Run starts the editor on the alternate screen and blocks until it quits.
// It returns the final buffer.
func Run(ctx context.Context, sess *session.Session, opts Options) (string, error) {
	p := tea.NewProgram(New(ctx, sess, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(Model); ok {
		return m.text, nil
	}
	return "", nil
}

// Text returns the buffer.
func (m Model) Text() string { return m.text }

// Cursor returns the cursor byte offset.
func (m Model) Cursor() int { return m.cursor }

// Suggestions returns the items shown in the popup and the highlighted index.
func (m Model) Suggestions() ([]complete.Suggestion, int) {
	return m.popup.Items(), m.popup.Index()
}

// Result returns the last execution outcome.
func (m Model) Result() (*render.Result, error) { return m.result, m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case resultMsg:
		m.running = false
		m.result = msg.result
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Execute):
		return m.execute()
	case key.Matches(msg, m.keys.Format):
		m.text = format.SQL(m.text, m.formatOpts...)
		m.cursor = len(m.text)
		m.popup.Hide()
		return m, nil
	}

	if m.popup.Visible() {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.popup.Prev()
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.popup.Next()
			return m, nil
		case key.Matches(msg, m.keys.Accept):
			if s, ok := m.popup.Selected(); ok {
				m.text, m.cursor = complete.Accept(m.text, m.cursor, s)
			}
			m.popup.Hide()
			return m, nil
		case key.Matches(msg, m.keys.Dismiss):
			m.popup.Hide()
			return m, nil
		}
	} else if key.Matches(msg, m.keys.Accept) {
		m.suggest()
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return m, nil
		}
		m.insert(string(msg.Runes))
		m.suggest()
	case tea.KeySpace:
		m.insert(" ")
		m.suggest()
	case tea.KeyEnter:
		m.insert("\n")
		m.popup.Hide()
	case tea.KeyBackspace:
		m.deleteBack()
		m.suggest()
	case tea.KeyLeft:
		if m.cursor > 0 {
			_, size := utf8.DecodeLastRuneInString(m.text[:m.cursor])
			m.cursor -= size
		}
		m.popup.Hide()
	case tea.KeyRight:
		if m.cursor < len(m.text) {
			_, size := utf8.DecodeRuneInString(m.text[m.cursor:])
			m.cursor += size
		}
		m.popup.Hide()
	case tea.KeyHome:
		m.cursor = strings.LastIndexByte(m.text[:m.cursor], '\n') + 1
		m.popup.Hide()
	case tea.KeyEnd:
		if i := strings.IndexByte(m.text[m.cursor:], '\n'); i >= 0 {
			m.cursor += i
		} else {
			m.cursor = len(m.text)
		}
		m.popup.Hide()
	}
	return m, nil
}

func (m *Model) insert(s string) {
	m.text = m.text[:m.cursor] + s + m.text[m.cursor:]
	m.cursor += len(s)
}

func (m *Model) deleteBack() {
	if m.cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(m.text[:m.cursor])
	m.text = m.text[:m.cursor-size] + m.text[m.cursor:]
	m.cursor -= size
}

// suggest refreshes the popup for the word under the cursor.
func (m *Model) suggest() {
	m.popup.Set(m.sess.Suggest(m.ctx, m.text, m.cursor))
}

// execute runs the statement under the cursor off the update loop.
func (m Model) execute() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	m.running = true
	m.popup.Hide()

	ctx, sess, text, cursor := m.ctx, m.sess, m.text, m.cursor
	return m, func() tea.Msg {
		res, err := sess.Execute(ctx, text, cursor)
		return resultMsg{result: res, err: err}
	}
}
