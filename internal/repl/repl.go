// Package repl implements the interactive sqlpad shell: a readline loop
// with engine-backed tab completion and dot-commands.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/sqlpad/internal/render"
	"github.com/leapstack-labs/sqlpad/internal/session"
	"github.com/leapstack-labs/sqlpad/pkg/complete"
	"github.com/leapstack-labs/sqlpad/pkg/format"
	"github.com/leapstack-labs/sqlpad/pkg/statement"
)

const (
	prompt         = "sqlpad> "
	continuePrompt = "   ...> "
)

// Config holds shell settings.
type Config struct {
	HistoryFile   string
	Format        render.Format
	FormatOptions []format.Option
}

// Shell is one interactive session.
type Shell struct {
	sess   *session.Session
	cfg    Config
	out    io.Writer
	errOut io.Writer
	logger *slog.Logger

	pending strings.Builder
}

// New creates a shell writing results to out and errors to errOut.
func New(sess *session.Session, cfg Config, out, errOut io.Writer, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Format == "" {
		cfg.Format = render.FormatTable
	}
	return &Shell{sess: sess, cfg: cfg, out: out, errOut: errOut, logger: logger}
}

// Run reads lines until EOF or .quit.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     s.cfg.HistoryFile,
		AutoComplete:    NewCompleter(ctx, s.sess),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          s.out,
		Stderr:          s.errOut,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(s.out, "sqlpad shell")
	_, _ = fmt.Fprintln(s.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(s.out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.pending.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		if s.HandleLine(ctx, line) {
			return nil
		}
		if s.pending.Len() > 0 {
			rl.SetPrompt(continuePrompt)
		} else {
			rl.SetPrompt(prompt)
		}
	}
}

// HandleLine processes one input line and reports whether the shell should
// exit. SQL accumulates until a line ends with ';'.
func (s *Shell) HandleLine(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, ".") {
		return s.dotCommand(ctx, line)
	}

	s.pending.WriteString(line)
	if !strings.HasSuffix(line, ";") {
		s.pending.WriteString("\n")
		return false
	}

	buf := s.pending.String()
	s.pending.Reset()
	if err := s.Batch(ctx, buf); err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
	return false
}

// Pending returns the SQL typed so far that has not been executed.
func (s *Shell) Pending() string {
	return s.pending.String()
}

// Batch runs every statement in text in order and stops at the first error.
func (s *Shell) Batch(ctx context.Context, text string) error {
	for _, stmt := range statement.Split(text) {
		res, err := s.sess.Run(ctx, stmt)
		if err != nil {
			return err
		}
		if err := render.Results(s.out, res, s.cfg.Format); err != nil {
			return err
		}
	}
	return nil
}

var commands = map[string]string{
	".help":    "Show this help message",
	".tables":  "List all tables",
	".schema":  "Show the columns of a table: .schema <table>",
	".format":  "Format SQL: .format <sql>, or the pending input",
	".refresh": "Reload the schema used for completion",
	".quit":    "Exit the shell",
	".exit":    "Exit the shell",
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Shell) dotCommand(ctx context.Context, line string) (quit bool) {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	rest := strings.TrimSpace(line[len(parts[0]):])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		s.printHelp()

	case ".tables":
		tables, err := s.sess.Tables(ctx)
		if err != nil {
			s.printErr(err)
			return false
		}
		s.printTables(tables)

	case ".schema":
		if rest == "" {
			_, _ = fmt.Fprintln(s.errOut, "Usage: .schema <table>")
			return false
		}
		if err := s.sess.EnsureSchema(ctx); err != nil {
			s.printErr(err)
			return false
		}
		cols, ok := s.sess.Engine().Columns(rest)
		if !ok {
			_, _ = fmt.Fprintf(s.errOut, "Unknown table: %s\n", rest)
			return false
		}
		rows := make([][]any, len(cols))
		for i, c := range cols {
			rows[i] = []any{i + 1, c}
		}
		_ = render.Results(s.out, &render.Result{Columns: []string{"#", "column"}, Rows: rows}, s.cfg.Format)

	case ".format":
		src := rest
		if src == "" {
			src = s.pending.String()
		}
		_, _ = fmt.Fprintln(s.out, format.SQL(src, s.cfg.FormatOptions...))

	case ".refresh":
		if err := s.sess.Refresh(ctx); err != nil {
			s.printErr(err)
			return false
		}
		tables := s.sess.Engine().Tables()
		_, _ = fmt.Fprintf(s.out, "Loaded %d tables\n", len(tables))

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func (s *Shell) printTables(tables []complete.Table) {
	rows := make([][]any, len(tables))
	for i, t := range tables {
		rows[i] = []any{t.Name, len(t.Columns)}
	}
	_ = render.Results(s.out, &render.Result{Columns: []string{"table", "columns"}, Rows: rows}, s.cfg.Format)
}

func (s *Shell) printHelp() {
	_, _ = fmt.Fprintln(s.out, "Commands:")
	for _, name := range commandNames() {
		_, _ = fmt.Fprintf(s.out, "  %-10s %s\n", name, commands[name])
	}
	_, _ = fmt.Fprintln(s.out)
	_, _ = fmt.Fprintln(s.out, "Tips:")
	_, _ = fmt.Fprintln(s.out, "  - SQL statements must end with a semicolon (;)")
	_, _ = fmt.Fprintln(s.out, "  - Tab completes keywords, tables and columns")
}

func (s *Shell) printErr(err error) {
	s.logger.Debug("shell command failed", slog.Any("error", err))
	_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
}
