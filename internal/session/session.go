// Package session owns one completion engine and an optional database
// connection for an interactive front end such as the shell or the editor.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/sqlpad/internal/render"
	"github.com/leapstack-labs/sqlpad/internal/schema"
	"github.com/leapstack-labs/sqlpad/pkg/complete"
	"github.com/leapstack-labs/sqlpad/pkg/lexer"
	"github.com/leapstack-labs/sqlpad/pkg/statement"
	"github.com/leapstack-labs/sqlpad/pkg/token"
	"golang.org/x/sync/singleflight"
)

// ErrNoConnection is returned by Execute when the session has no database.
var ErrNoConnection = errors.New("no database connection configured")

// DefaultRetryDelay is how long a failed schema load is remembered before
// EnsureSchema tries the source again.
const DefaultRetryDelay = 5 * time.Second

// Querier runs a statement. adapter.Adapter satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string) (*sql.Rows, error)
}

// Session pairs a completion engine with the source of its schema.
type Session struct {
	ID string

	engine   *complete.Engine
	source   schema.Source
	querier  Querier
	logger   *slog.Logger
	maxItems int

	group  singleflight.Group
	loaded atomic.Bool

	retryDelay time.Duration
	now        func() time.Time

	mu       sync.Mutex
	lastErr  error
	failedAt time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithQuerier enables Execute.
func WithQuerier(q Querier) Option {
	return func(s *Session) { s.querier = q }
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxSuggestions lowers the suggestion cap. Values outside
// [1, complete.MaxSuggestions] keep the engine cap.
func WithMaxSuggestions(n int) Option {
	return func(s *Session) {
		if n > 0 && n < complete.MaxSuggestions {
			s.maxItems = n
		}
	}
}

// WithRetryDelay sets how long a failed schema load is reused before the
// source is asked again. Zero retries on every call.
func WithRetryDelay(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.retryDelay = d
		}
	}
}

// New creates a session that loads its schema from source on first use.
// A nil source means an empty schema.
func New(source schema.Source, opts ...Option) *Session {
	if source == nil {
		source = schema.Static(nil)
	}
	s := &Session{
		ID:       uuid.NewString(),
		engine:   complete.New(),
		source:   source,
		logger:   slog.New(slog.DiscardHandler),
		maxItems: complete.MaxSuggestions,

		retryDelay: DefaultRetryDelay,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("session", s.ID))
	return s
}

// Engine returns the session's completion engine.
func (s *Session) Engine() *complete.Engine {
	return s.engine
}

// EnsureSchema loads the schema if it has not been loaded yet. Concurrent
// callers share a single load. After a failure the same error is returned
// without touching the source until the retry delay has passed.
func (s *Session) EnsureSchema(ctx context.Context) error {
	_, err := s.ensure(ctx)
	return err
}

// ensure reports whether the source was actually asked, so callers can log
// a failure once instead of on every keystroke.
func (s *Session) ensure(ctx context.Context) (attempted bool, err error) {
	if s.loaded.Load() {
		return false, nil
	}
	if err := s.recentFailure(); err != nil {
		return false, err
	}
	_, err, _ = s.group.Do("schema", func() (any, error) {
		if s.loaded.Load() {
			return nil, nil
		}
		if err := s.recentFailure(); err != nil {
			return nil, err
		}
		return nil, s.load(ctx)
	})
	return true, err
}

// Refresh reloads the schema unconditionally. It never joins an
// EnsureSchema load that may have started before the schema changed.
func (s *Session) Refresh(ctx context.Context) error {
	_, err, _ := s.group.Do("refresh", func() (any, error) {
		return nil, s.load(ctx)
	})
	return err
}

func (s *Session) load(ctx context.Context) error {
	tables, err := s.source.Load(ctx)
	if err != nil {
		err = fmt.Errorf("load schema: %w", err)
		s.mu.Lock()
		s.lastErr, s.failedAt = err, s.now()
		s.mu.Unlock()
		return err
	}
	s.UpdateSchema(tables)
	s.logger.Debug("schema loaded", slog.Int("tables", len(tables)))
	return nil
}

func (s *Session) recentFailure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr == nil || s.now().Sub(s.failedAt) >= s.retryDelay {
		return nil
	}
	return s.lastErr
}

func (s *Session) clearFailure() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

// UpdateSchema installs tables directly, as the schema file watcher does.
func (s *Session) UpdateSchema(tables []complete.Table) {
	s.engine.UpdateSchema(tables)
	s.clearFailure()
	s.loaded.Store(true)
}

// Tables returns the loaded schema, loading it first if needed.
func (s *Session) Tables(ctx context.Context) ([]complete.Table, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return s.engine.Tables(), nil
}

// Suggest returns completions for the word under cursor. A failed schema
// load is logged once per attempt and keyword suggestions are still
// returned.
func (s *Session) Suggest(ctx context.Context, text string, cursor int) []complete.Suggestion {
	if attempted, err := s.ensure(ctx); err != nil && attempted {
		s.logger.Warn("schema unavailable for completion", slog.Any("error", err))
	}
	out := s.engine.Suggestions(text, cursor)
	if len(out) > s.maxItems {
		out = out[:s.maxItems]
	}
	return out
}

// Execute runs the statement under cursor. It returns a nil result and no
// error when that statement is empty. Statements that change the schema
// mark it stale so the next completion reloads it.
func (s *Session) Execute(ctx context.Context, text string, cursor int) (*render.Result, error) {
	stmt := statement.Current(text, cursor)
	if stmt == "" {
		return nil, nil
	}
	return s.Run(ctx, stmt)
}

// Run executes one statement.
func (s *Session) Run(ctx context.Context, stmt string) (*render.Result, error) {
	if s.querier == nil {
		return nil, ErrNoConnection
	}

	s.logger.Debug("executing statement", slog.String("sql", stmt))
	rows, err := s.querier.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	res, err := render.Collect(rows)
	if err != nil {
		return nil, err
	}

	if changesSchema(stmt) {
		s.clearFailure()
		s.loaded.Store(false)
	}
	return res, nil
}

// changesSchema reports whether the first keyword of stmt is DDL.
func changesSchema(stmt string) bool {
	for _, tok := range lexer.Tokenize(stmt) {
		switch tok.Kind {
		case token.Whitespace, token.Comment:
			continue
		case token.Keyword:
			return tok.Is("CREATE") || tok.Is("DROP") || tok.Is("ALTER")
		}
		return false
	}
	return false
}
