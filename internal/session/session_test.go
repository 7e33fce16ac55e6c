package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/sqlpad/internal/schema"
	"github.com/leapstack-labs/sqlpad/internal/testutil"
	"github.com/leapstack-labs/sqlpad/pkg/adapter"
	"github.com/leapstack-labs/sqlpad/pkg/complete"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/leapstack-labs/sqlpad/pkg/adapters/sqlite"
)

type countingSource struct {
	calls  atomic.Int32
	tables []complete.Table
	err    error
}

func (c *countingSource) Load(context.Context) ([]complete.Table, error) {
	c.calls.Add(1)
	return c.tables, c.err
}

func usersSource() *countingSource {
	return &countingSource{tables: []complete.Table{{Name: "users", Columns: []string{"id", "name"}}}}
}

func texts(list []complete.Suggestion) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Text
	}
	return out
}

func TestNew(t *testing.T) {
	s := New(nil)
	_, err := uuid.Parse(s.ID)
	require.NoError(t, err)
	assert.NotNil(t, s.Engine())

	tables, err := s.Tables(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestSuggest_LoadsSchemaOnce(t *testing.T) {
	src := usersSource()
	s := New(src, WithLogger(testutil.NewTestLogger(t)))
	ctx := context.Background()

	assert.Equal(t, []string{"name"}, texts(s.Suggest(ctx, "SELECT users.n", 14)))
	assert.Equal(t, []string{"name"}, texts(s.Suggest(ctx, "SELECT users.n", 14)))
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestEnsureSchema_Concurrent(t *testing.T) {
	src := usersSource()
	s := New(src)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.EnsureSchema(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
}

func TestRefresh(t *testing.T) {
	src := usersSource()
	s := New(src)
	ctx := context.Background()

	require.NoError(t, s.EnsureSchema(ctx))
	src.tables = []complete.Table{{Name: "orders", Columns: []string{"total"}}}
	require.NoError(t, s.Refresh(ctx))

	assert.Equal(t, int32(2), src.calls.Load())
	assert.Equal(t, []string{"total"}, texts(s.Suggest(ctx, "SELECT orders.t", 15)))
}

func TestSuggest_SchemaErrorKeepsKeywords(t *testing.T) {
	src := &countingSource{err: errors.New("connection refused")}
	logger, logs := testutil.NewCaptureLogger()
	s := New(src, WithLogger(logger))
	ctx := context.Background()

	assert.Equal(t, []string{"SELECT"}, texts(s.Suggest(ctx, "sel", 3)))
	assert.Contains(t, logs.String(), "schema unavailable for completion")

	err := s.EnsureSchema(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestEnsureSchema_FailureBackoff(t *testing.T) {
	tests := []struct {
		name      string
		delay     time.Duration
		elapsed   time.Duration
		wantCalls int32
		wantWarns int
	}{
		{name: "within delay reuses failure", delay: time.Minute, elapsed: time.Second, wantCalls: 1, wantWarns: 1},
		{name: "after delay retries", delay: time.Minute, elapsed: 2 * time.Minute, wantCalls: 2, wantWarns: 2},
		{name: "zero delay always retries", delay: 0, elapsed: 0, wantCalls: 2, wantWarns: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &countingSource{err: errors.New("connection refused")}
			logger, logs := testutil.NewCaptureLogger()
			s := New(src, WithLogger(logger), WithRetryDelay(tt.delay))
			clock := time.Unix(0, 0)
			s.now = func() time.Time { return clock }
			ctx := context.Background()

			assert.Equal(t, []string{"SELECT"}, texts(s.Suggest(ctx, "sel", 3)))
			clock = clock.Add(tt.elapsed)
			assert.Equal(t, []string{"SELECT"}, texts(s.Suggest(ctx, "sel", 3)))

			assert.Equal(t, tt.wantCalls, src.calls.Load())
			assert.Equal(t, tt.wantWarns, strings.Count(logs.String(), "schema unavailable for completion"))
			assert.Error(t, s.EnsureSchema(ctx))
		})
	}
}

func TestEnsureSchema_RecoversAfterUpdate(t *testing.T) {
	src := &countingSource{err: errors.New("connection refused")}
	s := New(src, WithRetryDelay(time.Hour))
	ctx := context.Background()

	require.Error(t, s.EnsureSchema(ctx))
	s.UpdateSchema([]complete.Table{{Name: "events", Columns: []string{"kind"}}})

	require.NoError(t, s.EnsureSchema(ctx))
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestRefresh_IgnoresBackoff(t *testing.T) {
	src := &countingSource{err: errors.New("connection refused")}
	s := New(src, WithRetryDelay(time.Hour))
	ctx := context.Background()

	require.Error(t, s.EnsureSchema(ctx))

	src.err = nil
	src.tables = []complete.Table{{Name: "orders", Columns: []string{"total"}}}
	require.NoError(t, s.Refresh(ctx))

	assert.Equal(t, int32(2), src.calls.Load())
	assert.Equal(t, []string{"total"}, texts(s.Suggest(ctx, "SELECT orders.t", 15)))
}

func TestWithMaxSuggestions(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{3, 3},
		{0, 6},
		{50, 6},
	}

	for _, tt := range tests {
		s := New(nil, WithMaxSuggestions(tt.n))
		// "s" matches six vocabulary entries.
		assert.Len(t, s.Suggest(context.Background(), "s", 1), tt.want, "max %d", tt.n)
	}
}

func TestUpdateSchema(t *testing.T) {
	src := usersSource()
	s := New(src)

	s.UpdateSchema([]complete.Table{{Name: "events", Columns: []string{"kind"}}})
	assert.Equal(t, []string{"kind"}, texts(s.Suggest(context.Background(), "SELECT events.k", 15)))
	assert.Equal(t, int32(0), src.calls.Load())
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	adp, err := adapter.Open(ctx, adapter.Config{Type: "sqlite", DSN: ":memory:"}, nil)
	require.NoError(t, err)
	defer func() { _ = adp.Close() }()

	s := New(schema.AdapterSource{Adapter: adp}, WithQuerier(adp))

	// Nothing exists yet.
	assert.NotContains(t, texts(s.Suggest(ctx, "SELECT users.n", 14)), "name")

	buf := "CREATE TABLE users (id INTEGER, name TEXT); INSERT INTO users VALUES (1, 'ada'); SELECT * FROM users"
	_, err = s.Execute(ctx, buf, 5)
	require.NoError(t, err)

	// DDL marks the schema stale.
	assert.Equal(t, []string{"name"}, texts(s.Suggest(ctx, "SELECT users.n", 14)))

	_, err = s.Execute(ctx, buf, 50)
	require.NoError(t, err)

	res, err := s.Execute(ctx, buf, len(buf))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []string{"id", "name"}, res.Columns)
	require.Equal(t, 1, res.RowCount())
	assert.Equal(t, "ada", res.Rows[0][1])
}

func TestExecute_EmptyStatement(t *testing.T) {
	s := New(nil)
	res, err := s.Execute(context.Background(), "SELECT 1;   ;", 11)
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestExecute_NoConnection(t *testing.T) {
	s := New(nil)
	_, err := s.Execute(context.Background(), "SELECT 1", 0)
	assert.ErrorIs(t, err, ErrNoConnection)
}

func TestExecute_QueryError(t *testing.T) {
	ctx := context.Background()
	adp, err := adapter.Open(ctx, adapter.Config{Type: "sqlite"}, nil)
	require.NoError(t, err)
	defer func() { _ = adp.Close() }()

	s := New(nil, WithQuerier(adp))
	_, err = s.Execute(ctx, "SELECT * FROM missing", 0)
	assert.Error(t, err)
}

func TestChangesSchema(t *testing.T) {
	tests := []struct {
		stmt string
		want bool
	}{
		{"CREATE TABLE t (a INT)", true},
		{"  -- note\n drop table t", true},
		{"ALTER TABLE t ADD COLUMN b INT", true},
		{"SELECT 1", false},
		{"INSERT INTO t VALUES (1)", false},
		{"(CREATE)", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, changesSchema(tt.stmt), tt.stmt)
	}
}
