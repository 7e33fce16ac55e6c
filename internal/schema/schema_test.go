package schema

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/sqlpad/internal/testutil"
	"github.com/leapstack-labs/sqlpad/pkg/adapter"
	"github.com/leapstack-labs/sqlpad/pkg/complete"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/leapstack-labs/sqlpad/pkg/adapters/sqlite"
)

const usersYAML = `tables:
  - name: users
    columns: [id, name]
  - name: orders
    columns:
      - id
      - total
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []complete.Table
		wantErr string
	}{
		{
			name:  "flow and block columns",
			input: usersYAML,
			want: []complete.Table{
				{Name: "users", Columns: []string{"id", "name"}},
				{Name: "orders", Columns: []string{"id", "total"}},
			},
		},
		{
			name:  "empty document",
			input: "",
			want:  nil,
		},
		{
			name:  "table without columns",
			input: "tables:\n  - name: empty\n",
			want:  []complete.Table{{Name: "empty"}},
		},
		{
			name:    "missing name",
			input:   "tables:\n  - columns: [a]\n",
			wantErr: "table 0 has no name",
		},
		{
			name:    "not yaml",
			input:   "tables: [",
			wantErr: "yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	writeFile(t, path, usersYAML)

	tables, err := FileSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "users", tables[0].Name)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.yaml")}.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read schema file")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	want := []complete.Table{
		{Name: "users", Columns: []string{"id", "name"}},
		{Name: "orders", Columns: []string{"id"}},
	}

	require.NoError(t, Save(path, want))

	got, err := FileSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAdapterSource(t *testing.T) {
	ctx := context.Background()
	adp, err := adapter.Open(ctx, adapter.Config{Type: "sqlite", DSN: ":memory:"}, testutil.NewTestLogger(t))
	require.NoError(t, err)
	defer func() { _ = adp.Close() }()

	require.NoError(t, adp.Exec(ctx, "CREATE TABLE users (id INTEGER, name TEXT)"))

	tables, err := AdapterSource{Adapter: adp}.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []complete.Table{{Name: "users", Columns: []string{"id", "name"}}}, tables)

	require.NoError(t, adp.Close())
	_, err = AdapterSource{Adapter: adp}.Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load schema from sqlite")
}

func TestStatic(t *testing.T) {
	s := Static{{Name: "t", Columns: []string{"a"}}}
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []complete.Table{{Name: "t", Columns: []string{"a"}}}, got)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	writeFile(t, path, usersYAML)

	w, err := NewWatcher(path, testutil.NewTestLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan []complete.Table, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(tables []complete.Table) { changes <- tables })
	}()

	// Unrelated files in the same directory are ignored.
	writeFile(t, filepath.Join(dir, "other.yaml"), "tables: []\n")
	writeFile(t, path, "tables:\n  - name: products\n    columns: [sku]\n")

	timeout := time.After(5 * time.Second)
	for {
		select {
		case tables := <-changes:
			if len(tables) == 1 && tables[0].Name == "products" {
				cancel()
				require.NoError(t, <-done)
				return
			}
		case <-timeout:
			cancel()
			t.Fatal("schema change was not delivered")
		}
	}
}

func TestWatcher_SkipsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	writeFile(t, path, usersYAML)

	logger, logs := testutil.NewCaptureLogger()
	w, err := NewWatcher(path, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []complete.Table, 16)
	go func() { _ = w.Run(ctx, func(tables []complete.Table) { changes <- tables }) }()

	writeFile(t, path, "tables:\n  - columns: [a]\n")

	assert.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "schema reload failed")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Empty(t, changes)
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "schema.yaml"), nil)
	assert.Error(t, err)
}
