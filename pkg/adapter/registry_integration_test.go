package adapter_test

import (
	"context"
	"testing"

	"github.com/leapstack-labs/sqlpad/pkg/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// Import adapter packages to ensure adapters are registered via init()
	_ "github.com/leapstack-labs/sqlpad/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/sqlpad/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/sqlpad/pkg/adapters/sqlite"
)

func TestSelfRegistration(t *testing.T) {
	for _, name := range []string{"duckdb", "postgres", "sqlite"} {
		assert.True(t, adapter.IsRegistered(name), "%s adapter should be auto-registered", name)
	}
}

func TestListAdapters(t *testing.T) {
	adapters := adapter.ListAdapters()

	assert.Contains(t, adapters, "duckdb", "duckdb should be in adapter list")
	assert.Contains(t, adapters, "postgres", "postgres should be in adapter list")
	assert.Contains(t, adapters, "sqlite", "sqlite should be in adapter list")
	assert.IsNonDecreasing(t, adapters, "adapter list should be sorted")
}

func TestIsRegistered(t *testing.T) {
	tests := []struct {
		name        string
		adapterName string
		expected    bool
	}{
		{"duckdb registered", "duckdb", true},
		{"postgres registered", "postgres", true},
		{"sqlite registered", "sqlite", true},
		{"unknown not registered", "unknown_db", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.IsRegistered(tt.adapterName)
			assert.Equal(t, tt.expected, got, "IsRegistered(%q)", tt.adapterName)
		})
	}
}

func TestGet(t *testing.T) {
	factory, ok := adapter.Get("sqlite")
	require.True(t, ok, "Get(sqlite) should return true")
	require.NotNil(t, factory, "Get(sqlite) should return non-nil factory")

	_, ok = adapter.Get("nonexistent")
	assert.False(t, ok, "Get(nonexistent) should return false")
}

func TestNewAdapter_Success(t *testing.T) {
	adp, err := adapter.NewAdapter(adapter.Config{Type: "sqlite"}, nil)
	require.NoError(t, err, "NewAdapter(sqlite) failed")
	require.NotNil(t, adp, "NewAdapter(sqlite) returned nil adapter")
	assert.Equal(t, "sqlite", adp.DialectName())
}

func TestNewAdapter_UnknownType(t *testing.T) {
	_, err := adapter.NewAdapter(adapter.Config{Type: "unknown_adapter"}, nil)
	require.Error(t, err, "NewAdapter(unknown_adapter) should fail")

	var unknownErr *adapter.UnknownAdapterError
	require.ErrorAs(t, err, &unknownErr)

	assert.Equal(t, "unknown_adapter", unknownErr.Type, "error type")
	assert.Contains(t, unknownErr.Available, "sqlite", "Available adapters should include sqlite")
}

func TestOpen_SQLiteInMemory(t *testing.T) {
	ctx := context.Background()

	adp, err := adapter.Open(ctx, adapter.Config{Type: "sqlite", DSN: ":memory:"}, nil)
	require.NoError(t, err)
	defer func() { _ = adp.Close() }()

	require.NoError(t, adp.Exec(ctx, "CREATE TABLE users (id INTEGER, name TEXT)"))

	tables, err := adp.Tables(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "users", tables[0].Name)
	assert.Equal(t, []string{"id", "name"}, tables[0].Columns)
}

func TestOpen_UnknownType(t *testing.T) {
	_, err := adapter.Open(context.Background(), adapter.Config{Type: "nope"}, nil)

	var unknownErr *adapter.UnknownAdapterError
	assert.ErrorAs(t, err, &unknownErr)
}
