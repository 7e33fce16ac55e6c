// Package adapter provides the database contract used by sqlpad to load
// schema snapshots for completion and to run the statement under the cursor.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves from init().
package adapter

import (
	"context"
	"database/sql"

	"github.com/leapstack-labs/sqlpad/pkg/complete"
)

// Config describes one database connection.
type Config struct {
	// Type is the registered adapter name: postgres, duckdb or sqlite.
	Type string `koanf:"driver"`

	// DSN is the driver-specific connection string or database path.
	DSN string `koanf:"dsn"`

	// Schema restricts metadata loading. Empty uses the adapter default.
	Schema string `koanf:"schema"`

	// Options holds adapter-specific session settings.
	Options map[string]string `koanf:"options"`
}

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// DialectName returns the adapter's registered name.
	DialectName() string

	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows. The caller closes them.
	Query(ctx context.Context, sql string) (*sql.Rows, error)

	// Tables returns every table in the configured schema with its columns
	// in ordinal order. Tables are sorted by name.
	Tables(ctx context.Context) ([]complete.Table, error)
}
