// Package schema loads table and column metadata into completion engines,
// either from a live database adapter or from a YAML snapshot file.
package schema

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/sqlpad/pkg/adapter"
	"github.com/leapstack-labs/sqlpad/pkg/complete"
)

// Source produces a schema snapshot.
type Source interface {
	Load(ctx context.Context) ([]complete.Table, error)
}

// AdapterSource reads the schema from a connected database adapter.
type AdapterSource struct {
	Adapter adapter.Adapter
}

// Load implements Source.
func (s AdapterSource) Load(ctx context.Context) ([]complete.Table, error) {
	tables, err := s.Adapter.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schema from %s: %w", s.Adapter.DialectName(), err)
	}
	return tables, nil
}

// Static is a fixed schema, mostly useful in tests.
type Static []complete.Table

// Load implements Source.
func (s Static) Load(context.Context) ([]complete.Table, error) {
	return s, nil
}
