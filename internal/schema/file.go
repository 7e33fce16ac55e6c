package schema

import (
	"context"
	"fmt"
	"os"

	"github.com/leapstack-labs/sqlpad/pkg/complete"
	"gopkg.in/yaml.v3"
)

// snapshotFile is the on-disk YAML layout:
//
//	tables:
//	  - name: users
//	    columns: [id, name]
type snapshotFile struct {
	Tables []complete.Table `yaml:"tables"`
}

// FileSource reads a YAML schema snapshot.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(context.Context) ([]complete.Table, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	tables, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse schema file %s: %w", s.Path, err)
	}
	return tables, nil
}

// Parse decodes a YAML snapshot. Every table must have a name.
func Parse(data []byte) ([]complete.Table, error) {
	var f snapshotFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	for i, t := range f.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("table %d has no name", i)
		}
	}
	return f.Tables, nil
}

// Save writes tables as a YAML snapshot that FileSource can read back.
func Save(path string, tables []complete.Table) error {
	data, err := Marshal(tables)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write schema file: %w", err)
	}
	return nil
}

// Marshal encodes tables in the snapshot layout.
func Marshal(tables []complete.Table) ([]byte, error) {
	data, err := yaml.Marshal(snapshotFile{Tables: tables})
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return data, nil
}
