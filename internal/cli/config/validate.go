package config

import (
	"fmt"

	"github.com/leapstack-labs/sqlpad/internal/highlight"
	"github.com/leapstack-labs/sqlpad/internal/render"
	"github.com/leapstack-labs/sqlpad/pkg/adapter"
	"github.com/leapstack-labs/sqlpad/pkg/complete"
	"github.com/leapstack-labs/sqlpad/pkg/format"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := format.ParseKeywordCase(c.Format.KeywordCase); err != nil {
		return fmt.Errorf("format.keyword_case: %w", err)
	}
	if c.Format.IndentSize < 0 {
		return fmt.Errorf("format.indent_size must not be negative, got %d", c.Format.IndentSize)
	}
	if n := c.Complete.MaxSuggestions; n < 1 || n > complete.MaxSuggestions {
		return fmt.Errorf("complete.max_suggestions must be between 1 and %d, got %d", complete.MaxSuggestions, n)
	}
	if _, err := render.ParseFormat(c.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if _, err := highlight.ParseColorMode(c.Color); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	return c.ValidateConnection()
}

// ValidateConnection checks that a configured driver is registered.
// An empty driver is valid and means no database.
func (c *Config) ValidateConnection() error {
	if c.Connection.Type == "" {
		return nil
	}
	if !adapter.IsRegistered(c.Connection.Type) {
		return &adapter.UnknownAdapterError{
			Type:      c.Connection.Type,
			Available: adapter.ListAdapters(),
		}
	}
	return nil
}
