// Package config provides configuration management for the sqlpad CLI.
//
// Settings are layered from defaults, the sqlpad.yaml file, SQLPAD_*
// environment variables and explicitly set flags, in increasing precedence.
package config

import (
	"github.com/leapstack-labs/sqlpad/pkg/adapter"
	"github.com/leapstack-labs/sqlpad/pkg/complete"
	"github.com/leapstack-labs/sqlpad/pkg/format"
)

// Config holds all CLI configuration options.
type Config struct {
	Format      FormatConfig   `koanf:"format"`
	Complete    CompleteConfig `koanf:"complete"`
	Connection  adapter.Config `koanf:"connection"`
	SchemaFile  string         `koanf:"schema_file"`
	WatchSchema bool           `koanf:"watch_schema"`
	HistoryFile string         `koanf:"history_file"`
	Output      string         `koanf:"output"`
	Color       string         `koanf:"color"`
	Verbose     bool           `koanf:"verbose"`
}

// FormatConfig holds formatter settings.
type FormatConfig struct {
	KeywordCase string `koanf:"keyword_case"`
	IndentSize  int    `koanf:"indent_size"`
}

// CompleteConfig holds completion settings.
type CompleteConfig struct {
	MaxSuggestions int `koanf:"max_suggestions"`
}

// Default configuration values.
const (
	DefaultKeywordCase = "upper"
	DefaultOutput      = "table"
	DefaultColor       = "auto"
	DefaultHistoryFile = ".sqlpad_history"
)

// HasConnection reports whether a database driver is configured.
func (c *Config) HasConnection() bool {
	return c.Connection.Type != ""
}

// FormatOptions converts the format section into formatter options.
// Call Validate first; an unparsable keyword case falls back to upper.
func (c *Config) FormatOptions() []format.Option {
	kc, err := format.ParseKeywordCase(c.Format.KeywordCase)
	if err != nil {
		kc = format.Upper
	}
	return []format.Option{
		format.WithKeywordCase(kc),
		format.WithIndentSize(c.Format.IndentSize),
	}
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		Format: FormatConfig{
			KeywordCase: DefaultKeywordCase,
			IndentSize:  format.DefaultIndentSize,
		},
		Complete: CompleteConfig{MaxSuggestions: complete.MaxSuggestions},
		Output:   DefaultOutput,
		Color:    DefaultColor,
	}
}
