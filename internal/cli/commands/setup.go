package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlpad/internal/cli/config"
	"github.com/leapstack-labs/sqlpad/internal/render"
	"github.com/leapstack-labs/sqlpad/internal/schema"
	"github.com/leapstack-labs/sqlpad/internal/session"
	"github.com/leapstack-labs/sqlpad/pkg/adapter"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Format render.Format
}

// NewCommandContext creates a CommandContext from the loaded config.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.GetCurrentConfig()
	f, err := render.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}
	return &CommandContext{
		Cfg:    cfg,
		Logger: config.GetLogger(cmd.Context()),
		Format: f,
	}, nil
}

// OpenSession builds a session from the config. The schema comes from
// schema_file when set and from the connection otherwise. Returns the
// session and a cleanup function that must be called (typically via defer).
func (c *CommandContext) OpenSession(ctx context.Context) (*session.Session, func(), error) {
	opts := []session.Option{
		session.WithLogger(c.Logger),
		session.WithMaxSuggestions(c.Cfg.Complete.MaxSuggestions),
	}
	cleanup := func() {}

	var source schema.Source
	if c.Cfg.SchemaFile != "" {
		source = schema.FileSource{Path: c.Cfg.SchemaFile}
	}

	if c.Cfg.HasConnection() {
		adp, err := adapter.Open(ctx, c.Cfg.Connection, c.Logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open connection: %w", err)
		}
		cleanup = func() { _ = adp.Close() }
		opts = append(opts, session.WithQuerier(adp))
		if source == nil {
			source = schema.AdapterSource{Adapter: adp}
		}
	}

	sess := session.New(source, opts...)
	c.Logger.Debug("session opened",
		slog.String("session", sess.ID),
		slog.String("driver", c.Cfg.Connection.Type),
		slog.String("schema_file", c.Cfg.SchemaFile))
	return sess, cleanup, nil
}
