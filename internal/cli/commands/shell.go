package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/leapstack-labs/sqlpad/internal/repl"
	"github.com/leapstack-labs/sqlpad/internal/schema"
	"github.com/leapstack-labs/sqlpad/internal/session"
	"github.com/leapstack-labs/sqlpad/pkg/complete"
	"github.com/spf13/cobra"
)

// ShellOptions holds options for the shell command.
type ShellOptions struct {
	Command string
}

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	opts := &ShellOptions{}

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive SQL shell with completion",
		Long: `Start an interactive shell against the configured connection.

Statements run when a line ends with ';'. Tab completes keywords, functions,
tables and columns. Type .help for the dot-commands.

With watch_schema enabled and a schema_file set, edits to the schema file
are picked up without restarting.`,
		Example: `  # Shell against a local SQLite database
  sqlpad shell --driver sqlite --dsn app.db

  # Run statements and exit
  sqlpad shell --driver duckdb -c "CREATE TABLE t (a INT); SELECT * FROM t"

  # Run a script from stdin
  sqlpad shell --driver sqlite --dsn app.db < migrate.sql`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Command, "command", "c", "", "Run the given statements and exit")

	return cmd
}

func runShell(cmd *cobra.Command, opts *ShellOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sess, cleanup, err := cmdCtx.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	shell := repl.New(sess, repl.Config{
		HistoryFile:   cmdCtx.Cfg.HistoryFile,
		Format:        cmdCtx.Format,
		FormatOptions: cmdCtx.Cfg.FormatOptions(),
	}, cmd.OutOrStdout(), cmd.ErrOrStderr(), cmdCtx.Logger)

	// Batch input: -c or piped stdin
	if opts.Command != "" {
		return shell.Batch(ctx, opts.Command)
	}
	if !stdinIsTerminal(cmd) {
		input, err := readInput(cmd, []string{"-"})
		if err != nil {
			return err
		}
		return shell.Batch(ctx, input)
	}

	if cmdCtx.Cfg.WatchSchema {
		startSchemaWatch(ctx, cmdCtx, sess)
	}
	return shell.Run(ctx)
}

// startSchemaWatch reloads the session schema whenever schema_file changes.
func startSchemaWatch(ctx context.Context, cmdCtx *CommandContext, sess *session.Session) {
	path := cmdCtx.Cfg.SchemaFile
	if path == "" {
		cmdCtx.Logger.Warn("watch_schema is set but schema_file is empty; not watching")
		return
	}

	go func() {
		err := schema.Watch(ctx, path, cmdCtx.Logger, func(tables []complete.Table) {
			sess.UpdateSchema(tables)
			cmdCtx.Logger.Info("schema reloaded", slog.String("path", path), slog.Int("tables", len(tables)))
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			cmdCtx.Logger.Warn("schema watch stopped", slog.Any("error", err))
		}
	}()
}

func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && isTerminal(f)
}
