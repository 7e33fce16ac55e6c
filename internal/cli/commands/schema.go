package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlpad/internal/render"
	"github.com/leapstack-labs/sqlpad/internal/schema"
	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema command group.
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect and snapshot the completion schema",
	}
	cmd.AddCommand(newSchemaTablesCommand())
	cmd.AddCommand(newSchemaDumpCommand())
	return cmd
}

func newSchemaTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables and columns used for completion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			sess, cleanup, err := cmdCtx.OpenSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			tables, err := sess.Tables(cmd.Context())
			if err != nil {
				return err
			}
			return render.Tables(cmd.OutOrStdout(), tables, cmdCtx.Format)
		},
	}
}

func newSchemaDumpCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the connection's schema as a YAML snapshot",
		Long: `Load table and column metadata from the configured connection and
write it in the schema_file format, so completion works offline.`,
		Example: `  sqlpad schema dump --driver postgres --dsn "$DATABASE_URL" -f schema.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			sess, cleanup, err := cmdCtx.OpenSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			tables, err := sess.Tables(cmd.Context())
			if err != nil {
				return err
			}

			if out != "" {
				if err := schema.Save(out, tables); err != nil {
					return err
				}
				cmdCtx.Logger.Info("schema written", slog.String("path", out), slog.Int("tables", len(tables)))
				return nil
			}

			data, err := schema.Marshal(tables)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "file", "f", "", "Write to this file instead of stdout")

	return cmd
}
