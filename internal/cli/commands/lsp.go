package commands

import (
	"context"

	"github.com/leapstack-labs/sqlpad/internal/lsp"
	"github.com/spf13/cobra"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run a language server on stdio",
		Long: `Serve completion and formatting to editors over the Language Server
Protocol. Messages are read from stdin and written to stdout; logs go to
stderr.

Completion uses the same schema source as the complete command. Formatting
uses the format section of sqlpad.yaml.`,
		Example: `  # Start the server (usually launched by an editor)
  sqlpad lsp --schema-file schema.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			if cmdCtx.Cfg.WatchSchema {
				startSchemaWatch(ctx, cmdCtx, sess)
			}

			srv := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.Options{
				Session:       sess,
				FormatOptions: cmdCtx.Cfg.FormatOptions(),
				Logger:        cmdCtx.Logger,
				Version:       version,
			})
			return srv.Run(ctx)
		},
	}
}
