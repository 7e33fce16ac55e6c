package commands

import (
	"github.com/leapstack-labs/sqlpad/internal/render"
	"github.com/spf13/cobra"
)

// CompleteOptions holds options for the complete command.
type CompleteOptions struct {
	Cursor string
}

// NewCompleteCommand creates the complete command.
func NewCompleteCommand() *cobra.Command {
	opts := &CompleteOptions{}

	cmd := &cobra.Command{
		Use:   "complete [file]",
		Short: "List completions at a cursor position",
		Long: `List the suggestions for the word under the cursor.

Table and column names come from schema_file when it is set, otherwise from
the configured connection. Without either only keywords and functions are
suggested.`,
		Example: `  # Complete at the end of piped input
  echo "SELECT * FROM us" | sqlpad complete

  # Complete at line 3, column 14 against a schema snapshot
  sqlpad complete --schema-file schema.yaml --cursor 3:14 query.sql -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Cursor, "cursor", "c", "end", "Cursor position: OFFSET, LINE:COL or end")

	return cmd
}

func runComplete(cmd *cobra.Command, args []string, opts *CompleteOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	cursor, err := parseCursor(opts.Cursor, input)
	if err != nil {
		return err
	}

	sess, cleanup, err := cmdCtx.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	return render.Suggestions(cmd.OutOrStdout(), sess.Suggest(cmd.Context(), input, cursor), cmdCtx.Format)
}
