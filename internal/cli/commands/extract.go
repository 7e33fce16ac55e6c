package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlpad/pkg/statement"
	"github.com/spf13/cobra"
)

// ExtractOptions holds options for the extract command.
type ExtractOptions struct {
	Cursor string
	All    bool
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Print the statement under the cursor",
		Long: `Print the semicolon-delimited statement that contains the cursor,
trimmed of surrounding whitespace.

The cursor is a byte offset, LINE:COL (1-based) or "end".`,
		Example: `  # Statement on line 12
  sqlpad extract --cursor 12:1 script.sql

  # Every statement, one per block
  sqlpad extract --all script.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Cursor, "cursor", "c", "end", "Cursor position: OFFSET, LINE:COL or end")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Print every statement")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, opts *ExtractOptions) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if opts.All {
		for _, stmt := range statement.Split(input) {
			if _, err := fmt.Fprintf(out, "%s;\n", stmt); err != nil {
				return err
			}
		}
		return nil
	}

	cursor, err := parseCursor(opts.Cursor, input)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, statement.Current(input, cursor))
	return err
}
