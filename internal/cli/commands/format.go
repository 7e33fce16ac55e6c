package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/sqlpad/pkg/format"
	"github.com/spf13/cobra"
)

// FormatOptions holds options for the format command.
type FormatOptions struct {
	Write bool
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	opts := &FormatOptions{}

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Format SQL",
		Long: `Reformat SQL with one major clause per line and indented select lists.

Reads the file given as argument, or stdin when it is piped. Comments are
preserved; text the lexer cannot classify is passed through unchanged.`,
		Example: `  # Format a file to stdout
  sqlpad format query.sql

  # Rewrite the file in place with lowercase keywords
  sqlpad format -w --keyword-case lower query.sql

  # Format piped input
  echo "select a,b from t where a=1" | sqlpad format`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write the result back to the file")
	cmd.Flags().String("keyword-case", "upper", "Keyword case: upper or lower")
	cmd.Flags().Int("indent", format.DefaultIndentSize, "Spaces per indent level")

	_ = cmd.RegisterFlagCompletionFunc("keyword-case", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"upper", "lower"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, opts *FormatOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if opts.Write && (len(args) == 0 || args[0] == "-") {
		return errors.New("--write requires a file argument")
	}

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	out := format.SQL(input, cmdCtx.Cfg.FormatOptions()...)

	if opts.Write {
		info, err := os.Stat(args[0])
		if err != nil {
			return fmt.Errorf("failed to stat file: %w", err)
		}
		if err := os.WriteFile(args[0], []byte(out+"\n"), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		cmdCtx.Logger.Debug("formatted file", slog.String("path", args[0]))
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
