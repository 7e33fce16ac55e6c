package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlpad/internal/highlight"
	"github.com/spf13/cobra"
)

// NewHighlightCommand creates the highlight command.
func NewHighlightCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "highlight [file]",
		Short: "Print SQL with syntax colours",
		Long: `Print SQL coloured by token kind: keywords cyan, strings green,
numbers yellow, comments grey, operators magenta.

Use --color always to keep colours when piping.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			mode, err := highlight.ParseColorMode(cmdCtx.Cfg.Color)
			if err != nil {
				return err
			}
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			theme := highlight.DefaultTheme(highlight.NewRenderer(out, mode))
			_, err = fmt.Fprint(out, highlight.SQL(input, theme))
			return err
		},
	}
}
