package commands

import (
	"github.com/leapstack-labs/sqlpad/internal/render"
	"github.com/leapstack-labs/sqlpad/pkg/lexer"
	"github.com/spf13/cobra"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Dump the token stream",
		Long:  `Print every token the lexer produces, whitespace included, with its kind.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return render.Tokens(cmd.OutOrStdout(), lexer.Tokenize(input), cmdCtx.Format)
		},
	}
}
