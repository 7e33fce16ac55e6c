package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/leapstack-labs/sqlpad/internal/editor"
	"github.com/leapstack-labs/sqlpad/internal/highlight"
	"github.com/spf13/cobra"
)

// EditOptions holds options for the edit command.
type EditOptions struct {
	Save bool
}

// NewEditCommand creates the edit command.
func NewEditCommand() *cobra.Command {
	opts := &EditOptions{}

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Full-screen SQL editor",
		Long: `Open a full-screen editor with highlighting and completion.

Keys:
  tab        complete the word under the cursor
  ↑/↓        choose a suggestion
  esc        close the suggestion list
  ctrl+f     format the buffer
  f5/ctrl+e  run the statement under the cursor
  f1         toggle help
  ctrl+q     quit

A missing file starts empty. With --save the buffer is written back to the
file on exit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Save, "save", "s", false, "Write the buffer to the file on exit")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string, opts *EditOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if opts.Save && len(args) == 0 {
		return errors.New("--save requires a file argument")
	}

	var text string
	if len(args) > 0 {
		content, err := os.ReadFile(args[0])
		switch {
		case err == nil:
			text = string(content)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("failed to read file: %w", err)
		}
	}

	mode, err := highlight.ParseColorMode(cmdCtx.Cfg.Color)
	if err != nil {
		return err
	}

	sess, cleanup, err := cmdCtx.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	final, err := editor.Run(cmd.Context(), sess, editor.Options{
		Text:          text,
		FormatOptions: cmdCtx.Cfg.FormatOptions(),
		Theme:         highlight.DefaultTheme(highlight.NewRenderer(cmd.OutOrStdout(), mode)),
	})
	if err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if opts.Save {
		if err := os.WriteFile(args[0], []byte(final), 0o600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		cmdCtx.Logger.Debug("saved buffer", slog.String("path", args[0]))
	}
	return nil
}
