package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlpad/pkg/adapter"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display sqlpad version and the database drivers compiled in.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sqlpad v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "SQL formatter, completion and shell. Drivers: %v\n", adapter.ListAdapters())
		},
	}
}
