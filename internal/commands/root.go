package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rollbook-dev/rollbook/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var root string

	rootCmd := &cobra.Command{
		Use:     "rollbook",
		Short:   "Local class attendance tracker",
		Long:    "rollbook records daily class attendance pasted from a spreadsheet and reports per-course statistics.",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&root, "dir", "C", ".", "workspace directory")

	rootCmd.AddCommand(
		newInitCommand(&root),
		newUploadCommand(&root),
		newImportCommand(&root),
		newStatsCommand(&root),
		newExportCommand(&root),
		newBackupCommand(&root),
		newCoursesCommand(&root),
		newHistoryCommand(&root),
	)

	return rootCmd
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
