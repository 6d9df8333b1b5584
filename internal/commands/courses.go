package commands

import (
	"github.com/spf13/cobra"

	"github.com/rollbook-dev/rollbook/internal/report"
)

func newCoursesCommand(root *string) *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List the known course table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), cmd, *root)
			if err != nil {
				return err
			}
			defer ws.Close()

			return report.RenderCourses(cmd.OutOrStdout(), ws.courses.All())
		},
	}
}
