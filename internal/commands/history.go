package commands

import (
	"github.com/spf13/cobra"

	"github.com/rollbook-dev/rollbook/internal/report"
)

func newHistoryCommand(root *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past uploads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), cmd, *root)
			if err != nil {
				return err
			}
			defer ws.Close()

			entries, err := ws.history.Read()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printf(cmd, "No uploads recorded yet\n")
				return nil
			}
			return report.RenderHistory(cmd.OutOrStdout(), entries)
		},
	}
}
