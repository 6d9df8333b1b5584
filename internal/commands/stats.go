package commands

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rollbook-dev/rollbook/internal/report"
)

type statsJSON struct {
	CourseCode string          `json:"course_code"`
	CourseName string          `json:"course_name"`
	Present    int             `json:"present"`
	Absent     int             `json:"absent"`
	Total      int             `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
}

func newStatsCommand(root *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-course attendance statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), cmd, *root)
			if err != nil {
				return err
			}
			defer ws.Close()

			stats, err := ws.service.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if !asJSON {
				return report.RenderStats(cmd.OutOrStdout(), stats)
			}

			out := make([]statsJSON, 0, len(stats))
			for _, s := range stats {
				out = append(out, statsJSON{
					CourseCode: s.Code,
					CourseName: s.Name,
					Present:    s.Present,
					Absent:     s.Absent,
					Total:      s.Total,
					Percentage: s.Percentage,
				})
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("encoding stats: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")

	return cmd
}
