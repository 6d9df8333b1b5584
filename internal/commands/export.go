package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rollbook-dev/rollbook/internal/report"
)

func newExportCommand(root *string) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export attendance records to CSV or Excel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case report.FormatCSV, report.FormatXLSX:
			default:
				return fmt.Errorf("unknown export format %q (want %s or %s)", format, report.FormatCSV, report.FormatXLSX)
			}
			return runExport(cmd, *root, format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", report.FormatCSV, "export format: csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <export dir>/attendance_export_<timestamp>.<format>)")

	return cmd
}

func runExport(cmd *cobra.Command, root, format, output string) error {
	ws, err := openWorkspace(cmd.Context(), cmd, root)
	if err != nil {
		return err
	}
	defer ws.Close()

	if output == "" {
		output = filepath.Join(ws.path(ws.cfg.Export.Dir), report.DefaultExportName(format, time.Now()))
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	records, err := ws.store.Records(cmd.Context())
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if format == report.FormatXLSX {
		stats, serr := ws.service.Stats(cmd.Context())
		if serr != nil {
			return serr
		}
		err = report.WriteXLSX(f, records, stats)
	} else {
		err = report.WriteCSV(f, records)
	}
	if err != nil {
		return fmt.Errorf("failed to export data: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}

	ws.log.Info("data exported", "file", output, "records", len(records))
	printf(cmd, "Data exported to %s (%d records)\n", output, len(records))
	return nil
}
