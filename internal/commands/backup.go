package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rollbook-dev/rollbook/internal/report"
)

func newBackupCommand(root *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a consistent copy of the attendance database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), cmd, *root)
			if err != nil {
				return err
			}
			defer ws.Close()

			dest := output
			if dest == "" {
				dest = filepath.Join(ws.path(ws.cfg.Backup.Dir), report.DefaultBackupName(time.Now()))
			}
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return fmt.Errorf("creating backup dir: %w", err)
			}

			if err := ws.store.Backup(cmd.Context(), dest); err != nil {
				return fmt.Errorf("failed to backup database: %w", err)
			}

			ws.log.Info("database backed up", "file", dest)
			printf(cmd, "Database backed up to %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "backup file (default: <backup dir>/attendance_backup_<timestamp>.db)")

	return cmd
}
