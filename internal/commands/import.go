package commands

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/rollbook-dev/rollbook/internal/attendance"
	"github.com/rollbook-dev/rollbook/internal/importer"
)

func newImportCommand(root *string) *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Record attendance from every roster file in the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, *root, keep)
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "leave imported files in place instead of moving them to processed/")

	return cmd
}

func runImport(cmd *cobra.Command, root string, keep bool) error {
	ws, err := openWorkspace(cmd.Context(), cmd, root)
	if err != nil {
		return err
	}
	defer ws.Close()

	reg := importer.DefaultRegistry()
	dir := ws.path(ws.cfg.Import.Dir)
	files, err := reg.Scan(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printf(cmd, "No roster files in %s\n", dir)
		return nil
	}

	var imported, records int
	for _, f := range files {
		text, err := reg.ReadFile(f.Path)
		if err != nil {
			ws.log.Error("reading roster file", "file", f.Name, "err", err)
			printf(cmd, "%s: %v\n", f.Name, err)
			continue
		}

		res, err := ws.service.Upload(cmd.Context(), f.Name, text, time.Now())
		if errors.Is(err, attendance.ErrNoValidData) {
			printf(cmd, "%s: no valid data found, left in place\n", f.Name)
			continue
		}
		if err != nil {
			return err
		}

		imported++
		records += res.Count
		printf(cmd, "%s: added %d records (batch %s)\n", f.Name, res.Count, res.BatchID)

		if !keep {
			if err := importer.MarkProcessed(dir, f.Name); err != nil {
				return err
			}
		}
	}

	printf(cmd, "Imported %d of %d files, %d records\n", imported, len(files), records)
	return nil
}
