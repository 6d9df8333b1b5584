package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rollbook-dev/rollbook/internal/attendance"
	"github.com/rollbook-dev/rollbook/internal/importer"
)

const (
	sourceStdin       = "stdin"
	sourceInteractive = "paste"
)

func newUploadCommand(root *string) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "Record attendance from pasted text, stdin or a roster file",
		Long: "Reads a daily attendance roster and appends one record per recognised course.\n" +
			"Without a file argument the roster is read from stdin; --interactive opens a paste form.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				text, source string
				err          error
			)
			switch {
			case interactive:
				source = sourceInteractive
				text, err = promptRoster(cmd.InOrStdin(), cmd.OutOrStdout())
			case len(args) == 1:
				source = filepath.Base(args[0])
				text, err = importer.DefaultRegistry().ReadFile(args[0])
			default:
				source = sourceStdin
				text, err = readAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}
			return runUpload(cmd, *root, source, text)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "paste the roster into an interactive form")

	return cmd
}

func runUpload(cmd *cobra.Command, root, source, text string) error {
	ws, err := openWorkspace(cmd.Context(), cmd, root)
	if err != nil {
		return err
	}
	defer ws.Close()

	res, err := ws.service.Upload(cmd.Context(), source, text, time.Now())
	if err != nil {
		if errors.Is(err, attendance.ErrNoValidData) {
			return err
		}
		ws.log.Error("upload failed", "source", source, "err", err)
		return fmt.Errorf("failed to upload data: %w", err)
	}

	printf(cmd, "Added %d attendance records for %s (batch %s)\n", res.Count, res.At.Format("2006-01-02"), res.BatchID)
	if len(res.Dropped) > 0 {
		printf(cmd, "Skipped %d unrecognised lines\n", len(res.Dropped))
	}
	return nil
}

// promptRoster shows a multi-line paste form and returns what was entered.
func promptRoster(in io.Reader, out io.Writer) (string, error) {
	var text string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Paste today's attendance").
				Description("Copy the roster table from your spreadsheet, including the S.No header if present.").
				Lines(15).
				CharLimit(0).
				Value(&text).
				Validate(func(v string) error {
					if v == "" {
						return fmt.Errorf("please paste attendance data first")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCharm()).WithInput(in).WithOutput(out)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("reading pasted roster: %w", err)
	}
	return text, nil
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
