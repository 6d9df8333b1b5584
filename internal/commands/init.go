package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rollbook-dev/rollbook/internal/config"
	"github.com/rollbook-dev/rollbook/internal/courses"
	"github.com/rollbook-dev/rollbook/internal/importer"
	"github.com/rollbook-dev/rollbook/internal/store"
)

func newInitCommand(root *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new rollbook workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := *root
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing rollbook.yaml and courses.csv")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists in %s (use --force to overwrite)", config.FileName, dir)
	}

	cfg := config.Default()

	// Create directory structure.
	dirs := []string{
		"logs",
		cfg.Import.Dir,
		filepath.Join(cfg.Import.Dir, importer.ProcessedDir),
		cfg.Export.Dir,
		cfg.Backup.Dir,
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	table := courses.Default()
	if err := table.Save(dir); err != nil {
		return fmt.Errorf("writing course table: %w", err)
	}

	// Create the database and seed the course table.
	st, err := store.Open(cmd.Context(), config.Resolve(dir, cfg.Database.Path))
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.SyncCourses(cmd.Context(), table.All()); err != nil {
		return err
	}

	gitignore := cfg.Database.Path + "\n" + cfg.Export.Dir + "/\n" + cfg.Backup.Dir + "/\nlogs/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	printf(cmd, "Initialized rollbook workspace at %s (%d courses)\n", dir, table.Len())
	return nil
}
