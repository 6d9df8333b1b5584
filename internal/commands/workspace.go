package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rollbook-dev/rollbook/internal/attendance"
	"github.com/rollbook-dev/rollbook/internal/config"
	"github.com/rollbook-dev/rollbook/internal/courses"
	"github.com/rollbook-dev/rollbook/internal/history"
	"github.com/rollbook-dev/rollbook/internal/logging"
	"github.com/rollbook-dev/rollbook/internal/parser"
	"github.com/rollbook-dev/rollbook/internal/store"
)

// workspace is an opened rollbook directory: config, logger, course table,
// database and the upload service built on them.
type workspace struct {
	root     string
	cfg      *config.Config
	log      *slog.Logger
	closeLog func() error
	courses  *courses.Table
	store    *store.Store
	history  *history.Log
	service  *attendance.Service
}

func openWorkspace(ctx context.Context, cmd *cobra.Command, dir string) (*workspace, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no %s in %s, run 'rollbook init' first", config.FileName, root)
		}
		return nil, err
	}

	log, closeLog, err := logging.New(cfg.Logging, root, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}
	ws := &workspace{root: root, cfg: cfg, log: log, closeLog: closeLog}

	ws.courses, err = courses.Load(root)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("course table missing, using built-in courses", "file", courses.FileName)
		ws.courses, err = courses.Default(), nil
	}
	if err != nil {
		ws.Close()
		return nil, err
	}

	ws.store, err = store.Open(ctx, ws.path(cfg.Database.Path))
	if err != nil {
		ws.Close()
		return nil, err
	}
	if err := ws.store.SyncCourses(ctx, ws.courses.All()); err != nil {
		ws.Close()
		return nil, err
	}

	var opts []parser.Option
	if cfg.Parser.HeaderPrefix != "" {
		opts = append(opts, parser.WithHeaderPrefix(cfg.Parser.HeaderPrefix))
	}
	ws.history = history.New(root)
	ws.service = attendance.NewService(ws.courses, parser.New(ws.courses, opts...), ws.store, ws.history, log)

	log.Debug("workspace opened", "root", root, "courses", ws.courses.Len())
	return ws, nil
}

// path resolves a configured path against the workspace root.
func (w *workspace) path(p string) string {
	return config.Resolve(w.root, p)
}

func (w *workspace) Close() error {
	var errs []error
	if w.store != nil {
		errs = append(errs, w.store.Close())
	}
	if w.closeLog != nil {
		errs = append(errs, w.closeLog())
	}
	return errors.Join(errs...)
}
