package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rollbook-dev/rollbook/internal/config"
)

// New builds the application logger. Relative file paths are resolved
// against root. The returned close function releases the log file, if any.
func New(cfg config.LoggingConfig, root string, console io.Writer) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	var out io.Writer
	closeFn := noop
	switch strings.ToLower(cfg.Output) {
	case "file", "both":
		f, err := openLogFile(config.Resolve(root, cfg.FilePath))
		if err != nil {
			return nil, noop, err
		}
		closeFn = f.Close
		out = f
		if strings.EqualFold(cfg.Output, "both") {
			out = io.MultiWriter(console, f)
		}
	default:
		out = console
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler), closeFn, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a config level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
