package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollbook-dev/rollbook/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(config.LoggingConfig{Level: "info", Format: "text", Output: "console"}, t.TempDir(), &buf)
	require.NoError(t, err)
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("uploaded", "entries", 5)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=uploaded")
	assert.Contains(t, out, "entries=5")
}

func TestNew_FileJSON(t *testing.T) {
	root := t.TempDir()
	cfg := config.LoggingConfig{Level: "debug", Format: "json", Output: "file", FilePath: "logs/app.log"}

	var console bytes.Buffer
	logger, closeFn, err := New(cfg, root, &console)
	require.NoError(t, err)

	logger.Debug("parsed", "lines", 3)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(filepath.Join(root, "logs", "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"parsed"`)
	assert.Contains(t, string(data), `"lines":3`)
	assert.Empty(t, console.String())
}

func TestNew_Both(t *testing.T) {
	root := t.TempDir()
	cfg := config.LoggingConfig{Level: "info", Format: "text", Output: "both", FilePath: "rollbook.log"}

	var console bytes.Buffer
	logger, closeFn, err := New(cfg, root, &console)
	require.NoError(t, err)

	logger.Warn("storage failure")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(filepath.Join(root, "rollbook.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "storage failure")
	assert.Contains(t, console.String(), "storage failure")
}
