package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Database.Path = "data/attendance.db"
	cfg.Logging.Level = "debug"

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "attendance.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "file", cfg.Logging.Output)
	assert.Equal(t, "logs/rollbook.log", cfg.Logging.FilePath)
	assert.Equal(t, "S.No", cfg.Parser.HeaderPrefix)
	assert.Equal(t, "import", cfg.Import.Dir)
	assert.Equal(t, "exports", cfg.Export.Dir)
	assert.Equal(t, "backups", cfg.Backup.Dir)
	require.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("database:\n  path: other.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "S.No", cfg.Parser.HeaderPrefix)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	t.Setenv("ROLLBOOK_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("ROLLBOOK_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: chatty\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Logging.Level")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "path: attendance.db")
	assert.Contains(t, contents, "header_prefix: S.No")
	assert.Contains(t, contents, "file_path: logs/rollbook.log")
}

func TestResolve(t *testing.T) {
	assert.Equal(t, filepath.Join("/work", "attendance.db"), Resolve("/work", "attendance.db"))
	assert.Equal(t, "/abs/attendance.db", Resolve("/work", "/abs/attendance.db"))
}
