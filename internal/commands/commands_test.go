package commands_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rollbook-dev/rollbook/internal/commands"
	"github.com/rollbook-dev/rollbook/internal/courses"
	"github.com/rollbook-dev/rollbook/internal/history"
)

const roster = "S.No.\tCourse Code\tCourse Name\tattendance\n" +
	"1 \t16242101\tTransforms and Vector Calculus\tPresent\n" +
	"2 \t16242103\tDatabase Management System\tAbsent\n" +
	"3 \t16242999\tUnknown Course\tPresent\n"

func runRollbook(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func initWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runRollbook(t, "", "init", dir)
	require.NoError(t, err)
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, err := runRollbook(t, "", "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized rollbook workspace")
	assert.Contains(t, out, "13 courses")

	for _, d := range []string{"logs", "import", filepath.Join("import", "processed"), "exports", "backups"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
	for _, f := range []string{"rollbook.yaml", "courses.csv", "attendance.db", ".gitignore"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "file %s should exist", f)
	}

	table, err := courses.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, courses.Default().Codes(), table.Codes())
}

func TestInit_UsesDirFlag(t *testing.T) {
	cwd := t.TempDir()
	prevWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(cwd))
	t.Cleanup(func() { _ = os.Chdir(prevWd) })

	dir := t.TempDir()
	_, err = runRollbook(t, "", "-C", dir, "init")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "rollbook.yaml"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(cwd, "rollbook.yaml"))
	assert.True(t, os.IsNotExist(err), "nothing should be written to the working directory")

	out, err := runRollbook(t, roster, "-C", dir, "upload")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2 attendance records")
}

func TestInit_PositionalDirWins(t *testing.T) {
	flagDir, argDir := t.TempDir(), t.TempDir()
	_, err := runRollbook(t, "", "-C", flagDir, "init", argDir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(argDir, "rollbook.yaml"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(flagDir, "rollbook.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestInit_RefusesExisting(t *testing.T) {
	dir := initWorkspace(t)
	_, err := runRollbook(t, "", "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runRollbook(t, "", "init", dir, "--force")
	assert.NoError(t, err)
}

func TestNotInitialized(t *testing.T) {
	_, err := runRollbook(t, "", "stats", "-C", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run 'rollbook init' first")
}

func TestUpload_Stdin(t *testing.T) {
	dir := initWorkspace(t)
	out, err := runRollbook(t, roster, "upload", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2 attendance records")
	assert.Contains(t, out, "-001)")
	assert.Contains(t, out, "Skipped 1 unrecognised lines")

	out, err = runRollbook(t, roster, "upload", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "-002)")

	entries, err := history.New(dir).Read()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "stdin", entries[0].Source)
}

func TestUpload_File(t *testing.T) {
	dir := initWorkspace(t)
	out, err := runRollbook(t, "", "upload", "-C", dir, "../../testdata/roster.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 3 attendance records")

	entries, err := history.New(dir).Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "roster.csv", entries[0].Source)
}

func TestUpload_NoValidData(t *testing.T) {
	dir := initWorkspace(t)
	_, err := runRollbook(t, "2\t16242999\tUnknown Course\tAbsent\n", "upload", "-C", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid data found")
}

func TestStats(t *testing.T) {
	dir := initWorkspace(t)
	_, err := runRollbook(t, roster, "upload", "-C", dir)
	require.NoError(t, err)

	out, err := runRollbook(t, "", "stats", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Course Code")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "0.0%")
}

func TestStats_JSON(t *testing.T) {
	dir := initWorkspace(t)
	_, err := runRollbook(t, roster, "upload", "-C", dir)
	require.NoError(t, err)
	_, err = runRollbook(t, strings.Replace(roster, "\tPresent\n", "\tAbsent\n", 1), "upload", "-C", dir)
	require.NoError(t, err)

	out, err := runRollbook(t, "", "stats", "-C", dir, "--json")
	require.NoError(t, err)

	var stats []struct {
		CourseCode string          `json:"course_code"`
		Present    int             `json:"present"`
		Absent     int             `json:"absent"`
		Total      int             `json:"total"`
		Percentage decimal.Decimal `json:"percentage"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	require.Len(t, stats, 13)
	assert.Equal(t, "16242101", stats[0].CourseCode)
	assert.Equal(t, 1, stats[0].Present)
	assert.Equal(t, 1, stats[0].Absent)
	assert.Equal(t, "50.0", stats[0].Percentage.StringFixed(1))
	assert.Equal(t, "NEC00076", stats[12].CourseCode)
	assert.Zero(t, stats[12].Total)
}

func TestExport_CSV(t *testing.T) {
	dir := initWorkspace(t)
	_, err := runRollbook(t, roster, "upload", "-C", dir)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	out, err := runRollbook(t, "", "export", "-C", dir, "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Data exported to")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Course Code", "Course Name", "Date", "Status"}, rows[0])
	assert.Equal(t, "16242101", rows[1][0])
	assert.Equal(t, "Absent", rows[2][3])
}

func TestExport_XLSXDefaultPath(t *testing.T) {
	dir := initWorkspace(t)
	_, err := runRollbook(t, roster, "upload", "-C", dir)
	require.NoError(t, err)

	_, err = runRollbook(t, "", "export", "-C", dir, "--format", "xlsx")
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "exports", "attendance_export_*.xlsx"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	f, err := excelize.OpenFile(matches[0])
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Attendance", "Statistics"}, f.GetSheetList())
}

func TestExport_UnknownFormat(t *testing.T) {
	dir := initWorkspace(t)
	_, err := runRollbook(t, "", "export", "-C", dir, "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func TestBackup(t *testing.T) {
	dir := initWorkspace(t)
	_, err := runRollbook(t, roster, "upload", "-C", dir)
	require.NoError(t, err)

	out, err := runRollbook(t, "", "backup", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Database backed up to")

	matches, err := filepath.Glob(filepath.Join(dir, "backups", "attendance_backup_*.db"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestImport(t *testing.T) {
	dir := initWorkspace(t)
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "monday.txt"), []byte(roster), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "junk.txt"), []byte("nothing here\n"), 0o644))

	out, err := runRollbook(t, "", "import", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "monday.txt: added 2 records")
	assert.Contains(t, out, "junk.txt: no valid data found")
	assert.Contains(t, out, "Imported 1 of 2 files, 2 records")

	_, err = os.Stat(filepath.Join(importDir, "processed", "monday.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(importDir, "junk.txt"))
	assert.NoError(t, err)
}

func TestImport_Empty(t *testing.T) {
	dir := initWorkspace(t)
	out, err := runRollbook(t, "", "import", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No roster files")
}

func TestCourses(t *testing.T) {
	dir := initWorkspace(t)
	out, err := runRollbook(t, "", "courses", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "16242101")
	assert.Contains(t, out, "NEC00076")
}

func TestHistory(t *testing.T) {
	dir := initWorkspace(t)
	out, err := runRollbook(t, "", "history", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No uploads recorded yet")

	_, err = runRollbook(t, roster, "upload", "-C", dir)
	require.NoError(t, err)
	out, err = runRollbook(t, "", "history", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "-001")
	assert.Contains(t, out, "stdin")
}
