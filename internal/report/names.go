package report

import (
	"fmt"
	"strings"
	"time"
)

const stampFormat = "20060102_150405"

var filenameReplacer = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// SanitizeFilename replaces characters that are invalid in file names on
// common platforms with underscores.
func SanitizeFilename(name string) string {
	return filenameReplacer.Replace(name)
}

// DefaultExportName returns attendance_export_YYYYMMDD_HHMMSS.<format>.
func DefaultExportName(format string, now time.Time) string {
	return SanitizeFilename(fmt.Sprintf("attendance_export_%s.%s", now.Format(stampFormat), format))
}

// DefaultBackupName returns attendance_backup_YYYYMMDD_HHMMSS.db.
func DefaultBackupName(now time.Time) string {
	return SanitizeFilename(fmt.Sprintf("attendance_backup_%s.db", now.Format(stampFormat)))
}
