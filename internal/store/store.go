package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/rollbook-dev/rollbook/internal/id"
	"github.com/rollbook-dev/rollbook/internal/model"
)

// TimeFormat is how capture timestamps are stored.
const TimeFormat = "2006-01-02 15:04:05"

//go:embed migrations/*.sql
var migrations embed.FS

// Store is the local attendance database.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the SQLite database at path and applies
// pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	// DSN pragmas are per connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db.DB, fsys)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SyncCourses upserts the known course table.
func (s *Store) SyncCourses(ctx context.Context, courses []model.Course) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO courses (course_code, course_name) VALUES (?, ?)
ON CONFLICT (course_code) DO UPDATE SET course_name = excluded.course_name`
	for _, c := range courses {
		if _, err := tx.ExecContext(ctx, q, c.Code, c.Name); err != nil {
			return fmt.Errorf("upserting course %s: %w", c.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing courses: %w", err)
	}
	return nil
}

type attendanceRow struct {
	BatchID    string `db:"batch_id"`
	CourseCode string `db:"course_code"`
	RecordedAt string `db:"recorded_at"`
	Status     string `db:"status"`
}

// AppendEntries stores one row per entry, all stamped with at and batchID.
// Either every row is written or none is.
func (s *Store) AppendEntries(ctx context.Context, batchID string, at time.Time, entries []model.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([]attendanceRow, len(entries))
	stamp := at.Format(TimeFormat)
	for i, e := range entries {
		rows[i] = attendanceRow{
			BatchID:    batchID,
			CourseCode: e.CourseCode,
			RecordedAt: stamp,
			Status:     string(e.Status),
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO attendance (batch_id, course_code, recorded_at, status)
VALUES (:batch_id, :course_code, :recorded_at, :status)`
	if _, err := tx.NamedExecContext(ctx, q, rows); err != nil {
		return fmt.Errorf("inserting attendance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing attendance: %w", err)
	}
	return nil
}

// NextBatchSeq returns the next free batch sequence number for day.
func (s *Store) NextBatchSeq(ctx context.Context, day time.Time) (int, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids,
		`SELECT DISTINCT batch_id FROM attendance WHERE batch_id LIKE ?`, id.DayPrefix(day)+"%")
	if err != nil {
		return 0, fmt.Errorf("listing batches: %w", err)
	}

	maxSeq := 0
	for _, b := range ids {
		_, seq, err := id.ParseBatchID(b)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

type statsRow struct {
	Code    string `db:"course_code"`
	Name    string `db:"course_name"`
	Present int    `db:"present"`
	Absent  int    `db:"absent"`
	Total   int    `db:"total"`
}

// Stats aggregates attendance per course, ordered by course code. Courses
// without any records are included with zero counts.
func (s *Store) Stats(ctx context.Context) ([]model.CourseStats, error) {
	const q = `SELECT
    c.course_code,
    c.course_name,
    COALESCE(SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END), 0) AS present,
    COALESCE(SUM(CASE WHEN a.status = 'Absent' THEN 1 ELSE 0 END), 0) AS absent,
    COUNT(a.id) AS total
FROM courses c
LEFT JOIN attendance a ON c.course_code = a.course_code
GROUP BY c.course_code, c.course_name
ORDER BY c.course_code`

	var rows []statsRow
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}

	stats := make([]model.CourseStats, len(rows))
	for i, r := range rows {
		stats[i] = model.CourseStats{
			Code:       r.Code,
			Name:       r.Name,
			Present:    r.Present,
			Absent:     r.Absent,
			Total:      r.Total,
			Percentage: model.PercentageOf(r.Present, r.Total),
		}
	}
	return stats, nil
}

type recordRow struct {
	ID         int64  `db:"id"`
	BatchID    string `db:"batch_id"`
	CourseCode string `db:"course_code"`
	CourseName string `db:"course_name"`
	RecordedAt string `db:"recorded_at"`
	Status     string `db:"status"`
}

// Records returns every stored record ordered by course code, then capture time.
func (s *Store) Records(ctx context.Context) ([]model.Record, error) {
	const q = `SELECT a.id, a.batch_id, a.course_code, c.course_name, a.recorded_at, a.status
FROM attendance a
JOIN courses c ON c.course_code = a.course_code
ORDER BY a.course_code, a.recorded_at, a.id`

	var rows []recordRow
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}

	records := make([]model.Record, len(rows))
	for i, r := range rows {
		at, err := time.ParseInLocation(TimeFormat, r.RecordedAt, time.Local)
		if err != nil {
			return nil, fmt.Errorf("record %d: parsing recorded_at %q: %w", r.ID, r.RecordedAt, err)
		}
		records[i] = model.Record{
			ID:         r.ID,
			BatchID:    r.BatchID,
			CourseCode: r.CourseCode,
			CourseName: r.CourseName,
			RecordedAt: at,
			Status:     model.Status(r.Status),
		}
	}
	return records, nil
}

// ErrBackupExists is returned when the backup destination is already present.
var ErrBackupExists = errors.New("backup destination already exists")

// Backup writes a consistent copy of the database to dest.
func (s *Store) Backup(ctx context.Context, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%w: %s", ErrBackupExists, dest)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating backup dir: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}
