package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the upload history.
type Entry struct {
	Timestamp time.Time
	BatchID   string
	Source    string // "paste", "stdin", or a file name
	Entries   int
	Dropped   int
}

// Header is the CSV header for upload-log.csv.
const Header = "timestamp,batch_id,source,entries,dropped"

const (
	numFields  = 5
	logDir     = "logs"
	logFile    = "logs/upload-log.csv"
	colTime    = 0
	colBatch   = 1
	colSource  = 2
	colEntries = 3
	colDropped = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colBatch] = e.BatchID
	row[colSource] = e.Source
	row[colEntries] = strconv.Itoa(e.Entries)
	row[colDropped] = strconv.Itoa(e.Dropped)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}
	entries, err := strconv.Atoi(record[colEntries])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing entries %q: %w", record[colEntries], err)
	}
	dropped, err := strconv.Atoi(record[colDropped])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing dropped %q: %w", record[colDropped], err)
	}

	return Entry{
		Timestamp: ts,
		BatchID:   record[colBatch],
		Source:    record[colSource],
		Entries:   entries,
		Dropped:   dropped,
	}, nil
}

// Log appends to and reads <root>/logs/upload-log.csv.
type Log struct {
	root string
}

// New returns the upload history for a workspace root.
func New(root string) *Log {
	return &Log{root: root}
}

// Append writes entries, creating the file and header if needed.
func (l *Log) Append(entries ...Entry) error {
	dir := filepath.Join(l.root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(l.root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening upload log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns every entry. A missing file yields no entries.
func (l *Log) Read() ([]Entry, error) {
	f, err := os.Open(filepath.Join(l.root, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening upload log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading upload log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
