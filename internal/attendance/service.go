package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rollbook-dev/rollbook/internal/courses"
	"github.com/rollbook-dev/rollbook/internal/history"
	"github.com/rollbook-dev/rollbook/internal/id"
	"github.com/rollbook-dev/rollbook/internal/model"
	"github.com/rollbook-dev/rollbook/internal/parser"
)

// ErrNoValidData is returned when an upload contains no recognisable course lines.
var ErrNoValidData = errors.New("no valid data found, please check the format")

// Store is the storage the service appends to and aggregates from.
type Store interface {
	AppendEntries(ctx context.Context, batchID string, at time.Time, entries []model.Entry) error
	NextBatchSeq(ctx context.Context, day time.Time) (int, error)
	Stats(ctx context.Context) ([]model.CourseStats, error)
}

// Service records uploads and reports statistics.
type Service struct {
	courses *courses.Table
	parser  *parser.Parser
	store   Store
	history *history.Log
	log     *slog.Logger
}

// NewService creates a Service. history may be nil to skip the upload log.
func NewService(table *courses.Table, p *parser.Parser, store Store, hist *history.Log, log *slog.Logger) *Service {
	return &Service{courses: table, parser: p, store: store, history: hist, log: log}
}

// Result summarises one stored upload.
type Result struct {
	BatchID string
	At      time.Time
	Count   int
	Dropped []string
}

// Upload parses text, validates the entries and appends them as one batch
// stamped with at. source names where the text came from, for the upload log.
func (s *Service) Upload(ctx context.Context, source, text string, at time.Time) (Result, error) {
	parsed := s.parser.ParseAll(text)
	for _, line := range parsed.Dropped {
		s.log.Debug("dropped line without known course", "source", source, "line", line)
	}
	if len(parsed.Entries) == 0 {
		s.log.Warn("upload rejected", "source", source, "reason", ErrNoValidData.Error(), "dropped", len(parsed.Dropped))
		return Result{}, ErrNoValidData
	}

	if verrs := ValidateEntries(parsed.Entries, s.courses); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return Result{}, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	seq, err := s.store.NextBatchSeq(ctx, at)
	if err != nil {
		return Result{}, fmt.Errorf("allocating batch: %w", err)
	}
	batchID := id.FormatBatchID(at, seq)

	if err := s.store.AppendEntries(ctx, batchID, at, parsed.Entries); err != nil {
		s.log.Error("storing upload failed", "source", source, "batch", batchID, "err", err)
		return Result{}, fmt.Errorf("storing attendance: %w", err)
	}

	res := Result{
		BatchID: batchID,
		At:      at,
		Count:   len(parsed.Entries),
		Dropped: parsed.Dropped,
	}
	s.log.Info("upload stored", "source", source, "batch", batchID, "entries", res.Count, "dropped", len(res.Dropped))

	if s.history != nil {
		err := s.history.Append(history.Entry{
			Timestamp: at,
			BatchID:   batchID,
			Source:    source,
			Entries:   res.Count,
			Dropped:   len(res.Dropped),
		})
		if err != nil {
			// Records are already committed.
			s.log.Warn("writing upload log failed", "batch", batchID, "err", err)
		}
	}
	return res, nil
}

// Stats returns per-course aggregates.
func (s *Service) Stats(ctx context.Context) ([]model.CourseStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading stats: %w", err)
	}
	return stats, nil
}
