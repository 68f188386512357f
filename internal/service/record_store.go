package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/alexanderramin/pensionbook/internal/repository"
	"github.com/goccy/go-json"
)

// StorageKey names the single snapshot holding the record collection.
const StorageKey = "pension-data"

// recordStore owns the in-memory collection and mirrors it to a snapshot
// backend. Callers hold mu around load/save pairs.
type recordStore struct {
	mu        sync.Mutex
	snapshots repository.SnapshotStore
	logger    *slog.Logger
	records   []domain.PensionRecord
	loaded    bool
}

func newRecordStore(snapshots repository.SnapshotStore, logger *slog.Logger) *recordStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &recordStore{snapshots: snapshots, logger: logger}
}

// ensureLoaded reads the snapshot the first time it is called. A missing
// snapshot and an undecodable one both yield an empty collection; only
// backend failures are returned.
func (s *recordStore) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	data, err := s.snapshots.Load(ctx, StorageKey)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.records = nil
	case err != nil:
		return fmt.Errorf("loading pension data: %w", err)
	default:
		var records []domain.PensionRecord
		if err := json.Unmarshal(data, &records); err != nil {
			s.logger.WarnContext(ctx, "discarding unreadable pension data", "key", StorageKey, "error", err)
			records = nil
		}
		s.records = records
	}
	s.loaded = true
	return nil
}

// save sorts records by year, writes them and adopts them as the current
// state. On a write error the current state is kept.
func (s *recordStore) save(ctx context.Context, records []domain.PensionRecord) error {
	domain.SortByYear(records)

	if records == nil {
		records = []domain.PensionRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding pension data: %w", err)
	}
	if err := s.snapshots.Save(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("saving pension data: %w", err)
	}
	s.records = records
	return nil
}

// current returns a deep copy of the collection.
func (s *recordStore) current() []domain.PensionRecord {
	return domain.CloneRecords(s.records)
}
