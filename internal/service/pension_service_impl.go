package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/alexanderramin/pensionbook/internal/importer"
	"github.com/alexanderramin/pensionbook/internal/repository"
	"github.com/google/uuid"
)

type pensionService struct {
	store    *recordStore
	observer UseCaseObserver
	now      func() time.Time
}

// NewPensionService creates the record service over a snapshot backend. The
// snapshot is read on first use.
func NewPensionService(
	snapshots repository.SnapshotStore,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) PensionService {
	return &pensionService{
		store:    newRecordStore(snapshots, logger),
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// observe reports a finished use case. It runs while the store lock is
// still held so the record count it reads is final.
func (s *pensionService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	fields[FieldRecordCount] = len(s.store.records)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *pensionService) List(ctx context.Context) ([]domain.PensionRecord, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if err := s.store.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.store.current(), nil
}

func (s *pensionService) GetByID(ctx context.Context, id string) (*domain.PensionRecord, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if err := s.store.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	for _, r := range s.store.records {
		if r.ID == id {
			c := r.Clone()
			return &c, nil
		}
	}
	return nil, fmt.Errorf("record %s: %w", id, domain.ErrRecordNotFound)
}

func (s *pensionService) Add(ctx context.Context, fields domain.RecordFields) (record domain.PensionRecord, err error) {
	startedAt := time.Now()
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	defer func() {
		s.observe(ctx, "add-record", startedAt, map[string]any{"year": fields.Year}, err)
	}()

	if err = s.store.ensureLoaded(ctx); err != nil {
		return domain.PensionRecord{}, err
	}

	record = domain.NewRecord(uuid.New().String(), fields, s.now())
	records := append(s.store.current(), record)
	if err = s.store.save(ctx, records); err != nil {
		return domain.PensionRecord{}, err
	}
	return record.Clone(), nil
}

func (s *pensionService) Update(ctx context.Context, id string, patch domain.RecordPatch) (found bool, err error) {
	startedAt := time.Now()
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	defer func() {
		s.observe(ctx, "update-record", startedAt, map[string]any{"id": id, "found": found}, err)
	}()

	if err = s.store.ensureLoaded(ctx); err != nil {
		return false, err
	}

	records := s.store.current()
	for i := range records {
		if records[i].ID == id {
			records[i].Apply(patch)
			found = true
		}
	}
	if err = s.store.save(ctx, records); err != nil {
		return false, err
	}
	return found, nil
}

func (s *pensionService) Delete(ctx context.Context, id string) (found bool, err error) {
	startedAt := time.Now()
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	defer func() {
		s.observe(ctx, "delete-record", startedAt, map[string]any{"id": id, "found": found}, err)
	}()

	if err = s.store.ensureLoaded(ctx); err != nil {
		return false, err
	}

	current := s.store.current()
	records := make([]domain.PensionRecord, 0, len(current))
	for _, r := range current {
		if r.ID == id {
			found = true
			continue
		}
		records = append(records, r)
	}
	if err = s.store.save(ctx, records); err != nil {
		return false, err
	}
	return found, nil
}

func (s *pensionService) ImportMerge(ctx context.Context, incoming []domain.RecordFields) (result *MergeResult, err error) {
	startedAt := time.Now()
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	fields := map[string]any{"incoming": len(incoming)}
	defer func() {
		s.observe(ctx, "import-merge", startedAt, fields, err)
	}()

	result, err = s.merge(ctx, incoming)
	if result != nil {
		fields["added"] = result.Added
		fields["replaced"] = result.Replaced
	}
	return result, err
}

// merge replaces records sharing a year with an incoming row, keeping their
// ID and creation time, and appends the rest. Later rows for the same year
// replace earlier ones from the same batch. Caller holds the store lock.
func (s *pensionService) merge(ctx context.Context, incoming []domain.RecordFields) (*MergeResult, error) {
	if err := s.store.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	records := s.store.current()
	byYear := make(map[int]int, len(records))
	for i, r := range records {
		if _, seen := byYear[r.Year]; !seen {
			byYear[r.Year] = i
		}
	}

	now := s.now()
	result := &MergeResult{}
	for _, f := range incoming {
		if i, ok := byYear[f.Year]; ok {
			records[i].SetFields(f)
			result.Replaced++
			continue
		}
		byYear[f.Year] = len(records)
		records = append(records, domain.NewRecord(uuid.New().String(), f, now))
		result.Added++
	}

	if err := s.store.save(ctx, records); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *pensionService) ImportCSV(ctx context.Context, r io.Reader) (result *ImportResult, err error) {
	startedAt := time.Now()
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	fields := map[string]any{}
	defer func() {
		s.observe(ctx, "import-csv", startedAt, fields, err)
	}()

	parsed, err := importer.ReadCSV(r)
	if err != nil {
		if parsed != nil {
			fields["rejected"] = len(parsed.Rejected)
			return &ImportResult{Rejected: parsed.Rejected}, err
		}
		return nil, err
	}
	fields["accepted"] = len(parsed.Records)
	fields["rejected"] = len(parsed.Rejected)

	merged, err := s.merge(ctx, parsed.Records)
	if err != nil {
		return nil, err
	}
	return &ImportResult{
		MergeResult: *merged,
		Imported:    len(parsed.Records),
		Rejected:    parsed.Rejected,
	}, nil
}

func (s *pensionService) ExportCSV(ctx context.Context) (out string, err error) {
	startedAt := time.Now()
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	defer func() {
		s.observe(ctx, "export-csv", startedAt, map[string]any{}, err)
	}()

	if err = s.store.ensureLoaded(ctx); err != nil {
		return "", err
	}
	return importer.ExportCSV(s.store.records)
}

func (s *pensionService) Summary(ctx context.Context) (domain.Summary, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if err := s.store.ensureLoaded(ctx); err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(s.store.records), nil
}
