package service

import (
	"context"
	"io"

	"github.com/alexanderramin/pensionbook/internal/app"
	"github.com/alexanderramin/pensionbook/internal/domain"
)

// PensionService is the capability set presentation layers use. It is the
// only way records are mutated.
type PensionService interface {
	List(ctx context.Context) ([]domain.PensionRecord, error)
	GetByID(ctx context.Context, id string) (*domain.PensionRecord, error)
	Add(ctx context.Context, fields domain.RecordFields) (domain.PensionRecord, error)
	Update(ctx context.Context, id string, patch domain.RecordPatch) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ImportMerge(ctx context.Context, incoming []domain.RecordFields) (*MergeResult, error)
	ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error)
	ExportCSV(ctx context.Context) (string, error)
	Summary(ctx context.Context) (domain.Summary, error)
}

// MergeResult counts how a merge-import changed the collection.
type MergeResult = app.MergeResult

// ImportResult reports a CSV import. When no row is accepted ImportCSV
// returns the rejected lines together with importer.ErrNoValidRows.
type ImportResult = app.ImportResult
