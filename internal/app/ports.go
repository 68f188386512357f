package app

import (
	"context"
	"io"

	"github.com/alexanderramin/pensionbook/internal/importer"
)

// MergeResult counts how a merge-import changed the collection.
type MergeResult struct {
	Added    int
	Replaced int
}

// ImportResult reports a CSV import. Imported is the number of accepted
// rows; Rejected lists the lines that were skipped.
type ImportResult struct {
	MergeResult
	Imported int
	Rejected []importer.RowError
}

type ImportCSVUseCase interface {
	ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error)
}

type ExportCSVUseCase interface {
	ExportCSV(ctx context.Context) (string, error)
}
