package cli

import (
	"context"

	"github.com/alexanderramin/pensionbook/internal/app"
)

func (a *App) importCSVUseCase(ctx context.Context) (app.ImportCSVUseCase, error) {
	if a.ImportCSV != nil {
		return a.ImportCSV, nil
	}
	return a.records(ctx)
}

func (a *App) exportCSVUseCase(ctx context.Context) (app.ExportCSVUseCase, error) {
	if a.ExportCSV != nil {
		return a.ExportCSV, nil
	}
	return a.records(ctx)
}
