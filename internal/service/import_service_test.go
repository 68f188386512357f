package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/alexanderramin/pensionbook/internal/importer"
	"github.com/alexanderramin/pensionbook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "Jahr,Entgeltpunkte,Rente_jetzt,Rente_hochgerechnet,Erwerbsminderungsrente (€),Status,Rentenbeginn_geplant"

func TestImportMerge_ReplacesSameYearKeepingIdentity(t *testing.T) {
	svc, _ := newTestService(t)
	existing := mustAdd(t, svc, testutil.NewTestFields(2023, testutil.WithComment("alt")))

	incoming := testutil.NewTestFields(2023, testutil.WithProjection(1999))
	res, err := svc.ImportMerge(context.Background(), []domain.RecordFields{incoming})
	require.NoError(t, err)
	assert.Equal(t, MergeResult{Added: 0, Replaced: 1}, *res)

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, existing.ID, records[0].ID)
	assert.Equal(t, existing.CreatedAt, records[0].CreatedAt)
	assert.Equal(t, 1999.0, records[0].Projection)
	assert.Nil(t, records[0].Comment, "replacement overwrites all editable fields")
}

func TestImportMerge_AppendsNewYearsSorted(t *testing.T) {
	svc, _ := newTestService(t)
	mustAdd(t, svc, testutil.NewTestFields(2022))

	res, err := svc.ImportMerge(context.Background(), []domain.RecordFields{
		testutil.NewTestFields(2024),
		testutil.NewTestFields(2020),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2020, 2022, 2024}, years(records))
}

func TestImportMerge_LastRowForYearWins(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.ImportMerge(context.Background(), []domain.RecordFields{
		testutil.NewTestFields(2024, testutil.WithProjection(1000)),
		testutil.NewTestFields(2024, testutil.WithProjection(2000)),
	})
	require.NoError(t, err)
	assert.Equal(t, MergeResult{Added: 1, Replaced: 1}, *res)

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2000.0, records[0].Projection)
}

func TestImportMerge_IsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	batch := []domain.RecordFields{testutil.NewTestFields(2021), testutil.NewTestFields(2022)}

	_, err := svc.ImportMerge(context.Background(), batch)
	require.NoError(t, err)
	first, err := svc.List(context.Background())
	require.NoError(t, err)

	_, err = svc.ImportMerge(context.Background(), batch)
	require.NoError(t, err)
	second, err := svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestImportCSV_MergesAcceptedRows(t *testing.T) {
	svc, store := newTestService(t)
	mustAdd(t, svc, testutil.NewTestFields(2023))

	input := strings.Join([]string{
		csvHeader,
		`2023,1.3,470,1250,830,"Angestellt",67`,
		`2024,1.4,500,1300,850,"Angestellt",`,
		`1900,1,1,1,1,x,67`,
	}, "\n")
	res, err := svc.ImportCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Replaced)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, 4, res.Rejected[0].Line)
	assert.Equal(t, 2, store.Saves())

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024}, years(records))
	assert.Equal(t, 1.3, records[0].Entgeltpunkte)
}

func TestImportCSV_KeepsRowWithBlankBaseNumber(t *testing.T) {
	svc, _ := newTestService(t)

	input := csvHeader + "\n" +
		`2023,,400,1200,800,"Angestellt",67` + "\n" +
		`2024,1.4,500,1300,850,"Angestellt",67`
	res, err := svc.ImportCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Empty(t, res.Rejected)

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024}, years(records))
	assert.Equal(t, 0.0, records[0].Entgeltpunkte)
}

func TestImportCSV_NoValidRowsDoesNotWrite(t *testing.T) {
	svc, store := newTestService(t)

	res, err := svc.ImportCSV(context.Background(), strings.NewReader(csvHeader+"\n1900,1,1,1,1,x,67"))
	assert.ErrorIs(t, err, importer.ErrNoValidRows)
	require.NotNil(t, res)
	assert.Len(t, res.Rejected, 1)
	assert.Equal(t, 0, store.Saves())
}

func TestImportCSV_NoData(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader(csvHeader))
	assert.ErrorIs(t, err, importer.ErrNoData)
	assert.Equal(t, 0, store.Saves())
}

func TestExportCSV_Empty(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ExportCSV(context.Background())
	assert.ErrorIs(t, err, importer.ErrNothingToExport)
}

func TestExportThenImport_IntoEmptyStore(t *testing.T) {
	src, _ := newTestService(t)
	mustAdd(t, src, testutil.NewTestFields(2022, testutil.WithGrossIncome(48000), testutil.WithAdditionalPension("bAV")))
	mustAdd(t, src, testutil.NewTestFields(2023, testutil.WithContributions(4464, 4464)))

	out, err := src.ExportCSV(context.Background())
	require.NoError(t, err)

	dst, _ := newTestService(t)
	importedAt := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	dst.(*pensionService).now = func() time.Time { return importedAt }
	res, err := dst.ImportCSV(context.Background(), strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)

	want, err := src.List(context.Background())
	require.NoError(t, err)
	got, err := dst.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i := range want {
		assert.Equal(t, want[i].Year, got[i].Year)
		assert.Equal(t, want[i].Projection, got[i].Projection)
		assert.Equal(t, want[i].Status, got[i].Status)
		assert.Equal(t, domain.ValueOr(0, want[i].AnnualGrossIncome), *got[i].AnnualGrossIncome)
		assert.Equal(t, domain.ValueOr(0, want[i].TotalContribution), *got[i].TotalContribution)
		assert.Equal(t, want[i].AdditionalPensionDetails, got[i].AdditionalPensionDetails)
		assert.NotEqual(t, want[i].ID, got[i].ID)
		assert.NotEqual(t, want[i].CreatedAt, got[i].CreatedAt)
		assert.True(t, got[i].CreatedAt.Equal(importedAt))
	}
}
