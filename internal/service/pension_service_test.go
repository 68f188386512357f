package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/alexanderramin/pensionbook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPensionService_ListEmpty(t *testing.T) {
	svc, store := newTestService(t)

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, store.Saves(), "reading must not write")
}

func TestPensionService_AddKeepsYearOrder(t *testing.T) {
	svc, _ := newTestService(t)

	mustAdd(t, svc, testutil.NewTestFields(2024))
	mustAdd(t, svc, testutil.NewTestFields(2023))

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024}, years(records))
}

func TestPensionService_AddAssignsIdentity(t *testing.T) {
	svc, _ := newTestService(t)

	a := mustAdd(t, svc, testutil.NewTestFields(2022))
	b := mustAdd(t, svc, testutil.NewTestFields(2022))

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2, "add does not enforce year uniqueness")
}

func TestPensionService_EqualYearsKeepInsertionOrder(t *testing.T) {
	svc, _ := newTestService(t)

	first := mustAdd(t, svc, testutil.NewTestFields(2023))
	mustAdd(t, svc, testutil.NewTestFields(2025))
	second := mustAdd(t, svc, testutil.NewTestFields(2023))

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, first.ID, records[0].ID)
	assert.Equal(t, second.ID, records[1].ID)
}

func TestPensionService_OneWritePerMutation(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	r := mustAdd(t, svc, testutil.NewTestFields(2024))
	assert.Equal(t, 1, store.Saves())

	_, err := svc.Update(ctx, r.ID, domain.RecordPatch{Projection: domain.Ptr(1400.0)})
	require.NoError(t, err)
	assert.Equal(t, 2, store.Saves())

	_, err = svc.Delete(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, store.Saves())

	_, err = svc.ImportMerge(ctx, []domain.RecordFields{testutil.NewTestFields(2020), testutil.NewTestFields(2021)})
	require.NoError(t, err)
	assert.Equal(t, 4, store.Saves())
}

func TestPensionService_DeleteMissingStillPersists(t *testing.T) {
	svc, store := newTestService(t)
	mustAdd(t, svc, testutil.NewTestFields(2024))

	found, err := svc.Delete(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 2, store.Saves())

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestPensionService_Delete(t *testing.T) {
	svc, _ := newTestService(t)
	keep := mustAdd(t, svc, testutil.NewTestFields(2023))
	drop := mustAdd(t, svc, testutil.NewTestFields(2024))

	found, err := svc.Delete(context.Background(), drop.ID)
	require.NoError(t, err)
	assert.True(t, found)

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, keep.ID, records[0].ID)
}

func TestPensionService_UpdateMergesPatch(t *testing.T) {
	svc, _ := newTestService(t)
	orig := mustAdd(t, svc, testutil.NewTestFields(2024, testutil.WithComment("alt")))

	found, err := svc.Update(context.Background(), orig.ID, domain.RecordPatch{
		Projection:        domain.Ptr(1500.0),
		AnnualGrossIncome: domain.Ptr(61000.0),
	})
	require.NoError(t, err)
	assert.True(t, found)

	got, err := svc.GetByID(context.Background(), orig.ID)
	require.NoError(t, err)
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)
	assert.Equal(t, 1500.0, got.Projection)
	assert.Equal(t, 61000.0, *got.AnnualGrossIncome)
	assert.Equal(t, orig.Entgeltpunkte, got.Entgeltpunkte)
	assert.Equal(t, "alt", *got.Comment)
}

func TestPensionService_UpdateYearResorts(t *testing.T) {
	svc, _ := newTestService(t)
	a := mustAdd(t, svc, testutil.NewTestFields(2020))
	mustAdd(t, svc, testutil.NewTestFields(2022))

	_, err := svc.Update(context.Background(), a.ID, domain.RecordPatch{Year: domain.Ptr(2024)})
	require.NoError(t, err)

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2022, 2024}, years(records))
}

func TestPensionService_UpdateMissing(t *testing.T) {
	svc, store := newTestService(t)

	found, err := svc.Update(context.Background(), "nope", domain.RecordPatch{Year: domain.Ptr(2020)})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 1, store.Saves())
}

func TestPensionService_GetByIDMissing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestPensionService_ListReturnsCopy(t *testing.T) {
	svc, _ := newTestService(t)
	mustAdd(t, svc, testutil.NewTestFields(2024, testutil.WithComment("orig")))

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	records[0].Year = 1999
	*records[0].Comment = "changed"

	again, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2024, again[0].Year)
	assert.Equal(t, "orig", *again[0].Comment)
}

func TestPensionService_FailedWriteLeavesStateUnchanged(t *testing.T) {
	svc, store := newTestService(t)
	existing := mustAdd(t, svc, testutil.NewTestFields(2023))

	boom := errors.New("quota exceeded")
	store.SaveErr = boom

	_, err := svc.Add(context.Background(), testutil.NewTestFields(2024))
	assert.ErrorIs(t, err, boom)
	_, err = svc.Delete(context.Background(), existing.ID)
	assert.ErrorIs(t, err, boom)

	store.SaveErr = nil
	records, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, existing.ID, records[0].ID)
}

func TestPensionService_Summary(t *testing.T) {
	svc, _ := newTestService(t)
	mustAdd(t, svc, testutil.NewTestFields(2021, testutil.WithProjection(1100)))
	mustAdd(t, svc, testutil.NewTestFields(2019, testutil.WithProjection(1350)))

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Summary{Count: 2, MaxProjection: 1350, FirstYear: 2019, LastYear: 2021}, s)
}
