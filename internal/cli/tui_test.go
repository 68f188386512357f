package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/alexanderramin/pensionbook/internal/repository"
	"github.com/alexanderramin/pensionbook/internal/service"
	"github.com/alexanderramin/pensionbook/internal/teatest"
	"github.com/alexanderramin/pensionbook/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tuiService(t *testing.T, years ...int) service.PensionService {
	t.Helper()
	svc := service.NewPensionService(repository.NewMemorySnapshotStore(), nil)
	for _, y := range years {
		_, err := svc.Add(context.Background(), testutil.NewTestFields(y, testutil.WithComment("Info "+string(rune('A'+y-2020)))))
		require.NoError(t, err)
	}
	return svc
}

func newTUIDriver(t *testing.T, svc service.PensionService) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newTUIModel(context.Background(), svc), teatest.WithSize(120, 40))
	d.DrainInit()
	return d
}

func tuiState(d *teatest.Driver) tuiModel {
	return d.Model.(tuiModel)
}

func TestTUI_LoadsRecords(t *testing.T) {
	d := newTUIDriver(t, tuiService(t, 2022, 2021))

	m := tuiState(d)
	require.Len(t, m.items, 2)
	assert.Equal(t, 2021, m.items[0].Year)
	d.RequireView("PENSIONBOOK", "2021", "2022", "Info B", "add", "quit")
}

func TestTUI_EmptyState(t *testing.T) {
	d := newTUIDriver(t, tuiService(t))

	d.RequireView("No records yet. Press a to add one.")
}

func TestTUI_LoadError(t *testing.T) {
	store := &testutil.FailingSnapshotStore{
		Inner:   repository.NewMemorySnapshotStore(),
		LoadErr: errors.New("disk on fire"),
	}
	d := newTUIDriver(t, service.NewPensionService(store, nil))

	d.RequireView("Error:", "disk on fire")
}

func TestTUI_DeleteConfirmed(t *testing.T) {
	svc := tuiService(t, 2021, 2022)
	d := newTUIDriver(t, svc)

	d.PressKey('d')
	assert.Equal(t, modeConfirmDelete, tuiState(d).mode)
	d.RequireView("Delete statement 2021?")

	d.PressKey('y')
	m := tuiState(d)
	assert.Equal(t, modeTable, m.mode)
	require.Len(t, m.items, 1)
	assert.Equal(t, 2022, m.items[0].Year)
	d.RequireView("Deleted statement 2021")

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTUI_DeleteCancelled(t *testing.T) {
	svc := tuiService(t, 2021, 2022)
	d := newTUIDriver(t, svc)

	d.PressDown()
	d.PressKey('d')
	d.RequireView("Delete statement 2022?")
	d.PressKey('n')

	assert.Equal(t, modeTable, tuiState(d).mode)
	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTUI_DeleteWithoutRecordsIsIgnored(t *testing.T) {
	d := newTUIDriver(t, tuiService(t))

	d.PressKey('d')
	assert.Equal(t, modeTable, tuiState(d).mode)
}

func TestTUI_ChartAndStatsViews(t *testing.T) {
	d := newTUIDriver(t, tuiService(t, 2021, 2023))

	d.PressKey('c')
	assert.Equal(t, modeChart, tuiState(d).mode)
	d.RequireView("TREND", "Projected pension")

	d.PressEsc()
	assert.Equal(t, modeTable, tuiState(d).mode)

	d.PressKey('s')
	assert.Equal(t, modeStats, tuiState(d).mode)
	d.RequireView("SUMMARY", "NET ESTIMATES 2023")

	d.PressKey('s')
	assert.Equal(t, modeTable, tuiState(d).mode)
}

func TestTUI_AddFormOpensAndCancels(t *testing.T) {
	d := newTUIDriver(t, tuiService(t, 2021))

	d.PressKey('a')
	m := tuiState(d)
	assert.Equal(t, modeForm, m.mode)
	require.NotNil(t, m.form)
	assert.Empty(t, m.editingID)
	d.RequireView("New statement", "Year")

	d.PressEsc()
	m = tuiState(d)
	assert.Equal(t, modeTable, m.mode)
	assert.Nil(t, m.form)
}

func TestTUI_EditFormIsPrefilled(t *testing.T) {
	d := newTUIDriver(t, tuiService(t, 2021))

	d.PressKey('e')
	m := tuiState(d)
	assert.Equal(t, modeForm, m.mode)
	assert.Equal(t, m.items[0].ID, m.editingID)
	require.NotNil(t, m.formValues)
	assert.Equal(t, "2021", m.formValues.year)
	d.RequireView("Edit statement")
}

func TestTUI_QuitKey(t *testing.T) {
	d := newTUIDriver(t, tuiService(t, 2021))

	d.PressKey('q')
	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())
}

// submitForm tabs through the remaining fields until the form completes.
func submitForm(t *testing.T, d *teatest.Driver) {
	t.Helper()
	for i := 0; i < 40 && tuiState(d).mode == modeForm; i++ {
		d.PressTab()
	}
	require.Equal(t, modeTable, tuiState(d).mode, "form did not complete:\n%s", d.View())
}

func TestTUI_AddThroughForm(t *testing.T) {
	svc := tuiService(t)
	d := newTUIDriver(t, svc)

	d.PressKey('a')
	d.PressEnter() // keep the current year
	d.Type("24,5")
	d.PressEnter()
	d.Type("880")
	d.PressEnter()
	d.Type("1450")
	d.PressEnter()
	d.Type("910")
	d.PressEnter()
	submitForm(t, d)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	r := all[0]
	assert.Equal(t, time.Now().Year(), r.Year)
	assert.Equal(t, 24.5, r.Entgeltpunkte)
	assert.Equal(t, 880.0, r.CurrentClaim)
	assert.Equal(t, 1450.0, r.Projection)
	assert.Equal(t, 910.0, r.DisabilityPension)
	require.NotNil(t, r.EarlyRetirementDeduction)
	assert.Equal(t, 0.3, *r.EarlyRetirementDeduction)
	d.RequireView("Added statement")
}

func TestTUI_EditThroughForm(t *testing.T) {
	svc := tuiService(t, 2021)
	d := newTUIDriver(t, svc)
	original := tuiState(d).items[0]

	d.PressKey('e')
	d.PressTab()
	d.PressTab()
	d.PressTab() // projection
	d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlU})
	d.Type("1999,5")
	submitForm(t, d)

	got, err := svc.GetByID(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, 1999.5, got.Projection)
	assert.Equal(t, original.Comment, got.Comment)
	assert.Equal(t, original.CurrentClaim, got.CurrentClaim)
	d.RequireView("Updated statement 2021")
}

func TestTUI_SaveFormAddsRecord(t *testing.T) {
	svc := tuiService(t)
	m := newTUIModel(context.Background(), svc)

	v := formValuesFromRecord(testutil.NewTestRecord(2024))
	msg := m.saveForm(v, "")()

	saved, ok := msg.(recordSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)
	assert.Equal(t, "Added statement 2024", saved.text)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 2024, all[0].Year)
}

func TestTUI_SaveFormRejectsOutOfRange(t *testing.T) {
	svc := tuiService(t)
	m := newTUIModel(context.Background(), svc)

	v := formValuesFromRecord(testutil.NewTestRecord(2024))
	v.retirementAge = "80"
	saved := m.saveForm(v, "")().(recordSavedMsg)

	require.Error(t, saved.err)
	assert.Contains(t, saved.err.Error(), "retirement age 80")
	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTUI_SaveFormUpdatesRecord(t *testing.T) {
	svc := tuiService(t, 2021)
	all, err := svc.List(context.Background())
	require.NoError(t, err)
	original := all[0]

	m := newTUIModel(context.Background(), svc)
	v := formValuesFromRecord(original)
	v.projection = "1999,5"
	v.inflationExpectation = ""
	saved := m.saveForm(v, original.ID)().(recordSavedMsg)
	require.NoError(t, saved.err)
	assert.Equal(t, "Updated statement 2021", saved.text)

	got, err := svc.GetByID(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, 1999.5, got.Projection)
	assert.Equal(t, original.Comment, got.Comment)
}

func TestTUI_SaveFormUnknownRecord(t *testing.T) {
	m := newTUIModel(context.Background(), tuiService(t))

	v := formValuesFromRecord(testutil.NewTestRecord(2024))
	saved := m.saveForm(v, "missing")().(recordSavedMsg)
	assert.ErrorIs(t, saved.err, domain.ErrRecordNotFound)
}

func TestTUI_SavedMessageShowsError(t *testing.T) {
	d := newTUIDriver(t, tuiService(t, 2021))

	d.Send(recordSavedMsg{err: errors.New("write failed")})
	d.RequireView("Error: write failed")
}

func TestPatchFromFields_KeepsBlankOptionalFields(t *testing.T) {
	r := testutil.NewTestRecord(2022, testutil.WithGrossIncome(50000))

	f := testutil.NewTestFields(2023)
	r.Apply(patchFromFields(f))

	assert.Equal(t, 2023, r.Year)
	require.NotNil(t, r.AnnualGrossIncome)
	assert.Equal(t, 50000.0, *r.AnnualGrossIncome)
}
