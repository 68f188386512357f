package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pensionbook/internal/cli/formatter"
	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/alexanderramin/pensionbook/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit statements in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runTUI(ctx context.Context, app *App, in io.Reader, out io.Writer) error {
	records, err := app.records(ctx)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newTUIModel(ctx, records),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err = p.Run()
	return err
}

type tuiMode int

const (
	modeTable tuiMode = iota
	modeForm
	modeConfirmDelete
	modeChart
	modeStats
)

type tuiKeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Chart  key.Binding
	Stats  key.Binding
	Back   key.Binding
	Quit   key.Binding
	Yes    key.Binding
	No     key.Binding
}

func defaultTUIKeyMap() tuiKeyMap {
	return tuiKeyMap{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Chart:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chart")),
		Stats:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Yes:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "delete")),
		No:     key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "keep")),
	}
}

type recordsLoadedMsg struct {
	records []domain.PensionRecord
	err     error
}

type recordSavedMsg struct {
	text string
	err  error
}

// tuiModel is the single-screen record browser. Store calls run inside
// tea.Cmds so the UI never blocks on a slow backend.
type tuiModel struct {
	ctx     context.Context
	records service.PensionService
	keys    tuiKeyMap
	help    help.Model
	table   table.Model

	items  []domain.PensionRecord
	mode   tuiMode
	width  int
	height int

	form       *huh.Form
	formValues *recordFormValues
	editingID  string

	flash    string
	err      error
	quitting bool
}

func newTUIModel(ctx context.Context, records service.PensionService) tuiModel {
	t := table.New(
		table.WithColumns(tableColumns()),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(formatter.ColorHeader).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(formatter.ColorFg).
		Background(lipgloss.Color("#504945")).
		Bold(false)
	t.SetStyles(styles)

	return tuiModel{
		ctx:     ctx,
		records: records,
		keys:    defaultTUIKeyMap(),
		help:    help.New(),
		table:   t,
	}
}

func tableColumns() []table.Column {
	return []table.Column{
		{Title: "Year", Width: 6},
		{Title: "EP", Width: 9},
		{Title: "Claim", Width: 12},
		{Title: "Projection", Width: 12},
		{Title: "Disability", Width: 12},
		{Title: "Age", Width: 4},
		{Title: "Status", Width: 20},
		{Title: "Comment", Width: 24},
	}
}

func recordRows(records []domain.PensionRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{
			strconv.Itoa(r.Year),
			formatter.FormatPoints(r.Entgeltpunkte),
			formatter.FormatEuro(r.CurrentClaim),
			formatter.FormatEuro(r.Projection),
			formatter.FormatEuro(r.DisabilityPension),
			strconv.Itoa(r.RetirementAge),
			r.Status,
			domain.ValueOr("", r.Comment),
		})
	}
	return rows
}

func (m tuiModel) loadRecords() tea.Msg {
	records, err := m.records.List(m.ctx)
	return recordsLoadedMsg{records: records, err: err}
}

func (m tuiModel) Init() tea.Cmd {
	return m.loadRecords
}

func (m tuiModel) selected() (domain.PensionRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.items) {
		return domain.PensionRecord{}, false
	}
	return m.items[i], true
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-8, 3))
		m.help.Width = msg.Width
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width)
		}
		return m, nil

	case recordsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.items = msg.records
		m.table.SetRows(recordRows(msg.records))
		if m.table.Cursor() >= len(m.items) {
			m.table.SetCursor(max(len(m.items)-1, 0))
		}
		return m, nil

	case recordSavedMsg:
		m.mode = modeTable
		m.form, m.formValues, m.editingID = nil, nil, ""
		if msg.err != nil {
			m.err = msg.err
			m.flash = ""
			return m, nil
		}
		m.err = nil
		m.flash = msg.text
		return m, m.loadRecords
	}

	if m.mode == modeForm {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case modeConfirmDelete:
		return m.updateConfirm(keyMsg)
	case modeChart, modeStats:
		if key.Matches(keyMsg, m.keys.Back, m.keys.Quit, m.keys.Chart, m.keys.Stats) {
			m.mode = modeTable
		}
		return m, nil
	}

	return m.updateTable(keyMsg)
}

func (m tuiModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Add):
		return m.startForm(defaultFormValues(time.Now()), "")

	case key.Matches(msg, m.keys.Edit):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m.startForm(formValuesFromRecord(r), r.ID)

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
		}
		return m, nil

	case key.Matches(msg, m.keys.Chart):
		m.mode = modeChart
		return m, nil

	case key.Matches(msg, m.keys.Stats):
		m.mode = modeStats
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m tuiModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		r, ok := m.selected()
		m.mode = modeTable
		if !ok {
			return m, nil
		}
		return m, m.deleteRecord(r)
	case key.Matches(msg, m.keys.No):
		m.mode = modeTable
	}
	return m, nil
}

func (m tuiModel) startForm(values *recordFormValues, editingID string) (tea.Model, tea.Cmd) {
	m.mode = modeForm
	m.formValues = values
	m.editingID = editingID
	m.form = newRecordForm(values)
	if m.width > 0 {
		m.form = m.form.WithWidth(m.width)
	}
	m.flash, m.err = "", nil
	return m, m.form.Init()
}

func (m tuiModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Back) {
		m.mode = modeTable
		m.form, m.formValues, m.editingID = nil, nil, ""
		return m, nil
	}

	updated, cmd := m.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.saveForm(m.formValues, m.editingID)
	case huh.StateAborted:
		m.mode = modeTable
		m.form, m.formValues, m.editingID = nil, nil, ""
		return m, nil
	}
	return m, cmd
}

// saveForm validates the submitted values and adds or patches the record.
func (m tuiModel) saveForm(values *recordFormValues, editingID string) tea.Cmd {
	return func() tea.Msg {
		fields, err := values.fields()
		if err != nil {
			return recordSavedMsg{err: err}
		}
		if err := validationError(domain.ValidateFields(fields)); err != nil {
			return recordSavedMsg{err: err}
		}

		if editingID == "" {
			r, err := m.records.Add(m.ctx, fields)
			if err != nil {
				return recordSavedMsg{err: err}
			}
			return recordSavedMsg{text: fmt.Sprintf("Added statement %d", r.Year)}
		}

		found, err := m.records.Update(m.ctx, editingID, patchFromFields(fields))
		if err != nil {
			return recordSavedMsg{err: err}
		}
		if !found {
			return recordSavedMsg{err: fmt.Errorf("record %s: %w", editingID, domain.ErrRecordNotFound)}
		}
		return recordSavedMsg{text: fmt.Sprintf("Updated statement %d", fields.Year)}
	}
}

func (m tuiModel) deleteRecord(r domain.PensionRecord) tea.Cmd {
	return func() tea.Msg {
		found, err := m.records.Delete(m.ctx, r.ID)
		if err != nil {
			return recordSavedMsg{err: err}
		}
		if !found {
			return recordSavedMsg{err: fmt.Errorf("record %s: %w", r.ID, domain.ErrRecordNotFound)}
		}
		return recordSavedMsg{text: fmt.Sprintf("Deleted statement %d", r.Year)}
	}
}

// patchFromFields turns a full edit into a patch. Optional fields left
// blank in the form are not cleared.
func patchFromFields(f domain.RecordFields) domain.RecordPatch {
	return domain.RecordPatch{
		Year:                     domain.Ptr(f.Year),
		Entgeltpunkte:            domain.Ptr(f.Entgeltpunkte),
		CurrentClaim:             domain.Ptr(f.CurrentClaim),
		Projection:               domain.Ptr(f.Projection),
		DisabilityPension:        domain.Ptr(f.DisabilityPension),
		RetirementAge:            domain.Ptr(f.RetirementAge),
		Status:                   domain.Ptr(f.Status),
		EarlyRetirementDeduction: f.EarlyRetirementDeduction,
		InflationExpectation:     f.InflationExpectation,
		AdditionalPension:        f.AdditionalPension,
		AdditionalPensionDetails: f.AdditionalPensionDetails,
		AnnualGrossIncome:        f.AnnualGrossIncome,
		ChildCareYears:           f.ChildCareYears,
		EducationYears:           f.EducationYears,
		OwnContribution:          f.OwnContribution,
		EmployerContribution:     f.EmployerContribution,
		InsuranceContribution:    f.InsuranceContribution,
		TotalContribution:        f.TotalContribution,
		Comment:                  f.Comment,
	}
}

func (m tuiModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Pensionbook"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		title := "New statement"
		if m.editingID != "" {
			title = "Edit statement"
		}
		b.WriteString(formatter.Bold(title) + "\n\n")
		b.WriteString(m.form.View())
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.Back}))
		return b.String()

	case modeChart:
		b.WriteString(formatter.FormatChart(domain.ChartSeries(m.items), defaultTUIChartMetrics(), m.chartWidth()))
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.Back}))
		return b.String()

	case modeStats:
		summary := domain.Summarize(m.items)
		if latest, ok := domain.Latest(m.items); ok {
			b.WriteString(formatter.FormatSummary(summary, &latest) + "\n")
			b.WriteString(formatter.FormatNetEstimates(latest))
		} else {
			b.WriteString(formatter.FormatSummary(summary, nil))
		}
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.Back}))
		return b.String()
	}

	if len(m.items) == 0 {
		b.WriteString(formatter.Dim("No records yet. Press a to add one.") + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.mode == modeConfirmDelete:
		if r, ok := m.selected(); ok {
			b.WriteString(formatter.StyleYellow.Render(fmt.Sprintf("Delete statement %d? ", r.Year)))
		}
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.Yes, m.keys.No}))
		return b.String()
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.flash != "":
		b.WriteString(formatter.StyleGreen.Render("✔ "+m.flash) + "\n")
	}

	b.WriteString(m.help.ShortHelpView([]key.Binding{
		m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Chart, m.keys.Stats, m.keys.Quit,
	}))
	return b.String()
}

func defaultTUIChartMetrics() []formatter.ChartMetric {
	metrics, _ := chartMetrics(formatter.DefaultChartMetrics)
	return metrics
}

func (m tuiModel) chartWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultTermWidth
}
