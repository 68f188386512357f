package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pensionbook/internal/app"
	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const commentWidth = 24

// FormatRecordList renders the record table inside a bordered box.
func FormatRecordList(records []domain.PensionRecord) string {
	if len(records) == 0 {
		return RenderBox("Pension records", Dim("No records yet. Add one with 'pensionbook add' or import a CSV file."))
	}

	headers := []string{"ID", "YEAR", "EP", "CLAIM", "PROJECTION", "DISABILITY", "AGE", "STATUS", "GROSS INCOME", "COMMENT"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft, AlignRight, AlignLeft}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			TruncID(r.ID),
			Bold(strconv.Itoa(r.Year)),
			FormatPoints(r.Entgeltpunkte),
			FormatEuro(r.CurrentClaim),
			StyleGreen.Render(FormatEuro(r.Projection)),
			FormatEuro(r.DisabilityPension),
			strconv.Itoa(r.RetirementAge),
			StatusPill(r.Status),
			OptEuro(r.AnnualGrossIncome),
			truncate(OptText(r.Comment), commentWidth),
		})
	}

	title := fmt.Sprintf("Pension records (%d)", len(records))
	return RenderBox(title, RenderTableAligned(headers, rows, align))
}

// FormatRecordDetail renders every field of one record.
func FormatRecordDetail(r domain.PensionRecord) string {
	pairs := [][2]string{
		{"ID", r.ID},
		{"Year", strconv.Itoa(r.Year)},
		{"Entgeltpunkte", FormatPoints(r.Entgeltpunkte)},
		{"Current claim", FormatEuro(r.CurrentClaim)},
		{"Projection", StyleGreen.Render(FormatEuro(r.Projection))},
		{"Disability pension", FormatEuro(r.DisabilityPension)},
		{"Retirement age", strconv.Itoa(r.RetirementAge)},
		{"Status", StatusPill(r.Status)},
		{"Early retirement deduction", OptNumber(r.EarlyRetirementDeduction, " %")},
		{"Inflation expectation", OptNumber(r.InflationExpectation, " %")},
		{"Additional pension", YesNo(r.AdditionalPension)},
		{"Additional pension details", OptText(r.AdditionalPensionDetails)},
		{"Annual gross income", OptEuro(r.AnnualGrossIncome)},
		{"Child care years", OptNumber(r.ChildCareYears, "")},
		{"Education years", OptNumber(r.EducationYears, "")},
		{"Own contribution", OptEuro(r.OwnContribution)},
		{"Employer contribution", OptEuro(r.EmployerContribution)},
		{"Insurance contribution", OptEuro(r.InsuranceContribution)},
		{"Total contribution", OptEuro(r.TotalContribution)},
		{"Comment", OptText(r.Comment)},
		{"Created", HumanDate(r.CreatedAt)},
	}
	return RenderBox(fmt.Sprintf("Statement %d", r.Year), renderPairs(pairs))
}

// FormatSummary renders the aggregate figures. latest may be nil when the
// collection is empty.
func FormatSummary(s domain.Summary, latest *domain.PensionRecord) string {
	if s.Count == 0 {
		return RenderBox("Summary", Dim("No records yet."))
	}

	span := strconv.Itoa(s.FirstYear)
	if s.LastYear != s.FirstYear {
		span = fmt.Sprintf("%d – %d", s.FirstYear, s.LastYear)
	}
	pairs := [][2]string{
		{"Statements", strconv.Itoa(s.Count)},
		{"Years", span},
		{"Highest projection", StyleGreen.Render(FormatEuro(s.MaxProjection))},
	}
	if latest != nil {
		pairs = append(pairs,
			[2]string{"Latest claim", fmt.Sprintf("%s %s", FormatEuro(latest.CurrentClaim), Dim(fmt.Sprintf("(%d)", latest.Year)))},
			[2]string{"Latest projection", FormatEuro(latest.Projection)},
		)
		if s.MaxProjection > 0 {
			pairs = append(pairs, [2]string{"Claim vs. highest projection", RenderProgress(latest.CurrentClaim/s.MaxProjection, 20)})
		}
	}
	return RenderBox("Summary", renderPairs(pairs))
}

// FormatNetEstimates renders the per-tax-class net estimates for r.
func FormatNetEstimates(r domain.PensionRecord) string {
	headers := []string{"CLASS", "RATE", "CLAIM", "PROJECTION", "DISABILITY"}
	align := []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight}
	var rows [][]string
	for _, est := range domain.NetEstimates(r) {
		rate := domain.TaxRate(est.TaxClass).Shift(2).String() + " %"
		rows = append(rows, []string{
			Bold(strconv.Itoa(est.TaxClass)),
			Dim(rate),
			FormatEuroDecimal(est.CurrentClaim),
			StyleGreen.Render(FormatEuroDecimal(est.Projection)),
			FormatEuroDecimal(est.DisabilityPension),
		})
	}
	note := Dim("Flat illustrative rates, not a tax computation.")
	title := fmt.Sprintf("Net estimates %d", r.Year)
	return RenderBox(title, RenderTableAligned(headers, rows, align)+"\n"+note)
}

// FormatImportResult renders the outcome of a CSV import. Rejected lines
// are listed only when verbose is set; otherwise only their count is shown.
func FormatImportResult(res *app.ImportResult, verbose bool) string {
	if res == nil {
		return ""
	}
	var b strings.Builder
	total := res.Imported + len(res.Rejected)
	fmt.Fprintf(&b, "%s %d of %d rows accepted\n", StyleGreen.Render("✔"), res.Imported, total)
	if total > 0 {
		fmt.Fprintf(&b, "  %s\n", RenderProgress(float64(res.Imported)/float64(total), 20))
	}
	fmt.Fprintf(&b, "  %s added  %s replaced\n",
		Bold(strconv.Itoa(res.Added)), Bold(strconv.Itoa(res.Replaced)))

	if len(res.Rejected) > 0 {
		fmt.Fprintf(&b, "%s %d rows rejected\n", StyleYellow.Render("!"), len(res.Rejected))
		if verbose {
			for _, rowErr := range res.Rejected {
				fmt.Fprintf(&b, "  %s %s\n", Dim(fmt.Sprintf("line %d:", rowErr.Line)), rowErr.Reason)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPairs(pairs [][2]string) string {
	labelWidth := 0
	for _, p := range pairs {
		labelWidth = max(labelWidth, lipgloss.Width(p[0]))
	}
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(p[0]))
		lines = append(lines, Dim(p[0]+pad)+"  "+p[1])
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
