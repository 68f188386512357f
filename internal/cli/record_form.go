package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pensionbook/internal/cli/formatter"
	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pensionHuhTheme returns a huh theme matching the formatter palette.
func pensionHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// Defaults of a fresh entry form.
const (
	defaultDeduction = "0.3"
	defaultInflation = "2.0"
)

// recordFormValues holds the form-bound text of every field. Numbers are
// kept as entered and parsed once the form is submitted.
type recordFormValues struct {
	year              string
	entgeltpunkte     string
	currentClaim      string
	projection        string
	disabilityPension string
	retirementAge     string
	status            string

	earlyRetirementDeduction string
	inflationExpectation     string
	additionalPension        bool
	additionalPensionDetails string
	annualGrossIncome        string
	childCareYears           string
	educationYears           string
	ownContribution          string
	employerContribution     string
	insuranceContribution    string
	totalContribution        string
	comment                  string
}

func defaultFormValues(now time.Time) *recordFormValues {
	return &recordFormValues{
		year:                     strconv.Itoa(now.Year()),
		retirementAge:            strconv.Itoa(domain.DefaultRetirementAge),
		status:                   string(domain.StatusEmployed),
		earlyRetirementDeduction: defaultDeduction,
		inflationExpectation:     defaultInflation,
	}
}

func formValuesFromRecord(r domain.PensionRecord) *recordFormValues {
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	opt := func(p *float64) string {
		if p == nil {
			return ""
		}
		return num(*p)
	}
	return &recordFormValues{
		year:                     strconv.Itoa(r.Year),
		entgeltpunkte:            num(r.Entgeltpunkte),
		currentClaim:             num(r.CurrentClaim),
		projection:               num(r.Projection),
		disabilityPension:        num(r.DisabilityPension),
		retirementAge:            strconv.Itoa(r.RetirementAge),
		status:                   r.Status,
		earlyRetirementDeduction: opt(r.EarlyRetirementDeduction),
		inflationExpectation:     opt(r.InflationExpectation),
		additionalPension:        domain.ValueOr(false, r.AdditionalPension),
		additionalPensionDetails: domain.ValueOr("", r.AdditionalPensionDetails),
		annualGrossIncome:        opt(r.AnnualGrossIncome),
		childCareYears:           opt(r.ChildCareYears),
		educationYears:           opt(r.EducationYears),
		ownContribution:          opt(r.OwnContribution),
		employerContribution:     opt(r.EmployerContribution),
		insuranceContribution:    opt(r.InsuranceContribution),
		totalContribution:        opt(r.TotalContribution),
		comment:                  domain.ValueOr("", r.Comment),
	}
}

// fields converts the submitted text into record fields. Blank optional
// fields stay absent.
func (v *recordFormValues) fields() (domain.RecordFields, error) {
	var p formParser
	f := domain.RecordFields{
		Year:              p.whole("year", v.year),
		Entgeltpunkte:     p.number("Entgeltpunkte", v.entgeltpunkte),
		CurrentClaim:      p.number("current claim", v.currentClaim),
		Projection:        p.number("projection", v.projection),
		DisabilityPension: p.number("disability pension", v.disabilityPension),
		RetirementAge:     p.whole("retirement age", v.retirementAge),
		Status:            v.status,

		EarlyRetirementDeduction: p.optNumber("early retirement deduction", v.earlyRetirementDeduction),
		InflationExpectation:     p.optNumber("inflation expectation", v.inflationExpectation),
		AdditionalPension:        domain.Ptr(v.additionalPension),
		AdditionalPensionDetails: optString(v.additionalPensionDetails),
		AnnualGrossIncome:        p.optNumber("annual gross income", v.annualGrossIncome),
		ChildCareYears:           p.optNumber("child care years", v.childCareYears),
		EducationYears:           p.optNumber("education years", v.educationYears),
		OwnContribution:          p.optNumber("own contribution", v.ownContribution),
		EmployerContribution:     p.optNumber("employer contribution", v.employerContribution),
		InsuranceContribution:    p.optNumber("insurance contribution", v.insuranceContribution),
		TotalContribution:        p.optNumber("total contribution", v.totalContribution),
		Comment:                  optString(v.comment),
	}
	if p.err != nil {
		return domain.RecordFields{}, p.err
	}
	return f, nil
}

// formParser records the first parse failure so fields() can convert all
// values in one pass.
type formParser struct {
	err error
}

func (p *formParser) number(name, s string) float64 {
	v, err := parseNumber(s)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", name, err)
	}
	return v
}

func (p *formParser) optNumber(name, s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return domain.Ptr(p.number(name, s))
}

func (p *formParser) whole(name, s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: enter a whole number", name)
	}
	return v
}

func optString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return domain.Ptr(s)
}

// parseNumber accepts a decimal point or a German decimal comma.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, fmt.Errorf("value is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("enter a number")
	}
	return v, nil
}

// newRecordForm builds the themed entry form bound to v.
func newRecordForm(v *recordFormValues) *huh.Form {
	statusOptions := make([]huh.Option[string], 0, len(domain.StatusOptions)+1)
	for _, s := range domain.StatusOptions {
		statusOptions = append(statusOptions, huh.NewOption(string(s), string(s)))
	}
	if v.status != "" && !domain.IsKnownStatus(v.status) {
		statusOptions = append(statusOptions, huh.NewOption(v.status, v.status))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Year").Value(&v.year).Validate(validateYear),
			huh.NewInput().Title("Entgeltpunkte").Placeholder("24,5").Value(&v.entgeltpunkte).Validate(validateRequiredNonNegative),
			huh.NewInput().Title("Current claim (EUR/month)").Value(&v.currentClaim).Validate(validateRequiredNonNegative),
			huh.NewInput().Title("Projected pension (EUR/month)").Value(&v.projection).Validate(validateRequiredNonNegative),
			huh.NewInput().Title("Disability pension (EUR/month)").Value(&v.disabilityPension).Validate(validateRequiredNonNegative),
		).Title("Statement"),
		huh.NewGroup(
			huh.NewInput().Title("Retirement age").Value(&v.retirementAge).Validate(validateRetirementAge),
			huh.NewSelect[string]().Title("Employment status").Options(statusOptions...).Value(&v.status),
			huh.NewInput().Title("Early retirement deduction (% per month)").Value(&v.earlyRetirementDeduction).
				Validate(validateOptionalRange(0, domain.MaxPercentField)),
			huh.NewInput().Title("Inflation expectation (%)").Value(&v.inflationExpectation).
				Validate(validateOptionalRange(0, domain.MaxPercentField)),
		).Title("Retirement"),
		huh.NewGroup(
			huh.NewConfirm().Title("Additional pension?").Affirmative("Ja").Negative("Nein").Value(&v.additionalPension),
			huh.NewInput().Title("Additional pension details (optional)").Value(&v.additionalPensionDetails),
			huh.NewInput().Title("Annual gross income (EUR, optional)").Value(&v.annualGrossIncome).Validate(validateOptionalNonNegative),
			huh.NewInput().Title("Child care years (optional)").Value(&v.childCareYears).
				Validate(validateOptionalRange(0, domain.MaxYearsCreditsField)),
			huh.NewInput().Title("Education years (optional)").Value(&v.educationYears).
				Validate(validateOptionalRange(0, domain.MaxYearsCreditsField)),
		).Title("Provision"),
		huh.NewGroup(
			huh.NewInput().Title("Own contribution (EUR, optional)").Value(&v.ownContribution).Validate(validateOptionalNonNegative),
			huh.NewInput().Title("Employer contribution (EUR, optional)").Value(&v.employerContribution).Validate(validateOptionalNonNegative),
			huh.NewInput().Title("Insurance contribution (EUR, optional)").Value(&v.insuranceContribution).Validate(validateOptionalNonNegative),
			huh.NewInput().Title("Total contribution (EUR, optional)").Value(&v.totalContribution).Validate(validateOptionalNonNegative),
			huh.NewText().Title("Comment (optional)").Value(&v.comment),
		).Title("Contributions"),
	).WithTheme(pensionHuhTheme()).WithShowHelp(false)
}

func validateYear(s string) error {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a year")
	}
	if year < domain.FormMinYear || year > domain.FormMaxYear {
		return fmt.Errorf("year must be between %d and %d", domain.FormMinYear, domain.FormMaxYear)
	}
	return nil
}

func validateRetirementAge(s string) error {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if age < domain.MinRetirementAge || age > domain.MaxRetirementAge {
		return fmt.Errorf("age must be between %d and %d", domain.MinRetirementAge, domain.MaxRetirementAge)
	}
	return nil
}

func validateRequiredNonNegative(s string) error {
	v, err := parseNumber(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateOptionalNonNegative(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateRequiredNonNegative(s)
}

func validateOptionalRange(lo, hi float64) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		v, err := parseNumber(s)
		if err != nil {
			return err
		}
		if v < lo || v > hi {
			return fmt.Errorf("must be between %g and %g", lo, hi)
		}
		return nil
	}
}
