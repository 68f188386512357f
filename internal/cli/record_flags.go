package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/alexanderramin/pensionbook/internal/service"
	"github.com/spf13/pflag"
)

// recordFlags binds one flag per editable record field. add turns them
// into RecordFields; update turns the changed ones into a RecordPatch.
type recordFlags struct {
	year              int
	entgeltpunkte     float64
	currentClaim      float64
	projection        float64
	disabilityPension float64
	retirementAge     int
	status            string

	earlyRetirementDeduction float64
	inflationExpectation     float64
	additionalPension        bool
	additionalPensionDetails string
	annualGrossIncome        float64
	childCareYears           float64
	educationYears           float64
	ownContribution          float64
	employerContribution     float64
	insuranceContribution    float64
	totalContribution        float64
	comment                  string
}

func (f *recordFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.year, "year", 0, "Statement year")
	fs.Float64Var(&f.entgeltpunkte, "entgeltpunkte", 0, "Accumulated Entgeltpunkte")
	fs.Float64Var(&f.currentClaim, "claim", 0, "Current monthly claim in EUR")
	fs.Float64Var(&f.projection, "projection", 0, "Projected monthly pension in EUR")
	fs.Float64Var(&f.disabilityPension, "disability", 0, "Monthly disability pension in EUR")
	fs.IntVar(&f.retirementAge, "age", domain.DefaultRetirementAge, "Planned retirement age")
	fs.StringVar(&f.status, "status", string(domain.StatusEmployed), "Employment status in that year")

	fs.Float64Var(&f.earlyRetirementDeduction, "deduction", 0, "Early retirement deduction per month, in percent")
	fs.Float64Var(&f.inflationExpectation, "inflation", 0, "Expected inflation, in percent")
	fs.BoolVar(&f.additionalPension, "additional-pension", false, "Has an additional private or company pension")
	fs.StringVar(&f.additionalPensionDetails, "additional-details", "", "Details of the additional pension")
	fs.Float64Var(&f.annualGrossIncome, "gross-income", 0, "Annual gross income in EUR")
	fs.Float64Var(&f.childCareYears, "child-care-years", 0, "Credited child care years")
	fs.Float64Var(&f.educationYears, "education-years", 0, "Credited education years")
	fs.Float64Var(&f.ownContribution, "own-contribution", 0, "Own contribution in EUR")
	fs.Float64Var(&f.employerContribution, "employer-contribution", 0, "Employer contribution in EUR")
	fs.Float64Var(&f.insuranceContribution, "insurance-contribution", 0, "Other insurance contributions in EUR")
	fs.Float64Var(&f.totalContribution, "total-contribution", 0, "Total contribution in EUR")
	fs.StringVar(&f.comment, "comment", "", "Free-text comment")
}

// fields builds a full record from the flags. Optional fields are only set
// when their flag was given.
func (f *recordFlags) fields(fs *pflag.FlagSet) domain.RecordFields {
	out := domain.RecordFields{
		Year:              f.year,
		Entgeltpunkte:     f.entgeltpunkte,
		CurrentClaim:      f.currentClaim,
		Projection:        f.projection,
		DisabilityPension: f.disabilityPension,
		RetirementAge:     f.retirementAge,
		Status:            f.status,
	}
	p := f.patch(fs)
	out.EarlyRetirementDeduction = p.EarlyRetirementDeduction
	out.InflationExpectation = p.InflationExpectation
	out.AdditionalPension = p.AdditionalPension
	out.AdditionalPensionDetails = p.AdditionalPensionDetails
	out.AnnualGrossIncome = p.AnnualGrossIncome
	out.ChildCareYears = p.ChildCareYears
	out.EducationYears = p.EducationYears
	out.OwnContribution = p.OwnContribution
	out.EmployerContribution = p.EmployerContribution
	out.InsuranceContribution = p.InsuranceContribution
	out.TotalContribution = p.TotalContribution
	out.Comment = p.Comment
	return out
}

// patch collects every flag the user actually passed.
func (f *recordFlags) patch(fs *pflag.FlagSet) domain.RecordPatch {
	var p domain.RecordPatch
	setInt := func(name string, v int, dst **int) {
		if fs.Changed(name) {
			*dst = domain.Ptr(v)
		}
	}
	setFloat := func(name string, v float64, dst **float64) {
		if fs.Changed(name) {
			*dst = domain.Ptr(v)
		}
	}
	setString := func(name, v string, dst **string) {
		if fs.Changed(name) {
			*dst = domain.Ptr(v)
		}
	}

	setInt("year", f.year, &p.Year)
	setFloat("entgeltpunkte", f.entgeltpunkte, &p.Entgeltpunkte)
	setFloat("claim", f.currentClaim, &p.CurrentClaim)
	setFloat("projection", f.projection, &p.Projection)
	setFloat("disability", f.disabilityPension, &p.DisabilityPension)
	setInt("age", f.retirementAge, &p.RetirementAge)
	setString("status", f.status, &p.Status)

	setFloat("deduction", f.earlyRetirementDeduction, &p.EarlyRetirementDeduction)
	setFloat("inflation", f.inflationExpectation, &p.InflationExpectation)
	if fs.Changed("additional-pension") {
		p.AdditionalPension = domain.Ptr(f.additionalPension)
	}
	setString("additional-details", f.additionalPensionDetails, &p.AdditionalPensionDetails)
	setFloat("gross-income", f.annualGrossIncome, &p.AnnualGrossIncome)
	setFloat("child-care-years", f.childCareYears, &p.ChildCareYears)
	setFloat("education-years", f.educationYears, &p.EducationYears)
	setFloat("own-contribution", f.ownContribution, &p.OwnContribution)
	setFloat("employer-contribution", f.employerContribution, &p.EmployerContribution)
	setFloat("insurance-contribution", f.insuranceContribution, &p.InsuranceContribution)
	setFloat("total-contribution", f.totalContribution, &p.TotalContribution)
	setString("comment", f.comment, &p.Comment)
	return p
}

// resolveRecordID accepts a full ID, a unique ID prefix, or a statement
// year held by exactly one record.
func resolveRecordID(ctx context.Context, records service.PensionService, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("record ID is required")
	}

	all, err := records.List(ctx)
	if err != nil {
		return "", err
	}

	for _, r := range all {
		if r.ID == input {
			return r.ID, nil
		}
	}

	if year, err := strconv.Atoi(input); err == nil && len(input) == 4 {
		var matches []string
		for _, r := range all {
			if r.Year == year {
				matches = append(matches, r.ID)
			}
		}
		switch len(matches) {
		case 0:
		case 1:
			return matches[0], nil
		default:
			return "", fmt.Errorf("year %d matches %d records, use the record ID", year, len(matches))
		}
	}

	var matches []string
	for _, r := range all {
		if strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("record %q: %w", input, domain.ErrRecordNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("record ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// validationError joins the form-level range violations into one error.
func validationError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return fmt.Errorf("invalid record:\n  %s", strings.Join(msgs, "\n  "))
}
