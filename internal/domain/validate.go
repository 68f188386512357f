package domain

import "fmt"

// Form-level bounds. The store itself does not enforce them; entry
// surfaces check them before calling into the service.
const (
	FormMinYear          = 1950
	FormMaxYear          = 2100
	MinRetirementAge     = 60
	MaxRetirementAge     = 70
	MaxPercentField      = 10
	MaxYearsCreditsField = 20
)

// ValidateFields applies the basic range checks of the entry form and
// returns every violation found.
func ValidateFields(f RecordFields) []error {
	var errs []error

	if f.Year < FormMinYear || f.Year > FormMaxYear {
		errs = append(errs, fmt.Errorf("%w: year %d must be between %d and %d", ErrInvalidField, f.Year, FormMinYear, FormMaxYear))
	}
	if f.RetirementAge < MinRetirementAge || f.RetirementAge > MaxRetirementAge {
		errs = append(errs, fmt.Errorf("%w: retirement age %d must be between %d and %d", ErrInvalidField, f.RetirementAge, MinRetirementAge, MaxRetirementAge))
	}

	for _, base := range []struct {
		name  string
		value float64
	}{
		{"entgeltpunkte", f.Entgeltpunkte},
		{"currentClaim", f.CurrentClaim},
		{"projection", f.Projection},
		{"disabilityPension", f.DisabilityPension},
	} {
		if base.value < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be negative", ErrInvalidField, base.name))
		}
	}

	errs = appendBounded(errs, "earlyRetirementDeduction", f.EarlyRetirementDeduction, MaxPercentField)
	errs = appendBounded(errs, "inflationExpectation", f.InflationExpectation, MaxPercentField)
	errs = appendBounded(errs, "childCareYears", f.ChildCareYears, MaxYearsCreditsField)
	errs = appendBounded(errs, "educationYears", f.EducationYears, MaxYearsCreditsField)

	for _, opt := range []struct {
		name  string
		value *float64
	}{
		{"annualGrossIncome", f.AnnualGrossIncome},
		{"ownContribution", f.OwnContribution},
		{"employerContribution", f.EmployerContribution},
		{"insuranceContribution", f.InsuranceContribution},
		{"totalContribution", f.TotalContribution},
	} {
		if opt.value != nil && *opt.value < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be negative", ErrInvalidField, opt.name))
		}
	}

	return errs
}

func appendBounded(errs []error, name string, p *float64, upper float64) []error {
	if p == nil {
		return errs
	}
	if *p < 0 || *p > upper {
		return append(errs, fmt.Errorf("%w: %s %g must be between 0 and %g", ErrInvalidField, name, *p, upper))
	}
	return errs
}
