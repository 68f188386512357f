package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pensionbook/internal/domain"
)

// ExportFileName returns the download name for an export made at t, using
// t's calendar date.
func ExportFileName(t time.Time) string {
	return fileNamePrefix + t.Format("2006-01-02") + ".csv"
}

// ExportCSV renders records in the given order as a header line followed by
// one line per record, joined with "\n". Text fields are wrapped in double
// quotes without escaping. Absent optional numbers are written as 0.
func ExportCSV(records []domain.PensionRecord) (string, error) {
	if len(records) == 0 {
		return "", ErrNothingToExport
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(Columns, ","))
	for _, r := range records {
		lines = append(lines, strings.Join(exportRow(r), ","))
	}
	return strings.Join(lines, "\n"), nil
}

func exportRow(r domain.PensionRecord) []string {
	row := make([]string, len(Columns))
	row[colYear] = strconv.Itoa(r.Year)
	row[colEntgeltpunkte] = formatFloat(r.Entgeltpunkte)
	row[colCurrentClaim] = formatFloat(r.CurrentClaim)
	row[colProjection] = formatFloat(r.Projection)
	row[colDisabilityPension] = formatFloat(r.DisabilityPension)
	row[colStatus] = quote(r.Status)
	row[colRetirementAge] = strconv.Itoa(r.RetirementAge)
	row[colEarlyRetirementDeduction] = formatOptional(r.EarlyRetirementDeduction)
	row[colInflationExpectation] = formatOptional(r.InflationExpectation)
	row[colAnnualGrossIncome] = formatOptional(r.AnnualGrossIncome)
	row[colOwnContribution] = formatOptional(r.OwnContribution)
	row[colEmployerContribution] = formatOptional(r.EmployerContribution)
	row[colInsuranceContribution] = formatOptional(r.InsuranceContribution)
	row[colTotalContribution] = formatOptional(r.TotalContribution)
	row[colChildCareYears] = formatOptional(r.ChildCareYears)
	row[colEducationYears] = formatOptional(r.EducationYears)
	row[colAdditionalPension] = boolNo
	if domain.ValueOr(false, r.AdditionalPension) {
		row[colAdditionalPension] = boolYes
	}
	row[colAdditionalPensionDetails] = quote(domain.ValueOr("", r.AdditionalPensionDetails))
	row[colComment] = quote(domain.ValueOr("", r.Comment))
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(p *float64) string {
	return formatFloat(domain.ValueOr(0, p))
}

func quote(s string) string {
	return `"` + s + `"`
}
